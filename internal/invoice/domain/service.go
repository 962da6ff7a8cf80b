package domain

import (
	"context"
	"errors"
	"time"

	"github.com/bwmarrin/snowflake"
)

type CreateInvoiceRequest struct {
	ActorID snowflake.ID

	AccountID          string
	ProfileID          string
	ServiceIDs         []string
	Items              []InvoiceItem
	TaxRate            float64
	DiscountAmount     float64
	BillingPeriodStart *time.Time
	BillingPeriodEnd   *time.Time
	DueDate            *time.Time
	Status             string
	Notes              string
}

type ListInvoiceRequest struct {
	ActorID   snowflake.ID
	ActorRole string

	AccountID string
	Status    string
}

type GetInvoiceRequest struct {
	ActorID   snowflake.ID
	ActorRole string
	ID        string
}

type ListInvoiceResponse struct {
	Invoices []Invoice `json:"invoices"`
}

type Service interface {
	Create(context.Context, CreateInvoiceRequest) (Invoice, error)
	List(context.Context, ListInvoiceRequest) (ListInvoiceResponse, error)
	GetByID(context.Context, GetInvoiceRequest) (Invoice, error)
}

var (
	ErrInvalidID       = errors.New("invalid_id")
	ErrInvalidItems    = errors.New("invalid_items")
	ErrInvalidStatus   = errors.New("invalid_status")
	ErrAccountNotFound = errors.New("account_not_found")
	ErrNotFound        = errors.New("not_found")
	ErrForbidden       = errors.New("forbidden")
)
