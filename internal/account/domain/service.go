package domain

import (
	"context"
	"errors"

	"github.com/bwmarrin/snowflake"
)

type CreateAccountRequest struct {
	ActorID snowflake.ID

	ProfileID      string
	AccountName    string
	ContactName    string
	Email          string
	Phone          string
	ServiceAddress string
	BillingAddress string
	BusinessType   string
	TaxID          string
	DepositPaid    bool
	CreditLimit    float64
}

type ListAccountRequest struct {
	ActorID   snowflake.ID
	ActorRole string

	ProfileID string
}

type GetAccountRequest struct {
	ActorID   snowflake.ID
	ActorRole string
	ID        string
}

type ListAccountResponse struct {
	Accounts []Account `json:"accounts"`
}

type Service interface {
	Create(context.Context, CreateAccountRequest) (Account, error)
	List(context.Context, ListAccountRequest) (ListAccountResponse, error)
	GetByID(context.Context, GetAccountRequest) (Account, error)
}

var (
	ErrInvalidName     = errors.New("invalid_account_name")
	ErrInvalidID       = errors.New("invalid_id")
	ErrProfileNotFound = errors.New("profile_not_found")
	ErrNotFound        = errors.New("not_found")
	ErrForbidden       = errors.New("forbidden")
)
