package domain

import (
	"context"
	"errors"
	"time"

	"github.com/bwmarrin/snowflake"
)

type CreatePlanRequest struct {
	ActorID   snowflake.ID
	ActorRole string

	Name              string
	Description       string
	PlanType          int
	ServiceType       string
	ChargeType        string
	ChargeCategory    string
	BasePrice         float64
	Charges           float64
	SetupFee          float64
	BillingFrequency  string
	StartDate         *time.Time
	EndDate           *time.Time
	DepositMultiplier *float64
	Features          []string
	Terms             string
	Proration         bool
	IsForAdmin        bool
	AssignedToRole    string
	CreatedForAdmin   string
}

type UpdatePlanRequest struct {
	ActorID   snowflake.ID
	ActorRole string
	ID        string

	Name              *string
	Description       *string
	ChargeType        *string
	ChargeCategory    *string
	BasePrice         *float64
	Charges           *float64
	SetupFee          *float64
	BillingFrequency  *string
	StartDate         *time.Time
	EndDate           *time.Time
	DepositMultiplier *float64
	Features          []string
	Terms             *string
	Proration         *bool
	Status            *string
	AssignedToRole    *string
}

type ListPlanRequest struct {
	ActorID   snowflake.ID
	ActorRole string

	ServiceType string
	PlanType    int
	Status      string
}

type GetPlanRequest struct {
	ID string
}

type ListPlanResponse struct {
	Plans []PlanView `json:"plans"`
}

type Service interface {
	Create(context.Context, CreatePlanRequest) (PlanView, error)
	List(context.Context, ListPlanRequest) (ListPlanResponse, error)
	GetByID(context.Context, GetPlanRequest) (PlanView, error)
	Update(context.Context, UpdatePlanRequest) (PlanView, error)
}

var (
	ErrInvalidName        = errors.New("invalid_name")
	ErrInvalidPlanType    = errors.New("invalid_plan_type")
	ErrInvalidServiceType = errors.New("invalid_service_type")
	ErrInvalidStatus      = errors.New("invalid_status")
	ErrInvalidID          = errors.New("invalid_id")
	ErrNotFound           = errors.New("not_found")
	ErrForbidden          = errors.New("forbidden")
)
