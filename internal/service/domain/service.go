package domain

import (
	"context"
	"errors"
	"time"

	"github.com/bwmarrin/snowflake"
)

type CreateServiceRequest struct {
	ActorID   snowflake.ID
	ActorRole string

	AccountID         string
	PlanID            string
	Name              string
	Description       string
	Category          string
	ServiceType       string
	CustomPrice       *float64
	MonthlyCharges    float64
	StartDate         *time.Time
	ServiceAddress    string
	InstallationNotes string
	MeterNumber       string
	ConnectionType    string
	Capacity          string
	AssignedTo        string
	Priority          string
	IsAddon           bool
	ParentServiceID   string
}

type UpdateServiceRequest struct {
	ActorID   snowflake.ID
	ActorRole string
	ID        string

	Name              *string
	Description       *string
	CustomPrice       *float64
	MonthlyCharges    *float64
	EndDate           *time.Time
	ServiceAddress    *string
	InstallationNotes *string
	MeterNumber       *string
	ConnectionType    *string
	Capacity          *string
	Status            *string
	Priority          *string
	LastReading       *float64
}

type ListServiceRequest struct {
	ActorID   snowflake.ID
	ActorRole string

	AccountID string
}

type GetServiceRequest struct {
	ActorID   snowflake.ID
	ActorRole string
	ID        string
}

type ListServiceResponse struct {
	Services []ServiceView `json:"services"`
}

// Manager operates on provisioned services. The entity itself is the
// Service model, so the interface carries its own name.
type Manager interface {
	Create(context.Context, CreateServiceRequest) (ServiceView, error)
	List(context.Context, ListServiceRequest) (ListServiceResponse, error)
	GetByID(context.Context, GetServiceRequest) (ServiceView, error)
	Update(context.Context, UpdateServiceRequest) (ServiceView, error)
}

var (
	ErrInvalidName          = errors.New("invalid_name")
	ErrInvalidCategory      = errors.New("invalid_category")
	ErrInvalidStatus        = errors.New("invalid_status")
	ErrInvalidID            = errors.New("invalid_id")
	ErrInvalidParentService = errors.New("invalid_parent_service")
	ErrAccountNotFound      = errors.New("account_not_found")
	ErrPlanNotFound         = errors.New("plan_not_found")
	ErrNotFound             = errors.New("not_found")
	ErrForbidden            = errors.New("forbidden")
)
