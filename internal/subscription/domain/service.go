package domain

import (
	"context"
	"errors"
	"time"

	"github.com/bwmarrin/snowflake"
	plandomain "github.com/utilitech/utilicore/internal/plan/domain"
	servicedomain "github.com/utilitech/utilicore/internal/service/domain"
	"github.com/utilitech/utilicore/pkg/db/pagination"
)

// Subscriptions are a read-side view over services joined with their plan
// and account. There is no stored subscription table; lifecycle operations
// write through to service rows.

type ListSubscriptionRequest struct {
	ActorID   snowflake.ID
	ActorRole string

	AccountID string
	PlanName  string
	Page      pagination.Params
}

type ListSubscriptionResponse struct {
	pagination.PageInfo
	Subscriptions []servicedomain.ServiceView `json:"subscriptions"`
}

type GetSubscriptionRequest struct {
	ActorID   snowflake.ID
	ActorRole string
	ID        string
}

type DeactivateRequest struct {
	ActorID   snowflake.ID
	ActorRole string
	ID        string

	DeactivationDate *time.Time
}

type ChangePlanRequest struct {
	ActorID   snowflake.ID
	ActorRole string

	ServiceID      string
	NewPlanID      string
	ActivationDate *time.Time
}

type AvailablePlansRequest struct {
	ActorID   snowflake.ID
	ActorRole string

	CurrentPlanID string
}

type AddonPlansRequest struct {
	ActorRole   string
	ServiceType string
}

type ActivateAddonRequest struct {
	ActorID   snowflake.ID
	ActorRole string

	ServiceID   string
	AddonPlanID string
}

type DeactivateAddonRequest struct {
	ActorID   snowflake.ID
	ActorRole string

	AddonServiceID string
}

type PlanListResponse struct {
	Plans []plandomain.PlanView `json:"plans"`
}

type Service interface {
	ListSelf(context.Context, ListSubscriptionRequest) (ListSubscriptionResponse, error)
	ListUsers(context.Context, ListSubscriptionRequest) (ListSubscriptionResponse, error)
	Details(context.Context, GetSubscriptionRequest) (servicedomain.ServiceView, error)
	Deactivate(context.Context, DeactivateRequest) (servicedomain.ServiceView, error)
	ChangePlan(context.Context, ChangePlanRequest) (servicedomain.ServiceView, error)
	AvailablePlans(context.Context, AvailablePlansRequest) (PlanListResponse, error)
	AddonPlans(context.Context, AddonPlansRequest) (PlanListResponse, error)
	ActivateAddon(context.Context, ActivateAddonRequest) (servicedomain.ServiceView, error)
	DeactivateAddon(context.Context, DeactivateAddonRequest) (servicedomain.ServiceView, error)
}

var (
	ErrInvalidID          = errors.New("invalid_id")
	ErrInvalidServiceType = errors.New("invalid_service_type")
	ErrNotFound           = errors.New("not_found")
	ErrForbidden          = errors.New("forbidden")
	ErrPlanNotFound       = errors.New("plan_not_found")
	ErrNotAddonPlan       = errors.New("not_addon_plan")
	ErrNotAddonService    = errors.New("not_addon_service")
)
