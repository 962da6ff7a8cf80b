package domain

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"
)

// ListPlanFilter narrows plan listings. Role and Actor drive visibility:
// users see only non-admin plans assigned to the user role, admins see their
// own plans, plans created for them and role-assigned plans, super admins
// see everything.
type ListPlanFilter struct {
	Role    string
	ActorID snowflake.ID

	ServiceType string
	PlanType    int
	Status      string
	ExcludeID   snowflake.ID

	// ExcludeAdminOnly hides is_for_admin plans without applying the full
	// role visibility rule. Used by the plan-picker listings, where a user
	// may take any non-admin plan regardless of its assigned role.
	ExcludeAdminOnly bool
}

type Repository interface {
	Insert(ctx context.Context, db *gorm.DB, plan *Plan) error
	Update(ctx context.Context, db *gorm.DB, plan *Plan) error
	FindByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*Plan, error)
	List(ctx context.Context, db *gorm.DB, filter ListPlanFilter) ([]Plan, error)
}
