package authorization

import (
	"context"
	"errors"
)

// Service answers "may this role perform this action on this object".
// Ownership checks (a user touching somebody else's account) stay in the
// domain services; this layer only gates by role.
type Service interface {
	Authorize(ctx context.Context, role, object, action string) error
}

var (
	ErrInvalidRole   = errors.New("invalid_role")
	ErrInvalidObject = errors.New("invalid_object")
	ErrInvalidAction = errors.New("invalid_action")
	ErrForbidden     = errors.New("forbidden")
)

const (
	ObjectUser         = "user"
	ObjectProfile      = "profile"
	ObjectAccount      = "account"
	ObjectPlan         = "plan"
	ObjectService      = "service"
	ObjectSubscription = "subscription"
	ObjectInvoice      = "invoice"
	ObjectBilling      = "billing"
	ObjectPayment      = "payment"
	ObjectReport       = "report"
	ObjectDashboard    = "dashboard"
	ObjectSystemConfig = "system_config"
)

const (
	ActionView    = "view"
	ActionCreate  = "create"
	ActionUpdate  = "update"
	ActionApprove = "approve"
	ActionManage  = "manage"
)
