package authorization

import (
	"context"
	_ "embed"
	"strings"

	"github.com/casbin/casbin/v2"
	"github.com/casbin/casbin/v2/model"
	gormadapter "github.com/casbin/gorm-adapter/v3"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

//go:embed model.conf
var modelText string

type Params struct {
	fx.In

	Log      *zap.Logger
	Enforcer *casbin.SyncedEnforcer
}

type ServiceImpl struct {
	log      *zap.Logger
	enforcer *casbin.SyncedEnforcer
}

func NewEnforcer(db *gorm.DB) (*casbin.SyncedEnforcer, error) {
	adapter, err := gormadapter.NewAdapterByDB(db)
	if err != nil {
		return nil, err
	}
	m, err := model.NewModelFromString(modelText)
	if err != nil {
		return nil, err
	}
	enforcer, err := casbin.NewSyncedEnforcer(m, adapter)
	if err != nil {
		return nil, err
	}
	enforcer.EnableAutoSave(true)
	enforcer.EnableAutoBuildRoleLinks(true)
	if err := enforcer.LoadPolicy(); err != nil {
		return nil, err
	}
	if err := seedPolicies(enforcer); err != nil {
		return nil, err
	}
	enforcer.BuildRoleLinks()
	return enforcer, nil
}

func NewService(p Params) Service {
	return &ServiceImpl{
		log:      p.Log.Named("authorization.service"),
		enforcer: p.Enforcer,
	}
}

func (s *ServiceImpl) Authorize(ctx context.Context, role, object, action string) error {
	role = strings.TrimSpace(role)
	if role == "" {
		return ErrInvalidRole
	}
	object = strings.TrimSpace(object)
	if object == "" {
		return ErrInvalidObject
	}
	action = strings.TrimSpace(action)
	if action == "" {
		return ErrInvalidAction
	}

	allowed, err := s.enforcer.Enforce("role:"+strings.ToLower(role), object, action)
	if err != nil {
		return err
	}
	if !allowed {
		s.log.Debug("authorization denied",
			zap.String("role", role),
			zap.String("object", object),
			zap.String("action", action),
		)
		return ErrForbidden
	}
	return nil
}

// seedPolicies grants each role exactly the routes it may reach. Ownership
// narrowing happens afterwards in the domain services.
func seedPolicies(enforcer *casbin.SyncedEnforcer) error {
	policies := [][]string{
		// End users: read-side access plus self-service operations.
		{"role:user", ObjectUser, ActionView},
		{"role:user", ObjectProfile, ActionView},
		{"role:user", ObjectAccount, ActionView},
		{"role:user", ObjectPlan, ActionView},
		{"role:user", ObjectService, ActionView},
		{"role:user", ObjectService, ActionCreate},
		{"role:user", ObjectService, ActionUpdate},
		{"role:user", ObjectSubscription, ActionView},
		{"role:user", ObjectSubscription, ActionManage},
		{"role:user", ObjectInvoice, ActionView},
		{"role:user", ObjectPayment, ActionView},
		{"role:user", ObjectDashboard, ActionView},

		// Admins: everything users can do plus catalog and billing control.
		{"role:admin", ObjectUser, ActionView},
		{"role:admin", ObjectProfile, ActionView},
		{"role:admin", ObjectProfile, ActionUpdate},
		{"role:admin", ObjectAccount, ActionView},
		{"role:admin", ObjectAccount, ActionCreate},
		{"role:admin", ObjectPlan, ActionView},
		{"role:admin", ObjectPlan, ActionCreate},
		{"role:admin", ObjectPlan, ActionUpdate},
		{"role:admin", ObjectService, ActionView},
		{"role:admin", ObjectService, ActionCreate},
		{"role:admin", ObjectService, ActionUpdate},
		{"role:admin", ObjectSubscription, ActionView},
		{"role:admin", ObjectSubscription, ActionManage},
		{"role:admin", ObjectInvoice, ActionView},
		{"role:admin", ObjectInvoice, ActionCreate},
		{"role:admin", ObjectBilling, ActionView},
		{"role:admin", ObjectBilling, ActionCreate},
		{"role:admin", ObjectBilling, ActionApprove},
		{"role:admin", ObjectPayment, ActionView},
		{"role:admin", ObjectDashboard, ActionView},
		{"role:admin", ObjectReport, ActionView},

		// Super admins: full control, including profile and config management.
		{"role:super_admin", ObjectUser, ActionView},
		{"role:super_admin", ObjectUser, ActionManage},
		{"role:super_admin", ObjectProfile, ActionView},
		{"role:super_admin", ObjectProfile, ActionCreate},
		{"role:super_admin", ObjectProfile, ActionUpdate},
		{"role:super_admin", ObjectAccount, ActionView},
		{"role:super_admin", ObjectAccount, ActionCreate},
		{"role:super_admin", ObjectPlan, ActionView},
		{"role:super_admin", ObjectPlan, ActionCreate},
		{"role:super_admin", ObjectPlan, ActionUpdate},
		{"role:super_admin", ObjectService, ActionView},
		{"role:super_admin", ObjectService, ActionCreate},
		{"role:super_admin", ObjectService, ActionUpdate},
		{"role:super_admin", ObjectSubscription, ActionView},
		{"role:super_admin", ObjectSubscription, ActionManage},
		{"role:super_admin", ObjectInvoice, ActionView},
		{"role:super_admin", ObjectInvoice, ActionCreate},
		{"role:super_admin", ObjectBilling, ActionView},
		{"role:super_admin", ObjectBilling, ActionCreate},
		{"role:super_admin", ObjectBilling, ActionApprove},
		{"role:super_admin", ObjectPayment, ActionView},
		{"role:super_admin", ObjectDashboard, ActionView},
		{"role:super_admin", ObjectReport, ActionView},
		{"role:super_admin", ObjectSystemConfig, ActionView},
		{"role:super_admin", ObjectSystemConfig, ActionManage},
	}

	for _, policy := range policies {
		if len(policy) < 3 {
			continue
		}
		if _, err := enforcer.AddPolicy(policy); err != nil {
			return err
		}
	}
	return nil
}
