package service

import (
	"context"
	"testing"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	accountdomain "github.com/utilitech/utilicore/internal/account/domain"
	accountrepo "github.com/utilitech/utilicore/internal/account/repository"
	authdomain "github.com/utilitech/utilicore/internal/auth/domain"
	plandomain "github.com/utilitech/utilicore/internal/plan/domain"
	planrepo "github.com/utilitech/utilicore/internal/plan/repository"
	servicedomain "github.com/utilitech/utilicore/internal/service/domain"
	servicerepo "github.com/utilitech/utilicore/internal/service/repository"
	"github.com/utilitech/utilicore/internal/subscription/domain"
	sysconfigdomain "github.com/utilitech/utilicore/internal/sysconfig/domain"
	sysconfigrepo "github.com/utilitech/utilicore/internal/sysconfig/repository"
	sysconfigservice "github.com/utilitech/utilicore/internal/sysconfig/service"
	"github.com/utilitech/utilicore/pkg/db/pagination"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type fixture struct {
	svc  domain.Service
	db   *gorm.DB
	node *snowflake.Node
}

func newFixture(t *testing.T) fixture {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&servicedomain.Service{},
		&plandomain.Plan{},
		&accountdomain.Account{},
		&sysconfigdomain.ConfigEntry{},
	))

	node, err := snowflake.NewNode(1)
	require.NoError(t, err)

	sysconfigSvc := sysconfigservice.New(sysconfigservice.Params{
		DB:   db,
		Log:  zap.NewNop(),
		Repo: sysconfigrepo.Provide(),
	})
	svc := New(Params{
		DB:          db,
		Log:         zap.NewNop(),
		GenID:       node,
		ServiceRepo: servicerepo.Provide(),
		PlanRepo:    planrepo.Provide(),
		AccountRepo: accountrepo.Provide(),
		Sysconfig:   sysconfigSvc,
	})
	return fixture{svc: svc, db: db, node: node}
}

func (f fixture) seedPlan(t *testing.T, name string, planType int, charges float64) plandomain.Plan {
	t.Helper()
	plan := plandomain.Plan{
		ID:          f.node.Generate(),
		Name:        name,
		PlanType:    planType,
		ServiceType: "electricity",
		Charges:     charges,
		Status:      plandomain.StatusActive,
	}
	require.NoError(t, f.db.Create(&plan).Error)
	return plan
}

func (f fixture) seedService(t *testing.T, plan plandomain.Plan, managedBy snowflake.ID) servicedomain.Service {
	t.Helper()
	svc := servicedomain.Service{
		ID:             f.node.Generate(),
		AccountID:      f.node.Generate(),
		PlanID:         plan.ID,
		Name:           plan.Name,
		Category:       servicedomain.CategoryUser,
		ServiceType:    plan.ServiceType,
		MonthlyCharges: plan.Charges,
		StartDate:      time.Now().UTC().AddDate(0, -1, 0),
		Status:         servicedomain.StatusActive,
		ManagedBy:      managedBy,
		Active:         true,
	}
	require.NoError(t, f.db.Create(&svc).Error)
	return svc
}

func TestActivateAddonCreatesChildService(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	owner := f.node.Generate()

	basePlan := f.seedPlan(t, "Residential Power", plandomain.PlanTypeBase, 85)
	addonPlan := f.seedPlan(t, "Green Energy Addon", plandomain.PlanTypeAddon, 12)
	base := f.seedService(t, basePlan, owner)

	view, err := f.svc.ActivateAddon(ctx, domain.ActivateAddonRequest{
		ActorID:     owner,
		ActorRole:   authdomain.RoleUser,
		ServiceID:   base.ID.String(),
		AddonPlanID: addonPlan.ID.String(),
	})
	require.NoError(t, err)
	require.True(t, view.IsAddon)
	require.NotNil(t, view.ParentServiceID)
	require.Equal(t, base.ID, *view.ParentServiceID)
	require.Equal(t, addonPlan.Charges, view.MonthlyCharges)
	require.Equal(t, base.AccountID, view.AccountID)

	var count int64
	require.NoError(t, f.db.Model(&servicedomain.Service{}).Count(&count).Error)
	require.Equal(t, int64(2), count)

	var reloaded servicedomain.Service
	require.NoError(t, f.db.First(&reloaded, "id = ?", base.ID).Error)
	require.Equal(t, servicedomain.StatusActive, reloaded.Status)
}

func TestActivateAddonRejectsBasePlan(t *testing.T) {
	f := newFixture(t)
	owner := f.node.Generate()

	basePlan := f.seedPlan(t, "Residential Power", plandomain.PlanTypeBase, 85)
	otherBase := f.seedPlan(t, "Water Standard", plandomain.PlanTypeBase, 42.5)
	base := f.seedService(t, basePlan, owner)

	_, err := f.svc.ActivateAddon(context.Background(), domain.ActivateAddonRequest{
		ActorID:     owner,
		ActorRole:   authdomain.RoleUser,
		ServiceID:   base.ID.String(),
		AddonPlanID: otherBase.ID.String(),
	})
	require.ErrorIs(t, err, domain.ErrNotAddonPlan)
}

func TestDeactivateAddonClosesOnlyAddonRow(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	owner := f.node.Generate()

	basePlan := f.seedPlan(t, "Residential Power", plandomain.PlanTypeBase, 85)
	addonPlan := f.seedPlan(t, "Green Energy Addon", plandomain.PlanTypeAddon, 12)
	base := f.seedService(t, basePlan, owner)

	addon, err := f.svc.ActivateAddon(ctx, domain.ActivateAddonRequest{
		ActorID:     owner,
		ActorRole:   authdomain.RoleUser,
		ServiceID:   base.ID.String(),
		AddonPlanID: addonPlan.ID.String(),
	})
	require.NoError(t, err)

	closed, err := f.svc.DeactivateAddon(ctx, domain.DeactivateAddonRequest{
		ActorID:        owner,
		ActorRole:      authdomain.RoleUser,
		AddonServiceID: addon.ID.String(),
	})
	require.NoError(t, err)
	require.Equal(t, servicedomain.StatusInactive, closed.Status)
	require.False(t, closed.Active)
	require.NotNil(t, closed.EndDate)

	var reloadedBase servicedomain.Service
	require.NoError(t, f.db.First(&reloadedBase, "id = ?", base.ID).Error)
	require.Equal(t, servicedomain.StatusActive, reloadedBase.Status)
	require.True(t, reloadedBase.Active)
}

func TestDeactivateAddonRejectsBaseService(t *testing.T) {
	f := newFixture(t)
	owner := f.node.Generate()

	basePlan := f.seedPlan(t, "Residential Power", plandomain.PlanTypeBase, 85)
	base := f.seedService(t, basePlan, owner)

	_, err := f.svc.DeactivateAddon(context.Background(), domain.DeactivateAddonRequest{
		ActorID:        owner,
		ActorRole:      authdomain.RoleUser,
		AddonServiceID: base.ID.String(),
	})
	require.ErrorIs(t, err, domain.ErrNotAddonService)
}

func TestDeactivateHonorsExplicitDate(t *testing.T) {
	f := newFixture(t)
	owner := f.node.Generate()

	plan := f.seedPlan(t, "Residential Power", plandomain.PlanTypeBase, 85)
	svc := f.seedService(t, plan, owner)

	at := time.Date(2026, 9, 30, 0, 0, 0, 0, time.UTC)
	view, err := f.svc.Deactivate(context.Background(), domain.DeactivateRequest{
		ActorID:          owner,
		ActorRole:        authdomain.RoleUser,
		ID:               svc.ID.String(),
		DeactivationDate: &at,
	})
	require.NoError(t, err)
	require.Equal(t, servicedomain.StatusInactive, view.Status)
	require.NotNil(t, view.EndDate)
	require.True(t, view.EndDate.Equal(at))
}

func TestAddonPlansIncludeNonAdminPlansOfAnyRole(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	roleAssigned := plandomain.Plan{
		ID:             f.node.Generate(),
		Name:           "Priority Support Addon",
		PlanType:       plandomain.PlanTypeAddon,
		ServiceType:    "electricity",
		Charges:        8,
		Status:         plandomain.StatusActive,
		AssignedToRole: authdomain.RoleAdmin,
	}
	require.NoError(t, f.db.Create(&roleAssigned).Error)
	adminOnly := plandomain.Plan{
		ID:             f.node.Generate(),
		Name:           "Internal Metering Addon",
		PlanType:       plandomain.PlanTypeAddon,
		ServiceType:    "electricity",
		Charges:        5,
		Status:         plandomain.StatusActive,
		IsForAdmin:     true,
		AssignedToRole: authdomain.RoleAdmin,
	}
	require.NoError(t, f.db.Create(&adminOnly).Error)

	// Users see every non-admin addon plan, whatever role it is assigned to.
	resp, err := f.svc.AddonPlans(ctx, domain.AddonPlansRequest{
		ActorRole:   authdomain.RoleUser,
		ServiceType: "electricity",
	})
	require.NoError(t, err)
	require.Len(t, resp.Plans, 1)
	require.Equal(t, "Priority Support Addon", resp.Plans[0].Name)

	resp, err = f.svc.AddonPlans(ctx, domain.AddonPlansRequest{
		ActorRole:   authdomain.RoleAdmin,
		ServiceType: "electricity",
	})
	require.NoError(t, err)
	require.Len(t, resp.Plans, 2)
}

func TestAvailablePlansHideOnlyAdminPlansFromUsers(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	current := f.seedPlan(t, "Residential Power", plandomain.PlanTypeBase, 85)
	adminAssigned := plandomain.Plan{
		ID:             f.node.Generate(),
		Name:           "Commercial Power",
		PlanType:       plandomain.PlanTypeBase,
		ServiceType:    "electricity",
		Charges:        140,
		Status:         plandomain.StatusActive,
		AssignedToRole: authdomain.RoleAdmin,
	}
	require.NoError(t, f.db.Create(&adminAssigned).Error)
	adminOnly := plandomain.Plan{
		ID:             f.node.Generate(),
		Name:           "Internal Test Plan",
		PlanType:       plandomain.PlanTypeBase,
		ServiceType:    "electricity",
		Charges:        1,
		Status:         plandomain.StatusActive,
		IsForAdmin:     true,
		AssignedToRole: authdomain.RoleAdmin,
	}
	require.NoError(t, f.db.Create(&adminOnly).Error)

	resp, err := f.svc.AvailablePlans(ctx, domain.AvailablePlansRequest{
		ActorID:       f.node.Generate(),
		ActorRole:     authdomain.RoleUser,
		CurrentPlanID: current.ID.String(),
	})
	require.NoError(t, err)
	require.Len(t, resp.Plans, 1)
	require.Equal(t, "Commercial Power", resp.Plans[0].Name)
}

func TestChangePlanChainsRows(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	owner := f.node.Generate()

	oldPlan := f.seedPlan(t, "Residential Power", plandomain.PlanTypeBase, 85)
	newPlan := f.seedPlan(t, "Residential Power Plus", plandomain.PlanTypeBase, 110)
	current := f.seedService(t, oldPlan, owner)

	view, err := f.svc.ChangePlan(ctx, domain.ChangePlanRequest{
		ActorID:   owner,
		ActorRole: authdomain.RoleUser,
		ServiceID: current.ID.String(),
		NewPlanID: newPlan.ID.String(),
	})
	require.NoError(t, err)
	require.NotEqual(t, current.ID, view.ID)
	require.Equal(t, newPlan.ID, view.PlanID)
	require.Equal(t, 110.0, view.MonthlyCharges)
	require.Equal(t, servicedomain.StatusActive, view.Status)
	require.Nil(t, view.EndDate)

	var old servicedomain.Service
	require.NoError(t, f.db.First(&old, "id = ?", current.ID).Error)
	require.Equal(t, servicedomain.StatusInactive, old.Status)
	require.False(t, old.Active)
	require.NotNil(t, old.EndDate)
}

func TestChangePlanForbiddenForForeignActor(t *testing.T) {
	f := newFixture(t)
	owner := f.node.Generate()
	other := f.node.Generate()

	oldPlan := f.seedPlan(t, "Residential Power", plandomain.PlanTypeBase, 85)
	newPlan := f.seedPlan(t, "Residential Power Plus", plandomain.PlanTypeBase, 110)
	current := f.seedService(t, oldPlan, owner)

	_, err := f.svc.ChangePlan(context.Background(), domain.ChangePlanRequest{
		ActorID:   other,
		ActorRole: authdomain.RoleUser,
		ServiceID: current.ID.String(),
		NewPlanID: newPlan.ID.String(),
	})
	require.ErrorIs(t, err, domain.ErrForbidden)
}

func TestListUsersPaginatesAndScopesToManager(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	owner := f.node.Generate()
	other := f.node.Generate()

	plan := f.seedPlan(t, "Residential Power", plandomain.PlanTypeBase, 85)
	for i := 0; i < 3; i++ {
		f.seedService(t, plan, owner)
	}
	f.seedService(t, plan, other)

	resp, err := f.svc.ListUsers(ctx, domain.ListSubscriptionRequest{
		ActorID:   owner,
		ActorRole: authdomain.RoleUser,
		Page:      pagination.Params{Page: 1, Limit: 2},
	})
	require.NoError(t, err)
	require.Equal(t, int64(3), resp.TotalCount)
	require.Len(t, resp.Subscriptions, 2)

	resp, err = f.svc.ListUsers(ctx, domain.ListSubscriptionRequest{
		ActorID:   owner,
		ActorRole: authdomain.RoleUser,
		Page:      pagination.Params{Page: 2, Limit: 2},
	})
	require.NoError(t, err)
	require.Len(t, resp.Subscriptions, 1)

	// Super admins are not scoped to a manager.
	resp, err = f.svc.ListUsers(ctx, domain.ListSubscriptionRequest{
		ActorID:   f.node.Generate(),
		ActorRole: authdomain.RoleSuperAdmin,
	})
	require.NoError(t, err)
	require.Equal(t, int64(4), resp.TotalCount)
}
