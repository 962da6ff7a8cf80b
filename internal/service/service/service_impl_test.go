package service

import (
	"context"
	"testing"

	"github.com/bwmarrin/snowflake"
	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	accountdomain "github.com/utilitech/utilicore/internal/account/domain"
	accountrepo "github.com/utilitech/utilicore/internal/account/repository"
	authdomain "github.com/utilitech/utilicore/internal/auth/domain"
	plandomain "github.com/utilitech/utilicore/internal/plan/domain"
	planrepo "github.com/utilitech/utilicore/internal/plan/repository"
	"github.com/utilitech/utilicore/internal/service/domain"
	servicerepo "github.com/utilitech/utilicore/internal/service/repository"
	sysconfigdomain "github.com/utilitech/utilicore/internal/sysconfig/domain"
	sysconfigrepo "github.com/utilitech/utilicore/internal/sysconfig/repository"
	sysconfigservice "github.com/utilitech/utilicore/internal/sysconfig/service"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func newTestManager(t *testing.T) (domain.Manager, *gorm.DB, *snowflake.Node) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&domain.Service{},
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
	mgr := New(Params{
		DB:          db,
		Log:         zap.NewNop(),
		GenID:       node,
		Repo:        servicerepo.Provide(),
		AccountRepo: accountrepo.Provide(),
		PlanRepo:    planrepo.Provide(),
		Sysconfig:   sysconfigSvc,
	})
	return mgr, db, node
}

func seedAccount(t *testing.T, db *gorm.DB, node *snowflake.Node, userID snowflake.ID) accountdomain.Account {
	t.Helper()
	account := accountdomain.Account{
		ID:          node.Generate(),
		ProfileID:   node.Generate(),
		UserID:      userID,
		AccountName: "Jordan Tenant Household",
		Status:      "active",
	}
	require.NoError(t, db.Create(&account).Error)
	return account
}

func seedPlan(t *testing.T, db *gorm.DB, node *snowflake.Node) plandomain.Plan {
	t.Helper()
	plan := plandomain.Plan{
		ID:          node.Generate(),
		Name:        "Residential Power",
		PlanType:    plandomain.PlanTypeBase,
		ServiceType: "electricity",
		Charges:     85,
		Status:      plandomain.StatusActive,
	}
	require.NoError(t, db.Create(&plan).Error)
	return plan
}

func TestCreateDefaultsFromPlan(t *testing.T) {
	mgr, db, node := newTestManager(t)
	ctx := context.Background()
	owner := node.Generate()
	account := seedAccount(t, db, node, owner)
	plan := seedPlan(t, db, node)

	view, err := mgr.Create(ctx, domain.CreateServiceRequest{
		ActorID:   owner,
		ActorRole: authdomain.RoleUser,
		AccountID: account.ID.String(),
		PlanID:    plan.ID.String(),
		Name:      "Elm Street Electricity",
	})
	require.NoError(t, err)
	require.Equal(t, "electricity", view.ServiceType)
	require.Equal(t, 85.0, view.MonthlyCharges)
	require.Equal(t, domain.CategoryUser, view.Category)
	require.Equal(t, domain.StatusActive, view.Status)
	require.Equal(t, owner, view.ManagedBy)
	require.NotNil(t, view.Plan)
	require.Equal(t, 170.0, view.Plan.CalculatedDeposit)
}

func TestCreateForbiddenOnForeignAccount(t *testing.T) {
	mgr, db, node := newTestManager(t)
	account := seedAccount(t, db, node, node.Generate())
	plan := seedPlan(t, db, node)

	_, err := mgr.Create(context.Background(), domain.CreateServiceRequest{
		ActorID:   node.Generate(),
		ActorRole: authdomain.RoleUser,
		AccountID: account.ID.String(),
		PlanID:    plan.ID.String(),
		Name:      "Elm Street Electricity",
	})
	require.ErrorIs(t, err, domain.ErrForbidden)
}

func TestCreateAddonRequiresExistingParent(t *testing.T) {
	mgr, db, node := newTestManager(t)
	ctx := context.Background()
	owner := node.Generate()
	account := seedAccount(t, db, node, owner)
	plan := seedPlan(t, db, node)

	_, err := mgr.Create(ctx, domain.CreateServiceRequest{
		ActorID:         owner,
		ActorRole:       authdomain.RoleUser,
		AccountID:       account.ID.String(),
		PlanID:          plan.ID.String(),
		Name:            "Orphan Addon",
		IsAddon:         true,
		ParentServiceID: node.Generate().String(),
	})
	require.ErrorIs(t, err, domain.ErrInvalidParentService)

	base, err := mgr.Create(ctx, domain.CreateServiceRequest{
		ActorID:   owner,
		ActorRole: authdomain.RoleUser,
		AccountID: account.ID.String(),
		PlanID:    plan.ID.String(),
		Name:      "Elm Street Electricity",
	})
	require.NoError(t, err)

	addon, err := mgr.Create(ctx, domain.CreateServiceRequest{
		ActorID:         owner,
		ActorRole:       authdomain.RoleUser,
		AccountID:       account.ID.String(),
		PlanID:          plan.ID.String(),
		Name:            "Green Energy Addon",
		IsAddon:         true,
		ParentServiceID: base.ID.String(),
	})
	require.NoError(t, err)
	require.True(t, addon.IsAddon)
	require.NotNil(t, addon.ParentServiceID)
	require.Equal(t, base.ID, *addon.ParentServiceID)
}

func TestUpdateStampsEndDateOnDeactivation(t *testing.T) {
	mgr, db, node := newTestManager(t)
	ctx := context.Background()
	owner := node.Generate()
	account := seedAccount(t, db, node, owner)
	plan := seedPlan(t, db, node)

	created, err := mgr.Create(ctx, domain.CreateServiceRequest{
		ActorID:   owner,
		ActorRole: authdomain.RoleUser,
		AccountID: account.ID.String(),
		PlanID:    plan.ID.String(),
		Name:      "Elm Street Electricity",
	})
	require.NoError(t, err)

	inactive := domain.StatusInactive
	updated, err := mgr.Update(ctx, domain.UpdateServiceRequest{
		ActorID:   owner,
		ActorRole: authdomain.RoleUser,
		ID:        created.ID.String(),
		Status:    &inactive,
	})
	require.NoError(t, err)
	require.Equal(t, domain.StatusInactive, updated.Status)
	require.NotNil(t, updated.EndDate)
}
