package service

import (
	"context"
	"testing"

	"github.com/bwmarrin/snowflake"
	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	authdomain "github.com/utilitech/utilicore/internal/auth/domain"
	"github.com/utilitech/utilicore/internal/plan/domain"
	planrepo "github.com/utilitech/utilicore/internal/plan/repository"
	sysconfigdomain "github.com/utilitech/utilicore/internal/sysconfig/domain"
	sysconfigrepo "github.com/utilitech/utilicore/internal/sysconfig/repository"
	sysconfigservice "github.com/utilitech/utilicore/internal/sysconfig/service"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func newTestService(t *testing.T) (domain.Service, *snowflake.Node) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&domain.Plan{}, &sysconfigdomain.ConfigEntry{}))

	node, err := snowflake.NewNode(1)
	require.NoError(t, err)

	sysconfigSvc := sysconfigservice.New(sysconfigservice.Params{
		DB:   db,
		Log:  zap.NewNop(),
		Repo: sysconfigrepo.Provide(),
	})
	svc := New(Params{
		DB:        db,
		Log:       zap.NewNop(),
		GenID:     node,
		Repo:      planrepo.Provide(),
		Sysconfig: sysconfigSvc,
	})
	return svc, node
}

func TestCreateComputesDepositFromPlanMultiplier(t *testing.T) {
	svc, node := newTestService(t)
	multiplier := 2.5

	view, err := svc.Create(context.Background(), domain.CreatePlanRequest{
		ActorID:           node.Generate(),
		ActorRole:         authdomain.RoleSuperAdmin,
		Name:              "Residential Power",
		ServiceType:       "electricity",
		Charges:           85,
		DepositMultiplier: &multiplier,
	})
	require.NoError(t, err)
	require.Equal(t, 212.5, view.CalculatedDeposit)
}

func TestCreateFallsBackToDefaultMultiplier(t *testing.T) {
	svc, node := newTestService(t)

	view, err := svc.Create(context.Background(), domain.CreatePlanRequest{
		ActorID:     node.Generate(),
		ActorRole:   authdomain.RoleSuperAdmin,
		Name:        "Water Standard",
		ServiceType: "water",
		Charges:     85,
	})
	require.NoError(t, err)
	require.Equal(t, 170.0, view.CalculatedDeposit)
}

func TestCreateRejectsUnknownServiceType(t *testing.T) {
	svc, node := newTestService(t)

	_, err := svc.Create(context.Background(), domain.CreatePlanRequest{
		ActorID:     node.Generate(),
		ActorRole:   authdomain.RoleSuperAdmin,
		Name:        "Broadband",
		ServiceType: "cable",
	})
	require.ErrorIs(t, err, domain.ErrInvalidServiceType)
}

func TestListFiltersByRole(t *testing.T) {
	svc, node := newTestService(t)
	ctx := context.Background()
	superAdmin := node.Generate()
	admin := node.Generate()

	_, err := svc.Create(ctx, domain.CreatePlanRequest{
		ActorID:        superAdmin,
		ActorRole:      authdomain.RoleSuperAdmin,
		Name:           "User Plan",
		ServiceType:    "electricity",
		AssignedToRole: authdomain.RoleUser,
	})
	require.NoError(t, err)
	_, err = svc.Create(ctx, domain.CreatePlanRequest{
		ActorID:        superAdmin,
		ActorRole:      authdomain.RoleSuperAdmin,
		Name:           "Admin Internal Plan",
		ServiceType:    "electricity",
		IsForAdmin:     true,
		AssignedToRole: authdomain.RoleAdmin,
	})
	require.NoError(t, err)
	_, err = svc.Create(ctx, domain.CreatePlanRequest{
		ActorID:        admin,
		ActorRole:      authdomain.RoleAdmin,
		Name:           "Admin Owned Plan",
		ServiceType:    "water",
		IsForAdmin:     true,
		AssignedToRole: authdomain.RoleAdmin,
	})
	require.NoError(t, err)

	userList, err := svc.List(ctx, domain.ListPlanRequest{
		ActorID:   node.Generate(),
		ActorRole: authdomain.RoleUser,
	})
	require.NoError(t, err)
	require.Len(t, userList.Plans, 1)
	require.Equal(t, "User Plan", userList.Plans[0].Name)

	superList, err := svc.List(ctx, domain.ListPlanRequest{
		ActorID:   superAdmin,
		ActorRole: authdomain.RoleSuperAdmin,
	})
	require.NoError(t, err)
	require.Len(t, superList.Plans, 3)
}

func TestUpdateForbiddenForForeignAdmin(t *testing.T) {
	svc, node := newTestService(t)
	ctx := context.Background()
	owner := node.Generate()
	other := node.Generate()

	created, err := svc.Create(ctx, domain.CreatePlanRequest{
		ActorID:     owner,
		ActorRole:   authdomain.RoleAdmin,
		Name:        "Owned Plan",
		ServiceType: "gas",
	})
	require.NoError(t, err)

	name := "Renamed"
	_, err = svc.Update(ctx, domain.UpdatePlanRequest{
		ActorID:   other,
		ActorRole: authdomain.RoleAdmin,
		ID:        created.ID.String(),
		Name:      &name,
	})
	require.ErrorIs(t, err, domain.ErrForbidden)

	updated, err := svc.Update(ctx, domain.UpdatePlanRequest{
		ActorID:   owner,
		ActorRole: authdomain.RoleAdmin,
		ID:        created.ID.String(),
		Name:      &name,
	})
	require.NoError(t, err)
	require.Equal(t, "Renamed", updated.Name)
}
