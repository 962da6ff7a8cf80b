package authorization

import (
	"context"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func newTestService(t *testing.T) Service {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	enforcer, err := NewEnforcer(db)
	require.NoError(t, err)

	return NewService(Params{Log: zap.NewNop(), Enforcer: enforcer})
}

func TestAuthorizeRoleGrants(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	require.NoError(t, svc.Authorize(ctx, "user", ObjectPlan, ActionView))
	require.NoError(t, svc.Authorize(ctx, "admin", ObjectBilling, ActionApprove))
	require.NoError(t, svc.Authorize(ctx, "super_admin", ObjectSystemConfig, ActionManage))
}

func TestAuthorizeDenies(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	require.ErrorIs(t, svc.Authorize(ctx, "user", ObjectBilling, ActionCreate), ErrForbidden)
	require.ErrorIs(t, svc.Authorize(ctx, "admin", ObjectSystemConfig, ActionView), ErrForbidden)
	require.ErrorIs(t, svc.Authorize(ctx, "user", ObjectUser, ActionManage), ErrForbidden)
}

func TestAuthorizeCaseInsensitiveRole(t *testing.T) {
	svc := newTestService(t)

	require.NoError(t, svc.Authorize(context.Background(), "User", ObjectPlan, ActionView))
}

func TestAuthorizeRejectsEmptyInputs(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	require.ErrorIs(t, svc.Authorize(ctx, "", ObjectPlan, ActionView), ErrInvalidRole)
	require.ErrorIs(t, svc.Authorize(ctx, "user", "", ActionView), ErrInvalidObject)
	require.ErrorIs(t, svc.Authorize(ctx, "user", ObjectPlan, ""), ErrInvalidAction)
}
