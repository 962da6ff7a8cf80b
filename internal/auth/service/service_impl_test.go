package service

import (
	"context"
	"testing"

	"github.com/bwmarrin/snowflake"
	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"github.com/utilitech/utilicore/internal/auth/domain"
	authrepo "github.com/utilitech/utilicore/internal/auth/repository"
	"github.com/utilitech/utilicore/internal/auth/token"
	"github.com/utilitech/utilicore/internal/config"
	profiledomain "github.com/utilitech/utilicore/internal/profile/domain"
	profilerepo "github.com/utilitech/utilicore/internal/profile/repository"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func newTestService(t *testing.T) (domain.Service, *token.Issuer, *gorm.DB) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&domain.User{}, &profiledomain.Profile{}))

	node, err := snowflake.NewNode(1)
	require.NoError(t, err)

	issuer := token.NewIssuer(config.Config{AuthJWTSecret: "test-secret"})
	svc := New(Params{
		DB:          db,
		Log:         zap.NewNop(),
		GenID:       node,
		Repo:        authrepo.Provide(),
		ProfileRepo: profilerepo.Provide(),
		Tokens:      issuer,
	})
	return svc, issuer, db
}

func TestRegisterAndLogin(t *testing.T) {
	svc, issuer, _ := newTestService(t)
	ctx := context.Background()

	user, err := svc.Register(ctx, domain.RegisterRequest{
		Email:    "Jordan@Example.com",
		Password: "hunter2",
		Name:     "Jordan Tenant",
	})
	require.NoError(t, err)
	require.Equal(t, "jordan@example.com", user.Email)
	require.Equal(t, domain.RoleUser, user.Role)
	require.True(t, user.Active)
	require.NotEqual(t, "hunter2", user.PasswordHash)

	resp, err := svc.Login(ctx, domain.LoginRequest{
		Email:    "jordan@example.com",
		Password: "hunter2",
	})
	require.NoError(t, err)
	require.Equal(t, "bearer", resp.TokenType)
	require.Equal(t, user.ID, resp.User.ID)

	subject, err := issuer.Parse(resp.AccessToken)
	require.NoError(t, err)
	require.Equal(t, user.ID, subject)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx := context.Background()

	_, err := svc.Register(ctx, domain.RegisterRequest{
		Email:    "dup@example.com",
		Password: "hunter2",
		Name:     "First",
	})
	require.NoError(t, err)

	_, err = svc.Register(ctx, domain.RegisterRequest{
		Email:    "DUP@example.com",
		Password: "other",
		Name:     "Second",
	})
	require.ErrorIs(t, err, domain.ErrUserExists)
}

func TestRegisterRejectsBadRole(t *testing.T) {
	svc, _, _ := newTestService(t)

	_, err := svc.Register(context.Background(), domain.RegisterRequest{
		Email:    "role@example.com",
		Password: "hunter2",
		Name:     "Role Tester",
		Role:     "owner",
	})
	require.ErrorIs(t, err, domain.ErrInvalidRole)
}

func TestLoginWrongPassword(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx := context.Background()

	_, err := svc.Register(ctx, domain.RegisterRequest{
		Email:    "jordan@example.com",
		Password: "hunter2",
		Name:     "Jordan Tenant",
	})
	require.NoError(t, err)

	_, err = svc.Login(ctx, domain.LoginRequest{
		Email:    "jordan@example.com",
		Password: "wrong",
	})
	require.ErrorIs(t, err, domain.ErrInvalidCredentials)
}

func TestLoginDisabledUser(t *testing.T) {
	svc, _, db := newTestService(t)
	ctx := context.Background()

	user, err := svc.Register(ctx, domain.RegisterRequest{
		Email:    "jordan@example.com",
		Password: "hunter2",
		Name:     "Jordan Tenant",
	})
	require.NoError(t, err)

	err = db.Model(&domain.User{}).
		Where("id = ?", user.ID).
		Update("active", false).Error
	require.NoError(t, err)

	_, err = svc.Login(ctx, domain.LoginRequest{
		Email:    "jordan@example.com",
		Password: "hunter2",
	})
	require.ErrorIs(t, err, domain.ErrInvalidCredentials)
}

func TestResolveUser(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx := context.Background()

	user, err := svc.Register(ctx, domain.RegisterRequest{
		Email:    "jordan@example.com",
		Password: "hunter2",
		Name:     "Jordan Tenant",
	})
	require.NoError(t, err)

	resp, err := svc.Login(ctx, domain.LoginRequest{
		Email:    "jordan@example.com",
		Password: "hunter2",
	})
	require.NoError(t, err)

	resolved, err := svc.ResolveUser(ctx, domain.ResolveUserRequest{Token: resp.AccessToken})
	require.NoError(t, err)
	require.Equal(t, user.ID, resolved.ID)

	_, err = svc.ResolveUser(ctx, domain.ResolveUserRequest{Token: "not-a-token"})
	require.ErrorIs(t, err, domain.ErrInvalidCredentials)
}
