package service

import (
	"context"
	"testing"

	"github.com/bwmarrin/snowflake"
	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"github.com/utilitech/utilicore/internal/account/domain"
	accountrepo "github.com/utilitech/utilicore/internal/account/repository"
	authdomain "github.com/utilitech/utilicore/internal/auth/domain"
	profiledomain "github.com/utilitech/utilicore/internal/profile/domain"
	profilerepo "github.com/utilitech/utilicore/internal/profile/repository"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func newTestService(t *testing.T) (domain.Service, *gorm.DB, *snowflake.Node) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&domain.Account{}, &profiledomain.Profile{}))

	node, err := snowflake.NewNode(1)
	require.NoError(t, err)

	svc := New(Params{
		DB:          db,
		Log:         zap.NewNop(),
		GenID:       node,
		Repo:        accountrepo.Provide(),
		ProfileRepo: profilerepo.Provide(),
	})
	return svc, db, node
}

func seedProfile(t *testing.T, db *gorm.DB, node *snowflake.Node) profiledomain.Profile {
	t.Helper()
	profile := profiledomain.Profile{
		ID:     node.Generate(),
		Name:   "Greenfield District",
		Slug:   "greenfield-district",
		Active: true,
	}
	require.NoError(t, db.Create(&profile).Error)
	return profile
}

func TestCreateRequiresExistingProfile(t *testing.T) {
	svc, db, node := newTestService(t)
	ctx := context.Background()
	profile := seedProfile(t, db, node)
	actor := node.Generate()

	_, err := svc.Create(ctx, domain.CreateAccountRequest{
		ActorID:     actor,
		ProfileID:   node.Generate().String(),
		AccountName: "Orphan Account",
	})
	require.ErrorIs(t, err, domain.ErrProfileNotFound)

	account, err := svc.Create(ctx, domain.CreateAccountRequest{
		ActorID:     actor,
		ProfileID:   profile.ID.String(),
		AccountName: "Jordan Tenant Household",
	})
	require.NoError(t, err)
	require.Equal(t, profile.ID, account.ProfileID)
	require.Equal(t, actor, account.UserID)
	require.Equal(t, "active", account.Status)
}

func TestListScopesUsersToOwnAccounts(t *testing.T) {
	svc, db, node := newTestService(t)
	ctx := context.Background()
	profile := seedProfile(t, db, node)
	owner := node.Generate()
	other := node.Generate()

	_, err := svc.Create(ctx, domain.CreateAccountRequest{
		ActorID:     owner,
		ProfileID:   profile.ID.String(),
		AccountName: "Owner Account",
	})
	require.NoError(t, err)
	_, err = svc.Create(ctx, domain.CreateAccountRequest{
		ActorID:     other,
		ProfileID:   profile.ID.String(),
		AccountName: "Other Account",
	})
	require.NoError(t, err)

	resp, err := svc.List(ctx, domain.ListAccountRequest{
		ActorID:   owner,
		ActorRole: authdomain.RoleUser,
	})
	require.NoError(t, err)
	require.Len(t, resp.Accounts, 1)
	require.Equal(t, "Owner Account", resp.Accounts[0].AccountName)

	resp, err = svc.List(ctx, domain.ListAccountRequest{
		ActorID:   node.Generate(),
		ActorRole: authdomain.RoleAdmin,
	})
	require.NoError(t, err)
	require.Len(t, resp.Accounts, 2)
}

func TestGetByIDForbiddenForForeignUser(t *testing.T) {
	svc, db, node := newTestService(t)
	ctx := context.Background()
	profile := seedProfile(t, db, node)
	owner := node.Generate()
	other := node.Generate()

	account, err := svc.Create(ctx, domain.CreateAccountRequest{
		ActorID:     owner,
		ProfileID:   profile.ID.String(),
		AccountName: "Owner Account",
	})
	require.NoError(t, err)

	_, err = svc.GetByID(ctx, domain.GetAccountRequest{
		ActorID:   other,
		ActorRole: authdomain.RoleUser,
		ID:        account.ID.String(),
	})
	require.ErrorIs(t, err, domain.ErrForbidden)

	got, err := svc.GetByID(ctx, domain.GetAccountRequest{
		ActorID:   other,
		ActorRole: authdomain.RoleAdmin,
		ID:        account.ID.String(),
	})
	require.NoError(t, err)
	require.Equal(t, account.ID, got.ID)
}
