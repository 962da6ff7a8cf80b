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
	"github.com/utilitech/utilicore/internal/invoice/domain"
	invoicerepo "github.com/utilitech/utilicore/internal/invoice/repository"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func newTestService(t *testing.T) (domain.Service, *gorm.DB, *snowflake.Node) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&domain.Invoice{}, &accountdomain.Account{}))

	node, err := snowflake.NewNode(1)
	require.NoError(t, err)

	svc := New(Params{
		DB:          db,
		Log:         zap.NewNop(),
		GenID:       node,
		Repo:        invoicerepo.Provide(),
		AccountRepo: accountrepo.Provide(),
	})
	return svc, db, node
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

func TestCreateNumbersInvoicesSequentially(t *testing.T) {
	svc, db, node := newTestService(t)
	ctx := context.Background()
	account := seedAccount(t, db, node, node.Generate())
	actor := node.Generate()

	items := []domain.InvoiceItem{{Description: "Electricity", Quantity: 1, UnitPrice: 85}}

	first, err := svc.Create(ctx, domain.CreateInvoiceRequest{
		ActorID:   actor,
		AccountID: account.ID.String(),
		Items:     items,
	})
	require.NoError(t, err)
	require.Equal(t, "INV-000001", first.InvoiceNumber)
	require.Equal(t, domain.StatusDraft, first.Status)

	second, err := svc.Create(ctx, domain.CreateInvoiceRequest{
		ActorID:   actor,
		AccountID: account.ID.String(),
		Items:     items,
	})
	require.NoError(t, err)
	require.Equal(t, "INV-000002", second.InvoiceNumber)
}

func TestCreateComputesTotals(t *testing.T) {
	svc, db, node := newTestService(t)
	account := seedAccount(t, db, node, node.Generate())

	invoice, err := svc.Create(context.Background(), domain.CreateInvoiceRequest{
		ActorID:   node.Generate(),
		AccountID: account.ID.String(),
		Items: []domain.InvoiceItem{
			{Description: "Electricity", Quantity: 2, UnitPrice: 50},
			{Description: "Setup fee", Amount: 25},
		},
		TaxRate:        10,
		DiscountAmount: 5,
	})
	require.NoError(t, err)
	require.Equal(t, 125.0, invoice.Subtotal)
	require.Equal(t, 12.5, invoice.TaxAmount)
	require.Equal(t, 132.5, invoice.TotalAmount)
}

func TestCreateRejectsEmptyItems(t *testing.T) {
	svc, db, node := newTestService(t)
	account := seedAccount(t, db, node, node.Generate())

	_, err := svc.Create(context.Background(), domain.CreateInvoiceRequest{
		ActorID:   node.Generate(),
		AccountID: account.ID.String(),
	})
	require.ErrorIs(t, err, domain.ErrInvalidItems)
}

func TestListScopesUsersToOwnAccounts(t *testing.T) {
	svc, db, node := newTestService(t)
	ctx := context.Background()
	owner := node.Generate()
	ownAccount := seedAccount(t, db, node, owner)
	otherAccount := seedAccount(t, db, node, node.Generate())
	actor := node.Generate()

	items := []domain.InvoiceItem{{Description: "Electricity", Amount: 85}}
	_, err := svc.Create(ctx, domain.CreateInvoiceRequest{ActorID: actor, AccountID: ownAccount.ID.String(), Items: items})
	require.NoError(t, err)
	_, err = svc.Create(ctx, domain.CreateInvoiceRequest{ActorID: actor, AccountID: otherAccount.ID.String(), Items: items})
	require.NoError(t, err)

	resp, err := svc.List(ctx, domain.ListInvoiceRequest{
		ActorID:   owner,
		ActorRole: authdomain.RoleUser,
	})
	require.NoError(t, err)
	require.Len(t, resp.Invoices, 1)
	require.Equal(t, ownAccount.ID, resp.Invoices[0].AccountID)

	resp, err = svc.List(ctx, domain.ListInvoiceRequest{
		ActorID:   node.Generate(),
		ActorRole: authdomain.RoleAdmin,
	})
	require.NoError(t, err)
	require.Len(t, resp.Invoices, 2)
}

func TestGetByIDForbiddenForForeignUser(t *testing.T) {
	svc, db, node := newTestService(t)
	ctx := context.Background()
	owner := node.Generate()
	account := seedAccount(t, db, node, owner)

	invoice, err := svc.Create(ctx, domain.CreateInvoiceRequest{
		ActorID:   node.Generate(),
		AccountID: account.ID.String(),
		Items:     []domain.InvoiceItem{{Description: "Electricity", Amount: 85}},
	})
	require.NoError(t, err)

	_, err = svc.GetByID(ctx, domain.GetInvoiceRequest{
		ActorID:   node.Generate(),
		ActorRole: authdomain.RoleUser,
		ID:        invoice.ID.String(),
	})
	require.ErrorIs(t, err, domain.ErrForbidden)

	got, err := svc.GetByID(ctx, domain.GetInvoiceRequest{
		ActorID:   owner,
		ActorRole: authdomain.RoleUser,
		ID:        invoice.ID.String(),
	})
	require.NoError(t, err)
	require.Equal(t, invoice.ID, got.ID)
}
