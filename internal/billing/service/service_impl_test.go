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
	"github.com/utilitech/utilicore/internal/billing/domain"
	billingrepo "github.com/utilitech/utilicore/internal/billing/repository"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func newTestService(t *testing.T) (domain.Service, *gorm.DB, *snowflake.Node) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&domain.BillCycle{},
		&domain.BillSchedule{},
		&domain.BillRun{},
		&domain.BilledAccount{},
		&accountdomain.Account{},
	))

	node, err := snowflake.NewNode(1)
	require.NoError(t, err)

	svc := New(Params{
		DB:          db,
		Log:         zap.NewNop(),
		GenID:       node,
		Repo:        billingrepo.Provide(),
		AccountRepo: accountrepo.Provide(),
	})
	return svc, db, node
}

func seedCycle(t *testing.T, db *gorm.DB, node *snowflake.Node) domain.BillCycle {
	t.Helper()
	cycle := domain.BillCycle{
		ID:        node.Generate(),
		Name:      "Monthly",
		Frequency: "monthly",
	}
	require.NoError(t, db.Create(&cycle).Error)
	return cycle
}

func seedAccounts(t *testing.T, db *gorm.DB, node *snowflake.Node, n int) {
	t.Helper()
	for i := 0; i < n; i++ {
		account := accountdomain.Account{
			ID:          node.Generate(),
			ProfileID:   node.Generate(),
			UserID:      node.Generate(),
			AccountName: "Account",
			Status:      "active",
		}
		require.NoError(t, db.Create(&account).Error)
	}
}

func TestCreateScheduleCountsAllAccountsWhenListEmpty(t *testing.T) {
	svc, db, node := newTestService(t)
	ctx := context.Background()
	cycle := seedCycle(t, db, node)
	seedAccounts(t, db, node, 3)

	view, err := svc.CreateSchedule(ctx, domain.CreateScheduleRequest{
		ActorID:     node.Generate(),
		BillCycleID: cycle.ID.String(),
		BillRunName: "August run",
	})
	require.NoError(t, err)
	require.Equal(t, domain.ScheduleStatusPending, view.Status)
	require.Equal(t, 3, view.AccountCount)
	require.Equal(t, "Monthly", view.BillCycleName)

	var run domain.BillRun
	require.NoError(t, db.First(&run, "bill_schedule_id = ?", view.ID).Error)
	require.Equal(t, domain.RunStatusPending, run.Status)
	require.Equal(t, 3, run.TotalAccounts)
	require.Equal(t, 0, run.BillsGenerated)
	require.Equal(t, 0, run.BillsApproved)
}

func TestCreateSchedulePinsExplicitAccountList(t *testing.T) {
	svc, db, node := newTestService(t)
	cycle := seedCycle(t, db, node)
	seedAccounts(t, db, node, 5)

	view, err := svc.CreateSchedule(context.Background(), domain.CreateScheduleRequest{
		ActorID:     node.Generate(),
		BillCycleID: cycle.ID.String(),
		BillRunName: "Targeted run",
		AccountIDs:  []string{node.Generate().String(), node.Generate().String()},
	})
	require.NoError(t, err)
	require.Equal(t, 2, view.AccountCount)
}

func TestCreateScheduleUnknownCycle(t *testing.T) {
	svc, _, node := newTestService(t)

	_, err := svc.CreateSchedule(context.Background(), domain.CreateScheduleRequest{
		ActorID:     node.Generate(),
		BillCycleID: node.Generate().String(),
		BillRunName: "Orphan run",
	})
	require.ErrorIs(t, err, domain.ErrCycleNotFound)
}

func TestUpdateScheduleStatusTransitions(t *testing.T) {
	svc, db, node := newTestService(t)
	ctx := context.Background()
	cycle := seedCycle(t, db, node)

	view, err := svc.CreateSchedule(ctx, domain.CreateScheduleRequest{
		ActorID:     node.Generate(),
		BillCycleID: cycle.ID.String(),
		BillRunName: "Transition run",
	})
	require.NoError(t, err)

	_, err = svc.UpdateScheduleStatus(ctx, domain.UpdateScheduleStatusRequest{
		ID:     view.ID.String(),
		Status: domain.ScheduleStatusCompleted,
	})
	require.ErrorIs(t, err, domain.ErrInvalidTransition)

	updated, err := svc.UpdateScheduleStatus(ctx, domain.UpdateScheduleStatusRequest{
		ID:     view.ID.String(),
		Status: domain.ScheduleStatusProcessing,
	})
	require.NoError(t, err)
	require.Equal(t, domain.ScheduleStatusProcessing, updated.Status)

	updated, err = svc.UpdateScheduleStatus(ctx, domain.UpdateScheduleStatusRequest{
		ID:     view.ID.String(),
		Status: domain.ScheduleStatusCompleted,
	})
	require.NoError(t, err)
	require.Equal(t, domain.ScheduleStatusCompleted, updated.Status)
}

func TestApproveBilledAccountBumpsRunCounter(t *testing.T) {
	svc, db, node := newTestService(t)
	ctx := context.Background()
	cycle := seedCycle(t, db, node)

	view, err := svc.CreateSchedule(ctx, domain.CreateScheduleRequest{
		ActorID:     node.Generate(),
		BillCycleID: cycle.ID.String(),
		BillRunName: "Approval run",
	})
	require.NoError(t, err)

	var run domain.BillRun
	require.NoError(t, db.First(&run, "bill_schedule_id = ?", view.ID).Error)

	billed := domain.BilledAccount{
		ID:        node.Generate(),
		BillRunID: run.ID,
		AccountID: node.Generate(),
		Charges:   97,
		BillDate:  time.Now().UTC(),
		Status:    domain.BilledAccountStatusBilled,
	}
	require.NoError(t, db.Create(&billed).Error)

	approved, err := svc.ApproveBilledAccount(ctx, domain.ApproveBilledAccountRequest{
		ActorID: node.Generate(),
		ID:      billed.ID.String(),
	})
	require.NoError(t, err)
	require.Equal(t, domain.BilledAccountStatusApproved, approved.Status)

	require.NoError(t, db.First(&run, "id = ?", run.ID).Error)
	require.Equal(t, 1, run.BillsApproved)

	// A second approval of the same account advances the counter again.
	_, err = svc.ApproveBilledAccount(ctx, domain.ApproveBilledAccountRequest{
		ActorID: node.Generate(),
		ID:      billed.ID.String(),
	})
	require.NoError(t, err)
	require.NoError(t, db.First(&run, "id = ?", run.ID).Error)
	require.Equal(t, 2, run.BillsApproved)
}

func TestListBilledAccountsByCycle(t *testing.T) {
	svc, db, node := newTestService(t)
	ctx := context.Background()
	cycle := seedCycle(t, db, node)
	otherCycle := domain.BillCycle{ID: node.Generate(), Name: "Quarterly", Frequency: "quarterly"}
	require.NoError(t, db.Create(&otherCycle).Error)

	view, err := svc.CreateSchedule(ctx, domain.CreateScheduleRequest{
		ActorID:     node.Generate(),
		BillCycleID: cycle.ID.String(),
		BillRunName: "Cycle run",
	})
	require.NoError(t, err)

	var run domain.BillRun
	require.NoError(t, db.First(&run, "bill_schedule_id = ?", view.ID).Error)

	billed := domain.BilledAccount{
		ID:        node.Generate(),
		BillRunID: run.ID,
		AccountID: node.Generate(),
		Charges:   42,
		Status:    domain.BilledAccountStatusBilled,
	}
	require.NoError(t, db.Create(&billed).Error)

	resp, err := svc.ListBilledAccounts(ctx, domain.ListBilledAccountRequest{
		BillCycleID: cycle.ID.String(),
	})
	require.NoError(t, err)
	require.Len(t, resp.BilledAccounts, 1)
	require.Equal(t, billed.ID, resp.BilledAccounts[0].ID)

	resp, err = svc.ListBilledAccounts(ctx, domain.ListBilledAccountRequest{
		BillCycleID: otherCycle.ID.String(),
	})
	require.NoError(t, err)
	require.Empty(t, resp.BilledAccounts)
}
