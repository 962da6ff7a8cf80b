package domain

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"
)

type ListRunFilter struct {
	BillCycleID snowflake.ID
	RunID       snowflake.ID
	Status      string
}

type ListBilledAccountFilter struct {
	BillRunID  snowflake.ID
	BillRunIDs []snowflake.ID
	AccountID  snowflake.ID
}

type Repository interface {
	ListCycles(ctx context.Context, db *gorm.DB) ([]BillCycle, error)
	FindCycleByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*BillCycle, error)

	InsertSchedule(ctx context.Context, db *gorm.DB, schedule *BillSchedule) error
	UpdateSchedule(ctx context.Context, db *gorm.DB, schedule *BillSchedule) error
	FindScheduleByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*BillSchedule, error)
	ListSchedules(ctx context.Context, db *gorm.DB) ([]BillSchedule, error)

	InsertRun(ctx context.Context, db *gorm.DB, run *BillRun) error
	UpdateRun(ctx context.Context, db *gorm.DB, run *BillRun) error
	FindRunByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*BillRun, error)
	ListRuns(ctx context.Context, db *gorm.DB, filter ListRunFilter) ([]BillRun, error)

	UpdateBilledAccount(ctx context.Context, db *gorm.DB, account *BilledAccount) error
	FindBilledAccountByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*BilledAccount, error)
	ListBilledAccounts(ctx context.Context, db *gorm.DB, filter ListBilledAccountFilter) ([]BilledAccount, error)
}
