package repository

import (
	"context"
	"errors"

	"github.com/bwmarrin/snowflake"
	"github.com/utilitech/utilicore/internal/billing/domain"
	"gorm.io/gorm"
)

type repo struct{}

func Provide() domain.Repository {
	return &repo{}
}

func (r *repo) ListCycles(ctx context.Context, db *gorm.DB) ([]domain.BillCycle, error) {
	var cycles []domain.BillCycle
	err := db.WithContext(ctx).
		Order("created_at asc, id asc").
		Find(&cycles).Error
	if err != nil {
		return nil, err
	}
	return cycles, nil
}

func (r *repo) FindCycleByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*domain.BillCycle, error) {
	var cycle domain.BillCycle
	err := db.WithContext(ctx).First(&cycle, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &cycle, nil
}

func (r *repo) InsertSchedule(ctx context.Context, db *gorm.DB, schedule *domain.BillSchedule) error {
	return db.WithContext(ctx).Create(schedule).Error
}

func (r *repo) UpdateSchedule(ctx context.Context, db *gorm.DB, schedule *domain.BillSchedule) error {
	return db.WithContext(ctx).Save(schedule).Error
}

func (r *repo) FindScheduleByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*domain.BillSchedule, error) {
	var schedule domain.BillSchedule
	err := db.WithContext(ctx).First(&schedule, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &schedule, nil
}

func (r *repo) ListSchedules(ctx context.Context, db *gorm.DB) ([]domain.BillSchedule, error) {
	var schedules []domain.BillSchedule
	err := db.WithContext(ctx).
		Order("created_at desc, id desc").
		Find(&schedules).Error
	if err != nil {
		return nil, err
	}
	return schedules, nil
}

func (r *repo) InsertRun(ctx context.Context, db *gorm.DB, run *domain.BillRun) error {
	return db.WithContext(ctx).Create(run).Error
}

func (r *repo) UpdateRun(ctx context.Context, db *gorm.DB, run *domain.BillRun) error {
	return db.WithContext(ctx).Save(run).Error
}

func (r *repo) FindRunByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*domain.BillRun, error) {
	var run domain.BillRun
	err := db.WithContext(ctx).First(&run, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &run, nil
}

func (r *repo) ListRuns(ctx context.Context, db *gorm.DB, filter domain.ListRunFilter) ([]domain.BillRun, error) {
	stmt := db.WithContext(ctx).Model(&domain.BillRun{})
	if filter.BillCycleID != 0 {
		stmt = stmt.Where("bill_cycle_id = ?", filter.BillCycleID)
	}
	if filter.RunID != 0 {
		stmt = stmt.Where("id = ?", filter.RunID)
	}
	if filter.Status != "" {
		stmt = stmt.Where("status = ?", filter.Status)
	}

	var runs []domain.BillRun
	err := stmt.
		Order("created_at desc, id desc").
		Find(&runs).Error
	if err != nil {
		return nil, err
	}
	return runs, nil
}

func (r *repo) UpdateBilledAccount(ctx context.Context, db *gorm.DB, account *domain.BilledAccount) error {
	return db.WithContext(ctx).Save(account).Error
}

func (r *repo) FindBilledAccountByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*domain.BilledAccount, error) {
	var account domain.BilledAccount
	err := db.WithContext(ctx).First(&account, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &account, nil
}

func (r *repo) ListBilledAccounts(ctx context.Context, db *gorm.DB, filter domain.ListBilledAccountFilter) ([]domain.BilledAccount, error) {
	stmt := db.WithContext(ctx).Model(&domain.BilledAccount{})
	if filter.BillRunID != 0 {
		stmt = stmt.Where("bill_run_id = ?", filter.BillRunID)
	}
	if len(filter.BillRunIDs) > 0 {
		stmt = stmt.Where("bill_run_id IN ?", filter.BillRunIDs)
	}
	if filter.AccountID != 0 {
		stmt = stmt.Where("account_id = ?", filter.AccountID)
	}

	var accounts []domain.BilledAccount
	err := stmt.
		Order("created_at desc, id desc").
		Find(&accounts).Error
	if err != nil {
		return nil, err
	}
	return accounts, nil
}
