package service

import (
	"context"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	accountdomain "github.com/utilitech/utilicore/internal/account/domain"
	"github.com/utilitech/utilicore/internal/billing/domain"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Params struct {
	fx.In

	DB          *gorm.DB
	Log         *zap.Logger
	GenID       *snowflake.Node
	Repo        domain.Repository
	AccountRepo accountdomain.Repository
}

type Service struct {
	db          *gorm.DB
	log         *zap.Logger
	genID       *snowflake.Node
	repo        domain.Repository
	accountRepo accountdomain.Repository
}

func New(p Params) domain.Service {
	return &Service{
		db:          p.DB,
		log:         p.Log.Named("billing.service"),
		genID:       p.GenID,
		repo:        p.Repo,
		accountRepo: p.AccountRepo,
	}
}

func (s *Service) ListCycles(ctx context.Context) (domain.ListCycleResponse, error) {
	cycles, err := s.repo.ListCycles(ctx, s.db)
	if err != nil {
		return domain.ListCycleResponse{}, err
	}
	return domain.ListCycleResponse{Cycles: cycles}, nil
}

func (s *Service) CreateSchedule(ctx context.Context, req domain.CreateScheduleRequest) (domain.ScheduleView, error) {
	runName := strings.TrimSpace(req.BillRunName)
	if runName == "" {
		return domain.ScheduleView{}, domain.ErrInvalidRunName
	}

	cycleID, err := snowflake.ParseString(strings.TrimSpace(req.BillCycleID))
	if err != nil || cycleID == 0 {
		return domain.ScheduleView{}, domain.ErrInvalidID
	}
	cycle, err := s.repo.FindCycleByID(ctx, s.db, cycleID)
	if err != nil {
		return domain.ScheduleView{}, err
	}
	if cycle == nil {
		return domain.ScheduleView{}, domain.ErrCycleNotFound
	}

	// An explicit account list pins the count; an empty list means every
	// account on record at creation time.
	accountCount := len(req.AccountIDs)
	if accountCount == 0 {
		total, err := s.accountRepo.Count(ctx, s.db)
		if err != nil {
			return domain.ScheduleView{}, err
		}
		accountCount = int(total)
	}

	now := time.Now().UTC()
	billDate := now
	if req.BillDate != nil {
		billDate = *req.BillDate
	}

	schedule := domain.BillSchedule{
		ID:           s.genID.Generate(),
		BillCycleID:  cycleID,
		BillRunName:  runName,
		BillDate:     billDate,
		Status:       domain.ScheduleStatusPending,
		AccountCount: accountCount,
		CreatedBy:    req.ActorID,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.repo.InsertSchedule(ctx, s.db, &schedule); err != nil {
		return domain.ScheduleView{}, err
	}

	// The run is created alongside the schedule. If this insert fails the
	// schedule row stays behind without a run; there is no compensation.
	run := domain.BillRun{
		ID:             s.genID.Generate(),
		BillScheduleID: schedule.ID,
		BillCycleID:    cycleID,
		RunName:        runName,
		RunDate:        billDate,
		Status:         domain.RunStatusPending,
		TotalAccounts:  accountCount,
		BillsGenerated: 0,
		BillsApproved:  0,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if err := s.repo.InsertRun(ctx, s.db, &run); err != nil {
		return domain.ScheduleView{}, err
	}

	s.log.Info("bill schedule created",
		zap.String("schedule_id", schedule.ID.String()),
		zap.String("run_id", run.ID.String()),
		zap.Int("account_count", accountCount))

	return domain.ScheduleView{BillSchedule: schedule, BillCycleName: cycle.Name}, nil
}

func (s *Service) ListSchedules(ctx context.Context) (domain.ListScheduleResponse, error) {
	schedules, err := s.repo.ListSchedules(ctx, s.db)
	if err != nil {
		return domain.ListScheduleResponse{}, err
	}
	names, err := s.cycleNames(ctx)
	if err != nil {
		return domain.ListScheduleResponse{}, err
	}

	views := make([]domain.ScheduleView, 0, len(schedules))
	for _, schedule := range schedules {
		views = append(views, domain.ScheduleView{
			BillSchedule:  schedule,
			BillCycleName: names[schedule.BillCycleID],
		})
	}
	return domain.ListScheduleResponse{Schedules: views}, nil
}

func (s *Service) UpdateScheduleStatus(ctx context.Context, req domain.UpdateScheduleStatusRequest) (domain.ScheduleView, error) {
	id, err := snowflake.ParseString(strings.TrimSpace(req.ID))
	if err != nil || id == 0 {
		return domain.ScheduleView{}, domain.ErrInvalidID
	}
	status := strings.TrimSpace(req.Status)
	if status == "" {
		return domain.ScheduleView{}, domain.ErrInvalidStatus
	}

	schedule, err := s.repo.FindScheduleByID(ctx, s.db, id)
	if err != nil {
		return domain.ScheduleView{}, err
	}
	if schedule == nil {
		return domain.ScheduleView{}, domain.ErrNotFound
	}
	if !domain.CanTransitionSchedule(schedule.Status, status) {
		return domain.ScheduleView{}, domain.ErrInvalidTransition
	}

	schedule.Status = status
	schedule.UpdatedAt = time.Now().UTC()
	if err := s.repo.UpdateSchedule(ctx, s.db, schedule); err != nil {
		return domain.ScheduleView{}, err
	}

	cycle, err := s.repo.FindCycleByID(ctx, s.db, schedule.BillCycleID)
	if err != nil {
		return domain.ScheduleView{}, err
	}
	view := domain.ScheduleView{BillSchedule: *schedule}
	if cycle != nil {
		view.BillCycleName = cycle.Name
	}
	return view, nil
}

func (s *Service) ListRuns(ctx context.Context, req domain.ListRunRequest) (domain.ListRunResponse, error) {
	filter := domain.ListRunFilter{Status: strings.TrimSpace(req.Status)}
	if raw := strings.TrimSpace(req.BillCycleID); raw != "" {
		cycleID, err := snowflake.ParseString(raw)
		if err != nil || cycleID == 0 {
			return domain.ListRunResponse{}, domain.ErrInvalidID
		}
		filter.BillCycleID = cycleID
	}
	if raw := strings.TrimSpace(req.BillRunID); raw != "" {
		runID, err := snowflake.ParseString(raw)
		if err != nil || runID == 0 {
			return domain.ListRunResponse{}, domain.ErrInvalidID
		}
		filter.RunID = runID
	}

	runs, err := s.repo.ListRuns(ctx, s.db, filter)
	if err != nil {
		return domain.ListRunResponse{}, err
	}
	names, err := s.cycleNames(ctx)
	if err != nil {
		return domain.ListRunResponse{}, err
	}

	views := make([]domain.RunView, 0, len(runs))
	for _, run := range runs {
		views = append(views, domain.RunView{
			BillRun:       run,
			BillCycleName: names[run.BillCycleID],
		})
	}
	return domain.ListRunResponse{Runs: views}, nil
}

func (s *Service) UpdateRunStatus(ctx context.Context, req domain.UpdateRunStatusRequest) (domain.RunView, error) {
	id, err := snowflake.ParseString(strings.TrimSpace(req.ID))
	if err != nil || id == 0 {
		return domain.RunView{}, domain.ErrInvalidID
	}
	status := strings.TrimSpace(req.Status)
	if status == "" {
		return domain.RunView{}, domain.ErrInvalidStatus
	}

	run, err := s.repo.FindRunByID(ctx, s.db, id)
	if err != nil {
		return domain.RunView{}, err
	}
	if run == nil {
		return domain.RunView{}, domain.ErrNotFound
	}
	if !domain.CanTransitionRun(run.Status, status) {
		return domain.RunView{}, domain.ErrInvalidTransition
	}

	run.Status = status
	run.UpdatedAt = time.Now().UTC()
	if err := s.repo.UpdateRun(ctx, s.db, run); err != nil {
		return domain.RunView{}, err
	}

	cycle, err := s.repo.FindCycleByID(ctx, s.db, run.BillCycleID)
	if err != nil {
		return domain.RunView{}, err
	}
	view := domain.RunView{BillRun: *run}
	if cycle != nil {
		view.BillCycleName = cycle.Name
	}
	return view, nil
}

func (s *Service) ListBilledAccounts(ctx context.Context, req domain.ListBilledAccountRequest) (domain.ListBilledAccountResponse, error) {
	var filter domain.ListBilledAccountFilter
	if raw := strings.TrimSpace(req.BillRunID); raw != "" {
		runID, err := snowflake.ParseString(raw)
		if err != nil || runID == 0 {
			return domain.ListBilledAccountResponse{}, domain.ErrInvalidID
		}
		filter.BillRunID = runID
	}
	if raw := strings.TrimSpace(req.AccountID); raw != "" {
		accountID, err := snowflake.ParseString(raw)
		if err != nil || accountID == 0 {
			return domain.ListBilledAccountResponse{}, domain.ErrInvalidID
		}
		filter.AccountID = accountID
	}

	// A cycle filter resolves through the cycle's runs.
	if raw := strings.TrimSpace(req.BillCycleID); raw != "" {
		cycleID, err := snowflake.ParseString(raw)
		if err != nil || cycleID == 0 {
			return domain.ListBilledAccountResponse{}, domain.ErrInvalidID
		}
		runs, err := s.repo.ListRuns(ctx, s.db, domain.ListRunFilter{BillCycleID: cycleID})
		if err != nil {
			return domain.ListBilledAccountResponse{}, err
		}
		if len(runs) == 0 {
			return domain.ListBilledAccountResponse{BilledAccounts: []domain.BilledAccount{}}, nil
		}
		for _, run := range runs {
			filter.BillRunIDs = append(filter.BillRunIDs, run.ID)
		}
	}

	accounts, err := s.repo.ListBilledAccounts(ctx, s.db, filter)
	if err != nil {
		return domain.ListBilledAccountResponse{}, err
	}
	return domain.ListBilledAccountResponse{BilledAccounts: accounts}, nil
}

func (s *Service) ApproveBilledAccount(ctx context.Context, req domain.ApproveBilledAccountRequest) (domain.BilledAccount, error) {
	id, err := snowflake.ParseString(strings.TrimSpace(req.ID))
	if err != nil || id == 0 {
		return domain.BilledAccount{}, domain.ErrInvalidID
	}

	account, err := s.repo.FindBilledAccountByID(ctx, s.db, id)
	if err != nil {
		return domain.BilledAccount{}, err
	}
	if account == nil {
		return domain.BilledAccount{}, domain.ErrNotFound
	}

	// Approval is not idempotent: each call bumps the run counter even when
	// the account was already approved.
	now := time.Now().UTC()
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		account.Status = domain.BilledAccountStatusApproved
		account.UpdatedAt = now
		if err := s.repo.UpdateBilledAccount(ctx, tx, account); err != nil {
			return err
		}

		run, err := s.repo.FindRunByID(ctx, tx, account.BillRunID)
		if err != nil {
			return err
		}
		if run != nil {
			run.BillsApproved++
			run.UpdatedAt = now
			if err := s.repo.UpdateRun(ctx, tx, run); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return domain.BilledAccount{}, err
	}
	return *account, nil
}

func (s *Service) cycleNames(ctx context.Context) (map[snowflake.ID]string, error) {
	cycles, err := s.repo.ListCycles(ctx, s.db)
	if err != nil {
		return nil, err
	}
	names := make(map[snowflake.ID]string, len(cycles))
	for _, cycle := range cycles {
		names[cycle.ID] = cycle.Name
	}
	return names, nil
}
