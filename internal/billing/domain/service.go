package domain

import (
	"context"
	"errors"
	"time"

	"github.com/bwmarrin/snowflake"
)

type CreateScheduleRequest struct {
	ActorID snowflake.ID

	BillCycleID string
	BillRunName string
	BillDate    *time.Time
	AccountIDs  []string
}

type ListRunRequest struct {
	BillCycleID string
	BillRunID   string
	Status      string
}

type ListBilledAccountRequest struct {
	BillCycleID string
	BillRunID   string
	AccountID   string
}

type ApproveBilledAccountRequest struct {
	ActorID snowflake.ID
	ID      string
}

type UpdateScheduleStatusRequest struct {
	ID     string
	Status string
}

type UpdateRunStatusRequest struct {
	ID     string
	Status string
}

type ListCycleResponse struct {
	Cycles []BillCycle `json:"cycles"`
}

type ListScheduleResponse struct {
	Schedules []ScheduleView `json:"schedules"`
}

type ListRunResponse struct {
	Runs []RunView `json:"runs"`
}

type ListBilledAccountResponse struct {
	BilledAccounts []BilledAccount `json:"billed_accounts"`
}

type Service interface {
	ListCycles(context.Context) (ListCycleResponse, error)
	CreateSchedule(context.Context, CreateScheduleRequest) (ScheduleView, error)
	ListSchedules(context.Context) (ListScheduleResponse, error)
	UpdateScheduleStatus(context.Context, UpdateScheduleStatusRequest) (ScheduleView, error)
	ListRuns(context.Context, ListRunRequest) (ListRunResponse, error)
	UpdateRunStatus(context.Context, UpdateRunStatusRequest) (RunView, error)
	ListBilledAccounts(context.Context, ListBilledAccountRequest) (ListBilledAccountResponse, error)
	ApproveBilledAccount(context.Context, ApproveBilledAccountRequest) (BilledAccount, error)
}

var (
	ErrInvalidID         = errors.New("invalid_id")
	ErrInvalidRunName    = errors.New("invalid_run_name")
	ErrInvalidStatus     = errors.New("invalid_status")
	ErrInvalidTransition = errors.New("invalid_transition")
	ErrCycleNotFound     = errors.New("cycle_not_found")
	ErrNotFound          = errors.New("not_found")
)
