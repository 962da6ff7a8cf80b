package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
)

const (
	ScheduleStatusPending    = "pending"
	ScheduleStatusProcessing = "processing"
	ScheduleStatusCompleted  = "completed"
	ScheduleStatusFailed     = "failed"

	RunStatusPending    = "pending"
	RunStatusProcessing = "processing"
	RunStatusCompleted  = "completed"

	BilledAccountStatusBilled   = "billed"
	BilledAccountStatusApproved = "approved"
)

var scheduleTransitions = map[string][]string{
	ScheduleStatusPending:    {ScheduleStatusProcessing},
	ScheduleStatusProcessing: {ScheduleStatusCompleted, ScheduleStatusFailed},
}

var runTransitions = map[string][]string{
	RunStatusPending:    {RunStatusProcessing},
	RunStatusProcessing: {RunStatusCompleted},
}

// CanTransitionSchedule reports whether a schedule may move between statuses.
func CanTransitionSchedule(from, to string) bool {
	return canTransition(scheduleTransitions, from, to)
}

// CanTransitionRun reports whether a run may move between statuses.
func CanTransitionRun(from, to string) bool {
	return canTransition(runTransitions, from, to)
}

func canTransition(table map[string][]string, from, to string) bool {
	for _, allowed := range table[from] {
		if allowed == to {
			return true
		}
	}
	return false
}

// BillCycle is a seeded billing calendar entry.
type BillCycle struct {
	ID         snowflake.ID `gorm:"primaryKey" json:"id"`
	Name       string       `gorm:"not null" json:"name"`
	Frequency  string       `gorm:"not null" json:"frequency"`
	DayOfCycle int          `json:"day_of_cycle"`
	CreatedAt  time.Time    `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt  time.Time    `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updated_at"`
}

func (BillCycle) TableName() string {
	return "bill_cycles"
}

// BillSchedule requests a billing pass over a set of accounts. Creating a
// schedule synchronously creates its run.
type BillSchedule struct {
	ID           snowflake.ID `gorm:"primaryKey" json:"id"`
	BillCycleID  snowflake.ID `gorm:"not null;index" json:"bill_cycle_id"`
	BillRunName  string       `gorm:"not null" json:"bill_run_name"`
	BillDate     time.Time    `json:"bill_date"`
	Status       string       `gorm:"not null;default:pending" json:"status"`
	AccountCount int          `json:"account_count"`
	CreatedBy    snowflake.ID `json:"created_by"`
	CreatedAt    time.Time    `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt    time.Time    `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updated_at"`
}

func (BillSchedule) TableName() string {
	return "bill_schedules"
}

// BillRun tracks execution of a schedule. Counters are set at creation and
// advanced by approvals; completion is externally driven, there is no
// engine computing them.
type BillRun struct {
	ID             snowflake.ID `gorm:"primaryKey" json:"id"`
	BillScheduleID snowflake.ID `gorm:"not null;index" json:"bill_schedule_id"`
	BillCycleID    snowflake.ID `gorm:"not null;index" json:"bill_cycle_id"`
	RunName        string       `gorm:"not null" json:"run_name"`
	RunDate        time.Time    `json:"run_date"`
	Status         string       `gorm:"not null;default:pending" json:"status"`
	TotalAccounts  int          `json:"total_accounts"`
	BillsGenerated int          `json:"bills_generated"`
	BillsApproved  int          `json:"bills_approved"`
	CreatedAt      time.Time    `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt      time.Time    `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updated_at"`
}

func (BillRun) TableName() string {
	return "bill_runs"
}

// BilledAccount is one account's charge inside a run.
type BilledAccount struct {
	ID          snowflake.ID `gorm:"primaryKey" json:"id"`
	BillRunID   snowflake.ID `gorm:"not null;index" json:"bill_run_id"`
	AccountID   snowflake.ID `gorm:"not null;index" json:"account_id"`
	AccountName string       `json:"account_name"`
	Charges     float64      `json:"charges"`
	BillDate    time.Time    `json:"bill_date"`
	DueDate     time.Time    `json:"due_date"`
	Status      string       `gorm:"not null;default:billed" json:"status"`
	CreatedAt   time.Time    `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt   time.Time    `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updated_at"`
}

func (BilledAccount) TableName() string {
	return "billed_accounts"
}

// ScheduleView and RunView carry the cycle name alongside the row.
type ScheduleView struct {
	BillSchedule
	BillCycleName string `json:"bill_cycle_name"`
}

type RunView struct {
	BillRun
	BillCycleName string `json:"bill_cycle_name"`
}
