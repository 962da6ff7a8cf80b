package domain

import (
	"context"
	"errors"

	"github.com/bwmarrin/snowflake"
)

type DashboardStatsRequest struct {
	ActorID   snowflake.ID
	ActorRole string
}

type DuePaymentAlertsRequest struct {
	ActorID   snowflake.ID
	ActorRole string
}

type MonthlyRevenueRequest struct {
	ActorID   snowflake.ID
	ActorRole string
}

// DashboardStats grows with the caller's role. Optional sections stay nil
// for roles that do not receive them.
type DashboardStats struct {
	ActiveServices   int64   `json:"active_services"`
	PendingInvoices  int64   `json:"pending_invoices"`
	CurrentMonthBill float64 `json:"current_month_bill"`

	TotalAccounts   *int64   `json:"total_accounts,omitempty"`
	MonthlyRevenue  *float64 `json:"monthly_revenue,omitempty"`
	OverduePayments *int64   `json:"overdue_payments,omitempty"`

	TotalUsers    *int64   `json:"total_users,omitempty"`
	TotalProfiles *int64   `json:"total_profiles,omitempty"`
	TotalPlans    *int64   `json:"total_plans,omitempty"`
	TotalRevenue  *float64 `json:"total_revenue,omitempty"`
	SystemHealth  string   `json:"system_health,omitempty"`
}

type DuePaymentAlert struct {
	AccountName string  `json:"account_name"`
	Amount      float64 `json:"amount"`
	DueDate     string  `json:"due_date"`
	DaysOverdue int     `json:"days_overdue"`
	Severity    string  `json:"severity"`
}

type DuePaymentAlertsResponse struct {
	Alerts []DuePaymentAlert `json:"alerts"`
}

type MonthlyRevenueRow struct {
	Name    string  `json:"name"`
	Month   string  `json:"month"`
	Revenue float64 `json:"revenue"`
}

type MonthlyRevenueResponse struct {
	GroupedBy string              `json:"grouped_by"`
	Rows      []MonthlyRevenueRow `json:"rows"`
}

type Service interface {
	DashboardStats(context.Context, DashboardStatsRequest) (DashboardStats, error)
	DuePaymentAlerts(context.Context, DuePaymentAlertsRequest) (DuePaymentAlertsResponse, error)
	MonthlyRevenue(context.Context, MonthlyRevenueRequest) (MonthlyRevenueResponse, error)
}

var ErrForbidden = errors.New("forbidden")
