package service

import (
	"context"
	"time"

	"github.com/bwmarrin/snowflake"
	accountdomain "github.com/utilitech/utilicore/internal/account/domain"
	authdomain "github.com/utilitech/utilicore/internal/auth/domain"
	invoicedomain "github.com/utilitech/utilicore/internal/invoice/domain"
	plandomain "github.com/utilitech/utilicore/internal/plan/domain"
	profiledomain "github.com/utilitech/utilicore/internal/profile/domain"
	"github.com/utilitech/utilicore/internal/reporting/domain"
	servicedomain "github.com/utilitech/utilicore/internal/service/domain"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Revenue figures are placeholders until the ledger feeds real aggregates.
const (
	staticCurrentMonthBill = 145.50
	staticMonthlyRevenue   = 48250.00
	staticTotalRevenue     = 612480.00
)

type Params struct {
	fx.In

	DB          *gorm.DB
	Log         *zap.Logger
	ServiceRepo servicedomain.Repository
	InvoiceRepo invoicedomain.Repository
	AccountRepo accountdomain.Repository
}

type Service struct {
	db          *gorm.DB
	log         *zap.Logger
	serviceRepo servicedomain.Repository
	invoiceRepo invoicedomain.Repository
	accountRepo accountdomain.Repository
}

func New(p Params) domain.Service {
	return &Service{
		db:          p.DB,
		log:         p.Log.Named("reporting.service"),
		serviceRepo: p.ServiceRepo,
		invoiceRepo: p.InvoiceRepo,
		accountRepo: p.AccountRepo,
	}
}

func (s *Service) DashboardStats(ctx context.Context, req domain.DashboardStatsRequest) (domain.DashboardStats, error) {
	stats := domain.DashboardStats{CurrentMonthBill: staticCurrentMonthBill}

	serviceFilter := servicedomain.ListServiceFilter{Status: servicedomain.StatusActive}
	if req.ActorRole == authdomain.RoleUser {
		serviceFilter.ManagedBy = req.ActorID
	}
	activeServices, err := s.serviceRepo.Count(ctx, s.db, serviceFilter)
	if err != nil {
		return domain.DashboardStats{}, err
	}
	stats.ActiveServices = activeServices

	pending, err := s.countInvoices(ctx, req.ActorID, req.ActorRole, invoicedomain.StatusSent)
	if err != nil {
		return domain.DashboardStats{}, err
	}
	stats.PendingInvoices = pending

	if req.ActorRole == authdomain.RoleUser {
		return stats, nil
	}

	totalAccounts, err := s.accountRepo.Count(ctx, s.db)
	if err != nil {
		return domain.DashboardStats{}, err
	}
	overdue, err := s.countInvoices(ctx, req.ActorID, req.ActorRole, invoicedomain.StatusOverdue)
	if err != nil {
		return domain.DashboardStats{}, err
	}
	monthlyRevenue := staticMonthlyRevenue
	stats.TotalAccounts = &totalAccounts
	stats.MonthlyRevenue = &monthlyRevenue
	stats.OverduePayments = &overdue

	if req.ActorRole != authdomain.RoleSuperAdmin {
		return stats, nil
	}

	var totalUsers, totalProfiles, totalPlans int64
	if err := s.db.WithContext(ctx).Model(&authdomain.User{}).Count(&totalUsers).Error; err != nil {
		return domain.DashboardStats{}, err
	}
	if err := s.db.WithContext(ctx).Model(&profiledomain.Profile{}).Count(&totalProfiles).Error; err != nil {
		return domain.DashboardStats{}, err
	}
	if err := s.db.WithContext(ctx).Model(&plandomain.Plan{}).Count(&totalPlans).Error; err != nil {
		return domain.DashboardStats{}, err
	}
	totalRevenue := staticTotalRevenue
	stats.TotalUsers = &totalUsers
	stats.TotalProfiles = &totalProfiles
	stats.TotalPlans = &totalPlans
	stats.TotalRevenue = &totalRevenue
	stats.SystemHealth = "healthy"

	return stats, nil
}

func (s *Service) DuePaymentAlerts(ctx context.Context, req domain.DuePaymentAlertsRequest) (domain.DuePaymentAlertsResponse, error) {
	nextWeek := time.Now().UTC().AddDate(0, 0, 7).Format("2006-01-02")
	lastWeek := time.Now().UTC().AddDate(0, 0, -5).Format("2006-01-02")

	if req.ActorRole == authdomain.RoleUser {
		return domain.DuePaymentAlertsResponse{
			Alerts: []domain.DuePaymentAlert{
				{AccountName: "My Utility Account", Amount: 145.50, DueDate: nextWeek, DaysOverdue: 0, Severity: "info"},
			},
		}, nil
	}

	return domain.DuePaymentAlertsResponse{
		Alerts: []domain.DuePaymentAlert{
			{AccountName: "Greenfield Apartments", Amount: 1240.00, DueDate: lastWeek, DaysOverdue: 5, Severity: "critical"},
			{AccountName: "Harbor Logistics", Amount: 860.75, DueDate: nextWeek, DaysOverdue: 0, Severity: "warning"},
			{AccountName: "Westside Clinic", Amount: 310.20, DueDate: nextWeek, DaysOverdue: 0, Severity: "info"},
		},
	}, nil
}

func (s *Service) MonthlyRevenue(ctx context.Context, req domain.MonthlyRevenueRequest) (domain.MonthlyRevenueResponse, error) {
	month := time.Now().UTC().Format("2006-01")

	if req.ActorRole == authdomain.RoleSuperAdmin {
		return domain.MonthlyRevenueResponse{
			GroupedBy: "profile",
			Rows: []domain.MonthlyRevenueRow{
				{Name: "Metro Utilities Group", Month: month, Revenue: 28400.00},
				{Name: "Coastal Energy Co-op", Month: month, Revenue: 13150.00},
				{Name: "Inland Water District", Month: month, Revenue: 6700.00},
			},
		}, nil
	}

	return domain.MonthlyRevenueResponse{
		GroupedBy: "account",
		Rows: []domain.MonthlyRevenueRow{
			{Name: "Greenfield Apartments", Month: month, Revenue: 4320.00},
			{Name: "Harbor Logistics", Month: month, Revenue: 2875.50},
			{Name: "Westside Clinic", Month: month, Revenue: 1140.25},
		},
	}, nil
}

func (s *Service) countInvoices(ctx context.Context, actorID snowflake.ID, role, status string) (int64, error) {
	filter := invoicedomain.ListInvoiceFilter{Status: status}
	if role == authdomain.RoleUser {
		accounts, err := s.accountRepo.List(ctx, s.db, accountdomain.ListAccountFilter{UserID: actorID})
		if err != nil {
			return 0, err
		}
		if len(accounts) == 0 {
			return 0, nil
		}
		for _, account := range accounts {
			filter.AccountIDs = append(filter.AccountIDs, account.ID)
		}
	}
	invoices, err := s.invoiceRepo.List(ctx, s.db, filter)
	if err != nil {
		return 0, err
	}
	return int64(len(invoices)), nil
}
