package seed

import (
	"time"

	"github.com/bwmarrin/snowflake"
	accountdomain "github.com/utilitech/utilicore/internal/account/domain"
	authdomain "github.com/utilitech/utilicore/internal/auth/domain"
	"github.com/utilitech/utilicore/internal/auth/password"
	billingdomain "github.com/utilitech/utilicore/internal/billing/domain"
	"github.com/utilitech/utilicore/internal/config"
	paymentdomain "github.com/utilitech/utilicore/internal/payment/domain"
	plandomain "github.com/utilitech/utilicore/internal/plan/domain"
	profiledomain "github.com/utilitech/utilicore/internal/profile/domain"
	servicedomain "github.com/utilitech/utilicore/internal/service/domain"
	sysconfigdomain "github.com/utilitech/utilicore/internal/sysconfig/domain"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

const demoPassword = "password"

// Run loads the demo dataset. It is skipped when seeding is disabled or when
// the store already holds users, so restarts against a persistent database
// do not duplicate rows.
func Run(cfg config.Config, db *gorm.DB, genID *snowflake.Node, log *zap.Logger) error {
	log = log.Named("seed")
	if !cfg.SeedDemoData {
		log.Info("demo data seeding disabled")
		return nil
	}

	var userCount int64
	if err := db.Model(&authdomain.User{}).Count(&userCount).Error; err != nil {
		return err
	}
	if userCount > 0 {
		log.Info("store already populated, skipping seed")
		return nil
	}

	hash, err := password.Hash(demoPassword)
	if err != nil {
		return err
	}

	now := time.Now().UTC()
	err = db.Transaction(func(tx *gorm.DB) error {
		superAdmin := authdomain.User{
			ID:           genID.Generate(),
			Email:        "superadmin@utilicore.dev",
			Name:         "Sam Director",
			Role:         authdomain.RoleSuperAdmin,
			PasswordHash: hash,
			Department:   "Operations",
			Title:        "Platform Director",
			Active:       true,
			CreatedAt:    now,
			UpdatedAt:    now,
		}
		admin := authdomain.User{
			ID:           genID.Generate(),
			Email:        "admin@utilicore.dev",
			Name:         "Avery Manager",
			Role:         authdomain.RoleAdmin,
			PasswordHash: hash,
			Department:   "Billing",
			Title:        "Billing Manager",
			Active:       true,
			CreatedAt:    now,
			UpdatedAt:    now,
		}
		endUser := authdomain.User{
			ID:           genID.Generate(),
			Email:        "user@utilicore.dev",
			Name:         "Jordan Tenant",
			Role:         authdomain.RoleUser,
			PasswordHash: hash,
			Active:       true,
			CreatedAt:    now,
			UpdatedAt:    now,
		}

		masterProfile := profiledomain.Profile{
			ID:              genID.Generate(),
			Name:            "Metro Utilities Group",
			Slug:            "metro-utilities-group",
			Email:           "ops@metroutilities.dev",
			City:            "Springfield",
			State:           "IL",
			IsMasterProfile: true,
			Active:          true,
			CreatedBy:       superAdmin.ID,
			CreatedAt:       now,
			UpdatedAt:       now,
		}
		childProfile := profiledomain.Profile{
			ID:              genID.Generate(),
			Name:            "Greenfield District",
			Slug:            "greenfield-district",
			Email:           "billing@greenfield.dev",
			City:            "Greenfield",
			State:           "IL",
			DepositAmount:   500,
			MasterProfileID: &masterProfile.ID,
			Active:          true,
			CreatedBy:       superAdmin.ID,
			CreatedAt:       now,
			UpdatedAt:       now,
		}

		admin.ProfileID = &childProfile.ID
		endUser.ProfileID = &childProfile.ID

		multiplier := 2.5
		basePlan := plandomain.Plan{
			ID:                genID.Generate(),
			Name:              "Residential Power Basic",
			Description:       "Flat-rate residential electricity",
			PlanType:          plandomain.PlanTypeBase,
			ServiceType:       "electricity",
			ChargeType:        "flat",
			ChargeCategory:    "recurring",
			BasePrice:         60,
			Charges:           85,
			SetupFee:          25,
			BillingFrequency:  "monthly",
			DepositMultiplier: &multiplier,
			Features:          datatypes.JSON([]byte(`["24/7 support","online billing"]`)),
			Status:            plandomain.StatusActive,
			AssignedToRole:    authdomain.RoleUser,
			CreatedBy:         superAdmin.ID,
			CreatedAt:         now,
			UpdatedAt:         now,
		}
		waterPlan := plandomain.Plan{
			ID:               genID.Generate(),
			Name:             "Municipal Water Standard",
			Description:      "Metered water supply",
			PlanType:         plandomain.PlanTypeBase,
			ServiceType:      "water",
			ChargeType:       "metered",
			ChargeCategory:   "recurring",
			BasePrice:        30,
			Charges:          42.5,
			BillingFrequency: "monthly",
			Status:           plandomain.StatusActive,
			AssignedToRole:   authdomain.RoleUser,
			CreatedBy:        superAdmin.ID,
			CreatedAt:        now,
			UpdatedAt:        now,
		}
		addonPlan := plandomain.Plan{
			ID:               genID.Generate(),
			Name:             "Green Energy Addon",
			Description:      "Renewable generation surcharge",
			PlanType:         plandomain.PlanTypeAddon,
			ServiceType:      "electricity",
			ChargeType:       "flat",
			ChargeCategory:   "addon",
			Charges:          12,
			BillingFrequency: "monthly",
			Status:           plandomain.StatusActive,
			AssignedToRole:   authdomain.RoleUser,
			CreatedBy:        superAdmin.ID,
			CreatedAt:        now,
			UpdatedAt:        now,
		}

		account := accountdomain.Account{
			ID:             genID.Generate(),
			ProfileID:      childProfile.ID,
			UserID:         endUser.ID,
			AccountName:    "Jordan Tenant Household",
			ContactName:    "Jordan Tenant",
			Email:          endUser.Email,
			ServiceAddress: "12 Elm Street, Greenfield",
			BillingAddress: "12 Elm Street, Greenfield",
			DepositPaid:    true,
			TotalDeposit:   212.5,
			MonthlyBilling: 97,
			ActiveServices: 2,
			Status:         "active",
			CreatedBy:      admin.ID,
			CreatedAt:      now,
			UpdatedAt:      now,
		}

		baseService := servicedomain.Service{
			ID:             genID.Generate(),
			AccountID:      account.ID,
			PlanID:         basePlan.ID,
			Name:           "Elm Street Electricity",
			Category:       servicedomain.CategoryUser,
			ServiceType:    "electricity",
			MonthlyCharges: 85,
			StartDate:      now.AddDate(0, -3, 0),
			ServiceAddress: account.ServiceAddress,
			MeterNumber:    "MTR-001842",
			Status:         servicedomain.StatusActive,
			ManagedBy:      endUser.ID,
			Active:         true,
			CreatedBy:      endUser.ID,
			CreatedAt:      now,
			UpdatedAt:      now,
		}
		addonService := servicedomain.Service{
			ID:              genID.Generate(),
			AccountID:       account.ID,
			PlanID:          addonPlan.ID,
			Name:            "Green Energy Addon",
			Category:        servicedomain.CategoryUser,
			ServiceType:     "electricity",
			MonthlyCharges:  12,
			StartDate:       now.AddDate(0, -1, 0),
			Status:          servicedomain.StatusActive,
			ManagedBy:       endUser.ID,
			IsAddon:         true,
			ParentServiceID: &baseService.ID,
			Active:          true,
			CreatedBy:       endUser.ID,
			CreatedAt:       now,
			UpdatedAt:       now,
		}

		cycles := []billingdomain.BillCycle{
			{ID: genID.Generate(), Name: "Monthly", Frequency: "monthly", DayOfCycle: 1, CreatedAt: now, UpdatedAt: now},
			{ID: genID.Generate(), Name: "Quarterly", Frequency: "quarterly", DayOfCycle: 1, CreatedAt: now, UpdatedAt: now},
			{ID: genID.Generate(), Name: "Yearly", Frequency: "yearly", DayOfCycle: 15, CreatedAt: now, UpdatedAt: now},
		}

		schedule := billingdomain.BillSchedule{
			ID:           genID.Generate(),
			BillCycleID:  cycles[0].ID,
			BillRunName:  "August residential run",
			BillDate:     now.AddDate(0, 0, -2),
			Status:       billingdomain.ScheduleStatusCompleted,
			AccountCount: 1,
			CreatedBy:    admin.ID,
			CreatedAt:    now,
			UpdatedAt:    now,
		}
		run := billingdomain.BillRun{
			ID:             genID.Generate(),
			BillScheduleID: schedule.ID,
			BillCycleID:    cycles[0].ID,
			RunName:        schedule.BillRunName,
			RunDate:        schedule.BillDate,
			Status:         billingdomain.RunStatusCompleted,
			TotalAccounts:  1,
			BillsGenerated: 1,
			BillsApproved:  0,
			CreatedAt:      now,
			UpdatedAt:      now,
		}
		billedAccount := billingdomain.BilledAccount{
			ID:          genID.Generate(),
			BillRunID:   run.ID,
			AccountID:   account.ID,
			AccountName: account.AccountName,
			Charges:     97,
			BillDate:    schedule.BillDate,
			DueDate:     schedule.BillDate.AddDate(0, 0, 14),
			Status:      billingdomain.BilledAccountStatusBilled,
			CreatedAt:   now,
			UpdatedAt:   now,
		}

		payments := []paymentdomain.Payment{
			{
				ID:            genID.Generate(),
				AccountID:     account.ID,
				Amount:        97,
				Comment:       "July utility bill",
				Status:        paymentdomain.StatusCompleted,
				PaymentDate:   now.AddDate(0, -1, 0),
				Method:        "card",
				Reference:     "PAY-20250715-001",
				InvoiceID:     "INV-000001",
				InvoiceDate:   now.AddDate(0, -1, -14),
				DueDate:       now.AddDate(0, -1, 0),
				InvoiceAmount: 97,
				CreatedAt:     now,
				UpdatedAt:     now,
			},
			{
				ID:            genID.Generate(),
				AccountID:     account.ID,
				Amount:        97,
				Comment:       "August utility bill",
				Status:        paymentdomain.StatusPending,
				PaymentDate:   now.AddDate(0, 0, 7),
				Method:        "card",
				Reference:     "PAY-20250815-002",
				InvoiceID:     "INV-000002",
				InvoiceDate:   now.AddDate(0, 0, -14),
				DueDate:       now.AddDate(0, 0, 7),
				InvoiceAmount: 97,
				CreatedAt:     now,
				UpdatedAt:     now,
			},
		}

		configEntry := sysconfigdomain.ConfigEntry{
			Key:       sysconfigdomain.KeyDepositMultiplier,
			Value:     sysconfigdomain.DefaultDepositMultiplier,
			UpdatedAt: now,
		}

		if err := tx.Create(&cycles).Error; err != nil {
			return err
		}
		for _, value := range []any{
			&superAdmin, &admin, &endUser,
			&masterProfile, &childProfile,
			&basePlan, &waterPlan, &addonPlan,
			&account,
			&baseService, &addonService,
			&schedule, &run, &billedAccount,
			&configEntry,
		} {
			if err := tx.Create(value).Error; err != nil {
				return err
			}
		}
		if err := tx.Create(&payments).Error; err != nil {
			return err
		}
		return nil
	})
	if err != nil {
		return err
	}

	log.Info("demo data seeded")
	return nil
}

var Module = fx.Module("seed",
	fx.Invoke(Run),
)
