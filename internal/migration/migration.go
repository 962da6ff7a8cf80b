package migration

import (
	accountdomain "github.com/utilitech/utilicore/internal/account/domain"
	authdomain "github.com/utilitech/utilicore/internal/auth/domain"
	billingdomain "github.com/utilitech/utilicore/internal/billing/domain"
	invoicedomain "github.com/utilitech/utilicore/internal/invoice/domain"
	paymentdomain "github.com/utilitech/utilicore/internal/payment/domain"
	plandomain "github.com/utilitech/utilicore/internal/plan/domain"
	profiledomain "github.com/utilitech/utilicore/internal/profile/domain"
	servicedomain "github.com/utilitech/utilicore/internal/service/domain"
	sysconfigdomain "github.com/utilitech/utilicore/internal/sysconfig/domain"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Migrate creates or updates every table the application owns. The default
// store is in-memory sqlite, so this runs on every boot.
func Migrate(db *gorm.DB, log *zap.Logger) error {
	err := db.AutoMigrate(
		&authdomain.User{},
		&profiledomain.Profile{},
		&accountdomain.Account{},
		&plandomain.Plan{},
		&servicedomain.Service{},
		&invoicedomain.Invoice{},
		&billingdomain.BillCycle{},
		&billingdomain.BillSchedule{},
		&billingdomain.BillRun{},
		&billingdomain.BilledAccount{},
		&paymentdomain.Payment{},
		&sysconfigdomain.ConfigEntry{},
	)
	if err != nil {
		return err
	}
	log.Named("migration").Info("schema migrated")
	return nil
}

var Module = fx.Module("migration",
	fx.Invoke(Migrate),
)
