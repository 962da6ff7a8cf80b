package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
)

// Account is a billing account owned by a user under a profile. The
// financial summary fields are denormalized snapshots, not computed
// aggregates.
type Account struct {
	ID             snowflake.ID `gorm:"primaryKey" json:"id"`
	ProfileID      snowflake.ID `gorm:"not null;index" json:"profile_id"`
	UserID         snowflake.ID `gorm:"not null;index" json:"user_id"`
	AccountName    string       `gorm:"not null" json:"account_name"`
	ContactName    string       `json:"contact_name"`
	Email          string       `json:"email"`
	Phone          string       `json:"phone"`
	ServiceAddress string       `json:"service_address"`
	BillingAddress string       `json:"billing_address"`
	BusinessType   string       `json:"business_type"`
	TaxID          string       `json:"tax_id"`
	DepositPaid    bool         `json:"deposit_paid"`

	TotalDeposit       float64    `json:"total_deposit"`
	MonthlyBilling     float64    `json:"monthly_billing"`
	ActiveServices     int        `json:"active_services"`
	OutstandingBalance float64    `json:"outstanding_balance"`
	CreditBalance      float64    `json:"credit_balance"`
	TotalCredit        float64    `json:"total_credit"`
	CreditLimit        float64    `json:"credit_limit"`
	TotalDebit         float64    `json:"total_debit"`
	TotalPayment       float64    `json:"total_payment"`
	LastPayment        float64    `json:"last_payment"`
	LastPaymentDate    *time.Time `json:"last_payment_date,omitempty"`
	TotalUserDeposit   float64    `json:"total_user_deposit"`

	Status    string       `gorm:"not null;default:active" json:"status"`
	CreatedBy snowflake.ID `json:"created_by"`
	CreatedAt time.Time    `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt time.Time    `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updated_at"`
}

func (Account) TableName() string {
	return "accounts"
}
