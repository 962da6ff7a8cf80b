package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
	"gorm.io/datatypes"
)

const (
	StatusDraft     = "draft"
	StatusSent      = "sent"
	StatusPaid      = "paid"
	StatusOverdue   = "overdue"
	StatusCancelled = "cancelled"
)

func ValidStatus(status string) bool {
	switch status {
	case StatusDraft, StatusSent, StatusPaid, StatusOverdue, StatusCancelled:
		return true
	default:
		return false
	}
}

// InvoiceItem is one line on an invoice. Items are stored denormalized as a
// JSON array on the invoice row.
type InvoiceItem struct {
	Description string  `json:"description"`
	Quantity    float64 `json:"quantity"`
	UnitPrice   float64 `json:"unit_price"`
	Amount      float64 `json:"amount"`
}

type Invoice struct {
	ID                 snowflake.ID   `gorm:"primaryKey" json:"id"`
	InvoiceNumber      string         `gorm:"uniqueIndex;not null" json:"invoice_number"`
	AccountID          snowflake.ID   `gorm:"not null;index" json:"account_id"`
	ProfileID          *snowflake.ID  `json:"profile_id,omitempty"`
	ServiceIDs         datatypes.JSON `json:"service_ids,omitempty"`
	Items              datatypes.JSON `json:"items"`
	Subtotal           float64        `json:"subtotal"`
	TaxRate            float64        `json:"tax_rate"`
	TaxAmount          float64        `json:"tax_amount"`
	DiscountAmount     float64        `json:"discount_amount"`
	TotalAmount        float64        `json:"total_amount"`
	BillingPeriodStart *time.Time     `json:"billing_period_start,omitempty"`
	BillingPeriodEnd   *time.Time     `json:"billing_period_end,omitempty"`
	DueDate            *time.Time     `json:"due_date,omitempty"`
	Status             string         `gorm:"not null;default:draft;index" json:"status"`
	Notes              string         `json:"notes"`
	CreatedBy          snowflake.ID   `json:"created_by"`
	CreatedAt          time.Time      `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt          time.Time      `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updated_at"`
}

func (Invoice) TableName() string {
	return "invoices"
}
