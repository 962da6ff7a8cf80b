package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
)

const (
	StatusCompleted  = "Completed"
	StatusPending    = "Pending"
	StatusProcessing = "Processing"
	StatusFailed     = "Failed"
	StatusRefunded   = "Refunded"
)

// Payment is one row of the read-only payment ledger. Rows are seeded or
// loaded externally; the API never writes them.
type Payment struct {
	ID            snowflake.ID `gorm:"primaryKey" json:"id"`
	AccountID     snowflake.ID `gorm:"not null;index" json:"account_id"`
	Amount        float64      `json:"amount"`
	Comment       string       `json:"comment"`
	Status        string       `gorm:"not null" json:"status"`
	PaymentDate   time.Time    `json:"payment_date"`
	Method        string       `json:"method"`
	Reference     string       `json:"reference"`
	InvoiceID     string       `json:"invoice_id"`
	InvoiceDate   time.Time    `json:"invoice_date"`
	DueDate       time.Time    `json:"due_date"`
	InvoiceAmount float64      `json:"invoice_amount"`
	CreatedAt     time.Time    `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt     time.Time    `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updated_at"`
}

func (Payment) TableName() string {
	return "payments"
}
