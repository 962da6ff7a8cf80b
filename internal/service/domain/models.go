package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
	accountdomain "github.com/utilitech/utilicore/internal/account/domain"
	plandomain "github.com/utilitech/utilicore/internal/plan/domain"
)

const (
	CategoryMaster = "master_service"
	CategorySelf   = "self_service"
	CategoryUser   = "user_service"
)

const (
	StatusActive   = "active"
	StatusInactive = "inactive"
)

func ValidCategory(category string) bool {
	switch category {
	case CategoryMaster, CategorySelf, CategoryUser:
		return true
	default:
		return false
	}
}

// Service is a provisioned utility service on an account. Services are never
// deleted; deactivation flips status and stamps the end date. Addons link to
// their base service via ParentServiceID.
type Service struct {
	ID                snowflake.ID  `gorm:"primaryKey" json:"id"`
	AccountID         snowflake.ID  `gorm:"not null;index" json:"account_id"`
	PlanID            snowflake.ID  `gorm:"not null;index" json:"plan_id"`
	Name              string        `gorm:"not null" json:"name"`
	Description       string        `json:"description"`
	Category          string        `gorm:"not null;index" json:"category"`
	ServiceType       string        `gorm:"not null" json:"service_type"`
	CustomPrice       *float64      `json:"custom_price,omitempty"`
	MonthlyCharges    float64       `json:"monthly_charges"`
	StartDate         time.Time     `json:"start_date"`
	EndDate           *time.Time    `json:"end_date,omitempty"`
	ServiceAddress    string        `json:"service_address"`
	InstallationNotes string        `json:"installation_notes"`
	MeterNumber       string        `json:"meter_number"`
	ConnectionType    string        `json:"connection_type"`
	Capacity          string        `json:"capacity"`
	Status            string        `gorm:"not null;default:active;index" json:"status"`
	ManagedBy         snowflake.ID  `gorm:"index" json:"managed_by"`
	AssignedTo        *snowflake.ID `json:"assigned_to,omitempty"`
	Priority          string        `json:"priority"`
	LastReading       *float64      `json:"last_reading,omitempty"`
	IsAddon           bool          `gorm:"not null;default:false" json:"is_addon"`
	ParentServiceID   *snowflake.ID `gorm:"index" json:"parent_service_id,omitempty"`
	Active            bool          `gorm:"not null;default:true" json:"active"`
	CreatedBy         snowflake.ID  `json:"created_by"`
	CreatedAt         time.Time     `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt         time.Time     `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updated_at"`
}

func (Service) TableName() string {
	return "services"
}

// ServiceView embeds the plan (with its derived deposit) and the account.
type ServiceView struct {
	Service
	Plan    *plandomain.PlanView   `json:"plan,omitempty"`
	Account *accountdomain.Account `json:"account,omitempty"`
}
