package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
	"gorm.io/datatypes"
)

const (
	PlanTypeBase  = 1
	PlanTypeAddon = 2
)

const (
	StatusActive   = "active"
	StatusInactive = "inactive"
)

func ValidServiceType(serviceType string) bool {
	switch serviceType {
	case "electricity", "water", "gas", "internet":
		return true
	default:
		return false
	}
}

type Plan struct {
	ID                snowflake.ID   `gorm:"primaryKey" json:"id"`
	Name              string         `gorm:"not null" json:"name"`
	Description       string         `json:"description"`
	PlanType          int            `gorm:"not null;default:1" json:"plan_type"`
	ServiceType       string         `gorm:"not null;index" json:"service_type"`
	ChargeType        string         `json:"charge_type"`
	ChargeCategory    string         `json:"charge_category"`
	BasePrice         float64        `json:"base_price"`
	Charges           float64        `json:"charges"`
	SetupFee          float64        `json:"setup_fee"`
	BillingFrequency  string         `json:"billing_frequency"`
	StartDate         *time.Time     `json:"start_date,omitempty"`
	EndDate           *time.Time     `json:"end_date,omitempty"`
	DepositMultiplier *float64       `json:"deposit_multiplier,omitempty"`
	Features          datatypes.JSON `json:"features,omitempty"`
	Terms             string         `json:"terms"`
	Proration         bool           `json:"proration"`
	Status            string         `gorm:"not null;default:active;index" json:"status"`
	IsForAdmin        bool           `json:"is_for_admin"`
	AssignedToRole    string         `json:"assigned_to_role"`
	CreatedForAdmin   *snowflake.ID  `json:"created_for_admin,omitempty"`
	CreatedBy         snowflake.ID   `json:"created_by"`
	CreatedAt         time.Time      `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt         time.Time      `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updated_at"`
}

func (Plan) TableName() string {
	return "plans"
}

// PlanView is a Plan with its derived deposit. The deposit is never stored;
// it is charges times the plan's multiplier (or the system default) and is
// recomputed on every read.
type PlanView struct {
	Plan
	CalculatedDeposit float64 `json:"calculated_deposit"`
}

// View computes the derived deposit for a plan. defaultMultiplier is used
// when the plan carries no multiplier of its own.
func View(p Plan, defaultMultiplier float64) PlanView {
	multiplier := defaultMultiplier
	if p.DepositMultiplier != nil && *p.DepositMultiplier > 0 {
		multiplier = *p.DepositMultiplier
	}
	return PlanView{
		Plan:              p,
		CalculatedDeposit: p.Charges * multiplier,
	}
}
