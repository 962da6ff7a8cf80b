package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
)

// Profile is an organization profile. Profiles may link to a master profile,
// forming a two-level hierarchy used for consolidated views.
type Profile struct {
	ID              snowflake.ID  `gorm:"primaryKey" json:"id"`
	Name            string        `gorm:"not null" json:"name"`
	Slug            string        `gorm:"index" json:"slug"`
	Email           string        `json:"email"`
	Phone           string        `json:"phone"`
	Profession      string        `json:"profession"`
	Address         string        `json:"address"`
	City            string        `json:"city"`
	State           string        `json:"state"`
	Zipcode         string        `json:"zipcode"`
	DepositAmount   float64       `json:"deposit_amount"`
	LinkedPlanID    *snowflake.ID `json:"linked_plan_id,omitempty"`
	MasterProfileID *snowflake.ID `gorm:"index" json:"master_profile_id,omitempty"`
	IsMasterProfile bool          `json:"is_master_profile"`
	Active          bool          `gorm:"not null;default:true" json:"active"`
	CreatedBy       snowflake.ID  `json:"created_by"`
	CreatedAt       time.Time     `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt       time.Time     `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updated_at"`
}

func (Profile) TableName() string {
	return "profiles"
}
