package domain

import "time"

const (
	KeyDepositMultiplier = "deposit_multiplier"

	DefaultDepositMultiplier = 2.0
)

// ConfigEntry is a keyed numeric system setting.
type ConfigEntry struct {
	Key       string    `gorm:"primaryKey" json:"key"`
	Value     float64   `gorm:"not null" json:"value"`
	UpdatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updated_at"`
}

func (ConfigEntry) TableName() string {
	return "system_configs"
}
