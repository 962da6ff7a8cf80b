package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
)

const (
	RoleSuperAdmin = "super_admin"
	RoleAdmin      = "admin"
	RoleUser       = "user"
)

func ValidRole(role string) bool {
	switch role {
	case RoleSuperAdmin, RoleAdmin, RoleUser:
		return true
	default:
		return false
	}
}

type User struct {
	ID           snowflake.ID  `gorm:"primaryKey" json:"id"`
	Email        string        `gorm:"uniqueIndex;not null" json:"email"`
	Name         string        `gorm:"not null" json:"name"`
	Role         string        `gorm:"not null" json:"role"`
	PasswordHash string        `gorm:"column:password_hash;not null" json:"-"`
	ProfileID    *snowflake.ID `gorm:"index" json:"profile_id,omitempty"`
	Department   string        `json:"department,omitempty"`
	Title        string        `json:"title,omitempty"`
	Active       bool          `gorm:"not null;default:true" json:"active"`
	CreatedAt    time.Time     `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt    time.Time     `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updated_at"`
}

func (User) TableName() string {
	return "users"
}
