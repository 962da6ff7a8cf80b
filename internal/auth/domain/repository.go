package domain

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"
)

type Repository interface {
	Insert(ctx context.Context, db *gorm.DB, user *User) error
	FindByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*User, error)
	FindByEmail(ctx context.Context, db *gorm.DB, email string) (*User, error)
	List(ctx context.Context, db *gorm.DB) ([]User, error)
	// ListByMasterProfile returns users whose profile is the master itself or
	// one of its children.
	ListByMasterProfile(ctx context.Context, db *gorm.DB, masterProfileID snowflake.ID) ([]User, error)
}
