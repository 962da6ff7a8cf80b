package domain

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"
)

type ListAccountFilter struct {
	UserID    snowflake.ID
	ProfileID snowflake.ID
}

type Repository interface {
	Insert(ctx context.Context, db *gorm.DB, account *Account) error
	Update(ctx context.Context, db *gorm.DB, account *Account) error
	FindByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*Account, error)
	List(ctx context.Context, db *gorm.DB, filter ListAccountFilter) ([]Account, error)
	Count(ctx context.Context, db *gorm.DB) (int64, error)
}
