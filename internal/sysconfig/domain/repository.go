package domain

import (
	"context"

	"gorm.io/gorm"
)

type Repository interface {
	FindByKey(ctx context.Context, db *gorm.DB, key string) (*ConfigEntry, error)
	Upsert(ctx context.Context, db *gorm.DB, entry *ConfigEntry) error
}
