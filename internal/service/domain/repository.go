package domain

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"
)

type ListServiceFilter struct {
	AccountID       snowflake.ID
	AccountIDs      []snowflake.ID
	Category        string
	Status          string
	ManagedBy       snowflake.ID
	PlanName        string
	IsAddon         *bool
	ParentServiceID snowflake.ID
}

type Repository interface {
	Insert(ctx context.Context, db *gorm.DB, service *Service) error
	Update(ctx context.Context, db *gorm.DB, service *Service) error
	FindByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*Service, error)
	List(ctx context.Context, db *gorm.DB, filter ListServiceFilter) ([]Service, error)
	Count(ctx context.Context, db *gorm.DB, filter ListServiceFilter) (int64, error)
}
