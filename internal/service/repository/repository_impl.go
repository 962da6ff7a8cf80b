package repository

import (
	"context"
	"errors"

	"github.com/bwmarrin/snowflake"
	"github.com/utilitech/utilicore/internal/service/domain"
	"gorm.io/gorm"
)

type repo struct{}

func Provide() domain.Repository {
	return &repo{}
}

func (r *repo) Insert(ctx context.Context, db *gorm.DB, service *domain.Service) error {
	return db.WithContext(ctx).Create(service).Error
}

func (r *repo) Update(ctx context.Context, db *gorm.DB, service *domain.Service) error {
	return db.WithContext(ctx).Save(service).Error
}

func (r *repo) FindByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*domain.Service, error) {
	var service domain.Service
	err := db.WithContext(ctx).First(&service, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &service, nil
}

func (r *repo) List(ctx context.Context, db *gorm.DB, filter domain.ListServiceFilter) ([]domain.Service, error) {
	var services []domain.Service
	err := r.apply(db.WithContext(ctx).Model(&domain.Service{}), filter).
		Order("created_at desc, id desc").
		Find(&services).Error
	if err != nil {
		return nil, err
	}
	return services, nil
}

func (r *repo) Count(ctx context.Context, db *gorm.DB, filter domain.ListServiceFilter) (int64, error) {
	var count int64
	err := r.apply(db.WithContext(ctx).Model(&domain.Service{}), filter).
		Count(&count).Error
	return count, err
}

func (r *repo) apply(stmt *gorm.DB, filter domain.ListServiceFilter) *gorm.DB {
	if filter.AccountID != 0 {
		stmt = stmt.Where("services.account_id = ?", filter.AccountID)
	}
	if len(filter.AccountIDs) > 0 {
		stmt = stmt.Where("services.account_id IN ?", filter.AccountIDs)
	}
	if filter.Category != "" {
		stmt = stmt.Where("services.category = ?", filter.Category)
	}
	if filter.Status != "" {
		stmt = stmt.Where("services.status = ?", filter.Status)
	}
	if filter.ManagedBy != 0 {
		stmt = stmt.Where("services.managed_by = ?", filter.ManagedBy)
	}
	if filter.PlanName != "" {
		stmt = stmt.
			Joins("JOIN plans ON plans.id = services.plan_id").
			Where("plans.name LIKE ?", "%"+filter.PlanName+"%")
	}
	if filter.IsAddon != nil {
		stmt = stmt.Where("services.is_addon = ?", *filter.IsAddon)
	}
	if filter.ParentServiceID != 0 {
		stmt = stmt.Where("services.parent_service_id = ?", filter.ParentServiceID)
	}
	return stmt
}
