package repository

import (
	"context"
	"errors"

	"github.com/bwmarrin/snowflake"
	authdomain "github.com/utilitech/utilicore/internal/auth/domain"
	"github.com/utilitech/utilicore/internal/plan/domain"
	"gorm.io/gorm"
)

type repo struct{}

func Provide() domain.Repository {
	return &repo{}
}

func (r *repo) Insert(ctx context.Context, db *gorm.DB, plan *domain.Plan) error {
	return db.WithContext(ctx).Create(plan).Error
}

func (r *repo) Update(ctx context.Context, db *gorm.DB, plan *domain.Plan) error {
	return db.WithContext(ctx).Save(plan).Error
}

func (r *repo) FindByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*domain.Plan, error) {
	var plan domain.Plan
	err := db.WithContext(ctx).First(&plan, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &plan, nil
}

func (r *repo) List(ctx context.Context, db *gorm.DB, filter domain.ListPlanFilter) ([]domain.Plan, error) {
	stmt := db.WithContext(ctx).Model(&domain.Plan{})

	switch filter.Role {
	case authdomain.RoleUser:
		stmt = stmt.Where("is_for_admin = ? AND assigned_to_role = ?", false, authdomain.RoleUser)
	case authdomain.RoleAdmin:
		stmt = stmt.Where(
			"created_for_admin = ? OR created_by = ? OR assigned_to_role IN ?",
			filter.ActorID,
			filter.ActorID,
			[]string{authdomain.RoleAdmin, authdomain.RoleUser},
		)
	}

	if filter.ExcludeAdminOnly {
		stmt = stmt.Where("is_for_admin = ?", false)
	}
	if filter.ServiceType != "" {
		stmt = stmt.Where("service_type = ?", filter.ServiceType)
	}
	if filter.PlanType != 0 {
		stmt = stmt.Where("plan_type = ?", filter.PlanType)
	}
	if filter.Status != "" {
		stmt = stmt.Where("status = ?", filter.Status)
	}
	if filter.ExcludeID != 0 {
		stmt = stmt.Where("id <> ?", filter.ExcludeID)
	}

	var plans []domain.Plan
	err := stmt.
		Order("created_at desc, id desc").
		Find(&plans).Error
	if err != nil {
		return nil, err
	}
	return plans, nil
}
