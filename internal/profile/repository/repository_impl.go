package repository

import (
	"context"
	"errors"

	"github.com/bwmarrin/snowflake"
	"github.com/utilitech/utilicore/internal/profile/domain"
	"gorm.io/gorm"
)

type repo struct{}

func Provide() domain.Repository {
	return &repo{}
}

func (r *repo) Insert(ctx context.Context, db *gorm.DB, profile *domain.Profile) error {
	return db.WithContext(ctx).Create(profile).Error
}

func (r *repo) Update(ctx context.Context, db *gorm.DB, profile *domain.Profile) error {
	return db.WithContext(ctx).Save(profile).Error
}

func (r *repo) FindByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*domain.Profile, error) {
	var profile domain.Profile
	err := db.WithContext(ctx).First(&profile, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &profile, nil
}

func (r *repo) List(ctx context.Context, db *gorm.DB) ([]domain.Profile, error) {
	var profiles []domain.Profile
	err := db.WithContext(ctx).
		Order("created_at desc, id desc").
		Find(&profiles).Error
	if err != nil {
		return nil, err
	}
	return profiles, nil
}
