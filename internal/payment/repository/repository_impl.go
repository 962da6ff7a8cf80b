package repository

import (
	"context"

	"github.com/utilitech/utilicore/internal/payment/domain"
	"github.com/utilitech/utilicore/pkg/db/pagination"
	"gorm.io/gorm"
)

type repo struct{}

func Provide() domain.Repository {
	return &repo{}
}

func (r *repo) List(ctx context.Context, db *gorm.DB, filter domain.ListPaymentFilter, paging pagination.Params) ([]domain.Payment, int64, error) {
	stmt := db.WithContext(ctx).Model(&domain.Payment{})
	if filter.AccountID != 0 {
		stmt = stmt.Where("account_id = ?", filter.AccountID)
	}
	if len(filter.AccountIDs) > 0 {
		stmt = stmt.Where("account_id IN ?", filter.AccountIDs)
	}
	if filter.Status != "" {
		stmt = stmt.Where("status = ?", filter.Status)
	}

	var total int64
	if err := stmt.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var payments []domain.Payment
	err := paging.Apply(stmt).
		Order("payment_date desc, id desc").
		Find(&payments).Error
	if err != nil {
		return nil, 0, err
	}
	return payments, total, nil
}
