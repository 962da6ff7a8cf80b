package domain

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"github.com/utilitech/utilicore/pkg/db/pagination"
	"gorm.io/gorm"
)

type ListPaymentFilter struct {
	AccountID  snowflake.ID
	AccountIDs []snowflake.ID
	Status     string
}

type Repository interface {
	List(ctx context.Context, db *gorm.DB, filter ListPaymentFilter, paging pagination.Params) ([]Payment, int64, error)
}
