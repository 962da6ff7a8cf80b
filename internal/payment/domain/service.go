package domain

import (
	"context"
	"errors"

	"github.com/bwmarrin/snowflake"
	"github.com/utilitech/utilicore/pkg/db/pagination"
)

type ListPaymentRequest struct {
	ActorID   snowflake.ID
	ActorRole string

	AccountID string
	Status    string
	Paging    pagination.Params
}

type ListPaymentResponse struct {
	pagination.PageInfo
	Payments []Payment `json:"payments"`
}

type Service interface {
	List(context.Context, ListPaymentRequest) (ListPaymentResponse, error)
}

var ErrInvalidID = errors.New("invalid_id")
