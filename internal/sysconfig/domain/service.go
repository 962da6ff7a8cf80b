package domain

import (
	"context"
	"errors"
)

type ConfigResponse struct {
	DepositMultiplier float64 `json:"deposit_multiplier"`
}

type UpdateConfigRequest struct {
	DepositMultiplier float64
}

type Service interface {
	Get(context.Context) (ConfigResponse, error)
	Update(context.Context, UpdateConfigRequest) (ConfigResponse, error)
	// DepositMultiplier returns the configured default, falling back to 2.0
	// when nothing is stored.
	DepositMultiplier(context.Context) float64
}

var ErrInvalidMultiplier = errors.New("invalid_multiplier")
