package service

import (
	"context"
	"time"

	"github.com/utilitech/utilicore/internal/sysconfig/domain"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Params struct {
	fx.In

	DB   *gorm.DB
	Log  *zap.Logger
	Repo domain.Repository
}

type Service struct {
	db   *gorm.DB
	log  *zap.Logger
	repo domain.Repository
}

func New(p Params) domain.Service {
	return &Service{
		db:   p.DB,
		log:  p.Log.Named("sysconfig.service"),
		repo: p.Repo,
	}
}

func (s *Service) Get(ctx context.Context) (domain.ConfigResponse, error) {
	return domain.ConfigResponse{DepositMultiplier: s.DepositMultiplier(ctx)}, nil
}

func (s *Service) Update(ctx context.Context, req domain.UpdateConfigRequest) (domain.ConfigResponse, error) {
	if req.DepositMultiplier <= 0 {
		return domain.ConfigResponse{}, domain.ErrInvalidMultiplier
	}

	entry := domain.ConfigEntry{
		Key:       domain.KeyDepositMultiplier,
		Value:     req.DepositMultiplier,
		UpdatedAt: time.Now().UTC(),
	}
	if err := s.repo.Upsert(ctx, s.db, &entry); err != nil {
		return domain.ConfigResponse{}, err
	}

	s.log.Info("deposit multiplier updated", zap.Float64("value", entry.Value))
	return domain.ConfigResponse{DepositMultiplier: entry.Value}, nil
}

func (s *Service) DepositMultiplier(ctx context.Context) float64 {
	entry, err := s.repo.FindByKey(ctx, s.db, domain.KeyDepositMultiplier)
	if err != nil || entry == nil || entry.Value <= 0 {
		return domain.DefaultDepositMultiplier
	}
	return entry.Value
}
