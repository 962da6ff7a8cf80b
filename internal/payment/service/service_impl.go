package service

import (
	"context"
	"strings"

	"github.com/bwmarrin/snowflake"
	accountdomain "github.com/utilitech/utilicore/internal/account/domain"
	authdomain "github.com/utilitech/utilicore/internal/auth/domain"
	"github.com/utilitech/utilicore/internal/payment/domain"
	"github.com/utilitech/utilicore/pkg/db/pagination"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Params struct {
	fx.In

	DB          *gorm.DB
	Log         *zap.Logger
	Repo        domain.Repository
	AccountRepo accountdomain.Repository
}

type Service struct {
	db          *gorm.DB
	log         *zap.Logger
	repo        domain.Repository
	accountRepo accountdomain.Repository
}

func New(p Params) domain.Service {
	return &Service{
		db:          p.DB,
		log:         p.Log.Named("payment.service"),
		repo:        p.Repo,
		accountRepo: p.AccountRepo,
	}
}

func (s *Service) List(ctx context.Context, req domain.ListPaymentRequest) (domain.ListPaymentResponse, error) {
	paging := req.Paging.Normalize()

	filter := domain.ListPaymentFilter{Status: strings.TrimSpace(req.Status)}
	if raw := strings.TrimSpace(req.AccountID); raw != "" {
		accountID, err := snowflake.ParseString(raw)
		if err != nil || accountID == 0 {
			return domain.ListPaymentResponse{}, domain.ErrInvalidID
		}
		filter.AccountID = accountID
	}
	// End users only see payments on their own accounts.
	if req.ActorRole == authdomain.RoleUser {
		accounts, err := s.accountRepo.List(ctx, s.db, accountdomain.ListAccountFilter{UserID: req.ActorID})
		if err != nil {
			return domain.ListPaymentResponse{}, err
		}
		if len(accounts) == 0 {
			return domain.ListPaymentResponse{
				PageInfo: pagination.BuildPageInfo(0, paging),
				Payments: []domain.Payment{},
			}, nil
		}
		for _, account := range accounts {
			filter.AccountIDs = append(filter.AccountIDs, account.ID)
		}
	}

	payments, total, err := s.repo.List(ctx, s.db, filter, paging)
	if err != nil {
		return domain.ListPaymentResponse{}, err
	}
	return domain.ListPaymentResponse{
		PageInfo: pagination.BuildPageInfo(total, paging),
		Payments: payments,
	}, nil
}
