package service

import (
	"context"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/utilitech/utilicore/internal/account/domain"
	authdomain "github.com/utilitech/utilicore/internal/auth/domain"
	profiledomain "github.com/utilitech/utilicore/internal/profile/domain"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Params struct {
	fx.In

	DB          *gorm.DB
	Log         *zap.Logger
	GenID       *snowflake.Node
	Repo        domain.Repository
	ProfileRepo profiledomain.Repository
}

type Service struct {
	db          *gorm.DB
	log         *zap.Logger
	genID       *snowflake.Node
	repo        domain.Repository
	profileRepo profiledomain.Repository
}

func New(p Params) domain.Service {
	return &Service{
		db:          p.DB,
		log:         p.Log.Named("account.service"),
		genID:       p.GenID,
		repo:        p.Repo,
		profileRepo: p.ProfileRepo,
	}
}

func (s *Service) Create(ctx context.Context, req domain.CreateAccountRequest) (domain.Account, error) {
	name := strings.TrimSpace(req.AccountName)
	if name == "" {
		return domain.Account{}, domain.ErrInvalidName
	}

	profileID, err := snowflake.ParseString(strings.TrimSpace(req.ProfileID))
	if err != nil || profileID == 0 {
		return domain.Account{}, domain.ErrInvalidID
	}
	profile, err := s.profileRepo.FindByID(ctx, s.db, profileID)
	if err != nil {
		return domain.Account{}, err
	}
	if profile == nil {
		return domain.Account{}, domain.ErrProfileNotFound
	}

	now := time.Now().UTC()
	account := domain.Account{
		ID:             s.genID.Generate(),
		ProfileID:      profileID,
		UserID:         req.ActorID,
		AccountName:    name,
		ContactName:    strings.TrimSpace(req.ContactName),
		Email:          strings.TrimSpace(req.Email),
		Phone:          strings.TrimSpace(req.Phone),
		ServiceAddress: strings.TrimSpace(req.ServiceAddress),
		BillingAddress: strings.TrimSpace(req.BillingAddress),
		BusinessType:   strings.TrimSpace(req.BusinessType),
		TaxID:          strings.TrimSpace(req.TaxID),
		DepositPaid:    req.DepositPaid,
		CreditLimit:    req.CreditLimit,
		Status:         "active",
		CreatedBy:      req.ActorID,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	if err := s.repo.Insert(ctx, s.db, &account); err != nil {
		return domain.Account{}, err
	}
	return account, nil
}

func (s *Service) List(ctx context.Context, req domain.ListAccountRequest) (domain.ListAccountResponse, error) {
	filter := domain.ListAccountFilter{}
	// End users never see accounts they do not own.
	if req.ActorRole == authdomain.RoleUser {
		filter.UserID = req.ActorID
	}
	if raw := strings.TrimSpace(req.ProfileID); raw != "" {
		profileID, err := snowflake.ParseString(raw)
		if err != nil || profileID == 0 {
			return domain.ListAccountResponse{}, domain.ErrInvalidID
		}
		filter.ProfileID = profileID
	}

	accounts, err := s.repo.List(ctx, s.db, filter)
	if err != nil {
		return domain.ListAccountResponse{}, err
	}
	return domain.ListAccountResponse{Accounts: accounts}, nil
}

func (s *Service) GetByID(ctx context.Context, req domain.GetAccountRequest) (domain.Account, error) {
	id, err := snowflake.ParseString(strings.TrimSpace(req.ID))
	if err != nil || id == 0 {
		return domain.Account{}, domain.ErrInvalidID
	}

	account, err := s.repo.FindByID(ctx, s.db, id)
	if err != nil {
		return domain.Account{}, err
	}
	if account == nil {
		return domain.Account{}, domain.ErrNotFound
	}
	if req.ActorRole == authdomain.RoleUser && account.UserID != req.ActorID {
		return domain.Account{}, domain.ErrForbidden
	}
	return *account, nil
}
