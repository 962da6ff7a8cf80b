package service

import (
	"context"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/gosimple/slug"
	"github.com/utilitech/utilicore/internal/profile/domain"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Params struct {
	fx.In

	DB    *gorm.DB
	Log   *zap.Logger
	GenID *snowflake.Node
	Repo  domain.Repository
}

type Service struct {
	db    *gorm.DB
	log   *zap.Logger
	genID *snowflake.Node
	repo  domain.Repository
}

func New(p Params) domain.Service {
	return &Service{
		db:    p.DB,
		log:   p.Log.Named("profile.service"),
		genID: p.GenID,
		repo:  p.Repo,
	}
}

func (s *Service) Create(ctx context.Context, req domain.CreateProfileRequest) (domain.Profile, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return domain.Profile{}, domain.ErrInvalidName
	}

	masterID, err := s.parseOptionalID(req.MasterProfileID)
	if err != nil {
		return domain.Profile{}, domain.ErrInvalidMasterProfile
	}
	if masterID != nil {
		master, err := s.repo.FindByID(ctx, s.db, *masterID)
		if err != nil {
			return domain.Profile{}, err
		}
		if master == nil {
			return domain.Profile{}, domain.ErrInvalidMasterProfile
		}
	}

	linkedPlanID, err := s.parseOptionalID(req.LinkedPlanID)
	if err != nil {
		return domain.Profile{}, domain.ErrInvalidID
	}

	now := time.Now().UTC()
	profile := domain.Profile{
		ID:              s.genID.Generate(),
		Name:            name,
		Slug:            slug.Make(name),
		Email:           strings.TrimSpace(req.Email),
		Phone:           strings.TrimSpace(req.Phone),
		Profession:      strings.TrimSpace(req.Profession),
		Address:         strings.TrimSpace(req.Address),
		City:            strings.TrimSpace(req.City),
		State:           strings.TrimSpace(req.State),
		Zipcode:         strings.TrimSpace(req.Zipcode),
		DepositAmount:   req.DepositAmount,
		LinkedPlanID:    linkedPlanID,
		MasterProfileID: masterID,
		IsMasterProfile: req.IsMasterProfile,
		Active:          true,
		CreatedBy:       req.ActorID,
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	if err := s.repo.Insert(ctx, s.db, &profile); err != nil {
		return domain.Profile{}, err
	}
	return profile, nil
}

func (s *Service) List(ctx context.Context) (domain.ListProfileResponse, error) {
	profiles, err := s.repo.List(ctx, s.db)
	if err != nil {
		return domain.ListProfileResponse{}, err
	}
	return domain.ListProfileResponse{Profiles: profiles}, nil
}

func (s *Service) GetByID(ctx context.Context, req domain.GetProfileRequest) (domain.Profile, error) {
	id, err := s.parseID(req.ID)
	if err != nil {
		return domain.Profile{}, err
	}
	profile, err := s.repo.FindByID(ctx, s.db, id)
	if err != nil {
		return domain.Profile{}, err
	}
	if profile == nil {
		return domain.Profile{}, domain.ErrNotFound
	}
	return *profile, nil
}

func (s *Service) Update(ctx context.Context, req domain.UpdateProfileRequest) (domain.Profile, error) {
	id, err := s.parseID(req.ID)
	if err != nil {
		return domain.Profile{}, err
	}
	profile, err := s.repo.FindByID(ctx, s.db, id)
	if err != nil {
		return domain.Profile{}, err
	}
	if profile == nil {
		return domain.Profile{}, domain.ErrNotFound
	}

	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			return domain.Profile{}, domain.ErrInvalidName
		}
		profile.Name = name
		profile.Slug = slug.Make(name)
	}
	if req.Email != nil {
		profile.Email = strings.TrimSpace(*req.Email)
	}
	if req.Phone != nil {
		profile.Phone = strings.TrimSpace(*req.Phone)
	}
	if req.Profession != nil {
		profile.Profession = strings.TrimSpace(*req.Profession)
	}
	if req.Address != nil {
		profile.Address = strings.TrimSpace(*req.Address)
	}
	if req.City != nil {
		profile.City = strings.TrimSpace(*req.City)
	}
	if req.State != nil {
		profile.State = strings.TrimSpace(*req.State)
	}
	if req.Zipcode != nil {
		profile.Zipcode = strings.TrimSpace(*req.Zipcode)
	}
	if req.DepositAmount != nil {
		profile.DepositAmount = *req.DepositAmount
	}
	if req.LinkedPlanID != nil {
		linkedPlanID, err := s.parseOptionalID(*req.LinkedPlanID)
		if err != nil {
			return domain.Profile{}, domain.ErrInvalidID
		}
		profile.LinkedPlanID = linkedPlanID
	}
	if req.MasterProfileID != nil {
		masterID, err := s.parseOptionalID(*req.MasterProfileID)
		if err != nil {
			return domain.Profile{}, domain.ErrInvalidMasterProfile
		}
		if masterID != nil {
			master, err := s.repo.FindByID(ctx, s.db, *masterID)
			if err != nil {
				return domain.Profile{}, err
			}
			if master == nil {
				return domain.Profile{}, domain.ErrInvalidMasterProfile
			}
		}
		profile.MasterProfileID = masterID
	}
	if req.IsMasterProfile != nil {
		profile.IsMasterProfile = *req.IsMasterProfile
	}
	if req.Active != nil {
		profile.Active = *req.Active
	}
	profile.UpdatedAt = time.Now().UTC()

	if err := s.repo.Update(ctx, s.db, profile); err != nil {
		return domain.Profile{}, err
	}
	return *profile, nil
}

func (s *Service) parseID(value string) (snowflake.ID, error) {
	id, err := snowflake.ParseString(strings.TrimSpace(value))
	if err != nil || id == 0 {
		return 0, domain.ErrInvalidID
	}
	return id, nil
}

func (s *Service) parseOptionalID(value string) (*snowflake.ID, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil, nil
	}
	id, err := snowflake.ParseString(value)
	if err != nil || id == 0 {
		return nil, domain.ErrInvalidID
	}
	return &id, nil
}
