package service

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	authdomain "github.com/utilitech/utilicore/internal/auth/domain"
	"github.com/utilitech/utilicore/internal/plan/domain"
	sysconfigdomain "github.com/utilitech/utilicore/internal/sysconfig/domain"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type Params struct {
	fx.In

	DB        *gorm.DB
	Log       *zap.Logger
	GenID     *snowflake.Node
	Repo      domain.Repository
	Sysconfig sysconfigdomain.Service
}

type Service struct {
	db        *gorm.DB
	log       *zap.Logger
	genID     *snowflake.Node
	repo      domain.Repository
	sysconfig sysconfigdomain.Service
}

func New(p Params) domain.Service {
	return &Service{
		db:        p.DB,
		log:       p.Log.Named("plan.service"),
		genID:     p.GenID,
		repo:      p.Repo,
		sysconfig: p.Sysconfig,
	}
}

func (s *Service) Create(ctx context.Context, req domain.CreatePlanRequest) (domain.PlanView, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return domain.PlanView{}, domain.ErrInvalidName
	}
	planType := req.PlanType
	if planType == 0 {
		planType = domain.PlanTypeBase
	}
	if planType != domain.PlanTypeBase && planType != domain.PlanTypeAddon {
		return domain.PlanView{}, domain.ErrInvalidPlanType
	}
	serviceType := strings.TrimSpace(req.ServiceType)
	if !domain.ValidServiceType(serviceType) {
		return domain.PlanView{}, domain.ErrInvalidServiceType
	}

	var createdForAdmin *snowflake.ID
	if raw := strings.TrimSpace(req.CreatedForAdmin); raw != "" {
		id, err := snowflake.ParseString(raw)
		if err != nil || id == 0 {
			return domain.PlanView{}, domain.ErrInvalidID
		}
		createdForAdmin = &id
	}

	assignedToRole := strings.TrimSpace(req.AssignedToRole)
	if assignedToRole == "" {
		assignedToRole = authdomain.RoleUser
	}

	features, err := encodeFeatures(req.Features)
	if err != nil {
		return domain.PlanView{}, err
	}

	now := time.Now().UTC()
	plan := domain.Plan{
		ID:                s.genID.Generate(),
		Name:              name,
		Description:       strings.TrimSpace(req.Description),
		PlanType:          planType,
		ServiceType:       serviceType,
		ChargeType:        strings.TrimSpace(req.ChargeType),
		ChargeCategory:    strings.TrimSpace(req.ChargeCategory),
		BasePrice:         req.BasePrice,
		Charges:           req.Charges,
		SetupFee:          req.SetupFee,
		BillingFrequency:  strings.TrimSpace(req.BillingFrequency),
		StartDate:         req.StartDate,
		EndDate:           req.EndDate,
		DepositMultiplier: req.DepositMultiplier,
		Features:          features,
		Terms:             strings.TrimSpace(req.Terms),
		Proration:         req.Proration,
		Status:            domain.StatusActive,
		IsForAdmin:        req.IsForAdmin,
		AssignedToRole:    assignedToRole,
		CreatedForAdmin:   createdForAdmin,
		CreatedBy:         req.ActorID,
		CreatedAt:         now,
		UpdatedAt:         now,
	}

	if err := s.repo.Insert(ctx, s.db, &plan); err != nil {
		return domain.PlanView{}, err
	}
	return s.view(ctx, plan), nil
}

func (s *Service) List(ctx context.Context, req domain.ListPlanRequest) (domain.ListPlanResponse, error) {
	plans, err := s.repo.List(ctx, s.db, domain.ListPlanFilter{
		Role:        req.ActorRole,
		ActorID:     req.ActorID,
		ServiceType: strings.TrimSpace(req.ServiceType),
		PlanType:    req.PlanType,
		Status:      strings.TrimSpace(req.Status),
	})
	if err != nil {
		return domain.ListPlanResponse{}, err
	}

	multiplier := s.sysconfig.DepositMultiplier(ctx)
	views := make([]domain.PlanView, 0, len(plans))
	for _, plan := range plans {
		views = append(views, domain.View(plan, multiplier))
	}
	return domain.ListPlanResponse{Plans: views}, nil
}

func (s *Service) GetByID(ctx context.Context, req domain.GetPlanRequest) (domain.PlanView, error) {
	id, err := s.parseID(req.ID)
	if err != nil {
		return domain.PlanView{}, err
	}
	plan, err := s.repo.FindByID(ctx, s.db, id)
	if err != nil {
		return domain.PlanView{}, err
	}
	if plan == nil {
		return domain.PlanView{}, domain.ErrNotFound
	}
	return s.view(ctx, *plan), nil
}

func (s *Service) Update(ctx context.Context, req domain.UpdatePlanRequest) (domain.PlanView, error) {
	id, err := s.parseID(req.ID)
	if err != nil {
		return domain.PlanView{}, err
	}
	plan, err := s.repo.FindByID(ctx, s.db, id)
	if err != nil {
		return domain.PlanView{}, err
	}
	if plan == nil {
		return domain.PlanView{}, domain.ErrNotFound
	}

	// Admins may only touch plans they created or that were created for them.
	if req.ActorRole == authdomain.RoleAdmin {
		ownedByActor := plan.CreatedBy == req.ActorID ||
			(plan.CreatedForAdmin != nil && *plan.CreatedForAdmin == req.ActorID)
		if !ownedByActor {
			return domain.PlanView{}, domain.ErrForbidden
		}
	}

	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			return domain.PlanView{}, domain.ErrInvalidName
		}
		plan.Name = name
	}
	if req.Description != nil {
		plan.Description = strings.TrimSpace(*req.Description)
	}
	if req.ChargeType != nil {
		plan.ChargeType = strings.TrimSpace(*req.ChargeType)
	}
	if req.ChargeCategory != nil {
		plan.ChargeCategory = strings.TrimSpace(*req.ChargeCategory)
	}
	if req.BasePrice != nil {
		plan.BasePrice = *req.BasePrice
	}
	if req.Charges != nil {
		plan.Charges = *req.Charges
	}
	if req.SetupFee != nil {
		plan.SetupFee = *req.SetupFee
	}
	if req.BillingFrequency != nil {
		plan.BillingFrequency = strings.TrimSpace(*req.BillingFrequency)
	}
	if req.StartDate != nil {
		plan.StartDate = req.StartDate
	}
	if req.EndDate != nil {
		plan.EndDate = req.EndDate
	}
	if req.DepositMultiplier != nil {
		plan.DepositMultiplier = req.DepositMultiplier
	}
	if req.Features != nil {
		features, err := encodeFeatures(req.Features)
		if err != nil {
			return domain.PlanView{}, err
		}
		plan.Features = features
	}
	if req.Terms != nil {
		plan.Terms = strings.TrimSpace(*req.Terms)
	}
	if req.Proration != nil {
		plan.Proration = *req.Proration
	}
	if req.Status != nil {
		status := strings.TrimSpace(*req.Status)
		if status != domain.StatusActive && status != domain.StatusInactive {
			return domain.PlanView{}, domain.ErrInvalidStatus
		}
		plan.Status = status
	}
	if req.AssignedToRole != nil {
		plan.AssignedToRole = strings.TrimSpace(*req.AssignedToRole)
	}
	plan.UpdatedAt = time.Now().UTC()

	if err := s.repo.Update(ctx, s.db, plan); err != nil {
		return domain.PlanView{}, err
	}
	return s.view(ctx, *plan), nil
}

func (s *Service) view(ctx context.Context, plan domain.Plan) domain.PlanView {
	return domain.View(plan, s.sysconfig.DepositMultiplier(ctx))
}

func (s *Service) parseID(value string) (snowflake.ID, error) {
	id, err := snowflake.ParseString(strings.TrimSpace(value))
	if err != nil || id == 0 {
		return 0, domain.ErrInvalidID
	}
	return id, nil
}

func encodeFeatures(features []string) (datatypes.JSON, error) {
	if features == nil {
		return nil, nil
	}
	raw, err := json.Marshal(features)
	if err != nil {
		return nil, err
	}
	return datatypes.JSON(raw), nil
}
