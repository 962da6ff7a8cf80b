package service

import (
	"context"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	accountdomain "github.com/utilitech/utilicore/internal/account/domain"
	authdomain "github.com/utilitech/utilicore/internal/auth/domain"
	plandomain "github.com/utilitech/utilicore/internal/plan/domain"
	servicedomain "github.com/utilitech/utilicore/internal/service/domain"
	"github.com/utilitech/utilicore/internal/subscription/domain"
	sysconfigdomain "github.com/utilitech/utilicore/internal/sysconfig/domain"
	"github.com/utilitech/utilicore/pkg/db/pagination"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Params struct {
	fx.In

	DB          *gorm.DB
	Log         *zap.Logger
	GenID       *snowflake.Node
	ServiceRepo servicedomain.Repository
	PlanRepo    plandomain.Repository
	AccountRepo accountdomain.Repository
	Sysconfig   sysconfigdomain.Service
}

type Service struct {
	db          *gorm.DB
	log         *zap.Logger
	genID       *snowflake.Node
	serviceRepo servicedomain.Repository
	planRepo    plandomain.Repository
	accountRepo accountdomain.Repository
	sysconfig   sysconfigdomain.Service
}

func New(p Params) domain.Service {
	return &Service{
		db:          p.DB,
		log:         p.Log.Named("subscription.service"),
		genID:       p.GenID,
		serviceRepo: p.ServiceRepo,
		planRepo:    p.PlanRepo,
		accountRepo: p.AccountRepo,
		sysconfig:   p.Sysconfig,
	}
}

func (s *Service) ListSelf(ctx context.Context, req domain.ListSubscriptionRequest) (domain.ListSubscriptionResponse, error) {
	return s.list(ctx, req, servicedomain.CategorySelf)
}

func (s *Service) ListUsers(ctx context.Context, req domain.ListSubscriptionRequest) (domain.ListSubscriptionResponse, error) {
	return s.list(ctx, req, servicedomain.CategoryUser)
}

func (s *Service) list(ctx context.Context, req domain.ListSubscriptionRequest, category string) (domain.ListSubscriptionResponse, error) {
	filter := servicedomain.ListServiceFilter{
		Category: category,
		Status:   servicedomain.StatusActive,
		PlanName: strings.TrimSpace(req.PlanName),
	}
	// Super admins see every manager's subscriptions.
	if req.ActorRole != authdomain.RoleSuperAdmin {
		filter.ManagedBy = req.ActorID
	}
	if raw := strings.TrimSpace(req.AccountID); raw != "" {
		accountID, err := s.parseID(raw)
		if err != nil {
			return domain.ListSubscriptionResponse{}, err
		}
		filter.AccountID = accountID
	}

	services, err := s.serviceRepo.List(ctx, s.db, filter)
	if err != nil {
		return domain.ListSubscriptionResponse{}, err
	}

	page := req.Page.Normalize()
	total := int64(len(services))
	offset := page.Offset()
	if offset > len(services) {
		offset = len(services)
	}
	end := offset + page.Limit
	if end > len(services) {
		end = len(services)
	}
	paged := services[offset:end]

	views := make([]servicedomain.ServiceView, 0, len(paged))
	for _, svc := range paged {
		views = append(views, s.view(ctx, svc))
	}
	return domain.ListSubscriptionResponse{
		PageInfo:      pagination.BuildPageInfo(total, page),
		Subscriptions: views,
	}, nil
}

func (s *Service) Details(ctx context.Context, req domain.GetSubscriptionRequest) (servicedomain.ServiceView, error) {
	svc, err := s.find(ctx, req.ID)
	if err != nil {
		return servicedomain.ServiceView{}, err
	}
	return s.view(ctx, *svc), nil
}

func (s *Service) Deactivate(ctx context.Context, req domain.DeactivateRequest) (servicedomain.ServiceView, error) {
	svc, err := s.findManaged(ctx, req.ID, req.ActorID, req.ActorRole)
	if err != nil {
		return servicedomain.ServiceView{}, err
	}

	at := time.Now().UTC()
	if req.DeactivationDate != nil {
		at = *req.DeactivationDate
	}

	// A base service's addons are left untouched here.
	s.deactivate(svc, at)
	if err := s.serviceRepo.Update(ctx, s.db, svc); err != nil {
		return servicedomain.ServiceView{}, err
	}
	return s.view(ctx, *svc), nil
}

func (s *Service) ChangePlan(ctx context.Context, req domain.ChangePlanRequest) (servicedomain.ServiceView, error) {
	svc, err := s.findManaged(ctx, req.ServiceID, req.ActorID, req.ActorRole)
	if err != nil {
		return servicedomain.ServiceView{}, err
	}

	newPlanID, err := s.parseID(req.NewPlanID)
	if err != nil {
		return servicedomain.ServiceView{}, err
	}
	newPlan, err := s.planRepo.FindByID(ctx, s.db, newPlanID)
	if err != nil {
		return servicedomain.ServiceView{}, err
	}
	if newPlan == nil {
		return servicedomain.ServiceView{}, domain.ErrPlanNotFound
	}

	activation := time.Now().UTC()
	if req.ActivationDate != nil {
		activation = *req.ActivationDate
	}

	// The old row is closed at the activation date and a new row carries the
	// service location forward, preserving history as a chain of rows.
	s.deactivate(svc, activation)

	next := *svc
	next.ID = s.genID.Generate()
	next.PlanID = newPlan.ID
	next.ServiceType = newPlan.ServiceType
	next.MonthlyCharges = newPlan.Charges
	next.Status = servicedomain.StatusActive
	next.Active = true
	next.StartDate = activation
	next.EndDate = nil
	next.CreatedAt = activation
	next.UpdatedAt = activation

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.serviceRepo.Update(ctx, tx, svc); err != nil {
			return err
		}
		return s.serviceRepo.Insert(ctx, tx, &next)
	})
	if err != nil {
		return servicedomain.ServiceView{}, err
	}
	return s.view(ctx, next), nil
}

func (s *Service) AvailablePlans(ctx context.Context, req domain.AvailablePlansRequest) (domain.PlanListResponse, error) {
	currentPlanID, err := s.parseID(req.CurrentPlanID)
	if err != nil {
		return domain.PlanListResponse{}, err
	}

	// Users may switch to any active non-admin plan, whatever role it is
	// assigned to.
	filter := plandomain.ListPlanFilter{
		Status:           plandomain.StatusActive,
		ExcludeID:        currentPlanID,
		ExcludeAdminOnly: req.ActorRole == authdomain.RoleUser,
	}

	plans, err := s.planRepo.List(ctx, s.db, filter)
	if err != nil {
		return domain.PlanListResponse{}, err
	}
	return s.planViews(ctx, plans), nil
}

func (s *Service) AddonPlans(ctx context.Context, req domain.AddonPlansRequest) (domain.PlanListResponse, error) {
	serviceType := strings.TrimSpace(req.ServiceType)
	if !plandomain.ValidServiceType(serviceType) {
		return domain.PlanListResponse{}, domain.ErrInvalidServiceType
	}

	filter := plandomain.ListPlanFilter{
		Status:           plandomain.StatusActive,
		PlanType:         plandomain.PlanTypeAddon,
		ServiceType:      serviceType,
		ExcludeAdminOnly: req.ActorRole == authdomain.RoleUser,
	}

	plans, err := s.planRepo.List(ctx, s.db, filter)
	if err != nil {
		return domain.PlanListResponse{}, err
	}
	return s.planViews(ctx, plans), nil
}

func (s *Service) ActivateAddon(ctx context.Context, req domain.ActivateAddonRequest) (servicedomain.ServiceView, error) {
	base, err := s.findManaged(ctx, req.ServiceID, req.ActorID, req.ActorRole)
	if err != nil {
		return servicedomain.ServiceView{}, err
	}

	addonPlanID, err := s.parseID(req.AddonPlanID)
	if err != nil {
		return servicedomain.ServiceView{}, err
	}
	addonPlan, err := s.planRepo.FindByID(ctx, s.db, addonPlanID)
	if err != nil {
		return servicedomain.ServiceView{}, err
	}
	if addonPlan == nil {
		return servicedomain.ServiceView{}, domain.ErrPlanNotFound
	}
	if addonPlan.PlanType != plandomain.PlanTypeAddon {
		return servicedomain.ServiceView{}, domain.ErrNotAddonPlan
	}

	now := time.Now().UTC()
	parentID := base.ID
	addon := servicedomain.Service{
		ID:              s.genID.Generate(),
		AccountID:       base.AccountID,
		PlanID:          addonPlan.ID,
		Name:            addonPlan.Name,
		Description:     addonPlan.Description,
		Category:        base.Category,
		ServiceType:     addonPlan.ServiceType,
		MonthlyCharges:  addonPlan.Charges,
		StartDate:       now,
		ServiceAddress:  base.ServiceAddress,
		Status:          servicedomain.StatusActive,
		ManagedBy:       base.ManagedBy,
		IsAddon:         true,
		ParentServiceID: &parentID,
		Active:          true,
		CreatedBy:       req.ActorID,
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	if err := s.serviceRepo.Insert(ctx, s.db, &addon); err != nil {
		return servicedomain.ServiceView{}, err
	}
	return s.view(ctx, addon), nil
}

func (s *Service) DeactivateAddon(ctx context.Context, req domain.DeactivateAddonRequest) (servicedomain.ServiceView, error) {
	addon, err := s.findManaged(ctx, req.AddonServiceID, req.ActorID, req.ActorRole)
	if err != nil {
		return servicedomain.ServiceView{}, err
	}
	if !addon.IsAddon {
		return servicedomain.ServiceView{}, domain.ErrNotAddonService
	}

	// Only the addon row is closed; the base service stays active.
	s.deactivate(addon, time.Now().UTC())
	if err := s.serviceRepo.Update(ctx, s.db, addon); err != nil {
		return servicedomain.ServiceView{}, err
	}
	return s.view(ctx, *addon), nil
}

func (s *Service) deactivate(svc *servicedomain.Service, at time.Time) {
	svc.Status = servicedomain.StatusInactive
	svc.Active = false
	svc.EndDate = &at
	svc.UpdatedAt = at
}

func (s *Service) find(ctx context.Context, rawID string) (*servicedomain.Service, error) {
	id, err := s.parseID(rawID)
	if err != nil {
		return nil, err
	}
	svc, err := s.serviceRepo.FindByID(ctx, s.db, id)
	if err != nil {
		return nil, err
	}
	if svc == nil {
		return nil, domain.ErrNotFound
	}
	return svc, nil
}

func (s *Service) findManaged(ctx context.Context, rawID string, actorID snowflake.ID, actorRole string) (*servicedomain.Service, error) {
	svc, err := s.find(ctx, rawID)
	if err != nil {
		return nil, err
	}
	if actorRole != authdomain.RoleSuperAdmin && svc.ManagedBy != actorID {
		return nil, domain.ErrForbidden
	}
	return svc, nil
}

func (s *Service) view(ctx context.Context, svc servicedomain.Service) servicedomain.ServiceView {
	view := servicedomain.ServiceView{Service: svc}
	if plan, err := s.planRepo.FindByID(ctx, s.db, svc.PlanID); err == nil && plan != nil {
		pv := plandomain.View(*plan, s.sysconfig.DepositMultiplier(ctx))
		view.Plan = &pv
	}
	if account, err := s.accountRepo.FindByID(ctx, s.db, svc.AccountID); err == nil {
		view.Account = account
	}
	return view
}

func (s *Service) planViews(ctx context.Context, plans []plandomain.Plan) domain.PlanListResponse {
	multiplier := s.sysconfig.DepositMultiplier(ctx)
	views := make([]plandomain.PlanView, 0, len(plans))
	for _, plan := range plans {
		views = append(views, plandomain.View(plan, multiplier))
	}
	return domain.PlanListResponse{Plans: views}
}

func (s *Service) parseID(value string) (snowflake.ID, error) {
	id, err := snowflake.ParseString(strings.TrimSpace(value))
	if err != nil || id == 0 {
		return 0, domain.ErrInvalidID
	}
	return id, nil
}
