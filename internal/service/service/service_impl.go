package service

import (
	"context"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	accountdomain "github.com/utilitech/utilicore/internal/account/domain"
	authdomain "github.com/utilitech/utilicore/internal/auth/domain"
	plandomain "github.com/utilitech/utilicore/internal/plan/domain"
	"github.com/utilitech/utilicore/internal/service/domain"
	sysconfigdomain "github.com/utilitech/utilicore/internal/sysconfig/domain"
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
	AccountRepo accountdomain.Repository
	PlanRepo    plandomain.Repository
	Sysconfig   sysconfigdomain.Service
}

type Service struct {
	db          *gorm.DB
	log         *zap.Logger
	genID       *snowflake.Node
	repo        domain.Repository
	accountRepo accountdomain.Repository
	planRepo    plandomain.Repository
	sysconfig   sysconfigdomain.Service
}

func New(p Params) domain.Manager {
	return &Service{
		db:          p.DB,
		log:         p.Log.Named("service.service"),
		genID:       p.GenID,
		repo:        p.Repo,
		accountRepo: p.AccountRepo,
		planRepo:    p.PlanRepo,
		sysconfig:   p.Sysconfig,
	}
}

func (s *Service) Create(ctx context.Context, req domain.CreateServiceRequest) (domain.ServiceView, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return domain.ServiceView{}, domain.ErrInvalidName
	}
	category := strings.TrimSpace(req.Category)
	if category == "" {
		category = domain.CategoryUser
	}
	if !domain.ValidCategory(category) {
		return domain.ServiceView{}, domain.ErrInvalidCategory
	}

	accountID, err := s.parseID(req.AccountID)
	if err != nil {
		return domain.ServiceView{}, err
	}
	account, err := s.accountRepo.FindByID(ctx, s.db, accountID)
	if err != nil {
		return domain.ServiceView{}, err
	}
	if account == nil {
		return domain.ServiceView{}, domain.ErrAccountNotFound
	}
	if req.ActorRole == authdomain.RoleUser && account.UserID != req.ActorID {
		return domain.ServiceView{}, domain.ErrForbidden
	}

	planID, err := s.parseID(req.PlanID)
	if err != nil {
		return domain.ServiceView{}, err
	}
	plan, err := s.planRepo.FindByID(ctx, s.db, planID)
	if err != nil {
		return domain.ServiceView{}, err
	}
	if plan == nil {
		return domain.ServiceView{}, domain.ErrPlanNotFound
	}

	// Addons must reference an existing base service at write time.
	var parentServiceID *snowflake.ID
	if req.IsAddon {
		parentID, err := snowflake.ParseString(strings.TrimSpace(req.ParentServiceID))
		if err != nil || parentID == 0 {
			return domain.ServiceView{}, domain.ErrInvalidParentService
		}
		parent, err := s.repo.FindByID(ctx, s.db, parentID)
		if err != nil {
			return domain.ServiceView{}, err
		}
		if parent == nil {
			return domain.ServiceView{}, domain.ErrInvalidParentService
		}
		parentServiceID = &parentID
	}

	var assignedTo *snowflake.ID
	if raw := strings.TrimSpace(req.AssignedTo); raw != "" {
		id, err := snowflake.ParseString(raw)
		if err != nil || id == 0 {
			return domain.ServiceView{}, domain.ErrInvalidID
		}
		assignedTo = &id
	}

	serviceType := strings.TrimSpace(req.ServiceType)
	if serviceType == "" {
		serviceType = plan.ServiceType
	}
	monthlyCharges := req.MonthlyCharges
	if monthlyCharges == 0 {
		monthlyCharges = plan.Charges
	}

	now := time.Now().UTC()
	startDate := now
	if req.StartDate != nil {
		startDate = *req.StartDate
	}

	svc := domain.Service{
		ID:                s.genID.Generate(),
		AccountID:         accountID,
		PlanID:            planID,
		Name:              name,
		Description:       strings.TrimSpace(req.Description),
		Category:          category,
		ServiceType:       serviceType,
		CustomPrice:       req.CustomPrice,
		MonthlyCharges:    monthlyCharges,
		StartDate:         startDate,
		ServiceAddress:    strings.TrimSpace(req.ServiceAddress),
		InstallationNotes: strings.TrimSpace(req.InstallationNotes),
		MeterNumber:       strings.TrimSpace(req.MeterNumber),
		ConnectionType:    strings.TrimSpace(req.ConnectionType),
		Capacity:          strings.TrimSpace(req.Capacity),
		Status:            domain.StatusActive,
		ManagedBy:         req.ActorID,
		AssignedTo:        assignedTo,
		Priority:          strings.TrimSpace(req.Priority),
		IsAddon:           req.IsAddon,
		ParentServiceID:   parentServiceID,
		Active:            true,
		CreatedBy:         req.ActorID,
		CreatedAt:         now,
		UpdatedAt:         now,
	}

	if err := s.repo.Insert(ctx, s.db, &svc); err != nil {
		return domain.ServiceView{}, err
	}
	return s.view(ctx, svc, plan, account), nil
}

func (s *Service) List(ctx context.Context, req domain.ListServiceRequest) (domain.ListServiceResponse, error) {
	filter := domain.ListServiceFilter{}
	if raw := strings.TrimSpace(req.AccountID); raw != "" {
		accountID, err := s.parseID(raw)
		if err != nil {
			return domain.ListServiceResponse{}, err
		}
		account, err := s.accountRepo.FindByID(ctx, s.db, accountID)
		if err != nil {
			return domain.ListServiceResponse{}, err
		}
		if account == nil {
			return domain.ListServiceResponse{}, domain.ErrAccountNotFound
		}
		if req.ActorRole == authdomain.RoleUser && account.UserID != req.ActorID {
			return domain.ListServiceResponse{}, domain.ErrForbidden
		}
		filter.AccountID = accountID
	} else if req.ActorRole == authdomain.RoleUser {
		accounts, err := s.accountRepo.List(ctx, s.db, accountdomain.ListAccountFilter{UserID: req.ActorID})
		if err != nil {
			return domain.ListServiceResponse{}, err
		}
		if len(accounts) == 0 {
			return domain.ListServiceResponse{Services: []domain.ServiceView{}}, nil
		}
		for _, account := range accounts {
			filter.AccountIDs = append(filter.AccountIDs, account.ID)
		}
	}

	services, err := s.repo.List(ctx, s.db, filter)
	if err != nil {
		return domain.ListServiceResponse{}, err
	}
	views, err := s.views(ctx, services)
	if err != nil {
		return domain.ListServiceResponse{}, err
	}
	return domain.ListServiceResponse{Services: views}, nil
}

func (s *Service) GetByID(ctx context.Context, req domain.GetServiceRequest) (domain.ServiceView, error) {
	svc, err := s.findOwned(ctx, req.ID, req.ActorID, req.ActorRole)
	if err != nil {
		return domain.ServiceView{}, err
	}
	return s.view(ctx, *svc, nil, nil), nil
}

func (s *Service) Update(ctx context.Context, req domain.UpdateServiceRequest) (domain.ServiceView, error) {
	svc, err := s.findOwned(ctx, req.ID, req.ActorID, req.ActorRole)
	if err != nil {
		return domain.ServiceView{}, err
	}

	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			return domain.ServiceView{}, domain.ErrInvalidName
		}
		svc.Name = name
	}
	if req.Description != nil {
		svc.Description = strings.TrimSpace(*req.Description)
	}
	if req.CustomPrice != nil {
		svc.CustomPrice = req.CustomPrice
	}
	if req.MonthlyCharges != nil {
		svc.MonthlyCharges = *req.MonthlyCharges
	}
	if req.EndDate != nil {
		svc.EndDate = req.EndDate
	}
	if req.ServiceAddress != nil {
		svc.ServiceAddress = strings.TrimSpace(*req.ServiceAddress)
	}
	if req.InstallationNotes != nil {
		svc.InstallationNotes = strings.TrimSpace(*req.InstallationNotes)
	}
	if req.MeterNumber != nil {
		svc.MeterNumber = strings.TrimSpace(*req.MeterNumber)
	}
	if req.ConnectionType != nil {
		svc.ConnectionType = strings.TrimSpace(*req.ConnectionType)
	}
	if req.Capacity != nil {
		svc.Capacity = strings.TrimSpace(*req.Capacity)
	}
	if req.Status != nil {
		status := strings.TrimSpace(*req.Status)
		if status != domain.StatusActive && status != domain.StatusInactive {
			return domain.ServiceView{}, domain.ErrInvalidStatus
		}
		svc.Status = status
		if status == domain.StatusInactive && svc.EndDate == nil {
			now := time.Now().UTC()
			svc.EndDate = &now
		}
	}
	if req.Priority != nil {
		svc.Priority = strings.TrimSpace(*req.Priority)
	}
	if req.LastReading != nil {
		svc.LastReading = req.LastReading
	}
	svc.UpdatedAt = time.Now().UTC()

	if err := s.repo.Update(ctx, s.db, svc); err != nil {
		return domain.ServiceView{}, err
	}
	return s.view(ctx, *svc, nil, nil), nil
}

func (s *Service) findOwned(ctx context.Context, rawID string, actorID snowflake.ID, actorRole string) (*domain.Service, error) {
	id, err := s.parseID(rawID)
	if err != nil {
		return nil, err
	}
	svc, err := s.repo.FindByID(ctx, s.db, id)
	if err != nil {
		return nil, err
	}
	if svc == nil {
		return nil, domain.ErrNotFound
	}
	if actorRole == authdomain.RoleUser {
		account, err := s.accountRepo.FindByID(ctx, s.db, svc.AccountID)
		if err != nil {
			return nil, err
		}
		if account == nil || account.UserID != actorID {
			return nil, domain.ErrForbidden
		}
	}
	return svc, nil
}

func (s *Service) view(ctx context.Context, svc domain.Service, plan *plandomain.Plan, account *accountdomain.Account) domain.ServiceView {
	view := domain.ServiceView{Service: svc}

	if plan == nil {
		plan, _ = s.planRepo.FindByID(ctx, s.db, svc.PlanID)
	}
	if plan != nil {
		pv := plandomain.View(*plan, s.sysconfig.DepositMultiplier(ctx))
		view.Plan = &pv
	}

	if account == nil {
		account, _ = s.accountRepo.FindByID(ctx, s.db, svc.AccountID)
	}
	view.Account = account
	return view
}

func (s *Service) views(ctx context.Context, services []domain.Service) ([]domain.ServiceView, error) {
	multiplier := s.sysconfig.DepositMultiplier(ctx)
	planCache := map[snowflake.ID]*plandomain.PlanView{}
	accountCache := map[snowflake.ID]*accountdomain.Account{}

	views := make([]domain.ServiceView, 0, len(services))
	for _, svc := range services {
		view := domain.ServiceView{Service: svc}

		pv, ok := planCache[svc.PlanID]
		if !ok {
			plan, err := s.planRepo.FindByID(ctx, s.db, svc.PlanID)
			if err != nil {
				return nil, err
			}
			if plan != nil {
				computed := plandomain.View(*plan, multiplier)
				pv = &computed
			}
			planCache[svc.PlanID] = pv
		}
		view.Plan = pv

		account, ok := accountCache[svc.AccountID]
		if !ok {
			var err error
			account, err = s.accountRepo.FindByID(ctx, s.db, svc.AccountID)
			if err != nil {
				return nil, err
			}
			accountCache[svc.AccountID] = account
		}
		view.Account = account

		views = append(views, view)
	}
	return views, nil
}

func (s *Service) parseID(value string) (snowflake.ID, error) {
	id, err := snowflake.ParseString(strings.TrimSpace(value))
	if err != nil || id == 0 {
		return 0, domain.ErrInvalidID
	}
	return id, nil
}
