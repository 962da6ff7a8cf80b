package service

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	accountdomain "github.com/utilitech/utilicore/internal/account/domain"
	authdomain "github.com/utilitech/utilicore/internal/auth/domain"
	"github.com/utilitech/utilicore/internal/invoice/domain"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type Params struct {
	fx.In

	DB          *gorm.DB
	Log         *zap.Logger
	GenID       *snowflake.Node
	Repo        domain.Repository
	AccountRepo accountdomain.Repository
}

type Service struct {
	db          *gorm.DB
	log         *zap.Logger
	genID       *snowflake.Node
	repo        domain.Repository
	accountRepo accountdomain.Repository
}

func New(p Params) domain.Service {
	return &Service{
		db:          p.DB,
		log:         p.Log.Named("invoice.service"),
		genID:       p.GenID,
		repo:        p.Repo,
		accountRepo: p.AccountRepo,
	}
}

func (s *Service) Create(ctx context.Context, req domain.CreateInvoiceRequest) (domain.Invoice, error) {
	if len(req.Items) == 0 {
		return domain.Invoice{}, domain.ErrInvalidItems
	}

	accountID, err := snowflake.ParseString(strings.TrimSpace(req.AccountID))
	if err != nil || accountID == 0 {
		return domain.Invoice{}, domain.ErrInvalidID
	}
	account, err := s.accountRepo.FindByID(ctx, s.db, accountID)
	if err != nil {
		return domain.Invoice{}, err
	}
	if account == nil {
		return domain.Invoice{}, domain.ErrAccountNotFound
	}

	var profileID *snowflake.ID
	if raw := strings.TrimSpace(req.ProfileID); raw != "" {
		id, err := snowflake.ParseString(raw)
		if err != nil || id == 0 {
			return domain.Invoice{}, domain.ErrInvalidID
		}
		profileID = &id
	}

	status := strings.TrimSpace(req.Status)
	if status == "" {
		status = domain.StatusDraft
	}
	if !domain.ValidStatus(status) {
		return domain.Invoice{}, domain.ErrInvalidStatus
	}

	items := make([]domain.InvoiceItem, 0, len(req.Items))
	var subtotal float64
	for _, item := range req.Items {
		if item.Amount == 0 {
			item.Amount = item.Quantity * item.UnitPrice
		}
		subtotal += item.Amount
		items = append(items, item)
	}
	taxAmount := subtotal * req.TaxRate / 100
	total := subtotal + taxAmount - req.DiscountAmount

	rawItems, err := json.Marshal(items)
	if err != nil {
		return domain.Invoice{}, err
	}
	var rawServiceIDs datatypes.JSON
	if len(req.ServiceIDs) > 0 {
		encoded, err := json.Marshal(req.ServiceIDs)
		if err != nil {
			return domain.Invoice{}, err
		}
		rawServiceIDs = datatypes.JSON(encoded)
	}

	// The invoice number comes from the current row count, assigned once at
	// creation and never rewritten.
	count, err := s.repo.Count(ctx, s.db)
	if err != nil {
		return domain.Invoice{}, err
	}

	now := time.Now().UTC()
	invoice := domain.Invoice{
		ID:                 s.genID.Generate(),
		InvoiceNumber:      fmt.Sprintf("INV-%06d", count+1),
		AccountID:          accountID,
		ProfileID:          profileID,
		ServiceIDs:         rawServiceIDs,
		Items:              datatypes.JSON(rawItems),
		Subtotal:           subtotal,
		TaxRate:            req.TaxRate,
		TaxAmount:          taxAmount,
		DiscountAmount:     req.DiscountAmount,
		TotalAmount:        total,
		BillingPeriodStart: req.BillingPeriodStart,
		BillingPeriodEnd:   req.BillingPeriodEnd,
		DueDate:            req.DueDate,
		Status:             status,
		Notes:              strings.TrimSpace(req.Notes),
		CreatedBy:          req.ActorID,
		CreatedAt:          now,
		UpdatedAt:          now,
	}

	if err := s.repo.Insert(ctx, s.db, &invoice); err != nil {
		return domain.Invoice{}, err
	}
	return invoice, nil
}

func (s *Service) List(ctx context.Context, req domain.ListInvoiceRequest) (domain.ListInvoiceResponse, error) {
	filter := domain.ListInvoiceFilter{Status: strings.TrimSpace(req.Status)}
	if raw := strings.TrimSpace(req.AccountID); raw != "" {
		accountID, err := snowflake.ParseString(raw)
		if err != nil || accountID == 0 {
			return domain.ListInvoiceResponse{}, domain.ErrInvalidID
		}
		filter.AccountID = accountID
	}
	// End users only see invoices on their own accounts.
	if req.ActorRole == authdomain.RoleUser {
		accounts, err := s.accountRepo.List(ctx, s.db, accountdomain.ListAccountFilter{UserID: req.ActorID})
		if err != nil {
			return domain.ListInvoiceResponse{}, err
		}
		if len(accounts) == 0 {
			return domain.ListInvoiceResponse{Invoices: []domain.Invoice{}}, nil
		}
		for _, account := range accounts {
			filter.AccountIDs = append(filter.AccountIDs, account.ID)
		}
	}

	invoices, err := s.repo.List(ctx, s.db, filter)
	if err != nil {
		return domain.ListInvoiceResponse{}, err
	}
	return domain.ListInvoiceResponse{Invoices: invoices}, nil
}

func (s *Service) GetByID(ctx context.Context, req domain.GetInvoiceRequest) (domain.Invoice, error) {
	id, err := snowflake.ParseString(strings.TrimSpace(req.ID))
	if err != nil || id == 0 {
		return domain.Invoice{}, domain.ErrInvalidID
	}
	invoice, err := s.repo.FindByID(ctx, s.db, id)
	if err != nil {
		return domain.Invoice{}, err
	}
	if invoice == nil {
		return domain.Invoice{}, domain.ErrNotFound
	}
	if req.ActorRole == authdomain.RoleUser {
		account, err := s.accountRepo.FindByID(ctx, s.db, invoice.AccountID)
		if err != nil {
			return domain.Invoice{}, err
		}
		if account == nil || account.UserID != req.ActorID {
			return domain.Invoice{}, domain.ErrForbidden
		}
	}
	return *invoice, nil
}
