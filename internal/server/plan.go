package server

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	plandomain "github.com/utilitech/utilicore/internal/plan/domain"
)

type createPlanRequest struct {
	Name              string   `json:"name"`
	Description       string   `json:"description"`
	PlanType          int      `json:"plan_type"`
	ServiceType       string   `json:"service_type"`
	ChargeType        string   `json:"charge_type"`
	ChargeCategory    string   `json:"charge_category"`
	BasePrice         float64  `json:"base_price"`
	Charges           float64  `json:"charges"`
	SetupFee          float64  `json:"setup_fee"`
	BillingFrequency  string   `json:"billing_frequency"`
	StartDate         string   `json:"start_date"`
	EndDate           string   `json:"end_date"`
	DepositMultiplier *float64 `json:"deposit_multiplier"`
	Features          []string `json:"features"`
	Terms             string   `json:"terms"`
	Proration         bool     `json:"proration"`
	IsForAdmin        bool     `json:"is_for_admin"`
	AssignedToRole    string   `json:"assigned_to_role"`
	CreatedForAdmin   string   `json:"created_for_admin"`
}

func (s *Server) CreatePlan(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		AbortWithError(c, ErrUnauthorized)
		return
	}

	var req createPlanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	startDate, err := parseOptionalTime(req.StartDate, false)
	if err != nil {
		AbortWithError(c, newValidationError("start_date", "invalid_start_date", "invalid start_date"))
		return
	}
	endDate, err := parseOptionalTime(req.EndDate, true)
	if err != nil {
		AbortWithError(c, newValidationError("end_date", "invalid_end_date", "invalid end_date"))
		return
	}

	resp, err := s.planSvc.Create(c.Request.Context(), plandomain.CreatePlanRequest{
		ActorID:           user.ID,
		ActorRole:         user.Role,
		Name:              strings.TrimSpace(req.Name),
		Description:       strings.TrimSpace(req.Description),
		PlanType:          req.PlanType,
		ServiceType:       strings.TrimSpace(req.ServiceType),
		ChargeType:        strings.TrimSpace(req.ChargeType),
		ChargeCategory:    strings.TrimSpace(req.ChargeCategory),
		BasePrice:         req.BasePrice,
		Charges:           req.Charges,
		SetupFee:          req.SetupFee,
		BillingFrequency:  strings.TrimSpace(req.BillingFrequency),
		StartDate:         startDate,
		EndDate:           endDate,
		DepositMultiplier: req.DepositMultiplier,
		Features:          req.Features,
		Terms:             strings.TrimSpace(req.Terms),
		Proration:         req.Proration,
		IsForAdmin:        req.IsForAdmin,
		AssignedToRole:    strings.TrimSpace(req.AssignedToRole),
		CreatedForAdmin:   strings.TrimSpace(req.CreatedForAdmin),
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) ListPlans(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		AbortWithError(c, ErrUnauthorized)
		return
	}

	planType := 0
	if raw := strings.TrimSpace(c.Query("plan_type")); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			AbortWithError(c, newValidationError("plan_type", "invalid_plan_type", "invalid plan_type"))
			return
		}
		planType = parsed
	}

	resp, err := s.planSvc.List(c.Request.Context(), plandomain.ListPlanRequest{
		ActorID:     user.ID,
		ActorRole:   user.Role,
		ServiceType: strings.TrimSpace(c.Query("service_type")),
		PlanType:    planType,
		Status:      strings.TrimSpace(c.Query("status")),
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) GetPlanByID(c *gin.Context) {
	resp, err := s.planSvc.GetByID(c.Request.Context(), plandomain.GetPlanRequest{
		ID: strings.TrimSpace(c.Param("id")),
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

type updatePlanRequest struct {
	Name              *string  `json:"name"`
	Description       *string  `json:"description"`
	ChargeType        *string  `json:"charge_type"`
	ChargeCategory    *string  `json:"charge_category"`
	BasePrice         *float64 `json:"base_price"`
	Charges           *float64 `json:"charges"`
	SetupFee          *float64 `json:"setup_fee"`
	BillingFrequency  *string  `json:"billing_frequency"`
	StartDate         string   `json:"start_date"`
	EndDate           string   `json:"end_date"`
	DepositMultiplier *float64 `json:"deposit_multiplier"`
	Features          []string `json:"features"`
	Terms             *string  `json:"terms"`
	Proration         *bool    `json:"proration"`
	Status            *string  `json:"status"`
	AssignedToRole    *string  `json:"assigned_to_role"`
}

func (s *Server) UpdatePlan(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		AbortWithError(c, ErrUnauthorized)
		return
	}

	var req updatePlanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	startDate, err := parseOptionalTime(req.StartDate, false)
	if err != nil {
		AbortWithError(c, newValidationError("start_date", "invalid_start_date", "invalid start_date"))
		return
	}
	endDate, err := parseOptionalTime(req.EndDate, true)
	if err != nil {
		AbortWithError(c, newValidationError("end_date", "invalid_end_date", "invalid end_date"))
		return
	}

	resp, err := s.planSvc.Update(c.Request.Context(), plandomain.UpdatePlanRequest{
		ActorID:           user.ID,
		ActorRole:         user.Role,
		ID:                strings.TrimSpace(c.Param("id")),
		Name:              req.Name,
		Description:       req.Description,
		ChargeType:        req.ChargeType,
		ChargeCategory:    req.ChargeCategory,
		BasePrice:         req.BasePrice,
		Charges:           req.Charges,
		SetupFee:          req.SetupFee,
		BillingFrequency:  req.BillingFrequency,
		StartDate:         startDate,
		EndDate:           endDate,
		DepositMultiplier: req.DepositMultiplier,
		Features:          req.Features,
		Terms:             req.Terms,
		Proration:         req.Proration,
		Status:            req.Status,
		AssignedToRole:    req.AssignedToRole,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}
