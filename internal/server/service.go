package server

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	servicedomain "github.com/utilitech/utilicore/internal/service/domain"
)

type createServiceRequest struct {
	AccountID         string   `json:"account_id"`
	PlanID            string   `json:"plan_id"`
	Name              string   `json:"name"`
	Description       string   `json:"description"`
	Category          string   `json:"category"`
	ServiceType       string   `json:"service_type"`
	CustomPrice       *float64 `json:"custom_price"`
	MonthlyCharges    float64  `json:"monthly_charges"`
	StartDate         string   `json:"start_date"`
	ServiceAddress    string   `json:"service_address"`
	InstallationNotes string   `json:"installation_notes"`
	MeterNumber       string   `json:"meter_number"`
	ConnectionType    string   `json:"connection_type"`
	Capacity          string   `json:"capacity"`
	AssignedTo        string   `json:"assigned_to"`
	Priority          string   `json:"priority"`
	IsAddon           bool     `json:"is_addon"`
	ParentServiceID   string   `json:"parent_service_id"`
}

func (s *Server) CreateService(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		AbortWithError(c, ErrUnauthorized)
		return
	}

	var req createServiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	startDate, err := parseOptionalTime(req.StartDate, false)
	if err != nil {
		AbortWithError(c, newValidationError("start_date", "invalid_start_date", "invalid start_date"))
		return
	}

	resp, err := s.serviceSvc.Create(c.Request.Context(), servicedomain.CreateServiceRequest{
		ActorID:           user.ID,
		ActorRole:         user.Role,
		AccountID:         strings.TrimSpace(req.AccountID),
		PlanID:            strings.TrimSpace(req.PlanID),
		Name:              strings.TrimSpace(req.Name),
		Description:       strings.TrimSpace(req.Description),
		Category:          strings.TrimSpace(req.Category),
		ServiceType:       strings.TrimSpace(req.ServiceType),
		CustomPrice:       req.CustomPrice,
		MonthlyCharges:    req.MonthlyCharges,
		StartDate:         startDate,
		ServiceAddress:    strings.TrimSpace(req.ServiceAddress),
		InstallationNotes: strings.TrimSpace(req.InstallationNotes),
		MeterNumber:       strings.TrimSpace(req.MeterNumber),
		ConnectionType:    strings.TrimSpace(req.ConnectionType),
		Capacity:          strings.TrimSpace(req.Capacity),
		AssignedTo:        strings.TrimSpace(req.AssignedTo),
		Priority:          strings.TrimSpace(req.Priority),
		IsAddon:           req.IsAddon,
		ParentServiceID:   strings.TrimSpace(req.ParentServiceID),
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) ListServices(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		AbortWithError(c, ErrUnauthorized)
		return
	}

	resp, err := s.serviceSvc.List(c.Request.Context(), servicedomain.ListServiceRequest{
		ActorID:   user.ID,
		ActorRole: user.Role,
		AccountID: strings.TrimSpace(c.Query("account_id")),
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) GetServiceByID(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		AbortWithError(c, ErrUnauthorized)
		return
	}

	resp, err := s.serviceSvc.GetByID(c.Request.Context(), servicedomain.GetServiceRequest{
		ActorID:   user.ID,
		ActorRole: user.Role,
		ID:        strings.TrimSpace(c.Param("id")),
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

type updateServiceRequest struct {
	Name              *string  `json:"name"`
	Description       *string  `json:"description"`
	CustomPrice       *float64 `json:"custom_price"`
	MonthlyCharges    *float64 `json:"monthly_charges"`
	EndDate           string   `json:"end_date"`
	ServiceAddress    *string  `json:"service_address"`
	InstallationNotes *string  `json:"installation_notes"`
	MeterNumber       *string  `json:"meter_number"`
	ConnectionType    *string  `json:"connection_type"`
	Capacity          *string  `json:"capacity"`
	Status            *string  `json:"status"`
	Priority          *string  `json:"priority"`
	LastReading       *float64 `json:"last_reading"`
}

func (s *Server) UpdateService(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		AbortWithError(c, ErrUnauthorized)
		return
	}

	var req updateServiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	endDate, err := parseOptionalTime(req.EndDate, true)
	if err != nil {
		AbortWithError(c, newValidationError("end_date", "invalid_end_date", "invalid end_date"))
		return
	}

	resp, err := s.serviceSvc.Update(c.Request.Context(), servicedomain.UpdateServiceRequest{
		ActorID:           user.ID,
		ActorRole:         user.Role,
		ID:                strings.TrimSpace(c.Param("id")),
		Name:              req.Name,
		Description:       req.Description,
		CustomPrice:       req.CustomPrice,
		MonthlyCharges:    req.MonthlyCharges,
		EndDate:           endDate,
		ServiceAddress:    req.ServiceAddress,
		InstallationNotes: req.InstallationNotes,
		MeterNumber:       req.MeterNumber,
		ConnectionType:    req.ConnectionType,
		Capacity:          req.Capacity,
		Status:            req.Status,
		Priority:          req.Priority,
		LastReading:       req.LastReading,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}
