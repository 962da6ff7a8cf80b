package server

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	subscriptiondomain "github.com/utilitech/utilicore/internal/subscription/domain"
	"github.com/utilitech/utilicore/pkg/db/pagination"
)

func (s *Server) ListSelfSubscriptions(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		AbortWithError(c, ErrUnauthorized)
		return
	}

	var query struct {
		pagination.Params
		AccountID string `form:"account_id"`
		PlanName  string `form:"plan_name"`
	}
	if err := c.ShouldBindQuery(&query); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.subscriptionSvc.ListSelf(c.Request.Context(), subscriptiondomain.ListSubscriptionRequest{
		ActorID:   user.ID,
		ActorRole: user.Role,
		AccountID: strings.TrimSpace(query.AccountID),
		PlanName:  strings.TrimSpace(query.PlanName),
		Page:      query.Params,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) ListUserSubscriptions(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		AbortWithError(c, ErrUnauthorized)
		return
	}

	var query struct {
		pagination.Params
		AccountID string `form:"account_id"`
		PlanName  string `form:"plan_name"`
	}
	if err := c.ShouldBindQuery(&query); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.subscriptionSvc.ListUsers(c.Request.Context(), subscriptiondomain.ListSubscriptionRequest{
		ActorID:   user.ID,
		ActorRole: user.Role,
		AccountID: strings.TrimSpace(query.AccountID),
		PlanName:  strings.TrimSpace(query.PlanName),
		Page:      query.Params,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) SubscriptionDetails(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		AbortWithError(c, ErrUnauthorized)
		return
	}

	resp, err := s.subscriptionSvc.Details(c.Request.Context(), subscriptiondomain.GetSubscriptionRequest{
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

type deactivateSubscriptionRequest struct {
	DeactivationDate string `json:"deactivation_date"`
}

func (s *Server) DeactivateSubscription(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		AbortWithError(c, ErrUnauthorized)
		return
	}

	// The body is optional; without one the service stamps the current time.
	var req deactivateSubscriptionRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			AbortWithError(c, invalidRequestError())
			return
		}
	}
	deactivationDate, err := parseOptionalTime(req.DeactivationDate, false)
	if err != nil {
		AbortWithError(c, newValidationError("deactivation_date", "invalid_deactivation_date", "invalid deactivation_date"))
		return
	}

	resp, err := s.subscriptionSvc.Deactivate(c.Request.Context(), subscriptiondomain.DeactivateRequest{
		ActorID:          user.ID,
		ActorRole:        user.Role,
		ID:               strings.TrimSpace(c.Param("id")),
		DeactivationDate: deactivationDate,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

type changePlanRequest struct {
	ServiceID      string `json:"service_id"`
	NewPlanID      string `json:"new_plan_id"`
	ActivationDate string `json:"activation_date"`
}

func (s *Server) ChangeSubscriptionPlan(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		AbortWithError(c, ErrUnauthorized)
		return
	}

	var req changePlanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	activationDate, err := parseOptionalTime(req.ActivationDate, false)
	if err != nil {
		AbortWithError(c, newValidationError("activation_date", "invalid_activation_date", "invalid activation_date"))
		return
	}

	resp, err := s.subscriptionSvc.ChangePlan(c.Request.Context(), subscriptiondomain.ChangePlanRequest{
		ActorID:        user.ID,
		ActorRole:      user.Role,
		ServiceID:      strings.TrimSpace(req.ServiceID),
		NewPlanID:      strings.TrimSpace(req.NewPlanID),
		ActivationDate: activationDate,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) AvailablePlans(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		AbortWithError(c, ErrUnauthorized)
		return
	}

	resp, err := s.subscriptionSvc.AvailablePlans(c.Request.Context(), subscriptiondomain.AvailablePlansRequest{
		ActorID:       user.ID,
		ActorRole:     user.Role,
		CurrentPlanID: strings.TrimSpace(c.Param("current_plan_id")),
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) AddonPlans(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		AbortWithError(c, ErrUnauthorized)
		return
	}

	resp, err := s.subscriptionSvc.AddonPlans(c.Request.Context(), subscriptiondomain.AddonPlansRequest{
		ActorRole:   user.Role,
		ServiceType: strings.TrimSpace(c.Param("service_type")),
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

type activateAddonRequest struct {
	ServiceID   string `json:"service_id"`
	AddonPlanID string `json:"addon_plan_id"`
}

func (s *Server) ActivateAddon(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		AbortWithError(c, ErrUnauthorized)
		return
	}

	var req activateAddonRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.subscriptionSvc.ActivateAddon(c.Request.Context(), subscriptiondomain.ActivateAddonRequest{
		ActorID:     user.ID,
		ActorRole:   user.Role,
		ServiceID:   strings.TrimSpace(req.ServiceID),
		AddonPlanID: strings.TrimSpace(req.AddonPlanID),
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

type deactivateAddonRequest struct {
	AddonServiceID string `json:"addon_service_id"`
}

func (s *Server) DeactivateAddon(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		AbortWithError(c, ErrUnauthorized)
		return
	}

	var req deactivateAddonRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.subscriptionSvc.DeactivateAddon(c.Request.Context(), subscriptiondomain.DeactivateAddonRequest{
		ActorID:        user.ID,
		ActorRole:      user.Role,
		AddonServiceID: strings.TrimSpace(req.AddonServiceID),
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}
