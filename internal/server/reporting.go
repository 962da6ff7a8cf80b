package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
	reportingdomain "github.com/utilitech/utilicore/internal/reporting/domain"
)

func (s *Server) DashboardStats(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		AbortWithError(c, ErrUnauthorized)
		return
	}

	resp, err := s.reportingSvc.DashboardStats(c.Request.Context(), reportingdomain.DashboardStatsRequest{
		ActorID:   user.ID,
		ActorRole: user.Role,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) DuePaymentAlerts(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		AbortWithError(c, ErrUnauthorized)
		return
	}

	resp, err := s.reportingSvc.DuePaymentAlerts(c.Request.Context(), reportingdomain.DuePaymentAlertsRequest{
		ActorID:   user.ID,
		ActorRole: user.Role,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) MonthlyRevenue(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		AbortWithError(c, ErrUnauthorized)
		return
	}

	resp, err := s.reportingSvc.MonthlyRevenue(c.Request.Context(), reportingdomain.MonthlyRevenueRequest{
		ActorID:   user.ID,
		ActorRole: user.Role,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}
