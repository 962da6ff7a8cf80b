package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
	sysconfigdomain "github.com/utilitech/utilicore/internal/sysconfig/domain"
)

func (s *Server) GetSystemConfig(c *gin.Context) {
	resp, err := s.sysconfigSvc.Get(c.Request.Context())
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

type updateSystemConfigRequest struct {
	DepositMultiplier float64 `json:"deposit_multiplier"`
}

func (s *Server) UpdateSystemConfig(c *gin.Context) {
	var req updateSystemConfigRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.sysconfigSvc.Update(c.Request.Context(), sysconfigdomain.UpdateConfigRequest{
		DepositMultiplier: req.DepositMultiplier,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}
