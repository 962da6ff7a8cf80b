package server

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	paymentdomain "github.com/utilitech/utilicore/internal/payment/domain"
	"github.com/utilitech/utilicore/pkg/db/pagination"
)

func (s *Server) ListPayments(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		AbortWithError(c, ErrUnauthorized)
		return
	}

	var query struct {
		pagination.Params
		AccountID string `form:"account_id"`
		Status    string `form:"status"`
	}
	if err := c.ShouldBindQuery(&query); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.paymentSvc.List(c.Request.Context(), paymentdomain.ListPaymentRequest{
		ActorID:   user.ID,
		ActorRole: user.Role,
		AccountID: strings.TrimSpace(query.AccountID),
		Status:    strings.TrimSpace(query.Status),
		Paging:    query.Params,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}
