package server

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	accountdomain "github.com/utilitech/utilicore/internal/account/domain"
)

type createAccountRequest struct {
	ProfileID      string  `json:"profile_id"`
	AccountName    string  `json:"account_name"`
	ContactName    string  `json:"contact_name"`
	Email          string  `json:"email"`
	Phone          string  `json:"phone"`
	ServiceAddress string  `json:"service_address"`
	BillingAddress string  `json:"billing_address"`
	BusinessType   string  `json:"business_type"`
	TaxID          string  `json:"tax_id"`
	DepositPaid    bool    `json:"deposit_paid"`
	CreditLimit    float64 `json:"credit_limit"`
}

func (s *Server) CreateAccount(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		AbortWithError(c, ErrUnauthorized)
		return
	}

	var req createAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.accountSvc.Create(c.Request.Context(), accountdomain.CreateAccountRequest{
		ActorID:        user.ID,
		ProfileID:      strings.TrimSpace(req.ProfileID),
		AccountName:    strings.TrimSpace(req.AccountName),
		ContactName:    strings.TrimSpace(req.ContactName),
		Email:          strings.TrimSpace(req.Email),
		Phone:          strings.TrimSpace(req.Phone),
		ServiceAddress: strings.TrimSpace(req.ServiceAddress),
		BillingAddress: strings.TrimSpace(req.BillingAddress),
		BusinessType:   strings.TrimSpace(req.BusinessType),
		TaxID:          strings.TrimSpace(req.TaxID),
		DepositPaid:    req.DepositPaid,
		CreditLimit:    req.CreditLimit,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) ListAccounts(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		AbortWithError(c, ErrUnauthorized)
		return
	}

	resp, err := s.accountSvc.List(c.Request.Context(), accountdomain.ListAccountRequest{
		ActorID:   user.ID,
		ActorRole: user.Role,
		ProfileID: strings.TrimSpace(c.Query("profile_id")),
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) GetAccountByID(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		AbortWithError(c, ErrUnauthorized)
		return
	}

	resp, err := s.accountSvc.GetByID(c.Request.Context(), accountdomain.GetAccountRequest{
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
