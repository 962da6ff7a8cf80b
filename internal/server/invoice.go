package server

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	invoicedomain "github.com/utilitech/utilicore/internal/invoice/domain"
)

type createInvoiceRequest struct {
	AccountID          string                      `json:"account_id"`
	ProfileID          string                      `json:"profile_id"`
	ServiceIDs         []string                    `json:"service_ids"`
	Items              []invoicedomain.InvoiceItem `json:"items"`
	TaxRate            float64                     `json:"tax_rate"`
	DiscountAmount     float64                     `json:"discount_amount"`
	BillingPeriodStart string                      `json:"billing_period_start"`
	BillingPeriodEnd   string                      `json:"billing_period_end"`
	DueDate            string                      `json:"due_date"`
	Status             string                      `json:"status"`
	Notes              string                      `json:"notes"`
}

func (s *Server) CreateInvoice(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		AbortWithError(c, ErrUnauthorized)
		return
	}

	var req createInvoiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	periodStart, err := parseOptionalTime(req.BillingPeriodStart, false)
	if err != nil {
		AbortWithError(c, newValidationError("billing_period_start", "invalid_billing_period_start", "invalid billing_period_start"))
		return
	}
	periodEnd, err := parseOptionalTime(req.BillingPeriodEnd, true)
	if err != nil {
		AbortWithError(c, newValidationError("billing_period_end", "invalid_billing_period_end", "invalid billing_period_end"))
		return
	}
	dueDate, err := parseOptionalTime(req.DueDate, true)
	if err != nil {
		AbortWithError(c, newValidationError("due_date", "invalid_due_date", "invalid due_date"))
		return
	}

	resp, err := s.invoiceSvc.Create(c.Request.Context(), invoicedomain.CreateInvoiceRequest{
		ActorID:            user.ID,
		AccountID:          strings.TrimSpace(req.AccountID),
		ProfileID:          strings.TrimSpace(req.ProfileID),
		ServiceIDs:         req.ServiceIDs,
		Items:              req.Items,
		TaxRate:            req.TaxRate,
		DiscountAmount:     req.DiscountAmount,
		BillingPeriodStart: periodStart,
		BillingPeriodEnd:   periodEnd,
		DueDate:            dueDate,
		Status:             strings.TrimSpace(req.Status),
		Notes:              req.Notes,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) ListInvoices(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		AbortWithError(c, ErrUnauthorized)
		return
	}

	resp, err := s.invoiceSvc.List(c.Request.Context(), invoicedomain.ListInvoiceRequest{
		ActorID:   user.ID,
		ActorRole: user.Role,
		AccountID: strings.TrimSpace(c.Query("account_id")),
		Status:    strings.TrimSpace(c.Query("status")),
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) GetInvoiceByID(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		AbortWithError(c, ErrUnauthorized)
		return
	}

	resp, err := s.invoiceSvc.GetByID(c.Request.Context(), invoicedomain.GetInvoiceRequest{
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
