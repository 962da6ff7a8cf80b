package server

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	billingdomain "github.com/utilitech/utilicore/internal/billing/domain"
)

func (s *Server) ListBillCycles(c *gin.Context) {
	resp, err := s.billingSvc.ListCycles(c.Request.Context())
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

type createBillScheduleRequest struct {
	BillCycleID string   `json:"bill_cycle_id"`
	BillRunName string   `json:"bill_run_name"`
	BillDate    string   `json:"bill_date"`
	AccountIDs  []string `json:"account_ids"`
}

func (s *Server) CreateBillSchedule(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		AbortWithError(c, ErrUnauthorized)
		return
	}

	var req createBillScheduleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	billDate, err := parseOptionalTime(req.BillDate, false)
	if err != nil {
		AbortWithError(c, newValidationError("bill_date", "invalid_bill_date", "invalid bill_date"))
		return
	}

	resp, err := s.billingSvc.CreateSchedule(c.Request.Context(), billingdomain.CreateScheduleRequest{
		ActorID:     user.ID,
		BillCycleID: strings.TrimSpace(req.BillCycleID),
		BillRunName: strings.TrimSpace(req.BillRunName),
		BillDate:    billDate,
		AccountIDs:  req.AccountIDs,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) ListBillSchedules(c *gin.Context) {
	resp, err := s.billingSvc.ListSchedules(c.Request.Context())
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

type updateStatusRequest struct {
	Status string `json:"status"`
}

func (s *Server) UpdateBillScheduleStatus(c *gin.Context) {
	var req updateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.billingSvc.UpdateScheduleStatus(c.Request.Context(), billingdomain.UpdateScheduleStatusRequest{
		ID:     strings.TrimSpace(c.Param("id")),
		Status: strings.TrimSpace(req.Status),
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) ListBillRuns(c *gin.Context) {
	resp, err := s.billingSvc.ListRuns(c.Request.Context(), billingdomain.ListRunRequest{
		BillCycleID: strings.TrimSpace(c.Query("bill_cycle_id")),
		BillRunID:   strings.TrimSpace(c.Query("bill_run_id")),
		Status:      strings.TrimSpace(c.Query("status")),
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) UpdateBillRunStatus(c *gin.Context) {
	var req updateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.billingSvc.UpdateRunStatus(c.Request.Context(), billingdomain.UpdateRunStatusRequest{
		ID:     strings.TrimSpace(c.Param("id")),
		Status: strings.TrimSpace(req.Status),
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) ListBilledAccounts(c *gin.Context) {
	resp, err := s.billingSvc.ListBilledAccounts(c.Request.Context(), billingdomain.ListBilledAccountRequest{
		BillCycleID: strings.TrimSpace(c.Query("bill_cycle_id")),
		BillRunID:   strings.TrimSpace(c.Query("bill_run_id")),
		AccountID:   strings.TrimSpace(c.Query("account_id")),
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) ApproveBilledAccount(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		AbortWithError(c, ErrUnauthorized)
		return
	}

	resp, err := s.billingSvc.ApproveBilledAccount(c.Request.Context(), billingdomain.ApproveBilledAccountRequest{
		ActorID: user.ID,
		ID:      strings.TrimSpace(c.Param("id")),
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}
