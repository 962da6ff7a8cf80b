package server

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	profiledomain "github.com/utilitech/utilicore/internal/profile/domain"
)

type createProfileRequest struct {
	Name            string  `json:"name"`
	Email           string  `json:"email"`
	Phone           string  `json:"phone"`
	Profession      string  `json:"profession"`
	Address         string  `json:"address"`
	City            string  `json:"city"`
	State           string  `json:"state"`
	Zipcode         string  `json:"zipcode"`
	DepositAmount   float64 `json:"deposit_amount"`
	LinkedPlanID    string  `json:"linked_plan_id"`
	MasterProfileID string  `json:"master_profile_id"`
	IsMasterProfile bool    `json:"is_master_profile"`
}

func (s *Server) CreateProfile(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		AbortWithError(c, ErrUnauthorized)
		return
	}

	var req createProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.profileSvc.Create(c.Request.Context(), profiledomain.CreateProfileRequest{
		ActorID:         user.ID,
		Name:            strings.TrimSpace(req.Name),
		Email:           strings.TrimSpace(req.Email),
		Phone:           strings.TrimSpace(req.Phone),
		Profession:      strings.TrimSpace(req.Profession),
		Address:         strings.TrimSpace(req.Address),
		City:            strings.TrimSpace(req.City),
		State:           strings.TrimSpace(req.State),
		Zipcode:         strings.TrimSpace(req.Zipcode),
		DepositAmount:   req.DepositAmount,
		LinkedPlanID:    strings.TrimSpace(req.LinkedPlanID),
		MasterProfileID: strings.TrimSpace(req.MasterProfileID),
		IsMasterProfile: req.IsMasterProfile,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) ListProfiles(c *gin.Context) {
	resp, err := s.profileSvc.List(c.Request.Context())
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) GetProfileByID(c *gin.Context) {
	resp, err := s.profileSvc.GetByID(c.Request.Context(), profiledomain.GetProfileRequest{
		ID: strings.TrimSpace(c.Param("id")),
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

type updateProfileRequest struct {
	Name            *string  `json:"name"`
	Email           *string  `json:"email"`
	Phone           *string  `json:"phone"`
	Profession      *string  `json:"profession"`
	Address         *string  `json:"address"`
	City            *string  `json:"city"`
	State           *string  `json:"state"`
	Zipcode         *string  `json:"zipcode"`
	DepositAmount   *float64 `json:"deposit_amount"`
	LinkedPlanID    *string  `json:"linked_plan_id"`
	MasterProfileID *string  `json:"master_profile_id"`
	IsMasterProfile *bool    `json:"is_master_profile"`
	Active          *bool    `json:"active"`
}

func (s *Server) UpdateProfile(c *gin.Context) {
	var req updateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.profileSvc.Update(c.Request.Context(), profiledomain.UpdateProfileRequest{
		ID:              strings.TrimSpace(c.Param("id")),
		Name:            req.Name,
		Email:           req.Email,
		Phone:           req.Phone,
		Profession:      req.Profession,
		Address:         req.Address,
		City:            req.City,
		State:           req.State,
		Zipcode:         req.Zipcode,
		DepositAmount:   req.DepositAmount,
		LinkedPlanID:    req.LinkedPlanID,
		MasterProfileID: req.MasterProfileID,
		IsMasterProfile: req.IsMasterProfile,
		Active:          req.Active,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}
