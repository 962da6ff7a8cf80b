package server

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	authdomain "github.com/utilitech/utilicore/internal/auth/domain"
)

type registerRequest struct {
	Email      string `json:"email"`
	Password   string `json:"password"`
	Name       string `json:"name"`
	Role       string `json:"role"`
	ProfileID  string `json:"profile_id"`
	Department string `json:"department"`
	Title      string `json:"title"`
}

func (s *Server) Register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.authsvc.Register(c.Request.Context(), authdomain.RegisterRequest{
		Email:      strings.TrimSpace(req.Email),
		Password:   req.Password,
		Name:       strings.TrimSpace(req.Name),
		Role:       strings.TrimSpace(req.Role),
		ProfileID:  strings.TrimSpace(req.ProfileID),
		Department: strings.TrimSpace(req.Department),
		Title:      strings.TrimSpace(req.Title),
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (s *Server) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.authsvc.Login(c.Request.Context(), authdomain.LoginRequest{
		Email:    strings.TrimSpace(req.Email),
		Password: req.Password,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}
