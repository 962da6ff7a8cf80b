package server

import (
	"strings"

	"github.com/gin-gonic/gin"
	authdomain "github.com/utilitech/utilicore/internal/auth/domain"
)

const contextUserKey = "current_user"

// AuthRequired resolves the bearer token into a user and stores it on the
// request context for downstream handlers.
func (s *Server) AuthRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if !strings.HasPrefix(header, "Bearer ") {
			AbortWithError(c, ErrUnauthorized)
			return
		}
		raw := strings.TrimSpace(strings.TrimPrefix(header, "Bearer "))
		if raw == "" {
			AbortWithError(c, ErrUnauthorized)
			return
		}

		user, err := s.authsvc.ResolveUser(c.Request.Context(), authdomain.ResolveUserRequest{Token: raw})
		if err != nil {
			AbortWithError(c, ErrUnauthorized)
			return
		}

		c.Set(contextUserKey, user)
		c.Next()
	}
}

// Authorized gates the route on the caller's role holding object/action.
func (s *Server) Authorized(object, action string) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := currentUser(c)
		if !ok {
			AbortWithError(c, ErrUnauthorized)
			return
		}
		if err := s.authzsvc.Authorize(c.Request.Context(), user.Role, object, action); err != nil {
			AbortWithError(c, err)
			return
		}
		c.Next()
	}
}

func currentUser(c *gin.Context) (authdomain.User, bool) {
	value, ok := c.Get(contextUserKey)
	if !ok {
		return authdomain.User{}, false
	}
	user, ok := value.(authdomain.User)
	return user, ok
}
