package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/HujaifaBytes/Student-Registration-website/internal/app/models/dto"
	"github.com/HujaifaBytes/Student-Registration-website/internal/pkg/apperrors"
	"github.com/HujaifaBytes/Student-Registration-website/internal/pkg/auth"
)

// Context keys set by SessionAuth for downstream handlers.
const (
	ContextAdminUsername = "adminUsername"
	ContextAdminName     = "adminName"
)

// AuthMiddleware guards admin routes with the session cookie.
type AuthMiddleware struct {
	sessions   *auth.SessionService
	cookieName string
}

// NewAuthMiddleware creates a new AuthMiddleware.
func NewAuthMiddleware(sessions *auth.SessionService, cookieName string) *AuthMiddleware {
	return &AuthMiddleware{
		sessions:   sessions,
		cookieName: cookieName,
	}
}

// SessionAuth validates the admin session cookie. Requests without a valid,
// unexpired session token are rejected with 401.
func (m *AuthMiddleware) SessionAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := c.Cookie(m.cookieName)
		if err != nil || token == "" {
			abortUnauthorized(c, "Authentication required")
			return
		}

		claims, err := m.sessions.Verify(token)
		if err != nil {
			if errors.Is(err, apperrors.ErrSessionExpired) {
				abortUnauthorized(c, "Session expired")
				return
			}
			abortUnauthorized(c, "Authentication required")
			return
		}

		c.Set(ContextAdminUsername, claims.Username)
		c.Set(ContextAdminName, claims.Name)
		c.Next()
	}
}

func abortUnauthorized(c *gin.Context, message string) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, dto.NewErrorResponse(
		dto.NewErrorDetail(dto.ErrorCodeUnauthorized, message)))
}
