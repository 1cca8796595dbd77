package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/yael201062/rest-api2/internal/app_errors"
	"github.com/yael201062/rest-api2/pkg/logger"
)

type AuthService interface {
	AccessClaims(ctx context.Context, token string) (uuid.UUID, error)
}

type AuthMiddlewareProvider struct {
	log     logger.Log
	service AuthService
}

func NewAuthMiddlewareProvider(log logger.Log, s AuthService) *AuthMiddlewareProvider {
	return &AuthMiddlewareProvider{
		log:     log,
		service: s,
	}
}

// AuthMiddleware validates the bearer access token and injects the subject id
// into the request context. It never consults the user store: a well-signed,
// unexpired access token is trusted for its whole lifetime, only refresh
// tokens are individually revocable.
func (h *AuthMiddlewareProvider) AuthMiddleware(c *gin.Context) {
	authHeader := c.GetHeader("Authorization")
	var token string
	if parts := strings.Split(authHeader, "Bearer "); len(parts) == 2 {
		token = parts[1]
	}
	if token == "" {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "access denied"})
		return
	}

	userID, err := h.service.AccessClaims(c.Request.Context(), token)
	if err != nil {
		if errors.Is(err, app_errors.ErrServerMisconfigured) {
			h.log.ErrorErr("auth middleware misconfigured", err)
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "server error"})
			return
		}
		if errors.Is(err, app_errors.ErrTokenExpired) {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": app_errors.ErrTokenExpired.Error()})
			return
		}
		h.log.Info("failed to parse access token", logger.Err(err))
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "access denied"})
		return
	}

	c.Set(ClientIDCtx, userID)
	c.Next()
}

// UserID extracts the authenticated user id placed by AuthMiddleware.
func UserID(c *gin.Context) (uuid.UUID, bool) {
	raw, exists := c.Get(ClientIDCtx)
	if !exists {
		return uuid.Nil, false
	}
	id, ok := raw.(uuid.UUID)
	return id, ok
}
