package auth

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/yael201062/rest-api2/internal/app_errors"
	"github.com/yael201062/rest-api2/internal/delivery/http/controllers/middleware"
	"github.com/yael201062/rest-api2/internal/models"
	"github.com/yael201062/rest-api2/pkg/logger"
)

type AuthService interface {
	Register(ctx context.Context, email, password string) (*models.User, error)
	Login(ctx context.Context, email, password string) (*models.TokenPair, error)
	Refresh(ctx context.Context, refreshToken string) (*models.TokenPair, error)
	Logout(ctx context.Context, refreshToken string) error
	User(ctx context.Context, id uuid.UUID) (*models.User, error)
}

type AuthHandler struct {
	AuthService AuthService
	log         logger.Log
}

func NewAuthHandler(l logger.Log, auth AuthService) *AuthHandler {
	return &AuthHandler{
		AuthService: auth,
		log:         l,
	}
}

type credentialsRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type userResponse struct {
	ID    string `json:"_id"`
	Email string `json:"email"`
}

func (h *AuthHandler) Register(c *gin.Context) {
	var input credentialsRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, err := h.AuthService.Register(c.Request.Context(), input.Email, input.Password)
	if err != nil {
		if errors.Is(err, app_errors.ErrEmailExists) || errors.Is(err, app_errors.ErrWeakPassword) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		h.log.ErrorErr("error handling register user", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "server error"})
		return
	}

	// the password hash never leaves the service boundary
	c.JSON(http.StatusOK, userResponse{
		ID:    user.ID.String(),
		Email: user.Email,
	})
}

type tokenPairResponse struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
	ID           string `json:"_id"`
}

func (h *AuthHandler) Login(c *gin.Context) {
	var input credentialsRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	pair, err := h.AuthService.Login(c.Request.Context(), input.Email, input.Password)
	if err != nil {
		if errors.Is(err, app_errors.ErrInvalidCredentials) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		if errors.Is(err, app_errors.ErrServerMisconfigured) {
			h.log.ErrorErr("login failed, no token secret", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "server error"})
			return
		}
		h.log.ErrorErr("error handling login user", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "server error"})
		return
	}

	c.JSON(http.StatusOK, tokenPairResponse{
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
		ID:           pair.UserID.String(),
	})
}

type refreshRequest struct {
	RefreshToken string `json:"refreshToken" binding:"required"`
}

func (h *AuthHandler) Refresh(c *gin.Context) {
	var input refreshRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	pair, err := h.AuthService.Refresh(c.Request.Context(), input.RefreshToken)
	if err != nil {
		h.respondTokenError(c, err)
		return
	}

	c.JSON(http.StatusOK, tokenPairResponse{
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
		ID:           pair.UserID.String(),
	})
}

func (h *AuthHandler) Logout(c *gin.Context) {
	var input refreshRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.AuthService.Logout(c.Request.Context(), input.RefreshToken); err != nil {
		h.respondTokenError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "success"})
}

// respondTokenError folds every refresh-token failure into one client-visible
// rejection; only a missing signing secret is surfaced as a server fault.
func (h *AuthHandler) respondTokenError(c *gin.Context, err error) {
	if errors.Is(err, app_errors.ErrServerMisconfigured) {
		h.log.ErrorErr("token operation failed, no token secret", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "server error"})
		return
	}
	if errors.Is(err, app_errors.ErrInvalidToken) {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	h.log.ErrorErr("error handling refresh token", err)
	c.JSON(http.StatusInternalServerError, gin.H{"error": "server error"})
}

func (h *AuthHandler) Me(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	user, err := h.AuthService.User(c.Request.Context(), userID)
	if err != nil {
		h.log.ErrorErr("error retrieving user", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "server error"})
		return
	}

	c.JSON(http.StatusOK, userResponse{
		ID:    user.ID.String(),
		Email: user.Email,
	})
}
