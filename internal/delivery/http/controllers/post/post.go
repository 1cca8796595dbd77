package post

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/yael201062/rest-api2/internal/app_errors"
	"github.com/yael201062/rest-api2/internal/delivery/http/controllers/middleware"
	"github.com/yael201062/rest-api2/internal/models"
	"github.com/yael201062/rest-api2/pkg/logger"
)

type PostService interface {
	CreatePost(ctx context.Context, post models.Post) (*models.Post, error)
	PostByID(ctx context.Context, id uuid.UUID) (*models.Post, error)
	ListPosts(ctx context.Context, owner *uuid.UUID) ([]models.Post, error)
	UpdatePost(ctx context.Context, id, userID uuid.UUID, title, content string) (*models.Post, error)
	DeletePost(ctx context.Context, id, userID uuid.UUID) error
}

type PostHandler struct {
	log     logger.Log
	service PostService
}

func NewPostHandler(l logger.Log, s PostService) *PostHandler {
	return &PostHandler{
		log:     l,
		service: s,
	}
}

type postRequest struct {
	Title   string `json:"title" binding:"required"`
	Content string `json:"content" binding:"required"`
}

type postResponse struct {
	ID        string    `json:"_id"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	Owner     string    `json:"owner"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func toPostResponse(p *models.Post) postResponse {
	return postResponse{
		ID:        p.ID.String(),
		Title:     p.Title,
		Content:   p.Content,
		Owner:     p.Owner.String(),
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
	}
}

func (h *PostHandler) CreatePost(c *gin.Context) {
	var input postRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	userID, ok := middleware.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	post, err := h.service.CreatePost(c.Request.Context(), models.Post{
		Title:   input.Title,
		Content: input.Content,
		Owner:   userID,
	})
	if err != nil {
		h.log.ErrorErr("error creating post", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "server error"})
		return
	}

	c.JSON(http.StatusCreated, toPostResponse(post))
}

func (h *PostHandler) ListPosts(c *gin.Context) {
	var owner *uuid.UUID
	if ownerParam := c.Query("owner"); ownerParam != "" {
		id, err := uuid.Parse(ownerParam)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid owner"})
			return
		}
		owner = &id
	}

	posts, err := h.service.ListPosts(c.Request.Context(), owner)
	if err != nil {
		h.log.ErrorErr("error listing posts", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "server error"})
		return
	}

	resp := make([]postResponse, 0, len(posts))
	for i := range posts {
		resp = append(resp, toPostResponse(&posts[i]))
	}
	c.JSON(http.StatusOK, resp)
}

func (h *PostHandler) PostByID(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid post id"})
		return
	}

	post, err := h.service.PostByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, app_errors.ErrPostNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		h.log.ErrorErr("error retrieving post", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "server error"})
		return
	}

	c.JSON(http.StatusOK, toPostResponse(post))
}

func (h *PostHandler) UpdatePost(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid post id"})
		return
	}

	var input postRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	userID, ok := middleware.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	post, err := h.service.UpdatePost(c.Request.Context(), id, userID, input.Title, input.Content)
	if err != nil {
		h.respondMutationError(c, err, "error updating post")
		return
	}

	c.JSON(http.StatusOK, toPostResponse(post))
}

func (h *PostHandler) DeletePost(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid post id"})
		return
	}

	userID, ok := middleware.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	if err := h.service.DeletePost(c.Request.Context(), id, userID); err != nil {
		h.respondMutationError(c, err, "error deleting post")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "deleted"})
}

func (h *PostHandler) respondMutationError(c *gin.Context, err error, logMsg string) {
	switch {
	case errors.Is(err, app_errors.ErrPostNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, app_errors.ErrNotOwner):
		c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
	default:
		h.log.ErrorErr(logMsg, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "server error"})
	}
}
