package comment

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

type CommentService interface {
	CreateComment(ctx context.Context, comment models.Comment) (*models.Comment, error)
	CommentByID(ctx context.Context, id uuid.UUID) (*models.Comment, error)
	ListComments(ctx context.Context, owner, postID *uuid.UUID) ([]models.Comment, error)
	DeleteComment(ctx context.Context, id, userID uuid.UUID) error
}

type CommentHandler struct {
	log     logger.Log
	service CommentService
}

func NewCommentHandler(l logger.Log, s CommentService) *CommentHandler {
	return &CommentHandler{
		log:     l,
		service: s,
	}
}

type commentRequest struct {
	Comment string `json:"comment" binding:"required"`
	PostID  string `json:"postId" binding:"required"`
}

type commentResponse struct {
	ID        string    `json:"_id"`
	Comment   string    `json:"comment"`
	PostID    string    `json:"postId"`
	Owner     string    `json:"owner"`
	CreatedAt time.Time `json:"createdAt"`
}

func toCommentResponse(m *models.Comment) commentResponse {
	return commentResponse{
		ID:        m.ID.String(),
		Comment:   m.Comment,
		PostID:    m.PostID.String(),
		Owner:     m.Owner.String(),
		CreatedAt: m.CreatedAt,
	}
}

func (h *CommentHandler) CreateComment(c *gin.Context) {
	var input commentRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	postID, err := uuid.Parse(input.PostID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid postId"})
		return
	}

	userID, ok := middleware.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	comment, err := h.service.CreateComment(c.Request.Context(), models.Comment{
		Comment: input.Comment,
		PostID:  postID,
		Owner:   userID,
	})
	if err != nil {
		if errors.Is(err, app_errors.ErrPostNotFound) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		h.log.ErrorErr("error creating comment", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "server error"})
		return
	}

	c.JSON(http.StatusCreated, toCommentResponse(comment))
}

func (h *CommentHandler) ListComments(c *gin.Context) {
	var owner, postID *uuid.UUID
	if ownerParam := c.Query("owner"); ownerParam != "" {
		id, err := uuid.Parse(ownerParam)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid owner"})
			return
		}
		owner = &id
	}
	if postParam := c.Query("post"); postParam != "" {
		id, err := uuid.Parse(postParam)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid post"})
			return
		}
		postID = &id
	}

	comments, err := h.service.ListComments(c.Request.Context(), owner, postID)
	if err != nil {
		h.log.ErrorErr("error listing comments", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "server error"})
		return
	}

	resp := make([]commentResponse, 0, len(comments))
	for i := range comments {
		resp = append(resp, toCommentResponse(&comments[i]))
	}
	c.JSON(http.StatusOK, resp)
}

func (h *CommentHandler) CommentByID(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid comment id"})
		return
	}

	comment, err := h.service.CommentByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, app_errors.ErrCommentNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		h.log.ErrorErr("error retrieving comment", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "server error"})
		return
	}

	c.JSON(http.StatusOK, toCommentResponse(comment))
}

func (h *CommentHandler) DeleteComment(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid comment id"})
		return
	}

	userID, ok := middleware.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	if err := h.service.DeleteComment(c.Request.Context(), id, userID); err != nil {
		switch {
		case errors.Is(err, app_errors.ErrCommentNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		case errors.Is(err, app_errors.ErrNotOwner):
			c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
		default:
			h.log.ErrorErr("error deleting comment", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "server error"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "deleted"})
}
