package comment

import (
	"context"

	"github.com/google/uuid"

	"github.com/yael201062/rest-api2/internal/app_errors"
	"github.com/yael201062/rest-api2/internal/models"
	"github.com/yael201062/rest-api2/pkg/logger"
)

type CommentRepo interface {
	NewComment(ctx context.Context, comment *models.Comment) (uuid.UUID, error)
	CommentByID(ctx context.Context, id uuid.UUID) (*models.Comment, error)
	ListComments(ctx context.Context, owner, postID *uuid.UUID) ([]models.Comment, error)
	DeleteComment(ctx context.Context, id uuid.UUID) error
}

type CommentService struct {
	log         logger.Log
	commentRepo CommentRepo
}

func NewCommentService(l logger.Log, repo CommentRepo) *CommentService {
	return &CommentService{
		log:         l,
		commentRepo: repo,
	}
}

func (s *CommentService) CreateComment(ctx context.Context, comment models.Comment) (*models.Comment, error) {
	id, err := s.commentRepo.NewComment(ctx, &comment)
	if err != nil {
		return nil, err
	}
	comment.ID = id
	return &comment, nil
}

func (s *CommentService) CommentByID(ctx context.Context, id uuid.UUID) (*models.Comment, error) {
	return s.commentRepo.CommentByID(ctx, id)
}

func (s *CommentService) ListComments(ctx context.Context, owner, postID *uuid.UUID) ([]models.Comment, error) {
	return s.commentRepo.ListComments(ctx, owner, postID)
}

func (s *CommentService) DeleteComment(ctx context.Context, id, userID uuid.UUID) error {
	comment, err := s.commentRepo.CommentByID(ctx, id)
	if err != nil {
		return err
	}
	if comment.Owner != userID {
		return app_errors.ErrNotOwner
	}
	return s.commentRepo.DeleteComment(ctx, id)
}
