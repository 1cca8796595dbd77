package post

import (
	"context"

	"github.com/google/uuid"

	"github.com/yael201062/rest-api2/internal/app_errors"
	"github.com/yael201062/rest-api2/internal/models"
	"github.com/yael201062/rest-api2/pkg/logger"
)

type PostRepo interface {
	NewPost(ctx context.Context, post *models.Post) (uuid.UUID, error)
	PostByID(ctx context.Context, id uuid.UUID) (*models.Post, error)
	ListPosts(ctx context.Context, owner *uuid.UUID) ([]models.Post, error)
	UpdatePost(ctx context.Context, post *models.Post) error
	DeletePost(ctx context.Context, id uuid.UUID) error
}

// PostService is a thin owner-scoped layer over the post repository: reads
// are public, mutations are restricted to the record owner.
type PostService struct {
	log      logger.Log
	postRepo PostRepo
}

func NewPostService(l logger.Log, repo PostRepo) *PostService {
	return &PostService{
		log:      l,
		postRepo: repo,
	}
}

func (s *PostService) CreatePost(ctx context.Context, post models.Post) (*models.Post, error) {
	id, err := s.postRepo.NewPost(ctx, &post)
	if err != nil {
		return nil, err
	}
	post.ID = id
	return &post, nil
}

func (s *PostService) PostByID(ctx context.Context, id uuid.UUID) (*models.Post, error) {
	return s.postRepo.PostByID(ctx, id)
}

func (s *PostService) ListPosts(ctx context.Context, owner *uuid.UUID) ([]models.Post, error) {
	return s.postRepo.ListPosts(ctx, owner)
}

func (s *PostService) UpdatePost(ctx context.Context, id, userID uuid.UUID, title, content string) (*models.Post, error) {
	post, err := s.postRepo.PostByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if post.Owner != userID {
		return nil, app_errors.ErrNotOwner
	}

	post.Title = title
	post.Content = content
	if err := s.postRepo.UpdatePost(ctx, post); err != nil {
		return nil, err
	}
	return post, nil
}

func (s *PostService) DeletePost(ctx context.Context, id, userID uuid.UUID) error {
	post, err := s.postRepo.PostByID(ctx, id)
	if err != nil {
		return err
	}
	if post.Owner != userID {
		return app_errors.ErrNotOwner
	}
	return s.postRepo.DeletePost(ctx, id)
}
