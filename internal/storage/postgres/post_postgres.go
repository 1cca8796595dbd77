package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/yael201062/rest-api2/internal/app_errors"
	"github.com/yael201062/rest-api2/internal/models"
)

type PostPostgres struct {
	db *pgxpool.Pool
}

func NewPostPostgres(db *pgxpool.Pool) *PostPostgres {
	return &PostPostgres{db: db}
}

func (r *PostPostgres) NewPost(ctx context.Context, post *models.Post) (uuid.UUID, error) {
	if post.ID == uuid.Nil {
		post.ID = uuid.New()
	}
	now := time.Now().UTC()
	post.CreatedAt = now
	post.UpdatedAt = now
	query := `
		INSERT INTO posts (id, title, content, owner, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id
	`
	var returnedID uuid.UUID
	err := r.db.QueryRow(ctx, query,
		post.ID, post.Title, post.Content, post.Owner, post.CreatedAt, post.UpdatedAt,
	).Scan(&returnedID)
	if err != nil {
		return uuid.Nil, err
	}
	return returnedID, nil
}

func (r *PostPostgres) PostByID(ctx context.Context, id uuid.UUID) (*models.Post, error) {
	query := `SELECT id, title, content, owner, created_at, updated_at FROM posts WHERE id = $1`

	var post models.Post
	err := r.db.QueryRow(ctx, query, id).
		Scan(&post.ID, &post.Title, &post.Content, &post.Owner, &post.CreatedAt, &post.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, app_errors.ErrPostNotFound
		}
		return nil, err
	}
	return &post, nil
}

func (r *PostPostgres) ListPosts(ctx context.Context, owner *uuid.UUID) ([]models.Post, error) {
	query := `SELECT id, title, content, owner, created_at, updated_at FROM posts`
	args := []any{}
	if owner != nil {
		query += ` WHERE owner = $1`
		args = append(args, *owner)
	}
	query += ` ORDER BY created_at`

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	posts := make([]models.Post, 0)
	for rows.Next() {
		var post models.Post
		if err := rows.Scan(&post.ID, &post.Title, &post.Content, &post.Owner, &post.CreatedAt, &post.UpdatedAt); err != nil {
			return nil, err
		}
		posts = append(posts, post)
	}
	return posts, rows.Err()
}

func (r *PostPostgres) UpdatePost(ctx context.Context, post *models.Post) error {
	post.UpdatedAt = time.Now().UTC()
	query := `UPDATE posts SET title = $2, content = $3, updated_at = $4 WHERE id = $1`
	tag, err := r.db.Exec(ctx, query, post.ID, post.Title, post.Content, post.UpdatedAt)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return app_errors.ErrPostNotFound
	}
	return nil
}

func (r *PostPostgres) DeletePost(ctx context.Context, id uuid.UUID) error {
	query := `DELETE FROM posts WHERE id = $1`
	tag, err := r.db.Exec(ctx, query, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return app_errors.ErrPostNotFound
	}
	return nil
}
