package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/yael201062/rest-api2/internal/app_errors"
	"github.com/yael201062/rest-api2/internal/models"
)

type CommentPostgres struct {
	db *pgxpool.Pool
}

func NewCommentPostgres(db *pgxpool.Pool) *CommentPostgres {
	return &CommentPostgres{db: db}
}

func (r *CommentPostgres) NewComment(ctx context.Context, comment *models.Comment) (uuid.UUID, error) {
	if comment.ID == uuid.Nil {
		comment.ID = uuid.New()
	}
	comment.CreatedAt = time.Now().UTC()
	query := `
		INSERT INTO comments (id, comment, post_id, owner, created_at)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id
	`
	var returnedID uuid.UUID
	err := r.db.QueryRow(ctx, query,
		comment.ID, comment.Comment, comment.PostID, comment.Owner, comment.CreatedAt,
	).Scan(&returnedID)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23503" {
			return uuid.Nil, app_errors.ErrPostNotFound
		}
		return uuid.Nil, err
	}
	return returnedID, nil
}

func (r *CommentPostgres) CommentByID(ctx context.Context, id uuid.UUID) (*models.Comment, error) {
	query := `SELECT id, comment, post_id, owner, created_at FROM comments WHERE id = $1`

	var comment models.Comment
	err := r.db.QueryRow(ctx, query, id).
		Scan(&comment.ID, &comment.Comment, &comment.PostID, &comment.Owner, &comment.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, app_errors.ErrCommentNotFound
		}
		return nil, err
	}
	return &comment, nil
}

func (r *CommentPostgres) ListComments(ctx context.Context, owner, postID *uuid.UUID) ([]models.Comment, error) {
	query := `SELECT id, comment, post_id, owner, created_at FROM comments`
	args := []any{}
	where := ""
	if owner != nil {
		args = append(args, *owner)
		where = ` WHERE owner = $1`
	}
	if postID != nil {
		args = append(args, *postID)
		if where == "" {
			where = ` WHERE post_id = $1`
		} else {
			where += ` AND post_id = $2`
		}
	}
	query += where + ` ORDER BY created_at`

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	comments := make([]models.Comment, 0)
	for rows.Next() {
		var comment models.Comment
		if err := rows.Scan(&comment.ID, &comment.Comment, &comment.PostID, &comment.Owner, &comment.CreatedAt); err != nil {
			return nil, err
		}
		comments = append(comments, comment)
	}
	return comments, rows.Err()
}

func (r *CommentPostgres) DeleteComment(ctx context.Context, id uuid.UUID) error {
	query := `DELETE FROM comments WHERE id = $1`
	tag, err := r.db.Exec(ctx, query, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return app_errors.ErrCommentNotFound
	}
	return nil
}
