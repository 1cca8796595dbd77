package postgres

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

// TokensPostgres stores the per-user collection of currently valid,
// unconsumed refresh tokens.
type TokensPostgres struct {
	db *pgxpool.Pool
}

func NewTokensPostgres(db *pgxpool.Pool) *TokensPostgres {
	return &TokensPostgres{db: db}
}

func (r *TokensPostgres) Append(ctx context.Context, userID uuid.UUID, token string) error {
	query := `INSERT INTO refresh_tokens (user_id, token) VALUES ($1, $2)`
	_, err := r.db.Exec(ctx, query, userID, token)
	return err
}

// Consume removes the token from the user's collection if it is present and
// reports whether a row was removed. The conditional delete is a single
// statement, so two concurrent redemptions of the same token cannot both
// succeed.
func (r *TokensPostgres) Consume(ctx context.Context, userID uuid.UUID, token string) (bool, error) {
	query := `DELETE FROM refresh_tokens WHERE user_id = $1 AND token = $2`
	tag, err := r.db.Exec(ctx, query, userID, token)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

func (r *TokensPostgres) PurgeUser(ctx context.Context, userID uuid.UUID) error {
	query := `DELETE FROM refresh_tokens WHERE user_id = $1`
	_, err := r.db.Exec(ctx, query, userID)
	return err
}
