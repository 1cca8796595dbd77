package models

import "github.com/google/uuid"

// TokenPair is the result of a successful login or refresh: a short-lived
// access token and a longer-lived, server-tracked refresh token.
type TokenPair struct {
	AccessToken  string
	RefreshToken string
	UserID       uuid.UUID
}
