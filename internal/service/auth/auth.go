package auth

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/yael201062/rest-api2/internal/app_errors"
	"github.com/yael201062/rest-api2/internal/models"
	"github.com/yael201062/rest-api2/pkg/logger"
)

const minPasswordLen = 6

type UserRepo interface {
	CreateUser(ctx context.Context, user models.User) (*models.User, error)
	UserByEmail(ctx context.Context, email string) (*models.User, error)
	UserByID(ctx context.Context, id uuid.UUID) (*models.User, error)
}

type tokenRepo interface {
	Append(ctx context.Context, userID uuid.UUID, token string) error
	Consume(ctx context.Context, userID uuid.UUID, token string) (bool, error)
	PurgeUser(ctx context.Context, userID uuid.UUID) error
}

// AuthService owns the session lifecycle: registration, login, refresh-token
// rotation and logout. A refresh token is valid only while it sits in its
// user's persisted token collection, which makes the otherwise stateless JWT
// individually revocable.
type AuthService struct {
	log        logger.Log
	jwtManager *JWTManager
	userRepo   UserRepo
	tokenRepo  tokenRepo
}

func NewAuthService(l logger.Log, manager *JWTManager, uRepo UserRepo, tRepo tokenRepo) *AuthService {
	return &AuthService{
		log:        l,
		jwtManager: manager,
		userRepo:   uRepo,
		tokenRepo:  tRepo,
	}
}

// Register creates a user with a hashed password. No tokens are minted here;
// the client logs in afterwards.
func (u *AuthService) Register(ctx context.Context, email, password string) (*models.User, error) {
	if len(password) < minPasswordLen {
		return nil, app_errors.ErrWeakPassword
	}

	hash, err := hashPassword(password)
	if err != nil {
		return nil, err
	}

	created, err := u.userRepo.CreateUser(ctx, models.User{
		Email:        email,
		PasswordHash: hash,
	})
	if err != nil {
		return nil, err
	}

	return created, nil
}

// Login checks credentials and mints a token pair. Unknown email and wrong
// password are deliberately indistinguishable to the caller.
func (u *AuthService) Login(ctx context.Context, email, password string) (*models.TokenPair, error) {
	user, err := u.userRepo.UserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, app_errors.ErrUserNotFound) {
			return nil, app_errors.ErrInvalidCredentials
		}
		return nil, err
	}

	if !checkPasswordHash(password, user.PasswordHash) {
		return nil, app_errors.ErrInvalidCredentials
	}

	return u.issueTokens(ctx, user.ID)
}

// Refresh redeems a refresh token for a new pair. The redeemed token is
// consumed before the replacement is appended, so each refresh token can be
// used exactly once and the collection size is unchanged per rotation.
func (u *AuthService) Refresh(ctx context.Context, refreshToken string) (*models.TokenPair, error) {
	user, err := u.verifyRefreshToken(ctx, refreshToken)
	if err != nil {
		return nil, err
	}
	return u.issueTokens(ctx, user.ID)
}

// Logout consumes a refresh token without minting a replacement.
func (u *AuthService) Logout(ctx context.Context, refreshToken string) error {
	_, err := u.verifyRefreshToken(ctx, refreshToken)
	return err
}

// AccessClaims validates a bearer access token and returns its subject.
// It never consults the user store: any well-signed, unexpired token is
// trusted for the duration of its (short) lifetime.
func (u *AuthService) AccessClaims(ctx context.Context, token string) (uuid.UUID, error) {
	claims, err := u.jwtManager.Parse(token)
	if err != nil {
		return uuid.Nil, err
	}
	userID, err := uuid.Parse(claims.Subject)
	if err != nil {
		return uuid.Nil, app_errors.ErrInvalidToken
	}
	return userID, nil
}

func (u *AuthService) User(ctx context.Context, id uuid.UUID) (*models.User, error) {
	return u.userRepo.UserByID(ctx, id)
}

func (u *AuthService) issueTokens(ctx context.Context, userID uuid.UUID) (*models.TokenPair, error) {
	accessToken, refreshToken, err := u.jwtManager.GenerateTokenPair(userID)
	if err != nil {
		return nil, err
	}

	if err := u.tokenRepo.Append(ctx, userID, refreshToken); err != nil {
		return nil, err
	}

	return &models.TokenPair{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		UserID:       userID,
	}, nil
}

// verifyRefreshToken is the shared validation path for Refresh and Logout.
// A token must carry a valid signature and expiry AND still be present in
// its user's collection. Presenting a well-signed token that is no longer in
// the collection is treated as replay or theft: the user's entire collection
// is purged, invalidating every outstanding session for that user.
func (u *AuthService) verifyRefreshToken(ctx context.Context, refreshToken string) (*models.User, error) {
	if refreshToken == "" {
		return nil, app_errors.ErrInvalidToken
	}

	claims, err := u.jwtManager.Parse(refreshToken)
	if err != nil {
		if errors.Is(err, app_errors.ErrServerMisconfigured) {
			return nil, err
		}
		return nil, app_errors.ErrInvalidToken
	}

	userID, err := uuid.Parse(claims.Subject)
	if err != nil {
		return nil, app_errors.ErrInvalidToken
	}

	user, err := u.userRepo.UserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, app_errors.ErrUserNotFound) {
			return nil, app_errors.ErrInvalidToken
		}
		return nil, err
	}

	consumed, err := u.tokenRepo.Consume(ctx, user.ID, refreshToken)
	if err != nil {
		return nil, err
	}
	if !consumed {
		u.log.Warn("refresh token replay detected, revoking all user sessions", "user_id", user.ID.String())
		if err := u.tokenRepo.PurgeUser(ctx, user.ID); err != nil {
			return nil, err
		}
		return nil, app_errors.ErrInvalidToken
	}

	return user, nil
}
