package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/yael201062/rest-api2/internal/app_errors"
)

var signingMethod = jwt.SigningMethodHS256

// Claims is the single claims shape shared by access and refresh tokens.
// The two differ only in lifetime; Random decorrelates the two tokens of a
// pair minted in the same call.
type Claims struct {
	Random string `json:"random"`
	jwt.RegisteredClaims
}

type JWTManager struct {
	secretKey  string
	accessTTL  time.Duration
	refreshTTL time.Duration
}

func NewJWTManager(secretKey string, accessTTL, refreshTTL time.Duration) *JWTManager {
	return &JWTManager{
		secretKey:  secretKey,
		accessTTL:  accessTTL,
		refreshTTL: refreshTTL,
	}
}

func (j *JWTManager) sign(userID uuid.UUID, nonce string, ttl time.Duration) (string, error) {
	now := time.Now()
	token := jwt.NewWithClaims(signingMethod, Claims{
		Random: nonce,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID.String(),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	})
	signed, err := token.SignedString([]byte(j.secretKey))
	if err != nil {
		return "", fmt.Errorf("token signing failed: %w", err)
	}
	return signed, nil
}

// GenerateTokenPair mints an access and a refresh token for the same subject.
// Fails when no signing secret is configured.
func (j *JWTManager) GenerateTokenPair(userID uuid.UUID) (accessToken, refreshToken string, err error) {
	if j.secretKey == "" {
		return "", "", app_errors.ErrServerMisconfigured
	}

	nonce := uuid.NewString()

	accessToken, err = j.sign(userID, nonce, j.accessTTL)
	if err != nil {
		return "", "", err
	}
	refreshToken, err = j.sign(userID, nonce, j.refreshTTL)
	if err != nil {
		return "", "", err
	}
	return accessToken, refreshToken, nil
}

// Parse verifies the signature and expiry of a token and returns its claims.
// Expiry is checked twice: once by the jwt library during parsing and once
// against the embedded timestamp, so a token without a future exp can never
// slip through library defaults.
func (j *JWTManager) Parse(tokenStr string) (*Claims, error) {
	if j.secretKey == "" {
		return nil, app_errors.ErrServerMisconfigured
	}

	claims := &Claims{}
	_, err := jwt.ParseWithClaims(tokenStr, claims, func(token *jwt.Token) (interface{}, error) {
		if token.Method != signingMethod {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(j.secretKey), nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, app_errors.ErrTokenExpired
		}
		return nil, fmt.Errorf("failed to parse token: %w", err)
	}

	if claims.ExpiresAt == nil || !claims.ExpiresAt.After(time.Now()) {
		return nil, app_errors.ErrTokenExpired
	}

	return claims, nil
}
