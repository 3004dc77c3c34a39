// internal/auth/service.go
// Token issuance and validation. Account signup, OTP and social sign-in are
// handled by an external identity collaborator; this service only mints and
// verifies the access tokens the API routes depend on.

package auth

import (
	"context"
	"errors"
	"time"

	"github.com/alignd-app/alignd-backend/internal/common/utils"
)

var (
	ErrInvalidToken = errors.New("invalid token")
)

// Config holds the token parameters
type Config struct {
	JWTSecret          string
	AccessTokenExpiry  time.Duration
	RefreshTokenExpiry time.Duration
}

// Service interface
type Service interface {
	GenerateAccessToken(ctx context.Context, userID int64) (string, error)
	ValidateToken(ctx context.Context, token string) (*utils.JWTClaims, error)
}

type service struct {
	config *Config
}

func NewService(config *Config) Service {
	return &service{config: config}
}

func (s *service) GenerateAccessToken(ctx context.Context, userID int64) (string, error) {
	now := time.Now()
	claims := &utils.JWTClaims{
		UserID:    userID,
		Type:      "access",
		ExpiresAt: now.Add(s.config.AccessTokenExpiry).Unix(),
		IssuedAt:  now.Unix(),
		Issuer:    "alignd-api",
	}
	return utils.GenerateJWT(claims, s.config.JWTSecret)
}

func (s *service) ValidateToken(ctx context.Context, token string) (*utils.JWTClaims, error) {
	claims, err := utils.ValidateJWT(token, s.config.JWTSecret)
	if err != nil {
		return nil, ErrInvalidToken
	}
	return claims, nil
}
