package services

import (
	"context"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/spendwise/spendwise_app/internal/apperrors"
	"github.com/spendwise/spendwise_app/internal/core/domain"
	portssvc "github.com/spendwise/spendwise_app/internal/core/ports/services"
	"github.com/spendwise/spendwise_app/internal/platform/config"
	"github.com/spendwise/spendwise_app/internal/utils"
)

const refreshTokenBytes = 32

// TokenService issues JWT access tokens and manages opaque refresh tokens.
// Refresh tokens are stored hashed; the raw value only ever travels in the
// auth cookie.
type TokenService struct {
	userSvc portssvc.UserSvcFacade
	cfg     *config.Config
	now     func() time.Time
}

// NewTokenService creates a new TokenService.
func NewTokenService(userSvc portssvc.UserSvcFacade, cfg *config.Config) *TokenService {
	return &TokenService{userSvc: userSvc, cfg: cfg, now: time.Now}
}

// GenerateAccessToken issues a signed JWT for the user.
func (s *TokenService) GenerateAccessToken(ctx context.Context, user *domain.User) (string, time.Time, error) {
	token, err := utils.GenerateJWT(user.UserID, s.cfg.JWTSecret, s.cfg.JWTExpiryDuration, s.cfg.JWTIssuer)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("signing access token: %w", err)
	}
	return token, s.now().Add(s.cfg.JWTExpiryDuration), nil
}

// GenerateRefreshToken creates a random refresh token, stores its hash and
// returns the raw token with its expiry.
func (s *TokenService) GenerateRefreshToken(ctx context.Context, user *domain.User) (string, time.Time, error) {
	raw, err := utils.GenerateSecureRandomString(refreshTokenBytes)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("generating refresh token: %w", err)
	}

	expiresAt := s.now().Add(s.cfg.RefreshTokenExpiryDuration)
	if err := s.userSvc.StoreRefreshToken(ctx, user.UserID, hashToken(raw), expiresAt); err != nil {
		return "", time.Time{}, fmt.Errorf("storing refresh token: %w", err)
	}
	return raw, expiresAt, nil
}

// ValidateRefreshToken checks a presented refresh token against the stored
// hash and expiry, returning the owning user on success.
func (s *TokenService) ValidateRefreshToken(ctx context.Context, userID string, refreshToken string) (*domain.User, error) {
	storedHash, expiresAt, err := s.userSvc.GetRefreshToken(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("loading refresh token: %w", err)
	}
	if storedHash == "" || expiresAt == nil {
		return nil, fmt.Errorf("%w: no refresh token on record", apperrors.ErrUnauthorized)
	}
	if s.now().After(*expiresAt) {
		return nil, fmt.Errorf("%w: refresh token expired", apperrors.ErrUnauthorized)
	}

	presented := hashToken(refreshToken)
	if subtle.ConstantTimeCompare([]byte(presented), []byte(storedHash)) != 1 {
		return nil, fmt.Errorf("%w: refresh token mismatch", apperrors.ErrUnauthorized)
	}

	return s.userSvc.GetUserByID(ctx, userID)
}

// ClearRefreshToken revokes a user's refresh token.
func (s *TokenService) ClearRefreshToken(ctx context.Context, userID string) error {
	return s.userSvc.ClearRefreshToken(ctx, userID)
}

func hashToken(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}
