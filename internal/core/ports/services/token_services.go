package services

import (
	"context"
	"time"

	"github.com/spendwise/spendwise_app/internal/core/domain"
)

// TokenSvcFacade handles JWT access tokens and refresh tokens.
type TokenSvcFacade interface {
	GenerateAccessToken(ctx context.Context, user *domain.User) (string, time.Time, error)
	// GenerateRefreshToken creates a refresh token, stores its hash against
	// the user and returns the raw token and its expiry.
	GenerateRefreshToken(ctx context.Context, user *domain.User) (string, time.Time, error)
	ValidateRefreshToken(ctx context.Context, userID string, refreshToken string) (*domain.User, error)
	ClearRefreshToken(ctx context.Context, userID string) error
}

// GoogleAuthSvcFacade exchanges and validates Google sign-in credentials.
type GoogleAuthSvcFacade interface {
	// ExchangeCodeForIDToken swaps an authorization code for the Google ID
	// token embedded in the token response.
	ExchangeCodeForIDToken(ctx context.Context, code string) (string, error)
	// ValidateIDToken verifies the ID token signature and audience and
	// returns the holder's email and display name.
	ValidateIDToken(ctx context.Context, idToken string) (email string, name string, err error)
}
