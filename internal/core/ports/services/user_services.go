package services

import (
	"context"
	"time"

	"github.com/spendwise/spendwise_app/internal/core/domain"
	"github.com/spendwise/spendwise_app/internal/dto"
)

// UserReaderSvc defines read operations for user data.
type UserReaderSvc interface {
	GetUserByID(ctx context.Context, userID string) (*domain.User, error)
	GetUserByEmail(ctx context.Context, email string) (*domain.User, error)
}

// UserWriterSvc defines write operations for user data.
type UserWriterSvc interface {
	// RegisterUser creates a user from the signup payload, hashing the password.
	RegisterUser(ctx context.Context, req dto.RegisterRequest) (*domain.User, error)
	// FindOrCreateGoogleUser resolves a verified Google identity to a local
	// user, creating one on first sign-in.
	FindOrCreateGoogleUser(ctx context.Context, email, name string) (*domain.User, error)
	UpdateUser(ctx context.Context, userID string, req dto.UpdateUserRequest) (*domain.User, error)
	UpdateDefaultCurrency(ctx context.Context, userID string, currencyCode string) (*domain.User, error)
	UpdateUserRole(ctx context.Context, userID string, role domain.UserRole, updaterUserID string) (*domain.User, error)
	// DeleteUser removes a user and everything they own. Admin accounts
	// cannot be deleted.
	DeleteUser(ctx context.Context, userID string) error
}

// UserAuthSvc defines credential and refresh-token operations.
type UserAuthSvc interface {
	AuthenticateUser(ctx context.Context, email, password string) (*domain.User, error)
	StoreRefreshToken(ctx context.Context, userID string, tokenHash string, expiresAt time.Time) error
	GetRefreshToken(ctx context.Context, userID string) (string, *time.Time, error)
	ClearRefreshToken(ctx context.Context, userID string) error
}

// UserSvcFacade combines all user-related service interfaces.
type UserSvcFacade interface {
	UserReaderSvc
	UserWriterSvc
	UserAuthSvc
}
