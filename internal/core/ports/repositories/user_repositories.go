package repositories

import (
	"context"
	"time"

	"github.com/spendwise/spendwise_app/internal/core/domain"
)

// UserReaderRepository defines read operations for user data.
type UserReaderRepository interface {
	FindUserByID(ctx context.Context, userID string) (*domain.User, error)
	FindUserByEmail(ctx context.Context, email string) (*domain.User, error)
	// FindCredentialsByEmail returns the user together with its stored
	// password hash for authentication.
	FindCredentialsByEmail(ctx context.Context, email string) (*domain.User, string, error)
	// FindRefreshToken returns the stored refresh token hash and expiry for a user.
	FindRefreshToken(ctx context.Context, userID string) (string, *time.Time, error)
	ListUsers(ctx context.Context, limit, offset int) ([]domain.User, error)
}

// UserWriterRepository defines write operations for user data.
type UserWriterRepository interface {
	SaveUser(ctx context.Context, user domain.User, passwordHash string) error
	UpdateUser(ctx context.Context, user domain.User) error
	UpdateUserRole(ctx context.Context, userID string, role domain.UserRole, updaterUserID string) error
	UpdateDefaultCurrency(ctx context.Context, userID string, currencyCode string) error
	StoreRefreshToken(ctx context.Context, userID string, tokenHash string, expiresAt time.Time) error
	ClearRefreshToken(ctx context.Context, userID string) error
	// DeleteUserCascade removes the user and all owned records (expenses,
	// incomes, categories, subscription) in a single transaction.
	DeleteUserCascade(ctx context.Context, userID string) error
}

// UserRepositoryFacade combines all user repository interfaces.
type UserRepositoryFacade interface {
	UserReaderRepository
	UserWriterRepository
}
