package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/spendwise/spendwise_app/internal/apperrors"
	"github.com/spendwise/spendwise_app/internal/core/domain"
	portsrepo "github.com/spendwise/spendwise_app/internal/core/ports/repositories"
	"github.com/spendwise/spendwise_app/internal/dto"
	"github.com/spendwise/spendwise_app/internal/middleware"
	"github.com/spendwise/spendwise_app/internal/utils"
)

// UserService provides user management operations.
type UserService struct {
	userRepo portsrepo.UserRepositoryFacade
	now      func() time.Time
}

// NewUserService creates a new UserService.
func NewUserService(userRepo portsrepo.UserRepositoryFacade) *UserService {
	return &UserService{userRepo: userRepo, now: time.Now}
}

// GetUserByID retrieves a user by their ID.
func (s *UserService) GetUserByID(ctx context.Context, userID string) (*domain.User, error) {
	user, err := s.userRepo.FindUserByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("finding user %s: %w", userID, err)
	}
	return user, nil
}

// GetUserByEmail retrieves a user by their email address.
func (s *UserService) GetUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	user, err := s.userRepo.FindUserByEmail(ctx, normalizeEmail(email))
	if err != nil {
		return nil, fmt.Errorf("finding user by email: %w", err)
	}
	return user, nil
}

// RegisterUser creates a new user from the signup payload.
func (s *UserService) RegisterUser(ctx context.Context, req dto.RegisterRequest) (*domain.User, error) {
	email := normalizeEmail(req.Email)

	if _, err := s.userRepo.FindUserByEmail(ctx, email); err == nil {
		return nil, fmt.Errorf("%w: email already registered", apperrors.ErrDuplicate)
	} else if !errors.Is(err, apperrors.ErrNotFound) {
		return nil, fmt.Errorf("checking email availability: %w", err)
	}

	hash, err := utils.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("hashing password: %w", err)
	}

	user := s.newUser(email, req.Name)
	if err := s.userRepo.SaveUser(ctx, user, hash); err != nil {
		return nil, fmt.Errorf("saving user: %w", err)
	}

	middleware.GetLoggerFromCtx(ctx).Info("registered user", "userID", user.UserID)
	return &user, nil
}

// FindOrCreateGoogleUser resolves a verified Google identity to a local user,
// creating one with a random credential on first sign-in.
func (s *UserService) FindOrCreateGoogleUser(ctx context.Context, email, name string) (*domain.User, error) {
	email = normalizeEmail(email)

	user, err := s.userRepo.FindUserByEmail(ctx, email)
	if err == nil {
		return user, nil
	}
	if !errors.Is(err, apperrors.ErrNotFound) {
		return nil, fmt.Errorf("finding google user: %w", err)
	}

	// Google accounts never authenticate with a password locally, but the
	// column is non-null, so store a hash nobody can ever match.
	random, err := utils.GenerateSecureRandomString(32)
	if err != nil {
		return nil, fmt.Errorf("generating placeholder credential: %w", err)
	}
	hash, err := utils.HashPassword(random)
	if err != nil {
		return nil, fmt.Errorf("hashing placeholder credential: %w", err)
	}

	created := s.newUser(email, name)
	if err := s.userRepo.SaveUser(ctx, created, hash); err != nil {
		return nil, fmt.Errorf("saving google user: %w", err)
	}

	middleware.GetLoggerFromCtx(ctx).Info("created user from google sign-in", "userID", created.UserID)
	return &created, nil
}

// UpdateUser applies the allowed profile changes to a user.
func (s *UserService) UpdateUser(ctx context.Context, userID string, req dto.UpdateUserRequest) (*domain.User, error) {
	user, err := s.userRepo.FindUserByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("finding user %s: %w", userID, err)
	}

	if req.Name != nil {
		user.Name = strings.TrimSpace(*req.Name)
		if user.Name == "" {
			return nil, fmt.Errorf("%w: name cannot be empty", apperrors.ErrValidation)
		}
	}
	user.LastUpdatedAt = s.now()
	user.LastUpdatedBy = userID

	if err := s.userRepo.UpdateUser(ctx, *user); err != nil {
		return nil, fmt.Errorf("updating user %s: %w", userID, err)
	}
	return user, nil
}

// UpdateDefaultCurrency sets the user's default display currency. The code
// is validated at the binding layer.
func (s *UserService) UpdateDefaultCurrency(ctx context.Context, userID string, currencyCode string) (*domain.User, error) {
	if err := s.userRepo.UpdateDefaultCurrency(ctx, userID, currencyCode); err != nil {
		return nil, fmt.Errorf("updating default currency for user %s: %w", userID, err)
	}
	return s.GetUserByID(ctx, userID)
}

// UpdateUserRole changes a user's role. Admins cannot demote themselves.
func (s *UserService) UpdateUserRole(ctx context.Context, userID string, role domain.UserRole, updaterUserID string) (*domain.User, error) {
	if userID == updaterUserID {
		return nil, fmt.Errorf("%w: cannot change own role", apperrors.ErrForbidden)
	}
	if err := s.userRepo.UpdateUserRole(ctx, userID, role, updaterUserID); err != nil {
		return nil, fmt.Errorf("updating role for user %s: %w", userID, err)
	}
	return s.GetUserByID(ctx, userID)
}

// DeleteUser removes a user and everything they own. Admin accounts cannot
// be deleted.
func (s *UserService) DeleteUser(ctx context.Context, userID string) error {
	user, err := s.userRepo.FindUserByID(ctx, userID)
	if err != nil {
		return fmt.Errorf("finding user %s: %w", userID, err)
	}
	if user.IsAdmin() {
		return fmt.Errorf("%w: admin accounts cannot be deleted", apperrors.ErrForbidden)
	}
	if err := s.userRepo.DeleteUserCascade(ctx, userID); err != nil {
		return fmt.Errorf("deleting user %s: %w", userID, err)
	}
	middleware.GetLoggerFromCtx(ctx).Info("deleted user", "userID", userID)
	return nil
}

// AuthenticateUser verifies credentials and returns the user on success.
func (s *UserService) AuthenticateUser(ctx context.Context, email, password string) (*domain.User, error) {
	user, hash, err := s.userRepo.FindCredentialsByEmail(ctx, normalizeEmail(email))
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: invalid credentials", apperrors.ErrUnauthorized)
		}
		return nil, fmt.Errorf("loading credentials: %w", err)
	}
	if !utils.CheckPasswordHash(password, hash) {
		return nil, fmt.Errorf("%w: invalid credentials", apperrors.ErrUnauthorized)
	}
	return user, nil
}

// StoreRefreshToken persists the hash of a refresh token for a user.
func (s *UserService) StoreRefreshToken(ctx context.Context, userID string, tokenHash string, expiresAt time.Time) error {
	return s.userRepo.StoreRefreshToken(ctx, userID, tokenHash, expiresAt)
}

// GetRefreshToken returns the stored refresh token hash and its expiry.
func (s *UserService) GetRefreshToken(ctx context.Context, userID string) (string, *time.Time, error) {
	return s.userRepo.FindRefreshToken(ctx, userID)
}

// ClearRefreshToken removes a user's stored refresh token.
func (s *UserService) ClearRefreshToken(ctx context.Context, userID string) error {
	return s.userRepo.ClearRefreshToken(ctx, userID)
}

func (s *UserService) newUser(email, name string) domain.User {
	now := s.now()
	id := uuid.NewString()
	return domain.User{
		UserID:          id,
		Email:           email,
		Name:            name,
		Role:            domain.RoleUser,
		DefaultCurrency: domain.BaseCurrencyCode,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     id,
			LastUpdatedAt: now,
			LastUpdatedBy: id,
		},
	}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
