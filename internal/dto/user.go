package dto

import (
	"time"

	"github.com/spendwise/spendwise_app/internal/core/domain"
)

// UserResponse defines the data returned for a user.
type UserResponse struct {
	UserID          string    `json:"userID"`
	Email           string    `json:"email"`
	Name            string    `json:"name"`
	Role            string    `json:"role"`
	DefaultCurrency string    `json:"defaultCurrency"`
	CreatedAt       time.Time `json:"createdAt"`
	LastUpdatedAt   time.Time `json:"lastUpdatedAt"`
}

// ToUserResponse converts a domain.User to UserResponse DTO
func ToUserResponse(user *domain.User) UserResponse {
	return UserResponse{
		UserID:          user.UserID,
		Email:           user.Email,
		Name:            user.Name,
		Role:            string(user.Role),
		DefaultCurrency: user.DefaultCurrency,
		CreatedAt:       user.CreatedAt,
		LastUpdatedAt:   user.LastUpdatedAt,
	}
}

// UpdateUserRequest defines the data allowed for updating a user.
// Using pointers to differentiate between omitted fields and zero-value fields.
type UpdateUserRequest struct {
	Name *string `json:"name"`
}

// UpdateCurrencyRequest sets the user's default display currency.
type UpdateCurrencyRequest struct {
	Currency string `json:"currency" binding:"required,currencycode"`
}
