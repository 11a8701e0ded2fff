package domain

import "time"

// UserRole distinguishes regular users from administrators.
type UserRole string

const (
	RoleUser  UserRole = "USER"
	RoleAdmin UserRole = "ADMIN"
)

// User represents a user of the application in the domain.
type User struct {
	UserID          string   `json:"userID"` // Primary Key (UUID)
	Email           string   `json:"email"`
	Name            string   `json:"name"`
	Role            UserRole `json:"role"`
	DefaultCurrency string   `json:"defaultCurrency"`
	AuditFields
	DeletedAt *time.Time `json:"deletedAt,omitempty"` // Used for soft delete
}

// IsAdmin reports whether the user holds the admin role.
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}
