package models

import (
	"database/sql"
	"time"
)

// User represents a user row, including the credential columns that never
// leave the persistence layer.
type User struct {
	UserID          string `db:"user_id"`
	Email           string `db:"email"`
	Name            string `db:"name"`
	Role            string `db:"role"`
	DefaultCurrency string `db:"default_currency"`
	PasswordHash    string `db:"password_hash"`
	AuditFields
	DeletedAt *time.Time `db:"deleted_at"`

	// Refresh Token Fields
	RefreshTokenHash       sql.NullString `db:"refresh_token_hash"`
	RefreshTokenExpiryTime sql.NullTime   `db:"refresh_token_expiry_time"`
}
