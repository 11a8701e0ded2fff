package models

import (
	"database/sql"
	"time"
)

// Subscription represents a subscription row. One row per user, unique on
// user_id; provider identifiers and period end are nullable.
type Subscription struct {
	SubscriptionID        string         `db:"subscription_id"`
	UserID                string         `db:"user_id"`
	Plan                  string         `db:"plan"`
	Status                string         `db:"status"`
	BillingCustomerID     sql.NullString `db:"billing_customer_id"`
	BillingSubscriptionID sql.NullString `db:"billing_subscription_id"`
	CurrentPeriodEnd      sql.NullTime   `db:"current_period_end"`
	AuditFields
}

// NullTimePtr converts a sql.NullTime to a *time.Time.
func NullTimePtr(t sql.NullTime) *time.Time {
	if !t.Valid {
		return nil
	}
	v := t.Time
	return &v
}

// NullStringPtr converts a sql.NullString to a *string.
func NullStringPtr(s sql.NullString) *string {
	if !s.Valid {
		return nil
	}
	v := s.String
	return &v
}
