package domain

import "time"

// Plan is the subscription tier gating feature limits.
type Plan string

const (
	PlanFree Plan = "FREE"
	PlanPro  Plan = "PRO"
)

// SubscriptionStatus is the local billing status vocabulary.
type SubscriptionStatus string

const (
	SubscriptionActive    SubscriptionStatus = "ACTIVE"
	SubscriptionPastDue   SubscriptionStatus = "PAST_DUE"
	SubscriptionCancelled SubscriptionStatus = "CANCELLED"
)

// Subscription is one user's billing state, the local projection of the
// payment provider's ledger. Exactly one row exists per user; it is created
// lazily with PlanFree/SubscriptionActive on first access.
type Subscription struct {
	SubscriptionID string `json:"subscriptionID"` // Primary Key (UUID)
	UserID         string `json:"userID"`         // Unique owner reference

	Plan   Plan               `json:"plan"`
	Status SubscriptionStatus `json:"status"`

	// Provider-side identifiers, set once the corresponding provider object
	// exists. Nil until then.
	BillingCustomerID     *string `json:"billingCustomerID,omitempty"`
	BillingSubscriptionID *string `json:"billingSubscriptionID,omitempty"`

	// End of the current paid period. Nil when no paid period is active.
	CurrentPeriodEnd *time.Time `json:"currentPeriodEnd,omitempty"`

	AuditFields
}

// NewFreeSubscription builds the default subscription synthesized when a user
// without one first touches a billing or dashboard endpoint.
func NewFreeSubscription(subscriptionID, userID string, now time.Time) Subscription {
	return Subscription{
		SubscriptionID: subscriptionID,
		UserID:         userID,
		Plan:           PlanFree,
		Status:         SubscriptionActive,
		AuditFields: AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}
}
