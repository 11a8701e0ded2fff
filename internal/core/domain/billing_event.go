package domain

import "time"

// BillingEventType tags a verified payment-provider notification.
type BillingEventType string

const (
	BillingEventCheckoutCompleted   BillingEventType = "checkout.session.completed"
	BillingEventPaymentSucceeded    BillingEventType = "invoice.payment_succeeded"
	BillingEventPaymentFailed       BillingEventType = "invoice.payment_failed"
	BillingEventSubscriptionUpdated BillingEventType = "customer.subscription.updated"
	BillingEventSubscriptionDeleted BillingEventType = "customer.subscription.deleted"
)

// Provider-side subscription status vocabulary carried by
// BillingEventSubscriptionUpdated events.
const (
	ProviderStatusActive  = "active"
	ProviderStatusPastDue = "past_due"
)

// BillingEvent is the tagged, already-verified form of an inbound provider
// notification. It is an immutable input to the reconciler and is never
// stored beyond processing.
type BillingEvent struct {
	Type BillingEventType

	// UserID is only present on checkout events, carried in the provider's
	// session metadata. All other events are matched by SubscriptionID.
	UserID string

	CustomerID     string
	SubscriptionID string

	// ProviderStatus is the provider's own status string, only meaningful on
	// subscription-updated events.
	ProviderStatus string

	// PeriodEnd is the current paid period end as reported (or retrieved
	// from) the provider. Nil when the event type does not carry one.
	PeriodEnd *time.Time

	// OccurredAt is the provider-side creation time of the event, used to
	// reject stale redeliveries that would regress resolved state.
	OccurredAt time.Time
}

// Recognized reports whether the event type participates in the transition table.
func (e BillingEvent) Recognized() bool {
	switch e.Type {
	case BillingEventCheckoutCompleted,
		BillingEventPaymentSucceeded,
		BillingEventPaymentFailed,
		BillingEventSubscriptionUpdated,
		BillingEventSubscriptionDeleted:
		return true
	}
	return false
}
