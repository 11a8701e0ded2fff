package services

import (
	"context"
	"time"

	"github.com/spendwise/spendwise_app/internal/core/domain"
	"github.com/spendwise/spendwise_app/internal/dto"
)

// SubscriptionSvcFacade exposes the caller-facing subscription operations.
type SubscriptionSvcFacade interface {
	// GetOrCreateSubscription returns the user's subscription, lazily
	// synthesizing a FREE/ACTIVE one when none exists.
	GetOrCreateSubscription(ctx context.Context, userID string) (*domain.Subscription, error)
	// UpsertSubscription replaces the caller's subscription record wholesale.
	UpsertSubscription(ctx context.Context, userID string, req dto.UpdateSubscriptionRequest) (*domain.Subscription, error)
	// CreateCheckoutSession provisions a provider customer if needed and
	// returns the hosted checkout URL for the PRO plan.
	CreateCheckoutSession(ctx context.Context, user *domain.User) (string, error)
	// CreatePortalSession returns the hosted billing-portal URL. Fails when
	// the user has no provider customer yet.
	CreatePortalSession(ctx context.Context, userID string) (string, error)
}

// BillingReconcilerSvc applies verified provider events to subscription records.
type BillingReconcilerSvc interface {
	// ProcessEvent applies one verified billing event. Unrecognized event
	// types are acknowledged without effect. Redeliveries are idempotent.
	ProcessEvent(ctx context.Context, event domain.BillingEvent) error
}

// BillingProvider is the outbound client for the payment processor's API.
// The hosted checkout, portal and subscription ledger live on the provider
// side; this port only reaches the few endpoints the backend needs.
type BillingProvider interface {
	CreateCustomer(ctx context.Context, email, name, userID string) (customerID string, err error)
	CreateCheckoutSession(ctx context.Context, customerID, priceID, successURL, cancelURL, userID string) (url string, err error)
	CreatePortalSession(ctx context.Context, customerID, returnURL string) (url string, err error)
	// GetSubscriptionPeriodEnd retrieves the current period end of a provider
	// subscription, used to enrich webhook events that reference one.
	GetSubscriptionPeriodEnd(ctx context.Context, subscriptionID string) (time.Time, error)
}
