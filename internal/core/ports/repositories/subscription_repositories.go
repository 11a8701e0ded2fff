package repositories

import (
	"context"

	"github.com/spendwise/spendwise_app/internal/core/domain"
)

// SubscriptionRepositoryFacade defines persistence operations for subscriptions.
//
// UpsertSubscription must be a single atomic statement keyed on the unique
// user reference: reconciler transitions are last-write-wins full-record
// overwrites, never increments.
type SubscriptionRepositoryFacade interface {
	FindSubscriptionByUserID(ctx context.Context, userID string) (*domain.Subscription, error)
	FindSubscriptionByBillingID(ctx context.Context, billingSubscriptionID string) (*domain.Subscription, error)
	UpsertSubscription(ctx context.Context, subscription domain.Subscription) error
}
