package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/spendwise/spendwise_app/internal/apperrors"
	"github.com/spendwise/spendwise_app/internal/core/domain"
	portsrepo "github.com/spendwise/spendwise_app/internal/core/ports/repositories"
	portssvc "github.com/spendwise/spendwise_app/internal/core/ports/services"
	"github.com/spendwise/spendwise_app/internal/middleware"
)

// BillingReconcilerService applies verified provider events to the local
// subscription table. Every transition is a full-record overwrite through the
// repository upsert, so redeliveries converge instead of compounding.
type BillingReconcilerService struct {
	subscriptionRepo portsrepo.SubscriptionRepositoryFacade
	provider         portssvc.BillingProvider
	now              func() time.Time
}

// ReconcilerOption configures a BillingReconcilerService.
type ReconcilerOption func(*BillingReconcilerService)

// WithReconcilerClock overrides the time source. Used by tests.
func WithReconcilerClock(now func() time.Time) ReconcilerOption {
	return func(s *BillingReconcilerService) { s.now = now }
}

// NewBillingReconcilerService creates the reconciler. provider may be nil, in
// which case period-end enrichment is skipped.
func NewBillingReconcilerService(subscriptionRepo portsrepo.SubscriptionRepositoryFacade, provider portssvc.BillingProvider, opts ...ReconcilerOption) *BillingReconcilerService {
	s := &BillingReconcilerService{
		subscriptionRepo: subscriptionRepo,
		provider:         provider,
		now:              time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// ProcessEvent applies one verified billing event. Unrecognized event types
// are logged and acknowledged without effect.
func (s *BillingReconcilerService) ProcessEvent(ctx context.Context, event domain.BillingEvent) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	if !event.Recognized() {
		logger.Info("ignoring unrecognized billing event", "eventType", event.Type)
		return nil
	}

	sub, err := s.locateSubscription(ctx, event)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			// No local record to reconcile against. Acknowledge so the
			// provider stops retrying; the lazy-create path will pick up the
			// correct state next time the user is seen.
			logger.Warn("billing event matched no subscription",
				"eventType", event.Type, "billingSubscriptionID", event.SubscriptionID)
			return nil
		}
		return fmt.Errorf("locating subscription for billing event: %w", err)
	}

	s.enrichPeriodEnd(ctx, &event)

	next, applied := applyBillingEvent(*sub, event)
	if !applied {
		logger.Info("billing event produced no transition",
			"eventType", event.Type, "subscriptionID", sub.SubscriptionID)
		return nil
	}

	next.LastUpdatedAt = s.now()
	next.LastUpdatedBy = "billing-webhook"

	if err := s.subscriptionRepo.UpsertSubscription(ctx, next); err != nil {
		return fmt.Errorf("persisting billing transition: %w", err)
	}

	logger.Info("applied billing event",
		"eventType", event.Type,
		"subscriptionID", next.SubscriptionID,
		"plan", next.Plan,
		"status", next.Status)
	return nil
}

// locateSubscription resolves the event to its local subscription row.
// Checkout events carry the local user id in metadata and may lazily create
// the row; everything else is matched by the provider subscription id.
func (s *BillingReconcilerService) locateSubscription(ctx context.Context, event domain.BillingEvent) (*domain.Subscription, error) {
	if event.SubscriptionID != "" {
		sub, err := s.subscriptionRepo.FindSubscriptionByBillingID(ctx, event.SubscriptionID)
		if err == nil {
			return sub, nil
		}
		if !errors.Is(err, apperrors.ErrNotFound) {
			return nil, err
		}
		// Fall through to the user id when the provider id is not yet linked,
		// which is the normal case for the first checkout event.
	}

	if event.UserID == "" {
		return nil, apperrors.ErrNotFound
	}

	sub, err := s.subscriptionRepo.FindSubscriptionByUserID(ctx, event.UserID)
	if err == nil {
		return sub, nil
	}
	if !errors.Is(err, apperrors.ErrNotFound) {
		return nil, err
	}

	if event.Type != domain.BillingEventCheckoutCompleted {
		return nil, apperrors.ErrNotFound
	}

	created := domain.NewFreeSubscription(uuid.NewString(), event.UserID, s.now())
	return &created, nil
}

// enrichPeriodEnd fills the event's missing period end from the provider.
// Failures are tolerated; the transition still applies without a period end.
func (s *BillingReconcilerService) enrichPeriodEnd(ctx context.Context, event *domain.BillingEvent) {
	if event.PeriodEnd != nil || event.SubscriptionID == "" || s.provider == nil {
		return
	}
	switch event.Type {
	case domain.BillingEventCheckoutCompleted, domain.BillingEventPaymentSucceeded:
	default:
		return
	}

	periodEnd, err := s.provider.GetSubscriptionPeriodEnd(ctx, event.SubscriptionID)
	if err != nil {
		middleware.GetLoggerFromCtx(ctx).Warn("could not enrich billing event period end",
			"billingSubscriptionID", event.SubscriptionID, "error", err)
		return
	}
	event.PeriodEnd = &periodEnd
}

// applyBillingEvent is the pure transition table. It returns the successor
// record and whether the event changed anything.
func applyBillingEvent(sub domain.Subscription, event domain.BillingEvent) (domain.Subscription, bool) {
	switch event.Type {
	case domain.BillingEventCheckoutCompleted:
		sub.Plan = domain.PlanPro
		sub.Status = domain.SubscriptionActive
		if event.CustomerID != "" {
			sub.BillingCustomerID = &event.CustomerID
		}
		if event.SubscriptionID != "" {
			sub.BillingSubscriptionID = &event.SubscriptionID
		}
		sub.CurrentPeriodEnd = event.PeriodEnd
		return sub, true

	case domain.BillingEventPaymentSucceeded:
		sub.Plan = domain.PlanPro
		sub.Status = domain.SubscriptionActive
		if event.SubscriptionID != "" {
			sub.BillingSubscriptionID = &event.SubscriptionID
		}
		if event.PeriodEnd != nil {
			sub.CurrentPeriodEnd = event.PeriodEnd
		}
		return sub, true

	case domain.BillingEventPaymentFailed:
		// A failed invoice that predates the latest local update has already
		// been superseded, typically by a successful retry. Applying it would
		// regress a resolved record.
		if event.OccurredAt.Before(sub.LastUpdatedAt) {
			return sub, false
		}
		sub.Status = domain.SubscriptionPastDue
		return sub, true

	case domain.BillingEventSubscriptionUpdated:
		switch event.ProviderStatus {
		case domain.ProviderStatusActive:
			sub.Status = domain.SubscriptionActive
		case domain.ProviderStatusPastDue:
			sub.Status = domain.SubscriptionPastDue
		default:
			sub.Status = domain.SubscriptionCancelled
		}
		if event.PeriodEnd != nil {
			sub.CurrentPeriodEnd = event.PeriodEnd
		}
		return sub, true

	case domain.BillingEventSubscriptionDeleted:
		sub.Plan = domain.PlanFree
		sub.Status = domain.SubscriptionCancelled
		sub.BillingSubscriptionID = nil
		sub.CurrentPeriodEnd = nil
		return sub, true
	}

	return sub, false
}
