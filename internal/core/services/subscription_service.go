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
	"github.com/spendwise/spendwise_app/internal/dto"
	"github.com/spendwise/spendwise_app/internal/middleware"
)

// SubscriptionService implements the caller-facing subscription operations.
type SubscriptionService struct {
	subscriptionRepo portsrepo.SubscriptionRepositoryFacade
	provider         portssvc.BillingProvider
	proPriceID       string
	frontendBaseURL  string
	now              func() time.Time
}

// SubscriptionOption configures a SubscriptionService.
type SubscriptionOption func(*SubscriptionService)

// WithSubscriptionClock overrides the time source. Used by tests.
func WithSubscriptionClock(now func() time.Time) SubscriptionOption {
	return func(s *SubscriptionService) { s.now = now }
}

// NewSubscriptionService creates a new SubscriptionService.
func NewSubscriptionService(subscriptionRepo portsrepo.SubscriptionRepositoryFacade, provider portssvc.BillingProvider, proPriceID, frontendBaseURL string, opts ...SubscriptionOption) *SubscriptionService {
	s := &SubscriptionService{
		subscriptionRepo: subscriptionRepo,
		provider:         provider,
		proPriceID:       proPriceID,
		frontendBaseURL:  frontendBaseURL,
		now:              time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// GetOrCreateSubscription returns the user's subscription, lazily persisting
// a FREE/ACTIVE one when the user has none yet.
func (s *SubscriptionService) GetOrCreateSubscription(ctx context.Context, userID string) (*domain.Subscription, error) {
	sub, err := s.subscriptionRepo.FindSubscriptionByUserID(ctx, userID)
	if err == nil {
		return sub, nil
	}
	if !errors.Is(err, apperrors.ErrNotFound) {
		return nil, fmt.Errorf("finding subscription for user %s: %w", userID, err)
	}

	created := domain.NewFreeSubscription(uuid.NewString(), userID, s.now())
	if err := s.subscriptionRepo.UpsertSubscription(ctx, created); err != nil {
		return nil, fmt.Errorf("creating default subscription for user %s: %w", userID, err)
	}
	middleware.GetLoggerFromCtx(ctx).Info("created default subscription", "userID", userID)
	return &created, nil
}

// UpsertSubscription replaces the caller's subscription record wholesale.
func (s *SubscriptionService) UpsertSubscription(ctx context.Context, userID string, req dto.UpdateSubscriptionRequest) (*domain.Subscription, error) {
	current, err := s.GetOrCreateSubscription(ctx, userID)
	if err != nil {
		return nil, err
	}

	next := *current
	next.Plan = domain.Plan(req.Plan)
	next.Status = domain.SubscriptionStatus(req.Status)
	next.BillingCustomerID = req.BillingCustomerID
	next.BillingSubscriptionID = req.BillingSubscriptionID
	next.CurrentPeriodEnd = nil
	if req.CurrentPeriodEnd != nil {
		t := time.Unix(*req.CurrentPeriodEnd, 0).UTC()
		next.CurrentPeriodEnd = &t
	}
	next.LastUpdatedAt = s.now()
	next.LastUpdatedBy = userID

	if err := s.subscriptionRepo.UpsertSubscription(ctx, next); err != nil {
		return nil, fmt.Errorf("updating subscription for user %s: %w", userID, err)
	}
	return &next, nil
}

// CreateCheckoutSession provisions a provider customer for the user if one
// does not exist yet and returns the hosted checkout URL for the PRO plan.
func (s *SubscriptionService) CreateCheckoutSession(ctx context.Context, user *domain.User) (string, error) {
	if s.provider == nil {
		return "", fmt.Errorf("%w: billing provider not configured", apperrors.ErrValidation)
	}

	sub, err := s.GetOrCreateSubscription(ctx, user.UserID)
	if err != nil {
		return "", err
	}

	customerID := ""
	if sub.BillingCustomerID != nil {
		customerID = *sub.BillingCustomerID
	}
	if customerID == "" {
		customerID, err = s.provider.CreateCustomer(ctx, user.Email, user.Name, user.UserID)
		if err != nil {
			return "", fmt.Errorf("provisioning billing customer: %w", err)
		}
		sub.BillingCustomerID = &customerID
		sub.LastUpdatedAt = s.now()
		sub.LastUpdatedBy = user.UserID
		if err := s.subscriptionRepo.UpsertSubscription(ctx, *sub); err != nil {
			return "", fmt.Errorf("storing billing customer id: %w", err)
		}
	}

	successURL := s.frontendBaseURL + "/settings/billing?checkout=success"
	cancelURL := s.frontendBaseURL + "/settings/billing?checkout=cancelled"
	url, err := s.provider.CreateCheckoutSession(ctx, customerID, s.proPriceID, successURL, cancelURL, user.UserID)
	if err != nil {
		return "", fmt.Errorf("creating checkout session: %w", err)
	}
	return url, nil
}

// CreatePortalSession returns the hosted billing-portal URL. Fails when the
// user has never been through checkout and so has no provider customer.
func (s *SubscriptionService) CreatePortalSession(ctx context.Context, userID string) (string, error) {
	if s.provider == nil {
		return "", fmt.Errorf("%w: billing provider not configured", apperrors.ErrValidation)
	}

	sub, err := s.subscriptionRepo.FindSubscriptionByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return "", fmt.Errorf("%w: no billing profile for user", apperrors.ErrValidation)
		}
		return "", fmt.Errorf("finding subscription for user %s: %w", userID, err)
	}
	if sub.BillingCustomerID == nil || *sub.BillingCustomerID == "" {
		return "", fmt.Errorf("%w: no billing customer for user", apperrors.ErrValidation)
	}

	returnURL := s.frontendBaseURL + "/settings/billing"
	url, err := s.provider.CreatePortalSession(ctx, *sub.BillingCustomerID, returnURL)
	if err != nil {
		return "", fmt.Errorf("creating portal session: %w", err)
	}
	return url, nil
}
