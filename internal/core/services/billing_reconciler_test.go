package services_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/spendwise/spendwise_app/internal/apperrors"
	"github.com/spendwise/spendwise_app/internal/core/domain"
	portsrepo "github.com/spendwise/spendwise_app/internal/core/ports/repositories"
	portssvc "github.com/spendwise/spendwise_app/internal/core/ports/services"
	"github.com/spendwise/spendwise_app/internal/core/services"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// --- Mock SubscriptionRepository ---
type MockSubscriptionRepository struct {
	mock.Mock
}

func (m *MockSubscriptionRepository) FindSubscriptionByUserID(ctx context.Context, userID string) (*domain.Subscription, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Subscription), args.Error(1)
}

func (m *MockSubscriptionRepository) FindSubscriptionByBillingID(ctx context.Context, billingSubscriptionID string) (*domain.Subscription, error) {
	args := m.Called(ctx, billingSubscriptionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Subscription), args.Error(1)
}

func (m *MockSubscriptionRepository) UpsertSubscription(ctx context.Context, subscription domain.Subscription) error {
	args := m.Called(ctx, subscription)
	return args.Error(0)
}

// Ensure mock implements the interface
var _ portsrepo.SubscriptionRepositoryFacade = (*MockSubscriptionRepository)(nil)

// --- Mock BillingProvider ---
type MockBillingProvider struct {
	mock.Mock
}

func (m *MockBillingProvider) CreateCustomer(ctx context.Context, email, name, userID string) (string, error) {
	args := m.Called(ctx, email, name, userID)
	return args.String(0), args.Error(1)
}

func (m *MockBillingProvider) CreateCheckoutSession(ctx context.Context, customerID, priceID, successURL, cancelURL, userID string) (string, error) {
	args := m.Called(ctx, customerID, priceID, successURL, cancelURL, userID)
	return args.String(0), args.Error(1)
}

func (m *MockBillingProvider) CreatePortalSession(ctx context.Context, customerID, returnURL string) (string, error) {
	args := m.Called(ctx, customerID, returnURL)
	return args.String(0), args.Error(1)
}

func (m *MockBillingProvider) GetSubscriptionPeriodEnd(ctx context.Context, subscriptionID string) (time.Time, error) {
	args := m.Called(ctx, subscriptionID)
	return args.Get(0).(time.Time), args.Error(1)
}

// Ensure mock implements the interface
var _ portssvc.BillingProvider = (*MockBillingProvider)(nil)

// --- Test Suite ---
type BillingReconcilerTestSuite struct {
	suite.Suite
	mockRepo     *MockSubscriptionRepository
	mockProvider *MockBillingProvider
	service      *services.BillingReconcilerService
	nowTime      time.Time
}

func (suite *BillingReconcilerTestSuite) SetupTest() {
	suite.mockRepo = new(MockSubscriptionRepository)
	suite.mockProvider = new(MockBillingProvider)
	suite.nowTime = time.Date(2026, 2, 1, 9, 30, 0, 0, time.UTC)
	suite.service = services.NewBillingReconcilerService(
		suite.mockRepo,
		suite.mockProvider,
		services.WithReconcilerClock(func() time.Time { return suite.nowTime }),
	)
}

func (suite *BillingReconcilerTestSuite) existingSubscription(userID string) *domain.Subscription {
	sub := domain.NewFreeSubscription(uuid.NewString(), userID, suite.nowTime.Add(-48*time.Hour))
	return &sub
}

func (suite *BillingReconcilerTestSuite) TestCheckoutCompleted_LazilyCreatesSubscription() {
	ctx := context.Background()
	periodEnd := suite.nowTime.Add(30 * 24 * time.Hour)
	event := domain.BillingEvent{
		Type:           domain.BillingEventCheckoutCompleted,
		UserID:         "user-1",
		CustomerID:     "cus_123",
		SubscriptionID: "bsub_123",
		PeriodEnd:      &periodEnd,
		OccurredAt:     suite.nowTime,
	}

	suite.mockRepo.On("FindSubscriptionByBillingID", ctx, "bsub_123").Return(nil, apperrors.ErrNotFound).Once()
	suite.mockRepo.On("FindSubscriptionByUserID", ctx, "user-1").Return(nil, apperrors.ErrNotFound).Once()
	suite.mockRepo.On("UpsertSubscription", ctx, mock.MatchedBy(func(sub domain.Subscription) bool {
		return sub.UserID == "user-1" &&
			sub.Plan == domain.PlanPro &&
			sub.Status == domain.SubscriptionActive &&
			sub.BillingCustomerID != nil && *sub.BillingCustomerID == "cus_123" &&
			sub.BillingSubscriptionID != nil && *sub.BillingSubscriptionID == "bsub_123" &&
			sub.CurrentPeriodEnd != nil && sub.CurrentPeriodEnd.Equal(periodEnd) &&
			sub.LastUpdatedAt.Equal(suite.nowTime) &&
			sub.LastUpdatedBy == "billing-webhook"
	})).Return(nil).Once()

	err := suite.service.ProcessEvent(ctx, event)

	suite.Require().NoError(err)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *BillingReconcilerTestSuite) TestCheckoutCompleted_UpgradesExistingSubscription() {
	ctx := context.Background()
	existing := suite.existingSubscription("user-2")
	periodEnd := suite.nowTime.Add(30 * 24 * time.Hour)
	event := domain.BillingEvent{
		Type:           domain.BillingEventCheckoutCompleted,
		UserID:         "user-2",
		CustomerID:     "cus_456",
		SubscriptionID: "bsub_456",
		PeriodEnd:      &periodEnd,
		OccurredAt:     suite.nowTime,
	}

	suite.mockRepo.On("FindSubscriptionByBillingID", ctx, "bsub_456").Return(nil, apperrors.ErrNotFound).Once()
	suite.mockRepo.On("FindSubscriptionByUserID", ctx, "user-2").Return(existing, nil).Once()
	suite.mockRepo.On("UpsertSubscription", ctx, mock.MatchedBy(func(sub domain.Subscription) bool {
		return sub.SubscriptionID == existing.SubscriptionID &&
			sub.Plan == domain.PlanPro &&
			sub.Status == domain.SubscriptionActive
	})).Return(nil).Once()

	err := suite.service.ProcessEvent(ctx, event)

	suite.Require().NoError(err)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *BillingReconcilerTestSuite) TestPaymentSucceeded_ReactivatesSubscription() {
	ctx := context.Background()
	existing := suite.existingSubscription("user-3")
	existing.Plan = domain.PlanPro
	existing.Status = domain.SubscriptionPastDue
	billingID := "bsub_789"
	existing.BillingSubscriptionID = &billingID
	periodEnd := suite.nowTime.Add(30 * 24 * time.Hour)
	event := domain.BillingEvent{
		Type:           domain.BillingEventPaymentSucceeded,
		SubscriptionID: billingID,
		PeriodEnd:      &periodEnd,
		OccurredAt:     suite.nowTime,
	}

	suite.mockRepo.On("FindSubscriptionByBillingID", ctx, billingID).Return(existing, nil).Once()
	suite.mockRepo.On("UpsertSubscription", ctx, mock.MatchedBy(func(sub domain.Subscription) bool {
		return sub.Status == domain.SubscriptionActive &&
			sub.Plan == domain.PlanPro &&
			sub.CurrentPeriodEnd != nil && sub.CurrentPeriodEnd.Equal(periodEnd)
	})).Return(nil).Once()

	err := suite.service.ProcessEvent(ctx, event)

	suite.Require().NoError(err)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *BillingReconcilerTestSuite) TestPaymentSucceeded_EnrichesMissingPeriodEnd() {
	ctx := context.Background()
	existing := suite.existingSubscription("user-4")
	existing.Plan = domain.PlanPro
	billingID := "bsub_enrich"
	existing.BillingSubscriptionID = &billingID
	providerPeriodEnd := suite.nowTime.Add(30 * 24 * time.Hour)
	event := domain.BillingEvent{
		Type:           domain.BillingEventPaymentSucceeded,
		SubscriptionID: billingID,
		OccurredAt:     suite.nowTime,
	}

	suite.mockRepo.On("FindSubscriptionByBillingID", ctx, billingID).Return(existing, nil).Once()
	suite.mockProvider.On("GetSubscriptionPeriodEnd", ctx, billingID).Return(providerPeriodEnd, nil).Once()
	suite.mockRepo.On("UpsertSubscription", ctx, mock.MatchedBy(func(sub domain.Subscription) bool {
		return sub.CurrentPeriodEnd != nil && sub.CurrentPeriodEnd.Equal(providerPeriodEnd)
	})).Return(nil).Once()

	err := suite.service.ProcessEvent(ctx, event)

	suite.Require().NoError(err)
	suite.mockRepo.AssertExpectations(suite.T())
	suite.mockProvider.AssertExpectations(suite.T())
}

func (suite *BillingReconcilerTestSuite) TestPaymentSucceeded_EnrichmentFailureTolerated() {
	ctx := context.Background()
	existing := suite.existingSubscription("user-5")
	existing.Plan = domain.PlanPro
	billingID := "bsub_enrich_fail"
	existing.BillingSubscriptionID = &billingID
	event := domain.BillingEvent{
		Type:           domain.BillingEventPaymentSucceeded,
		SubscriptionID: billingID,
		OccurredAt:     suite.nowTime,
	}

	suite.mockRepo.On("FindSubscriptionByBillingID", ctx, billingID).Return(existing, nil).Once()
	suite.mockProvider.On("GetSubscriptionPeriodEnd", ctx, billingID).Return(time.Time{}, errors.New("provider unavailable")).Once()
	suite.mockRepo.On("UpsertSubscription", ctx, mock.MatchedBy(func(sub domain.Subscription) bool {
		return sub.Status == domain.SubscriptionActive && sub.CurrentPeriodEnd == nil
	})).Return(nil).Once()

	err := suite.service.ProcessEvent(ctx, event)

	suite.Require().NoError(err)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *BillingReconcilerTestSuite) TestPaymentFailed_MarksPastDue() {
	ctx := context.Background()
	existing := suite.existingSubscription("user-6")
	existing.Plan = domain.PlanPro
	billingID := "bsub_fail"
	existing.BillingSubscriptionID = &billingID
	event := domain.BillingEvent{
		Type:           domain.BillingEventPaymentFailed,
		SubscriptionID: billingID,
		OccurredAt:     suite.nowTime,
	}

	suite.mockRepo.On("FindSubscriptionByBillingID", ctx, billingID).Return(existing, nil).Once()
	suite.mockRepo.On("UpsertSubscription", ctx, mock.MatchedBy(func(sub domain.Subscription) bool {
		return sub.Status == domain.SubscriptionPastDue && sub.Plan == domain.PlanPro
	})).Return(nil).Once()

	err := suite.service.ProcessEvent(ctx, event)

	suite.Require().NoError(err)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *BillingReconcilerTestSuite) TestPaymentFailed_StaleRedeliveryIsDropped() {
	ctx := context.Background()
	existing := suite.existingSubscription("user-7")
	existing.Plan = domain.PlanPro
	existing.LastUpdatedAt = suite.nowTime.Add(-time.Hour)
	billingID := "bsub_stale"
	existing.BillingSubscriptionID = &billingID
	event := domain.BillingEvent{
		Type:           domain.BillingEventPaymentFailed,
		SubscriptionID: billingID,
		// Predates the local record: a successful retry already superseded it.
		OccurredAt: suite.nowTime.Add(-2 * time.Hour),
	}

	suite.mockRepo.On("FindSubscriptionByBillingID", ctx, billingID).Return(existing, nil).Once()

	err := suite.service.ProcessEvent(ctx, event)

	suite.Require().NoError(err)
	suite.mockRepo.AssertNotCalled(suite.T(), "UpsertSubscription", mock.Anything, mock.Anything)
}

func (suite *BillingReconcilerTestSuite) TestSubscriptionUpdated_StatusMapping() {
	cases := []struct {
		providerStatus string
		want           domain.SubscriptionStatus
	}{
		{domain.ProviderStatusActive, domain.SubscriptionActive},
		{domain.ProviderStatusPastDue, domain.SubscriptionPastDue},
		{"canceled", domain.SubscriptionCancelled},
		{"incomplete_expired", domain.SubscriptionCancelled},
	}

	for _, tc := range cases {
		ctx := context.Background()
		repo := new(MockSubscriptionRepository)
		service := services.NewBillingReconcilerService(repo, nil,
			services.WithReconcilerClock(func() time.Time { return suite.nowTime }))

		existing := suite.existingSubscription("user-8")
		existing.Plan = domain.PlanPro
		billingID := "bsub_upd"
		existing.BillingSubscriptionID = &billingID
		event := domain.BillingEvent{
			Type:           domain.BillingEventSubscriptionUpdated,
			SubscriptionID: billingID,
			ProviderStatus: tc.providerStatus,
			OccurredAt:     suite.nowTime,
		}

		repo.On("FindSubscriptionByBillingID", ctx, billingID).Return(existing, nil).Once()
		repo.On("UpsertSubscription", ctx, mock.MatchedBy(func(sub domain.Subscription) bool {
			return sub.Status == tc.want
		})).Return(nil).Once()

		err := service.ProcessEvent(ctx, event)

		suite.Require().NoError(err, "provider status %q", tc.providerStatus)
		repo.AssertExpectations(suite.T())
	}
}

func (suite *BillingReconcilerTestSuite) TestSubscriptionDeleted_RevertsToFree() {
	ctx := context.Background()
	existing := suite.existingSubscription("user-9")
	existing.Plan = domain.PlanPro
	customerID := "cus_keep"
	billingID := "bsub_del"
	periodEnd := suite.nowTime.Add(10 * 24 * time.Hour)
	existing.BillingCustomerID = &customerID
	existing.BillingSubscriptionID = &billingID
	existing.CurrentPeriodEnd = &periodEnd
	event := domain.BillingEvent{
		Type:           domain.BillingEventSubscriptionDeleted,
		SubscriptionID: billingID,
		OccurredAt:     suite.nowTime,
	}

	suite.mockRepo.On("FindSubscriptionByBillingID", ctx, billingID).Return(existing, nil).Once()
	suite.mockRepo.On("UpsertSubscription", ctx, mock.MatchedBy(func(sub domain.Subscription) bool {
		return sub.Plan == domain.PlanFree &&
			sub.Status == domain.SubscriptionCancelled &&
			sub.BillingSubscriptionID == nil &&
			sub.CurrentPeriodEnd == nil &&
			// The customer reference survives so the user can re-subscribe.
			sub.BillingCustomerID != nil && *sub.BillingCustomerID == customerID
	})).Return(nil).Once()

	err := suite.service.ProcessEvent(ctx, event)

	suite.Require().NoError(err)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *BillingReconcilerTestSuite) TestUnrecognizedEventType_AcknowledgedWithoutEffect() {
	ctx := context.Background()
	event := domain.BillingEvent{
		Type:       domain.BillingEventType("charge.refunded"),
		OccurredAt: suite.nowTime,
	}

	err := suite.service.ProcessEvent(ctx, event)

	suite.Require().NoError(err)
	suite.mockRepo.AssertNotCalled(suite.T(), "FindSubscriptionByBillingID", mock.Anything, mock.Anything)
	suite.mockRepo.AssertNotCalled(suite.T(), "UpsertSubscription", mock.Anything, mock.Anything)
}

func (suite *BillingReconcilerTestSuite) TestMissingSubscription_NonCheckoutIsAcknowledged() {
	ctx := context.Background()
	event := domain.BillingEvent{
		Type:           domain.BillingEventPaymentFailed,
		SubscriptionID: "bsub_unknown",
		OccurredAt:     suite.nowTime,
	}

	suite.mockRepo.On("FindSubscriptionByBillingID", ctx, "bsub_unknown").Return(nil, apperrors.ErrNotFound).Once()

	err := suite.service.ProcessEvent(ctx, event)

	suite.Require().NoError(err)
	suite.mockRepo.AssertNotCalled(suite.T(), "UpsertSubscription", mock.Anything, mock.Anything)
}

func (suite *BillingReconcilerTestSuite) TestRepositoryErrorPropagates() {
	ctx := context.Background()
	expectedErr := errors.New("connection reset")
	event := domain.BillingEvent{
		Type:           domain.BillingEventPaymentFailed,
		SubscriptionID: "bsub_err",
		OccurredAt:     suite.nowTime,
	}

	suite.mockRepo.On("FindSubscriptionByBillingID", ctx, "bsub_err").Return(nil, expectedErr).Once()

	err := suite.service.ProcessEvent(ctx, event)

	suite.Require().Error(err)
	suite.ErrorIs(err, expectedErr)
}

func TestBillingReconcilerTestSuite(t *testing.T) {
	suite.Run(t, new(BillingReconcilerTestSuite))
}
