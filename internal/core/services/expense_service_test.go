package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/spendwise/spendwise_app/internal/apperrors"
	"github.com/spendwise/spendwise_app/internal/core/domain"
	portsrepo "github.com/spendwise/spendwise_app/internal/core/ports/repositories"
	portssvc "github.com/spendwise/spendwise_app/internal/core/ports/services"
	"github.com/spendwise/spendwise_app/internal/core/services"
	"github.com/spendwise/spendwise_app/internal/dto"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// --- Mock ExpenseRepository ---
type MockExpenseRepository struct {
	mock.Mock
}

func (m *MockExpenseRepository) SaveExpense(ctx context.Context, expense domain.Expense) error {
	args := m.Called(ctx, expense)
	return args.Error(0)
}

func (m *MockExpenseRepository) FindExpenseByID(ctx context.Context, expenseID string) (*domain.Expense, error) {
	args := m.Called(ctx, expenseID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Expense), args.Error(1)
}

func (m *MockExpenseRepository) ListExpensesByUser(ctx context.Context, userID string, filter portsrepo.RecordListFilter) ([]domain.Expense, int64, error) {
	args := m.Called(ctx, userID, filter)
	var expenses []domain.Expense
	if args.Get(0) != nil {
		expenses = args.Get(0).([]domain.Expense)
	}
	return expenses, args.Get(1).(int64), args.Error(2)
}

func (m *MockExpenseRepository) CountExpensesByUser(ctx context.Context, userID string) (int64, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockExpenseRepository) UpdateExpense(ctx context.Context, expense domain.Expense) error {
	args := m.Called(ctx, expense)
	return args.Error(0)
}

func (m *MockExpenseRepository) DeleteExpense(ctx context.Context, expenseID string) error {
	args := m.Called(ctx, expenseID)
	return args.Error(0)
}

// Ensure mock implements the interface
var _ portsrepo.ExpenseRepositoryFacade = (*MockExpenseRepository)(nil)

// --- Mock SubscriptionService ---
type MockSubscriptionService struct {
	mock.Mock
}

func (m *MockSubscriptionService) GetOrCreateSubscription(ctx context.Context, userID string) (*domain.Subscription, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Subscription), args.Error(1)
}

func (m *MockSubscriptionService) UpsertSubscription(ctx context.Context, userID string, req dto.UpdateSubscriptionRequest) (*domain.Subscription, error) {
	args := m.Called(ctx, userID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Subscription), args.Error(1)
}

func (m *MockSubscriptionService) CreateCheckoutSession(ctx context.Context, user *domain.User) (string, error) {
	args := m.Called(ctx, user)
	return args.String(0), args.Error(1)
}

func (m *MockSubscriptionService) CreatePortalSession(ctx context.Context, userID string) (string, error) {
	args := m.Called(ctx, userID)
	return args.String(0), args.Error(1)
}

// Ensure mock implements the interface
var _ portssvc.SubscriptionSvcFacade = (*MockSubscriptionService)(nil)

const testFreePlanLimit = 50

// --- Test Suite ---
type ExpenseServiceTestSuite struct {
	suite.Suite
	mockRepo    *MockExpenseRepository
	mockSubs    *MockSubscriptionService
	service     *services.ExpenseService
	testUserID  string
	freeSub     *domain.Subscription
	proSub      *domain.Subscription
}

func (suite *ExpenseServiceTestSuite) SetupTest() {
	suite.mockRepo = new(MockExpenseRepository)
	suite.mockSubs = new(MockSubscriptionService)
	suite.service = services.NewExpenseService(suite.mockRepo, suite.mockSubs, testFreePlanLimit)
	suite.testUserID = uuid.NewString()

	free := domain.NewFreeSubscription(uuid.NewString(), suite.testUserID, time.Now())
	suite.freeSub = &free
	pro := free
	pro.Plan = domain.PlanPro
	suite.proSub = &pro
}

func (suite *ExpenseServiceTestSuite) TestCreateExpense_Success() {
	ctx := context.Background()
	req := dto.CreateExpenseRequest{
		Title:      "Groceries",
		Amount:     decimal.NewFromFloat(42.50),
		CategoryID: uuid.NewString(),
	}

	suite.mockSubs.On("GetOrCreateSubscription", ctx, suite.testUserID).Return(suite.freeSub, nil).Once()
	suite.mockRepo.On("CountExpensesByUser", ctx, suite.testUserID).Return(int64(3), nil).Once()
	suite.mockRepo.On("SaveExpense", ctx, mock.MatchedBy(func(expense domain.Expense) bool {
		return expense.UserID == suite.testUserID &&
			expense.Title == "Groceries" &&
			expense.Currency == domain.BaseCurrencyCode && // Defaulted
			expense.ExpenseID != ""
	})).Return(nil).Once()

	expense, err := suite.service.CreateExpense(ctx, suite.testUserID, req)

	suite.Require().NoError(err)
	suite.Require().NotNil(expense)
	suite.Equal("Groceries", expense.Title)
	suite.Equal(domain.BaseCurrencyCode, expense.Currency)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *ExpenseServiceTestSuite) TestCreateExpense_FreePlanAtLimit() {
	ctx := context.Background()
	req := dto.CreateExpenseRequest{
		Title:      "One too many",
		Amount:     decimal.NewFromInt(5),
		CategoryID: uuid.NewString(),
	}

	suite.mockSubs.On("GetOrCreateSubscription", ctx, suite.testUserID).Return(suite.freeSub, nil).Once()
	suite.mockRepo.On("CountExpensesByUser", ctx, suite.testUserID).Return(int64(testFreePlanLimit), nil).Once()

	expense, err := suite.service.CreateExpense(ctx, suite.testUserID, req)

	suite.Require().Error(err)
	suite.Nil(expense)
	suite.ErrorIs(err, apperrors.ErrForbidden)
	suite.mockRepo.AssertNotCalled(suite.T(), "SaveExpense", mock.Anything, mock.Anything)
}

func (suite *ExpenseServiceTestSuite) TestCreateExpense_ProPlanIsNotCapped() {
	ctx := context.Background()
	req := dto.CreateExpenseRequest{
		Title:      "Business lunch",
		Amount:     decimal.NewFromInt(120),
		CategoryID: uuid.NewString(),
		Currency:   "EUR",
	}

	suite.mockSubs.On("GetOrCreateSubscription", ctx, suite.testUserID).Return(suite.proSub, nil).Once()
	suite.mockRepo.On("SaveExpense", ctx, mock.MatchedBy(func(expense domain.Expense) bool {
		return expense.Currency == "EUR"
	})).Return(nil).Once()

	expense, err := suite.service.CreateExpense(ctx, suite.testUserID, req)

	suite.Require().NoError(err)
	suite.NotNil(expense)
	// The count query is skipped entirely for paid plans.
	suite.mockRepo.AssertNotCalled(suite.T(), "CountExpensesByUser", mock.Anything, mock.Anything)
}

func (suite *ExpenseServiceTestSuite) TestCreateExpense_NegativeAmount() {
	ctx := context.Background()
	req := dto.CreateExpenseRequest{
		Title:      "Refund?",
		Amount:     decimal.NewFromInt(-10),
		CategoryID: uuid.NewString(),
	}

	suite.mockSubs.On("GetOrCreateSubscription", ctx, suite.testUserID).Return(suite.proSub, nil).Once()

	expense, err := suite.service.CreateExpense(ctx, suite.testUserID, req)

	suite.Require().Error(err)
	suite.Nil(expense)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockRepo.AssertNotCalled(suite.T(), "SaveExpense", mock.Anything, mock.Anything)
}

func (suite *ExpenseServiceTestSuite) TestGetExpenseByID_OtherOwnerHidden() {
	ctx := context.Background()
	expenseID := uuid.NewString()
	other := &domain.Expense{ExpenseID: expenseID, UserID: uuid.NewString()}

	suite.mockRepo.On("FindExpenseByID", ctx, expenseID).Return(other, nil).Once()

	expense, err := suite.service.GetExpenseByID(ctx, suite.testUserID, expenseID)

	suite.Require().Error(err)
	suite.Nil(expense)
	// Another user's record is indistinguishable from a missing one.
	suite.ErrorIs(err, apperrors.ErrNotFound)
}

func (suite *ExpenseServiceTestSuite) TestListExpenses_TranslatesParams() {
	ctx := context.Background()
	params := dto.ListRecordsParams{Page: 2, Limit: 10, StartDate: "2026-01-01"}
	expected := []domain.Expense{{ExpenseID: uuid.NewString(), UserID: suite.testUserID}}

	suite.mockRepo.On("ListExpensesByUser", ctx, suite.testUserID, mock.MatchedBy(func(filter portsrepo.RecordListFilter) bool {
		return filter.Limit == 10 && filter.Offset == 10 &&
			filter.StartDate != nil && filter.StartDate.Equal(time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC))
	})).Return(expected, int64(11), nil).Once()

	expenses, total, err := suite.service.ListExpenses(ctx, suite.testUserID, params)

	suite.Require().NoError(err)
	suite.Equal(expected, expenses)
	suite.Equal(int64(11), total)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *ExpenseServiceTestSuite) TestListExpenses_InvalidDateParam() {
	ctx := context.Background()
	params := dto.ListRecordsParams{Page: 1, Limit: 10, StartDate: "last tuesday"}

	_, _, err := suite.service.ListExpenses(ctx, suite.testUserID, params)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockRepo.AssertNotCalled(suite.T(), "ListExpensesByUser", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *ExpenseServiceTestSuite) TestUpdateExpense_AppliesPartialChanges() {
	ctx := context.Background()
	expenseID := uuid.NewString()
	existing := &domain.Expense{
		ExpenseID: expenseID,
		UserID:    suite.testUserID,
		Title:     "Old title",
		Amount:    decimal.NewFromInt(10),
		Currency:  "USD",
	}
	newTitle := "New title"
	newAmount := decimal.NewFromInt(25)
	req := dto.UpdateExpenseRequest{Title: &newTitle, Amount: &newAmount}

	suite.mockRepo.On("FindExpenseByID", ctx, expenseID).Return(existing, nil).Once()
	suite.mockRepo.On("UpdateExpense", ctx, mock.MatchedBy(func(expense domain.Expense) bool {
		return expense.Title == newTitle &&
			expense.Amount.Equal(newAmount) &&
			expense.Currency == "USD" // Untouched
	})).Return(nil).Once()

	updated, err := suite.service.UpdateExpense(ctx, suite.testUserID, expenseID, req)

	suite.Require().NoError(err)
	suite.Equal(newTitle, updated.Title)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *ExpenseServiceTestSuite) TestDeleteExpense_Success() {
	ctx := context.Background()
	expenseID := uuid.NewString()
	existing := &domain.Expense{ExpenseID: expenseID, UserID: suite.testUserID}

	suite.mockRepo.On("FindExpenseByID", ctx, expenseID).Return(existing, nil).Once()
	suite.mockRepo.On("DeleteExpense", ctx, expenseID).Return(nil).Once()

	err := suite.service.DeleteExpense(ctx, suite.testUserID, expenseID)

	suite.Require().NoError(err)
	suite.mockRepo.AssertExpectations(suite.T())
}

func TestExpenseServiceTestSuite(t *testing.T) {
	suite.Run(t, new(ExpenseServiceTestSuite))
}
