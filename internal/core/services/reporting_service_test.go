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
	"github.com/spendwise/spendwise_app/internal/core/services"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// --- Mock ReportingRepository ---
type MockReportingRepository struct {
	mock.Mock
}

func (m *MockReportingRepository) SumExpensesByUser(ctx context.Context, userID string, from, to time.Time) (decimal.Decimal, error) {
	args := m.Called(ctx, userID, from, to)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

func (m *MockReportingRepository) GetCategoryBreakdown(ctx context.Context, userID string, from, to time.Time) ([]domain.CategoryStat, error) {
	args := m.Called(ctx, userID, from, to)
	var stats []domain.CategoryStat
	if args.Get(0) != nil {
		stats = args.Get(0).([]domain.CategoryStat)
	}
	return stats, args.Error(1)
}

func (m *MockReportingRepository) GetMonthlyTrend(ctx context.Context, userID string, since time.Time) ([]domain.MonthlyTotal, error) {
	args := m.Called(ctx, userID, since)
	var trend []domain.MonthlyTotal
	if args.Get(0) != nil {
		trend = args.Get(0).([]domain.MonthlyTotal)
	}
	return trend, args.Error(1)
}

func (m *MockReportingRepository) ListRecentExpenses(ctx context.Context, userID string, limit int) ([]domain.Expense, error) {
	args := m.Called(ctx, userID, limit)
	var expenses []domain.Expense
	if args.Get(0) != nil {
		expenses = args.Get(0).([]domain.Expense)
	}
	return expenses, args.Error(1)
}

func (m *MockReportingRepository) GetAdminCounts(ctx context.Context) (portsrepo.AdminCounts, error) {
	args := m.Called(ctx)
	return args.Get(0).(portsrepo.AdminCounts), args.Error(1)
}

func (m *MockReportingRepository) ListProSubscriptionStarts(ctx context.Context) ([]time.Time, error) {
	args := m.Called(ctx)
	var starts []time.Time
	if args.Get(0) != nil {
		starts = args.Get(0).([]time.Time)
	}
	return starts, args.Error(1)
}

func (m *MockReportingRepository) ListUserOverviews(ctx context.Context, limit, offset int) ([]domain.UserOverview, int64, error) {
	args := m.Called(ctx, limit, offset)
	var overviews []domain.UserOverview
	if args.Get(0) != nil {
		overviews = args.Get(0).([]domain.UserOverview)
	}
	return overviews, args.Get(1).(int64), args.Error(2)
}

// Ensure mock implements the interface
var _ portsrepo.ReportingRepository = (*MockReportingRepository)(nil)

// --- Test Suite ---
type ReportingServiceTestSuite struct {
	suite.Suite
	mockRepo        *MockReportingRepository
	mockSubs        *MockSubscriptionService
	mockExpenseRepo *MockExpenseRepository
	service         *services.ReportingService
	nowTime         time.Time
	testUserID      string
}

func (suite *ReportingServiceTestSuite) SetupTest() {
	suite.mockRepo = new(MockReportingRepository)
	suite.mockSubs = new(MockSubscriptionService)
	suite.mockExpenseRepo = new(MockExpenseRepository)
	suite.nowTime = time.Date(2026, 5, 20, 14, 0, 0, 0, time.UTC)
	suite.testUserID = uuid.NewString()
	suite.service = services.NewReportingService(
		suite.mockRepo,
		suite.mockSubs,
		suite.mockExpenseRepo,
		testFreePlanLimit,
		services.WithReportingClock(func() time.Time { return suite.nowTime }),
	)
}

func (suite *ReportingServiceTestSuite) TestGetDashboardStats_MonthPeriod() {
	ctx := context.Background()
	monthStart := time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC)
	freeSub := domain.NewFreeSubscription(uuid.NewString(), suite.testUserID, suite.nowTime)
	trend := []domain.MonthlyTotal{
		{Month: time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC), Total: decimal.NewFromInt(200)},
		{Month: monthStart, Total: decimal.NewFromInt(150)},
	}

	suite.mockRepo.On("SumExpensesByUser", ctx, suite.testUserID, monthStart, suite.nowTime).
		Return(decimal.NewFromInt(150), nil).Once()
	suite.mockRepo.On("GetCategoryBreakdown", ctx, suite.testUserID, monthStart, suite.nowTime).
		Return([]domain.CategoryStat{}, nil).Once()
	suite.mockRepo.On("GetMonthlyTrend", ctx, suite.testUserID, suite.nowTime.AddDate(0, -12, 0)).
		Return(trend, nil).Once()
	suite.mockRepo.On("ListRecentExpenses", ctx, suite.testUserID, 5).
		Return([]domain.Expense{}, nil).Once()
	suite.mockSubs.On("GetOrCreateSubscription", ctx, suite.testUserID).Return(&freeSub, nil).Once()
	suite.mockExpenseRepo.On("CountExpensesByUser", ctx, suite.testUserID).Return(int64(12), nil).Once()

	stats, err := suite.service.GetDashboardStats(ctx, suite.testUserID, "month")

	suite.Require().NoError(err)
	suite.True(stats.TotalSpending.Equal(decimal.NewFromInt(150)))
	suite.Require().Len(stats.MonthlyTrend, 2)
	suite.Equal("2026-04", stats.MonthlyTrend[0].Month)
	suite.Equal("2026-05", stats.MonthlyTrend[1].Month)
	suite.Equal("FREE", stats.Subscription.Plan)
	suite.Equal(int64(12), stats.Subscription.ExpenseCount)
	suite.Require().NotNil(stats.Subscription.Limit)
	suite.Equal(testFreePlanLimit, *stats.Subscription.Limit)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *ReportingServiceTestSuite) TestGetDashboardStats_DefaultPeriodIsMonth() {
	ctx := context.Background()
	monthStart := time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC)
	freeSub := domain.NewFreeSubscription(uuid.NewString(), suite.testUserID, suite.nowTime)

	suite.mockRepo.On("SumExpensesByUser", ctx, suite.testUserID, monthStart, suite.nowTime).
		Return(decimal.Zero, nil).Once()
	suite.mockRepo.On("GetCategoryBreakdown", ctx, suite.testUserID, monthStart, suite.nowTime).
		Return([]domain.CategoryStat{}, nil).Once()
	suite.mockRepo.On("GetMonthlyTrend", ctx, suite.testUserID, mock.Anything).
		Return([]domain.MonthlyTotal{}, nil).Once()
	suite.mockRepo.On("ListRecentExpenses", ctx, suite.testUserID, 5).
		Return([]domain.Expense{}, nil).Once()
	suite.mockSubs.On("GetOrCreateSubscription", ctx, suite.testUserID).Return(&freeSub, nil).Once()
	suite.mockExpenseRepo.On("CountExpensesByUser", ctx, suite.testUserID).Return(int64(0), nil).Once()

	_, err := suite.service.GetDashboardStats(ctx, suite.testUserID, "")

	suite.Require().NoError(err)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *ReportingServiceTestSuite) TestGetDashboardStats_AllPeriodIsUnbounded() {
	ctx := context.Background()
	proSub := domain.NewFreeSubscription(uuid.NewString(), suite.testUserID, suite.nowTime)
	proSub.Plan = domain.PlanPro

	suite.mockRepo.On("SumExpensesByUser", ctx, suite.testUserID, time.Time{}, suite.nowTime).
		Return(decimal.NewFromInt(9000), nil).Once()
	suite.mockRepo.On("GetCategoryBreakdown", ctx, suite.testUserID, time.Time{}, suite.nowTime).
		Return([]domain.CategoryStat{}, nil).Once()
	suite.mockRepo.On("GetMonthlyTrend", ctx, suite.testUserID, mock.Anything).
		Return([]domain.MonthlyTotal{}, nil).Once()
	suite.mockRepo.On("ListRecentExpenses", ctx, suite.testUserID, 5).
		Return([]domain.Expense{}, nil).Once()
	suite.mockSubs.On("GetOrCreateSubscription", ctx, suite.testUserID).Return(&proSub, nil).Once()
	suite.mockExpenseRepo.On("CountExpensesByUser", ctx, suite.testUserID).Return(int64(400), nil).Once()

	stats, err := suite.service.GetDashboardStats(ctx, suite.testUserID, "all")

	suite.Require().NoError(err)
	suite.Equal("PRO", stats.Subscription.Plan)
	// Paid plans have no record ceiling to display.
	suite.Nil(stats.Subscription.Limit)
}

func (suite *ReportingServiceTestSuite) TestGetDashboardStats_UnknownPeriod() {
	ctx := context.Background()

	stats, err := suite.service.GetDashboardStats(ctx, suite.testUserID, "fortnight")

	suite.Require().Error(err)
	suite.Nil(stats)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockRepo.AssertNotCalled(suite.T(), "SumExpensesByUser", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *ReportingServiceTestSuite) TestGetAdminStats_GroupsSignupsByMonth() {
	ctx := context.Background()
	counts := portsrepo.AdminCounts{TotalUsers: 40, TotalExpenses: 900, TotalSubscriptions: 35}
	starts := []time.Time{
		time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC),
		time.Date(2026, 3, 28, 0, 0, 0, 0, time.UTC),
		time.Date(2026, 4, 11, 0, 0, 0, 0, time.UTC),
	}

	suite.mockRepo.On("GetAdminCounts", ctx).Return(counts, nil).Once()
	suite.mockRepo.On("ListProSubscriptionStarts", ctx).Return(starts, nil).Once()

	stats, err := suite.service.GetAdminStats(ctx)

	suite.Require().NoError(err)
	suite.Equal(int64(40), stats.TotalUsers)
	suite.Equal(int64(3), stats.ActiveProSubscriptions)
	suite.Equal(int64(2), stats.MonthlySignups["2026-03"])
	suite.Equal(int64(1), stats.MonthlySignups["2026-04"])
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *ReportingServiceTestSuite) TestListUserOverviews_Paginates() {
	ctx := context.Background()
	overviews := []domain.UserOverview{
		{User: domain.User{UserID: uuid.NewString(), Email: "a@example.com"}, ExpenseCount: 7},
	}

	suite.mockRepo.On("ListUserOverviews", ctx, 10, 10).Return(overviews, int64(25), nil).Once()

	resp, err := suite.service.ListUserOverviews(ctx, 2, 10)

	suite.Require().NoError(err)
	suite.Len(resp.Users, 1)
	suite.Equal(int64(25), resp.Total)
	suite.Equal(int64(3), resp.Pages)
	suite.Equal(2, resp.CurrentPage)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *ReportingServiceTestSuite) TestListUserOverviews_ClampsBadPaging() {
	ctx := context.Background()

	suite.mockRepo.On("ListUserOverviews", ctx, 10, 0).Return([]domain.UserOverview{}, int64(0), nil).Once()

	resp, err := suite.service.ListUserOverviews(ctx, 0, 0)

	suite.Require().NoError(err)
	suite.Equal(1, resp.CurrentPage)
	suite.mockRepo.AssertExpectations(suite.T())
}

func TestReportingServiceTestSuite(t *testing.T) {
	suite.Run(t, new(ReportingServiceTestSuite))
}
