package services

import (
	"context"
	"fmt"
	"time"

	"github.com/spendwise/spendwise_app/internal/apperrors"
	"github.com/spendwise/spendwise_app/internal/core/domain"
	portsrepo "github.com/spendwise/spendwise_app/internal/core/ports/repositories"
	portssvc "github.com/spendwise/spendwise_app/internal/core/ports/services"
	"github.com/spendwise/spendwise_app/internal/dto"
)

const (
	recentExpenseCount = 5
	trendMonths        = 12
)

// ReportingService aggregates the user dashboard and the admin metrics.
type ReportingService struct {
	reportingRepo   portsrepo.ReportingRepository
	subscriptionSvc portssvc.SubscriptionSvcFacade
	expenseRepo     portsrepo.ExpenseRepositoryFacade
	freePlanLimit   int
	now             func() time.Time
}

// ReportingOption configures a ReportingService.
type ReportingOption func(*ReportingService)

// WithReportingClock overrides the time source. Used by tests.
func WithReportingClock(now func() time.Time) ReportingOption {
	return func(s *ReportingService) { s.now = now }
}

// NewReportingService creates a new ReportingService.
func NewReportingService(reportingRepo portsrepo.ReportingRepository, subscriptionSvc portssvc.SubscriptionSvcFacade, expenseRepo portsrepo.ExpenseRepositoryFacade, freePlanLimit int, opts ...ReportingOption) *ReportingService {
	s := &ReportingService{
		reportingRepo:   reportingRepo,
		subscriptionSvc: subscriptionSvc,
		expenseRepo:     expenseRepo,
		freePlanLimit:   freePlanLimit,
		now:             time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// GetDashboardStats aggregates a user's dashboard for the given period
// ("month", "year" or "all").
func (s *ReportingService) GetDashboardStats(ctx context.Context, userID string, period string) (*dto.DashboardStatsResponse, error) {
	from, to, err := s.periodBounds(period)
	if err != nil {
		return nil, err
	}

	total, err := s.reportingRepo.SumExpensesByUser(ctx, userID, from, to)
	if err != nil {
		return nil, fmt.Errorf("summing expenses: %w", err)
	}

	breakdown, err := s.reportingRepo.GetCategoryBreakdown(ctx, userID, from, to)
	if err != nil {
		return nil, fmt.Errorf("loading category breakdown: %w", err)
	}

	trendSince := s.now().AddDate(0, -trendMonths, 0)
	trend, err := s.reportingRepo.GetMonthlyTrend(ctx, userID, trendSince)
	if err != nil {
		return nil, fmt.Errorf("loading monthly trend: %w", err)
	}

	recent, err := s.reportingRepo.ListRecentExpenses(ctx, userID, recentExpenseCount)
	if err != nil {
		return nil, fmt.Errorf("loading recent expenses: %w", err)
	}

	sub, err := s.subscriptionSvc.GetOrCreateSubscription(ctx, userID)
	if err != nil {
		return nil, err
	}
	expenseCount, err := s.expenseRepo.CountExpensesByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("counting expenses: %w", err)
	}

	usage := dto.SubscriptionUsage{
		Plan:         string(sub.Plan),
		ExpenseCount: expenseCount,
	}
	if sub.Plan == domain.PlanFree {
		limit := s.freePlanLimit
		usage.Limit = &limit
	}

	trendPoints := make([]dto.MonthlyTotalResponse, len(trend))
	for i, point := range trend {
		trendPoints[i] = dto.MonthlyTotalResponse{
			Month: point.Month.Format("2006-01"),
			Total: point.Total,
		}
	}

	return &dto.DashboardStatsResponse{
		TotalSpending:  total,
		CategoryStats:  breakdown,
		MonthlyTrend:   trendPoints,
		RecentExpenses: dto.ToListExpenseResponse(recent),
		Subscription:   usage,
	}, nil
}

// GetAdminStats aggregates the global metrics for the admin dashboard.
func (s *ReportingService) GetAdminStats(ctx context.Context) (*domain.AdminStats, error) {
	counts, err := s.reportingRepo.GetAdminCounts(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading admin counts: %w", err)
	}

	proStarts, err := s.reportingRepo.ListProSubscriptionStarts(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading pro subscription starts: %w", err)
	}

	monthly := make(map[string]int64, 12)
	for _, start := range proStarts {
		monthly[start.Format("2006-01")]++
	}

	return &domain.AdminStats{
		TotalUsers:             counts.TotalUsers,
		TotalExpenses:          counts.TotalExpenses,
		TotalSubscriptions:     counts.TotalSubscriptions,
		ActiveProSubscriptions: int64(len(proStarts)),
		MonthlySignups:         monthly,
	}, nil
}

// ListUserOverviews returns one paginated page of the admin user listing.
func (s *ReportingService) ListUserOverviews(ctx context.Context, page, limit int) (*dto.AdminUsersResponse, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 10
	}

	overviews, total, err := s.reportingRepo.ListUserOverviews(ctx, limit, (page-1)*limit)
	if err != nil {
		return nil, fmt.Errorf("listing user overviews: %w", err)
	}

	rows := make([]dto.UserOverviewResponse, len(overviews))
	for i, overview := range overviews {
		row := dto.UserOverviewResponse{
			User:         dto.ToUserResponse(&overview.User),
			ExpenseCount: overview.ExpenseCount,
		}
		if overview.Subscription != nil {
			sub := dto.ToSubscriptionResponse(overview.Subscription)
			row.Subscription = &sub
		}
		rows[i] = row
	}

	pages := total / int64(limit)
	if total%int64(limit) != 0 {
		pages++
	}

	return &dto.AdminUsersResponse{
		Users:       rows,
		Total:       total,
		Pages:       pages,
		CurrentPage: page,
	}, nil
}

// periodBounds maps a dashboard period to a query window. The zero "from"
// time means unbounded.
func (s *ReportingService) periodBounds(period string) (time.Time, time.Time, error) {
	now := s.now()
	switch period {
	case "", "month":
		start := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
		return start, now, nil
	case "year":
		start := time.Date(now.Year(), time.January, 1, 0, 0, 0, 0, now.Location())
		return start, now, nil
	case "all":
		return time.Time{}, now, nil
	}
	return time.Time{}, time.Time{}, fmt.Errorf("%w: unknown period %q", apperrors.ErrValidation, period)
}
