package repositories

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"github.com/spendwise/spendwise_app/internal/core/domain"
)

// AdminCounts bundles the global table counts for the admin dashboard.
type AdminCounts struct {
	TotalUsers         int64
	TotalExpenses      int64
	TotalSubscriptions int64
}

// ReportingRepository provides the aggregate queries behind the user and
// admin dashboards.
type ReportingRepository interface {
	SumExpensesByUser(ctx context.Context, userID string, from, to time.Time) (decimal.Decimal, error)
	GetCategoryBreakdown(ctx context.Context, userID string, from, to time.Time) ([]domain.CategoryStat, error)
	GetMonthlyTrend(ctx context.Context, userID string, since time.Time) ([]domain.MonthlyTotal, error)
	ListRecentExpenses(ctx context.Context, userID string, limit int) ([]domain.Expense, error)

	GetAdminCounts(ctx context.Context) (AdminCounts, error)
	// ListProSubscriptionStarts returns the creation times of all
	// PRO/ACTIVE subscriptions, used for the monthly signup chart.
	ListProSubscriptionStarts(ctx context.Context) ([]time.Time, error)
	ListUserOverviews(ctx context.Context, limit, offset int) ([]domain.UserOverview, int64, error)
}
