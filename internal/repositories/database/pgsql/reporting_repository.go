package pgsql

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
	"github.com/spendwise/spendwise_app/internal/core/domain"
	portsrepo "github.com/spendwise/spendwise_app/internal/core/ports/repositories"
	"github.com/spendwise/spendwise_app/internal/models"
	"github.com/spendwise/spendwise_app/internal/utils/mapping"
)

type PgxReportingRepository struct {
	BaseRepository
}

func newPgxReportingRepository(db *pgxpool.Pool) portsrepo.ReportingRepository {
	return &PgxReportingRepository{BaseRepository{Pool: db}}
}

var _ portsrepo.ReportingRepository = (*PgxReportingRepository)(nil)

// timeArg maps the zero time to NULL so queries can treat it as unbounded.
func timeArg(t time.Time) any {
	if t.IsZero() {
		return nil
	}
	return t
}

func (r *PgxReportingRepository) SumExpensesByUser(ctx context.Context, userID string, from, to time.Time) (decimal.Decimal, error) {
	query := `
		SELECT COALESCE(SUM(amount), 0)
		FROM expenses
		WHERE user_id = $1
		  AND ($2::timestamptz IS NULL OR date >= $2)
		  AND date <= $3;
	`
	var total decimal.Decimal
	if err := r.Pool.QueryRow(ctx, query, userID, timeArg(from), to).Scan(&total); err != nil {
		return decimal.Zero, fmt.Errorf("failed to sum expenses: %w", err)
	}
	return total, nil
}

func (r *PgxReportingRepository) GetCategoryBreakdown(ctx context.Context, userID string, from, to time.Time) ([]domain.CategoryStat, error) {
	query := `
		SELECT c.name, SUM(e.amount) AS amount, c.color, c.icon
		FROM expenses e
		JOIN categories c ON c.category_id = e.category_id
		WHERE e.user_id = $1
		  AND ($2::timestamptz IS NULL OR e.date >= $2)
		  AND e.date <= $3
		GROUP BY c.name, c.color, c.icon
		ORDER BY amount DESC;
	`
	rows, err := r.Pool.Query(ctx, query, userID, timeArg(from), to)
	if err != nil {
		return nil, fmt.Errorf("failed to load category breakdown: %w", err)
	}
	defer rows.Close()

	stats, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.CategoryStat, error) {
		var s domain.CategoryStat
		err := row.Scan(&s.Name, &s.Amount, &s.Color, &s.Icon)
		return s, err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan category breakdown: %w", err)
	}
	return stats, nil
}

func (r *PgxReportingRepository) GetMonthlyTrend(ctx context.Context, userID string, since time.Time) ([]domain.MonthlyTotal, error) {
	query := `
		SELECT DATE_TRUNC('month', date) AS month, SUM(amount) AS total
		FROM expenses
		WHERE user_id = $1 AND date >= $2
		GROUP BY month
		ORDER BY month;
	`
	rows, err := r.Pool.Query(ctx, query, userID, since)
	if err != nil {
		return nil, fmt.Errorf("failed to load monthly trend: %w", err)
	}
	defer rows.Close()

	trend, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.MonthlyTotal, error) {
		var t domain.MonthlyTotal
		err := row.Scan(&t.Month, &t.Total)
		return t, err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan monthly trend: %w", err)
	}
	return trend, nil
}

func (r *PgxReportingRepository) ListRecentExpenses(ctx context.Context, userID string, limit int) ([]domain.Expense, error) {
	if limit <= 0 {
		limit = 5
	}
	query := `
		SELECT ` + expenseColumns + `
		FROM expenses
		WHERE user_id = $1
		ORDER BY date DESC, created_at DESC
		LIMIT $2;
	`
	rows, err := r.Pool.Query(ctx, query, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list recent expenses: %w", err)
	}
	defer rows.Close()

	modelExpenses, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (models.Expense, error) {
		return scanExpense(row)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan recent expenses: %w", err)
	}
	return mapping.ToDomainExpenseSlice(modelExpenses), nil
}

func (r *PgxReportingRepository) GetAdminCounts(ctx context.Context) (portsrepo.AdminCounts, error) {
	query := `
		SELECT
			(SELECT COUNT(*) FROM users WHERE deleted_at IS NULL),
			(SELECT COUNT(*) FROM expenses),
			(SELECT COUNT(*) FROM subscriptions);
	`
	var counts portsrepo.AdminCounts
	err := r.Pool.QueryRow(ctx, query).Scan(&counts.TotalUsers, &counts.TotalExpenses, &counts.TotalSubscriptions)
	if err != nil {
		return portsrepo.AdminCounts{}, fmt.Errorf("failed to load admin counts: %w", err)
	}
	return counts, nil
}

func (r *PgxReportingRepository) ListProSubscriptionStarts(ctx context.Context) ([]time.Time, error) {
	query := `SELECT created_at FROM subscriptions WHERE plan = $1 AND status = $2;`
	rows, err := r.Pool.Query(ctx, query, string(domain.PlanPro), string(domain.SubscriptionActive))
	if err != nil {
		return nil, fmt.Errorf("failed to list pro subscription starts: %w", err)
	}
	defer rows.Close()

	starts, err := pgx.CollectRows(rows, pgx.RowTo[time.Time])
	if err != nil {
		return nil, fmt.Errorf("failed to scan pro subscription starts: %w", err)
	}
	return starts, nil
}

func (r *PgxReportingRepository) ListUserOverviews(ctx context.Context, limit, offset int) ([]domain.UserOverview, int64, error) {
	if limit <= 0 {
		limit = 10
	}

	var total int64
	if err := r.Pool.QueryRow(ctx, `SELECT COUNT(*) FROM users WHERE deleted_at IS NULL;`).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count users: %w", err)
	}

	query := `
		SELECT
			u.user_id, u.email, u.name, u.role, u.default_currency,
			u.created_at, u.created_by, u.last_updated_at, u.last_updated_by, u.deleted_at,
			s.subscription_id, s.plan, s.status,
			s.billing_customer_id, s.billing_subscription_id, s.current_period_end,
			s.created_at, s.created_by, s.last_updated_at, s.last_updated_by,
			(SELECT COUNT(*) FROM expenses e WHERE e.user_id = u.user_id) AS expense_count
		FROM users u
		LEFT JOIN subscriptions s ON s.user_id = u.user_id
		WHERE u.deleted_at IS NULL
		ORDER BY u.created_at DESC
		LIMIT $1 OFFSET $2;
	`
	rows, err := r.Pool.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list user overviews: %w", err)
	}
	defer rows.Close()

	overviews, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.UserOverview, error) {
		var u models.User
		var subID, plan, status *string
		var sub models.Subscription
		var subCreatedAt, subLastUpdatedAt *time.Time
		var subCreatedBy, subLastUpdatedBy *string
		var overview domain.UserOverview

		err := row.Scan(
			&u.UserID, &u.Email, &u.Name, &u.Role, &u.DefaultCurrency,
			&u.CreatedAt, &u.CreatedBy, &u.LastUpdatedAt, &u.LastUpdatedBy, &u.DeletedAt,
			&subID, &plan, &status,
			&sub.BillingCustomerID, &sub.BillingSubscriptionID, &sub.CurrentPeriodEnd,
			&subCreatedAt, &subCreatedBy, &subLastUpdatedAt, &subLastUpdatedBy,
			&overview.ExpenseCount,
		)
		if err != nil {
			return overview, err
		}

		overview.User = mapping.ToDomainUser(u)
		if subID != nil {
			sub.SubscriptionID = *subID
			sub.UserID = u.UserID
			sub.Plan = *plan
			sub.Status = *status
			sub.CreatedAt = *subCreatedAt
			sub.CreatedBy = *subCreatedBy
			sub.LastUpdatedAt = *subLastUpdatedAt
			sub.LastUpdatedBy = *subLastUpdatedBy
			domainSub := mapping.ToDomainSubscription(sub)
			overview.Subscription = &domainSub
		}
		return overview, nil
	})
	if err != nil {
		return nil, 0, fmt.Errorf("failed to scan user overviews: %w", err)
	}
	return overviews, total, nil
}
