package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/spendwise/spendwise_app/internal/apperrors"
	"github.com/spendwise/spendwise_app/internal/core/domain"
	portsrepo "github.com/spendwise/spendwise_app/internal/core/ports/repositories"
	"github.com/spendwise/spendwise_app/internal/models"
	"github.com/spendwise/spendwise_app/internal/utils/mapping"
)

type PgxSubscriptionRepository struct {
	BaseRepository
}

func newPgxSubscriptionRepository(db *pgxpool.Pool) portsrepo.SubscriptionRepositoryFacade {
	return &PgxSubscriptionRepository{BaseRepository{Pool: db}}
}

var _ portsrepo.SubscriptionRepositoryFacade = (*PgxSubscriptionRepository)(nil)

const subscriptionColumns = `subscription_id, user_id, plan, status, billing_customer_id, billing_subscription_id, current_period_end, created_at, created_by, last_updated_at, last_updated_by`

func scanSubscription(row pgx.Row) (models.Subscription, error) {
	var m models.Subscription
	err := row.Scan(
		&m.SubscriptionID,
		&m.UserID,
		&m.Plan,
		&m.Status,
		&m.BillingCustomerID,
		&m.BillingSubscriptionID,
		&m.CurrentPeriodEnd,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	return m, err
}

func (r *PgxSubscriptionRepository) FindSubscriptionByUserID(ctx context.Context, userID string) (*domain.Subscription, error) {
	query := `SELECT ` + subscriptionColumns + ` FROM subscriptions WHERE user_id = $1;`
	m, err := scanSubscription(r.Pool.QueryRow(ctx, query, userID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find subscription for user %s: %w", userID, err)
	}
	domainSub := mapping.ToDomainSubscription(m)
	return &domainSub, nil
}

func (r *PgxSubscriptionRepository) FindSubscriptionByBillingID(ctx context.Context, billingSubscriptionID string) (*domain.Subscription, error) {
	query := `SELECT ` + subscriptionColumns + ` FROM subscriptions WHERE billing_subscription_id = $1;`
	m, err := scanSubscription(r.Pool.QueryRow(ctx, query, billingSubscriptionID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find subscription by billing id: %w", err)
	}
	domainSub := mapping.ToDomainSubscription(m)
	return &domainSub, nil
}

// UpsertSubscription writes the full record in a single statement keyed on
// the unique user id, so concurrent webhook deliveries resolve to
// last-write-wins instead of duplicating rows.
func (r *PgxSubscriptionRepository) UpsertSubscription(ctx context.Context, subscription domain.Subscription) error {
	m := mapping.ToModelSubscription(subscription)
	query := `
		INSERT INTO subscriptions (` + subscriptionColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		ON CONFLICT (user_id) DO UPDATE SET
			plan = EXCLUDED.plan,
			status = EXCLUDED.status,
			billing_customer_id = EXCLUDED.billing_customer_id,
			billing_subscription_id = EXCLUDED.billing_subscription_id,
			current_period_end = EXCLUDED.current_period_end,
			last_updated_at = EXCLUDED.last_updated_at,
			last_updated_by = EXCLUDED.last_updated_by;
	`
	_, err := r.Pool.Exec(ctx, query,
		m.SubscriptionID,
		m.UserID,
		m.Plan,
		m.Status,
		m.BillingCustomerID,
		m.BillingSubscriptionID,
		m.CurrentPeriodEnd,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to upsert subscription for user %s: %w", m.UserID, err)
	}
	return nil
}
