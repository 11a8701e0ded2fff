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

type PgxIncomeRepository struct {
	BaseRepository
}

func newPgxIncomeRepository(db *pgxpool.Pool) portsrepo.IncomeRepositoryFacade {
	return &PgxIncomeRepository{BaseRepository{Pool: db}}
}

var _ portsrepo.IncomeRepositoryFacade = (*PgxIncomeRepository)(nil)

const incomeColumns = `income_id, user_id, category_id, title, amount, currency, description, date, created_at, created_by, last_updated_at, last_updated_by`

func scanIncome(row pgx.Row) (models.Income, error) {
	var m models.Income
	err := row.Scan(
		&m.IncomeID,
		&m.UserID,
		&m.CategoryID,
		&m.Title,
		&m.Amount,
		&m.Currency,
		&m.Description,
		&m.Date,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	return m, err
}

func (r *PgxIncomeRepository) SaveIncome(ctx context.Context, income domain.Income) error {
	m := mapping.ToModelIncome(income)
	query := `
		INSERT INTO incomes (` + incomeColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12);
	`
	_, err := r.Pool.Exec(ctx, query,
		m.IncomeID,
		m.UserID,
		m.CategoryID,
		m.Title,
		m.Amount,
		m.Currency,
		m.Description,
		m.Date,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to save income: %w", err)
	}
	return nil
}

func (r *PgxIncomeRepository) FindIncomeByID(ctx context.Context, incomeID string) (*domain.Income, error) {
	query := `SELECT ` + incomeColumns + ` FROM incomes WHERE income_id = $1;`
	m, err := scanIncome(r.Pool.QueryRow(ctx, query, incomeID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find income %s: %w", incomeID, err)
	}
	domainIncome := mapping.ToDomainIncome(m)
	return &domainIncome, nil
}

func (r *PgxIncomeRepository) ListIncomesByUser(ctx context.Context, userID string, filter portsrepo.RecordListFilter) ([]domain.Income, int64, error) {
	where, args := recordFilterClause(filter)
	countArgs := append([]any{userID}, args...)

	var total int64
	countQuery := `SELECT COUNT(*) FROM incomes WHERE user_id = $1` + where + `;`
	if err := r.Pool.QueryRow(ctx, countQuery, countArgs...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count incomes: %w", err)
	}

	limit := filter.Limit
	if limit <= 0 {
		limit = 10
	}
	listArgs := append(countArgs, limit, filter.Offset)
	listQuery := fmt.Sprintf(
		`SELECT %s FROM incomes WHERE user_id = $1%s ORDER BY date DESC, created_at DESC LIMIT $%d OFFSET $%d;`,
		incomeColumns, where, len(listArgs)-1, len(listArgs),
	)

	rows, err := r.Pool.Query(ctx, listQuery, listArgs...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list incomes: %w", err)
	}
	defer rows.Close()

	modelIncomes, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (models.Income, error) {
		return scanIncome(row)
	})
	if err != nil {
		return nil, 0, fmt.Errorf("failed to scan incomes: %w", err)
	}
	return mapping.ToDomainIncomeSlice(modelIncomes), total, nil
}

func (r *PgxIncomeRepository) UpdateIncome(ctx context.Context, income domain.Income) error {
	m := mapping.ToModelIncome(income)
	query := `
		UPDATE incomes
		SET category_id = $2, title = $3, amount = $4, currency = $5, description = $6, date = $7,
		    last_updated_at = $8, last_updated_by = $9
		WHERE income_id = $1;
	`
	tag, err := r.Pool.Exec(ctx, query,
		m.IncomeID, m.CategoryID, m.Title, m.Amount, m.Currency, m.Description, m.Date,
		m.LastUpdatedAt, m.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to update income %s: %w", m.IncomeID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *PgxIncomeRepository) DeleteIncome(ctx context.Context, incomeID string) error {
	tag, err := r.Pool.Exec(ctx, `DELETE FROM incomes WHERE income_id = $1;`, incomeID)
	if err != nil {
		return fmt.Errorf("failed to delete income %s: %w", incomeID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
