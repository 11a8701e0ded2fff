package pgsql

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/spendwise/spendwise_app/internal/apperrors"
	"github.com/spendwise/spendwise_app/internal/core/domain"
	portsrepo "github.com/spendwise/spendwise_app/internal/core/ports/repositories"
	"github.com/spendwise/spendwise_app/internal/models"
	"github.com/spendwise/spendwise_app/internal/utils/mapping"
)

type PgxExpenseRepository struct {
	BaseRepository
}

func newPgxExpenseRepository(db *pgxpool.Pool) portsrepo.ExpenseRepositoryFacade {
	return &PgxExpenseRepository{BaseRepository{Pool: db}}
}

var _ portsrepo.ExpenseRepositoryFacade = (*PgxExpenseRepository)(nil)

const expenseColumns = `expense_id, user_id, category_id, title, amount, currency, description, date, created_at, created_by, last_updated_at, last_updated_by`

func scanExpense(row pgx.Row) (models.Expense, error) {
	var m models.Expense
	err := row.Scan(
		&m.ExpenseID,
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

// recordFilterClause renders the shared WHERE tail and argument list for the
// expense/income listing filters. Arguments start at position $2 because $1
// is always the user id.
func recordFilterClause(filter portsrepo.RecordListFilter) (string, []any) {
	var clauses []string
	var args []any
	position := 2

	if filter.CategoryID != "" {
		clauses = append(clauses, "category_id = $"+strconv.Itoa(position))
		args = append(args, filter.CategoryID)
		position++
	}
	if filter.StartDate != nil {
		clauses = append(clauses, "date >= $"+strconv.Itoa(position))
		args = append(args, *filter.StartDate)
		position++
	}
	if filter.EndDate != nil {
		clauses = append(clauses, "date <= $"+strconv.Itoa(position))
		args = append(args, *filter.EndDate)
		position++
	}

	if len(clauses) == 0 {
		return "", args
	}
	return " AND " + strings.Join(clauses, " AND "), args
}

func (r *PgxExpenseRepository) SaveExpense(ctx context.Context, expense domain.Expense) error {
	m := mapping.ToModelExpense(expense)
	query := `
		INSERT INTO expenses (` + expenseColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12);
	`
	_, err := r.Pool.Exec(ctx, query,
		m.ExpenseID,
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
		return fmt.Errorf("failed to save expense: %w", err)
	}
	return nil
}

func (r *PgxExpenseRepository) FindExpenseByID(ctx context.Context, expenseID string) (*domain.Expense, error) {
	query := `SELECT ` + expenseColumns + ` FROM expenses WHERE expense_id = $1;`
	m, err := scanExpense(r.Pool.QueryRow(ctx, query, expenseID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find expense %s: %w", expenseID, err)
	}
	domainExpense := mapping.ToDomainExpense(m)
	return &domainExpense, nil
}

func (r *PgxExpenseRepository) ListExpensesByUser(ctx context.Context, userID string, filter portsrepo.RecordListFilter) ([]domain.Expense, int64, error) {
	where, args := recordFilterClause(filter)
	countArgs := append([]any{userID}, args...)

	var total int64
	countQuery := `SELECT COUNT(*) FROM expenses WHERE user_id = $1` + where + `;`
	if err := r.Pool.QueryRow(ctx, countQuery, countArgs...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count expenses: %w", err)
	}

	limit := filter.Limit
	if limit <= 0 {
		limit = 10
	}
	listArgs := append(countArgs, limit, filter.Offset)
	listQuery := fmt.Sprintf(
		`SELECT %s FROM expenses WHERE user_id = $1%s ORDER BY date DESC, created_at DESC LIMIT $%d OFFSET $%d;`,
		expenseColumns, where, len(listArgs)-1, len(listArgs),
	)

	rows, err := r.Pool.Query(ctx, listQuery, listArgs...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list expenses: %w", err)
	}
	defer rows.Close()

	modelExpenses, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (models.Expense, error) {
		return scanExpense(row)
	})
	if err != nil {
		return nil, 0, fmt.Errorf("failed to scan expenses: %w", err)
	}
	return mapping.ToDomainExpenseSlice(modelExpenses), total, nil
}

func (r *PgxExpenseRepository) CountExpensesByUser(ctx context.Context, userID string) (int64, error) {
	var count int64
	err := r.Pool.QueryRow(ctx, `SELECT COUNT(*) FROM expenses WHERE user_id = $1;`, userID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count expenses for user %s: %w", userID, err)
	}
	return count, nil
}

func (r *PgxExpenseRepository) UpdateExpense(ctx context.Context, expense domain.Expense) error {
	m := mapping.ToModelExpense(expense)
	query := `
		UPDATE expenses
		SET category_id = $2, title = $3, amount = $4, currency = $5, description = $6, date = $7,
		    last_updated_at = $8, last_updated_by = $9
		WHERE expense_id = $1;
	`
	tag, err := r.Pool.Exec(ctx, query,
		m.ExpenseID, m.CategoryID, m.Title, m.Amount, m.Currency, m.Description, m.Date,
		m.LastUpdatedAt, m.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to update expense %s: %w", m.ExpenseID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *PgxExpenseRepository) DeleteExpense(ctx context.Context, expenseID string) error {
	tag, err := r.Pool.Exec(ctx, `DELETE FROM expenses WHERE expense_id = $1;`, expenseID)
	if err != nil {
		return fmt.Errorf("failed to delete expense %s: %w", expenseID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
