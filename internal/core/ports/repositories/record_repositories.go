package repositories

import (
	"context"
	"time"

	"github.com/spendwise/spendwise_app/internal/core/domain"
)

// RecordListFilter narrows expense/income listings.
// Zero values mean "no constraint".
type RecordListFilter struct {
	CategoryID string
	StartDate  *time.Time
	EndDate    *time.Time
	Limit      int
	Offset     int
}

// ExpenseRepositoryFacade defines persistence operations for expenses.
type ExpenseRepositoryFacade interface {
	SaveExpense(ctx context.Context, expense domain.Expense) error
	FindExpenseByID(ctx context.Context, expenseID string) (*domain.Expense, error)
	ListExpensesByUser(ctx context.Context, userID string, filter RecordListFilter) ([]domain.Expense, int64, error)
	CountExpensesByUser(ctx context.Context, userID string) (int64, error)
	UpdateExpense(ctx context.Context, expense domain.Expense) error
	DeleteExpense(ctx context.Context, expenseID string) error
}

// IncomeRepositoryFacade defines persistence operations for incomes.
type IncomeRepositoryFacade interface {
	SaveIncome(ctx context.Context, income domain.Income) error
	FindIncomeByID(ctx context.Context, incomeID string) (*domain.Income, error)
	ListIncomesByUser(ctx context.Context, userID string, filter RecordListFilter) ([]domain.Income, int64, error)
	UpdateIncome(ctx context.Context, income domain.Income) error
	DeleteIncome(ctx context.Context, incomeID string) error
}
