package services

import (
	"context"

	"github.com/spendwise/spendwise_app/internal/core/domain"
	"github.com/spendwise/spendwise_app/internal/dto"
)

// CategorySvcFacade manages a user's expense/income categories.
type CategorySvcFacade interface {
	CreateCategory(ctx context.Context, userID string, req dto.CreateCategoryRequest) (*domain.Category, error)
	ListCategories(ctx context.Context, userID string) ([]domain.Category, error)
	UpdateCategory(ctx context.Context, userID, categoryID string, req dto.UpdateCategoryRequest) (*domain.Category, error)
	DeleteCategory(ctx context.Context, userID, categoryID string) error
}

// ExpenseSvcFacade manages a user's expense records. Creation enforces the
// free-plan record ceiling.
type ExpenseSvcFacade interface {
	CreateExpense(ctx context.Context, userID string, req dto.CreateExpenseRequest) (*domain.Expense, error)
	GetExpenseByID(ctx context.Context, userID, expenseID string) (*domain.Expense, error)
	ListExpenses(ctx context.Context, userID string, params dto.ListRecordsParams) ([]domain.Expense, int64, error)
	UpdateExpense(ctx context.Context, userID, expenseID string, req dto.UpdateExpenseRequest) (*domain.Expense, error)
	DeleteExpense(ctx context.Context, userID, expenseID string) error
}

// IncomeSvcFacade manages a user's income records.
type IncomeSvcFacade interface {
	CreateIncome(ctx context.Context, userID string, req dto.CreateIncomeRequest) (*domain.Income, error)
	GetIncomeByID(ctx context.Context, userID, incomeID string) (*domain.Income, error)
	ListIncomes(ctx context.Context, userID string, params dto.ListRecordsParams) ([]domain.Income, int64, error)
	UpdateIncome(ctx context.Context, userID, incomeID string, req dto.UpdateIncomeRequest) (*domain.Income, error)
	DeleteIncome(ctx context.Context, userID, incomeID string) error
}
