package dto

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/spendwise/spendwise_app/internal/core/domain"
)

// CreateExpenseRequest defines the data needed to create a new expense.
type CreateExpenseRequest struct {
	Title       string          `json:"title" binding:"required"`
	Amount      decimal.Decimal `json:"amount" binding:"required"`
	CategoryID  string          `json:"categoryID" binding:"required"`
	Currency    string          `json:"currency" binding:"omitempty,currencycode"`
	Description string          `json:"description"`
	Date        *time.Time      `json:"date"`
}

// UpdateExpenseRequest defines the data allowed for updating an expense.
// Pointers distinguish omitted fields from zero values.
type UpdateExpenseRequest struct {
	Title       *string          `json:"title"`
	Amount      *decimal.Decimal `json:"amount"`
	CategoryID  *string          `json:"categoryID"`
	Currency    *string          `json:"currency" binding:"omitempty,currencycode"`
	Description *string          `json:"description"`
	Date        *time.Time       `json:"date"`
}

// ExpenseResponse defines the data returned for an expense.
type ExpenseResponse struct {
	ExpenseID     string          `json:"expenseID"`
	CategoryID    string          `json:"categoryID"`
	Title         string          `json:"title"`
	Amount        decimal.Decimal `json:"amount"`
	Currency      string          `json:"currency"`
	Description   string          `json:"description,omitempty"`
	Date          time.Time       `json:"date"`
	CreatedAt     time.Time       `json:"createdAt"`
	LastUpdatedAt time.Time       `json:"lastUpdatedAt"`
}

// ToExpenseResponse converts a domain.Expense to ExpenseResponse DTO
func ToExpenseResponse(expense *domain.Expense) ExpenseResponse {
	return ExpenseResponse{
		ExpenseID:     expense.ExpenseID,
		CategoryID:    expense.CategoryID,
		Title:         expense.Title,
		Amount:        expense.Amount,
		Currency:      expense.Currency,
		Description:   expense.Description,
		Date:          expense.Date,
		CreatedAt:     expense.CreatedAt,
		LastUpdatedAt: expense.LastUpdatedAt,
	}
}

// ToListExpenseResponse converts a slice of domain.Expense to ExpenseResponse DTOs
func ToListExpenseResponse(expenses []domain.Expense) []ExpenseResponse {
	res := make([]ExpenseResponse, len(expenses))
	for i, e := range expenses {
		res[i] = ToExpenseResponse(&e)
	}
	return res
}

// ListRecordsParams defines query parameters for listing expenses/incomes.
type ListRecordsParams struct {
	CategoryID string `form:"categoryId"`
	StartDate  string `form:"startDate"`
	EndDate    string `form:"endDate"`
	Page       int    `form:"page,default=1" binding:"omitempty,min=1"`
	Limit      int    `form:"limit,default=10" binding:"omitempty,min=1,max=100"`
}

// Pagination carries listing metadata.
type Pagination struct {
	Page  int   `json:"page"`
	Limit int   `json:"limit"`
	Total int64 `json:"total"`
	Pages int64 `json:"pages"`
}

// NewPagination derives page metadata from a total row count.
func NewPagination(page, limit int, total int64) Pagination {
	pages := total / int64(limit)
	if total%int64(limit) != 0 {
		pages++
	}
	return Pagination{Page: page, Limit: limit, Total: total, Pages: pages}
}

// ListExpensesResponse wraps a page of expenses.
type ListExpensesResponse struct {
	Expenses   []ExpenseResponse `json:"expenses"`
	Pagination Pagination        `json:"pagination"`
}
