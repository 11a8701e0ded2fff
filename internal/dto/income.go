package dto

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/spendwise/spendwise_app/internal/core/domain"
)

// CreateIncomeRequest defines the data needed to create a new income record.
type CreateIncomeRequest struct {
	Title       string          `json:"title" binding:"required"`
	Amount      decimal.Decimal `json:"amount" binding:"required"`
	CategoryID  string          `json:"categoryID" binding:"required"`
	Currency    string          `json:"currency" binding:"omitempty,currencycode"`
	Description string          `json:"description"`
	Date        *time.Time      `json:"date"`
}

// UpdateIncomeRequest defines the data allowed for updating an income record.
type UpdateIncomeRequest struct {
	Title       *string          `json:"title"`
	Amount      *decimal.Decimal `json:"amount"`
	CategoryID  *string          `json:"categoryID"`
	Currency    *string          `json:"currency" binding:"omitempty,currencycode"`
	Description *string          `json:"description"`
	Date        *time.Time       `json:"date"`
}

// IncomeResponse defines the data returned for an income record.
type IncomeResponse struct {
	IncomeID      string          `json:"incomeID"`
	CategoryID    string          `json:"categoryID"`
	Title         string          `json:"title"`
	Amount        decimal.Decimal `json:"amount"`
	Currency      string          `json:"currency"`
	Description   string          `json:"description,omitempty"`
	Date          time.Time       `json:"date"`
	CreatedAt     time.Time       `json:"createdAt"`
	LastUpdatedAt time.Time       `json:"lastUpdatedAt"`
}

// ToIncomeResponse converts a domain.Income to IncomeResponse DTO
func ToIncomeResponse(income *domain.Income) IncomeResponse {
	return IncomeResponse{
		IncomeID:      income.IncomeID,
		CategoryID:    income.CategoryID,
		Title:         income.Title,
		Amount:        income.Amount,
		Currency:      income.Currency,
		Description:   income.Description,
		Date:          income.Date,
		CreatedAt:     income.CreatedAt,
		LastUpdatedAt: income.LastUpdatedAt,
	}
}

// ToListIncomeResponse converts a slice of domain.Income to IncomeResponse DTOs
func ToListIncomeResponse(incomes []domain.Income) []IncomeResponse {
	res := make([]IncomeResponse, len(incomes))
	for i, inc := range incomes {
		res[i] = ToIncomeResponse(&inc)
	}
	return res
}

// ListIncomesResponse wraps a page of income records.
type ListIncomesResponse struct {
	Incomes    []IncomeResponse `json:"incomes"`
	Pagination Pagination       `json:"pagination"`
}
