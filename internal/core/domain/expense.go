package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Expense is a single spending record owned by a user.
type Expense struct {
	ExpenseID   string          `json:"expenseID"` // Primary Key (UUID)
	UserID      string          `json:"userID"`
	CategoryID  string          `json:"categoryID"`
	Title       string          `json:"title"`
	Amount      decimal.Decimal `json:"amount"`
	Currency    string          `json:"currency"` // 3-letter code from the supported set
	Description string          `json:"description,omitempty"`
	Date        time.Time       `json:"date"`
	AuditFields
}
