package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Income is a single earning record owned by a user.
type Income struct {
	IncomeID    string          `json:"incomeID"` // Primary Key (UUID)
	UserID      string          `json:"userID"`
	CategoryID  string          `json:"categoryID"`
	Title       string          `json:"title"`
	Amount      decimal.Decimal `json:"amount"`
	Currency    string          `json:"currency"`
	Description string          `json:"description,omitempty"`
	Date        time.Time       `json:"date"`
	AuditFields
}
