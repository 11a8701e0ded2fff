package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Expense represents an expense row.
type Expense struct {
	ExpenseID   string          `db:"expense_id"`
	UserID      string          `db:"user_id"`
	CategoryID  string          `db:"category_id"`
	Title       string          `db:"title"`
	Amount      decimal.Decimal `db:"amount"`
	Currency    string          `db:"currency"`
	Description string          `db:"description"`
	Date        time.Time       `db:"date"`
	AuditFields
}

// Income represents an income row. It shares the expense column layout.
type Income struct {
	IncomeID    string          `db:"income_id"`
	UserID      string          `db:"user_id"`
	CategoryID  string          `db:"category_id"`
	Title       string          `db:"title"`
	Amount      decimal.Decimal `db:"amount"`
	Currency    string          `db:"currency"`
	Description string          `db:"description"`
	Date        time.Time       `db:"date"`
	AuditFields
}
