package domain

import "github.com/shopspring/decimal"

// Category groups expenses and incomes for a single user.
type Category struct {
	CategoryID string `json:"categoryID"` // Primary Key (UUID)
	UserID     string `json:"userID"`
	Name       string `json:"name"`
	Color      string `json:"color"` // hex color for charts
	Icon       string `json:"icon"`
	AuditFields
}

// CategoryStat is one slice of the dashboard category breakdown.
type CategoryStat struct {
	Name   string          `json:"name"`
	Amount decimal.Decimal `json:"amount"`
	Color  string          `json:"color"`
	Icon   string          `json:"icon"`
}
