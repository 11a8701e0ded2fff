package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// MonthlyTotal is one point of the dashboard spending trend.
type MonthlyTotal struct {
	Month time.Time       `json:"month"`
	Total decimal.Decimal `json:"total"`
}

// AdminStats aggregates the global metrics shown on the admin dashboard.
type AdminStats struct {
	TotalUsers             int64 `json:"totalUsers"`
	TotalExpenses          int64 `json:"totalExpenses"`
	TotalSubscriptions     int64 `json:"totalSubscriptions"`
	ActiveProSubscriptions int64 `json:"activeProSubscriptions"`
	// MonthlySignups counts PRO subscription starts per "YYYY-MM" month.
	MonthlySignups map[string]int64 `json:"monthlySignups"`
}

// UserOverview is one row of the admin user listing.
type UserOverview struct {
	User         User          `json:"user"`
	Subscription *Subscription `json:"subscription,omitempty"`
	ExpenseCount int64         `json:"expenseCount"`
}
