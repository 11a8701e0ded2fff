package dto

import (
	"github.com/shopspring/decimal"
	"github.com/spendwise/spendwise_app/internal/core/domain"
)

// MonthlyTotalResponse is one point of the dashboard spending trend.
type MonthlyTotalResponse struct {
	Month string          `json:"month"` // "YYYY-MM"
	Total decimal.Decimal `json:"total"`
}

// SubscriptionUsage summarizes plan and record usage on the dashboard.
type SubscriptionUsage struct {
	Plan         string `json:"plan"`
	ExpenseCount int64  `json:"expenseCount"`
	// Limit is nil when the plan has no record ceiling.
	Limit *int `json:"limit"`
}

// DashboardStatsResponse is the aggregate returned by the dashboard endpoint.
type DashboardStatsResponse struct {
	TotalSpending  decimal.Decimal       `json:"totalSpending"`
	CategoryStats  []domain.CategoryStat `json:"categoryStats"`
	MonthlyTrend   []MonthlyTotalResponse `json:"monthlyTrend"`
	RecentExpenses []ExpenseResponse     `json:"recentExpenses"`
	Subscription   SubscriptionUsage     `json:"subscription"`
}

// AdminStatsResponse mirrors domain.AdminStats for the admin dashboard.
type AdminStatsResponse struct {
	TotalUsers             int64            `json:"totalUsers"`
	TotalExpenses          int64            `json:"totalExpenses"`
	TotalSubscriptions     int64            `json:"totalSubscriptions"`
	ActiveProSubscriptions int64            `json:"activeProSubscriptions"`
	MonthlyRevenue         map[string]int64 `json:"monthlyRevenue"`
}

// ToAdminStatsResponse converts domain.AdminStats to its DTO.
func ToAdminStatsResponse(stats *domain.AdminStats) AdminStatsResponse {
	return AdminStatsResponse{
		TotalUsers:             stats.TotalUsers,
		TotalExpenses:          stats.TotalExpenses,
		TotalSubscriptions:     stats.TotalSubscriptions,
		ActiveProSubscriptions: stats.ActiveProSubscriptions,
		MonthlyRevenue:         stats.MonthlySignups,
	}
}

// UserOverviewResponse is one row of the admin user listing.
type UserOverviewResponse struct {
	User         UserResponse          `json:"user"`
	Subscription *SubscriptionResponse `json:"subscription,omitempty"`
	ExpenseCount int64                 `json:"expenseCount"`
}

// AdminUsersResponse wraps the paginated admin user listing.
type AdminUsersResponse struct {
	Users       []UserOverviewResponse `json:"users"`
	Total       int64                  `json:"total"`
	Pages       int64                  `json:"pages"`
	CurrentPage int                    `json:"currentPage"`
}

// ListAdminUsersParams defines query parameters for the admin user listing.
type ListAdminUsersParams struct {
	Page  int `form:"page,default=1" binding:"omitempty,min=1"`
	Limit int `form:"limit,default=10" binding:"omitempty,min=1,max=100"`
}

// UpdateRoleRequest changes a user's role.
type UpdateRoleRequest struct {
	UserID string `json:"userId" binding:"required"`
	Role   string `json:"role" binding:"required,oneof=USER ADMIN"`
}
