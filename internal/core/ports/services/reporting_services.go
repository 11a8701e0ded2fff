package services

import (
	"context"

	"github.com/spendwise/spendwise_app/internal/core/domain"
	"github.com/spendwise/spendwise_app/internal/dto"
)

// ReportingService aggregates the user dashboard and the admin metrics.
type ReportingService interface {
	GetDashboardStats(ctx context.Context, userID string, period string) (*dto.DashboardStatsResponse, error)
	GetAdminStats(ctx context.Context) (*domain.AdminStats, error)
	ListUserOverviews(ctx context.Context, page, limit int) (*dto.AdminUsersResponse, error)
}
