package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/spendwise/spendwise_app/internal/core/ports/services"
	"github.com/spendwise/spendwise_app/internal/middleware"
)

// dashboardHandler serves the aggregated user dashboard.
type dashboardHandler struct {
	reportingService portssvc.ReportingService
}

func newDashboardHandler(rs portssvc.ReportingService) *dashboardHandler {
	return &dashboardHandler{reportingService: rs}
}

// registerDashboardRoutes registers the dashboard routes.
func registerDashboardRoutes(rg *gin.RouterGroup, reportingService portssvc.ReportingService) {
	h := newDashboardHandler(reportingService)
	rg.GET("/dashboard/stats", h.getStats)
}

// getStats godoc
// @Summary Dashboard statistics
// @Description Returns total spending, category breakdown, monthly trend, recent expenses and plan usage for the requested period.
// @Tags dashboard
// @Produce json
// @Param period query string false "Aggregation period" Enums(month, year, all) default(month)
// @Success 200 {object} dto.DashboardStatsResponse
// @Failure 400 {object} ErrorResponse "Unknown period"
// @Failure 401 {object} ErrorResponse
// @Security BearerAuth
// @Router /dashboard/stats [get]
func (h *dashboardHandler) getStats(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	stats, err := h.reportingService.GetDashboardStats(c.Request.Context(), userID, c.Query("period"))
	if err != nil {
		respondError(c, logger, err, "Failed to load dashboard stats")
		return
	}
	c.JSON(http.StatusOK, stats)
}
