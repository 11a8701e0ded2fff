package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/spendwise/spendwise_app/internal/core/domain"
	portssvc "github.com/spendwise/spendwise_app/internal/core/ports/services"
	"github.com/spendwise/spendwise_app/internal/dto"
	"github.com/spendwise/spendwise_app/internal/middleware"
)

// adminHandler serves the admin dashboard and user management endpoints.
// The RequireAdmin middleware has already vetted the caller.
type adminHandler struct {
	userService      portssvc.UserSvcFacade
	reportingService portssvc.ReportingService
}

func newAdminHandler(us portssvc.UserSvcFacade, rs portssvc.ReportingService) *adminHandler {
	return &adminHandler{userService: us, reportingService: rs}
}

// registerAdminRoutes registers the admin-only routes.
func registerAdminRoutes(rg *gin.RouterGroup, userService portssvc.UserSvcFacade, reportingService portssvc.ReportingService) {
	h := newAdminHandler(userService, reportingService)

	rg.GET("/stats", h.getStats)
	rg.GET("/users", h.listUsers)
	rg.PUT("/users/role", h.updateRole)
	rg.DELETE("/users/:id", h.deleteUser)
}

// getStats godoc
// @Summary Admin statistics
// @Description Returns global counts and the monthly PRO signup chart.
// @Tags admin
// @Produce json
// @Success 200 {object} dto.AdminStatsResponse
// @Failure 403 {object} ErrorResponse
// @Security BearerAuth
// @Router /admin/stats [get]
func (h *adminHandler) getStats(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	stats, err := h.reportingService.GetAdminStats(c.Request.Context())
	if err != nil {
		respondError(c, logger, err, "Failed to load admin stats")
		return
	}
	c.JSON(http.StatusOK, dto.ToAdminStatsResponse(stats))
}

// listUsers godoc
// @Summary List users
// @Description Returns a paginated listing of all users with subscription and record counts.
// @Tags admin
// @Produce json
// @Param page query int false "Page number" default(1)
// @Param limit query int false "Page size" default(10)
// @Success 200 {object} dto.AdminUsersResponse
// @Failure 403 {object} ErrorResponse
// @Security BearerAuth
// @Router /admin/users [get]
func (h *adminHandler) listUsers(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var params dto.ListAdminUsersParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid query parameters: " + err.Error()})
		return
	}

	users, err := h.reportingService.ListUserOverviews(c.Request.Context(), params.Page, params.Limit)
	if err != nil {
		respondError(c, logger, err, "Failed to list users")
		return
	}
	c.JSON(http.StatusOK, users)
}

// updateRole godoc
// @Summary Change user role
// @Description Promotes or demotes a user. Admins cannot change their own role.
// @Tags admin
// @Accept json
// @Produce json
// @Param role body dto.UpdateRoleRequest true "Target user and role"
// @Success 200 {object} dto.UserResponse
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse "Cannot change own role"
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /admin/users/role [put]
func (h *adminHandler) updateRole(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	adminID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	var req dto.UpdateRoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body: " + err.Error()})
		return
	}

	user, err := h.userService.UpdateUserRole(c.Request.Context(), req.UserID, domain.UserRole(req.Role), adminID)
	if err != nil {
		respondError(c, logger, err, "Failed to update role")
		return
	}
	c.JSON(http.StatusOK, dto.ToUserResponse(user))
}

// deleteUser godoc
// @Summary Delete a user
// @Description Removes a user and all owned data. Admin accounts cannot be deleted.
// @Tags admin
// @Produce json
// @Param id path string true "User ID"
// @Success 204 "No Content"
// @Failure 403 {object} ErrorResponse "Admin accounts cannot be deleted"
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /admin/users/{id} [delete]
func (h *adminHandler) deleteUser(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	if err := h.userService.DeleteUser(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, logger, err, "Failed to delete user")
		return
	}
	c.Status(http.StatusNoContent)
}
