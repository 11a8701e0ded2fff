package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/spendwise/spendwise_app/internal/core/ports/services"
	"github.com/spendwise/spendwise_app/internal/dto"
	"github.com/spendwise/spendwise_app/internal/middleware"
)

// incomeHandler handles HTTP requests related to incomes.
type incomeHandler struct {
	incomeService portssvc.IncomeSvcFacade
}

func newIncomeHandler(is portssvc.IncomeSvcFacade) *incomeHandler {
	return &incomeHandler{incomeService: is}
}

// registerIncomeRoutes registers all income-related routes.
func registerIncomeRoutes(rg *gin.RouterGroup, incomeService portssvc.IncomeSvcFacade) {
	h := newIncomeHandler(incomeService)

	incomes := rg.Group("/incomes")
	{
		incomes.POST("", h.createIncome)
		incomes.GET("", h.listIncomes)
		incomes.GET("/:id", h.getIncome)
		incomes.PUT("/:id", h.updateIncome)
		incomes.DELETE("/:id", h.deleteIncome)
	}
}

// createIncome godoc
// @Summary Create an income
// @Description Creates a new income record for the authenticated user.
// @Tags incomes
// @Accept json
// @Produce json
// @Param income body dto.CreateIncomeRequest true "Income details"
// @Success 201 {object} dto.IncomeResponse
// @Failure 400 {object} ErrorResponse
// @Security BearerAuth
// @Router /incomes [post]
func (h *incomeHandler) createIncome(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	var req dto.CreateIncomeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body: " + err.Error()})
		return
	}

	income, err := h.incomeService.CreateIncome(c.Request.Context(), userID, req)
	if err != nil {
		respondError(c, logger, err, "Failed to create income")
		return
	}
	c.JSON(http.StatusCreated, dto.ToIncomeResponse(income))
}

// listIncomes godoc
// @Summary List incomes
// @Description Returns a page of the user's incomes, optionally filtered by category and date range.
// @Tags incomes
// @Produce json
// @Param categoryId query string false "Category filter"
// @Param startDate query string false "Start date (RFC 3339 or YYYY-MM-DD)"
// @Param endDate query string false "End date (RFC 3339 or YYYY-MM-DD)"
// @Param page query int false "Page number" default(1)
// @Param limit query int false "Page size" default(10)
// @Success 200 {object} dto.ListIncomesResponse
// @Failure 400 {object} ErrorResponse
// @Security BearerAuth
// @Router /incomes [get]
func (h *incomeHandler) listIncomes(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	var params dto.ListRecordsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid query parameters: " + err.Error()})
		return
	}

	incomes, total, err := h.incomeService.ListIncomes(c.Request.Context(), userID, params)
	if err != nil {
		respondError(c, logger, err, "Failed to list incomes")
		return
	}
	c.JSON(http.StatusOK, dto.ListIncomesResponse{
		Incomes:    dto.ToListIncomeResponse(incomes),
		Pagination: dto.NewPagination(params.Page, params.Limit, total),
	})
}

// getIncome godoc
// @Summary Get an income
// @Description Returns one income record the user owns.
// @Tags incomes
// @Produce json
// @Param id path string true "Income ID"
// @Success 200 {object} dto.IncomeResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /incomes/{id} [get]
func (h *incomeHandler) getIncome(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	income, err := h.incomeService.GetIncomeByID(c.Request.Context(), userID, c.Param("id"))
	if err != nil {
		respondError(c, logger, err, "Failed to load income")
		return
	}
	c.JSON(http.StatusOK, dto.ToIncomeResponse(income))
}

// updateIncome godoc
// @Summary Update an income
// @Description Applies partial changes to an income the user owns.
// @Tags incomes
// @Accept json
// @Produce json
// @Param id path string true "Income ID"
// @Param income body dto.UpdateIncomeRequest true "Income changes"
// @Success 200 {object} dto.IncomeResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /incomes/{id} [put]
func (h *incomeHandler) updateIncome(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	var req dto.UpdateIncomeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body: " + err.Error()})
		return
	}

	income, err := h.incomeService.UpdateIncome(c.Request.Context(), userID, c.Param("id"), req)
	if err != nil {
		respondError(c, logger, err, "Failed to update income")
		return
	}
	c.JSON(http.StatusOK, dto.ToIncomeResponse(income))
}

// deleteIncome godoc
// @Summary Delete an income
// @Description Removes an income record the user owns.
// @Tags incomes
// @Produce json
// @Param id path string true "Income ID"
// @Success 204 "No Content"
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /incomes/{id} [delete]
func (h *incomeHandler) deleteIncome(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	if err := h.incomeService.DeleteIncome(c.Request.Context(), userID, c.Param("id")); err != nil {
		respondError(c, logger, err, "Failed to delete income")
		return
	}
	c.Status(http.StatusNoContent)
}
