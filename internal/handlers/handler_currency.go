package handlers

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	portssvc "github.com/spendwise/spendwise_app/internal/core/ports/services"
	"github.com/spendwise/spendwise_app/internal/dto"
	"github.com/spendwise/spendwise_app/internal/middleware"
)

// currencyHandler handles HTTP requests related to currencies and rates.
type currencyHandler struct {
	currencyService portssvc.CurrencySvcFacade
}

func newCurrencyHandler(cs portssvc.CurrencySvcFacade) *currencyHandler {
	return &currencyHandler{currencyService: cs}
}

// RegisterPublicCurrencyRoutes exposes the unauthenticated rate feed.
func RegisterPublicCurrencyRoutes(rg *gin.Engine, currencyService portssvc.CurrencySvcFacade) {
	h := newCurrencyHandler(currencyService)
	rg.GET("/api/v1/rates", h.getRates)
}

// registerCurrencyRoutes registers the authenticated currency metadata routes.
func registerCurrencyRoutes(rg *gin.RouterGroup, currencyService portssvc.CurrencySvcFacade) {
	h := newCurrencyHandler(currencyService)

	currencies := rg.Group("/currencies")
	{
		currencies.GET("", h.listCurrencies)
		currencies.GET("/:code", h.getCurrency)
	}
}

// getRates godoc
// @Summary Get exchange rates
// @Description Returns cached exchange rates re-based to the requested currency, optionally filtered to target codes.
// @Tags currencies
// @Produce json
// @Param base query string false "Base currency code" default(USD)
// @Param currencies query string false "Comma-separated target codes"
// @Success 200 {object} dto.RatesResponse
// @Failure 400 {object} ErrorResponse "Unknown base currency"
// @Router /rates [get]
func (h *currencyHandler) getRates(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var query dto.RatesQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid query parameters"})
		return
	}

	base := strings.ToUpper(query.Base)
	var targets []string
	if query.Currencies != "" {
		for _, code := range strings.Split(query.Currencies, ",") {
			if code = strings.ToUpper(strings.TrimSpace(code)); code != "" {
				targets = append(targets, code)
			}
		}
	}

	rates, err := h.currencyService.RatesFor(c.Request.Context(), base, targets)
	if err != nil {
		respondError(c, logger, err, "Failed to load rates")
		return
	}
	c.JSON(http.StatusOK, dto.NewRatesResponse(base, rates, time.Now()))
}

// listCurrencies godoc
// @Summary List supported currencies
// @Description Returns the supported currency set as UI picker options.
// @Tags currencies
// @Produce json
// @Success 200 {array} dto.CurrencyOption
// @Security BearerAuth
// @Router /currencies [get]
func (h *currencyHandler) listCurrencies(c *gin.Context) {
	c.JSON(http.StatusOK, h.currencyService.GetCurrencyOptions())
}

// getCurrency godoc
// @Summary Get a currency
// @Description Returns metadata for one supported currency.
// @Tags currencies
// @Produce json
// @Param code path string true "Currency code"
// @Success 200 {object} dto.CurrencyResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /currencies/{code} [get]
func (h *currencyHandler) getCurrency(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	currency, err := h.currencyService.GetCurrencyByCode(strings.ToUpper(c.Param("code")))
	if err != nil {
		respondError(c, logger, err, "Failed to load currency")
		return
	}
	c.JSON(http.StatusOK, dto.ToCurrencyResponse(currency))
}
