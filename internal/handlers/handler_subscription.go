package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/spendwise/spendwise_app/internal/core/ports/services"
	"github.com/spendwise/spendwise_app/internal/dto"
	"github.com/spendwise/spendwise_app/internal/middleware"
)

// subscriptionHandler handles HTTP requests related to the caller's
// subscription and billing sessions.
type subscriptionHandler struct {
	subscriptionService portssvc.SubscriptionSvcFacade
	userService         portssvc.UserReaderSvc
}

func newSubscriptionHandler(ss portssvc.SubscriptionSvcFacade, us portssvc.UserReaderSvc) *subscriptionHandler {
	return &subscriptionHandler{subscriptionService: ss, userService: us}
}

// RegisterSubscriptionRoutes registers subscription and billing-session routes.
func RegisterSubscriptionRoutes(rg *gin.RouterGroup, subscriptionService portssvc.SubscriptionSvcFacade, userService portssvc.UserReaderSvc) {
	h := newSubscriptionHandler(subscriptionService, userService)

	sub := rg.Group("/subscription")
	{
		sub.GET("", h.getSubscription)
		sub.PUT("", h.updateSubscription)
	}

	billing := rg.Group("/billing")
	{
		billing.POST("/checkout-session", h.createCheckoutSession)
		billing.POST("/portal-session", h.createPortalSession)
	}
}

// getSubscription godoc
// @Summary Get subscription
// @Description Returns the caller's subscription, creating the default FREE one on first access.
// @Tags billing
// @Produce json
// @Success 200 {object} dto.SubscriptionResponse
// @Failure 401 {object} ErrorResponse
// @Security BearerAuth
// @Router /subscription [get]
func (h *subscriptionHandler) getSubscription(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	sub, err := h.subscriptionService.GetOrCreateSubscription(c.Request.Context(), userID)
	if err != nil {
		respondError(c, logger, err, "Failed to load subscription")
		return
	}
	c.JSON(http.StatusOK, dto.ToSubscriptionResponse(sub))
}

// updateSubscription godoc
// @Summary Replace subscription
// @Description Replaces the caller's subscription record wholesale.
// @Tags billing
// @Accept json
// @Produce json
// @Param subscription body dto.UpdateSubscriptionRequest true "Subscription record"
// @Success 200 {object} dto.SubscriptionResponse
// @Failure 400 {object} ErrorResponse
// @Security BearerAuth
// @Router /subscription [put]
func (h *subscriptionHandler) updateSubscription(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	var req dto.UpdateSubscriptionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body: " + err.Error()})
		return
	}

	sub, err := h.subscriptionService.UpsertSubscription(c.Request.Context(), userID, req)
	if err != nil {
		respondError(c, logger, err, "Failed to update subscription")
		return
	}
	c.JSON(http.StatusOK, dto.ToSubscriptionResponse(sub))
}

// createCheckoutSession godoc
// @Summary Start checkout
// @Description Creates a hosted checkout session for the PRO plan and returns its URL.
// @Tags billing
// @Produce json
// @Success 200 {object} dto.CheckoutSessionResponse
// @Failure 401 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /billing/checkout-session [post]
func (h *subscriptionHandler) createCheckoutSession(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	user, err := h.userService.GetUserByID(c.Request.Context(), userID)
	if err != nil {
		respondError(c, logger, err, "Failed to load user")
		return
	}

	url, err := h.subscriptionService.CreateCheckoutSession(c.Request.Context(), user)
	if err != nil {
		respondError(c, logger, err, "Failed to create checkout session")
		return
	}
	c.JSON(http.StatusOK, dto.CheckoutSessionResponse{URL: url})
}

// createPortalSession godoc
// @Summary Open billing portal
// @Description Creates a hosted billing-portal session. Fails when the user has no billing customer yet.
// @Tags billing
// @Produce json
// @Success 200 {object} dto.CheckoutSessionResponse
// @Failure 400 {object} ErrorResponse "No billing customer for user"
// @Failure 401 {object} ErrorResponse
// @Security BearerAuth
// @Router /billing/portal-session [post]
func (h *subscriptionHandler) createPortalSession(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	url, err := h.subscriptionService.CreatePortalSession(c.Request.Context(), userID)
	if err != nil {
		respondError(c, logger, err, "Failed to create portal session")
		return
	}
	c.JSON(http.StatusOK, dto.CheckoutSessionResponse{URL: url})
}
