package handlers

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	portssvc "github.com/spendwise/spendwise_app/internal/core/ports/services"
	"github.com/spendwise/spendwise_app/internal/middleware"
	"github.com/spendwise/spendwise_app/internal/platform/billing"
	"github.com/spendwise/spendwise_app/internal/platform/config"
)

// webhookHandler receives billing provider webhooks.
type webhookHandler struct {
	reconciler    portssvc.BillingReconcilerSvc
	webhookSecret string
}

func newWebhookHandler(reconciler portssvc.BillingReconcilerSvc, cfg *config.Config) *webhookHandler {
	return &webhookHandler{reconciler: reconciler, webhookSecret: cfg.BillingWebhookSecret}
}

// RegisterWebhookRoutes registers the public billing webhook endpoint.
func RegisterWebhookRoutes(rg *gin.Engine, cfg *config.Config, reconciler portssvc.BillingReconcilerSvc) {
	h := newWebhookHandler(reconciler, cfg)
	rg.POST("/api/v1/billing/webhook", h.handleWebhook)
}

// handleWebhook godoc
// @Summary Billing webhook
// @Description Verifies and applies one billing provider event. Events failing signature verification are rejected with no side effects; unrecognized event types are acknowledged.
// @Tags billing
// @Accept json
// @Produce json
// @Param Billing-Signature header string true "Webhook signature"
// @Success 200 {object} map[string]bool
// @Failure 400 {object} ErrorResponse "Invalid payload or signature"
// @Router /billing/webhook [post]
func (h *webhookHandler) handleWebhook(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	payload, err := c.GetRawData()
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Unable to read payload"})
		return
	}

	signature := c.GetHeader(billing.SignatureHeader)
	if err := billing.VerifySignature(payload, signature, h.webhookSecret, billing.DefaultSignatureTolerance, time.Now()); err != nil {
		logger.Warn("Rejected billing webhook", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid signature"})
		return
	}

	event, err := billing.ParseEvent(payload)
	if err != nil {
		logger.Warn("Unparseable billing webhook payload", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid payload"})
		return
	}

	if err := h.reconciler.ProcessEvent(c.Request.Context(), event); err != nil {
		logger.Error("Failed to process billing event",
			slog.String("eventType", string(event.Type)), slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to process event"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"received": true})
}
