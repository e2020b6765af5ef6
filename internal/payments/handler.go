package payments

import (
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/stripe/stripe-go/v84"
	"github.com/stripe/stripe-go/v84/webhook"

	"tailor-backend/internal/shared/server/respond"
	"tailor-backend/internal/shared/telemetry"
)

// maxWebhookBody caps event payload reads. Stripe events are small.
const maxWebhookBody = 64 << 10

// Handler receives Stripe webhook events. Events are verified and logged but
// not yet acted on; billing-driven account changes land here later.
type Handler struct {
	webhookSecret string
}

// NewHandler constructs a Handler. An empty secret disables the endpoint.
func NewHandler(webhookSecret string) *Handler {
	return &Handler{webhookSecret: webhookSecret}
}

// Register mounts the webhook route. It must sit outside bearer auth: Stripe
// authenticates with its signature header instead.
func (h *Handler) Register(r gin.IRoutes) {
	r.POST("/webhooks/stripe", h.handleWebhook)
}

func (h *Handler) handleWebhook(c *gin.Context) {
	if h.webhookSecret == "" {
		respond.Error(c, http.StatusServiceUnavailable, "unavailable",
			"payment system not configured", nil)
		return
	}

	payload, err := io.ReadAll(io.LimitReader(c.Request.Body, maxWebhookBody))
	if err != nil {
		respond.Error(c, http.StatusBadRequest, "invalid_payload", "invalid payload", nil)
		return
	}

	// Accounts can pin a different API version than this library; the
	// signature check is what matters here.
	event, err := webhook.ConstructEventWithOptions(payload, c.GetHeader("Stripe-Signature"), h.webhookSecret,
		webhook.ConstructEventOptions{IgnoreAPIVersionMismatch: true})
	if err != nil {
		telemetry.Warn("stripe webhook rejected", map[string]any{"error": err.Error()})
		respond.Error(c, http.StatusBadRequest, "invalid_signature", "invalid signature", nil)
		return
	}

	h.logEvent(event)
	respond.OK(c, gin.H{"message": "Webhook received successfully."})
}

func (h *Handler) logEvent(event stripe.Event) {
	telemetry.Info("stripe webhook received", map[string]any{
		"event_id":   event.ID,
		"event_type": string(event.Type),
	})
}
