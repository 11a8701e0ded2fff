package billing

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/spendwise/spendwise_app/internal/core/domain"
)

// webhookEnvelope mirrors the provider's event payload. Only the fields the
// reconciler needs are decoded; everything else is ignored.
type webhookEnvelope struct {
	ID      string `json:"id"`
	Type    string `json:"type"`
	Created int64  `json:"created"`
	Data    struct {
		Object webhookObject `json:"object"`
	} `json:"data"`
}

// webhookObject is the union of the object shapes carried by the event types
// we handle (checkout session, invoice, subscription).
type webhookObject struct {
	ID               string            `json:"id"`
	Customer         string            `json:"customer"`
	Subscription     string            `json:"subscription"`
	Status           string            `json:"status"`
	CurrentPeriodEnd int64             `json:"current_period_end"`
	Metadata         map[string]string `json:"metadata"`
}

// ParseEvent decodes a raw webhook payload into a domain billing event.
// Unrecognized event types still parse successfully; the caller decides
// whether to act on them via Recognized().
func ParseEvent(payload []byte) (domain.BillingEvent, error) {
	var env webhookEnvelope
	if err := json.Unmarshal(payload, &env); err != nil {
		return domain.BillingEvent{}, fmt.Errorf("decoding webhook payload: %w", err)
	}
	if env.Type == "" {
		return domain.BillingEvent{}, fmt.Errorf("webhook payload missing event type")
	}

	obj := env.Data.Object
	ev := domain.BillingEvent{
		Type:           domain.BillingEventType(env.Type),
		UserID:         obj.Metadata["userId"],
		CustomerID:     obj.Customer,
		ProviderStatus: obj.Status,
	}

	switch ev.Type {
	case domain.BillingEventSubscriptionUpdated, domain.BillingEventSubscriptionDeleted:
		// Subscription objects carry their own id.
		ev.SubscriptionID = obj.ID
	default:
		// Checkout sessions and invoices reference the subscription.
		ev.SubscriptionID = obj.Subscription
	}

	if obj.CurrentPeriodEnd > 0 {
		t := time.Unix(obj.CurrentPeriodEnd, 0).UTC()
		ev.PeriodEnd = &t
	}
	if env.Created > 0 {
		ev.OccurredAt = time.Unix(env.Created, 0).UTC()
	} else {
		ev.OccurredAt = time.Now().UTC()
	}

	return ev, nil
}
