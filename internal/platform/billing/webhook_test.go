package billing_test

import (
	"testing"
	"time"

	"github.com/spendwise/spendwise_app/internal/core/domain"
	"github.com/spendwise/spendwise_app/internal/platform/billing"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseEvent_CheckoutSessionCompleted(t *testing.T) {
	payload := []byte(`{
		"id": "evt_1",
		"type": "checkout.session.completed",
		"created": 1769940000,
		"data": {
			"object": {
				"id": "cs_test_1",
				"customer": "cus_123",
				"subscription": "sub_123",
				"metadata": {"userId": "user-1"}
			}
		}
	}`)

	event, err := billing.ParseEvent(payload)

	require.NoError(t, err)
	assert.Equal(t, domain.BillingEventCheckoutCompleted, event.Type)
	assert.Equal(t, "user-1", event.UserID)
	assert.Equal(t, "cus_123", event.CustomerID)
	// Checkout sessions reference the subscription, they are not one.
	assert.Equal(t, "sub_123", event.SubscriptionID)
	assert.Nil(t, event.PeriodEnd)
	assert.Equal(t, time.Unix(1769940000, 0).UTC(), event.OccurredAt)
	assert.True(t, event.Recognized())
}

func TestParseEvent_InvoicePaymentFailed(t *testing.T) {
	payload := []byte(`{
		"id": "evt_2",
		"type": "invoice.payment_failed",
		"created": 1769940100,
		"data": {
			"object": {
				"id": "in_1",
				"customer": "cus_123",
				"subscription": "sub_123"
			}
		}
	}`)

	event, err := billing.ParseEvent(payload)

	require.NoError(t, err)
	assert.Equal(t, domain.BillingEventPaymentFailed, event.Type)
	assert.Equal(t, "sub_123", event.SubscriptionID)
	assert.Empty(t, event.UserID)
}

func TestParseEvent_SubscriptionUpdated(t *testing.T) {
	payload := []byte(`{
		"id": "evt_3",
		"type": "customer.subscription.updated",
		"created": 1769940200,
		"data": {
			"object": {
				"id": "sub_123",
				"customer": "cus_123",
				"status": "past_due",
				"current_period_end": 1772618400
			}
		}
	}`)

	event, err := billing.ParseEvent(payload)

	require.NoError(t, err)
	assert.Equal(t, domain.BillingEventSubscriptionUpdated, event.Type)
	// Subscription objects carry their own id.
	assert.Equal(t, "sub_123", event.SubscriptionID)
	assert.Equal(t, "past_due", event.ProviderStatus)
	require.NotNil(t, event.PeriodEnd)
	assert.Equal(t, time.Unix(1772618400, 0).UTC(), *event.PeriodEnd)
}

func TestParseEvent_SubscriptionDeleted(t *testing.T) {
	payload := []byte(`{
		"id": "evt_4",
		"type": "customer.subscription.deleted",
		"created": 1769940300,
		"data": {"object": {"id": "sub_123", "customer": "cus_123", "status": "canceled"}}
	}`)

	event, err := billing.ParseEvent(payload)

	require.NoError(t, err)
	assert.Equal(t, domain.BillingEventSubscriptionDeleted, event.Type)
	assert.Equal(t, "sub_123", event.SubscriptionID)
}

func TestParseEvent_UnrecognizedTypeStillParses(t *testing.T) {
	payload := []byte(`{
		"id": "evt_5",
		"type": "charge.refunded",
		"created": 1769940400,
		"data": {"object": {"id": "ch_1"}}
	}`)

	event, err := billing.ParseEvent(payload)

	require.NoError(t, err)
	assert.False(t, event.Recognized())
}

func TestParseEvent_MissingCreatedDefaultsToNow(t *testing.T) {
	payload := []byte(`{
		"id": "evt_6",
		"type": "invoice.payment_succeeded",
		"data": {"object": {"subscription": "sub_123"}}
	}`)

	before := time.Now().UTC()
	event, err := billing.ParseEvent(payload)
	after := time.Now().UTC()

	require.NoError(t, err)
	assert.False(t, event.OccurredAt.Before(before))
	assert.False(t, event.OccurredAt.After(after))
}

func TestParseEvent_InvalidPayloads(t *testing.T) {
	cases := []struct {
		name    string
		payload string
	}{
		{"not json", "this is not json"},
		{"missing type", `{"id": "evt_7", "created": 1769940500, "data": {"object": {}}}`},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := billing.ParseEvent([]byte(tc.payload))
			assert.Error(t, err)
		})
	}
}
