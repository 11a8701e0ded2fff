package billing_test

import (
	"fmt"
	"testing"
	"time"

	"github.com/spendwise/spendwise_app/internal/platform/billing"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "whsec_test_secret"

func TestVerifySignature_Valid(t *testing.T) {
	payload := []byte(`{"type":"invoice.payment_succeeded"}`)
	now := time.Date(2026, 4, 1, 10, 0, 0, 0, time.UTC)
	header := billing.SignatureHeaderValue(payload, now.Unix(), testSecret)

	err := billing.VerifySignature(payload, header, testSecret, billing.DefaultSignatureTolerance, now)

	assert.NoError(t, err)
}

func TestVerifySignature_TamperedPayload(t *testing.T) {
	payload := []byte(`{"type":"invoice.payment_succeeded"}`)
	now := time.Date(2026, 4, 1, 10, 0, 0, 0, time.UTC)
	header := billing.SignatureHeaderValue(payload, now.Unix(), testSecret)

	tampered := []byte(`{"type":"checkout.session.completed"}`)
	err := billing.VerifySignature(tampered, header, testSecret, billing.DefaultSignatureTolerance, now)

	require.Error(t, err)
	assert.ErrorIs(t, err, billing.ErrInvalidSignature)
}

func TestVerifySignature_WrongSecret(t *testing.T) {
	payload := []byte(`{}`)
	now := time.Date(2026, 4, 1, 10, 0, 0, 0, time.UTC)
	header := billing.SignatureHeaderValue(payload, now.Unix(), "whsec_other")

	err := billing.VerifySignature(payload, header, testSecret, billing.DefaultSignatureTolerance, now)

	assert.ErrorIs(t, err, billing.ErrInvalidSignature)
}

func TestVerifySignature_TimestampOutsideTolerance(t *testing.T) {
	payload := []byte(`{}`)
	now := time.Date(2026, 4, 1, 10, 0, 0, 0, time.UTC)

	// Too old: a captured payload replayed later must be rejected.
	old := billing.SignatureHeaderValue(payload, now.Add(-6*time.Minute).Unix(), testSecret)
	assert.ErrorIs(t, billing.VerifySignature(payload, old, testSecret, billing.DefaultSignatureTolerance, now), billing.ErrInvalidSignature)

	// Too far in the future, beyond clock skew.
	future := billing.SignatureHeaderValue(payload, now.Add(6*time.Minute).Unix(), testSecret)
	assert.ErrorIs(t, billing.VerifySignature(payload, future, testSecret, billing.DefaultSignatureTolerance, now), billing.ErrInvalidSignature)

	// Slight skew within tolerance is accepted.
	skewed := billing.SignatureHeaderValue(payload, now.Add(-time.Minute).Unix(), testSecret)
	assert.NoError(t, billing.VerifySignature(payload, skewed, testSecret, billing.DefaultSignatureTolerance, now))
}

func TestVerifySignature_MalformedHeaders(t *testing.T) {
	payload := []byte(`{}`)
	now := time.Date(2026, 4, 1, 10, 0, 0, 0, time.UTC)
	sig := billing.ComputeSignature(payload, now.Unix(), testSecret)

	cases := []struct {
		name   string
		header string
	}{
		{"empty", ""},
		{"missing signature", "t=1769940000"},
		{"missing timestamp", "v1=" + sig},
		{"garbage timestamp", "t=notanumber,v1=" + sig},
		{"no key value pairs", "complete nonsense"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := billing.VerifySignature(payload, tc.header, testSecret, billing.DefaultSignatureTolerance, now)
			assert.ErrorIs(t, err, billing.ErrInvalidSignature)
		})
	}
}

func TestVerifySignature_EmptySecretRejected(t *testing.T) {
	payload := []byte(`{}`)
	now := time.Date(2026, 4, 1, 10, 0, 0, 0, time.UTC)
	header := billing.SignatureHeaderValue(payload, now.Unix(), "")

	err := billing.VerifySignature(payload, header, "", billing.DefaultSignatureTolerance, now)

	assert.ErrorIs(t, err, billing.ErrInvalidSignature)
}

func TestVerifySignature_MultipleSignatureCandidates(t *testing.T) {
	payload := []byte(`{"id":"evt_1"}`)
	now := time.Date(2026, 4, 1, 10, 0, 0, 0, time.UTC)
	valid := billing.ComputeSignature(payload, now.Unix(), testSecret)

	// Providers may send several v1 entries during secret rotation; one
	// matching signature is enough.
	header := fmt.Sprintf("t=%d,v1=deadbeef,v1=%s", now.Unix(), valid)

	assert.NoError(t, billing.VerifySignature(payload, header, testSecret, billing.DefaultSignatureTolerance, now))
}
