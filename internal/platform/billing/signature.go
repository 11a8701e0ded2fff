// Package billing holds the outbound payment-provider client and the inbound
// webhook primitives (signature verification, event parsing). It is the only
// package that speaks the provider's wire formats.
package billing

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// ErrInvalidSignature is returned for any malformed, mismatched or expired
// webhook signature. The caller must reject the request with no side effects.
var ErrInvalidSignature = errors.New("invalid webhook signature")

// DefaultSignatureTolerance bounds the accepted age of a signed timestamp,
// limiting replay of captured payloads.
const DefaultSignatureTolerance = 5 * time.Minute

// SignatureHeader is the canonical name of the webhook signature header.
const SignatureHeader = "Billing-Signature"

// VerifySignature checks a provider webhook signature header of the form
// "t=<unix>,v1=<hex hmac-sha256>" against the raw payload. The signed string
// is "<t>.<payload>" keyed with the shared endpoint secret.
func VerifySignature(payload []byte, header, secret string, tolerance time.Duration, now time.Time) error {
	if secret == "" || header == "" {
		return ErrInvalidSignature
	}

	var timestamp int64
	var signatures []string
	for _, part := range strings.Split(header, ",") {
		kv := strings.SplitN(strings.TrimSpace(part), "=", 2)
		if len(kv) != 2 {
			continue
		}
		switch kv[0] {
		case "t":
			ts, err := strconv.ParseInt(kv[1], 10, 64)
			if err != nil {
				return fmt.Errorf("%w: bad timestamp", ErrInvalidSignature)
			}
			timestamp = ts
		case "v1":
			signatures = append(signatures, kv[1])
		}
	}

	if timestamp == 0 || len(signatures) == 0 {
		return fmt.Errorf("%w: missing timestamp or signature", ErrInvalidSignature)
	}

	age := now.Sub(time.Unix(timestamp, 0))
	if age > tolerance || age < -tolerance {
		return fmt.Errorf("%w: timestamp outside tolerance", ErrInvalidSignature)
	}

	expected := ComputeSignature(payload, timestamp, secret)
	for _, sig := range signatures {
		if hmac.Equal([]byte(sig), []byte(expected)) {
			return nil
		}
	}
	return ErrInvalidSignature
}

// ComputeSignature produces the hex HMAC-SHA256 of "<timestamp>.<payload>".
// Exposed so tests can sign payloads the way the provider does.
func ComputeSignature(payload []byte, timestamp int64, secret string) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(strconv.FormatInt(timestamp, 10)))
	mac.Write([]byte("."))
	mac.Write(payload)
	return hex.EncodeToString(mac.Sum(nil))
}

// SignatureHeaderValue renders a header the verifier accepts. Test helper.
func SignatureHeaderValue(payload []byte, timestamp int64, secret string) string {
	return fmt.Sprintf("t=%d,v1=%s", timestamp, ComputeSignature(payload, timestamp, secret))
}
