package services

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/spendwise/spendwise_app/internal/core/domain"
)

// HTTPRateSource fetches exchange rates from an external rate provider that
// returns a JSON body of the form {"base": "USD", "rates": {"EUR": 0.85, ...}}.
type HTTPRateSource struct {
	url    string
	client *http.Client
}

// NewHTTPRateSource creates a rate source hitting the given endpoint.
func NewHTTPRateSource(url string) *HTTPRateSource {
	return &HTTPRateSource{
		url:    url,
		client: &http.Client{Timeout: 10 * time.Second},
	}
}

var _ RateSource = (*HTTPRateSource)(nil)

type rateSourceResponse struct {
	Base  string             `json:"base"`
	Rates map[string]float64 `json:"rates"`
}

// FetchRates retrieves the latest rates, filtered down to the supported
// currency set.
func (s *HTTPRateSource) FetchRates(ctx context.Context) (map[string]float64, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build rate source request: %w", err)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("rate source request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("rate source returned status %d", resp.StatusCode)
	}

	var body rateSourceResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("failed to decode rate source response: %w", err)
	}
	if len(body.Rates) == 0 {
		return nil, fmt.Errorf("rate source response contained no rates")
	}

	rates := make(map[string]float64, len(domain.SupportedCurrencies))
	for _, c := range domain.SupportedCurrencies {
		if rate, ok := body.Rates[c.CurrencyCode]; ok && rate > 0 {
			rates[c.CurrencyCode] = rate
		}
	}
	if len(rates) == 0 {
		return nil, fmt.Errorf("rate source response contained no supported currencies")
	}

	return rates, nil
}
