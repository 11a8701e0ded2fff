package dto

import (
	"time"

	"github.com/spendwise/spendwise_app/internal/core/domain"
)

// CurrencyResponse defines the data returned for a supported currency.
type CurrencyResponse struct {
	CurrencyCode string `json:"currencyCode"`
	Symbol       string `json:"symbol"`
	Name         string `json:"name"`
}

// ToCurrencyResponse converts a domain.Currency to CurrencyResponse DTO
func ToCurrencyResponse(curr *domain.Currency) CurrencyResponse {
	return CurrencyResponse{
		CurrencyCode: curr.CurrencyCode,
		Symbol:       curr.Symbol,
		Name:         curr.Name,
	}
}

// CurrencyOption is one entry of the UI currency picker.
type CurrencyOption struct {
	Value string `json:"value"` // currency code
	Label string `json:"label"` // "USD - US Dollar"
}

// RatesQuery defines the query parameters of the public rates endpoint.
type RatesQuery struct {
	Base       string `form:"base,default=USD"`
	Currencies string `form:"currencies"` // comma-separated target codes
}

// RatesResponse returns rates re-based to the requested currency.
type RatesResponse struct {
	Base      string             `json:"base"`
	Rates     map[string]float64 `json:"rates"`
	Timestamp int64              `json:"timestamp"`
}

// NewRatesResponse stamps a rates payload with the current time in epoch millis.
func NewRatesResponse(base string, rates map[string]float64, now time.Time) RatesResponse {
	return RatesResponse{Base: base, Rates: rates, Timestamp: now.UnixMilli()}
}
