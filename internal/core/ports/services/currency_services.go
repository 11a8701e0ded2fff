package services

import (
	"context"

	"github.com/spendwise/spendwise_app/internal/core/domain"
	"github.com/spendwise/spendwise_app/internal/dto"
)

// CurrencySvcFacade is the single source of truth for currency metadata,
// conversion and display formatting.
type CurrencySvcFacade interface {
	// GetRates returns the cached rate table, refreshing it from the external
	// source when the TTL has elapsed. A failed refresh yields the stale
	// table, never an error.
	GetRates(ctx context.Context) domain.RateTable

	// RatesFor re-derives the table relative to the requested base, optionally
	// filtered to target codes. Fails when the base is unsupported.
	RatesFor(ctx context.Context, base string, targets []string) (map[string]float64, error)

	// Convert converts amount between two supported currencies through the
	// base unit. Identity when from == to.
	Convert(ctx context.Context, amount float64, from, to string) (float64, error)

	// GetExchangeRate returns the multiplicative factor from one currency to
	// another; exactly 1 when from == to.
	GetExchangeRate(ctx context.Context, from, to string) (float64, error)

	// Format renders an amount with locale-aware currency formatting, falling
	// back to symbol + two decimals. Never fails.
	Format(amount float64, currencyCode, locale string) string

	// IsValidCurrency is the membership test applied at every external input
	// boundary before conversion or formatting is attempted.
	IsValidCurrency(code string) bool

	GetCurrencyByCode(code string) (*domain.Currency, error)

	// GetCurrencyOptions enumerates the supported set in declaration order.
	GetCurrencyOptions() []dto.CurrencyOption
}
