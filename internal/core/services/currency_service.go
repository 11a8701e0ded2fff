package services

import (
	"context"
	"fmt"
	"strconv"
	"sync"
	"time"

	"github.com/spendwise/spendwise_app/internal/apperrors"
	"github.com/spendwise/spendwise_app/internal/core/domain"
	portssvc "github.com/spendwise/spendwise_app/internal/core/ports/services"
	"github.com/spendwise/spendwise_app/internal/dto"
	"github.com/spendwise/spendwise_app/internal/middleware"
	"golang.org/x/text/currency"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// RateSource fetches the latest exchange rates relative to the base currency.
type RateSource interface {
	FetchRates(ctx context.Context) (map[string]float64, error)
}

const defaultRateTTL = time.Hour

// CurrencyService provides currency metadata, conversion and formatting on
// top of a TTL-cached rate table. The cached snapshot is replaced wholesale
// on refresh; readers may observe either the pre- or post-refresh table.
type CurrencyService struct {
	source RateSource
	ttl    time.Duration
	now    func() time.Time

	mu    sync.RWMutex
	table domain.RateTable
}

// CurrencyServiceOption configures a CurrencyService.
type CurrencyServiceOption func(*CurrencyService)

// WithRateTTL overrides the refresh interval of the rate cache.
func WithRateTTL(ttl time.Duration) CurrencyServiceOption {
	return func(s *CurrencyService) {
		s.ttl = ttl
	}
}

// WithClock injects the time source, used by tests to control staleness.
func WithClock(now func() time.Time) CurrencyServiceOption {
	return func(s *CurrencyService) {
		s.now = now
	}
}

// NewCurrencyService creates a new CurrencyService. The cache starts out with
// the compiled-in seed rates and a zero fetch time, so the first read
// attempts a refresh.
func NewCurrencyService(source RateSource, options ...CurrencyServiceOption) *CurrencyService {
	svc := &CurrencyService{
		source: source,
		ttl:    defaultRateTTL,
		now:    time.Now,
		table:  domain.RateTable{Rates: domain.SeedRates()},
	}
	for _, option := range options {
		option(svc)
	}
	return svc
}

var _ portssvc.CurrencySvcFacade = (*CurrencyService)(nil)

// GetRates returns the cached table if it is younger than the TTL, otherwise
// attempts a refresh from the external source. A failed refresh returns the
// stale table: staleness is never an error.
func (s *CurrencyService) GetRates(ctx context.Context) domain.RateTable {
	now := s.now()

	s.mu.RLock()
	table := s.table
	s.mu.RUnlock()

	if !table.Stale(now, s.ttl) {
		return table
	}

	rates, err := s.source.FetchRates(ctx)
	if err != nil {
		middleware.GetLoggerFromCtx(ctx).Warn("Exchange rate refresh failed, serving cached rates",
			"error", err.Error(), "fetchedAt", table.FetchedAt)
		return table
	}

	// The base currency's own rate is pinned to 1 regardless of what the
	// source reports.
	rates[domain.BaseCurrencyCode] = 1
	fresh := domain.RateTable{Rates: rates, FetchedAt: now}

	s.mu.Lock()
	s.table = fresh
	s.mu.Unlock()

	return fresh
}

// Convert converts amount from one supported currency to another through the
// base unit. from == to is an identity, avoiding floating rounding.
func (s *CurrencyService) Convert(ctx context.Context, amount float64, from, to string) (float64, error) {
	if from == to {
		return amount, nil
	}

	table := s.GetRates(ctx)
	fromRate, err := s.rateFor(table, from)
	if err != nil {
		return 0, err
	}
	toRate, err := s.rateFor(table, to)
	if err != nil {
		return 0, err
	}

	return amount / fromRate * toRate, nil
}

// GetExchangeRate returns the multiplicative factor from one currency to
// another: exactly 1 for identical codes, (1/rate(from))*rate(to) otherwise.
func (s *CurrencyService) GetExchangeRate(ctx context.Context, from, to string) (float64, error) {
	if from == to {
		return 1, nil
	}

	table := s.GetRates(ctx)
	fromRate, err := s.rateFor(table, from)
	if err != nil {
		return 0, err
	}
	toRate, err := s.rateFor(table, to)
	if err != nil {
		return 0, err
	}

	return (1 / fromRate) * toRate, nil
}

// RatesFor re-derives the cached base-relative table against the requested
// base currency, optionally filtered to target codes.
func (s *CurrencyService) RatesFor(ctx context.Context, base string, targets []string) (map[string]float64, error) {
	table := s.GetRates(ctx)
	baseRate, err := s.rateFor(table, base)
	if err != nil {
		return nil, err
	}

	out := make(map[string]float64)
	if len(targets) > 0 {
		for _, code := range targets {
			if rate, ok := table.Rates[code]; ok {
				out[code] = rate / baseRate
			}
		}
		return out, nil
	}

	for code, rate := range table.Rates {
		out[code] = rate / baseRate
	}
	return out, nil
}

// Format renders the amount with locale-aware currency formatting. When the
// locale or currency is unknown to the formatter it falls back to
// symbol + two decimals. It never fails.
func (s *CurrencyService) Format(amount float64, currencyCode, locale string) string {
	info, ok := domain.CurrencyByCode(currencyCode)
	if !ok {
		// Unknown code should have been rejected upstream; render something
		// rather than panic.
		return currencyCode + " " + strconv.FormatFloat(amount, 'f', 2, 64)
	}

	if locale == "" {
		locale = "en-US"
	}

	tag, err := language.Parse(locale)
	if err != nil {
		return formatFallback(info, amount)
	}
	unit, err := currency.ParseISO(currencyCode)
	if err != nil {
		return formatFallback(info, amount)
	}

	p := message.NewPrinter(tag)
	return p.Sprintf("%v", currency.Symbol(unit.Amount(amount)))
}

func formatFallback(info domain.Currency, amount float64) string {
	return info.Symbol + strconv.FormatFloat(amount, 'f', 2, 64)
}

// IsValidCurrency reports membership in the fixed supported set.
func (s *CurrencyService) IsValidCurrency(code string) bool {
	_, ok := domain.CurrencyByCode(code)
	return ok
}

// GetCurrencyByCode retrieves a supported currency's metadata.
func (s *CurrencyService) GetCurrencyByCode(code string) (*domain.Currency, error) {
	info, ok := domain.CurrencyByCode(code)
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	return &info, nil
}

// GetCurrencyOptions enumerates the supported currencies for UI selects, in
// declaration order.
func (s *CurrencyService) GetCurrencyOptions() []dto.CurrencyOption {
	options := make([]dto.CurrencyOption, len(domain.SupportedCurrencies))
	for i, c := range domain.SupportedCurrencies {
		options[i] = dto.CurrencyOption{
			Value: c.CurrencyCode,
			Label: fmt.Sprintf("%s - %s", c.CurrencyCode, c.Name),
		}
	}
	return options
}

// rateFor resolves one code against the table, failing loudly on unknown
// codes instead of treating them as rate zero.
func (s *CurrencyService) rateFor(table domain.RateTable, code string) (float64, error) {
	rate, ok := table.Rates[code]
	if !ok || rate == 0 {
		return 0, fmt.Errorf("%w: unsupported currency code '%s'", apperrors.ErrValidation, code)
	}
	return rate, nil
}
