package domain

import "time"

// BaseCurrencyCode is the reference unit all cached exchange rates are
// expressed against. Its own rate is always exactly 1.
const BaseCurrencyCode = "USD"

// Currency describes one supported currency.
type Currency struct {
	CurrencyCode string `json:"currencyCode"` // e.g. "USD"
	Symbol       string `json:"symbol"`       // e.g. "$"
	Name         string `json:"name"`         // e.g. "US Dollar"
}

// SupportedCurrencies is the closed set of currencies the application accepts.
// Order is significant: UI option lists follow declaration order.
var SupportedCurrencies = []Currency{
	{CurrencyCode: "USD", Symbol: "$", Name: "US Dollar"},
	{CurrencyCode: "EUR", Symbol: "€", Name: "Euro"},
	{CurrencyCode: "GBP", Symbol: "£", Name: "British Pound"},
	{CurrencyCode: "JPY", Symbol: "¥", Name: "Japanese Yen"},
	{CurrencyCode: "CAD", Symbol: "C$", Name: "Canadian Dollar"},
	{CurrencyCode: "AUD", Symbol: "A$", Name: "Australian Dollar"},
	{CurrencyCode: "CHF", Symbol: "CHF", Name: "Swiss Franc"},
	{CurrencyCode: "CNY", Symbol: "¥", Name: "Chinese Yuan"},
	{CurrencyCode: "INR", Symbol: "₹", Name: "Indian Rupee"},
	{CurrencyCode: "BRL", Symbol: "R$", Name: "Brazilian Real"},
	{CurrencyCode: "PKR", Symbol: "₨", Name: "Pakistani Rupee"},
}

// CurrencyByCode looks a currency up in the supported set.
func CurrencyByCode(code string) (Currency, bool) {
	for _, c := range SupportedCurrencies {
		if c.CurrencyCode == code {
			return c, true
		}
	}
	return Currency{}, false
}

// RateTable is an immutable snapshot of exchange rates relative to
// BaseCurrencyCode. Snapshots are replaced wholesale on refresh, never
// mutated in place.
type RateTable struct {
	Rates     map[string]float64 `json:"rates"`
	FetchedAt time.Time          `json:"fetchedAt"`
}

// Stale reports whether the snapshot is older than ttl at the given instant.
func (t RateTable) Stale(now time.Time, ttl time.Duration) bool {
	return now.Sub(t.FetchedAt) >= ttl
}

// SeedRates returns the compiled-in rate table used until the first
// successful refresh from the external rate source.
func SeedRates() map[string]float64 {
	return map[string]float64{
		"USD": 1, // Base currency
		"EUR": 0.85,
		"GBP": 0.73,
		"JPY": 110.0,
		"CAD": 1.25,
		"AUD": 1.35,
		"CHF": 0.92,
		"CNY": 6.45,
		"INR": 74.5,
		"BRL": 5.2,
		"PKR": 278.5,
	}
}
