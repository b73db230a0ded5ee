package portfel

import (
	"github.com/shopspring/decimal"
)

// BaseCurrency is the default accounting reference currency.
const BaseCurrency = "KZT"

// RateSnapshot is one exchange-rate observation for a currency on a date, as
// supplied by the external rate service.
type RateSnapshot struct {
	Currency string          // ISO currency code
	Date     Date            // observation date
	Rate     decimal.Decimal // units of base currency per unit of Currency
	Change   decimal.Decimal // day-over-day change, informational
}

// RateTable resolves exchange rates against the base currency by date. The
// base currency's rate is always 1; for every other currency the nearest
// snapshot at or before the requested date is used. A currency with no usable
// snapshot resolves to (0, false), never a silent default, so callers can
// record the gap as a data-quality warning.
type RateTable struct {
	base   string
	series map[string]*History[decimal.Decimal]
}

// NewRateTable creates an empty rate table for the given base currency. An
// empty base defaults to BaseCurrency.
func NewRateTable(base string) *RateTable {
	if base == "" {
		base = BaseCurrency
	}
	return &RateTable{base: base, series: make(map[string]*History[decimal.Decimal])}
}

// Base returns the accounting reference currency.
func (r *RateTable) Base() string { return r.base }

// Append records a snapshot. An existing rate on the same date is overwritten.
func (r *RateTable) Append(snap RateSnapshot) {
	h, ok := r.series[snap.Currency]
	if !ok {
		h = &History[decimal.Decimal]{}
		r.series[snap.Currency] = h
	}
	h.Append(snap.Date, snap.Rate)
}

// Add records a bare (currency, date, rate) observation.
func (r *RateTable) Add(currency string, on Date, rate decimal.Decimal) {
	r.Append(RateSnapshot{Currency: currency, Date: on, Rate: rate})
}

// Rate returns the exchange rate for a currency on a date. The base currency
// is unconditionally (1, true). Other currencies resolve to the most recent
// snapshot at or before the date, or (0, false) when none exists.
func (r *RateTable) Rate(currency string, on Date) (decimal.Decimal, bool) {
	if currency == r.base {
		return decimal.NewFromInt(1), true
	}
	h, ok := r.series[currency]
	if !ok {
		return decimal.Decimal{}, false
	}
	return h.ValueAsOf(on)
}

// Convert converts an amount into the base currency at the rate of the given
// date. It returns (converted, true), or (zero, false) when no rate exists.
func (r *RateTable) Convert(amount Money, on Date) (Money, bool) {
	rate, ok := r.Rate(amount.Currency(), on)
	if !ok {
		return Money{}, false
	}
	return amount.MulRate(rate, r.base), true
}

// Currencies returns the currencies with at least one snapshot.
func (r *RateTable) Currencies() []string {
	currencies := make([]string, 0, len(r.series))
	for cur := range r.series {
		currencies = append(currencies, cur)
	}
	return currencies
}
