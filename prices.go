package portfel

import (
	"github.com/shopspring/decimal"
)

// PriceTable holds reference prices per ticker, each as a chronological
// history. Prices are supplied by external providers before the engine runs.
type PriceTable struct {
	series map[string]*History[decimal.Decimal]
}

// NewPriceTable returns a new empty price table.
func NewPriceTable() *PriceTable {
	return &PriceTable{series: make(map[string]*History[decimal.Decimal])}
}

// Append records a price observation for a ticker. An existing price on the
// same date is overwritten.
func (p *PriceTable) Append(ticker string, on Date, price decimal.Decimal) {
	h, ok := p.series[ticker]
	if !ok {
		h = &History[decimal.Decimal]{}
		p.series[ticker] = h
	}
	h.Append(on, price)
}

// Price returns the reference price for a ticker as of a date: the most
// recent observation at or before the date, or (zero, false) when the ticker
// has no usable price. A missing price is an expected condition the caller
// surfaces as a partial-result warning, never a zero value.
func (p *PriceTable) Price(ticker string, on Date) (decimal.Decimal, bool) {
	h, ok := p.series[ticker]
	if !ok {
		return decimal.Decimal{}, false
	}
	return h.ValueAsOf(on)
}

// Has reports whether the ticker has at least one price observation.
func (p *PriceTable) Has(ticker string) bool {
	h, ok := p.series[ticker]
	return ok && h.Len() > 0
}
