package portfel

import "github.com/shopspring/decimal"

// AlertKind discriminates threshold alerts.
type AlertKind int

const (
	// TakeProfit signals a lot whose price rose at least 14.99% above entry.
	TakeProfit AlertKind = iota
	// StopLoss signals a lot whose price fell 10% or more below entry.
	StopLoss
)

func (k AlertKind) String() string {
	switch k {
	case TakeProfit:
		return "take-profit"
	case StopLoss:
		return "stop-loss"
	default:
		return "unknown"
	}
}

// Thresholds of the scanner, as price change ratios relative to entry.
const (
	takeProfitThreshold = 0.1499 // >= +14.99%
	stopLossThreshold   = -0.10  // <= -10%
)

// Alert is an advisory signal on a single open lot.
type Alert struct {
	Kind          AlertKind
	Ticker        string
	Quantity      Quantity // remaining lot quantity
	EntryPrice    Money
	EntryDate     Date
	CurrentPrice  Money
	PercentChange Percent // change vs entry price, e.g. +16.0
}

// ScanThresholds evaluates every open lot against the fixed take-profit and
// stop-loss thresholds. Each lot is evaluated independently against its own
// entry price, so a ticker holding lots on both sides of the thresholds can
// emit several alerts; a single lot emits at most one (the thresholds are
// mutually exclusive by sign). Lots whose ticker has no usable reference
// price are skipped.
func ScanThresholds(book *Book, prices *PriceTable, asOf Date) []Alert {
	var alerts []Alert
	for ticker := range book.Tickers() {
		price, ok := prices.Price(ticker, asOf)
		if !ok {
			continue
		}
		for _, lot := range book.OpenLots(ticker) {
			if !lot.Quantity.IsPositive() {
				continue
			}
			change := priceChange(lot.Price.Decimal(), price)

			var kind AlertKind
			switch {
			case change >= takeProfitThreshold:
				kind = TakeProfit
			case change <= stopLossThreshold:
				kind = StopLoss
			default:
				continue
			}

			alerts = append(alerts, Alert{
				Kind:          kind,
				Ticker:        ticker,
				Quantity:      lot.Quantity,
				EntryPrice:    lot.Price,
				EntryDate:     lot.Date,
				CurrentPrice:  M(price, lot.Price.Currency()),
				PercentChange: Percent(change * 100),
			})
		}
	}
	return alerts
}

// priceChange is (current - entry) / entry as a plain ratio.
func priceChange(entry, current decimal.Decimal) float64 {
	if entry.IsZero() {
		return 0
	}
	return current.Sub(entry).Div(entry).InexactFloat64()
}
