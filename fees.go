package portfel

import (
	"strings"

	"github.com/shopspring/decimal"
)

// Brokerage fee schedule. Domestic venues charge a reduced commission and no
// exchange or clearing fees; any other venue is treated as foreign.
var (
	domesticBrokerRate = decimal.NewFromFloat(0.0003) // 0.03% of the trade amount
	foreignBrokerRate  = decimal.NewFromFloat(0.001)  // 0.1% of the trade amount
	clearingPerShare   = decimal.NewFromFloat(0.01)   // per share, buys only
	clearingMinimum    = decimal.NewFromFloat(7.5)
	exchangePerShare   = decimal.NewFromFloat(0.000172) // per share, sells only
)

// CalcFees computes the fee breakdown of a trade per the brokerage schedule,
// in the trade currency. Quantity is taken as absolute.
func CalcFees(venue string, quantity Quantity, price Money) Fees {
	if quantity.IsNegative() {
		quantity = quantity.Neg()
	}
	currency := price.Currency()
	amount := price.Mul(quantity).Decimal()
	qty := quantity.Decimal()

	zero := M(0, currency)
	fees := Fees{Broker: zero, Exchange: zero, Clearing: zero}

	if domesticVenues[strings.ToUpper(venue)] {
		fees.Broker = M(amount.Mul(domesticBrokerRate).Round(2), currency)
		return fees
	}

	fees.Broker = M(amount.Mul(foreignBrokerRate).Round(2), currency)
	if clearing := qty.Mul(clearingPerShare); clearing.LessThan(clearingMinimum) {
		fees.Clearing = M(clearingMinimum, currency)
	} else {
		fees.Clearing = M(clearing.Round(2), currency)
	}
	return fees
}

// CalcSellFees is the sell-side schedule: foreign sells pay a per-share
// exchange fee instead of the clearing fee.
func CalcSellFees(venue string, quantity Quantity, price Money) Fees {
	if quantity.IsNegative() {
		quantity = quantity.Neg()
	}
	currency := price.Currency()
	amount := price.Mul(quantity).Decimal()
	qty := quantity.Decimal()

	zero := M(0, currency)
	fees := Fees{Broker: zero, Exchange: zero, Clearing: zero}

	if domesticVenues[strings.ToUpper(venue)] {
		fees.Broker = M(amount.Mul(domesticBrokerRate).Round(2), currency)
		return fees
	}

	fees.Broker = M(amount.Mul(foreignBrokerRate).Round(2), currency)
	fees.Exchange = M(qty.Mul(exchangePerShare).Round(2), currency)
	return fees
}

// EffectivePrice returns the per-unit price once fees are folded in.
func EffectivePrice(quantity Quantity, price Money, fees Fees) Money {
	if quantity.IsNegative() {
		quantity = quantity.Neg()
	}
	if quantity.IsZero() {
		return M(0, price.Currency())
	}
	total := price.Mul(quantity).Add(fees.Total())
	return M(total.Decimal().Div(quantity.Decimal()).Round(4), price.Currency())
}
