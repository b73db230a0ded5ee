package portfel

import (
	"math"
	"sort"
)

// CashFlow is one dated flow of the money-weighted return series. Outflows
// (money committed) are negative, inflows (money realized, including the
// final unrealized market value as a synthetic terminal inflow) are positive.
// Amounts are expressed in the base currency.
type CashFlow struct {
	Date   Date
	Amount Money
}

// Bisection bounds and termination for the XIRR root search. The NPV function
// is monotonically decreasing in the rate when outflows precede inflows, so a
// plain bisection converges.
const (
	xirrLow        = -0.999
	xirrHigh       = 10.0
	xirrIterations = 100
	xirrTolerance  = 1e-6
)

// Xirr computes the money-weighted annualized return of an irregular cash
// flow series by bisection. It returns the periodic rate (e.g. 0.10 for +10%)
// and true, or (0, false) when the series admits no solution (an empty
// series, or flows all of the same sign). It never fabricates a value.
func Xirr(flows []CashFlow) (float64, bool) {
	if len(flows) == 0 {
		return 0, false
	}

	ordered := make([]CashFlow, len(flows))
	copy(ordered, flows)
	sort.SliceStable(ordered, func(i, j int) bool { return ordered[i].Date.Before(ordered[j].Date) })
	d0 := ordered[0].Date

	// A root requires flows of both signs.
	var hasInflow, hasOutflow bool
	for _, cf := range ordered {
		if cf.Amount.IsPositive() {
			hasInflow = true
		}
		if cf.Amount.IsNegative() {
			hasOutflow = true
		}
	}
	if !hasInflow || !hasOutflow {
		return 0, false
	}

	npv := func(rate float64) float64 {
		var sum float64
		for _, cf := range ordered {
			years := float64(cf.Date.DaysSince(d0)) / 365.0
			sum += cf.Amount.AsFloat() / math.Pow(1+rate, years)
		}
		return sum
	}

	low, high := xirrLow, xirrHigh
	for range xirrIterations {
		mid := (low + high) / 2
		val := npv(mid)
		if math.Abs(val) <= xirrTolerance {
			return mid, true
		}
		if val > 0 {
			low = mid
		} else {
			high = mid
		}
	}
	return 0, false
}

// Snapshot is one valuation observation at a period boundary, with the net
// external cash flow of the sub-period ending at it. Values are in the base
// currency.
type Snapshot struct {
	Date    Date
	Value   Money
	NetFlow Money // external flow during the sub-period ending at Date
}

// TimeWeighted computes the time-weighted return series over ordered
// snapshots. Each sub-period return is (end - flow - start) / (start + flow),
// defined as 0 when the denominator is 0; the first snapshot seeds the chain
// with 0 since there is no prior period. The returned series holds the
// cumulative geometric return (1+r1)(1+r2)...-1 after each snapshot, as percentages.
func TimeWeighted(snapshots []Snapshot) []Percent {
	if len(snapshots) == 0 {
		return nil
	}

	series := make([]Percent, 0, len(snapshots))
	chain := 1.0
	series = append(series, 0)

	for i := 1; i < len(snapshots); i++ {
		start := snapshots[i-1].Value.AsFloat()
		end := snapshots[i].Value.AsFloat()
		flow := snapshots[i].NetFlow.AsFloat()

		var r float64
		if denom := start + flow; denom != 0 {
			r = (end - flow - start) / denom
		}
		chain *= 1 + r
		series = append(series, Percent((chain-1)*100))
	}
	return series
}
