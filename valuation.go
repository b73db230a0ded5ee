package portfel

import (
	"fmt"
	"sort"
)

// Skip reasons recorded when a ticker is excluded from valuation totals.
const (
	SkipNoPrice = "no reference price"
	SkipNoRate  = "no exchange rate"
)

// Skip identifies a ticker excluded from all aggregates, with the reason.
type Skip struct {
	Ticker string
	Reason string
}

func (s Skip) String() string { return fmt.Sprintf("%s: %s", s.Ticker, s.Reason) }

// ValuationRecord is the computed state of one ticker at one point in time.
// Monetary figures are in the base currency. It is recomputed on each
// valuation request and never persisted.
type ValuationRecord struct {
	Ticker         string
	Category       string
	Currency       string // home currency of the instrument
	Quantity       Quantity
	InvestedCost   Money
	MarketValue    Money
	UnrealizedGain Money
	GainPercent    Percent
	HoldingDays    int // days since the earliest open lot
}

// CategoryTotal aggregates the valuation records of one category.
type CategoryTotal struct {
	Category       string
	InvestedCost   Money
	MarketValue    Money
	UnrealizedGain Money
	Share          Percent    // share of the portfolio market value
	Flows          []CashFlow // cash-flow series of the category, for XIRR
}

// Valuation is the complete portfolio state at a point in time: per-ticker
// records, per-category and portfolio totals, the cash-flow series feeding
// XIRR, and the list of tickers excluded for missing data.
type Valuation struct {
	Date           Date
	BaseCurrency   string
	Records        []ValuationRecord
	Categories     []CategoryTotal
	InvestedCost   Money
	MarketValue    Money
	UnrealizedGain Money
	Flows          []CashFlow // portfolio-wide series, terminal inflow included
	Skipped        []Skip
	Book           *Book // the FIFO book the valuation was derived from
}

// Record returns the valuation record of a ticker, or nil.
func (v *Valuation) Record(ticker string) *ValuationRecord {
	for i := range v.Records {
		if v.Records[i].Ticker == ticker {
			return &v.Records[i]
		}
	}
	return nil
}

// Category returns the total of a category, or nil.
func (v *Valuation) Category(name string) *CategoryTotal {
	for i := range v.Categories {
		if v.Categories[i].Category == name {
			return &v.Categories[i]
		}
	}
	return nil
}

// ValuePortfolio ingests the transaction log, then values every ticker with a
// positive open position as of the given date.
//
// For each ticker the invested cost is the sum over open lots of
// quantity * entry price * rate(entry currency, entry date); the market value
// is open quantity * reference price * rate(home currency, asOf). A ticker
// with no usable reference price, or no usable exchange rate for any of the
// conversions, is excluded from every aggregate and listed in Skipped. It is
// never silently valued at zero or at a default rate of 1.
func ValuePortfolio(txs []Transaction, refs *Instruments, prices *PriceTable, rates *RateTable, asOf Date) (*Valuation, error) {
	book, err := Ingest(txs)
	if err != nil {
		return nil, err
	}

	base := rates.Base()
	valuation := &Valuation{
		Date:           asOf,
		BaseCurrency:   base,
		InvestedCost:   M(0, base),
		MarketValue:    M(0, base),
		UnrealizedGain: M(0, base),
		Book:           book,
	}

	txsByTicker := make(map[string][]Transaction)
	for _, tx := range SortTransactions(txs) {
		txsByTicker[tx.Ticker] = append(txsByTicker[tx.Ticker], tx)
	}

	categories := make(map[string]*CategoryTotal)

	for ticker := range book.Tickers() {
		lots := book.OpenLots(ticker)
		position := book.Position(ticker)
		if !position.IsPositive() {
			continue
		}

		category, home := "uncategorized", lots[0].Price.Currency()
		if ref, ok := refs.Get(ticker); ok {
			category, home = ref.Category(), ref.Currency()
		}

		price, ok := prices.Price(ticker, asOf)
		if !ok {
			valuation.Skipped = append(valuation.Skipped, Skip{Ticker: ticker, Reason: SkipNoPrice})
			continue
		}
		homeRate, ok := rates.Rate(home, asOf)
		if !ok {
			valuation.Skipped = append(valuation.Skipped, Skip{Ticker: ticker, Reason: SkipNoRate + " for " + home})
			continue
		}

		// Invested cost of the surviving lots, each converted at its own
		// entry date.
		invested := M(0, base)
		rateGap := false
		for _, lot := range lots {
			cost, ok := rates.Convert(lot.Cost(), lot.Date)
			if !ok {
				valuation.Skipped = append(valuation.Skipped, Skip{Ticker: ticker, Reason: SkipNoRate + " for " + lot.Price.Currency() + " on " + lot.Date.String()})
				rateGap = true
				break
			}
			invested = invested.Add(cost)
		}
		if rateGap {
			continue
		}

		// Cash-flow series of the ticker: trade flows at their own dates,
		// plus the terminal market value inflow.
		marketValue := M(price, home).Mul(position).MulRate(homeRate, base)
		flows, ok := tickerFlows(txsByTicker[ticker], rates)
		if !ok {
			valuation.Skipped = append(valuation.Skipped, Skip{Ticker: ticker, Reason: SkipNoRate})
			continue
		}
		flows = append(flows, CashFlow{Date: asOf, Amount: marketValue})

		gain := marketValue.Sub(invested)
		record := ValuationRecord{
			Ticker:         ticker,
			Category:       category,
			Currency:       home,
			Quantity:       position,
			InvestedCost:   invested,
			MarketValue:    marketValue,
			UnrealizedGain: gain,
			GainPercent:    gainPercent(gain, invested),
		}
		if earliest, ok := book.EarliestEntry(ticker); ok {
			record.HoldingDays = asOf.DaysSince(earliest)
		}
		valuation.Records = append(valuation.Records, record)

		cat, ok := categories[category]
		if !ok {
			cat = &CategoryTotal{
				Category:       category,
				InvestedCost:   M(0, base),
				MarketValue:    M(0, base),
				UnrealizedGain: M(0, base),
			}
			categories[category] = cat
		}
		cat.InvestedCost = cat.InvestedCost.Add(invested)
		cat.MarketValue = cat.MarketValue.Add(marketValue)
		cat.UnrealizedGain = cat.UnrealizedGain.Add(gain)
		cat.Flows = append(cat.Flows, flows...)

		valuation.InvestedCost = valuation.InvestedCost.Add(invested)
		valuation.MarketValue = valuation.MarketValue.Add(marketValue)
		valuation.UnrealizedGain = valuation.UnrealizedGain.Add(gain)
		valuation.Flows = append(valuation.Flows, flows...)
	}

	for _, cat := range categories {
		if !valuation.MarketValue.IsZero() {
			cat.Share = Percent(cat.MarketValue.AsFloat() / valuation.MarketValue.AsFloat() * 100)
		}
		valuation.Categories = append(valuation.Categories, *cat)
	}
	sort.Slice(valuation.Categories, func(i, j int) bool {
		return valuation.Categories[i].Category < valuation.Categories[j].Category
	})
	sort.Slice(valuation.Skipped, func(i, j int) bool {
		return valuation.Skipped[i].Ticker < valuation.Skipped[j].Ticker
	})

	return valuation, nil
}

// gainPercent is unrealized gain over invested cost, defined as 0 when the
// cost is 0 so that a free position never faults.
func gainPercent(gain, invested Money) Percent {
	if invested.IsZero() {
		return 0
	}
	return Percent(gain.AsFloat() / invested.AsFloat() * 100)
}

// tickerFlows converts the trade flows of one ticker into the base currency
// at their trade-date rates: buys are outflows, sells are inflows. It returns
// false when a conversion rate is missing.
func tickerFlows(txs []Transaction, rates *RateTable) ([]CashFlow, bool) {
	var flows []CashFlow
	for _, tx := range txs {
		amount, ok := rates.Convert(tx.Amount(), tx.Date)
		if !ok {
			return nil, false
		}
		if tx.IsBuy() {
			amount = amount.Neg()
		}
		flows = append(flows, CashFlow{Date: tx.Date, Amount: amount})
	}
	return flows, true
}
