package portfel

import (
	"strings"

	"github.com/shopspring/decimal"
)

// JurisdictionFunc resolves the jurisdiction country code of an instrument
// (typically the ISIN prefix), supplied by an external identifier-lookup
// service. It returns the code and true, or ("", false) when unknown.
type JurisdictionFunc func(ticker, venue string) (string, bool)

// Domestic market handling: gains on instruments of the base jurisdiction, or
// traded on a domestic venue, are not taxed in this model.
const domesticJurisdiction = "KZ"

var domesticVenues = map[string]bool{"KASE": true, "AIX": true}

// taxRate is the flat capital-gains rate applied to sell proceeds.
var taxRate = decimal.NewFromFloat(0.10)

// TaxMatch is one matched buy/sell pair liable for capital-gains tax within a
// reporting year.
type TaxMatch struct {
	Ticker       string
	Jurisdiction string // country code, empty if the lookup failed
	Venue        string
	Quantity     Quantity
	BuyPrice     Money
	BuyDate      Date
	SellPrice    Money
	SellDate     Date
	RealizedGain Money // proceeds minus cost basis, trade currency
	Proceeds     Money // sell proceeds converted to the base currency
	TaxDue       Money // flat rate applied to Proceeds, base currency
}

// TaxReport is the outcome of one reporting run.
type TaxReport struct {
	Year         int
	BaseCurrency string
	Matches      []TaxMatch
	Skipped      []Skip // pairs excluded for missing data, not by rule
}

// TotalTax returns the sum of tax due across all matches.
func (r *TaxReport) TotalTax() Money {
	total := M(0, r.BaseCurrency)
	for _, m := range r.Matches {
		total = total.Add(m.TaxDue)
	}
	return total
}

// BuildTaxReport computes the capital-gains tax liability for a year.
//
// It runs its own FIFO pass over the complete transaction history up to and
// including the end of the target year (never over a pre-filtered year slice,
// which would corrupt the cost basis ordering) and then keeps only the
// matched pairs whose sell date falls within the year. Pairs on a domestic
// market are excluded from liability entirely; among the rest only pairs with
// a positive realized gain are taxed (losses are not offset against gains).
// Tax due is a flat 10% of the sell proceeds converted to the base currency
// at the sell-date rate; a pair whose rate is unavailable is excluded and
// reported in Skipped rather than valued at a default.
func BuildTaxReport(txs []Transaction, year int, jurisdiction JurisdictionFunc, rates *RateTable) (*TaxReport, error) {
	yearEnd := YearRange(year).To
	var history []Transaction
	for _, tx := range txs {
		if !tx.Date.After(yearEnd) {
			history = append(history, tx)
		}
	}

	book, err := Ingest(history)
	if err != nil {
		return nil, err
	}

	report := &TaxReport{Year: year, BaseCurrency: rates.Base()}
	for _, pair := range book.Matches {
		if pair.SellDate.Year() != year {
			continue
		}
		code, known := jurisdiction(pair.Ticker, pair.Venue)
		if isDomestic(code, pair.Venue) {
			continue
		}
		gain := pair.RealizedGain()
		if !gain.IsPositive() {
			continue
		}

		proceeds, ok := rates.Convert(pair.SellProceeds(), pair.SellDate)
		if !ok {
			report.Skipped = append(report.Skipped, Skip{
				Ticker: pair.Ticker,
				Reason: SkipNoRate + " for " + pair.SellPrice.Currency() + " on " + pair.SellDate.String(),
			})
			continue
		}

		match := TaxMatch{
			Ticker:       pair.Ticker,
			Venue:        pair.Venue,
			Quantity:     pair.Quantity,
			BuyPrice:     pair.BuyPrice,
			BuyDate:      pair.BuyDate,
			SellPrice:    pair.SellPrice,
			SellDate:     pair.SellDate,
			RealizedGain: gain,
			Proceeds:     proceeds,
			TaxDue:       proceeds.MulRate(taxRate, rates.Base()),
		}
		if known {
			match.Jurisdiction = code
		}
		report.Matches = append(report.Matches, match)
	}
	return report, nil
}

// isDomestic reports whether a match belongs to the untaxed domestic market.
// An unknown jurisdiction is treated as foreign unless the venue itself is
// domestic.
func isDomestic(code, venue string) bool {
	return strings.HasPrefix(code, domesticJurisdiction) || domesticVenues[strings.ToUpper(venue)]
}
