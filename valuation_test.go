package portfel

import (
	"strings"
	"testing"

	"github.com/shopspring/decimal"
)

func kztRates() *RateTable { return NewRateTable("KZT") }

func TestValuePortfolio_SingleTicker(t *testing.T) {
	// 10 shares @ 100 KZT, reference price 120: gain 200, +20%.
	refs := NewInstruments(NewInstrument("HSBK", "stocks", "KZT"))
	prices := NewPriceTable()
	prices.Append("HSBK", MustParseDate("2024-06-01"), decimal.NewFromInt(120))

	v, err := ValuePortfolio([]Transaction{
		buy("2024-01-10", "HSBK", 10, KZT(100), "KASE"),
	}, refs, prices, kztRates(), MustParseDate("2024-06-01"))
	if err != nil {
		t.Fatalf("ValuePortfolio() error = %v", err)
	}

	rec := v.Record("HSBK")
	if rec == nil {
		t.Fatal("no record for HSBK")
	}
	if !rec.InvestedCost.Equal(KZT(1000)) {
		t.Errorf("invested = %s, want 1000", rec.InvestedCost)
	}
	if !rec.MarketValue.Equal(KZT(1200)) {
		t.Errorf("market value = %s, want 1200", rec.MarketValue)
	}
	if !rec.UnrealizedGain.Equal(KZT(200)) {
		t.Errorf("gain = %s, want 200", rec.UnrealizedGain)
	}
	if !rec.GainPercent.Equal(20) {
		t.Errorf("gain percent = %s, want 20%%", rec.GainPercent)
	}
	if !v.MarketValue.Equal(KZT(1200)) || !v.UnrealizedGain.Equal(KZT(200)) {
		t.Errorf("totals = %s / %s, want 1200 / 200", v.MarketValue, v.UnrealizedGain)
	}
	if len(v.Skipped) != 0 {
		t.Errorf("unexpected skips: %v", v.Skipped)
	}
}

func TestValuePortfolio_CategoryDecomposition(t *testing.T) {
	refs := NewInstruments(
		NewInstrument("HSBK", "stocks", "KZT"),
		NewInstrument("KZAP", "stocks", "KZT"),
		NewInstrument("MUB24", "bonds", "KZT"),
	)
	prices := NewPriceTable()
	asOf := MustParseDate("2024-06-01")
	prices.Append("HSBK", asOf, decimal.NewFromInt(120))
	prices.Append("KZAP", asOf, decimal.NewFromInt(15000))
	prices.Append("MUB24", asOf, decimal.NewFromInt(1010))

	v, err := ValuePortfolio([]Transaction{
		buy("2024-01-10", "HSBK", 10, KZT(100), "KASE"),
		buy("2024-02-10", "KZAP", 2, KZT(14000), "KASE"),
		buy("2024-03-10", "MUB24", 5, KZT(1000), "KASE"),
	}, refs, prices, kztRates(), asOf)
	if err != nil {
		t.Fatalf("ValuePortfolio() error = %v", err)
	}

	if len(v.Categories) != 2 {
		t.Fatalf("categories = %d, want 2", len(v.Categories))
	}
	// Category totals must decompose the portfolio totals exactly.
	sum := M(0, "KZT")
	for _, cat := range v.Categories {
		sum = sum.Add(cat.MarketValue)
	}
	if !sum.Equal(v.MarketValue) {
		t.Errorf("sum of category values = %s, portfolio = %s", sum, v.MarketValue)
	}
	stocks := v.Category("stocks")
	if stocks == nil {
		t.Fatal("no stocks category")
	}
	if !stocks.MarketValue.Equal(KZT(1200 + 30000)) {
		t.Errorf("stocks value = %s, want 31200", stocks.MarketValue)
	}
	bonds := v.Category("bonds")
	if bonds == nil {
		t.Fatal("no bonds category")
	}
	if !bonds.Share.Equal(Percent(5050.0 / 36250.0 * 100)) {
		t.Errorf("bonds share = %s", bonds.Share)
	}
}

func TestValuePortfolio_MissingPriceSkips(t *testing.T) {
	refs := NewInstruments(NewInstrument("HSBK", "stocks", "KZT"))
	v, err := ValuePortfolio([]Transaction{
		buy("2024-01-10", "HSBK", 10, KZT(100), "KASE"),
	}, refs, NewPriceTable(), kztRates(), MustParseDate("2024-06-01"))
	if err != nil {
		t.Fatalf("ValuePortfolio() error = %v", err)
	}
	if len(v.Records) != 0 {
		t.Errorf("records = %v, want none", v.Records)
	}
	if !v.MarketValue.IsZero() {
		t.Errorf("market value = %s, want 0", v.MarketValue)
	}
	if len(v.Skipped) != 1 || v.Skipped[0].Reason != SkipNoPrice {
		t.Errorf("skipped = %v, want one %q entry", v.Skipped, SkipNoPrice)
	}
}

func TestValuePortfolio_MissingRateSkips(t *testing.T) {
	// A foreign holding with a price but no exchange rate must be excluded,
	// never converted at an assumed rate of 1.
	refs := NewInstruments(NewInstrument("AAPL", "stocks", "USD"))
	prices := NewPriceTable()
	asOf := MustParseDate("2024-06-01")
	prices.Append("AAPL", asOf, decimal.NewFromInt(200))

	v, err := ValuePortfolio([]Transaction{
		buy("2024-01-10", "AAPL", 10, USD(180), "NASDAQ"),
	}, refs, prices, kztRates(), asOf)
	if err != nil {
		t.Fatalf("ValuePortfolio() error = %v", err)
	}
	if len(v.Records) != 0 {
		t.Errorf("records = %v, want none", v.Records)
	}
	if len(v.Skipped) != 1 || !strings.Contains(v.Skipped[0].Reason, SkipNoRate) {
		t.Errorf("skipped = %v, want one %q entry", v.Skipped, SkipNoRate)
	}
}

func TestValuePortfolio_EntryVsCurrentRates(t *testing.T) {
	// Invested cost converts at the entry-date rate, market value at the
	// valuation-date rate.
	refs := NewInstruments(NewInstrument("AAPL", "stocks", "USD"))
	rates := kztRates()
	rates.Add("USD", MustParseDate("2024-01-10"), decimal.NewFromInt(450))
	rates.Add("USD", MustParseDate("2024-06-01"), decimal.NewFromInt(470))
	prices := NewPriceTable()
	asOf := MustParseDate("2024-06-01")
	prices.Append("AAPL", asOf, decimal.NewFromInt(200))

	v, err := ValuePortfolio([]Transaction{
		buy("2024-01-10", "AAPL", 10, USD(180), "NASDAQ"),
	}, refs, prices, rates, asOf)
	if err != nil {
		t.Fatalf("ValuePortfolio() error = %v", err)
	}

	rec := v.Record("AAPL")
	if rec == nil {
		t.Fatal("no record for AAPL")
	}
	if want := KZT(10 * 180 * 450); !rec.InvestedCost.Equal(want) {
		t.Errorf("invested = %s, want %s", rec.InvestedCost, want)
	}
	if want := KZT(10 * 200 * 470); !rec.MarketValue.Equal(want) {
		t.Errorf("market value = %s, want %s", rec.MarketValue, want)
	}
}

func TestValuePortfolio_ClosedPositionHasNoRecord(t *testing.T) {
	refs := NewInstruments(NewInstrument("HSBK", "stocks", "KZT"))
	prices := NewPriceTable()
	asOf := MustParseDate("2024-06-01")
	prices.Append("HSBK", asOf, decimal.NewFromInt(120))

	v, err := ValuePortfolio([]Transaction{
		buy("2024-01-10", "HSBK", 10, KZT(100), "KASE"),
		sell("2024-02-10", "HSBK", 10, KZT(110), "KASE"),
	}, refs, prices, kztRates(), asOf)
	if err != nil {
		t.Fatalf("ValuePortfolio() error = %v", err)
	}
	if rec := v.Record("HSBK"); rec != nil {
		t.Errorf("record for closed position: %+v", rec)
	}
}

func TestValuePortfolio_FlowsFeedXirr(t *testing.T) {
	// Buy 1000, hold at 1100 one year later: the flow series solves to about 10%.
	refs := NewInstruments(NewInstrument("HSBK", "stocks", "KZT"))
	prices := NewPriceTable()
	asOf := MustParseDate("2025-01-01")
	prices.Append("HSBK", asOf, decimal.NewFromInt(110))

	v, err := ValuePortfolio([]Transaction{
		buy("2024-01-01", "HSBK", 10, KZT(100), "KASE"),
	}, refs, prices, kztRates(), asOf)
	if err != nil {
		t.Fatalf("ValuePortfolio() error = %v", err)
	}

	if len(v.Flows) != 2 {
		t.Fatalf("flows = %v, want outflow + terminal inflow", v.Flows)
	}
	if !v.Flows[0].Amount.Equal(KZT(-1000)) {
		t.Errorf("outflow = %s, want -1000", v.Flows[0].Amount)
	}
	if !v.Flows[1].Amount.Equal(KZT(1100)) {
		t.Errorf("terminal inflow = %s, want 1100", v.Flows[1].Amount)
	}
	rate, ok := Xirr(v.Flows)
	if !ok {
		t.Fatal("Xirr() reported no solution")
	}
	if rate < 0.09 || rate > 0.11 {
		t.Errorf("Xirr() = %f, want about 0.10", rate)
	}
}

func TestValuePortfolio_HoldingDays(t *testing.T) {
	refs := NewInstruments(NewInstrument("HSBK", "stocks", "KZT"))
	prices := NewPriceTable()
	asOf := MustParseDate("2024-01-31")
	prices.Append("HSBK", asOf, decimal.NewFromInt(100))

	v, err := ValuePortfolio([]Transaction{
		buy("2024-01-01", "HSBK", 10, KZT(100), "KASE"),
	}, refs, prices, kztRates(), asOf)
	if err != nil {
		t.Fatalf("ValuePortfolio() error = %v", err)
	}
	rec := v.Record("HSBK")
	if rec == nil {
		t.Fatal("no record for HSBK")
	}
	if rec.HoldingDays != 30 {
		t.Errorf("holding days = %d, want 30", rec.HoldingDays)
	}
}

func TestValuePortfolio_UndeclaredTickerFallsBack(t *testing.T) {
	// No instrument reference: category defaults and the lot currency is the
	// home currency.
	prices := NewPriceTable()
	asOf := MustParseDate("2024-06-01")
	prices.Append("KMG", asOf, decimal.NewFromInt(12500))

	v, err := ValuePortfolio([]Transaction{
		buy("2024-01-10", "KMG", 10, KZT(12000), "KASE"),
	}, NewInstruments(), prices, kztRates(), asOf)
	if err != nil {
		t.Fatalf("ValuePortfolio() error = %v", err)
	}
	rec := v.Record("KMG")
	if rec == nil {
		t.Fatal("no record for KMG")
	}
	if rec.Category != "uncategorized" || rec.Currency != "KZT" {
		t.Errorf("record = %s/%s, want uncategorized/KZT", rec.Category, rec.Currency)
	}
}
