// Package renderer turns engine results into markdown reports.
package renderer

import (
	"fmt"
	"strings"

	"github.com/akzhol/portfel"
)

// SummaryMarkdown renders the portfolio valuation as a markdown report: one
// row per holding, the category breakdown, and the portfolio totals. Skipped
// tickers are listed at the end so partial results are never mistaken for
// complete ones.
func SummaryMarkdown(v *portfel.Valuation) string {
	var b strings.Builder

	fmt.Fprintf(&b, "# Portfolio Summary on %s\n\n", v.Date)

	fmt.Fprint(&b, "## Holdings\n\n")
	fmt.Fprintln(&b, "| Ticker | Category | Quantity | Invested | Market Value | Gain | Gain % |")
	fmt.Fprintln(&b, "|:---|:---|---:|---:|---:|---:|---:|")
	for _, rec := range v.Records {
		fmt.Fprintf(&b, "| %s | %s | %s | %s | %s | %s | %s |\n",
			rec.Ticker,
			rec.Category,
			rec.Quantity,
			rec.InvestedCost,
			rec.MarketValue,
			rec.UnrealizedGain.SignedString(),
			rec.GainPercent.SignedString(),
		)
	}
	fmt.Fprintf(&b, "| **Total** | | | **%s** | **%s** | **%s** | **%s** |\n\n",
		v.InvestedCost,
		v.MarketValue,
		v.UnrealizedGain.SignedString(),
		gainPercent(v.UnrealizedGain, v.InvestedCost).SignedString(),
	)

	if len(v.Categories) > 0 {
		fmt.Fprint(&b, "## Categories\n\n")
		fmt.Fprintln(&b, "| Category | Market Value | Share | Gain |")
		fmt.Fprintln(&b, "|:---|---:|---:|---:|")
		for _, cat := range v.Categories {
			fmt.Fprintf(&b, "| %s | %s | %s | %s |\n",
				cat.Category,
				cat.MarketValue,
				cat.Share,
				cat.UnrealizedGain.SignedString(),
			)
		}
		fmt.Fprintln(&b)
	}

	writeSkipped(&b, v.Skipped)
	return b.String()
}

// gainPercent is the display ratio of gain over invested, 0 for an empty cost.
func gainPercent(gain, invested portfel.Money) portfel.Percent {
	if invested.IsZero() {
		return 0
	}
	return portfel.Percent(gain.AsFloat() / invested.AsFloat() * 100)
}

// writeSkipped appends the data-quality warning section when tickers were
// excluded from the aggregates.
func writeSkipped(b *strings.Builder, skipped []portfel.Skip) {
	if len(skipped) == 0 {
		return
	}
	fmt.Fprint(b, "## Excluded\n\n")
	fmt.Fprintln(b, "Not included in the totals above:")
	fmt.Fprintln(b)
	for _, s := range skipped {
		fmt.Fprintf(b, "- %s\n", s)
	}
	fmt.Fprintln(b)
}
