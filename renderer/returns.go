package renderer

import (
	"fmt"
	"strings"

	"github.com/akzhol/portfel"
)

// ReturnsMarkdown renders the performance report: the money-weighted return
// of the whole portfolio and of each category, plus the time-weighted series
// when period snapshots are available. A series that admits no solution is
// printed as "n/a" rather than a made-up number.
func ReturnsMarkdown(v *portfel.Valuation, twr []portfel.Percent) string {
	var b strings.Builder

	fmt.Fprintf(&b, "# Performance on %s\n\n", v.Date)

	fmt.Fprint(&b, "## Money-Weighted Return (XIRR)\n\n")
	fmt.Fprintln(&b, "| Scope | Annualized |")
	fmt.Fprintln(&b, "|:---|---:|")
	fmt.Fprintf(&b, "| Portfolio | %s |\n", xirrCell(v.Flows))
	for _, cat := range v.Categories {
		fmt.Fprintf(&b, "| %s | %s |\n", cat.Category, xirrCell(cat.Flows))
	}
	fmt.Fprintln(&b)

	if len(v.Records) > 0 {
		fmt.Fprint(&b, "## Holding Periods\n\n")
		fmt.Fprintln(&b, "| Ticker | Days Held | Gain % |")
		fmt.Fprintln(&b, "|:---|---:|---:|")
		for _, rec := range v.Records {
			fmt.Fprintf(&b, "| %s | %d | %s |\n", rec.Ticker, rec.HoldingDays, rec.GainPercent.SignedString())
		}
		fmt.Fprintln(&b)
	}

	if len(twr) > 1 {
		fmt.Fprint(&b, "## Time-Weighted Return\n\n")
		fmt.Fprintf(&b, "Cumulative over %d periods: %s\n\n", len(twr)-1, twr[len(twr)-1].SignedString())
	}

	writeSkipped(&b, v.Skipped)
	return b.String()
}

// xirrCell formats an XIRR solution as an annualized percentage table cell.
func xirrCell(flows []portfel.CashFlow) string {
	rate, ok := portfel.Xirr(flows)
	if !ok {
		return "n/a"
	}
	return portfel.Percent(rate * 100).SignedString()
}
