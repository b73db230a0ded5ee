package renderer

import (
	"fmt"
	"strings"

	"github.com/akzhol/portfel"
)

// TaxesMarkdown renders the yearly capital-gains tax report, one row per
// taxable matched pair.
func TaxesMarkdown(r *portfel.TaxReport) string {
	var b strings.Builder

	fmt.Fprintf(&b, "# Capital Gains Tax %d\n\n", r.Year)

	if len(r.Matches) == 0 {
		fmt.Fprintln(&b, "No taxable gains this year.")
	} else {
		fmt.Fprintln(&b, "| Ticker | Quantity | Bought | Sold | Gain | Proceeds | Tax Due |")
		fmt.Fprintln(&b, "|:---|---:|:---|:---|---:|---:|---:|")
		for _, m := range r.Matches {
			fmt.Fprintf(&b, "| %s | %s | %s @ %s | %s @ %s | %s | %s | %s |\n",
				m.Ticker,
				m.Quantity,
				m.BuyDate, m.BuyPrice,
				m.SellDate, m.SellPrice,
				m.RealizedGain.SignedString(),
				m.Proceeds,
				m.TaxDue,
			)
		}
		fmt.Fprintf(&b, "| **Total** | | | | | | **%s** |\n", r.TotalTax())
	}
	fmt.Fprintln(&b)

	writeSkipped(&b, r.Skipped)
	return b.String()
}
