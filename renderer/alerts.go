package renderer

import (
	"fmt"
	"strings"

	"github.com/akzhol/portfel"
)

// AlertsMarkdown renders the threshold scan result, one row per alerted lot.
// A scan with no alerts still renders a report saying so.
func AlertsMarkdown(alerts []portfel.Alert, asOf portfel.Date) string {
	var b strings.Builder

	fmt.Fprintf(&b, "# Threshold Alerts on %s\n\n", asOf)

	if len(alerts) == 0 {
		fmt.Fprintln(&b, "No open lot crossed a threshold.")
		return b.String()
	}

	fmt.Fprintln(&b, "| Signal | Ticker | Quantity | Entry | Entry Date | Current | Change |")
	fmt.Fprintln(&b, "|:---|:---|---:|---:|:---|---:|---:|")
	for _, a := range alerts {
		fmt.Fprintf(&b, "| %s | %s | %s | %s | %s | %s | %s |\n",
			a.Kind,
			a.Ticker,
			a.Quantity,
			a.EntryPrice,
			a.EntryDate,
			a.CurrentPrice,
			a.PercentChange.SignedString(),
		)
	}
	return b.String()
}
