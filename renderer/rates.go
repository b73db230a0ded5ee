package renderer

import (
	"fmt"
	"strings"

	"github.com/akzhol/portfel"
)

// RatesMarkdown renders a set of exchange-rate snapshots against the base
// currency.
func RatesMarkdown(snaps []portfel.RateSnapshot, base string) string {
	var b strings.Builder

	fmt.Fprintf(&b, "# Exchange Rates (%s)\n\n", base)
	if len(snaps) == 0 {
		fmt.Fprintln(&b, "No rates available.")
		return b.String()
	}

	fmt.Fprintln(&b, "| Currency | Date | Rate | Change |")
	fmt.Fprintln(&b, "|:---|:---|---:|---:|")
	for _, snap := range snaps {
		change := "-"
		if !snap.Change.IsZero() {
			change = snap.Change.String()
		}
		fmt.Fprintf(&b, "| %s | %s | %s | %s |\n", snap.Currency, snap.Date, snap.Rate, change)
	}
	return b.String()
}
