package renderer

import (
	"fmt"
	"strings"

	"github.com/akzhol/portfel"
)

// LogMarkdown renders the transaction log as a markdown table, in
// chronological order.
func LogMarkdown(txs []portfel.Transaction) string {
	var b strings.Builder

	fmt.Fprint(&b, "# Transactions\n\n")
	if len(txs) == 0 {
		fmt.Fprintln(&b, "The log is empty.")
		return b.String()
	}

	fmt.Fprintln(&b, "| Date | Side | Ticker | Quantity | Price | Venue | Fees |")
	fmt.Fprintln(&b, "|:---|:---|:---|---:|---:|:---|---:|")
	for _, tx := range portfel.SortTransactions(txs) {
		side, qty := "buy", tx.Quantity
		if tx.IsSell() {
			side, qty = "sell", tx.Quantity.Neg()
		}
		fees := "-"
		if total := tx.Fees.Total(); !total.IsZero() {
			fees = total.String()
		}
		fmt.Fprintf(&b, "| %s | %s | %s | %s | %s | %s | %s |\n",
			tx.Date, side, tx.Ticker, qty, tx.Price, tx.Venue, fees)
	}
	return b.String()
}
