package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/akzhol/portfel"
	"github.com/akzhol/portfel/renderer"
	"github.com/google/subcommands"
)

// alertsCmd holds the flags for the 'alerts' subcommand.
type alertsCmd struct{}

func (*alertsCmd) Name() string     { return "alerts" }
func (*alertsCmd) Synopsis() string { return "take-profit and stop-loss scan over open lots" }
func (*alertsCmd) Usage() string {
	return `portfel alerts

  Compares the latest price of every open lot with its entry price and
  signals the lots that crossed the take-profit (+14.99%) or the stop-loss
  (-10%) threshold.
`
}

func (c *alertsCmd) SetFlags(f *flag.FlagSet) {}

func (c *alertsCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	txs, err := DecodeLedger()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading ledger %q: %v\n", *ledgerFile, err)
		return subcommands.ExitFailure
	}
	refs, _, err := DecodeInstruments()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading instruments %q: %v\n", *instrumentsFile, err)
		return subcommands.ExitFailure
	}

	book, err := portfel.Ingest(txs)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reading ledger: %v\n", err)
		return subcommands.ExitFailure
	}

	asOf := portfel.Today()
	prices := loadPrices(book, refs)
	alerts := portfel.ScanThresholds(book, prices, asOf)

	printMarkdown(renderer.AlertsMarkdown(alerts, asOf))
	return subcommands.ExitSuccess
}
