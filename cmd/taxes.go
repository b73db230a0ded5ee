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

// taxesCmd holds the flags for the 'taxes' subcommand.
type taxesCmd struct {
	year int
}

func (*taxesCmd) Name() string     { return "taxes" }
func (*taxesCmd) Synopsis() string { return "capital-gains tax report for a year" }
func (*taxesCmd) Usage() string {
	return `portfel taxes [-y <year>]

  Matches the sells of the year against their FIFO cost basis and computes
  the tax due on foreign-market gains. Domestic-market pairs and losing
  pairs are not liable.
`
}

func (c *taxesCmd) SetFlags(f *flag.FlagSet) {
	f.IntVar(&c.year, "y", portfel.Today().Year(), "Reporting year")
}

func (c *taxesCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	txs, err := DecodeLedger()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading ledger %q: %v\n", *ledgerFile, err)
		return subcommands.ExitFailure
	}
	_, isins, err := DecodeInstruments()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading instruments %q: %v\n", *instrumentsFile, err)
		return subcommands.ExitFailure
	}
	rates, err := loadRates()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading rates: %v\n", err)
		return subcommands.ExitFailure
	}

	report, err := portfel.BuildTaxReport(txs, c.year, portfel.JurisdictionFromISINs(isins), rates)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error building tax report: %v\n", err)
		return subcommands.ExitFailure
	}

	printMarkdown(renderer.TaxesMarkdown(report))
	return subcommands.ExitSuccess
}
