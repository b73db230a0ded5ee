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

// summaryCmd holds the flags for the 'summary' subcommand.
type summaryCmd struct {
	date string
}

func (*summaryCmd) Name() string     { return "summary" }
func (*summaryCmd) Synopsis() string { return "holdings, invested cost and unrealized gains" }
func (*summaryCmd) Usage() string {
	return `portfel summary [-d <date>]

  Values every open position and displays the holdings, the category
  breakdown and the portfolio totals. Tickers without a usable price or
  exchange rate are listed as excluded.
`
}

func (c *summaryCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.date, "d", portfel.Today().String(), "Valuation date (YYYY-MM-DD)")
}

func (c *summaryCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	asOf, err := portfel.ParseDate(c.date)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing date: %v\n", err)
		return subcommands.ExitUsageError
	}

	v, st := value(asOf)
	if st != subcommands.ExitSuccess {
		return st
	}

	printMarkdown(renderer.SummaryMarkdown(v))
	return subcommands.ExitSuccess
}

// value loads the ledger and the market data and values the portfolio.
func value(asOf portfel.Date) (*portfel.Valuation, subcommands.ExitStatus) {
	txs, err := DecodeLedger()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading ledger %q: %v\n", *ledgerFile, err)
		return nil, subcommands.ExitFailure
	}
	refs, _, err := DecodeInstruments()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading instruments %q: %v\n", *instrumentsFile, err)
		return nil, subcommands.ExitFailure
	}
	rates, err := loadRates()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading rates: %v\n", err)
		return nil, subcommands.ExitFailure
	}

	book, err := portfel.Ingest(txs)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reading ledger: %v\n", err)
		return nil, subcommands.ExitFailure
	}
	prices := loadPrices(book, refs)

	v, err := portfel.ValuePortfolio(txs, refs, prices, rates, asOf)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error valuing portfolio: %v\n", err)
		return nil, subcommands.ExitFailure
	}
	return v, subcommands.ExitSuccess
}
