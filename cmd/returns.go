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

// returnsCmd holds the flags for the 'returns' subcommand.
type returnsCmd struct {
	date string
}

func (*returnsCmd) Name() string     { return "returns" }
func (*returnsCmd) Synopsis() string { return "money-weighted return analysis (XIRR)" }
func (*returnsCmd) Usage() string {
	return `portfel returns [-d <date>]

  Computes the annualized money-weighted return of the portfolio and of
  each category from the dated cash flows of the ledger, treating the
  current market value as a terminal inflow.
`
}

func (c *returnsCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.date, "d", portfel.Today().String(), "Valuation date (YYYY-MM-DD)")
}

func (c *returnsCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	asOf, err := portfel.ParseDate(c.date)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing date: %v\n", err)
		return subcommands.ExitUsageError
	}

	v, st := value(asOf)
	if st != subcommands.ExitSuccess {
		return st
	}

	printMarkdown(renderer.ReturnsMarkdown(v, nil))
	return subcommands.ExitSuccess
}
