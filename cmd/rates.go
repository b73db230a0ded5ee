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

// ratesCmd holds the flags for the 'rates' subcommand.
type ratesCmd struct {
	save bool
}

func (*ratesCmd) Name() string     { return "rates" }
func (*ratesCmd) Synopsis() string { return "display today's official exchange rates" }
func (*ratesCmd) Usage() string {
	return `portfel rates [-save]

  Fetches the official National Bank exchange rates against the tenge.
  With -save the snapshots are appended to the rates file, so later tax
  and valuation runs can convert at the rates of past dates.
`
}

func (c *ratesCmd) SetFlags(f *flag.FlagSet) {
	f.BoolVar(&c.save, "save", false, "Append the fetched snapshots to the rates file")
}

func (c *ratesCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	snaps, err := portfel.FetchNBRKRates()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error fetching rates: %v\n", err)
		return subcommands.ExitFailure
	}

	if c.save {
		if err := SaveRates(snaps); err != nil {
			fmt.Fprintf(os.Stderr, "Error saving rates to %q: %v\n", *ratesFile, err)
			return subcommands.ExitFailure
		}
		fmt.Printf("Saved %d snapshots to %s\n", len(snaps), *ratesFile)
	}

	printMarkdown(renderer.RatesMarkdown(snaps, portfel.BaseCurrency))
	return subcommands.ExitSuccess
}
