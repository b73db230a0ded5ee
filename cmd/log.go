package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/akzhol/portfel/renderer"
	"github.com/google/subcommands"
)

// logCmd holds the flags for the 'log' subcommand.
type logCmd struct{}

func (*logCmd) Name() string     { return "log" }
func (*logCmd) Synopsis() string { return "display the transaction log" }
func (*logCmd) Usage() string {
	return `portfel log

  Displays every recorded trade in chronological order.
`
}

func (c *logCmd) SetFlags(f *flag.FlagSet) {}

func (c *logCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	txs, err := DecodeLedger()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading ledger %q: %v\n", *ledgerFile, err)
		return subcommands.ExitFailure
	}
	printMarkdown(renderer.LogMarkdown(txs))
	return subcommands.ExitSuccess
}
