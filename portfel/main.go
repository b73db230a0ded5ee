package main

import (
	"context"
	"flag"
	"os"
	"path"

	"github.com/akzhol/portfel/cmd"
	"github.com/google/subcommands"
	"github.com/posener/complete/v2"
	"github.com/posener/complete/v2/predict"
)

func main() {
	completion()

	commander := subcommands.NewCommander(flag.CommandLine, path.Base(os.Args[0]))
	commander.Register(commander.HelpCommand(), "")
	commander.Register(commander.FlagsCommand(), "")
	cmd.Register(commander)

	flag.Parse()
	os.Exit(int(commander.Execute(context.Background())))
}

// completion installs shell completion for the portfel command. It returns
// immediately when the process is not running in completion mode.
func completion() {
	dateFlag := map[string]complete.Predictor{"d": predict.Nothing}
	c := &complete.Command{
		Sub: map[string]*complete.Command{
			"summary": {Flags: dateFlag},
			"returns": {Flags: dateFlag},
			"alerts":  {},
			"taxes":   {Flags: map[string]complete.Predictor{"y": predict.Nothing}},
			"buy":     {},
			"sell":    {},
			"log":     {},
			"rates":   {Flags: map[string]complete.Predictor{"save": predict.Nothing}},
		},
		Flags: map[string]complete.Predictor{
			"ledger-file":      predict.Files("*.jsonl"),
			"instruments-file": predict.Files("*.jsonl"),
			"rates-file":       predict.Files("*.jsonl"),
		},
	}
	c.Complete("portfel")
}
