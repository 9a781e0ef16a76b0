// The gsd command maintains the freeprice.gold dataset: it fetches gold
// price history from the configured sources, merges it into one canonical
// series and publishes the artifacts.
package main

import (
	"context"
	"flag"
	"os"
	"path"

	"github.com/freeprice/goldspot/cmd"
	"github.com/google/subcommands"
	"github.com/joho/godotenv"
	"github.com/posener/complete/v2"
	"github.com/posener/complete/v2/predict"
)

func main() {
	// API keys live in a local .env file in development; a missing file is
	// fine, CI sets the environment directly.
	godotenv.Load()

	completion()

	commander := subcommands.NewCommander(flag.CommandLine, path.Base(os.Args[0]))
	commander.Register(commander.HelpCommand(), "")
	commander.Register(commander.FlagsCommand(), "")
	commander.Register(commander.CommandsCommand(), "")
	cmd.Register(commander)

	flag.Parse()
	os.Exit(int(commander.Execute(context.Background())))
}

// completion handles shell completion requests and exits when invoked as a
// completer; it is a no-op in a normal run.
func completion() {
	sources := predict.Set{"measuringworth_british", "measuringworth_london", "worldbank", "yahoo_finance", "metalpriceapi", "fred"}
	global := map[string]complete.Predictor{
		"config": predict.Files("*.json"),
		"d":      predict.Dirs("*"),
	}
	(&complete.Command{
		Flags: global,
		Sub: map[string]*complete.Command{
			"backfill": {Flags: map[string]complete.Predictor{"s": sources}},
			"merge":    {},
			"update":   {},
			"latest":   {Flags: map[string]complete.Predictor{"spot": predict.Nothing}},
			"stats":    {},
			"publish":  {Flags: map[string]complete.Predictor{"o": predict.Files("*.html")}},
			"assist":   {},
		},
	}).Complete("gsd")
}
