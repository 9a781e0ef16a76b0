package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/freeprice/goldspot"
	"github.com/freeprice/goldspot/fetch"
	"github.com/google/subcommands"
)

type latestCmd struct {
	spotOnly bool
}

func (*latestCmd) Name() string { return "latest" }
func (*latestCmd) Synopsis() string {
	return "fetch the current spot price and the trailing year of daily prices"
}
func (*latestCmd) Usage() string {
	return `gsd latest [-spot]

  Fetches the trailing year of daily prices plus today's spot price from
  MetalpriceAPI, stores it as the metalpriceapi backfill artifact, and prints
  the current price. Requires the METALPRICE_API_KEY environment variable.

Usage Examples:
# Refresh daily prices and print the spot.
$ gsd latest
# Just print the current spot price, without touching the data directory.
$ gsd latest -spot

`
}

func (p *latestCmd) SetFlags(f *flag.FlagSet) {
	f.BoolVar(&p.spotOnly, "spot", false, "Only print the current spot price, do not store anything.")
}

func (p *latestCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if p.spotOnly {
		spot, err := fetch.MetalpriceLatest()
		if err != nil {
			fmt.Fprintln(os.Stderr, "Error:", err)
			return subcommands.ExitFailure
		}
		fmt.Printf("Current gold price: %s %s per troy ounce (%s)\n", spot.Price.StringFixed(2), spot.Currency, spot.Date)
		return subcommands.ExitSuccess
	}

	cfg, err := LoadConfig()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	s, err := fetch.MetalpriceHistory()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return subcommands.ExitFailure
	}
	if err := goldspot.SaveBackfill(cfg.DataDir, "metalpriceapi", s.Tagged("metalpriceapi")); err != nil {
		fmt.Fprintln(os.Stderr, "Error saving metalpriceapi artifact:", err)
		return subcommands.ExitFailure
	}
	last := s[len(s)-1]
	fmt.Printf("Stored %d daily rows, current gold price: %s %s per troy ounce (%s)\n",
		len(s), last.Price.StringFixed(2), last.Currency, last.Date)
	return subcommands.ExitSuccess
}
