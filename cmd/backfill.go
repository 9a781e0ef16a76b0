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

type backfillCmd struct {
	source string
}

func (*backfillCmd) Name() string { return "backfill" }
func (*backfillCmd) Synopsis() string {
	return "fetch the historical sources and refresh the backfill artifacts"
}
func (*backfillCmd) Usage() string {
	return `gsd backfill [-s <source>]

  Fetches every enabled backfill source and stores each raw series under the
  data directory, timestamped plus a per-source latest pointer. A source that
  fails is reported and skipped; the others are still refreshed.

Usage Examples:
# Refresh all enabled sources.
$ gsd backfill
# Refresh only the World Bank data.
$ gsd backfill -s worldbank

`
}

func (p *backfillCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&p.source, "s", "", "Only fetch this source. Fetches all enabled sources by default.")
}

func (p *backfillCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	cfg, err := LoadConfig()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	if n := runBackfill(cfg, p.source); n == 0 {
		fmt.Fprintln(os.Stderr, "Error: no source could be fetched")
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}

// runBackfill fetches and stores the configured sources, returning how many
// succeeded. With only set, all other sources are skipped.
func runBackfill(cfg goldspot.Config, only string) (fetched int) {
	for _, src := range cfg.Sources {
		if !selected(src, only) {
			continue
		}

		s, err := fetch.Backfill(src)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error fetching %q: %v\n", src.Name, err)
			continue
		}
		if err := goldspot.SaveBackfill(cfg.DataDir, src.Name, s); err != nil {
			fmt.Fprintf(os.Stderr, "Error saving %q: %v\n", src.Name, err)
			continue
		}
		from, to := s.Range()
		fmt.Printf("Fetched %d rows from %s (%s to %s)\n", len(s), src.Name, from, to)
		fetched++
	}
	return fetched
}

// selected reports whether runBackfill should fetch src. An explicit -s
// selection names exactly one source and overrides its enabled flag.
func selected(src goldspot.SourceConfig, only string) bool {
	if only != "" {
		return src.Name == only
	}
	return src.Enabled
}
