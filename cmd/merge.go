package cmd

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"log"
	"os"

	"github.com/freeprice/goldspot"
	"github.com/freeprice/goldspot/fetch"
	"github.com/freeprice/goldspot/renderer"
	"github.com/google/subcommands"
)

type mergeCmd struct {
	currency string
	ratio    string
}

func (*mergeCmd) Name() string { return "merge" }
func (*mergeCmd) Synopsis() string {
	return "merge the backfill artifacts into the canonical price series"
}
func (*mergeCmd) Usage() string {
	return `gsd merge

  Merges the stored backfill artifacts into the canonical gold price series,
  in configured priority order: on a date covered by several sources, the
  highest-granularity one wins. Writes the timestamped artifact, the
  latest.csv pointer and the coverage statistics, then prints a summary.

  When no backfill artifact exists at all, the previously published dataset
  is used as a fallback so a bad fetch day never empties the website.

Usage Examples:
# Merge and normalize everything into dollars.
$ gsd merge -currency USD
# Merge and re-denominate in ounces of silver.
$ gsd merge -ratio full

`
}

func (p *mergeCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&p.currency, "currency", "", "Target currency for normalization. Overrides the configuration.")
	f.StringVar(&p.ratio, "ratio", "", "Ratio mode (enrich or full). Overrides the configuration.")
}

func (p *mergeCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	cfg, err := LoadConfig()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	if p.currency != "" {
		cfg.Currency = p.currency
	}
	if p.ratio != "" {
		cfg.Ratio = p.ratio
	}
	return runMerge(cfg)
}

// runMerge loads every available input series, runs the merge pipeline and
// persists the canonical artifacts. Shared with the update command.
func runMerge(cfg goldspot.Config) subcommands.ExitStatus {
	var sources []goldspot.Series
	for _, name := range cfg.PriorityOrder() {
		s, err := goldspot.LoadBackfill(cfg.DataDir, name)
		if errors.Is(err, fs.ErrNotExist) {
			log.Printf("no backfill artifact for %s, skipping", name)
			continue
		}
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			return subcommands.ExitFailure
		}
		log.Printf("loaded %d rows from %s", len(s), name)
		sources = append(sources, s)
	}

	if len(sources) == 0 {
		// Fallback of last resort: recover the previously published dataset.
		s, pubErr := fetch.Published(cfg.PublishedURL)
		if pubErr != nil {
			log.Printf("cannot load published artifact: %v", pubErr)
			var localErr error
			s, localErr = goldspot.LoadLatest(cfg.DataDir)
			if localErr != nil {
				fmt.Fprintln(os.Stderr, "Error: no data sources available to merge:", errors.Join(pubErr, localErr))
				return subcommands.ExitFailure
			}
			log.Printf("recovered %d rows from local %s", len(s), "latest.csv")
		}
		sources = append(sources, s)
	}

	result, err := goldspot.Run(cfg, sources, fetch.DollarPound, fetch.GoldSilverRatio)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return subcommands.ExitFailure
	}

	filename, err := goldspot.SaveCanonical(cfg.DataDir, result.Canonical, result.Used, result.Full)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error saving artifacts:", err)
		return subcommands.ExitFailure
	}

	report := renderer.NewCoverageReport(result.Canonical, result.Used, result.Full, cfg.PriorityOrder(), filename)
	printMarkdown(renderer.CoverageMarkdown(report))
	return subcommands.ExitSuccess
}
