package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/freeprice/goldspot"
	"github.com/freeprice/goldspot/renderer"
	"github.com/google/subcommands"
)

type statsCmd struct{}

func (*statsCmd) Name() string { return "stats" }
func (*statsCmd) Synopsis() string {
	return "show coverage statistics of the canonical series"
}
func (*statsCmd) Usage() string {
	return `gsd stats

  Shows which source contributed which stretch of the canonical series:
  record counts and date ranges per source, both as fetched and as actually
  used after deduplication. Reads the artifacts of the last merge.

`
}

func (*statsCmd) SetFlags(_ *flag.FlagSet) {}

func (*statsCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	cfg, err := LoadConfig()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	report, err := loadReport(cfg)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return subcommands.ExitFailure
	}
	printMarkdown(renderer.CoverageMarkdown(report))
	return subcommands.ExitSuccess
}

// loadReport rebuilds the coverage report from the artifacts of the last
// merge run.
func loadReport(cfg goldspot.Config) (*renderer.CoverageReport, error) {
	s, err := goldspot.LoadLatest(cfg.DataDir)
	if err != nil {
		return nil, fmt.Errorf("no canonical series found, run merge first: %w", err)
	}
	used, err := goldspot.LoadStats(cfg.DataDir, goldspot.UsedStats)
	if err != nil {
		return nil, fmt.Errorf("cannot load coverage statistics: %w", err)
	}
	full, err := goldspot.LoadStats(cfg.DataDir, goldspot.FullStats)
	if err != nil {
		return nil, fmt.Errorf("cannot load full coverage statistics: %w", err)
	}
	return renderer.NewCoverageReport(s, used, full, cfg.PriorityOrder(), latestArtifact(cfg.DataDir)), nil
}

// latestArtifact returns the name of the most recent timestamped artifact,
// or the empty string. Timestamped names sort chronologically.
func latestArtifact(dir string) string {
	matches, err := filepath.Glob(filepath.Join(dir, "gold_spot_*.csv"))
	if err != nil || len(matches) == 0 {
		return ""
	}
	sort.Strings(matches)
	return filepath.Base(matches[len(matches)-1])
}
