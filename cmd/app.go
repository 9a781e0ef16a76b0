// Package cmd implements the CLI application to maintain the gold price
// dataset: fetching sources, merging them into the canonical series, and
// publishing the result.
package cmd

import (
	"flag"
	"fmt"

	"github.com/freeprice/goldspot"
	"github.com/google/subcommands"
)

// Register the subcommands.
// A main package will call Register() to allow subcommands, and Execute() on the user-selected one.
func Register(c *subcommands.Commander) {
	c.Register(&backfillCmd{}, "data")
	c.Register(&mergeCmd{}, "data")
	c.Register(&updateCmd{}, "data")
	c.Register(&latestCmd{}, "data")

	c.Register(&statsCmd{}, "reports")
	c.Register(&publishCmd{}, "reports")
	c.Register(&assistCmd{}, "reports")
}

// as a CLI application, it has a very short lived lifecycle, so it is ok to use global variables.

var configFile = flag.String("config", "config.json", "Path to the run configuration file")
var dataDir = flag.String("d", "", "Override the data directory from the configuration")

// LoadConfig loads the app configuration, applying command line overrides.
func LoadConfig() (goldspot.Config, error) {
	cfg, err := goldspot.LoadConfig(*configFile)
	if err != nil {
		return goldspot.Config{}, fmt.Errorf("cannot load configuration: %w", err)
	}
	if *dataDir != "" {
		cfg.DataDir = *dataDir
	}
	return cfg, nil
}
