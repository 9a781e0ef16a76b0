package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/freeprice/goldspot/renderer"
	"github.com/google/subcommands"
)

type publishCmd struct {
	output string
}

func (*publishCmd) Name() string { return "publish" }
func (*publishCmd) Synopsis() string {
	return "write the index.html page for the published dataset"
}
func (*publishCmd) Usage() string {
	return `gsd publish [-o <file>]

  Generates the website index page from the artifacts of the last merge:
  a redirect to the latest CSV, the coverage summary and the source
  attribution required by the data providers.

`
}

func (p *publishCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&p.output, "o", "index.html", "Output file for the generated page.")
}

func (p *publishCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
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
	page, err := renderer.CoverageHTML(report)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error rendering page:", err)
		return subcommands.ExitFailure
	}
	if err := os.WriteFile(p.output, []byte(page), 0644); err != nil {
		fmt.Fprintln(os.Stderr, "Error writing page:", err)
		return subcommands.ExitFailure
	}
	fmt.Printf("Published %s\n", p.output)
	return subcommands.ExitSuccess
}
