package cmd

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/freeprice/goldspot/renderer"
	"github.com/google/subcommands"
	"google.golang.org/genai"
)

const assistModel = "gemini-2.5-pro"

type assistCmd struct{}

func (*assistCmd) Name() string { return "assist" }
func (*assistCmd) Synopsis() string {
	return "start an interactive session with the AI assistant"
}
func (*assistCmd) Usage() string {
	return `gsd assist [initial question]

  Starts an interactive session with an AI assistant that knows the current
  dataset coverage: which sources contribute which periods, where the gaps
  are, and how the merge works. Requires a configured Gemini API key.

`
}

func (*assistCmd) SetFlags(_ *flag.FlagSet) {}

func (c *assistCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	cfg, err := LoadConfig()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}

	// The assistant grounds its answers on the current coverage report.
	// A missing report is not fatal, the session just starts without it.
	coverage := "No merged dataset is available yet."
	if report, err := loadReport(cfg); err == nil {
		coverage = renderer.CoverageMarkdown(report)
	}

	client, err := genai.NewClient(ctx, nil)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error initializing Gemini's client:", err)
		return subcommands.ExitFailure
	}

	config := &genai.GenerateContentConfig{
		SystemInstruction: &genai.Content{Parts: []*genai.Part{{Text: `
You are the assistant of the gold price dataset maintainer. The dataset
merges historical gold prices from several sources of different granularity
into one canonical daily series. Answer questions about coverage, sources
and data quality using the report below. Be concise.

` + coverage}}},
	}
	chat, err := client.Chats.Create(ctx, assistModel, config, nil)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error starting chat:", err)
		return subcommands.ExitFailure
	}

	ask := func(question string) subcommands.ExitStatus {
		resp, err := chat.Send(ctx, &genai.Part{Text: question})
		if err != nil {
			fmt.Fprintln(os.Stderr, "Error:", err)
			return subcommands.ExitFailure
		}
		if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil || len(resp.Candidates[0].Content.Parts) == 0 {
			fmt.Fprintln(os.Stderr, "Error: empty response")
			return subcommands.ExitFailure
		}
		printMarkdown(resp.Candidates[0].Content.Parts[0].Text)
		return subcommands.ExitSuccess
	}

	if f.NArg() > 0 {
		if status := ask(strings.Join(f.Args(), " ")); status != subcommands.ExitSuccess {
			return status
		}
	}

	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print("> ")
		if !scanner.Scan() {
			break
		}
		question := strings.TrimSpace(scanner.Text())
		if question == "" || question == "exit" || question == "quit" {
			break
		}
		ask(question)
	}
	return subcommands.ExitSuccess
}
