package renderer

import (
	"strings"
	"testing"

	"github.com/freeprice/goldspot"
	"github.com/shopspring/decimal"
)

func sampleReport(t *testing.T) *CoverageReport {
	t.Helper()
	s := goldspot.Series{
		{Date: goldspot.NewDate(1960, 1, 1), Price: decimal.RequireFromString("35.27"), Currency: goldspot.USD, Source: "worldbank"},
		{Date: goldspot.NewDate(2025, 1, 2), Price: decimal.RequireFromString("2650.50"), Currency: goldspot.USD, Source: "yahoo_finance"},
	}
	used := goldspot.Coverage(s)
	full := goldspot.Coverage(s)
	order := []string{"worldbank", "yahoo_finance"}
	return NewCoverageReport(s, used, full, order, "gold_spot_20250828.csv")
}

func TestNewCoverageReport(t *testing.T) {
	r := sampleReport(t)

	if r.Total != 2 {
		t.Errorf("Total = %d, want 2", r.Total)
	}
	if r.From != "1960-01-01" || r.To != "2025-01-02" {
		t.Errorf("range = %s to %s, want 1960-01-01 to 2025-01-02", r.From, r.To)
	}
	if r.Latest == nil || r.Latest.Price != "2650.5" {
		t.Fatalf("Latest = %+v, want the last row's price", r.Latest)
	}
	if len(r.Sources) != 2 {
		t.Fatalf("report has %d sources, want 2", len(r.Sources))
	}
	// priority order is preserved and display names resolved
	if r.Sources[0].Name != "worldbank" || r.Sources[0].DisplayName != "World Bank Commodity Prices" {
		t.Errorf("source 0 = %q (%q), want worldbank with its display name",
			r.Sources[0].Name, r.Sources[0].DisplayName)
	}
}

func TestNewCoverageReportDisplacedSource(t *testing.T) {
	s := goldspot.Series{
		{Date: goldspot.NewDate(2020, 1, 1), Price: decimal.RequireFromString("1500"), Currency: goldspot.USD, Source: "winner"},
	}
	used := goldspot.Coverage(s)
	full := goldspot.CoverageMap{
		"winner": used["winner"],
		"loser":  {Count: 1, Start: goldspot.NewDate(2020, 1, 1), End: goldspot.NewDate(2020, 1, 1)},
	}
	r := NewCoverageReport(s, used, full, []string{"loser", "winner"}, "")

	if len(r.Sources) != 2 {
		t.Fatalf("report has %d sources, want 2", len(r.Sources))
	}
	loser := r.Sources[0]
	if loser.Used != nil {
		t.Errorf("displaced source has a used range: %+v", loser.Used)
	}
	if loser.Full == nil || loser.Full.Count != 1 {
		t.Errorf("displaced source lost its full range: %+v", loser.Full)
	}
}

func TestNewCoverageReportAnnotatedTags(t *testing.T) {
	// After currency normalization the surviving rows carry lineage notes;
	// their coverage must still be attributed to the plain source.
	s := goldspot.Series{
		{Date: goldspot.NewDate(1800, 1, 1), Price: decimal.RequireFromString("19.12"), Currency: goldspot.USD, Source: "measuringworth_british (converted)"},
		{Date: goldspot.NewDate(1900, 1, 1), Price: decimal.RequireFromString("4.25"), Currency: goldspot.GBP, Source: "measuringworth_british (unconverted: no rate)"},
	}
	used := goldspot.Coverage(s)
	full := goldspot.CoverageMap{
		"measuringworth_british": {Count: 2, Start: goldspot.NewDate(1800, 1, 1), End: goldspot.NewDate(1900, 1, 1)},
	}
	r := NewCoverageReport(s, used, full, []string{"measuringworth_british"}, "")

	if len(r.Sources) != 1 {
		t.Fatalf("report has %d sources, want 1", len(r.Sources))
	}
	line := r.Sources[0]
	if line.Used == nil {
		t.Fatal("annotated rows were not attributed to their source")
	}
	if line.Used.Count != 2 {
		t.Errorf("used count = %d, want 2", line.Used.Count)
	}
	if line.Used.Start != "1800-01-01" || line.Used.End != "1900-01-01" {
		t.Errorf("used range = %s to %s, want 1800-01-01 to 1900-01-01", line.Used.Start, line.Used.End)
	}
}

func TestCoverageMarkdown(t *testing.T) {
	md := CoverageMarkdown(sampleReport(t))

	for _, want := range []string{
		"# Gold Spot Price Historical Data",
		"gold_spot_20250828.csv",
		"World Bank Commodity Prices",
		"Yahoo Finance",
		"1960-01-01 to 1960-01-01",
		"Source Attribution",
	} {
		if !strings.Contains(md, want) {
			t.Errorf("markdown does not contain %q:\n%s", want, md)
		}
	}
	if strings.Contains(md, "error") {
		t.Errorf("markdown contains a template error:\n%s", md)
	}
}

func TestCoverageHTML(t *testing.T) {
	page, err := CoverageHTML(sampleReport(t))
	if err != nil {
		t.Fatalf("CoverageHTML() error: %v", err)
	}
	for _, want := range []string{
		"<!DOCTYPE html>",
		`url=data/latest.csv`,
		`data/gold_spot_20250828.csv`,
		"<table>",
		"World Bank Commodity Prices",
	} {
		if !strings.Contains(page, want) {
			t.Errorf("page does not contain %q", want)
		}
	}
}
