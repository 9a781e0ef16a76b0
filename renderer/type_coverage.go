package renderer

import (
	"sort"
	"strings"

	"github.com/freeprice/goldspot"
)

// CoverageReport is the view model for the data coverage report: what the
// canonical series looks like and which source contributed which stretch of
// history, before and after deduplication.
type CoverageReport struct {
	Generated  string // ISO date of the run
	LatestFile string // timestamped artifact name, e.g. gold_spot_20250828.csv
	Total      int    // rows in the canonical series
	From, To   string // canonical date range
	Latest     *PricePoint
	Sources    []SourceLine
}

// PricePoint is the most recent observation of the canonical series.
type PricePoint struct {
	Date     string
	Price    string
	Currency string
}

// SourceLine is one source's contribution, in priority order.
type SourceLine struct {
	Name        string
	DisplayName string
	Used        *RangeLine // nil when deduplication displaced every row
	Full        *RangeLine
}

// RangeLine is a record count and its date range.
type RangeLine struct {
	Count      int
	Start, End string
}

// displayNames maps source ids to the names shown in published reports.
var displayNames = map[string]string{
	"measuringworth_british": "MeasuringWorth British Official Price",
	"measuringworth_london":  "MeasuringWorth London Market Price",
	"worldbank":              "World Bank Commodity Prices",
	"fred":                   "Federal Reserve (FRED)",
	"yahoo_finance":          "Yahoo Finance",
	"metalpriceapi":          "MetalpriceAPI (daily)",
}

// NewCoverageReport builds the report view model from a merge result.
// Sources are listed in the given priority order; sources present in the
// stats but absent from the order (untracked extras) follow alphabetically.
func NewCoverageReport(s goldspot.Series, used, full goldspot.CoverageMap, order []string, latestFile string) *CoverageReport {
	r := &CoverageReport{
		Generated:  goldspot.Today().String(),
		LatestFile: latestFile,
		Total:      len(s),
	}
	if from, to := s.Range(); !from.IsZero() {
		r.From, r.To = from.String(), to.String()
	}
	if len(s) > 0 {
		last := s[len(s)-1]
		r.Latest = &PricePoint{Date: last.Date.String(), Price: last.Price.String(), Currency: last.Currency}
	}

	seen := make(map[string]bool, len(order))
	for _, name := range order {
		seen[name] = true
	}
	var extras []string
	for name := range full {
		if !seen[name] {
			extras = append(extras, name)
		}
	}
	sort.Strings(extras)

	for _, name := range append(append([]string{}, order...), extras...) {
		fullStat, ok := full[name]
		if !ok {
			continue // configured but never fetched
		}
		line := SourceLine{
			Name:        name,
			DisplayName: name,
			Full:        rangeLine(fullStat),
		}
		if display, ok := displayNames[name]; ok {
			line.DisplayName = display
		}
		line.Used = usedLine(used, name)
		r.Sources = append(r.Sources, line)
	}
	return r
}

// usedLine aggregates a source's surviving rows. Normalization extends tags
// with lineage notes ("worldbank (converted)"), so a source's used coverage
// may be spread over the plain tag and its annotated variants.
func usedLine(used goldspot.CoverageMap, name string) *RangeLine {
	var line *RangeLine
	for tag, c := range used {
		if tag != name && !strings.HasPrefix(tag, name+" (") {
			continue
		}
		if line == nil {
			line = rangeLine(c)
			continue
		}
		line.Count += c.Count
		if c.Start.String() < line.Start {
			line.Start = c.Start.String()
		}
		if c.End.String() > line.End {
			line.End = c.End.String()
		}
	}
	return line
}

func rangeLine(c goldspot.SourceCoverage) *RangeLine {
	return &RangeLine{Count: c.Count, Start: c.Start.String(), End: c.End.String()}
}
