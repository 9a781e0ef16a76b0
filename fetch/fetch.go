package fetch

import (
	"fmt"
	"strings"

	"github.com/freeprice/goldspot"
)

// Backfill fetches one configured source and tags every row with the source
// id, so the core can attribute coverage without knowing providers.
//
// Source names are stable across runs; the measuringworth prefix covers one
// entry per dataset series (e.g. "measuringworth_british").
func Backfill(src goldspot.SourceConfig) (goldspot.Series, error) {
	s, err := fetchBackfill(src)
	if err != nil {
		return nil, err
	}
	if err := s.Validate(); err != nil {
		return nil, fmt.Errorf("source %q produced invalid rows: %w", src.Name, err)
	}
	return s.Tagged(src.Name), nil
}

func fetchBackfill(src goldspot.SourceConfig) (goldspot.Series, error) {
	switch {
	case strings.HasPrefix(src.Name, "measuringworth"):
		series := src.Series
		if series == "" {
			series = "london"
		}
		return MeasuringworthPrices(series)
	case src.Name == "worldbank":
		return WorldbankPrices()
	case src.Name == "yahoo_finance":
		return YahooPrices()
	case src.Name == "metalpriceapi":
		return MetalpriceHistory()
	case src.Name == "fred":
		return FredPrices()
	default:
		return nil, fmt.Errorf("unknown backfill source %q", src.Name)
	}
}
