package goldspot

import (
	"errors"
	"fmt"
	"log"
)

// ErrNoSources is returned when a run has nothing at all to merge: every
// configured source was missing or empty and no fallback artifact could be
// read. It is the one fatal condition of a run; anything less is recovered
// locally and the run continues with what remains.
var ErrNoSources = errors.New("no data sources available to merge")

// Result is the outcome of one merge run.
type Result struct {
	Canonical Series
	Used      CoverageMap // coverage of the rows that survived deduplication
	Full      CoverageMap // raw coverage of every source before deduplication
}

// RateSource lazily provides the exchange-rate series; it is consulted only
// when the configuration asks for currency normalization.
type RateSource func() (*ExchangeRates, error)

// RatioSource lazily provides the gold/silver ratio series; it is consulted
// only when the configuration asks for a ratio step.
type RatioSource func() (*History, error)

// Run executes the merge and normalization pipeline over fully materialized
// source series, ordered lowest to highest priority. Priority-based
// deduplication needs global knowledge of every contributor before a date's
// winner is final, so there is no streaming variant.
func Run(cfg Config, sources []Series, rates RateSource, ratios RatioSource) (*Result, error) {
	nonEmpty := make([]Series, 0, len(sources))
	for _, s := range sources {
		if len(s) > 0 {
			nonEmpty = append(nonEmpty, s)
		}
	}
	if len(nonEmpty) == 0 {
		return nil, ErrNoSources
	}

	var result Result
	if cfg.MergeStrategy.PreferHigherGranularity {
		result.Canonical, result.Used, result.Full = Reconcile(nonEmpty...)
	} else {
		// Debug mode: keep every raw row, date collisions included.
		var all Series
		for _, s := range nonEmpty {
			all = append(all, s...)
		}
		all.SortByDate()
		result.Canonical = all
		result.Full = Coverage(all)
		result.Used = result.Full
	}

	if cfg.Currency != "" {
		r, err := rates()
		if err != nil {
			return nil, fmt.Errorf("cannot load exchange rates: %w", err)
		}
		if r.To != cfg.Currency {
			return nil, fmt.Errorf("exchange rate series targets %s, config wants %s", r.To, cfg.Currency)
		}
		result.Canonical = ConvertCurrency(result.Canonical, r)
		result.Used = Coverage(result.Canonical)
	}

	switch cfg.Ratio {
	case RatioOff:
	case RatioEnrich:
		r, err := ratios()
		if err != nil {
			return nil, fmt.Errorf("cannot load ratio series: %w", err)
		}
		result.Canonical = EnrichRatio(result.Canonical, r)
	case RatioFull:
		r, err := ratios()
		if err != nil {
			return nil, fmt.Errorf("cannot load ratio series: %w", err)
		}
		before := len(result.Canonical)
		result.Canonical = NormalizeRatio(result.Canonical, r)
		result.Used = Coverage(result.Canonical)
		if dropped := before - len(result.Canonical); dropped > 0 {
			log.Printf("ratio normalization dropped %d rows with no ratio year", dropped)
		}
	default:
		return nil, fmt.Errorf("unknown ratio mode %q", cfg.Ratio)
	}

	return &result, nil
}
