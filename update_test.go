package goldspot

import (
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

func noRates() (*ExchangeRates, error) { return nil, errors.New("no rates in this test") }
func noRatios() (*History, error)      { return nil, errors.New("no ratios in this test") }

func dedupCfg() Config {
	return Config{MergeStrategy: MergeStrategy{PreferHigherGranularity: true}}
}

func TestRunNoSources(t *testing.T) {
	_, err := Run(dedupCfg(), nil, noRates, noRatios)
	if !errors.Is(err, ErrNoSources) {
		t.Fatalf("Run() with no sources = %v, want ErrNoSources", err)
	}
	_, err = Run(dedupCfg(), []Series{{}, {}}, noRates, noRatios)
	if !errors.Is(err, ErrNoSources) {
		t.Fatalf("Run() with only empty sources = %v, want ErrNoSources", err)
	}
}

func TestRunMerges(t *testing.T) {
	low := Series{obs("2020-01-01", "100", "low"), obs("2020-01-02", "101", "low")}
	high := Series{obs("2020-01-02", "201", "high")}

	result, err := Run(dedupCfg(), []Series{low, high}, noRates, noRatios)
	if err != nil {
		t.Fatalf("Run() error: %v", err)
	}
	if len(result.Canonical) != 2 {
		t.Fatalf("canonical has %d rows, want 2", len(result.Canonical))
	}
	if result.Canonical[1].Source != "high" {
		t.Errorf("collision winner = %q, want %q", result.Canonical[1].Source, "high")
	}
	if result.Full["low"].Count != 2 || result.Used["low"].Count != 1 {
		t.Errorf("low full/used = %d/%d, want 2/1", result.Full["low"].Count, result.Used["low"].Count)
	}
}

func TestRunKeepAll(t *testing.T) {
	// Debug mode: deduplication off keeps colliding rows.
	cfg := Config{MergeStrategy: MergeStrategy{PreferHigherGranularity: false}}
	low := Series{obs("2020-01-01", "100", "low")}
	high := Series{obs("2020-01-01", "200", "high")}

	result, err := Run(cfg, []Series{low, high}, noRates, noRatios)
	if err != nil {
		t.Fatalf("Run() error: %v", err)
	}
	if len(result.Canonical) != 2 {
		t.Fatalf("canonical has %d rows, want both collision rows kept", len(result.Canonical))
	}
}

func TestRunCurrencyNormalization(t *testing.T) {
	cfg := dedupCfg()
	cfg.Currency = USD

	in := Series{
		{Date: MustParse("1800-01-01"), Price: decimal.RequireFromString("4.25"), Currency: GBP, Source: "mw"},
	}
	rates := func() (*ExchangeRates, error) {
		r := &ExchangeRates{From: GBP, To: USD}
		r.Append(NewDate(1800, time.January, 1), decimal.RequireFromString("4.5"))
		return r, nil
	}

	result, err := Run(cfg, []Series{in}, rates, noRatios)
	if err != nil {
		t.Fatalf("Run() error: %v", err)
	}
	o := result.Canonical[0]
	if o.Currency != USD || o.Price.String() != "19.125" {
		t.Errorf("converted row = %s %s, want 19.125 USD", o.Price, o.Currency)
	}
	// used stats follow the annotated tags
	if _, ok := result.Used["mw (converted)"]; !ok {
		t.Errorf("used stats lack the converted tag: %v", result.Used)
	}
}

func TestRunCurrencyMismatch(t *testing.T) {
	cfg := dedupCfg()
	cfg.Currency = GBP

	rates := func() (*ExchangeRates, error) {
		return &ExchangeRates{From: GBP, To: USD}, nil
	}
	_, err := Run(cfg, []Series{{obs("2020-01-01", "1", "x")}}, rates, noRatios)
	if err == nil {
		t.Fatalf("Run() accepted a rate series targeting the wrong currency")
	}
}

func TestRunRatioModes(t *testing.T) {
	ratios := func() (*History, error) {
		h := new(History)
		h.Append(NewDate(2020, time.January, 1), decimal.RequireFromString("85"))
		return h, nil
	}
	in := Series{
		obs("2020-01-01", "1500", "x"),
		obs("2021-01-01", "1700", "x"), // no 2021 ratio
	}

	t.Run("enrich", func(t *testing.T) {
		cfg := dedupCfg()
		cfg.Ratio = RatioEnrich
		result, err := Run(cfg, []Series{in}, noRates, ratios)
		if err != nil {
			t.Fatalf("Run() error: %v", err)
		}
		if len(result.Canonical) != 2 {
			t.Fatalf("enrich dropped rows: %d, want 2", len(result.Canonical))
		}
		if !result.Canonical[0].Ratio.Valid || result.Canonical[1].Ratio.Valid {
			t.Errorf("ratio flags = %v/%v, want set/absent",
				result.Canonical[0].Ratio.Valid, result.Canonical[1].Ratio.Valid)
		}
	})

	t.Run("full", func(t *testing.T) {
		cfg := dedupCfg()
		cfg.Ratio = RatioFull
		result, err := Run(cfg, []Series{in}, noRates, ratios)
		if err != nil {
			t.Fatalf("Run() error: %v", err)
		}
		if len(result.Canonical) != 1 {
			t.Fatalf("full normalization kept %d rows, want 1 (no 2021 ratio)", len(result.Canonical))
		}
		if result.Canonical[0].Currency != XAG {
			t.Errorf("currency = %q, want XAG", result.Canonical[0].Currency)
		}
	})

	t.Run("unknown mode", func(t *testing.T) {
		cfg := dedupCfg()
		cfg.Ratio = "sometimes"
		if _, err := Run(cfg, []Series{in}, noRates, ratios); err == nil {
			t.Fatalf("Run() accepted an unknown ratio mode")
		}
	})
}
