package goldspot

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
)

// SourceConfig describes one backfill source. The Series option selects the
// provider-specific dataset (e.g. the MeasuringWorth "British" vs "london"
// series); the core never reads it.
type SourceConfig struct {
	Name    string `json:"name"`
	Enabled bool   `json:"enabled"`
	Series  string `json:"series,omitempty"`
}

// MergeStrategy toggles date deduplication. With PreferHigherGranularity off
// every raw row is kept, which is only useful for debugging source overlap.
type MergeStrategy struct {
	PreferHigherGranularity bool `json:"prefer_higher_granularity"`
}

// Config is the run configuration, loaded from config.json.
type Config struct {
	// DataDir is the artifact directory.
	DataDir string `json:"data_dir,omitempty"`
	// Sources lists the backfill sources in priority order, lowest to
	// highest trust: on a date collision the later entry wins.
	Sources       []SourceConfig `json:"backfill_sources"`
	MergeStrategy MergeStrategy  `json:"merge_strategy"`
	// Currency, when set, is the target currency the canonical series is
	// normalized into (e.g. "USD").
	Currency string `json:"currency,omitempty"`
	// Ratio selects the metallic normalization mode: "", "enrich" or "full".
	Ratio string `json:"ratio,omitempty"`
	// PublishedURL is the previous run's published artifact, used as a
	// fallback input of last resort.
	PublishedURL string `json:"published_url,omitempty"`
}

// Ratio modes.
const (
	RatioOff    = ""
	RatioEnrich = "enrich"
	RatioFull   = "full"
)

// DefaultConfig returns the configuration used when no config.json exists.
func DefaultConfig() Config {
	return Config{
		DataDir: "data",
		Sources: []SourceConfig{
			{Name: "measuringworth_british", Enabled: true, Series: "British"}, // 1257-1945, annual, oldest, lowest priority
			{Name: "measuringworth_london", Enabled: true, Series: "london"},   // 1718-1959, annual
			{Name: "worldbank", Enabled: true},                                 // 1960-2024, monthly
			{Name: "yahoo_finance", Enabled: true},                             // 2025-present, daily, highest priority
		},
		MergeStrategy: MergeStrategy{PreferHigherGranularity: true},
		PublishedURL:  "https://freeprice.gold/data/latest.csv",
	}
}

// LoadConfig reads the configuration file. A missing file is not an error:
// the defaults are returned, with a logged notice.
func LoadConfig(path string) (Config, error) {
	content, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		log.Printf("config file %s not found, using defaults", path)
		return DefaultConfig(), nil
	}
	if err != nil {
		return Config{}, fmt.Errorf("cannot read config %q: %w", path, err)
	}
	cfg := DefaultConfig()
	if err := json.Unmarshal(content, &cfg); err != nil {
		return Config{}, fmt.Errorf("format error in %q: %w", path, err)
	}
	if err := cfg.validate(); err != nil {
		return Config{}, fmt.Errorf("invalid config %q: %w", path, err)
	}
	return cfg, nil
}

func (c Config) validate() error {
	switch c.Ratio {
	case RatioOff, RatioEnrich, RatioFull:
	default:
		return fmt.Errorf("unknown ratio mode %q (want enrich or full)", c.Ratio)
	}
	if c.Currency != "" && !ValidUnit(c.Currency) {
		return fmt.Errorf("unknown target currency %q", c.Currency)
	}
	seen := make(map[string]bool, len(c.Sources))
	for _, src := range c.Sources {
		if src.Name == "" {
			return fmt.Errorf("backfill source with empty name")
		}
		if seen[src.Name] {
			return fmt.Errorf("backfill source %q listed twice", src.Name)
		}
		seen[src.Name] = true
	}
	return nil
}

// PriorityOrder returns the enabled source ids, lowest to highest priority.
func (c Config) PriorityOrder() []string {
	order := make([]string, 0, len(c.Sources))
	for _, src := range c.Sources {
		if src.Enabled {
			order = append(order, src.Name)
		}
	}
	return order
}
