package fetch

import (
	"fmt"
	"log"
	"os"
	"time"

	"github.com/freeprice/goldspot"
	"github.com/shopspring/decimal"
)

// This file fetches the London afternoon gold fixing from FRED (Federal
// Reserve Economic Data), daily since April 1968. Disabled by default, it is
// an alternative daily source for the 1968-present range.

// fredSeries is the Gold Fixing Price 3:00 PM London time, USD per troy ounce.
const fredSeries = "GOLDPMGBD228NLBM"

var fredStart = goldspot.NewDate(1968, time.April, 1)

// FredPrices fetches the daily London fixing series from FRED.
func FredPrices() (goldspot.Series, error) {
	key := os.Getenv("FRED_API_KEY")
	if key == "" {
		return nil, fmt.Errorf("FRED_API_KEY environment variable not set")
	}
	addr := fmt.Sprintf("https://api.stlouisfed.org/fred/series/observations?series_id=%s&api_key=%s&file_type=json&observation_start=%s&observation_end=%s",
		fredSeries, key, fredStart, goldspot.Today())

	var payload struct {
		Observations []struct {
			Date  goldspot.Date `json:"date"`
			Value string        `json:"value"`
		} `json:"observations"`
	}
	if err := jwget(newDailyCachingClient(), addr, &payload); err != nil {
		return nil, fmt.Errorf("cannot fetch fred series: %w", err)
	}
	if len(payload.Observations) == 0 {
		return nil, fmt.Errorf("fred: no observations returned")
	}

	s := make(goldspot.Series, 0, len(payload.Observations))
	for _, obs := range payload.Observations {
		if obs.Value == "." { // FRED's missing-value marker
			continue
		}
		price, err := decimal.NewFromString(obs.Value)
		if err != nil {
			log.Printf("warning: skipping fred %s: invalid value %q", obs.Date, obs.Value)
			continue
		}
		s = append(s, goldspot.Observation{Date: obs.Date, Price: price, Currency: goldspot.USD})
	}
	if len(s) == 0 {
		return nil, fmt.Errorf("fred: no usable observations")
	}
	log.Printf("fetched %d daily fred points", len(s))
	return s, nil
}
