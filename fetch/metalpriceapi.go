package fetch

import (
	"fmt"
	"log"
	"os"
	"time"

	"github.com/freeprice/goldspot"
	"github.com/shopspring/decimal"
)

// This file fetches current and recent gold prices from MetalpriceAPI. The
// API quotes rates as XAU per unit of base currency, so the dollar price per
// troy ounce is the inverse of the returned rate.

const metalpriceBase = "https://api.metalpriceapi.com/v1"

func metalpriceKey() (string, error) {
	key := os.Getenv("METALPRICE_API_KEY")
	if key == "" {
		return "", fmt.Errorf("METALPRICE_API_KEY environment variable not set")
	}
	return key, nil
}

// MetalpriceLatest fetches the current spot price, dated today.
func MetalpriceLatest() (goldspot.Observation, error) {
	key, err := metalpriceKey()
	if err != nil {
		return goldspot.Observation{}, err
	}
	addr := fmt.Sprintf("%s/latest?api_key=%s&base=USD&currencies=XAU", metalpriceBase, key)

	var payload struct {
		Success bool               `json:"success"`
		Rates   map[string]float64 `json:"rates"`
	}
	if err := jwget(newDailyCachingClient(), addr, &payload); err != nil {
		return goldspot.Observation{}, fmt.Errorf("cannot fetch metalpriceapi latest: %w", err)
	}
	if !payload.Success {
		return goldspot.Observation{}, fmt.Errorf("metalpriceapi returned an error payload")
	}
	rate, ok := payload.Rates["XAU"]
	if !ok || rate == 0 {
		return goldspot.Observation{}, fmt.Errorf("metalpriceapi: no usable XAU rate")
	}
	return goldspot.Observation{
		Date:     goldspot.Today(),
		Price:    invertRate(rate),
		Currency: goldspot.USD,
	}, nil
}

// MetalpriceHistory fetches the daily price series of the trailing year, plus
// today's spot price. This is the refresh source between full backfills.
func MetalpriceHistory() (goldspot.Series, error) {
	key, err := metalpriceKey()
	if err != nil {
		return nil, err
	}
	end := goldspot.Today()
	start := end.Add(-365)
	addr := fmt.Sprintf("%s/timeframe?api_key=%s&start_date=%s&end_date=%s&base=USD&currencies=XAU",
		metalpriceBase, key, start, end)

	var payload struct {
		Success bool                          `json:"success"`
		Rates   map[string]map[string]float64 `json:"rates"`
	}
	if err := jwget(newDailyCachingClient(), addr, &payload); err != nil {
		return nil, fmt.Errorf("cannot fetch metalpriceapi timeframe: %w", err)
	}
	if !payload.Success {
		return nil, fmt.Errorf("metalpriceapi returned an error payload")
	}

	var s goldspot.Series
	for day, rates := range payload.Rates {
		rate, ok := rates["XAU"]
		if !ok || rate == 0 {
			continue
		}
		on, err := time.Parse(goldspot.DateFormat, day)
		if err != nil {
			log.Printf("warning: skipping metalpriceapi day %q: %v", day, err)
			continue
		}
		s = append(s, goldspot.Observation{
			Date:     goldspot.NewDate(on.Date()),
			Price:    invertRate(rate),
			Currency: goldspot.USD,
		})
	}

	if latest, err := MetalpriceLatest(); err != nil {
		log.Printf("warning: no spot price for today: %v", err)
	} else {
		// the timeframe may already carry a row for today; the spot wins
		for i := range s {
			if s[i].Date.Compare(latest.Date) == 0 {
				s = append(s[:i], s[i+1:]...)
				break
			}
		}
		s = append(s, latest)
	}
	if len(s) == 0 {
		return nil, fmt.Errorf("metalpriceapi: no usable rates")
	}
	s.SortByDate()
	log.Printf("fetched %d daily metalpriceapi points", len(s))
	return s, nil
}

func invertRate(rate float64) decimal.Decimal {
	return decimal.NewFromInt(1).Div(decimal.NewFromFloat(rate))
}
