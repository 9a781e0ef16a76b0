package fetch

import (
	"fmt"
	"log"
	"time"

	"github.com/PaesslerAG/jsonpath"
	"github.com/freeprice/goldspot"
	"github.com/shopspring/decimal"
)

// This file fetches daily gold futures closes (ticker GC=F, in dollars) from
// the Yahoo Finance chart API. This is the highest-granularity source,
// covering the gap after the monthly Pink Sheet data ends.

// yahooStart is where the daily series picks up from the monthly sources.
var yahooStart = goldspot.NewDate(2025, time.January, 1)

// YahooPrices fetches daily gold futures closes from yahooStart to today.
func YahooPrices() (goldspot.Series, error) {
	return yahooPricesBetween(yahooStart, goldspot.Today())
}

func yahooPricesBetween(from, to goldspot.Date) (goldspot.Series, error) {
	addr := fmt.Sprintf("https://query1.finance.yahoo.com/v8/finance/chart/GC=F?period1=%d&period2=%d&interval=1d",
		time.Date(from.Year(), from.Month(), from.Day(), 0, 0, 0, 0, time.UTC).Unix(),
		// period2 is exclusive, push it past the last day
		time.Date(to.Year(), to.Month(), to.Day(), 0, 0, 0, 0, time.UTC).Unix()+86400)

	var jobj any
	if err := jwget(newDailyCachingClient(), addr, &jobj); err != nil {
		return nil, fmt.Errorf("cannot fetch yahoo chart: %w", err)
	}
	s, err := parseYahooChart(jobj)
	if err != nil {
		return nil, err
	}
	log.Printf("fetched %d daily yahoo points", len(s))
	return s, nil
}

// parseYahooChart extracts the timestamp and close arrays from a chart API
// response. Days the market is open but the close is still null (holidays
// leaking into the range) are skipped.
func parseYahooChart(jobj any) (goldspot.Series, error) {
	timestamps, err := yahooArray(jobj, "$.chart.result[0].timestamp")
	if err != nil {
		return nil, err
	}
	closes, err := yahooArray(jobj, "$.chart.result[0].indicators.quote[0].close")
	if err != nil {
		return nil, err
	}
	if len(timestamps) != len(closes) {
		return nil, fmt.Errorf("yahoo chart: %d timestamps but %d closes", len(timestamps), len(closes))
	}

	s := make(goldspot.Series, 0, len(timestamps))
	for i, jts := range timestamps {
		ts, ok := jts.(float64)
		if !ok {
			return nil, fmt.Errorf("yahoo chart: timestamp %d is not a number: %v", i, jts)
		}
		price, ok := closes[i].(float64)
		if !ok {
			continue // null close
		}
		day := time.Unix(int64(ts), 0).UTC()
		s = append(s, goldspot.Observation{
			Date:     goldspot.NewDate(day.Year(), day.Month(), day.Day()),
			Price:    decimal.NewFromFloat(price),
			Currency: goldspot.USD,
		})
	}
	if len(s) == 0 {
		return nil, fmt.Errorf("yahoo chart: no usable closes")
	}
	return s, nil
}

func yahooArray(jobj any, path string) ([]any, error) {
	jval, err := jsonpath.Get(path, jobj)
	if err != nil {
		return nil, fmt.Errorf("error parsing yahoo chart: %q %w", path, err)
	}
	jlist, ok := jval.([]any)
	if !ok {
		return nil, fmt.Errorf("error parsing yahoo chart: %q is not an array", path)
	}
	return jlist, nil
}
