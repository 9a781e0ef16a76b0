package goldspot

import (
	"encoding/csv"
	"fmt"
	"io"
	"log"
	"strings"

	"github.com/shopspring/decimal"
)

// This file contains the codec for the tabular price artifact: a CSV with
// columns date,price[,currency], sorted by date ascending. The currency
// column is written only when at least one row carries a tag, matching the
// layout published by previous runs.

// EncodeSeries writes the series as a CSV artifact.
func EncodeSeries(w io.Writer, s Series) error {
	withCurrency := false
	for _, o := range s {
		if o.Currency != "" {
			withCurrency = true
			break
		}
	}

	cw := csv.NewWriter(w)
	header := []string{"date", "price"}
	if withCurrency {
		header = append(header, "currency")
	}
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("cannot write csv header: %w", err)
	}
	for _, o := range s {
		record := []string{o.Date.String(), o.Price.String()}
		if withCurrency {
			record = append(record, o.Currency)
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("cannot write csv record for %s: %w", o.Date, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// DecodeSeries reads a CSV artifact, tagging every row with the given source
// id (which may be empty for untagged fallback data).
//
// A record that fails basic shape validation (unparseable date or price) is
// dropped with a logged warning; the rest of the series is kept. Only a
// malformed file as a whole is an error.
func DecodeSeries(r io.Reader, source string) (Series, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("cannot read csv: %w", err)
	}
	if len(records) == 0 {
		return Series{}, nil
	}

	// Locate columns from the header row.
	dateCol, priceCol, currencyCol := 0, 1, -1
	start := 0
	if h := records[0]; len(h) > 0 && strings.EqualFold(strings.TrimSpace(h[0]), "date") {
		start = 1
		for i, name := range h {
			switch strings.ToLower(strings.TrimSpace(name)) {
			case "date":
				dateCol = i
			case "price":
				priceCol = i
			case "currency":
				currencyCol = i
			}
		}
	}

	series := make(Series, 0, len(records)-start)
	for i := start; i < len(records); i++ {
		record := records[i]
		if len(record) <= priceCol {
			log.Printf("warning: dropping record %d: want at least %d columns, got %d", i+1, priceCol+1, len(record))
			continue
		}
		on, err := ParseDate(record[dateCol])
		if err != nil {
			log.Printf("warning: dropping record %d: %v", i+1, err)
			continue
		}
		price, err := decimal.NewFromString(strings.ReplaceAll(record[priceCol], ",", ""))
		if err != nil {
			log.Printf("warning: dropping record %d (%s): invalid price %q", i+1, on, record[priceCol])
			continue
		}
		o := Observation{Date: on, Price: price, Source: source}
		if currencyCol >= 0 && currencyCol < len(record) {
			o.Currency = strings.TrimSpace(record[currencyCol])
		}
		series = append(series, o)
	}
	return series, nil
}
