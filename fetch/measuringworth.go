package fetch

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"log"
	"strconv"
	"strings"
	"time"

	"github.com/freeprice/goldspot"
	"github.com/shopspring/decimal"
)

// This file fetches the MeasuringWorth historical datasets: annual gold price
// series reaching back to 1257, the gold/silver ratio, and the dollar-pound
// exchange rate. All exports share the same CSV shape: two rows of note and
// citation, a header row, then year/value records with comma thousands
// separators.

const measuringworthBase = "https://www.measuringworth.com/datasets"

// First and last year of each gold series. The export endpoint wants explicit
// bounds; open-ended series run until the current year.
var mwStartYears = map[string]int{
	"British":    1257,
	"goldsilver": 1687,
	"london":     1718,
	"us":         1786,
	"newyork":    1791,
}

var mwEndYears = map[string]int{
	"British": 1945,
	"us":      2020,
}

func measuringworthURL(dataset, series string) string {
	start, ok := mwStartYears[series]
	if !ok {
		start = 1718
	}
	end, ok := mwEndYears[series]
	if !ok {
		end = time.Now().Year()
	}
	return fmt.Sprintf("%s/%s/export.php?year_source=%d&year_result=%d&%s=on", measuringworthBase, dataset, start, end, series)
}

// MeasuringworthPrices fetches one annual gold price series from
// MeasuringWorth. Known series are "British" (official price, 1257-1945),
// "london" (market price, in pounds until 1949 then dollars), "us",
// and "newyork".
func MeasuringworthPrices(series string) (goldspot.Series, error) {
	addr := measuringworthURL("gold", series)
	content, err := wget(newMonthlyCachingClient(), addr)
	if err != nil {
		return nil, fmt.Errorf("cannot fetch measuringworth %q: %w", series, err)
	}
	return parseMeasuringworth(content, series)
}

// parseMeasuringworth decodes a MeasuringWorth gold export into annual
// observations dated January 1st, with the currency each series is actually
// quoted in: the British official price is in pounds throughout, the London
// market price switches from pounds to dollars in 1950.
func parseMeasuringworth(content []byte, series string) (goldspot.Series, error) {
	years, values, err := parseMeasuringworthTable(content)
	if err != nil {
		return nil, fmt.Errorf("cannot parse measuringworth %q: %w", series, err)
	}

	s := make(goldspot.Series, 0, len(years))
	for i, year := range years {
		currency := goldspot.USD
		switch {
		case series == "British":
			currency = goldspot.GBP
		case series == "london" && year < 1950:
			currency = goldspot.GBP
		}
		s = append(s, goldspot.Observation{
			Date:     goldspot.NewDate(year, time.January, 1),
			Price:    values[i],
			Currency: currency,
		})
	}
	return s, nil
}

// parseMeasuringworthTable decodes the shared export layout into parallel
// year/value slices. Rows with an unparseable year or value (blank cells in
// the older data) are skipped.
func parseMeasuringworthTable(content []byte) (years []int, values []decimal.Decimal, err error) {
	cr := csv.NewReader(bytes.NewReader(content))
	cr.FieldsPerRecord = -1
	records, err := cr.ReadAll()
	if err != nil {
		return nil, nil, err
	}
	// two note rows and a header row before the data
	if len(records) < 4 {
		return nil, nil, fmt.Errorf("export too short: %d rows", len(records))
	}
	for _, record := range records[3:] {
		if len(record) < 2 {
			continue
		}
		year, err := strconv.Atoi(strings.TrimSpace(record[0]))
		if err != nil {
			continue
		}
		value, err := decimal.NewFromString(strings.ReplaceAll(strings.TrimSpace(record[1]), ",", ""))
		if err != nil {
			continue
		}
		years = append(years, year)
		values = append(values, value)
	}
	if len(years) == 0 {
		return nil, nil, fmt.Errorf("no data rows in export")
	}
	return years, values, nil
}

// GoldSilverRatio fetches the annual gold/silver price ratio series
// (1687-present): ounces of silver worth one ounce of gold.
func GoldSilverRatio() (*goldspot.History, error) {
	addr := measuringworthURL("gold", "goldsilver")
	content, err := wget(newMonthlyCachingClient(), addr)
	if err != nil {
		return nil, fmt.Errorf("cannot fetch gold/silver ratio: %w", err)
	}
	years, values, err := parseMeasuringworthTable(content)
	if err != nil {
		return nil, fmt.Errorf("cannot parse gold/silver ratio: %w", err)
	}
	h := new(goldspot.History)
	for i, year := range years {
		h.Append(goldspot.NewDate(year, time.January, 1), values[i])
	}
	log.Printf("fetched %d annual gold/silver ratio points", h.Len())
	return h, nil
}

// DollarPound fetches the annual dollar-pound exchange rate series
// (1791-present): dollars per pound, for converting the pound-denominated
// gold rows into dollars.
func DollarPound() (*goldspot.ExchangeRates, error) {
	addr := fmt.Sprintf("%s/exchangepound/export.php?year_source=1791&year_result=%d", measuringworthBase, time.Now().Year())
	content, err := wget(newMonthlyCachingClient(), addr)
	if err != nil {
		return nil, fmt.Errorf("cannot fetch dollar-pound rates: %w", err)
	}
	years, values, err := parseMeasuringworthTable(content)
	if err != nil {
		return nil, fmt.Errorf("cannot parse dollar-pound rates: %w", err)
	}
	rates := &goldspot.ExchangeRates{From: goldspot.GBP, To: goldspot.USD}
	for i, year := range years {
		rates.Append(goldspot.NewDate(year, time.January, 1), values[i])
	}
	log.Printf("fetched %d annual dollar-pound rates", rates.Len())
	return rates, nil
}
