package fetch

import (
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/freeprice/goldspot"
	"github.com/shopspring/decimal"
	"github.com/tealeg/xlsx/v2"
)

// This file fetches the World Bank Commodity Price Data ("Pink Sheet"): a
// spreadsheet of monthly commodity prices since 1960, of which we keep the
// gold column (USD per troy ounce, London afternoon fixing average).

const worldbankURL = "https://thedocs.worldbank.org/en/doc/5d903e848db1d1b83e0ec8f744e55570-0350012021/related/CMO-Historical-Data-Monthly.xlsx"

const worldbankSheet = "Monthly Prices"

// worldbankHeaderRow is the row holding commodity names; the rows above carry
// titles and units.
const worldbankHeaderRow = 4

// WorldbankPrices fetches the monthly gold price series from the World Bank
// Pink Sheet, dated the first of each month.
func WorldbankPrices() (goldspot.Series, error) {
	content, err := wget(newMonthlyCachingClient(), worldbankURL)
	if err != nil {
		return nil, fmt.Errorf("cannot fetch worldbank pink sheet: %w", err)
	}
	// tealeg/xlsx reads from a file path, so spool the download to a temp
	// file first.
	tmp, err := os.CreateTemp("", "worldbank-*.xlsx")
	if err != nil {
		return nil, err
	}
	defer os.Remove(tmp.Name())
	if _, err := tmp.Write(content); err != nil {
		tmp.Close()
		return nil, fmt.Errorf("cannot spool worldbank spreadsheet: %w", err)
	}
	tmp.Close()

	f, err := xlsx.OpenFile(tmp.Name())
	if err != nil {
		return nil, fmt.Errorf("cannot open worldbank spreadsheet: %w", err)
	}
	sheet, ok := f.Sheet[worldbankSheet]
	if !ok {
		return nil, fmt.Errorf("worldbank spreadsheet has no %q sheet", worldbankSheet)
	}
	return parseWorldbankSheet(sheet)
}

func parseWorldbankSheet(sheet *xlsx.Sheet) (goldspot.Series, error) {
	if len(sheet.Rows) <= worldbankHeaderRow {
		return nil, fmt.Errorf("sheet too short: %d rows", len(sheet.Rows))
	}
	goldCol := findGoldColumn(sheet.Rows[worldbankHeaderRow])
	if goldCol < 0 {
		return nil, fmt.Errorf("no gold column in sheet header")
	}

	var s goldspot.Series
	for _, row := range sheet.Rows[worldbankHeaderRow+1:] {
		if len(row.Cells) <= goldCol {
			continue
		}
		on, err := parseWorldbankDate(row.Cells[0].String())
		if err != nil {
			continue // unit rows, blank separators
		}
		value, err := row.Cells[goldCol].Float()
		if err != nil {
			continue
		}
		s = append(s, goldspot.Observation{
			Date:     on,
			Price:    decimal.NewFromFloat(value),
			Currency: goldspot.USD,
		})
	}
	if len(s) == 0 {
		return nil, fmt.Errorf("no gold rows in sheet")
	}
	log.Printf("fetched %d monthly worldbank points", len(s))
	return s, nil
}

// findGoldColumn locates the gold price column in the commodity header row.
// The sheet also has a "Gold (troy oz)" unit variant we must not match.
func findGoldColumn(header *xlsx.Row) int {
	for i, cell := range header.Cells {
		name := strings.ToUpper(cell.String())
		if strings.Contains(name, "GOLD") && !strings.Contains(name, "OUNCE") {
			return i
		}
	}
	return -1
}

// parseWorldbankDate parses the Pink Sheet month labels, e.g. "1960M01",
// into the first day of that month.
func parseWorldbankDate(label string) (goldspot.Date, error) {
	t, err := time.Parse("2006M01", strings.TrimSpace(label))
	if err != nil {
		return goldspot.Date{}, fmt.Errorf("invalid month label %q: %w", label, err)
	}
	return goldspot.NewDate(t.Year(), t.Month(), 1), nil
}
