package fetch

import (
	"testing"

	"github.com/freeprice/goldspot"
)

// A shortened MeasuringWorth export: note row, citation row, header, data.
// Older exports carry comma thousands separators and occasional blank cells.
const mwSample = `"The Price of Gold, 1257-2014"
"Citation: Lawrence H. Officer and Samuel H. Williamson, MeasuringWorth, 2025"
Year,$/oz
1948,"1,102.50"
1949,248.30
1950,250.10
1951,
1952,255.00
`

func TestParseMeasuringworth(t *testing.T) {
	s, err := parseMeasuringworth([]byte(mwSample), "london")
	if err != nil {
		t.Fatalf("parseMeasuringworth() error: %v", err)
	}
	// the blank 1951 value is skipped
	if len(s) != 4 {
		t.Fatalf("parsed %d rows, want 4", len(s))
	}

	first := s[0]
	if first.Date != goldspot.NewDate(1948, 1, 1) {
		t.Errorf("first date = %s, want 1948-01-01 (annual rows pinned to January 1st)", first.Date)
	}
	if first.Price.String() != "1102.50" && first.Price.String() != "1102.5" {
		t.Errorf("first price = %s, want 1102.5 (thousands separator stripped)", first.Price)
	}
}

func TestParseMeasuringworthCurrencies(t *testing.T) {
	tests := []struct {
		series string
		year   int
		want   string
	}{
		{"British", 1948, goldspot.GBP},
		{"london", 1948, goldspot.GBP}, // pounds until 1949
		{"london", 1950, goldspot.USD}, // dollars from 1950
		{"newyork", 1948, goldspot.USD},
	}
	for _, tc := range tests {
		s, err := parseMeasuringworth([]byte(mwSample), tc.series)
		if err != nil {
			t.Fatalf("parseMeasuringworth(%s) error: %v", tc.series, err)
		}
		for _, o := range s {
			if o.Date.Year() != tc.year {
				continue
			}
			if o.Currency != tc.want {
				t.Errorf("%s %d: currency = %q, want %q", tc.series, tc.year, o.Currency, tc.want)
			}
		}
	}
}

func TestParseMeasuringworthTableRejectsGarbage(t *testing.T) {
	if _, _, err := parseMeasuringworthTable([]byte("just,one,row\n")); err == nil {
		t.Errorf("parseMeasuringworthTable() accepted a truncated export")
	}
	empty := "note\ncitation\nYear,$/oz\nno-year,also-no-value\n"
	if _, _, err := parseMeasuringworthTable([]byte(empty)); err == nil {
		t.Errorf("parseMeasuringworthTable() accepted an export with no data rows")
	}
}
