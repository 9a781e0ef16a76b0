package goldspot

import (
	"fmt"
	"sort"

	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"
)

// Currencies and units of account an observation may be denominated in.
// This set is closed: adapters must normalize anything else before handing
// data to the core.
const (
	USD = "USD" // US dollar per troy ounce
	GBP = "GBP" // pound sterling per troy ounce
	XAG = "XAG" // troy ounces of silver per troy ounce (metallic unit of account)
)

// ValidUnit reports whether code is an accepted currency or unit of account.
func ValidUnit(code string) bool {
	switch code {
	case XAG:
		return true
	default:
		return money.GetCurrency(code) != nil
	}
}

// Observation is a single dated price point from one source.
type Observation struct {
	Date     Date
	Price    decimal.Decimal
	Currency string // currency or unit of account, empty when the source did not carry one
	Source   string // logical source id, possibly extended with a lineage note
	// Ratio is an auxiliary field set only by ratio enrichment: ounces of
	// silver per ounce of gold on that exact date.
	Ratio decimal.NullDecimal
}

// Series is an ordered sequence of observations, typically all from one
// source at one nominal granularity (annual, monthly or daily). It may be
// sparse or irregular.
type Series []Observation

// SortByDate sorts the series chronologically, in place.
// The sort is stable so same-date rows keep their relative order.
func (s Series) SortByDate() {
	sort.SliceStable(s, func(i, j int) bool { return s[i].Date.Before(s[j].Date) })
}

// Range returns the earliest and latest observation dates.
// Both are zero when the series is empty.
func (s Series) Range() (from, to Date) {
	for _, o := range s {
		if from.IsZero() || o.Date.Before(from) {
			from = o.Date
		}
		if to.IsZero() || o.Date.After(to) {
			to = o.Date
		}
	}
	return from, to
}

// Tagged returns a copy of the series with every observation tagged with the
// given source id. Adapters use it so the core never has to know which
// provider a row came from.
func (s Series) Tagged(source string) Series {
	out := make(Series, len(s))
	for i, o := range s {
		o.Source = source
		out[i] = o
	}
	return out
}

// Validate checks basic shape: no zero dates and only known currency tags.
func (s Series) Validate() error {
	for i, o := range s {
		if o.Date.IsZero() {
			return fmt.Errorf("observation %d: zero date", i)
		}
		if o.Currency != "" && !ValidUnit(o.Currency) {
			return fmt.Errorf("observation %d (%s): unknown currency or unit %q", i, o.Date, o.Currency)
		}
	}
	return nil
}
