package goldspot

import (
	"iter"
	"slices"
	"sort"

	"github.com/shopspring/decimal"
)

// History stores a chronological series of decimal values, each associated
// with a specific date. It ensures that dates are unique and the series is
// always sorted. It backs the exchange-rate and ratio series.
type History struct {
	days   []Date
	values []decimal.Decimal
}

// Len returns the number of items in the history.
func (h *History) Len() int { return len(h.days) }

// Latest returns the latest date and value in the history.
// If the history is empty, it returns zero values.
func (h *History) Latest() (day Date, value decimal.Decimal) {
	last := len(h.days) - 1
	if last < 0 {
		return Date{}, decimal.Decimal{}
	}
	return h.days[last], h.values[last]
}

// chronological is a private implementation to make this history chronologically sorted.
type chronological struct{ *History }

func (s chronological) Len() int           { return len(s.days) }
func (s chronological) Less(i, j int) bool { return s.days[i].Before(s.days[j]) }
func (s chronological) Swap(i, j int) {
	s.days[i], s.days[j] = s.days[j], s.days[i]
	s.values[i], s.values[j] = s.values[j], s.values[i]
}

// Append adds a point to the history.
//
// An existing value at that date is overwritten: the last appended data has
// the higher priority.
func (h *History) Append(on Date, v decimal.Decimal) *History {
	if i := slices.Index(h.days, on); i >= 0 {
		h.values[i] = v
		return h
	}
	h.days, h.values = append(h.days, on), append(h.values, v)
	sort.Sort(chronological{h})
	return h
}

// Get returns the value at 'day' and true, or zero value and false.
// The join is exact: no nearest-date fallback, no interpolation.
func (h *History) Get(day Date) (decimal.Decimal, bool) {
	i, found := slices.BinarySearchFunc(h.days, day, Date.Compare)
	if found {
		return h.values[i], true
	}
	return decimal.Decimal{}, false
}

// Values returns an iterator over all date/value pairs in chronological order.
func (h *History) Values() iter.Seq2[Date, decimal.Decimal] {
	return func(yield func(Date, decimal.Decimal) bool) {
		for i, on := range h.days {
			if !yield(on, h.values[i]) {
				return
			}
		}
	}
}

// YearEnd reduces the history to one value per calendar year.
//
// When several rows fall in the same year, the chronologically latest one
// wins. This is the join table for annual-to-daily broadcast.
func (h *History) YearEnd() map[int]decimal.Decimal {
	out := make(map[int]decimal.Decimal, len(h.days))
	// days are sorted, so a plain overwrite keeps the latest row of each year.
	for i, on := range h.days {
		out[on.Year()] = h.values[i]
	}
	return out
}

// ExchangeRates is a dated series of conversion rates between two currencies:
// units of To per one unit of From. Typically annual granularity.
type ExchangeRates struct {
	From string
	To   string
	History
}
