package goldspot

import "github.com/shopspring/decimal"

// EnrichRatio attaches the gold/silver ratio to every row that has a ratio
// observation for the exact same date. Prices are untouched; rows without a
// same-date ratio keep an absent Ratio field. No fallback join.
func EnrichRatio(s Series, ratios *History) Series {
	out := make(Series, len(s))
	for i, o := range s {
		if r, ok := ratios.Get(o.Date); ok {
			o.Ratio = decimal.NewNullDecimal(r)
		}
		out[i] = o
	}
	return out
}

// NormalizeRatio re-denominates the series in ounces of silver, discarding
// the currency price entirely.
//
// Ratio data is predominantly annual while prices may be daily, so the join
// key is the calendar year: the ratio series is reduced to one value per year
// (the chronologically latest when several rows share a year) and that value
// is broadcast to every row of the year. Rows whose year has no ratio are
// dropped: an intentional filter, not an error. Surviving rows are tagged
// "(ratio-normalized)" and denominated XAG.
func NormalizeRatio(s Series, ratios *History) Series {
	years := ratios.YearEnd()
	out := make(Series, 0, len(s))
	for _, o := range s {
		r, ok := years[o.Date.Year()]
		if !ok {
			continue
		}
		o.Price = r
		o.Currency = XAG
		o.Ratio = decimal.NullDecimal{}
		o.Source = annotate(o.Source, noteRatioNormalized)
		out = append(out, o)
	}
	return out
}
