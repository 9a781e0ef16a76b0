package goldspot

// ConvertCurrency rewrites the series into the rates' target currency.
//
// The join is exact-date equality only: a row denominated in rates.From whose
// date has a rate is multiplied by that rate and retagged rates.To, with its
// lineage extended with "(converted)". A row with no rate for its exact date
// is kept as is, in its original currency, annotated "(unconverted: no rate)".
// Rows already in the target currency pass through untouched, which makes the
// operation idempotent. No nearest-date fallback, no interpolation: historical
// annual rate tables do not support fabricated daily precision.
func ConvertCurrency(s Series, rates *ExchangeRates) Series {
	out := make(Series, 0, len(s))
	for _, o := range s {
		if o.Currency == rates.To {
			out = append(out, o)
			continue
		}
		if o.Currency != rates.From {
			// Outside the rate pair entirely: same policy as a missing rate.
			o.Source = annotate(o.Source, noteUnconverted)
			out = append(out, o)
			continue
		}
		rate, ok := rates.Get(o.Date)
		if !ok {
			o.Source = annotate(o.Source, noteUnconverted)
			out = append(out, o)
			continue
		}
		o.Price = o.Price.Mul(rate)
		o.Currency = rates.To
		o.Source = annotate(o.Source, noteConverted)
		out = append(out, o)
	}
	return out
}
