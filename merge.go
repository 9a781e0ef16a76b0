package goldspot

// Reconcile merges prioritized source series into one canonical series.
//
// The argument order is the priority order, lowest to highest trust: when two
// sources hold an observation for the same date, the one from the series that
// appears last wins, unconditionally. The same overwrite rule applies to
// same-date rows within a single series.
//
// It returns the canonical series (date-sorted, at most one row per date)
// plus two coverage maps: used is computed over the surviving rows, full over
// every raw contribution before deduplication. An empty input yields empty
// outputs; deciding whether that is fatal belongs to the caller.
func Reconcile(sources ...Series) (merged Series, used, full CoverageMap) {
	var combined Series
	for _, s := range sources {
		combined = append(combined, s...)
	}

	// Full coverage is each source's raw reach, before any removal.
	full = Coverage(combined)

	// Deduplicate by date, keeping the last occurrence.
	winners := make(map[Date]Observation, len(combined))
	dates := make([]Date, 0, len(combined))
	for _, o := range combined {
		if _, seen := winners[o.Date]; !seen {
			dates = append(dates, o.Date)
		}
		winners[o.Date] = o
	}

	merged = make(Series, 0, len(winners))
	for _, d := range dates {
		merged = append(merged, winners[d])
	}
	merged.SortByDate()

	// Used coverage reflects what actually survived the collisions.
	used = Coverage(merged)
	return merged, used, full
}
