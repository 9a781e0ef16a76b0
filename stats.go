package goldspot

import "strings"

// SourceCoverage describes one source's contribution to a series.
type SourceCoverage struct {
	Count int  `json:"count"`
	Start Date `json:"start"`
	End   Date `json:"end"`
}

// CoverageMap holds per-source coverage, keyed by source tag.
type CoverageMap map[string]SourceCoverage

// Coverage computes per-source coverage over any series, raw or processed.
//
// Rows with an empty source tag (e.g. the previous run's artifact used as a
// fallback) are not counted. Lineage-annotated tags such as
// "worldbank (converted)" count as their own source, so downstream consumers
// can tell raw rows from derived ones without an extra status column.
func Coverage(s Series) CoverageMap {
	out := make(CoverageMap)
	for _, o := range s {
		if o.Source == "" {
			continue
		}
		c, ok := out[o.Source]
		if !ok {
			out[o.Source] = SourceCoverage{Count: 1, Start: o.Date, End: o.Date}
			continue
		}
		c.Count++
		if o.Date.Before(c.Start) {
			c.Start = o.Date
		}
		if o.Date.After(c.End) {
			c.End = o.Date
		}
		out[o.Source] = c
	}
	return out
}

// Lineage notes appended to a row's source tag by the normalizers.
const (
	noteConverted       = "converted"
	noteUnconverted     = "unconverted: no rate"
	noteRatioNormalized = "ratio-normalized"
)

// annotate extends a source tag with a lineage note.
// An untagged row stays untagged: there is no lineage to extend. A tag that
// already ends with the note is returned as is, so re-running a normalizer
// never stacks notes.
func annotate(source, note string) string {
	if source == "" {
		return ""
	}
	if strings.HasSuffix(source, " ("+note+")") {
		return source
	}
	return source + " (" + note + ")"
}
