// Package goldspot consolidates time-stamped gold price observations from
// multiple historical sources of differing granularity (century-spanning
// annual records, monthly records, modern daily feeds) into one canonical,
// date-sorted series.
//
// The core functionalities include:
//   - Reconciliation: merging prioritized source series into a canonical
//     series with at most one row per date, where date collisions are
//     resolved by an explicit, externally supplied priority order.
//   - Currency normalization: rewriting prices into a single target currency
//     using an exchange-rate series joined on exact dates.
//   - Metallic normalization: enriching rows with the gold/silver ratio, or
//     re-denominating the whole series in ounces of silver with an
//     annual-to-daily broadcast join.
//   - Coverage statistics and lineage: per-source contribution ranges before
//     and after deduplication, and textual lineage annotations on derived
//     rows.
//   - Artifact persistence: CSV price tables and JSON coverage documents,
//     written atomically so a published "latest" pointer never exposes a
//     partial result.
//
// This package is the foundational logic for the `gsd` command-line tool.
// Provider-specific fetching lives in the fetch subpackage; the core never
// inspects a provider identifier.
package goldspot
