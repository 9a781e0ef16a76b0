package goldspot

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"
)

// This file persists run artifacts in a directory layout readers may be
// watching: a timestamped CSV per run, a "latest.csv" pointer, and the two
// coverage documents. Every file is written to a temporary sibling first and
// renamed into place, so a concurrent reader never observes a partial result.

const (
	latestFilename     = "latest.csv"
	usedStatsFilename  = "source_stats.json"
	fullStatsFilename  = "source_ranges_full.json"
	backfillDirname    = "backfill"
	artifactTimeFormat = "20060102"
)

// writeFileAtomic writes content produced by write into path via a temporary
// file and an atomic rename.
func writeFileAtomic(path string, write func(io.Writer) error) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("cannot create directory %q: %w", dir, err)
	}
	tmp, err := os.CreateTemp(dir, filepath.Base(path)+".*")
	if err != nil {
		return fmt.Errorf("cannot create temporary file in %q: %w", dir, err)
	}
	defer os.Remove(tmp.Name()) // no-op after a successful rename

	if err := write(tmp); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("cannot close %q: %w", tmp.Name(), err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("cannot move %q into place: %w", tmp.Name(), err)
	}
	return nil
}

func writeStats(path string, stats CoverageMap) error {
	return writeFileAtomic(path, func(w io.Writer) error {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(stats)
	})
}

// SaveCanonical writes the canonical series and its coverage documents into
// dir. It returns the name of the timestamped artifact; the latest.csv
// pointer is updated last, once the timestamped file is safely in place.
func SaveCanonical(dir string, s Series, used, full CoverageMap) (filename string, err error) {
	filename = fmt.Sprintf("gold_spot_%s.csv", time.Now().Format(artifactTimeFormat))

	encode := func(w io.Writer) error { return EncodeSeries(w, s) }
	if err := writeFileAtomic(filepath.Join(dir, filename), encode); err != nil {
		return "", err
	}
	if err := writeFileAtomic(filepath.Join(dir, latestFilename), encode); err != nil {
		return "", err
	}
	if err := writeStats(filepath.Join(dir, usedStatsFilename), used); err != nil {
		return "", err
	}
	if err := writeStats(filepath.Join(dir, fullStatsFilename), full); err != nil {
		return "", err
	}
	return filename, nil
}

// SaveBackfill writes one source's raw series into the backfill area, as a
// timestamped file plus a per-source latest pointer.
func SaveBackfill(dir, source string, s Series) error {
	backfill := filepath.Join(dir, backfillDirname)
	encode := func(w io.Writer) error { return EncodeSeries(w, s) }

	timestamped := fmt.Sprintf("%s_%s.csv", source, time.Now().Format(artifactTimeFormat))
	if err := writeFileAtomic(filepath.Join(backfill, timestamped), encode); err != nil {
		return err
	}
	return writeFileAtomic(filepath.Join(backfill, source+"_latest.csv"), encode)
}

// LoadBackfill reads one source's latest backfill artifact, tagging every row
// with the source id. A missing artifact is reported as fs.ErrNotExist so the
// caller can skip the source and continue.
func LoadBackfill(dir, source string) (Series, error) {
	path := filepath.Join(dir, backfillDirname, source+"_latest.csv")
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	s, err := DecodeSeries(f, source)
	if err != nil {
		return nil, fmt.Errorf("cannot decode %q: %w", path, err)
	}
	return s, nil
}

// LoadLatest reads the previous run's canonical artifact from dir. Rows are
// left untagged: fallback data has no source lineage of its own.
func LoadLatest(dir string) (Series, error) {
	path := filepath.Join(dir, latestFilename)
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	s, err := DecodeSeries(f, "")
	if err != nil {
		return nil, fmt.Errorf("cannot decode %q: %w", path, err)
	}
	return s, nil
}

// LoadStats reads a coverage document written by a previous run.
func LoadStats(dir, name string) (CoverageMap, error) {
	content, err := os.ReadFile(filepath.Join(dir, name))
	if err != nil {
		return nil, err
	}
	stats := make(CoverageMap)
	if err := json.Unmarshal(content, &stats); err != nil {
		return nil, fmt.Errorf("cannot decode %q: %w", name, err)
	}
	return stats, nil
}

// UsedStats and FullStats name the two coverage documents of a run.
const (
	UsedStats = usedStatsFilename
	FullStats = fullStatsFilename
)
