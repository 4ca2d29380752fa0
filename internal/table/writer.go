package table

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"
)

// metaDate is the layout of the Abfragedatum stamp.
const metaDate = "2006-01-02"

// SaveMerged writes the snapshot back to the repository path with the
// fetched field updates applied. Updates are keyed by the ticker the
// fetch ran with, so rows are matched by their upstream ticker first
// and by symbol second. Rows that received at least one field get
// fresh Abfragedatum and Datenquelle stamps. The file is replaced
// atomically via a temp file in the same directory.
func (r *Repository) SaveMerged(snap *Snapshot, updates map[string]map[string]string, asOf time.Time, source string) error {
	columns := mergedColumns(snap.Columns(), updates)

	tmp, err := os.CreateTemp(filepath.Dir(r.path), ".stock_data-*.csv")
	if err != nil {
		return fmt.Errorf("create temp table: %w", err)
	}
	defer os.Remove(tmp.Name())

	// BOM, matching the upstream writer.
	if _, err := tmp.WriteString("\uFEFF"); err != nil {
		tmp.Close()
		return fmt.Errorf("write table: %w", err)
	}

	w := csv.NewWriter(tmp)
	if err := w.Write(columns); err != nil {
		tmp.Close()
		return fmt.Errorf("write table header: %w", err)
	}

	stamp := asOf.Format(metaDate)
	for _, e := range snap.Entities() {
		upd := updatesFor(e, updates)
		rec := make([]string, len(columns))
		for i, col := range columns {
			if upd != nil {
				if v, ok := upd[col]; ok {
					rec[i] = v
					continue
				}
				if col == "Abfragedatum" {
					rec[i] = stamp
					continue
				}
				if col == "Datenquelle" {
					rec[i] = source
					continue
				}
			}
			rec[i], _ = e.Field(col)
		}
		if err := w.Write(rec); err != nil {
			tmp.Close()
			return fmt.Errorf("write table row %s: %w", e.Symbol(), err)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		tmp.Close()
		return fmt.Errorf("write table: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close temp table: %w", err)
	}
	if err := os.Rename(tmp.Name(), r.path); err != nil {
		return fmt.Errorf("replace table: %w", err)
	}
	return nil
}

// mergedColumns extends the existing column set with the meta columns
// and any new field names the fetch introduced, in sorted order.
func mergedColumns(existing []string, updates map[string]map[string]string) []string {
	columns := append([]string(nil), existing...)
	have := make(map[string]bool, len(columns))
	for _, c := range columns {
		have[c] = true
	}
	for _, meta := range []string{"Abfragedatum", "Datenquelle"} {
		if !have[meta] {
			columns = append(columns, meta)
			have[meta] = true
		}
	}

	var added []string
	for _, fields := range updates {
		for col := range fields {
			if !have[col] {
				have[col] = true
				added = append(added, col)
			}
		}
	}
	sort.Strings(added)
	return append(columns, added...)
}

// updatesFor matches an entity against the update map by upstream
// ticker, then by symbol.
func updatesFor(e *Entity, updates map[string]map[string]string) map[string]string {
	if t, ok := e.Field("valid_yahoo_ticker"); ok {
		if upd, ok := updates[strings.ToUpper(strings.TrimSpace(t))]; ok {
			return upd
		}
	}
	if upd, ok := updates[e.Symbol()]; ok {
		return upd
	}
	return nil
}
