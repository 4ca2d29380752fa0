package table

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"
	"time"
)

// parseCSV decodes the stock table. The upstream file is written with a
// UTF-8 BOM and occasionally carries short rows; both are tolerated.
func parseCSV(r io.Reader, modTime time.Time) (*Snapshot, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1 // tolerate ragged rows instead of failing the load

	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("read csv header: %w", err)
	}
	columns := make([]string, len(header))
	for i, h := range header {
		h = strings.TrimPrefix(h, "\uFEFF")
		columns[i] = strings.TrimSpace(h)
	}

	symbolIdx := -1
	for i, c := range columns {
		if c == "Symbol" {
			symbolIdx = i
			break
		}
	}
	if symbolIdx < 0 {
		return nil, fmt.Errorf("csv has no Symbol column")
	}

	var entities []*Entity
	for {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			// Skip bad lines, same as the upstream loader.
			continue
		}
		if symbolIdx >= len(rec) {
			continue
		}
		fields := make(map[string]string, len(columns))
		for i, col := range columns {
			if i >= len(rec) {
				break
			}
			v := strings.TrimSpace(rec[i])
			if v == "" {
				continue
			}
			fields[col] = v
		}
		sym := strings.ToUpper(strings.TrimSpace(rec[symbolIdx]))
		if sym == "" {
			continue
		}
		entities = append(entities, &Entity{symbol: sym, fields: fields})
	}

	return newSnapshot(entities, columns, modTime), nil
}
