// Package table provides the read-only entity table backing all renders.
// The table is loaded from a CSV snapshot of the upstream stock data;
// reloads produce a brand-new immutable Snapshot that is swapped in
// atomically, so readers in flight keep the reference they acquired.
package table

import "strings"

// Entity is one row of the table: a symbol plus a loose field→value
// mapping. Empty cells are treated as absent. Entities are immutable
// once loaded.
type Entity struct {
	symbol string
	fields map[string]string
}

// NewEntity builds an entity from raw fields. Intended for tests and
// for the fetch pipeline when it assembles updated rows.
func NewEntity(symbol string, fields map[string]string) *Entity {
	cp := make(map[string]string, len(fields))
	for k, v := range fields {
		v = strings.TrimSpace(v)
		if v == "" {
			continue
		}
		cp[k] = v
	}
	return &Entity{symbol: strings.ToUpper(strings.TrimSpace(symbol)), fields: cp}
}

// Symbol returns the uppercase ticker symbol.
func (e *Entity) Symbol() string { return e.symbol }

// Field returns the raw string value of a column. The second return is
// false when the column is missing or the cell was empty.
func (e *Entity) Field(name string) (string, bool) {
	v, ok := e.fields[name]
	return v, ok
}

// Has reports whether a column holds a non-empty value.
func (e *Entity) Has(name string) bool {
	_, ok := e.fields[name]
	return ok
}

// first returns the first non-empty value among the given columns.
func (e *Entity) first(names ...string) string {
	for _, n := range names {
		if v, ok := e.fields[n]; ok {
			return v
		}
	}
	return ""
}

// Name returns the security name, if any.
func (e *Entity) Name() string { return e.first("Security", "resolved_name") }

// Sector returns the sector classification.
func (e *Entity) Sector() string { return e.first("Sektor", "Sector", "GICS Sector") }

// Currency returns the uppercase trade currency code, or "".
func (e *Entity) Currency() string {
	return strings.ToUpper(e.first("Währung", "Currency"))
}

// AsOf returns the raw query date of the row, or "".
func (e *Entity) AsOf() string { return e.first("Abfragedatum") }

// Source returns the data source label, defaulting to Yahoo Finance.
func (e *Entity) Source() string {
	if s := e.first("Datenquelle"); s != "" {
		return s
	}
	return "Yahoo Finance"
}
