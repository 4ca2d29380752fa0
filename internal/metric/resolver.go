// Package metric resolves, normalizes and formats metric values from
// the loosely structured stock table. Resolution follows the alias
// chains of the catalog; formatting applies the German number locale
// and the percent-normalization heuristic observed in the upstream data.
package metric

import (
	"github.com/fbruhn/aktienduell/internal/catalog"
	"github.com/fbruhn/aktienduell/internal/table"
)

// Resolver maps canonical metric keys onto raw entity fields.
type Resolver struct {
	reg *catalog.Registry
}

// NewResolver creates a resolver over the given catalog.
func NewResolver(reg *catalog.Registry) *Resolver {
	return &Resolver{reg: reg}
}

// Resolve returns the raw string value for a key, trying the canonical
// column first and then each alias in catalog order. Absence is a valid
// result, never an error.
func (r *Resolver) Resolve(key string, e *table.Entity) (string, bool) {
	if v, ok := e.Field(key); ok {
		return v, true
	}
	for _, alias := range r.reg.Aliases(key) {
		if v, ok := e.Field(alias); ok {
			return v, true
		}
	}
	return "", false
}

// Numeric returns the comparable numeric value for a key, with the same
// normalization the formatter applies: percent values are scaled by the
// heuristic, currency values are reduced to billions. The second return
// is false when the value is absent or not parseable.
func (r *Resolver) Numeric(key string, e *table.Entity) (float64, bool) {
	raw, ok := r.Resolve(key, e)

	switch r.reg.KindOf(key) {
	case catalog.Currency:
		if !ok {
			return 0, false
		}
		v, pok := parseFloat(raw)
		if !pok {
			return 0, false
		}
		return v / 1e9, true

	case catalog.Percent:
		if !ok {
			if key == "Nettomarge" {
				return r.derivedNetMargin(e)
			}
			return 0, false
		}
		v, pok := parseFloat(raw)
		if !pok {
			return 0, false
		}
		return normalizePercent(v, raw, r.reg.IsYieldLike(key)), true

	default:
		if !ok {
			return 0, false
		}
		return parseFloat(raw)
	}
}

// derivedNetMargin computes net income / revenue when the margin column
// itself is missing. Returns a value already expressed in percent.
func (r *Resolver) derivedNetMargin(e *table.Entity) (float64, bool) {
	var revenue, netIncome float64
	var haveRev, haveNI bool

	for _, col := range r.reg.RevenueAliases() {
		if raw, ok := e.Field(col); ok {
			if v, pok := parseFloat(raw); pok {
				revenue, haveRev = v, true
				break
			}
		}
	}
	for _, col := range r.reg.NetIncomeAliases() {
		if raw, ok := e.Field(col); ok {
			if v, pok := parseFloat(raw); pok {
				netIncome, haveNI = v, true
				break
			}
		}
	}

	if !haveRev || !haveNI || revenue == 0 {
		return 0, false
	}
	return netIncome / revenue * 100, true
}
