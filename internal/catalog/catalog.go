// Package catalog holds the static metric catalog for aktienduell.
// It defines every known metric key with its column aliases, display
// labels, value kind and "better direction", plus the sector default
// lists and the currency symbol table. The registry is built once and
// never mutated; components receive it by reference.
package catalog

// Kind classifies how a metric value is rendered.
type Kind int

const (
	// Plain values are rendered as locale-formatted numbers.
	Plain Kind = iota
	// Percent values run through the percent-normalization heuristic.
	Percent
	// Currency values are divided by 1e9 and suffixed "Mrd <symbol>".
	Currency
	// Ratio values are plain numbers that represent multiples (KGV, KUV…).
	Ratio
)

// Direction says which side wins a metric comparison.
type Direction int

const (
	// Neutral metrics award no points.
	Neutral Direction = iota
	// Higher means the larger value wins.
	Higher
	// Lower means the smaller value wins.
	Lower
)

// Descriptor describes one metric.
type Descriptor struct {
	Key         string
	Aliases     []string
	Label       string
	ShortLabels []string // ordered degradation ladder for tight layouts
	Kind        Kind
	Direction   Direction
	Description string
	// YieldLike marks keys that use the refined percent heuristic
	// (decimal-digit inspection in addition to the magnitude rule).
	YieldLike bool
}

// Registry is the immutable metric catalog.
type Registry struct {
	descriptors []Descriptor
	byKey       map[string]*Descriptor

	sectorDefaults map[string][]string
	fallback       []string

	currencySymbols map[string]string

	revenueAliases   []string
	netIncomeAliases []string

	excludeColumns map[string]bool
}

// Lookup returns the descriptor for a canonical key.
func (r *Registry) Lookup(key string) (*Descriptor, bool) {
	d, ok := r.byKey[key]
	return d, ok
}

// Aliases returns the alias list for a key, or nil for unknown keys.
func (r *Registry) Aliases(key string) []string {
	if d, ok := r.byKey[key]; ok {
		return d.Aliases
	}
	return nil
}

// Label returns the display label for a key, falling back to the key itself.
func (r *Registry) Label(key string) string {
	if d, ok := r.byKey[key]; ok && d.Label != "" {
		return d.Label
	}
	return key
}

// ShortLabels returns the degradation ladder for a key: the display
// label first, then progressively shorter synonyms.
func (r *Registry) ShortLabels(key string) []string {
	d, ok := r.byKey[key]
	if !ok {
		return []string{key}
	}
	out := make([]string, 0, 1+len(d.ShortLabels))
	out = append(out, r.Label(key))
	out = append(out, d.ShortLabels...)
	return out
}

// KindOf returns the value kind for a key. Unknown keys are Plain.
func (r *Registry) KindOf(key string) Kind {
	if d, ok := r.byKey[key]; ok {
		return d.Kind
	}
	return Plain
}

// DirectionOf returns the better direction for a key. Unknown keys are Neutral.
func (r *Registry) DirectionOf(key string) Direction {
	if d, ok := r.byKey[key]; ok {
		return d.Direction
	}
	return Neutral
}

// IsYieldLike reports whether the key uses the refined percent heuristic.
func (r *Registry) IsYieldLike(key string) bool {
	d, ok := r.byKey[key]
	return ok && d.YieldLike
}

// SectorDefaults returns the default metric list for a sector, or the
// generic fallback when the sector is unknown.
func (r *Registry) SectorDefaults(sector string) []string {
	if m, ok := r.sectorDefaults[sector]; ok {
		return m
	}
	return r.fallback
}

// Fallback returns the generic fallback metric list.
func (r *Registry) Fallback() []string { return r.fallback }

// CurrencySymbol maps an ISO currency code to its display symbol.
// Unknown non-empty codes are returned as-is; empty codes default to "$".
func (r *Registry) CurrencySymbol(code string) string {
	if sym, ok := r.currencySymbols[code]; ok {
		return sym
	}
	if code != "" {
		return code
	}
	return "$"
}

// RevenueAliases returns the column candidates for total revenue.
func (r *Registry) RevenueAliases() []string { return r.revenueAliases }

// NetIncomeAliases returns the column candidates for net income.
func (r *Registry) NetIncomeAliases() []string { return r.netIncomeAliases }

// IsMetricColumn reports whether a table column is a selectable metric
// (as opposed to identity/meta columns like Symbol or Abfragedatum).
func (r *Registry) IsMetricColumn(col string) bool {
	return !r.excludeColumns[col]
}

// Keys returns all catalog keys in declaration order.
func (r *Registry) Keys() []string {
	out := make([]string, len(r.descriptors))
	for i := range r.descriptors {
		out[i] = r.descriptors[i].Key
	}
	return out
}

// Descriptions returns key→description for the catalog endpoint.
func (r *Registry) Description(key string) string {
	if d, ok := r.byKey[key]; ok {
		return d.Description
	}
	return ""
}

var defaultRegistry = build()

// Default returns the shared immutable registry.
func Default() *Registry { return defaultRegistry }

func build() *Registry {
	r := &Registry{
		descriptors: descriptors,
		byKey:       make(map[string]*Descriptor, len(descriptors)),

		sectorDefaults: sectorDefaults,
		fallback: []string{
			"KGV", "Forward PE", "KUV",
			"Nettomarge", "Eigenkapitalrendite", "Dividendenrendite",
		},

		currencySymbols: map[string]string{
			"USD": "$", "EUR": "€", "GBP": "£", "JPY": "¥", "CHF": "CHF",
			"CAD": "C$", "AUD": "A$", "HKD": "HK$", "INR": "₹",
		},

		revenueAliases: []string{
			"Umsatz", "Revenue", "totalRevenue", "Total Revenue",
			"Revenue (ttm)", "Umsatz (ttm)", "revenue",
		},
		netIncomeAliases: []string{
			"Net Income", "Nettoergebnis", "netIncome",
			"Net Income Common Stockholders", "netIncomeToCommon",
			"Net income applicable to common shares", "Net Income (ttm)", "net_income",
		},

		excludeColumns: map[string]bool{
			"Symbol": true, "Security": true, "Abfragedatum": true,
			"Datenquelle": true, "valid_yahoo_ticker": true,
			"resolved_name": true, "resolved_exchange": true, "resolved_score": true,
			"GICS Sector": true, "GICS Sector Name": true,
			"Sektor": true, "Sector": true, "Branche": true, "Industry": true,
			"Währung": true, "Region": true,
		},
	}
	for i := range r.descriptors {
		r.byKey[r.descriptors[i].Key] = &r.descriptors[i]
	}
	return r
}
