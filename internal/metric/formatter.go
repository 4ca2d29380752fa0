package metric

import (
	"math"
	"strconv"
	"strings"

	"github.com/fbruhn/aktienduell/internal/catalog"
	"github.com/fbruhn/aktienduell/internal/table"
)

// Absent is rendered for missing or unresolvable values.
const Absent = "–"

// Locale configures the number separators.
type Locale struct {
	Thousands string
	Decimal   string
}

// German is the default locale: 1.234.567,89.
var German = Locale{Thousands: ".", Decimal: ","}

// Formatter renders raw metric values into display strings. It never
// fails: malformed numeric text falls back to the raw string, absence
// renders as Absent.
type Formatter struct {
	reg *catalog.Registry
	res *Resolver
	loc Locale
}

// NewFormatter creates a formatter over the given catalog and resolver.
func NewFormatter(reg *catalog.Registry, res *Resolver, loc Locale) *Formatter {
	return &Formatter{reg: reg, res: res, loc: loc}
}

// Registry exposes the catalog the formatter was built over.
func (f *Formatter) Registry() *catalog.Registry { return f.reg }

// Resolver exposes the underlying resolver.
func (f *Formatter) Resolver() *Resolver { return f.res }

// Display resolves and formats a metric for one entity.
func (f *Formatter) Display(key string, e *table.Entity) string {
	raw, ok := f.res.Resolve(key, e)

	switch f.reg.KindOf(key) {
	case catalog.Currency:
		if !ok {
			return Absent
		}
		v, pok := parseFloat(raw)
		if !pok {
			return raw
		}
		sym := f.reg.CurrencySymbol(e.Currency())
		return f.FormatNumber(v/1e9, 2, true) + " Mrd " + sym

	case catalog.Percent:
		if !ok {
			if key == "Nettomarge" {
				if v, dok := f.res.derivedNetMargin(e); dok {
					return f.FormatNumber(v, 2, true) + "%"
				}
			}
			return Absent
		}
		return f.Percent(key, raw)

	default:
		if !ok {
			return Absent
		}
		return f.Number(raw, 2)
	}
}

// Percent normalizes and formats a raw percent value. The upstream data
// mixes fractional (0.042) and whole-number (4.2) encodings; values with
// magnitude at most 1.5 are treated as fractions and scaled by 100.
// Yield-like keys additionally inspect the literal decimal digits: a
// small value with two or fewer decimals is taken as already-percent.
// The 1.5 boundary is best effort and cannot be disambiguated without
// the provider's encoding convention.
func (f *Formatter) Percent(key, raw string) string {
	v, ok := parseFloat(raw)
	if !ok {
		return raw
	}
	v = normalizePercent(v, raw, f.reg.IsYieldLike(key))
	return f.FormatNumber(v, 2, true) + "%"
}

// Number formats raw numeric text with the locale separators and a fixed
// number of decimals. Non-numeric text is returned unchanged.
func (f *Formatter) Number(raw string, dec int) string {
	v, ok := parseFloat(raw)
	if !ok {
		return raw
	}
	return f.FormatNumber(v, dec, false)
}

// FormatNumber renders a float with locale separators. With trim set,
// trailing fractional zeros (and a dangling decimal separator) are
// removed.
func (f *Formatter) FormatNumber(v float64, dec int, trim bool) string {
	s := strconv.FormatFloat(v, 'f', dec, 64)

	neg := strings.HasPrefix(s, "-")
	if neg {
		s = s[1:]
	}

	intPart := s
	fracPart := ""
	if i := strings.IndexByte(s, '.'); i >= 0 {
		intPart, fracPart = s[:i], s[i+1:]
	}

	if trim {
		fracPart = strings.TrimRight(fracPart, "0")
	}

	out := groupThousands(intPart, f.loc.Thousands)
	if fracPart != "" {
		out += f.loc.Decimal + fracPart
	}
	if neg {
		out = "-" + out
	}
	return out
}

// normalizePercent applies the percent-normalization heuristic.
func normalizePercent(v float64, raw string, yieldLike bool) float64 {
	if yieldLike {
		if math.Abs(v) < 1.5 && countDecimals(raw) >= 3 {
			return v * 100
		}
		return v
	}
	if math.Abs(v) <= 1.5 {
		return v * 100
	}
	return v
}

// parseFloat parses loosely formatted numeric text: percent signs and
// spaces are stripped, a comma decimal separator is accepted. Returns
// false for text that is not a finite number.
func parseFloat(raw string) (float64, bool) {
	s := strings.TrimSpace(raw)
	s = strings.TrimSuffix(s, "%")
	s = strings.ReplaceAll(s, " ", "")
	if s == "" {
		return 0, false
	}

	if strings.Contains(s, ",") {
		if strings.Contains(s, ".") {
			// Both present: comma is the thousands separator.
			s = strings.ReplaceAll(s, ",", "")
		} else {
			s = strings.ReplaceAll(s, ",", ".")
		}
	}

	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsInf(v, 0) || math.IsNaN(v) {
		return 0, false
	}
	return v, true
}

// countDecimals counts the literal decimal digits of raw numeric text,
// ignoring any exponent suffix.
func countDecimals(raw string) int {
	s := strings.TrimSpace(raw)
	s = strings.TrimSuffix(s, "%")

	var frac string
	if i := strings.IndexByte(s, ','); i >= 0 {
		frac = s[i+1:]
	} else if i := strings.IndexByte(s, '.'); i >= 0 {
		frac = s[i+1:]
	} else {
		return 0
	}

	if i := strings.IndexAny(frac, "eE"); i >= 0 {
		frac = frac[:i]
	}

	n := 0
	for _, ch := range frac {
		if ch >= '0' && ch <= '9' {
			n++
		}
	}
	return n
}

// groupThousands inserts the thousands separator into an unsigned
// integer string.
func groupThousands(digits, sep string) string {
	if len(digits) <= 3 || sep == "" {
		return digits
	}
	var b strings.Builder
	lead := len(digits) % 3
	if lead > 0 {
		b.WriteString(digits[:lead])
	}
	for i := lead; i < len(digits); i += 3 {
		if b.Len() > 0 {
			b.WriteString(sep)
		}
		b.WriteString(digits[i : i+3])
	}
	return b.String()
}
