package metric

import (
	"testing"

	"github.com/fbruhn/aktienduell/internal/catalog"
	"github.com/fbruhn/aktienduell/internal/table"
)

func newFormatter() *Formatter {
	reg := catalog.Default()
	return NewFormatter(reg, NewResolver(reg), German)
}

func TestPercentHeuristic(t *testing.T) {
	f := newFormatter()

	tests := []struct {
		key  string
		raw  string
		want string
	}{
		// Magnitude rule: small values are fractions and get scaled.
		{"Bruttomarge", "0.042", "4,2%"},
		{"Bruttomarge", "42", "42%"},
		{"Bruttomarge", "4.2", "4,2%"},
		{"Bruttomarge", "1.5", "150%"}, // boundary is inclusive for plain keys
		{"Bruttomarge", "-0.12", "-12%"},
		{"Nettomarge", "0.25", "25%"},

		// Yield-like keys look at literal decimal digits as well.
		{"Dividendenrendite", "0.042", "4,2%"}, // three decimals: genuine fraction
		{"Dividendenrendite", "1.2", "1,2%"},   // one decimal: already percent
		{"Dividendenrendite", "0.35", "0,35%"}, // two decimals: already percent
		{"Free Cashflow Yield", "0.0375", "3,75%"},
		{"Dividendenrendite", "3.8", "3,8%"},

		// Comma-decimal input is accepted.
		{"Bruttomarge", "0,042", "4,2%"},

		// Malformed text falls back to the raw string.
		{"Bruttomarge", "n/a", "n/a"},
	}
	for _, tt := range tests {
		t.Run(tt.key+"/"+tt.raw, func(t *testing.T) {
			if got := f.Percent(tt.key, tt.raw); got != tt.want {
				t.Errorf("Percent(%q, %q) = %q, want %q", tt.key, tt.raw, got, tt.want)
			}
		})
	}
}

func TestDisplayCurrency(t *testing.T) {
	f := newFormatter()

	e := table.NewEntity("TST", map[string]string{
		"Marktkapitalisierung": "3400000000",
		"Währung":              "USD",
	})
	if got := f.Display("Marktkapitalisierung", e); got != "3,4 Mrd $" {
		t.Errorf("Display(Marktkapitalisierung) = %q, want \"3,4 Mrd $\"", got)
	}

	eur := table.NewEntity("TST", map[string]string{
		"marketCap": "214000000000", // resolved through the alias chain
		"Währung":   "EUR",
	})
	if got := f.Display("Marktkapitalisierung", eur); got != "214 Mrd €" {
		t.Errorf("Display with EUR = %q, want \"214 Mrd €\"", got)
	}

	missing := table.NewEntity("TST", nil)
	if got := f.Display("Marktkapitalisierung", missing); got != Absent {
		t.Errorf("Display on absent value = %q, want %q", got, Absent)
	}
}

func TestFormatNumberLocale(t *testing.T) {
	f := newFormatter()

	tests := []struct {
		v    float64
		dec  int
		trim bool
		want string
	}{
		{1234567.89, 2, false, "1.234.567,89"},
		{1234.5, 2, false, "1.234,50"},
		{1234.5, 2, true, "1.234,5"},
		{-9876.54, 2, false, "-9.876,54"},
		{42, 2, true, "42"},
		{0.042, 3, true, "0,042"},
	}
	for _, tt := range tests {
		if got := f.FormatNumber(tt.v, tt.dec, tt.trim); got != tt.want {
			t.Errorf("FormatNumber(%v, %d, %v) = %q, want %q", tt.v, tt.dec, tt.trim, got, tt.want)
		}
	}
}

func TestFormatParseIdempotence(t *testing.T) {
	f := newFormatter()

	for _, v := range []float64{0, 1, 28.5, 1234.56, -17.25, 1e6} {
		once := f.Number("x", 2) // malformed passthrough sanity
		_ = once

		first := f.FormatNumber(v, 2, false)
		parsed, ok := parseFloat(first)
		if !ok {
			t.Fatalf("parseFloat(%q) failed", first)
		}
		second := f.FormatNumber(parsed, 2, false)
		if first != second {
			t.Errorf("format→parse→format not stable: %q vs %q", first, second)
		}
	}
}

func TestDerivedNetMargin(t *testing.T) {
	f := newFormatter()

	e := table.NewEntity("TST", map[string]string{
		"Revenue":    "200000000",
		"Net Income": "50000000",
	})
	if got := f.Display("Nettomarge", e); got != "25%" {
		t.Errorf("derived net margin = %q, want \"25%%\"", got)
	}

	noRevenue := table.NewEntity("TST", map[string]string{"Net Income": "50"})
	if got := f.Display("Nettomarge", noRevenue); got != Absent {
		t.Errorf("net margin without revenue = %q, want %q", got, Absent)
	}
}

func TestParseFloat(t *testing.T) {
	tests := []struct {
		raw  string
		want float64
		ok   bool
	}{
		{"28.5", 28.5, true},
		{"28,5", 28.5, true},
		{"1,234.5", 1234.5, true},
		{"12 345", 12345, true},
		{"4.2%", 4.2, true},
		{"", 0, false},
		{"abc", 0, false},
	}
	for _, tt := range tests {
		got, ok := parseFloat(tt.raw)
		if ok != tt.ok || (ok && got != tt.want) {
			t.Errorf("parseFloat(%q) = %v, %v; want %v, %v", tt.raw, got, ok, tt.want, tt.ok)
		}
	}
}
