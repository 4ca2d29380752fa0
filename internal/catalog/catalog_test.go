package catalog

import "testing"

func TestLookupAliases(t *testing.T) {
	r := Default()

	d, ok := r.Lookup("Nettomarge")
	if !ok {
		t.Fatal("Nettomarge missing from catalog")
	}
	if d.Aliases[0] != "Nettomarge" {
		t.Errorf("canonical key must be the first alias, got %q", d.Aliases[0])
	}
	found := false
	for _, a := range d.Aliases {
		if a == "profitMargins" {
			found = true
		}
	}
	if !found {
		t.Error("Nettomarge must alias the raw profitMargins column")
	}
}

func TestDirections(t *testing.T) {
	r := Default()
	tests := []struct {
		key  string
		want Direction
	}{
		{"KGV", Lower},
		{"Forward PE", Lower},
		{"EV/EBITDA", Lower},
		{"Beta", Lower},
		{"Eigenkapitalrendite", Higher},
		{"Dividendenrendite", Higher},
		{"Nettomarge", Higher},
		{"Marktkapitalisierung", Neutral},
		{"irgendwas unbekanntes", Neutral},
	}
	for _, tt := range tests {
		if got := r.DirectionOf(tt.key); got != tt.want {
			t.Errorf("DirectionOf(%q) = %v, want %v", tt.key, got, tt.want)
		}
	}
}

func TestSectorDefaults(t *testing.T) {
	r := Default()

	for sector, keys := range sectorDefaults {
		if len(keys) != 6 {
			t.Errorf("sector %q has %d default metrics, want 6", sector, len(keys))
		}
		for _, k := range keys {
			if _, ok := r.Lookup(k); !ok {
				t.Errorf("sector %q default %q not in catalog", sector, k)
			}
		}
	}

	if got := r.SectorDefaults("No Such Sector"); len(got) != len(r.Fallback()) {
		t.Error("unknown sector must return the generic fallback")
	}
}

func TestCurrencySymbol(t *testing.T) {
	r := Default()
	tests := []struct {
		code, want string
	}{
		{"USD", "$"},
		{"EUR", "€"},
		{"CHF", "CHF"},
		{"SEK", "SEK"}, // unknown codes pass through
		{"", "$"},      // empty defaults to dollar
	}
	for _, tt := range tests {
		if got := r.CurrencySymbol(tt.code); got != tt.want {
			t.Errorf("CurrencySymbol(%q) = %q, want %q", tt.code, got, tt.want)
		}
	}
}

func TestYieldLike(t *testing.T) {
	r := Default()
	if !r.IsYieldLike("Dividendenrendite") || !r.IsYieldLike("Free Cashflow Yield") {
		t.Error("yield metrics must use the refined percent heuristic")
	}
	if r.IsYieldLike("Bruttomarge") {
		t.Error("Bruttomarge must use the plain magnitude rule")
	}
}
