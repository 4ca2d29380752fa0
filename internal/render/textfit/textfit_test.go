package textfit

import (
	"reflect"
	"testing"
)

// perRune measures every rune as w pixels wide.
func perRune(w float64) Measure {
	return func(s string) float64 {
		return float64(len([]rune(s))) * w
	}
}

func TestWrap(t *testing.T) {
	m := perRune(10)

	tests := []struct {
		text  string
		maxW  float64
		want  []string
	}{
		{"one two three", 80, []string{"one two", "three"}},
		{"one two three", 200, []string{"one two three"}},
		{"supercalifragilistic", 50, []string{"supercalifragilistic"}}, // single wide word keeps its line
		{"a b c d", 30, []string{"a b", "c d"}},
		{"", 100, nil},
	}
	for _, tt := range tests {
		if got := Wrap(tt.text, tt.maxW, m); !reflect.DeepEqual(got, tt.want) {
			t.Errorf("Wrap(%q, %v) = %v, want %v", tt.text, tt.maxW, got, tt.want)
		}
	}
}

func TestSplitTwoLines(t *testing.T) {
	m := perRune(10)

	l1, l2 := SplitTwoLines("short", 100, m)
	if l1 != "short" || l2 != "" {
		t.Errorf("fitting text must stay on one line, got %q / %q", l1, l2)
	}

	l1, l2 = SplitTwoLines("alpha beta gamma", 110, m)
	if l1 != "alpha beta" || l2 != "gamma" {
		t.Errorf("split = %q / %q, want \"alpha beta\" / \"gamma\"", l1, l2)
	}

	// No whitespace break fits: whole string is ellipsized.
	l1, l2 = SplitTwoLines("unbreakablelongword", 80, m)
	if l2 != "" || m(l1) > 80 {
		t.Errorf("unbreakable text must ellipsize onto line one, got %q / %q", l1, l2)
	}

	// Overlong remainder gets ellipsized too.
	_, l2 = SplitTwoLines("ab cdefghijklmnopqrstuvwxyz", 100, m)
	if m(l2) > 100 {
		t.Errorf("line two overflows: %q", l2)
	}
}

func TestHyphenate(t *testing.T) {
	m := perRune(10)

	frags := Hyphenate("wonderful", 50, m)
	// Every fragment must fit, and rejoining (minus hyphens) must give
	// back the original word.
	var rebuilt string
	for i, f := range frags {
		if m(f) > 50 {
			t.Errorf("fragment %q wider than limit", f)
		}
		if i < len(frags)-1 {
			if f[len(f)-1] != '-' {
				t.Errorf("fragment %q missing trailing hyphen", f)
			}
			rebuilt += f[:len(f)-1]
		} else {
			rebuilt += f
		}
	}
	if rebuilt != "wonderful" {
		t.Errorf("fragments rebuild to %q", rebuilt)
	}

	if got := Hyphenate("ok", 100, m); !reflect.DeepEqual(got, []string{"ok"}) {
		t.Errorf("fitting word must pass through, got %v", got)
	}
}

func TestEllipsize(t *testing.T) {
	m := perRune(10)

	if got := Ellipsize("fits", 100, m); got != "fits" {
		t.Errorf("fitting text changed: %q", got)
	}

	got := Ellipsize("this is far too long", 80, m)
	if m(got) > 80 {
		t.Errorf("ellipsized text still too wide: %q", got)
	}
	if got[len(got)-len(Ellipsis):] != Ellipsis {
		t.Errorf("missing ellipsis: %q", got)
	}
}

func TestTrimNumericToFit(t *testing.T) {
	m := perRune(10)

	tests := []struct {
		text string
		maxW float64
		want string
	}{
		{"28,33", 100, "28,33"}, // fits as-is
		{"28,33", 40, "28,3"},
		{"28,33", 30, "28"},
		{"28,33%", 40, "28%"},
		{"3,45 Mrd $", 90, "3,4 Mrd $"},
		{"3,45 Mrd $", 80, "3 Mrd $"},
		{"1.234,56", 60, "1.234"}, // thousands grouping survives
	}
	for _, tt := range tests {
		if got := TrimNumericToFit(tt.text, tt.maxW, m); got != tt.want {
			t.Errorf("TrimNumericToFit(%q, %v) = %q, want %q", tt.text, tt.maxW, got, tt.want)
		}
	}

	// Out of precision: falls back to ellipsis, still fitting.
	got := TrimNumericToFit("1.234.567 Mrd $", 50, m)
	if m(got) > 50 {
		t.Errorf("fallback result too wide: %q", got)
	}
}
