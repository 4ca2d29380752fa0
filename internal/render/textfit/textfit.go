// Package textfit provides pure text-geometry helpers used by the card
// layout: wrapping, two-line splitting, hyphenation, ellipsis and
// numeric-precision trimming. Every function is parameterized by a
// pixel-width measurement callback, so the package has no font
// dependency and tests run against synthetic measurers.
package textfit

import "strings"

// Measure returns the pixel width of a string in the caller's font.
type Measure func(s string) float64

// Ellipsis is the truncation glyph.
const Ellipsis = "…"

// Wrap splits text into lines by greedy word accumulation: a line is
// closed when adding the next word would exceed maxWidth. A single word
// wider than maxWidth occupies its own line.
func Wrap(text string, maxWidth float64, m Measure) []string {
	words := strings.Fields(text)
	if len(words) == 0 {
		return nil
	}

	var lines []string
	cur := words[0]
	for _, w := range words[1:] {
		if m(cur+" "+w) > maxWidth {
			lines = append(lines, cur)
			cur = w
			continue
		}
		cur += " " + w
	}
	return append(lines, cur)
}

// SplitTwoLines fits text into at most two lines. Text that fits on one
// line is returned unchanged with an empty second line. Otherwise the
// last whitespace break whose prefix fits is used; the remainder goes on
// line two, ellipsized if it is itself too wide. When no break produces
// a fitting prefix, the whole string is ellipsized onto line one.
func SplitTwoLines(text string, maxWidth float64, m Measure) (string, string) {
	if m(text) <= maxWidth {
		return text, ""
	}

	best := -1
	for i, r := range text {
		if r == ' ' && m(text[:i]) <= maxWidth {
			best = i
		}
	}
	if best < 0 {
		return Ellipsize(text, maxWidth, m), ""
	}

	line1 := text[:best]
	line2 := strings.TrimSpace(text[best:])
	if m(line2) > maxWidth {
		line2 = Ellipsize(line2, maxWidth, m)
	}
	return line1, line2
}

// Hyphenate breaks a single word into fragments that each fit maxWidth,
// every fragment except the last carrying a trailing hyphen. The longest
// fitting prefix is found by binary search; at least one rune is
// consumed per fragment so the loop always terminates.
func Hyphenate(word string, maxWidth float64, m Measure) []string {
	var frags []string
	rest := []rune(word)

	for len(rest) > 0 && m(string(rest)) > maxWidth {
		lo, hi := 1, len(rest)-1
		best := 1
		for lo <= hi {
			mid := (lo + hi) / 2
			if m(string(rest[:mid])+"-") <= maxWidth {
				best = mid
				lo = mid + 1
			} else {
				hi = mid - 1
			}
		}
		frags = append(frags, string(rest[:best])+"-")
		rest = rest[best:]
	}
	if len(rest) > 0 {
		frags = append(frags, string(rest))
	}
	return frags
}

// Ellipsize trims text until it fits maxWidth with the ellipsis glyph
// appended. Text that already fits is returned unchanged.
func Ellipsize(text string, maxWidth float64, m Measure) string {
	if m(text) <= maxWidth {
		return text
	}

	runes := []rune(text)
	lo, hi := 0, len(runes)
	best := 0
	for lo <= hi {
		mid := (lo + hi) / 2
		if m(strings.TrimRight(string(runes[:mid]), " ")+Ellipsis) <= maxWidth {
			best = mid
			lo = mid + 1
		} else {
			hi = mid - 1
		}
	}
	return strings.TrimRight(string(runes[:best]), " ") + Ellipsis
}

// TrimNumericToFit reduces the precision of a formatted number until it
// fits: the rightmost decimal-digit run shrinks one digit at a time
// ("28,33" → "28,3" → "28"), preserving any trailing unit suffix like
// "%" or a currency label. When no precision is left to drop, it falls
// back to Ellipsize.
func TrimNumericToFit(text string, maxWidth float64, m Measure) string {
	if m(text) <= maxWidth {
		return text
	}

	num, suffix := splitNumericSuffix(text)
	for num != "" {
		if m(num+suffix) <= maxWidth {
			return num + suffix
		}
		trimmed, ok := dropDecimalDigit(num)
		if !ok {
			break
		}
		num = trimmed
	}
	return Ellipsize(text, maxWidth, m)
}

// splitNumericSuffix separates a formatted value into its numeric part
// and trailing unit suffix ("3,4 Mrd $" → "3,4", " Mrd $").
func splitNumericSuffix(s string) (num, suffix string) {
	runes := []rune(s)
	last := -1
	for i, r := range runes {
		if r >= '0' && r <= '9' {
			last = i
		}
	}
	if last < 0 {
		return "", s
	}
	return string(runes[:last+1]), string(runes[last+1:])
}

// dropDecimalDigit removes the last digit of the fractional part, and
// the separator itself once the fraction is exhausted. A separator
// followed by three or more digits is a thousands group, not a decimal
// point, so nothing is trimmed. Returns false when no precision is left.
func dropDecimalDigit(num string) (string, bool) {
	sep := strings.LastIndexAny(num, ",.")
	if sep < 0 {
		return num, false
	}
	frac := num[sep+1:]
	if len(frac) == 0 || len(frac) > 2 {
		return num, false
	}
	if len(frac) == 1 {
		return num[:sep], true
	}
	return num[:len(num)-1], true
}
