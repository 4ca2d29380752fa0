package metric

import (
	"github.com/fbruhn/aktienduell/internal/catalog"
	"github.com/fbruhn/aktienduell/internal/table"
)

// MaxMetrics is the number of rows a card can hold.
const MaxMetrics = 6

// minMetrics is the floor below which the selection falls back to the
// generic catalog to avoid a near-empty card.
const minMetrics = 3

// Selector chooses the metric set for an entity pair.
type Selector struct {
	reg *catalog.Registry
	res *Resolver
}

// NewSelector creates a selector over the given catalog and resolver.
func NewSelector(reg *catalog.Registry, res *Resolver) *Selector {
	return &Selector{reg: reg, res: res}
}

// Select picks up to six metrics for the pair. Explicitly requested keys
// take precedence over the sector defaults; the generic fallback catalog
// is appended for keys not already listed. Metrics present in both
// entities are preferred, then metrics present in exactly one, in
// candidate order. Fewer than three selectable metrics trigger a
// reselect from the fallback catalog that ignores presence entirely.
func (s *Selector) Select(a, b *table.Entity, requested []string, sector string) []string {
	candidates := requested
	if len(candidates) == 0 {
		candidates = s.reg.SectorDefaults(sector)
	}

	seen := make(map[string]bool, len(candidates)+len(s.reg.Fallback()))
	ordered := make([]string, 0, len(candidates)+len(s.reg.Fallback()))
	for _, k := range candidates {
		if !seen[k] {
			seen[k] = true
			ordered = append(ordered, k)
		}
	}
	for _, k := range s.reg.Fallback() {
		if !seen[k] {
			seen[k] = true
			ordered = append(ordered, k)
		}
	}

	var both, either []string
	for _, k := range ordered {
		_, inA := s.res.Resolve(k, a)
		_, inB := s.res.Resolve(k, b)
		switch {
		case inA && inB:
			both = append(both, k)
		case inA || inB:
			either = append(either, k)
		}
	}

	selected := make([]string, 0, MaxMetrics)
	for _, k := range both {
		if len(selected) == MaxMetrics {
			break
		}
		selected = append(selected, k)
	}
	for _, k := range either {
		if len(selected) == MaxMetrics {
			break
		}
		selected = append(selected, k)
	}

	if len(selected) < minMetrics {
		fb := s.reg.Fallback()
		if len(fb) > MaxMetrics {
			fb = fb[:MaxMetrics]
		}
		return fb
	}
	return selected
}
