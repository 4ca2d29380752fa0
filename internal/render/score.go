package render

import (
	"github.com/fbruhn/aktienduell/internal/catalog"
	"github.com/fbruhn/aktienduell/internal/metric"
	"github.com/fbruhn/aktienduell/internal/table"
)

// Score is the outcome of the metric duel between the two entities.
type Score struct {
	PointsA  float64
	PointsB  float64
	Compared int // metrics where both sides had a numeric value
}

// Outcome classifies a finished duel.
type Outcome int

const (
	Draw Outcome = iota
	WinnerA
	WinnerB
)

// Outcome returns who collected more points. A duel with no comparable
// metrics is a draw.
func (s Score) Outcome() Outcome {
	switch {
	case s.PointsA > s.PointsB:
		return WinnerA
	case s.PointsB > s.PointsA:
		return WinnerB
	default:
		return Draw
	}
}

// Scorer awards points per metric according to the metric's direction.
type Scorer struct {
	reg *catalog.Registry
	res *metric.Resolver
}

// NewScorer returns a scorer over the given registry.
func NewScorer(reg *catalog.Registry, res *metric.Resolver) *Scorer {
	return &Scorer{reg: reg, res: res}
}

// Score compares the two entities over the selected metric keys. A
// metric counts only when both sides resolve to a number; the better
// side gets one point, ties give half a point each, and metrics with
// neutral direction are skipped entirely.
func (s *Scorer) Score(a, b *table.Entity, keys []string) Score {
	var sc Score
	for _, key := range keys {
		dir := s.reg.DirectionOf(key)
		if dir == catalog.Neutral {
			continue
		}

		va, okA := s.res.Numeric(key, a)
		vb, okB := s.res.Numeric(key, b)
		if !okA || !okB {
			continue
		}
		sc.Compared++

		if va == vb {
			sc.PointsA += 0.5
			sc.PointsB += 0.5
			continue
		}

		aWins := va < vb
		if dir == catalog.Higher {
			aWins = !aWins
		}
		if aWins {
			sc.PointsA++
		} else {
			sc.PointsB++
		}
	}
	return sc
}
