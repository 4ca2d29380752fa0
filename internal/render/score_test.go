package render

import (
	"testing"

	"github.com/fbruhn/aktienduell/internal/catalog"
	"github.com/fbruhn/aktienduell/internal/metric"
	"github.com/fbruhn/aktienduell/internal/table"
)

func newScorer() *Scorer {
	reg := catalog.Default()
	return NewScorer(reg, metric.NewResolver(reg))
}

func TestScoreDirections(t *testing.T) {
	s := newScorer()

	a := table.NewEntity("AAA", map[string]string{
		"KGV":        "10",
		"Nettomarge": "30",
	})
	b := table.NewEntity("BBB", map[string]string{
		"KGV":        "15",
		"Nettomarge": "20",
	})

	got := s.Score(a, b, []string{"KGV", "Nettomarge"})
	// Lower KGV and higher margin both go to A.
	if got.PointsA != 2 || got.PointsB != 0 || got.Compared != 2 {
		t.Errorf("score = %+v, want 2/0 over 2 metrics", got)
	}
	if got.Outcome() != WinnerA {
		t.Errorf("outcome = %v, want WinnerA", got.Outcome())
	}
}

func TestScoreTieSplitsPoint(t *testing.T) {
	s := newScorer()

	a := table.NewEntity("AAA", map[string]string{"KGV": "12"})
	b := table.NewEntity("BBB", map[string]string{"KGV": "12"})

	got := s.Score(a, b, []string{"KGV"})
	if got.PointsA != 0.5 || got.PointsB != 0.5 {
		t.Errorf("tie score = %+v, want half a point each", got)
	}
	if got.Outcome() != Draw {
		t.Errorf("outcome = %v, want Draw", got.Outcome())
	}
}

func TestScoreSkipsAbsentAndNeutral(t *testing.T) {
	s := newScorer()

	a := table.NewEntity("AAA", map[string]string{
		"KGV":                  "10",
		"Marktkapitalisierung": "3400000000",
	})
	b := table.NewEntity("BBB", map[string]string{
		"Marktkapitalisierung": "900000000",
	})

	// KGV is absent on B, market cap is neutral: nothing is compared.
	got := s.Score(a, b, []string{"KGV", "Marktkapitalisierung"})
	if got.Compared != 0 || got.PointsA != 0 || got.PointsB != 0 {
		t.Errorf("score = %+v, want empty duel", got)
	}
	if got.Outcome() != Draw {
		t.Errorf("empty duel outcome = %v, want Draw", got.Outcome())
	}
}

func TestScoreOwnershipPercentKeysAwardPoints(t *testing.T) {
	s := newScorer()

	a := table.NewEntity("AAA", map[string]string{
		"Ausschüttungsquote":      "40",
		"Insider_Anteil":          "12",
		"Institutioneller_Anteil": "60",
	})
	b := table.NewEntity("BBB", map[string]string{
		"Ausschüttungsquote":      "30",
		"Insider_Anteil":          "8",
		"Institutioneller_Anteil": "70",
	})

	// Ownership and payout percentages count as higher-is-better, they
	// are not neutral like market cap.
	got := s.Score(a, b, []string{"Ausschüttungsquote", "Insider_Anteil", "Institutioneller_Anteil"})
	if got.Compared != 3 {
		t.Fatalf("compared = %d, want 3", got.Compared)
	}
	if got.PointsA != 2 || got.PointsB != 1 {
		t.Errorf("score = %+v, want 2/1", got)
	}
}

func TestScoreNormalizesPercentBeforeComparing(t *testing.T) {
	s := newScorer()

	// 0.30 is a fraction (30%), 25 is already percent. The duel must
	// compare 30 against 25, not 0.30 against 25.
	a := table.NewEntity("AAA", map[string]string{"Bruttomarge": "0.30"})
	b := table.NewEntity("BBB", map[string]string{"Bruttomarge": "25"})

	got := s.Score(a, b, []string{"Bruttomarge"})
	if got.PointsA != 1 || got.PointsB != 0 {
		t.Errorf("score = %+v, want A to win on the normalized margin", got)
	}
}
