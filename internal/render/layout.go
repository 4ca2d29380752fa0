// Package render turns two entities and a metric selection into the
// finished 1080×1350 comparison image. The layout engine converges font
// sizes and chip widths so that no glyph run overflows its box; the
// compositor then draws the full card pair.
package render

import (
	"github.com/fbruhn/aktienduell/internal/render/textfit"
)

// MeasureFn measures text width at a given pixel size.
type MeasureFn func(text string, size float64) float64

// Row is one metric line of the card pair: the shared label and the
// formatted value for each side.
type Row struct {
	Key    string
	Label  string
	ValueA string
	ValueB string
}

// FitState carries the two font sizes the fit loop adjusts.
type FitState struct {
	LabelSize float64
	ValueSize float64
}

// Floors are the minimum pixel sizes; the loop never goes below them.
type Floors struct {
	Label float64
	Value float64
}

// Overflow reports which constraint is violated at the current state.
type Overflow struct {
	Width  bool
	Height bool
}

// Any reports whether any constraint is violated.
func (o Overflow) Any() bool { return o.Width || o.Height }

// Step produces the next fit state for the given overflow. On width
// failure the value font shrinks first; once it reaches its floor the
// label font shrinks. On height failure both shrink together. The
// result is monotonically non-increasing and equals the input once both
// fonts sit on their floors, which terminates the loop.
func Step(s FitState, o Overflow, f Floors) FitState {
	if o.Width {
		if s.ValueSize > f.Value {
			s.ValueSize--
		} else if s.LabelSize > f.Label {
			s.LabelSize--
		}
	}
	if o.Height {
		if s.LabelSize > f.Label {
			s.LabelSize--
		}
		if s.ValueSize > f.Value {
			s.ValueSize--
		}
	}
	return s
}

// LayoutSpec is the input to the fit loop.
type LayoutSpec struct {
	Rows []Row

	InnerWidth  float64 // card width minus horizontal padding
	AvailHeight float64 // vertical space for the metric block

	Initial FitState
	Floors  Floors

	LineSpacing float64 // row height multiplier on the larger font size
	ChipPadX    float64 // horizontal padding inside a chip
	ColGap      float64 // gap between label column and chip

	ChipMaxFrac  float64 // chip width ceiling as fraction of InnerWidth
	LabelMinFrac float64 // label region floor as fraction of InnerWidth
}

// Geometry is the converged result. Chip widths are keyed by metric and
// shared across both cards, which keeps the pair visually symmetric.
type Geometry struct {
	State      FitState
	RowHeight  float64
	ChipWidths map[string]float64
	Labels     map[string]string // final, possibly degraded, label text
}

// ChipInner returns the text width available inside a chip.
func (g *Geometry) ChipInner(key string, padX float64) float64 {
	return g.ChipWidths[key] - 2*padX
}

// Engine runs the fit loop against concrete font measurers.
type Engine struct {
	MeasureLabel MeasureFn
	MeasureValue MeasureFn
	ShortLabels  func(key string) []string // degradation ladder per metric
}

// Layout converges the fit state and derives the chip width table and
// final label texts.
func (e *Engine) Layout(spec LayoutSpec) Geometry {
	state := spec.Initial
	for {
		over := e.overflow(spec, state)
		if !over.Any() {
			break
		}
		next := Step(state, over, spec.Floors)
		if next == state {
			// Both fonts are on their floors; collapse is accepted,
			// the chip clamp and numeric trimming absorb the rest.
			break
		}
		state = next
	}

	chips := e.chipWidths(spec, state)
	labels := e.degradeLabels(spec, state, chips)

	rowFont := state.LabelSize
	if state.ValueSize > rowFont {
		rowFont = state.ValueSize
	}

	return Geometry{
		State:      state,
		RowHeight:  rowFont * spec.LineSpacing,
		ChipWidths: chips,
		Labels:     labels,
	}
}

// overflow evaluates both constraints at the given state.
func (e *Engine) overflow(spec LayoutSpec, s FitState) Overflow {
	var o Overflow

	chipMax := spec.ChipMaxFrac * spec.InnerWidth
	for _, row := range spec.Rows {
		need := e.widestValue(row, s.ValueSize) + 2*spec.ChipPadX
		if need > chipMax {
			o.Width = true
			break
		}
	}

	if !o.Width {
		// Labels must fit beside the chip their row actually gets.
		chips := e.chipWidths(spec, s)
		for _, row := range spec.Rows {
			region := spec.InnerWidth - chips[row.Key] - spec.ColGap
			if e.MeasureLabel(row.Label, s.LabelSize) > region {
				o.Width = true
				break
			}
		}
	}

	rowFont := s.LabelSize
	if s.ValueSize > rowFont {
		rowFont = s.ValueSize
	}
	if float64(len(spec.Rows))*rowFont*spec.LineSpacing > spec.AvailHeight {
		o.Height = true
	}
	return o
}

// chipWidths computes the shared chip width per metric: widest formatted
// value across both entities plus padding, clamped to the chip ceiling
// and to the minimum label region.
func (e *Engine) chipWidths(spec LayoutSpec, s FitState) map[string]float64 {
	chipMax := spec.ChipMaxFrac * spec.InnerWidth
	labelMin := spec.LabelMinFrac * spec.InnerWidth
	hardMax := spec.InnerWidth - spec.ColGap - labelMin
	if hardMax < chipMax {
		chipMax = hardMax
	}

	chips := make(map[string]float64, len(spec.Rows))
	for _, row := range spec.Rows {
		w := e.widestValue(row, s.ValueSize) + 2*spec.ChipPadX
		if w > chipMax {
			w = chipMax
		}
		chips[row.Key] = w
	}
	return chips
}

func (e *Engine) widestValue(row Row, size float64) float64 {
	wa := e.MeasureValue(row.ValueA, size)
	wb := e.MeasureValue(row.ValueB, size)
	if wa > wb {
		return wa
	}
	return wb
}

// degradeLabels walks each row's synonym ladder until a label fits its
// region, ellipsizing as the last resort.
func (e *Engine) degradeLabels(spec LayoutSpec, s FitState, chips map[string]float64) map[string]string {
	labels := make(map[string]string, len(spec.Rows))
	for _, row := range spec.Rows {
		region := spec.InnerWidth - chips[row.Key] - spec.ColGap
		measure := func(t string) float64 { return e.MeasureLabel(t, s.LabelSize) }

		ladder := []string{row.Label}
		if e.ShortLabels != nil {
			ladder = e.ShortLabels(row.Key)
		}

		chosen := ""
		for _, cand := range ladder {
			if measure(cand) <= region {
				chosen = cand
				break
			}
		}
		if chosen == "" {
			last := ladder[len(ladder)-1]
			chosen = textfit.Ellipsize(last, region, measure)
		}
		labels[row.Key] = chosen
	}
	return labels
}
