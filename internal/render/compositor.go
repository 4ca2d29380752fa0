package render

import (
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gogpu/gg"

	"github.com/fbruhn/aktienduell/internal/metric"
	"github.com/fbruhn/aktienduell/internal/render/textfit"
	"github.com/fbruhn/aktienduell/internal/table"
)

// Canvas holds the fixed output dimensions and the safe margins as
// canvas-height fractions.
type Canvas struct {
	Width  int
	Height int

	TopFrac    float64
	BottomFrac float64
	SideFrac   float64
}

// DefaultCanvas is the 1080×1350 portrait format the images are
// published in.
var DefaultCanvas = Canvas{
	Width:  1080,
	Height: 1350,

	TopFrac:    0.045,
	BottomFrac: 0.05,
	SideFrac:   0.05,
}

// Style collects the colors and size ratios of the composition. One
// static instance; nothing mutates it after init.
type Style struct {
	Text      string
	Muted     string
	CardFill  string
	Zebra     string
	ChipFill  string
	ChipWin   string
	Green     string
	Red       string
	BarGrey   string
	BadgeFill string
	BadgeText string

	TitleSize  float64
	SubSize    float64
	HeaderSize float64
	LabelSize  float64
	ValueSize  float64
	PillSize   float64
	BarSize    float64
	BadgeSize  float64
	FooterSize float64

	LabelFloor float64
	ValueFloor float64

	LineSpacing  float64
	CornerRadius float64
	ChipPadX     float64
	ColGap       float64
	ChipMaxFrac  float64
	LabelMinFrac float64
}

var defaultStyle = Style{
	Text:      "#0f172a",
	Muted:     "#64748b",
	CardFill:  "#ffffff",
	Zebra:     "#f1f5f9",
	ChipFill:  "#e2e8f0",
	ChipWin:   "#dcfce7",
	Green:     "#16a34a",
	Red:       "#dc2626",
	BarGrey:   "#cbd5e1",
	BadgeFill: "#0f172a",
	BadgeText: "#ffffff",

	TitleSize:  64,
	SubSize:    40,
	HeaderSize: 34,
	LabelSize:  30,
	ValueSize:  32,
	PillSize:   26,
	BarSize:    22,
	BadgeSize:  32,
	FooterSize: 24,

	LabelFloor: 18,
	ValueFloor: 20,

	LineSpacing:  1.6,
	CornerRadius: 22,
	ChipPadX:     14,
	ColGap:       12,
	ChipMaxFrac:  0.52,
	LabelMinFrac: 0.38,
}

// Compositor renders the finished comparison image.
type Compositor struct {
	canvas Canvas
	style  Style
	fonts  *Fonts
	assets *Assets
	fmtr   *metric.Formatter
	scorer *Scorer
	engine *Engine

	outDir string
	now    func() time.Time
}

// NewCompositor wires the compositor. now is injectable for tests; nil
// selects time.Now.
func NewCompositor(fonts *Fonts, assets *Assets, fmtr *metric.Formatter, scorer *Scorer, outDir string, now func() time.Time) *Compositor {
	if now == nil {
		now = time.Now
	}
	eng := &Engine{
		MeasureLabel: fonts.MeasureRegular,
		MeasureValue: fonts.MeasureBold,
		ShortLabels:  fmtr.Registry().ShortLabels,
	}
	return &Compositor{
		canvas: DefaultCanvas,
		style:  defaultStyle,
		fonts:  fonts,
		assets: assets,
		fmtr:   fmtr,
		scorer: scorer,
		engine: eng,
		outDir: outDir,
		now:    now,
	}
}

// Render composes the image for the pair and writes it as a PNG named
// COMPARE_<A>_<B>_<timestamp>.png into the output directory. It returns
// the file name relative to that directory.
func (c *Compositor) Render(a, b *table.Entity, keys []string) (string, error) {
	dc, err := c.Compose(a, b, keys)
	if err != nil {
		return "", err
	}

	if err := os.MkdirAll(c.outDir, 0o755); err != nil {
		return "", fmt.Errorf("output dir: %w", err)
	}
	name := fmt.Sprintf("COMPARE_%s_%s_%s.png", a.Symbol(), b.Symbol(), c.now().Format("20060102_150405"))
	if err := dc.SavePNG(filepath.Join(c.outDir, name)); err != nil {
		return "", fmt.Errorf("save image: %w", err)
	}
	return name, nil
}

// Compose draws the full comparison onto a fresh canvas. Drawing never
// fails for missing assets or values; the error return covers the
// degenerate case of an empty metric selection.
func (c *Compositor) Compose(a, b *table.Entity, keys []string) (*gg.Context, error) {
	if len(keys) == 0 {
		return nil, fmt.Errorf("no metrics selected for %s vs %s", a.Symbol(), b.Symbol())
	}

	W := float64(c.canvas.Width)
	H := float64(c.canvas.Height)
	dc := gg.NewContext(c.canvas.Width, c.canvas.Height)

	c.drawBackground(dc, W, H)
	y := c.drawTitle(dc, a, b, W, H)

	rows := c.buildRows(a, b, keys)

	sideX := W * c.canvas.SideFrac
	cardGap := W * 0.033
	cardW := (W - 2*sideX - cardGap) / 2
	cardPad := 24.0

	footerY := H - H*c.canvas.BottomFrac
	// Vertical budget below the title: cards, then the lower block,
	// then the footer line.
	lowerBlockH := c.lowerBlockHeight()
	cardTop := y + 24
	cardH := footerY - cardTop - lowerBlockH - 48

	geo := c.engine.Layout(LayoutSpec{
		Rows:         rows,
		InnerWidth:   cardW - 2*cardPad,
		AvailHeight:  cardH - c.cardHeaderHeight() - 2*cardPad,
		Initial:      FitState{LabelSize: c.style.LabelSize, ValueSize: c.style.ValueSize},
		Floors:       Floors{Label: c.style.LabelFloor, Value: c.style.ValueFloor},
		LineSpacing:  c.style.LineSpacing,
		ChipPadX:     c.style.ChipPadX,
		ColGap:       c.style.ColGap,
		ChipMaxFrac:  c.style.ChipMaxFrac,
		LabelMinFrac: c.style.LabelMinFrac,
	})

	score := c.scorer.Score(a, b, keys)

	c.drawCard(dc, a, b, rows, geo, sideX, cardTop, cardW, cardH, cardPad, sideA)
	c.drawCard(dc, b, a, rows, geo, sideX+cardW+cardGap, cardTop, cardW, cardH, cardPad, sideB)

	// Lower block: pills and bars per card, the badge, then the footer.
	// The bottom clamp shifts everything up when it would intrude into
	// the footer margin.
	lowerTop := cardTop + cardH + 24
	if overflow := lowerTop + lowerBlockH - (footerY - 16); overflow > 0 {
		lowerTop -= overflow
	}

	yA := c.drawStatBlock(dc, a, b, sideX, lowerTop, cardW)
	yB := c.drawStatBlock(dc, b, a, sideX+cardW+cardGap, lowerTop, cardW)
	blockBottom := math.Max(yA, yB)

	c.drawBadge(dc, a, b, score, W, blockBottom+20)
	c.drawFooter(dc, a, b, W, footerY)

	return dc, nil
}

// --- sections ---

type cardSide int

const (
	sideA cardSide = iota
	sideB
)

func (c *Compositor) drawBackground(dc *gg.Context, w, h float64) {
	if bg, ok := c.assets.Background(); ok {
		drawCover(dc, bg, w, h)
		return
	}
	dc.SetHexColor("#e2e8f0")
	dc.DrawRectangle(0, 0, w, h)
	dc.Fill()
}

// drawTitle renders the wrapped headline and the sub line, returning
// the y below them.
func (c *Compositor) drawTitle(dc *gg.Context, a, b *table.Entity, w, h float64) float64 {
	y := h * c.canvas.TopFrac

	title := a.Symbol() + " vs " + b.Symbol()
	maxW := w * 0.9
	dc.SetFont(c.fonts.BoldFace(c.style.TitleSize))
	dc.SetHexColor(c.style.Text)
	for _, line := range textfit.Wrap(title, maxW, func(s string) float64 {
		return c.fonts.MeasureBold(s, c.style.TitleSize)
	}) {
		dc.DrawStringAnchored(line, w/2, y, 0.5, 1)
		y += c.style.TitleSize * 1.15
	}

	sub := a.Name() + "  –  " + b.Name()
	dc.SetFont(c.fonts.RegularFace(c.style.SubSize))
	dc.SetHexColor(c.style.Muted)
	line1, line2 := textfit.SplitTwoLines(sub, maxW, func(s string) float64 {
		return c.fonts.MeasureRegular(s, c.style.SubSize)
	})
	dc.DrawStringAnchored(line1, w/2, y, 0.5, 1)
	y += c.style.SubSize * 1.15
	if line2 != "" {
		dc.DrawStringAnchored(line2, w/2, y, 0.5, 1)
		y += c.style.SubSize * 1.15
	}
	return y
}

// buildRows formats both sides of every selected metric once.
func (c *Compositor) buildRows(a, b *table.Entity, keys []string) []Row {
	rows := make([]Row, 0, len(keys))
	for _, key := range keys {
		rows = append(rows, Row{
			Key:    key,
			Label:  c.fmtr.Registry().Label(key),
			ValueA: c.fmtr.Display(key, a),
			ValueB: c.fmtr.Display(key, b),
		})
	}
	return rows
}

func (c *Compositor) cardHeaderHeight() float64 {
	// Logo box plus the symbol/name header.
	return 110 + c.style.HeaderSize*1.4
}

// drawCard draws one card: shadow, body, logo, header, zebra rows with
// label and value chip. The winner tint is applied per row against the
// other entity.
func (c *Compositor) drawCard(dc *gg.Context, e, other *table.Entity, rows []Row, geo Geometry, x, y, w, h, pad float64, side cardSide) {
	r := c.style.CornerRadius

	dc.SetRGBA(0.06, 0.09, 0.16, 0.18)
	dc.DrawRoundedRectangle(x+6, y+8, w, h, r)
	dc.Fill()

	dc.SetHexColor(c.style.CardFill)
	dc.DrawRoundedRectangle(x, y, w, h, r)
	dc.Fill()

	// Logo, or the plain symbol when no logo asset exists.
	logoBoxH := 110.0
	if logo, ok := c.assets.Logo(e.Symbol()); ok {
		drawContained(dc, logo, x+pad, y+pad, w-2*pad, logoBoxH-pad)
	} else {
		dc.SetFont(c.fonts.BoldFace(c.style.HeaderSize * 1.3))
		dc.SetHexColor(c.style.Muted)
		dc.DrawStringAnchored(e.Symbol(), x+w/2, y+pad+logoBoxH/2, 0.5, 0.35)
	}

	headY := y + logoBoxH + c.style.HeaderSize
	dc.SetFont(c.fonts.BoldFace(c.style.HeaderSize))
	dc.SetHexColor(c.style.Text)
	name := textfit.Ellipsize(e.Name(), w-2*pad, func(s string) float64 {
		return c.fonts.MeasureBold(s, c.style.HeaderSize)
	})
	dc.DrawStringAnchored(name, x+w/2, headY, 0.5, 0.5)

	rowTop := y + c.cardHeaderHeight() + pad
	innerX := x + pad
	innerW := w - 2*pad

	for i, row := range rows {
		ry := rowTop + float64(i)*geo.RowHeight

		if i%2 == 1 {
			dc.SetHexColor(c.style.Zebra)
			dc.DrawRectangle(innerX-6, ry, innerW+12, geo.RowHeight)
			dc.Fill()
		}

		dc.SetFont(c.fonts.RegularFace(geo.State.LabelSize))
		dc.SetHexColor(c.style.Text)
		dc.DrawStringAnchored(geo.Labels[row.Key], innerX, ry+geo.RowHeight/2, 0, 0.35)

		value := row.ValueA
		if side == sideB {
			value = row.ValueB
		}
		c.drawChip(dc, e, other, row.Key, value, geo, innerX+innerW, ry)
	}
}

// drawChip renders the value chip right-aligned in its row, tinted when
// this side wins the metric.
func (c *Compositor) drawChip(dc *gg.Context, e, other *table.Entity, key, value string, geo Geometry, rightX, rowY float64) {
	chipW := geo.ChipWidths[key]
	chipH := geo.RowHeight * 0.82
	chipX := rightX - chipW
	chipY := rowY + (geo.RowHeight-chipH)/2

	fill := c.style.ChipFill
	if c.winsMetric(e, other, key) {
		fill = c.style.ChipWin
	}
	dc.SetHexColor(fill)
	dc.DrawRoundedRectangle(chipX, chipY, chipW, chipH, chipH/2)
	dc.Fill()

	inner := geo.ChipInner(key, c.style.ChipPadX)
	text := textfit.TrimNumericToFit(value, inner, func(s string) float64 {
		return c.fonts.MeasureBold(s, geo.State.ValueSize)
	})
	dc.SetFont(c.fonts.BoldFace(geo.State.ValueSize))
	dc.SetHexColor(c.style.Text)
	dc.DrawStringAnchored(text, chipX+chipW/2, chipY+chipH/2, 0.5, 0.35)
}

// winsMetric reports whether e beats other on a single metric.
func (c *Compositor) winsMetric(e, other *table.Entity, key string) bool {
	s := c.scorer.Score(e, other, []string{key})
	return s.PointsA > s.PointsB
}

// --- stat pills and recommendation bar ---

type pill struct {
	Label string
	Text  string
	Color string
}

// statPills derives the three pills for one entity: last close, analyst
// target and the percentage potential between them.
func (c *Compositor) statPills(e *table.Entity) []pill {
	res := c.fmtr.Resolver()
	sym := c.fmtr.Registry().CurrencySymbol(e.Currency())

	price, okP := res.Numeric("Vortagesschlusskurs", e)
	target, okT := res.Numeric("Analysten_Kursziel", e)

	pills := make([]pill, 0, 3)

	priceText := metric.Absent
	if okP {
		priceText = c.fmtr.FormatNumber(price, 2, true) + " " + sym
	}
	pills = append(pills, pill{Label: "Kurs", Text: priceText, Color: c.style.Muted})

	targetText := metric.Absent
	if okT {
		targetText = c.fmtr.FormatNumber(target, 2, true) + " " + sym
	}
	pills = append(pills, pill{Label: "Ziel", Text: targetText, Color: c.style.Muted})

	potText := metric.Absent
	potColor := c.style.Muted
	if okP && okT && price != 0 {
		pot := (target/price - 1) * 100
		sign := ""
		if pot >= 0 {
			sign = "+"
			potColor = c.style.Green
		} else {
			potColor = c.style.Red
		}
		potText = sign + c.fmtr.FormatNumber(pot, 1, true) + "%"
	}
	pills = append(pills, pill{Label: "Potenzial", Text: potText, Color: potColor})

	return pills
}

// buyFraction maps the 1..5 analyst mean rating onto a 0..1 buy share.
func buyFraction(mean float64) float64 {
	f := (5 - mean) / 4
	if f < 0 {
		return 0
	}
	if f > 1 {
		return 1
	}
	return f
}

// lowerBlockHeight is the reserved height for pills, bar and badge.
func (c *Compositor) lowerBlockHeight() float64 {
	return c.pillHeight() + 14 + c.barHeight() + 20 + c.badgeHeight() + 16
}

func (c *Compositor) pillHeight() float64  { return c.style.PillSize * 2.4 }
func (c *Compositor) barHeight() float64   { return c.style.BarSize * 1.7 }
func (c *Compositor) badgeHeight() float64 { return c.style.BadgeSize * 1.9 }

// drawStatBlock draws the three pills and the recommendation bar under
// one card and returns the y below the block.
func (c *Compositor) drawStatBlock(dc *gg.Context, e, other *table.Entity, x, y, w float64) float64 {
	pills := c.statPills(e)

	gap := 12.0
	pillW := (w - 2*gap) / 3
	pillH := c.pillHeight()

	for i, p := range pills {
		px := x + float64(i)*(pillW+gap)

		dc.SetHexColor(c.style.CardFill)
		dc.DrawRoundedRectangle(px, y, pillW, pillH, pillH/2)
		dc.Fill()

		dc.SetFont(c.fonts.RegularFace(c.style.PillSize * 0.72))
		dc.SetHexColor(c.style.Muted)
		dc.DrawStringAnchored(p.Label, px+pillW/2, y+pillH*0.32, 0.5, 0.35)

		text := textfit.TrimNumericToFit(p.Text, pillW-20, func(s string) float64 {
			return c.fonts.MeasureBold(s, c.style.PillSize)
		})
		dc.SetFont(c.fonts.BoldFace(c.style.PillSize))
		dc.SetHexColor(p.Color)
		dc.DrawStringAnchored(text, px+pillW/2, y+pillH*0.72, 0.5, 0.35)
	}

	barY := y + pillH + 14
	c.drawRecommendationBar(dc, e, other, x, barY, w)
	return barY + c.barHeight()
}

// barMode says how one card's recommendation bar is rendered.
type barMode int

const (
	barNone  barMode = iota // neither entity is rated: no bar at all
	barGrey                 // only the other entity is rated: grey placeholder
	barSplit                // this entity is rated: buy/sell split
)

// recommendationBar decides the bar rendering for one card. A rating on
// this side gives the buy/sell split; a rating on the other side only
// gives the grey placeholder so the cards stay symmetric; no rating
// anywhere suppresses the bar.
func (c *Compositor) recommendationBar(e, other *table.Entity) (float64, barMode) {
	res := c.fmtr.Resolver()
	if mean, ok := res.Numeric("Empfehlungsdurchschnitt", e); ok {
		return buyFraction(mean), barSplit
	}
	if _, ok := res.Numeric("Empfehlungsdurchschnitt", other); ok {
		return 0, barGrey
	}
	return 0, barNone
}

// drawRecommendationBar renders the two-color buy/sell split with the
// percentage labels inside each region.
func (c *Compositor) drawRecommendationBar(dc *gg.Context, e, other *table.Entity, x, y, w float64) {
	h := c.barHeight()
	r := h / 2

	frac, mode := c.recommendationBar(e, other)
	if mode == barNone {
		return
	}
	if mode == barGrey {
		dc.SetHexColor(c.style.BarGrey)
		dc.DrawRoundedRectangle(x, y, w, h, r)
		dc.Fill()
		return
	}

	buyW := w * frac

	dc.SetHexColor(c.style.Red)
	dc.DrawRoundedRectangle(x, y, w, h, r)
	dc.Fill()
	if buyW > 0 {
		dc.SetHexColor(c.style.Green)
		dc.DrawRoundedRectangle(x, y, buyW, h, r)
		dc.Fill()
	}

	dc.SetFont(c.fonts.BoldFace(c.style.BarSize))
	dc.SetHexColor(c.style.BadgeText)

	buyLabel := c.fmtr.FormatNumber(frac*100, 0, true) + "%"
	sellLabel := c.fmtr.FormatNumber((1-frac)*100, 0, true) + "%"

	// A label is drawn only when its colored region can hold it.
	if c.fonts.MeasureBold(buyLabel, c.style.BarSize)+16 <= buyW {
		dc.DrawStringAnchored(buyLabel, x+buyW/2, y+h/2, 0.5, 0.35)
	}
	if c.fonts.MeasureBold(sellLabel, c.style.BarSize)+16 <= w-buyW {
		dc.DrawStringAnchored(sellLabel, x+buyW+(w-buyW)/2, y+h/2, 0.5, 0.35)
	}
}

// drawBadge renders the centered winner badge below the cards.
func (c *Compositor) drawBadge(dc *gg.Context, a, b *table.Entity, s Score, w, y float64) {
	text := badgeText(a, b, s)

	size := c.style.BadgeSize
	tw := c.fonts.MeasureBold(text, size)
	bw := tw + 56
	bh := c.badgeHeight()
	bx := (w - bw) / 2

	dc.SetHexColor(c.style.BadgeFill)
	dc.DrawRoundedRectangle(bx, y, bw, bh, bh/2)
	dc.Fill()

	dc.SetFont(c.fonts.BoldFace(size))
	dc.SetHexColor(c.style.BadgeText)
	dc.DrawStringAnchored(text, w/2, y+bh/2, 0.5, 0.35)
}

// badgeText names the winner with the tally, or declares a draw.
func badgeText(a, b *table.Entity, s Score) string {
	tally := fmt.Sprintf("%s : %s", formatPoints(s.PointsA), formatPoints(s.PointsB))
	switch s.Outcome() {
	case WinnerA:
		return fmt.Sprintf("Sieger: %s  (%s)", a.Symbol(), tally)
	case WinnerB:
		return fmt.Sprintf("Sieger: %s  (%s)", b.Symbol(), tally)
	default:
		return fmt.Sprintf("Unentschieden  (%s)", tally)
	}
}

// formatPoints prints half points with a comma decimal, whole points
// without one.
func formatPoints(p float64) string {
	if p == math.Trunc(p) {
		return fmt.Sprintf("%.0f", p)
	}
	return strings.Replace(fmt.Sprintf("%.1f", p), ".", ",", 1)
}

// drawFooter renders the per-entity as-of dates and data sources.
func (c *Compositor) drawFooter(dc *gg.Context, a, b *table.Entity, w, y float64) {
	footer := fmt.Sprintf("Stand: %s / %s  •  Quelle: %s", footerDate(a), footerDate(b), a.Source())
	if b.Source() != a.Source() {
		footer = fmt.Sprintf("Stand: %s / %s  •  Quellen: %s, %s", footerDate(a), footerDate(b), a.Source(), b.Source())
	}

	dc.SetFont(c.fonts.RegularFace(c.style.FooterSize))
	dc.SetHexColor(c.style.Muted)
	dc.DrawStringAnchored(footer, w/2, y, 0.5, 0.35)
}

func footerDate(e *table.Entity) string {
	if d := e.AsOf(); d != "" {
		return d
	}
	return "n/a"
}
