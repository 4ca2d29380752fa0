package render

import (
	"fmt"

	"github.com/gogpu/gg/text"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goregular"
)

// Fonts bundles the two font sources the compositor needs. Sources are
// heavyweight and shared; faces are created per size on demand.
type Fonts struct {
	Regular *text.FontSource
	Bold    *text.FontSource
}

// LoadFonts loads the regular and bold faces from the given paths. An
// empty path selects the embedded Go font, so the renderer works out of
// the box on hosts without the preferred font installed.
func LoadFonts(regularPath, boldPath string) (*Fonts, error) {
	reg, err := loadSource(regularPath, goregular.TTF)
	if err != nil {
		return nil, fmt.Errorf("regular font: %w", err)
	}
	bold, err := loadSource(boldPath, gobold.TTF)
	if err != nil {
		return nil, fmt.Errorf("bold font: %w", err)
	}
	return &Fonts{Regular: reg, Bold: bold}, nil
}

func loadSource(path string, embedded []byte) (*text.FontSource, error) {
	if path == "" {
		return text.NewFontSource(embedded)
	}
	src, err := text.NewFontSourceFromFile(path)
	if err != nil {
		// Missing font files degrade to the embedded face rather than
		// failing the whole render.
		return text.NewFontSource(embedded)
	}
	return src, nil
}

// RegularFace returns a regular face at the given pixel size.
func (f *Fonts) RegularFace(size float64) text.Face { return f.Regular.Face(size) }

// BoldFace returns a bold face at the given pixel size.
func (f *Fonts) BoldFace(size float64) text.Face { return f.Bold.Face(size) }

// MeasureRegular is the layout measurer for label text.
func (f *Fonts) MeasureRegular(s string, size float64) float64 {
	return f.Regular.Face(size).Advance(s)
}

// MeasureBold is the layout measurer for value and headline text.
func (f *Fonts) MeasureBold(s string, size float64) float64 {
	return f.Bold.Face(size).Advance(s)
}
