package render

import (
	"image"
	"os"
	"path/filepath"
	"strings"

	"github.com/gogpu/gg"
)

// Assets resolves background and logo images from the asset directory.
// Every lookup is optional: a missing file renders as a plain fallback,
// never as an error.
type Assets struct {
	dir string
}

// NewAssets returns an asset resolver rooted at dir.
func NewAssets(dir string) *Assets {
	return &Assets{dir: dir}
}

// Background loads the card background image, or reports false when
// none is configured or readable.
func (a *Assets) Background() (*gg.ImageBuf, bool) {
	for _, name := range []string{"background.png", "background.jpg"} {
		if img, err := gg.LoadImage(filepath.Join(a.dir, name)); err == nil {
			return img, true
		}
	}
	return nil, false
}

// Logo loads the logo for a ticker symbol from the logos subdirectory.
// Symbols are matched case-insensitively against png and jpg files.
func (a *Assets) Logo(symbol string) (*gg.ImageBuf, bool) {
	if symbol == "" {
		return nil, false
	}
	base := filepath.Join(a.dir, "logos")
	for _, stem := range []string{symbol, strings.ToUpper(symbol), strings.ToLower(symbol)} {
		for _, ext := range []string{".png", ".jpg", ".jpeg"} {
			path := filepath.Join(base, stem+ext)
			if _, err := os.Stat(path); err != nil {
				continue
			}
			if img, err := gg.LoadImage(path); err == nil {
				return img, true
			}
		}
	}
	return nil, false
}

// coverRect returns the centered source crop whose aspect ratio matches
// the destination, so scaling fills the destination without distortion.
func coverRect(srcW, srcH int, dstW, dstH float64) image.Rectangle {
	sw, sh := float64(srcW), float64(srcH)
	scale := dstW / sw
	if s := dstH / sh; s > scale {
		scale = s
	}
	cw := dstW / scale
	ch := dstH / scale
	x0 := (sw - cw) / 2
	y0 := (sh - ch) / 2
	return image.Rect(int(x0), int(y0), int(x0+cw), int(y0+ch))
}

// drawCover scales img to fill the w×h canvas, cropping the overflow
// around the center.
func drawCover(dc *gg.Context, img *gg.ImageBuf, w, h float64) {
	src := coverRect(img.Width(), img.Height(), w, h)
	dc.DrawImageEx(img, gg.DrawImageOptions{
		DstWidth:      w,
		DstHeight:     h,
		SrcRect:       &src,
		Interpolation: gg.InterpBicubic,
		Opacity:       1,
	})
}

// drawContained draws img centered inside the box, scaled down to fit
// while keeping its aspect ratio. Images smaller than the box are not
// upscaled.
func drawContained(dc *gg.Context, img *gg.ImageBuf, x, y, boxW, boxH float64) {
	sw, sh := float64(img.Width()), float64(img.Height())
	if sw <= 0 || sh <= 0 {
		return
	}
	scale := 1.0
	if s := boxW / sw; s < scale {
		scale = s
	}
	if s := boxH / sh; s < scale {
		scale = s
	}
	w := sw * scale
	h := sh * scale
	dc.DrawImageEx(img, gg.DrawImageOptions{
		X:             x + (boxW-w)/2,
		Y:             y + (boxH-h)/2,
		DstWidth:      w,
		DstHeight:     h,
		Interpolation: gg.InterpBicubic,
		Opacity:       1,
	})
}
