// Package preview renders evidence thumbnails on the server: images are scaled down,
// PDFs show their first page and videos a frame shortly after the start.
package preview

import (
	"context"
	"errors"
	"go-portfolio-backend/internal/domain"
	"image"
	"image/color"

	"golang.org/x/image/draw"
)

// MaxSize bounds both thumbnail dimensions.
const MaxSize = 480

// ErrUnsupported means the generator cannot render this kind of file.
var ErrUnsupported = errors.New("preview: unsupported file")

// Generator renders the first visual frame of a file.
type Generator interface {
	Generate(ctx context.Context, f domain.EvidenceFile) (image.Image, error)
}

// Mux dispatches to a generator per file type.
type Mux map[domain.FileType]Generator

func (m Mux) Generate(ctx context.Context, f domain.EvidenceFile) (image.Image, error) {
	g, ok := m[f.FileType]
	if !ok || g == nil {
		return nil, ErrUnsupported
	}
	return g.Generate(ctx, f)
}

// Fit scales src down to fit within limit×limit on a white background. Smaller images
// keep their size.
func Fit(src image.Image, limit int) *image.RGBA {
	b := src.Bounds()
	w, h := b.Dx(), b.Dy()
	if w > limit || h > limit {
		if w >= h {
			h = h * limit / w
			w = limit
		} else {
			w = w * limit / h
			h = limit
		}
	}
	if w < 1 {
		w = 1
	}
	if h < 1 {
		h = 1
	}

	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.Draw(dst, dst.Bounds(), &image.Uniform{C: color.White}, image.Point{}, draw.Src)
	draw.CatmullRom.Scale(dst, dst.Bounds(), src, b, draw.Over, nil)
	return dst
}
