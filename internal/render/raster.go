package render

import (
	"bytes"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"math"

	xdraw "golang.org/x/image/draw"
	_ "golang.org/x/image/webp"

	"emblem/internal/validate"
)

// StandardRasterizer decodes PNG/JPEG/WebP via the image registry and SVG via
// the vector path.
type StandardRasterizer struct{}

// Open decodes raw bytes according to the validated media kind.
func (StandardRasterizer) Open(raw []byte, kind validate.MediaKind) (Source, error) {
	if kind.IsVector() {
		return openVector(raw)
	}

	img, format, err := image.Decode(bytes.NewReader(raw))
	if err != nil {
		return nil, fmt.Errorf("decode raster image: %w", err)
	}
	bounds := img.Bounds()
	if bounds.Dx() <= 0 || bounds.Dy() <= 0 {
		return nil, fmt.Errorf("decode raster image: empty %s image", format)
	}
	return &rasterSource{img: img}, nil
}

type rasterSource struct {
	img image.Image
}

// Render scales the source onto a transparent size×size canvas, preserving
// aspect ratio and centering the result. CatmullRom keeps small icon renders
// crisp.
func (s *rasterSource) Render(size int) (image.Image, error) {
	bounds := s.img.Bounds()
	width := float64(bounds.Dx())
	height := float64(bounds.Dy())
	target := float64(size)

	scale := math.Min(target/width, target/height)
	scaledWidth := width * scale
	scaledHeight := height * scale
	offsetX := (target - scaledWidth) / 2
	offsetY := (target - scaledHeight) / 2

	destRect := image.Rect(
		int(math.Round(offsetX)),
		int(math.Round(offsetY)),
		int(math.Round(offsetX+scaledWidth)),
		int(math.Round(offsetY+scaledHeight)),
	)

	canvas := image.NewRGBA(image.Rect(0, 0, size, size))
	xdraw.CatmullRom.Scale(canvas, destRect, s.img, bounds, xdraw.Over, nil)
	return canvas, nil
}
