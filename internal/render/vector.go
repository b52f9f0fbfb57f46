package render

import (
	"bytes"
	"fmt"
	"image"

	"github.com/srwiley/oksvg"
	"github.com/srwiley/rasterx"
)

func openVector(raw []byte) (Source, error) {
	icon, err := oksvg.ReadIconStream(bytes.NewReader(raw))
	if err != nil {
		return nil, fmt.Errorf("parse svg: %w", err)
	}
	if icon.ViewBox.W <= 0 || icon.ViewBox.H <= 0 {
		return nil, fmt.Errorf("parse svg: missing viewBox dimensions")
	}
	return &vectorSource{raw: raw}, nil
}

// vectorSource rasterizes the SVG description directly at each requested
// resolution rather than rasterizing once and resizing, so small renders stay
// sharp. oksvg icons carry mutable transform state, so each render parses its
// own copy.
type vectorSource struct {
	raw []byte
}

func (s *vectorSource) Render(size int) (image.Image, error) {
	icon, err := oksvg.ReadIconStream(bytes.NewReader(s.raw))
	if err != nil {
		return nil, fmt.Errorf("parse svg: %w", err)
	}

	// SetTarget scales X and Y independently, so fitting the viewBox to the
	// square canvas must use one uniform scale with centered offsets or a
	// non-square drawing gets stretched.
	target := float64(size)
	scale := target / icon.ViewBox.W
	if byHeight := target / icon.ViewBox.H; byHeight < scale {
		scale = byHeight
	}
	width := icon.ViewBox.W * scale
	height := icon.ViewBox.H * scale
	icon.SetTarget((target-width)/2, (target-height)/2, width, height)

	canvas := image.NewRGBA(image.Rect(0, 0, size, size))
	scanner := rasterx.NewScannerGV(size, size, canvas, canvas.Bounds())
	dasher := rasterx.NewDasher(size, size, scanner)
	icon.Draw(dasher, 1.0)
	return canvas, nil
}
