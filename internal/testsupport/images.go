package testsupport

import (
	"bytes"
	"encoding/base64"
	"image"
	"image/color"
	"image/draw"
	"image/jpeg"
	"image/png"
	"testing"

	"emblem/internal/icons"
	"emblem/internal/validate"
)

// PNGBytes encodes a solid-color PNG of the given dimensions.
func PNGBytes(t testing.TB, width, height int, fill color.Color) []byte {
	t.Helper()

	img := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.Draw(img, img.Bounds(), image.NewUniform(fill), image.Point{}, draw.Src)

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("encode png: %v", err)
	}
	return buf.Bytes()
}

// JPEGBytes encodes a solid-color JPEG of the given dimensions.
func JPEGBytes(t testing.TB, width, height int, fill color.Color) []byte {
	t.Helper()

	img := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.Draw(img, img.Bounds(), image.NewUniform(fill), image.Point{}, draw.Src)

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: 90}); err != nil {
		t.Fatalf("encode jpeg: %v", err)
	}
	return buf.Bytes()
}

// SVGBytes returns a minimal valid SVG document: a filled circle on a square
// viewbox.
func SVGBytes() []byte {
	return []byte(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 100 100" width="100" height="100"><circle cx="50" cy="50" r="40" fill="#336699"/></svg>`)
}

// WideSVGBytes returns a 2:1 SVG document: a full-bleed rectangle on a
// non-square viewbox, for exercising aspect handling on the vector path.
func WideSVGBytes() []byte {
	return []byte(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 100 50" width="100" height="50"><rect width="100" height="50" fill="#336699"/></svg>`)
}

// Assets builds a complete asset set with one solid PNG render per target
// size, suitable for exercising the store without the transform engine.
func Assets(t testing.TB) icons.Assets {
	t.Helper()

	sizes := make(icons.Sizes, len(icons.TargetSizes))
	for _, size := range icons.TargetSizes {
		sizes[size] = base64.StdEncoding.EncodeToString(
			PNGBytes(t, size, size, color.RGBA{R: 0x33, G: 0x66, B: 0x99, A: 0xff}))
	}
	source := PNGBytes(t, 64, 64, color.RGBA{R: 0x33, G: 0x66, B: 0x99, A: 0xff})
	return icons.Assets{
		SourceImage: base64.StdEncoding.EncodeToString(source),
		MediaKind:   validate.KindPNG,
		Sizes:       sizes,
	}
}
