package render

import (
	"bytes"
	"context"
	"encoding/base64"
	"image"
	"image/png"
	"sync"

	"golang.org/x/sync/errgroup"

	"emblem/internal/config"
	"emblem/internal/icons"
	"emblem/internal/validate"
)

// Rasterizer is the rendering capability injected into the engine: it decodes
// raw image bytes into a source that can be rendered at fixed square sizes.
// Only the CLI process carries an implementation; the daemon never decodes.
type Rasterizer interface {
	Open(raw []byte, kind validate.MediaKind) (Source, error)
}

// Source is a decoded image that renders itself onto a transparent size×size
// canvas. Renders are pure functions of (source, size) and safe to run
// concurrently.
type Source interface {
	Render(size int) (image.Image, error)
}

// Engine turns an arbitrary uploaded image into the canonical
// multi-resolution asset set.
type Engine struct {
	maxFileBytes int64
	rasterizer   Rasterizer
}

// New builds an engine with the standard in-process rasterizer.
func New(cfg *config.Config) *Engine {
	return NewWithRasterizer(cfg, StandardRasterizer{})
}

// NewWithRasterizer builds an engine around a caller-supplied rasterizer.
func NewWithRasterizer(cfg *config.Config, rasterizer Rasterizer) *Engine {
	return &Engine{
		maxFileBytes: cfg.Limits.MaxFileBytes,
		rasterizer:   rasterizer,
	}
}

// ProcessUpload validates, decodes, and renders an upload at every target
// resolution, encoding each render as PNG. A failure at any stage fails the
// whole operation; the returned asset set is always complete.
func (e *Engine) ProcessUpload(ctx context.Context, raw []byte, mediaType string) (*icons.Assets, error) {
	kind, err := validate.Format(mediaType)
	if err != nil {
		return nil, err
	}
	if err := validate.FileSize(int64(len(raw)), e.maxFileBytes); err != nil {
		return nil, err
	}

	source, err := e.rasterizer.Open(raw, kind)
	if err != nil {
		return nil, decodeError(err)
	}

	var (
		mu    sync.Mutex
		sizes = make(icons.Sizes, len(icons.TargetSizes))
	)
	group, ctx := errgroup.WithContext(ctx)
	for _, size := range icons.TargetSizes {
		size := size
		group.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			rendered, err := source.Render(size)
			if err != nil {
				return renderError(err)
			}
			encoded, err := encodePNG(rendered)
			if err != nil {
				return renderError(err)
			}
			mu.Lock()
			sizes[size] = encoded
			mu.Unlock()
			return nil
		})
	}
	if err := group.Wait(); err != nil {
		return nil, err
	}

	assets := &icons.Assets{
		SourceImage: base64.StdEncoding.EncodeToString(raw),
		MediaKind:   kind,
		Sizes:       sizes,
	}
	if err := icons.CheckSizes(assets.Sizes); err != nil {
		return nil, renderError(err)
	}
	return assets, nil
}

func encodePNG(img image.Image) (string, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return "", err
	}
	return base64.StdEncoding.EncodeToString(buf.Bytes()), nil
}
