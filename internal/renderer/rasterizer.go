package renderer

import (
	"context"
	"errors"
	"fmt"
	"image"
)

var ErrUnknownRasterizer = errors.New("unknown rasterizer")

// Rasterizer turns one SVG snapshot into pixels. Implementations must be
// safe for concurrent use.
type Rasterizer interface {
	Rasterize(ctx context.Context, svg []byte) (image.Image, error)
}

// New selects a rasterizer by name. dir is scratch space for backends that
// need the snapshot on disk; dpi of 72 maps one SVG unit to one pixel.
func New(name, dir string, dpi float64) (Rasterizer, error) {
	if dpi <= 0 {
		dpi = 72
	}
	switch name {
	case "fitz", "mupdf", "":
		return &Fitz{Dir: dir, DPI: dpi}, nil
	case "oksvg", "go":
		return &Oksvg{DPI: dpi}, nil
	default:
		return nil, fmt.Errorf("%w: %s (supported: fitz, oksvg)", ErrUnknownRasterizer, name)
	}
}
