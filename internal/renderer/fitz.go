package renderer

import (
	"context"
	"fmt"
	"image"
	"os"

	"github.com/gen2brain/go-fitz"
)

// Fitz rasterizes through MuPDF, which opens SVG files as single-page documents.
type Fitz struct {
	Dir string
	DPI float64
}

func (f *Fitz) Rasterize(ctx context.Context, svg []byte) (image.Image, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	tmp, err := os.CreateTemp(f.Dir, "snap-*.svg")
	if err != nil {
		return nil, err
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(svg); err != nil {
		tmp.Close()
		return nil, fmt.Errorf("write snapshot: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return nil, err
	}

	// Each call opens its own document so workers never share MuPDF state.
	doc, err := fitz.New(tmp.Name())
	if err != nil {
		return nil, fmt.Errorf("mupdf open: %w", err)
	}
	defer doc.Close()

	img, err := doc.ImageDPI(0, f.DPI)
	if err != nil {
		return nil, fmt.Errorf("mupdf render: %w", err)
	}
	return img, nil
}
