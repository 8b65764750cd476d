package renderer

import (
	"context"
	"errors"
	"image/color"
	"testing"
)

const squareSVG = `<svg xmlns="http://www.w3.org/2000/svg" width="40" height="20" viewBox="0 0 40 20">
<rect id="A" x="0" y="0" width="20" height="20" style="fill:black;fill-opacity:1"/>
</svg>`

func TestNew(t *testing.T) {
	tests := []struct {
		name    string
		wantErr bool
	}{
		{"fitz", false},
		{"", false},
		{"oksvg", false},
		{"cairo", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, err := New(tt.name, t.TempDir(), 0)
			if tt.wantErr {
				if !errors.Is(err, ErrUnknownRasterizer) {
					t.Errorf("Expected ErrUnknownRasterizer, got %v", err)
				}
				return
			}
			if err != nil || r == nil {
				t.Errorf("Unexpected error: %v", err)
			}
		})
	}
}

func TestOksvgRasterize(t *testing.T) {
	r := &Oksvg{DPI: 72}
	img, err := r.Rasterize(context.Background(), []byte(squareSVG))
	if err != nil {
		t.Fatalf("Rasterize failed: %v", err)
	}
	if img.Bounds().Dx() != 40 || img.Bounds().Dy() != 20 {
		t.Errorf("Expected 40x20, got %v", img.Bounds())
	}

	_, _, _, a := img.At(10, 10).RGBA()
	if a == 0 {
		t.Error("Expected the filled rect to be opaque")
	}
	if c := color.RGBAModel.Convert(img.At(30, 10)).(color.RGBA); c.A != 0 {
		t.Errorf("Expected transparent background, got %v", c)
	}
}

func TestOksvgScale(t *testing.T) {
	r := &Oksvg{DPI: 144}
	img, err := r.Rasterize(context.Background(), []byte(squareSVG))
	if err != nil {
		t.Fatalf("Rasterize failed: %v", err)
	}
	if img.Bounds().Dx() != 80 || img.Bounds().Dy() != 40 {
		t.Errorf("Expected 80x40, got %v", img.Bounds())
	}
}

func TestOksvgCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := (&Oksvg{}).Rasterize(ctx, []byte(squareSVG)); !errors.Is(err, context.Canceled) {
		t.Errorf("Expected context.Canceled, got %v", err)
	}
}
