package clip

import (
	"image"
	"image/color"
	"math"
	"testing"
)

func solid(w, h int, c color.RGBA) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for i := 0; i < len(img.Pix); i += 4 {
		img.Pix[i], img.Pix[i+1], img.Pix[i+2], img.Pix[i+3] = c.R, c.G, c.B, c.A
	}
	return img
}

func fixed(img image.Image) func() (image.Image, error) {
	return func() (image.Image, error) { return img, nil }
}

var (
	red   = color.RGBA{255, 0, 0, 255}
	green = color.RGBA{0, 255, 0, 255}
	blue  = color.RGBA{0, 0, 255, 255}
)

func threeColors(t *testing.T) (*Sequence, []image.Image) {
	t.Helper()
	imgs := []image.Image{solid(4, 4, red), solid(4, 4, green), solid(4, 4, blue)}
	seq, err := NewSequence(image.Pt(4, 4), []Segment{
		{ID: "r", Duration: 0.2, Load: fixed(imgs[0])},
		{ID: "g", Duration: 0.2, Load: fixed(imgs[1])},
		{ID: "b", Duration: 0.2, Load: fixed(imgs[2])},
	})
	if err != nil {
		t.Fatalf("NewSequence failed: %v", err)
	}
	return seq, imgs
}

func TestSequenceTiming(t *testing.T) {
	seq, imgs := threeColors(t)

	if math.Abs(seq.Duration()-0.6) > 1e-9 {
		t.Errorf("Expected duration 0.6, got %v", seq.Duration())
	}

	tests := []struct {
		t    float64
		want int
	}{
		{-1, 0},
		{0, 0},
		{0.19, 0},
		{0.2, 1},
		{0.39, 1},
		{0.5, 2},
		{0.6, 2},
		{10, 2},
	}

	for _, tt := range tests {
		got, err := seq.FrameAt(tt.t)
		if err != nil {
			t.Fatalf("FrameAt(%v) failed: %v", tt.t, err)
		}
		if got != imgs[tt.want] {
			t.Errorf("FrameAt(%v): expected segment %d", tt.t, tt.want)
		}
	}
}

func TestSequenceSharesLoads(t *testing.T) {
	loads := 0
	img := solid(2, 2, red)
	load := func() (image.Image, error) {
		loads++
		return img, nil
	}

	seq, err := NewSequence(image.Pt(2, 2), []Segment{
		{ID: "idle", Duration: 1, Load: load},
		{ID: "idle", Duration: 1, Load: load},
	})
	if err != nil {
		t.Fatalf("NewSequence failed: %v", err)
	}
	for _, ts := range []float64{0, 0.5, 1, 1.5} {
		seq.FrameAt(ts)
	}
	if loads != 1 {
		t.Errorf("Expected 1 load, got %d", loads)
	}
}

func TestNewSequenceErrors(t *testing.T) {
	if _, err := NewSequence(image.Pt(1, 1), nil); err != ErrEmpty {
		t.Errorf("Expected ErrEmpty, got %v", err)
	}
	if _, err := NewSequence(image.Pt(1, 1), []Segment{{ID: "x", Duration: -1, Load: fixed(solid(1, 1, red))}}); err == nil {
		t.Error("Expected error for negative duration")
	}
}

func TestHold(t *testing.T) {
	seq, imgs := threeColors(t)

	if Hold(seq, 0) != Clip(seq) || Hold(seq, -2) != Clip(seq) {
		t.Error("Non-positive hold should return the clip unchanged")
	}

	held := Hold(seq, 1.5)
	if math.Abs(held.Duration()-2.1) > 1e-9 {
		t.Errorf("Expected duration 2.1, got %v", held.Duration())
	}
	got, _ := held.FrameAt(1.9)
	if got != imgs[2] {
		t.Error("Held clip should show its last frame")
	}
}

func TestCompositeDurationPinned(t *testing.T) {
	seq, _ := threeColors(t)
	long := Hold(Still(solid(2, 2, green), 0.1), 5)

	c := Composite(image.Pt(8, 8), seq.Duration(),
		Layer{Clip: seq, At: image.Pt(0, 0)},
		Layer{Clip: long, At: image.Pt(6, 6)},
	)
	if c.Duration() != seq.Duration() {
		t.Errorf("Expected duration %v, got %v", seq.Duration(), c.Duration())
	}

	img, err := c.FrameAt(seq.Duration())
	if err != nil {
		t.Fatalf("FrameAt failed: %v", err)
	}
	if got := img.At(0, 0); got != blue {
		t.Errorf("Expected last keyboard frame at the end, got %v", got)
	}
	if got := img.At(7, 7); got != green {
		t.Errorf("Expected overlay at (6,6), got %v", got)
	}
	if _, _, _, a := img.At(5, 5).RGBA(); a != 0 {
		t.Error("Expected transparent gap between layers")
	}
}

func TestCompositeMemoizes(t *testing.T) {
	seq, _ := threeColors(t)
	c := Composite(image.Pt(4, 4), seq.Duration(), Layer{Clip: seq})

	a, _ := c.FrameAt(0.01)
	b, _ := c.FrameAt(0.15)
	if a != b {
		t.Error("Expected the same canvas within one segment")
	}
	d, _ := c.FrameAt(0.25)
	if d == a {
		t.Error("Expected a new canvas after the segment changed")
	}
	if got := a.At(0, 0); got != red {
		t.Errorf("Earlier canvas was overwritten, got %v", got)
	}
}

func TestCrop(t *testing.T) {
	src := solid(10, 10, red)
	src.Set(3, 2, blue)

	c := Crop(Still(src, 1), image.Rect(3, 2, 8, 12))
	if c.Size() != image.Pt(5, 10) {
		t.Errorf("Expected size 5x10, got %v", c.Size())
	}

	img, _ := c.FrameAt(0)
	if img.Bounds() != image.Rect(0, 0, 5, 10) {
		t.Errorf("Expected origin-based bounds, got %v", img.Bounds())
	}
	if got := img.At(0, 0); got != blue {
		t.Errorf("Expected crop origin to map to (3,2), got %v", got)
	}
	if _, _, _, a := img.At(0, 9).RGBA(); a != 0 {
		t.Error("Expected transparent pixels outside the source")
	}
}

func TestResize(t *testing.T) {
	c := Resize(Still(solid(200, 100, green), 1), 0.69)
	if c.Size() != image.Pt(138, 69) {
		t.Errorf("Expected 138x69, got %v", c.Size())
	}
	img, _ := c.FrameAt(0)
	if img.Bounds().Size() != c.Size() {
		t.Errorf("Frame size %v does not match clip size %v", img.Bounds().Size(), c.Size())
	}
	r, g, _, _ := img.At(60, 30).RGBA()
	if r > 0x100 || g < 0xff00 {
		t.Errorf("Expected green after resize, got %v", img.At(60, 30))
	}
}

func TestMapCallsOncePerFrame(t *testing.T) {
	seq, _ := threeColors(t)
	calls := 0
	m := Map(seq, func(src image.Image) image.Image {
		calls++
		return src
	})
	for i := 0; i < 12; i++ {
		m.FrameAt(float64(i) * 0.05)
	}
	if calls != 3 {
		t.Errorf("Expected 3 calls, got %d", calls)
	}
}
