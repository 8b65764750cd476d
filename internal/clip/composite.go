package clip

import (
	"image"
	"image/draw"
	"math"
)

// Layer places a clip on a canvas with its top-left corner at At.
type Layer struct {
	Clip Clip
	At   image.Point
}

type composite struct {
	size     image.Point
	duration float64
	layers   []Layer

	srcs []image.Image
	out  *image.RGBA
}

// Composite stacks layers bottom to top on a transparent canvas. The result
// lasts exactly d seconds whatever the layer durations: longer layers are cut
// and shorter ones hold their last frame.
func Composite(size image.Point, d float64, layers ...Layer) Clip {
	return &composite{size: size, duration: d, layers: layers, srcs: make([]image.Image, len(layers))}
}

func (c *composite) Duration() float64 { return c.duration }
func (c *composite) Size() image.Point { return c.size }

func (c *composite) FrameAt(t float64) (image.Image, error) {
	if t >= c.duration {
		t = math.Nextafter(c.duration, math.Inf(-1))
	}
	if t < 0 {
		t = 0
	}

	changed := c.out == nil
	for i, l := range c.layers {
		img, err := l.Clip.FrameAt(t)
		if err != nil {
			return nil, err
		}
		if img != c.srcs[i] {
			c.srcs[i] = img
			changed = true
		}
	}
	if !changed {
		return c.out, nil
	}

	// A fresh canvas per change keeps earlier frames valid for callers
	// that memoize by identity.
	out := image.NewRGBA(image.Rectangle{Max: c.size})
	for i, l := range c.layers {
		src := c.srcs[i]
		b := src.Bounds()
		dst := image.Rectangle{Min: l.At, Max: l.At.Add(b.Size())}
		draw.Draw(out, dst, src, b.Min, draw.Over)
	}
	c.out = out
	return out, nil
}
