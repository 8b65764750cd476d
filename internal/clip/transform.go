package clip

import (
	"image"
	"image/draw"
	"math"

	xdraw "golang.org/x/image/draw"
)

// memo caches the output derived from the last source frame.
type memo struct {
	src image.Image
	out image.Image
}

func (m *memo) get(src image.Image, fn func(image.Image) image.Image) image.Image {
	if m.out != nil && m.src == src {
		return m.out
	}
	m.src, m.out = src, fn(src)
	return m.out
}

type mapped struct {
	Clip
	size image.Point
	fn   func(image.Image) image.Image
	memo memo
}

// Map applies fn to every distinct frame of c. fn must not modify its input
// and must return images of a constant size.
func Map(c Clip, fn func(image.Image) image.Image) Clip {
	return &mapped{Clip: c, size: c.Size(), fn: fn}
}

func (m *mapped) Size() image.Point { return m.size }

func (m *mapped) FrameAt(t float64) (image.Image, error) {
	src, err := m.Clip.FrameAt(t)
	if err != nil {
		return nil, err
	}
	return m.memo.get(src, m.fn), nil
}

// Crop cuts r out of every frame of c. Parts of r outside the frame are
// transparent. The result's origin is (0, 0).
func Crop(c Clip, r image.Rectangle) Clip {
	m := Map(c, func(src image.Image) image.Image {
		dst := image.NewRGBA(image.Rectangle{Max: r.Size()})
		draw.Draw(dst, dst.Bounds(), src, r.Min, draw.Src)
		return dst
	}).(*mapped)
	m.size = r.Size()
	return m
}

// Resize scales c by factor.
func Resize(c Clip, factor float64) Clip {
	in := c.Size()
	size := image.Pt(
		int(math.Round(float64(in.X)*factor)),
		int(math.Round(float64(in.Y)*factor)),
	)
	m := Map(c, func(src image.Image) image.Image {
		dst := image.NewRGBA(image.Rectangle{Max: size})
		xdraw.CatmullRom.Scale(dst, dst.Bounds(), src, src.Bounds(), xdraw.Over, nil)
		return dst
	}).(*mapped)
	m.size = size
	return m
}
