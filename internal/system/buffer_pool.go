package system

import (
	"image"
	"sync"
)

// FramePool recycles RGBA buffers of one frame size while frames are
// streamed to an encoder.
type FramePool struct {
	rect image.Rectangle
	pool sync.Pool
}

func NewFramePool(size image.Point) *FramePool {
	p := &FramePool{rect: image.Rectangle{Max: size}}
	p.pool.New = func() any { return image.NewRGBA(p.rect) }
	return p
}

// Get returns a buffer with origin-based bounds of the pool's size. Its
// contents are undefined.
func (p *FramePool) Get() *image.RGBA {
	return p.pool.Get().(*image.RGBA)
}

// Put hands img back for reuse; buffers of another size are dropped.
func (p *FramePool) Put(img *image.RGBA) {
	if img == nil || img.Rect != p.rect {
		return
	}
	p.pool.Put(img)
}
