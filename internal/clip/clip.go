// Package clip models timed image streams that are sampled by time.
//
// Sampling outside [0, Duration) clamps: negative times give the first frame
// and times at or past the end give the last one. Composition and freeze
// frames rely on that hold. Clips memoize the last frame they produced and are
// not safe for concurrent use. A returned image must not be modified by the
// caller.
package clip

import (
	"errors"
	"fmt"
	"image"
	"math"
	"sort"
)

var ErrEmpty = errors.New("clip has no segments")

// epsilon absorbs rounding in accumulated segment boundaries, so a frame
// sampled at i/fps lands on the segment that starts there.
const epsilon = 1e-9

type Clip interface {
	Duration() float64
	Size() image.Point
	FrameAt(t float64) (image.Image, error)
}

// Segment is one image held for Duration seconds. Segments with the same ID
// share the loaded image.
type Segment struct {
	ID       string
	Duration float64
	Load     func() (image.Image, error)
}

type Sequence struct {
	size  image.Point
	segs  []Segment
	ends  []float64
	total float64

	lastID string
	last   image.Image
}

// NewSequence plays segs back to back.
func NewSequence(size image.Point, segs []Segment) (*Sequence, error) {
	if len(segs) == 0 {
		return nil, ErrEmpty
	}

	s := &Sequence{size: size, segs: segs, ends: make([]float64, len(segs))}
	for i, seg := range segs {
		if seg.Duration < 0 || math.IsNaN(seg.Duration) {
			return nil, fmt.Errorf("segment %d: invalid duration %v", i, seg.Duration)
		}
		if seg.Load == nil {
			return nil, fmt.Errorf("segment %d: no image", i)
		}
		s.total += seg.Duration
		s.ends[i] = s.total
	}
	return s, nil
}

func (s *Sequence) Duration() float64 { return s.total }
func (s *Sequence) Size() image.Point { return s.size }

// Index returns the segment shown at time t.
func (s *Sequence) Index(t float64) int {
	i := sort.Search(len(s.ends), func(i int) bool { return s.ends[i] > t+epsilon })
	if i == len(s.ends) {
		return len(s.ends) - 1
	}
	return i
}

func (s *Sequence) FrameAt(t float64) (image.Image, error) {
	seg := s.segs[s.Index(t)]
	if s.last != nil && seg.ID == s.lastID {
		return s.last, nil
	}

	img, err := seg.Load()
	if err != nil {
		return nil, fmt.Errorf("load segment %s: %w", seg.ID, err)
	}
	s.lastID, s.last = seg.ID, img
	return img, nil
}

type still struct {
	img      image.Image
	duration float64
}

// Still shows img for d seconds.
func Still(img image.Image, d float64) Clip {
	return &still{img: img, duration: d}
}

func (s *still) Duration() float64                    { return s.duration }
func (s *still) Size() image.Point                    { return s.img.Bounds().Size() }
func (s *still) FrameAt(float64) (image.Image, error) { return s.img, nil }

type hold struct {
	Clip
	extra float64
}

// Hold extends c by extra seconds showing its last frame.
func Hold(c Clip, extra float64) Clip {
	if !(extra > 0) {
		return c
	}
	return &hold{Clip: c, extra: extra}
}

func (h *hold) Duration() float64 { return h.Clip.Duration() + h.extra }
