package effects

import (
	"image"
	"image/draw"

	"github.com/ivlev/typingvid/internal/clip"
	"github.com/ivlev/typingvid/internal/config"
)

// Effect transforms a finished composition.
type Effect interface {
	Apply(c clip.Clip) clip.Clip
}

// Invert flips the RGB channels of every frame and keeps alpha.
type Invert struct{}

func (Invert) Apply(c clip.Clip) clip.Clip {
	return clip.Map(c, invert)
}

func invert(src image.Image) image.Image {
	b := src.Bounds()
	dst := image.NewRGBA(image.Rectangle{Max: b.Size()})
	draw.Draw(dst, dst.Bounds(), src, b.Min, draw.Src)

	// premultiplied: a channel c of alpha a inverts to a-c
	for i := 0; i < len(dst.Pix); i += 4 {
		a := dst.Pix[i+3]
		dst.Pix[i] = a - dst.Pix[i]
		dst.Pix[i+1] = a - dst.Pix[i+1]
		dst.Pix[i+2] = a - dst.Pix[i+2]
	}
	return dst
}

// Freeze holds the last frame for Hold more seconds. Hold <= 0 does nothing.
type Freeze struct {
	Hold float64
}

func (f Freeze) Apply(c clip.Clip) clip.Clip {
	return clip.Hold(c, f.Hold)
}

// FromConfig returns the effects cfg asks for, inversion first.
func FromConfig(cfg config.Config) []Effect {
	var effs []Effect
	if cfg.InvertColors {
		effs = append(effs, Invert{})
	}
	if cfg.Hold > 0 {
		effs = append(effs, Freeze{Hold: cfg.Hold})
	}
	return effs
}

// Apply runs effs over c in order.
func Apply(c clip.Clip, effs ...Effect) clip.Clip {
	for _, e := range effs {
		c = e.Apply(c)
	}
	return c
}
