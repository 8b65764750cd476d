// Package compose lays the keyboard and display clips out on a background.
package compose

import (
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"os"

	"github.com/ivlev/typingvid/internal/clip"
)

// KeyboardScale shrinks the keyboard to fit below the displays.
const KeyboardScale = 0.69

// Viewport is a crop rectangle in background coordinates.
type Viewport struct {
	X, Y, W, H float64
}

// Rect truncates the viewport to whole pixels: [int(x), int(x+w)) x [int(y), int(y+h)).
func (v Viewport) Rect() image.Rectangle {
	return image.Rect(int(v.X), int(v.Y), int(v.X+v.W), int(v.Y+v.H))
}

var (
	MonoViewport = Viewport{X: 269.5, Y: 199.5, W: 1381, H: 681}
	DualViewport = Viewport{X: 247.72, Y: 132.38, W: 1424.56, H: 815.24}
)

var (
	monoKeyboardY = 380
	monoText      = image.Pt(351, 282)

	dualKeyboardY = 0.4
	dualUpper     = image.Pt(351, 230)
	dualLower     = image.Pt(351, 335)
)

// LoadImage decodes a PNG or JPEG background.
func LoadImage(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	return img, nil
}

// KeyboardOnly returns the keyboard clip as the final composition.
func KeyboardOnly(kb clip.Clip) clip.Clip {
	return kb
}

// Mono places the scaled keyboard and one display on bg and crops to the
// mono viewport. The result lasts as long as kb.
func Mono(bg image.Image, kb, text clip.Clip) clip.Clip {
	size := bg.Bounds().Size()
	d := kb.Duration()
	small := clip.Resize(kb, KeyboardScale)

	canvas := clip.Composite(size, d,
		clip.Layer{Clip: clip.Still(bg, d)},
		clip.Layer{Clip: small, At: image.Pt(centerX(size, small), monoKeyboardY)},
		clip.Layer{Clip: text, At: monoText},
	)
	return clip.Crop(canvas, MonoViewport.Rect())
}

// Dual places the scaled keyboard and two stacked displays on bg and crops
// to the dual viewport. The result lasts as long as kb.
func Dual(bg image.Image, kb, upper, lower clip.Clip) clip.Clip {
	size := bg.Bounds().Size()
	d := kb.Duration()
	small := clip.Resize(kb, KeyboardScale)

	canvas := clip.Composite(size, d,
		clip.Layer{Clip: clip.Still(bg, d)},
		clip.Layer{Clip: small, At: image.Pt(centerX(size, small), int(dualKeyboardY*float64(size.Y)))},
		clip.Layer{Clip: upper, At: dualUpper},
		clip.Layer{Clip: lower, At: dualLower},
	)
	return clip.Crop(canvas, DualViewport.Rect())
}

func centerX(canvas image.Point, c clip.Clip) int {
	return (canvas.X - c.Size().X) / 2
}
