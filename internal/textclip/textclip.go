// Package textclip draws the display text that is revealed as keys are typed.
package textclip

import (
	"fmt"
	"image"
	"image/color"
	"strings"

	"golang.org/x/image/font"
	"golang.org/x/image/math/fixed"

	"github.com/ivlev/typingvid/internal/clip"
)

const (
	DefaultSize    = 31
	DefaultKerning = 5
)

type Style struct {
	Face    font.Face
	Color   color.Color
	Kerning int // extra pixels between glyphs
	Prompt  string
	Cursor  string
}

// DefaultStyle is black text behind a "> " prompt with a "|" cursor.
func DefaultStyle(face font.Face) Style {
	return Style{
		Face:    face,
		Color:   color.Black,
		Kerning: DefaultKerning,
		Prompt:  "> ",
		Cursor:  "|",
	}
}

// Units splits s into one unit per rune.
func Units(s string) []string {
	units := make([]string, 0, len(s))
	for _, r := range s {
		units = append(units, string(r))
	}
	return units
}

// Lines returns the text shown by each reveal step: the prompt, the first i
// units and the cursor, for i = 0..len(units).
func Lines(units []string, style Style) []string {
	lines := make([]string, len(units)+1)
	var b strings.Builder
	for i := range lines {
		if i > 0 {
			b.WriteString(units[i-1])
		}
		lines[i] = style.Prompt + b.String() + style.Cursor
	}
	return lines
}

// Reveal builds a clip of len(units)+1 steps, each held for 2T, so the text
// grows by one unit per key press and release.
func Reveal(units []string, T float64, style Style) (*clip.Sequence, error) {
	if style.Face == nil {
		return nil, fmt.Errorf("text style has no font face")
	}
	if style.Color == nil {
		style.Color = color.Black
	}

	lines := Lines(units, style)
	size := image.Point{}
	for _, line := range lines {
		if w := measure(style, line); w > size.X {
			size.X = w
		}
	}
	m := style.Face.Metrics()
	size.Y = (m.Ascent + m.Descent).Ceil()

	segs := make([]clip.Segment, len(lines))
	for i, line := range lines {
		segs[i] = clip.Segment{
			ID:       fmt.Sprintf("text-%d", i),
			Duration: 2 * T,
			Load: func() (image.Image, error) {
				return render(style, line, size), nil
			},
		}
	}
	return clip.NewSequence(size, segs)
}

func measure(style Style, s string) int {
	var w fixed.Int26_6
	prev := rune(-1)
	n := 0
	for _, r := range s {
		if prev >= 0 {
			w += style.Face.Kern(prev, r)
		}
		adv, _ := style.Face.GlyphAdvance(r)
		w += adv
		prev = r
		n++
	}
	if n > 1 {
		w += fixed.I(style.Kerning * (n - 1))
	}
	return w.Ceil()
}

func render(style Style, s string, size image.Point) image.Image {
	img := image.NewRGBA(image.Rectangle{Max: size})
	d := &font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(style.Color),
		Face: style.Face,
		Dot:  fixed.Point26_6{Y: style.Face.Metrics().Ascent},
	}

	prev := rune(-1)
	for _, r := range s {
		if prev >= 0 {
			d.Dot.X += style.Face.Kern(prev, r) + fixed.I(style.Kerning)
		}
		d.DrawString(string(r))
		prev = r
	}
	return img
}
