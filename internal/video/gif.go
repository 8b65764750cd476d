package video

import (
	"bufio"
	"context"
	"image"
	"image/color"
	"image/color/palette"
	"image/draw"
	"image/gif"
	"os"

	"github.com/ivlev/typingvid/internal/clip"
)

// GIFEncoder writes a looping animated GIF with the Plan 9 palette.
type GIFEncoder struct {
	Rate       int
	Background color.Color
}

func (e *GIFEncoder) FPS() int { return e.Rate }

func (e *GIFEncoder) Encode(ctx context.Context, c clip.Clip, path string) error {
	size := c.Size()
	bounds := image.Rectangle{Max: size}
	delay := 100 / e.Rate

	anim := &gif.GIF{
		Config:    image.Config{Width: size.X, Height: size.Y, ColorModel: color.Palette(palette.Plan9)},
		LoopCount: 0,
	}

	buf := image.NewRGBA(bounds)
	var prev image.Image
	var prevFrame *image.Paletted
	err := Sample(ctx, c, e.Rate, func(_ int, img image.Image) error {
		if img != prev {
			flatten(buf, img, e.Background)
			prevFrame = image.NewPaletted(bounds, palette.Plan9)
			draw.FloydSteinberg.Draw(prevFrame, bounds, buf, image.Point{})
			prev = img
		}
		anim.Image = append(anim.Image, prevFrame)
		anim.Delay = append(anim.Delay, delay)
		return nil
	})
	if err != nil {
		return err
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	w := bufio.NewWriter(f)
	if err := gif.EncodeAll(w, anim); err != nil {
		f.Close()
		return err
	}
	if err := w.Flush(); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
