package video

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/color"
	"image/jpeg"

	"github.com/icza/mjpeg"

	"github.com/ivlev/typingvid/internal/clip"
)

// MJPEGEncoder writes Motion-JPEG AVI files without ffmpeg.
type MJPEGEncoder struct {
	Rate       int
	Quality    int
	Background color.Color
}

func (e *MJPEGEncoder) FPS() int { return e.Rate }

func (e *MJPEGEncoder) Encode(ctx context.Context, c clip.Clip, path string) error {
	size := c.Size()
	writer, err := mjpeg.New(path, int32(size.X), int32(size.Y), int32(e.Rate))
	if err != nil {
		return fmt.Errorf("failed to create video writer: %w", err)
	}

	rgba := image.NewRGBA(image.Rectangle{Max: size})
	var prev image.Image
	var frame bytes.Buffer
	err = Sample(ctx, c, e.Rate, func(i int, img image.Image) error {
		if img != prev {
			flatten(rgba, img, e.Background)
			frame.Reset()
			if err := jpeg.Encode(&frame, rgba, &jpeg.Options{Quality: e.Quality}); err != nil {
				return fmt.Errorf("failed to encode frame %d as JPEG: %w", i, err)
			}
			prev = img
		}
		return writer.AddFrame(frame.Bytes())
	})
	if cerr := writer.Close(); err == nil {
		err = cerr
	}
	return err
}
