package video

import (
	"context"
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"math"
	"path/filepath"
	"strings"

	"github.com/ivlev/typingvid/internal/clip"
)

var ErrUnsupportedFormat = errors.New("unsupported output format")

const (
	GIFRate   = 10
	VideoRate = 24
)

// Encoder writes a clip to a media file.
type Encoder interface {
	Encode(ctx context.Context, c clip.Clip, path string) error
	FPS() int
}

// Options carries the encoder settings chosen by the CLI.
type Options struct {
	FFmpegPath   string
	VideoEncoder string // H.264 codec for ffmpeg, libx264 when empty
	Quality      int
	Background   color.Color // painted under transparent pixels, white when nil
}

// ForPath picks the encoder for the extension of path.
func ForPath(path string, opts Options) (Encoder, error) {
	bg := opts.Background
	if bg == nil {
		bg = color.White
	}

	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case ".gif":
		return &GIFEncoder{Rate: GIFRate, Background: bg}, nil
	case ".mp4", ".mov", ".m4v":
		codec := opts.VideoEncoder
		if codec == "" {
			codec = "libx264"
		}
		return &FFmpegEncoder{
			FFmpegPath: opts.FFmpegPath,
			Codec:      codec,
			Quality:    opts.Quality,
			Rate:       VideoRate,
			Background: bg,
		}, nil
	case ".avi":
		return &MJPEGEncoder{Rate: VideoRate, Quality: 90, Background: bg}, nil
	default:
		if ext == "" {
			ext = "(none)"
		}
		return nil, fmt.Errorf("%w: %s (supported: .gif, .mp4, .mov, .m4v, .avi)", ErrUnsupportedFormat, ext)
	}
}

// FrameCount is the number of frames needed to show d seconds at fps.
func FrameCount(d float64, fps int) int {
	n := int(math.Round(d * float64(fps)))
	if n < 1 {
		n = 1
	}
	return n
}

// Sample calls fn with the frame shown at t = i/fps for every output frame.
func Sample(ctx context.Context, c clip.Clip, fps int, fn func(i int, img image.Image) error) error {
	n := FrameCount(c.Duration(), fps)
	for i := 0; i < n; i++ {
		if err := ctx.Err(); err != nil {
			return err
		}
		img, err := c.FrameAt(float64(i) / float64(fps))
		if err != nil {
			return fmt.Errorf("frame %d: %w", i, err)
		}
		if err := fn(i, img); err != nil {
			return err
		}
	}
	return nil
}

// flatten paints src over an opaque bg into dst, aligning the origins.
func flatten(dst *image.RGBA, src image.Image, bg color.Color) {
	draw.Draw(dst, dst.Bounds(), image.NewUniform(bg), image.Point{}, draw.Src)
	draw.Draw(dst, dst.Bounds(), src, src.Bounds().Min, draw.Over)
}
