package video

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	"image/color"
	"io"
	"strings"

	ffmpeg "github.com/u2takey/ffmpeg-go"
	"golang.org/x/sync/errgroup"

	"github.com/ivlev/typingvid/internal/clip"
	"github.com/ivlev/typingvid/internal/system"
)

// FFmpegEncoder streams raw RGBA frames into ffmpeg over stdin and encodes
// H.264.
type FFmpegEncoder struct {
	FFmpegPath string
	Codec      string
	Quality    int
	Rate       int
	Background color.Color
}

func (e *FFmpegEncoder) FPS() int { return e.Rate }

func (e *FFmpegEncoder) Encode(ctx context.Context, c clip.Clip, path string) error {
	size := c.Size()
	pr, pw := io.Pipe()
	var stderr bytes.Buffer

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		pool := system.NewFramePool(size)
		buf := pool.Get()
		defer pool.Put(buf)

		err := Sample(gctx, c, e.Rate, func(_ int, img image.Image) error {
			return e.writeRawRGBA(pw, buf, img)
		})
		pw.CloseWithError(err)
		if errors.Is(err, io.ErrClosedPipe) {
			// ffmpeg quit first and reports the cause
			return nil
		}
		return err
	})
	g.Go(func() error {
		err := e.stream(path, size, pr, &stderr).Run()
		// unblock the writer if ffmpeg quit early
		pr.CloseWithError(io.ErrClosedPipe)
		if err != nil {
			return fmt.Errorf("ffmpeg error: %w\n%s", err, tail(stderr.String(), 20))
		}
		return nil
	})
	return g.Wait()
}

// stream builds the ffmpeg invocation reading raw frames from r.
func (e *FFmpegEncoder) stream(path string, size image.Point, r io.Reader, stderr io.Writer) *ffmpeg.Stream {
	stream := ffmpeg.Input("pipe:", e.inputArgs(size)).
		Output(path, e.outputArgs()).
		OverWriteOutput().
		WithInput(r).
		WithErrorOutput(stderr).
		Silent(true)
	if e.FFmpegPath != "" {
		stream = stream.SetFfmpegPath(e.FFmpegPath)
	}
	return stream
}

func (e *FFmpegEncoder) inputArgs(size image.Point) ffmpeg.KwArgs {
	return ffmpeg.KwArgs{
		"f":       "rawvideo",
		"pix_fmt": "rgba",
		"s":       fmt.Sprintf("%dx%d", size.X, size.Y),
		"r":       e.Rate,
	}
}

func (e *FFmpegEncoder) outputArgs() ffmpeg.KwArgs {
	args := ffmpeg.KwArgs{
		"c:v":      e.Codec,
		"pix_fmt":  "yuv420p",
		"vf":       "pad=ceil(iw/2)*2:ceil(ih/2)*2",
		"r":        e.Rate,
		"movflags": "+faststart",
	}

	quality := e.Quality
	if quality <= 0 {
		quality = system.DefaultQuality(e.Codec)
	}
	switch e.Codec {
	case "h264_videotoolbox":
		// VideoToolbox does not take -q:v on every version, use bitrate instead
		args["b:v"] = fmt.Sprintf("%dk", quality*100)
	case "h264_nvenc":
		args["cq"] = quality
	default: // libx264
		args["crf"] = quality
		args["preset"] = "medium"
	}
	return args
}

func (e *FFmpegEncoder) writeRawRGBA(w io.Writer, buf *image.RGBA, img image.Image) error {
	rgba, ok := img.(*image.RGBA)
	if !ok || rgba.Stride != rgba.Rect.Dx()*4 || rgba.Rect != buf.Rect || !opaque(rgba) {
		flatten(buf, img, e.Background)
		rgba = buf
	}
	_, err := w.Write(rgba.Pix)
	return err
}

func opaque(img *image.RGBA) bool {
	for i := 3; i < len(img.Pix); i += 4 {
		if img.Pix[i] != 0xff {
			return false
		}
	}
	return true
}

func tail(s string, n int) string {
	lines := strings.Split(strings.TrimRight(s, "\n"), "\n")
	if len(lines) > n {
		lines = lines[len(lines)-n:]
	}
	return strings.Join(lines, "\n")
}
