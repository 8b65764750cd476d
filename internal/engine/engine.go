package engine

import (
	"context"
	"fmt"
	"image"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/ivlev/typingvid/internal/clip"
	"github.com/ivlev/typingvid/internal/compose"
	"github.com/ivlev/typingvid/internal/config"
	"github.com/ivlev/typingvid/internal/effects"
	"github.com/ivlev/typingvid/internal/keyboard"
	"github.com/ivlev/typingvid/internal/layout"
	"github.com/ivlev/typingvid/internal/renderer"
	"github.com/ivlev/typingvid/internal/sequencer"
	"github.com/ivlev/typingvid/internal/system"
	"github.com/ivlev/typingvid/internal/textclip"
	"github.com/ivlev/typingvid/internal/video"
)

const (
	MonoBackground = "mono_display_background.png"
	DualBackground = "dual_display_background.png"
	FontsDir       = "fonts"
)

// Session renders one typing animation. Its frame store lives only for the
// duration of Run.
type Session struct {
	Config config.Config
	Layout *layout.Layout

	// Optional overrides; chosen from Config when nil.
	Raster  renderer.Rasterizer
	Encoder video.Encoder

	// TempDir is where the frame store is created, the system temp dir when empty.
	TempDir string
}

func NewSession(cfg config.Config, l *layout.Layout) *Session {
	return &Session{Config: cfg, Layout: l}
}

// Run renders the animation and writes it to Config.OutputPath. On failure
// no output file is left behind.
func (s *Session) Run(ctx context.Context) error {
	startTime := time.Now()
	cfg := s.Config

	if err := cfg.Validate(); err != nil {
		return err
	}

	enc := s.Encoder
	if enc == nil {
		var err error
		enc, err = video.ForPath(cfg.OutputPath, video.Options{
			FFmpegPath:   system.FFmpegPath(),
			VideoEncoder: cfg.VideoEncoder,
			Quality:      cfg.Quality,
		})
		if err != nil {
			return err
		}
	}

	mode, err := s.Layout.Mode()
	if err != nil {
		return err
	}
	if cfg.NoDisplay {
		mode = layout.NoDisplay{}
	}

	doc, err := keyboard.Load(filepath.Join(cfg.AssetsDir, s.Layout.File))
	if err != nil {
		return err
	}

	text := strings.ToUpper(cfg.Text)
	if err := doc.Check(text); err != nil {
		return err
	}

	T := cfg.FrameDuration()
	fmt.Println("--- [TYPINGVID] ---")
	fmt.Printf("[*] Layout: %s | %s\n", s.Layout.Name, mode)
	fmt.Printf("[*] Text: %d characters | %.2f keys/s | Output: %s @ %d FPS\n", len([]rune(text)), cfg.Speed, cfg.OutputPath, enc.FPS())
	fmt.Println("-----------------------------")

	store, err := sequencer.NewStore(s.TempDir, sequencer.DefaultPattern)
	if err != nil {
		return err
	}
	defer store.Close()

	raster := s.Raster
	if raster == nil {
		raster, err = renderer.New(cfg.Rasterizer, store.Dir(), cfg.DPI)
		if err != nil {
			return err
		}
	}

	renderStart := time.Now()
	seq := sequencer.New(doc, raster, store, system.RecommendedWorkers(cfg.Workers))
	frames, err := seq.Generate(ctx, text)
	if err != nil {
		return err
	}
	renderTime := time.Since(renderStart)

	kb, err := sequencer.Assemble(frames, store, T)
	if err != nil {
		return err
	}

	final, err := s.composeMode(mode, kb, text, T)
	if err != nil {
		return err
	}
	final = effects.Apply(final, effects.FromConfig(cfg)...)

	fmt.Printf("[*] Encoding %.2fs of video...\n", final.Duration())
	encodeStart := time.Now()
	if err := export(ctx, enc, final, cfg.OutputPath); err != nil {
		return fmt.Errorf("export failed: %w", err)
	}
	encodeTime := time.Since(encodeStart)

	if cfg.ShowStats {
		printStats(cfg, len(frames), video.FrameCount(final.Duration(), enc.FPS()), time.Since(startTime), renderTime, encodeTime)
	}
	return nil
}

func (s *Session) composeMode(mode layout.DisplayMode, kb clip.Clip, text string, T float64) (clip.Clip, error) {
	cfg := s.Config
	fonts := filepath.Join(cfg.AssetsDir, FontsDir)

	display := text
	if cfg.ForceLowercase {
		display = strings.ToLower(text)
	}

	switch m := mode.(type) {
	case layout.NoDisplay:
		return compose.KeyboardOnly(kb), nil

	case layout.Mono:
		bg, err := compose.LoadImage(filepath.Join(cfg.AssetsDir, MonoBackground))
		if err != nil {
			return nil, err
		}
		txt, err := reveal(fonts, m.Font, textclip.Units(display), T)
		if err != nil {
			return nil, err
		}
		return compose.Mono(bg, kb, txt), nil

	case layout.Dual:
		if missing := m.Mapping.Missing(text); len(missing) > 0 {
			log.Printf("[!] Layout %s has no mapping for %q, shown unchanged", s.Layout.Name, strings.Join(missing, ""))
		}

		bg, err := compose.LoadImage(filepath.Join(cfg.AssetsDir, DualBackground))
		if err != nil {
			return nil, err
		}
		upper, err := reveal(fonts, m.Upper, textclip.Units(display), T)
		if err != nil {
			return nil, err
		}
		units := m.Mapping.Remap(text)
		if cfg.ForceLowercase {
			for i := range units {
				units[i] = strings.ToLower(units[i])
			}
		}
		lower, err := reveal(fonts, m.Lower, units, T)
		if err != nil {
			return nil, err
		}
		return compose.Dual(bg, kb, upper, lower), nil

	default:
		return nil, fmt.Errorf("unknown display mode %T", mode)
	}
}

func reveal(dir, font string, units []string, T float64) (clip.Clip, error) {
	face, err := textclip.LoadFace(dir, font, textclip.DefaultSize)
	if err != nil {
		return nil, err
	}
	return textclip.Reveal(units, T, textclip.DefaultStyle(face))
}

// export encodes into a temporary sibling of path and renames it into place.
func export(ctx context.Context, enc video.Encoder, c clip.Clip, path string) error {
	if size := c.Size(); size.X <= 0 || size.Y <= 0 {
		return fmt.Errorf("nothing to encode: frame size %v", image.Rectangle{Max: size})
	}

	dir, base := filepath.Split(path)
	if dir == "" {
		dir = "."
	}
	ext := filepath.Ext(base)
	tmp, err := os.CreateTemp(dir, "."+strings.TrimSuffix(base, ext)+"-*"+ext)
	if err != nil {
		return err
	}
	tmpPath := tmp.Name()
	tmp.Close()

	// CreateTemp makes the file owner-only; keep the mode of a replaced output
	mode := os.FileMode(0644)
	if fi, err := os.Stat(path); err == nil {
		mode = fi.Mode().Perm()
	}
	if err := os.Chmod(tmpPath, mode); err != nil {
		os.Remove(tmpPath)
		return err
	}

	if err := enc.Encode(ctx, c, tmpPath); err != nil {
		os.Remove(tmpPath)
		return err
	}
	if err := os.Rename(tmpPath, path); err != nil {
		os.Remove(tmpPath)
		return err
	}
	return nil
}

func printStats(cfg config.Config, keyframes, videoFrames int, total, render, encode time.Duration) {
	fps := float64(videoFrames) / total.Seconds()
	report := fmt.Sprintf(
		"--- [PERFORMANCE REPORT] ---\n"+
			"Build: %s\n"+
			"Total Time: %.2fs\n"+
			"Rendering (keyframes: %d): %.2fs\n"+
			"Compose + Encoding (frames: %d): %.2fs\n"+
			"Effective FPS: %.2f\n"+
			"----------------------------\n",
		cfg.BuildVersion, total.Seconds(), keyframes, render.Seconds(), videoFrames, encode.Seconds(), fps,
	)
	fmt.Print(report)

	logEntry := fmt.Sprintf("[%s] Build: %s | Layout: %s | Chars: %d | Total: %.2fs | Render: %.2fs | Encode: %.2fs | FPS: %.2f\n",
		time.Now().Format("2006-01-02 15:04:05"),
		cfg.BuildVersion,
		cfg.Layout,
		len([]rune(cfg.Text)),
		total.Seconds(),
		render.Seconds(),
		encode.Seconds(),
		fps,
	)

	f, err := os.OpenFile("benchmark.log", os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err == nil {
		f.WriteString(logEntry)
		f.Close()
	} else {
		log.Printf("[!] Could not write benchmark.log: %v", err)
	}
}
