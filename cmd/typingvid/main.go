package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"os/signal"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/ivlev/typingvid/internal/config"
	"github.com/ivlev/typingvid/internal/engine"
	"github.com/ivlev/typingvid/internal/layout"
	"github.com/ivlev/typingvid/internal/system"
	"github.com/ivlev/typingvid/internal/video"
)

const (
	EnvLayouts = "TYPINGVID_LAYOUTS"
	EnvAssets  = "TYPINGVID_ASSETS"
)

// set with -ldflags "-X main.version=..."
var version = "dev"

func main() {
	// .env is optional
	_ = godotenv.Load()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		stop()
		log.Fatalf("[-] Error: %v", err)
	}
}

func newRootCmd() *cobra.Command {
	cfg := config.Default()
	cfg.LayoutsDir = envOr(EnvLayouts, cfg.LayoutsDir)
	cfg.AssetsDir = envOr(EnvAssets, cfg.AssetsDir)
	var listLayouts bool

	cmd := &cobra.Command{
		Use:           "typingvid",
		Short:         "render a video of a keyboard typing a text",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if listLayouts {
				return printLayouts(cmd.OutOrStdout(), cfg.LayoutsDir)
			}
			if cfg.Text == "" {
				return errors.New("--text is required")
			}
			return run(cmd.Context(), cfg)
		},
	}

	f := cmd.Flags()
	f.StringVarP(&cfg.Text, "text", "t", "", "text to type")
	f.StringVarP(&cfg.Layout, "layout", "l", cfg.Layout, "keyboard layout name (see --list-layouts)")
	f.StringVarP(&cfg.OutputPath, "output", "o", cfg.OutputPath, "output file: .mp4, .mov, .m4v, .gif or .avi")
	f.Float64VarP(&cfg.Speed, "speed", "s", cfg.Speed, "keys per second")
	f.BoolVar(&cfg.NoDisplay, "no-display", false, "render the keyboard without text displays")
	f.BoolVar(&cfg.InvertColors, "invert-colors", false, "invert the colors of the video")
	f.BoolVar(&cfg.ForceLowercase, "force-lowercase", false, "show the displayed text in lower case")
	f.Float64Var(&cfg.Hold, "hold", 0, "seconds to hold the last frame")
	f.BoolVar(&listLayouts, "list-layouts", false, "list available layouts and exit")
	f.StringVar(&cfg.LayoutsDir, "layouts-dir", cfg.LayoutsDir, "directory with layout files (env "+EnvLayouts+")")
	f.StringVar(&cfg.AssetsDir, "assets-dir", cfg.AssetsDir, "directory with keyboard, background and font assets (env "+EnvAssets+")")
	f.StringVar(&cfg.Rasterizer, "rasterizer", cfg.Rasterizer, "svg rasterizer: fitz or oksvg")
	f.Float64Var(&cfg.DPI, "dpi", cfg.DPI, "rasterization DPI, 72 keeps svg units as pixels")
	f.IntVar(&cfg.Workers, "workers", 0, "parallel render workers (0 - auto)")
	f.IntVar(&cfg.Quality, "quality", 0, "video quality (0 - auto, x264: CRF 1-51, VideoToolbox: bitrate = Q*100kbit/s)")
	f.BoolVar(&cfg.ShowStats, "stats", false, "print a performance report")

	return cmd
}

func run(ctx context.Context, cfg config.Config) error {
	cfg.BuildVersion = version

	l, err := layout.Load(cfg.LayoutsDir, cfg.Layout)
	if err != nil {
		return err
	}

	enc, err := video.ForPath(cfg.OutputPath, video.Options{})
	if err != nil {
		return err
	}
	if _, ok := enc.(*video.FFmpegEncoder); ok {
		ffmpegPath, err := system.CheckFFmpeg(system.FFmpegPath())
		if err != nil {
			return err
		}
		cfg.VideoEncoder = system.GetBestH264Encoder(ffmpegPath)
		if cfg.VideoEncoder != "libx264" {
			fmt.Printf("[*] Hardware acceleration detected: %s\n", cfg.VideoEncoder)
		}
		if cfg.Quality == 0 {
			cfg.Quality = system.DefaultQuality(cfg.VideoEncoder)
		}
	}

	if err := engine.NewSession(cfg, l).Run(ctx); err != nil {
		return err
	}

	fmt.Printf("[+++] Success! Result: %s\n", cfg.OutputPath)
	return nil
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
