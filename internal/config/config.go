package config

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidSpeed = errors.New("speed must be greater than zero")
	ErrNoOutput     = errors.New("output path is empty")
)

const (
	DefaultLayout     = "engr"
	DefaultOutput     = "output.mp4"
	DefaultSpeed      = 5.0
	DefaultLayoutsDir = "layouts"
	DefaultAssetsDir  = "assets"
	DefaultRasterizer = "fitz"
	DefaultDPI        = 72.0
)

// Config is built once by the CLI and passed by value to the render session.
type Config struct {
	Text           string
	Layout         string
	LayoutsDir     string
	AssetsDir      string
	OutputPath     string
	Speed          float64 // keys per second; one frame lasts 1/Speed
	NoDisplay      bool
	InvertColors   bool
	ForceLowercase bool
	Hold           float64 // seconds to freeze the last frame, <= 0 disables
	Rasterizer     string
	DPI            float64
	Workers        int // 0 means auto
	VideoEncoder   string
	Quality        int
	ShowStats      bool
	BuildVersion   string
}

func Default() Config {
	return Config{
		Layout:     DefaultLayout,
		LayoutsDir: DefaultLayoutsDir,
		AssetsDir:  DefaultAssetsDir,
		OutputPath: DefaultOutput,
		Speed:      DefaultSpeed,
		Rasterizer: DefaultRasterizer,
		DPI:        DefaultDPI,
	}
}

// Validate rejects configurations that would make the render undefined.
func (c Config) Validate() error {
	if !(c.Speed > 0) {
		return fmt.Errorf("%w: got %v", ErrInvalidSpeed, c.Speed)
	}
	if c.OutputPath == "" {
		return ErrNoOutput
	}
	return nil
}

// FrameDuration is the time each keyboard frame stays on screen.
func (c Config) FrameDuration() float64 {
	return 1 / c.Speed
}
