package system

import (
	"fmt"
	"os"
	"os/exec"
	"runtime"
	"strings"

	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/mem"
)

// EnvFFmpeg overrides the ffmpeg binary.
const EnvFFmpeg = "TYPINGVID_FFMPEG"

// bytes of headroom each render worker needs for one 1080p snapshot and its PNG
const workerMemory = 64 << 20

// FFmpegPath returns the ffmpeg binary to use.
func FFmpegPath() string {
	if p := os.Getenv(EnvFFmpeg); p != "" {
		return p
	}
	return "ffmpeg"
}

// CheckFFmpeg resolves the ffmpeg binary on PATH.
func CheckFFmpeg(path string) (string, error) {
	resolved, err := exec.LookPath(path)
	if err != nil {
		return "", fmt.Errorf("ffmpeg not found (%s): %w", path, err)
	}
	return resolved, nil
}

// GetBestH264Encoder picks a hardware H.264 encoder when ffmpeg has one.
// Priority: VideoToolbox (macOS), NVENC (NVIDIA), then libx264.
func GetBestH264Encoder(ffmpegPath string) string {
	out, err := exec.Command(ffmpegPath, "-hide_banner", "-encoders").CombinedOutput()
	if err != nil {
		return "libx264"
	}
	return pickEncoder(string(out))
}

func pickEncoder(list string) string {
	for _, name := range []string{"h264_videotoolbox", "h264_nvenc"} {
		if strings.Contains(list, name) {
			return name
		}
	}
	return "libx264"
}

// DefaultQuality is a sensible quality value for each encoder: bitrate
// units of 100 kbit/s for VideoToolbox, CQ for NVENC and CRF for x264.
func DefaultQuality(encoder string) int {
	switch encoder {
	case "h264_videotoolbox":
		return 75
	case "h264_nvenc":
		return 28
	default:
		return 23
	}
}

// RecommendedWorkers returns requested when positive, otherwise the number
// of logical CPUs capped by available memory.
func RecommendedWorkers(requested int) int {
	if requested > 0 {
		return requested
	}

	n, err := cpu.Counts(true)
	if err != nil || n <= 0 {
		n = runtime.NumCPU()
	}

	if vm, err := mem.VirtualMemory(); err == nil {
		if limit := int(vm.Available / workerMemory); limit < n {
			n = limit
		}
	}

	if n < 1 {
		n = 1
	}
	return n
}
