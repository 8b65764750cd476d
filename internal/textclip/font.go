package textclip

import (
	"fmt"
	"log"
	"os"
	"path/filepath"

	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gomono"
	"golang.org/x/image/font/opentype"
)

var fontExtensions = []string{".ttf", ".otf", ".TTF", ".OTF"}

// LoadFace opens <dir>/<name>.ttf (or .otf) at size points. A missing font
// is not fatal: the embedded Go Mono face is used instead.
func LoadFace(dir, name string, size float64) (font.Face, error) {
	for _, ext := range fontExtensions {
		path := filepath.Join(dir, name+ext)
		data, err := os.ReadFile(path)
		if err != nil {
			continue
		}
		face, err := parseFace(data, size)
		if err != nil {
			return nil, fmt.Errorf("font %s: %w", path, err)
		}
		return face, nil
	}

	log.Printf("[!] Font %q not found in %s, falling back to Go Mono", name, dir)
	return parseFace(gomono.TTF, size)
}

func parseFace(data []byte, size float64) (font.Face, error) {
	f, err := opentype.Parse(data)
	if err != nil {
		return nil, err
	}
	return opentype.NewFace(f, &opentype.FaceOptions{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingFull,
	})
}
