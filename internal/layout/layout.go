package layout

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

var ErrInvalidLayout = errors.New("invalid layout")

var extensions = []string{".yml", ".yaml"}

// Layout describes a keyboard visual and the displays paired with it.
type Layout struct {
	Name    string            `yaml:"-"`
	File    string            `yaml:"file"`    // keyboard SVG, relative to the assets dir
	Fonts   []string          `yaml:"fonts"`   // 0, 1 or 2 display fonts
	Mapping map[string]string `yaml:"mapping"` // upper display char -> lower display text
}

// Load reads <dir>/<name>.yml (or .yaml) and validates it.
func Load(dir, name string) (*Layout, error) {
	var data []byte
	var err error
	for _, ext := range extensions {
		data, err = os.ReadFile(filepath.Join(dir, name+ext))
		if err == nil {
			break
		}
	}
	if err != nil {
		return nil, fmt.Errorf("layout %q not found in %s: %w", name, dir, err)
	}

	l, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("layout %q: %w", name, err)
	}
	l.Name = name
	return l, nil
}

// Parse decodes and validates a layout document.
func Parse(data []byte) (*Layout, error) {
	var l Layout
	if err := yaml.Unmarshal(data, &l); err != nil {
		return nil, err
	}
	if err := l.Validate(); err != nil {
		return nil, err
	}
	return &l, nil
}

func (l *Layout) Validate() error {
	if strings.TrimSpace(l.File) == "" {
		return fmt.Errorf("%w: missing 'file'", ErrInvalidLayout)
	}
	_, err := l.Mode()
	return err
}

// Mode turns the font list into an explicit display mode.
func (l *Layout) Mode() (DisplayMode, error) {
	switch len(l.Fonts) {
	case 0:
		return NoDisplay{}, nil
	case 1:
		return Mono{Font: l.Fonts[0]}, nil
	case 2:
		if len(l.Mapping) == 0 {
			return nil, fmt.Errorf("%w: two fonts require a 'mapping'", ErrInvalidLayout)
		}
		return Dual{Upper: l.Fonts[0], Lower: l.Fonts[1], Mapping: Mapping(l.Mapping)}, nil
	default:
		return nil, fmt.Errorf("%w: expected 0-2 fonts, got %d", ErrInvalidLayout, len(l.Fonts))
	}
}

// List returns the names of all layouts in dir, sorted.
func List(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read layouts directory: %w", err)
	}

	seen := map[string]bool{}
	var names []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		ext := filepath.Ext(entry.Name())
		for _, e := range extensions {
			if ext == e {
				name := strings.TrimSuffix(entry.Name(), ext)
				if !seen[name] {
					seen[name] = true
					names = append(names, name)
				}
			}
		}
	}

	sort.Strings(names)
	return names, nil
}
