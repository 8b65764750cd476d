package sequencer

import (
	"bufio"
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"sync"
)

const DefaultPattern = "frame%d.png"

var encoder = png.Encoder{CompressionLevel: png.BestSpeed}

// Store is the transient directory holding rendered frames for one session.
type Store struct {
	dir     string
	pattern string

	mu   sync.Mutex
	size image.Point
}

// NewStore creates a fresh directory under parent (the system temp dir when
// empty). pattern names files by frame index.
func NewStore(parent, pattern string) (*Store, error) {
	if pattern == "" {
		pattern = DefaultPattern
	}
	dir, err := os.MkdirTemp(parent, "typingvid_")
	if err != nil {
		return nil, fmt.Errorf("failed to create frame store: %w", err)
	}
	return &Store{dir: dir, pattern: pattern}, nil
}

func (s *Store) Dir() string { return s.dir }

// Size is the size of the first saved frame.
func (s *Store) Size() image.Point {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.size
}

// Save writes img as the frame with the given index and returns its path.
func (s *Store) Save(index int, img image.Image) (string, error) {
	path := filepath.Join(s.dir, fmt.Sprintf(s.pattern, index))
	f, err := os.Create(path)
	if err != nil {
		return "", err
	}

	w := bufio.NewWriter(f)
	if err := encoder.Encode(w, img); err != nil {
		f.Close()
		return "", fmt.Errorf("encode frame %d: %w", index, err)
	}
	if err := w.Flush(); err != nil {
		f.Close()
		return "", err
	}
	if err := f.Close(); err != nil {
		return "", err
	}

	s.mu.Lock()
	if s.size == (image.Point{}) {
		s.size = img.Bounds().Size()
	}
	s.mu.Unlock()
	return path, nil
}

func (s *Store) Open(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	img, err := png.Decode(bufio.NewReader(f))
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", filepath.Base(path), err)
	}
	return img, nil
}

// Close removes the store and everything in it.
func (s *Store) Close() error {
	return os.RemoveAll(s.dir)
}
