package sequencer

import (
	"context"
	"fmt"
	"runtime"
	"sync/atomic"

	"golang.org/x/sync/errgroup"

	"github.com/ivlev/typingvid/internal/keyboard"
	"github.com/ivlev/typingvid/internal/renderer"
)

// Sequencer renders the keyboard frames of a text into a Store.
type Sequencer struct {
	Doc     *keyboard.Document
	Raster  renderer.Rasterizer
	Store   *Store
	Workers int
	Quiet   bool
}

func New(doc *keyboard.Document, raster renderer.Rasterizer, store *Store, workers int) *Sequencer {
	return &Sequencer{Doc: doc, Raster: raster, Store: store, Workers: workers}
}

func (s *Sequencer) Plan(text string) ([]Frame, error) {
	return Plan(s.Doc, text)
}

// Generate plans text and rasterizes every distinct snapshot once, in
// parallel. Each snapshot is saved under the index of the first frame that
// shows it; later frames reuse that file.
func (s *Sequencer) Generate(ctx context.Context, text string) ([]Frame, error) {
	frames, err := s.Plan(text)
	if err != nil {
		return nil, err
	}

	var jobs []Frame
	jobOf := make([]int, len(frames))
	seen := make(map[string]int)
	for i, f := range frames {
		j, ok := seen[f.snapshot()]
		if !ok {
			j = len(jobs)
			seen[f.snapshot()] = j
			jobs = append(jobs, f)
		}
		jobOf[i] = j
	}

	workers := s.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}

	paths := make([]string, len(jobs))
	var done atomic.Int32

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for j, f := range jobs {
		g.Go(func() error {
			svg, err := s.render(f)
			if err != nil {
				return err
			}
			img, err := s.Raster.Rasterize(gctx, svg)
			if err != nil {
				return fmt.Errorf("rasterize frame %d (%s): %w", f.Index, f.snapshot(), err)
			}
			path, err := s.Store.Save(f.Index, img)
			if err != nil {
				return err
			}
			paths[j] = path

			n := done.Add(1)
			if !s.Quiet {
				fmt.Printf("[>] Rendered: %d/%d (%s)\n", n, len(jobs), f.snapshot())
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	for i := range frames {
		frames[i].Path = paths[jobOf[i]]
	}
	return frames, nil
}

func (s *Sequencer) render(f Frame) ([]byte, error) {
	if f.State == Idle {
		return s.Doc.Bytes(), nil
	}
	return s.Doc.With(f.Key, f.style())
}
