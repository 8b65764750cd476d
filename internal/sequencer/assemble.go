package sequencer

import (
	"fmt"
	"image"

	"github.com/ivlev/typingvid/internal/clip"
)

// Assemble joins generated frames into one clip where every frame lasts T
// seconds, so the clip runs for len(frames)*T.
func Assemble(frames []Frame, store *Store, T float64) (*clip.Sequence, error) {
	if !(T > 0) {
		return nil, fmt.Errorf("frame duration must be positive, got %v", T)
	}

	segs := make([]clip.Segment, len(frames))
	for i, f := range frames {
		if f.Path == "" {
			return nil, fmt.Errorf("frame %d was not rendered", f.Index)
		}
		path := f.Path
		segs[i] = clip.Segment{
			ID:       path,
			Duration: T,
			Load:     func() (image.Image, error) { return store.Open(path) },
		}
	}
	return clip.NewSequence(store.Size(), segs)
}
