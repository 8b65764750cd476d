package sequencer

import (
	"fmt"

	"github.com/ivlev/typingvid/internal/keyboard"
)

type State int

const (
	Idle State = iota
	Pressed
	Released
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Pressed:
		return "pressed"
	case Released:
		return "released"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// Frame is one keyboard state of the animation. Path is filled in by Generate.
type Frame struct {
	Index int
	Char  rune
	Key   string
	State State
	Path  string
}

// snapshot names the rendered SVG this frame needs. Frames with equal
// snapshots render to the same pixels.
func (f Frame) snapshot() string {
	if f.State == Idle {
		return "idle"
	}
	return f.State.String() + ":" + f.Key
}

func (f Frame) style() keyboard.Style {
	if f.State == Pressed {
		return keyboard.Highlighted
	}
	return keyboard.Idle
}

// Plan lays out the 2N+1 frames for text: frame 0 is the idle keyboard and
// character i (1-based) is pressed in frame 2i-1 and released in frame 2i.
// It fails on the first character the keyboard has no key for.
func Plan(doc *keyboard.Document, text string) ([]Frame, error) {
	if err := doc.Check(text); err != nil {
		return nil, err
	}

	frames := make([]Frame, 1, 2*len(text)+1)
	frames[0] = Frame{Index: 0, State: Idle}
	for _, r := range text {
		key := keyboard.KeyID(r)
		n := len(frames)
		frames = append(frames,
			Frame{Index: n, Char: r, Key: key, State: Pressed},
			Frame{Index: n + 1, Char: r, Key: key, State: Released},
		)
	}
	return frames, nil
}
