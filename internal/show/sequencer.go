package show

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/vovakirdan/tui-slideshow/internal/core"
	"github.com/vovakirdan/tui-slideshow/internal/slide"
)

// ErrUnknownLoopType is returned by ParseLoopType for unrecognised tokens.
var ErrUnknownLoopType = errors.New("show: unknown loop type")

// LoopType decides what happens when the sequence runs off either end.
type LoopType int

const (
	LoopNone     LoopType = iota // stop after the last slide
	LoopNormal                   // wrap around to the other end
	LoopPingPong                 // reverse direction at each end
)

// String returns the settings token for the loop type.
func (l LoopType) String() string {
	switch l {
	case LoopNone:
		return "NONE"
	case LoopNormal:
		return "NORMAL"
	case LoopPingPong:
		return "PING-PONG"
	default:
		return fmt.Sprintf("LoopType(%d)", int(l))
	}
}

// ParseLoopType converts a settings token into a LoopType.
// Matching ignores case and accepts PING_PONG as well as PING-PONG.
func ParseLoopType(s string) (LoopType, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "", "NONE":
		return LoopNone, nil
	case "NORMAL":
		return LoopNormal, nil
	case "PING-PONG", "PING_PONG", "PINGPONG":
		return LoopPingPong, nil
	default:
		return LoopNone, fmt.Errorf("%w: %q", ErrUnknownLoopType, s)
	}
}

// MarshalYAML writes the loop type as its token.
func (l LoopType) MarshalYAML() (any, error) {
	return l.String(), nil
}

// UnmarshalYAML reads the loop type from its token.
func (l *LoopType) UnmarshalYAML(unmarshal func(any) error) error {
	var s string
	if err := unmarshal(&s); err != nil {
		return err
	}
	lt, err := ParseLoopType(s)
	if err != nil {
		return err
	}
	*l = lt
	return nil
}

// sequencer owns the slide list and decides which slide plays next.
// Index is signed and may sit outside [0, len(slides)) after the show stops.
type sequencer struct {
	slides []*slide.Slide
	active []*slide.Slide

	index     int
	direction int
	loop      LoopType
	numLoops  int // 0 means unbounded
	loopCount int
}

func newSequencer(slides []*slide.Slide, loop LoopType, numLoops int) *sequencer {
	return &sequencer{
		slides:    slides,
		direction: 1,
		loop:      loop,
		numLoops:  numLoops,
	}
}

// rewind returns to the first slide going forwards.
func (q *sequencer) rewind() {
	q.index = 0
	q.direction = 1
	q.loopCount = 0
}

// reachedLimit counts a completed loop and reports whether the show must stop.
func (q *sequencer) reachedLimit() bool {
	q.loopCount++
	return q.numLoops > 0 && q.loopCount >= q.numLoops
}

// advance steps the index according to the loop policy and enqueues the
// resulting slide. willLoop is true when the sequence wrapped or reflected.
func (q *sequencer) advance(at time.Duration) (willLoop bool) {
	n := len(q.slides)
	q.index += q.direction

	switch q.loop {
	case LoopNone:
		if q.index < 0 || q.index >= n {
			return false
		}

	case LoopNormal:
		if q.index >= n {
			if q.reachedLimit() {
				return false
			}
			q.index = 0
			willLoop = true
		} else if q.index < 0 {
			if q.reachedLimit() {
				return false
			}
			q.index = n - 1
			willLoop = true
		}

	case LoopPingPong:
		if q.index >= n {
			if q.reachedLimit() {
				return false
			}
			q.direction = -1
			q.index = core.Clamp(n-2, 0, n-1)
			willLoop = true
		} else if q.index < 0 {
			if q.reachedLimit() {
				return false
			}
			q.direction = 1
			q.index = core.Clamp(1, 0, n-1)
			willLoop = true
		}
	}

	q.enqueue(q.index, at)
	return willLoop
}

// enqueue starts the slide at i and makes it active. A slide that is already
// active is restarted where it is.
func (q *sequencer) enqueue(i int, at time.Duration) {
	if i < 0 || i >= len(q.slides) {
		return
	}
	s := q.slides[i]
	s.Start(at)
	for _, a := range q.active {
		if a == s {
			return
		}
	}
	q.active = append(q.active, s)
}

// buildOutActive sends every active slide that has not yet left the stage
// into its build-out.
func (q *sequencer) buildOutActive() {
	for _, s := range q.active {
		s.BeginBuildOut()
	}
}

// purge drops completed slides from the active set, keeping order.
func (q *sequencer) purge() {
	kept := q.active[:0]
	for _, s := range q.active {
		if !s.IsComplete() {
			kept = append(kept, s)
		}
	}
	for i := len(kept); i < len(q.active); i++ {
		q.active[i] = nil
	}
	q.active = kept
}
