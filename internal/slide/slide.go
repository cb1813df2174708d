// Package slide implements a single slide of a show: its media, its resolved
// size and the Idle → BuildIn → Hold → BuildOut → Done state machine that
// drives its transitions.
package slide

import (
	"fmt"
	"time"

	"github.com/vovakirdan/tui-slideshow/internal/core"
	"github.com/vovakirdan/tui-slideshow/internal/transition"
)

// State is a slide's lifecycle phase.
type State int

const (
	Idle State = iota
	BuildIn
	Hold
	BuildOut
	Done
)

// String returns the state name.
func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case BuildIn:
		return "build-in"
	case Hold:
		return "hold"
	case BuildOut:
		return "build-out"
	case Done:
		return "done"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// Outcome reports what an Update changed.
type Outcome int

const (
	NoChange        Outcome = iota
	EnteredBuildOut         // the slide just left Hold
	Completed               // the slide just reached Done
)

// String returns the outcome name.
func (o Outcome) String() string {
	switch o {
	case NoChange:
		return "no-change"
	case EnteredBuildOut:
		return "entered-build-out"
	case Completed:
		return "completed"
	default:
		return fmt.Sprintf("Outcome(%d)", int(o))
	}
}

// Slide is one entry of a show.
type Slide struct {
	Name  string // file or page the slide came from
	Media Media

	Duration           time.Duration // total time on screen including the build-out
	TransitionDuration time.Duration
	Transition         string // transition name override; empty uses the show default

	SourceSize core.Size    // size of the asset
	Size       core.Size    // size on the canvas, set by ResolveSize
	Resize     ResizeOption // per-slide override; NoResize defers to the show

	buildIn  transition.Transition
	buildOut transition.Transition

	state     State
	hold      time.Duration
	elapsed   time.Duration
	startedAt time.Duration
	complete  bool
}

// New creates an idle slide.
func New(name string, media Media, src core.Size, duration time.Duration) *Slide {
	return &Slide{
		Name:       name,
		Media:      media,
		Duration:   duration,
		SourceSize: src,
	}
}

// ResolveSize sets Size for a canvas using the effective resize option.
func (s *Slide) ResolveSize(canvas core.Size, showOpt ResizeOption) error {
	size, err := Resolve(s.SourceSize, canvas, Effective(s.Resize, showOpt))
	if err != nil {
		return fmt.Errorf("slide %q: %w", s.Name, err)
	}
	s.Size = size
	return nil
}

// SetTransitions installs the build-in and build-out transitions.
// Either may be nil.
func (s *Slide) SetTransitions(in, out transition.Transition) {
	s.buildIn = in
	s.buildOut = out
}

// HasTransitions reports whether either transition is set.
func (s *Slide) HasTransitions() bool {
	return s.buildIn != nil || s.buildOut != nil
}

// Start rewinds the slide and begins its lifecycle at running time at.
func (s *Slide) Start(at time.Duration) {
	s.hold = 0
	s.elapsed = 0
	s.startedAt = at
	s.complete = false

	if s.buildIn != nil {
		s.buildIn.Start()
		s.state = BuildIn
		return
	}
	s.state = Hold
}

// holdTime is how long the slide stays in Hold before building out.
func (s *Slide) holdTime() time.Duration {
	if s.buildOut == nil {
		return s.Duration
	}
	return max(s.Duration-s.TransitionDuration, 0)
}

// Update advances the slide by dt and reports the resulting transition, if any.
func (s *Slide) Update(dt time.Duration) Outcome {
	if s.state == Idle || s.state == Done {
		return NoChange
	}
	s.elapsed += dt

	switch s.state {
	case BuildIn:
		s.buildIn.Update(dt)
		if s.buildIn.IsComplete() {
			s.state = Hold
		}

	case Hold:
		s.hold += dt
		if s.hold >= s.holdTime() {
			s.state = BuildOut
			if s.buildOut != nil {
				s.buildOut.Start()
			}
			return EnteredBuildOut
		}

	case BuildOut:
		if s.buildOut != nil {
			s.buildOut.Update(dt)
			if !s.buildOut.IsComplete() {
				return NoChange
			}
		}
		s.complete = true
		s.state = Done
		return Completed
	}

	return NoChange
}

// BeginBuildOut moves a building-in or holding slide straight into its
// build-out. It is used when playback skips ahead and does not report an
// outcome, so it never triggers another advance.
func (s *Slide) BeginBuildOut() {
	if s.state != BuildIn && s.state != Hold {
		return
	}
	s.state = BuildOut
	if s.buildOut != nil {
		s.buildOut.Start()
	}
}

// State returns the current lifecycle phase.
func (s *Slide) State() State { return s.state }

// IsComplete reports whether the slide has finished building out.
func (s *Slide) IsComplete() bool { return s.complete }

// Elapsed returns the time since Start.
func (s *Slide) Elapsed() time.Duration { return s.elapsed }

// StartedAt returns the running time passed to the last Start.
func (s *Slide) StartedAt() time.Duration { return s.startedAt }

// ActiveTransition returns the transition of the current phase, or nil.
func (s *Slide) ActiveTransition() transition.Transition {
	switch s.state {
	case BuildIn:
		return s.buildIn
	case BuildOut:
		return s.buildOut
	default:
		return nil
	}
}

// Draw paints the slide centred in canvas, filtered by its active transition.
func (s *Slide) Draw(dst *core.Screen, canvas core.Rect) {
	if s.Media == nil || s.Size.Empty() {
		return
	}
	area := core.CenteredIn(canvas, s.Size)
	tr := s.ActiveTransition()
	if tr != nil {
		tr.Draw(dst, area)
	}
	s.Media.draw(dst, area, s.elapsed, func(x, y int) bool {
		return transition.Visible(tr, x, y, area)
	})
}

// Clone returns an idle copy sharing the media. Transitions are not copied
// since each slide owns its own.
func (s *Slide) Clone() *Slide {
	return &Slide{
		Name:               s.Name,
		Media:              s.Media,
		Duration:           s.Duration,
		TransitionDuration: s.TransitionDuration,
		Transition:         s.Transition,
		SourceSize:         s.SourceSize,
		Size:               s.Size,
		Resize:             s.Resize,
	}
}
