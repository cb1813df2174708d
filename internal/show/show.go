// Package show runs a slideshow: it owns the slides, decides which ones are on
// stage and feeds them elapsed time each frame.
//
// A Show is single-threaded. The caller drives it with Tick from one
// goroutine, typically a Bubble Tea update loop.
package show

import (
	"context"
	"errors"
	"fmt"
	"io"
	"slices"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-slideshow/internal/core"
	"github.com/vovakirdan/tui-slideshow/internal/slide"
	"github.com/vovakirdan/tui-slideshow/internal/source"
	"github.com/vovakirdan/tui-slideshow/internal/transition"
)

// ErrInvalidOptions is returned by New when Options cannot describe a show.
var ErrInvalidOptions = errors.New("show: invalid options")

// Source supplies the slides of a show.
type Source interface {
	Slides(ctx context.Context) ([]*slide.Slide, error)
}

// TransitionFactory creates transitions by name.
type TransitionFactory interface {
	Create(name string, dir transition.Direction, d time.Duration) (transition.Transition, error)
}

// Options configures a Show.
type Options struct {
	Canvas core.Size

	Loop     LoopType
	NumLoops int // 0 loops forever

	Resize slide.ResizeOption

	// TransitionName is used for slides that do not name their own.
	// Empty disables transitions.
	TransitionName     string
	TransitionDuration time.Duration

	// OnEvent, when set, receives every event as it happens.
	OnEvent func(Event)

	// Clock returns the current time. Defaults to time.Now.
	Clock func() time.Time
}

// EventType identifies a show event.
type EventType int

const (
	SlideshowComplete EventType = iota
	SlideshowWillLoop
)

// String returns the event name.
func (e EventType) String() string {
	switch e {
	case SlideshowComplete:
		return "complete"
	case SlideshowWillLoop:
		return "will-loop"
	default:
		return fmt.Sprintf("EventType(%d)", int(e))
	}
}

// Event is emitted by a Show.
type Event struct {
	Type EventType
	Show *Show
}

// TickResult summarises one Tick.
type TickResult struct {
	Events  []Event
	Playing bool
}

// Show is the playback facade over a sequencer.
type Show struct {
	opts   Options
	seq    *sequencer
	logger *log.Logger

	playing     bool
	finished    bool
	runningTime time.Duration
	lastTick    time.Time
	pending     []Event
}

// New builds a show from src. Slides whose size cannot be resolved are
// logged and dropped; a missing transition is logged and the slide plays
// without one. tf may be nil to disable transitions.
func New(ctx context.Context, opts Options, src Source, tf TransitionFactory, logger *log.Logger) (*Show, error) {
	if opts.Canvas.Empty() {
		return nil, fmt.Errorf("%w: canvas %dx%d", ErrInvalidOptions, opts.Canvas.W, opts.Canvas.H)
	}
	if opts.NumLoops < 0 {
		return nil, fmt.Errorf("%w: negative loop count %d", ErrInvalidOptions, opts.NumLoops)
	}
	if opts.Clock == nil {
		opts.Clock = time.Now
	}
	if logger == nil {
		logger = log.New(io.Discard)
	}

	all, err := src.Slides(ctx)
	if err != nil {
		return nil, fmt.Errorf("show: load slides: %w", err)
	}

	slides := make([]*slide.Slide, 0, len(all))
	for _, s := range all {
		if err := s.ResolveSize(opts.Canvas, opts.Resize); err != nil {
			logger.Warn("rejecting slide", "slide", s.Name, "error", err)
			continue
		}
		attachTransitions(s, opts, tf, logger)
		slides = append(slides, s)
	}
	if len(slides) == 0 {
		return nil, source.ErrEmptySource
	}

	logger.Debug("show ready", "slides", len(slides), "loop", opts.Loop, "loops", opts.NumLoops)

	return &Show{
		opts:   opts,
		seq:    newSequencer(slides, opts.Loop, opts.NumLoops),
		logger: logger,
	}, nil
}

func attachTransitions(s *slide.Slide, opts Options, tf TransitionFactory, logger *log.Logger) {
	name := s.Transition
	if name == "" {
		name = opts.TransitionName
	}
	if name == "" || tf == nil {
		return
	}
	if s.TransitionDuration <= 0 {
		s.TransitionDuration = opts.TransitionDuration
	}

	in, err := tf.Create(name, transition.In, s.TransitionDuration)
	if err != nil {
		logger.Warn("slide plays without transitions", "slide", s.Name, "error", err)
		return
	}
	out, err := tf.Create(name, transition.Out, s.TransitionDuration)
	if err != nil {
		logger.Warn("slide plays without transitions", "slide", s.Name, "error", err)
		return
	}
	s.SetTransitions(in, out)
}

// Play starts or resumes playback. A finished show starts again from the
// first slide.
func (s *Show) Play() {
	if s.playing {
		return
	}
	now := s.opts.Clock()

	if len(s.seq.active) > 0 {
		s.playing = true
		s.lastTick = now
		return
	}

	if s.finished {
		s.seq.rewind()
		s.finished = false
	}
	s.seq.index = core.Clamp(s.seq.index, 0, len(s.seq.slides)-1)
	s.runningTime = 0
	s.lastTick = now
	s.playing = true
	s.seq.enqueue(s.seq.index, s.runningTime)
}

// Pause stops time for the active slides. They keep their state.
func (s *Show) Pause() {
	s.playing = false
}

// TogglePause pauses a playing show and plays any other.
func (s *Show) TogglePause() {
	if s.playing {
		s.Pause()
		return
	}
	s.Play()
}

// Restart drops the active slides and plays from the first slide.
func (s *Show) Restart() {
	s.seq.active = nil
	s.seq.rewind()
	s.finished = false
	s.playing = false
	s.Play()
}

// Tick advances playback to now.
func (s *Show) Tick(now time.Time) TickResult {
	if !s.playing {
		return TickResult{Events: s.drain()}
	}

	dt := now.Sub(s.lastTick)
	if dt < 0 {
		dt = 0
	}
	s.lastTick = now
	s.runningTime += dt

	for _, sl := range slices.Clone(s.seq.active) {
		if sl.Update(dt) == slide.EnteredBuildOut {
			s.advance()
		}
	}
	s.seq.purge()

	if len(s.seq.active) == 0 {
		s.playing = false
		s.finished = true
		s.logger.Debug("show complete", "loops", s.seq.loopCount, "elapsed", s.runningTime)
		s.emit(SlideshowComplete)
	}

	return TickResult{Events: s.drain(), Playing: s.playing}
}

func (s *Show) advance() {
	if s.seq.advance(s.runningTime) {
		s.logger.Debug("show will loop", "loop", s.seq.loopCount, "index", s.seq.index)
		s.emit(SlideshowWillLoop)
	}
}

// skip sends the active slides out and advances once.
func (s *Show) skip() {
	s.seq.buildOutActive()
	s.advance()
}

// reopen rewinds a finished show so navigation starts a fresh run.
// It reports whether the show had finished.
func (s *Show) reopen() bool {
	if !s.finished {
		return false
	}
	s.seq.rewind()
	s.finished = false
	s.runningTime = 0
	return true
}

// PlayNext moves to the next slide in the current direction. On a finished
// show it moves to the first slide.
func (s *Show) PlayNext() {
	if s.reopen() {
		s.seq.index = -s.seq.direction
	}
	s.skip()
}

// PlayPrev moves to the previous slide in the current direction. On a
// finished show it moves to the last slide.
func (s *Show) PlayPrev() {
	if s.reopen() {
		s.PlaySlide(len(s.seq.slides) - 1)
		return
	}
	s.seq.index -= 2 * s.seq.direction
	s.skip()
}

// PlaySlide jumps to slide i. Out-of-range indexes are ignored.
func (s *Show) PlaySlide(i int) {
	if i < 0 || i >= len(s.seq.slides) {
		s.logger.Debug("ignoring jump", "index", i, "slides", len(s.seq.slides))
		return
	}
	s.reopen()
	s.seq.index = i - s.seq.direction
	s.skip()
}

// Seek sets the slide the next Play starts from. It only applies while no
// slide is on screen; use PlaySlide during playback.
func (s *Show) Seek(i int) bool {
	if len(s.seq.active) > 0 || i < 0 || i >= len(s.seq.slides) {
		return false
	}
	if s.finished {
		s.seq.rewind()
		s.finished = false
	}
	s.seq.index = i
	return true
}

func (s *Show) emit(t EventType) {
	ev := Event{Type: t, Show: s}
	s.pending = append(s.pending, ev)
	if s.opts.OnEvent != nil {
		s.opts.OnEvent(ev)
	}
}

func (s *Show) drain() []Event {
	ev := s.pending
	s.pending = nil
	return ev
}

// Draw clears dst and paints every active slide centred in the canvas, which
// is itself centred in dst.
func (s *Show) Draw(dst *core.Screen) {
	dst.Clear()
	canvas := core.CenteredIn(dst.Bounds(), s.opts.Canvas)
	for _, a := range s.seq.active {
		a.Draw(dst, canvas)
	}
}

// Playing reports whether time is running.
func (s *Show) Playing() bool { return s.playing }

// Finished reports whether the show ran to completion.
func (s *Show) Finished() bool { return s.finished }

// Index returns the sequencer index. It may be out of range once the show
// has stopped.
func (s *Show) Index() int { return s.seq.index }

// Direction returns +1 going forwards and -1 going backwards.
func (s *Show) Direction() int { return s.seq.direction }

// LoopCount returns the number of completed loops.
func (s *Show) LoopCount() int { return s.seq.loopCount }

// Len returns the number of slides.
func (s *Show) Len() int { return len(s.seq.slides) }

// RunningTime returns the playing time since Play.
func (s *Show) RunningTime() time.Duration { return s.runningTime }

// Options returns the options the show was built with.
func (s *Show) Options() Options { return s.opts }

// Slides returns the slides in sequence order.
func (s *Show) Slides() []*slide.Slide { return slices.Clone(s.seq.slides) }

// Active returns the slides on stage in the order they were enqueued.
func (s *Show) Active() []*slide.Slide { return slices.Clone(s.seq.active) }

// Current returns the most recently enqueued active slide, or nil.
func (s *Show) Current() *slide.Slide {
	if len(s.seq.active) == 0 {
		return nil
	}
	return s.seq.active[len(s.seq.active)-1]
}

// CurrentIndex returns the position of Current in the slide list, or -1.
func (s *Show) CurrentIndex() int {
	cur := s.Current()
	if cur == nil {
		return -1
	}
	return slices.Index(s.seq.slides, cur)
}
