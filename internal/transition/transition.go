// Package transition provides build-in and build-out effects for slides.
//
// The sequencing engine treats a Transition as a black box: it is started,
// fed elapsed time and asked whether it has completed. Drawing code additionally
// asks how much of a slide is visible at a given cell.
package transition

import (
	"time"

	"github.com/vovakirdan/tui-slideshow/internal/core"
)

// Direction tells a transition whether it reveals or hides its slide.
type Direction int

const (
	In  Direction = iota // build-in: slide goes from hidden to visible
	Out                  // build-out: slide goes from visible to hidden
)

// String returns the direction name.
func (d Direction) String() string {
	if d == Out {
		return "out"
	}
	return "in"
}

// Transition is a timed effect owned by a single slide.
type Transition interface {
	// Start rewinds the transition to its beginning.
	Start()

	// Update advances the transition by dt.
	Update(dt time.Duration)

	// IsComplete reports whether the full duration has elapsed.
	IsComplete() bool

	// Progress returns the elapsed fraction in [0, 1].
	Progress() float64

	// Coverage returns how visible the slide is at cell (x, y) of area,
	// in [0, 1]. Drawing dithers fractional values.
	Coverage(x, y int, area core.Rect) float64

	// Draw paints any overlay the transition owns. It is called before the
	// slide itself is drawn.
	Draw(dst *core.Screen, area core.Rect)
}

// timer is the shared clock embedded by every built-in transition.
type timer struct {
	dir      Direction
	duration time.Duration
	elapsed  time.Duration
}

func (t *timer) Start() {
	t.elapsed = 0
}

func (t *timer) Update(dt time.Duration) {
	if dt <= 0 {
		return
	}
	t.elapsed += dt
	if t.elapsed > t.duration {
		t.elapsed = t.duration
	}
}

func (t *timer) IsComplete() bool {
	return t.elapsed >= t.duration
}

func (t *timer) Progress() float64 {
	if t.duration <= 0 {
		return 1
	}
	return core.ClampF(float64(t.elapsed)/float64(t.duration), 0, 1)
}

// visibility maps progress onto how much of the slide is shown.
func (t *timer) visibility() float64 {
	p := t.Progress()
	if t.dir == Out {
		return 1 - p
	}
	return p
}

func (t *timer) Draw(*core.Screen, core.Rect) {}

// bayer4 is a 4x4 ordered-dither threshold matrix.
var bayer4 = [4][4]float64{
	{0, 8, 2, 10},
	{12, 4, 14, 6},
	{3, 11, 1, 9},
	{15, 7, 13, 5},
}

// Visible reports whether a slide cell should be drawn given the coverage of
// its active transition. A nil transition leaves every cell visible.
func Visible(t Transition, x, y int, area core.Rect) bool {
	if t == nil {
		return true
	}
	c := t.Coverage(x, y, area)
	if c >= 1 {
		return true
	}
	if c <= 0 {
		return false
	}
	threshold := (bayer4[y&3][x&3] + 0.5) / 16
	return c > threshold
}
