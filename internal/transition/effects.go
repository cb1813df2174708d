package transition

import (
	"time"

	"github.com/vovakirdan/tui-slideshow/internal/core"
)

// Fade reveals or hides the whole slide uniformly.
type Fade struct {
	timer
}

// NewFade creates a fade of the given duration.
func NewFade(dir Direction, d time.Duration) *Fade {
	return &Fade{timer{dir: dir, duration: d}}
}

// Coverage is the same for every cell.
func (f *Fade) Coverage(_, _ int, _ core.Rect) float64 {
	return f.visibility()
}

// Wipe sweeps the slide in from the left and out to the right.
type Wipe struct {
	timer
}

// NewWipe creates a wipe of the given duration.
func NewWipe(dir Direction, d time.Duration) *Wipe {
	return &Wipe{timer{dir: dir, duration: d}}
}

// edge returns the column offset of the wipe front within area.
func (w *Wipe) edge(area core.Rect) int {
	return int(w.Progress() * float64(area.W))
}

// Coverage is 1 on the revealed side of the wipe front and 0 elsewhere.
func (w *Wipe) Coverage(x, _ int, area core.Rect) float64 {
	col := x - area.X
	front := w.edge(area)
	if w.dir == In {
		if col < front {
			return 1
		}
		return 0
	}
	if col < front {
		return 0
	}
	return 1
}

// Draw paints the wipe front while the transition runs.
func (w *Wipe) Draw(dst *core.Screen, area core.Rect) {
	if w.IsComplete() || w.elapsed == 0 {
		return
	}
	x := area.X + w.edge(area)
	if w.dir == Out {
		x--
	}
	if x < area.X || x >= area.Right() {
		return
	}
	for y := area.Y; y < area.Bottom(); y++ {
		dst.SetCell(x, y, core.Cell{Rune: '▐', Color: core.ColorGray})
	}
}

// Dissolve reveals cells in a scattered, deterministic order.
type Dissolve struct {
	timer
}

// NewDissolve creates a dissolve of the given duration.
func NewDissolve(dir Direction, d time.Duration) *Dissolve {
	return &Dissolve{timer{dir: dir, duration: d}}
}

// Coverage is 1 once the visibility passes the cell's hashed threshold.
func (d *Dissolve) Coverage(x, y int, area core.Rect) float64 {
	if d.visibility() > cellHash(x-area.X, y-area.Y) {
		return 1
	}
	return 0
}

// cellHash maps a cell position to a stable value in [0, 1).
func cellHash(x, y int) float64 {
	h := uint32(x)*73856093 ^ uint32(y)*19349663
	h ^= h >> 13
	h *= 0x5bd1e995
	h ^= h >> 15
	return float64(h%1024) / 1024
}

// Cut shows or hides the slide instantly once its duration has elapsed.
type Cut struct {
	timer
}

// NewCut creates a cut of the given duration.
func NewCut(dir Direction, d time.Duration) *Cut {
	return &Cut{timer{dir: dir, duration: d}}
}

// Coverage flips between 0 and 1 at completion.
func (c *Cut) Coverage(_, _ int, _ core.Rect) float64 {
	if c.dir == In {
		if c.IsComplete() {
			return 1
		}
		return 0
	}
	if c.IsComplete() {
		return 0
	}
	return 1
}
