package slide

import (
	"image"
	"image/color"
	"testing"
	"time"

	"github.com/vovakirdan/tui-slideshow/internal/core"
	"github.com/vovakirdan/tui-slideshow/internal/transition"
)

func newTestSlide(duration, transDur time.Duration, withTransitions bool) *Slide {
	img := image.NewRGBA(image.Rect(0, 0, 4, 2))
	s := New("test", NewImageMedia(img), core.Size{W: 4, H: 2}, duration)
	s.TransitionDuration = transDur
	if withTransitions {
		s.SetTransitions(transition.NewFade(transition.In, transDur), transition.NewFade(transition.Out, transDur))
	}
	return s
}

func TestSlideLifecycle(t *testing.T) {
	s := newTestSlide(5*time.Second, time.Second, true)
	if s.State() != Idle {
		t.Fatalf("new slide state = %v, want idle", s.State())
	}

	s.Start(0)
	if s.State() != BuildIn {
		t.Fatalf("after Start state = %v, want build-in", s.State())
	}

	if out := s.Update(time.Second); out != NoChange {
		t.Errorf("build-in completion outcome = %v, want no-change", out)
	}
	if s.State() != Hold {
		t.Fatalf("after build-in state = %v, want hold", s.State())
	}

	// Hold lasts Duration - TransitionDuration.
	if out := s.Update(3900 * time.Millisecond); out != NoChange {
		t.Errorf("early hold outcome = %v", out)
	}
	if out := s.Update(100 * time.Millisecond); out != EnteredBuildOut {
		t.Fatalf("hold end outcome = %v, want entered-build-out", out)
	}
	if s.State() != BuildOut {
		t.Fatalf("state = %v, want build-out", s.State())
	}
	if s.ActiveTransition() == nil {
		t.Error("build-out should expose its transition")
	}

	if out := s.Update(500 * time.Millisecond); out != NoChange {
		t.Errorf("mid build-out outcome = %v", out)
	}
	if out := s.Update(500 * time.Millisecond); out != Completed {
		t.Fatalf("build-out end outcome = %v, want completed", out)
	}
	if !s.IsComplete() || s.State() != Done {
		t.Error("slide should be done")
	}

	if out := s.Update(time.Second); out != NoChange {
		t.Errorf("done slide outcome = %v, want no-change", out)
	}
}

func TestSlideWithoutTransitions(t *testing.T) {
	s := newTestSlide(2*time.Second, time.Second, false)
	s.Start(0)

	if s.State() != Hold {
		t.Fatalf("state = %v, want hold", s.State())
	}
	if s.ActiveTransition() != nil {
		t.Error("hold should have no active transition")
	}

	// Without a build-out transition the full duration is held.
	if out := s.Update(1500 * time.Millisecond); out != NoChange {
		t.Errorf("outcome = %v, want no-change", out)
	}
	if out := s.Update(500 * time.Millisecond); out != EnteredBuildOut {
		t.Fatalf("outcome = %v, want entered-build-out", out)
	}
	if out := s.Update(0); out != Completed {
		t.Errorf("missing build-out should complete on next update, got %v", out)
	}
}

func TestHoldTimeClampsAtZero(t *testing.T) {
	s := newTestSlide(time.Second, 3*time.Second, false)
	s.SetTransitions(nil, transition.NewCut(transition.Out, 3*time.Second))
	s.Start(0)

	if out := s.Update(0); out != EnteredBuildOut {
		t.Errorf("outcome = %v, want entered-build-out", out)
	}
}

func TestSlideRestart(t *testing.T) {
	s := newTestSlide(time.Second, 0, false)
	s.Start(0)
	s.Update(time.Second)
	s.Update(0)
	if !s.IsComplete() {
		t.Fatal("slide should be complete")
	}

	s.Start(5 * time.Second)
	if s.IsComplete() || s.State() != Hold || s.Elapsed() != 0 {
		t.Error("Start() should reset a finished slide")
	}
	if s.StartedAt() != 5*time.Second {
		t.Errorf("StartedAt() = %v", s.StartedAt())
	}
}

func TestResolveSize(t *testing.T) {
	s := newTestSlide(time.Second, 0, false)
	s.SourceSize = core.Size{W: 200, H: 100}

	if err := s.ResolveSize(core.Size{W: 100, H: 100}, FitProportionally); err != nil {
		t.Fatalf("ResolveSize() failed: %v", err)
	}
	if s.Size != (core.Size{W: 100, H: 50}) {
		t.Errorf("Size = %v", s.Size)
	}

	s.Resize = Native
	if err := s.ResolveSize(core.Size{W: 100, H: 100}, FitProportionally); err != nil {
		t.Fatalf("ResolveSize() failed: %v", err)
	}
	if s.Size != (core.Size{W: 200, H: 100}) {
		t.Errorf("slide option should win, Size = %v", s.Size)
	}
}

func TestSlideDrawCentred(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 4, 2))
	for y := 0; y < 2; y++ {
		for x := 0; x < 4; x++ {
			img.Set(x, y, color.RGBA{R: 255, G: 255, B: 255, A: 255})
		}
	}
	s := New("white", NewImageMedia(img), core.Size{W: 4, H: 2}, time.Second)
	s.Size = core.Size{W: 4, H: 2}
	s.Start(0)

	scr := core.NewScreen(10, 6)
	s.Draw(scr, scr.Bounds())

	// Centred at x=3..6, y=2..3.
	if got := scr.GetCell(3, 2); got.Rune != '@' || got.Color != core.ColorBrightWhite {
		t.Errorf("cell (3,2) = %+v, want bright white '@'", got)
	}
	if got := scr.Get(2, 2); got != ' ' {
		t.Errorf("cell (2,2) = %q, want blank", got)
	}
	if got := scr.Get(7, 3); got != ' ' {
		t.Errorf("cell (7,3) = %q, want blank", got)
	}
}

func TestSlideDrawHiddenDuringBuildIn(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 4, 2))
	for i := range img.Pix {
		img.Pix[i] = 255
	}
	s := New("white", NewImageMedia(img), core.Size{W: 4, H: 2}, time.Second)
	s.Size = core.Size{W: 4, H: 2}
	s.SetTransitions(transition.NewFade(transition.In, time.Second), nil)
	s.Start(0)

	scr := core.NewScreen(4, 2)
	s.Draw(scr, scr.Bounds())
	if got := scr.Row(0); got != "    " {
		t.Errorf("row 0 = %q, want blank at build-in start", got)
	}
}

func TestVideoDraw(t *testing.T) {
	v := &VideoMedia{Path: "/tmp/clip.mp4", Length: 10 * time.Second}
	s := New("clip.mp4", v, core.Size{W: 20, H: 7}, 10*time.Second)
	s.Size = core.Size{W: 20, H: 7}
	s.Start(0)
	s.Update(5 * time.Second)

	scr := core.NewScreen(20, 7)
	s.Draw(scr, scr.Bounds())

	if got := scr.Get(0, 0); got != '┌' {
		t.Errorf("corner = %q, want '┌'", got)
	}
	if got := scr.Row(4); got != "│  00:05 / 00:10   │" {
		t.Errorf("clock row = %q", got)
	}
}

func TestClone(t *testing.T) {
	s := newTestSlide(time.Second, time.Second, true)
	s.Resize = Fit
	s.Start(0)

	c := s.Clone()
	if c.State() != Idle || c.HasTransitions() {
		t.Error("clone should be idle without transitions")
	}
	if c.Media != s.Media || c.Resize != Fit || c.Duration != s.Duration {
		t.Error("clone should keep media and settings")
	}
}
