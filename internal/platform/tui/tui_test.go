package tui

import (
	"context"
	"image"
	"path/filepath"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-slideshow/internal/core"
	"github.com/vovakirdan/tui-slideshow/internal/show"
	"github.com/vovakirdan/tui-slideshow/internal/slide"
	"github.com/vovakirdan/tui-slideshow/internal/source"
	"github.com/vovakirdan/tui-slideshow/internal/storage"
)

type testClock struct {
	now time.Time
}

func (c *testClock) Now() time.Time { return c.now }

func (c *testClock) Advance(d time.Duration) TickMsg {
	c.now = c.now.Add(d)
	return TickMsg(c.now)
}

func newTestShow(t *testing.T, n int, loop show.LoopType) (*show.Show, *testClock) {
	t.Helper()
	slides := make([]*slide.Slide, n)
	for i := range slides {
		img := image.NewRGBA(image.Rect(0, 0, 4, 2))
		slides[i] = slide.New("slide.png", slide.NewImageMedia(img), core.Size{W: 4, H: 2}, time.Second)
	}

	clock := &testClock{now: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)}
	sh, err := show.New(context.Background(), show.Options{
		Canvas: core.Size{W: 20, H: 8},
		Loop:   loop,
		Resize: slide.Native,
		Clock:  clock.Now,
	}, source.NewStatic(slides), nil, nil)
	if err != nil {
		t.Fatalf("show.New() failed: %v", err)
	}
	return sh, clock
}

func newTestStore(t *testing.T) *storage.Store {
	t.Helper()
	store, err := storage.Open(filepath.Join(t.TempDir(), "history.db"))
	if err != nil {
		t.Fatalf("storage.Open() failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func testConfig() core.RuntimeConfig {
	return core.RuntimeConfig{ScreenW: 40, ScreenH: 10, TickRate: 30}
}

func TestMapKey(t *testing.T) {
	keys := DefaultPlayerKeyMap()

	tests := []struct {
		name string
		msg  tea.KeyMsg
		want core.Input
	}{
		{"space", tea.KeyMsg{Type: tea.KeySpace}, core.Input{Action: core.ActionPause}},
		{"p", tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'p'}}, core.Input{Action: core.ActionPause}},
		{"right", tea.KeyMsg{Type: tea.KeyRight}, core.Input{Action: core.ActionNext}},
		{"l", tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'l'}}, core.Input{Action: core.ActionNext}},
		{"left", tea.KeyMsg{Type: tea.KeyLeft}, core.Input{Action: core.ActionPrev}},
		{"jump 1", tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'1'}}, core.Input{Action: core.ActionGoto, Slide: 0}},
		{"jump 9", tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'9'}}, core.Input{Action: core.ActionGoto, Slide: 8}},
		{"restart", tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'r'}}, core.Input{Action: core.ActionRestart}},
		{"help", tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'?'}}, core.Input{Action: core.ActionHelp}},
		{"q", tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}}, core.Input{Action: core.ActionQuit}},
		{"ctrl+c", tea.KeyMsg{Type: tea.KeyCtrlC}, core.Input{Action: core.ActionQuit}},
		{"unbound", tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'x'}}, core.Input{Action: core.ActionNone}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := keys.MapKey(tt.msg); got != tt.want {
				t.Errorf("MapKey(%q) = %+v, want %+v", tt.msg.String(), got, tt.want)
			}
		})
	}
}

func TestModelRecordsCompletedPlay(t *testing.T) {
	sh, clock := newTestShow(t, 2, show.LoopNone)
	store := newTestStore(t)

	var m tea.Model = NewModel(sh, store, testConfig(), PlayerOptions{
		ShowPath:       "/shows/a",
		Session:        "local",
		ExitOnComplete: true,
	})
	m.Init()

	for i := 0; i < 50 && !m.(Model).quitting; i++ {
		m, _ = m.Update(clock.Advance(100 * time.Millisecond))
	}
	if !m.(Model).quitting {
		t.Fatal("model should quit when the show completes")
	}

	plays, err := store.RecentPlays(10)
	if err != nil {
		t.Fatalf("RecentPlays() failed: %v", err)
	}
	if len(plays) != 1 {
		t.Fatalf("got %d plays, want 1", len(plays))
	}
	p := plays[0]
	if !p.Completed || p.Slides != 2 || p.LoopType != "NONE" || p.Session != "local" {
		t.Errorf("recorded play = %+v", p)
	}
}

func TestModelNextAfterEndStartsNewRun(t *testing.T) {
	sh, clock := newTestShow(t, 2, show.LoopNone)
	store := newTestStore(t)

	var m tea.Model = NewModel(sh, store, testConfig(), PlayerOptions{ShowPath: "/shows/c", Session: "local"})
	m.Init()
	for i := 0; i < 50 && !sh.Finished(); i++ {
		m, _ = m.Update(clock.Advance(100 * time.Millisecond))
	}
	if !strings.Contains(m.View(), "end of show") {
		t.Fatal("finished show should say so")
	}

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyRight})
	if sh.Finished() || strings.Contains(m.View(), "end of show") {
		t.Fatal("next should leave the end of the show")
	}
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeySpace})
	for i := 0; i < 50 && !sh.Finished(); i++ {
		m, _ = m.Update(clock.Advance(100 * time.Millisecond))
	}

	plays, err := store.PlaysForShow("/shows/c", 10)
	if err != nil {
		t.Fatalf("PlaysForShow() failed: %v", err)
	}
	if len(plays) != 2 || !plays[0].Completed || !plays[1].Completed {
		t.Errorf("plays = %+v, want two completed runs", plays)
	}
}

func TestModelQuitSavesBookmark(t *testing.T) {
	sh, clock := newTestShow(t, 3, show.LoopNormal)
	store := newTestStore(t)

	var m tea.Model = NewModel(sh, store, testConfig(), PlayerOptions{ShowPath: "/shows/b", Session: "alice"})
	m.Init()

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'3'}})
	m, _ = m.Update(clock.Advance(50 * time.Millisecond))
	if got := sh.CurrentIndex(); got != 2 {
		t.Fatalf("current after jump = %d, want 2", got)
	}

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}})
	if !m.(Model).quitting {
		t.Fatal("q should quit")
	}
	// A second quit must not record another play.
	m.(Model).finish(false)

	idx, ok, err := store.Bookmark("/shows/b")
	if err != nil || !ok || idx != 2 {
		t.Errorf("Bookmark() = %d, %v, %v; want 2, true, nil", idx, ok, err)
	}
	plays, _ := store.PlaysForShow("/shows/b", 10)
	if len(plays) != 1 || plays[0].Completed || plays[0].Session != "alice" {
		t.Errorf("plays = %+v, want one incomplete play by alice", plays)
	}
}

func TestModelPauseKey(t *testing.T) {
	sh, clock := newTestShow(t, 2, show.LoopNormal)

	var m tea.Model = NewModel(sh, nil, testConfig(), PlayerOptions{})
	m.Init()
	m, _ = m.Update(clock.Advance(200 * time.Millisecond))

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeySpace})
	if sh.Playing() {
		t.Fatal("space should pause")
	}
	before := sh.RunningTime()
	m, _ = m.Update(clock.Advance(time.Second))
	if sh.RunningTime() != before {
		t.Error("running time advanced while paused")
	}

	m.Update(tea.KeyMsg{Type: tea.KeySpace})
	if !sh.Playing() {
		t.Error("space should resume")
	}
}

func TestModelView(t *testing.T) {
	sh, clock := newTestShow(t, 2, show.LoopNone)

	var m tea.Model = NewModel(sh, nil, testConfig(), PlayerOptions{})
	m.Init()
	m, _ = m.Update(clock.Advance(100 * time.Millisecond))

	view := m.View()
	if !strings.Contains(view, "1/2") {
		t.Errorf("status line missing slide position:\n%s", view)
	}
	if got := strings.Count(view, "\n") + 1; got != testConfig().ScreenH {
		t.Errorf("view has %d lines, want %d", got, testConfig().ScreenH)
	}

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'?'}})
	if withHelp := m.View(); strings.Count(withHelp, "\n")+1 != testConfig().ScreenH {
		t.Errorf("view with help should keep the screen height")
	}
}

func TestFormatElapsed(t *testing.T) {
	tests := []struct {
		d    time.Duration
		want string
	}{
		{0, "00:00"},
		{59 * time.Second, "00:59"},
		{61*time.Second + 900*time.Millisecond, "01:01"},
		{75 * time.Minute, "75:00"},
	}
	for _, tt := range tests {
		if got := FormatElapsed(tt.d); got != tt.want {
			t.Errorf("FormatElapsed(%v) = %q, want %q", tt.d, got, tt.want)
		}
	}
}

func TestHistoryModel(t *testing.T) {
	store := newTestStore(t)
	store.SavePlay(storage.Play{ShowPath: "/shows/old", LoopType: "NONE", Completed: true})
	store.SavePlay(storage.Play{ShowPath: "/shows/new", LoopType: "NORMAL", Loops: 2})
	store.SavePlay(storage.Play{ShowPath: "/shows/new", LoopType: "NORMAL", Loops: 1})

	m := NewHistoryModel(store, 100, 30)
	if len(m.shows) != 2 {
		t.Fatalf("got %d shows, want 2", len(m.shows))
	}
	first := m.current().ShowPath
	if len(m.plays) == 0 {
		t.Fatal("plays of the first show should be loaded")
	}

	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyTab})
	hm := next.(HistoryModel)
	if hm.current().ShowPath == first {
		t.Error("tab should select the other show")
	}

	if view := hm.View(); !strings.Contains(view, "PLAY HISTORY") {
		t.Errorf("view missing title:\n%s", view)
	}

	quit, _ := hm.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}})
	if !quit.(HistoryModel).quitting {
		t.Error("q should quit")
	}
}

func TestHistoryModelWithoutStore(t *testing.T) {
	m := NewHistoryModel(nil, 60, 20)
	if view := m.View(); !strings.Contains(view, "No plays recorded yet") {
		t.Errorf("empty history view:\n%s", view)
	}
}
