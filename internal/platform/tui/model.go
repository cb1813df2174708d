package tui

import (
	"io"
	"time"

	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-slideshow/internal/core"
	"github.com/vovakirdan/tui-slideshow/internal/show"
	"github.com/vovakirdan/tui-slideshow/internal/storage"
)

// PlayerOptions configures a player model.
type PlayerOptions struct {
	ShowPath       string // key for history and bookmarks
	Session        string // "local" or the SSH user
	ExitOnComplete bool
	Logger         *log.Logger
}

// Model is the Bubble Tea model that plays a show.
type Model struct {
	show     *show.Show
	screen   *core.Screen
	store    *storage.Store
	config   core.RuntimeConfig
	opts     PlayerOptions
	keys     PlayerKeyMap
	help     help.Model
	logger   *log.Logger
	quitting bool
	recorded *bool // shared so value copies record the play once
}

// NewModel creates a new Bubble Tea model for the given show.
// store may be nil to disable history.
func NewModel(sh *show.Show, store *storage.Store, cfg core.RuntimeConfig, opts PlayerOptions) Model {
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}
	h := help.New()
	h.Width = cfg.ScreenW

	return Model{
		show:     sh,
		screen:   core.NewScreen(cfg.ScreenW, canvasHeight(cfg.ScreenH)),
		store:    store,
		config:   cfg,
		opts:     opts,
		keys:     DefaultPlayerKeyMap(),
		help:     h,
		logger:   logger,
		recorded: new(bool),
	}
}

// canvasHeight leaves one row for the status bar.
func canvasHeight(screenH int) int {
	return max(screenH-1, 1)
}

// Init starts the show and the tick loop.
func (m Model) Init() tea.Cmd {
	m.show.Play()
	return tickCmd(m.config.TickRate)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		return m.handleResize(msg)

	case TickMsg:
		return m.handleTick(time.Time(msg))
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	in := m.keys.MapKey(msg)

	finished := m.show.Finished()

	switch in.Action {
	case core.ActionQuit:
		m.finish(false)
		m.quitting = true
		return m, tea.Quit
	case core.ActionPause:
		m.show.TogglePause()
	case core.ActionNext:
		m.show.PlayNext()
	case core.ActionPrev:
		m.show.PlayPrev()
	case core.ActionGoto:
		m.show.PlaySlide(in.Slide)
	case core.ActionRestart:
		*m.recorded = false
		m.show.Restart()
	case core.ActionHelp:
		m.help.ShowAll = !m.help.ShowAll
	}

	// Navigating out of a finished show starts a new run to record.
	if finished && !m.show.Finished() {
		*m.recorded = false
	}

	return m, nil
}

// handleResize processes window resize events.
// The show canvas keeps its size and is re-centred.
func (m Model) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.config.ScreenW = msg.Width
	m.config.ScreenH = msg.Height
	m.screen.Resize(msg.Width, canvasHeight(msg.Height))
	m.help.Width = msg.Width
	return m, nil
}

// handleTick advances the show by one frame.
func (m Model) handleTick(now time.Time) (tea.Model, tea.Cmd) {
	res := m.show.Tick(now)

	for _, ev := range res.Events {
		switch ev.Type {
		case show.SlideshowWillLoop:
			m.logger.Debug("show looping", "loop", m.show.LoopCount()+1)
		case show.SlideshowComplete:
			m.finish(true)
			if m.opts.ExitOnComplete {
				m.quitting = true
				return m, tea.Quit
			}
		}
	}

	// Continue ticking
	return m, tickCmd(m.config.TickRate)
}

// finish records the play once and remembers the current slide.
func (m Model) finish(completed bool) {
	if m.store == nil {
		return
	}

	if idx := m.show.CurrentIndex(); idx >= 0 && !completed {
		if err := m.store.SaveBookmark(m.opts.ShowPath, idx); err != nil {
			m.logger.Warn("could not save bookmark", "error", err)
		}
	}

	if *m.recorded {
		return
	}
	*m.recorded = true

	_, err := m.store.SavePlay(storage.Play{
		ShowPath:  m.opts.ShowPath,
		Session:   m.opts.Session,
		Slides:    m.show.Len(),
		LoopType:  m.show.Options().Loop.String(),
		Loops:     m.show.LoopCount(),
		Completed: completed,
		Elapsed:   m.show.RunningTime(),
	})
	if err != nil {
		m.logger.Warn("could not save play", "error", err)
	}
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	footer := m.statusLine()
	if m.help.ShowAll {
		footer += "\n" + helpStyle.Render(m.help.View(m.keys))
	}
	if rows := max(m.config.ScreenH-lipgloss.Height(footer), 1); rows != m.screen.Height() {
		m.screen.Resize(m.screen.Width(), rows)
	}

	m.show.Draw(m.screen)
	if m.show.Finished() {
		m.screen.DrawTextCentered(m.screen.Height()/2, "end of show · r to replay · q to quit", core.ColorGray)
	}

	return RenderScreen(m.screen) + "\n" + footer
}

// Show returns the show being played.
func (m Model) Show() *show.Show {
	return m.show
}

// Run starts the Bubble Tea program with the given show.
func Run(sh *show.Show, store *storage.Store, cfg core.RuntimeConfig, opts PlayerOptions) error {
	model := NewModel(sh, store, cfg, opts)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(), // Use alternate screen buffer
	)

	_, err := p.Run()
	return err
}
