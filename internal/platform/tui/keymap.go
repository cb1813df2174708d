package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-slideshow/internal/core"
)

// PlayerKeyMap defines the key bindings of the player.
type PlayerKeyMap struct {
	Pause   key.Binding
	Next    key.Binding
	Prev    key.Binding
	Jump    key.Binding
	Restart key.Binding
	Help    key.Binding
	Quit    key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k PlayerKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Pause, k.Prev, k.Next, k.Help, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k PlayerKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Pause, k.Prev, k.Next},
		{k.Jump, k.Restart},
		{k.Help, k.Quit},
	}
}

// DefaultPlayerKeyMap returns default key bindings.
func DefaultPlayerKeyMap() PlayerKeyMap {
	return PlayerKeyMap{
		Pause: key.NewBinding(
			key.WithKeys(" ", "p"),
			key.WithHelp("space", "pause/resume"),
		),
		Next: key.NewBinding(
			key.WithKeys("right", "l"),
			key.WithHelp("→/l", "next"),
		),
		Prev: key.NewBinding(
			key.WithKeys("left", "h"),
			key.WithHelp("←/h", "previous"),
		),
		Jump: key.NewBinding(
			key.WithKeys("1", "2", "3", "4", "5", "6", "7", "8", "9"),
			key.WithHelp("1-9", "jump to slide"),
		),
		Restart: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "restart"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// MapKey translates a key message to a player input.
// Unbound keys map to ActionNone.
func (k PlayerKeyMap) MapKey(msg tea.KeyMsg) core.Input {
	switch {
	case key.Matches(msg, k.Quit):
		return core.Input{Action: core.ActionQuit}
	case key.Matches(msg, k.Pause):
		return core.Input{Action: core.ActionPause}
	case key.Matches(msg, k.Next):
		return core.Input{Action: core.ActionNext}
	case key.Matches(msg, k.Prev):
		return core.Input{Action: core.ActionPrev}
	case key.Matches(msg, k.Jump):
		return core.Input{Action: core.ActionGoto, Slide: int(msg.String()[0] - '1')}
	case key.Matches(msg, k.Restart):
		return core.Input{Action: core.ActionRestart}
	case key.Matches(msg, k.Help):
		return core.Input{Action: core.ActionHelp}
	}
	return core.Input{Action: core.ActionNone}
}
