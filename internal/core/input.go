package core

// Action is a playback intent, abstracted from physical key presses.
type Action int

const (
	ActionNone    Action = iota
	ActionNext           // Right, L - advance to the next slide
	ActionPrev           // Left, H - go back one slide
	ActionPause          // Space, P - toggle pause/resume
	ActionRestart        // R - rewind and play from the first slide
	ActionGoto           // 1-9 - jump to a slide (see Input.Slide)
	ActionHelp           // ? - toggle the full help view
	ActionQuit           // Q, Ctrl+C - stop and exit
)

// String returns a human-readable name for the action.
func (a Action) String() string {
	switch a {
	case ActionNone:
		return "None"
	case ActionNext:
		return "Next"
	case ActionPrev:
		return "Prev"
	case ActionPause:
		return "Pause"
	case ActionRestart:
		return "Restart"
	case ActionGoto:
		return "Goto"
	case ActionHelp:
		return "Help"
	case ActionQuit:
		return "Quit"
	default:
		return "Unknown"
	}
}

// Input is a single decoded key press.
type Input struct {
	Action Action
	Slide  int // zero-based target for ActionGoto
}
