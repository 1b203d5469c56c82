package core

// Action represents a semantic game command, abstracted from physical key presses.
// This allows the engine to work with intents rather than raw input.
type Action int

const (
	ActionNone     Action = iota
	ActionLeft            // a - move left one column
	ActionRight           // d - move right one column
	ActionDown            // s - soft drop one row
	ActionRotate          // w - rotate the active piece
	ActionHardDrop        // space - drop and lock immediately
	ActionPause           // p - toggle pause
	ActionRestart         // r - restart with a fresh board
	ActionQuit            // x - exit
)

// String returns a human-readable name for the action.
func (a Action) String() string {
	switch a {
	case ActionNone:
		return "None"
	case ActionLeft:
		return "Left"
	case ActionRight:
		return "Right"
	case ActionDown:
		return "Down"
	case ActionRotate:
		return "Rotate"
	case ActionHardDrop:
		return "HardDrop"
	case ActionPause:
		return "Pause"
	case ActionRestart:
		return "Restart"
	case ActionQuit:
		return "Quit"
	default:
		return "Unknown"
	}
}

// ActionForKey maps a single key character to its action.
// Keys are case-sensitive; anything unrecognised is ActionNone.
func ActionForKey(r rune) Action {
	switch r {
	case 'a':
		return ActionLeft
	case 'd':
		return ActionRight
	case 's':
		return ActionDown
	case 'w':
		return ActionRotate
	case ' ':
		return ActionHardDrop
	case 'p':
		return ActionPause
	case 'r':
		return ActionRestart
	case 'x':
		return ActionQuit
	}
	return ActionNone
}

// InputFrame holds the command consumed during one simulation tick.
// At most one action is kept: setting a new one replaces whatever was queued,
// so only the most recent key between two ticks is honored.
type InputFrame struct {
	action Action
}

// NewInputFrame creates an empty input frame.
func NewInputFrame() InputFrame {
	return InputFrame{}
}

// Set queues an action for this frame, replacing any earlier one.
// ActionNone does not clear a queued action.
func (f *InputFrame) Set(a Action) {
	if a == ActionNone {
		return
	}
	f.action = a
}

// Action returns the queued action, or ActionNone.
func (f InputFrame) Action() Action {
	return f.action
}

// Clear resets the frame for the next tick.
func (f *InputFrame) Clear() {
	f.action = ActionNone
}
