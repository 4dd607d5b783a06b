package core

// Action represents a semantic game action, abstracted from physical key presses.
// This allows games to work with high-level intents rather than raw input.
type Action int

const (
	ActionNone     Action = iota
	ActionLeft            // A, Left arrow - shift block left
	ActionRight           // D, Right arrow - shift block right
	ActionSoftDrop        // S, Down arrow - one immediate fall step
	ActionHardDrop        // Space - drop until lock
	ActionConfirm         // Enter - confirm selection in menu
	ActionBack            // B, Escape - go back to menu
	ActionRestart         // R key - restart game after game over
	ActionQuit            // Q, Ctrl+C - exit game/session
	ActionPause           // P - pause/unpause game
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
	case ActionSoftDrop:
		return "SoftDrop"
	case ActionHardDrop:
		return "HardDrop"
	case ActionConfirm:
		return "Confirm"
	case ActionBack:
		return "Back"
	case ActionRestart:
		return "Restart"
	case ActionQuit:
		return "Quit"
	case ActionPause:
		return "Pause"
	default:
		return "Unknown"
	}
}

// InputFrame represents the input state during one host frame.
// It contains all actions that were triggered during this frame.
type InputFrame struct {
	// Actions maps action types to how many times they were triggered this frame.
	// Key repeat can deliver several presses between two frames.
	Actions map[Action]int
}

// NewInputFrame creates an empty input frame.
func NewInputFrame() InputFrame {
	return InputFrame{
		Actions: make(map[Action]int),
	}
}

// Set marks an action as triggered for this frame.
func (f *InputFrame) Set(a Action) {
	if f.Actions == nil {
		f.Actions = make(map[Action]int)
	}
	f.Actions[a]++
}

// Has returns true if the given action was triggered this frame.
func (f InputFrame) Has(a Action) bool {
	return f.Count(a) > 0
}

// Count returns how many times the action was triggered this frame.
func (f InputFrame) Count(a Action) int {
	if f.Actions == nil {
		return 0
	}
	return f.Actions[a]
}

// Clear resets all actions for the next frame.
func (f *InputFrame) Clear() {
	for k := range f.Actions {
		delete(f.Actions, k)
	}
}
