package core

// Action represents a semantic game action, abstracted from physical key presses.
type Action int

const (
	ActionNone          Action = iota
	ActionPause                // P, Escape, focus lost - pause/unpause
	ActionRestart              // R - restart after game over
	ActionIntensityUp          // +, =, Right - turn the intensity dial up
	ActionIntensityDown        // -, Left - turn the intensity dial down
	ActionConfirm              // Enter - confirm selection in menu
	ActionBack                 // B, Escape - go back to menu
	ActionQuit                 // Q, Ctrl+C - exit
)

// String returns a human-readable name for the action.
func (a Action) String() string {
	switch a {
	case ActionNone:
		return "None"
	case ActionPause:
		return "Pause"
	case ActionRestart:
		return "Restart"
	case ActionIntensityUp:
		return "IntensityUp"
	case ActionIntensityDown:
		return "IntensityDown"
	case ActionConfirm:
		return "Confirm"
	case ActionBack:
		return "Back"
	case ActionQuit:
		return "Quit"
	default:
		return "Unknown"
	}
}

// Tap is a pointer press (mouse click or touch) in cell coordinates.
type Tap struct {
	X, Y int
}

// InputFrame collects everything the player did during one simulation tick.
type InputFrame struct {
	// Actions maps action types to whether they were triggered this frame.
	Actions map[Action]bool
	// Taps holds pointer presses in the order they arrived.
	Taps []Tap
}

// NewInputFrame creates an empty input frame.
func NewInputFrame() InputFrame {
	return InputFrame{
		Actions: make(map[Action]bool),
	}
}

// Set marks an action as triggered for this frame.
func (f *InputFrame) Set(a Action) {
	if f.Actions == nil {
		f.Actions = make(map[Action]bool)
	}
	f.Actions[a] = true
}

// Has returns true if the given action was triggered this frame.
func (f InputFrame) Has(a Action) bool {
	if f.Actions == nil {
		return false
	}
	return f.Actions[a]
}

// AddTap records a pointer press at cell (x, y).
func (f *InputFrame) AddTap(x, y int) {
	f.Taps = append(f.Taps, Tap{X: x, Y: y})
}

// Empty reports whether the frame carries no actions and no taps.
func (f InputFrame) Empty() bool {
	return len(f.Taps) == 0 && len(f.Actions) == 0
}

// Clear resets all actions and taps for the next frame.
// The tap slice keeps its capacity.
func (f *InputFrame) Clear() {
	for k := range f.Actions {
		delete(f.Actions, k)
	}
	f.Taps = f.Taps[:0]
}
