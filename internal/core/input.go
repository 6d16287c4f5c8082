package core

// Action is a semantic input, abstracted from physical keys. Hosts
// translate keys, mouse buttons or recorded input into actions.
type Action uint8

const (
	ActionNone    Action = iota
	ActionFlap           // Upward impulse
	ActionRestart        // New run after game over
	ActionQuit           // Leave the host
	ActionPause          // Host-level pause; the session keeps its state
	ActionBack           // Back to the variant menu
)

var actionNames = [...]string{
	ActionNone:    "None",
	ActionFlap:    "Flap",
	ActionRestart: "Restart",
	ActionQuit:    "Quit",
	ActionPause:   "Pause",
	ActionBack:    "Back",
}

// String returns a human-readable name for the action.
func (a Action) String() string {
	if int(a) < len(actionNames) {
		return actionNames[a]
	}
	return "Unknown"
}

// InputFrame collects the actions triggered between two host frames.
// The zero value is an empty frame.
type InputFrame struct {
	bits uint32
}

// NewInputFrame creates an empty input frame.
func NewInputFrame() InputFrame {
	return InputFrame{}
}

// Set marks an action as triggered for this frame.
func (f *InputFrame) Set(a Action) {
	if a != ActionNone {
		f.bits |= 1 << a
	}
}

// Has reports whether a was triggered this frame.
func (f InputFrame) Has(a Action) bool {
	return a != ActionNone && f.bits&(1<<a) != 0
}

// Empty reports whether no action was triggered.
func (f InputFrame) Empty() bool {
	return f.bits == 0
}

// Clear resets the frame for the next host frame.
func (f *InputFrame) Clear() {
	f.bits = 0
}
