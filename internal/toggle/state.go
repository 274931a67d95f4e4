package toggle

import "encoding/json"

// State classifies an application's presence across the process table, the
// tray, and the window tree. It is derived fresh on every invocation and
// never persisted.
type State int

const (
	// StateNotLaunched means no tray icon was found: the tray-integrated
	// instance does not exist yet, regardless of any stray process.
	StateNotLaunched State = iota
	// StateInScratchpad means the window is hidden in the scratchpad.
	StateInScratchpad
	// StateInCurrentWorkspace means the window is on the focused workspace.
	StateInCurrentWorkspace
	// StateInOtherWorkspace means the window is on some other workspace.
	StateInOtherWorkspace
	// StateTrayOnly means the process and tray icon exist but no window does.
	StateTrayOnly
	// StateUnresolved covers every remaining signal combination.
	StateUnresolved
)

func (s State) String() string {
	switch s {
	case StateNotLaunched:
		return "not-launched"
	case StateInScratchpad:
		return "in-scratchpad"
	case StateInCurrentWorkspace:
		return "in-current-workspace"
	case StateInOtherWorkspace:
		return "in-other-workspace"
	case StateTrayOnly:
		return "tray-only"
	case StateUnresolved:
		return "unresolved"
	}
	return "unknown"
}

// MarshalJSON emits the state name rather than its ordinal.
func (s State) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}
