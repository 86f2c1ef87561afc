package panel

import "fmt"

// State is the concierge panel's interaction state. Busy and the presence of
// a response are derived from it rather than tracked separately.
type State int

const (
	Idle State = iota
	OpenEmpty
	OpenBusy
	OpenSettled
)

var stateNames = map[State]string{
	Idle:        "idle",
	OpenEmpty:   "open_empty",
	OpenBusy:    "open_busy",
	OpenSettled: "open_settled",
}

func (s State) String() string {
	if name, ok := stateNames[s]; ok {
		return name
	}
	return fmt.Sprintf("state(%d)", int(s))
}

func (s State) IsOpen() bool { return s != Idle }

func (s State) MarshalText() ([]byte, error) {
	if _, ok := stateNames[s]; !ok {
		return nil, fmt.Errorf("unknown panel state %d", int(s))
	}
	return []byte(s.String()), nil
}

func (s *State) UnmarshalText(text []byte) error {
	for state, name := range stateNames {
		if name == string(text) {
			*s = state
			return nil
		}
	}
	return fmt.Errorf("unknown panel state %q", text)
}

// Snapshot is a consistent copy of a panel's state.
type Snapshot struct {
	State     State  `json:"state"`
	Busy      bool   `json:"busy"`
	Response  string `json:"response,omitempty"`
	RequestID uint64 `json:"request_id"`
}
