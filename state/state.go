// Package state defines the normalized playback states.
package state

// State is the authoritative playback state of a provider.
type State int

const (
	Idle State = iota
	Loading
	Stalled
	Playing
	Paused
	Complete
	Error
)

var names = [...]string{
	Idle:     "idle",
	Loading:  "loading",
	Stalled:  "stalled",
	Playing:  "playing",
	Paused:   "paused",
	Complete: "complete",
	Error:    "error",
}

func (s State) String() string {
	if s.Valid() {
		return names[s]
	}
	return "unknown"
}

// Valid reports whether s is one of the enumerated states.
func (s State) Valid() bool {
	return s >= Idle && s <= Error
}

// MarshalText encodes the state by name.
func (s State) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// All returns every state in declaration order.
func All() []State {
	return []State{Idle, Loading, Stalled, Playing, Paused, Complete, Error}
}

// Machine holds the current state. The zero value is Idle.
type Machine struct {
	current State
}

// Current returns the current state.
func (m *Machine) Current() State {
	return m.current
}

// Set moves to s and reports the previous state and whether anything changed.
// Invalid states are rejected and leave the machine untouched.
func (m *Machine) Set(s State) (old State, changed bool) {
	old = m.current
	if !s.Valid() || s == old {
		return old, false
	}
	m.current = s
	return old, true
}
