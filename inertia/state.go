package inertia

// State is the coarse state of the engine.
type State uint8

const (
	// StateInactive means the engine is not simulating: not in first person, globally disabled,
	// or fully sheathed.
	StateInactive State = iota
	StateActive
	// StateSuppressed means the current category disabled inertia. Springs were reset once and
	// stay at rest until the category is enabled again.
	StateSuppressed
)

func (s State) String() string {
	switch s {
	case StateActive:
		return "active"
	case StateSuppressed:
		return "suppressed"
	default:
		return "inactive"
	}
}
