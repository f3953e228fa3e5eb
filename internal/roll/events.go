package roll

import "github.com/Faultbox/dicebox/internal/dice"

// Phase is the session state.
type Phase int

const (
	Idle Phase = iota
	Probing
	Presenting
)

func (p Phase) String() string {
	switch p {
	case Idle:
		return "idle"
	case Probing:
		return "probing"
	case Presenting:
		return "presenting"
	default:
		return "unknown"
	}
}

// EventKind identifies what a Tick reported.
type EventKind int

const (
	// EventProbed: the invisible throw settled and the visible replay began.
	EventProbed EventKind = iota
	// EventRolled: the visible dice settled and the roll is complete.
	EventRolled
	// EventResetDone: every die removed by Reset has faded out.
	EventResetDone
)

func (k EventKind) String() string {
	switch k {
	case EventProbed:
		return "probed"
	case EventRolled:
		return "rolled"
	case EventResetDone:
		return "reset-done"
	default:
		return "unknown"
	}
}

// Event is a phase transition reported by Tick.
type Event struct {
	Kind EventKind

	// Slots holds the face slot each probing die settled on, in die order.
	// Set for EventProbed.
	Slots []int

	// Results and Total are set for EventRolled.
	Results []dice.Result
	Total   int

	// TimedOut is set when the phase was resolved by the settle timeout.
	TimedOut bool
}
