package game

// Phase is the state machine state
type Phase int

const (
	// PhaseIdle has no active round, taps are ignored
	PhaseIdle Phase = iota
	// PhaseShowing plays the sequence back, taps are ignored
	PhaseShowing
	// PhaseAwaitingInput expects the player to reproduce the sequence
	PhaseAwaitingInput
)

func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseShowing:
		return "showing"
	case PhaseAwaitingInput:
		return "awaiting_input"
	default:
		return "unknown"
	}
}
