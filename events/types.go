package events

import (
	"time"
)

// EventType represents the type of game event
type EventType int

const (
	// EventStateChanged signals a change in any observable game state
	// Trigger: Controller after every mutating transition
	// Consumer: Renderer (redraw) | Payload: game.State snapshot
	EventStateChanged EventType = iota

	// EventCellHighlight signals a playback flash
	// Trigger: Playback timeline highlight step
	// Consumer: Audio feedback | Payload: *CellPayload
	EventCellHighlight

	// EventCellClear signals the end of a playback flash or tap feedback
	// Trigger: Playback timeline clear step, tap feedback timer | Payload: *CellPayload
	EventCellClear

	// EventTapFeedback signals an accepted player tap
	// Trigger: Controller.SubmitTap in AwaitingInput
	// Consumer: Audio feedback | Payload: *CellPayload
	EventTapFeedback

	// EventPlaybackComplete signals the end of a playback timeline
	// Trigger: Playback timeline final step | Payload: nil
	EventPlaybackComplete

	// EventRoundSuccess signals a fully reproduced sequence
	// Trigger: Controller.SubmitTap on the last step
	// Consumer: Audio feedback | Payload: *RoundSuccessPayload
	EventRoundSuccess

	// EventFailure reports a wrong tap with the final score
	// Trigger: Tap feedback timer after a wrong tap
	// Consumer: Renderer (failure prompt), Audio feedback | Payload: *FailurePayload
	EventFailure

	eventTypeCount
)

// GameEvent represents a single game event with metadata
type GameEvent struct {
	Type      EventType
	Payload   any
	Timestamp time.Time
}

// String returns the registered name of the event type
func (et EventType) String() string {
	if name, ok := GetEventName(et); ok {
		return name
	}
	return "Unknown"
}
