package audio

import (
	"github.com/lixenwraith/genius/events"
	"github.com/lixenwraith/genius/game"
)

// Player is the sound surface consumed by Feedback
type Player interface {
	PlayCell(cell int)
	PlaySuccess()
	PlayFailure()
}

// Feedback turns game events into sounds
type Feedback struct {
	player Player
}

// NewFeedback creates an event handler playing through p
func NewFeedback(p Player) *Feedback {
	return &Feedback{player: p}
}

// HandleEvent implements events.Handler
func (f *Feedback) HandleEvent(_ game.State, ev events.GameEvent) {
	switch ev.Type {
	case events.EventCellHighlight, events.EventTapFeedback:
		if p, ok := ev.Payload.(*events.CellPayload); ok {
			f.player.PlayCell(p.Cell)
		}
	case events.EventRoundSuccess:
		f.player.PlaySuccess()
	case events.EventFailure:
		f.player.PlayFailure()
	}
}

// EventTypes implements events.Handler
func (f *Feedback) EventTypes() []events.EventType {
	return []events.EventType{
		events.EventCellHighlight,
		events.EventTapFeedback,
		events.EventRoundSuccess,
		events.EventFailure,
	}
}
