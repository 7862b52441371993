package input

import "github.com/lixenwraith/genius/game"

// Controls is the inbound surface of the game controller driven by input
type Controls interface {
	SubmitTap(cell int) bool
	SetDifficulty(l game.Level) bool
	PressStartOrReset()
}

// Apply forwards a game intent to the controller
// Returns false for intents the caller must handle itself (quit, mute, resize)
func Apply(in *Intent, c Controls) bool {
	if in == nil {
		return true
	}
	switch in.Type {
	case IntentTap:
		c.SubmitTap(in.Cell)
	case IntentSetDifficulty:
		c.SetDifficulty(in.Level)
	case IntentStartReset:
		c.PressStartOrReset()
	default:
		return false
	}
	return true
}
