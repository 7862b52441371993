package input

import "github.com/lixenwraith/genius/game"

// IntentType discriminates semantic actions
type IntentType uint8

const (
	IntentNone IntentType = iota

	// System-level intents
	IntentQuit       // q, Esc, Ctrl+C, Ctrl+Q
	IntentToggleMute // Ctrl+S, s
	IntentResize     // Terminal resize event

	// Game intents
	IntentTap           // 1-9, left click on a cell
	IntentSetDifficulty // e/m/h, left click on a difficulty button
	IntentStartReset    // Enter, Space, left click on the start/reset button
)

// Intent is the semantic result of one terminal event
type Intent struct {
	Type  IntentType
	Cell  int        // IntentTap
	Level game.Level // IntentSetDifficulty

	// IntentResize
	Width  int
	Height int
}
