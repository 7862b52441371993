package input

import (
	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/genius/game"
)

// KeyEntry describes what a key does without function pointers
type KeyEntry struct {
	IntentType IntentType
	Cell       int
	Level      game.Level
}

// KeyTable maps keys to intents
type KeyTable struct {
	// Special keys (Ctrl+*, Enter, Esc)
	SpecialKeys map[tcell.Key]KeyEntry

	// Rune bindings
	Runes map[rune]KeyEntry
}

// DefaultKeyTable returns the default key bindings
// Digits follow the grid in row-major order: 1 is top-left, 9 is bottom-right
func DefaultKeyTable() *KeyTable {
	kt := &KeyTable{
		SpecialKeys: map[tcell.Key]KeyEntry{
			tcell.KeyCtrlC:  {IntentType: IntentQuit},
			tcell.KeyCtrlQ:  {IntentType: IntentQuit},
			tcell.KeyEscape: {IntentType: IntentQuit},
			tcell.KeyCtrlS:  {IntentType: IntentToggleMute},
			tcell.KeyEnter:  {IntentType: IntentStartReset},
		},
		Runes: map[rune]KeyEntry{
			' ': {IntentType: IntentStartReset},
			'q': {IntentType: IntentQuit},
			's': {IntentType: IntentToggleMute},
			'e': {IntentType: IntentSetDifficulty, Level: game.LevelEasy},
			'm': {IntentType: IntentSetDifficulty, Level: game.LevelMedium},
			'h': {IntentType: IntentSetDifficulty, Level: game.LevelHard},
		},
	}
	for i := range 9 {
		kt.Runes[rune('1'+i)] = KeyEntry{IntentType: IntentTap, Cell: i}
	}
	return kt
}

// Lookup resolves a key event, rune keys are matched case-insensitively
func (kt *KeyTable) Lookup(key tcell.Key, r rune) (KeyEntry, bool) {
	if key == tcell.KeyRune {
		if e, ok := kt.Runes[r]; ok {
			return e, true
		}
		if r >= 'A' && r <= 'Z' {
			e, ok := kt.Runes[r+('a'-'A')]
			return e, ok
		}
		return KeyEntry{}, false
	}
	e, ok := kt.SpecialKeys[key]
	return e, ok
}
