package game

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// ErrUnknownDifficulty is returned when a difficulty name matches no preset
var ErrUnknownDifficulty = errors.New("unknown difficulty")

// Level enumerates the difficulty presets
type Level int

const (
	LevelEasy Level = iota
	LevelMedium
	LevelHard
	levelCount
)

// Setting is an immutable difficulty preset
type Setting struct {
	Level         Level
	InitialLength int
	Flash         time.Duration
	Pause         time.Duration
	Label         string
}

var presets = [levelCount]Setting{
	LevelEasy:   {Level: LevelEasy, InitialLength: 2, Flash: 800 * time.Millisecond, Pause: 300 * time.Millisecond, Label: "Easy"},
	LevelMedium: {Level: LevelMedium, InitialLength: 3, Flash: 600 * time.Millisecond, Pause: 250 * time.Millisecond, Label: "Medium"},
	LevelHard:   {Level: LevelHard, InitialLength: 4, Flash: 400 * time.Millisecond, Pause: 200 * time.Millisecond, Label: "Hard"},
}

// Levels returns all levels in display order
func Levels() []Level {
	return []Level{LevelEasy, LevelMedium, LevelHard}
}

// Valid reports whether l names a preset
func (l Level) Valid() bool {
	return l >= 0 && l < levelCount
}

// Setting returns the preset for l, falling back to easy for invalid levels
func (l Level) Setting() Setting {
	if !l.Valid() {
		return presets[LevelEasy]
	}
	return presets[l]
}

func (l Level) String() string {
	switch l {
	case LevelEasy:
		return "easy"
	case LevelMedium:
		return "medium"
	case LevelHard:
		return "hard"
	default:
		return fmt.Sprintf("level(%d)", int(l))
	}
}

// ParseLevel resolves a difficulty name or label, case-insensitive
func ParseLevel(s string) (Level, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	for _, l := range Levels() {
		if name == l.String() || name == strings.ToLower(presets[l].Label) {
			return l, nil
		}
	}
	return LevelEasy, fmt.Errorf("%w: %q", ErrUnknownDifficulty, s)
}
