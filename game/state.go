package game

import "slices"

// Session is the mutable game session owned by the controller
type Session struct {
	Difficulty Setting
	Sequence   []int
	Progress   []int
	Score      int
	HighScore  int
	Phase      Phase
}

// clone returns a deep copy safe to hand out of the controller
func (s Session) clone() Session {
	s.Sequence = slices.Clone(s.Sequence)
	s.Progress = slices.Clone(s.Progress)
	return s
}

// State is the immutable snapshot handed to the presentation layer
// Comparable so unchanged snapshots are not re-published
type State struct {
	Phase          Phase
	ActiveCell     int // constants.NoCell when nothing is lit
	Score          int
	HighScore      int
	Difficulty     Setting
	GameStarted    bool
	AwaitingAck    bool
	FinalScore     int // score of the failed session while AwaitingAck
	SessionID      string
	SequenceLength int
	ProgressLength int
}

// HasActiveCell reports whether a cell is currently lit
func (s State) HasActiveCell() bool {
	return s.ActiveCell >= 0
}
