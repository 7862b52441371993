package game

import (
	"time"

	"github.com/lixenwraith/genius/constants"
)

// StepKind is the action of a playback step
type StepKind int

const (
	StepHighlight StepKind = iota
	StepClear
	StepComplete
)

// Step is one entry of a playback timeline, Offset is relative to the timeline start
type Step struct {
	Offset time.Duration
	Kind   StepKind
	Cell   int
}

// BuildTimeline lays out the highlight/clear steps for seq
// Each cell is lit for flash then cleared for pause, strictly sequential
// The final StepComplete lands after the last pause
func BuildTimeline(seq []int, flash, pause time.Duration) []Step {
	steps := make([]Step, 0, 2*len(seq)+1)
	var at time.Duration
	for _, cell := range seq {
		steps = append(steps, Step{Offset: at, Kind: StepHighlight, Cell: cell})
		at += flash
		steps = append(steps, Step{Offset: at, Kind: StepClear, Cell: cell})
		at += pause
	}
	return append(steps, Step{Offset: at, Kind: StepComplete, Cell: constants.NoCell})
}

// timelineDuration returns the total length of a playback for n cells
func timelineDuration(n int, flash, pause time.Duration) time.Duration {
	return time.Duration(n) * (flash + pause)
}
