package render

import (
	"github.com/lixenwraith/genius/constants"
	"github.com/lixenwraith/genius/game"
)

// Rect is a screen rectangle in terminal cells
type Rect struct {
	X, Y, W, H int
}

// Contains reports whether (x, y) lies inside r
func (r Rect) Contains(x, y int) bool {
	return x >= r.X && x < r.X+r.W && y >= r.Y && y < r.Y+r.H
}

// Center returns the middle cell of r
func (r Rect) Center() (int, int) {
	return r.X + r.W/2, r.Y + r.H/2
}

// TargetKind classifies what a screen position points at
type TargetKind int

const (
	TargetNone TargetKind = iota
	TargetCell
	TargetDifficulty
	TargetButton
)

// Target is the result of a hit test
type Target struct {
	Kind  TargetKind
	Cell  int
	Level game.Level
}

// Layout positions every widget for a given screen size
// Rows from the top: title, difficulty buttons, score, 3x3 grid, start/reset button, hint
type Layout struct {
	Width, Height int

	TitleY     int
	Difficulty [3]Rect // indexed by game.Level
	ScoreY     int
	Grid       Rect
	Cells      [constants.CellCount]Rect
	Button     Rect
	HintY      int
}

// NewLayout centers the board on a width x height screen
func NewLayout(width, height int) Layout {
	l := Layout{Width: width, Height: height}

	top := max(0, (height-constants.LayoutRows)/2)
	l.TitleY = top
	difficultyY := top + 2
	l.ScoreY = top + 4

	gridW := constants.GridSize*constants.CellWidth + (constants.GridSize-1)*constants.CellGapX
	gridH := constants.GridSize*constants.CellHeight + (constants.GridSize-1)*constants.CellGapY
	l.Grid = Rect{X: max(0, (width-gridW)/2), Y: top + 6, W: gridW, H: gridH}

	for i := range l.Cells {
		row, col := i/constants.GridSize, i%constants.GridSize
		l.Cells[i] = Rect{
			X: l.Grid.X + col*(constants.CellWidth+constants.CellGapX),
			Y: l.Grid.Y + row*(constants.CellHeight+constants.CellGapY),
			W: constants.CellWidth,
			H: constants.CellHeight,
		}
	}

	// Difficulty buttons sized to their labels, centered as a group
	levels := game.Levels()
	total := (len(levels) - 1) * constants.DifficultyGap
	for _, lv := range levels {
		total += difficultyButtonWidth(lv)
	}
	x := max(0, (width-total)/2)
	for _, lv := range levels {
		w := difficultyButtonWidth(lv)
		l.Difficulty[lv] = Rect{X: x, Y: difficultyY, W: w, H: 1}
		x += w + constants.DifficultyGap
	}

	l.Button = Rect{X: max(0, (width-constants.ButtonWidth)/2), Y: l.Grid.Y + gridH + 1, W: constants.ButtonWidth, H: 1}
	l.HintY = l.Button.Y + 1
	return l
}

// HitTest resolves a screen position to the widget under it
func (l Layout) HitTest(x, y int) Target {
	for i, r := range l.Cells {
		if r.Contains(x, y) {
			return Target{Kind: TargetCell, Cell: i}
		}
	}
	for _, lv := range game.Levels() {
		if l.Difficulty[lv].Contains(x, y) {
			return Target{Kind: TargetDifficulty, Level: lv}
		}
	}
	if l.Button.Contains(x, y) {
		return Target{Kind: TargetButton}
	}
	return Target{Kind: TargetNone, Cell: constants.NoCell}
}

// difficultyButtonWidth is the label plus bracket padding "[ Label ]"
func difficultyButtonWidth(lv game.Level) int {
	return len(lv.Setting().Label) + 4
}
