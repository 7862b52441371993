package render

import (
	"fmt"
	"strconv"

	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/genius/constants"
	"github.com/lixenwraith/genius/game"
)

func color(hex int32) tcell.Color {
	return tcell.NewHexColor(hex)
}

func baseStyle() tcell.Style {
	return tcell.StyleDefault.Background(color(constants.BackgroundColor)).Foreground(color(constants.TextColor))
}

// HeaderRenderer draws the title, difficulty selector and score line
type HeaderRenderer struct{}

// NewHeaderRenderer creates a header renderer
func NewHeaderRenderer() *HeaderRenderer {
	return &HeaderRenderer{}
}

// Render implements SystemRenderer
func (r *HeaderRenderer) Render(ctx RenderContext, s tcell.Screen) {
	st := ctx.State
	drawCentered(s, ctx.Layout.TitleY, baseStyle().Bold(true), constants.TitleText)

	// Selector is locked while a session runs
	locked := st.GameStarted
	for _, lv := range game.Levels() {
		style := baseStyle()
		switch {
		case lv == st.Difficulty.Level:
			style = style.Background(color(constants.SelectedButtonColor)).Bold(true)
		case locked:
			style = style.Foreground(color(constants.DimTextColor))
		}
		rect := ctx.Layout.Difficulty[lv]
		drawText(s, rect.X, rect.Y, style, "[ "+lv.Setting().Label+" ]")
	}

	score := fmt.Sprintf("Score: %d    Record: %d", st.Score, st.HighScore)
	drawCentered(s, ctx.Layout.ScoreY, baseStyle(), score)
}

// GridRenderer draws the 3x3 board with the active cell lit
type GridRenderer struct{}

// NewGridRenderer creates a grid renderer
func NewGridRenderer() *GridRenderer {
	return &GridRenderer{}
}

// Render implements SystemRenderer
func (r *GridRenderer) Render(ctx RenderContext, s tcell.Screen) {
	st := ctx.State
	for i, rect := range ctx.Layout.Cells {
		bg := color(constants.CellColors[i])
		if i == st.ActiveCell {
			bg = color(constants.ActiveCellColor)
		}
		style := tcell.StyleDefault.Background(bg).Foreground(tcell.ColorBlack)
		fillRect(s, rect, style)

		// Key hint while the player is expected to answer
		if st.Phase == game.PhaseAwaitingInput {
			cx, cy := rect.Center()
			s.SetContent(cx, cy, rune('1'+i), nil, style.Bold(true))
		}
	}
}

// ControlsRenderer draws the start/reset button and the hint line
type ControlsRenderer struct{}

// NewControlsRenderer creates a controls renderer
func NewControlsRenderer() *ControlsRenderer {
	return &ControlsRenderer{}
}

// Render implements SystemRenderer
func (r *ControlsRenderer) Render(ctx RenderContext, s tcell.Screen) {
	st := ctx.State

	label, bg := constants.StartLabel, constants.StartButtonColor
	if st.GameStarted {
		label, bg = constants.ResetLabel, constants.ResetButtonColor
	}
	style := tcell.StyleDefault.Background(color(bg)).Foreground(color(constants.TextColor)).Bold(true)
	fillRect(s, ctx.Layout.Button, style)
	pad := (ctx.Layout.Button.W - len(label)) / 2
	drawText(s, ctx.Layout.Button.X+pad, ctx.Layout.Button.Y, style, label)

	hint := constants.HintIdle
	switch st.Phase {
	case game.PhaseShowing:
		hint = constants.HintShowing
	case game.PhaseAwaitingInput:
		hint = constants.HintAwaiting + "  (" + strconv.Itoa(st.ProgressLength) + "/" + strconv.Itoa(st.SequenceLength) + ")"
	}
	drawCentered(s, ctx.Layout.HintY, baseStyle().Foreground(color(constants.DimTextColor)), hint)
}

// FailureOverlay draws the failure prompt over the grid until acknowledged
type FailureOverlay struct{}

// NewFailureOverlay creates a failure overlay renderer
func NewFailureOverlay() *FailureOverlay {
	return &FailureOverlay{}
}

// IsVisible implements VisibilityToggle
func (r *FailureOverlay) IsVisible(ctx RenderContext) bool {
	return ctx.State.AwaitingAck
}

// Render implements SystemRenderer
func (r *FailureOverlay) Render(ctx RenderContext, s tcell.Screen) {
	lines := []string{
		constants.FailureTitle,
		fmt.Sprintf("Your score: %d", ctx.State.FinalScore),
		constants.FailureTryAgain,
	}
	width := 0
	for _, line := range lines {
		width = max(width, len(line))
	}
	width += 2 * constants.FailureBoxPadX

	grid := ctx.Layout.Grid
	box := Rect{
		X: grid.X + (grid.W-width)/2,
		Y: grid.Y + (grid.H-len(lines)-2)/2,
		W: width,
		H: len(lines) + 2,
	}
	style := tcell.StyleDefault.Background(color(constants.FailureBoxColor)).Foreground(color(constants.TextColor))
	fillRect(s, box, style)
	for i, line := range lines {
		lineStyle := style
		if i == 0 {
			lineStyle = style.Bold(true)
		}
		drawText(s, box.X+(box.W-len(line))/2, box.Y+1+i, lineStyle, line)
	}
}
