package render

import (
	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/genius/game"
)

// RenderContext is the read-only input of one frame
type RenderContext struct {
	State  game.State
	Layout Layout
}

// SystemRenderer draws one part of the screen
type SystemRenderer interface {
	Render(ctx RenderContext, screen tcell.Screen)
}

// VisibilityToggle is optionally implemented for runtime enable/disable
type VisibilityToggle interface {
	IsVisible(ctx RenderContext) bool
}
