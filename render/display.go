package render

import (
	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/genius/events"
	"github.com/lixenwraith/genius/game"
)

// Display owns the screen layout and redraws when game state changes
// EventStateChanged marks the frame dirty, everything drawn comes from the snapshot
type Display struct {
	screen       tcell.Screen
	orchestrator *RenderOrchestrator
	layout       Layout
	dirty        bool
}

// NewDisplay creates a display with the default renderer stack
func NewDisplay(screen tcell.Screen) *Display {
	w, h := screen.Size()
	d := &Display{
		screen:       screen,
		orchestrator: NewRenderOrchestrator(screen),
		layout:       NewLayout(w, h),
		dirty:        true,
	}

	d.orchestrator.Register(NewGridRenderer(), PriorityGrid)
	d.orchestrator.Register(NewHeaderRenderer(), PriorityUI)
	d.orchestrator.Register(NewControlsRenderer(), PriorityUI)
	d.orchestrator.Register(NewFailureOverlay(), PriorityOverlay)
	return d
}

// Layout returns the current layout for hit testing
func (d *Display) Layout() Layout {
	return d.layout
}

// HitTest resolves a screen position against the current layout
func (d *Display) HitTest(x, y int) Target {
	return d.layout.HitTest(x, y)
}

// Resize recomputes the layout
func (d *Display) Resize(width, height int) {
	d.layout = NewLayout(width, height)
	d.orchestrator.Resize()
	d.dirty = true
}

// Draw renders a frame if anything changed since the last one, returns true when drawn
func (d *Display) Draw(st game.State) bool {
	if !d.dirty {
		return false
	}
	d.orchestrator.RenderFrame(RenderContext{State: st, Layout: d.layout})
	d.dirty = false
	return true
}

// HandleEvent implements events.Handler
func (d *Display) HandleEvent(_ game.State, ev events.GameEvent) {
	if ev.Type == events.EventStateChanged {
		d.dirty = true
	}
}

// EventTypes implements events.Handler
func (d *Display) EventTypes() []events.EventType {
	return []events.EventType{events.EventStateChanged}
}
