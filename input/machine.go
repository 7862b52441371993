package input

import (
	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/genius/render"
)

// HitTester resolves screen positions to widgets
type HitTester interface {
	HitTest(x, y int) render.Target
}

// Machine is the input state machine
// Parses tcell events into semantic Intent
type Machine struct {
	keyTable *KeyTable
	hits     HitTester

	// Left button state of the previous mouse event, a tap fires on the press edge only
	leftDown bool
}

// NewMachine creates a new input machine resolving clicks through hits
func NewMachine(hits HitTester) *Machine {
	return &Machine{
		keyTable: DefaultKeyTable(),
		hits:     hits,
	}
}

// Reset clears pending mouse state
func (m *Machine) Reset() {
	m.leftDown = false
}

// Process parses a terminal event and returns an Intent
// Returns nil if the event maps to nothing
func (m *Machine) Process(ev tcell.Event) *Intent {
	switch ev := ev.(type) {
	case *tcell.EventResize:
		w, h := ev.Size()
		m.Reset()
		return &Intent{Type: IntentResize, Width: w, Height: h}
	case *tcell.EventKey:
		return m.processKey(ev)
	case *tcell.EventMouse:
		return m.processMouse(ev)
	}
	return nil
}

func (m *Machine) processKey(ev *tcell.EventKey) *Intent {
	entry, ok := m.keyTable.Lookup(ev.Key(), ev.Rune())
	if !ok || entry.IntentType == IntentNone {
		return nil
	}
	return &Intent{Type: entry.IntentType, Cell: entry.Cell, Level: entry.Level}
}

func (m *Machine) processMouse(ev *tcell.EventMouse) *Intent {
	down := ev.Buttons()&tcell.Button1 != 0
	pressed := down && !m.leftDown
	m.leftDown = down
	if !pressed || m.hits == nil {
		return nil
	}

	x, y := ev.Position()
	target := m.hits.HitTest(x, y)
	switch target.Kind {
	case render.TargetCell:
		return &Intent{Type: IntentTap, Cell: target.Cell}
	case render.TargetDifficulty:
		return &Intent{Type: IntentSetDifficulty, Level: target.Level}
	case render.TargetButton:
		return &Intent{Type: IntentStartReset}
	}
	return nil
}
