package constants

import "time"

// Game Loop Timing Constants
const (
	// FrameUpdateInterval is the rendering frame rate interval (~60 FPS)
	FrameUpdateInterval = 16 * time.Millisecond

	// LeadInDelay is the pause before every sequence playback (new game and after a completed round)
	LeadInDelay = 1000 * time.Millisecond

	// TapFeedbackDelay is how long a tapped cell stays lit before the outcome is shown
	TapFeedbackDelay = 300 * time.Millisecond
)

// Grid geometry
const (
	GridSize  = 3
	CellCount = GridSize * GridSize

	// NoCell marks the absence of a highlighted cell
	NoCell = -1
)

// Event queue sizing
const (
	// EventQueueCapacity is the initial capacity of the event queue backing slice
	EventQueueCapacity = 64

	// CommandBufferSize bounds pending commands from the HTTP surface
	CommandBufferSize = 16
)

// Logging
const (
	LogDir      = "logs"
	LogFileName = "genius.log"

	// MaxLogSize triggers rotation of the previous log file at startup
	MaxLogSize = 10 * 1024 * 1024
)

// Transport
const (
	// TerminalEventBuffer sizes the channel between the tcell poller and the game loop
	TerminalEventBuffer = 256

	// HTTPRequestTimeout bounds every HTTP handler
	HTTPRequestTimeout = 10 * time.Second

	// CommandTimeout bounds how long an HTTP handler waits for the game loop
	CommandTimeout = 2 * time.Second
)
