package game

import (
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/lixenwraith/genius/constants"
	"github.com/lixenwraith/genius/engine"
	"github.com/lixenwraith/genius/events"
	"github.com/lixenwraith/genius/sequence"
)

// Controller owns the game session and drives the state machine
//
// Thread-Safety:
//   - Every method except State is called from the game loop goroutine only
//   - State reads an atomically published snapshot and is safe from any goroutine
//
// Timers:
//   - Playback and tap feedback are scheduled on the engine.Scheduler
//   - Each timeline carries a generation; a callback whose generation is stale is a no-op
//   - Start, Stop and a wrong tap cancel every outstanding timer
type Controller struct {
	sched *engine.Scheduler
	gen   *sequence.Generator
	queue *events.EventQueue
	log   zerolog.Logger
	newID func() string

	session     Session
	activeCell  int
	gameStarted bool
	awaitingAck bool
	finalScore  int
	sessionID   string

	// failurePending covers the tap feedback window between a wrong tap and its report
	failurePending bool

	playbackGen    uint64
	playbackTimers []engine.TimerID
	feedbackGen    uint64
	feedbackTimer  engine.TimerID

	snapshot atomic.Pointer[State]
}

// Option configures a Controller
type Option func(*Controller)

// WithLogger sets the controller logger
func WithLogger(l zerolog.Logger) Option {
	return func(c *Controller) { c.log = l }
}

// WithIDSource replaces the session ID source (uuid by default)
func WithIDSource(fn func() string) Option {
	return func(c *Controller) { c.newID = fn }
}

// WithDifficulty selects the initial difficulty
func WithDifficulty(l Level) Option {
	return func(c *Controller) { c.session.Difficulty = l.Setting() }
}

// NewController creates an idle controller
func NewController(sched *engine.Scheduler, gen *sequence.Generator, queue *events.EventQueue, opts ...Option) *Controller {
	c := &Controller{
		sched:      sched,
		gen:        gen,
		queue:      queue,
		log:        zerolog.Nop(),
		newID:      uuid.NewString,
		activeCell: constants.NoCell,
		session: Session{
			Difficulty: LevelEasy.Setting(),
			Phase:      PhaseIdle,
		},
	}
	for _, opt := range opts {
		opt(c)
	}
	c.publish()
	return c
}

// State returns the latest published snapshot
func (c *Controller) State() State {
	return *c.snapshot.Load()
}

// Session returns a deep copy of the session
func (c *Controller) Session() Session {
	return c.session.clone()
}

// Tick fires every timer due at now
func (c *Controller) Tick(now time.Time) {
	c.sched.Advance(now)
}

// SetDifficulty changes the preset while no session is active
// Returns false when ignored (mid-session) or when the level is already selected
func (c *Controller) SetDifficulty(l Level) bool {
	if !l.Valid() || c.session.Phase != PhaseIdle || c.gameStarted || c.failurePending {
		return false
	}
	if c.session.Difficulty.Level == l {
		return false
	}
	c.session.Difficulty = l.Setting()
	c.log.Debug().Str("difficulty", l.String()).Msg("difficulty selected")
	c.publish()
	return true
}

// Start begins a new session
// Ignored while a playback is running and while a wrong tap waits to be reported
func (c *Controller) Start() bool {
	if c.session.Phase == PhaseShowing || c.failurePending {
		return false
	}
	c.cancelTimers()

	setting := c.session.Difficulty
	c.session.Sequence = c.gen.Initial(setting.InitialLength)
	c.session.Progress = nil
	c.session.Score = 0
	c.session.Phase = PhaseShowing
	c.gameStarted = true
	c.awaitingAck = false
	c.finalScore = 0
	c.activeCell = constants.NoCell
	c.sessionID = c.newID()

	c.log.Info().
		Str("session", c.sessionID).
		Str("difficulty", setting.Level.String()).
		Int("length", len(c.session.Sequence)).
		Msg("game started")

	c.schedulePlayback(c.sched.Now().Add(constants.LeadInDelay))
	c.publish()
	return true
}

// Stop forces Idle from any phase and discards pending timers, the high score is kept
// A failure still inside its feedback window is dropped unreported
func (c *Controller) Stop() {
	c.cancelTimers()
	wasStarted := c.gameStarted

	c.session.Phase = PhaseIdle
	c.session.Progress = nil
	c.gameStarted = false
	c.awaitingAck = false
	c.failurePending = false
	c.finalScore = 0
	c.activeCell = constants.NoCell

	if wasStarted {
		c.log.Info().Str("session", c.sessionID).Int("score", c.session.Score).Msg("game reset")
	}
	c.publish()
}

// AcknowledgeFailure dismisses the failure prompt and starts a new game
func (c *Controller) AcknowledgeFailure() bool {
	if !c.awaitingAck {
		return false
	}
	c.awaitingAck = false
	return c.Start()
}

// PressStartOrReset is the single start/reset button: acknowledge a pending failure,
// reset an active session or start a new one
func (c *Controller) PressStartOrReset() {
	switch {
	case c.awaitingAck:
		c.AcknowledgeFailure()
	case c.gameStarted:
		c.Stop()
	default:
		c.Start()
	}
}

// SubmitTap validates one player tap
// Ignored unless awaiting input; the check and every resulting mutation happen here in one step,
// only the visible outcome waits for the tap feedback delay
func (c *Controller) SubmitTap(cell int) bool {
	if c.session.Phase != PhaseAwaitingInput || cell < 0 || cell >= constants.CellCount {
		return false
	}

	step := len(c.session.Progress)
	c.session.Progress = append(c.session.Progress, cell)
	c.activeCell = cell
	c.queue.Emit(events.EventTapFeedback, &events.CellPayload{Cell: cell})

	switch {
	case cell != c.session.Sequence[step]:
		c.fail(step, cell)
	case len(c.session.Progress) == len(c.session.Sequence):
		c.completeRound()
	default:
		c.scheduleFeedbackClear(nil)
	}
	c.publish()
	return true
}

// fail terminates the session, the failure is reported once the tap feedback clears
// The prompt (AwaitingAck) only appears together with the report
func (c *Controller) fail(step, cell int) {
	finalScore := c.session.Score
	sessionID := c.sessionID

	c.cancelPlayback()
	c.session.Phase = PhaseIdle
	c.session.Progress = nil
	c.gameStarted = false
	c.failurePending = true

	c.log.Info().
		Str("session", sessionID).
		Int("step", step).
		Int("cell", cell).
		Int("expected", c.session.Sequence[step]).
		Int("score", finalScore).
		Msg("wrong cell")

	c.scheduleFeedbackClear(func() {
		c.failurePending = false
		c.awaitingAck = true
		c.finalScore = finalScore
		c.queue.Emit(events.EventFailure, &events.FailurePayload{FinalScore: finalScore, SessionID: sessionID})
	})
}

// completeRound commits the round and schedules the next playback
func (c *Controller) completeRound() {
	c.session.Score++
	if c.session.Score > c.session.HighScore {
		c.session.HighScore = c.session.Score
	}
	c.session.Sequence = c.gen.Extend(c.session.Sequence)
	c.session.Progress = nil
	c.session.Phase = PhaseShowing

	c.log.Info().
		Str("session", c.sessionID).
		Int("score", c.session.Score).
		Int("high_score", c.session.HighScore).
		Msg("round complete")

	c.queue.Emit(events.EventRoundSuccess, &events.RoundSuccessPayload{
		Score:     c.session.Score,
		HighScore: c.session.HighScore,
		SessionID: c.sessionID,
	})

	c.scheduleFeedbackClear(nil)
	c.schedulePlayback(c.sched.Now().Add(constants.TapFeedbackDelay + constants.LeadInDelay))
}

// schedulePlayback lays the current sequence on the scheduler starting at start
// Any prior timeline is cancelled first
func (c *Controller) schedulePlayback(start time.Time) {
	c.cancelPlayback()
	gen := c.playbackGen

	setting := c.session.Difficulty
	steps := BuildTimeline(c.session.Sequence, setting.Flash, setting.Pause)
	c.playbackTimers = make([]engine.TimerID, 0, len(steps))
	for _, step := range steps {
		step := step
		id := c.sched.At(start.Add(step.Offset), func(time.Time) {
			if gen != c.playbackGen {
				return
			}
			c.applyStep(step)
		})
		c.playbackTimers = append(c.playbackTimers, id)
	}

	c.log.Debug().
		Str("session", c.sessionID).
		Int("length", len(c.session.Sequence)).
		Dur("duration", timelineDuration(len(c.session.Sequence), setting.Flash, setting.Pause)).
		Msg("playback scheduled")
}

// applyStep executes one playback step
func (c *Controller) applyStep(step Step) {
	switch step.Kind {
	case StepHighlight:
		c.activeCell = step.Cell
		c.queue.Emit(events.EventCellHighlight, &events.CellPayload{Cell: step.Cell})
	case StepClear:
		c.activeCell = constants.NoCell
		c.queue.Emit(events.EventCellClear, &events.CellPayload{Cell: step.Cell})
	case StepComplete:
		c.playbackTimers = nil
		c.sequencePlaybackComplete()
	}
	c.publish()
}

// sequencePlaybackComplete moves Showing to AwaitingInput
func (c *Controller) sequencePlaybackComplete() {
	if c.session.Phase != PhaseShowing {
		return
	}
	c.session.Phase = PhaseAwaitingInput
	c.session.Progress = nil
	c.queue.Emit(events.EventPlaybackComplete, nil)
	c.log.Debug().Str("session", c.sessionID).Int("length", len(c.session.Sequence)).Msg("awaiting input")
}

// scheduleFeedbackClear clears the tapped cell after the feedback delay, then runs then
// A newer tap supersedes a pending clear
func (c *Controller) scheduleFeedbackClear(then func()) {
	c.cancelFeedback()
	gen := c.feedbackGen
	c.feedbackTimer = c.sched.After(constants.TapFeedbackDelay, func(time.Time) {
		if gen != c.feedbackGen {
			return
		}
		c.feedbackTimer = 0
		if cleared := c.activeCell; cleared != constants.NoCell {
			c.activeCell = constants.NoCell
			c.queue.Emit(events.EventCellClear, &events.CellPayload{Cell: cleared})
		}
		if then != nil {
			then()
		}
		c.publish()
	})
}

func (c *Controller) cancelPlayback() {
	c.playbackGen++
	for _, id := range c.playbackTimers {
		c.sched.Cancel(id)
	}
	c.playbackTimers = nil
}

func (c *Controller) cancelFeedback() {
	c.feedbackGen++
	if c.feedbackTimer != 0 {
		c.sched.Cancel(c.feedbackTimer)
		c.feedbackTimer = 0
	}
}

func (c *Controller) cancelTimers() {
	c.cancelPlayback()
	c.cancelFeedback()
}

// publish stores a new snapshot and emits EventStateChanged when it differs from the last one
func (c *Controller) publish() {
	st := State{
		Phase:          c.session.Phase,
		ActiveCell:     c.activeCell,
		Score:          c.session.Score,
		HighScore:      c.session.HighScore,
		Difficulty:     c.session.Difficulty,
		GameStarted:    c.gameStarted,
		AwaitingAck:    c.awaitingAck,
		FinalScore:     c.finalScore,
		SessionID:      c.sessionID,
		SequenceLength: len(c.session.Sequence),
		ProgressLength: len(c.session.Progress),
	}
	if prev := c.snapshot.Load(); prev != nil && *prev == st {
		return
	}
	c.snapshot.Store(&st)
	c.queue.Emit(events.EventStateChanged, st)
}
