package game

import (
	"fmt"
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lixenwraith/genius/constants"
	"github.com/lixenwraith/genius/engine"
	"github.com/lixenwraith/genius/events"
	"github.com/lixenwraith/genius/sequence"
)

type harness struct {
	t     *testing.T
	clock *engine.MockTimeProvider
	queue *events.EventQueue
	ctrl  *Controller
}

func newHarness(t *testing.T, src sequence.Source, opts ...Option) *harness {
	t.Helper()
	clock := engine.NewMockTimeProvider(time.Time{})
	queue := events.NewEventQueue()
	ids := 0
	opts = append([]Option{WithIDSource(func() string {
		ids++
		return fmt.Sprintf("session-%d", ids)
	})}, opts...)
	ctrl := NewController(engine.NewScheduler(clock), sequence.NewGenerator(src), queue, opts...)
	queue.Consume() // initial snapshot
	return &harness{t: t, clock: clock, queue: queue, ctrl: ctrl}
}

func (h *harness) advance(d time.Duration) {
	h.ctrl.Tick(h.clock.Advance(d))
}

// playback advances in frame-sized steps until input is expected
func (h *harness) playback() {
	h.t.Helper()
	for i := 0; i < 10000; i++ {
		if h.ctrl.State().Phase == PhaseAwaitingInput {
			return
		}
		h.advance(constants.FrameUpdateInterval)
	}
	h.t.Fatalf("playback never completed, phase %s", h.ctrl.State().Phase)
}

func (h *harness) drain() []events.GameEvent {
	return h.queue.Consume()
}

func ofType(evs []events.GameEvent, et events.EventType) []events.GameEvent {
	var out []events.GameEvent
	for _, ev := range evs {
		if ev.Type == et {
			out = append(out, ev)
		}
	}
	return out
}

func highlightedCells(evs []events.GameEvent) []int {
	var cells []int
	for _, ev := range ofType(evs, events.EventCellHighlight) {
		cells = append(cells, ev.Payload.(*events.CellPayload).Cell)
	}
	return cells
}

func TestNewControllerIdle(t *testing.T) {
	h := newHarness(t, sequence.NewScriptedSource(0))
	st := h.ctrl.State()

	assert.Equal(t, PhaseIdle, st.Phase)
	assert.Equal(t, constants.NoCell, st.ActiveCell)
	assert.False(t, st.HasActiveCell())
	assert.False(t, st.GameStarted)
	assert.Equal(t, LevelEasy, st.Difficulty.Level)
}

func TestStartPlaysSequenceAfterLeadIn(t *testing.T) {
	h := newHarness(t, sequence.NewScriptedSource(2, 5))

	require.True(t, h.ctrl.Start())
	st := h.ctrl.State()
	assert.Equal(t, PhaseShowing, st.Phase)
	assert.True(t, st.GameStarted)
	assert.Equal(t, "session-1", st.SessionID)
	assert.Equal(t, []int{2, 5}, h.ctrl.Session().Sequence)
	h.drain()

	// Nothing lights during the lead-in
	h.advance(constants.LeadInDelay - time.Millisecond)
	assert.Empty(t, ofType(h.drain(), events.EventCellHighlight))
	assert.Equal(t, constants.NoCell, h.ctrl.State().ActiveCell)

	h.advance(time.Millisecond)
	assert.Equal(t, 2, h.ctrl.State().ActiveCell)

	h.advance(800 * time.Millisecond)
	assert.Equal(t, constants.NoCell, h.ctrl.State().ActiveCell)

	h.advance(300 * time.Millisecond)
	assert.Equal(t, 5, h.ctrl.State().ActiveCell)

	h.advance(800 * time.Millisecond)
	assert.Equal(t, constants.NoCell, h.ctrl.State().ActiveCell)
	assert.Equal(t, PhaseShowing, h.ctrl.State().Phase, "still showing during final pause")

	h.advance(300*time.Millisecond - time.Millisecond)
	assert.Equal(t, PhaseShowing, h.ctrl.State().Phase)
	h.advance(time.Millisecond)
	assert.Equal(t, PhaseAwaitingInput, h.ctrl.State().Phase)

	evs := h.drain()
	assert.Equal(t, []int{2, 5}, highlightedCells(evs))
	assert.Len(t, ofType(evs, events.EventPlaybackComplete), 1)
}

func TestScenarioEasyRoundSuccess(t *testing.T) {
	h := newHarness(t, sequence.NewScriptedSource(2, 5, 1))
	h.ctrl.Start()
	h.playback()
	h.drain()

	require.True(t, h.ctrl.SubmitTap(2))
	assert.Equal(t, PhaseAwaitingInput, h.ctrl.State().Phase)
	assert.Equal(t, 2, h.ctrl.State().ActiveCell)

	require.True(t, h.ctrl.SubmitTap(5))
	st := h.ctrl.State()
	assert.Equal(t, 1, st.Score)
	assert.Equal(t, 1, st.HighScore)
	assert.Equal(t, 3, st.SequenceLength)
	assert.Equal(t, PhaseShowing, st.Phase)
	assert.Equal(t, []int{2, 5, 1}, h.ctrl.Session().Sequence)
	assert.Empty(t, h.ctrl.Session().Progress)

	evs := h.drain()
	success := ofType(evs, events.EventRoundSuccess)
	require.Len(t, success, 1)
	assert.Equal(t, &events.RoundSuccessPayload{Score: 1, HighScore: 1, SessionID: "session-1"}, success[0].Payload)
	assert.Len(t, ofType(evs, events.EventTapFeedback), 2)

	// Tap feedback clears after 300ms, next playback starts 1000ms later
	h.advance(constants.TapFeedbackDelay)
	assert.Equal(t, constants.NoCell, h.ctrl.State().ActiveCell)
	h.advance(constants.LeadInDelay - time.Millisecond)
	assert.Equal(t, constants.NoCell, h.ctrl.State().ActiveCell)
	h.advance(time.Millisecond)
	assert.Equal(t, 2, h.ctrl.State().ActiveCell)

	h.playback()
	assert.Equal(t, []int{2, 5, 1}, highlightedCells(h.drain()))
}

func TestScenarioEasyFailure(t *testing.T) {
	h := newHarness(t, sequence.NewScriptedSource(2, 5))
	h.ctrl.Start()
	h.playback()
	h.drain()

	h.ctrl.SubmitTap(2)
	h.ctrl.SubmitTap(7)

	st := h.ctrl.State()
	assert.Equal(t, PhaseIdle, st.Phase)
	assert.False(t, st.GameStarted)
	assert.False(t, st.AwaitingAck, "prompt waits for the failure report")
	assert.Equal(t, 7, st.ActiveCell, "wrong cell stays lit during feedback")
	assert.Empty(t, ofType(h.drain(), events.EventFailure), "failure is reported after the feedback delay")

	h.advance(constants.TapFeedbackDelay)
	evs := h.drain()
	failures := ofType(evs, events.EventFailure)
	require.Len(t, failures, 1)
	assert.Equal(t, &events.FailurePayload{FinalScore: 0, SessionID: "session-1"}, failures[0].Payload)
	st = h.ctrl.State()
	assert.Equal(t, constants.NoCell, st.ActiveCell)
	assert.True(t, st.AwaitingAck)
	assert.Equal(t, 0, st.FinalScore)

	// Further taps are ignored
	assert.False(t, h.ctrl.SubmitTap(2))
}

func TestPlaybackStepsKeepOffsetsUnderLateTicks(t *testing.T) {
	h := newHarness(t, sequence.NewScriptedSource(2, 5))
	flash := LevelEasy.Setting().Flash
	pause := LevelEasy.Setting().Pause
	late := 40 * time.Millisecond

	h.ctrl.Start()
	h.advance(constants.LeadInDelay + late)
	require.Equal(t, 2, h.ctrl.State().ActiveCell, "first highlight fires on a late tick")

	// Clear stays at lead-in + flash, not shifted by the late tick
	h.advance(flash - late - time.Millisecond)
	assert.Equal(t, 2, h.ctrl.State().ActiveCell)
	h.advance(time.Millisecond)
	assert.Equal(t, constants.NoCell, h.ctrl.State().ActiveCell)

	h.advance(pause)
	assert.Equal(t, 5, h.ctrl.State().ActiveCell)
}

func TestTapWhileShowingIgnored(t *testing.T) {
	h := newHarness(t, sequence.NewScriptedSource(2, 5))
	h.ctrl.Start()
	h.advance(constants.LeadInDelay + 100*time.Millisecond)
	h.drain()

	before := h.ctrl.State()
	sessBefore := h.ctrl.Session()

	assert.False(t, h.ctrl.SubmitTap(2))
	assert.Equal(t, before, h.ctrl.State())
	assert.Equal(t, sessBefore, h.ctrl.Session())
	assert.Equal(t, 0, h.queue.Len(), "no event for an ignored tap")
}

func TestTapWhileIdleIgnored(t *testing.T) {
	h := newHarness(t, sequence.NewScriptedSource(2, 5))
	assert.False(t, h.ctrl.SubmitTap(0))
	assert.Equal(t, 0, h.queue.Len())
}

func TestTapOutOfRangeIgnored(t *testing.T) {
	h := newHarness(t, sequence.NewScriptedSource(2, 5))
	h.ctrl.Start()
	h.playback()
	h.drain()

	assert.False(t, h.ctrl.SubmitTap(-1))
	assert.False(t, h.ctrl.SubmitTap(constants.CellCount))
	assert.Equal(t, PhaseAwaitingInput, h.ctrl.State().Phase)
	assert.Equal(t, 0, h.queue.Len())
}

func TestTwoConsecutiveSuccesses(t *testing.T) {
	h := newHarness(t, sequence.NewScriptedSource(2, 5, 1, 4))
	h.ctrl.Start()

	h.playback()
	h.ctrl.SubmitTap(2)
	h.ctrl.SubmitTap(5)
	assert.Equal(t, 1, h.ctrl.State().Score)
	assert.Equal(t, 1, h.ctrl.State().HighScore)

	h.playback()
	h.ctrl.SubmitTap(2)
	h.ctrl.SubmitTap(5)
	h.ctrl.SubmitTap(1)
	assert.Equal(t, 2, h.ctrl.State().Score)
	assert.Equal(t, 2, h.ctrl.State().HighScore)
	assert.Equal(t, []int{2, 5, 1, 4}, h.ctrl.Session().Sequence)
}

func TestHighScoreSurvivesNewGame(t *testing.T) {
	h := newHarness(t, sequence.NewScriptedSource(2, 5, 1))
	h.ctrl.Start()
	h.playback()
	h.ctrl.SubmitTap(2)
	h.ctrl.SubmitTap(5)
	h.playback()
	h.ctrl.SubmitTap(8) // wrong
	h.advance(constants.TapFeedbackDelay)

	require.True(t, h.ctrl.AcknowledgeFailure())
	st := h.ctrl.State()
	assert.Equal(t, 0, st.Score)
	assert.Equal(t, 1, st.HighScore)
	assert.Equal(t, PhaseShowing, st.Phase)
	assert.False(t, st.AwaitingAck)
	assert.Equal(t, "session-2", st.SessionID)
}

func TestStopCancelsPlayback(t *testing.T) {
	h := newHarness(t, sequence.NewScriptedSource(2, 5))
	h.ctrl.Start()
	h.advance(constants.LeadInDelay) // cell 2 lit
	require.Equal(t, 2, h.ctrl.State().ActiveCell)

	h.ctrl.Stop()
	st := h.ctrl.State()
	assert.Equal(t, PhaseIdle, st.Phase)
	assert.False(t, st.GameStarted)
	assert.Equal(t, constants.NoCell, st.ActiveCell)
	h.drain()

	// No stale highlight or phase change leaks through
	h.advance(10 * time.Second)
	assert.Equal(t, 0, h.queue.Len())
	assert.Equal(t, PhaseIdle, h.ctrl.State().Phase)
}

func TestStopKeepsHighScore(t *testing.T) {
	h := newHarness(t, sequence.NewScriptedSource(2, 5, 1))
	h.ctrl.Start()
	h.playback()
	h.ctrl.SubmitTap(2)
	h.ctrl.SubmitTap(5)

	h.ctrl.Stop()
	assert.Equal(t, 1, h.ctrl.State().HighScore)
}

func TestStopDuringFailureFeedbackSuppressesPrompt(t *testing.T) {
	h := newHarness(t, sequence.NewScriptedSource(2, 5))
	h.ctrl.Start()
	h.playback()
	h.ctrl.SubmitTap(7)
	h.ctrl.Stop()
	h.drain()

	h.advance(time.Second)
	assert.Empty(t, ofType(h.drain(), events.EventFailure))
	assert.False(t, h.ctrl.State().AwaitingAck)
}

func TestRestartCancelsPriorTimeline(t *testing.T) {
	h := newHarness(t, sequence.NewScriptedSource(2, 5, 6, 7))
	h.ctrl.Start()
	h.playback()

	// Restart from AwaitingInput with a fresh sequence
	require.True(t, h.ctrl.Start())
	assert.Equal(t, []int{6, 7}, h.ctrl.Session().Sequence)
	h.drain()

	h.playback()
	assert.Equal(t, []int{6, 7}, highlightedCells(h.drain()))
}

func TestStartIgnoredWhileShowing(t *testing.T) {
	h := newHarness(t, sequence.NewScriptedSource(2, 5, 6, 7))
	h.ctrl.Start()
	assert.False(t, h.ctrl.Start())
	assert.Equal(t, []int{2, 5}, h.ctrl.Session().Sequence)
}

func TestSetDifficulty(t *testing.T) {
	h := newHarness(t, sequence.NewScriptedSource(1))

	require.True(t, h.ctrl.SetDifficulty(LevelHard))
	assert.Equal(t, LevelHard, h.ctrl.State().Difficulty.Level)
	assert.Len(t, ofType(h.drain(), events.EventStateChanged), 1)

	// Idempotent
	before := h.ctrl.State()
	assert.False(t, h.ctrl.SetDifficulty(LevelHard))
	assert.False(t, h.ctrl.SetDifficulty(LevelHard))
	assert.Equal(t, before, h.ctrl.State())
	assert.Equal(t, 0, h.queue.Len())

	// Ignored mid-session
	h.ctrl.Start()
	assert.Equal(t, 4, h.ctrl.State().SequenceLength)
	assert.False(t, h.ctrl.SetDifficulty(LevelEasy))
	h.playback()
	assert.False(t, h.ctrl.SetDifficulty(LevelEasy))
	assert.Equal(t, LevelHard, h.ctrl.State().Difficulty.Level)

	// Allowed again after reset
	h.ctrl.Stop()
	assert.True(t, h.ctrl.SetDifficulty(LevelMedium))
	assert.False(t, h.ctrl.SetDifficulty(Level(42)))
}

func TestPressStartOrReset(t *testing.T) {
	h := newHarness(t, sequence.NewScriptedSource(2, 5))

	h.ctrl.PressStartOrReset()
	assert.True(t, h.ctrl.State().GameStarted)

	h.ctrl.PressStartOrReset()
	assert.False(t, h.ctrl.State().GameStarted)
	assert.Equal(t, PhaseIdle, h.ctrl.State().Phase)

	h.ctrl.PressStartOrReset()
	h.playback()
	h.ctrl.SubmitTap(0) // wrong
	h.advance(constants.TapFeedbackDelay)
	require.True(t, h.ctrl.State().AwaitingAck)

	h.ctrl.PressStartOrReset()
	st := h.ctrl.State()
	assert.False(t, st.AwaitingAck)
	assert.True(t, st.GameStarted)
	assert.Equal(t, PhaseShowing, st.Phase)
}

func TestFailureFeedbackWindowBlocksRestart(t *testing.T) {
	h := newHarness(t, sequence.NewScriptedSource(2, 5))
	h.ctrl.Start()
	h.playback()
	h.ctrl.SubmitTap(7) // wrong
	h.drain()

	// Nothing to acknowledge yet, start/reset and difficulty wait for the report
	assert.False(t, h.ctrl.AcknowledgeFailure())
	assert.False(t, h.ctrl.Start())
	assert.False(t, h.ctrl.SetDifficulty(LevelHard))
	h.ctrl.PressStartOrReset()
	st := h.ctrl.State()
	assert.Equal(t, PhaseIdle, st.Phase)
	assert.False(t, st.GameStarted)
	assert.Equal(t, "session-1", st.SessionID)

	h.advance(constants.TapFeedbackDelay)
	require.Len(t, ofType(h.drain(), events.EventFailure), 1, "failure is still reported")
	require.True(t, h.ctrl.State().AwaitingAck)

	require.True(t, h.ctrl.AcknowledgeFailure())
	assert.Equal(t, PhaseShowing, h.ctrl.State().Phase)
}

func TestFinalScoreMatchesFailedSession(t *testing.T) {
	h := newHarness(t, sequence.NewScriptedSource(2, 5, 1, 3, 4))

	// Game 1 fails at score 1
	h.ctrl.Start()
	h.playback()
	h.ctrl.SubmitTap(2)
	h.ctrl.SubmitTap(5)
	h.playback()
	h.ctrl.SubmitTap(8)
	h.advance(constants.TapFeedbackDelay)
	require.Equal(t, 1, h.ctrl.State().FinalScore)

	// Game 2 fails at score 0
	require.True(t, h.ctrl.AcknowledgeFailure())
	assert.Equal(t, 0, h.ctrl.State().FinalScore)
	h.playback()
	h.ctrl.SubmitTap(8)
	assert.False(t, h.ctrl.State().AwaitingAck, "no prompt with a stale score during feedback")

	h.advance(constants.TapFeedbackDelay)
	st := h.ctrl.State()
	assert.True(t, st.AwaitingAck)
	assert.Equal(t, 0, st.FinalScore)
	assert.Equal(t, 1, st.HighScore)
}

func TestAcknowledgeWithoutFailure(t *testing.T) {
	h := newHarness(t, sequence.NewScriptedSource(2, 5))
	assert.False(t, h.ctrl.AcknowledgeFailure())
	assert.Equal(t, PhaseIdle, h.ctrl.State().Phase)
}

func TestWithDifficultyOption(t *testing.T) {
	h := newHarness(t, sequence.NewScriptedSource(1), WithDifficulty(LevelMedium))
	h.ctrl.Start()
	assert.Len(t, h.ctrl.Session().Sequence, 3)
}

func TestUnchangedStateNotRepublished(t *testing.T) {
	h := newHarness(t, sequence.NewScriptedSource(2, 5))
	h.ctrl.Stop() // already idle
	assert.Empty(t, ofType(h.drain(), events.EventStateChanged))
}

// TestInvariantsUnderRandomPlay drives many sessions with random taps and checks
// the session invariants after every operation
func TestInvariantsUnderRandomPlay(t *testing.T) {
	for seed := int64(1); seed <= 25; seed++ {
		rng := rand.New(rand.NewSource(seed))
		level := Levels()[rng.Intn(3)]
		h := newHarness(t, rand.New(rand.NewSource(seed*7919)), WithDifficulty(level))

		highScore := 0
		check := func() {
			s := h.ctrl.Session()
			st := h.ctrl.State()
			require.True(t, sequence.Valid(s.Sequence))
			require.GreaterOrEqual(t, s.HighScore, s.Score)
			require.GreaterOrEqual(t, s.HighScore, highScore, "high score must never decrease")
			highScore = s.HighScore
			if s.Phase == PhaseAwaitingInput {
				require.LessOrEqual(t, len(s.Progress), len(s.Sequence))
				for i, c := range s.Progress {
					require.Equal(t, s.Sequence[i], c, "progress must be a prefix")
				}
			}
			if st.GameStarted {
				require.Equal(t, s.Difficulty.InitialLength+s.Score, len(s.Sequence))
			}
			require.LessOrEqual(t, st.ActiveCell, constants.CellCount-1)
		}

		h.ctrl.Start()
		for op := 0; op < 400; op++ {
			switch rng.Intn(10) {
			case 0:
				h.ctrl.PressStartOrReset()
			case 1, 2:
				h.advance(time.Duration(rng.Intn(1500)) * time.Millisecond)
			default:
				s := h.ctrl.Session()
				if s.Phase == PhaseAwaitingInput && rng.Intn(6) > 0 {
					// mostly correct taps so rounds complete
					h.ctrl.SubmitTap(s.Sequence[len(s.Progress)])
				} else {
					h.ctrl.SubmitTap(rng.Intn(constants.CellCount))
				}
			}
			check()
			h.drain()
		}
	}
}
