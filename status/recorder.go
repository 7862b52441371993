package status

import (
	"sync/atomic"

	"github.com/lixenwraith/genius/events"
	"github.com/lixenwraith/genius/game"
)

// Recorder feeds the registry from routed game events
type Recorder struct {
	games     *atomic.Int64
	rounds    *atomic.Int64
	failures  *atomic.Int64
	taps      *atomic.Int64
	playbacks *atomic.Int64
	best      *atomic.Int64

	phase      *AtomicString
	difficulty *AtomicString
	session    *AtomicString

	lastSession string
}

// NewRecorder caches metric pointers from reg
func NewRecorder(reg *Registry) *Recorder {
	return &Recorder{
		games:      reg.Counters.Get(GamesStarted),
		rounds:     reg.Counters.Get(RoundsCompleted),
		failures:   reg.Counters.Get(Failures),
		taps:       reg.Counters.Get(Taps),
		playbacks:  reg.Counters.Get(Playbacks),
		best:       reg.Counters.Get(BestScore),
		phase:      reg.Labels.Get(LabelPhase),
		difficulty: reg.Labels.Get(LabelDifficulty),
		session:    reg.Labels.Get(LabelSession),
	}
}

// HandleEvent implements events.Handler
func (r *Recorder) HandleEvent(st game.State, ev events.GameEvent) {
	switch ev.Type {
	case events.EventStateChanged:
		if s, ok := ev.Payload.(game.State); ok {
			st = s
		}
		r.phase.Store(st.Phase.String())
		r.difficulty.Store(st.Difficulty.Level.String())
		if st.SessionID != "" && st.SessionID != r.lastSession {
			r.lastSession = st.SessionID
			r.session.Store(st.SessionID)
			r.games.Add(1)
		}
	case events.EventTapFeedback:
		r.taps.Add(1)
	case events.EventPlaybackComplete:
		r.playbacks.Add(1)
	case events.EventRoundSuccess:
		r.rounds.Add(1)
		if p, ok := ev.Payload.(*events.RoundSuccessPayload); ok && int64(p.HighScore) > r.best.Load() {
			r.best.Store(int64(p.HighScore))
		}
	case events.EventFailure:
		r.failures.Add(1)
	}
}

// EventTypes implements events.Handler
func (r *Recorder) EventTypes() []events.EventType {
	return []events.EventType{
		events.EventStateChanged,
		events.EventTapFeedback,
		events.EventPlaybackComplete,
		events.EventRoundSuccess,
		events.EventFailure,
	}
}
