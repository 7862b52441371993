package status

import "sync/atomic"

// Counter and label keys
const (
	GamesStarted    = "games_started"
	RoundsCompleted = "rounds_completed"
	Failures        = "failures"
	Taps            = "taps"
	Playbacks       = "playbacks"
	BestScore       = "best_score"

	LabelPhase      = "phase"
	LabelDifficulty = "difficulty"
	LabelSession    = "session"
)

// Registry is the gameplay metrics facade
// The game loop writes through cached pointers, the HTTP surface reads Snapshot from any goroutine
type Registry struct {
	Counters *MetricMap[atomic.Int64]
	Labels   *MetricMap[AtomicString]
}

// NewRegistry creates an initialized Registry
func NewRegistry() *Registry {
	return &Registry{
		Counters: NewMetricMap[atomic.Int64](),
		Labels:   NewMetricMap[AtomicString](),
	}
}

// Snapshot copies every metric into a plain map
func (r *Registry) Snapshot() map[string]any {
	out := make(map[string]any, r.Counters.Len()+r.Labels.Len())
	r.Counters.Range(func(k string, v *atomic.Int64) { out[k] = v.Load() })
	r.Labels.Range(func(k string, v *AtomicString) { out[k] = v.Load() })
	return out
}
