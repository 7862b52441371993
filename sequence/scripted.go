package sequence

// ScriptedSource replays fixed values, cycling when exhausted
// Values are reduced modulo n so any script stays in range
type ScriptedSource struct {
	values []int
	pos    int
}

// NewScriptedSource creates a source replaying values
func NewScriptedSource(values ...int) *ScriptedSource {
	return &ScriptedSource{values: values}
}

// Intn returns the next scripted value modulo n
func (s *ScriptedSource) Intn(n int) int {
	if len(s.values) == 0 || n <= 0 {
		return 0
	}
	v := s.values[s.pos%len(s.values)]
	s.pos++
	v %= n
	if v < 0 {
		v += n
	}
	return v
}

// Draws returns how many values were consumed
func (s *ScriptedSource) Draws() int {
	return s.pos
}
