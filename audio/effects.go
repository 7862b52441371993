package audio

import (
	"math"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/generators"

	"github.com/lixenwraith/genius/constants"
)

// WaveType defines oscillator wave shapes
type WaveType int

const (
	WaveSine WaveType = iota
	WaveSquare
	WaveSaw
)

// oscillator generates raw audio waves for a fixed duration
type oscillator struct {
	freq     float64
	phase    float64
	duration int
	position int
	wave     WaveType
	rate     beep.SampleRate
}

// NewOscillator creates a new oscillator for wave generation
func NewOscillator(freq float64, duration time.Duration, wave WaveType, rate beep.SampleRate) beep.Streamer {
	return &oscillator{
		freq:     freq,
		duration: rate.N(duration),
		wave:     wave,
		rate:     rate,
	}
}

func (o *oscillator) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		if o.position >= o.duration {
			return i, i > 0
		}

		var val float64
		switch o.wave {
		case WaveSine:
			val = math.Sin(2 * math.Pi * o.phase)
		case WaveSquare:
			if o.phase < 0.5 {
				val = 1.0
			} else {
				val = -1.0
			}
		case WaveSaw:
			val = 2.0 * (o.phase - 0.5)
		}

		samples[i][0] = val
		samples[i][1] = val

		o.phase += o.freq / float64(o.rate)
		o.phase -= math.Floor(o.phase)
		o.position++
	}
	return len(samples), true
}

func (o *oscillator) Err() error { return nil }

// envelope applies attack/release shaping to a stream
type envelope struct {
	streamer       beep.Streamer
	position       int
	attackSamples  int
	releaseSamples int
	totalSamples   int
}

// NewEnvelope wraps s with a linear attack and release, total length is duration
func NewEnvelope(s beep.Streamer, duration, attack, release time.Duration, rate beep.SampleRate) beep.Streamer {
	return &envelope{
		streamer:       s,
		attackSamples:  rate.N(attack),
		releaseSamples: rate.N(release),
		totalSamples:   rate.N(duration),
	}
}

func (e *envelope) Stream(samples [][2]float64) (n int, ok bool) {
	if remaining := e.totalSamples - e.position; remaining < len(samples) {
		if remaining <= 0 {
			return 0, false
		}
		samples = samples[:remaining]
	}

	n, ok = e.streamer.Stream(samples)
	releaseStart := e.totalSamples - e.releaseSamples

	for i := 0; i < n; i++ {
		vol := 1.0
		if e.position < e.attackSamples && e.attackSamples > 0 {
			vol = float64(e.position) / float64(e.attackSamples)
		}
		if e.position >= releaseStart && e.releaseSamples > 0 {
			vol = math.Max(0, float64(e.totalSamples-e.position)/float64(e.releaseSamples))
		}
		samples[i][0] *= vol
		samples[i][1] *= vol
		e.position++
	}
	return n, ok
}

func (e *envelope) Err() error { return e.streamer.Err() }

// newVolume wraps s with a linear volume, math.Log2(0) is -Inf so zero is rendered silent
func newVolume(s beep.Streamer, vol float64) beep.Streamer {
	if vol <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Volume: 0, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(vol), Silent: false}
}

// CreateCellTone generates the tone of a grid cell, nil for an invalid cell
func CreateCellTone(cell int, vol float64, rate beep.SampleRate) beep.Streamer {
	if cell < 0 || cell >= constants.CellCount {
		return nil
	}
	sine, err := generators.SineTone(rate, constants.CellFrequencies[cell])
	if err != nil {
		return nil
	}
	tone := beep.Take(rate.N(constants.CellToneDuration), sine)
	shaped := NewEnvelope(tone, constants.CellToneDuration, constants.CellToneAttack, constants.CellToneRelease, rate)
	return newVolume(shaped, vol)
}

// CreateSuccessSound generates a two-note chime for a completed round
func CreateSuccessSound(vol float64, rate beep.SampleRate) beep.Streamer {
	// B5
	n1 := NewOscillator(987.77, constants.SuccessSoundNote1Duration, WaveSquare, rate)
	n1Shaped := NewEnvelope(n1, constants.SuccessSoundNote1Duration, constants.SuccessSoundAttack, constants.SuccessSoundNote1Release, rate)

	// E6
	n2 := NewOscillator(1318.51, constants.SuccessSoundNote2Duration, WaveSquare, rate)
	n2Shaped := NewEnvelope(n2, constants.SuccessSoundNote2Duration, constants.SuccessSoundAttack, constants.SuccessSoundNote2Release, rate)

	return newVolume(beep.Seq(n1Shaped, n2Shaped), vol*0.5)
}

// CreateFailureSound generates a low saw buzz for a wrong cell
func CreateFailureSound(vol float64, rate beep.SampleRate) beep.Streamer {
	osc := NewOscillator(110.0, constants.FailureSoundDuration, WaveSaw, rate)
	shaped := NewEnvelope(osc, constants.FailureSoundDuration, constants.FailureSoundAttack, constants.FailureSoundRelease, rate)
	return newVolume(shaped, vol*0.6)
}
