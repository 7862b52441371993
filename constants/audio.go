package constants

import "time"

// Audio Engine
const (
	// AudioSampleRate is the speaker sample rate in Hz
	AudioSampleRate = 48000

	// SpeakerBufferDuration is the speaker buffer length
	SpeakerBufferDuration = 100 * time.Millisecond

	// DefaultMasterVolume is the master volume applied when none is configured
	DefaultMasterVolume = 0.6
)

// Cell Tone Timing
const (
	CellToneDuration = 250 * time.Millisecond
	CellToneAttack   = 5 * time.Millisecond
	CellToneRelease  = 120 * time.Millisecond
)

// Failure Buzz Timing
const (
	FailureSoundDuration = 400 * time.Millisecond
	FailureSoundAttack   = 5 * time.Millisecond
	FailureSoundRelease  = 150 * time.Millisecond
)

// Success Chime Timing
const (
	SuccessSoundNote1Duration = 80 * time.Millisecond
	SuccessSoundNote2Duration = 280 * time.Millisecond
	SuccessSoundAttack        = 5 * time.Millisecond
	SuccessSoundNote1Release  = 40 * time.Millisecond
	SuccessSoundNote2Release  = 200 * time.Millisecond
)

// CellFrequencies maps each grid cell to a tone, C major pentatonic ascending left-to-right, top-to-bottom
var CellFrequencies = [CellCount]float64{
	261.63, 293.66, 329.63,
	392.00, 440.00, 523.25,
	587.33, 659.25, 783.99,
}
