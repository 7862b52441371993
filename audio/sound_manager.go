package audio

import (
	"errors"
	"fmt"
	"sync"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"
	"github.com/rs/zerolog"

	"github.com/lixenwraith/genius/constants"
)

const (
	sampleRate = beep.SampleRate(constants.AudioSampleRate)
)

// Sentinel errors
var (
	ErrAudioDisabled = errors.New("audio disabled by configuration")
)

// SoundManager manages all game audio
// Every Play method is a no-op until Initialize succeeds, the game runs without sound
type SoundManager struct {
	mu          sync.Mutex
	mixer       *beep.Mixer
	enabled     bool
	muted       bool
	volume      float64
	initialized bool
	log         zerolog.Logger

	// play hands a streamer to the speaker, replaced in tests
	play func(beep.Streamer)
}

// NewSoundManager creates a new sound manager
func NewSoundManager(enabled bool, volume float64, log zerolog.Logger) *SoundManager {
	sm := &SoundManager{
		mixer:   &beep.Mixer{},
		enabled: enabled,
		volume:  clampVolume(volume),
		log:     log,
	}
	sm.play = sm.playOnSpeaker
	return sm
}

// Initialize sets up the audio system
func (sm *SoundManager) Initialize() error {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if sm.initialized {
		return nil
	}
	if !sm.enabled {
		return ErrAudioDisabled
	}

	if err := speaker.Init(sampleRate, sampleRate.N(constants.SpeakerBufferDuration)); err != nil {
		return fmt.Errorf("speaker init: %w", err)
	}

	speaker.Play(sm.mixer)
	sm.initialized = true
	sm.log.Debug().Int("sample_rate", int(sampleRate)).Msg("audio initialized")
	return nil
}

// Cleanup stops all sounds and closes the audio system
func (sm *SoundManager) Cleanup() {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if !sm.initialized {
		return
	}

	speaker.Lock()
	sm.mixer.Clear()
	speaker.Unlock()
	speaker.Close()

	sm.initialized = false
}

// SetVolume updates master volume (0.0-1.0)
func (sm *SoundManager) SetVolume(vol float64) {
	sm.mu.Lock()
	sm.volume = clampVolume(vol)
	sm.mu.Unlock()
}

// Volume returns master volume
func (sm *SoundManager) Volume() float64 {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	return sm.volume
}

// ToggleMute flips the mute state and returns the new value
func (sm *SoundManager) ToggleMute() bool {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	sm.muted = !sm.muted
	return sm.muted
}

// PlayCell plays the tone of a grid cell
func (sm *SoundManager) PlayCell(cell int) {
	sm.emit(func(vol float64) beep.Streamer { return CreateCellTone(cell, vol, sampleRate) })
}

// PlaySuccess plays the round completion chime
func (sm *SoundManager) PlaySuccess() {
	sm.emit(func(vol float64) beep.Streamer { return CreateSuccessSound(vol, sampleRate) })
}

// PlayFailure plays the wrong cell buzz
func (sm *SoundManager) PlayFailure() {
	sm.emit(func(vol float64) beep.Streamer { return CreateFailureSound(vol, sampleRate) })
}

func (sm *SoundManager) emit(build func(vol float64) beep.Streamer) {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if !sm.initialized || sm.muted || sm.volume <= 0 {
		return
	}
	if s := build(sm.volume); s != nil {
		sm.play(s)
	}
}

// playOnSpeaker adds s to the mixer under the speaker lock, the speaker goroutine streams the mixer
func (sm *SoundManager) playOnSpeaker(s beep.Streamer) {
	speaker.Lock()
	sm.mixer.Add(s)
	speaker.Unlock()
}

func clampVolume(vol float64) float64 {
	if vol < 0 {
		return 0
	}
	if vol > 1 {
		return 1
	}
	return vol
}
