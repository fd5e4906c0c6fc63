package sound

import (
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"

	"github.com/dshills/sudoku/internal/dispatcher"
)

const sampleRate = beep.SampleRate(44100)

// Manager owns the speaker and plays feedback tones.
type Manager struct {
	mu          sync.Mutex
	mixer       *beep.Mixer
	initialized bool
	enabled     bool

	// play replaces the mixer for tests.
	play func(Tone)
}

// NewManager creates a manager. Call Initialize to open the speaker.
func NewManager(enabled bool) *Manager {
	return &Manager{
		mixer:   &beep.Mixer{},
		enabled: enabled,
	}
}

// Initialize opens the speaker. On error the manager stays silent.
func (m *Manager) Initialize() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.initialized {
		return nil
	}

	if err := speaker.Init(sampleRate, sampleRate.N(100*time.Millisecond)); err != nil {
		return err
	}

	speaker.Play(m.mixer)
	m.initialized = true
	return nil
}

// Cleanup stops all sounds.
func (m *Manager) Cleanup() {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.initialized {
		return
	}
	speaker.Lock()
	m.mixer.Clear()
	speaker.Unlock()
	m.initialized = false
}

// SetEnabled mutes or unmutes feedback.
func (m *Manager) SetEnabled(enabled bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.enabled = enabled
}

// Enabled reports whether feedback is audible.
func (m *Manager) Enabled() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.enabled
}

// Play mixes a tone into the output.
func (m *Manager) Play(t Tone) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.enabled {
		return
	}
	if m.play != nil {
		m.play(t)
		return
	}
	if !m.initialized {
		return
	}

	speaker.Lock()
	m.mixer.Add(NewStreamer(t, sampleRate))
	speaker.Unlock()
}

// PostDispatch plays the tone for a dispatched action.
func (m *Manager) PostDispatch(action dispatcher.Action) {
	if t, ok := ToneFor(action); ok {
		m.Play(t)
	}
}

// ToneFor maps an action to its feedback tone. Refused moves are silent.
func ToneFor(action dispatcher.Action) (Tone, bool) {
	if action.Rejected {
		return Tone{}, false
	}
	switch action.Kind {
	case dispatcher.ActionPlayNumber:
		return TonePlay, true
	case dispatcher.ActionSetNote:
		return ToneNote, true
	case dispatcher.ActionRemoveNumber:
		return ToneRemove, true
	case dispatcher.ActionToggleNotes:
		return ToneModeSwitch, true
	case dispatcher.ActionTogglePause:
		if action.Paused {
			return TonePause, true
		}
		return ToneResume, true
	default:
		return Tone{}, false
	}
}
