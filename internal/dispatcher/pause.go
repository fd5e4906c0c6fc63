package dispatcher

// PauseState is the pause flag of one game session.
//
// It is created by whoever owns the session and handed by reference to
// the dispatcher and to any other pause trigger, so every trigger
// observes the same value.
type PauseState struct {
	paused bool
}

// NewPauseState creates an unpaused state.
func NewPauseState() *PauseState {
	return &PauseState{}
}

// Paused reports the current value.
func (p *PauseState) Paused() bool {
	return p.paused
}

// Set overwrites the current value.
func (p *PauseState) Set(paused bool) {
	p.paused = paused
}

// Toggle flips the value and returns the new one.
func (p *PauseState) Toggle() bool {
	p.paused = !p.paused
	return p.paused
}
