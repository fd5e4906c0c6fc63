package view

import (
	"github.com/dshills/sudoku/internal/renderer/core"
)

// PauseButtonLabel is the clickable pause control.
const PauseButtonLabel = "[ Pause ]"

// StatusBar mirrors the input mode and carries a one-line message.
type StatusBar struct {
	notes   bool
	message string

	// Screen area of the pause button as last drawn.
	pauseButton core.ScreenRect
}

// NewStatusBar creates a status bar in normal mode.
func NewStatusBar() *StatusBar {
	return &StatusBar{}
}

// SetNotesMode shows notes mode.
func (s *StatusBar) SetNotesMode() { s.notes = true }

// SetNormalMode shows normal mode.
func (s *StatusBar) SetNormalMode() { s.notes = false }

// NotesMode reports the displayed mode.
func (s *StatusBar) NotesMode() bool { return s.notes }

// ModeLabel returns the name of the displayed mode.
func (s *StatusBar) ModeLabel() string {
	if s.notes {
		return "Notes"
	}
	return "Normal"
}

// SetMessage replaces the message line.
func (s *StatusBar) SetMessage(msg string) { s.message = msg }

// Message returns the message line.
func (s *StatusBar) Message() string { return s.message }

// SetPauseButton records where the pause button was drawn.
func (s *StatusBar) SetPauseButton(r core.ScreenRect) { s.pauseButton = r }

// PauseButtonAt reports whether x, y falls on the pause button.
func (s *StatusBar) PauseButtonAt(x, y int) bool {
	return s.pauseButton.Contains(x, y)
}
