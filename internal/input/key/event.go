package key

import (
	"strings"
	"time"
)

// Event represents a single key press event.
type Event struct {
	// Key identifies the key pressed.
	Key Key

	// Rune is the character for KeyRune events.
	Rune rune

	// Modifiers contains the active modifier keys.
	Modifiers Modifier

	// Timestamp is when the event occurred.
	Timestamp time.Time
}

// NewEvent creates a key event with the current timestamp.
func NewEvent(key Key, r rune, mods Modifier) Event {
	return Event{
		Key:       key,
		Rune:      r,
		Modifiers: mods,
		Timestamp: time.Now(),
	}
}

// NewRuneEvent creates a key event for a character.
func NewRuneEvent(r rune, mods Modifier) Event {
	return NewEvent(KeyRune, r, mods)
}

// NewSpecialEvent creates a key event for a special key.
func NewSpecialEvent(key Key, mods Modifier) Event {
	return NewEvent(key, 0, mods)
}

// IsRune returns true if this is a character key event.
func (e Event) IsRune() bool {
	return e.Key == KeyRune && e.Rune != 0
}

// Text returns the text the key types, or "" for keys that type nothing.
func (e Event) Text() string {
	switch {
	case e.IsRune():
		return string(e.Rune)
	case e.Key == KeySpace:
		return " "
	case e.Key.IsKeypadDigit():
		return string(rune('0' + int(e.Key-KeyKP0)))
	default:
		return ""
	}
}

// Char returns the first character of the event's text, or 0 when the
// key types nothing. This is the only part of an event the dispatcher
// consults.
func (e Event) Char() rune {
	for _, r := range e.Text() {
		return r
	}
	return 0
}

// IsInterrupt returns true for Ctrl+C.
func (e Event) IsInterrupt() bool {
	return e.IsRune() && e.Modifiers.HasCtrl() && (e.Rune == 'c' || e.Rune == 'C')
}

// String returns a canonical string representation.
// Examples: "a", "Space", "C-c", "Up", "KP7"
func (e Event) String() string {
	var parts []string

	if e.Modifiers.HasCtrl() {
		parts = append(parts, "C")
	}
	if e.Modifiers.HasAlt() {
		parts = append(parts, "A")
	}
	if e.Modifiers.HasMeta() {
		parts = append(parts, "M")
	}
	// Only show Shift for non-character keys
	if e.Modifiers.HasShift() && !e.IsRune() {
		parts = append(parts, "S")
	}

	var keyName string
	switch {
	case e.Key == KeyRune && e.Rune == ' ':
		keyName = "Space"
	case e.Key == KeyRune:
		keyName = string(e.Rune)
	default:
		keyName = e.Key.String()
	}

	parts = append(parts, keyName)
	return strings.Join(parts, "-")
}
