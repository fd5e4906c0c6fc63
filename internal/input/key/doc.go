// Package key provides the key event model consumed by the input dispatcher.
//
// This package defines the fundamental types for representing keyboard input:
//
//   - Key: Identifies a keyboard key (special keys, keypad keys, or runes)
//   - Modifier: Represents modifier keys (Ctrl, Alt, Shift, Meta)
//   - Event: A single key press with modifiers and timestamp
//
// The dispatcher only ever looks at one character per event. Event.Char
// extracts it: the typed rune for character keys, a space for the space
// bar, the digit for keypad digits, and zero for keys that type nothing.
package key
