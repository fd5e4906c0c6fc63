package key

import (
	"testing"
)

func TestNewRuneEvent(t *testing.T) {
	e := NewRuneEvent('a', ModNone)
	if e.Key != KeyRune {
		t.Errorf("NewRuneEvent key = %v, want KeyRune", e.Key)
	}
	if e.Rune != 'a' {
		t.Errorf("NewRuneEvent rune = %q, want 'a'", e.Rune)
	}
	if e.Timestamp.IsZero() {
		t.Error("NewRuneEvent should set a timestamp")
	}
}

func TestNewSpecialEvent(t *testing.T) {
	e := NewSpecialEvent(KeyEscape, ModNone)
	if e.Key != KeyEscape {
		t.Errorf("NewSpecialEvent key = %v, want KeyEscape", e.Key)
	}
	if e.Rune != 0 {
		t.Errorf("NewSpecialEvent rune = %q, want 0", e.Rune)
	}
}

func TestEventChar(t *testing.T) {
	tests := []struct {
		name  string
		event Event
		want  rune
	}{
		{"lower n", NewRuneEvent('n', ModNone), 'n'},
		{"upper P", NewRuneEvent('P', ModShift), 'P'},
		{"digit", NewRuneEvent('7', ModNone), '7'},
		{"space rune", NewRuneEvent(' ', ModNone), ' '},
		{"space key", NewSpecialEvent(KeySpace, ModNone), ' '},
		{"keypad 1", NewSpecialEvent(KeyKP1, ModNone), '1'},
		{"keypad 9", NewSpecialEvent(KeyKP9, ModNone), '9'},
		{"keypad 0", NewSpecialEvent(KeyKP0, ModNone), '0'},
		{"arrow", NewSpecialEvent(KeyUp, ModNone), 0},
		{"enter", NewSpecialEvent(KeyEnter, ModNone), 0},
		{"pause key", NewSpecialEvent(KeyPause, ModNone), 0},
		{"zero rune", Event{Key: KeyRune}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.event.Char(); got != tt.want {
				t.Errorf("Char() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestEventIsInterrupt(t *testing.T) {
	if !NewRuneEvent('c', ModCtrl).IsInterrupt() {
		t.Error("Ctrl+c should be an interrupt")
	}
	if NewRuneEvent('c', ModNone).IsInterrupt() {
		t.Error("plain c should not be an interrupt")
	}
}

func TestEventString(t *testing.T) {
	tests := []struct {
		event Event
		want  string
	}{
		{NewRuneEvent('a', ModNone), "a"},
		{NewRuneEvent(' ', ModNone), "Space"},
		{NewRuneEvent('c', ModCtrl), "C-c"},
		{NewSpecialEvent(KeyUp, ModShift), "S-Up"},
		{NewSpecialEvent(KeyKP3, ModNone), "KP3"},
	}

	for _, tt := range tests {
		if got := tt.event.String(); got != tt.want {
			t.Errorf("String() = %q, want %q", got, tt.want)
		}
	}
}
