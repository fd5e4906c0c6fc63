package dispatcher

import "fmt"

// ActionKind identifies what an effective key press did.
type ActionKind uint8

const (
	// ActionNone is the zero value and is never dispatched.
	ActionNone ActionKind = iota

	// ActionToggleNotes flipped notes mode.
	ActionToggleNotes

	// ActionTogglePause flipped the pause state.
	ActionTogglePause

	// ActionPlayNumber committed a digit to the selected cell.
	ActionPlayNumber

	// ActionSetNote annotated the selected cell with a candidate digit.
	ActionSetNote

	// ActionRemoveNumber cleared the selected cell.
	ActionRemoveNumber
)

// String returns the action name used in logs and scripts.
func (k ActionKind) String() string {
	switch k {
	case ActionNone:
		return "none"
	case ActionToggleNotes:
		return "toggle_notes"
	case ActionTogglePause:
		return "toggle_pause"
	case ActionPlayNumber:
		return "play_number"
	case ActionSetNote:
		return "set_note"
	case ActionRemoveNumber:
		return "remove_number"
	default:
		return fmt.Sprintf("action(%d)", k)
	}
}

// Action records one effective dispatch. Row, Col and Digit are only
// meaningful for the cell actions; Row and Col are -1 otherwise.
type Action struct {
	Kind ActionKind

	// Key is the character that triggered the action, or 0 when the
	// action came from something other than a key (a pause button).
	Key rune

	Row   int
	Col   int
	Digit int

	// Notes and Paused are the mode flags after the action was applied.
	Notes  bool
	Paused bool

	// Rejected marks a cell action the controller refused, such as a
	// digit on a given cell. Only set for controllers that implement
	// ChangeCounter.
	Rejected bool
}

// IsCellAction reports whether the action targeted a grid cell.
func (a Action) IsCellAction() bool {
	switch a.Kind {
	case ActionPlayNumber, ActionSetNote, ActionRemoveNumber:
		return true
	default:
		return false
	}
}

// String formats the action for logging.
func (a Action) String() string {
	if a.Rejected {
		return a.describe() + " (rejected)"
	}
	return a.describe()
}

func (a Action) describe() string {
	switch a.Kind {
	case ActionPlayNumber, ActionSetNote:
		return fmt.Sprintf("%s %d at r%dc%d", a.Kind, a.Digit, a.Row+1, a.Col+1)
	case ActionRemoveNumber:
		return fmt.Sprintf("%s at r%dc%d", a.Kind, a.Row+1, a.Col+1)
	case ActionToggleNotes:
		return fmt.Sprintf("%s notes=%t", a.Kind, a.Notes)
	case ActionTogglePause:
		return fmt.Sprintf("%s paused=%t", a.Kind, a.Paused)
	default:
		return a.Kind.String()
	}
}
