package dispatcher

import (
	"time"

	"github.com/dshills/sudoku/internal/input/key"
)

// Dispatcher routes key presses to the controller and the views.
type Dispatcher struct {
	// Collaborators
	cells      Cells
	controller Controller
	status     StatusView
	selection  SelectionSource

	// Mode state
	notes bool
	pause *PauseState

	// Configuration
	config Config

	// Metrics
	metrics *Metrics

	postHooks []PostDispatchHook
}

// Option configures a Dispatcher.
type Option func(*Dispatcher)

// WithConfig sets the dispatcher configuration.
func WithConfig(config Config) Option {
	return func(d *Dispatcher) {
		d.config = config
	}
}

// WithPauseState shares an existing session pause state with the
// dispatcher. The state is reset to unpaused by New.
func WithPauseState(p *PauseState) Option {
	return func(d *Dispatcher) {
		if p != nil {
			d.pause = p
		}
	}
}

// WithSelection makes the dispatcher ask src for the selected cell
// instead of scanning the cells.
func WithSelection(src SelectionSource) Option {
	return func(d *Dispatcher) {
		d.selection = src
	}
}

// New creates a dispatcher over the grid cells, the game controller and
// the status view. Notes mode and pause both start off.
func New(cells Cells, controller Controller, status StatusView, opts ...Option) *Dispatcher {
	d := &Dispatcher{
		cells:      cells,
		controller: controller,
		status:     status,
		config:     DefaultConfig(),
	}

	for _, opt := range opts {
		opt(d)
	}

	if d.pause == nil {
		d.pause = NewPauseState()
	}
	d.pause.Set(false)
	d.notes = false

	if d.config.EnableMetrics {
		d.metrics = NewMetrics()
	}

	return d
}

// NotesMode reports whether digit keys currently set notes.
func (d *Dispatcher) NotesMode() bool {
	return d.notes
}

// Paused reports the session pause state.
func (d *Dispatcher) Paused() bool {
	return d.pause.Paused()
}

// PauseState returns the shared session pause state.
func (d *Dispatcher) PauseState() *PauseState {
	return d.pause
}

// Metrics returns the metrics collector, or nil if disabled.
func (d *Dispatcher) Metrics() *Metrics {
	return d.metrics
}

// Handle dispatches one key press. Once the game is over every key is
// ignored.
func (d *Dispatcher) Handle(ev key.Event) {
	if d.controller.IsGameOver() {
		if d.metrics != nil {
			d.metrics.RecordSuppressed()
		}
		return
	}

	start := time.Now()
	c := ev.Char()

	var action Action
	var ok bool

	switch {
	case c == 'n' || c == 'N':
		action, ok = d.toggleNotes(), true
	case c == 'p' || c == 'P':
		action, ok = d.togglePause(), true
	case c >= '1' && c <= '9':
		action, ok = d.enterDigit(int(c - '0'))
	case c == ' ':
		if d.notes {
			// No note-clearing path: space does nothing in notes mode.
			d.recordIgnored()
			return
		}
		action, ok = d.removeNumber()
	default:
		d.recordIgnored()
		return
	}

	if !ok {
		if d.metrics != nil {
			d.metrics.RecordNoSelection()
		}
		return
	}

	action.Key = c
	d.finish(action, start)
}

// TogglePause flips the session pause state and pauses or resumes the
// controller to match. It is the single toggle path shared by the pause
// key and any pause button.
func (d *Dispatcher) TogglePause() {
	start := time.Now()
	d.finish(d.togglePause(), start)
}

// SetPausedMode applies the current pause state to the controller
// without changing it.
func (d *Dispatcher) SetPausedMode() {
	if d.pause.Paused() {
		d.controller.PauseGame()
	} else {
		d.controller.ResumeGame()
	}
}

func (d *Dispatcher) togglePause() Action {
	d.pause.Toggle()
	d.SetPausedMode()
	return d.newAction(ActionTogglePause)
}

// toggleNotes flips notes mode and pushes the new mode to the whole grid
// and the status view.
func (d *Dispatcher) toggleNotes() Action {
	d.notes = !d.notes

	for row := 0; row < GridSize; row++ {
		for col := 0; col < GridSize; col++ {
			cell := d.cells[row][col]
			if cell == nil {
				continue
			}
			if d.notes {
				cell.SetNotesMode()
			} else {
				cell.SetNormalMode()
			}
		}
	}

	if d.status != nil {
		if d.notes {
			d.status.SetNotesMode()
		} else {
			d.status.SetNormalMode()
		}
	}

	return d.newAction(ActionToggleNotes)
}

// enterDigit sets a note or plays the digit on the selected cell.
func (d *Dispatcher) enterDigit(digit int) (Action, bool) {
	row, col, ok := d.selected()
	if !ok {
		return Action{}, false
	}

	before, counted := d.changes()
	kind := ActionPlayNumber
	if d.notes {
		kind = ActionSetNote
		d.controller.SetNote(row, col, digit)
	} else {
		d.controller.PlayNumber(row, col, digit)
	}

	action := d.newAction(kind)
	action.Row, action.Col, action.Digit = row, col, digit
	action.Rejected = d.unchanged(before, counted)
	return action, true
}

// removeNumber clears the selected cell.
func (d *Dispatcher) removeNumber() (Action, bool) {
	row, col, ok := d.selected()
	if !ok {
		return Action{}, false
	}

	before, counted := d.changes()
	d.controller.RemoveNumber(row, col)

	action := d.newAction(ActionRemoveNumber)
	action.Row, action.Col = row, col
	action.Rejected = d.unchanged(before, counted)
	return action, true
}

// selected returns the selected cell. A SelectionSource answers
// directly; otherwise the first cell in row-major order reporting
// IsSelected wins.
func (d *Dispatcher) selected() (row, col int, ok bool) {
	if d.selection != nil {
		row, col, ok = d.selection.Selection()
		if !ok || row < 0 || row >= GridSize || col < 0 || col >= GridSize {
			return 0, 0, false
		}
		return row, col, true
	}

	for row := 0; row < GridSize; row++ {
		for col := 0; col < GridSize; col++ {
			if cell := d.cells[row][col]; cell != nil && cell.IsSelected() {
				return row, col, true
			}
		}
	}
	return 0, 0, false
}

// changes returns the controller's mutation count when it keeps one.
func (d *Dispatcher) changes() (uint64, bool) {
	if cc, ok := d.controller.(ChangeCounter); ok {
		return cc.Changes(), true
	}
	return 0, false
}

func (d *Dispatcher) unchanged(before uint64, counted bool) bool {
	if !counted {
		return false
	}
	after, _ := d.changes()
	return after == before
}

func (d *Dispatcher) newAction(kind ActionKind) Action {
	return Action{
		Kind:   kind,
		Row:    -1,
		Col:    -1,
		Notes:  d.notes,
		Paused: d.pause.Paused(),
	}
}

func (d *Dispatcher) finish(action Action, start time.Time) {
	if d.metrics != nil {
		d.metrics.RecordDispatch(action.Kind, time.Since(start))
	}
	d.runPostHooks(action)
}

func (d *Dispatcher) recordIgnored() {
	if d.metrics != nil {
		d.metrics.RecordIgnored()
	}
}
