package game

import (
	"time"
)

// State is the outcome state of a game.
type State uint8

const (
	// StatePlaying means the game accepts moves.
	StatePlaying State = iota

	// StateWon means the board was completed correctly.
	StateWon

	// StateLost means the mistake limit was reached.
	StateLost
)

// String returns the state name.
func (s State) String() string {
	switch s {
	case StatePlaying:
		return "playing"
	case StateWon:
		return "won"
	case StateLost:
		return "lost"
	default:
		return "unknown"
	}
}

// Controller owns one game: the board, its solution, the mistake count
// and the play clock. It is driven from a single goroutine.
type Controller struct {
	puzzle   Puzzle
	board    *Board
	solution [Size][Size]int

	mistakes    int
	maxMistakes int
	state       State

	paused  bool
	started time.Time
	elapsed time.Duration

	now  func() time.Time
	logf func(format string, args ...any)

	listeners []func()
	changes   uint64
}

// ControllerOption configures a Controller.
type ControllerOption func(*Controller)

// WithMaxMistakes ends the game once n wrong values have been played.
// Zero means unlimited.
func WithMaxMistakes(n int) ControllerOption {
	return func(c *Controller) {
		if n >= 0 {
			c.maxMistakes = n
		}
	}
}

// WithClock replaces time.Now, for tests.
func WithClock(now func() time.Time) ControllerOption {
	return func(c *Controller) {
		if now != nil {
			c.now = now
		}
	}
}

// WithLogFunc receives debug messages about rejected requests.
func WithLogFunc(logf func(format string, args ...any)) ControllerOption {
	return func(c *Controller) {
		c.logf = logf
	}
}

// NewController starts a game on the given puzzle. The clock starts
// running immediately.
func NewController(p Puzzle, opts ...ControllerOption) (*Controller, error) {
	board, err := ParseBoard(p.Givens)
	if err != nil {
		return nil, err
	}

	solution, err := Solve(board)
	if err != nil {
		return nil, err
	}

	c := &Controller{
		puzzle:   p,
		board:    board,
		solution: solution,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	c.started = c.now()

	return c, nil
}

// OnChange registers fn to run after every accepted mutation or state
// change.
func (c *Controller) OnChange(fn func()) {
	if fn != nil {
		c.listeners = append(c.listeners, fn)
	}
}

// Changes returns the number of accepted mutations and state changes.
func (c *Controller) Changes() uint64 {
	return c.changes
}

// Puzzle returns the puzzle being played.
func (c *Controller) Puzzle() Puzzle {
	return c.puzzle
}

// IsGameOver reports whether the game was won or lost.
func (c *Controller) IsGameOver() bool {
	return c.state != StatePlaying
}

// State returns the outcome state.
func (c *Controller) State() State {
	return c.state
}

// IsPaused reports whether the clock and the board are frozen.
func (c *Controller) IsPaused() bool {
	return c.paused
}

// Mistakes returns the number of wrong values played so far.
func (c *Controller) Mistakes() int {
	return c.mistakes
}

// MaxMistakes returns the mistake limit, 0 for unlimited.
func (c *Controller) MaxMistakes() int {
	return c.maxMistakes
}

// Value returns the value shown at a cell.
func (c *Controller) Value(row, col int) int {
	return c.board.Value(row, col)
}

// IsGiven reports whether a cell is part of the puzzle.
func (c *Controller) IsGiven(row, col int) bool {
	return c.board.IsGiven(row, col)
}

// Notes returns the notes of a cell.
func (c *Controller) Notes(row, col int) NoteSet {
	return c.board.Notes(row, col)
}

// IsWrong reports whether a player value disagrees with the solution.
func (c *Controller) IsWrong(row, col int) bool {
	v := c.board.Value(row, col)
	return v != 0 && !c.board.IsGiven(row, col) && v != c.solution[row][col]
}

// Board returns a copy of the current board.
func (c *Controller) Board() *Board {
	return c.board.Clone()
}

// Elapsed returns the play time, excluding paused periods.
func (c *Controller) Elapsed() time.Duration {
	if c.paused || c.state != StatePlaying {
		return c.elapsed
	}
	return c.elapsed + c.now().Sub(c.started)
}

// PlayNumber commits a digit to a cell.
func (c *Controller) PlayNumber(row, col, digit int) {
	if !c.accepts("play", row, col, digit) {
		return
	}
	if c.board.Value(row, col) == digit {
		c.debugf("play %d at r%dc%d ignored: already there", digit, row+1, col+1)
		return
	}
	if !c.board.Set(row, col, digit) {
		c.debugf("play %d at r%dc%d rejected: given cell", digit, row+1, col+1)
		return
	}

	if digit != c.solution[row][col] {
		c.mistakes++
		if c.maxMistakes > 0 && c.mistakes >= c.maxMistakes {
			c.finish(StateLost)
		}
	}

	if c.state == StatePlaying && c.solved() {
		c.finish(StateWon)
	}

	c.notify()
}

// SetNote toggles a candidate digit in an empty cell.
func (c *Controller) SetNote(row, col, digit int) {
	if !c.accepts("note", row, col, digit) {
		return
	}
	if !c.board.ToggleNote(row, col, digit) {
		c.debugf("note %d at r%dc%d rejected: cell has a value", digit, row+1, col+1)
		return
	}
	c.notify()
}

// RemoveNumber clears a player value.
func (c *Controller) RemoveNumber(row, col int) {
	if !c.accepts("remove", row, col, 1) {
		return
	}
	if !c.board.Clear(row, col) {
		return
	}
	c.notify()
}

// PauseGame stops the clock and freezes the board.
func (c *Controller) PauseGame() {
	if c.paused || c.state != StatePlaying {
		return
	}
	c.paused = true
	c.elapsed += c.now().Sub(c.started)
	c.notify()
}

// ResumeGame restarts the clock.
func (c *Controller) ResumeGame() {
	if !c.paused {
		return
	}
	c.paused = false
	c.started = c.now()
	c.notify()
}

// accepts checks the preconditions shared by every board mutation.
func (c *Controller) accepts(op string, row, col, digit int) bool {
	switch {
	case c.state != StatePlaying:
		c.debugf("%s rejected: game is %s", op, c.state)
	case c.paused:
		c.debugf("%s rejected: game is paused", op)
	case !InBounds(row, col):
		c.debugf("%s rejected: cell (%d,%d) out of range", op, row, col)
	case digit < 1 || digit > Size:
		c.debugf("%s rejected: digit %d out of range", op, digit)
	default:
		return true
	}
	return false
}

func (c *Controller) solved() bool {
	for row := 0; row < Size; row++ {
		for col := 0; col < Size; col++ {
			if c.board.Value(row, col) != c.solution[row][col] {
				return false
			}
		}
	}
	return true
}

func (c *Controller) finish(s State) {
	c.elapsed += c.now().Sub(c.started)
	c.state = s
}

func (c *Controller) notify() {
	c.changes++
	for _, fn := range c.listeners {
		fn()
	}
}

func (c *Controller) debugf(format string, args ...any) {
	if c.logf != nil {
		c.logf(format, args...)
	}
}
