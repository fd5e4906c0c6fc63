package game

import (
	"testing"
	"time"
)

type fakeClock struct {
	now time.Time
}

func (c *fakeClock) Now() time.Time { return c.now }

func (c *fakeClock) Advance(d time.Duration) { c.now = c.now.Add(d) }

func newTestController(t *testing.T, opts ...ControllerOption) (*Controller, *fakeClock) {
	t.Helper()
	clock := &fakeClock{now: time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)}
	opts = append([]ControllerOption{WithClock(clock.Now)}, opts...)
	c, err := NewController(Puzzle{ID: "classic", Difficulty: "easy", Givens: classicGivens}, opts...)
	if err != nil {
		t.Fatalf("NewController failed: %v", err)
	}
	return c, clock
}

// fillSolution plays every empty cell with its correct value.
func fillSolution(c *Controller) {
	for row := 0; row < Size; row++ {
		for col := 0; col < Size; col++ {
			if c.Value(row, col) == 0 {
				c.PlayNumber(row, col, int(classicSolution[row*Size+col]-'0'))
			}
		}
	}
}

func TestNewControllerRejectsBadPuzzle(t *testing.T) {
	if _, err := NewController(Puzzle{Givens: "123"}); err == nil {
		t.Error("expected an error for a malformed puzzle")
	}
}

func TestControllerPlayNumber(t *testing.T) {
	c, _ := newTestController(t)

	c.PlayNumber(0, 2, 4)
	if c.Value(0, 2) != 4 || c.IsWrong(0, 2) {
		t.Errorf("correct play: value=%d wrong=%v", c.Value(0, 2), c.IsWrong(0, 2))
	}
	if c.Mistakes() != 0 {
		t.Errorf("Mistakes() = %d, want 0", c.Mistakes())
	}

	c.PlayNumber(0, 3, 1)
	if !c.IsWrong(0, 3) {
		t.Error("wrong play should be flagged")
	}
	if c.Mistakes() != 1 {
		t.Errorf("Mistakes() = %d, want 1", c.Mistakes())
	}
}

func TestControllerGivensAreFixed(t *testing.T) {
	c, _ := newTestController(t)

	c.PlayNumber(0, 0, 1)
	c.RemoveNumber(0, 0)
	c.SetNote(0, 0, 2)

	if c.Value(0, 0) != 5 || c.Notes(0, 0) != 0 {
		t.Errorf("given cell changed: value=%d notes=%v", c.Value(0, 0), c.Notes(0, 0))
	}
	if c.Mistakes() != 0 {
		t.Error("playing on a given must not count as a mistake")
	}
}

func TestControllerNotes(t *testing.T) {
	c, _ := newTestController(t)

	c.SetNote(0, 2, 1)
	c.SetNote(0, 2, 4)
	if got := c.Notes(0, 2).Digits(); len(got) != 2 {
		t.Fatalf("notes = %v, want two digits", got)
	}

	c.SetNote(0, 2, 1)
	if c.Notes(0, 2).Has(1) {
		t.Error("second SetNote should remove the note")
	}

	c.PlayNumber(0, 2, 4)
	if c.Notes(0, 2) != 0 {
		t.Error("playing a value should clear the notes")
	}
}

func TestControllerRemoveNumber(t *testing.T) {
	c, _ := newTestController(t)

	c.PlayNumber(0, 2, 4)
	c.RemoveNumber(0, 2)
	if c.Value(0, 2) != 0 {
		t.Errorf("Value() = %d after remove, want 0", c.Value(0, 2))
	}
}

func TestControllerLosesAtMistakeLimit(t *testing.T) {
	c, _ := newTestController(t, WithMaxMistakes(2))

	c.PlayNumber(0, 2, 1)
	if c.IsGameOver() {
		t.Fatal("one mistake should not end the game")
	}
	c.PlayNumber(0, 3, 1)
	if c.State() != StateLost || !c.IsGameOver() {
		t.Fatalf("State() = %s, want lost", c.State())
	}

	c.PlayNumber(0, 4, 7)
	if c.Value(0, 4) != 7 {
		t.Fatal("given (0,4) should still be 7")
	}
	c.PlayNumber(0, 5, 8)
	if c.Value(0, 5) != 0 {
		t.Error("moves after a loss must be ignored")
	}
}

func TestControllerUnlimitedMistakes(t *testing.T) {
	c, _ := newTestController(t)
	for i := 0; i < 10; i++ {
		c.PlayNumber(0, 2, 1)
	}
	if c.IsGameOver() {
		t.Error("with no limit the game never ends on mistakes")
	}
}

func TestControllerRepeatedDigitIsNoOp(t *testing.T) {
	c, _ := newTestController(t, WithMaxMistakes(2))

	c.PlayNumber(0, 2, 1)
	c.PlayNumber(0, 2, 1)
	c.PlayNumber(0, 2, 1)
	if c.Mistakes() != 1 || c.IsGameOver() {
		t.Errorf("repeating a wrong digit: mistakes=%d state=%s, want 1 and playing", c.Mistakes(), c.State())
	}

	c.PlayNumber(0, 2, 4)
	c.PlayNumber(0, 2, 1)
	if c.Mistakes() != 2 || c.State() != StateLost {
		t.Errorf("a different wrong digit should count: mistakes=%d state=%s", c.Mistakes(), c.State())
	}
}

func TestControllerOnChange(t *testing.T) {
	c, _ := newTestController(t)

	fired := 0
	c.OnChange(func() { fired++ })
	c.OnChange(nil)

	accepted := []struct {
		name string
		do   func()
	}{
		{"play", func() { c.PlayNumber(0, 2, 4) }},
		{"remove", func() { c.RemoveNumber(0, 2) }},
		{"note", func() { c.SetNote(0, 2, 1) }},
		{"pause", func() { c.PauseGame() }},
		{"resume", func() { c.ResumeGame() }},
	}
	for _, tt := range accepted {
		before, changes := fired, c.Changes()
		tt.do()
		if fired != before+1 {
			t.Errorf("%s: listener fired %d times, want 1", tt.name, fired-before)
		}
		if c.Changes() != changes+1 {
			t.Errorf("%s: Changes() = %d, want %d", tt.name, c.Changes(), changes+1)
		}
	}

	c.PlayNumber(0, 3, 6)
	rejected := []struct {
		name string
		do   func()
	}{
		{"play on given", func() { c.PlayNumber(0, 0, 1) }},
		{"remove given", func() { c.RemoveNumber(0, 0) }},
		{"note on filled cell", func() { c.SetNote(0, 3, 2) }},
		{"same digit again", func() { c.PlayNumber(0, 3, 6) }},
		{"remove empty cell", func() { c.RemoveNumber(0, 5) }},
		{"out of range", func() { c.PlayNumber(9, 9, 1) }},
		{"resume while running", func() { c.ResumeGame() }},
	}
	for _, tt := range rejected {
		before, changes := fired, c.Changes()
		tt.do()
		if fired != before {
			t.Errorf("%s: listener fired on a refused request", tt.name)
		}
		if c.Changes() != changes {
			t.Errorf("%s: Changes() moved to %d", tt.name, c.Changes())
		}
	}

	c.PauseGame()
	before := fired
	c.PlayNumber(0, 5, 1)
	if fired != before {
		t.Error("listener fired for a move while paused")
	}
}

func TestControllerWins(t *testing.T) {
	c, clock := newTestController(t)

	changes := 0
	c.OnChange(func() { changes++ })

	clock.Advance(90 * time.Second)
	fillSolution(c)

	if c.State() != StateWon {
		t.Fatalf("State() = %s, want won", c.State())
	}
	if changes == 0 {
		t.Error("OnChange listener was never called")
	}

	clock.Advance(time.Hour)
	if got := c.Elapsed(); got != 90*time.Second {
		t.Errorf("Elapsed() = %v, want clock frozen at 1m30s", got)
	}
}

func TestControllerPauseFreezesBoardAndClock(t *testing.T) {
	c, clock := newTestController(t)

	clock.Advance(10 * time.Second)
	c.PauseGame()
	if !c.IsPaused() {
		t.Fatal("PauseGame did not pause")
	}

	clock.Advance(time.Minute)
	if got := c.Elapsed(); got != 10*time.Second {
		t.Errorf("Elapsed() while paused = %v, want 10s", got)
	}

	c.PlayNumber(0, 2, 4)
	if c.Value(0, 2) != 0 {
		t.Error("moves while paused must be ignored")
	}

	c.ResumeGame()
	clock.Advance(5 * time.Second)
	if got := c.Elapsed(); got != 15*time.Second {
		t.Errorf("Elapsed() after resume = %v, want 15s", got)
	}

	c.PlayNumber(0, 2, 4)
	if c.Value(0, 2) != 4 {
		t.Error("moves after resume should apply")
	}
}

func TestControllerPauseIsIdempotent(t *testing.T) {
	c, clock := newTestController(t)

	clock.Advance(10 * time.Second)
	c.PauseGame()
	clock.Advance(10 * time.Second)
	c.PauseGame()
	c.ResumeGame()
	c.ResumeGame()

	if got := c.Elapsed(); got != 10*time.Second {
		t.Errorf("Elapsed() = %v, want 10s", got)
	}
}

func TestControllerRejectsOutOfRange(t *testing.T) {
	var logged []string
	c, _ := newTestController(t, WithLogFunc(func(format string, args ...any) {
		logged = append(logged, format)
	}))

	c.PlayNumber(9, 0, 1)
	c.PlayNumber(0, 2, 0)
	c.SetNote(-1, 0, 1)

	if len(logged) != 3 {
		t.Errorf("logged %d rejections, want 3", len(logged))
	}
}

func TestBoardReturnsCopy(t *testing.T) {
	c, _ := newTestController(t)
	b := c.Board()
	b.Set(0, 2, 9)
	if c.Value(0, 2) != 0 {
		t.Error("Board() must return a copy")
	}
}
