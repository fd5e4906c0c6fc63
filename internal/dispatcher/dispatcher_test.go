package dispatcher_test

import (
	"fmt"
	"reflect"
	"testing"

	"github.com/dshills/sudoku/internal/dispatcher"
	"github.com/dshills/sudoku/internal/input/key"
)

// fakeController records every call made to it.
type fakeController struct {
	gameOver bool
	calls    []string
}

func (c *fakeController) IsGameOver() bool { return c.gameOver }

func (c *fakeController) SetNote(row, col, digit int) {
	c.calls = append(c.calls, fmt.Sprintf("setNote(%d,%d,%d)", row, col, digit))
}

func (c *fakeController) PlayNumber(row, col, digit int) {
	c.calls = append(c.calls, fmt.Sprintf("playNumber(%d,%d,%d)", row, col, digit))
}

func (c *fakeController) RemoveNumber(row, col int) {
	c.calls = append(c.calls, fmt.Sprintf("removeNumber(%d,%d)", row, col))
}

func (c *fakeController) PauseGame()  { c.calls = append(c.calls, "pauseGame") }
func (c *fakeController) ResumeGame() { c.calls = append(c.calls, "resumeGame") }

type fakeCell struct {
	selected    bool
	notesCalls  int
	normalCalls int
	queries     int
}

func (c *fakeCell) IsSelected() bool {
	c.queries++
	return c.selected
}
func (c *fakeCell) SetNotesMode()  { c.notesCalls++ }
func (c *fakeCell) SetNormalMode() { c.normalCalls++ }

type fakeStatus struct {
	modes []string
}

func (s *fakeStatus) SetNotesMode()  { s.modes = append(s.modes, "notes") }
func (s *fakeStatus) SetNormalMode() { s.modes = append(s.modes, "normal") }

type fixture struct {
	cells      [dispatcher.GridSize][dispatcher.GridSize]*fakeCell
	controller *fakeController
	status     *fakeStatus
	d          *dispatcher.Dispatcher
}

func newFixture(t *testing.T, opts ...dispatcher.Option) *fixture {
	t.Helper()

	f := &fixture{
		controller: &fakeController{},
		status:     &fakeStatus{},
	}

	var cells dispatcher.Cells
	for row := range cells {
		for col := range cells[row] {
			fc := &fakeCell{}
			f.cells[row][col] = fc
			cells[row][col] = fc
		}
	}

	f.d = dispatcher.New(cells, f.controller, f.status, opts...)
	return f
}

func (f *fixture) selectCell(row, col int) {
	f.cells[row][col].selected = true
}

func (f *fixture) press(r rune) {
	f.d.Handle(key.NewRuneEvent(r, key.ModNone))
}

func (f *fixture) assertCalls(t *testing.T, want ...string) {
	t.Helper()
	if len(want) == 0 {
		want = nil
	}
	if !reflect.DeepEqual(f.controller.calls, want) {
		t.Errorf("controller calls = %v, want %v", f.controller.calls, want)
	}
}

func TestNewStartsInNormalUnpausedMode(t *testing.T) {
	f := newFixture(t)

	if f.d.NotesMode() {
		t.Error("expected notes mode off")
	}
	if f.d.Paused() {
		t.Error("expected not paused")
	}
	if f.d.Metrics() != nil {
		t.Error("expected nil metrics by default")
	}
	f.assertCalls(t)
}

func TestDigitPlaysNumberOnSelectedCell(t *testing.T) {
	for digit := 1; digit <= 9; digit++ {
		t.Run(fmt.Sprint(digit), func(t *testing.T) {
			f := newFixture(t)
			f.selectCell(5, 2)

			f.press(rune('0' + digit))

			f.assertCalls(t, fmt.Sprintf("playNumber(5,2,%d)", digit))
		})
	}
}

func TestDigitSetsNoteInNotesMode(t *testing.T) {
	for digit := 1; digit <= 9; digit++ {
		t.Run(fmt.Sprint(digit), func(t *testing.T) {
			f := newFixture(t)
			f.selectCell(0, 8)
			f.press('n')

			f.press(rune('0' + digit))

			f.assertCalls(t, fmt.Sprintf("setNote(0,8,%d)", digit))
		})
	}
}

func TestScenarioPlaySevenAtThreeFour(t *testing.T) {
	f := newFixture(t)
	f.selectCell(3, 4)

	f.press('7')

	f.assertCalls(t, "playNumber(3,4,7)")
}

func TestScenarioSpaceRemovesNumber(t *testing.T) {
	f := newFixture(t)
	f.selectCell(3, 4)

	f.press(' ')

	f.assertCalls(t, "removeNumber(3,4)")
}

func TestSpaceKeyEventRemovesNumber(t *testing.T) {
	f := newFixture(t)
	f.selectCell(3, 4)

	f.d.Handle(key.NewSpecialEvent(key.KeySpace, key.ModNone))

	f.assertCalls(t, "removeNumber(3,4)")
}

func TestKeypadDigitPlaysNumber(t *testing.T) {
	f := newFixture(t)
	f.selectCell(1, 1)

	f.d.Handle(key.NewSpecialEvent(key.KeyKP6, key.ModNone))

	f.assertCalls(t, "playNumber(1,1,6)")
}

func TestSpaceIgnoredInNotesMode(t *testing.T) {
	f := newFixture(t)
	f.selectCell(3, 4)
	f.press('N')

	f.press(' ')

	f.assertCalls(t)
}

func TestToggleNotesTwiceBroadcastsBothTimes(t *testing.T) {
	f := newFixture(t)

	f.press('n')
	if !f.d.NotesMode() {
		t.Fatal("expected notes mode after first n")
	}
	f.press('N')
	if f.d.NotesMode() {
		t.Fatal("expected normal mode after second N")
	}

	for row := range f.cells {
		for col, c := range f.cells[row] {
			if c.notesCalls != 1 || c.normalCalls != 1 {
				t.Fatalf("cell (%d,%d): notes=%d normal=%d, want 1 and 1",
					row, col, c.notesCalls, c.normalCalls)
			}
		}
	}

	if want := []string{"notes", "normal"}; !reflect.DeepEqual(f.status.modes, want) {
		t.Errorf("status modes = %v, want %v", f.status.modes, want)
	}
	f.assertCalls(t)
}

func TestPauseKeyToggles(t *testing.T) {
	f := newFixture(t)

	f.press('p')
	if !f.d.Paused() {
		t.Fatal("expected paused after p")
	}
	f.press('P')
	if f.d.Paused() {
		t.Fatal("expected resumed after P")
	}

	f.assertCalls(t, "pauseGame", "resumeGame")
}

func TestNoSelectionIsSilent(t *testing.T) {
	f := newFixture(t)

	for _, r := range "123456789 " {
		f.press(r)
	}

	f.assertCalls(t)
}

func TestFirstSelectedCellInRowMajorOrderWins(t *testing.T) {
	f := newFixture(t)
	f.selectCell(6, 0)
	f.selectCell(2, 7)

	f.press('4')

	f.assertCalls(t, "playNumber(2,7,4)")

	// The scan stops at the first hit.
	if q := f.cells[6][0].queries; q != 0 {
		t.Errorf("cell after the hit was queried %d times", q)
	}
}

func TestGameOverSuppressesEverything(t *testing.T) {
	f := newFixture(t, dispatcher.WithConfig(dispatcher.DefaultConfig().WithMetrics()))
	f.selectCell(3, 4)
	f.controller.gameOver = true

	hookCalls := 0
	f.d.RegisterPostHook(dispatcher.PostDispatchFunc(func(dispatcher.Action) { hookCalls++ }))

	for _, r := range "nNpP159 x" {
		f.press(r)
	}

	f.assertCalls(t)
	if f.d.NotesMode() || f.d.Paused() {
		t.Error("flags must not change after game over")
	}
	if len(f.status.modes) != 0 {
		t.Errorf("status view touched: %v", f.status.modes)
	}
	for row := range f.cells {
		for _, c := range f.cells[row] {
			if c.notesCalls+c.normalCalls+c.queries != 0 {
				t.Fatal("cell view touched after game over")
			}
		}
	}
	if hookCalls != 0 {
		t.Errorf("hooks ran %d times after game over", hookCalls)
	}
	if got := f.d.Metrics().Snapshot().TotalSuppressed; got != 9 {
		t.Errorf("suppressed = %d, want 9", got)
	}
}

func TestOtherCharactersIgnored(t *testing.T) {
	f := newFixture(t)
	f.selectCell(0, 0)

	for _, r := range "0aqZ!-" {
		f.press(r)
	}
	f.d.Handle(key.NewSpecialEvent(key.KeyUp, key.ModNone))
	f.d.Handle(key.NewSpecialEvent(key.KeyEnter, key.ModNone))

	f.assertCalls(t)
	if f.d.NotesMode() || f.d.Paused() {
		t.Error("ignored keys must not change flags")
	}
}

type fixedSelection struct {
	row, col int
	ok       bool
}

func (s fixedSelection) Selection() (int, int, bool) { return s.row, s.col, s.ok }

func TestSelectionSourceReplacesScan(t *testing.T) {
	f := newFixture(t, dispatcher.WithSelection(fixedSelection{row: 8, col: 1, ok: true}))
	// A stale cell flag must not win over the selection source.
	f.selectCell(0, 0)

	f.press('2')
	f.press(' ')

	f.assertCalls(t, "playNumber(8,1,2)", "removeNumber(8,1)")
	if q := f.cells[0][0].queries; q != 0 {
		t.Errorf("cells were scanned %d times with a selection source", q)
	}
}

func TestSelectionSourceWithoutSelection(t *testing.T) {
	tests := []fixedSelection{
		{ok: false},
		{row: 9, col: 0, ok: true},
		{row: 0, col: -1, ok: true},
	}

	for _, sel := range tests {
		f := newFixture(t, dispatcher.WithSelection(sel))
		f.press('5')
		f.assertCalls(t)
	}
}

func TestSharedPauseStateAndButtonPath(t *testing.T) {
	shared := dispatcher.NewPauseState()
	shared.Set(true)

	f := newFixture(t, dispatcher.WithPauseState(shared))
	if shared.Paused() {
		t.Fatal("New must reset the shared pause state")
	}
	if f.d.PauseState() != shared {
		t.Fatal("dispatcher should use the shared pause state")
	}

	// A pause button toggles through the same path as the key.
	f.d.TogglePause()
	if !shared.Paused() {
		t.Fatal("button toggle should pause the shared state")
	}
	f.press('p')
	if shared.Paused() {
		t.Fatal("key toggle should resume the shared state")
	}

	f.assertCalls(t, "pauseGame", "resumeGame")
}

func TestSetPausedModeActsOnCurrentValue(t *testing.T) {
	f := newFixture(t)

	f.d.SetPausedMode()
	f.d.PauseState().Set(true)
	f.d.SetPausedMode()
	f.d.SetPausedMode()

	if !f.d.Paused() {
		t.Error("SetPausedMode must not toggle")
	}
	f.assertCalls(t, "resumeGame", "pauseGame", "pauseGame")
}

func TestPostHooksReceiveActions(t *testing.T) {
	f := newFixture(t)
	f.selectCell(3, 4)

	var got []dispatcher.Action
	f.d.RegisterPostHook(dispatcher.PostDispatchFunc(func(a dispatcher.Action) {
		got = append(got, a)
	}))

	f.press('7')
	f.press('n')
	f.press('2')
	f.press('x') // ignored, no hook
	f.press(' ') // ignored in notes mode, no hook
	f.press('p')

	want := []dispatcher.Action{
		{Kind: dispatcher.ActionPlayNumber, Key: '7', Row: 3, Col: 4, Digit: 7},
		{Kind: dispatcher.ActionToggleNotes, Key: 'n', Row: -1, Col: -1, Notes: true},
		{Kind: dispatcher.ActionSetNote, Key: '2', Row: 3, Col: 4, Digit: 2, Notes: true},
		{Kind: dispatcher.ActionTogglePause, Key: 'p', Row: -1, Col: -1, Notes: true, Paused: true},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("hook actions:\n got %+v\nwant %+v", got, want)
	}
}

// countingController refuses requests on the cells in refuse and counts
// the ones it accepts.
type countingController struct {
	fakeController
	refuse  map[[2]int]bool
	changes uint64
}

func (c *countingController) Changes() uint64 { return c.changes }

func (c *countingController) accept(row, col int) {
	if !c.refuse[[2]int{row, col}] {
		c.changes++
	}
}

func (c *countingController) PlayNumber(row, col, digit int) {
	c.fakeController.PlayNumber(row, col, digit)
	c.accept(row, col)
}

func (c *countingController) SetNote(row, col, digit int) {
	c.fakeController.SetNote(row, col, digit)
	c.accept(row, col)
}

func (c *countingController) RemoveNumber(row, col int) {
	c.fakeController.RemoveNumber(row, col)
	c.accept(row, col)
}

func TestRefusedCellActionsAreMarked(t *testing.T) {
	controller := &countingController{refuse: map[[2]int]bool{{0, 0}: true}}
	sel := &fixedSelection{row: 0, col: 0, ok: true}
	d := dispatcher.New(dispatcher.Cells{}, controller, nil, dispatcher.WithSelection(sel))

	var got []dispatcher.Action
	d.RegisterPostHook(dispatcher.PostDispatchFunc(func(a dispatcher.Action) {
		got = append(got, a)
	}))

	d.Handle(key.NewRuneEvent('5', key.ModNone))
	d.Handle(key.NewRuneEvent(' ', key.ModNone))
	sel.col = 1
	d.Handle(key.NewRuneEvent('5', key.ModNone))
	d.Handle(key.NewRuneEvent('n', key.ModNone))
	d.Handle(key.NewRuneEvent('3', key.ModNone))

	want := []bool{true, true, false, false, false}
	if len(got) != len(want) {
		t.Fatalf("hook saw %d actions, want %d", len(got), len(want))
	}
	for i, w := range want {
		if got[i].Rejected != w {
			t.Errorf("action %d (%s): Rejected = %v, want %v", i, got[i], got[i].Rejected, w)
		}
	}
	if s := got[0].String(); s != "play_number 5 at r1c1 (rejected)" {
		t.Errorf("String() = %q", s)
	}
}

func TestHookPanicRecovered(t *testing.T) {
	f := newFixture(t, dispatcher.WithConfig(dispatcher.DefaultConfig().WithMetrics()))

	after := false
	f.d.RegisterPostHook(dispatcher.PostDispatchFunc(func(dispatcher.Action) { panic("boom") }))
	f.d.RegisterPostHook(dispatcher.PostDispatchFunc(func(dispatcher.Action) { after = true }))

	f.press('n')

	if !after {
		t.Error("hooks after a panicking hook should still run")
	}
	if got := f.d.Metrics().Snapshot().TotalPanics; got != 1 {
		t.Errorf("panics = %d, want 1", got)
	}
}

func TestLoggingHook(t *testing.T) {
	f := newFixture(t)
	f.selectCell(0, 0)

	var lines []string
	f.d.RegisterPostHook(dispatcher.NewLoggingHook(func(format string, args ...any) {
		lines = append(lines, fmt.Sprintf(format, args...))
	}))

	f.press('9')

	if len(lines) != 1 || lines[0] != "dispatch: play_number 9 at r1c1" {
		t.Errorf("log lines = %q", lines)
	}
}

func TestMetricsCountOutcomes(t *testing.T) {
	f := newFixture(t, dispatcher.WithConfig(dispatcher.DefaultConfig().WithMetrics()))

	f.press('1') // no selection
	f.selectCell(4, 4)
	f.press('1')
	f.press('2')
	f.press('q') // ignored
	f.press('n')

	m := f.d.Metrics()
	snap := m.Snapshot()
	if snap.TotalDispatches != 3 {
		t.Errorf("dispatches = %d, want 3", snap.TotalDispatches)
	}
	if snap.TotalIgnored != 1 {
		t.Errorf("ignored = %d, want 1", snap.TotalIgnored)
	}
	if snap.TotalNoSelection != 1 {
		t.Errorf("no selection = %d, want 1", snap.TotalNoSelection)
	}

	top := m.TopActions(5)
	if len(top) != 2 {
		t.Fatalf("top actions = %+v, want 2 kinds", top)
	}
	if top[0].Kind != dispatcher.ActionPlayNumber || top[0].DispatchCount != 2 {
		t.Errorf("top action = %+v", top[0])
	}
	if top[1].Kind != dispatcher.ActionToggleNotes || top[1].DispatchCount != 1 {
		t.Errorf("second action = %+v", top[1])
	}
	if top[0].AverageActionDuration() > top[0].MaxDuration {
		t.Errorf("average %v exceeds max %v", top[0].AverageActionDuration(), top[0].MaxDuration)
	}
	if (&dispatcher.ActionMetrics{}).AverageActionDuration() != 0 {
		t.Error("average of no dispatches should be zero")
	}

	m.Reset()
	if m.TotalDispatches() != 0 {
		t.Error("reset should clear counters")
	}
}

func TestNilCellsAreSkipped(t *testing.T) {
	controller := &fakeController{}
	var cells dispatcher.Cells
	sel := &fakeCell{selected: true}
	cells[7][7] = sel

	d := dispatcher.New(cells, controller, nil)
	d.Handle(key.NewRuneEvent('n', key.ModNone))
	d.Handle(key.NewRuneEvent('3', key.ModNone))

	if sel.notesCalls != 1 {
		t.Errorf("selected cell notes calls = %d, want 1", sel.notesCalls)
	}
	if want := []string{"setNote(7,7,3)"}; !reflect.DeepEqual(controller.calls, want) {
		t.Errorf("calls = %v, want %v", controller.calls, want)
	}
}
