package backend

import (
	"testing"

	"github.com/gdamore/tcell/v2"

	"github.com/dshills/sudoku/internal/renderer/core"
)

func TestNullBackendInit(t *testing.T) {
	b := NewNullBackend(80, 24)
	if err := b.Init(); err != nil {
		t.Fatalf("Init failed: %v", err)
	}

	w, h := b.Size()
	if w != 80 || h != 24 {
		t.Errorf("expected size (80, 24), got (%d, %d)", w, h)
	}
}

func TestNullBackendSetGetCell(t *testing.T) {
	b := NewNullBackend(80, 24)
	b.Init()

	cell := core.NewStyledCell('X', core.DefaultStyle().WithForeground(core.ColorRed))
	b.SetCell(10, 5, cell)

	got := b.GetCell(10, 5)
	if !got.Equals(cell) {
		t.Errorf("cell mismatch: expected %+v, got %+v", cell, got)
	}

	// Out of bounds should be ignored/return empty
	b.SetCell(-1, 0, cell)
	b.SetCell(100, 0, cell)

	empty := b.GetCell(-1, 0)
	if !empty.Equals(core.EmptyCell()) {
		t.Error("out of bounds should return empty cell")
	}
}

func TestNullBackendFillAndRow(t *testing.T) {
	b := NewNullBackend(10, 3)
	b.Init()

	b.Fill(core.RectFromSize(1, 2, 1, 3), core.NewStyledCell('.', core.DefaultStyle()))

	if got := b.Row(1); got != "  ...     " {
		t.Errorf("Row(1) = %q", got)
	}
	if got := b.Row(0); got != "          " {
		t.Errorf("Row(0) = %q, fill leaked outside the rect", got)
	}
}

func TestNullBackendClear(t *testing.T) {
	b := NewNullBackend(80, 24)
	b.Init()

	b.SetCell(10, 10, core.NewStyledCell('X', core.DefaultStyle()))
	b.Clear()

	if !b.GetCell(10, 10).Equals(core.EmptyCell()) {
		t.Error("clear should reset all cells")
	}
}

func TestNullBackendEvents(t *testing.T) {
	b := NewNullBackend(80, 24)
	b.Init()

	b.PostEvent(Event{Type: EventKey, Key: KeyRune, Rune: 'n'})
	b.PostEvent(Event{Type: EventInterrupt, Data: "tick"})

	if ev := b.PollEvent(); ev.Type != EventKey || ev.Rune != 'n' {
		t.Errorf("first event = %+v", ev)
	}
	if ev := b.PollEvent(); ev.Type != EventInterrupt || ev.Data != "tick" {
		t.Errorf("second event = %+v", ev)
	}
}

func TestNullBackendCounters(t *testing.T) {
	b := NewNullBackend(4, 4)
	b.Init()
	b.Show()
	b.Show()
	b.Beep()

	if b.ShowCount() != 2 || b.BeepCount() != 1 {
		t.Errorf("show=%d beep=%d", b.ShowCount(), b.BeepCount())
	}
}

func TestConvertKeyEvent(t *testing.T) {
	ev := convertEvent(tcell.NewEventKey(tcell.KeyRune, '7', tcell.ModNone))
	if ev.Type != EventKey || ev.Key != KeyRune || ev.Rune != '7' {
		t.Errorf("rune event = %+v", ev)
	}

	ev = convertEvent(tcell.NewEventKey(tcell.KeyUp, 0, tcell.ModShift))
	if ev.Key != KeyUp || !ev.Mod.Has(ModShift) {
		t.Errorf("arrow event = %+v", ev)
	}

	ev = convertEvent(tcell.NewEventKey(tcell.KeyCtrlC, 0, tcell.ModNone))
	if ev.Key != KeyCtrlC || !ev.Mod.Has(ModCtrl) {
		t.Errorf("ctrl-c event = %+v", ev)
	}
}

func TestConvertMouseAndInterrupt(t *testing.T) {
	ev := convertEvent(tcell.NewEventMouse(12, 4, tcell.Button1, tcell.ModNone))
	if ev.Type != EventMouse || ev.MouseX != 12 || ev.MouseY != 4 || ev.MouseButton != MouseLeft {
		t.Errorf("mouse event = %+v", ev)
	}

	ev = convertEvent(tcell.NewEventInterrupt(42))
	if ev.Type != EventInterrupt || ev.Data != 42 {
		t.Errorf("interrupt event = %+v", ev)
	}
}

func TestKeyRoundTrip(t *testing.T) {
	for _, k := range []Key{KeyEscape, KeyUp, KeyF5, KeyBackspace, KeyCtrlC} {
		if got := convertKey(convertToTcellKey(k)); got != k {
			t.Errorf("round trip %d -> %d", k, got)
		}
	}
}

func TestConvertStyle(t *testing.T) {
	s := core.NewStyle(core.ColorRed).WithBackground(core.ColorFromIndex(4)).Bold()
	fg, bg, attrs := convertStyle(s).Decompose()

	if fg != tcell.NewRGBColor(255, 0, 0) {
		t.Errorf("foreground = %v", fg)
	}
	if bg != tcell.PaletteColor(4) {
		t.Errorf("background = %v", bg)
	}
	if attrs&tcell.AttrBold == 0 {
		t.Error("bold not converted")
	}
}
