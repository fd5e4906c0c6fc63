package view

import (
	"fmt"
	"strings"
	"time"

	"github.com/dshills/sudoku/internal/game"
	"github.com/dshills/sudoku/internal/renderer/backend"
	"github.com/dshills/sudoku/internal/renderer/core"
)

// Game is the read side of the game controller.
type Game interface {
	Puzzle() game.Puzzle
	State() game.State
	IsPaused() bool
	Value(row, col int) int
	IsGiven(row, col int) bool
	IsWrong(row, col int) bool
	Notes(row, col int) game.NoteSet
	Elapsed() time.Duration
	Mistakes() int
	MaxMistakes() int
}

// HelpLine lists the key bindings.
const HelpLine = "arrows/hjkl move  1-9 play  space clear  n notes  p pause  q quit"

// Screen placement of the board.
const (
	boardLeft = 2
	boardTop  = 2
)

// Renderer paints the grid and status bar onto a backend.
type Renderer struct {
	backend backend.Backend
	grid    *Grid
	status  *StatusBar
	theme   Theme
}

// NewRenderer creates a renderer and places the grid on screen.
func NewRenderer(b backend.Backend, grid *Grid, status *StatusBar, theme Theme) *Renderer {
	grid.SetOrigin(boardLeft, boardTop)
	return &Renderer{
		backend: b,
		grid:    grid,
		status:  status,
		theme:   theme,
	}
}

// SetTheme replaces the theme used by the next Draw.
func (r *Renderer) SetTheme(t Theme) {
	r.theme = t
}

// Theme returns the current theme.
func (r *Renderer) Theme() Theme {
	return r.theme
}

// Draw repaints the whole screen and flushes it.
func (r *Renderer) Draw(g Game) {
	r.backend.Clear()
	r.backend.HideCursor()

	ox, oy := r.grid.Origin()
	p := g.Puzzle()
	r.text(ox, oy-2, fmt.Sprintf("SUDOKU  %s (%s)", p.ID, p.Difficulty), r.theme.Text.Bold())

	r.drawBorder(ox, oy)
	r.drawCells(g)

	y := oy + BoardHeight + 1
	r.drawStatus(ox, y, g)
	r.text(ox, y+1, r.messageFor(g), r.theme.Text)
	r.text(ox, y+3, HelpLine, r.theme.Empty)

	r.backend.Show()
}

func (r *Renderer) drawBorder(ox, oy int) {
	rule := "+" + strings.Repeat("-------+", 3)
	for dy := 0; dy < BoardHeight; dy++ {
		if dy%4 == 0 {
			r.text(ox, oy+dy, rule, r.theme.Border)
			continue
		}
		for _, dx := range []int{0, 8, 16, 24} {
			r.backend.SetCell(ox+dx, oy+dy, core.NewStyledCell('|', r.theme.Border))
		}
	}
}

func (r *Renderer) drawCells(g Game) {
	paused := g.IsPaused()
	for row := 0; row < Size; row++ {
		for col := 0; col < Size; col++ {
			x, y := r.grid.CellPosition(row, col)
			ch, style := r.cellGlyph(g, row, col, paused)

			cell := r.grid.Cell(row, col)
			if cell.IsSelected() && !paused {
				sel := r.theme.Selected
				if cell.NotesMode() {
					sel = r.theme.SelectedNotes
				}
				style = style.WithBackground(sel.Background)
			}
			r.backend.SetCell(x, y, core.NewStyledCell(ch, style))
		}
	}
}

// cellGlyph picks the character and style of one cell. Paused boards
// are drawn blank.
func (r *Renderer) cellGlyph(g Game, row, col int, paused bool) (rune, core.Style) {
	if paused {
		return ' ', r.theme.Empty
	}
	v := g.Value(row, col)
	switch {
	case v == 0 && g.Notes(row, col) != 0:
		return '·', r.theme.User
	case v == 0:
		return '.', r.theme.Empty
	case g.IsGiven(row, col):
		return rune('0' + v), r.theme.Given
	case g.IsWrong(row, col):
		return rune('0' + v), r.theme.Error
	default:
		return rune('0' + v), r.theme.User
	}
}

func (r *Renderer) drawStatus(x, y int, g Game) {
	mistakes := fmt.Sprintf("%d", g.Mistakes())
	if limit := g.MaxMistakes(); limit > 0 {
		mistakes = fmt.Sprintf("%d/%d", g.Mistakes(), limit)
	}
	line := fmt.Sprintf("Mode: %-6s  Time: %s  Mistakes: %s  ",
		r.status.ModeLabel(), FormatElapsed(g.Elapsed()), mistakes)

	x = r.text(x, y, line, r.theme.Text)
	r.text(x, y, PauseButtonLabel, r.theme.Button)
	r.status.SetPauseButton(core.RectFromSize(y, x, 1, len(PauseButtonLabel)))
}

func (r *Renderer) messageFor(g Game) string {
	switch g.State() {
	case game.StateWon:
		return "Solved! Press q to quit."
	case game.StateLost:
		return "Too many mistakes. Game over."
	}
	if g.IsPaused() {
		return "Paused. Press p to resume."
	}
	if msg := r.status.Message(); msg != "" {
		return msg
	}
	if row, col, ok := r.grid.Selection(); ok {
		if notes := g.Notes(row, col).Digits(); len(notes) > 0 {
			parts := make([]string, len(notes))
			for i, d := range notes {
				parts[i] = fmt.Sprint(d)
			}
			return fmt.Sprintf("Notes r%dc%d: %s", row+1, col+1, strings.Join(parts, " "))
		}
	}
	return ""
}

// text draws s at x, y and returns the column after it.
func (r *Renderer) text(x, y int, s string, style core.Style) int {
	for _, ch := range s {
		r.backend.SetCell(x, y, core.NewStyledCell(ch, style))
		x++
	}
	return x
}

// FormatElapsed renders a duration as mm:ss, or h:mm:ss past an hour.
func FormatElapsed(d time.Duration) string {
	total := int(d / time.Second)
	h, m, s := total/3600, (total/60)%60, total%60
	if h > 0 {
		return fmt.Sprintf("%d:%02d:%02d", h, m, s)
	}
	return fmt.Sprintf("%02d:%02d", m, s)
}
