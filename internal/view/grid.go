package view

import (
	"github.com/dshills/sudoku/internal/dispatcher"
)

// Size is the number of rows and columns.
const Size = dispatcher.GridSize

// Board geometry in screen cells.
const (
	BoardWidth  = 2*Size + 2*(Size/3) + 1
	BoardHeight = Size + Size/3 + 1
)

const noSelection = -1

// Grid owns the cells and the selection. At most one cell is selected.
type Grid struct {
	cells    [Size][Size]*Cell
	selected int // row*Size+col, or noSelection

	// Top-left corner of the board border on screen.
	originX, originY int
}

// NewGrid creates a grid with nothing selected.
func NewGrid() *Grid {
	g := &Grid{selected: noSelection}
	for row := 0; row < Size; row++ {
		for col := 0; col < Size; col++ {
			g.cells[row][col] = &Cell{row: row, col: col}
		}
	}
	return g
}

// Cell returns the cell at row, col.
func (g *Grid) Cell(row, col int) *Cell {
	return g.cells[row][col]
}

// Cells returns the cells as the dispatcher sees them.
func (g *Grid) Cells() dispatcher.Cells {
	var out dispatcher.Cells
	for row := 0; row < Size; row++ {
		for col := 0; col < Size; col++ {
			out[row][col] = g.cells[row][col]
		}
	}
	return out
}

// Selection returns the selected cell.
func (g *Grid) Selection() (row, col int, ok bool) {
	if g.selected == noSelection {
		return 0, 0, false
	}
	return g.selected / Size, g.selected % Size, true
}

// Select moves the selection to row, col. Out-of-range positions are
// refused.
func (g *Grid) Select(row, col int) bool {
	if row < 0 || row >= Size || col < 0 || col >= Size {
		return false
	}
	if r, c, ok := g.Selection(); ok {
		g.cells[r][c].selected = false
	}
	g.selected = row*Size + col
	g.cells[row][col].selected = true
	return true
}

// ClearSelection deselects the selected cell, if any.
func (g *Grid) ClearSelection() {
	if r, c, ok := g.Selection(); ok {
		g.cells[r][c].selected = false
	}
	g.selected = noSelection
}

// Move shifts the selection by dr rows and dc columns, stopping at the
// edges. With nothing selected the top-left cell is selected.
func (g *Grid) Move(dr, dc int) {
	row, col, ok := g.Selection()
	if !ok {
		g.Select(0, 0)
		return
	}
	g.Select(clamp(row+dr, 0, Size-1), clamp(col+dc, 0, Size-1))
}

// SetOrigin places the board's top-left border corner on screen.
func (g *Grid) SetOrigin(x, y int) {
	g.originX, g.originY = x, y
}

// Origin returns the board's top-left border corner.
func (g *Grid) Origin() (x, y int) {
	return g.originX, g.originY
}

// CellPosition returns the screen position of a cell's digit.
func (g *Grid) CellPosition(row, col int) (x, y int) {
	return g.originX + 2 + 2*col + 2*(col/3), g.originY + 1 + row + row/3
}

// HitTest maps a screen position to a cell. The digit and the gutter
// after it both belong to the cell.
func (g *Grid) HitTest(x, y int) (row, col int, ok bool) {
	row, col = -1, -1
	for i := 0; i < Size; i++ {
		cx, cy := g.CellPosition(i, i)
		if cy == y {
			row = i
		}
		if x == cx || x == cx+1 {
			col = i
		}
	}
	if row < 0 || col < 0 {
		return 0, 0, false
	}
	return row, col, true
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
