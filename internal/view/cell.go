package view

// Cell is the view state of one grid position.
type Cell struct {
	row, col int
	selected bool
	notes    bool
}

// Row returns the 0-based row.
func (c *Cell) Row() int { return c.row }

// Col returns the 0-based column.
func (c *Cell) Col() int { return c.col }

// IsSelected reports whether the cell holds the selection.
func (c *Cell) IsSelected() bool { return c.selected }

// SetNotesMode switches the cell to notes display.
func (c *Cell) SetNotesMode() { c.notes = true }

// SetNormalMode switches the cell back to value display.
func (c *Cell) SetNormalMode() { c.notes = false }

// NotesMode reports whether the cell is in notes display.
func (c *Cell) NotesMode() bool { return c.notes }
