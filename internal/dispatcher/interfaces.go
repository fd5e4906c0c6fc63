package dispatcher

// GridSize is the number of rows and columns of the puzzle grid.
const GridSize = 9

// Controller is the game-logic collaborator that owns the puzzle state.
// Rows and columns are 0-indexed, digits are 1-9. The controller is
// responsible for rejecting requests it cannot honour.
type Controller interface {
	IsGameOver() bool
	SetNote(row, col, digit int)
	PlayNumber(row, col, digit int)
	RemoveNumber(row, col int)
	PauseGame()
	ResumeGame()
}

// ChangeCounter is implemented by controllers that count the mutations
// they accept. The dispatcher compares the count around a cell request
// to mark refused actions.
type ChangeCounter interface {
	Changes() uint64
}

// CellView is one grid position as seen by the dispatcher.
type CellView interface {
	IsSelected() bool
	SetNotesMode()
	SetNormalMode()
}

// StatusView is the status display that mirrors the input mode.
type StatusView interface {
	SetNotesMode()
	SetNormalMode()
}

// SelectionSource answers "which cell is selected" without scanning.
// Implemented by the view that owns the selection.
type SelectionSource interface {
	Selection() (row, col int, ok bool)
}

// Cells is the fixed 9x9 collection of cell views, indexed [row][col].
type Cells [GridSize][GridSize]CellView
