package game

import (
	"fmt"
	"strings"
)

// Size is the number of rows and columns on the board.
const Size = 9

// BoxSize is the side of one 3x3 box.
const BoxSize = 3

// NoteSet is a bitmask of candidate digits; bit d is digit d (1-9).
type NoteSet uint16

// Has reports whether digit is in the set.
func (n NoteSet) Has(digit int) bool {
	return n&(1<<uint(digit)) != 0
}

// Toggle returns the set with digit flipped.
func (n NoteSet) Toggle(digit int) NoteSet {
	return n ^ (1 << uint(digit))
}

// Digits returns the digits in ascending order.
func (n NoteSet) Digits() []int {
	var out []int
	for d := 1; d <= Size; d++ {
		if n.Has(d) {
			out = append(out, d)
		}
	}
	return out
}

// Board is a 9x9 grid of values with a mask of given (fixed) cells and
// per-cell notes. A value of 0 means empty.
type Board struct {
	values [Size][Size]int
	given  [Size][Size]bool
	notes  [Size][Size]NoteSet
}

// ParseBoard parses an 81-character puzzle. Digits 1-9 are givens; '0'
// and '.' are empty cells. Whitespace is ignored.
func ParseBoard(s string) (*Board, error) {
	s = strings.Join(strings.Fields(s), "")
	if len(s) != Size*Size {
		return nil, fmt.Errorf("%w: want %d cells, got %d", ErrInvalidPuzzle, Size*Size, len(s))
	}

	b := &Board{}
	for i, ch := range s {
		row, col := i/Size, i%Size
		switch {
		case ch >= '1' && ch <= '9':
			b.values[row][col] = int(ch - '0')
			b.given[row][col] = true
		case ch == '0' || ch == '.':
		default:
			return nil, fmt.Errorf("%w: unexpected %q at cell %d", ErrInvalidPuzzle, ch, i)
		}
	}
	return b, nil
}

// InBounds reports whether row and col address a cell.
func InBounds(row, col int) bool {
	return row >= 0 && row < Size && col >= 0 && col < Size
}

// Value returns the value at a cell, 0 if empty.
func (b *Board) Value(row, col int) int {
	return b.values[row][col]
}

// IsGiven reports whether the cell is part of the puzzle.
func (b *Board) IsGiven(row, col int) bool {
	return b.given[row][col]
}

// Notes returns the candidate notes of a cell.
func (b *Board) Notes(row, col int) NoteSet {
	return b.notes[row][col]
}

// Set writes a value and clears the cell's notes. Givens are never
// overwritten.
func (b *Board) Set(row, col, digit int) bool {
	if b.given[row][col] {
		return false
	}
	b.values[row][col] = digit
	b.notes[row][col] = 0
	return true
}

// Clear empties a non-given cell.
func (b *Board) Clear(row, col int) bool {
	if b.given[row][col] || b.values[row][col] == 0 {
		return false
	}
	b.values[row][col] = 0
	return true
}

// ToggleNote flips a candidate in an empty, non-given cell.
func (b *Board) ToggleNote(row, col, digit int) bool {
	if b.given[row][col] || b.values[row][col] != 0 {
		return false
	}
	b.notes[row][col] = b.notes[row][col].Toggle(digit)
	return true
}

// Filled reports whether every cell has a value.
func (b *Board) Filled() bool {
	for row := 0; row < Size; row++ {
		for col := 0; col < Size; col++ {
			if b.values[row][col] == 0 {
				return false
			}
		}
	}
	return true
}

// Conflicts reports whether the value at a cell repeats in its row,
// column or box.
func (b *Board) Conflicts(row, col int) bool {
	v := b.values[row][col]
	if v == 0 {
		return false
	}
	for i := 0; i < Size; i++ {
		if i != col && b.values[row][i] == v {
			return true
		}
		if i != row && b.values[i][col] == v {
			return true
		}
	}
	br, bc := row/BoxSize*BoxSize, col/BoxSize*BoxSize
	for r := br; r < br+BoxSize; r++ {
		for c := bc; c < bc+BoxSize; c++ {
			if (r != row || c != col) && b.values[r][c] == v {
				return true
			}
		}
	}
	return false
}

// Clone returns a deep copy.
func (b *Board) Clone() *Board {
	c := *b
	return &c
}

// String renders the board as 81 characters with '.' for empty cells.
func (b *Board) String() string {
	var sb strings.Builder
	sb.Grow(Size * Size)
	for row := 0; row < Size; row++ {
		for col := 0; col < Size; col++ {
			if v := b.values[row][col]; v != 0 {
				sb.WriteByte(byte('0' + v))
			} else {
				sb.WriteByte('.')
			}
		}
	}
	return sb.String()
}
