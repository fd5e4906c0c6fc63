package game

// Solve returns the solved grid for a board, considering only its
// givens. Player values and notes are ignored.
func Solve(b *Board) ([Size][Size]int, error) {
	var grid [Size][Size]int
	for row := 0; row < Size; row++ {
		for col := 0; col < Size; col++ {
			if b.given[row][col] {
				grid[row][col] = b.values[row][col]
			}
		}
	}

	s := newSolver(grid)
	if !s.consistent() || !s.solve() {
		return grid, ErrUnsolvable
	}
	return s.grid, nil
}

// solver is a bitmask backtracking solver that always fills the most
// constrained empty cell first.
type solver struct {
	grid [Size][Size]int
	rows [Size]uint16
	cols [Size]uint16
	boxs [Size]uint16
}

func newSolver(grid [Size][Size]int) *solver {
	return &solver{grid: grid}
}

func boxIndex(row, col int) int {
	return row/BoxSize*BoxSize + col/BoxSize
}

// consistent loads the givens into the masks and reports whether any
// given repeats.
func (s *solver) consistent() bool {
	for row := 0; row < Size; row++ {
		for col := 0; col < Size; col++ {
			v := s.grid[row][col]
			if v == 0 {
				continue
			}
			bit := uint16(1) << uint(v)
			box := boxIndex(row, col)
			if s.rows[row]&bit != 0 || s.cols[col]&bit != 0 || s.boxs[box]&bit != 0 {
				return false
			}
			s.rows[row] |= bit
			s.cols[col] |= bit
			s.boxs[box] |= bit
		}
	}
	return true
}

func (s *solver) candidates(row, col int) uint16 {
	used := s.rows[row] | s.cols[col] | s.boxs[boxIndex(row, col)]
	return ^used & 0x3FE
}

func (s *solver) solve() bool {
	bestRow, bestCol, bestCount := -1, -1, Size+1
	var bestMask uint16

	for row := 0; row < Size; row++ {
		for col := 0; col < Size; col++ {
			if s.grid[row][col] != 0 {
				continue
			}
			mask := s.candidates(row, col)
			count := popcount(mask)
			if count == 0 {
				return false
			}
			if count < bestCount {
				bestRow, bestCol, bestCount, bestMask = row, col, count, mask
			}
		}
	}

	if bestRow < 0 {
		return true
	}

	box := boxIndex(bestRow, bestCol)
	for v := 1; v <= Size; v++ {
		bit := uint16(1) << uint(v)
		if bestMask&bit == 0 {
			continue
		}
		s.grid[bestRow][bestCol] = v
		s.rows[bestRow] |= bit
		s.cols[bestCol] |= bit
		s.boxs[box] |= bit

		if s.solve() {
			return true
		}

		s.grid[bestRow][bestCol] = 0
		s.rows[bestRow] &^= bit
		s.cols[bestCol] &^= bit
		s.boxs[box] &^= bit
	}
	return false
}

func popcount(x uint16) int {
	n := 0
	for x != 0 {
		x &= x - 1
		n++
	}
	return n
}
