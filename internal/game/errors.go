package game

import "errors"

// Game errors.
var (
	// ErrInvalidPuzzle indicates a puzzle string that is not 81 cells of
	// digits, '0' or '.'.
	ErrInvalidPuzzle = errors.New("game: invalid puzzle")

	// ErrUnsolvable indicates a puzzle with no solution.
	ErrUnsolvable = errors.New("game: puzzle has no solution")

	// ErrPuzzleNotFound indicates no puzzle matched the requested id or
	// difficulty.
	ErrPuzzleNotFound = errors.New("game: puzzle not found")

	// ErrInvalidPack indicates a puzzle pack that is not valid JSON or
	// has no puzzles array.
	ErrInvalidPack = errors.New("game: invalid puzzle pack")
)
