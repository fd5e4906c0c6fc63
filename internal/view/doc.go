// Package view holds the on-screen state of the game and draws it.
//
// Grid owns the 81 cells and the single selection, StatusBar mirrors the
// input mode and owns the pause button, and Renderer paints both onto a
// backend.Backend. Cell and StatusBar satisfy the dispatcher's view
// interfaces; Grid is its SelectionSource.
//
// Board layout, with the origin at the top-left border corner:
//
//	+-------+-------+-------+
//	| 5 3 . | . 7 . | . . . |
//	...
//
// Each cell is one character wide with a one-space gutter.
package view
