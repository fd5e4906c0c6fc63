// Package game holds the puzzle state and the rules of play.
//
// Controller is the game-logic collaborator driven by the input
// dispatcher. It owns a Board (givens, player values, notes), the
// solution computed by Solve, the mistake counter and the play clock.
// Requests the rules do not allow, such as writing into a given cell or
// playing while paused, are ignored rather than reported.
package game
