// Package script runs a user Lua file that observes the game.
//
// The script may define
//
//	function on_action(a) ... end
//
// which is called after every effective key press with a table holding
// kind, key, row, col, digit, notes and paused. Rows and columns are
// 1-based and absent for actions that do not target a cell. Scripts can
// call log(msg) and status(), which returns a table with mistakes,
// elapsed (seconds), state and paused.
//
// Only the base, table, string and math libraries are available.
package script
