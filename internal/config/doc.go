// Package config loads the game configuration.
//
// Settings come from three layers, later layers winning:
//
//  1. Built-in defaults (Default)
//  2. A TOML file, usually ~/.config/sudoku/config.toml
//  3. SUDOKU_ environment variables
//
// The merged layers are decoded into a typed Config and validated.
// The watcher subpackage reports edits to the file so a running game can
// reload its logging and sound settings.
package config
