// Package main is the entry point for the sudoku game.
package main

import (
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/dshills/sudoku/internal/app"
	"github.com/dshills/sudoku/internal/config"
	"github.com/dshills/sudoku/internal/game"
	"github.com/dshills/sudoku/internal/renderer/backend"
)

// Version information (set via ldflags during build).
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

func main() {
	os.Exit(run())
}

func run() int {
	opts := parseFlags()

	application, err := app.New(opts)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to initialize: %v\n", err)
		return 1
	}
	defer application.Close()

	term, err := backend.NewTerminal()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to create terminal: %v\n", err)
		return 1
	}
	if err := application.SetBackend(term); err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to set backend: %v\n", err)
		return 1
	}

	signals := make(chan os.Signal, 1)
	signal.Notify(signals, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(signals)

	go func() {
		<-signals
		application.Shutdown()
	}()

	if err := application.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}

	return 0
}

func parseFlags() app.Options {
	var opts app.Options
	var showVersion bool
	var showHelp bool

	flag.StringVar(&opts.ConfigPath, "config", "", "Path to configuration file")
	flag.StringVar(&opts.ConfigPath, "c", "", "Path to configuration file (shorthand)")
	flag.StringVar(&opts.Puzzle, "puzzle", "", "Puzzle id to play")
	flag.StringVar(&opts.Puzzle, "p", "", "Puzzle id to play (shorthand)")
	flag.StringVar(&opts.Difficulty, "difficulty", "", "Pick a random puzzle of this difficulty (easy, medium, hard)")
	flag.StringVar(&opts.LogLevel, "log-level", "", "Log level (debug, info, warn, error)")
	flag.StringVar(&opts.LogFile, "log-file", "", "Write logs to this file")
	flag.BoolVar(&opts.NoSound, "no-sound", false, "Disable sound effects")
	flag.StringVar(&opts.Script, "script", "", "Lua script notified of every action")
	flag.BoolVar(&showVersion, "version", false, "Show version information")
	flag.BoolVar(&showVersion, "v", false, "Show version information (shorthand)")
	flag.BoolVar(&showHelp, "help", false, "Show help message")
	flag.BoolVar(&showHelp, "h", false, "Show help message (shorthand)")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Sudoku - terminal sudoku\n\n")
		fmt.Fprintf(os.Stderr, "Usage: sudoku [options]\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nKeys:\n")
		fmt.Fprintf(os.Stderr, "  arrows, h j k l   move the selection\n")
		fmt.Fprintf(os.Stderr, "  1-9               play a number, or toggle a note in notes mode\n")
		fmt.Fprintf(os.Stderr, "  space             clear the selected cell\n")
		fmt.Fprintf(os.Stderr, "  n                 toggle notes mode\n")
		fmt.Fprintf(os.Stderr, "  p                 pause or resume\n")
		fmt.Fprintf(os.Stderr, "  q, Esc            quit\n")
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  sudoku                      Random easy puzzle\n")
		fmt.Fprintf(os.Stderr, "  sudoku -difficulty hard     Random hard puzzle\n")
		fmt.Fprintf(os.Stderr, "  sudoku -p classic           Play a puzzle by id\n")
	}

	flag.Parse()

	if showHelp {
		flag.Usage()
		os.Exit(0)
	}

	if showVersion {
		fmt.Printf("Sudoku %s\n", version)
		fmt.Printf("Commit: %s\n", commit)
		fmt.Printf("Built: %s\n", date)
		os.Exit(0)
	}

	switch opts.LogLevel {
	case "", "debug", "info", "warn", "error":
	default:
		fmt.Fprintf(os.Stderr, "Error: invalid log level %q (must be debug, info, warn, or error)\n", opts.LogLevel)
		os.Exit(1)
	}

	if opts.Difficulty != "" && !game.IsDifficulty(opts.Difficulty) {
		fmt.Fprintf(os.Stderr, "Error: invalid difficulty %q\n", opts.Difficulty)
		os.Exit(1)
	}

	if flag.NArg() > 0 {
		fmt.Fprintf(os.Stderr, "Error: unexpected arguments: %v\n", flag.Args())
		os.Exit(1)
	}

	// Fall back to the per-user config file when it exists.
	if opts.ConfigPath == "" {
		if path := config.DefaultPath(); path != "" {
			if _, err := os.Stat(path); err == nil {
				opts.ConfigPath = path
			}
		}
	}

	return opts
}
