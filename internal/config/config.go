package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"

	"github.com/dshills/sudoku/internal/config/loader"
	"github.com/dshills/sudoku/internal/game"
	"github.com/dshills/sudoku/internal/renderer/core"
)

// EnvPrefix prefixes every environment override.
const EnvPrefix = "SUDOKU_"

// Config is the complete game configuration.
type Config struct {
	Logging    LoggingConfig    `toml:"logging"`
	Game       GameConfig       `toml:"game"`
	Sound      SoundConfig      `toml:"sound"`
	Script     ScriptConfig     `toml:"script"`
	Dispatcher DispatcherConfig `toml:"dispatcher"`
	Theme      ThemeConfig      `toml:"theme"`
}

// LoggingConfig controls the log file.
type LoggingConfig struct {
	Level string `toml:"level"`
	// File receives log output. Empty discards it; the terminal is
	// owned by the board.
	File string `toml:"file"`
}

// GameConfig selects the puzzle and the rules.
type GameConfig struct {
	Puzzle      string `toml:"puzzle"`
	Difficulty  string `toml:"difficulty"`
	PuzzleFile  string `toml:"puzzle_file"`
	MaxMistakes int    `toml:"max_mistakes"`
}

// SoundConfig controls audio feedback.
type SoundConfig struct {
	Enabled bool `toml:"enabled"`
}

// ScriptConfig points at a Lua hook script.
type ScriptConfig struct {
	Path string `toml:"path"`
}

// DispatcherConfig tunes the key dispatcher.
type DispatcherConfig struct {
	Metrics bool `toml:"metrics"`
}

// ThemeConfig holds colour names or hex values.
type ThemeConfig struct {
	Given    string `toml:"given"`
	User     string `toml:"user"`
	Error    string `toml:"error"`
	Selected string `toml:"selected"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Logging: LoggingConfig{
			Level: "info",
		},
		Game: GameConfig{
			Difficulty: "easy",
		},
		Sound: SoundConfig{
			Enabled: true,
		},
		Theme: ThemeConfig{
			Given:    "#c0c0c0",
			User:     "#5fafff",
			Error:    "#ff5f5f",
			Selected: "#303050",
		},
	}
}

// DefaultPath returns the user config file location.
func DefaultPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "sudoku", "config.toml")
}

// Load merges defaults, the TOML file at path and the environment, then
// validates the result. A missing file is not an error.
func Load(path string) (*Config, error) {
	return load(loader.NewTOMLLoader(path), loader.NewEnvLoader(EnvPrefix))
}

func load(file, env loader.Loader) (*Config, error) {
	merged, err := toMap(Default())
	if err != nil {
		return nil, err
	}

	for _, l := range []loader.Loader{file, env} {
		layer, err := l.Load()
		if err != nil {
			return nil, err
		}
		merged = loader.DeepMerge(merged, layer)
	}

	if err := coerce(merged); err != nil {
		return nil, err
	}
	cfg, err := fromMap(merged)
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// toMap flattens a Config into the nested map form the loaders use.
func toMap(cfg *Config) (map[string]any, error) {
	data, err := toml.Marshal(cfg)
	if err != nil {
		return nil, fmt.Errorf("encoding defaults: %w", err)
	}
	var m map[string]any
	if err := toml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("decoding defaults: %w", err)
	}
	return m, nil
}

// fromMap decodes merged layers into a typed Config.
func fromMap(m map[string]any) (*Config, error) {
	data, err := toml.Marshal(m)
	if err != nil {
		return nil, fmt.Errorf("encoding merged config: %w", err)
	}
	cfg := &Config{}
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("decoding merged config: %w", err)
	}
	return cfg, nil
}

var logLevels = []string{"debug", "info", "warn", "error"}

// Validate checks every setting and reports all failures together.
func (c *Config) Validate() error {
	var errs []error
	fail := func(path, msg string, value any) {
		errs = append(errs, &ValidationError{Path: path, Message: msg, Value: value})
	}

	if !contains(logLevels, strings.ToLower(c.Logging.Level)) {
		fail("logging.level", "must be one of "+strings.Join(logLevels, ", "), c.Logging.Level)
	}
	if c.Game.Difficulty != "" && !game.IsDifficulty(c.Game.Difficulty) {
		fail("game.difficulty", "must be one of "+strings.Join(game.Difficulties, ", "), c.Game.Difficulty)
	}
	if c.Game.MaxMistakes < 0 {
		fail("game.max_mistakes", "must not be negative", c.Game.MaxMistakes)
	}

	colours := []struct{ path, value string }{
		{"theme.given", c.Theme.Given},
		{"theme.user", c.Theme.User},
		{"theme.error", c.Theme.Error},
		{"theme.selected", c.Theme.Selected},
	}
	for _, col := range colours {
		if col.value == "" {
			continue
		}
		if _, err := core.ParseColor(col.value); err != nil {
			fail(col.path, "not a colour name or hex value", col.value)
		}
	}

	return errors.Join(errs...)
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
