package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/dshills/sudoku/internal/config/loader"
)

type mapLoader map[string]any

func (m mapLoader) Load() (map[string]any, error) { return m, nil }

type failLoader struct{ err error }

func (f failLoader) Load() (map[string]any, error) { return nil, f.err }

func TestDefaultIsValid(t *testing.T) {
	if err := Default().Validate(); err != nil {
		t.Fatalf("default config invalid: %v", err)
	}
}

func TestLoadDefaultsOnly(t *testing.T) {
	cfg, err := load(mapLoader(nil), mapLoader(nil))
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if cfg.Logging.Level != "info" || cfg.Game.Difficulty != "easy" || !cfg.Sound.Enabled {
		t.Errorf("defaults not applied: %+v", cfg)
	}
	if cfg.Theme.Given != "#c0c0c0" {
		t.Errorf("theme default = %q", cfg.Theme.Given)
	}
}

func TestLoadLayering(t *testing.T) {
	file := mapLoader{
		"game":  map[string]any{"difficulty": "medium", "max_mistakes": int64(3)},
		"sound": map[string]any{"enabled": false},
	}
	env := mapLoader{
		"game":       map[string]any{"difficulty": "hard"},
		"dispatcher": map[string]any{"metrics": true},
	}

	cfg, err := load(file, env)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}

	if cfg.Game.Difficulty != "hard" {
		t.Errorf("env should win: difficulty = %q", cfg.Game.Difficulty)
	}
	if cfg.Game.MaxMistakes != 3 {
		t.Errorf("file value lost: max_mistakes = %d", cfg.Game.MaxMistakes)
	}
	if cfg.Sound.Enabled {
		t.Error("file should disable sound")
	}
	if !cfg.Dispatcher.Metrics {
		t.Error("env should enable metrics")
	}
	if cfg.Logging.Level != "info" {
		t.Errorf("default lost: level = %q", cfg.Logging.Level)
	}
}

func TestLoadPropagatesLoaderError(t *testing.T) {
	boom := errors.New("boom")
	if _, err := load(failLoader{boom}, mapLoader(nil)); !errors.Is(err, boom) {
		t.Errorf("expected loader error, got %v", err)
	}
}

func TestLoadFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	content := `
[logging]
level = "debug"

[game]
puzzle = "summit"

[theme]
selected = "blue"
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := load(loader.NewTOMLLoader(path), mapLoader(nil))
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if cfg.Logging.Level != "debug" || cfg.Game.Puzzle != "summit" || cfg.Theme.Selected != "blue" {
		t.Errorf("file values not applied: %+v", cfg)
	}
}

func TestLoadReportsParseError(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte("[game\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	_, err := load(loader.NewTOMLLoader(path), mapLoader(nil))
	var perr *loader.ParseError
	if !errors.As(err, &perr) {
		t.Errorf("expected ParseError, got %v", err)
	}
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("SUDOKU_DIFFICULTY", "medium")
	t.Setenv("SUDOKU_MAX_MISTAKES", "5")
	t.Setenv("SUDOKU_SOUND", "off")

	cfg, err := Load(filepath.Join(t.TempDir(), "missing.toml"))
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Game.Difficulty != "medium" || cfg.Game.MaxMistakes != 5 || cfg.Sound.Enabled {
		t.Errorf("env not applied: %+v", cfg.Game)
	}
}

func TestLoadConvertsEnvironmentValues(t *testing.T) {
	tests := []struct {
		name  string
		env   map[string]string
		check func(*Config) bool
	}{
		{"sound off as 0", map[string]string{"SUDOKU_SOUND": "0"}, func(c *Config) bool { return !c.Sound.Enabled }},
		{"sound on as 1", map[string]string{"SUDOKU_SOUND": "1"}, func(c *Config) bool { return c.Sound.Enabled }},
		{"sound off as no", map[string]string{"SUDOKU_SOUND": "No"}, func(c *Config) bool { return !c.Sound.Enabled }},
		{"metrics as 1", map[string]string{"SUDOKU_DISPATCHER_METRICS": "1"}, func(c *Config) bool { return c.Dispatcher.Metrics }},
		{"metrics as true", map[string]string{"SUDOKU_DISPATCHER_METRICS": "true"}, func(c *Config) bool { return c.Dispatcher.Metrics }},
		{"numeric puzzle", map[string]string{"SUDOKU_PUZZLE": "42"}, func(c *Config) bool { return c.Game.Puzzle == "42" }},
		{"max mistakes", map[string]string{"SUDOKU_MAX_MISTAKES": "1"}, func(c *Config) bool { return c.Game.MaxMistakes == 1 }},
		{"numeric log file", map[string]string{"SUDOKU_LOG_FILE": "0"}, func(c *Config) bool { return c.Logging.File == "0" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			cfg, err := Load("")
			if err != nil {
				t.Fatalf("Load failed: %v", err)
			}
			if !tt.check(cfg) {
				t.Errorf("env %v not applied: %+v", tt.env, cfg)
			}
		})
	}
}

func TestLoadRejectsUnconvertibleValues(t *testing.T) {
	tests := []struct {
		name string
		env  string
		val  string
		path string
	}{
		{"bool", "SUDOKU_SOUND", "loud", "sound.enabled"},
		{"int", "SUDOKU_MAX_MISTAKES", "lots", "game.max_mistakes"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(tt.env, tt.val)
			_, err := Load("")
			if !errors.Is(err, ErrInvalidConfig) {
				t.Fatalf("expected ErrInvalidConfig, got %v", err)
			}
			if !strings.Contains(err.Error(), tt.path) {
				t.Errorf("error %q does not mention %s", err, tt.path)
			}
		})
	}
}

func TestLoadConvertsFileValues(t *testing.T) {
	file := mapLoader{
		"game":  map[string]any{"puzzle": int64(7)},
		"sound": map[string]any{"enabled": int64(0)},
	}
	cfg, err := load(file, mapLoader(nil))
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if cfg.Game.Puzzle != "7" || cfg.Sound.Enabled {
		t.Errorf("file values not converted: %+v", cfg)
	}
}

func TestValidate(t *testing.T) {
	cfg := Default()
	cfg.Logging.Level = "loud"
	cfg.Game.Difficulty = "nightmare"
	cfg.Game.MaxMistakes = -1
	cfg.Theme.Error = "#zzzzzz"

	err := cfg.Validate()
	if !errors.Is(err, ErrInvalidConfig) {
		t.Fatalf("expected ErrInvalidConfig, got %v", err)
	}

	for _, path := range []string{"logging.level", "game.difficulty", "game.max_mistakes", "theme.error"} {
		if !strings.Contains(err.Error(), path) {
			t.Errorf("error %q does not mention %s", err, path)
		}
	}

	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Error("expected a ValidationError in the chain")
	}
}

func TestValidateAllowsEmptyDifficulty(t *testing.T) {
	cfg := Default()
	cfg.Game.Difficulty = ""
	cfg.Theme.User = ""
	if err := cfg.Validate(); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
}
