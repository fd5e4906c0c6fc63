package loader

import (
	"os"
	"strings"
)

// EnvLoader loads configuration from environment variables.
type EnvLoader struct {
	prefix  string            // Environment variable prefix (e.g., "SUDOKU_")
	mapping map[string]string // Env var -> config path
	environ func() []string
}

// NewEnvLoader creates a new environment variable loader.
// The prefix should include the trailing underscore (e.g., "SUDOKU_").
func NewEnvLoader(prefix string) *EnvLoader {
	return &EnvLoader{
		prefix:  prefix,
		mapping: defaultEnvMapping(),
		environ: os.Environ,
	}
}

// defaultEnvMapping returns the variables whose names do not follow
// the SECTION_KEY convention.
func defaultEnvMapping() map[string]string {
	return map[string]string{
		"SUDOKU_LOG_LEVEL":    "logging.level",
		"SUDOKU_LOG_FILE":     "logging.file",
		"SUDOKU_PUZZLE":       "game.puzzle",
		"SUDOKU_DIFFICULTY":   "game.difficulty",
		"SUDOKU_PUZZLE_FILE":  "game.puzzle_file",
		"SUDOKU_MAX_MISTAKES": "game.max_mistakes",
		"SUDOKU_SOUND":        "sound.enabled",
		"SUDOKU_SCRIPT":       "script.path",
	}
}

// Load reads environment variables and returns a configuration map.
// Values stay strings; the config package converts them to the type of
// the setting they land in. Empty values are kept, not treated as unset.
func (l *EnvLoader) Load() (map[string]any, error) {
	config := make(map[string]any)

	for _, env := range l.environ() {
		name, value, ok := strings.Cut(env, "=")
		if !ok || !strings.HasPrefix(name, l.prefix) {
			continue
		}

		path, mapped := l.mapping[name]
		if !mapped {
			path = l.envToPath(name)
		}
		if path == "" {
			continue
		}
		setByPath(config, path, value)
	}

	return config, nil
}

// AddMapping adds a custom environment variable mapping.
func (l *EnvLoader) AddMapping(envVar, configPath string) {
	if l.mapping == nil {
		l.mapping = make(map[string]string)
	}
	l.mapping[envVar] = configPath
}

// envToPath converts SUDOKU_THEME_GIVEN to theme.given. Everything
// after the section joins with underscores.
func (l *EnvLoader) envToPath(env string) string {
	name := strings.ToLower(strings.TrimPrefix(env, l.prefix))
	section, key, ok := strings.Cut(name, "_")
	if !ok || section == "" || key == "" {
		return ""
	}
	return section + "." + key
}

// setByPath sets a value in a nested map using a dot-separated path.
func setByPath(data map[string]any, path string, value any) {
	parts := strings.Split(path, ".")
	current := data

	for i := 0; i < len(parts)-1; i++ {
		part := parts[i]
		if next, ok := current[part].(map[string]any); ok {
			current = next
		} else {
			next := make(map[string]any)
			current[part] = next
			current = next
		}
	}

	current[parts[len(parts)-1]] = value
}
