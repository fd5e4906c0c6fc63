package view

import (
	"fmt"

	"github.com/dshills/sudoku/internal/renderer/core"
)

// Theme holds the styles the renderer draws with.
type Theme struct {
	Border        core.Style
	Given         core.Style
	User          core.Style
	Error         core.Style
	Empty         core.Style
	Selected      core.Style
	SelectedNotes core.Style
	Text          core.Style
	Button        core.Style
}

// DefaultTheme returns the built-in colours.
func DefaultTheme() Theme {
	return Theme{
		Border:        core.NewStyle(core.ColorGray),
		Given:         core.NewStyle(core.ColorWhite).Bold(),
		User:          core.NewStyle(core.ColorCyan),
		Error:         core.NewStyle(core.ColorRed).Bold(),
		Empty:         core.NewStyle(core.ColorGray).Dim(),
		Selected:      core.DefaultStyle().WithBackground(core.ColorBlue),
		SelectedNotes: core.DefaultStyle().WithBackground(core.ColorMagenta),
		Text:          core.DefaultStyle(),
		Button:        core.DefaultStyle().Reverse(),
	}
}

// ThemeColors names the configurable theme colours. Empty fields keep
// the default.
type ThemeColors struct {
	Given    string
	User     string
	Error    string
	Selected string
}

// NewTheme applies colour names or hex values over the default theme.
func NewTheme(c ThemeColors) (Theme, error) {
	t := DefaultTheme()

	set := func(name, value string, apply func(core.Color)) error {
		if value == "" {
			return nil
		}
		col, err := core.ParseColor(value)
		if err != nil {
			return fmt.Errorf("theme %s: %w", name, err)
		}
		apply(col)
		return nil
	}

	if err := set("given", c.Given, func(col core.Color) { t.Given = t.Given.WithForeground(col) }); err != nil {
		return t, err
	}
	if err := set("user", c.User, func(col core.Color) { t.User = t.User.WithForeground(col) }); err != nil {
		return t, err
	}
	if err := set("error", c.Error, func(col core.Color) { t.Error = t.Error.WithForeground(col) }); err != nil {
		return t, err
	}
	if err := set("selected", c.Selected, func(col core.Color) { t.Selected = t.Selected.WithBackground(col) }); err != nil {
		return t, err
	}
	return t, nil
}
