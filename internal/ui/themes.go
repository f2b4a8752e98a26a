package ui

import (
	"os"
	"sync"

	"github.com/charmbracelet/lipgloss"
)

// Theme defines lipgloss-compatible colors for terminal output.
type Theme struct {
	// Name is the identifier of the theme.
	Name string
	// Accent highlights headers and titles.
	Accent lipgloss.TerminalColor
	// Text is the default foreground.
	Text lipgloss.TerminalColor
	// Border colors table borders.
	Border lipgloss.TerminalColor
	// Success marks consistent scenarios.
	Success lipgloss.TerminalColor
	// Warning marks mismatched results.
	Warning lipgloss.TerminalColor
	// Error marks faulted scenarios.
	Error lipgloss.TerminalColor
	// Dim is used for secondary values.
	Dim lipgloss.TerminalColor
}

var (
	// DarkTheme is the default palette, tuned for dark terminals.
	DarkTheme = Theme{
		Name:    "dark",
		Accent:  lipgloss.Color("#5FD7FF"),
		Text:    lipgloss.Color("#D0D0D0"),
		Border:  lipgloss.Color("#3A7CA5"),
		Success: lipgloss.Color("#87D75F"),
		Warning: lipgloss.Color("#FFD75F"),
		Error:   lipgloss.Color("#FF5F5F"),
		Dim:     lipgloss.Color("#767676"),
	}

	// NoColorTheme renders text with the terminal's default colors.
	NoColorTheme = Theme{
		Name:    "none",
		Accent:  lipgloss.NoColor{},
		Text:    lipgloss.NoColor{},
		Border:  lipgloss.NoColor{},
		Success: lipgloss.NoColor{},
		Warning: lipgloss.NoColor{},
		Error:   lipgloss.NoColor{},
		Dim:     lipgloss.NoColor{},
	}

	currentTheme = DarkTheme
	themeMutex   sync.RWMutex
)

// GetCurrentTheme returns the active theme.
func GetCurrentTheme() Theme {
	themeMutex.RLock()
	defer themeMutex.RUnlock()
	return currentTheme
}

// SetCurrentTheme replaces the active theme; tests use it to restore state.
func SetCurrentTheme(t Theme) {
	themeMutex.Lock()
	defer themeMutex.Unlock()
	currentTheme = t
}

// InitTheme picks the plain theme when noColor is set or NO_COLOR is present
// in the environment (https://no-color.org/), and DarkTheme otherwise.
//
// Parameters:
//   - noColor: If true, disables all color output regardless of environment.
func InitTheme(noColor bool) {
	themeMutex.Lock()
	defer themeMutex.Unlock()

	if noColor {
		currentTheme = NoColorTheme
		return
	}
	if _, exists := os.LookupEnv("NO_COLOR"); exists {
		currentTheme = NoColorTheme
		return
	}
	currentTheme = DarkTheme
}

// ColorsEnabled reports whether the active theme emits colors.
func ColorsEnabled() bool {
	return GetCurrentTheme().Name != NoColorTheme.Name
}
