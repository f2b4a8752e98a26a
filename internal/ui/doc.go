// Package ui provides the color palette shared by tancalc's terminal output.
// It resolves whether colors are enabled (the -no-color flag or NO_COLOR) and
// exposes lipgloss colors so presentation packages stay theme-agnostic.
package ui
