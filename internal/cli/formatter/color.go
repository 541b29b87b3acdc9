package formatter

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Palette. Green marks a running punch, dim marks closed or empty state.
var (
	ColorIn     = lipgloss.Color("#8ec07c")
	ColorWarn   = lipgloss.Color("#fabd2f")
	ColorFail   = lipgloss.Color("#fb4934")
	ColorDim    = lipgloss.Color("#928374")
	ColorFg     = lipgloss.Color("#ebdbb2")
	ColorHeader = lipgloss.Color("#fe8019")
)

var (
	StyleIn     = lipgloss.NewStyle().Foreground(ColorIn)
	StyleDim    = lipgloss.NewStyle().Foreground(ColorDim)
	StyleHeader = lipgloss.NewStyle().Foreground(ColorHeader).Bold(true)

	styleWarn = lipgloss.NewStyle().Foreground(ColorWarn)
	styleFail = lipgloss.NewStyle().Foreground(ColorFail).Bold(true)
	styleBold = lipgloss.NewStyle().Foreground(ColorFg).Bold(true)
)

// Header renders an upper-cased title underlined to its width.
func Header(text string) string {
	title := strings.ToUpper(text)
	rule := strings.Repeat("─", lipgloss.Width(title))
	return fmt.Sprintf("%s\n%s", StyleHeader.Render(title), StyleDim.Render(rule))
}

func Dim(text string) string  { return StyleDim.Render(text) }
func Bold(text string) string { return styleBold.Render(text) }

// Success, Warn and Fail color one-line command results.
func Success(text string) string { return StyleIn.Render(text) }
func Warn(text string) string    { return styleWarn.Render(text) }
func Fail(text string) string    { return styleFail.Render(text) }
