package ui

import (
	"os"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"
)

// Color palette
var (
	PrimaryColor = lipgloss.Color("#7D56F4") // Purple - titles, borders, focus
	SuccessColor = lipgloss.Color("#43BF6D") // Green - saved, checkmarks
	ErrorColor   = lipgloss.Color("#FF5555") // Red - invalid input, failures
	WarningColor = lipgloss.Color("#FFA500") // Orange - confirmations
	MutedColor   = lipgloss.Color("#626262") // Gray - ids, hints
	TextColor    = lipgloss.Color("#FFFFFF")
)

// Layout constants
const (
	MinTerminalWidth = 60
	MaxContentWidth  = 100
)

var (
	TitleStyle = lipgloss.NewStyle().
			Foreground(PrimaryColor).
			Bold(true)

	SuccessTitleStyle = lipgloss.NewStyle().
				Foreground(SuccessColor).
				Bold(true)

	ErrorTitleStyle = lipgloss.NewStyle().
			Foreground(ErrorColor).
			Bold(true)

	ErrorMessageStyle = lipgloss.NewStyle().
				Foreground(ErrorColor)

	WarningTitleStyle = lipgloss.NewStyle().
				Foreground(WarningColor).
				Bold(true)

	// ItemIDStyle right-aligns ids in the list view.
	ItemIDStyle = lipgloss.NewStyle().
			Foreground(MutedColor).
			Width(6).
			Align(lipgloss.Right)

	ItemNameStyle = lipgloss.NewStyle().
			Foreground(TextColor)

	ItemCountStyle = lipgloss.NewStyle().
			Foreground(PrimaryColor).
			Bold(true)

	InactiveStyle = lipgloss.NewStyle().
			Foreground(MutedColor).
			Strikethrough(true)

	DetailKeyStyle = lipgloss.NewStyle().
			Foreground(MutedColor).
			Width(10)

	DetailValueStyle = lipgloss.NewStyle().
				Foreground(TextColor)

	HintStyle = lipgloss.NewStyle().
			Foreground(MutedColor).
			Italic(true)
)

// Markers
const (
	SuccessMarker = "✓"
	FailureMarker = "✗"
	WarningMarker = "⚠"
)

// GetTerminalWidth returns the stdout width clamped to the supported range.
func GetTerminalWidth() int {
	width, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil {
		return MinTerminalWidth
	}
	return clampWidth(width)
}

// IsInteractive reports whether both stdin and stdout are terminals.
func IsInteractive() bool {
	return term.IsTerminal(int(os.Stdin.Fd())) && term.IsTerminal(int(os.Stdout.Fd()))
}

func clampWidth(width int) int {
	if width < MinTerminalWidth {
		return MinTerminalWidth
	}
	if width > MaxContentWidth {
		return MaxContentWidth
	}
	return width
}

// boxStyle returns a double-bordered box in the given color.
func boxStyle(color lipgloss.Color, width int) lipgloss.Style {
	return lipgloss.NewStyle().
		Border(lipgloss.DoubleBorder()).
		BorderForeground(color).
		Width(width-2).
		Padding(0, 2)
}
