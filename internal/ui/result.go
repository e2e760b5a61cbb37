package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Detail is one key/value line of a result box. Details keep their order.
type Detail struct {
	Key   string
	Value string
}

// RenderSuccess renders a green box headed by title.
func RenderSuccess(title string, details []Detail, width int) string {
	lines := []string{
		"",
		SuccessTitleStyle.Render(fmt.Sprintf("%s  %s", SuccessMarker, title)),
		"",
	}
	lines = append(lines, renderDetails(details)...)
	if len(details) > 0 {
		lines = append(lines, "")
	}
	return boxStyle(SuccessColor, clampWidth(width)).Render(strings.Join(lines, "\n"))
}

// RenderFailure renders a red box with the error and optional hints.
func RenderFailure(title string, err error, hints []string, width int) string {
	lines := []string{
		"",
		ErrorTitleStyle.Render(fmt.Sprintf("%s  %s", FailureMarker, title)),
		"",
	}
	if err != nil {
		lines = append(lines, ErrorMessageStyle.Render("Error: "+err.Error()), "")
	}
	for _, h := range hints {
		lines = append(lines, HintStyle.Render("• "+h))
	}
	if len(hints) > 0 {
		lines = append(lines, "")
	}
	return boxStyle(ErrorColor, clampWidth(width)).Render(strings.Join(lines, "\n"))
}

func renderDetails(details []Detail) []string {
	out := make([]string, 0, len(details))
	for _, d := range details {
		out = append(out, lipgloss.JoinHorizontal(lipgloss.Top,
			DetailKeyStyle.Render(d.Key+":"),
			DetailValueStyle.Render(d.Value),
		))
	}
	return out
}
