package tui

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/muurk/shoplist/internal/config"
	"github.com/muurk/shoplist/internal/form"
)

// Result is what the form ended with.
type Result struct {
	Saved   bool
	Aborted bool
}

// Run shows the form for ctl until the item is saved or the user cancels.
// The controller is closed before Run returns.
func Run(ctx context.Context, ctl *form.Controller, prefs *config.FormPrefs, opts ...tea.ProgramOption) (Result, error) {
	p := tea.NewProgram(NewModel(ctx, ctl, prefs), opts...)
	bridge := Bind(ctl, p.Send)

	final, err := p.Run()
	bridge.Close()
	ctl.Close()
	if err != nil {
		return Result{}, fmt.Errorf("form program: %w", err)
	}

	m, ok := final.(Model)
	if !ok {
		return Result{}, fmt.Errorf("form program returned %T", final)
	}
	if m.Err() != nil {
		return Result{}, m.Err()
	}
	return Result{Saved: m.Saved(), Aborted: m.Aborted()}, nil
}
