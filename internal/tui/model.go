package tui

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/muurk/shoplist/internal/config"
	"github.com/muurk/shoplist/internal/form"
	"github.com/muurk/shoplist/internal/ui"
)

const (
	fieldName = iota
	fieldCount
	fieldTotal
)

// Error texts shown under the fields.
const (
	InvalidNameText  = "Invalid name"
	InvalidCountText = "Invalid count"
)

var (
	labelStyle        = lipgloss.NewStyle().Foreground(ui.MutedColor).Width(8)
	focusedLabelStyle = lipgloss.NewStyle().Foreground(ui.PrimaryColor).Bold(true).Width(8)
	fieldErrorStyle   = lipgloss.NewStyle().Foreground(ui.ErrorColor).PaddingLeft(8)
	frameStyle        = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(ui.PrimaryColor).
				Padding(1, 2)
)

// Model is the Bubble Tea model for the item form.
type Model struct {
	ctx context.Context
	ctl *form.Controller

	inputs  [fieldTotal]textinput.Model
	focus   int
	loaded  bool
	saved   bool
	aborted bool
	fatal   error

	spinner spinner.Model
	help    help.Model
	keys    keyMap
	width   int
}

// NewModel builds the form screen for ctl. prefs may be nil.
func NewModel(ctx context.Context, ctl *form.Controller, prefs *config.FormPrefs) Model {
	if prefs == nil {
		prefs = config.NewConfig().Form
	}

	name := textinput.New()
	name.Placeholder = "Milk"
	name.CharLimit = prefs.NameCharLimit
	name.Width = 40
	name.Prompt = ""
	name.Focus()

	count := textinput.New()
	count.Placeholder = "1"
	count.CharLimit = prefs.CountCharLimit
	count.Width = 10
	count.Prompt = ""

	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(ui.PrimaryColor)

	return Model{
		ctx:     ctx,
		ctl:     ctl,
		inputs:  [fieldTotal]textinput.Model{name, count},
		loaded:  ctl.Mode() == form.ModeCreate,
		spinner: s,
		help:    help.New(),
		keys:    defaultKeys(),
		width:   ui.MinTerminalWidth,
	}
}

// Saved reports whether the item was stored before the program ended.
func (m Model) Saved() bool { return m.saved }

// Aborted reports whether the user cancelled the form.
func (m Model) Aborted() bool { return m.aborted }

// Err returns an error that ended the program early, if any.
func (m Model) Err() error { return m.fatal }

// Init attaches the controller. In edit mode this starts loading the item.
func (m Model) Init() tea.Cmd {
	ctl, ctx := m.ctl, m.ctx
	attach := func() tea.Msg {
		if err := ctl.Attach(ctx); err != nil {
			return attachErrMsg{err: err}
		}
		return nil
	}
	return tea.Batch(textinput.Blink, m.spinner.Tick, attach)
}

// Update handles messages and updates the model
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.help.Width = msg.Width
		return m, nil

	case itemLoadedMsg:
		m.inputs[fieldName].SetValue(msg.item.Name)
		m.inputs[fieldCount].SetValue(strconv.Itoa(msg.item.Count))
		m.ctl.SetName(m.inputs[fieldName].Value())
		m.ctl.SetCount(m.inputs[fieldCount].Value())
		m.loaded = true
		return m, nil

	case finishedMsg:
		m.saved = true
		return m, tea.Quit

	case attachErrMsg:
		m.fatal = msg.err
		return m, tea.Quit

	case refreshMsg:
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Cancel):
			m.aborted = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.Next):
			return m, m.setFocus((m.focus + 1) % fieldTotal)
		case key.Matches(msg, m.keys.Prev):
			return m, m.setFocus((m.focus + fieldTotal - 1) % fieldTotal)
		case key.Matches(msg, m.keys.Save):
			m.submit()
			return m, nil
		}
	}

	return m.updateFocused(msg)
}

// updateFocused passes the message to the focused input and records the new
// draft when the text changed.
func (m Model) updateFocused(msg tea.Msg) (tea.Model, tea.Cmd) {
	in := &m.inputs[m.focus]
	before := in.Value()

	var cmd tea.Cmd
	*in, cmd = in.Update(msg)

	if after := in.Value(); after != before {
		switch m.focus {
		case fieldName:
			m.ctl.SetName(after)
		case fieldCount:
			m.ctl.SetCount(after)
		}
	}
	return m, cmd
}

func (m *Model) setFocus(i int) tea.Cmd {
	m.inputs[m.focus].Blur()
	m.focus = i
	return m.inputs[i].Focus()
}

// submit saves the drafts. In edit mode, before the item has loaded, it
// retries the load instead.
func (m *Model) submit() {
	if m.busy() {
		return
	}
	if !m.loaded {
		if m.ctl.Mode() == form.ModeEdit {
			_ = m.ctl.LoadForEdit(m.ctx, m.ctl.ItemID())
		}
		return
	}
	m.ctl.SetName(m.inputs[fieldName].Value())
	m.ctl.SetCount(m.inputs[fieldCount].Value())
	m.ctl.SubmitDraft(m.ctx)
}

func (m Model) busy() bool {
	b, _ := m.ctl.Busy().Value()
	return b
}

// loading is true until the item arrives, except after a failed load that
// is waiting for the user to retry.
func (m Model) loading() bool {
	if m.loaded {
		return false
	}
	if m.busy() {
		return true
	}
	err, _ := m.ctl.StoreError().Value()
	return err == nil
}

func (m Model) flag(o form.Observable[bool]) bool {
	v, _ := o.Value()
	return v
}

// View renders the form
func (m Model) View() string {
	var b strings.Builder

	title := "Add item"
	if m.ctl.Mode() == form.ModeEdit {
		title = fmt.Sprintf("Edit item #%d", m.ctl.ItemID())
	}
	b.WriteString(ui.TitleStyle.Render(title))
	b.WriteString("\n\n")

	if m.loading() {
		b.WriteString(m.statusLine("Loading item..."))
		b.WriteString("\n\n")
	}

	b.WriteString(m.renderField("Name", fieldName))
	if m.flag(m.ctl.NameError()) {
		b.WriteString(fieldErrorStyle.Render(InvalidNameText))
		b.WriteString("\n")
	}
	b.WriteString("\n")

	b.WriteString(m.renderField("Count", fieldCount))
	if m.flag(m.ctl.CountError()) {
		b.WriteString(fieldErrorStyle.Render(InvalidCountText))
		b.WriteString("\n")
	}

	if err, _ := m.ctl.StoreError().Value(); err != nil {
		b.WriteString("\n")
		b.WriteString(ui.ErrorMessageStyle.Render(ui.FailureMarker + " " + err.Error()))
		b.WriteString("\n")
		b.WriteString(ui.HintStyle.Render("Press enter to try again."))
		b.WriteString("\n")
	}
	if m.loaded && m.busy() {
		b.WriteString("\n")
		b.WriteString(m.statusLine("Saving..."))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(m.help.View(m.keys))

	width := m.width - 2
	if width > ui.MaxContentWidth {
		width = ui.MaxContentWidth
	}
	return frameStyle.Width(width).Render(b.String())
}

func (m Model) renderField(label string, idx int) string {
	ls := labelStyle
	if m.focus == idx {
		ls = focusedLabelStyle
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, ls.Render(label), m.inputs[idx].View()) + "\n"
}

func (m Model) statusLine(text string) string {
	return m.spinner.View() + " " + ui.HintStyle.Render(text)
}
