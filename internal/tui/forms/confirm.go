// ABOUTME: Yes/no confirmation dialog used before deletes
// ABOUTME: Emits ConfirmedMsg only when the user answers yes

package forms

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
)

// ConfirmedMsg is sent when the user accepts the dialog
type ConfirmedMsg struct{}

// ConfirmForm asks a single yes/no question
type ConfirmForm struct {
	base
	ok bool
}

// NewConfirmForm defaults to "No"
func NewConfirmForm(question string) *ConfirmForm {
	f := &ConfirmForm{}
	f.form = newForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title(question).
				Affirmative("Yes").
				Negative("No").
				Value(&f.ok),
		),
	)
	return f
}

// Init implements tea.Model
func (f *ConfirmForm) Init() tea.Cmd {
	return f.form.Init()
}

// Update implements tea.Model
func (f *ConfirmForm) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	cmd, done := f.update(msg)
	if !done {
		return f, cmd
	}
	if f.ok {
		return f, send(ConfirmedMsg{})
	}
	return f, cancel
}

// View implements tea.Model
func (f *ConfirmForm) View() string {
	return f.form.View()
}
