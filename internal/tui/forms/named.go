// ABOUTME: Single-field create/edit form for name-only resources
// ABOUTME: Used for companies, platforms, genres, themes and sources

package forms

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
)

// NamedSubmittedMsg carries the result of a NamedForm. ID is zero on create.
type NamedSubmittedMsg struct {
	ID   int64
	Name string
}

// NamedForm edits the name of a company, platform, genre, theme or source
type NamedForm struct {
	base
	title string
	id    int64
	name  string
}

// NewNamedForm builds the form. Pass id 0 to create a new entity.
func NewNamedForm(singular string, id int64, name string) *NamedForm {
	f := &NamedForm{id: id, name: name}
	if id == 0 {
		f.title = "New " + singular
	} else {
		f.title = fmt.Sprintf("Edit %s #%d", singular, id)
	}

	f.form = newForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Name").
				CharLimit(100).
				Value(&f.name).
				Validate(validateRequired("name")),
		).Title(f.title),
	)
	return f
}

// Init implements tea.Model
func (f *NamedForm) Init() tea.Cmd {
	return f.form.Init()
}

// Update implements tea.Model
func (f *NamedForm) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	cmd, done := f.update(msg)
	if done {
		return f, send(NamedSubmittedMsg{ID: f.id, Name: strings.TrimSpace(f.name)})
	}
	return f, cmd
}

// View implements tea.Model
func (f *NamedForm) View() string {
	return f.form.View()
}
