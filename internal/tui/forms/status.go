// ABOUTME: Quick status change for a collection entry
// ABOUTME: Opened with 's' from the my-games list

package forms

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/ronaldobertolucci/my-games-cli/internal/models"
)

// StatusSubmittedMsg carries the chosen status for entry ID
type StatusSubmittedMsg struct {
	ID     int64
	Status models.Status
}

// StatusForm picks a new status for one entry
type StatusForm struct {
	base
	id     int64
	status models.Status
}

// NewStatusForm preselects the entry's current status
func NewStatusForm(entry models.MyGame) *StatusForm {
	f := &StatusForm{id: entry.ID, status: entry.Status}
	if !f.status.Valid() {
		f.status = models.StatusNotPlayed
	}
	f.form = newForm(
		huh.NewGroup(
			huh.NewSelect[models.Status]().
				Title("Status").
				Options(statusOptions()...).
				Value(&f.status),
		).Title(fmt.Sprintf("Change status: %s", entry.DisplayName())),
	)
	return f
}

// Init implements tea.Model
func (f *StatusForm) Init() tea.Cmd {
	return f.form.Init()
}

// Update implements tea.Model
func (f *StatusForm) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	cmd, done := f.update(msg)
	if done {
		return f, send(StatusSubmittedMsg{ID: f.id, Status: f.status})
	}
	return f, cmd
}

// View implements tea.Model
func (f *StatusForm) View() string {
	return f.form.View()
}
