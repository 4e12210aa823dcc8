// ABOUTME: Form for adding a game to the user's collection
// ABOUTME: Picks game, platform, source and initial status

package forms

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/ronaldobertolucci/my-games-cli/internal/models"
)

// MyGameSubmittedMsg carries the new collection entry
type MyGameSubmittedMsg struct {
	Entry models.MyGame
}

// MyGameRefs are the reference lists the my-game form offers
type MyGameRefs struct {
	Games     []models.Game
	Platforms []models.Platform
	Sources   []models.Source
}

// MyGameForm adds an entry to the collection
type MyGameForm struct {
	base
	entry models.MyGame
}

// NewMyGameForm builds the form. The first option of each list is preselected.
func NewMyGameForm(refs MyGameRefs) *MyGameForm {
	f := &MyGameForm{entry: models.MyGame{Status: models.StatusNotPlayed}}
	if len(refs.Games) > 0 {
		f.entry.GameID = refs.Games[0].ID
	}
	if len(refs.Platforms) > 0 {
		f.entry.PlatformID = refs.Platforms[0].ID
	}
	if len(refs.Sources) > 0 {
		f.entry.SourceID = refs.Sources[0].ID
	}

	f.form = newForm(
		huh.NewGroup(
			huh.NewSelect[int64]().
				Title("Game").
				Options(entityOptions(refs.Games)...).
				Value(&f.entry.GameID).
				Validate(validateChosen("game")),
			huh.NewSelect[int64]().
				Title("Platform").
				Options(entityOptions(refs.Platforms)...).
				Value(&f.entry.PlatformID).
				Validate(validateChosen("platform")),
			huh.NewSelect[int64]().
				Title("Source").
				Options(entityOptions(refs.Sources)...).
				Value(&f.entry.SourceID).
				Validate(validateChosen("source")),
			huh.NewSelect[models.Status]().
				Title("Status").
				Options(statusOptions()...).
				Value(&f.entry.Status),
		).Title("Add to my games"),
	)
	return f
}

// Init implements tea.Model
func (f *MyGameForm) Init() tea.Cmd {
	return f.form.Init()
}

// Update implements tea.Model
func (f *MyGameForm) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	cmd, done := f.update(msg)
	if done {
		return f, send(MyGameSubmittedMsg{Entry: f.entry})
	}
	return f, cmd
}

// View implements tea.Model
func (f *MyGameForm) View() string {
	return f.form.View()
}
