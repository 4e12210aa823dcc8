// ABOUTME: Three-step game form with quick-create of company, genres and themes
// ABOUTME: Steps are details, company, then genres and themes, with a progress box

package forms

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/ronaldobertolucci/my-games-cli/internal/models"
)

// GameSubmittedMsg carries a completed game form. When NewCompany is set,
// Game.CompanyID is zero and the company must be created first. NewGenres and
// NewThemes are created and appended to the game's ids.
type GameSubmittedMsg struct {
	Game       models.Game
	NewCompany string
	NewGenres  []string
	NewThemes  []string
}

// GameRefs are the reference lists the game form offers
type GameRefs struct {
	Companies []models.Company
	Genres    []models.Genre
	Themes    []models.Theme
}

var gameStepNames = []string{"Details", "Company", "Genres & Themes"}

// GameForm creates or edits a game in three steps
type GameForm struct {
	base
	refs GameRefs
	game models.Game
	step int

	title       string
	description string
	releasedAt  string
	companyID   int64
	newCompany  string
	genreIDs    []int64
	themeIDs    []int64
	newGenres   string
	newThemes   string
}

// NewGameForm builds the form. Pass a zero game to create.
func NewGameForm(game models.Game, refs GameRefs) *GameForm {
	game = game.Request()
	f := &GameForm{
		refs:        refs,
		game:        game,
		step:        1,
		title:       game.Title,
		description: game.Description,
		releasedAt:  game.ReleasedAt,
		companyID:   game.CompanyID,
		genreIDs:    append([]int64(nil), game.GenreIDs...),
		themeIDs:    append([]int64(nil), game.ThemeIDs...),
	}
	if f.companyID == 0 && len(refs.Companies) > 0 {
		f.companyID = refs.Companies[0].ID
	}
	f.form = f.createDetailsForm()
	return f
}

func (f *GameForm) heading() string {
	if f.game.ID == 0 {
		return "New game"
	}
	return fmt.Sprintf("Edit game #%d", f.game.ID)
}

func (f *GameForm) createDetailsForm() *huh.Form {
	return newForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Title").
				CharLimit(200).
				Value(&f.title).
				Validate(validateRequired("title")),
			huh.NewText().
				Title("Description").
				CharLimit(2000).
				Lines(4).
				Value(&f.description),
			huh.NewInput().
				Title("Release date").
				Description("YYYY-MM-DD, optional").
				Placeholder("e.g., 2017-03-03").
				CharLimit(10).
				Value(&f.releasedAt).
				Validate(validateDate),
		).Title("Step 1: Details"),
	)
}

func (f *GameForm) createCompanyForm() *huh.Form {
	opts := entityOptions(f.refs.Companies)
	opts = append(opts, huh.NewOption("+ New company", newEntityID))

	return newForm(
		huh.NewGroup(
			huh.NewSelect[int64]().
				Title("Company").
				Description("Use ↑/↓ to select, Enter to confirm").
				Options(opts...).
				Value(&f.companyID),
			huh.NewInput().
				Title("New company").
				Description("Only used when \"+ New company\" is selected").
				CharLimit(100).
				Value(&f.newCompany).
				Validate(f.validateNewCompany),
		).Title("Step 2: Company"),
	)
}

func (f *GameForm) validateNewCompany(s string) error {
	if f.companyID == newEntityID && strings.TrimSpace(s) == "" {
		return fmt.Errorf("enter a name for the new company")
	}
	return nil
}

func (f *GameForm) createClassificationForm() *huh.Form {
	var fields []huh.Field
	if len(f.refs.Genres) > 0 {
		fields = append(fields, huh.NewMultiSelect[int64]().
			Title("Genres").
			Description("Space to toggle, Enter to confirm").
			Options(selectedOptions(entityOptions(f.refs.Genres), f.genreIDs)...).
			Value(&f.genreIDs))
	}
	fields = append(fields, huh.NewInput().
		Title("New genres").
		Description("Comma-separated, created on save").
		Value(&f.newGenres))
	if len(f.refs.Themes) > 0 {
		fields = append(fields, huh.NewMultiSelect[int64]().
			Title("Themes").
			Description("Space to toggle, Enter to confirm").
			Options(selectedOptions(entityOptions(f.refs.Themes), f.themeIDs)...).
			Value(&f.themeIDs))
	}
	fields = append(fields, huh.NewInput().
		Title("New themes").
		Description("Comma-separated, created on save").
		Value(&f.newThemes))

	return newForm(huh.NewGroup(fields...).Title("Step 3: Genres & Themes"))
}

// Init implements tea.Model
func (f *GameForm) Init() tea.Cmd {
	return f.form.Init()
}

// Update implements tea.Model
func (f *GameForm) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	cmd, done := f.update(msg)
	if done {
		return f.advanceStep()
	}
	return f, cmd
}

func (f *GameForm) advanceStep() (tea.Model, tea.Cmd) {
	switch f.step {
	case 1:
		f.step = 2
		f.form = f.createCompanyForm()
		return f, f.form.Init()
	case 2:
		f.step = 3
		f.form = f.createClassificationForm()
		return f, f.form.Init()
	case 3:
		return f, send(f.result())
	}
	return f, nil
}

func (f *GameForm) result() GameSubmittedMsg {
	g := f.game
	g.Title = strings.TrimSpace(f.title)
	g.Description = strings.TrimSpace(f.description)
	g.ReleasedAt = strings.TrimSpace(f.releasedAt)
	g.CompanyID = f.companyID
	g.GenreIDs = f.genreIDs
	g.ThemeIDs = f.themeIDs

	msg := GameSubmittedMsg{
		Game:      g,
		NewGenres: splitNames(f.newGenres),
		NewThemes: splitNames(f.newThemes),
	}
	if f.companyID == newEntityID {
		msg.NewCompany = strings.TrimSpace(f.newCompany)
	}
	return msg
}

// Step returns the current 1-based step
func (f *GameForm) Step() int {
	return f.step
}

// View implements tea.Model
func (f *GameForm) View() string {
	var sb strings.Builder
	sb.WriteString(renderProgress(f.heading(), gameStepNames, f.step, f.width))
	sb.WriteString("\n\n")
	sb.WriteString(f.form.View())
	return sb.String()
}
