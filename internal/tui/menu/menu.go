// ABOUTME: Resource selection menu shown after login
// ABOUTME: Lets the user pick a catalogue resource, their collection, logout or quit

package menu

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/ronaldobertolucci/my-games-cli/internal/tui/forms"
	"github.com/ronaldobertolucci/my-games-cli/internal/tui/icons"
)

// Choice represents a menu entry
type Choice int

const (
	ChoiceCompanies Choice = iota
	ChoicePlatforms
	ChoiceGenres
	ChoiceThemes
	ChoiceSources
	ChoiceGames
	ChoiceMyGames
	ChoiceLogout
	ChoiceQuit
)

// SelectedMsg is sent when the user confirms a choice
type SelectedMsg struct {
	Choice Choice
}

type option struct {
	label string
	icon  icons.Icon
	value Choice
}

// Menu is the resource selection screen
type Menu struct {
	options  []option
	selected Choice
	form     *huh.Form
}

// New creates the menu with the given choice highlighted
func New(selected Choice) *Menu {
	m := &Menu{
		options: []option{
			{label: "Companies", icon: icons.Company, value: ChoiceCompanies},
			{label: "Platforms", icon: icons.Platform, value: ChoicePlatforms},
			{label: "Genres", icon: icons.Genre, value: ChoiceGenres},
			{label: "Themes", icon: icons.Theme, value: ChoiceThemes},
			{label: "Sources", icon: icons.Source, value: ChoiceSources},
			{label: "Games", icon: icons.Game, value: ChoiceGames},
			{label: "My games", icon: icons.Collection, value: ChoiceMyGames},
			{label: "Log out", icon: icons.Logout, value: ChoiceLogout},
			{label: "Quit", icon: icons.Quit, value: ChoiceQuit},
		},
		selected: selected,
	}
	m.form = m.createForm()
	return m
}

func (m *Menu) createForm() *huh.Form {
	var options []huh.Option[Choice]
	for _, opt := range m.options {
		options = append(options, huh.NewOption(opt.icon.String()+" "+opt.label, opt.value))
	}

	return huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[Choice]().
				Title("What do you want to manage?").
				Options(options...).
				Value(&m.selected),
		),
	).WithTheme(forms.Theme())
}

// Init implements tea.Model
func (m *Menu) Init() tea.Cmd {
	return m.form.Init()
}

// Update implements tea.Model
func (m *Menu) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State == huh.StateCompleted {
		choice := m.selected
		// Rebuild so the menu is ready when the user comes back
		m.form = m.createForm()
		return m, tea.Batch(m.form.Init(), func() tea.Msg {
			return SelectedMsg{Choice: choice}
		})
	}

	return m, cmd
}

// View implements tea.Model
func (m *Menu) View() string {
	return m.form.View()
}

// Selected returns the highlighted choice
func (m *Menu) Selected() Choice {
	return m.selected
}

// String returns the string representation of a Choice
func (c Choice) String() string {
	switch c {
	case ChoiceCompanies:
		return "companies"
	case ChoicePlatforms:
		return "platforms"
	case ChoiceGenres:
		return "genres"
	case ChoiceThemes:
		return "themes"
	case ChoiceSources:
		return "sources"
	case ChoiceGames:
		return "games"
	case ChoiceMyGames:
		return "my-games"
	case ChoiceLogout:
		return "logout"
	case ChoiceQuit:
		return "quit"
	default:
		return "unknown"
	}
}
