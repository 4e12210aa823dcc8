// ABOUTME: Login and registration screen
// ABOUTME: Collects credentials with huh and reports them to the app as SubmitMsg

package login

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/ronaldobertolucci/my-games-cli/internal/tui/forms"
	"github.com/ronaldobertolucci/my-games-cli/internal/tui/icons"
	"github.com/ronaldobertolucci/my-games-cli/internal/tui/styles"
)

// Mode selects between signing in and creating an account
type Mode int

const (
	ModeLogin Mode = iota
	ModeRegister
)

// SubmitMsg carries the credentials entered by the user
type SubmitMsg struct {
	Mode     Mode
	Username string
	Password string
}

// Model is the login screen
type Model struct {
	form     *huh.Form
	mode     Mode
	username string
	password string
	err      string
	notice   string
	busy     bool
}

// New creates the login screen
func New() *Model {
	m := &Model{}
	m.form = m.createForm()
	return m
}

func (m *Model) createForm() *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[Mode]().
				Title("Welcome").
				Options(
					huh.NewOption("Log in", ModeLogin),
					huh.NewOption("Create an account", ModeRegister),
				).
				Value(&m.mode),
			huh.NewInput().
				Title("Username").
				CharLimit(50).
				Value(&m.username).
				Validate(required("username")),
			huh.NewInput().
				Title("Password").
				EchoMode(huh.EchoModePassword).
				CharLimit(100).
				Value(&m.password).
				Validate(required("password")),
		),
	).WithTheme(forms.Theme())
}

func required(field string) func(string) error {
	return func(s string) error {
		if strings.TrimSpace(s) == "" {
			return fmt.Errorf("%s is required", field)
		}
		return nil
	}
}

// Init implements tea.Model
func (m *Model) Init() tea.Cmd {
	return m.form.Init()
}

// Update implements tea.Model
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if m.busy {
		return m, nil
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State == huh.StateCompleted {
		m.busy = true
		m.err = ""
		m.notice = ""
		submit := SubmitMsg{
			Mode:     m.mode,
			Username: strings.TrimSpace(m.username),
			Password: m.password,
		}
		return m, func() tea.Msg { return submit }
	}

	return m, cmd
}

// Reset clears the password and shows a fresh form. The username is kept.
func (m *Model) Reset() tea.Cmd {
	m.busy = false
	m.password = ""
	m.form = m.createForm()
	return m.form.Init()
}

// SetError shows msg above the form and resets it
func (m *Model) SetError(msg string) tea.Cmd {
	m.err = msg
	m.notice = ""
	return m.Reset()
}

// SetNotice shows an informational message (e.g. after registering) and
// switches the form back to login
func (m *Model) SetNotice(msg string) tea.Cmd {
	m.notice = msg
	m.err = ""
	m.mode = ModeLogin
	return m.Reset()
}

// Busy reports whether a submission is in flight
func (m *Model) Busy() bool {
	return m.busy
}

// View implements tea.Model
func (m *Model) View() string {
	var sb strings.Builder

	sb.WriteString(styles.Title.Render(icons.App.String() + " My Games"))
	sb.WriteString("\n")

	if m.err != "" {
		sb.WriteString(styles.StatusCritical.Render(icons.Critical.String() + " " + m.err))
		sb.WriteString("\n\n")
	}
	if m.notice != "" {
		sb.WriteString(styles.StatusOK.Render(icons.CheckOK.String() + " " + m.notice))
		sb.WriteString("\n\n")
	}

	if m.busy {
		label := "Signing in..."
		if m.mode == ModeRegister {
			label = "Creating account..."
		}
		sb.WriteString(lipgloss.NewStyle().Foreground(styles.Muted).Render(label))
		return sb.String()
	}

	sb.WriteString(m.form.View())
	return sb.String()
}
