// ABOUTME: Messages and validators shared by the entity forms
// ABOUTME: Forms report results to the app as messages instead of calling the backend

package forms

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
)

// CancelledMsg is sent when the user leaves a form with esc
type CancelledMsg struct{}

// Form is a bubbletea model wrapping one or more huh forms
type Form interface {
	tea.Model
	SetWidth(width int)
}

// base holds what every single-step form needs
type base struct {
	form  *huh.Form
	width int
}

func (b *base) SetWidth(width int) {
	b.width = width
}

// update forwards msg to the huh form, turning esc into CancelledMsg.
// done reports whether the form was just completed.
func (b *base) update(msg tea.Msg) (cmd tea.Cmd, done bool) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		b.width = msg.Width
	case tea.KeyMsg:
		if msg.String() == "esc" {
			return cancel, false
		}
	}

	form, cmd := b.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		b.form = f
	}
	return cmd, b.form.State == huh.StateCompleted
}

func cancel() tea.Msg { return CancelledMsg{} }

// send wraps msg in a command
func send(msg tea.Msg) tea.Cmd {
	return func() tea.Msg { return msg }
}

func newForm(groups ...*huh.Group) *huh.Form {
	return huh.NewForm(groups...).WithTheme(Theme()).WithShowHelp(true)
}

func validateRequired(field string) func(string) error {
	return func(s string) error {
		if strings.TrimSpace(s) == "" {
			return fmt.Errorf("%s is required", field)
		}
		return nil
	}
}

func validateDate(s string) error {
	if s == "" {
		return nil
	}
	if _, err := time.Parse("2006-01-02", s); err != nil {
		return fmt.Errorf("use the format YYYY-MM-DD")
	}
	return nil
}

// splitNames parses a comma-separated list of new entity names
func splitNames(csv string) []string {
	var out []string
	seen := make(map[string]bool)
	for _, part := range strings.Split(csv, ",") {
		name := strings.TrimSpace(part)
		key := strings.ToLower(name)
		if name == "" || seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, name)
	}
	return out
}

func validateChosen(field string) func(int64) error {
	return func(id int64) error {
		if id <= 0 {
			return fmt.Errorf("choose a %s", field)
		}
		return nil
	}
}
