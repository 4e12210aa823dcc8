// ABOUTME: Transient notification shown in the footer after an operation
// ABOUTME: Each toast carries an id so only the latest one is dismissed by its timer

package widgets

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// ToastDuration is how long a toast stays visible
const ToastDuration = 4 * time.Second

// Toast is a short message with a severity
type Toast struct {
	ID    int
	Text  string
	Level StatusLevel
}

// ToastExpiredMsg dismisses the toast with the given id
type ToastExpiredMsg struct {
	ID int
}

// Expire returns a command that dismisses t after ToastDuration
func (t Toast) Expire() tea.Cmd {
	id := t.ID
	return tea.Tick(ToastDuration, func(time.Time) tea.Msg {
		return ToastExpiredMsg{ID: id}
	})
}

// View renders the toast as status text
func (t Toast) View() string {
	if t.Text == "" {
		return ""
	}
	return StatusText(t.Text, t.Level)
}
