// ABOUTME: Root bubbletea model for the TUI application
// ABOUTME: Manages screen state and routes keyboard input to child components

package tui

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/ronaldobertolucci/my-games-cli/internal/client"
	"github.com/ronaldobertolucci/my-games-cli/internal/messages"
	"github.com/ronaldobertolucci/my-games-cli/internal/models"
	"github.com/ronaldobertolucci/my-games-cli/internal/tui/forms"
	"github.com/ronaldobertolucci/my-games-cli/internal/tui/icons"
	"github.com/ronaldobertolucci/my-games-cli/internal/tui/listview"
	"github.com/ronaldobertolucci/my-games-cli/internal/tui/login"
	"github.com/ronaldobertolucci/my-games-cli/internal/tui/menu"
	"github.com/ronaldobertolucci/my-games-cli/internal/tui/styles"
	"github.com/ronaldobertolucci/my-games-cli/internal/tui/widgets"
)

// Screen represents the current TUI screen
type Screen int

const (
	ScreenLogin Screen = iota
	ScreenMenu
	ScreenList
	ScreenForm
)

// Layout constants
const (
	minTerminalWidth = 80 // Minimum frame width
	frameLines       = 2  // Header and footer
	listChrome       = 5  // Title, search, summary and badge lines around the table
)

// loginRequiredMsg is sent by the client when the session has expired
type loginRequiredMsg struct{}

// userChangedMsg is sent when the stored username changes
type userChangedMsg struct {
	username string
}

// authDoneMsg is sent when a login or register call returns
type authDoneMsg struct {
	mode   login.Mode
	notice string
	err    error
}

// refsLoadedMsg is sent when a form's reference lists are loaded
type refsLoadedMsg struct {
	game   *forms.GameRefs
	edit   models.Game
	myGame *forms.MyGameRefs
	err    error
}

// savedMsg is sent when a create, update or delete call returns
type savedMsg struct {
	verb string
	err  error
}

// App is the root model for the TUI
type App struct {
	client   *client.Client
	pageSize int
	screen   Screen
	width    int
	height   int
	user     string

	// Child models
	login *login.Model
	menu  *menu.Menu
	list  *listview.Model
	form  forms.Form

	choice  menu.Choice
	res     resource
	pending *listview.Row // row awaiting delete confirmation

	// ctx is cancelled when the resource screen is left
	ctx    context.Context
	cancel context.CancelFunc

	toast    widgets.Toast
	toastSeq int
}

// New creates a new TUI application. It starts on the menu when a valid
// session is stored, otherwise on the login screen.
func New(apiClient *client.Client, pageSize int) *App {
	a := &App{
		client:   apiClient,
		pageSize: pageSize,
		screen:   ScreenLogin,
		user:     apiClient.Session().Username(),
		login:    login.New(),
		menu:     menu.New(menu.ChoiceCompanies),
	}
	if apiClient.IsAuthenticated() {
		a.screen = ScreenMenu
	}
	return a
}

// Init implements tea.Model
func (a *App) Init() tea.Cmd {
	if a.screen == ScreenMenu {
		return a.menu.Init()
	}
	return a.login.Init()
}

// Update implements tea.Model
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		if a.list != nil {
			a.list.SetSize(a.contentWidth(), a.listHeight())
		}
		if a.form != nil {
			a.form.SetWidth(a.contentWidth())
		}
		return a, nil

	case tea.KeyMsg:
		// Handle global quit
		if msg.String() == "ctrl+c" {
			a.closeList()
			return a, tea.Quit
		}
		return a.updateKey(msg)

	case loginRequiredMsg:
		return a.handleLoginRequired()

	case userChangedMsg:
		a.user = msg.username
		return a, nil

	case login.SubmitMsg:
		return a, a.authenticate(msg)

	case authDoneMsg:
		return a.handleAuthDone(msg)

	case menu.SelectedMsg:
		return a.handleMenuSelected(msg)

	case listview.ActionMsg:
		return a.handleAction(msg)

	case refsLoadedMsg:
		return a.handleRefsLoaded(msg)

	case forms.NamedSubmittedMsg:
		res, c := a.res, a.client
		verb := "created"
		if msg.ID != 0 {
			verb = "updated"
		}
		a.closeForm()
		return a, a.run(verb, func(ctx context.Context) error {
			return res.save(ctx, c, msg.ID, msg.Name)
		})

	case forms.GameSubmittedMsg:
		c := a.client
		verb := "created"
		if msg.Game.ID != 0 {
			verb = "updated"
		}
		a.closeForm()
		return a, a.run(verb, func(ctx context.Context) error {
			return saveGame(ctx, c, msg)
		})

	case forms.MyGameSubmittedMsg:
		c := a.client
		a.closeForm()
		return a, a.run("added", func(ctx context.Context) error {
			_, err := c.MyGames().Create(ctx, msg.Entry)
			return err
		})

	case forms.StatusSubmittedMsg:
		c := a.client
		a.closeForm()
		return a, a.run("updated", func(ctx context.Context) error {
			_, err := c.MyGames().UpdateStatus(ctx, msg.ID, msg.Status)
			return err
		})

	case forms.ConfirmedMsg:
		return a.handleConfirmed()

	case forms.CancelledMsg:
		a.pending = nil
		a.closeForm()
		return a, nil

	case savedMsg:
		return a.handleSaved(msg)

	case widgets.ToastExpiredMsg:
		if msg.ID == a.toast.ID {
			a.toast = widgets.Toast{}
		}
		return a, nil
	}

	return a.updateChildren(msg)
}

// updateKey routes keyboard input to the current screen only
func (a *App) updateKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch a.screen {
	case ScreenLogin:
		_, cmd = a.login.Update(msg)
	case ScreenMenu:
		if msg.String() == "q" {
			return a, tea.Quit
		}
		_, cmd = a.menu.Update(msg)
	case ScreenList:
		if msg.String() == "q" && !a.list.Searching() {
			a.closeList()
			return a, tea.Quit
		}
		_, cmd = a.list.Update(msg)
	case ScreenForm:
		if a.form != nil {
			_, cmd = a.form.Update(msg)
		}
	}
	return a, cmd
}

// updateChildren forwards internal messages. The list keeps receiving its
// page loads while a form is open on top of it.
func (a *App) updateChildren(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd
	if a.list != nil {
		_, cmd := a.list.Update(msg)
		cmds = append(cmds, cmd)
	}
	switch a.screen {
	case ScreenLogin:
		_, cmd := a.login.Update(msg)
		cmds = append(cmds, cmd)
	case ScreenMenu:
		_, cmd := a.menu.Update(msg)
		cmds = append(cmds, cmd)
	case ScreenForm:
		if a.form != nil {
			_, cmd := a.form.Update(msg)
			cmds = append(cmds, cmd)
		}
	}
	return a, tea.Batch(cmds...)
}

func (a *App) handleLoginRequired() (tea.Model, tea.Cmd) {
	if a.screen == ScreenLogin {
		return a, nil
	}
	a.closeList()
	a.screen = ScreenLogin
	return a, tea.Batch(
		a.login.Reset(),
		a.showToast(messages.Expired, widgets.StatusWarning),
	)
}

// authenticate calls login or register with the submitted credentials
func (a *App) authenticate(msg login.SubmitMsg) tea.Cmd {
	c := a.client
	return func() tea.Msg {
		ctx := context.Background()
		if msg.Mode == login.ModeRegister {
			text, err := c.Register(ctx, msg.Username, msg.Password)
			if err != nil {
				return authDoneMsg{mode: msg.Mode, err: err}
			}
			return authDoneMsg{mode: msg.Mode, notice: registeredNotice(text)}
		}
		_, err := c.Login(ctx, msg.Username, msg.Password)
		return authDoneMsg{mode: msg.Mode, err: err}
	}
}

func registeredNotice(text string) string {
	text = strings.TrimSuffix(strings.TrimSpace(text), ".")
	if text == "" {
		text = "Account created"
	}
	return text + ". You can log in now."
}

func (a *App) handleAuthDone(msg authDoneMsg) (tea.Model, tea.Cmd) {
	if msg.err != nil {
		slog.Warn("Authentication failed", "register", msg.mode == login.ModeRegister, "error", msg.err)
		text := messages.ForLogin(msg.err)
		if msg.mode == login.ModeRegister {
			text = messages.ForError(msg.err, "user")
		}
		return a, a.login.SetError(text)
	}
	if msg.mode == login.ModeRegister {
		return a, a.login.SetNotice(msg.notice)
	}

	a.user = a.client.Session().Username()
	slog.Info("Logged in", "user", a.user)
	a.screen = ScreenMenu
	return a, tea.Batch(
		a.menu.Init(),
		a.showToast("Logged in as "+a.user, widgets.StatusOK),
	)
}

func (a *App) handleMenuSelected(msg menu.SelectedMsg) (tea.Model, tea.Cmd) {
	switch msg.Choice {
	case menu.ChoiceQuit:
		return a, tea.Quit
	case menu.ChoiceLogout:
		// Switch first so the login-required signal from Logout is ignored
		a.screen = ScreenLogin
		a.client.Logout()
		return a, tea.Batch(
			a.login.Reset(),
			a.showToast("Logged out", widgets.StatusInfo),
		)
	}
	return a, a.openList(msg.Choice)
}

// openList shows the list screen for choice and starts loading its first page
func (a *App) openList(choice menu.Choice) tea.Cmd {
	res, ok := resources[choice]
	if !ok {
		return nil
	}
	a.closeList()
	a.choice = choice
	a.res = res
	a.ctx, a.cancel = context.WithCancel(context.Background())
	a.list = listview.New(listview.Options{
		Title:    res.title,
		Columns:  res.columns,
		PageSize: a.pageSize,
		Fetch:    res.fetch(a.client),
		ErrorText: func(err error) string {
			return messages.ForError(err, res.singular)
		},
		AllowStatus: res.status,
	})
	a.list.SetSize(a.contentWidth(), a.listHeight())
	a.screen = ScreenList
	return a.list.Init()
}

// closeList cancels everything the resource screen started
func (a *App) closeList() {
	if a.list != nil {
		a.list.Close()
		a.list = nil
	}
	if a.cancel != nil {
		a.cancel()
		a.cancel = nil
	}
	a.form = nil
	a.pending = nil
}

func (a *App) openForm(f forms.Form) tea.Cmd {
	f.SetWidth(a.contentWidth())
	a.form = f
	a.screen = ScreenForm
	return f.Init()
}

func (a *App) closeForm() {
	a.form = nil
	if a.list != nil {
		a.screen = ScreenList
	}
}

func (a *App) handleAction(msg listview.ActionMsg) (tea.Model, tea.Cmd) {
	if a.list == nil {
		return a, nil
	}

	switch msg.Action {
	case listview.ActionBack:
		a.closeList()
		a.screen = ScreenMenu
		return a, nil

	case listview.ActionCreate:
		switch a.choice {
		case menu.ChoiceGames:
			return a, a.loadGameForm(models.Game{})
		case menu.ChoiceMyGames:
			return a, a.loadMyGameForm()
		}
		return a, a.openForm(forms.NewNamedForm(a.res.singular, 0, ""))
	}

	if msg.Row == nil {
		return a, nil
	}
	row := msg.Row

	switch msg.Action {
	case listview.ActionEdit:
		switch item := row.Item.(type) {
		case models.Game:
			return a, a.loadGameForm(item)
		case models.MyGame:
			return a, a.openForm(forms.NewStatusForm(item))
		case models.Named:
			return a, a.openForm(forms.NewNamedForm(a.res.singular, row.ID, item.DisplayName()))
		}

	case listview.ActionStatus:
		if item, ok := row.Item.(models.MyGame); ok {
			return a, a.openForm(forms.NewStatusForm(item))
		}

	case listview.ActionDelete:
		name := idCell(row.ID)
		if item, ok := row.Item.(models.Named); ok {
			name = item.DisplayName()
		}
		a.pending = row
		return a, a.openForm(forms.NewConfirmForm(fmt.Sprintf("Delete %s %q?", a.res.singular, name)))
	}

	return a, nil
}

func (a *App) loadGameForm(game models.Game) tea.Cmd {
	ctx, c := a.ctx, a.client
	return tea.Batch(
		a.showToast("Loading form...", widgets.StatusInfo),
		func() tea.Msg {
			refs, err := loadGameRefs(ctx, c)
			return refsLoadedMsg{game: &refs, edit: game, err: err}
		},
	)
}

func (a *App) loadMyGameForm() tea.Cmd {
	ctx, c := a.ctx, a.client
	return tea.Batch(
		a.showToast("Loading form...", widgets.StatusInfo),
		func() tea.Msg {
			refs, err := loadMyGameRefs(ctx, c)
			return refsLoadedMsg{myGame: &refs, err: err}
		},
	)
}

func (a *App) handleRefsLoaded(msg refsLoadedMsg) (tea.Model, tea.Cmd) {
	// The user left the list while the form data was loading
	if a.screen != ScreenList {
		return a, nil
	}
	if msg.err != nil {
		slog.Warn("Failed to load form data", "resource", a.res.singular, "error", msg.err)
		return a, a.showToast(a.errorText(msg.err), widgets.StatusCritical)
	}
	a.toast = widgets.Toast{}
	if msg.game != nil {
		return a, a.openForm(forms.NewGameForm(msg.edit, *msg.game))
	}
	if msg.myGame != nil {
		return a, a.openForm(forms.NewMyGameForm(*msg.myGame))
	}
	return a, nil
}

func (a *App) handleConfirmed() (tea.Model, tea.Cmd) {
	row := a.pending
	a.pending = nil
	a.closeForm()
	if row == nil {
		return a, nil
	}
	res, c := a.res, a.client
	return a, a.run("deleted", func(ctx context.Context) error {
		return res.remove(ctx, c, row.ID)
	})
}

// run executes a write against the backend with the resource screen's context
func (a *App) run(verb string, fn func(ctx context.Context) error) tea.Cmd {
	ctx := a.ctx
	if ctx == nil {
		ctx = context.Background()
	}
	return func() tea.Msg {
		return savedMsg{verb: verb, err: fn(ctx)}
	}
}

func (a *App) handleSaved(msg savedMsg) (tea.Model, tea.Cmd) {
	if a.list == nil {
		return a, nil
	}
	if msg.err != nil {
		slog.Warn("Operation failed", "resource", a.res.singular, "verb", msg.verb, "error", msg.err)
		if apiErr, ok := client.AsAPIError(msg.err); ok && apiErr.Kind == client.KindUnauthorized {
			a.client.Logout()
		}
		return a, a.showToast(a.errorText(msg.err), widgets.StatusCritical)
	}
	text := strings.ToUpper(a.res.singular[:1]) + a.res.singular[1:] + " " + msg.verb + "."
	return a, tea.Batch(
		a.showToast(text, widgets.StatusOK),
		a.list.Reload(),
	)
}

// errorText names the resource an operation failed on, which differs from
// the screen's resource for quick-created relations
func (a *App) errorText(err error) string {
	resource := a.res.singular
	var oe *opError
	if errors.As(err, &oe) {
		resource = oe.resource
	}
	return messages.ForError(err, resource)
}

func (a *App) showToast(text string, level widgets.StatusLevel) tea.Cmd {
	a.toastSeq++
	a.toast = widgets.Toast{ID: a.toastSeq, Text: text, Level: level}
	return a.toast.Expire()
}

// View implements tea.Model
func (a *App) View() string {
	var content string
	switch a.screen {
	case ScreenLogin:
		content = a.login.View()
	case ScreenMenu:
		content = a.menu.View()
	case ScreenList:
		content = a.viewList()
	case ScreenForm:
		if a.form != nil {
			content = a.form.View()
		}
	}
	return a.wrapWithFrame(content)
}

// viewList renders the list with a badge for the selected entry's status
func (a *App) viewList() string {
	if a.list == nil {
		return ""
	}
	view := a.list.View()
	if row := a.list.Selected(); row != nil {
		if entry, ok := row.Item.(models.MyGame); ok {
			view += "\n" + widgets.StatusBadge(entry.Status)
		}
	}
	return view
}

// frameWidth is the width of the header and footer. It stays one column
// short of the terminal to avoid wrapping.
func (a *App) frameWidth() int {
	width := a.width - 1
	if width < minTerminalWidth {
		width = minTerminalWidth
	}
	return width
}

func (a *App) contentWidth() int {
	return a.frameWidth() - 1
}

func (a *App) listHeight() int {
	h := a.height - frameLines - listChrome
	if h < 5 {
		h = 5
	}
	return h
}

// renderHeader creates the top border with title and current user
func (a *App) renderHeader() string {
	width := a.frameWidth()

	borderStyle := lipgloss.NewStyle().Foreground(styles.Muted)
	titleStyle := lipgloss.NewStyle().Foreground(styles.Primary).Bold(true)
	contextStyle := lipgloss.NewStyle().Foreground(styles.Secondary)

	leftText := fmt.Sprintf(" %s %s ", icons.App.String(), titleStyle.Render("My Games"))

	// Build right content (only once logged in)
	rightText := ""
	if a.user != "" && a.screen != ScreenLogin {
		label := icons.User.String() + " " + a.user
		if a.list != nil {
			label = a.res.title + " · " + label
		}
		rightText = " " + contextStyle.Render(label) + " "
	}

	leftWidth := lipgloss.Width(leftText)
	rightWidth := lipgloss.Width(rightText)
	fillWidth := width - 4 - leftWidth - rightWidth // -4 for ╭─ and ─╮
	if fillWidth < 0 {
		rightText = ""
		fillWidth = max(0, width-4-leftWidth)
	}

	header := "╭─" + leftText + strings.Repeat("─", fillWidth) + rightText + "─╮"
	return borderStyle.Render(header)
}

// renderFooter creates the footer with keyboard shortcuts and status
func (a *App) renderFooter() string {
	width := a.frameWidth()

	borderStyle := lipgloss.NewStyle().Foreground(styles.Muted)
	keyStyle := lipgloss.NewStyle().Foreground(styles.Primary)
	labelStyle := lipgloss.NewStyle().Foreground(styles.Muted)
	statusStyle := lipgloss.NewStyle().Foreground(styles.Secondary)

	// Build keyboard shortcuts based on current screen
	var shortcuts []string
	switch a.screen {
	case ScreenLogin:
		shortcuts = []string{"Enter Next", "ctrl+c Quit"}
	case ScreenMenu:
		shortcuts = []string{"↑↓ Navigate", "Enter Select", "q Quit"}
	case ScreenList:
		shortcuts = []string{"/ Search", "n/p Page", "c New", "e Edit", "d Delete"}
		if a.res.status {
			shortcuts = append(shortcuts, "s Status")
		}
		shortcuts = append(shortcuts, "b Back")
	case ScreenForm:
		shortcuts = []string{"Enter Confirm", "Esc Cancel"}
	}

	var styledShortcuts []string
	for _, s := range shortcuts {
		parts := strings.SplitN(s, " ", 2)
		styledShortcuts = append(styledShortcuts, keyStyle.Render(parts[0])+" "+labelStyle.Render(parts[1]))
	}
	leftText := " " + strings.Join(styledShortcuts, "  ") + " "

	// Right side: the current toast, else the list's last update time
	rightText := ""
	if a.toast.Text != "" {
		rightText = " " + a.toast.View() + " "
	} else if a.screen == ScreenList && a.list != nil && !a.list.LoadedAt().IsZero() {
		rightText = " " + statusStyle.Render("Updated "+formatTimeSince(a.list.LoadedAt())) + " "
	}

	leftWidth := lipgloss.Width(leftText)
	rightWidth := lipgloss.Width(rightText)
	fillWidth := width - 4 - leftWidth - rightWidth // -4 for ╰─ and ─╯
	if fillWidth < 0 {
		// Keep the status visible and drop the shortcuts
		leftText = ""
		fillWidth = max(0, width-4-rightWidth)
	}

	footer := "╰─" + leftText + strings.Repeat("─", fillWidth) + rightText + "─╯"
	return borderStyle.Render(footer)
}

// formatTimeSince formats a duration since the given time in human-readable form
func formatTimeSince(t time.Time) string {
	d := time.Since(t)

	if d < time.Minute {
		secs := int(d.Seconds())
		if secs < 5 {
			return "just now"
		}
		return fmt.Sprintf("%ds ago", secs)
	}

	if d < time.Hour {
		mins := int(d.Minutes())
		if mins == 1 {
			return "1m ago"
		}
		return fmt.Sprintf("%dm ago", mins)
	}

	hours := int(d.Hours())
	if hours == 1 {
		return "1h ago"
	}
	return fmt.Sprintf("%dh ago", hours)
}

// wrapWithFrame wraps content with header and footer
func (a *App) wrapWithFrame(content string) string {
	var sb strings.Builder

	sb.WriteString(a.renderHeader())
	sb.WriteString("\n")
	sb.WriteString(content)
	sb.WriteString("\n")
	sb.WriteString(a.renderFooter())

	return sb.String()
}

// Run starts the TUI. Expired sessions switch the app to the login screen.
func Run(apiClient *client.Client, pageSize int) error {
	app := New(apiClient, pageSize)

	p := tea.NewProgram(
		app,
		tea.WithAltScreen(),
	)

	// Send blocks while Update runs, and the signal can come from inside a
	// command, so deliver it asynchronously.
	apiClient.SetNavigator(client.NavigatorFunc(func() {
		go p.Send(loginRequiredMsg{})
	}))
	stop := apiClient.Session().CurrentUser().Subscribe(func(username string) {
		go p.Send(userChangedMsg{username: username})
	})
	defer stop()

	_, err := p.Run()
	app.closeList()
	return err
}
