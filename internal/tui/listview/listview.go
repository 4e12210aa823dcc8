// ABOUTME: Paginated, searchable list screen shared by every catalogue resource
// ABOUTME: Wraps a bubbles table and search box around a page fetcher

package listview

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/ronaldobertolucci/my-games-cli/internal/observable"
	"github.com/ronaldobertolucci/my-games-cli/internal/tui/icons"
	"github.com/ronaldobertolucci/my-games-cli/internal/tui/styles"
)

// Query identifies the page being shown. Page is 0-based.
type Query struct {
	Page   int
	Size   int
	Search string
}

// Info is the pagination metadata of the last loaded page
type Info struct {
	Number        int
	TotalPages    int
	TotalElements int
	First         bool
	Last          bool
}

// Row is one table row. Item carries the entity for edit actions.
type Row struct {
	ID    int64
	Cells []string
	Item  interface{}
}

// Result is one loaded page
type Result struct {
	Rows []Row
	Info Info
}

// Fetcher loads one page for a query
type Fetcher func(ctx context.Context, q Query) (Result, error)

// Action is a user request the list cannot handle itself
type Action int

const (
	ActionBack Action = iota
	ActionCreate
	ActionEdit
	ActionDelete
	ActionStatus
)

// ActionMsg asks the parent to perform an action, on Row when one applies
type ActionMsg struct {
	Action Action
	Row    *Row
}

// loadedMsg carries a page back to the list that requested it
type loadedMsg struct {
	seq    int
	result Result
	err    error
}

// ErrorFunc turns a load failure into user-facing text
type ErrorFunc func(error) string

// Model is the list screen
type Model struct {
	title       string
	fetch       Fetcher
	errText     ErrorFunc
	allowStatus bool

	table     table.Model
	search    textinput.Model
	searching bool

	query   *observable.Value[Query]
	info    *observable.Value[Info]
	summary *observable.Derived[string]
	hasPrev *observable.Derived[bool]
	hasNext *observable.Derived[bool]

	rows     []Row
	loading  bool
	err      string
	seq      int
	loadedAt time.Time

	ctx    context.Context
	cancel context.CancelFunc
}

// Options configure a list
type Options struct {
	Title       string
	Columns     []table.Column
	PageSize    int
	Fetch       Fetcher
	ErrorText   ErrorFunc
	AllowStatus bool // enables the status action
}

// New creates a list. Call Init to load the first page.
func New(opts Options) *Model {
	ctx, cancel := context.WithCancel(context.Background())

	search := textinput.New()
	search.Prompt = icons.Search.String() + " "
	search.Placeholder = "search"
	search.CharLimit = 100

	t := table.New(
		table.WithColumns(opts.Columns),
		table.WithFocused(true),
		table.WithHeight(10),
	)
	t.SetStyles(table.Styles{
		Header:   styles.TableHeader,
		Cell:     styles.TableCell,
		Selected: styles.TableSelected,
	})

	errText := opts.ErrorText
	if errText == nil {
		errText = func(err error) string { return err.Error() }
	}

	m := &Model{
		title:       opts.Title,
		fetch:       opts.Fetch,
		errText:     errText,
		allowStatus: opts.AllowStatus,
		table:       t,
		search:      search,
		query:       observable.NewValue(Query{Page: 0, Size: opts.PageSize}),
		info:        observable.NewValue(Info{First: true, Last: true}),
		ctx:         ctx,
		cancel:      cancel,
	}

	m.summary = observable.Combine[Query, Info, string](m.query, m.info, summarize)
	m.hasPrev = observable.Map[Info, bool](m.info, func(i Info) bool { return !i.First })
	m.hasNext = observable.Map[Info, bool](m.info, func(i Info) bool { return !i.Last })
	return m
}

// summarize renders the position line shown under the table
func summarize(q Query, i Info) string {
	pages := i.TotalPages
	if pages < 1 {
		pages = 1
	}
	s := fmt.Sprintf("Page %d of %d · %d items", i.Number+1, pages, i.TotalElements)
	if q.Search != "" {
		s += fmt.Sprintf(" · filter %q", q.Search)
	}
	return s
}

// Init loads the first page
func (m *Model) Init() tea.Cmd {
	return m.load()
}

// Reload fetches the current page again
func (m *Model) Reload() tea.Cmd {
	return m.load()
}

// Close cancels any request in flight and detaches derived state
func (m *Model) Close() {
	m.cancel()
	m.summary.Close()
	m.hasPrev.Close()
	m.hasNext.Close()
}

// Query returns the current query
func (m *Model) Query() Query { return m.query.Get() }

// Summary returns the page position line
func (m *Model) Summary() string { return m.summary.Get() }

// HasPrev reports whether a previous page exists
func (m *Model) HasPrev() bool { return m.hasPrev.Get() }

// HasNext reports whether a next page exists
func (m *Model) HasNext() bool { return m.hasNext.Get() }

// Searching reports whether the search box has focus
func (m *Model) Searching() bool { return m.searching }

// LoadedAt returns when the current page arrived
func (m *Model) LoadedAt() time.Time { return m.loadedAt }

// Title returns the list title
func (m *Model) Title() string { return m.title }

// Selected returns the row under the cursor, or nil when empty
func (m *Model) Selected() *Row {
	i := m.table.Cursor()
	if i < 0 || i >= len(m.rows) {
		return nil
	}
	return &m.rows[i]
}

// SetSize fits the table to the available area
func (m *Model) SetSize(width, height int) {
	m.table.SetWidth(width)
	// title, search line, summary, status line
	h := height - 6
	if h < 3 {
		h = 3
	}
	m.table.SetHeight(h)
}

// load starts a fetch for the current query. Responses to older loads are
// dropped when they arrive.
func (m *Model) load() tea.Cmd {
	m.seq++
	m.loading = true
	seq, q, fetch, ctx := m.seq, m.query.Get(), m.fetch, m.ctx

	return func() tea.Msg {
		result, err := fetch(ctx, q)
		return loadedMsg{seq: seq, result: result, err: err}
	}
}

// Update implements tea.Model
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case loadedMsg:
		if msg.seq != m.seq {
			return m, nil
		}
		m.loading = false
		if msg.err != nil {
			m.err = m.errText(msg.err)
			return m, nil
		}
		m.err = ""
		if len(msg.result.Rows) == 0 && m.query.Get().Page > 0 {
			// Page emptied by a delete; step back
			m.query.Update(func(q Query) Query { q.Page--; return q })
			return m, m.load()
		}
		m.setRows(msg.result)
		return m, nil

	case tea.KeyMsg:
		if m.searching {
			return m.updateSearch(msg)
		}
		return m.updateKeys(msg)
	}

	return m, nil
}

func (m *Model) updateSearch(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		m.searching = false
		m.search.Blur()
		term := strings.TrimSpace(m.search.Value())
		m.query.Update(func(q Query) Query {
			q.Page = 0
			q.Search = term
			return q
		})
		return m, m.load()
	case "esc":
		m.searching = false
		m.search.Blur()
		m.search.SetValue(m.query.Get().Search)
		return m, nil
	}

	var cmd tea.Cmd
	m.search, cmd = m.search.Update(msg)
	return m, cmd
}

func (m *Model) updateKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "/":
		m.searching = true
		return m, m.search.Focus()
	case "n", "right":
		if m.HasNext() {
			m.query.Update(func(q Query) Query { q.Page++; return q })
			return m, m.load()
		}
		return m, nil
	case "p", "left":
		if m.HasPrev() {
			m.query.Update(func(q Query) Query {
				if q.Page > 0 {
					q.Page--
				}
				return q
			})
			return m, m.load()
		}
		return m, nil
	case "r":
		return m, m.load()
	case "c":
		return m, action(ActionCreate, nil)
	case "e", "enter":
		if row := m.Selected(); row != nil {
			return m, action(ActionEdit, row)
		}
		return m, nil
	case "d":
		if row := m.Selected(); row != nil {
			return m, action(ActionDelete, row)
		}
		return m, nil
	case "s":
		if row := m.Selected(); row != nil && m.allowStatus {
			return m, action(ActionStatus, row)
		}
		return m, nil
	case "esc", "b":
		return m, action(ActionBack, nil)
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

func action(a Action, row *Row) tea.Cmd {
	return func() tea.Msg { return ActionMsg{Action: a, Row: row} }
}

// setRows replaces the table contents and publishes the page metadata.
func (m *Model) setRows(result Result) {
	m.rows = result.Rows
	m.loadedAt = time.Now()

	rows := make([]table.Row, len(result.Rows))
	for i, r := range result.Rows {
		rows[i] = table.Row(r.Cells)
	}
	m.table.SetRows(rows)
	if m.table.Cursor() >= len(rows) {
		m.table.SetCursor(max(0, len(rows)-1))
	}

	m.info.Set(result.Info)
}

// View implements tea.Model
func (m *Model) View() string {
	var sb strings.Builder

	sb.WriteString(styles.Title.Render(m.title))
	sb.WriteString("\n")

	if m.searching || m.query.Get().Search != "" {
		sb.WriteString(m.search.View())
		sb.WriteString("\n")
	}

	switch {
	case m.err != "":
		sb.WriteString(styles.StatusCritical.Render(icons.Critical.String() + " " + m.err))
		sb.WriteString("\n")
	case m.loading && len(m.rows) == 0:
		sb.WriteString(lipgloss.NewStyle().Foreground(styles.Muted).Render("Loading..."))
		sb.WriteString("\n")
	case len(m.rows) == 0:
		sb.WriteString(lipgloss.NewStyle().Foreground(styles.Muted).Render("Nothing here yet. Press c to create one."))
		sb.WriteString("\n")
	default:
		sb.WriteString(m.table.View())
		sb.WriteString("\n")
	}

	sb.WriteString(lipgloss.NewStyle().Foreground(styles.Muted).Render(m.Summary()))
	return sb.String()
}
