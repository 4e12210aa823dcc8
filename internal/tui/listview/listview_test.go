// ABOUTME: Tests for the paginated list screen
// ABOUTME: Drives the model with key messages and canned pages

package listview

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
)

// fakeFetcher records queries and serves pages of a fixed collection
type fakeFetcher struct {
	queries []Query
	total   int
	err     error
}

func (f *fakeFetcher) fetch(ctx context.Context, q Query) (Result, error) {
	f.queries = append(f.queries, q)
	if f.err != nil {
		return Result{}, f.err
	}

	totalPages := (f.total + q.Size - 1) / q.Size
	var rows []Row
	for i := q.Page * q.Size; i < f.total && i < (q.Page+1)*q.Size; i++ {
		rows = append(rows, Row{ID: int64(i + 1), Cells: []string{"item"}})
	}
	return Result{
		Rows: rows,
		Info: Info{
			Number:        q.Page,
			TotalPages:    totalPages,
			TotalElements: f.total,
			First:         q.Page == 0,
			Last:          q.Page >= totalPages-1,
		},
	}, nil
}

func newTestList(f *fakeFetcher) *Model {
	return New(Options{
		Title:       "Companies",
		Columns:     []table.Column{{Title: "NAME", Width: 20}},
		PageSize:    10,
		Fetch:       f.fetch,
		AllowStatus: false,
	})
}

// run executes cmd and feeds its message back into m, following one level
// of returned commands.
func run(t *testing.T, m *Model, cmd tea.Cmd) tea.Msg {
	t.Helper()
	if cmd == nil {
		return nil
	}
	msg := cmd()
	if _, ok := msg.(loadedMsg); ok {
		_, next := m.Update(msg)
		if next != nil {
			return run(t, m, next)
		}
	}
	return msg
}

func key(s string) tea.KeyMsg {
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func press(t *testing.T, m *Model, k string) tea.Msg {
	t.Helper()
	_, cmd := m.Update(key(k))
	return run(t, m, cmd)
}

func TestInitLoadsFirstPage(t *testing.T) {
	f := &fakeFetcher{total: 25}
	m := newTestList(f)

	run(t, m, m.Init())

	if len(f.queries) != 1 || f.queries[0] != (Query{Page: 0, Size: 10}) {
		t.Fatalf("unexpected queries %+v", f.queries)
	}
	if m.Summary() != "Page 1 of 3 · 25 items" {
		t.Errorf("unexpected summary %q", m.Summary())
	}
	if m.HasPrev() || !m.HasNext() {
		t.Error("expected only next to be available on the first page")
	}
}

func TestPaging(t *testing.T) {
	f := &fakeFetcher{total: 25}
	m := newTestList(f)
	run(t, m, m.Init())

	press(t, m, "n")
	press(t, m, "n")
	if m.Query().Page != 2 {
		t.Fatalf("expected page 2, got %d", m.Query().Page)
	}
	if m.HasNext() {
		t.Error("expected no next page on the last page")
	}

	before := len(f.queries)
	press(t, m, "n")
	if len(f.queries) != before {
		t.Error("expected next on the last page to do nothing")
	}

	press(t, m, "p")
	if m.Query().Page != 1 || m.Summary() != "Page 2 of 3 · 25 items" {
		t.Errorf("unexpected state after previous: page %d, %q", m.Query().Page, m.Summary())
	}
}

func TestSearchResetsPage(t *testing.T) {
	f := &fakeFetcher{total: 25}
	m := newTestList(f)
	run(t, m, m.Init())
	press(t, m, "n")

	m.Update(key("/"))
	if !m.Searching() {
		t.Fatal("expected search box to have focus")
	}
	for _, r := range "Play" {
		m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
	press(t, m, "enter")

	last := f.queries[len(f.queries)-1]
	if last != (Query{Page: 0, Size: 10, Search: "Play"}) {
		t.Errorf("unexpected query %+v", last)
	}
	if m.Searching() {
		t.Error("expected search box to lose focus")
	}
	if !strings.Contains(m.Summary(), `filter "Play"`) {
		t.Errorf("expected summary to mention the filter, got %q", m.Summary())
	}
}

func TestSearchEscapeRestores(t *testing.T) {
	f := &fakeFetcher{total: 5}
	m := newTestList(f)
	run(t, m, m.Init())

	m.Update(key("/"))
	m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("x")})
	press(t, m, "esc")

	if len(f.queries) != 1 {
		t.Errorf("expected no new load after cancelling search, got %d", len(f.queries))
	}
	if m.Query().Search != "" {
		t.Errorf("expected search to stay empty, got %q", m.Query().Search)
	}
}

func TestActions(t *testing.T) {
	f := &fakeFetcher{total: 3}
	m := newTestList(f)
	run(t, m, m.Init())

	tests := []struct {
		key  string
		want Action
		row  bool
	}{
		{"c", ActionCreate, false},
		{"e", ActionEdit, true},
		{"d", ActionDelete, true},
		{"b", ActionBack, false},
	}

	for _, tt := range tests {
		msg, ok := press(t, m, tt.key).(ActionMsg)
		if !ok {
			t.Fatalf("key %q: expected ActionMsg", tt.key)
		}
		if msg.Action != tt.want {
			t.Errorf("key %q: action = %d, want %d", tt.key, msg.Action, tt.want)
		}
		if tt.row && (msg.Row == nil || msg.Row.ID != 1) {
			t.Errorf("key %q: expected the first row, got %+v", tt.key, msg.Row)
		}
	}

	if msg := press(t, m, "s"); msg != nil {
		t.Errorf("expected status action to be disabled, got %v", msg)
	}
}

func TestEmptiedPageStepsBack(t *testing.T) {
	f := &fakeFetcher{total: 11}
	m := newTestList(f)
	run(t, m, m.Init())
	press(t, m, "n")

	f.total = 10
	run(t, m, m.Reload())

	if m.Query().Page != 0 {
		t.Errorf("expected to step back to page 0, got %d", m.Query().Page)
	}
	if m.Selected() == nil {
		t.Error("expected rows from the previous page")
	}
}

func TestStaleResponsesDropped(t *testing.T) {
	f := &fakeFetcher{total: 25}
	m := newTestList(f)

	first := m.Init()
	second := m.Reload()

	m.Update(second())
	staleMsg := first().(loadedMsg)
	staleMsg.result.Info.TotalElements = 999
	m.Update(staleMsg)

	if strings.Contains(m.Summary(), "999") {
		t.Error("expected stale response to be ignored")
	}
}

func TestLoadError(t *testing.T) {
	f := &fakeFetcher{err: errors.New("boom")}
	m := New(Options{
		Title:     "Games",
		Columns:   []table.Column{{Title: "TITLE", Width: 20}},
		PageSize:  10,
		Fetch:     f.fetch,
		ErrorText: func(error) string { return "Server error. Please try again later." },
	})
	run(t, m, m.Init())

	if !strings.Contains(m.View(), "Server error. Please try again later.") {
		t.Errorf("expected error in view, got:\n%s", m.View())
	}
}

func TestCloseCancelsContext(t *testing.T) {
	m := newTestList(&fakeFetcher{})
	m.Close()

	if m.ctx.Err() == nil {
		t.Error("expected context to be cancelled")
	}
}
