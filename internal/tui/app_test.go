// ABOUTME: Integration tests for TUI app
// ABOUTME: Tests screen transitions, backend round trips and toasts

package tui

import (
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/ronaldobertolucci/my-games-cli/internal/messages"
	"github.com/ronaldobertolucci/my-games-cli/internal/models"
	"github.com/ronaldobertolucci/my-games-cli/internal/tui/forms"
	"github.com/ronaldobertolucci/my-games-cli/internal/tui/listview"
	"github.com/ronaldobertolucci/my-games-cli/internal/tui/login"
	"github.com/ronaldobertolucci/my-games-cli/internal/tui/menu"
	"github.com/ronaldobertolucci/my-games-cli/internal/tui/widgets"
)

// recorder captures requests made by the app
type recorder struct {
	mu       sync.Mutex
	requests []string
	bodies   []string
}

func (r *recorder) record(req *http.Request) {
	r.mu.Lock()
	defer r.mu.Unlock()
	body, _ := io.ReadAll(req.Body)
	r.requests = append(r.requests, req.Method+" "+req.URL.Path)
	r.bodies = append(r.bodies, string(body))
}

func TestAppInitialState(t *testing.T) {
	app := newTestApp(t, nil, false)
	if app.screen != ScreenLogin {
		t.Errorf("expected login screen without session, got %d", app.screen)
	}

	app = newTestApp(t, nil, true)
	if app.screen != ScreenMenu {
		t.Errorf("expected menu screen with session, got %d", app.screen)
	}
	if app.user != "testuser" {
		t.Errorf("expected user testuser, got %q", app.user)
	}
}

func TestScreenConstants(t *testing.T) {
	if ScreenLogin != 0 {
		t.Errorf("expected ScreenLogin to be 0, got %d", ScreenLogin)
	}
	if ScreenMenu != 1 {
		t.Errorf("expected ScreenMenu to be 1, got %d", ScreenMenu)
	}
	if ScreenList != 2 {
		t.Errorf("expected ScreenList to be 2, got %d", ScreenList)
	}
	if ScreenForm != 3 {
		t.Errorf("expected ScreenForm to be 3, got %d", ScreenForm)
	}
}

func TestLoginSuccess(t *testing.T) {
	tok := testToken("alice", time.Now().Add(time.Hour))
	app := newTestApp(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/auth/login" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		json.NewEncoder(w).Encode(map[string]string{"token": tok, "username": "alice"})
	}, false)

	cmd := app.authenticate(login.SubmitMsg{Mode: login.ModeLogin, Username: "alice", Password: "pw"})
	app.Update(cmd())

	if app.screen != ScreenMenu {
		t.Errorf("expected menu screen, got %d", app.screen)
	}
	if app.user != "alice" {
		t.Errorf("expected user alice, got %q", app.user)
	}
	if app.toast.Text != "Logged in as alice" {
		t.Errorf("unexpected toast %q", app.toast.Text)
	}
	if app.client.Session().Token() != tok {
		t.Error("expected token to be stored")
	}
}

func TestLoginFailureShowsError(t *testing.T) {
	app := newTestApp(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"message":"Bad credentials"}`, http.StatusUnauthorized)
	}, false)

	cmd := app.authenticate(login.SubmitMsg{Mode: login.ModeLogin, Username: "alice", Password: "wrong"})
	app.Update(cmd())

	if app.screen != ScreenLogin {
		t.Errorf("expected to stay on login, got %d", app.screen)
	}
	if !strings.Contains(app.View(), messages.BadLogin) {
		t.Error("expected bad login message in view")
	}
}

func TestRegisterShowsNotice(t *testing.T) {
	app := newTestApp(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/auth/register" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		w.Write([]byte("User registered successfully."))
	}, false)

	cmd := app.authenticate(login.SubmitMsg{Mode: login.ModeRegister, Username: "bob", Password: "pw"})
	app.Update(cmd())

	if app.screen != ScreenLogin {
		t.Errorf("expected to stay on login, got %d", app.screen)
	}
	if !strings.Contains(app.View(), "User registered successfully. You can log in now.") {
		t.Error("expected registration notice in view")
	}
	if app.client.IsAuthenticated() {
		t.Error("register must not log in")
	}
}

func TestMenuSelectionOpensList(t *testing.T) {
	app := newTestApp(t, nil, true)

	_, cmd := app.Update(menu.SelectedMsg{Choice: menu.ChoiceGenres})

	if app.screen != ScreenList {
		t.Fatalf("expected list screen, got %d", app.screen)
	}
	if app.list == nil || app.list.Title() != "Genres" {
		t.Error("expected genres list")
	}
	if cmd == nil {
		t.Error("expected first page load command")
	}
}

func TestBackClosesListAndCancels(t *testing.T) {
	app := newTestApp(t, nil, true)
	app.openList(menu.ChoiceGames)
	ctx := app.ctx

	app.Update(listview.ActionMsg{Action: listview.ActionBack})

	if app.screen != ScreenMenu {
		t.Errorf("expected menu screen, got %d", app.screen)
	}
	if app.list != nil {
		t.Error("expected list to be closed")
	}
	if ctx.Err() == nil {
		t.Error("expected screen context to be cancelled")
	}
}

func TestLoginRequiredSwitchesToLogin(t *testing.T) {
	app := newTestApp(t, nil, true)
	app.openList(menu.ChoiceCompanies)

	app.Update(loginRequiredMsg{})

	if app.screen != ScreenLogin {
		t.Errorf("expected login screen, got %d", app.screen)
	}
	if app.list != nil {
		t.Error("expected list to be closed")
	}
	if app.toast.Text != messages.Expired {
		t.Errorf("unexpected toast %q", app.toast.Text)
	}
}

func TestLogoutFromMenu(t *testing.T) {
	app := newTestApp(t, nil, true)

	app.Update(menu.SelectedMsg{Choice: menu.ChoiceLogout})
	// The client signals login-required after logout; it must not
	// replace the logout toast
	app.Update(loginRequiredMsg{})

	if app.screen != ScreenLogin {
		t.Errorf("expected login screen, got %d", app.screen)
	}
	if app.client.Session().Token() != "" {
		t.Error("expected session to be cleared")
	}
	if app.toast.Text != "Logged out" {
		t.Errorf("unexpected toast %q", app.toast.Text)
	}
}

func TestCreateNamedEntity(t *testing.T) {
	rec := &recorder{}
	app := newTestApp(t, func(w http.ResponseWriter, r *http.Request) {
		rec.record(r)
		w.WriteHeader(http.StatusCreated)
		w.Write([]byte(`{"id":12,"name":"RPG"}`))
	}, true)
	app.openList(menu.ChoiceGenres)

	app.Update(listview.ActionMsg{Action: listview.ActionCreate})
	if app.screen != ScreenForm {
		t.Fatalf("expected form screen, got %d", app.screen)
	}
	if _, ok := app.form.(*forms.NamedForm); !ok {
		t.Fatalf("expected named form, got %T", app.form)
	}

	_, cmd := app.Update(forms.NamedSubmittedMsg{Name: "RPG"})
	if app.screen != ScreenList {
		t.Errorf("expected list screen after submit, got %d", app.screen)
	}
	app.Update(cmd())

	if len(rec.requests) != 1 || rec.requests[0] != "POST /api/genres" {
		t.Errorf("unexpected requests %v", rec.requests)
	}
	if !strings.Contains(rec.bodies[0], `"name":"RPG"`) {
		t.Errorf("unexpected body %s", rec.bodies[0])
	}
	if app.toast.Text != "Genre created." {
		t.Errorf("unexpected toast %q", app.toast.Text)
	}
}

func TestSaveConflictShowsToast(t *testing.T) {
	app := newTestApp(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"message":"duplicate"}`, http.StatusConflict)
	}, true)
	app.openList(menu.ChoiceCompanies)

	_, cmd := app.Update(forms.NamedSubmittedMsg{ID: 3, Name: "Sega"})
	app.Update(cmd())

	if app.toast.Text != "A company with this name already exists." {
		t.Errorf("unexpected toast %q", app.toast.Text)
	}
	if app.toast.Level != widgets.StatusCritical {
		t.Errorf("expected critical toast, got %d", app.toast.Level)
	}
}

func TestDeleteAfterConfirm(t *testing.T) {
	rec := &recorder{}
	app := newTestApp(t, func(w http.ResponseWriter, r *http.Request) {
		rec.record(r)
		w.WriteHeader(http.StatusNoContent)
	}, true)
	app.openList(menu.ChoiceGenres)

	row := &listview.Row{ID: 7, Item: models.Genre{ID: 7, Name: "RPG"}}
	app.Update(listview.ActionMsg{Action: listview.ActionDelete, Row: row})
	if app.screen != ScreenForm || app.pending != row {
		t.Fatal("expected confirm dialog for the row")
	}
	if !strings.Contains(app.View(), `Delete genre "RPG"?`) {
		t.Error("expected question in view")
	}

	_, cmd := app.Update(forms.ConfirmedMsg{})
	app.Update(cmd())

	if len(rec.requests) != 1 || rec.requests[0] != "DELETE /api/genres/7" {
		t.Errorf("unexpected requests %v", rec.requests)
	}
	if app.toast.Text != "Genre deleted." {
		t.Errorf("unexpected toast %q", app.toast.Text)
	}
}

func TestCancelledFormReturnsToList(t *testing.T) {
	app := newTestApp(t, nil, true)
	app.openList(menu.ChoiceGenres)
	app.Update(listview.ActionMsg{Action: listview.ActionDelete, Row: &listview.Row{ID: 1}})

	app.Update(forms.CancelledMsg{})

	if app.screen != ScreenList {
		t.Errorf("expected list screen, got %d", app.screen)
	}
	if app.pending != nil || app.form != nil {
		t.Error("expected form state to be cleared")
	}
}

func TestMyGamesEditOpensStatusForm(t *testing.T) {
	app := newTestApp(t, nil, true)
	app.openList(menu.ChoiceMyGames)

	entry := models.MyGame{ID: 4, Status: models.StatusPlaying}
	app.Update(listview.ActionMsg{Action: listview.ActionStatus, Row: &listview.Row{ID: 4, Item: entry}})

	if _, ok := app.form.(*forms.StatusForm); !ok {
		t.Errorf("expected status form, got %T", app.form)
	}
}

func TestStatusChange(t *testing.T) {
	rec := &recorder{}
	app := newTestApp(t, func(w http.ResponseWriter, r *http.Request) {
		rec.record(r)
		w.Write([]byte(`{"id":4,"game_id":1,"platform_id":1,"source_id":1,"status":"COMPLETED"}`))
	}, true)
	app.openList(menu.ChoiceMyGames)

	_, cmd := app.Update(forms.StatusSubmittedMsg{ID: 4, Status: models.StatusCompleted})
	app.Update(cmd())

	if len(rec.requests) != 1 || rec.requests[0] != "PATCH /api/my-games/4/status" {
		t.Errorf("unexpected requests %v", rec.requests)
	}
	if app.toast.Text != "Entry updated." {
		t.Errorf("unexpected toast %q", app.toast.Text)
	}
}

func TestRefsLoadedOpensGameForm(t *testing.T) {
	app := newTestApp(t, nil, true)
	app.openList(menu.ChoiceGames)

	refs := forms.GameRefs{Companies: []models.Company{{ID: 1, Name: "Nintendo"}}}
	app.Update(refsLoadedMsg{game: &refs})

	if _, ok := app.form.(*forms.GameForm); !ok {
		t.Errorf("expected game form, got %T", app.form)
	}
}

func TestRefsLoadedIgnoredAfterLeaving(t *testing.T) {
	app := newTestApp(t, nil, true)
	app.openList(menu.ChoiceGames)
	app.Update(listview.ActionMsg{Action: listview.ActionBack})

	app.Update(refsLoadedMsg{game: &forms.GameRefs{}})

	if app.form != nil || app.screen != ScreenMenu {
		t.Error("expected late form data to be ignored")
	}
}

func TestToastExpiry(t *testing.T) {
	app := newTestApp(t, nil, true)
	app.showToast("first", widgets.StatusOK)
	first := app.toast.ID
	app.showToast("second", widgets.StatusOK)

	app.Update(widgets.ToastExpiredMsg{ID: first})
	if app.toast.Text != "second" {
		t.Error("expired timer of an older toast must not dismiss the current one")
	}

	app.Update(widgets.ToastExpiredMsg{ID: app.toast.ID})
	if app.toast.Text != "" {
		t.Error("expected toast to be dismissed")
	}
}

func TestHeaderShowsUser(t *testing.T) {
	app := newTestApp(t, nil, true)
	if !strings.Contains(app.renderHeader(), "testuser") {
		t.Error("expected username in header")
	}

	app.Update(userChangedMsg{username: "carol"})
	if !strings.Contains(app.renderHeader(), "carol") {
		t.Error("expected header to follow user changes")
	}
}

func TestRegisteredNotice(t *testing.T) {
	tests := map[string]string{
		"User registered.": "User registered. You can log in now.",
		"  ":               "Account created. You can log in now.",
	}
	for in, want := range tests {
		if got := registeredNotice(in); got != want {
			t.Errorf("registeredNotice(%q) = %q, want %q", in, got, want)
		}
	}
}
