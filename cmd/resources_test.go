// ABOUTME: Tests for the named resource and games commands
// ABOUTME: Verifies paging flags, request shapes, output, and error messages

package cmd

import (
	"bytes"
	"encoding/json"
	"net/http"
	"strings"
	"testing"

	"github.com/ronaldobertolucci/my-games-cli/internal/models"
)

func TestListOptionsResolve(t *testing.T) {
	tests := []struct {
		opts     listOptions
		wantPage int
		wantSize int
		wantErr  bool
	}{
		{listOptions{page: 1}, 0, 10, false},
		{listOptions{page: 3, size: 20}, 2, 20, false},
		{listOptions{page: 0}, 0, 0, true},
		{listOptions{page: 1, size: 101}, 0, 0, true},
		{listOptions{page: 1, size: -1}, 0, 0, true},
	}

	for _, tt := range tests {
		page, size, err := tt.opts.resolve(10)
		if tt.wantErr {
			if err == nil {
				t.Errorf("resolve(%+v) expected error", tt.opts)
			}
			continue
		}
		if err != nil || page != tt.wantPage || size != tt.wantSize {
			t.Errorf("resolve(%+v) = %d, %d, %v; want %d, %d", tt.opts, page, size, err, tt.wantPage, tt.wantSize)
		}
	}
}

func TestCompaniesList(t *testing.T) {
	var gotQuery string
	testBackend(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/companies" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		gotQuery = r.URL.RawQuery
		w.Write([]byte(`{"content":[{"id":7,"name":"PlayStation Studios"}],"totalElements":21,"totalPages":2,"number":1,"size":20,"first":false,"last":true}`))
	})

	var buf bytes.Buffer
	exitCode := runNamedList(t.Context(), &buf, companyResource, listOptions{page: 2, size: 20, search: "Play"})

	if exitCode != 0 {
		t.Fatalf("expected exit code 0, got %d: %s", exitCode, buf.String())
	}
	if gotQuery != "page=1&size=20&name=Play" {
		t.Errorf("unexpected query %q", gotQuery)
	}
	for _, want := range []string{"PlayStation Studios", "7", "Page 2 of 2 (21 total)"} {
		if !strings.Contains(buf.String(), want) {
			t.Errorf("expected output to contain %q, got:\n%s", want, buf.String())
		}
	}
}

func TestNamedList_TrimsSearchFlag(t *testing.T) {
	var gotQuery string
	testBackend(t, func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.RawQuery
		w.Write([]byte(`{"content":[],"totalElements":0,"totalPages":0,"number":0,"size":10,"first":true,"last":true}`))
	})

	var buf bytes.Buffer
	runNamedList(t.Context(), &buf, companyResource, listOptions{page: 1, search: "  Play "})

	if gotQuery != "page=0&size=10&name=Play" {
		t.Errorf("unexpected query %q", gotQuery)
	}
}

func TestNamedList_Empty(t *testing.T) {
	testBackend(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"content":[],"totalElements":0,"totalPages":0,"number":0,"size":10,"first":true,"last":true}`))
	})

	var buf bytes.Buffer
	runNamedList(t.Context(), &buf, genreResource, listOptions{page: 1})

	if !strings.Contains(buf.String(), "No results.") {
		t.Errorf("unexpected output %q", buf.String())
	}
}

func TestNamedCreate_Conflict(t *testing.T) {
	testBackend(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("expected POST, got %s", r.Method)
		}
		w.WriteHeader(http.StatusConflict)
	})

	var buf bytes.Buffer
	exitCode := runNamedSave(t.Context(), &buf, companyResource, "", "Dup")

	if exitCode != 1 {
		t.Errorf("expected exit code 1, got %d", exitCode)
	}
	if !strings.Contains(buf.String(), "A company with this name already exists.") {
		t.Errorf("unexpected output %q", buf.String())
	}
}

func TestNamedUpdate_PutsIDInBody(t *testing.T) {
	var method, path string
	var body models.Platform
	testBackend(t, func(w http.ResponseWriter, r *http.Request) {
		method, path = r.Method, r.URL.Path
		json.NewDecoder(r.Body).Decode(&body)
		json.NewEncoder(w).Encode(body)
	})
	jsonOutput = true

	var buf bytes.Buffer
	if exitCode := runNamedSave(t.Context(), &buf, platformResource, "4", "  Switch  "); exitCode != 0 {
		t.Fatalf("expected exit code 0, got %d: %s", exitCode, buf.String())
	}

	if method != http.MethodPut || path != "/api/platforms" {
		t.Errorf("unexpected request %s %s", method, path)
	}
	if body.ID != 4 || body.Name != "Switch" {
		t.Errorf("unexpected body %+v", body)
	}

	var out models.Platform
	if err := json.Unmarshal(buf.Bytes(), &out); err != nil || out.ID != 4 {
		t.Errorf("expected JSON output of the saved platform, got %q", buf.String())
	}
}

func TestNamedSave_Validation(t *testing.T) {
	testBackend(t, func(w http.ResponseWriter, r *http.Request) {
		t.Error("expected no request for invalid input")
	})

	var buf bytes.Buffer
	if code := runNamedSave(t.Context(), &buf, themeResource, "", "   "); code != 2 {
		t.Errorf("expected exit code 2 for empty name, got %d", code)
	}
	if code := runNamedSave(t.Context(), &buf, themeResource, "abc", "Horror"); code != 2 {
		t.Errorf("expected exit code 2 for bad id, got %d", code)
	}
}

func TestNamedGet_NotFound(t *testing.T) {
	testBackend(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/sources/99" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		w.WriteHeader(http.StatusNotFound)
	})

	var buf bytes.Buffer
	if code := runNamedGet(t.Context(), &buf, sourceResource, "99"); code != 1 {
		t.Errorf("expected exit code 1, got %d", code)
	}
	if !strings.Contains(buf.String(), "This source no longer exists.") {
		t.Errorf("unexpected output %q", buf.String())
	}
}

func TestGameUpdate_KeepsUnchangedFields(t *testing.T) {
	var saved map[string]interface{}
	testBackend(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			w.Write([]byte(`{"id":5,"title":"Hades","description":"Roguelike","released_at":"2020-09-17",
				"company":{"id":2,"name":"Supergiant"},"genres":[{"id":1,"name":"Action"}],"themes":[]}`))
		case http.MethodPut:
			json.NewDecoder(r.Body).Decode(&saved)
			w.Write([]byte(`{"id":5,"title":"Hades II","released_at":"2020-09-17"}`))
		}
	})

	var buf bytes.Buffer
	exitCode := runGameUpdate(t.Context(), &buf, "5", func(g *models.Game) { g.Title = "Hades II" })

	if exitCode != 0 {
		t.Fatalf("expected exit code 0, got %d: %s", exitCode, buf.String())
	}
	if saved["id"] != float64(5) || saved["title"] != "Hades II" || saved["company_id"] != float64(2) {
		t.Errorf("unexpected update body %v", saved)
	}
	if saved["description"] != "Roguelike" {
		t.Errorf("expected description to be kept, got %v", saved["description"])
	}
	if _, ok := saved["company"]; ok {
		t.Error("expected embedded relations to be stripped from the request")
	}
	if !strings.Contains(buf.String(), "Hades II") {
		t.Errorf("unexpected output %q", buf.String())
	}
}

func TestValidateGame(t *testing.T) {
	tests := []struct {
		name    string
		game    models.Game
		wantErr string
	}{
		{"valid", models.Game{Title: "Hades", CompanyID: 1, ReleasedAt: "2020-09-17"}, ""},
		{"no date", models.Game{Title: "Hades", CompanyID: 1}, ""},
		{"missing title", models.Game{CompanyID: 1}, "--title"},
		{"bad date", models.Game{Title: "Hades", CompanyID: 1, ReleasedAt: "17/09/2020"}, "--released-at"},
		{"missing company", models.Game{Title: "Hades"}, "--company"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateGame(tt.game)
			if tt.wantErr == "" {
				if err != nil {
					t.Errorf("unexpected error: %v", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("expected error mentioning %s, got %v", tt.wantErr, err)
			}
		})
	}
}
