// ABOUTME: Tests for the collection commands
// ABOUTME: Verifies filter flags, status changes, and input validation

package cmd

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"testing"

	"github.com/ronaldobertolucci/my-games-cli/internal/models"
)

func TestMyGamesList_Filters(t *testing.T) {
	var gotQuery string
	testBackend(t, func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.RawQuery
		w.Write([]byte(`{"content":[{"id":1,"game_id":3,"platform_id":2,"source_id":4,"status":"PLAYING",
			"game":{"id":3,"title":"Hades"},"platform":{"id":2,"name":"PC"},"source":{"id":4,"name":"Steam"}}],
			"totalElements":1,"totalPages":1,"number":0,"size":10,"first":true,"last":true}`))
	})

	flags := myGamesFilterFlags{
		listOptions: listOptions{page: 1, search: "Hades"},
		platformID:  2,
		sourceID:    4,
		statuses:    "playing,on-hold",
	}

	var buf bytes.Buffer
	if code := runMyGamesList(t.Context(), &buf, flags); code != 0 {
		t.Fatalf("expected exit code 0, got %d: %s", code, buf.String())
	}

	want := "page=0&size=10&title=Hades&platform_id=2&source_id=4&status=PLAYING%2CON_HOLD"
	if gotQuery != want {
		t.Errorf("query = %q, want %q", gotQuery, want)
	}
	for _, s := range []string{"Hades", "PC", "Steam", "Playing"} {
		if !strings.Contains(buf.String(), s) {
			t.Errorf("expected output to contain %q, got:\n%s", s, buf.String())
		}
	}
}

func TestMyGamesList_InvalidStatus(t *testing.T) {
	testBackend(t, func(w http.ResponseWriter, r *http.Request) {
		t.Error("expected no request")
	})

	var buf bytes.Buffer
	code := runMyGamesList(t.Context(), &buf, myGamesFilterFlags{listOptions: listOptions{page: 1}, statuses: "BEATEN"})
	if code != 2 {
		t.Errorf("expected exit code 2, got %d", code)
	}
}

func TestMyGameStatus(t *testing.T) {
	var method, path string
	var body map[string]string
	testBackend(t, func(w http.ResponseWriter, r *http.Request) {
		method, path = r.Method, r.URL.Path
		json.NewDecoder(r.Body).Decode(&body)
		w.Write([]byte(`{"id":9,"game_id":3,"platform_id":2,"source_id":4,"status":"COMPLETED"}`))
	})

	var buf bytes.Buffer
	if code := runMyGameStatus(t.Context(), &buf, "9", "completed"); code != 0 {
		t.Fatalf("expected exit code 0, got %d: %s", code, buf.String())
	}

	if method != http.MethodPatch || path != "/api/my-games/9/status" {
		t.Errorf("unexpected request %s %s", method, path)
	}
	if body["status"] != "COMPLETED" {
		t.Errorf("unexpected body %v", body)
	}
	if !strings.Contains(buf.String(), "Completed") {
		t.Errorf("unexpected output %q", buf.String())
	}
}

func TestMyGameAdd(t *testing.T) {
	var body models.MyGame
	testBackend(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/api/my-games" {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		json.NewDecoder(r.Body).Decode(&body)
		body.ID = 11
		json.NewEncoder(w).Encode(body)
	})

	var buf bytes.Buffer
	entry := models.MyGame{GameID: 3, PlatformID: 2, SourceID: 4}
	if code := runMyGameAdd(t.Context(), &buf, entry, "wishlist"); code != 0 {
		t.Fatalf("expected exit code 0, got %d: %s", code, buf.String())
	}
	if body.Status != models.StatusWishlist || body.GameID != 3 {
		t.Errorf("unexpected body %+v", body)
	}
}

func TestMyGameAdd_RequiresReferences(t *testing.T) {
	testBackend(t, func(w http.ResponseWriter, r *http.Request) {
		t.Error("expected no request")
	})

	var buf bytes.Buffer
	if code := runMyGameAdd(t.Context(), &buf, models.MyGame{GameID: 3}, "PLAYING"); code != 2 {
		t.Errorf("expected exit code 2, got %d", code)
	}
}

func TestMyGameDelete(t *testing.T) {
	var method, path string
	testBackend(t, func(w http.ResponseWriter, r *http.Request) {
		method, path = r.Method, r.URL.Path
		w.WriteHeader(http.StatusNoContent)
	})

	var buf bytes.Buffer
	code := runDelete(t.Context(), &buf, "entry", "9", func(ctx context.Context, env *appEnv, id int64) error {
		return env.client.MyGames().Delete(ctx, id)
	})
	if code != 0 {
		t.Fatalf("expected exit code 0, got %d: %s", code, buf.String())
	}
	if method != http.MethodDelete || path != "/api/my-games/9" {
		t.Errorf("unexpected request %s %s", method, path)
	}
	if !strings.Contains(buf.String(), "Deleted entry 9") {
		t.Errorf("unexpected output %q", buf.String())
	}
}
