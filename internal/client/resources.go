// ABOUTME: Paginated CRUD services for catalogue resources
// ABOUTME: One generic implementation shared by companies, platforms, genres, themes, sources, games, and my-games

package client

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/ronaldobertolucci/my-games-cli/internal/models"
)

// Filter narrows a listing. Zero-valued fields are not sent.
type Filter struct {
	Search     string // matched against name, or title for games and my-games
	PlatformID int64
	SourceID   int64
	Statuses   []models.Status
}

// Resource is a paginated CRUD client for one REST collection.
type Resource[T any] struct {
	c        *Client
	path     string
	searchBy string
}

func newResource[T any](c *Client, path, searchBy string) *Resource[T] {
	return &Resource[T]{c: c, path: path, searchBy: searchBy}
}

// Path returns the collection path relative to the API base URL
func (r *Resource[T]) Path() string {
	return r.path
}

// List fetches one page. page is 0-based.
func (r *Resource[T]) List(ctx context.Context, page, size int, f Filter) (*models.Page[T], error) {
	var q params
	q.addInt("page", int64(page))
	q.addInt("size", int64(size))
	if f.Search != "" {
		q.add(r.searchBy, f.Search)
	}
	if f.PlatformID != 0 {
		q.addInt("platform_id", f.PlatformID)
	}
	if f.SourceID != 0 {
		q.addInt("source_id", f.SourceID)
	}
	if len(f.Statuses) > 0 {
		names := make([]string, len(f.Statuses))
		for i, st := range f.Statuses {
			names[i] = string(st)
		}
		q.add("status", strings.Join(names, ","))
	}

	var out models.Page[T]
	if err := r.c.do(ctx, http.MethodGet, r.path, q, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Get fetches one entity by id
func (r *Resource[T]) Get(ctx context.Context, id int64) (*T, error) {
	var out T
	if err := r.c.do(ctx, http.MethodGet, r.itemPath(id), nil, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Create posts a new entity and returns it with its server-assigned id
func (r *Resource[T]) Create(ctx context.Context, entity T) (*T, error) {
	var out T
	if err := r.c.do(ctx, http.MethodPost, r.path, nil, entity, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Update replaces an entity. The id travels in the body, not the path.
func (r *Resource[T]) Update(ctx context.Context, entity T) (*T, error) {
	var out T
	if err := r.c.do(ctx, http.MethodPut, r.path, nil, entity, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Delete removes an entity by id
func (r *Resource[T]) Delete(ctx context.Context, id int64) error {
	return r.c.do(ctx, http.MethodDelete, r.itemPath(id), nil, nil, nil)
}

func (r *Resource[T]) itemPath(id int64) string {
	return fmt.Sprintf("%s/%d", r.path, id)
}

// Companies returns the /companies service
func (c *Client) Companies() *Resource[models.Company] {
	return newResource[models.Company](c, "/companies", "name")
}

// Platforms returns the /platforms service
func (c *Client) Platforms() *Resource[models.Platform] {
	return newResource[models.Platform](c, "/platforms", "name")
}

// Genres returns the /genres service
func (c *Client) Genres() *Resource[models.Genre] {
	return newResource[models.Genre](c, "/genres", "name")
}

// Themes returns the /themes service
func (c *Client) Themes() *Resource[models.Theme] {
	return newResource[models.Theme](c, "/themes", "name")
}

// Sources returns the /sources service
func (c *Client) Sources() *Resource[models.Source] {
	return newResource[models.Source](c, "/sources", "name")
}

// Games returns the /games service
func (c *Client) Games() *Resource[models.Game] {
	return newResource[models.Game](c, "/games", "title")
}

// MyGamesService manages the user's collection. Entries are never replaced
// wholesale; only their status changes.
type MyGamesService struct {
	r *Resource[models.MyGame]
}

// MyGames returns the /my-games service
func (c *Client) MyGames() *MyGamesService {
	return &MyGamesService{r: newResource[models.MyGame](c, "/my-games", "title")}
}

// List fetches one page of the collection
func (s *MyGamesService) List(ctx context.Context, page, size int, f Filter) (*models.Page[models.MyGame], error) {
	return s.r.List(ctx, page, size, f)
}

// Get fetches one entry by id
func (s *MyGamesService) Get(ctx context.Context, id int64) (*models.MyGame, error) {
	return s.r.Get(ctx, id)
}

// Create adds a game to the collection
func (s *MyGamesService) Create(ctx context.Context, entry models.MyGame) (*models.MyGame, error) {
	return s.r.Create(ctx, entry)
}

// Delete removes an entry by id
func (s *MyGamesService) Delete(ctx context.Context, id int64) error {
	return s.r.Delete(ctx, id)
}

type statusUpdate struct {
	Status models.Status `json:"status"`
}

// UpdateStatus calls PATCH /my-games/{id}/status
func (s *MyGamesService) UpdateStatus(ctx context.Context, id int64, status models.Status) (*models.MyGame, error) {
	var out models.MyGame
	if err := s.r.c.do(ctx, http.MethodPatch, s.r.itemPath(id)+"/status", nil, statusUpdate{Status: status}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
