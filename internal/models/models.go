// ABOUTME: Catalogue entity types exchanged with the REST backend
// ABOUTME: Defines named lookups, games, my-games entries, and the page envelope

package models

import "strconv"

// Page is one page of a paginated backend listing.
type Page[T any] struct {
	Content       []T  `json:"content"`
	TotalElements int  `json:"totalElements"`
	TotalPages    int  `json:"totalPages"`
	Number        int  `json:"number"` // current page, 0-based
	Size          int  `json:"size"`
	First         bool `json:"first"`
	Last          bool `json:"last"`
}

// Named is implemented by entities shown by name in lists and selects.
type Named interface {
	GetID() int64
	DisplayName() string
}

// Company, Platform, Genre, Theme and Source share the same shape.
type Company struct {
	ID   int64  `json:"id,omitempty"`
	Name string `json:"name"`
}

type Platform struct {
	ID   int64  `json:"id,omitempty"`
	Name string `json:"name"`
}

type Genre struct {
	ID   int64  `json:"id,omitempty"`
	Name string `json:"name"`
}

type Theme struct {
	ID   int64  `json:"id,omitempty"`
	Name string `json:"name"`
}

type Source struct {
	ID   int64  `json:"id,omitempty"`
	Name string `json:"name"`
}

func (c Company) GetID() int64        { return c.ID }
func (c Company) DisplayName() string { return c.Name }

func (p Platform) GetID() int64        { return p.ID }
func (p Platform) DisplayName() string { return p.Name }

func (g Genre) GetID() int64        { return g.ID }
func (g Genre) DisplayName() string { return g.Name }

func (t Theme) GetID() int64        { return t.ID }
func (t Theme) DisplayName() string { return t.Name }

func (s Source) GetID() int64        { return s.ID }
func (s Source) DisplayName() string { return s.Name }

// Game is a catalogue title. Company, Genres and Themes are only populated
// in responses; requests carry the *_id fields.
type Game struct {
	ID          int64    `json:"id,omitempty"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	ReleasedAt  string   `json:"released_at"` // YYYY-MM-DD
	CompanyID   int64    `json:"company_id"`
	GenreIDs    []int64  `json:"genre_ids"`
	ThemeIDs    []int64  `json:"theme_ids"`
	Company     *Company `json:"company,omitempty"`
	Genres      []Genre  `json:"genres,omitempty"`
	Themes      []Theme  `json:"themes,omitempty"`
}

func (g Game) GetID() int64        { return g.ID }
func (g Game) DisplayName() string { return g.Title }

// MyGame is an entry in the user's personal collection or wishlist.
type MyGame struct {
	ID         int64     `json:"id,omitempty"`
	UserID     int64     `json:"user_id,omitempty"`
	GameID     int64     `json:"game_id"`
	PlatformID int64     `json:"platform_id"`
	SourceID   int64     `json:"source_id"`
	Status     Status    `json:"status"`
	Game       *Game     `json:"game,omitempty"`
	Platform   *Platform `json:"platform,omitempty"`
	Source     *Source   `json:"source,omitempty"`
}

func (m MyGame) GetID() int64 { return m.ID }

// DisplayName prefers the embedded game title.
func (m MyGame) DisplayName() string {
	if m.Game != nil && m.Game.Title != "" {
		return m.Game.Title
	}
	return "game #" + strconv.FormatInt(m.GameID, 10)
}

// Request returns a copy suitable for create and update calls: relation ids
// are filled from the embedded relations when missing, and the embedded
// relations are dropped.
func (g Game) Request() Game {
	out := g
	if out.CompanyID == 0 && g.Company != nil {
		out.CompanyID = g.Company.ID
	}
	if len(out.GenreIDs) == 0 && len(g.Genres) > 0 {
		out.GenreIDs = make([]int64, len(g.Genres))
		for i, x := range g.Genres {
			out.GenreIDs[i] = x.ID
		}
	}
	if len(out.ThemeIDs) == 0 && len(g.Themes) > 0 {
		out.ThemeIDs = make([]int64, len(g.Themes))
		for i, x := range g.Themes {
			out.ThemeIDs[i] = x.ID
		}
	}
	out.Company = nil
	out.Genres = nil
	out.Themes = nil
	return out
}
