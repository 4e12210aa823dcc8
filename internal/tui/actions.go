// ABOUTME: Backend operations started from the TUI as bubbletea commands
// ABOUTME: Loads form reference data and saves games with their quick-created relations

package tui

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/ronaldobertolucci/my-games-cli/internal/client"
	"github.com/ronaldobertolucci/my-games-cli/internal/models"
	"github.com/ronaldobertolucci/my-games-cli/internal/tui/forms"
)

// refPageSize is how many options each select in a form offers
const refPageSize = 100

// opError records which resource an operation failed on, so quick-create
// failures are reported against the right noun
type opError struct {
	resource string
	err      error
}

func (e *opError) Error() string {
	return fmt.Sprintf("%s: %v", e.resource, e.err)
}

func (e *opError) Unwrap() error {
	return e.err
}

func firstPage[T any](ctx context.Context, resource string, r *client.Resource[T], dst *[]T) func() error {
	return func() error {
		page, err := r.List(ctx, 0, refPageSize, client.Filter{})
		if err != nil {
			return &opError{resource: resource, err: err}
		}
		*dst = page.Content
		return nil
	}
}

// loadGameRefs fetches companies, genres and themes concurrently
func loadGameRefs(ctx context.Context, c *client.Client) (forms.GameRefs, error) {
	var refs forms.GameRefs
	g, ctx := errgroup.WithContext(ctx)
	g.Go(firstPage(ctx, "company", c.Companies(), &refs.Companies))
	g.Go(firstPage(ctx, "genre", c.Genres(), &refs.Genres))
	g.Go(firstPage(ctx, "theme", c.Themes(), &refs.Themes))
	if err := g.Wait(); err != nil {
		return forms.GameRefs{}, err
	}
	return refs, nil
}

// loadMyGameRefs fetches games, platforms and sources concurrently
func loadMyGameRefs(ctx context.Context, c *client.Client) (forms.MyGameRefs, error) {
	var refs forms.MyGameRefs
	g, ctx := errgroup.WithContext(ctx)
	g.Go(firstPage(ctx, "game", c.Games(), &refs.Games))
	g.Go(firstPage(ctx, "platform", c.Platforms(), &refs.Platforms))
	g.Go(firstPage(ctx, "source", c.Sources(), &refs.Sources))
	if err := g.Wait(); err != nil {
		return forms.MyGameRefs{}, err
	}
	return refs, nil
}

func createNamed[T any](ctx context.Context, resource string, r *client.Resource[T], entity T, id func(T) int64, dst *int64) func() error {
	return func() error {
		created, err := r.Create(ctx, entity)
		if err != nil {
			return &opError{resource: resource, err: err}
		}
		*dst = id(*created)
		return nil
	}
}

// saveGame creates the quick-create relations concurrently, then creates or
// updates the game with their ids.
func saveGame(ctx context.Context, c *client.Client, msg forms.GameSubmittedMsg) error {
	game := msg.Game
	genreIDs := make([]int64, len(msg.NewGenres))
	themeIDs := make([]int64, len(msg.NewThemes))

	g, gctx := errgroup.WithContext(ctx)
	if msg.NewCompany != "" {
		g.Go(createNamed(gctx, "company", c.Companies(), models.Company{Name: msg.NewCompany},
			func(co models.Company) int64 { return co.ID }, &game.CompanyID))
	}
	for i, name := range msg.NewGenres {
		g.Go(createNamed(gctx, "genre", c.Genres(), models.Genre{Name: name},
			func(ge models.Genre) int64 { return ge.ID }, &genreIDs[i]))
	}
	for i, name := range msg.NewThemes {
		g.Go(createNamed(gctx, "theme", c.Themes(), models.Theme{Name: name},
			func(th models.Theme) int64 { return th.ID }, &themeIDs[i]))
	}
	if err := g.Wait(); err != nil {
		return err
	}

	game.GenreIDs = append(append([]int64{}, game.GenreIDs...), genreIDs...)
	game.ThemeIDs = append(append([]int64{}, game.ThemeIDs...), themeIDs...)

	var err error
	if game.ID == 0 {
		_, err = c.Games().Create(ctx, game)
	} else {
		_, err = c.Games().Update(ctx, game)
	}
	return err
}
