// ABOUTME: Registry of the resources reachable from the menu
// ABOUTME: Binds each menu choice to its list columns, page fetcher and delete call

package tui

import (
	"context"
	"strconv"

	"github.com/charmbracelet/bubbles/table"

	"github.com/ronaldobertolucci/my-games-cli/internal/client"
	"github.com/ronaldobertolucci/my-games-cli/internal/models"
	"github.com/ronaldobertolucci/my-games-cli/internal/tui/listview"
	"github.com/ronaldobertolucci/my-games-cli/internal/tui/menu"
)

// resource describes one list screen
type resource struct {
	title    string
	singular string
	columns  []table.Column
	fetch    func(c *client.Client) listview.Fetcher
	remove   func(ctx context.Context, c *client.Client, id int64) error
	// save is set for name-only resources
	save   func(ctx context.Context, c *client.Client, id int64, name string) error
	status bool
}

var namedColumns = []table.Column{
	{Title: "ID", Width: 8},
	{Title: "Name", Width: 48},
}

func namedResource[T models.Named](
	title, singular string,
	svc func(*client.Client) *client.Resource[T],
	build func(id int64, name string) T,
) resource {
	return resource{
		title:    title,
		singular: singular,
		columns:  namedColumns,
		fetch: func(c *client.Client) listview.Fetcher {
			return pageFetcher(svc(c).List, func(item T) []string {
				return []string{idCell(item.GetID()), item.DisplayName()}
			})
		},
		remove: func(ctx context.Context, c *client.Client, id int64) error {
			return svc(c).Delete(ctx, id)
		},
		save: func(ctx context.Context, c *client.Client, id int64, name string) error {
			var err error
			if id == 0 {
				_, err = svc(c).Create(ctx, build(0, name))
			} else {
				_, err = svc(c).Update(ctx, build(id, name))
			}
			return err
		},
	}
}

type listFunc[T any] func(ctx context.Context, page, size int, f client.Filter) (*models.Page[T], error)

// pageFetcher adapts a service List call to the list screen
func pageFetcher[T models.Named](list listFunc[T], cells func(T) []string) listview.Fetcher {
	return func(ctx context.Context, q listview.Query) (listview.Result, error) {
		page, err := list(ctx, q.Page, q.Size, client.Filter{Search: q.Search})
		if err != nil {
			return listview.Result{}, err
		}
		result := listview.Result{
			Info: listview.Info{
				Number:        page.Number,
				TotalPages:    page.TotalPages,
				TotalElements: page.TotalElements,
				First:         page.First,
				Last:          page.Last,
			},
		}
		for _, item := range page.Content {
			result.Rows = append(result.Rows, listview.Row{
				ID:    item.GetID(),
				Cells: cells(item),
				Item:  item,
			})
		}
		return result, nil
	}
}

func idCell(id int64) string {
	return strconv.FormatInt(id, 10)
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

var resources = map[menu.Choice]resource{
	menu.ChoiceCompanies: namedResource("Companies", "company", (*client.Client).Companies,
		func(id int64, name string) models.Company { return models.Company{ID: id, Name: name} }),
	menu.ChoicePlatforms: namedResource("Platforms", "platform", (*client.Client).Platforms,
		func(id int64, name string) models.Platform { return models.Platform{ID: id, Name: name} }),
	menu.ChoiceGenres: namedResource("Genres", "genre", (*client.Client).Genres,
		func(id int64, name string) models.Genre { return models.Genre{ID: id, Name: name} }),
	menu.ChoiceThemes: namedResource("Themes", "theme", (*client.Client).Themes,
		func(id int64, name string) models.Theme { return models.Theme{ID: id, Name: name} }),
	menu.ChoiceSources: namedResource("Sources", "source", (*client.Client).Sources,
		func(id int64, name string) models.Source { return models.Source{ID: id, Name: name} }),
	menu.ChoiceGames: {
		title:    "Games",
		singular: "game",
		columns: []table.Column{
			{Title: "ID", Width: 8},
			{Title: "Title", Width: 36},
			{Title: "Company", Width: 20},
			{Title: "Released", Width: 12},
		},
		fetch: func(c *client.Client) listview.Fetcher {
			return pageFetcher(c.Games().List, func(g models.Game) []string {
				company := ""
				if g.Company != nil {
					company = g.Company.Name
				}
				return []string{idCell(g.ID), g.Title, orDash(company), orDash(g.ReleasedAt)}
			})
		},
		remove: func(ctx context.Context, c *client.Client, id int64) error {
			return c.Games().Delete(ctx, id)
		},
	},
	menu.ChoiceMyGames: {
		title:    "My games",
		singular: "entry",
		columns: []table.Column{
			{Title: "ID", Width: 8},
			{Title: "Game", Width: 30},
			{Title: "Platform", Width: 14},
			{Title: "Source", Width: 14},
			{Title: "Status", Width: 14},
		},
		fetch: func(c *client.Client) listview.Fetcher {
			return pageFetcher(c.MyGames().List, func(m models.MyGame) []string {
				platform, source := "", ""
				if m.Platform != nil {
					platform = m.Platform.Name
				}
				if m.Source != nil {
					source = m.Source.Name
				}
				return []string{idCell(m.ID), m.DisplayName(), orDash(platform), orDash(source), m.Status.Label()}
			})
		},
		remove: func(ctx context.Context, c *client.Client, id int64) error {
			return c.MyGames().Delete(ctx, id)
		},
		status: true,
	},
}
