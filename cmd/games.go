// ABOUTME: CRUD commands for catalogue games
// ABOUTME: Games carry a company, genres, and themes referenced by id

package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/ronaldobertolucci/my-games-cli/internal/client"
	"github.com/ronaldobertolucci/my-games-cli/internal/models"
)

// gameFlags are the editable fields of a game
type gameFlags struct {
	title       string
	description string
	releasedAt  string
	companyID   int64
	genreIDs    []int64
	themeIDs    []int64
}

func (f *gameFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.title, "title", "", "Game title")
	cmd.Flags().StringVar(&f.description, "description", "", "Short description")
	cmd.Flags().StringVar(&f.releasedAt, "released-at", "", "Release date (YYYY-MM-DD)")
	cmd.Flags().Int64Var(&f.companyID, "company", 0, "Company id")
	cmd.Flags().Int64SliceVar(&f.genreIDs, "genre", nil, "Genre id (repeatable)")
	cmd.Flags().Int64SliceVar(&f.themeIDs, "theme", nil, "Theme id (repeatable)")
}

// apply copies the flags that were set onto g
func (f *gameFlags) apply(g *models.Game, changed func(string) bool) {
	if changed("title") {
		g.Title = strings.TrimSpace(f.title)
	}
	if changed("description") {
		g.Description = f.description
	}
	if changed("released-at") {
		g.ReleasedAt = f.releasedAt
	}
	if changed("company") {
		g.CompanyID = f.companyID
	}
	if changed("genre") {
		g.GenreIDs = f.genreIDs
	}
	if changed("theme") {
		g.ThemeIDs = f.themeIDs
	}
}

// validateGame checks the fields the backend requires
func validateGame(g models.Game) error {
	if strings.TrimSpace(g.Title) == "" {
		return fmt.Errorf("--title is required")
	}
	if g.ReleasedAt != "" {
		if _, err := time.Parse("2006-01-02", g.ReleasedAt); err != nil {
			return fmt.Errorf("--released-at must be YYYY-MM-DD, got %q", g.ReleasedAt)
		}
	}
	if g.CompanyID <= 0 {
		return fmt.Errorf("--company is required")
	}
	return nil
}

func init() {
	gamesCmd := &cobra.Command{
		Use:   "games",
		Short: "Manage catalogue games",
	}

	var opts listOptions
	list := &cobra.Command{
		Use:   "list",
		Short: "List games",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			withSignals(func(ctx context.Context) int {
				return runGamesList(ctx, os.Stdout, opts)
			})
		},
	}
	opts.register(list, "title")

	get := &cobra.Command{
		Use:   "get <id>",
		Short: "Show one game",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			withSignals(func(ctx context.Context) int {
				return runGameGet(ctx, os.Stdout, args[0])
			})
		},
	}

	var createFlags gameFlags
	create := &cobra.Command{
		Use:   "create",
		Short: "Create a game",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			withSignals(func(ctx context.Context) int {
				var g models.Game
				createFlags.apply(&g, cmd.Flags().Changed)
				return runGameCreate(ctx, os.Stdout, g)
			})
		},
	}
	createFlags.register(create)

	var updateFlags gameFlags
	update := &cobra.Command{
		Use:   "update <id>",
		Short: "Change fields of a game",
		Long:  `Change fields of a game. Only the flags given are changed; the rest keep their current values.`,
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			withSignals(func(ctx context.Context) int {
				return runGameUpdate(ctx, os.Stdout, args[0], func(g *models.Game) {
					updateFlags.apply(g, cmd.Flags().Changed)
				})
			})
		},
	}
	updateFlags.register(update)

	del := &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a game",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			withSignals(func(ctx context.Context) int {
				return runDelete(ctx, os.Stdout, "game", args[0], func(ctx context.Context, env *appEnv, id int64) error {
					return env.client.Games().Delete(ctx, id)
				})
			})
		},
	}

	gamesCmd.AddCommand(list, get, create, update, del)
	rootCmd.AddCommand(gamesCmd)
}

func runGamesList(ctx context.Context, w io.Writer, opts listOptions) int {
	return withEnv(w, func(env *appEnv) int {
		page, size, err := opts.resolve(env.cfg.PageSize)
		if err != nil {
			return usageError(w, "%v", err)
		}

		result, err := env.client.Games().List(ctx, page, size, client.Filter{Search: strings.TrimSpace(opts.search)})
		if err != nil {
			return fail(w, err, "game")
		}

		if IsJSONOutput() {
			writeJSON(w, result)
		} else {
			fmt.Fprintln(w, formatGamesPage(result))
		}
		return 0
	})
}

func runGameGet(ctx context.Context, w io.Writer, idArg string) int {
	id, err := parseID(idArg)
	if err != nil {
		return usageError(w, "%v", err)
	}

	return withEnv(w, func(env *appEnv) int {
		g, err := env.client.Games().Get(ctx, id)
		if err != nil {
			return fail(w, err, "game")
		}
		printGame(w, g)
		return 0
	})
}

func runGameCreate(ctx context.Context, w io.Writer, g models.Game) int {
	if err := validateGame(g); err != nil {
		return usageError(w, "%v", err)
	}

	return withEnv(w, func(env *appEnv) int {
		saved, err := env.client.Games().Create(ctx, g.Request())
		if err != nil {
			return fail(w, err, "game")
		}
		printGame(w, saved)
		return 0
	})
}

// runGameUpdate fetches the game, applies edit, and saves it back
func runGameUpdate(ctx context.Context, w io.Writer, idArg string, edit func(*models.Game)) int {
	id, err := parseID(idArg)
	if err != nil {
		return usageError(w, "%v", err)
	}

	return withEnv(w, func(env *appEnv) int {
		games := env.client.Games()
		current, err := games.Get(ctx, id)
		if err != nil {
			return fail(w, err, "game")
		}

		g := current.Request()
		edit(&g)
		g.ID = id
		if err := validateGame(g); err != nil {
			return usageError(w, "%v", err)
		}

		saved, err := games.Update(ctx, g)
		if err != nil {
			return fail(w, err, "game")
		}
		printGame(w, saved)
		return 0
	})
}

func printGame(w io.Writer, g *models.Game) {
	if IsJSONOutput() {
		writeJSON(w, g)
		return
	}
	fmt.Fprintln(w, formatGameHuman(g))
}
