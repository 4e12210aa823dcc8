// ABOUTME: Commands for the personal game collection
// ABOUTME: List with filters, add entries, change status, and remove entries

package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ronaldobertolucci/my-games-cli/internal/client"
	"github.com/ronaldobertolucci/my-games-cli/internal/models"
)

// myGamesFilterFlags narrow a collection listing
type myGamesFilterFlags struct {
	listOptions
	platformID int64
	sourceID   int64
	statuses   string
}

// filter builds the client filter, rejecting unknown statuses
func (f myGamesFilterFlags) filter() (client.Filter, error) {
	statuses, err := models.ParseStatusList(f.statuses)
	if err != nil {
		return client.Filter{}, err
	}
	return client.Filter{
		Search:     strings.TrimSpace(f.search),
		PlatformID: f.platformID,
		SourceID:   f.sourceID,
		Statuses:   statuses,
	}, nil
}

func init() {
	myGamesCmd := &cobra.Command{
		Use:     "my-games",
		Aliases: []string{"collection"},
		Short:   "Manage your game collection",
	}

	var filters myGamesFilterFlags
	list := &cobra.Command{
		Use:   "list",
		Short: "List games in your collection",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			withSignals(func(ctx context.Context) int {
				return runMyGamesList(ctx, os.Stdout, filters)
			})
		},
	}
	filters.register(list, "title")
	list.Flags().Int64Var(&filters.platformID, "platform", 0, "Filter by platform id")
	list.Flags().Int64Var(&filters.sourceID, "source", 0, "Filter by source id")
	list.Flags().StringVar(&filters.statuses, "status", "", "Filter by status, comma-separated (e.g. PLAYING,COMPLETED)")

	get := &cobra.Command{
		Use:   "get <id>",
		Short: "Show one collection entry",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			withSignals(func(ctx context.Context) int {
				return runMyGameGet(ctx, os.Stdout, args[0])
			})
		},
	}

	var entry models.MyGame
	var status string
	add := &cobra.Command{
		Use:   "add",
		Short: "Add a game to your collection",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			withSignals(func(ctx context.Context) int {
				return runMyGameAdd(ctx, os.Stdout, entry, status)
			})
		},
	}
	add.Flags().Int64Var(&entry.GameID, "game", 0, "Game id")
	add.Flags().Int64Var(&entry.PlatformID, "platform", 0, "Platform id")
	add.Flags().Int64Var(&entry.SourceID, "source", 0, "Source id")
	add.Flags().StringVar(&status, "status", string(models.StatusNotPlayed), "Initial status")

	setStatus := &cobra.Command{
		Use:   "status <id> <status>",
		Short: "Change the status of a collection entry",
		Long: `Change the status of a collection entry.

Statuses: NOT_PLAYED, PLAYING, COMPLETED, ABANDONED, ON_HOLD, WISHLIST`,
		Args: cobra.ExactArgs(2),
		Run: func(cmd *cobra.Command, args []string) {
			withSignals(func(ctx context.Context) int {
				return runMyGameStatus(ctx, os.Stdout, args[0], args[1])
			})
		},
	}

	del := &cobra.Command{
		Use:   "delete <id>",
		Short: "Remove a game from your collection",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			withSignals(func(ctx context.Context) int {
				return runDelete(ctx, os.Stdout, "entry", args[0], func(ctx context.Context, env *appEnv, id int64) error {
					return env.client.MyGames().Delete(ctx, id)
				})
			})
		},
	}

	myGamesCmd.AddCommand(list, get, add, setStatus, del)
	rootCmd.AddCommand(myGamesCmd)
}

func runMyGamesList(ctx context.Context, w io.Writer, flags myGamesFilterFlags) int {
	f, err := flags.filter()
	if err != nil {
		return usageError(w, "%v", err)
	}

	return withEnv(w, func(env *appEnv) int {
		page, size, err := flags.resolve(env.cfg.PageSize)
		if err != nil {
			return usageError(w, "%v", err)
		}

		result, err := env.client.MyGames().List(ctx, page, size, f)
		if err != nil {
			return fail(w, err, "entry")
		}

		if IsJSONOutput() {
			writeJSON(w, result)
		} else {
			fmt.Fprintln(w, formatMyGamesPage(result))
		}
		return 0
	})
}

func runMyGameGet(ctx context.Context, w io.Writer, idArg string) int {
	id, err := parseID(idArg)
	if err != nil {
		return usageError(w, "%v", err)
	}

	return withEnv(w, func(env *appEnv) int {
		m, err := env.client.MyGames().Get(ctx, id)
		if err != nil {
			return fail(w, err, "entry")
		}
		printMyGame(w, m)
		return 0
	})
}

func runMyGameAdd(ctx context.Context, w io.Writer, entry models.MyGame, status string) int {
	st, err := models.ParseStatus(status)
	if err != nil {
		return usageError(w, "%v", err)
	}
	if entry.GameID <= 0 || entry.PlatformID <= 0 || entry.SourceID <= 0 {
		return usageError(w, "--game, --platform and --source are required")
	}
	entry.Status = st

	return withEnv(w, func(env *appEnv) int {
		saved, err := env.client.MyGames().Create(ctx, entry)
		if err != nil {
			return fail(w, err, "entry")
		}
		printMyGame(w, saved)
		return 0
	})
}

func runMyGameStatus(ctx context.Context, w io.Writer, idArg, status string) int {
	id, err := parseID(idArg)
	if err != nil {
		return usageError(w, "%v", err)
	}
	st, err := models.ParseStatus(status)
	if err != nil {
		return usageError(w, "%v", err)
	}

	return withEnv(w, func(env *appEnv) int {
		saved, err := env.client.MyGames().UpdateStatus(ctx, id, st)
		if err != nil {
			return fail(w, err, "entry")
		}
		printMyGame(w, saved)
		return 0
	})
}

func printMyGame(w io.Writer, m *models.MyGame) {
	if IsJSONOutput() {
		writeJSON(w, m)
		return
	}
	fmt.Fprintln(w, formatMyGameHuman(m))
}
