// ABOUTME: CRUD commands for the named lookup resources
// ABOUTME: companies, platforms, genres, themes, and sources share one generic command set

package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/ronaldobertolucci/my-games-cli/internal/client"
	"github.com/ronaldobertolucci/my-games-cli/internal/models"
)

// namedResource describes a lookup collection whose entities are just an id and a name.
type namedResource[T models.Named] struct {
	use      string // command name, e.g. "companies"
	singular string // noun used in messages, e.g. "company"
	service  func(*client.Client) *client.Resource[T]
	build    func(id int64, name string) T
}

var (
	companyResource = namedResource[models.Company]{
		use: "companies", singular: "company",
		service: (*client.Client).Companies,
		build:   func(id int64, name string) models.Company { return models.Company{ID: id, Name: name} },
	}
	platformResource = namedResource[models.Platform]{
		use: "platforms", singular: "platform",
		service: (*client.Client).Platforms,
		build:   func(id int64, name string) models.Platform { return models.Platform{ID: id, Name: name} },
	}
	genreResource = namedResource[models.Genre]{
		use: "genres", singular: "genre",
		service: (*client.Client).Genres,
		build:   func(id int64, name string) models.Genre { return models.Genre{ID: id, Name: name} },
	}
	themeResource = namedResource[models.Theme]{
		use: "themes", singular: "theme",
		service: (*client.Client).Themes,
		build:   func(id int64, name string) models.Theme { return models.Theme{ID: id, Name: name} },
	}
	sourceResource = namedResource[models.Source]{
		use: "sources", singular: "source",
		service: (*client.Client).Sources,
		build:   func(id int64, name string) models.Source { return models.Source{ID: id, Name: name} },
	}
)

func init() {
	rootCmd.AddCommand(
		newNamedResourceCmd(companyResource),
		newNamedResourceCmd(platformResource),
		newNamedResourceCmd(genreResource),
		newNamedResourceCmd(themeResource),
		newNamedResourceCmd(sourceResource),
	)
}

// listOptions are the paging flags shared by every list command
type listOptions struct {
	page   int
	size   int
	search string
}

func (o *listOptions) register(cmd *cobra.Command, searchFlag string) {
	cmd.Flags().IntVar(&o.page, "page", 1, "Page number, starting at 1")
	cmd.Flags().IntVar(&o.size, "size", 0, "Page size (default MYGAMES_PAGE_SIZE)")
	cmd.Flags().StringVar(&o.search, searchFlag, "", "Filter by "+searchFlag)
}

// resolve converts the 1-based page flag to the backend's 0-based index and
// fills in the configured page size.
func (o listOptions) resolve(defaultSize int) (page, size int, err error) {
	if o.page < 1 {
		return 0, 0, fmt.Errorf("--page must be at least 1")
	}
	size = o.size
	if size == 0 {
		size = defaultSize
	}
	if size < 1 || size > 100 {
		return 0, 0, fmt.Errorf("--size must be between 1 and 100")
	}
	return o.page - 1, size, nil
}

func withSignals(fn func(ctx context.Context) int) {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	code := fn(ctx)
	cancel()
	exit(code)
}

func newNamedResourceCmd[T models.Named](r namedResource[T]) *cobra.Command {
	parent := &cobra.Command{
		Use:   r.use,
		Short: fmt.Sprintf("Manage %s", r.use),
	}

	var opts listOptions
	list := &cobra.Command{
		Use:   "list",
		Short: fmt.Sprintf("List %s", r.use),
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			withSignals(func(ctx context.Context) int {
				return runNamedList(ctx, os.Stdout, r, opts)
			})
		},
	}
	opts.register(list, "name")

	get := &cobra.Command{
		Use:   "get <id>",
		Short: fmt.Sprintf("Show one %s", r.singular),
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			withSignals(func(ctx context.Context) int {
				return runNamedGet(ctx, os.Stdout, r, args[0])
			})
		},
	}

	create := &cobra.Command{
		Use:   "create <name>",
		Short: fmt.Sprintf("Create a %s", r.singular),
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			withSignals(func(ctx context.Context) int {
				return runNamedSave(ctx, os.Stdout, r, "", args[0])
			})
		},
	}

	update := &cobra.Command{
		Use:   "update <id> <name>",
		Short: fmt.Sprintf("Rename a %s", r.singular),
		Args:  cobra.ExactArgs(2),
		Run: func(cmd *cobra.Command, args []string) {
			withSignals(func(ctx context.Context) int {
				return runNamedSave(ctx, os.Stdout, r, args[0], args[1])
			})
		},
	}

	del := &cobra.Command{
		Use:   "delete <id>",
		Short: fmt.Sprintf("Delete a %s", r.singular),
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			withSignals(func(ctx context.Context) int {
				return runDelete(ctx, os.Stdout, r.singular, args[0], func(ctx context.Context, env *appEnv, id int64) error {
					return r.service(env.client).Delete(ctx, id)
				})
			})
		},
	}

	parent.AddCommand(list, get, create, update, del)
	return parent
}

// runNamedList prints one page of a named resource and returns exit code
func runNamedList[T models.Named](ctx context.Context, w io.Writer, r namedResource[T], opts listOptions) int {
	return withEnv(w, func(env *appEnv) int {
		page, size, err := opts.resolve(env.cfg.PageSize)
		if err != nil {
			return usageError(w, "%v", err)
		}

		result, err := r.service(env.client).List(ctx, page, size, client.Filter{Search: strings.TrimSpace(opts.search)})
		if err != nil {
			return fail(w, err, r.singular)
		}

		if IsJSONOutput() {
			writeJSON(w, result)
		} else {
			fmt.Fprintln(w, formatNamedPage(result))
		}
		return 0
	})
}

// runNamedGet prints one entity and returns exit code
func runNamedGet[T models.Named](ctx context.Context, w io.Writer, r namedResource[T], idArg string) int {
	id, err := parseID(idArg)
	if err != nil {
		return usageError(w, "%v", err)
	}

	return withEnv(w, func(env *appEnv) int {
		item, err := r.service(env.client).Get(ctx, id)
		if err != nil {
			return fail(w, err, r.singular)
		}

		if IsJSONOutput() {
			writeJSON(w, item)
		} else {
			fmt.Fprintf(w, "%d\t%s\n", (*item).GetID(), (*item).DisplayName())
		}
		return 0
	})
}

// runNamedSave creates (empty idArg) or renames an entity and returns exit code
func runNamedSave[T models.Named](ctx context.Context, w io.Writer, r namedResource[T], idArg, name string) int {
	name = strings.TrimSpace(name)
	if name == "" {
		return usageError(w, "name must not be empty")
	}

	var id int64
	if idArg != "" {
		var err error
		if id, err = parseID(idArg); err != nil {
			return usageError(w, "%v", err)
		}
	}

	return withEnv(w, func(env *appEnv) int {
		svc := r.service(env.client)
		entity := r.build(id, name)

		var (
			saved *T
			err   error
			verb  = "Created"
		)
		if id == 0 {
			saved, err = svc.Create(ctx, entity)
		} else {
			saved, err = svc.Update(ctx, entity)
			verb = "Updated"
		}
		if err != nil {
			return fail(w, err, r.singular)
		}

		if IsJSONOutput() {
			writeJSON(w, saved)
		} else {
			fmt.Fprintf(w, "%s %s %d: %s\n", verb, r.singular, (*saved).GetID(), (*saved).DisplayName())
		}
		return 0
	})
}

// runDelete deletes an entity by id and returns exit code
func runDelete(ctx context.Context, w io.Writer, singular, idArg string, del func(context.Context, *appEnv, int64) error) int {
	id, err := parseID(idArg)
	if err != nil {
		return usageError(w, "%v", err)
	}

	return withEnv(w, func(env *appEnv) int {
		if err := del(ctx, env, id); err != nil {
			return fail(w, err, singular)
		}

		if IsJSONOutput() {
			writeJSON(w, map[string]interface{}{"deleted": id})
		} else {
			fmt.Fprintf(w, "Deleted %s %d\n", singular, id)
		}
		return 0
	})
}
