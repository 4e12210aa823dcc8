// ABOUTME: Builds huh select options from catalogue entities
// ABOUTME: Shared by the game and my-game forms

package forms

import (
	"github.com/charmbracelet/huh"

	"github.com/ronaldobertolucci/my-games-cli/internal/models"
)

// newEntityID is the select value for "create a new one"
const newEntityID int64 = 0

func entityOptions[T models.Named](items []T) []huh.Option[int64] {
	opts := make([]huh.Option[int64], 0, len(items))
	for _, item := range items {
		opts = append(opts, huh.NewOption(item.DisplayName(), item.GetID()))
	}
	return opts
}

// selectedOptions marks the options whose value is in ids
func selectedOptions(opts []huh.Option[int64], ids []int64) []huh.Option[int64] {
	set := make(map[int64]bool, len(ids))
	for _, id := range ids {
		set[id] = true
	}
	for i := range opts {
		if set[opts[i].Value] {
			opts[i] = opts[i].Selected(true)
		}
	}
	return opts
}

func statusOptions() []huh.Option[models.Status] {
	opts := make([]huh.Option[models.Status], 0, len(models.Statuses))
	for _, s := range models.Statuses {
		opts = append(opts, huh.NewOption(s.Label(), s))
	}
	return opts
}
