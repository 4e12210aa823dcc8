// ABOUTME: Output formatting shared by the resource commands
// ABOUTME: Renders pages as lipgloss tables for humans or indented JSON for scripts

package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/ronaldobertolucci/my-games-cli/internal/models"
)

// writeJSON writes v as indented JSON
func writeJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// formatTable renders rows under headers with a plain border
func formatTable(headers []string, rows [][]string) string {
	return table.New().
		Border(lipgloss.NormalBorder()).
		Headers(headers...).
		Rows(rows...).
		String()
}

// formatPageFooter summarizes the position within a listing
func formatPageFooter(number, totalPages, totalElements int) string {
	if totalElements == 0 {
		return "No results."
	}
	pages := totalPages
	if pages < 1 {
		pages = 1
	}
	return fmt.Sprintf("Page %d of %d (%d total)", number+1, pages, totalElements)
}

// formatNamedPage renders a page of id/name entities
func formatNamedPage[T models.Named](page *models.Page[T]) string {
	if len(page.Content) == 0 {
		return formatPageFooter(page.Number, page.TotalPages, page.TotalElements)
	}
	rows := make([][]string, len(page.Content))
	for i, item := range page.Content {
		rows[i] = []string{strconv.FormatInt(item.GetID(), 10), item.DisplayName()}
	}
	return formatTable([]string{"ID", "NAME"}, rows) + "\n" +
		formatPageFooter(page.Number, page.TotalPages, page.TotalElements)
}

// formatGamesPage renders a page of catalogue games
func formatGamesPage(page *models.Page[models.Game]) string {
	if len(page.Content) == 0 {
		return formatPageFooter(page.Number, page.TotalPages, page.TotalElements)
	}
	rows := make([][]string, len(page.Content))
	for i, g := range page.Content {
		company := ""
		if g.Company != nil {
			company = g.Company.Name
		}
		rows[i] = []string{strconv.FormatInt(g.ID, 10), g.Title, g.ReleasedAt, company}
	}
	return formatTable([]string{"ID", "TITLE", "RELEASED", "COMPANY"}, rows) + "\n" +
		formatPageFooter(page.Number, page.TotalPages, page.TotalElements)
}

// formatMyGamesPage renders a page of collection entries
func formatMyGamesPage(page *models.Page[models.MyGame]) string {
	if len(page.Content) == 0 {
		return formatPageFooter(page.Number, page.TotalPages, page.TotalElements)
	}
	rows := make([][]string, len(page.Content))
	for i, m := range page.Content {
		rows[i] = []string{
			strconv.FormatInt(m.ID, 10),
			m.DisplayName(),
			platformName(m),
			sourceName(m),
			m.Status.Label(),
		}
	}
	return formatTable([]string{"ID", "GAME", "PLATFORM", "SOURCE", "STATUS"}, rows) + "\n" +
		formatPageFooter(page.Number, page.TotalPages, page.TotalElements)
}

// formatGameHuman renders one game with its relations
func formatGameHuman(g *models.Game) string {
	company := "-"
	if g.Company != nil {
		company = g.Company.Name
	}
	genres := make([]string, len(g.Genres))
	for i, x := range g.Genres {
		genres[i] = x.Name
	}
	themes := make([]string, len(g.Themes))
	for i, x := range g.Themes {
		themes[i] = x.Name
	}

	return fmt.Sprintf(`ID:          %d
Title:       %s
Released:    %s
Company:     %s
Genres:      %s
Themes:      %s
Description: %s`,
		g.ID, g.Title, orDash(g.ReleasedAt), company,
		orDash(strings.Join(genres, ", ")), orDash(strings.Join(themes, ", ")),
		orDash(g.Description))
}

// formatMyGameHuman renders one collection entry
func formatMyGameHuman(m *models.MyGame) string {
	return fmt.Sprintf(`ID:       %d
Game:     %s
Platform: %s
Source:   %s
Status:   %s`,
		m.ID, m.DisplayName(), platformName(*m), sourceName(*m), m.Status.Label())
}

func platformName(m models.MyGame) string {
	if m.Platform != nil {
		return m.Platform.Name
	}
	return "#" + strconv.FormatInt(m.PlatformID, 10)
}

func sourceName(m models.MyGame) string {
	if m.Source != nil {
		return m.Source.Name
	}
	return "#" + strconv.FormatInt(m.SourceID, 10)
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

// parseID parses a positive entity id argument
func parseID(arg string) (int64, error) {
	id, err := strconv.ParseInt(arg, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid id %q", arg)
	}
	return id, nil
}
