// ABOUTME: Resource and status icons with Nerd Font glyphs and Unicode fallbacks
// ABOUTME: The icon set follows MYGAMES_ICONS or the detected terminal

package icons

import (
	"os"
	"strings"
	"sync/atomic"
)

// Mode selects Nerd Font glyphs or plain Unicode
type Mode string

const (
	ModeAuto  Mode = "auto"
	ModeNerd  Mode = "nerd"
	ModePlain Mode = "plain"
)

// ParseMode accepts auto, nerd, or plain in any case; empty means auto.
func ParseMode(s string) (Mode, bool) {
	switch m := Mode(strings.ToLower(strings.TrimSpace(s))); m {
	case "":
		return ModeAuto, true
	case ModeAuto, ModeNerd, ModePlain:
		return m, true
	}
	return "", false
}

// bundledGlyphTerminals ship Nerd Font symbols as a fallback font, so the
// glyphs render whatever font the user picked.
var bundledGlyphTerminals = []string{"wezterm", "kitty", "ghostty"}

// Detect reports whether auto mode should use Nerd Font glyphs, reading the
// terminal identity through getenv.
func Detect(getenv func(string) string) bool {
	term := strings.ToLower(getenv("TERM"))
	if term == "linux" || term == "dumb" {
		return false
	}
	program := strings.ToLower(getenv("TERM_PROGRAM"))
	for _, t := range bundledGlyphTerminals {
		if strings.Contains(program, t) || strings.Contains(term, t) {
			return true
		}
	}
	return false
}

func resolve(m Mode, getenv func(string) string) bool {
	switch m {
	case ModeNerd:
		return true
	case ModePlain:
		return false
	}
	return Detect(getenv)
}

const (
	unset int32 = iota
	nerd
	plain
)

var state atomic.Int32

// Configure fixes the icon set for the rest of the process.
func Configure(m Mode) {
	state.Store(toState(resolve(m, os.Getenv)))
}

func toState(useNerd bool) int32 {
	if useNerd {
		return nerd
	}
	return plain
}

// HasNerdFonts reports whether Nerd Font glyphs are in use. Without a prior
// Configure call the terminal is detected once.
func HasNerdFonts() bool {
	if state.Load() == unset {
		state.CompareAndSwap(unset, toState(Detect(os.Getenv)))
	}
	return state.Load() == nerd
}

// Icon represents an icon with Nerd Font and Unicode fallback variants
type Icon struct {
	NerdFont string
	Fallback string
}

// String returns the appropriate icon based on font availability
func (i Icon) String() string {
	if HasNerdFonts() {
		return i.NerdFont
	}
	return i.Fallback
}

// Icon definitions - Nerd Font codepoints with Unicode fallbacks
var (
	// Catalogue resources
	Company    = Icon{"󰒓", "▣"} // nf-md-domain
	Platform   = Icon{"󰊴", "▢"} // nf-md-controller_classic
	Genre      = Icon{"󰓹", "◆"} // nf-md-tag
	Theme      = Icon{"󰏘", "◇"} // nf-md-palette
	Source     = Icon{"󰓓", "◎"} // nf-md-storefront
	Game       = Icon{"󰮂", "●"} // nf-md-gamepad_variant
	Collection = Icon{"󰂺", "■"} // nf-md-bookshelf

	// Status indicators
	CheckOK  = Icon{"", "✓"} // nf-oct-check_circle
	Warning  = Icon{"", "⚠"} // nf-oct-alert
	Critical = Icon{"", "✗"} // nf-oct-x_circle
	Info     = Icon{"", "ℹ"} // nf-oct-info

	// Actions
	Search  = Icon{"", "/"}  // nf-oct-search
	Refresh = Icon{"󰑓", "↻"} // nf-md-refresh
	Back    = Icon{"󰁍", "←"} // nf-md-arrow_left
	Quit    = Icon{"󰗼", "×"} // nf-md-exit_to_app
	Logout  = Icon{"󰍃", "⏏"} // nf-md-logout

	// Application
	App  = Icon{"󰊖", "◈"} // nf-md-google_controller
	User = Icon{"", "☺"} // nf-oct-person
)
