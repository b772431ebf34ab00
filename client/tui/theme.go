package tui

import (
	"github.com/charmbracelet/lipgloss"

	"todo-app/client/view"
)

// Accent palettes, keyed by the persisted settings value.
var palettes = map[string]lipgloss.Color{
	"indigo":   lipgloss.Color("63"),
	"moss":     lipgloss.Color("42"),
	"charcoal": lipgloss.Color("245"),
	"punchy":   lipgloss.Color("205"),
	"queater":  lipgloss.Color("214"),
}

// PaletteNames is the cycle order for the palette key.
var PaletteNames = []string{"indigo", "moss", "charcoal", "punchy", "queater"}

// Modes is the cycle order for the mode key.
var Modes = []string{"system", "dark", "light"}

const (
	boxChecked   = "☑"
	boxUnchecked = "☐"
	noteGlyph    = "✎"
)

// Styles bundles every lipgloss style the TUI renders with.
type Styles struct {
	Title    lipgloss.Style
	Accent   lipgloss.Style
	Success  lipgloss.Style
	Error    lipgloss.Style
	Muted    lipgloss.Style
	Done     lipgloss.Style
	Selected lipgloss.Style
	Help     lipgloss.Style
}

// NewStyles builds the style set for the given settings.
func NewStyles(settings view.Settings) Styles {
	accent, ok := palettes[settings.Palette]
	if !ok {
		accent = palettes["indigo"]
	}
	return Styles{
		Title:    lipgloss.NewStyle().Bold(true),
		Accent:   lipgloss.NewStyle().Foreground(accent),
		Success:  lipgloss.NewStyle().Foreground(lipgloss.Color("42")),
		Error:    lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true),
		Muted:    lipgloss.NewStyle().Faint(true),
		Done:     lipgloss.NewStyle().Faint(true).Strikethrough(true),
		Selected: lipgloss.NewStyle().Bold(true).Foreground(accent),
		Help:     lipgloss.NewStyle().Faint(true),
	}
}
