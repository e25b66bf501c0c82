// Package ui implements the bubbletea terminal interface for the notes
// client: the list, editor and viewer views plus the delete overlay.
package ui

import (
	"github.com/charmbracelet/lipgloss"
)

// Theme is the color scheme used by all views.
type Theme struct {
	Foreground    lipgloss.Color
	ForegroundDim lipgloss.Color
	Primary       lipgloss.Color
	Accent        lipgloss.Color
	Success       lipgloss.Color
	Error         lipgloss.Color
	Border        lipgloss.Color
	Selection     lipgloss.Color
}

// TokyoNight is the default color theme.
var TokyoNight = Theme{
	Foreground:    lipgloss.Color("#c0caf5"),
	ForegroundDim: lipgloss.Color("#565f89"),
	Primary:       lipgloss.Color("#7aa2f7"),
	Accent:        lipgloss.Color("#7dcfff"),
	Success:       lipgloss.Color("#9ece6a"),
	Error:         lipgloss.Color("#f7768e"),
	Border:        lipgloss.Color("#3b4261"),
	Selection:     lipgloss.Color("#33467c"),
}

// Styles holds the prebuilt lipgloss styles for the active theme.
type Styles struct {
	Title      lipgloss.Style
	Header     lipgloss.Style
	ListItem   lipgloss.Style
	Selected   lipgloss.Style
	TagBadge   lipgloss.Style
	Dim        lipgloss.Style
	StatusErr  lipgloss.Style
	StatusInfo lipgloss.Style
	Dialog     lipgloss.Style
	Help       lipgloss.Style
}

// NewStyles builds the style set for a theme.
func NewStyles(theme Theme) *Styles {
	return &Styles{
		Title: lipgloss.NewStyle().
			Foreground(theme.Primary).
			Bold(true),
		Header: lipgloss.NewStyle().
			Foreground(theme.Accent),
		ListItem: lipgloss.NewStyle().
			Foreground(theme.Foreground).
			PaddingLeft(2),
		Selected: lipgloss.NewStyle().
			Foreground(theme.Foreground).
			Background(theme.Selection).
			Bold(true).
			PaddingLeft(1),
		TagBadge: lipgloss.NewStyle().
			Foreground(theme.Accent),
		Dim: lipgloss.NewStyle().
			Foreground(theme.ForegroundDim),
		StatusErr: lipgloss.NewStyle().
			Foreground(theme.Error),
		StatusInfo: lipgloss.NewStyle().
			Foreground(theme.Success),
		Dialog: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(theme.Error).
			Padding(1, 2),
		Help: lipgloss.NewStyle().
			Foreground(theme.ForegroundDim),
	}
}
