package theme

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/atomicstack/panegrid/internal/surface"
)

// Styles describes reusable Lip Gloss styles shared across the UI.
type Styles struct {
	Title        *lipgloss.Style
	Cell         *lipgloss.Style
	EmptyCell    *lipgloss.Style
	SelectedCell *lipgloss.Style
	Amount       *lipgloss.Style
	Separator    *lipgloss.Style
	Error        *lipgloss.Style
	Info         *lipgloss.Style
	Status       *lipgloss.Style
	Footer       *lipgloss.Style
	FilterPrompt *lipgloss.Style
	DetailTitle  *lipgloss.Style
	DetailBody   *lipgloss.Style
	Loading      *lipgloss.Style
}

var defaultStyles = Styles{
	Title: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Bold(true),
	),
	Cell: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("249")),
	),
	EmptyCell: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("238")),
	),
	SelectedCell: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("255")).Background(lipgloss.Color("238")).Bold(true),
	),
	Amount: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("250")).Bold(true),
	),
	Separator: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("240")),
	),
	Error: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true),
	),
	Info: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("249")),
	),
	Status: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
	),
	Footer: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("249")),
	),
	FilterPrompt: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("34")).Bold(true),
	),
	DetailTitle: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Bold(true),
	),
	DetailBody: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("250")),
	),
	Loading: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("33")).Italic(true),
	),
}

// materialColors tints cell labels by what they show.
var materialColors = map[surface.Material]lipgloss.Color{
	surface.Stone:       "245",
	surface.Paper:       "255",
	surface.Book:        "137",
	surface.Chest:       "136",
	surface.Barrier:     "160",
	surface.Arrow:       "250",
	surface.Clock:       "33",
	surface.Compass:     "167",
	surface.Emerald:     "35",
	surface.Diamond:     "51",
	surface.GoldIngot:   "220",
	surface.IronIngot:   "252",
	surface.Apple:       "196",
	surface.Bread:       "179",
	surface.Sword:       "153",
	surface.Pickaxe:     "109",
	surface.Bow:         "130",
	surface.Shield:      "67",
	surface.Potion:      "171",
	surface.Redstone:    "124",
	surface.LimeDye:     "118",
	surface.GrayDye:     "242",
	surface.Hopper:      "239",
	surface.GlassPane:   "237",
	surface.BlackGlass:  "235",
	surface.PlayerHead:  "180",
	surface.WritableMap: "187",
}

// Default exposes the standard style set used across the application.
func Default() *Styles {
	return &defaultStyles
}

// Material returns the label style for cells showing m.
func (s *Styles) Material(m surface.Material) lipgloss.Style {
	base := lipgloss.NewStyle()
	if s.Cell != nil {
		base = s.Cell.Copy()
	}
	if m == surface.Air {
		if s.EmptyCell != nil {
			return s.EmptyCell.Copy()
		}
		return base
	}
	if c, ok := materialColors[m]; ok {
		return base.Foreground(c)
	}
	return base
}

func ptr(style lipgloss.Style) *lipgloss.Style {
	return &style
}
