package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
)

type keyMap struct {
	Up          key.Binding
	Down        key.Binding
	Left        key.Binding
	Right       key.Binding
	Click       key.Binding
	RightClick  key.Binding
	MiddleClick key.Binding
	NextPage    key.Binding
	PrevPage    key.Binding
	Search      key.Binding
	Refresh     key.Binding
	Inspect     key.Binding
	Quit        key.Binding
}

func defaultKeys() keyMap {
	return keyMap{
		Up:          key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		Down:        key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		Left:        key.NewBinding(key.WithKeys("left", "h"), key.WithHelp("←/h", "left")),
		Right:       key.NewBinding(key.WithKeys("right", "l"), key.WithHelp("→/l", "right")),
		Click:       key.NewBinding(key.WithKeys("enter", " "), key.WithHelp("enter", "click")),
		RightClick:  key.NewBinding(key.WithKeys("x"), key.WithHelp("x", "right click")),
		MiddleClick: key.NewBinding(key.WithKeys("m"), key.WithHelp("m", "middle click")),
		NextPage:    key.NewBinding(key.WithKeys("]", "pgdown"), key.WithHelp("]", "next page")),
		PrevPage:    key.NewBinding(key.WithKeys("[", "pgup"), key.WithHelp("[", "previous page")),
		Search:      key.NewBinding(key.WithKeys("/"), key.WithHelp("/", "search")),
		Refresh:     key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "refresh")),
		Inspect:     key.NewBinding(key.WithKeys("i"), key.WithHelp("i", "panes")),
		Quit:        key.NewBinding(key.WithKeys("q", "esc", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

// help renders the footer from the enabled bindings.
func (k keyMap) help() string {
	bindings := []key.Binding{k.Click, k.RightClick, k.PrevPage, k.NextPage, k.Search, k.Refresh, k.Inspect, k.Quit}
	parts := make([]string, 0, len(bindings))
	for _, b := range bindings {
		if !b.Enabled() {
			continue
		}
		h := b.Help()
		parts = append(parts, h.Key+" "+h.Desc)
	}
	return strings.Join(parts, "  ")
}
