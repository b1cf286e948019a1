package ui

import (
	"github.com/charmbracelet/bubbles/key"

	"searchbox/internal/autocomplete"
)

type keyMap struct {
	NextBox key.Binding
	PrevBox key.Binding
	Help    key.Binding
	Quit    key.Binding

	box autocomplete.KeyMap
}

func newKeyMap(box autocomplete.KeyMap) keyMap {
	return keyMap{
		NextBox: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "next box"),
		),
		PrevBox: key.NewBinding(
			key.WithKeys("shift+tab"),
			key.WithHelp("shift+tab", "previous box"),
		),
		Help: key.NewBinding(
			key.WithKeys("f1"),
			key.WithHelp("F1", "help"),
		),
		Quit: key.NewBinding(
			key.WithKeys("ctrl+c"),
			key.WithHelp("ctrl+c", "quit"),
		),
		box: box,
	}
}

// ShortHelp implements help.KeyMap.
func (k keyMap) ShortHelp() []key.Binding {
	return append(k.box.ShortHelp(), k.NextBox, k.Help, k.Quit)
}

// FullHelp implements help.KeyMap.
func (k keyMap) FullHelp() [][]key.Binding {
	return append(k.box.FullHelp(), []key.Binding{k.NextBox, k.PrevBox, k.Help, k.Quit})
}
