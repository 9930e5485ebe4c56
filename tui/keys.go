package tui

import (
	"github.com/charmbracelet/bubbles/key"
)

type keyMap struct {
	Begin key.Binding
	Reset key.Binding
	New   key.Binding
	Help  key.Binding
	Quit  key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Begin: key.NewBinding(
			key.WithKeys(" ", "space"),
			key.WithHelp("space", "next pair cycle"),
		),
		Reset: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "walkers back to 0"),
		),
		New: key.NewBinding(
			key.WithKeys("n"),
			key.WithHelp("n", "new graph"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "more keys"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Begin, k.Help, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Begin, k.Reset, k.New},
		{k.Help, k.Quit},
	}
}
