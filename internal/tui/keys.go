package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Wrong   key.Binding
	Correct key.Binding
	Reset   key.Binding
	Help    key.Binding
	Quit    key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Wrong: key.NewBinding(
			key.WithKeys("left", "x"),
			key.WithHelp("←/x", "don't know"),
		),
		Correct: key.NewBinding(
			key.WithKeys("right", "v"),
			key.WithHelp("→/v", "know it"),
		),
		Reset: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "reset progress"),
		),
		Help: key.NewBinding(
			key.WithKeys("h", "?"),
			key.WithHelp("h", "toggle help"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "esc", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// ShortHelp implements help.KeyMap
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Wrong, k.Correct, k.Help, k.Quit}
}

// FullHelp implements help.KeyMap
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Wrong, k.Correct},
		{k.Reset, k.Help, k.Quit},
	}
}
