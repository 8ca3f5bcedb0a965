package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Toggle  key.Binding
	Reset   key.Binding
	Next    key.Binding
	Prev    key.Binding
	Custom  key.Binding
	Silence key.Binding
	Quit    key.Binding
}

func newKeyMap() keyMap {
	return keyMap{
		Toggle: key.NewBinding(
			key.WithKeys(" ", "enter"),
			key.WithHelp("space", "start"),
		),
		Reset: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "reset"),
		),
		Next: key.NewBinding(
			key.WithKeys("tab", "right", "l"),
			key.WithHelp("tab", "next preset"),
		),
		Prev: key.NewBinding(
			key.WithKeys("shift+tab", "left", "h"),
			key.WithHelp("shift+tab", "prev preset"),
		),
		Custom: key.NewBinding(
			key.WithKeys("c"),
			key.WithHelp("c", "custom"),
		),
		Silence: key.NewBinding(
			key.WithKeys("x"),
			key.WithHelp("x", "silence"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// ShortHelp implements help.KeyMap.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Toggle, k.Reset, k.Next, k.Custom, k.Silence, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Toggle, k.Reset, k.Silence},
		{k.Next, k.Prev, k.Custom},
		{k.Quit},
	}
}

// sync enables bindings that only apply while the timer is stopped.
func (k *keyMap) sync(running bool) {
	if running {
		k.Toggle.SetHelp("space", "pause")
	} else {
		k.Toggle.SetHelp("space", "start")
	}
	k.Next.SetEnabled(!running)
	k.Prev.SetEnabled(!running)
	k.Custom.SetEnabled(!running)
}
