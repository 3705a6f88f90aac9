package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Quit   key.Binding
	Cancel key.Binding
	Left   key.Binding
	Right  key.Binding
	Reload key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Quit:   key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
		Cancel: key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "cancel drag")),
		Left:   key.NewBinding(key.WithKeys("left", "h"), key.WithHelp("←/h", "scroll")),
		Right:  key.NewBinding(key.WithKeys("right", "l"), key.WithHelp("→/l", "scroll")),
		Reload: key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "reload")),
	}
}

func (k keyMap) help() []key.Binding {
	return []key.Binding{k.Cancel, k.Left, k.Reload, k.Quit}
}
