package ui

import "github.com/charmbracelet/bubbles/key"

// keyMap defines the [key.Binding] mapping for the TUI.
type keyMap struct {
	up     key.Binding
	down   key.Binding
	next   key.Binding
	prev   key.Binding
	search key.Binding
	field  key.Binding
	clear  key.Binding
	reload key.Binding
	delete key.Binding
	open   key.Binding
	enter  key.Binding
	back   key.Binding
	yes    key.Binding
	no     key.Binding
	quit   key.Binding
}

func newKeyMap() keyMap {
	return keyMap{
		up:     key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		down:   key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		next:   key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "next tab")),
		prev:   key.NewBinding(key.WithKeys("shift+tab"), key.WithHelp("shift+tab", "prev tab")),
		search: key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "search")),
		field:  key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "field")),
		clear:  key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "clear search")),
		reload: key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "reload")),
		delete: key.NewBinding(key.WithKeys("d", "delete"), key.WithHelp("d", "delete")),
		open:   key.NewBinding(key.WithKeys("o"), key.WithHelp("o", "open website")),
		enter:  key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "run")),
		back:   key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "back")),
		yes:    key.NewBinding(key.WithKeys("y"), key.WithHelp("y", "yes")),
		no:     key.NewBinding(key.WithKeys("n"), key.WithHelp("n", "no")),
		quit:   key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.next, k.search, k.delete, k.quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.up, k.down, k.next, k.prev},
		{k.search, k.clear, k.reload},
		{k.delete, k.open, k.quit},
	}
}
