package ui

import "github.com/charmbracelet/bubbles/key"

// keyMap defines the [key.Binding] mapping for the TUI.
type keyMap struct {
	next    key.Binding
	prev    key.Binding
	submit  key.Binding
	export  key.Binding
	restart key.Binding
	cancel  key.Binding
	quit    key.Binding
}

func newKeyMap() keyMap {
	return keyMap{
		next:    key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "next")),
		prev:    key.NewBinding(key.WithKeys("shift+tab"), key.WithHelp("shift+tab", "previous")),
		submit:  key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "check")),
		export:  key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "export result.csv")),
		restart: key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "new check")),
		cancel:  key.NewBinding(key.WithKeys("esc", "ctrl+c"), key.WithHelp("esc", "quit")),
		quit:    key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

// formHelp lists the bindings active while a path input has focus; q is typed, not bound.
func (k keyMap) formHelp() []key.Binding {
	return []key.Binding{k.next, k.submit, k.cancel}
}

func (k keyMap) resultHelp() []key.Binding {
	return []key.Binding{k.next, k.export, k.restart, k.quit}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.next, k.prev, k.submit},
		{k.export, k.restart},
		{k.cancel, k.quit},
	}
}
