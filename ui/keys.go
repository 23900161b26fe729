package ui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/cornish/boxdialog/screen"
)

// KeyMap binds bubbletea key names to dialog keys
type KeyMap struct {
	Up        key.Binding
	Down      key.Binding
	Left      key.Binding
	Right     key.Binding
	Accept    key.Binding
	Cancel    key.Binding
	Backspace key.Binding
	Interrupt key.Binding
}

// DefaultKeyMap mirrors the raw terminal decoder. Vim-style letters are not
// bound because the file explorer needs them as input.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Up:        key.NewBinding(key.WithKeys("up"), key.WithHelp("↑", "previous")),
		Down:      key.NewBinding(key.WithKeys("down"), key.WithHelp("↓", "next")),
		Left:      key.NewBinding(key.WithKeys("left"), key.WithHelp("←", "decrease")),
		Right:     key.NewBinding(key.WithKeys("right"), key.WithHelp("→", "increase")),
		Accept:    key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "accept")),
		Cancel:    key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "cancel")),
		Backspace: key.NewBinding(key.WithKeys("backspace"), key.WithHelp("⌫", "delete")),
		Interrupt: key.NewBinding(key.WithKeys("ctrl+c"), key.WithHelp("ctrl+c", "quit")),
	}
}

// Translate converts a bubbletea key message into dialog keys. Pasted text
// yields one key per rune; unbound keys yield nothing.
func (km KeyMap) Translate(msg tea.KeyMsg) []screen.Key {
	switch {
	case key.Matches(msg, km.Up):
		return []screen.Key{screen.Up}
	case key.Matches(msg, km.Down):
		return []screen.Key{screen.Down}
	case key.Matches(msg, km.Left):
		return []screen.Key{screen.Left}
	case key.Matches(msg, km.Right):
		return []screen.Key{screen.Right}
	case key.Matches(msg, km.Accept):
		// the terminal sends a carriage return for enter
		return []screen.Key{screen.Return}
	case key.Matches(msg, km.Cancel):
		return []screen.Key{screen.Escape}
	case key.Matches(msg, km.Backspace):
		return []screen.Key{screen.Backspace}
	}

	switch msg.Type {
	case tea.KeySpace:
		return []screen.Key{screen.Rune(' ')}
	case tea.KeyRunes:
		keys := make([]screen.Key, 0, len(msg.Runes))
		for _, r := range msg.Runes {
			keys = append(keys, screen.Rune(r))
		}
		return keys
	}
	return nil
}
