package ui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/cornish/boxdialog/screen"
	"github.com/google/go-cmp/cmp"
)

func TestTranslate(t *testing.T) {
	km := DefaultKeyMap()
	tests := []struct {
		name string
		msg  tea.KeyMsg
		want []screen.Key
	}{
		{"up", tea.KeyMsg{Type: tea.KeyUp}, []screen.Key{screen.Up}},
		{"down", tea.KeyMsg{Type: tea.KeyDown}, []screen.Key{screen.Down}},
		{"left", tea.KeyMsg{Type: tea.KeyLeft}, []screen.Key{screen.Left}},
		{"right", tea.KeyMsg{Type: tea.KeyRight}, []screen.Key{screen.Right}},
		{"enter", tea.KeyMsg{Type: tea.KeyEnter}, []screen.Key{screen.Return}},
		{"esc", tea.KeyMsg{Type: tea.KeyEsc}, []screen.Key{screen.Escape}},
		{"backspace", tea.KeyMsg{Type: tea.KeyBackspace}, []screen.Key{screen.Backspace}},
		{"space", tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}, []screen.Key{screen.Rune(' ')}},
		{"rune", tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'j'}}, []screen.Key{screen.Rune('j')}},
		{"paste", tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("ab")}, []screen.Key{screen.Rune('a'), screen.Rune('b')}},
		{"unbound", tea.KeyMsg{Type: tea.KeyTab}, nil},
	}
	for _, tt := range tests {
		if diff := cmp.Diff(tt.want, km.Translate(tt.msg)); diff != "" {
			t.Errorf("%s: Translate() mismatch (-want +got):\n%s", tt.name, diff)
		}
	}
}

func TestTranslateCustomKeyMap(t *testing.T) {
	km := DefaultKeyMap()
	km.Accept.SetKeys("enter", "tab")

	got := km.Translate(tea.KeyMsg{Type: tea.KeyTab})
	if diff := cmp.Diff([]screen.Key{screen.Return}, got); diff != "" {
		t.Errorf("Translate(tab) mismatch (-want +got):\n%s", diff)
	}
}
