package ui

import (
	"errors"
	"regexp"
	"strings"
	"testing"
	"testing/fstest"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/cornish/boxdialog/dialog"
	"github.com/cornish/boxdialog/dirsource"
)

var sgr = regexp.MustCompile("\x1b\\[[0-9;]*m")

func plain(s string) string {
	return sgr.ReplaceAllString(s, "")
}

// await runs cmd with a deadline so a stuck dialog fails instead of hanging
func await(t *testing.T, cmd tea.Cmd) tea.Msg {
	t.Helper()
	ch := make(chan tea.Msg, 1)
	go func() { ch <- cmd() }()
	select {
	case msg := <-ch:
		return msg
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for the dialog")
		return nil
	}
}

// finish pumps dialog output into the model until the call returns
func finish(t *testing.T, m *Model) tea.Cmd {
	t.Helper()
	for i := 0; i < 50; i++ {
		_, cmd := m.Update(await(t, m.next))
		if m.Finished() {
			return cmd
		}
	}
	t.Fatal("dialog did not finish")
	return nil
}

func press(m *Model, msgs ...tea.KeyMsg) {
	for _, msg := range msgs {
		m.Update(msg)
	}
}

func TestModelMessageBox(t *testing.T) {
	m := NewModel(dialog.Env{}, 40, 12, true, func(env dialog.Env) (any, error) {
		return dialog.ShowMessageBox(env, "Confirm", "Save changes?", []string{"Yes", "No"}, dialog.StyleBlue)
	})

	msg := await(t, m.Init())
	if _, ok := msg.(frameMsg); !ok {
		t.Fatalf("first message = %T, want a frame", msg)
	}
	m.Update(msg)
	view := plain(m.View())
	for _, want := range []string{"Confirm", "Save changes?", "Yes", "No"} {
		if !strings.Contains(view, want) {
			t.Errorf("View() is missing %q:\n%s", want, view)
		}
	}

	press(m, tea.KeyMsg{Type: tea.KeyDown}, tea.KeyMsg{Type: tea.KeyEnter})
	cmd := finish(t, m)
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("finished dialog should quit the program")
	}

	got, err := m.Result()
	if err != nil {
		t.Fatalf("Result() error = %v", err)
	}
	if got != 1 {
		t.Errorf("Result() = %v, want 1", got)
	}
}

func TestModelSlider(t *testing.T) {
	m := NewModel(dialog.Env{}, 40, 12, false, func(env dialog.Env) (any, error) {
		return dialog.ShowSliderBox(env, "Volume", "Pick a level", 0, 5, 10, 1, dialog.StyleGrey)
	})
	m.Update(await(t, m.Init()))
	press(m,
		tea.KeyMsg{Type: tea.KeyRight},
		tea.KeyMsg{Type: tea.KeyRight},
		tea.KeyMsg{Type: tea.KeyLeft},
		tea.KeyMsg{Type: tea.KeyEnter},
	)
	finish(t, m)

	got, err := m.Result()
	if err != nil {
		t.Fatalf("Result() error = %v", err)
	}
	if got != 6.0 {
		t.Errorf("Result() = %v, want 6", got)
	}
}

func TestModelExplorerTyping(t *testing.T) {
	env := dialog.Env{Dirs: dirsource.NewFS(fstest.MapFS{
		"a.txt":    {Data: []byte("a")},
		"notes.md": {Data: []byte("n")},
	})}
	type result struct {
		path string
		ok   bool
	}
	m := NewModel(env, 80, 24, true, func(env dialog.Env) (any, error) {
		p, ok, err := dialog.ShowFileExplorer(env, "md", "Save as", false, dialog.StyleBlue)
		return result{p, ok}, err
	})
	m.Update(await(t, m.Init()))

	for i := 0; i < 5; i++ {
		press(m, tea.KeyMsg{Type: tea.KeyBackspace})
	}
	press(m,
		tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("todo.md")},
		tea.KeyMsg{Type: tea.KeyEnter},
	)
	finish(t, m)

	got, err := m.Result()
	if err != nil {
		t.Fatalf("Result() error = %v", err)
	}
	if want := (result{"./todo.md", true}); got != want {
		t.Errorf("Result() = %+v, want %+v", got, want)
	}
}

func TestModelInterrupt(t *testing.T) {
	m := NewModel(dialog.Env{}, 40, 12, true, func(env dialog.Env) (any, error) {
		return dialog.ShowMessageBox(env, "T", "M", []string{"A"}, dialog.StyleRed)
	})
	m.Update(await(t, m.Init()))

	press(m, tea.KeyMsg{Type: tea.KeyCtrlC})
	// keys after the interrupt are dropped, not sent on a closed channel
	press(m, tea.KeyMsg{Type: tea.KeyEnter})
	finish(t, m)

	if _, err := m.Result(); !errors.Is(err, ErrInterrupted) {
		t.Errorf("Result() error = %v, want ErrInterrupted", err)
	}
	if m.surface.Locked() {
		t.Error("interrupted dialog left the buffer locked")
	}
}

func TestModelInvalidArgs(t *testing.T) {
	m := NewModel(dialog.Env{}, 40, 12, true, func(env dialog.Env) (any, error) {
		return dialog.ShowMessageBox(env, "T", "M", nil, dialog.StyleGrey)
	})

	msg := await(t, m.Init())
	if _, ok := msg.(doneMsg); !ok {
		t.Fatalf("first message = %T, want done", msg)
	}
	m.Update(msg)
	if _, err := m.Result(); !errors.Is(err, dialog.ErrInvalidArgs) {
		t.Errorf("Result() error = %v, want ErrInvalidArgs", err)
	}
	if m.View() != "" {
		t.Errorf("View() = %q, want nothing drawn", m.View())
	}
}
