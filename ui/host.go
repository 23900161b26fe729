// Package ui hosts the dialogs inside a bubbletea program.
//
// The dialog runs on its own goroutine against an in-memory screen buffer.
// Every flush publishes a rendered frame to the program, and key messages
// travel the other way through a channel-backed key source.
package ui

import (
	"errors"
	"io"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/cornish/boxdialog/dialog"
	"github.com/cornish/boxdialog/screen"
)

// ErrInterrupted is returned when the user quits the program before the
// dialog finished
var ErrInterrupted = errors.New("interrupted")

// ShowFunc runs one dialog call against env
type ShowFunc func(env dialog.Env) (any, error)

type frameMsg string

type doneMsg struct {
	value any
	err   error
}

// hostSurface is a Buffer that publishes a frame on every flush
type hostSurface struct {
	*screen.Buffer
	frames chan string
}

func (s *hostSurface) Flush() error {
	if err := s.Buffer.Flush(); err != nil {
		return err
	}
	frame := RenderBuffer(s.Buffer)
	// keep only the newest frame so the dialog never waits on the program
	select {
	case <-s.frames:
	default:
	}
	s.frames <- frame
	return nil
}

// chanKeys reads keys sent by the program; a closed channel reads as EOF
type chanKeys <-chan screen.Key

func (c chanKeys) ReadKey() (screen.Key, error) {
	k, ok := <-c
	if !ok {
		return screen.Key{}, io.EOF
	}
	return k, nil
}

// Model is the bubbletea model wrapping one dialog call
type Model struct {
	env    dialog.Env
	show   ShowFunc
	keyMap KeyMap

	surface *hostSurface
	keys    chan screen.Key
	done    chan doneMsg

	view        string
	started     bool
	keysClosed  bool
	interrupted bool
	finished    bool
	result      doneMsg
}

// NewModel prepares a cols x rows host for show. env supplies everything
// except the surface and key source, which the host owns.
func NewModel(env dialog.Env, cols, rows int, utf8 bool, show ShowFunc) *Model {
	m := &Model{
		env:    env,
		show:   show,
		keyMap: DefaultKeyMap(),
		surface: &hostSurface{
			Buffer: screen.NewBuffer(cols, rows, utf8),
			frames: make(chan string, 1),
		},
		keys: make(chan screen.Key, 64),
		done: make(chan doneMsg, 1),
	}
	m.env.Surface = m.surface
	m.env.Keys = chanKeys(m.keys)
	return m
}

// SetKeyMap replaces the key bindings
func (m *Model) SetKeyMap(km KeyMap) {
	m.keyMap = km
}

// Init starts the dialog goroutine
func (m *Model) Init() tea.Cmd {
	if !m.started {
		m.started = true
		go func() {
			v, err := m.show(m.env)
			m.done <- doneMsg{value: v, err: err}
		}()
	}
	return m.next
}

// next waits for whatever the dialog produces first
func (m *Model) next() tea.Msg {
	select {
	case f := <-m.surface.frames:
		return frameMsg(f)
	case d := <-m.done:
		return d
	}
}

// Update handles messages
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.keysClosed {
			return m, nil
		}
		if key.Matches(msg, m.keyMap.Interrupt) {
			m.interrupted = true
			m.closeKeys()
			return m, nil
		}
		for _, k := range m.keyMap.Translate(msg) {
			select {
			case m.keys <- k:
			default:
				// dialog is far behind; drop the keystroke
			}
		}
		return m, nil

	case frameMsg:
		m.view = string(msg)
		return m, m.next

	case doneMsg:
		// pick up the frame flushed while closing, if it is still pending
		select {
		case f := <-m.surface.frames:
			m.view = string(f)
		default:
		}
		m.finished = true
		m.result = msg
		m.closeKeys()
		return m, tea.Quit
	}
	return m, nil
}

func (m *Model) closeKeys() {
	if !m.keysClosed {
		m.keysClosed = true
		close(m.keys)
	}
}

// View renders the latest frame
func (m *Model) View() string {
	return m.view
}

// Finished reports whether the dialog has returned
func (m *Model) Finished() bool {
	return m.finished
}

// Result returns what the dialog call returned. An interrupted call
// reports ErrInterrupted.
func (m *Model) Result() (any, error) {
	if m.interrupted && (m.result.err == nil || errors.Is(m.result.err, io.EOF)) {
		return nil, ErrInterrupted
	}
	return m.result.value, m.result.err
}

// Run shows the dialog in a full-screen bubbletea program and returns its
// result.
func Run(env dialog.Env, cols, rows int, utf8 bool, show ShowFunc, opts ...tea.ProgramOption) (any, error) {
	m := NewModel(env, cols, rows, utf8, show)
	if _, err := tea.NewProgram(m, opts...).Run(); err != nil {
		return nil, err
	}
	return m.Result()
}
