package main

import (
	"errors"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/cornish/boxdialog/config"
	"github.com/cornish/boxdialog/dialog"
	"github.com/cornish/boxdialog/logging"
	"github.com/cornish/boxdialog/screen"
	"github.com/cornish/boxdialog/ui"
	"golang.org/x/term"
)

// terminal is an open surface with its key source
type terminal struct {
	surface screen.Surface
	keys    screen.KeySource
	close   func() error
}

// session runs dialogs on the configured backend
type session struct {
	cfg     *config.Config
	style   dialog.StyleSelector
	backend string
	utf8    bool

	// interactive is false when stdin or stdout is not a terminal
	interactive bool

	// open returns the terminal for the ansi and tcell backends
	open func() (*terminal, error)
	// save persists cfg; nil disables saving
	save func() error
}

func newSession(cfg *config.Config, style dialog.StyleSelector, backend string, utf8 bool) *session {
	s := &session{cfg: cfg, style: style, backend: backend, utf8: utf8, save: cfg.Save}
	switch backend {
	case config.BackendTcell:
		s.open = s.openTcell
	default:
		s.open = s.openANSI
	}
	return s
}

// errNotTerminal is returned when a dialog is shown without a terminal
var errNotTerminal = errors.New("dialogs need a terminal on stdin and stdout (try boxes --print)")

func (s *session) openANSI() (*terminal, error) {
	if !s.interactive {
		return nil, errNotTerminal
	}
	a := screen.NewANSI(os.Stdin, os.Stdout, s.utf8)
	if err := a.Open(); err != nil {
		return nil, err
	}
	return &terminal{
		surface: a,
		keys:    a,
		close: func() error {
			// leave a clean screen for the result line
			a.SetStyle(screen.Style{})
			a.Clear()
			return a.Close()
		},
	}, nil
}

func (s *session) openTcell() (*terminal, error) {
	if !s.interactive {
		return nil, errNotTerminal
	}
	t, err := screen.NewTcell(s.utf8)
	if err != nil {
		return nil, fmt.Errorf("tcell: %w", err)
	}
	return &terminal{surface: t, keys: t, close: t.Close}, nil
}

// env returns the dialog environment without surface and keys
func (s *session) env() dialog.Env {
	return dialog.Env{
		StartDir:    s.cfg.StartDir(),
		Columns:     s.cfg.Dialog.ExplorerColumns,
		FilenameMax: s.cfg.Dialog.FilenameMax,
		Logger:      logging.Default().Logger,
	}
}

// show runs one dialog call on the session's backend
func (s *session) show(env dialog.Env, fn ui.ShowFunc) (any, error) {
	if s.backend == config.BackendTea {
		cols, rows, err := term.GetSize(int(os.Stdout.Fd()))
		if err != nil || cols <= 0 || rows <= 0 {
			cols, rows = 80, 24
		}
		return ui.Run(env, cols, rows, s.utf8, fn, tea.WithAltScreen())
	}

	t, err := s.open()
	if err != nil {
		return nil, err
	}
	defer t.close()
	env.Surface, env.Keys = t.surface, t.keys
	return fn(env)
}
