package dialog

import (
	"fmt"

	"github.com/cornish/boxdialog/boxcanvas"
	"github.com/cornish/boxdialog/screen"
	"github.com/mattn/go-runewidth"
)

// MessageBox is an open message box: a title, one line of text and a
// vertical list of options, one of them highlighted.
type MessageBox struct {
	sh       *Shell
	x, y, w  int
	options  []string
	selected int
}

// Selected returns the highlighted option index
func (m *MessageBox) Selected() int {
	return m.selected
}

// Redraw repaints the option rows. The frame, title and text are drawn once
// by ShowMessageBox.
func (m *MessageBox) Redraw() {
	for i, opt := range m.options {
		st := m.sh.layout.OptionInactive
		if i == m.selected {
			st = m.sh.layout.OptionActive
		}
		m.sh.Print(m.x+1, m.y+3+i, st, m.w-2, true, opt)
	}
}

// HandleKey moves the highlight with Up and Down and finishes on Enter
func (m *MessageBox) HandleKey(k screen.Key) Transition {
	switch {
	case k.Code == screen.KeyUp:
		if m.selected == 0 {
			return Ignored
		}
		m.selected--
		return Changed
	case k.Code == screen.KeyDown:
		if m.selected == len(m.options)-1 {
			return Ignored
		}
		m.selected++
		return Changed
	case k.IsAccept():
		return Finished
	}
	return Ignored
}

// ShowMessageBox shows a modal list of options and returns the index of the
// one accepted with Enter. There is no cancel key.
func ShowMessageBox(env Env, title, text string, options []string, style StyleSelector) (int, error) {
	if err := env.check(); err != nil {
		return 0, err
	}
	if len(options) == 0 {
		return 0, fmt.Errorf("%w: message box needs at least one option", ErrInvalidArgs)
	}
	if !style.Valid() {
		return 0, fmt.Errorf("%w: %v", ErrInvalidArgs, style)
	}

	sh, err := openShell(env, style, "message")
	if err != nil {
		return 0, err
	}
	defer sh.Close()

	// title, text, separator, one row per option, bottom border
	h := len(options) + 4
	w := max(runewidth.StringWidth(title), runewidth.StringWidth(text))
	for _, opt := range options {
		w = max(w, runewidth.StringWidth(opt))
	}
	w += 2

	cols, rows := env.Surface.Size()
	x, y := CenteredGeometry(w, h, cols, rows)

	c := sh.NewCanvas(x, y, w, h)
	c.StampBox(0, 0, w, 3, boxcanvas.StyleWeak)
	sh.DrawFrame(c)

	sh.Print(x+1, y, sh.layout.Title, w-2, true, title)
	sh.Print(x+1, y+1, sh.layout.Content, w-2, true, text)

	m := &MessageBox{sh: sh, x: x, y: y, w: w, options: options}
	if err := sh.run(env.Keys, m); err != nil {
		sh.log.Warn("message box aborted", "error", err)
		return 0, err
	}
	sh.log.Debug("option accepted", "index", m.selected, "option", options[m.selected])
	return m.selected, nil
}
