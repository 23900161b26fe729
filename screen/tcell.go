package screen

import (
	"io"
	"unicode/utf8"

	"github.com/cornish/boxdialog/encoding"
	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"
)

// Tcell is a Surface and KeySource backed by a tcell screen
type Tcell struct {
	screen tcell.Screen
	utf8   bool

	x, y  int
	style Style
	saved []cursorState
}

// NewTcell creates and initializes a tcell screen
func NewTcell(utf8 bool) (*Tcell, error) {
	s, err := tcell.NewScreen()
	if err != nil {
		return nil, err
	}
	if err := s.Init(); err != nil {
		return nil, err
	}
	return NewTcellScreen(s, utf8), nil
}

// NewTcellScreen wraps an already initialized tcell screen
func NewTcellScreen(s tcell.Screen, utf8 bool) *Tcell {
	return &Tcell{screen: s, utf8: utf8}
}

// Close finalizes the underlying screen
func (t *Tcell) Close() error {
	t.screen.Fini()
	return nil
}

func (t *Tcell) Size() (int, int) {
	return t.screen.Size()
}

func (t *Tcell) SetCursor(x, y int) {
	t.x, t.y = x, y
}

func (t *Tcell) SaveCursor() {
	t.saved = append(t.saved, cursorState{x: t.x, y: t.y, style: t.style})
}

func (t *Tcell) RestoreCursor() {
	if len(t.saved) == 0 {
		return
	}
	st := t.saved[len(t.saved)-1]
	t.saved = t.saved[:len(t.saved)-1]
	t.x, t.y, t.style = st.x, st.y, st.style
}

func (t *Tcell) SetStyle(s Style) {
	t.style = s
}

func (t *Tcell) ClearArea(x, y, w, h int) {
	st := tcellStyle(t.style)
	for row := y; row < y+h; row++ {
		for col := x; col < x+w; col++ {
			t.screen.SetContent(col, row, ' ', nil, st)
		}
	}
}

func (t *Tcell) Clear() {
	t.screen.Fill(' ', tcellStyle(t.style))
}

func (t *Tcell) Write(p []byte) (int, error) {
	st := tcellStyle(t.style)
	put := func(r rune) {
		t.screen.SetContent(t.x, t.y, r, nil, st)
		t.x += max(runewidth.RuneWidth(r), 1)
	}
	if t.utf8 {
		for rest := p; len(rest) > 0; {
			r, size := utf8.DecodeRune(rest)
			rest = rest[size:]
			put(r)
		}
	} else {
		for _, c := range p {
			put(encoding.DecodeLegacy(c))
		}
	}
	return len(p), nil
}

func (t *Tcell) SupportsUTF8() bool {
	return t.utf8
}

func (t *Tcell) TryLock() bool {
	return Exclusive.TryLock()
}

func (t *Tcell) Unlock() {
	Exclusive.Unlock()
}

// Flush shows pending content with the cursor at its last position
func (t *Tcell) Flush() error {
	t.screen.ShowCursor(t.x, t.y)
	t.screen.Show()
	return nil
}

// ReadKey blocks for the next key event. Resizes repaint the last frame;
// a finalized screen reports io.EOF.
func (t *Tcell) ReadKey() (Key, error) {
	for {
		switch ev := t.screen.PollEvent().(type) {
		case nil:
			return Key{}, io.EOF
		case *tcell.EventResize:
			t.screen.Sync()
		case *tcell.EventKey:
			return keyFromTcell(ev), nil
		}
	}
}

func keyFromTcell(ev *tcell.EventKey) Key {
	switch ev.Key() {
	case tcell.KeyEnter:
		return Return
	case tcell.KeyCtrlJ:
		return Enter
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return Escape
	case tcell.KeyBackspace, tcell.KeyBackspace2:
		return Backspace
	case tcell.KeyUp:
		return Up
	case tcell.KeyDown:
		return Down
	case tcell.KeyLeft:
		return Left
	case tcell.KeyRight:
		return Right
	case tcell.KeyRune:
		return Rune(ev.Rune())
	}
	return Key{}
}

func tcellStyle(s Style) tcell.Style {
	return tcell.StyleDefault.
		Foreground(tcellColor(s.Fg)).
		Background(tcellColor(s.Bg))
}

func tcellColor(c Color) tcell.Color {
	if c == "" {
		return tcell.ColorDefault
	}
	if n := c.Index(); n >= 0 {
		return tcell.PaletteColor(n)
	}
	r, g, b := c.RGB()
	return tcell.NewRGBColor(int32(r), int32(g), int32(b))
}
