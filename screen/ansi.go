package screen

import (
	"bufio"
	"fmt"
	"io"
	"os"

	"github.com/mattn/go-runewidth"
	"golang.org/x/term"
)

const (
	ansiClear       = "\033[2J\033[H"
	ansiReset       = "\033[0m"
	ansiSaveCursor  = "\0337"
	ansiRestCursor  = "\0338"
	ansiHideCursor  = "\033[?25l"
	ansiShowCursor  = "\033[?25h"
	fallbackColumns = 80
	fallbackRows    = 24
)

// ANSI is a Surface that drives a terminal with raw escape sequences.
// Output is buffered until Flush.
type ANSI struct {
	*Decoder

	in       *os.File
	out      *bufio.Writer
	fd       int
	oldState *term.State
	utf8     bool

	x, y  int
	style Style
	saved []cursorState
}

// NewANSI wraps a terminal. utf8 selects whether Write expects UTF-8 or
// code page 437.
func NewANSI(in *os.File, out io.Writer, utf8 bool) *ANSI {
	return &ANSI{
		Decoder: NewDecoder(in),
		in:      in,
		out:     bufio.NewWriter(out),
		fd:      int(in.Fd()),
		utf8:    utf8,
	}
}

// Open switches the input to raw mode. Call Close to restore it.
func (a *ANSI) Open() error {
	if !term.IsTerminal(a.fd) {
		return fmt.Errorf("stdin is not a terminal")
	}
	oldState, err := term.MakeRaw(a.fd)
	if err != nil {
		return fmt.Errorf("entering raw mode: %w", err)
	}
	a.oldState = oldState
	return nil
}

// Close resets colors and restores the terminal mode
func (a *ANSI) Close() error {
	fmt.Fprint(a.out, ansiReset+ansiShowCursor)
	err := a.out.Flush()
	if a.oldState != nil {
		if rerr := term.Restore(a.fd, a.oldState); rerr != nil && err == nil {
			err = rerr
		}
		a.oldState = nil
	}
	return err
}

func (a *ANSI) Size() (int, int) {
	cols, rows, err := term.GetSize(a.fd)
	if err != nil || cols <= 0 || rows <= 0 {
		return fallbackColumns, fallbackRows
	}
	return cols, rows
}

func (a *ANSI) SetCursor(x, y int) {
	a.x, a.y = x, y
	fmt.Fprintf(a.out, "\033[%d;%dH", y+1, x+1)
}

// SaveCursor uses the terminal's own save slot for the outermost level and
// a software stack for nested saves.
func (a *ANSI) SaveCursor() {
	a.saved = append(a.saved, cursorState{x: a.x, y: a.y, style: a.style})
	if len(a.saved) == 1 {
		fmt.Fprint(a.out, ansiSaveCursor)
	}
}

func (a *ANSI) RestoreCursor() {
	if len(a.saved) == 0 {
		return
	}
	st := a.saved[len(a.saved)-1]
	a.saved = a.saved[:len(a.saved)-1]
	if len(a.saved) == 0 {
		fmt.Fprint(a.out, ansiRestCursor)
		a.x, a.y = st.x, st.y
	} else {
		a.SetCursor(st.x, st.y)
	}
	a.SetStyle(st.style)
}

func (a *ANSI) SetStyle(s Style) {
	a.style = s
	fmt.Fprint(a.out, s.SGR())
}

func (a *ANSI) ClearArea(x, y, w, h int) {
	if w <= 0 || h <= 0 {
		return
	}
	blank := make([]byte, w)
	for i := range blank {
		blank[i] = ' '
	}
	for row := y; row < y+h; row++ {
		fmt.Fprintf(a.out, "\033[%d;%dH", row+1, x+1)
		a.out.Write(blank)
	}
	fmt.Fprintf(a.out, "\033[%d;%dH", a.y+1, a.x+1)
}

func (a *ANSI) Clear() {
	a.x, a.y = 0, 0
	fmt.Fprint(a.out, ansiClear)
}

func (a *ANSI) Write(p []byte) (int, error) {
	if a.utf8 {
		a.x += runewidth.StringWidth(string(p))
	} else {
		a.x += len(p)
	}
	return a.out.Write(p)
}

func (a *ANSI) SupportsUTF8() bool {
	return a.utf8
}

func (a *ANSI) TryLock() bool {
	return Exclusive.TryLock()
}

func (a *ANSI) Unlock() {
	Exclusive.Unlock()
}

func (a *ANSI) Flush() error {
	return a.out.Flush()
}

// HideCursor hides the terminal cursor until Close
func (a *ANSI) HideCursor() {
	fmt.Fprint(a.out, ansiHideCursor)
}
