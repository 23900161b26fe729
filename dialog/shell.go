// Package dialog implements modal dialogs drawn with box-drawing borders:
// a message box, a numeric slider and a file explorer.
//
// Each dialog is a small state machine. Redraw paints the current state and
// HandleKey applies one key, reporting whether a repaint is needed or the
// dialog has finished. The Show functions own the loop that connects the
// machine to a Surface and a KeySource.
package dialog

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/cornish/boxdialog/boxcanvas"
	"github.com/cornish/boxdialog/dirsource"
	"github.com/cornish/boxdialog/encoding"
	"github.com/cornish/boxdialog/logging"
	"github.com/cornish/boxdialog/screen"
	"github.com/mattn/go-runewidth"
)

var (
	// ErrBusy is returned when another dialog holds the terminal
	ErrBusy = errors.New("terminal is in use by another dialog")
	// ErrInvalidArgs is returned for arguments a dialog cannot be shown with
	ErrInvalidArgs = errors.New("invalid dialog arguments")
)

// Env carries the collaborators a dialog call uses
type Env struct {
	Surface screen.Surface
	Keys    screen.KeySource

	// Explorer only
	Dirs        dirsource.Source // nil = host file system
	StartDir    string           // "" = working directory
	Columns     int              // entries per row, 0 = 4
	FilenameMax int              // longest typed name in runes, 0 = 255

	Logger *slog.Logger // nil = logging.Default()
}

func (e Env) check() error {
	if e.Surface == nil || e.Keys == nil {
		return fmt.Errorf("%w: surface and key source are required", ErrInvalidArgs)
	}
	return nil
}

// Transition is what one key did to a dialog
type Transition int

const (
	Ignored  Transition = iota // nothing changed, read the next key
	Changed                    // state changed, repaint before the next key
	Finished                   // the dialog has a result
)

func (t Transition) String() string {
	switch t {
	case Ignored:
		return "ignored"
	case Changed:
		return "changed"
	case Finished:
		return "finished"
	}
	return fmt.Sprintf("Transition(%d)", int(t))
}

// machine is the common shape of the three dialogs
type machine interface {
	Redraw()
	HandleKey(k screen.Key) Transition
}

// Shell is the scaffolding shared by the dialogs: exclusive access to the
// surface, the color layout and label printing.
type Shell struct {
	surface screen.Surface
	layout  Layout
	release func()
	log     *slog.Logger
}

// openShell claims the surface for one dialog call. The returned shell must
// be closed on every path.
func openShell(env Env, style StyleSelector, kind string) (*Shell, error) {
	log := logging.ForCall(env.Logger, kind)
	release, ok := screen.Acquire(env.Surface)
	if !ok {
		log.Warn("terminal busy")
		return nil, ErrBusy
	}
	env.Surface.SaveCursor()
	log.Debug("dialog opened", "style", style.String())
	return &Shell{
		surface: env.Surface,
		layout:  Palette(style),
		release: release,
		log:     log,
	}, nil
}

// Close restores the cursor and style saved by openShell and releases the
// surface. It is safe to call more than once.
func (sh *Shell) Close() {
	if sh.release == nil {
		return
	}
	sh.surface.RestoreCursor()
	if err := sh.surface.Flush(); err != nil {
		sh.log.Warn("flush on close failed", "error", err)
	}
	sh.release()
	sh.release = nil
}

// CenteredGeometry returns the top-left corner that centers a w x h dialog
// on a cols x rows terminal. Coordinates never go negative.
func CenteredGeometry(w, h, cols, rows int) (x, y int) {
	return max((cols-w)/2, 0), max((rows-h)/2, 0)
}

// NewCanvas returns a canvas over the dialog rectangle in the box colors
func (sh *Shell) NewCanvas(x, y, w, h int) *boxcanvas.Canvas {
	c := boxcanvas.New(sh.surface, x, y, w, h)
	c.FillStyle = sh.layout.Box.Fg
	c.BackgroundStyle = sh.layout.Box.Bg
	return c
}

// DrawFrame stamps the window outline over the whole canvas, merges it with
// whatever separators were stamped before, renders and destroys the canvas.
func (sh *Shell) DrawFrame(c *boxcanvas.Canvas) {
	c.StampBox(0, 0, c.Width, c.Height, boxcanvas.StyleWindow)
	c.Render(sh.surface)
	c.Destroy()
}

// Print writes text at (x, y) as a label of width cells
func (sh *Shell) Print(x, y int, st screen.Style, width int, centered bool, text string) {
	sh.surface.SetCursor(x, y)
	sh.surface.SetStyle(st)
	PrintLabel(sh.surface, width, centered, text)
}

// PrintLabel writes text at the cursor as exactly width cells, using the
// surface's current style. See FormatLabel.
func PrintLabel(s screen.Surface, width int, centered bool, text string) {
	utf := s.SupportsUTF8()
	// measure what the code page will actually draw
	text = encoding.DrawnText(text, utf)
	s.Write(encoding.EncodeForTerminal(FormatLabel(width, centered, text), utf))
}

// FormatLabel fits text into width cells. Longer text keeps its head and
// tail around a ".." marker; shorter text is padded with spaces, centered or
// left aligned.
func FormatLabel(width int, centered bool, text string) string {
	if width <= 0 {
		return ""
	}
	tw := runewidth.StringWidth(text)
	switch {
	case tw == width:
		return text
	case tw > width:
		keep := max(width/2-1, 0)
		label := headCells(text, keep) + ".." + tailCells(text, keep)
		if runewidth.StringWidth(label) > width {
			return runewidth.Truncate(label, width, "")
		}
		return runewidth.FillRight(label, width)
	}

	left := 0
	if centered {
		left = (width - tw) / 2
	}
	return strings.Repeat(" ", left) + text + strings.Repeat(" ", width-tw-left)
}

// headCells returns the longest prefix of s at most n cells wide
func headCells(s string, n int) string {
	w := 0
	for i, r := range s {
		w += runewidth.RuneWidth(r)
		if w > n {
			return s[:i]
		}
	}
	return s
}

// tailCells returns the longest suffix of s at most n cells wide
func tailCells(s string, n int) string {
	runes := []rune(s)
	w := 0
	for i := len(runes) - 1; i >= 0; i-- {
		w += runewidth.RuneWidth(runes[i])
		if w > n {
			return string(runes[i+1:])
		}
	}
	return s
}

// run drives m until it finishes or the key source fails. Output is
// flushed before every blocking read.
func (sh *Shell) run(keys screen.KeySource, m machine) error {
	m.Redraw()
	for {
		if err := sh.surface.Flush(); err != nil {
			return fmt.Errorf("flushing dialog: %w", err)
		}
		k, err := keys.ReadKey()
		if err != nil {
			return fmt.Errorf("reading key: %w", err)
		}
		switch m.HandleKey(k) {
		case Changed:
			m.Redraw()
		case Finished:
			return nil
		default:
			sh.log.Debug("key ignored", "key", k.String())
		}
	}
}
