package screen

import (
	"strings"
	"unicode/utf8"

	"github.com/cornish/boxdialog/encoding"
	"github.com/mattn/go-runewidth"
)

// Cell is one character cell of a Buffer. Rune 0 marks the right half of a
// double-width character.
type Cell struct {
	Rune  rune
	Style Style
}

// Buffer is an in-memory Surface. It backs the bubbletea host and tests.
// Writes outside the grid are clipped.
type Buffer struct {
	cols, rows int
	cells      []Cell
	x, y       int
	style      Style
	saved      []cursorState
	utf8       bool
	latch      Latch

	// Flushes counts calls to Flush
	Flushes int
}

// NewBuffer creates a blank cols x rows buffer. utf8 selects whether Write
// expects UTF-8 or code page 437 bytes.
func NewBuffer(cols, rows int, utf8 bool) *Buffer {
	b := &Buffer{
		cols:  max(cols, 0),
		rows:  max(rows, 0),
		utf8:  utf8,
		cells: make([]Cell, max(cols, 0)*max(rows, 0)),
	}
	b.Clear()
	return b
}

func (b *Buffer) Size() (int, int) {
	return b.cols, b.rows
}

func (b *Buffer) SetCursor(x, y int) {
	b.x, b.y = x, y
}

// Cursor returns the current cursor position
func (b *Buffer) Cursor() (int, int) {
	return b.x, b.y
}

func (b *Buffer) SaveCursor() {
	b.saved = append(b.saved, cursorState{x: b.x, y: b.y, style: b.style})
}

func (b *Buffer) RestoreCursor() {
	if len(b.saved) == 0 {
		return
	}
	st := b.saved[len(b.saved)-1]
	b.saved = b.saved[:len(b.saved)-1]
	b.x, b.y, b.style = st.x, st.y, st.style
}

func (b *Buffer) SetStyle(s Style) {
	b.style = s
}

// Style returns the active style
func (b *Buffer) Style() Style {
	return b.style
}

func (b *Buffer) ClearArea(x, y, w, h int) {
	for row := max(y, 0); row < min(y+h, b.rows); row++ {
		for col := max(x, 0); col < min(x+w, b.cols); col++ {
			b.cells[row*b.cols+col] = Cell{Rune: ' ', Style: b.style}
		}
	}
}

func (b *Buffer) Clear() {
	b.ClearArea(0, 0, b.cols, b.rows)
}

func (b *Buffer) Write(p []byte) (int, error) {
	if b.utf8 {
		for rest := p; len(rest) > 0; {
			r, size := utf8.DecodeRune(rest)
			rest = rest[size:]
			b.put(r)
		}
	} else {
		for _, c := range p {
			b.put(encoding.DecodeLegacy(c))
		}
	}
	return len(p), nil
}

// WriteString writes s as the surface encoding would carry it
func (b *Buffer) WriteString(s string) (int, error) {
	return b.Write(encoding.EncodeForTerminal(s, b.utf8))
}

func (b *Buffer) put(r rune) {
	w := runewidth.RuneWidth(r)
	if w == 0 {
		return
	}
	b.set(b.x, b.y, Cell{Rune: r, Style: b.style})
	if w == 2 {
		b.set(b.x+1, b.y, Cell{Style: b.style})
	}
	b.x += w
}

func (b *Buffer) set(x, y int, c Cell) {
	if x < 0 || y < 0 || x >= b.cols || y >= b.rows {
		return
	}
	b.cells[y*b.cols+x] = c
}

func (b *Buffer) SupportsUTF8() bool {
	return b.utf8
}

func (b *Buffer) TryLock() bool {
	return b.latch.TryLock()
}

func (b *Buffer) Unlock() {
	b.latch.Unlock()
}

// Locked reports whether a dialog currently holds the buffer
func (b *Buffer) Locked() bool {
	return b.latch.Held()
}

func (b *Buffer) Flush() error {
	b.Flushes++
	return nil
}

// CellAt returns the cell at (x, y); out-of-range positions are blank
func (b *Buffer) CellAt(x, y int) Cell {
	if x < 0 || y < 0 || x >= b.cols || y >= b.rows {
		return Cell{Rune: ' '}
	}
	return b.cells[y*b.cols+x]
}

// Row returns the text of row y
func (b *Buffer) Row(y int) string {
	if y < 0 || y >= b.rows {
		return ""
	}
	var sb strings.Builder
	for _, c := range b.cells[y*b.cols : (y+1)*b.cols] {
		if c.Rune != 0 {
			sb.WriteRune(c.Rune)
		}
	}
	return sb.String()
}

// Text returns w cells of row y starting at column x
func (b *Buffer) Text(x, y, w int) string {
	var sb strings.Builder
	for col := x; col < x+w; col++ {
		if r := b.CellAt(col, y).Rune; r != 0 {
			sb.WriteRune(r)
		}
	}
	return sb.String()
}

// Lines returns every row of the buffer
func (b *Buffer) Lines() []string {
	lines := make([]string, b.rows)
	for y := range lines {
		lines[y] = b.Row(y)
	}
	return lines
}

// String returns the rows joined by newlines with trailing spaces trimmed
func (b *Buffer) String() string {
	lines := b.Lines()
	for i, l := range lines {
		lines[i] = strings.TrimRight(l, " ")
	}
	return strings.Join(lines, "\n")
}
