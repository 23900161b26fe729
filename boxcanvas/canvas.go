package boxcanvas

import (
	"strings"
	"unicode/utf8"

	"github.com/cornish/boxdialog/screen"
)

// Auto as a width or height takes the surface's size
const Auto = 0

// Canvas is a rectangular grid of border flags anchored on a surface.
// Boxes are stamped onto the grid and the whole grid is rendered at once,
// so overlapping borders merge into junction glyphs.
type Canvas struct {
	Left, Top     int
	Width, Height int

	// Glyph and background colors used by Render
	FillStyle       screen.Color
	BackgroundStyle screen.Color

	cells []Flags
}

// New creates a blank canvas at (x, y). A width or height of Auto takes the
// surface's dimension.
func New(s screen.Surface, x, y, w, h int) *Canvas {
	cols, rows := s.Size()
	if w == Auto {
		w = cols
	}
	if h == Auto {
		h = rows
	}
	w, h = max(w, 0), max(h, 0)
	return &Canvas{
		Left:   x,
		Top:    y,
		Width:  w,
		Height: h,
		cells:  make([]Flags, w*h),
	}
}

// Cell returns the flags at (x, y) relative to the canvas. Positions outside
// the grid, or on a destroyed canvas, read as 0.
func (c *Canvas) Cell(x, y int) Flags {
	if !c.inside(x, y) {
		return 0
	}
	return c.cells[y*c.Width+x]
}

// Set overwrites the flags at (x, y); out-of-range positions are ignored
func (c *Canvas) Set(x, y int, f Flags) {
	if !c.inside(x, y) {
		return
	}
	c.cells[y*c.Width+x] = f
}

func (c *Canvas) inside(x, y int) bool {
	return c.cells != nil && x >= 0 && y >= 0 && x < c.Width && y < c.Height
}

// StampBox composes a box outline onto the grid. Coordinates are relative
// to the canvas; the box is clipped at the canvas edge. With style.Shadow a
// dotted shadow one cell wide is added right and below when there is room.
func (c *Canvas) StampBox(x, y, w, h int, style BoxStyle) {
	if c.cells == nil || w <= 0 || h <= 0 {
		return
	}

	maxX := min(x+w, c.Width)
	maxY := min(y+h, c.Height)
	if style.Shadow {
		if maxX < c.Width {
			maxX++
		}
		if maxY < c.Height {
			maxY++
		}
	}

	// Outline proper ends at the last column/row of the requested box,
	// or at the canvas edge if that comes first.
	right := min(x+w, c.Width) - 1
	bottom := min(y+h, c.Height) - 1

	for cy := max(y, 0); cy < maxY; cy++ {
		for cx := max(x, 0); cx < maxX; cx++ {
			f := boxCell(cx, cy, x, y, right, bottom, style.Shadow)
			if f != 0 && style.Strong {
				f |= Strong
			}
			idx := cy*c.Width + cx
			if style.Fill {
				c.cells[idx] = f
			} else {
				c.cells[idx] |= f
			}
		}
	}
}

// boxCell classifies one cell of a box whose outline spans [x,right] x [y,bottom]
func boxCell(cx, cy, x, y, right, bottom int, shadow bool) Flags {
	switch {
	case cx == x && cy == y:
		return Down | Right
	case cx == right && cy == y:
		return Down | Left
	case cx == x && cy == bottom:
		return Up | Right
	case cx == right && cy == bottom:
		return Up | Left
	case shadow && (cx > right || cy > bottom):
		if cx > x+2 && cy > y+1 {
			return Dotted
		}
		return 0
	case cx == x || cx == right:
		return Up | Down
	case cy == y || cy == bottom:
		return Left | Right
	}
	return 0
}

// Style returns the surface style the canvas renders with
func (c *Canvas) Style() screen.Style {
	return screen.Style{Fg: c.FillStyle, Bg: c.BackgroundStyle}
}

// Render paints the grid onto s at (Left, Top). The cursor position and
// style are restored afterwards.
func (c *Canvas) Render(s screen.Surface) {
	if c.cells == nil {
		return
	}
	s.SaveCursor()
	defer s.RestoreCursor()

	s.SetStyle(c.Style())
	s.ClearArea(c.Left, c.Top, c.Width, c.Height)

	utf := s.SupportsUTF8()
	row := make([]byte, 0, c.Width*utf8.UTFMax)
	for y := 0; y < c.Height; y++ {
		row = row[:0]
		for _, f := range c.cells[y*c.Width : (y+1)*c.Width] {
			legacy, r := Resolve(f)
			if utf {
				row = utf8.AppendRune(row, r)
			} else {
				row = append(row, legacy)
			}
		}
		s.SetCursor(c.Left, c.Top+y)
		s.Write(row)
	}
}

// Lines returns the grid as Unicode text, one string per row
func (c *Canvas) Lines() []string {
	if c.cells == nil {
		return nil
	}
	lines := make([]string, c.Height)
	var sb strings.Builder
	for y := range lines {
		sb.Reset()
		for _, f := range c.cells[y*c.Width : (y+1)*c.Width] {
			_, r := Resolve(f)
			sb.WriteRune(r)
		}
		lines[y] = sb.String()
	}
	return lines
}

// Destroy releases the grid. Later calls on the canvas are no-ops.
func (c *Canvas) Destroy() {
	c.cells = nil
}
