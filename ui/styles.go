package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/cornish/boxdialog/boxcanvas"
	"github.com/cornish/boxdialog/screen"
)

// StyleFor converts a surface style to lipgloss. Empty colors keep the
// terminal default.
func StyleFor(s screen.Style) lipgloss.Style {
	st := lipgloss.NewStyle()
	if s.Fg != "" {
		st = st.Foreground(lipgloss.Color(s.Fg))
	}
	if s.Bg != "" {
		st = st.Background(lipgloss.Color(s.Bg))
	}
	return st
}

// RenderBuffer serializes a buffer row by row. Runs of cells sharing a
// style are rendered together.
func RenderBuffer(b *screen.Buffer) string {
	cols, rows := b.Size()
	lines := make([]string, rows)

	var line, run strings.Builder
	for y := 0; y < rows; y++ {
		line.Reset()
		run.Reset()
		var runStyle screen.Style
		for x := 0; x < cols; x++ {
			c := b.CellAt(x, y)
			if c.Rune == 0 {
				// right half of a wide character
				continue
			}
			if c.Style != runStyle && run.Len() > 0 {
				line.WriteString(StyleFor(runStyle).Render(run.String()))
				run.Reset()
			}
			runStyle = c.Style
			run.WriteRune(c.Rune)
		}
		if run.Len() > 0 {
			line.WriteString(StyleFor(runStyle).Render(run.String()))
		}
		lines[y] = line.String()
	}
	return strings.Join(lines, "\n")
}

// RenderCanvas renders the canvas grid in its own colors, for printing a
// snapshot outside any surface
func RenderCanvas(c *boxcanvas.Canvas) string {
	st := StyleFor(c.Style())
	lines := c.Lines()
	for i, l := range lines {
		lines[i] = st.Render(l)
	}
	return strings.Join(lines, "\n")
}
