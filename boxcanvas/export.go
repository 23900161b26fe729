package boxcanvas

import (
	"fmt"
	"image"
	"image/color"

	"github.com/cornish/boxdialog/screen"
	"github.com/fogleman/gg"
	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gomono"
)

// Cell size of exported images, in pixels
const (
	charWidth  = 8.0
	charHeight = 16.0
	fontSize   = 13.0
)

// Image draws the grid with the Go Mono font, one glyph per cell, using the
// canvas colors (black on white when unset).
func (c *Canvas) Image() (image.Image, error) {
	dc, err := c.draw()
	if err != nil {
		return nil, err
	}
	return dc.Image(), nil
}

// ExportPNG writes the grid to a PNG file
func (c *Canvas) ExportPNG(filename string) error {
	dc, err := c.draw()
	if err != nil {
		return err
	}
	return dc.SavePNG(filename)
}

func (c *Canvas) draw() (*gg.Context, error) {
	if c.cells == nil || c.Width == 0 || c.Height == 0 {
		return nil, fmt.Errorf("canvas is empty")
	}

	dc := gg.NewContext(int(float64(c.Width)*charWidth), int(float64(c.Height)*charHeight))
	dc.SetColor(rgba(c.BackgroundStyle, color.White))
	dc.Clear()

	ttfFont, err := truetype.Parse(gomono.TTF)
	if err != nil {
		return nil, fmt.Errorf("failed to parse font: %w", err)
	}
	dc.SetFontFace(truetype.NewFace(ttfFont, &truetype.Options{
		Size:    fontSize,
		DPI:     72,
		Hinting: font.HintingFull,
	}))
	dc.SetColor(rgba(c.FillStyle, color.Black))

	for y := 0; y < c.Height; y++ {
		for x := 0; x < c.Width; x++ {
			f := c.cells[y*c.Width+x]
			if f == 0 {
				continue
			}
			_, r := Resolve(f)
			cx := (float64(x) + 0.5) * charWidth
			cy := (float64(y) + 0.5) * charHeight
			dc.DrawStringAnchored(string(r), cx, cy, 0.5, 0.5)
		}
	}
	return dc, nil
}

func rgba(c screen.Color, fallback color.Color) color.Color {
	if c == "" {
		return fallback
	}
	r, g, b := c.RGB()
	return color.RGBA{R: uint8(r), G: uint8(g), B: uint8(b), A: 255}
}
