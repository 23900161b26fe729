// Package boxcanvas composes box-drawing borders on a grid of border flags
// and renders them with either Unicode or code page 437 glyphs.
package boxcanvas

// Flags describes which directions a cell's glyph connects to, plus modifiers.
// Layout: <UP> <DOWN> <LEFT> <RIGHT> <-> <STRONG> <DOTTED> <FILL>
type Flags uint8

const (
	Up     Flags = 0b10000000
	Down   Flags = 0b01000000
	Left   Flags = 0b00100000
	Right  Flags = 0b00010000
	Strong Flags = 0b00000100 // double-line variant
	Dotted Flags = 0b00000010 // shade, used for drop shadows
	Fill   Flags = 0b00000001 // solid block, overrides every border bit
)

// BorderMask selects the four direction bits
const BorderMask = Up | Down | Left | Right

// Has reports whether all bits of f2 are set in f
func (f Flags) Has(f2 Flags) bool {
	return f&f2 == f2
}

// Border returns only the direction bits
func (f Flags) Border() Flags {
	return f & BorderMask
}

// BoxStyle is a stamping request. It is consumed by StampBox and never stored
// in the grid.
type BoxStyle struct {
	Fill   bool // overwrite cells instead of OR-merging
	Shadow bool // one-cell dotted shadow on the right and bottom
	Strong bool // double-line glyphs
}

// Common stamping requests
var (
	StyleWeak        = BoxStyle{}
	StyleStrong      = BoxStyle{Strong: true}
	StyleShadow      = BoxStyle{Shadow: true}
	StyleWindow      = BoxStyle{Strong: true, Shadow: true}
	StyleFilledPanel = BoxStyle{Fill: true, Shadow: true}
)
