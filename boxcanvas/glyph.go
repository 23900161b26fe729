package boxcanvas

// glyph pairs a code page 437 byte with its Unicode code point
type glyph struct {
	legacy  byte
	unicode rune
}

// shape holds the light and strong variants of one border shape
type shape struct {
	light, strong glyph
}

var blank = glyph{' ', ' '}

var (
	glyphFull       = glyph{219, 0x2588} // █
	shapeVertical   = shape{glyph{179, 0x2502}, glyph{186, 0x2551}}
	shapeHorizontal = shape{glyph{196, 0x2500}, glyph{205, 0x2550}}
	shapeCross      = shape{glyph{197, 0x253C}, glyph{206, 0x256C}}
	shapeUpLeft     = shape{glyph{217, 0x2518}, glyph{188, 0x255D}}
	shapeUpRight    = shape{glyph{192, 0x2514}, glyph{200, 0x255A}}
	shapeDownLeft   = shape{glyph{191, 0x2510}, glyph{187, 0x2557}}
	shapeDownRight  = shape{glyph{218, 0x250C}, glyph{201, 0x2554}}
	shapeTeeUp      = shape{glyph{193, 0x2534}, glyph{202, 0x2569}}
	shapeTeeDown    = shape{glyph{194, 0x252C}, glyph{203, 0x2566}}
	shapeTeeLeft    = shape{glyph{180, 0x2524}, glyph{185, 0x2563}}
	shapeTeeRight   = shape{glyph{195, 0x251C}, glyph{204, 0x2560}}
	shapeShade      = shape{glyph{176, 0x2591}, glyph{177, 0x2592}}
)

// shapes is keyed by the direction bits of a cell
var shapes = map[Flags]shape{
	Up:                       shapeVertical,
	Down:                     shapeVertical,
	Up | Down:                shapeVertical,
	Left:                     shapeHorizontal,
	Right:                    shapeHorizontal,
	Left | Right:             shapeHorizontal,
	Up | Down | Left | Right: shapeCross,
	Up | Left:                shapeUpLeft,
	Up | Right:               shapeUpRight,
	Down | Left:              shapeDownLeft,
	Down | Right:             shapeDownRight,
	Up | Left | Right:        shapeTeeUp,
	Down | Left | Right:      shapeTeeDown,
	Up | Down | Left:         shapeTeeLeft,
	Up | Down | Right:        shapeTeeRight,
}

func (s shape) pick(strong bool) glyph {
	if strong {
		return s.strong
	}
	return s.light
}

// Resolve maps a cell's flags to its legacy (code page 437) byte and Unicode
// code point. Every one of the 256 inputs has a defined result.
func Resolve(f Flags) (byte, rune) {
	g := resolve(f)
	return g.legacy, g.unicode
}

func resolve(f Flags) glyph {
	switch {
	case f == 0:
		return blank
	case f.Has(Fill):
		return glyphFull
	}

	strong := f.Has(Strong)
	if s, ok := shapes[f.Border()]; ok {
		return s.pick(strong)
	}
	if f.Has(Dotted) {
		return shapeShade.pick(strong)
	}
	return blank
}
