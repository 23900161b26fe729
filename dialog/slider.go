package dialog

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/cornish/boxdialog/boxcanvas"
	"github.com/cornish/boxdialog/screen"
	"github.com/mattn/go-runewidth"
)

// Bar glyphs, resolved through the canvas glyph table so the legacy code
// page gets its own box characters.
const (
	barStart  = boxcanvas.Up | boxcanvas.Down | boxcanvas.Right
	barEnd    = boxcanvas.Up | boxcanvas.Down | boxcanvas.Left
	barTrack  = boxcanvas.Left | boxcanvas.Right
	barMarker = boxcanvas.Up | boxcanvas.Down | boxcanvas.Strong
)

// snapTolerance absorbs float error when checking whether a step fits
const snapTolerance = 1e-9

// maxDecimals is the most decimal places Value rounds to; finer steps are
// returned unrounded
const maxDecimals = 15

// Slider is an open slider dialog. The value is initial + k*step for a whole
// number k, so repeated moves never accumulate float error. k is kept as a
// float64 so ranges of more than MaxInt steps still move.
type Slider struct {
	sh      *Shell
	x, y, w int

	min, max, step float64
	origin         float64
	k, kLow, kHigh float64
	decimals       int
}

func newSlider(sh *Shell, minValue, initial, maxValue, step float64) *Slider {
	return &Slider{
		sh:       sh,
		min:      minValue,
		max:      maxValue,
		step:     step,
		origin:   initial,
		kLow:     -math.Floor((initial-minValue)/step + snapTolerance),
		kHigh:    math.Floor((maxValue-initial)/step + snapTolerance),
		decimals: decimalPlaces(initial, step),
	}
}

// decimalPlaces returns the most digits after the point in the shortest
// representation of any of vs
func decimalPlaces(vs ...float64) int {
	d := 0
	for _, v := range vs {
		s := strconv.FormatFloat(v, 'f', -1, 64)
		if i := strings.IndexByte(s, '.'); i >= 0 {
			d = max(d, len(s)-i-1)
		}
	}
	return d
}

// Value returns the current value, rounded to the precision of the initial
// value and step
func (s *Slider) Value() float64 {
	v := s.origin + s.k*s.step
	if s.decimals <= maxDecimals {
		p := math.Pow10(s.decimals)
		if scaled := v * p; math.Abs(scaled) < 1<<53 {
			v = math.Round(scaled) / p
		}
	}
	return math.Min(math.Max(v, s.min), s.max)
}

// barLength is the number of track cells between the end caps
func (s *Slider) barLength() int {
	return max(s.w-6, 1)
}

// markerPos returns the track cell that shows the value
func (s *Slider) markerPos() int {
	n := s.barLength()
	pos := int(math.Round(float64(n) * (s.Value() - s.min) / (s.max - s.min)))
	return min(max(pos, 0), n-1)
}

func formatValue(v float64) string {
	return fmt.Sprintf("%4.2f", v)
}

// Redraw repaints the range labels, the bar and the value label
func (s *Slider) Redraw() {
	l := s.sh.layout
	inner := s.w - 4

	minLabel, maxLabel := formatValue(s.min), formatValue(s.max)
	gap := max(inner-len(minLabel)-len(maxLabel), 1)
	s.sh.Print(s.x+2, s.y+3, l.OptionInactive, inner, false, minLabel+strings.Repeat(" ", gap)+maxLabel)

	n, marker := s.barLength(), s.markerPos()
	bar := make([]boxcanvas.Flags, 0, n+2)
	bar = append(bar, barStart)
	for i := 0; i < n; i++ {
		if i == marker {
			bar = append(bar, barMarker)
		} else {
			bar = append(bar, barTrack)
		}
	}
	bar = append(bar, barEnd)
	s.sh.surface.SetCursor(s.x+2, s.y+4)
	s.sh.surface.SetStyle(l.OptionActive)
	writeGlyphs(s.sh.surface, bar)

	// The label follows the marker, and flips to its left past the middle
	// so it stays inside the box.
	label := formatValue(s.Value())
	pos := marker + 2
	if marker > n/2 {
		pos -= len(label) - 1
	}
	pos = min(max(pos, 0), max(s.w-2-len(label), 0))
	s.sh.Print(s.x+1, s.y+5, l.OptionInactive, s.w-2, false, strings.Repeat(" ", pos)+label)
}

// writeGlyphs writes one glyph per flag set in the surface's encoding
func writeGlyphs(surf screen.Surface, glyphs []boxcanvas.Flags) {
	utf := surf.SupportsUTF8()
	buf := make([]byte, 0, len(glyphs)*utf8.UTFMax)
	for _, f := range glyphs {
		legacy, r := boxcanvas.Resolve(f)
		if utf {
			buf = utf8.AppendRune(buf, r)
		} else {
			buf = append(buf, legacy)
		}
	}
	surf.Write(buf)
}

// HandleKey steps the value with Left and Right and finishes on Enter.
// Steps that would leave the range are ignored.
func (s *Slider) HandleKey(k screen.Key) Transition {
	switch {
	case k.Code == screen.KeyLeft:
		if s.k <= s.kLow {
			return Ignored
		}
		s.k--
		return Changed
	case k.Code == screen.KeyRight:
		if s.k >= s.kHigh {
			return Ignored
		}
		s.k++
		return Changed
	case k.IsAccept():
		return Finished
	}
	return Ignored
}

// ShowSliderBox shows a modal slider over [minValue, maxValue] starting at
// initial and returns the value accepted with Enter. Values move in whole
// steps from initial and stop before a step would leave the range. There is
// no cancel key.
func ShowSliderBox(env Env, title, text string, minValue, initial, maxValue, step float64, style StyleSelector) (float64, error) {
	if err := env.check(); err != nil {
		return 0, err
	}
	switch {
	case !(minValue < maxValue):
		return 0, fmt.Errorf("%w: slider range [%v, %v] is empty", ErrInvalidArgs, minValue, maxValue)
	case !(step > 0):
		return 0, fmt.Errorf("%w: slider step %v is not positive", ErrInvalidArgs, step)
	case !(initial >= minValue && initial <= maxValue):
		return 0, fmt.Errorf("%w: initial value %v outside [%v, %v]", ErrInvalidArgs, initial, minValue, maxValue)
	case !style.Valid():
		return 0, fmt.Errorf("%w: %v", ErrInvalidArgs, style)
	}

	sh, err := openShell(env, style, "slider")
	if err != nil {
		return 0, err
	}
	defer sh.Close()

	// title, blank, text, range labels, bar, value label, bottom border
	const h = 7
	cols, rows := env.Surface.Size()
	w := max(runewidth.StringWidth(title), runewidth.StringWidth(text)) + 2
	w = min(max(w, cols/2), cols)
	x, y := CenteredGeometry(w, h, cols, rows)

	sh.DrawFrame(sh.NewCanvas(x, y, w, h))
	sh.Print(x+1, y, sh.layout.Title, w-2, true, title)
	sh.Print(x+1, y+2, sh.layout.Content, w-2, true, text)

	s := newSlider(sh, minValue, initial, maxValue, step)
	s.x, s.y, s.w = x, y, w
	if err := sh.run(env.Keys, s); err != nil {
		sh.log.Warn("slider aborted", "error", err)
		return 0, err
	}
	sh.log.Debug("value accepted", "value", s.Value())
	return s.Value(), nil
}
