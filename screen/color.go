package screen

import (
	"fmt"
	"strconv"
	"strings"
)

// UseTrueColor controls whether hex colors use true color (24-bit) or
// fall back to the nearest 256-color. Set to false for older terminals.
var UseTrueColor = true

// SGR returns the combined background+foreground escape sequence for a style
func (s Style) SGR() string {
	return colorToANSIBg(s.Bg) + colorToANSIFg(s.Fg)
}

// colorToANSIFg converts a color to an ANSI foreground escape sequence.
// "0"-"255" are palette indexes, "#RGB" or "#RRGGBB" hex colors.
func colorToANSIFg(c Color) string {
	if c == "" {
		return "\033[39m"
	}
	if strings.HasPrefix(string(c), "#") {
		r, g, b := c.RGB()
		if UseTrueColor {
			return fmt.Sprintf("\033[38;2;%d;%d;%dm", r, g, b)
		}
		return fmt.Sprintf("\033[38;5;%dm", rgbTo256Color(r, g, b))
	}
	n, err := strconv.Atoi(string(c))
	if err != nil {
		return "\033[37m" // Default to white on error
	}
	if n < 16 {
		// Standard colors: use traditional codes for better compatibility
		if n < 8 {
			return fmt.Sprintf("\033[%dm", 30+n)
		}
		return fmt.Sprintf("\033[%dm", 90+(n-8))
	}
	return fmt.Sprintf("\033[38;5;%dm", n)
}

// colorToANSIBg converts a color to an ANSI background escape sequence
func colorToANSIBg(c Color) string {
	if c == "" {
		return "\033[49m"
	}
	if strings.HasPrefix(string(c), "#") {
		r, g, b := c.RGB()
		if UseTrueColor {
			return fmt.Sprintf("\033[48;2;%d;%d;%dm", r, g, b)
		}
		return fmt.Sprintf("\033[48;5;%dm", rgbTo256Color(r, g, b))
	}
	n, err := strconv.Atoi(string(c))
	if err != nil {
		return "\033[40m" // Default to black on error
	}
	if n < 16 {
		if n < 8 {
			return fmt.Sprintf("\033[%dm", 40+n)
		}
		return fmt.Sprintf("\033[%dm", 100+(n-8))
	}
	return fmt.Sprintf("\033[48;5;%dm", n)
}

// Index returns the palette index of c, or -1 for hex or invalid colors
func (c Color) Index() int {
	n, err := strconv.Atoi(string(c))
	if err != nil || n < 0 || n > 255 {
		return -1
	}
	return n
}

// RGB returns the color components of a hex color; the 16 console colors
// map to their xterm defaults. Anything else is white.
func (c Color) RGB() (int, int, int) {
	if n := c.Index(); n >= 0 && n < len(consoleRGB) {
		rgb := consoleRGB[n]
		return rgb[0], rgb[1], rgb[2]
	}
	hex := strings.TrimPrefix(string(c), "#")
	if len(hex) == 3 {
		// #RGB -> #RRGGBB
		hex = string([]byte{hex[0], hex[0], hex[1], hex[1], hex[2], hex[2]})
	}
	if len(hex) != 6 {
		return 255, 255, 255
	}
	r, errR := strconv.ParseInt(hex[0:2], 16, 32)
	g, errG := strconv.ParseInt(hex[2:4], 16, 32)
	b, errB := strconv.ParseInt(hex[4:6], 16, 32)
	if errR != nil || errG != nil || errB != nil {
		return 255, 255, 255
	}
	return int(r), int(g), int(b)
}

// consoleRGB holds the xterm defaults for palette entries 0-15
var consoleRGB = [16][3]int{
	{0, 0, 0}, {205, 0, 0}, {0, 205, 0}, {205, 205, 0},
	{0, 0, 238}, {205, 0, 205}, {0, 205, 205}, {229, 229, 229},
	{127, 127, 127}, {255, 0, 0}, {0, 255, 0}, {255, 255, 0},
	{92, 92, 255}, {255, 0, 255}, {0, 255, 255}, {255, 255, 255},
}

// rgbTo256Color converts RGB values to the nearest 256-color palette index
func rgbTo256Color(r, g, b int) int {
	if isGrayscale(r, g, b) {
		return rgbToGrayscale(r, g, b)
	}
	// 6x6x6 color cube (colors 16-231)
	return 16 + 36*rgbTo6(r) + 6*rgbTo6(g) + rgbTo6(b)
}

// rgbTo6 converts an 8-bit color value to a 6-level value (0-5)
// The 6x6x6 cube uses values: 0, 95, 135, 175, 215, 255
func rgbTo6(v int) int {
	switch {
	case v < 48:
		return 0
	case v < 115:
		return 1
	case v < 155:
		return 2
	case v < 195:
		return 3
	case v < 235:
		return 4
	}
	return 5
}

// isGrayscale checks if RGB values are close enough to be grayscale
func isGrayscale(r, g, b int) bool {
	return max(r, g, b)-min(r, g, b) < 20
}

// rgbToGrayscale converts RGB to nearest grayscale in 232-255 range
func rgbToGrayscale(r, g, b int) int {
	gray := (r + g + b) / 3
	if gray < 4 {
		return 16
	}
	if gray > 243 {
		return 231
	}
	return 232 + (gray-8)/10
}
