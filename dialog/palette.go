package dialog

import (
	"fmt"
	"strings"

	"github.com/cornish/boxdialog/screen"
)

// StyleSelector picks one of the fixed color schemes
type StyleSelector int

const (
	StyleGrey StyleSelector = iota
	StyleBlue
	StyleRed
)

var styleNames = []string{"grey", "blue", "red"}

func (s StyleSelector) String() string {
	if !s.Valid() {
		return fmt.Sprintf("StyleSelector(%d)", int(s))
	}
	return styleNames[s]
}

// Valid reports whether s names a palette entry
func (s StyleSelector) Valid() bool {
	return s >= StyleGrey && s <= StyleRed
}

// ParseStyle maps a style name ("grey", "gray", "blue", "red") to its selector
func ParseStyle(name string) (StyleSelector, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "grey", "gray":
		return StyleGrey, nil
	case "blue":
		return StyleBlue, nil
	case "red":
		return StyleRed, nil
	}
	return StyleGrey, fmt.Errorf("unknown dialog style %q (want grey, blue or red)", name)
}

// Layout is the set of styles one dialog draws with
type Layout struct {
	Box            screen.Style // frame glyphs and background
	Title          screen.Style
	Content        screen.Style
	OptionActive   screen.Style // highlighted option, slider bar, explorer selection
	OptionInactive screen.Style
}

var palette = [...]Layout{
	StyleGrey: {
		Box:            screen.Style{Fg: screen.ColorWhite, Bg: screen.ColorGrey},
		Title:          screen.Style{Fg: screen.ColorBlack, Bg: screen.ColorWhite},
		Content:        screen.Style{Fg: screen.ColorWhite, Bg: screen.ColorGrey},
		OptionActive:   screen.Style{Fg: screen.ColorBlack, Bg: screen.ColorWhite},
		OptionInactive: screen.Style{Fg: screen.ColorWhite, Bg: screen.ColorGrey},
	},
	StyleBlue: {
		Box:            screen.Style{Fg: screen.ColorWhite, Bg: screen.ColorBlue},
		Title:          screen.Style{Fg: screen.ColorBlack, Bg: screen.ColorWhite},
		Content:        screen.Style{Fg: screen.ColorWhite, Bg: screen.ColorBlue},
		OptionActive:   screen.Style{Fg: screen.ColorBlack, Bg: screen.ColorWhite},
		OptionInactive: screen.Style{Fg: screen.ColorWhite, Bg: screen.ColorBlue},
	},
	StyleRed: {
		Box:            screen.Style{Fg: screen.ColorWhite, Bg: screen.ColorRed},
		Title:          screen.Style{Fg: screen.ColorRed, Bg: screen.ColorWhite},
		Content:        screen.Style{Fg: screen.ColorWhite, Bg: screen.ColorRed},
		OptionActive:   screen.Style{Fg: screen.ColorBlack, Bg: screen.ColorWhite},
		OptionInactive: screen.Style{Fg: screen.ColorWhite, Bg: screen.ColorRed},
	},
}

// Palette returns the layout for s. Unknown selectors get the grey scheme.
func Palette(s StyleSelector) Layout {
	if !s.Valid() {
		return palette[StyleGrey]
	}
	return palette[s]
}

// Styles lists every selector in palette order
func Styles() []StyleSelector {
	return []StyleSelector{StyleGrey, StyleBlue, StyleRed}
}
