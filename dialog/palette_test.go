package dialog

import (
	"testing"

	"github.com/cornish/boxdialog/screen"
)

func TestParseStyle(t *testing.T) {
	tests := []struct {
		name    string
		want    StyleSelector
		wantErr bool
	}{
		{"grey", StyleGrey, false},
		{"gray", StyleGrey, false},
		{"Blue", StyleBlue, false},
		{" red ", StyleRed, false},
		{"green", StyleGrey, true},
		{"", StyleGrey, true},
	}
	for _, tt := range tests {
		got, err := ParseStyle(tt.name)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseStyle(%q) error = %v, wantErr %v", tt.name, err, tt.wantErr)
		}
		if got != tt.want {
			t.Errorf("ParseStyle(%q) = %v, want %v", tt.name, got, tt.want)
		}
	}
}

func TestStyleSelectorString(t *testing.T) {
	for _, s := range Styles() {
		back, err := ParseStyle(s.String())
		if err != nil || back != s {
			t.Errorf("ParseStyle(%q) = %v, %v; want %v", s.String(), back, err, s)
		}
	}
	if got := StyleSelector(9).String(); got != "StyleSelector(9)" {
		t.Errorf("StyleSelector(9).String() = %q", got)
	}
}

func TestPalette(t *testing.T) {
	red := Palette(StyleRed)
	if want := (screen.Style{Fg: screen.ColorRed, Bg: screen.ColorWhite}); red.Title != want {
		t.Errorf("red title = %+v, want %+v", red.Title, want)
	}
	if want := (screen.Style{Fg: screen.ColorWhite, Bg: screen.ColorBlue}); Palette(StyleBlue).Box != want {
		t.Errorf("blue box = %+v, want %+v", Palette(StyleBlue).Box, want)
	}
	if Palette(StyleSelector(-1)) != Palette(StyleGrey) {
		t.Error("unknown selector should fall back to grey")
	}

	// Every scheme highlights the active option differently from the rest
	for _, s := range Styles() {
		l := Palette(s)
		if l.OptionActive == l.OptionInactive {
			t.Errorf("%v: active and inactive options look the same", s)
		}
		if l.Content.Bg != l.Box.Bg {
			t.Errorf("%v: content background %q differs from box %q", s, l.Content.Bg, l.Box.Bg)
		}
	}
}
