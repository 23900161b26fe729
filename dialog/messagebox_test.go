package dialog

import (
	"errors"
	"math/rand"
	"testing"

	"github.com/cornish/boxdialog/screen"
	"github.com/google/go-cmp/cmp"
)

func TestShowMessageBoxKeys(t *testing.T) {
	tests := []struct {
		name string
		keys []screen.Key
		want int
	}{
		{"down down up", []screen.Key{screen.Down, screen.Down, screen.Up, screen.Enter}, 1},
		{"accept first", []screen.Key{screen.Enter}, 0},
		{"return accepts", []screen.Key{screen.Down, screen.Return}, 1},
		{"clamped at bottom", []screen.Key{screen.Down, screen.Down, screen.Down, screen.Down, screen.Enter}, 2},
		{"clamped at top", []screen.Key{screen.Up, screen.Up, screen.Enter}, 0},
		{"other keys ignored", []screen.Key{screen.Rune('x'), screen.Escape, screen.Left, screen.Down, screen.Enter}, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env, buf, ks := newEnv(40, 12, tt.keys...)
			got, err := ShowMessageBox(env, "T", "M", []string{"A", "B", "C"}, StyleBlue)
			if err != nil {
				t.Fatalf("ShowMessageBox() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("ShowMessageBox() = %d, want %d", got, tt.want)
			}
			if ks.Remaining() != 0 {
				t.Errorf("%d keys left unread", ks.Remaining())
			}
			if buf.Locked() {
				t.Error("surface still locked")
			}
		})
	}
}

func TestShowMessageBoxLayout(t *testing.T) {
	env, buf, _ := newEnv(40, 12, screen.Down, screen.Enter)
	if _, err := ShowMessageBox(env, "Confirm", "Save changes?", []string{"Yes", "No"}, StyleBlue); err != nil {
		t.Fatalf("ShowMessageBox() error = %v", err)
	}

	// 15x6 box centered on 40x12
	var got []string
	for y := 3; y < 9; y++ {
		got = append(got, buf.Text(12, y, 15))
	}
	want := []string{
		"╔   Confirm   ╗",
		"║Save changes?║",
		"╠─────────────╣",
		"║     Yes     ║",
		"║     No      ║",
		"╚═════════════╝",
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("message box mismatch (-want +got):\n%s", diff)
	}

	layout := Palette(StyleBlue)
	checks := []struct {
		name string
		x, y int
		want screen.Style
	}{
		{"frame", 12, 3, layout.Box},
		{"title", 16, 3, layout.Title},
		{"text", 13, 4, layout.Content},
		{"inactive option", 18, 6, layout.OptionInactive},
		{"active option", 18, 7, layout.OptionActive},
	}
	for _, c := range checks {
		if got := buf.CellAt(c.x, c.y).Style; got != c.want {
			t.Errorf("%s style = %+v, want %+v", c.name, got, c.want)
		}
	}
}

func TestShowMessageBoxInvalid(t *testing.T) {
	env, buf, _ := newEnv(40, 12, screen.Enter)

	if _, err := ShowMessageBox(env, "T", "M", nil, StyleGrey); !errors.Is(err, ErrInvalidArgs) {
		t.Errorf("no options: error = %v, want ErrInvalidArgs", err)
	}
	if _, err := ShowMessageBox(env, "T", "M", []string{"A"}, StyleSelector(7)); !errors.Is(err, ErrInvalidArgs) {
		t.Errorf("bad style: error = %v, want ErrInvalidArgs", err)
	}
	if buf.Locked() {
		t.Error("rejected call left the surface locked")
	}
}

func TestMessageBoxSelectionStaysInRange(t *testing.T) {
	keys := []screen.Key{screen.Up, screen.Down, screen.Left, screen.Rune('q')}
	rng := rand.New(rand.NewSource(1))

	for n := 1; n <= 5; n++ {
		m := &MessageBox{options: make([]string, n)}
		for i := 0; i < 200; i++ {
			before := m.selected
			k := keys[rng.Intn(len(keys))]
			tr := m.HandleKey(k)

			if m.selected < 0 || m.selected >= n {
				t.Fatalf("n=%d: selected = %d after %v", n, m.selected, k)
			}
			if tr == Ignored && m.selected != before {
				t.Fatalf("n=%d: %v ignored but moved %d -> %d", n, k, before, m.selected)
			}
		}
	}
}

func TestMessageBoxEdgeMovesAreIgnored(t *testing.T) {
	m := &MessageBox{options: []string{"A", "B"}}
	if tr := m.HandleKey(screen.Up); tr != Ignored {
		t.Errorf("Up at 0 = %v, want ignored", tr)
	}
	if tr := m.HandleKey(screen.Down); tr != Changed {
		t.Errorf("Down at 0 = %v, want changed", tr)
	}
	if tr := m.HandleKey(screen.Down); tr != Ignored {
		t.Errorf("Down at last = %v, want ignored", tr)
	}
	if tr := m.HandleKey(screen.Return); tr != Finished {
		t.Errorf("Return = %v, want finished", tr)
	}
	if m.Selected() != 1 {
		t.Errorf("Selected() = %d, want 1", m.Selected())
	}
}
