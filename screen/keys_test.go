package screen

import (
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func readAll(t *testing.T, d *Decoder) []Key {
	t.Helper()
	var keys []Key
	for {
		k, err := d.ReadKey()
		if errors.Is(err, io.EOF) {
			return keys
		}
		if err != nil {
			t.Fatalf("ReadKey() error = %v", err)
		}
		keys = append(keys, k)
	}
}

func TestDecoder(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []Key
	}{
		{"arrows", "\x1b[A\x1b[B\x1b[C\x1b[D", []Key{Up, Down, Right, Left}},
		{"application arrows", "\x1bOA\x1bOB", []Key{Up, Down}},
		{"enter and return", "\n\r", []Key{Enter, Return}},
		{"lone escape", "\x1b", []Key{Escape}},
		{"backspace variants", "\x7f\x08", []Key{Backspace, Backspace}},
		{"ctrl-c cancels", "\x03", []Key{Escape}},
		{"printable", "a.b_ 1", []Key{Rune('a'), Rune('.'), Rune('b'), Rune('_'), Rune(' '), Rune('1')}},
		{"multibyte rune", "é", []Key{Rune('é')}},
		{"unknown control", "\x01", []Key{{}}},
		{"unsupported csi", "\x1b[5~x", []Key{{}, Rune('x')}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := readAll(t, NewDecoder(strings.NewReader(tt.input)))
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("ReadKey() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestKeyScript(t *testing.T) {
	s := NewKeyScript(append([]Key{Down}, TypeString("ab")...)...)
	if s.Remaining() != 3 {
		t.Fatalf("Remaining() = %d, want 3", s.Remaining())
	}

	want := []Key{Down, Rune('a'), Rune('b')}
	for i, w := range want {
		k, err := s.ReadKey()
		if err != nil {
			t.Fatalf("ReadKey() #%d error = %v", i, err)
		}
		if k != w {
			t.Errorf("ReadKey() #%d = %v, want %v", i, k, w)
		}
	}

	if _, err := s.ReadKey(); !errors.Is(err, io.EOF) {
		t.Errorf("ReadKey() after script error = %v, want io.EOF", err)
	}
}

func TestKeyString(t *testing.T) {
	tests := []struct {
		key  Key
		want string
	}{
		{Rune('x'), "x"},
		{Up, "up"},
		{Escape, "esc"},
		{Key{Code: KeyCode(200)}, "unknown"},
	}
	for _, tt := range tests {
		if got := tt.key.String(); got != tt.want {
			t.Errorf("%#v.String() = %q, want %q", tt.key, got, tt.want)
		}
	}
}

func TestIsAccept(t *testing.T) {
	for _, k := range []Key{Enter, Return} {
		if !k.IsAccept() {
			t.Errorf("%v.IsAccept() = false, want true", k)
		}
	}
	for _, k := range []Key{Escape, Rune('\n'), Up} {
		if k.IsAccept() {
			t.Errorf("%v.IsAccept() = true, want false", k)
		}
	}
}
