package screen

import (
	"bufio"
	"io"
	"unicode/utf8"
)

// KeyCode identifies a navigation key
type KeyCode uint8

const (
	KeyNone      KeyCode = iota // unrecognized input
	KeyRune                     // printable character in Key.Rune
	KeyEnter                    // line feed
	KeyReturn                   // carriage return
	KeyEscape
	KeyBackspace
	KeyUp
	KeyDown
	KeyLeft
	KeyRight
)

var keyNames = map[KeyCode]string{
	KeyNone:      "none",
	KeyRune:      "rune",
	KeyEnter:     "enter",
	KeyReturn:    "return",
	KeyEscape:    "esc",
	KeyBackspace: "backspace",
	KeyUp:        "up",
	KeyDown:      "down",
	KeyLeft:      "left",
	KeyRight:     "right",
}

// String returns the key name
func (k KeyCode) String() string {
	if name, ok := keyNames[k]; ok {
		return name
	}
	return "unknown"
}

// Key is one decoded keystroke
type Key struct {
	Code KeyCode
	Rune rune
}

// String returns the rune for printable keys and the key name otherwise
func (k Key) String() string {
	if k.Code == KeyRune {
		return string(k.Rune)
	}
	return k.Code.String()
}

// IsAccept reports whether the key confirms a dialog
func (k Key) IsAccept() bool {
	return k.Code == KeyEnter || k.Code == KeyReturn
}

// Convenience constructors
var (
	Up        = Key{Code: KeyUp}
	Down      = Key{Code: KeyDown}
	Left      = Key{Code: KeyLeft}
	Right     = Key{Code: KeyRight}
	Enter     = Key{Code: KeyEnter}
	Return    = Key{Code: KeyReturn}
	Escape    = Key{Code: KeyEscape}
	Backspace = Key{Code: KeyBackspace}
)

// Rune returns the key for a printable character
func Rune(r rune) Key {
	return Key{Code: KeyRune, Rune: r}
}

// KeySource is the blocking keyboard collaborator
type KeySource interface {
	ReadKey() (Key, error)
}

// Decoder turns raw terminal bytes into navigation keys.
// Arrow keys arrive as ESC [ A..D (or ESC O A..D in application mode);
// a lone ESC is the escape key.
type Decoder struct {
	r *bufio.Reader
}

// NewDecoder wraps a raw-mode input stream
func NewDecoder(r io.Reader) *Decoder {
	return &Decoder{r: bufio.NewReader(r)}
}

// ReadKey blocks until a key is available
func (d *Decoder) ReadKey() (Key, error) {
	b, err := d.r.ReadByte()
	if err != nil {
		return Key{}, err
	}

	switch {
	case b == 27:
		return d.readEscape()
	case b == '\n':
		return Enter, nil
	case b == '\r':
		return Return, nil
	case b == 127 || b == '\b':
		return Backspace, nil
	case b == 3: // ctrl+c, raw mode swallows SIGINT
		return Escape, nil
	case b < 32:
		return Key{}, nil
	case b < utf8.RuneSelf:
		return Rune(rune(b)), nil
	}

	if err := d.r.UnreadByte(); err != nil {
		return Key{}, err
	}
	r, _, err := d.r.ReadRune()
	if err != nil {
		return Key{}, err
	}
	return Rune(r), nil
}

// readEscape decodes what follows ESC. Only bytes already buffered are
// inspected, so a lone ESC does not block waiting for a sequence.
func (d *Decoder) readEscape() (Key, error) {
	if d.r.Buffered() < 2 {
		return Escape, nil
	}
	intro, _ := d.r.ReadByte()
	if intro != '[' && intro != 'O' {
		return Key{}, nil
	}
	final, _ := d.r.ReadByte()
	switch final {
	case 'A':
		return Up, nil
	case 'B':
		return Down, nil
	case 'C':
		return Right, nil
	case 'D':
		return Left, nil
	}
	// Drain the rest of an unsupported CSI sequence (e.g. ESC [ 5 ~)
	for final >= '0' && final <= '9' || final == ';' {
		if d.r.Buffered() == 0 {
			break
		}
		final, _ = d.r.ReadByte()
	}
	return Key{}, nil
}

// KeyScript replays a fixed key sequence and then reports io.EOF
type KeyScript struct {
	keys []Key
	pos  int
}

// NewKeyScript creates a replaying key source
func NewKeyScript(keys ...Key) *KeyScript {
	return &KeyScript{keys: keys}
}

// ReadKey returns the next scripted key
func (s *KeyScript) ReadKey() (Key, error) {
	if s.pos >= len(s.keys) {
		return Key{}, io.EOF
	}
	k := s.keys[s.pos]
	s.pos++
	return k, nil
}

// Remaining returns how many keys have not been read yet
func (s *KeyScript) Remaining() int {
	return len(s.keys) - s.pos
}

// TypeString returns one rune key per character of s
func TypeString(s string) []Key {
	keys := make([]Key, 0, len(s))
	for _, r := range s {
		keys = append(keys, Rune(r))
	}
	return keys
}
