// Package screen abstracts the character-cell terminal the dialogs draw on.
//
// A Surface positions the cursor, sets colors and writes bytes that are either
// UTF-8 or code page 437, depending on what the surface reports it supports.
// A KeySource delivers decoded navigation keys. Three implementations are
// provided: ANSI (raw escape sequences on a TTY), Tcell and an in-memory Buffer.
package screen

// Color is a palette index ("0"-"255") or a hex color ("#RRGGBB")
type Color string

// Console colors used by the dialog palette
const (
	ColorBlack Color = "0"
	ColorRed   Color = "1"
	ColorBlue  Color = "4"
	ColorWhite Color = "7"
	ColorGrey  Color = "8"
)

// Style is a foreground/background pair
type Style struct {
	Fg Color
	Bg Color
}

// Surface is the terminal collaborator the canvas and dialogs draw on.
type Surface interface {
	// Size returns the surface dimensions in cells
	Size() (cols, rows int)

	// SetCursor moves the cursor (0-indexed)
	SetCursor(x, y int)

	// SaveCursor pushes the cursor position and active style
	SaveCursor()

	// RestoreCursor pops what SaveCursor pushed
	RestoreCursor()

	// SetStyle sets the style used by subsequent writes and clears
	SetStyle(s Style)

	// ClearArea fills a rectangle with spaces in the active style
	ClearArea(x, y, w, h int)

	// Clear fills the whole surface with spaces in the active style
	Clear()

	// Write puts bytes at the cursor and advances it.
	// Bytes are UTF-8 when SupportsUTF8 is true, code page 437 otherwise.
	Write(p []byte) (int, error)

	// SupportsUTF8 reports whether Write expects UTF-8
	SupportsUTF8() bool

	// TryLock claims exclusive access; false when another dialog holds it
	TryLock() bool

	// Unlock releases exclusive access
	Unlock()

	// Flush pushes pending output to the device
	Flush() error
}

// cursorState is one SaveCursor entry
type cursorState struct {
	x, y  int
	style Style
}
