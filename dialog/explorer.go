package dialog

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/cornish/boxdialog/boxcanvas"
	"github.com/cornish/boxdialog/dirsource"
	"github.com/cornish/boxdialog/screen"
)

const (
	defaultColumns     = 4
	defaultFilenameMax = 255

	// "Directory: " and "File name: " are both this wide
	fieldLabelWidth = 11

	// unreadableName stands in for an entry the source failed to read
	unreadableName = "<error>"
)

// Explorer is an open file explorer. Entries are laid out row by row in a
// grid of rows x cols cells per page.
//
// selection is -1 while the file name was typed and matches no entry;
// otherwise filename equals the selected entry's name.
type Explorer struct {
	sh *Shell

	x, y, w, h     int
	rows, cols     int
	colWidth       int
	filter         string
	mustExist      bool
	filenameMax    int
	src            dirsource.Source
	dir            dirsource.Handle // nil when nothing could be listed
	path           string
	entries        []dirsource.Entry
	unreadable     []bool // entries shown but never opened or accepted
	page           int
	selection      int
	filename       []rune
	needsFullClear bool
	status         string // last enumeration error, shown on the bottom row

	result    string
	cancelled bool
}

// Result returns the accepted path and false when the explorer was cancelled
func (e *Explorer) Result() (string, bool) {
	if e.cancelled {
		return "", false
	}
	return e.result, e.result != ""
}

// Selection returns the selected entry index, -1 in typed mode
func (e *Explorer) Selection() int {
	return e.selection
}

// Filename returns the text of the file name field
func (e *Explorer) Filename() string {
	return string(e.filename)
}

// Path returns the directory being listed
func (e *Explorer) Path() string {
	return e.path
}

// Page returns the displayed page, counted from 0
func (e *Explorer) Page() int {
	return e.page
}

// PageCount returns how many pages the listing needs
func (e *Explorer) PageCount() int {
	perPage := e.rows * e.cols
	return (len(e.entries) + perPage - 1) / perPage
}

// pageOf returns the page entry i is displayed on
func (e *Explorer) pageOf(i int) int {
	return (i / e.cols) / e.rows
}

// setDir replaces the listing with h. The previous handle is closed.
func (e *Explorer) setDir(h dirsource.Handle) {
	if e.dir != nil && e.dir != h {
		e.dir.Close()
	}
	e.dir = h
	e.path = h.Path()
	e.entries = e.entries[:0]
	e.unreadable = e.unreadable[:0]
	// entries stay aligned with handle indexes for OpenSubdir
	for i := 0; i < h.Len(); i++ {
		ent, err := h.Entry(i)
		if err != nil {
			e.sh.log.Warn("reading entry failed", "path", e.path, "index", i, "error", err)
			ent = dirsource.Entry{Name: unreadableName}
		}
		e.entries = append(e.entries, ent)
		e.unreadable = append(e.unreadable, err != nil)
	}
	e.page = 0
	e.needsFullClear = true
}

func (e *Explorer) close() {
	if e.dir != nil {
		e.dir.Close()
		e.dir = nil
	}
}

// indexOf returns the index of the entry called name, or -1
func (e *Explorer) indexOf(name string) int {
	if name == "" {
		return -1
	}
	for i, ent := range e.entries {
		if ent.Name == name && !e.unreadable[i] {
			return i
		}
	}
	return -1
}

// Redraw repaints the directory and file name fields, the page of entries
// holding the selection and the bottom row.
func (e *Explorer) Redraw() {
	if e.selection >= 0 {
		if p := e.pageOf(e.selection); p != e.page {
			e.page = p
			e.needsFullClear = true
		}
	}

	l, surf := e.sh.layout, e.sh.surface
	if e.needsFullClear {
		surf.SetStyle(l.Box)
		surf.ClearArea(e.x+1, e.y+5, e.w-2, e.rows+1)
		e.needsFullClear = false
	}

	fieldWidth := e.w - fieldLabelWidth - 3
	e.sh.Print(e.x+1, e.y+1, l.Title, fieldLabelWidth, false, "Directory: ")
	e.sh.Print(e.x+1+fieldLabelWidth, e.y+1, l.Content, fieldWidth, false, e.path)
	e.sh.Print(e.x+1, e.y+3, l.Title, fieldLabelWidth, false, "File name: ")
	e.sh.Print(e.x+1+fieldLabelWidth, e.y+3, l.Content, fieldWidth, false, string(e.filename))

	switch pages := e.PageCount(); {
	case e.status != "":
		e.sh.Print(e.x+1, e.y+e.h-2, l.Content, e.w-2, true, e.status)
	case pages > 1:
		e.sh.Print(e.x+1, e.y+e.h-2, l.Title, e.w-2, true, fmt.Sprintf("Page %d/%d", e.page+1, pages))
	}

	perPage := e.rows * e.cols
	first := e.page * perPage
	for i := first; i < min(first+perPage, len(e.entries)); i++ {
		ent := e.entries[i]
		row, col := (i/e.cols)%e.rows, i%e.cols

		st := l.OptionInactive
		if i == e.selection {
			st = l.OptionActive
		}
		name := ent.Name
		if ent.IsDir {
			name = "[" + name + "]"
		}
		e.sh.Print(e.x+1+col*e.colWidth, e.y+5+row, st, e.colWidth-2, false, name)
	}

	// Park the cursor at the end of the file name, inside the box
	surf.SetCursor(min(e.x+fieldLabelWidth+1+len(e.filename), e.x+e.w-2), e.y+3)
}

// typeable reports whether r may be typed into the file name
func typeable(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r) || r == '.' || r == '_' || r == ' '
}

// HandleKey applies one key. Arrows move the selection, typing edits the
// file name, Enter opens a directory or accepts a file and Escape cancels.
func (e *Explorer) HandleKey(k screen.Key) Transition {
	candidate, typed := e.selection, false
	switch k.Code {
	case screen.KeyUp:
		candidate -= e.cols
	case screen.KeyDown:
		candidate += e.cols
	case screen.KeyLeft:
		candidate--
	case screen.KeyRight:
		candidate++
	case screen.KeyBackspace:
		if len(e.filename) == 0 {
			return Ignored
		}
		e.filename = e.filename[:len(e.filename)-1]
		typed = true
	case screen.KeyRune:
		if !typeable(k.Rune) || len(e.filename) >= e.filenameMax {
			return Ignored
		}
		e.filename = append(e.filename, k.Rune)
		typed = true
	case screen.KeyEscape:
		e.cancelled = true
		return Finished
	case screen.KeyEnter, screen.KeyReturn:
		if e.enter() {
			return Finished
		}
		return Changed
	default:
		return Ignored
	}

	if typed {
		e.clearStatus()
		e.selection = e.indexOf(string(e.filename))
		return Changed
	}
	if candidate < 0 || candidate >= len(e.entries) || candidate == e.selection {
		return Ignored
	}
	e.clearStatus()
	e.selection = candidate
	e.filename = []rune(e.entries[candidate].Name)
	return Changed
}

func (e *Explorer) clearStatus() {
	if e.status != "" {
		e.status = ""
		e.needsFullClear = true
	}
}

// matches reports whether ext passes the extension filter
func (e *Explorer) matches(ext string) bool {
	return e.filter == "" || ext == e.filter
}

// enter handles Enter and reports whether the explorer has a result
func (e *Explorer) enter() bool {
	e.clearStatus()
	if e.selection >= 0 {
		if e.unreadable[e.selection] {
			return false
		}
		ent := e.entries[e.selection]
		if ent.IsDir {
			e.openDir(e.selection)
			return false
		}
		if e.matches(ent.Ext) {
			e.result = ent.FullPath
			return true
		}
		return false
	}

	name := string(e.filename)
	if e.mustExist || name == "" || !e.matches(dirsource.Ext(name)) {
		return false
	}
	e.result = strings.TrimSuffix(e.path, "/") + "/" + name
	return true
}

// openDir descends into entry i. On failure the current directory is listed
// again and the error is shown on the bottom row.
func (e *Explorer) openDir(i int) {
	sub, err := e.dir.OpenSubdir(i)
	if err != nil {
		e.sh.log.Warn("open directory failed", "path", e.entries[i].FullPath, "error", err)
		e.status = "Open failed: " + err.Error()
		if again, rerr := e.src.OpenSorted(e.path); rerr == nil {
			e.setDir(again)
			e.selection = min(e.selection, len(e.entries)-1)
			if e.selection >= 0 {
				e.filename = []rune(e.entries[e.selection].Name)
			}
		} else {
			e.sh.log.Warn("relisting directory failed", "path", e.path, "error", rerr)
		}
		e.needsFullClear = true
		return
	}

	e.setDir(sub)
	e.filename = e.filename[:0]
	e.selection = -1
	e.sh.log.Debug("directory opened", "path", e.path, "entries", len(e.entries))
}

// ShowFileExplorer shows a modal file browser and returns the accepted path.
// filterExt ("txt" or ".txt") limits which files can be accepted; empty
// accepts any. Unless mustExist is set, a typed name that matches no entry
// is accepted relative to the listed directory. The boolean is false when
// the user pressed Escape.
func ShowFileExplorer(env Env, filterExt, title string, mustExist bool, style StyleSelector) (string, bool, error) {
	if err := env.check(); err != nil {
		return "", false, err
	}
	if !style.Valid() {
		return "", false, fmt.Errorf("%w: %v", ErrInvalidArgs, style)
	}
	numCols := env.Columns
	if numCols == 0 {
		numCols = defaultColumns
	}
	filenameMax := env.FilenameMax
	if filenameMax == 0 {
		filenameMax = defaultFilenameMax
	}
	if numCols < 0 || filenameMax < 0 {
		return "", false, fmt.Errorf("%w: columns %d, filename max %d", ErrInvalidArgs, numCols, filenameMax)
	}

	cols, rows := env.Surface.Size()
	w, h := 3*cols/4, 3*rows/4
	x, y := cols/8, rows/8
	numRows := h - 7
	colWidth := (w - 2) / numCols
	if numRows < 1 || colWidth < 3 || w < fieldLabelWidth+4 {
		return "", false, fmt.Errorf("%w: %dx%d terminal is too small for the explorer", ErrInvalidArgs, cols, rows)
	}

	sh, err := openShell(env, style, "explorer")
	if err != nil {
		return "", false, err
	}
	defer sh.Close()

	c := sh.NewCanvas(x, y, w, h)
	c.StampBox(0, 0, w, 3, boxcanvas.StyleWeak)
	c.StampBox(0, 0, w, 5, boxcanvas.StyleStrong)
	sh.DrawFrame(c)
	sh.Print(x+w/4, y, sh.layout.Title, w/2, true, title)

	e := &Explorer{
		sh:          sh,
		x:           x,
		y:           y,
		w:           w,
		h:           h,
		rows:        numRows,
		cols:        numCols,
		colWidth:    colWidth,
		filter:      strings.TrimPrefix(filterExt, "."),
		mustExist:   mustExist,
		filenameMax: filenameMax,
		src:         env.Dirs,
	}
	if e.src == nil {
		e.src = dirsource.OS()
	}
	defer e.close()
	e.start(env.StartDir)

	if err := sh.run(env.Keys, e); err != nil {
		sh.log.Warn("explorer aborted", "error", err)
		return "", false, err
	}
	path, ok := e.Result()
	sh.log.Debug("explorer closed", "path", path, "accepted", ok)
	return path, ok, nil
}

// start lists dir, falling back to the working directory. The first entry
// starts out selected.
func (e *Explorer) start(dir string) {
	if dir == "" {
		dir = "."
	}
	h, err := e.src.OpenSorted(dir)
	if err != nil && dir != "." {
		e.sh.log.Warn("start directory unavailable", "path", dir, "error", err)
		e.status = "Open failed: " + err.Error()
		h, err = e.src.OpenSorted(".")
	}
	if err != nil {
		e.sh.log.Warn("listing failed", "path", dir, "error", err)
		e.status = "Open failed: " + err.Error()
		e.path = dir
		e.selection = -1
		e.needsFullClear = true
		return
	}

	e.setDir(h)
	e.selection = -1
	if len(e.entries) > 0 {
		e.selection = 0
		e.filename = []rune(e.entries[0].Name)
	}
}
