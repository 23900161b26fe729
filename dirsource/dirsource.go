// Package dirsource lists directories for the file explorer dialog.
//
// A Source opens a directory as a sorted, indexable Handle. Entries of a
// handle are addressed by position so a dialog can page through them and
// open a subdirectory by index.
package dirsource

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"strings"
)

// ParentName is the entry that leads to the enclosing directory
const ParentName = ".."

var (
	ErrOutOfRange = errors.New("entry index out of range")
	ErrNotDir     = errors.New("entry is not a directory")
	ErrClosed     = errors.New("handle is closed")
)

// Entry describes one directory entry
type Entry struct {
	Name     string
	IsDir    bool
	Ext      string // text after the last dot of Name, without the dot
	FullPath string
}

// Source opens directories
type Source interface {
	OpenSorted(path string) (Handle, error)
}

// Handle is an open, sorted directory listing
type Handle interface {
	// Path returns the directory path as shown to the user
	Path() string
	Len() int
	Entry(i int) (Entry, error)
	OpenSubdir(i int) (Handle, error)
	Close() error
}

// FS is a Source over an fs.FS. Paths given to OpenSorted are interpreted
// relative to the file system root.
type FS struct {
	fsys fs.FS
	// root is prefixed to displayed paths; "/" when backed by the OS root
	root string
}

// NewFS creates a source over fsys. Displayed paths are fsys paths (".",
// "docs/notes").
func NewFS(fsys fs.FS) *FS {
	return &FS{fsys: fsys}
}

// OS returns a source over the host file system. Relative paths are
// resolved against the working directory and displayed as absolute paths.
func OS() *FS {
	return &FS{fsys: os.DirFS("/"), root: "/"}
}

// OpenSorted lists dir. Entries are sorted by name with directories and
// files together; a ".." entry comes first unless dir is the root.
func (s *FS) OpenSorted(dir string) (Handle, error) {
	name, err := s.fsPath(dir)
	if err != nil {
		return nil, err
	}
	return s.open(name)
}

// fsPath converts a user path to an fs.FS path
func (s *FS) fsPath(p string) (string, error) {
	if s.root == "" {
		p = path.Clean(filepath.ToSlash(p))
		if !fs.ValidPath(p) {
			return "", &fs.PathError{Op: "open", Path: p, Err: fs.ErrInvalid}
		}
		return p, nil
	}

	abs, err := filepath.Abs(p)
	if err != nil {
		return "", fmt.Errorf("resolving %s: %w", p, err)
	}
	rel := strings.TrimPrefix(filepath.ToSlash(abs), "/")
	if rel == "" {
		return ".", nil
	}
	return rel, nil
}

// display converts an fs.FS path back to the user's form
func (s *FS) display(name string) string {
	if s.root == "" {
		return name
	}
	if name == "." {
		return s.root
	}
	return s.root + name
}

func (s *FS) open(name string) (*handle, error) {
	dirEntries, err := fs.ReadDir(s.fsys, name)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", s.display(name), err)
	}

	// fs.ReadDir returns entries sorted by filename
	entries := make([]Entry, 0, len(dirEntries)+1)
	if name != "." {
		entries = append(entries, Entry{
			Name:     ParentName,
			IsDir:    true,
			FullPath: s.display(path.Dir(name)),
		})
	}
	for _, de := range dirEntries {
		entries = append(entries, Entry{
			Name:     de.Name(),
			IsDir:    de.IsDir(),
			Ext:      Ext(de.Name()),
			FullPath: s.display(path.Join(name, de.Name())),
		})
	}

	return &handle{src: s, name: name, entries: entries}, nil
}

// Ext returns the text after the last dot of name, or "" when there is none
func Ext(name string) string {
	i := strings.LastIndexByte(name, '.')
	if i < 0 {
		return ""
	}
	return name[i+1:]
}

type handle struct {
	src     *FS
	name    string
	entries []Entry
	closed  bool
}

func (h *handle) Path() string {
	return h.src.display(h.name)
}

func (h *handle) Len() int {
	return len(h.entries)
}

func (h *handle) Entry(i int) (Entry, error) {
	if h.closed {
		return Entry{}, ErrClosed
	}
	if i < 0 || i >= len(h.entries) {
		return Entry{}, ErrOutOfRange
	}
	return h.entries[i], nil
}

func (h *handle) OpenSubdir(i int) (Handle, error) {
	e, err := h.Entry(i)
	if err != nil {
		return nil, err
	}
	if !e.IsDir {
		return nil, fmt.Errorf("%s: %w", e.Name, ErrNotDir)
	}
	sub, err := h.src.open(path.Join(h.name, e.Name))
	if err != nil {
		return nil, err
	}
	return sub, nil
}

func (h *handle) Close() error {
	h.closed = true
	h.entries = nil
	return nil
}
