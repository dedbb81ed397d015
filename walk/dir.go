package walk

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// ErrSymlinkLoop is reported for a symbolic link that resolves to one of the
// directories it is nested in.
var ErrSymlinkLoop = errors.New("symbolic link loop")

// ancestor links a directory to the chain of directories above it. Only the
// chain is needed for loop detection, so it is shared between siblings.
type ancestor struct {
	info   fs.FileInfo
	parent *ancestor
}

// Dir is a directory waiting to be visited.
type Dir struct {
	Path  string
	Depth int
	chain *ancestor
}

// Root creates the starting Dir for a traversal. The path is followed if it
// is a symbolic link.
func Root(path string) (Dir, error) {
	info, err := os.Stat(path)
	if err != nil {
		return Dir{}, err
	}
	if !info.IsDir() {
		return Dir{}, fmt.Errorf("%s: %w", path, errNotDir)
	}
	return Dir{Path: path, chain: &ancestor{info: info}}, nil
}

var errNotDir = errors.New("not a directory")

// Entry is one child of a listed directory with symbolic links resolved.
type Entry struct {
	Name string
	Path string
	// Info describes the link target for symbolic links. It is nil for
	// regular entries when the listing was made without file info, and for
	// entries whose Err is set.
	Info fs.FileInfo
	// Err is set when the entry could not be resolved: a broken link,
	// a link loop, or a stat failure.
	Err error

	dir     bool
	regular bool
}

// IsDir reports whether the entry is (or links to) a directory.
func (e Entry) IsDir() bool { return e.dir }

// IsRegular reports whether the entry is (or links to) a regular file.
func (e Entry) IsRegular() bool { return e.regular }

// Size returns the file size, or 0 when no file info is available.
func (e Entry) Size() int64 {
	if e.Info == nil || !e.regular {
		return 0
	}
	return e.Info.Size()
}

// Child returns the Dir for a directory entry of d.
func (d Dir) Child(e Entry) Dir {
	return Dir{
		Path:  e.Path,
		Depth: d.Depth + 1,
		chain: &ancestor{info: e.Info, parent: d.chain},
	}
}

// List reads d and resolves its entries, following symbolic links.
// Directory entries always carry Info; regular files only when withFileInfo
// is set. If reading fails partway the entries read so far are returned
// along with the error. A nil slice with an error means d could not be opened.
func List(d Dir, withFileInfo bool) ([]Entry, error) {
	f, err := os.Open(d.Path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	dirEntries, readErr := f.ReadDir(-1)
	entries := make([]Entry, 0, len(dirEntries))
	for _, de := range dirEntries {
		entries = append(entries, resolve(d, de, withFileInfo))
	}
	return entries, readErr
}

func resolve(d Dir, de fs.DirEntry, withFileInfo bool) Entry {
	e := Entry{
		Name: de.Name(),
		Path: filepath.Join(d.Path, de.Name()),
	}

	mode := de.Type()
	switch {
	case mode&fs.ModeSymlink != 0:
		info, err := os.Stat(e.Path)
		if err != nil {
			e.Err = err
			return e
		}
		e.Info = info
		e.dir = info.IsDir()
		e.regular = info.Mode().IsRegular()
		if e.dir && d.loops(info) {
			e.Err = fmt.Errorf("%s: %w", e.Path, ErrSymlinkLoop)
			e.dir = false
		}
	case mode.IsDir():
		info, err := de.Info()
		if err != nil {
			e.Err = err
			return e
		}
		e.Info = info
		e.dir = true
	case mode.IsRegular():
		e.regular = true
		if withFileInfo {
			info, err := de.Info()
			if err != nil {
				e.Err = err
				e.regular = false
				return e
			}
			e.Info = info
		}
	}
	return e
}

// loops reports whether target is d itself or one of its ancestors.
func (d Dir) loops(target fs.FileInfo) bool {
	for a := d.chain; a != nil; a = a.parent {
		if a.info != nil && os.SameFile(a.info, target) {
			return true
		}
	}
	return false
}
