package scan

import (
	"fmt"
	"iter"
	"strings"

	"github.com/lexandro/kondo/project"
	"github.com/lexandro/kondo/walk"
)

// Kind separates directories that could not be opened from problems found
// while walking an opened directory.
type Kind int

const (
	// KindIO means the directory could not be opened or listed at all.
	KindIO Kind = iota
	// KindWalk covers broken links, link loops and partial listings.
	KindWalk
)

func (k Kind) String() string {
	if k == KindIO {
		return "io"
	}
	return "walk"
}

// Error is a per-directory failure reported in the scan sequence.
type Error struct {
	Kind Kind
	Path string
	Err  error
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s error at %s: %v", e.Kind, e.Path, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

// DirFilter decides whether a directory is left out of the scan. It is
// consulted for every child directory, never for the root.
type DirFilter interface {
	ShouldSkipDir(absolutePath string) bool
}

// Options configures a scan. The zero value is usable.
type Options struct {
	// Workers overrides walk.Parallelism() when positive.
	Workers int
	// Ignore excludes directories in addition to hidden ones.
	Ignore DirFilter
}

// result is one element of the scan sequence; exactly one field is set.
type result struct {
	project project.Project
	err     error
}

// Scan walks the tree below root and yields one Project for every directory
// holding a marker file, without descending into that directory. Failures
// are yielded as *Error values with a zero Project. Every range over the
// returned sequence starts a new scan; the order of results is unspecified.
// Breaking out of the loop stops the traversal.
func Scan(root string, opts Options) iter.Seq2[project.Project, error] {
	return func(yield func(project.Project, error) bool) {
		start, err := walk.Root(root)
		if err != nil {
			yield(project.Project{}, &Error{Kind: KindIO, Path: root, Err: err})
			return
		}

		workers := opts.Workers
		if workers < 1 {
			workers = walk.Parallelism()
		}
		results := make(chan result, workers*4)
		stop := make(chan struct{})

		go func() {
			defer close(results)
			walk.Run([]walk.Dir{start}, workers, stop, func(_ int, dir walk.Dir) []walk.Dir {
				return visit(dir, opts.Ignore, func(r result) bool {
					select {
					case results <- r:
						return true
					case <-stop:
						return false
					}
				})
			})
		}()
		// Deferred so a panicking loop body also stops the workers.
		defer func() {
			close(stop)
			for range results {
			}
		}()

		for r := range results {
			if !yield(r.project, r.err) {
				return
			}
		}
	}
}

// visit lists one directory. A recognized project is emitted and ends the
// branch; otherwise the child directories are returned for the queue.
func visit(dir walk.Dir, ignore DirFilter, emit func(result) bool) []walk.Dir {
	entries, err := walk.List(dir, false)
	if err != nil {
		kind := KindWalk
		if entries == nil {
			kind = KindIO
		}
		if !emit(result{err: &Error{Kind: kind, Path: dir.Path, Err: err}}) || kind == KindIO {
			return nil
		}
	}

	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		if !entry.IsDir() {
			names = append(names, entry.Name)
		}
	}
	if t, ok := project.ClassifyNames(names); ok {
		emit(result{project: project.Project{Type: t, Path: dir.Path}})
		return nil
	}

	var children []walk.Dir
	for _, entry := range entries {
		if entry.Err != nil {
			if !emit(result{err: &Error{Kind: KindWalk, Path: entry.Path, Err: entry.Err}}) {
				return nil
			}
			continue
		}
		if !entry.IsDir() || isHidden(entry.Name) {
			continue
		}
		if ignore != nil && ignore.ShouldSkipDir(entry.Path) {
			continue
		}
		children = append(children, dir.Child(entry))
	}
	return children
}

func isHidden(name string) bool {
	return strings.HasPrefix(name, ".")
}
