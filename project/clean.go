package project

import (
	"errors"
	"fmt"
	"os"
	"sync"

	"github.com/lexandro/kondo/walk"
)

// ErrNotProject is returned by CleanPath when the directory holds no marker
// file.
var ErrNotProject = errors.New("not a recognized project")

// CleanError records a failure to remove one artifact directory.
type CleanError struct {
	Path string
	Err  error
}

func (e *CleanError) Error() string {
	return fmt.Sprintf("removing %s: %v", e.Path, e.Err)
}

func (e *CleanError) Unwrap() error { return e.Err }

// Clean removes every artifact directory of p that currently exists. A
// failure on one directory does not stop the others; all failures are
// returned joined, each as a *CleanError. Directories that are already gone
// are skipped, so a second Clean is a no-op. Non-directories named like an
// artifact directory are left alone; a symlink to a directory is removed
// without touching its target.
func (p Project) Clean() error {
	var errs []error
	for _, path := range p.artifactPaths() {
		info, err := os.Stat(path)
		if err != nil {
			if !os.IsNotExist(err) {
				errs = append(errs, &CleanError{Path: path, Err: err})
			}
			continue
		}
		if !info.IsDir() {
			continue
		}
		if err := os.RemoveAll(path); err != nil {
			errs = append(errs, &CleanError{Path: path, Err: err})
		}
	}
	return errors.Join(errs...)
}

// CleanAll cleans projects concurrently, at most workers at a time
// (walk.Parallelism() when workers < 1). The returned slice is parallel to
// projects and holds each project's Clean error.
func CleanAll(projects []Project, workers int) []error {
	if workers < 1 {
		workers = walk.Parallelism()
	}
	errs := make([]error, len(projects))
	semaphore := make(chan struct{}, workers)

	var wg sync.WaitGroup
	for i, p := range projects {
		semaphore <- struct{}{}
		wg.Add(1)
		go func() {
			defer wg.Done()
			defer func() { <-semaphore }()
			errs[i] = p.Clean()
		}()
	}
	wg.Wait()
	return errs
}

// Detect classifies dir from its own entries without descending further.
func Detect(dir string) (Project, error) {
	root, err := walk.Root(dir)
	if err != nil {
		return Project{}, err
	}
	entries, err := walk.List(root, false)
	if entries == nil && err != nil {
		return Project{}, err
	}
	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		if !entry.IsDir() {
			names = append(names, entry.Name)
		}
	}
	t, ok := ClassifyNames(names)
	if !ok {
		return Project{}, fmt.Errorf("%s: %w", dir, ErrNotProject)
	}
	return Project{Type: t, Path: dir}, nil
}

// CleanPath treats path itself as a project root, without scanning below it,
// and removes its artifact directories. The detected project is returned
// even when some removals failed.
func CleanPath(path string) (Project, error) {
	p, err := Detect(path)
	if err != nil {
		return Project{}, err
	}
	return p, p.Clean()
}
