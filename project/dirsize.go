package project

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/lexandro/kondo/walk"
)

// counter keeps one worker's running total on its own cache line.
type counter struct {
	n int64
	_ [56]byte
}

// DirSize returns the total size of the regular files reachable from path,
// following symbolic links. Entries that can't be read are left out of the
// sum; a missing path has size 0.
func DirSize(path string) int64 {
	info, err := os.Stat(path)
	if err != nil {
		return 0
	}
	if info.Mode().IsRegular() {
		return info.Size()
	}
	root, err := walk.Root(path)
	if err != nil {
		return 0
	}

	workers := walk.Parallelism()
	sums := make([]counter, workers)
	walk.Run([]walk.Dir{root}, workers, nil, func(worker int, dir walk.Dir) []walk.Dir {
		entries, _ := walk.List(dir, true)
		var children []walk.Dir
		for _, entry := range entries {
			switch {
			case entry.Err != nil:
			case entry.IsDir():
				children = append(children, dir.Child(entry))
			case entry.IsRegular():
				sums[worker].n += entry.Size()
			}
		}
		return children
	})

	var total int64
	for i := range sums {
		total += sums[i].n
	}
	return total
}

// joinRel joins a slash-separated relative name such as "project/target"
// onto base using the platform separator.
func joinRel(base, rel string) string {
	return filepath.Join(base, filepath.FromSlash(strings.TrimPrefix(rel, "/")))
}
