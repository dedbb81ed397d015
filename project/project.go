package project

import (
	"os"
	"time"

	"github.com/lexandro/kondo/walk"
)

// Project is a directory recognized as the root of a software project.
// It is a plain value pointing into the filesystem; the directory may change
// or disappear after the Project was created.
type Project struct {
	Type ProjectType `json:"type"`
	Path string      `json:"path"`
}

// SizedDir is the size of one immediate child directory of a project.
type SizedDir struct {
	Name     string `json:"name"`
	Size     int64  `json:"size"`
	Artifact bool   `json:"artifact"`
}

// ProjectSize splits a project's footprint into regenerable artifacts and
// everything else.
type ProjectSize struct {
	ArtifactSize    int64      `json:"artifactSize"`
	NonArtifactSize int64      `json:"nonArtifactSize"`
	Dirs            []SizedDir `json:"dirs"`
}

// Total returns the combined footprint.
func (s ProjectSize) Total() int64 {
	return s.ArtifactSize + s.NonArtifactSize
}

// Name returns the project path.
func (p Project) Name() string { return p.Path }

// TypeName returns the ecosystem display name.
func (p Project) TypeName() string { return p.Type.String() }

// ArtifactDirs returns the artifact directory names for the project's type.
func (p Project) ArtifactDirs() []string { return p.Type.ArtifactDirs() }

// artifactPaths joins each artifact directory name onto the project path.
func (p Project) artifactPaths() []string {
	dirs := p.Type.ArtifactDirs()
	paths := make([]string, 0, len(dirs))
	for _, dir := range dirs {
		paths = append(paths, joinRel(p.Path, dir))
	}
	return paths
}

// PresentArtifactDirs returns the artifact directory names of p that
// currently exist as directories, following symlinks. A regular file named
// like an artifact directory is not included.
func (p Project) PresentArtifactDirs() []string {
	var present []string
	for _, dir := range p.Type.ArtifactDirs() {
		if isDir(joinRel(p.Path, dir)) {
			present = append(present, dir)
		}
	}
	return present
}

// Size returns the bytes held by the artifact directories that currently
// exist. A project without any of them has size 0.
func (p Project) Size() int64 {
	var total int64
	for _, path := range p.artifactPaths() {
		if isDir(path) {
			total += DirSize(path)
		}
	}
	return total
}

func isDir(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}

// SizeDirs sizes every immediate child of the project. Files count as
// non-artifact; directories count as artifact when their name is in the
// type's artifact list. A project that can no longer be listed yields a
// zero ProjectSize.
func (p Project) SizeDirs() ProjectSize {
	var size ProjectSize

	root, err := walk.Root(p.Path)
	if err != nil {
		return size
	}
	entries, err := walk.List(root, true)
	if entries == nil && err != nil {
		return size
	}

	for _, entry := range entries {
		if entry.Err != nil {
			continue
		}
		if entry.IsRegular() {
			size.NonArtifactSize += entry.Size()
			continue
		}
		if !entry.IsDir() {
			continue
		}
		dirSize := DirSize(entry.Path)
		artifact := p.Type.isArtifactDir(entry.Name)
		if artifact {
			size.ArtifactSize += dirSize
		} else {
			size.NonArtifactSize += dirSize
		}
		size.Dirs = append(size.Dirs, SizedDir{Name: entry.Name, Size: dirSize, Artifact: artifact})
	}
	return size
}

// LastModified returns the newest modification time found outside the
// artifact directories, or the zero time when nothing could be read.
func (p Project) LastModified() time.Time {
	root, err := walk.Root(p.Path)
	if err != nil {
		return time.Time{}
	}

	workers := walk.Parallelism()
	newest := make([]time.Time, workers)
	walk.Run([]walk.Dir{root}, workers, nil, func(worker int, dir walk.Dir) []walk.Dir {
		entries, _ := walk.List(dir, true)
		var children []walk.Dir
		for _, entry := range entries {
			if entry.Err != nil || entry.Info == nil {
				continue
			}
			if entry.IsDir() {
				if dir.Depth == 0 && p.Type.isArtifactDir(entry.Name) {
					continue
				}
				children = append(children, dir.Child(entry))
			}
			if mod := entry.Info.ModTime(); mod.After(newest[worker]) {
				newest[worker] = mod
			}
		}
		return children
	})

	var latest time.Time
	for _, t := range newest {
		if t.After(latest) {
			latest = t
		}
	}
	return latest
}
