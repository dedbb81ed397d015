package project

import (
	"fmt"
	"slices"
	"strings"
)

// ProjectType identifies a build ecosystem. The set is closed; every value
// has a descriptor in kinds.
type ProjectType uint8

const (
	Cargo ProjectType = iota
	Node
	Unity
	Stack
	SBT
	Maven
	CMake
	Unreal
	Jupyter
	Python
	Composer

	numTypes
)

// descriptor is everything known about an ecosystem. marker is an exact file
// name, suffix a file name ending; exactly one of them is set.
type descriptor struct {
	name         string
	marker       string
	suffix       string
	artifactDirs []string
}

var kinds = [numTypes]descriptor{
	Cargo:    {name: "Cargo", marker: "Cargo.toml", artifactDirs: []string{"target"}},
	Node:     {name: "Node", marker: "package.json", artifactDirs: []string{"node_modules"}},
	Unity:    {name: "Unity", marker: "Assembly-CSharp.csproj", artifactDirs: []string{"Library", "Temp", "Obj", "Logs", "MemoryCaptures", "Build", "Builds"}},
	Stack:    {name: "Stack", marker: "stack.yaml", artifactDirs: []string{".stack-work"}},
	SBT:      {name: "SBT", marker: "build.sbt", artifactDirs: []string{"target", "project/target"}},
	Maven:    {name: "Maven", marker: "pom.xml", artifactDirs: []string{"target"}},
	CMake:    {name: "CMake", marker: "CMakeLists.txt", artifactDirs: []string{"build"}},
	Unreal:   {name: "Unreal", suffix: ".uproject", artifactDirs: []string{"Binaries", "Build", "Saved", "DerivedDataCache", "Intermediate"}},
	Jupyter:  {name: "Jupyter", suffix: ".ipynb", artifactDirs: []string{".ipynb_checkpoints"}},
	Python:   {name: "Python", suffix: ".py", artifactDirs: []string{"__pycache__", "__pypackages__", ".venv"}},
	Composer: {name: "Composer", marker: "composer.json", artifactDirs: []string{"vendor"}},
}

// Types returns every ProjectType in declaration order.
func Types() []ProjectType {
	types := make([]ProjectType, 0, numTypes)
	for t := ProjectType(0); t < numTypes; t++ {
		types = append(types, t)
	}
	return types
}

// Valid reports whether t is one of the declared values.
func (t ProjectType) Valid() bool { return t < numTypes }

// String returns the display name, e.g. "Cargo".
func (t ProjectType) String() string {
	if !t.Valid() {
		return fmt.Sprintf("ProjectType(%d)", uint8(t))
	}
	return kinds[t].name
}

// ArtifactDirs returns the artifact directory names, relative to the project
// root, in a fresh slice.
func (t ProjectType) ArtifactDirs() []string {
	if !t.Valid() {
		return nil
	}
	return slices.Clone(kinds[t].artifactDirs)
}

// isArtifactDir reports whether name is one of t's artifact directories.
func (t ProjectType) isArtifactDir(name string) bool {
	return t.Valid() && slices.Contains(kinds[t].artifactDirs, name)
}

// ParseType looks a type up by display name, ignoring case.
func ParseType(name string) (ProjectType, error) {
	for t := ProjectType(0); t < numTypes; t++ {
		if strings.EqualFold(kinds[t].name, name) {
			return t, nil
		}
	}
	return 0, fmt.Errorf("unknown project type %q", name)
}

// MarshalText encodes the display name.
func (t ProjectType) MarshalText() ([]byte, error) {
	if !t.Valid() {
		return nil, fmt.Errorf("invalid project type %d", uint8(t))
	}
	return []byte(kinds[t].name), nil
}

// UnmarshalText accepts a display name in any case.
func (t *ProjectType) UnmarshalText(text []byte) error {
	parsed, err := ParseType(string(text))
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}
