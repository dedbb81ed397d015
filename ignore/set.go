package ignore

import (
	"path/filepath"
	"strings"
)

// Set holds one Matcher per scan root so a multi-root scan applies each
// root's .kondoignore only below that root.
type Set []*Matcher

// NewSet creates a matcher for every root, all sharing the custom patterns.
func NewSet(roots []string, customPatterns []string) Set {
	set := make(Set, 0, len(roots))
	for _, root := range roots {
		set = append(set, NewMatcher(MatcherOptions{RootDir: root, CustomPatterns: customPatterns}))
	}
	return set
}

// ShouldSkipDir asks the matcher of the innermost root containing
// absolutePath.
func (s Set) ShouldSkipDir(absolutePath string) bool {
	var best *Matcher
	for _, m := range s {
		if !within(m.rootDir, absolutePath) {
			continue
		}
		if best == nil || len(m.rootDir) > len(best.rootDir) {
			best = m
		}
	}
	if best == nil {
		return strings.HasPrefix(filepath.Base(absolutePath), ".")
	}
	return best.ShouldSkipDir(absolutePath)
}

func within(root string, path string) bool {
	rel, err := filepath.Rel(root, path)
	if err != nil {
		return false
	}
	return rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator))
}
