package ignore

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	gitignore "github.com/denormal/go-gitignore"
)

// IgnoreFileName is the per-root ignore file, in .gitignore syntax.
const IgnoreFileName = ".kondoignore"

// Matcher decides which directories the scanner skips. It combines the
// hidden-directory rule, the root's .kondoignore and custom patterns.
// A Matcher is read-only after construction and safe for concurrent use.
type Matcher struct {
	rootDir        string
	kondoIgnore    gitignore.GitIgnore
	customPatterns []string
}

// MatcherOptions configures the ignore matcher.
type MatcherOptions struct {
	RootDir string
	// CustomPatterns are directory names or doublestar globs, matched against
	// the path relative to RootDir and against the directory's base name.
	CustomPatterns []string
}

// NewMatcher creates a matcher for one scan root.
func NewMatcher(options MatcherOptions) *Matcher {
	patterns := make([]string, 0, len(options.CustomPatterns))
	for _, pattern := range options.CustomPatterns {
		pattern = strings.Trim(filepath.ToSlash(strings.TrimSpace(pattern)), "/")
		if pattern != "" {
			patterns = append(patterns, pattern)
		}
	}

	return &Matcher{
		rootDir:        options.RootDir,
		kondoIgnore:    loadIgnoreFile(filepath.Join(options.RootDir, IgnoreFileName), options.RootDir),
		customPatterns: patterns,
	}
}

// ShouldSkipDir returns true if the directory at absolutePath should be
// neither visited nor tested as a project root.
func (m *Matcher) ShouldSkipDir(absolutePath string) bool {
	baseName := filepath.Base(absolutePath)
	if strings.HasPrefix(baseName, ".") {
		return true
	}

	relativePath, err := filepath.Rel(m.rootDir, absolutePath)
	if err != nil {
		relativePath = absolutePath
	}
	relativePath = filepath.ToSlash(relativePath)

	if m.kondoIgnore != nil {
		match := m.kondoIgnore.Relative(relativePath, true)
		if match != nil && match.Ignore() {
			return true
		}
	}

	return m.matchesCustomPatterns(relativePath, baseName)
}

// Patterns returns the normalized custom patterns.
func (m *Matcher) Patterns() []string {
	return append([]string(nil), m.customPatterns...)
}

func (m *Matcher) matchesCustomPatterns(relativePath string, baseName string) bool {
	for _, pattern := range m.customPatterns {
		if matched, err := doublestar.Match(pattern, relativePath); err == nil && matched {
			return true
		}
		if matched, err := doublestar.Match(pattern, baseName); err == nil && matched {
			return true
		}
	}
	return false
}

// ValidatePatterns reports the first pattern that is not a valid glob.
func ValidatePatterns(patterns []string) (string, bool) {
	for _, pattern := range patterns {
		if !doublestar.ValidatePattern(filepath.ToSlash(pattern)) {
			return pattern, false
		}
	}
	return "", true
}

// loadIgnoreFile reads an ignore file and creates a GitIgnore matcher from it.
// Uses io.Reader approach to ensure the file handle is properly closed on Windows.
func loadIgnoreFile(filePath string, baseDir string) gitignore.GitIgnore {
	f, err := os.Open(filePath)
	if err != nil {
		return nil
	}
	defer f.Close()

	return gitignore.New(f, baseDir, nil)
}
