package catalog

import (
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/lexandro/kondo/project"
)

// Entry is a project discovered by the last scan together with its measured
// artifact size.
type Entry struct {
	Project      project.Project
	RelativePath string    // Path relative to the scan root (forward slashes)
	ArtifactSize int64     // Bytes in existing artifact directories
	ScannedAt    time.Time // When the size was measured
}

// Catalog is the in-memory list of projects found by the most recent scan.
// It is rebuilt from scratch by every scan and never persisted.
type Catalog struct {
	mu          sync.RWMutex
	root        string
	entries     map[string]*Entry // key: relative path (forward slashes)
	sortedPaths []string          // sorted for consistent iteration
	scannedAt   time.Time
}

// New creates an empty catalog.
func New() *Catalog {
	return &Catalog{
		entries:     make(map[string]*Entry),
		sortedPaths: make([]string, 0),
	}
}

// Replace discards the current contents and stores entries as the result of
// a scan of root.
func (c *Catalog) Replace(root string, entries []*Entry) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.root = root
	c.entries = make(map[string]*Entry, len(entries))
	c.sortedPaths = make([]string, 0, len(entries))
	for _, entry := range entries {
		if _, exists := c.entries[entry.RelativePath]; !exists {
			c.sortedPaths = append(c.sortedPaths, entry.RelativePath)
		}
		c.entries[entry.RelativePath] = entry
	}
	sort.Strings(c.sortedPaths)
	c.scannedAt = time.Now()
}

// Remove drops an entry by its relative path.
func (c *Catalog) Remove(relativePath string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, exists := c.entries[relativePath]; !exists {
		return
	}
	delete(c.entries, relativePath)

	idx := sort.SearchStrings(c.sortedPaths, relativePath)
	if idx < len(c.sortedPaths) && c.sortedPaths[idx] == relativePath {
		c.sortedPaths = append(c.sortedPaths[:idx], c.sortedPaths[idx+1:]...)
	}
}

// SetArtifactSize updates the recorded size of an entry, e.g. after a clean.
func (c *Catalog) SetArtifactSize(relativePath string, size int64) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if entry, ok := c.entries[relativePath]; ok {
		updated := *entry
		updated.ArtifactSize = size
		updated.ScannedAt = time.Now()
		c.entries[relativePath] = &updated
	}
}

// Get returns the entry for a relative path, or nil if not found.
func (c *Catalog) Get(relativePath string) *Entry {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.entries[normalize(relativePath)]
}

// Root returns the directory of the last scan.
func (c *Catalog) Root() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.root
}

// ScannedAt returns when the catalog was last replaced.
func (c *Catalog) ScannedAt() time.Time {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.scannedAt
}

// Count returns the number of cataloged projects.
func (c *Catalog) Count() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

// TotalArtifactBytes returns the summed artifact size of all entries.
func (c *Catalog) TotalArtifactBytes() int64 {
	c.mu.RLock()
	defer c.mu.RUnlock()

	var total int64
	for _, entry := range c.entries {
		total += entry.ArtifactSize
	}
	return total
}

// TypeCounts returns project count per ecosystem display name.
func (c *Catalog) TypeCounts() map[string]int {
	c.mu.RLock()
	defer c.mu.RUnlock()

	counts := make(map[string]int)
	for _, entry := range c.entries {
		counts[entry.Project.TypeName()]++
	}
	return counts
}

// SearchByGlob returns entries whose relative path matches a doublestar
// pattern, in path order.
func (c *Catalog) SearchByGlob(pattern string, maxResults int) ([]*Entry, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if maxResults <= 0 {
		maxResults = 50
	}

	pattern = normalize(pattern)
	if !doublestar.ValidatePattern(pattern) {
		return nil, fmt.Errorf("invalid glob pattern: %s", pattern)
	}

	var results []*Entry
	for _, path := range c.sortedPaths {
		if len(results) >= maxResults {
			break
		}
		matched, err := doublestar.Match(pattern, path)
		if err != nil || !matched {
			continue
		}
		results = append(results, c.entries[path])
	}
	return results, nil
}

// All returns every entry in path order.
func (c *Catalog) All() []*Entry {
	c.mu.RLock()
	defer c.mu.RUnlock()

	result := make([]*Entry, 0, len(c.sortedPaths))
	for _, path := range c.sortedPaths {
		if entry, ok := c.entries[path]; ok {
			result = append(result, entry)
		}
	}
	return result
}

func normalize(path string) string {
	return strings.ReplaceAll(path, "\\", "/")
}
