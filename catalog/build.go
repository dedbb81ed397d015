package catalog

import (
	"log/slog"
	"path/filepath"
	"sync"
	"time"

	"github.com/lexandro/kondo/scan"
	"github.com/lexandro/kondo/walk"
)

// BuildResult summarizes one catalog rebuild.
type BuildResult struct {
	Projects      int
	ArtifactBytes int64
	Errors        []error
	Duration      time.Duration
}

// Build scans rootDir, sizes every project found and replaces the contents of
// both the catalog and the text index with the result. Scan errors are
// returned in the result and do not stop the rebuild.
func Build(
	rootDir string,
	opts scan.Options,
	cat *Catalog,
	textIndex *TextIndex,
	logger *slog.Logger,
) BuildResult {
	start := time.Now()
	results := scan.Collect(scan.Scan(rootDir, opts))
	for _, err := range results.Errors {
		logger.Debug("scan error", "error", err)
	}

	entries := make([]*Entry, len(results.Projects))
	presentDirs := make([][]string, len(results.Projects))

	// Size projects with a bounded worker pool
	workerCount := opts.Workers
	if workerCount < 1 {
		workerCount = walk.Parallelism()
	}
	jobs := make(chan int, len(results.Projects))

	var totalSize int64
	var mu sync.Mutex
	var wg sync.WaitGroup
	for i := 0; i < workerCount; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for idx := range jobs {
				p := results.Projects[idx]
				entry := &Entry{
					Project:      p,
					RelativePath: relativeTo(rootDir, p.Path),
					ArtifactSize: p.Size(),
					ScannedAt:    time.Now(),
				}
				entries[idx] = entry
				presentDirs[idx] = p.PresentArtifactDirs()

				mu.Lock()
				totalSize += entry.ArtifactSize
				mu.Unlock()
			}
		}()
	}
	for idx := range results.Projects {
		jobs <- idx
	}
	close(jobs)
	wg.Wait()

	cat.Replace(rootDir, entries)

	if err := textIndex.Clear(); err != nil {
		logger.Warn("failed to clear text index", "error", err)
	}
	for idx, entry := range entries {
		if err := textIndex.Index(entry, presentDirs[idx]); err != nil {
			logger.Debug("skipped project", "path", entry.RelativePath, "error", err)
		}
	}

	return BuildResult{
		Projects:      len(entries),
		ArtifactBytes: totalSize,
		Errors:        results.Errors,
		Duration:      time.Since(start),
	}
}

func relativeTo(rootDir string, path string) string {
	rel, err := filepath.Rel(rootDir, path)
	if err != nil {
		return filepath.ToSlash(path)
	}
	return filepath.ToSlash(rel)
}
