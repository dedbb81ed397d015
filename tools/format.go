package tools

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/lexandro/kondo/catalog"
	"github.com/lexandro/kondo/format"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// FormatEntries formats cataloged projects as human-readable text.
func FormatEntries(entries []*catalog.Entry, nameOnly bool) string {
	if len(entries) == 0 {
		return "No projects matched."
	}

	var builder strings.Builder
	builder.WriteString(fmt.Sprintf("Found %d projects:\n\n", len(entries)))

	for _, entry := range entries {
		if nameOnly {
			builder.WriteString(entry.RelativePath)
			builder.WriteString("\n")
		} else {
			builder.WriteString(fmt.Sprintf("  %s  (%s, %s)\n",
				entry.RelativePath,
				entry.Project.TypeName(),
				format.PrettySize(entry.ArtifactSize),
			))
		}
	}

	return builder.String()
}

// FormatScanResult formats the outcome of a catalog rebuild, listing at most
// maxResults projects and every scan error.
func FormatScanResult(rootDir string, result catalog.BuildResult, entries []*catalog.Entry, maxResults int) string {
	var builder strings.Builder
	builder.WriteString(fmt.Sprintf("Scanned %s in %s: %s\n",
		rootDir, result.Duration.Round(time.Millisecond), format.Summary(result.Projects, result.ArtifactBytes)))

	if len(entries) > 0 {
		builder.WriteString("\n")
	}
	for i, entry := range entries {
		if maxResults > 0 && i >= maxResults {
			builder.WriteString(fmt.Sprintf("  ... and %d more\n", len(entries)-maxResults))
			break
		}
		builder.WriteString("  ")
		builder.WriteString(format.ProjectLine(entry.Project, entry.ArtifactSize))
		builder.WriteString("\n")
	}

	if len(result.Errors) > 0 {
		builder.WriteString(fmt.Sprintf("\n%d errors:\n", len(result.Errors)))
		for _, err := range result.Errors {
			builder.WriteString(fmt.Sprintf("  %v\n", err))
		}
	}
	return builder.String()
}

// resolvePath makes path absolute, interpreting relative paths against
// rootDir when one is known.
func resolvePath(rootDir string, path string) (string, error) {
	if filepath.IsAbs(path) {
		return filepath.Clean(path), nil
	}
	if rootDir != "" {
		return filepath.Join(rootDir, path), nil
	}
	return filepath.Abs(path)
}

func textResult(text string) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{&mcp.TextContent{Text: text}},
	}
}

func errorResult(msg string, args ...any) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{&mcp.TextContent{Text: fmt.Sprintf(msg, args...)}},
		IsError: true,
	}
}
