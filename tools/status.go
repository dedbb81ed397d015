package tools

import (
	"context"
	"fmt"
	"log/slog"
	"runtime"
	"sort"
	"strings"
	"time"

	"github.com/lexandro/kondo/catalog"
	"github.com/lexandro/kondo/format"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// StatusArgs defines the input parameters for the kondo_status tool (none required).
type StatusArgs struct{}

// StatusHandler holds the dependencies for the status tool.
type StatusHandler struct {
	Catalog   *catalog.Catalog
	TextIndex *catalog.TextIndex
	StartTime time.Time
	Logger    *slog.Logger
}

// Handle processes a kondo_status request.
func (h *StatusHandler) Handle(ctx context.Context, req *mcp.CallToolRequest, args StatusArgs) (*mcp.CallToolResult, any, error) {
	var builder strings.Builder

	projectCount := h.Catalog.Count()
	artifactBytes := h.Catalog.TotalArtifactBytes()
	typeCounts := h.Catalog.TypeCounts()
	docCount := h.TextIndex.DocumentCount()
	uptime := time.Since(h.StartTime)

	var memStats runtime.MemStats
	runtime.ReadMemStats(&memStats)

	h.Logger.Info("kondo_status",
		"projects", projectCount,
		"artifactBytes", artifactBytes,
		"memory", memStats.Alloc,
		"uptime", uptime,
	)

	builder.WriteString("=== kondo Status ===\n\n")
	rootDir := h.Catalog.Root()
	if rootDir == "" {
		builder.WriteString("No scan yet. Call kondo_scan first.\n")
	} else {
		builder.WriteString(fmt.Sprintf("Scan root: %s\n", rootDir))
		builder.WriteString(fmt.Sprintf("Last scan: %s ago\n", format.Duration(time.Since(h.Catalog.ScannedAt()))))
	}
	builder.WriteString(fmt.Sprintf("Uptime: %s\n", format.Duration(uptime)))
	builder.WriteString(fmt.Sprintf("Projects: %d\n", projectCount))
	builder.WriteString(fmt.Sprintf("Search documents: %d\n", docCount))
	builder.WriteString(fmt.Sprintf("Reclaimable: %s\n", format.PrettySize(artifactBytes)))
	builder.WriteString(fmt.Sprintf("Memory usage: %s (heap: %s)\n",
		format.PrettySize(int64(memStats.Alloc)),
		format.PrettySize(int64(memStats.HeapAlloc)),
	))

	if len(typeCounts) > 0 {
		builder.WriteString("\nProject types:\n")

		// Sort by count descending, then name
		type typeEntry struct {
			name  string
			count int
		}
		entries := make([]typeEntry, 0, len(typeCounts))
		for name, count := range typeCounts {
			entries = append(entries, typeEntry{name, count})
		}
		sort.Slice(entries, func(i, j int) bool {
			if entries[i].count != entries[j].count {
				return entries[i].count > entries[j].count
			}
			return entries[i].name < entries[j].name
		})

		for _, entry := range entries {
			builder.WriteString(fmt.Sprintf("  %-12s %d projects\n", entry.name, entry.count))
		}
	}

	return textResult(builder.String()), nil, nil
}
