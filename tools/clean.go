package tools

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"
	"time"

	"github.com/lexandro/kondo/catalog"
	"github.com/lexandro/kondo/format"
	"github.com/lexandro/kondo/project"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// CleanArgs defines the input parameters for the kondo_clean tool.
type CleanArgs struct {
	Path string `json:"path" jsonschema:"Project directory whose artifact directories are deleted, absolute or relative to the last scan root"`
}

// CleanHandler holds the dependencies for the clean tool.
type CleanHandler struct {
	Catalog   *catalog.Catalog
	TextIndex *catalog.TextIndex
	Logger    *slog.Logger
}

// Handle processes a kondo_clean request. Deletion is permanent.
func (h *CleanHandler) Handle(ctx context.Context, req *mcp.CallToolRequest, args CleanArgs) (*mcp.CallToolResult, any, error) {
	start := time.Now()

	if args.Path == "" {
		h.Logger.Warn("kondo_clean called with empty path")
		return errorResult("Error: path parameter is required"), nil, nil
	}

	path, err := resolvePath(h.Catalog.Root(), args.Path)
	if err != nil {
		return errorResult("Error: invalid path %s: %v", args.Path, err), nil, nil
	}

	p, err := project.Detect(path)
	if err != nil {
		h.Logger.Info("kondo_clean not a project", "path", path, "error", err)
		return errorResult("Error: %v", err), nil, nil
	}

	before := p.Size()
	cleanErr := p.Clean()
	after := p.Size()
	h.updateCatalog(p, after)

	h.Logger.Info("kondo_clean",
		"path", path,
		"type", p.TypeName(),
		"freedBytes", before-after,
		"error", cleanErr,
		"elapsed", time.Since(start),
	)

	var builder strings.Builder
	builder.WriteString(fmt.Sprintf("Cleaned %s project %s: freed %s\n",
		p.TypeName(), p.Path, format.PrettySize(before-after)))
	if cleanErr != nil {
		builder.WriteString("\nErrors:\n")
		for _, line := range strings.Split(cleanErr.Error(), "\n") {
			builder.WriteString(fmt.Sprintf("  %s\n", line))
		}
		return &mcp.CallToolResult{
			Content: []mcp.Content{&mcp.TextContent{Text: builder.String()}},
			IsError: true,
		}, nil, nil
	}
	return textResult(builder.String()), nil, nil
}

// updateCatalog refreshes the entry for p if the last scan recorded it.
func (h *CleanHandler) updateCatalog(p project.Project, artifactSize int64) {
	rootDir := h.Catalog.Root()
	if rootDir == "" {
		return
	}
	rel, err := filepath.Rel(rootDir, p.Path)
	if err != nil {
		return
	}
	rel = filepath.ToSlash(rel)

	entry := h.Catalog.Get(rel)
	if entry == nil {
		return
	}
	h.Catalog.SetArtifactSize(rel, artifactSize)
	if h.TextIndex != nil {
		if err := h.TextIndex.Index(h.Catalog.Get(rel), p.PresentArtifactDirs()); err != nil {
			h.Logger.Debug("failed to reindex project", "path", rel, "error", err)
		}
	}
}
