package tools

import (
	"context"
	"log/slog"
	"time"

	"github.com/lexandro/kondo/catalog"
	"github.com/lexandro/kondo/format"
	"github.com/lexandro/kondo/project"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// SizeArgs defines the input parameters for the kondo_size tool.
type SizeArgs struct {
	Path string `json:"path" jsonschema:"Project directory, absolute or relative to the last scan root"`
}

// SizeHandler holds the dependencies for the size tool.
type SizeHandler struct {
	Catalog *catalog.Catalog
	Logger  *slog.Logger
}

// Handle processes a kondo_size request.
func (h *SizeHandler) Handle(ctx context.Context, req *mcp.CallToolRequest, args SizeArgs) (*mcp.CallToolResult, any, error) {
	start := time.Now()

	if args.Path == "" {
		h.Logger.Warn("kondo_size called with empty path")
		return errorResult("Error: path parameter is required"), nil, nil
	}

	path, err := resolvePath(h.Catalog.Root(), args.Path)
	if err != nil {
		return errorResult("Error: invalid path %s: %v", args.Path, err), nil, nil
	}

	p, err := project.Detect(path)
	if err != nil {
		h.Logger.Info("kondo_size not a project", "path", path, "error", err)
		return errorResult("Error: %v", err), nil, nil
	}

	size := p.SizeDirs()

	h.Logger.Info("kondo_size",
		"path", path,
		"type", p.TypeName(),
		"artifactBytes", size.ArtifactSize,
		"elapsed", time.Since(start),
	)

	return textResult(format.SizeReport(p, size)), nil, nil
}
