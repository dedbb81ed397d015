package tools

import (
	"context"
	"log/slog"

	"github.com/lexandro/kondo/catalog"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// ScanArgs defines the input parameters for the kondo_scan tool.
type ScanArgs struct {
	Path       string `json:"path,omitempty" jsonschema:"Directory to scan for projects (default: the server's root directory)"`
	MaxResults int    `json:"maxResults,omitempty" jsonschema:"Maximum number of projects to list in the reply (default 50)"`
}

// ScanFunc rebuilds the catalog from a scan of rootDir.
// It is provided by the serve command to avoid circular dependencies.
type ScanFunc func(rootDir string) (catalog.BuildResult, error)

// ScanHandler holds the dependencies for the scan tool.
type ScanHandler struct {
	DoScan      ScanFunc
	Catalog     *catalog.Catalog
	DefaultRoot string
	Logger      *slog.Logger
}

// Handle processes a kondo_scan request.
func (h *ScanHandler) Handle(ctx context.Context, req *mcp.CallToolRequest, args ScanArgs) (*mcp.CallToolResult, any, error) {
	rootDir := h.DefaultRoot
	if args.Path != "" {
		resolved, err := resolvePath(h.DefaultRoot, args.Path)
		if err != nil {
			return errorResult("Error: invalid path %s: %v", args.Path, err), nil, nil
		}
		rootDir = resolved
	}
	if rootDir == "" {
		h.Logger.Warn("kondo_scan called without a path")
		return errorResult("Error: path parameter is required"), nil, nil
	}

	h.Logger.Info("kondo_scan started", "root", rootDir)

	result, err := h.DoScan(rootDir)
	if err != nil {
		h.Logger.Error("kondo_scan failed", "root", rootDir, "error", err)
		return errorResult("Scan error: %v", err), nil, nil
	}

	h.Logger.Info("kondo_scan complete",
		"root", rootDir,
		"projects", result.Projects,
		"artifactBytes", result.ArtifactBytes,
		"errors", len(result.Errors),
		"elapsed", result.Duration,
	)

	maxResults := args.MaxResults
	if maxResults <= 0 {
		maxResults = 50
	}
	output := FormatScanResult(rootDir, result, h.Catalog.All(), maxResults)
	return textResult(output), nil, nil
}
