package tools

import (
	"context"
	"log/slog"
	"time"

	"github.com/lexandro/kondo/catalog"
	"github.com/lexandro/kondo/project"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// ProjectsArgs defines the input parameters for the kondo_projects tool.
type ProjectsArgs struct {
	Pattern    string `json:"pattern,omitempty" jsonschema:"Glob pattern matched against project paths relative to the scan root (default **)"`
	Type       string `json:"type,omitempty" jsonschema:"Only list projects of this type (e.g. Cargo, Node, Python)"`
	NameOnly   bool   `json:"nameOnly,omitempty" jsonschema:"If true return only project paths without type and size"`
	MaxResults int    `json:"maxResults,omitempty" jsonschema:"Maximum number of results to return (default 50)"`
}

// ProjectsHandler holds the dependencies for the projects tool.
type ProjectsHandler struct {
	Catalog *catalog.Catalog
	Logger  *slog.Logger
}

// Handle processes a kondo_projects request.
func (h *ProjectsHandler) Handle(ctx context.Context, req *mcp.CallToolRequest, args ProjectsArgs) (*mcp.CallToolResult, any, error) {
	start := time.Now()

	pattern := args.Pattern
	if pattern == "" {
		pattern = "**"
	}

	var typeFilter *project.ProjectType
	if args.Type != "" {
		pt, err := project.ParseType(args.Type)
		if err != nil {
			h.Logger.Warn("kondo_projects called with unknown type", "type", args.Type)
			return errorResult("Error: %v", err), nil, nil
		}
		typeFilter = &pt
	}

	// Filter by type before truncating to maxResults
	limit := args.MaxResults
	if typeFilter != nil {
		limit = h.Catalog.Count()
	}
	results, err := h.Catalog.SearchByGlob(pattern, limit)
	if err != nil {
		h.Logger.Error("kondo_projects failed", "pattern", pattern, "error", err)
		return errorResult("Search error: %v", err), nil, nil
	}
	if typeFilter != nil {
		results = filterByType(results, *typeFilter, args.MaxResults)
	}

	h.Logger.Info("kondo_projects",
		"pattern", pattern,
		"type", args.Type,
		"results", len(results),
		"elapsed", time.Since(start),
	)

	return textResult(FormatEntries(results, args.NameOnly)), nil, nil
}

func filterByType(entries []*catalog.Entry, pt project.ProjectType, maxResults int) []*catalog.Entry {
	if maxResults <= 0 {
		maxResults = 50
	}
	filtered := make([]*catalog.Entry, 0, len(entries))
	for _, entry := range entries {
		if len(filtered) >= maxResults {
			break
		}
		if entry.Project.Type == pt {
			filtered = append(filtered, entry)
		}
	}
	return filtered
}
