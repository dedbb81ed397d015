package tools

import (
	"context"
	"log/slog"
	"time"

	"github.com/lexandro/kondo/catalog"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// SearchArgs defines the input parameters for the kondo_search tool.
type SearchArgs struct {
	Query      string `json:"query" jsonschema:"Search query. Plain words match path segments, type:node or dirs:target filter by field, quoted for exact phrase, /regex/ for regular expression"`
	MaxResults int    `json:"maxResults,omitempty" jsonschema:"Maximum number of results to return (default 50)"`
}

// SearchHandler holds the dependencies for the search tool.
type SearchHandler struct {
	Catalog   *catalog.Catalog
	TextIndex *catalog.TextIndex
	Logger    *slog.Logger
}

// Handle processes a kondo_search request.
func (h *SearchHandler) Handle(ctx context.Context, req *mcp.CallToolRequest, args SearchArgs) (*mcp.CallToolResult, any, error) {
	start := time.Now()

	if args.Query == "" {
		h.Logger.Warn("kondo_search called with empty query")
		return errorResult("Error: query parameter is required"), nil, nil
	}

	paths, err := h.TextIndex.Search(args.Query, args.MaxResults)
	if err != nil {
		h.Logger.Error("kondo_search failed", "query", args.Query, "error", err)
		return errorResult("Search error: %v", err), nil, nil
	}

	entries := make([]*catalog.Entry, 0, len(paths))
	for _, path := range paths {
		if entry := h.Catalog.Get(path); entry != nil {
			entries = append(entries, entry)
		}
	}

	h.Logger.Info("kondo_search",
		"query", args.Query,
		"results", len(entries),
		"elapsed", time.Since(start),
	)

	return textResult(FormatEntries(entries, false)), nil, nil
}
