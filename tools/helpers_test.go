package tools

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/lexandro/kondo/catalog"
	"github.com/lexandro/kondo/scan"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func writeSizedFile(t *testing.T, root string, rel string, size int) {
	t.Helper()
	path := filepath.Join(root, filepath.FromSlash(rel))
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, make([]byte, size), 0644); err != nil {
		t.Fatal(err)
	}
}

// newTestWorkspace creates a tree with a Cargo, a Node and a Python project
// and returns its root with a catalog built from it.
func newTestWorkspace(t *testing.T) (string, *catalog.Catalog, *catalog.TextIndex) {
	t.Helper()
	root := t.TempDir()
	writeSizedFile(t, root, "rust/engine/Cargo.toml", 10)
	writeSizedFile(t, root, "rust/engine/target/debug/engine", 4096)
	writeSizedFile(t, root, "web/site/package.json", 10)
	writeSizedFile(t, root, "web/site/node_modules/left-pad/index.js", 1024)
	writeSizedFile(t, root, "scripts/tool.py", 10)

	cat := catalog.New()
	ti, err := catalog.NewTextIndex()
	if err != nil {
		t.Fatalf("failed to create text index: %v", err)
	}
	t.Cleanup(func() { ti.Close() })

	catalog.Build(root, scan.Options{Workers: 2}, cat, ti, discardLogger())
	return root, cat, ti
}

func resultText(t *testing.T, result *mcp.CallToolResult) string {
	t.Helper()
	if len(result.Content) == 0 {
		t.Fatal("expected content in result")
	}
	return result.Content[0].(*mcp.TextContent).Text
}
