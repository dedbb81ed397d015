package tools

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func Test_CleanHandler_RemovesArtifacts(t *testing.T) {
	root, cat, ti := newTestWorkspace(t)
	h := &CleanHandler{Catalog: cat, TextIndex: ti, Logger: discardLogger()}

	result, _, err := h.Handle(context.Background(), nil, CleanArgs{Path: "rust/engine"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.IsError {
		t.Fatalf("expected success, got: %s", resultText(t, result))
	}

	if text := resultText(t, result); !strings.Contains(text, "freed 4.0KiB") {
		t.Errorf("expected freed size, got: %s", text)
	}
	if _, err := os.Stat(filepath.Join(root, "rust", "engine", "target")); !os.IsNotExist(err) {
		t.Errorf("expected target to be removed, stat error: %v", err)
	}
	if _, err := os.Stat(filepath.Join(root, "rust", "engine", "Cargo.toml")); err != nil {
		t.Errorf("expected the marker file to survive: %v", err)
	}
	if entry := cat.Get("rust/engine"); entry == nil || entry.ArtifactSize != 0 {
		t.Errorf("expected catalog size 0, got %+v", entry)
	}
	if paths, _ := ti.Search("dirs:target", 10); len(paths) != 0 {
		t.Errorf("expected the index to drop the target dir, got %v", paths)
	}
}

func Test_CleanHandler_Twice(t *testing.T) {
	_, cat, ti := newTestWorkspace(t)
	h := &CleanHandler{Catalog: cat, TextIndex: ti, Logger: discardLogger()}

	h.Handle(context.Background(), nil, CleanArgs{Path: "web/site"})
	result, _, _ := h.Handle(context.Background(), nil, CleanArgs{Path: "web/site"})

	if result.IsError {
		t.Fatalf("expected the second clean to succeed, got: %s", resultText(t, result))
	}
	if text := resultText(t, result); !strings.Contains(text, "freed 0.0B") {
		t.Errorf("expected nothing freed, got: %s", text)
	}
}

func Test_CleanHandler_NotAProject(t *testing.T) {
	_, cat, ti := newTestWorkspace(t)
	h := &CleanHandler{Catalog: cat, TextIndex: ti, Logger: discardLogger()}

	result, _, _ := h.Handle(context.Background(), nil, CleanArgs{Path: "web"})
	if !result.IsError {
		t.Fatal("expected IsError=true for a directory without markers")
	}
}
