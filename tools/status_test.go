package tools

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/lexandro/kondo/catalog"
)

func Test_StatusHandler_BeforeScan(t *testing.T) {
	ti, err := catalog.NewTextIndex()
	if err != nil {
		t.Fatalf("failed to create text index: %v", err)
	}
	t.Cleanup(func() { ti.Close() })
	h := &StatusHandler{Catalog: catalog.New(), TextIndex: ti, StartTime: time.Now(), Logger: discardLogger()}

	result, _, err := h.Handle(context.Background(), nil, StatusArgs{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	text := resultText(t, result)
	if !strings.Contains(text, "No scan yet") {
		t.Errorf("expected hint to scan, got:\n%s", text)
	}
	if !strings.Contains(text, "Projects: 0") {
		t.Errorf("expected zero projects, got:\n%s", text)
	}
}

func Test_StatusHandler_AfterScan(t *testing.T) {
	root, cat, ti := newTestWorkspace(t)
	h := &StatusHandler{Catalog: cat, TextIndex: ti, StartTime: time.Now(), Logger: discardLogger()}

	result, _, _ := h.Handle(context.Background(), nil, StatusArgs{})

	text := resultText(t, result)
	for _, want := range []string{
		"=== kondo Status ===",
		"Scan root: " + root,
		"Projects: 3",
		"Search documents: 3",
		"Reclaimable: 5.0KiB",
		"Memory usage:",
		"Project types:",
		"Cargo",
		"Python",
	} {
		if !strings.Contains(text, want) {
			t.Errorf("expected %q in status output, got:\n%s", want, text)
		}
	}
}
