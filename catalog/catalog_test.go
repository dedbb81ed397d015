package catalog

import (
	"testing"

	"github.com/lexandro/kondo/project"
)

func newEntry(rel string, pt project.ProjectType, size int64) *Entry {
	return &Entry{
		Project:      project.Project{Type: pt, Path: "/work/" + rel},
		RelativePath: rel,
		ArtifactSize: size,
	}
}

func newTestCatalog() *Catalog {
	c := New()
	c.Replace("/work", []*Entry{
		newEntry("repoA", project.Cargo, 4096),
		newEntry("group/web", project.Node, 1024),
		newEntry("group/api", project.Maven, 0),
		newEntry("notebooks", project.Jupyter, 10),
	})
	return c
}

func Test_Catalog_ReplaceAndGet(t *testing.T) {
	c := newTestCatalog()

	if c.Count() != 4 {
		t.Fatalf("expected 4 entries, got %d", c.Count())
	}
	if c.Root() != "/work" {
		t.Errorf("unexpected root %s", c.Root())
	}
	if c.ScannedAt().IsZero() {
		t.Error("expected scan time to be set")
	}

	entry := c.Get("group\\web")
	if entry == nil || entry.Project.Type != project.Node {
		t.Errorf("expected Node entry for group/web, got %+v", entry)
	}
	if c.Get("missing") != nil {
		t.Error("expected nil for an unknown path")
	}
}

func Test_Catalog_ReplaceDiscardsPrevious(t *testing.T) {
	c := newTestCatalog()
	c.Replace("/other", []*Entry{newEntry("solo", project.CMake, 1)})

	if c.Count() != 1 || c.Get("repoA") != nil {
		t.Errorf("expected only the new scan, got %d entries", c.Count())
	}
}

func Test_Catalog_AllSorted(t *testing.T) {
	c := newTestCatalog()

	all := c.All()
	want := []string{"group/api", "group/web", "notebooks", "repoA"}
	if len(all) != len(want) {
		t.Fatalf("expected %d entries, got %d", len(want), len(all))
	}
	for i, entry := range all {
		if entry.RelativePath != want[i] {
			t.Errorf("entry[%d]: expected %s, got %s", i, want[i], entry.RelativePath)
		}
	}
}

func Test_Catalog_Remove(t *testing.T) {
	c := newTestCatalog()
	c.Remove("group/web")
	c.Remove("never-there")

	if c.Count() != 3 {
		t.Fatalf("expected 3 entries, got %d", c.Count())
	}
	for _, entry := range c.All() {
		if entry.RelativePath == "group/web" {
			t.Error("removed entry still listed")
		}
	}
}

func Test_Catalog_SetArtifactSize(t *testing.T) {
	c := newTestCatalog()
	before := c.Get("repoA")

	c.SetArtifactSize("repoA", 0)

	if c.Get("repoA").ArtifactSize != 0 {
		t.Errorf("expected size 0, got %d", c.Get("repoA").ArtifactSize)
	}
	if before.ArtifactSize != 4096 {
		t.Error("previously returned entries must not change")
	}
	if c.TotalArtifactBytes() != 1034 {
		t.Errorf("expected total 1034, got %d", c.TotalArtifactBytes())
	}
}

func Test_Catalog_TypeCounts(t *testing.T) {
	c := New()
	c.Replace("/work", []*Entry{
		newEntry("a", project.Node, 0),
		newEntry("b", project.Node, 0),
		newEntry("c", project.Python, 0),
	})

	counts := c.TypeCounts()
	if counts["Node"] != 2 || counts["Python"] != 1 {
		t.Errorf("unexpected counts: %v", counts)
	}
}

func Test_Catalog_SearchByGlob(t *testing.T) {
	c := newTestCatalog()

	results, err := c.SearchByGlob("group/**", 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(results) != 2 {
		t.Fatalf("expected 2 matches, got %d", len(results))
	}
	if results[0].RelativePath != "group/api" || results[1].RelativePath != "group/web" {
		t.Errorf("unexpected order: %s, %s", results[0].RelativePath, results[1].RelativePath)
	}
}

func Test_Catalog_SearchByGlob_MaxResults(t *testing.T) {
	c := newTestCatalog()

	results, err := c.SearchByGlob("**", 2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(results) != 2 {
		t.Errorf("expected results capped at 2, got %d", len(results))
	}
}

func Test_Catalog_SearchByGlob_Invalid(t *testing.T) {
	c := newTestCatalog()

	if _, err := c.SearchByGlob("group/[", 10); err == nil {
		t.Error("expected an error for an invalid pattern")
	}
}
