package cli

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/lexandro/kondo/project"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDiscoverListsAndQuits(t *testing.T) {
	root := t.TempDir()
	writeSizedFile(t, root, "engine/Cargo.toml", 10)
	writeSizedFile(t, root, "engine/target/debug/engine", 2048)

	stdout, _, err := executeCommand(t, "q\n", root)
	require.NoError(t, err)

	assert.Contains(t, stdout, filepath.Join(root, "engine")+" Cargo project (2.0KiB)")
	assert.Contains(t, stdout, "└─ target (2.0KiB)")
	assert.Contains(t, stdout, "clean? ([y]es, [n]o, [a]ll, [q]uit)")
	assert.Contains(t, stdout, "1 project with 2.0KiB of artifacts")
	assert.True(t, exists(filepath.Join(root, "engine", "target")))
}

func TestDiscoverYesCleans(t *testing.T) {
	root := t.TempDir()
	writeSizedFile(t, root, "site/package.json", 10)
	writeSizedFile(t, root, "site/node_modules/dep/index.js", 1024)

	stdout, _, err := executeCommand(t, "y\n", root)
	require.NoError(t, err)

	assert.Contains(t, stdout, "Cleaned 1 of them, freed 1.0KiB")
	assert.False(t, exists(filepath.Join(root, "site", "node_modules")))
	assert.True(t, exists(filepath.Join(root, "site", "package.json")))
}

func TestDiscoverInvalidAnswerAsksAgain(t *testing.T) {
	root := t.TempDir()
	writeSizedFile(t, root, "site/package.json", 10)
	writeSizedFile(t, root, "site/node_modules/dep/index.js", 1024)

	stdout, _, err := executeCommand(t, "maybe\nn\n", root)
	require.NoError(t, err)

	assert.Contains(t, stdout, "please answer y, n, a or q")
	assert.True(t, exists(filepath.Join(root, "site", "node_modules")))
}

func TestDiscoverAnswerAllCleansRest(t *testing.T) {
	root := t.TempDir()
	writeSizedFile(t, root, "one/Cargo.toml", 1)
	writeSizedFile(t, root, "one/target/a", 100)
	writeSizedFile(t, root, "two/pom.xml", 1)
	writeSizedFile(t, root, "two/target/b", 100)

	stdout, _, err := executeCommand(t, "a\n", root)
	require.NoError(t, err)

	assert.Contains(t, stdout, "Cleaned 2 of them, freed 200.0B")
	assert.False(t, exists(filepath.Join(root, "one", "target")))
	assert.False(t, exists(filepath.Join(root, "two", "target")))
}

func TestDiscoverAllFlag(t *testing.T) {
	root := t.TempDir()
	writeSizedFile(t, root, "one/Cargo.toml", 1)
	writeSizedFile(t, root, "one/target/a", 100)
	writeSizedFile(t, root, "nb/analysis.ipynb", 1)
	writeSizedFile(t, root, "nb/.ipynb_checkpoints/x", 50)

	stdout, _, err := executeCommand(t, "", "--all", "-qq", root)
	require.NoError(t, err)

	assert.NotContains(t, stdout, "Cargo project")
	assert.Contains(t, stdout, "2 projects with 150.0B of artifacts")
	assert.False(t, exists(filepath.Join(root, "one", "target")))
	assert.False(t, exists(filepath.Join(root, "nb", ".ipynb_checkpoints")))
}

func TestDiscoverSkipsProjectsWithoutArtifacts(t *testing.T) {
	root := t.TempDir()
	writeSizedFile(t, root, "clean/Cargo.toml", 1)

	stdout, _, err := executeCommand(t, "", root)
	require.NoError(t, err)

	assert.NotContains(t, stdout, "Cargo project")
	assert.Contains(t, stdout, "0 projects with 0.0B of artifacts")
}

func TestDiscoverAllFlagKeepsFileNamedLikeArtifact(t *testing.T) {
	root := t.TempDir()
	writeSizedFile(t, root, "native/CMakeLists.txt", 1)
	writeSizedFile(t, root, "native/build", 15)
	writeSizedFile(t, root, "one/Cargo.toml", 1)
	writeSizedFile(t, root, "one/target/a", 100)

	stdout, _, err := executeCommand(t, "", "--all", root)
	require.NoError(t, err)

	assert.NotContains(t, stdout, "CMake project")
	assert.Contains(t, stdout, "1 project with 100.0B of artifacts")
	assert.True(t, exists(filepath.Join(root, "native", "build")))
	assert.False(t, exists(filepath.Join(root, "one", "target")))
}

func TestDiscoverTypeFilter(t *testing.T) {
	root := t.TempDir()
	writeSizedFile(t, root, "one/Cargo.toml", 1)
	writeSizedFile(t, root, "one/target/a", 100)
	writeSizedFile(t, root, "two/package.json", 1)
	writeSizedFile(t, root, "two/node_modules/b", 100)

	stdout, _, err := executeCommand(t, "", "--all", "--type", "node", root)
	require.NoError(t, err)

	assert.Contains(t, stdout, "Node project")
	assert.NotContains(t, stdout, "Cargo project")
	assert.True(t, exists(filepath.Join(root, "one", "target")))
}

func TestDiscoverUnknownType(t *testing.T) {
	_, _, err := executeCommand(t, "", "--type", "gradle", t.TempDir())
	assert.Error(t, err)
}

func TestDiscoverOlderFiltersRecentProjects(t *testing.T) {
	root := t.TempDir()
	writeSizedFile(t, root, "one/Cargo.toml", 1)
	writeSizedFile(t, root, "one/target/a", 100)

	stdout, _, err := executeCommand(t, "", "--all", "--older", "30d", root)
	require.NoError(t, err)

	assert.Contains(t, stdout, "0 projects with 0.0B of artifacts")
	assert.True(t, exists(filepath.Join(root, "one", "target")))
}

func TestDiscoverScanErrorsFailTheRun(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "missing")

	stdout, stderr, err := executeCommand(t, "", "--all", missing)
	require.Error(t, err)

	assert.Contains(t, err.Error(), "1 errors occurred")
	assert.Contains(t, stderr, missing)
	assert.Contains(t, stdout, "0 projects")
}

func TestDiscoverIgnoredDirs(t *testing.T) {
	root := t.TempDir()
	writeSizedFile(t, root, "archive/old/Cargo.toml", 1)
	writeSizedFile(t, root, "archive/old/target/a", 100)

	stdout, _, err := executeCommand(t, "", "--all", "--ignored-dirs", "archive", root)
	require.NoError(t, err)

	assert.Contains(t, stdout, "0 projects")
	assert.True(t, exists(filepath.Join(root, "archive", "old", "target")))
}

func TestParseAge(t *testing.T) {
	tests := []struct {
		input   string
		want    time.Duration
		wantErr bool
	}{
		{"", 0, false},
		{"36h", 36 * time.Hour, false},
		{"90m", 90 * time.Minute, false},
		{"2d", 48 * time.Hour, false},
		{"1w", 7 * 24 * time.Hour, false},
		{"6M", 180 * 24 * time.Hour, false},
		{"1y", 365 * 24 * time.Hour, false},
		{"xd", 0, true},
		{"-1d", 0, true},
		{"soon", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := parseAge(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestKeepReclaimable(t *testing.T) {
	now := time.Now()
	sized := []sizedProject{
		{project: project.Project{Path: "empty"}},
		{project: project.Project{Path: "recent"}, artifactSize: 1, lastModified: now.Add(-time.Hour)},
		{project: project.Project{Path: "stale"}, artifactSize: 1, lastModified: now.Add(-48 * time.Hour)},
	}

	kept := keepReclaimable(append([]sizedProject(nil), sized...), 24*time.Hour, now)
	require.Len(t, kept, 1)
	assert.Equal(t, "stale", kept[0].project.Path)

	kept = keepReclaimable(append([]sizedProject(nil), sized...), 0, now)
	assert.Len(t, kept, 2)
}
