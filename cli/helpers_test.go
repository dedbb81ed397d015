package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

// executeCommand runs the root command with a config file that does not
// exist, so the user's own configuration never leaks into tests.
func executeCommand(t *testing.T, stdin string, args ...string) (string, string, error) {
	t.Helper()
	missingConfig := filepath.Join(t.TempDir(), "config.yaml")

	cmd := NewRootCommand()
	var stdout, stderr bytes.Buffer
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(append([]string{"--config=" + missingConfig}, args...))

	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func writeSizedFile(t *testing.T, root string, rel string, size int) {
	t.Helper()
	path := filepath.Join(root, filepath.FromSlash(rel))
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, make([]byte, size), 0644))
}

func exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
