package cli

import (
	"encoding/json"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegisterProjectScope(t *testing.T) {
	dir := t.TempDir()

	stdout, _, err := executeCommand(t, "", "register", "--binary", "/opt/kondo", "project", dir, "--", "--root", "/src")
	require.NoError(t, err)
	assert.Contains(t, stdout, `Registered "kondo"`)

	data, err := os.ReadFile(filepath.Join(dir, ".mcp.json"))
	require.NoError(t, err)

	var config struct {
		MCPServers map[string]struct {
			Command string   `json:"command"`
			Args    []string `json:"args"`
		} `json:"mcpServers"`
	}
	require.NoError(t, json.Unmarshal(data, &config))

	entry, ok := config.MCPServers["kondo"]
	require.True(t, ok)
	if runtime.GOOS != "windows" {
		assert.Equal(t, "/opt/kondo", entry.Command)
		assert.Equal(t, []string{"serve", "--root", "/src"}, entry.Args)
	}
}

func TestRegisterUnknownScope(t *testing.T) {
	_, _, err := executeCommand(t, "", "register", "global")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown scope")
}

func TestRegisterUserScopeRejectsDirectory(t *testing.T) {
	_, _, err := executeCommand(t, "", "register", "user", "somewhere")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unexpected argument")
}

func TestSplitAtDash(t *testing.T) {
	positional, rest := splitAtDash([]string{"project", ".", "--root", "/x"}, 2)
	assert.Equal(t, []string{"project", "."}, positional)
	assert.Equal(t, []string{"--root", "/x"}, rest)

	positional, rest = splitAtDash([]string{"user"}, -1)
	assert.Equal(t, []string{"user"}, positional)
	assert.Nil(t, rest)
}
