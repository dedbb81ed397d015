// Package register adds the kondo MCP server to an MCP client configuration.
package register

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
)

// Scope selects which client configuration file is written.
type Scope string

const (
	// ScopeProject writes <directory>/.mcp.json.
	ScopeProject Scope = "project"
	// ScopeUser writes ~/.claude.json.
	ScopeUser Scope = "user"
)

// ParseScope validates a scope name.
func ParseScope(name string) (Scope, error) {
	switch Scope(name) {
	case ScopeProject, ScopeUser:
		return Scope(name), nil
	}
	return "", fmt.Errorf("unknown scope %q (must be %q or %q)", name, ScopeProject, ScopeUser)
}

// Options describes one registration.
type Options struct {
	Scope      Scope
	Directory  string   // project scope only; defaults to "."
	ServerName string   // key under mcpServers
	BinaryPath string   // detected from the running executable when empty
	ServerArgs []string // arguments the client passes to the binary
}

type serverEntry struct {
	Command string   `json:"command"`
	Args    []string `json:"args,omitempty"`
}

// Register writes the server entry and returns the path of the updated
// configuration file. Other entries in the file are preserved.
func Register(opts Options) (string, error) {
	if opts.ServerName == "" {
		return "", errors.New("server name is required")
	}

	binaryPath := opts.BinaryPath
	if binaryPath == "" {
		detected, err := detectBinaryPath()
		if err != nil {
			return "", err
		}
		binaryPath = detected
	}

	configPath, err := ConfigPath(opts.Scope, opts.Directory)
	if err != nil {
		return "", err
	}

	config, err := readConfig(configPath)
	if err != nil {
		return "", err
	}
	servers, ok := config["mcpServers"].(map[string]any)
	if !ok {
		if _, present := config["mcpServers"]; present {
			return "", fmt.Errorf("mcpServers in %s is not an object", configPath)
		}
		servers = map[string]any{}
		config["mcpServers"] = servers
	}
	servers[opts.ServerName] = buildEntry(binaryPath, opts.ServerArgs)

	output, err := json.MarshalIndent(config, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshaling config: %w", err)
	}
	if err := writeFileAtomic(configPath, append(output, '\n')); err != nil {
		return "", err
	}
	return configPath, nil
}

// ConfigPath returns the configuration file for a scope.
func ConfigPath(scope Scope, directory string) (string, error) {
	switch scope {
	case ScopeProject:
		if directory == "" {
			directory = "."
		}
		absDir, err := filepath.Abs(directory)
		if err != nil {
			return "", fmt.Errorf("resolving directory %s: %w", directory, err)
		}
		return filepath.Join(absDir, ".mcp.json"), nil
	case ScopeUser:
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("getting home directory: %w", err)
		}
		return filepath.Join(homeDir, ".claude.json"), nil
	}
	return "", fmt.Errorf("unknown scope %q", scope)
}

func detectBinaryPath() (string, error) {
	exe, err := os.Executable()
	if err != nil {
		return "", fmt.Errorf("getting executable path: %w", err)
	}
	resolved, err := filepath.EvalSymlinks(exe)
	if err != nil {
		return "", fmt.Errorf("resolving symlinks for %s: %w", exe, err)
	}
	return resolved, nil
}

func buildEntry(binaryPath string, serverArgs []string) serverEntry {
	if runtime.GOOS == "windows" {
		return serverEntry{
			Command: "cmd",
			Args:    append([]string{"/C", binaryPath}, serverArgs...),
		}
	}
	return serverEntry{Command: binaryPath, Args: serverArgs}
}

// readConfig parses an existing client config; a missing file is empty.
func readConfig(configPath string) (map[string]any, error) {
	config := map[string]any{}
	data, err := os.ReadFile(configPath)
	if errors.Is(err, os.ErrNotExist) {
		return config, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading config %s: %w", configPath, err)
	}
	if err := json.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("parsing existing config %s: %w", configPath, err)
	}
	if config == nil {
		config = map[string]any{}
	}
	return config, nil
}

// writeFileAtomic writes to a temp file in the same directory and renames it
// over path.
func writeFileAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	tmpFile, err := os.CreateTemp(dir, ".mcp-*.tmp")
	if err != nil {
		return fmt.Errorf("creating temp file in %s: %w", dir, err)
	}
	tmpPath := tmpFile.Name()

	_, err = tmpFile.Write(data)
	if closeErr := tmpFile.Close(); err == nil {
		err = closeErr
	}
	if err == nil {
		err = os.Rename(tmpPath, path)
	}
	if err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}
