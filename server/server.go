package server

import (
	"github.com/lexandro/kondo/tools"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// Version is reported to MCP clients and by the CLI.
const Version = "0.1.0"

// Handlers groups the tool handlers registered on the server.
type Handlers struct {
	Scan     *tools.ScanHandler
	Projects *tools.ProjectsHandler
	Search   *tools.SearchHandler
	Size     *tools.SizeHandler
	Clean    *tools.CleanHandler
	Status   *tools.StatusHandler
}

// Setup creates and configures the MCP server with all tool registrations.
func Setup(handlers Handlers) *mcp.Server {
	mcpServer := mcp.NewServer(
		&mcp.Implementation{
			Name:    "kondo",
			Version: Version,
		},
		&mcp.ServerOptions{
			Instructions: `This server finds software projects under a directory and reclaims the disk space held by their build artifacts (target, node_modules, __pycache__, .venv, build, ...).

Typical flow:
- Call kondo_scan to discover projects and measure their artifacts
- Use kondo_projects or kondo_search to pick projects from the last scan
- Use kondo_size to see the per-directory breakdown of one project
- Use kondo_clean to delete a project's artifact directories. Deletion is permanent; confirm with the user first`,
		},
	)

	mcp.AddTool(mcpServer, &mcp.Tool{
		Name: "kondo_scan",
		Description: `Scan a directory tree for software projects (Cargo, Node, Unity, Stack, SBT, Maven, CMake, Unreal, Jupyter, Python, Composer) and measure their artifact directories.

Replaces the results of any previous scan. Hidden directories, entries of .kondoignore and configured ignored directories are skipped. Project roots are not descended into.`,
	}, handlers.Scan.Handle)

	mcp.AddTool(mcpServer, &mcp.Tool{
		Name: "kondo_projects",
		Description: `List projects from the last scan by glob pattern over their paths relative to the scan root.

Pattern examples:
  - "**" - every project
  - "work/**" - projects under work/
  - "*" - projects directly in the scan root`,
	}, handlers.Projects.Handle)

	mcp.AddTool(mcpServer, &mcp.Tool{
		Name: "kondo_search",
		Description: `Search projects from the last scan.

Query formats:
  - Plain words: match path segments (e.g., "frontend")
  - type:<name>: projects of a type (e.g., "type:cargo")
  - dirs:<name>: projects whose artifact dir currently exists (e.g., "dirs:node_modules")
  - "quoted text": exact phrase over the path
  - /regex/: regular expression over path segments`,
	}, handlers.Search.Handle)

	mcp.AddTool(mcpServer, &mcp.Tool{
		Name:        "kondo_size",
		Description: "Show the size of every top-level directory of one project, split into artifact and non-artifact space.",
	}, handlers.Size.Handle)

	mcp.AddTool(mcpServer, &mcp.Tool{
		Name:        "kondo_clean",
		Description: "Permanently delete the artifact directories of one project. Source files are never touched. Reports the space freed and any directories that could not be removed.",
	}, handlers.Clean.Handle)

	mcp.AddTool(mcpServer, &mcp.Tool{
		Name:        "kondo_status",
		Description: "Show the last scan root, project counts per type, reclaimable space, memory usage and uptime.",
	}, handlers.Status.Handle)

	return mcpServer
}
