package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/lexandro/kondo/catalog"
	"github.com/lexandro/kondo/ignore"
	"github.com/lexandro/kondo/scan"
	"github.com/lexandro/kondo/server"
	"github.com/lexandro/kondo/tools"
	"github.com/lexandro/kondo/walk"
	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/spf13/cobra"
)

func newServeCommand(a *app) *cobra.Command {
	var rootDir string
	var skipInitialScan bool

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run kondo as an MCP server on stdio",
		Long: `Run an MCP server on stdin/stdout exposing the kondo_scan, kondo_projects,
kondo_search, kondo_size, kondo_clean and kondo_status tools.

Logs go to stderr or --log-file, never to stdout.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}
			return runServe(ctx, a, rootDir, !skipInitialScan)
		},
	}

	cmd.Flags().StringVar(&rootDir, "root", "", "Default scan directory (default: current working directory)")
	cmd.Flags().BoolVar(&skipInitialScan, "no-initial-scan", false, "Do not scan the root directory on startup")

	return cmd
}

// newScanFunc returns the catalog rebuild used by kondo_scan.
func newScanFunc(a *app, cat *catalog.Catalog, textIndex *catalog.TextIndex) tools.ScanFunc {
	return func(rootDir string) (catalog.BuildResult, error) {
		info, err := os.Stat(rootDir)
		if err != nil {
			return catalog.BuildResult{}, err
		}
		if !info.IsDir() {
			return catalog.BuildResult{}, fmt.Errorf("%s is not a directory", rootDir)
		}
		opts := scan.Options{
			Workers: a.cfg.Workers,
			Ignore:  ignore.NewSet([]string{rootDir}, a.cfg.IgnoredDirs),
		}
		return catalog.Build(rootDir, opts, cat, textIndex, a.logger), nil
	}
}

func runServe(ctx context.Context, a *app, rootDir string, initialScan bool) error {
	if rootDir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return fmt.Errorf("getting working directory: %w", err)
		}
		rootDir = wd
	}
	rootDir, err := filepath.Abs(rootDir)
	if err != nil {
		return fmt.Errorf("resolving root %s: %w", rootDir, err)
	}

	logger := a.logger
	logger.Info("starting kondo MCP server",
		"root", rootDir,
		"workers", walk.Parallelism(),
		"ignoredDirs", a.cfg.IgnoredDirs,
	)

	startTime := time.Now()

	cat := catalog.New()
	textIndex, err := catalog.NewTextIndex()
	if err != nil {
		return fmt.Errorf("creating text index: %w", err)
	}
	defer textIndex.Close()

	doScan := newScanFunc(a, cat, textIndex)
	if initialScan {
		result, err := doScan(rootDir)
		if err != nil {
			logger.Warn("initial scan failed, continuing with an empty catalog", "error", err)
		} else {
			logger.Info("initial scan complete",
				"projects", result.Projects,
				"artifactBytes", result.ArtifactBytes,
				"errors", len(result.Errors),
				"duration", result.Duration,
			)
		}
	}

	mcpServer := server.Setup(server.Handlers{
		Scan:     &tools.ScanHandler{DoScan: doScan, Catalog: cat, DefaultRoot: rootDir, Logger: logger},
		Projects: &tools.ProjectsHandler{Catalog: cat, Logger: logger},
		Search:   &tools.SearchHandler{Catalog: cat, TextIndex: textIndex, Logger: logger},
		Size:     &tools.SizeHandler{Catalog: cat, Logger: logger},
		Clean:    &tools.CleanHandler{Catalog: cat, TextIndex: textIndex, Logger: logger},
		Status:   &tools.StatusHandler{Catalog: cat, TextIndex: textIndex, StartTime: startTime, Logger: logger},
	})

	logger.Info("MCP server starting on stdio")
	if err := mcpServer.Run(ctx, &mcp.StdioTransport{}); err != nil {
		logger.Error("MCP server error", "error", err)
		return fmt.Errorf("MCP server: %w", err)
	}
	return nil
}
