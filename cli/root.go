// Package cli implements the kondo command line.
package cli

import (
	"io"
	"log/slog"
	"os"

	"github.com/fatih/color"
	"github.com/lexandro/kondo/config"
	"github.com/lexandro/kondo/server"
	"github.com/lexandro/kondo/walk"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
)

// globalOptions are the persistent flags shared by every command.
type globalOptions struct {
	configPath  string
	workers     int
	logLevel    string
	logFile     string
	color       string
	ignoredDirs []string
}

// app is the state prepared before any command runs.
type app struct {
	cfg      *config.Config
	logger   *slog.Logger
	closeLog func()
}

// NewRootCommand creates and returns the root cobra command for kondo
func NewRootCommand() *cobra.Command {
	var globals globalOptions
	var discover discoverOptions
	a := &app{}

	cmd := &cobra.Command{
		Use:   "kondo [dirs...]",
		Short: "Find software projects and delete their build artifacts",
		Long: `kondo walks the given directories (default: the current directory), finds
Cargo, Node, Unity, Stack, SBT, Maven, CMake, Unreal, Jupyter, Python and
Composer projects, and offers to delete the regenerable artifact directories
of each one (target, node_modules, build, __pycache__, ...).

Deletion is permanent. Hidden directories are never scanned.`,
		Version:       server.Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.init(cmd, &globals)
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if a.closeLog != nil {
				a.closeLog()
			}
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDiscover(cmd, a, args, discover)
		},
	}

	flags := cmd.PersistentFlags()
	flags.StringVar(&globals.configPath, "config", "", "Config file (default: $XDG_CONFIG_HOME/kondo/config.yaml)")
	flags.IntVarP(&globals.workers, "workers", "j", 0, "Traversal worker count (default: max(CPUs, 4))")
	flags.StringVar(&globals.logLevel, "log-level", "", "Log level: debug|info|warn|error")
	flags.StringVar(&globals.logFile, "log-file", "", "Log file path (default: stderr)")
	flags.StringVar(&globals.color, "color", "", "Colorize output: auto|always|never")
	flags.StringSliceVarP(&globals.ignoredDirs, "ignored-dirs", "I", nil, "Directory names or globs to skip (repeatable)")

	cmd.Flags().BoolVarP(&discover.all, "all", "a", false, "Clean every project found without asking")
	cmd.Flags().CountVarP(&discover.quiet, "quiet", "q", "Less output: -q hides artifact details, -qq also hides project lines with --all")
	cmd.Flags().StringVarP(&discover.older, "older", "o", "", "Only projects not modified for this long (e.g. 90d, 6M, 1y, 36h)")
	cmd.Flags().StringSliceVarP(&discover.types, "type", "t", nil, "Only projects of these types (e.g. node,cargo)")

	cmd.AddCommand(newCleanCommand(a))
	cmd.AddCommand(newServeCommand(a))
	cmd.AddCommand(newRegisterCommand())

	return cmd
}

// init loads the config file, applies flag overrides and sets up logging,
// parallelism and color output.
func (a *app) init(cmd *cobra.Command, globals *globalOptions) error {
	configPath := globals.configPath
	if configPath == "" {
		if defaultPath, err := config.DefaultPath(); err == nil {
			configPath = defaultPath
		}
	}

	cfg := config.DefaultConfig()
	if configPath != "" {
		loaded, err := config.LoadConfig(configPath)
		if err != nil {
			return err
		}
		cfg = loaded
	}

	flags := cmd.Flags()
	var workers *int
	if flags.Changed("workers") {
		workers = &globals.workers
	}
	var logLevel, logFile, colorMode *string
	if flags.Changed("log-level") {
		logLevel = &globals.logLevel
	}
	if flags.Changed("log-file") {
		logFile = &globals.logFile
	}
	if flags.Changed("color") {
		colorMode = &globals.color
	}
	cfg.MergeWithFlags(workers, logLevel, logFile, colorMode, globals.ignoredDirs)
	if err := cfg.Validate(); err != nil {
		return err
	}

	if cfg.Workers > 0 {
		walk.SetParallelism(cfg.Workers)
	}
	applyColorMode(cfg.Color, cmd.OutOrStdout())

	a.cfg = cfg
	a.logger, a.closeLog = setupLogger(cfg.LogLevel, cfg.LogFile, cmd.ErrOrStderr())
	a.logger.Debug("configuration loaded",
		"config", configPath,
		"workers", walk.Parallelism(),
		"ignoredDirs", cfg.IgnoredDirs,
	)
	return nil
}

func applyColorMode(mode string, out io.Writer) {
	switch mode {
	case config.ColorAlways:
		color.NoColor = false
	case config.ColorNever:
		color.NoColor = true
	default:
		color.NoColor = !isTerminal(out)
	}
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
