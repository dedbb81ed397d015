package cli

import (
	"fmt"

	"github.com/lexandro/kondo/register"
	"github.com/spf13/cobra"
)

const serverName = "kondo"

func newRegisterCommand() *cobra.Command {
	var binaryPath string

	cmd := &cobra.Command{
		Use:   "register (project [directory] | user) [-- serve-flags...]",
		Short: "Add the kondo MCP server to an MCP client configuration",
		Long: `Write a "kondo" entry that runs "kondo serve" into an MCP client configuration:

  kondo register project [directory]   # <directory>/.mcp.json (default: .)
  kondo register user                  # ~/.claude.json
  kondo register user -- --root ~/src  # forward flags to kondo serve`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			positional, serveArgs := splitAtDash(args, cmd.ArgsLenAtDash())
			return runRegister(cmd, positional, serveArgs, binaryPath)
		},
	}

	cmd.Flags().StringVar(&binaryPath, "binary", "", "Path written as the server command (default: this executable)")

	return cmd
}

func splitAtDash(args []string, dash int) ([]string, []string) {
	if dash < 0 {
		return args, nil
	}
	return args[:dash], args[dash:]
}

func runRegister(cmd *cobra.Command, positional []string, serveArgs []string, binaryPath string) error {
	if len(positional) == 0 {
		return fmt.Errorf("requires a scope: project or user")
	}
	scope, err := register.ParseScope(positional[0])
	if err != nil {
		return err
	}

	var directory string
	switch {
	case scope == register.ScopeProject && len(positional) == 2:
		directory = positional[1]
	case len(positional) > 1:
		return fmt.Errorf("unexpected argument %q", positional[len(positional)-1])
	}

	configPath, err := register.Register(register.Options{
		Scope:      scope,
		Directory:  directory,
		ServerName: serverName,
		BinaryPath: binaryPath,
		ServerArgs: append([]string{"serve"}, serveArgs...),
	})
	if err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Registered %q in %s\n", serverName, configPath)
	return nil
}
