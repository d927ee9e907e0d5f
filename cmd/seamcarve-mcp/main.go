package main

import (
	"fmt"
	"log"
	"os"

	"github.com/spf13/cobra"

	"github.com/ironsheep/seamcarve-mcp/internal/config"
	"github.com/ironsheep/seamcarve-mcp/internal/parallel"
	"github.com/ironsheep/seamcarve-mcp/internal/server"
)

// Version information - set by ldflags during build
var (
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

// app holds what every subcommand shares: the resolved configuration.
type app struct {
	configPath string
	cfg        *config.Config
}

func newRootCmd() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:   "seamcarve-mcp",
		Short: "Content-aware image width reduction over MCP or from the command line",
		Long: `seamcarve-mcp narrows images by seam carving: it repeatedly removes the
lowest-energy vertical paths of pixels instead of cropping or scaling.

Without a subcommand it runs an MCP server over stdin/stdout. Configure it in
your MCP client (e.g., Claude Desktop).

Environment variables:
  SEAMCARVE_CONFIG=path        YAML configuration file
  SEAMCARVE_LOG_LEVEL=debug    Enable debug logging
  SEAMCARVE_WORKERS=n          Worker goroutines
  SEAMCARVE_BANDS=k            Default seams per pass
  SEAMCARVE_STRATEGY=tiled     Default cost schedule (rows or tiled)`,
		SilenceUsage: true,
		Args:         cobra.NoArgs,
	}
	root.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		return a.setup()
	}
	root.RunE = func(cmd *cobra.Command, args []string) error {
		return a.serve()
	}
	root.PersistentFlags().StringVar(&a.configPath, "config", os.Getenv(config.EnvConfigPath), "YAML configuration file")

	root.AddCommand(newCarveCmd(a), newInitConfigCmd(), newVersionCmd())
	return root
}

// setup loads the configuration and points the logger at stderr, since
// stdout is for the MCP protocol.
func (a *app) setup() error {
	log.SetOutput(os.Stderr)
	log.SetFlags(log.Ldate | log.Ltime | log.Lshortfile)

	cfg, err := config.Load(a.configPath)
	if err != nil {
		return err
	}
	a.cfg = cfg
	return nil
}

func (a *app) serve() error {
	pool := parallel.New(a.cfg.Processing.Workers)
	defer pool.Close()

	if a.cfg.Debug() {
		log.Printf("Seamcarve MCP Server v%s (built %s, commit %s), %d workers", Version, BuildTime, GitCommit, pool.Workers())
	}

	srv := server.New(a.cfg, pool, Version)
	if err := srv.Run(); err != nil {
		return fmt.Errorf("server error: %w", err)
	}
	return nil
}

// skipSetup replaces the root's configuration loading for commands that do
// not need it.
func skipSetup(cmd *cobra.Command, args []string) error { return nil }

func newVersionCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "seamcarve-mcp %s\n", Version)
			fmt.Fprintf(out, "  Build time: %s\n", BuildTime)
			fmt.Fprintf(out, "  Git commit: %s\n", GitCommit)
		},
	}
	cmd.PersistentPreRunE = skipSetup
	return cmd
}

func newInitConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "init-config PATH",
		Short: "Write a configuration file with the default values",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := os.Stat(args[0]); err == nil {
				return fmt.Errorf("%s already exists", args[0])
			}
			if err := config.CreateDefaultConfigFile(args[0]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", args[0])
			return nil
		},
	}
	cmd.PersistentPreRunE = skipSetup
	return cmd
}
