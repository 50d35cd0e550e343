// Package cmd is the CLI entrypoint. It stands in for the spec's
// "external collaborators": it loads configuration, wires it into the
// lsp package's Manager, and formats query results as text — none of
// which the core package does itself.
package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"clangdmcp/internal/config"
	"clangdmcp/internal/lsp"
)

var rootCmd = &cobra.Command{
	Use:   "clangdmcp",
	Short: "A bridge between an MCP agent and a clangd language server",
	Long: `clangdmcp runs a single warm clangd process against a C/C++ project
and exposes code-intelligence queries (definition, references, hover,
symbols, implementations, call hierarchy) suitable for driving from a
tool-calling agent.`,
}

// Execute runs the CLI, exiting the process on error. The root context is
// cancelled on SIGINT/SIGTERM so serveCmd's block-wait unwinds into a clean
// Manager.Reset instead of leaving the clangd subprocess orphaned.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func loadManager(projectRoot string) (*lsp.Manager, *config.Config, error) {
	cfg, err := config.Load(projectRoot)
	if err != nil {
		return nil, nil, fmt.Errorf("loading config: %w", err)
	}
	mgr := lsp.NewManager(lsp.Options{
		ServerPath: cfg.ServerPath,
		ServerArgs: cfg.ServerArgs,
		Timeout:    cfg.RequestTimeout,
	})
	return mgr, cfg, nil
}

func init() {
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(queryCmd)
	rootCmd.AddCommand(statusCmd)
}

var serveCmd = &cobra.Command{
	Use:   "serve <project-root>",
	Short: "Warm a clangd process against a project root and block until interrupted",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		projectRoot := args[0]
		mgr, _, err := loadManager(projectRoot)
		if err != nil {
			return err
		}
		ctx := cmd.Context()
		if _, err := mgr.Get(ctx, projectRoot); err != nil {
			return fmt.Errorf("starting clangd: %w", err)
		}
		fmt.Printf("clangd is ready for %s\n", projectRoot)
		<-ctx.Done()
		return mgr.Reset(context.Background())
	},
}

var statusCmd = &cobra.Command{
	Use:   "status <project-root>",
	Short: "Print the current readiness/indexing status for a project root",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		projectRoot := args[0]
		mgr, _, err := loadManager(projectRoot)
		if err != nil {
			return err
		}
		ctx := cmd.Context()
		if _, err := mgr.Get(ctx, projectRoot); err != nil {
			return fmt.Errorf("starting clangd: %w", err)
		}
		return printJSON(lsp.Status(mgr))
	},
}
