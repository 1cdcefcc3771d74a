// Package main implements the projeto CLI and MCP server.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
)

var (
	// configPath overrides PROJETO_CONFIG_PATH
	configPath string
	// outputJSON switches command output to JSON
	outputJSON bool
	// version information
	version = "dev"
)

// errOperationFailed marks a command whose service call resolved to its
// fallback. The notification has already been shown, so main only sets the
// exit code.
var errOperationFailed = errors.New("operation failed")

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	err := rootCmd.ExecuteContext(ctx)
	stop()
	if err != nil {
		if !errors.Is(err, errOperationFailed) {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
		}
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "projeto",
	Short: "Manage projetos through the projeto REST API",
	Long: `projeto talks to the projeto REST backend. It lists, creates, edits and
deletes projetos, keeps sticky notifications in a local SQLite file and can
expose the same operations as MCP tools.

Examples:
  # List projetos
  projeto list

  # Create one with prompts
  projeto create --interactive

  # Serve MCP over stdio
  projeto serve`,
	Version:       version,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "YAML config file (overrides PROJETO_CONFIG_PATH)")
	rootCmd.PersistentFlags().BoolVar(&outputJSON, "json", false, "Output results as JSON")
}
