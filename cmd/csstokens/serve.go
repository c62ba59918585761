package main

import (
	"os"

	"github.com/spf13/cobra"
	"github.com/yacobolo/csstokens/internal/mcp"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve token extraction to AI assistants over MCP (stdio)",
	Long: `Run a Model Context Protocol server on stdin/stdout.

Tools:
  extract_design_tokens  merged tokens for a directory (json|markdown|css|text)
  list_stylesheets       files extraction would read
  analyze_css            tokens for an inline stylesheet

Discovery flags (--source, --include, --exclude, ...) set the defaults the
tools start from. Logs go to stderr; stdout carries protocol messages only.`,
	PreRunE: func(cmd *cobra.Command, _ []string) error {
		return loadConfig(cmd)
	},
	RunE: func(cmd *cobra.Command, _ []string) error {
		logger := newLogger(cmd.ErrOrStderr())
		config := buildConfig(logger)

		logger.Info("mcp server starting", "source", config.SourceDir, "version", version)
		return mcp.NewServer(config, version).Serve(cmd.Context(), os.Stdin, os.Stdout)
	},
}
