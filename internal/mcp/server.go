package mcp

import (
	"context"
	"errors"
	"io"
	"log/slog"

	"github.com/mark3labs/mcp-go/server"
	"github.com/yacobolo/csstokens"
)

const serverInstructions = `csstokens extracts the design system a codebase actually uses from its
CSS, SCSS and Sass files. Call list_stylesheets to see which files are read,
extract_design_tokens for the merged palette, typography, spacing scale and
component styles, and analyze_css to inspect a single snippet.`

// Server exposes token extraction as MCP tools.
type Server struct {
	mcpServer *server.MCPServer
	config    csstokens.Config
	logger    *slog.Logger
}

// NewServer creates a server whose tools default to config. Tool arguments
// may narrow the source directory and include patterns per call.
func NewServer(config csstokens.Config, version string) *Server {
	s := &Server{config: config, logger: config.Logger}
	if s.logger == nil {
		s.logger = slog.New(slog.DiscardHandler)
	}

	s.mcpServer = server.NewMCPServer(
		"csstokens",
		version,
		server.WithToolCapabilities(false),
		server.WithInstructions(serverInstructions),
		server.WithToolHandlerMiddleware(s.loggingMiddleware()),
		server.WithRecovery(),
	)

	s.mcpServer.AddTools(
		server.ServerTool{Tool: extractDesignTokensTool(), Handler: s.handleExtractDesignTokens},
		server.ServerTool{Tool: listStylesheetsTool(), Handler: s.handleListStylesheets},
		server.ServerTool{Tool: analyzeCSSTool(), Handler: s.handleAnalyzeCSS},
	)

	return s
}

// Serve speaks MCP over in and out until ctx is canceled or in is closed.
func (s *Server) Serve(ctx context.Context, in io.Reader, out io.Writer) error {
	stdio := server.NewStdioServer(s.mcpServer)
	stdio.SetErrorLogger(slog.NewLogLogger(s.logger.Handler(), slog.LevelError))

	err := stdio.Listen(ctx, in, out)
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}
