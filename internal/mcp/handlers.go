package mcp

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/yacobolo/csstokens"
)

const defaultInlinePath = "inline.css"

// stylesheetList is the list_stylesheets response.
type stylesheetList struct {
	Root       string   `json:"root"`
	Files      []string `json:"files"`
	Discovered int      `json:"discovered"`
	Skipped    int      `json:"skipped"`
}

// analysis is the analyze_css response.
type analysis struct {
	Path        string                        `json:"path"`
	Tokens      csstokens.DesignSystemSummary `json:"tokens"`
	Fonts       csstokens.FontInventory       `json:"fonts"`
	Stats       csstokens.FileStats           `json:"stats"`
	Diagnostics []string                      `json:"diagnostics,omitempty"`
}

func (s *Server) handleExtractDesignTokens(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	config, errResult := s.requestConfig(req)
	if errResult != nil {
		return errResult, nil
	}

	format, err := csstokens.ParseOutputFormat(req.GetString("format", string(csstokens.OutputJSON)))
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	result, err := csstokens.Extract(ctx, config)
	if err != nil {
		if isUserError(err) {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return nil, err
	}

	var buf bytes.Buffer
	if err := csstokens.WriteOutput(&buf, result, format, csstokens.OutputOptions{NoColors: true}); err != nil {
		return nil, fmt.Errorf("rendering %s: %w", format, err)
	}
	return mcp.NewToolResultText(buf.String()), nil
}

func (s *Server) handleListStylesheets(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	config, errResult := s.requestConfig(req)
	if errResult != nil {
		return errResult, nil
	}

	sources, stats, err := csstokens.Discover(config)
	if err != nil {
		if isUserError(err) {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return nil, err
	}

	list := stylesheetList{
		Root:       config.SourceDir,
		Files:      make([]string, 0, len(sources)),
		Discovered: stats.FilesDiscovered,
		Skipped:    stats.FilesSkipped,
	}
	for _, src := range sources {
		list.Files = append(list.Files, src.Name)
	}
	return marshalToolResponse(list)
}

func (s *Server) handleAnalyzeCSS(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	css, err := req.RequireString("css")
	if err != nil {
		return mcp.NewToolResultError("css parameter is required"), nil
	}
	path := req.GetString("path", defaultInlinePath)
	if path == "" {
		path = defaultInlinePath
	}
	if !csstokens.IsStylesheet(path) {
		return mcp.NewToolResultError(fmt.Sprintf("path %q must end in .css, .scss or .sass", path)), nil
	}

	result, err := csstokens.Analyze(ctx, []csstokens.File{{Path: path, Content: []byte(css)}})
	if err != nil {
		return nil, err
	}

	resp := analysis{
		Path:   path,
		Tokens: result.Summary,
		Fonts:  result.Fonts,
		Stats:  csstokens.ComputeFileStats(path, css),
	}
	for _, diag := range result.Diagnostics {
		resp.Diagnostics = append(resp.Diagnostics, diag.Error())
	}
	return marshalToolResponse(resp)
}

// requestConfig narrows the server config by the root and include arguments.
// A non-nil result is an argument error to return to the client.
func (s *Server) requestConfig(req mcp.CallToolRequest) (csstokens.Config, *mcp.CallToolResult) {
	config := s.config

	if root := req.GetString("root", ""); root != "" {
		if !filepath.IsAbs(root) {
			root = filepath.Join(s.config.SourceDir, root)
		}
		config.SourceDir = root
	}

	if include := req.GetStringSlice("include", nil); len(include) > 0 {
		for _, pattern := range include {
			if !doublestar.ValidatePattern(pattern) {
				return config, mcp.NewToolResultError(fmt.Sprintf("invalid include pattern %q", pattern))
			}
		}
		config.Includes = include
	}

	// Progress belongs to the CLI; concurrent tool calls must not share it
	config.Progress = nil
	// Each call builds its own engine, so a memo cache would never be hit
	config.CacheSize = 0
	return config, nil
}

// isUserError reports errors caused by tool arguments rather than the server.
func isUserError(err error) bool {
	return errors.Is(err, csstokens.ErrSourceNotFound) ||
		errors.Is(err, doublestar.ErrBadPattern) ||
		errors.Is(err, os.ErrNotExist)
}

func marshalToolResponse(v any) (*mcp.CallToolResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encoding response: %w", err)
	}
	return mcp.NewToolResultText(string(data)), nil
}
