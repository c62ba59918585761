package mcp

import "github.com/mark3labs/mcp-go/mcp"

// Tool names
const (
	toolExtractDesignTokens = "extract_design_tokens"
	toolListStylesheets     = "list_stylesheets"
	toolAnalyzeCSS          = "analyze_css"
)

func rootOption() mcp.ToolOption {
	return mcp.WithString("root",
		mcp.Description("Stylesheet directory. Relative paths resolve against the server's source directory (default: the source directory itself)"))
}

func includeOption() mcp.ToolOption {
	return mcp.WithArray("include",
		mcp.Description("Glob patterns relative to root, e.g. ['components/**/*.scss'] (default: all .css, .scss and .sass files)"),
		mcp.WithStringItems())
}

func extractDesignTokensTool() mcp.Tool {
	return mcp.NewTool(toolExtractDesignTokens,
		mcp.WithDescription("Extract the merged design system (colors, typography, spacing scale, component styles) from every stylesheet under root. Unreadable files are listed as diagnostics."),
		rootOption(),
		includeOption(),
		mcp.WithString("format",
			mcp.Description("Result encoding"),
			mcp.Enum("json", "markdown", "css", "text"),
			mcp.DefaultString("json")),
		mcp.WithReadOnlyHintAnnotation(true),
		mcp.WithIdempotentHintAnnotation(true),
	)
}

func listStylesheetsTool() mcp.Tool {
	return mcp.NewTool(toolListStylesheets,
		mcp.WithDescription("List the stylesheets extraction would read under root, after exclude patterns and .gitignore are applied."),
		rootOption(),
		includeOption(),
		mcp.WithReadOnlyHintAnnotation(true),
		mcp.WithIdempotentHintAnnotation(true),
	)
}

func analyzeCSSTool() mcp.Tool {
	return mcp.NewTool(toolAnalyzeCSS,
		mcp.WithDescription("Extract design tokens from a single stylesheet passed inline. Returns the token summary as JSON."),
		mcp.WithString("css",
			mcp.Required(),
			mcp.Description("Stylesheet source text")),
		mcp.WithString("path",
			mcp.Description("File name reported in token file lists; its extension selects the dialect (default: inline.css)"),
			mcp.DefaultString(defaultInlinePath)),
		mcp.WithReadOnlyHintAnnotation(true),
		mcp.WithIdempotentHintAnnotation(true),
	)
}
