package csstokens

import (
	"log/slog"

	"github.com/yacobolo/csstokens/internal/tokens"
)

// Engine types re-exported for library users.
type (
	ColorToken          = tokens.ColorToken
	RawColorToken       = tokens.RawColorToken
	TypographyToken     = tokens.TypographyToken
	SpacingToken        = tokens.SpacingToken
	ComponentStyleToken = tokens.ComponentStyleToken
	DesignSystemSummary = tokens.DesignSystemSummary
	FontInventory       = tokens.FontInventory
	File                = tokens.File
	FileReadError       = tokens.FileReadError
	Result              = tokens.Result
	Progress            = tokens.Progress
	Option              = tokens.Option
)

// Engine options re-exported for Analyze.
var (
	WithConcurrency = tokens.WithConcurrency
	WithCache       = tokens.WithCache
	WithLogger      = tokens.WithLogger
	WithProgress    = tokens.WithProgress
)

// ErrSuperseded is returned by an Extractor run that a newer run overtook.
var ErrSuperseded = tokens.ErrSuperseded

// IsStylesheet reports whether path has an extension the engine extracts.
var IsStylesheet = tokens.IsStylesheet

// Default discovery patterns, relative to Config.SourceDir.
var (
	DefaultIncludes = []string{"**/*.{css,scss,sass}"}
	DefaultExcludes = []string{"**/node_modules/**", "**/vendor/**", "**/*.min.css"}
)

// Config holds extraction configuration
type Config struct {
	SourceDir        string   // "web/styles"
	Includes         []string // ["**/*.css"] (default: DefaultIncludes)
	Excludes         []string // ["legacy/**"] (default: DefaultExcludes)
	RespectGitignore bool     // Skip files matched by SourceDir/.gitignore
	Concurrency      int      // Parallel extractions (default: GOMAXPROCS)
	CacheSize        int      // Per-file memo cache entries (0 disables)
	Logger           *slog.Logger
	Progress         Progress
}

func (c Config) includes() []string {
	if len(c.Includes) == 0 {
		return DefaultIncludes
	}
	return c.Includes
}

func (c Config) excludes() []string {
	if c.Excludes == nil {
		return DefaultExcludes
	}
	return c.Excludes
}

func (c Config) logger() *slog.Logger {
	if c.Logger == nil {
		return slog.New(slog.DiscardHandler)
	}
	return c.Logger
}

func (c Config) options() []Option {
	opts := []Option{
		tokens.WithConcurrency(c.Concurrency),
		tokens.WithLogger(c.logger()),
	}
	if c.CacheSize > 0 {
		opts = append(opts, tokens.WithCache(c.CacheSize))
	}
	if c.Progress != nil {
		opts = append(opts, tokens.WithProgress(c.Progress))
	}
	return opts
}

// SourceFile is a discovered stylesheet.
type SourceFile struct {
	Path string // Filesystem path used for reading
	Name string // Slash-separated path relative to SourceDir, used in reports
}

// ScanStats tracks file discovery statistics
type ScanStats struct {
	FilesDiscovered int // Total files found by include patterns
	FilesScanned    int // Files handed to the engine
	FilesSkipped    int // Files dropped by exclude patterns or .gitignore
}

// FileStats describes the structure of one extracted stylesheet.
type FileStats struct {
	Path         string `json:"path"`
	Lines        int    `json:"lines"`
	Chars        int    `json:"chars"`
	Rules        int    `json:"rules"`
	Declarations int    `json:"declarations"`
	Comments     int    `json:"comments"`
}

// ExtractResult contains the merged tokens plus discovery and per-file stats
type ExtractResult struct {
	Summary     DesignSystemSummary
	Fonts       FontInventory
	Diagnostics []FileReadError
	Files       []FileStats
	Scan        ScanStats
	Generation  uint64 // Increments on each published run of an Extractor
}
