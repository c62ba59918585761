package csstokens

import (
	"context"
	"fmt"

	"github.com/yacobolo/csstokens/internal/tokens"
)

// Extract is the main entry point: discover, load, extract, measure.
func Extract(ctx context.Context, config Config) (*ExtractResult, error) {
	return NewExtractor(config).Run(ctx)
}

// Analyze runs the engine over in-memory files.
func Analyze(ctx context.Context, files []File, opts ...Option) (*Result, error) {
	return tokens.New(opts...).Aggregate(ctx, files)
}

// Extractor runs repeated extractions over one configuration. The engine and
// its cache are shared between runs, and a run that is overtaken by a newer
// one returns tokens.ErrSuperseded instead of a stale result.
type Extractor struct {
	config  Config
	session *tokens.Session
}

// NewExtractor creates an extractor for config.
func NewExtractor(config Config) *Extractor {
	return &Extractor{
		config:  config,
		session: tokens.NewSession(tokens.New(config.options()...)),
	}
}

// Config returns the extractor's configuration.
func (e *Extractor) Config() Config {
	return e.config
}

// Run rediscovers the source tree and recomputes the summary. The run's
// generation is taken before discovery, so a run that read the tree earlier
// can never publish over one that read it later.
func (e *Extractor) Run(ctx context.Context) (*ExtractResult, error) {
	logger := e.config.logger()

	runCtx, gen, cancel := e.session.Begin(ctx)
	defer cancel()

	// 1. Discover stylesheets
	sources, stats, err := Discover(e.config)
	if err != nil {
		if runCtx.Err() != nil && ctx.Err() == nil {
			return nil, fmt.Errorf("scan failed: %w", tokens.ErrSuperseded)
		}
		return nil, fmt.Errorf("scan failed: %w", err)
	}
	logger.Debug("discovered stylesheets",
		"source", e.config.SourceDir,
		"generation", gen,
		"discovered", stats.FilesDiscovered,
		"skipped", stats.FilesSkipped)

	// 2. Load content; read failures travel with the file
	files := LoadFiles(sources)

	// 3. Extract and merge
	result, err := e.session.Finish(runCtx, gen, files)
	if err != nil {
		return nil, fmt.Errorf("extract failed: %w", err)
	}
	logger.Debug("extracted tokens",
		"generation", gen,
		"files", len(result.Files),
		"colors", len(result.Summary.Colors),
		"diagnostics", len(result.Diagnostics))

	// 4. Measure extracted stylesheets
	content := make(map[string][]byte, len(files))
	for _, f := range files {
		content[f.Path] = f.Content
	}
	fileStats := make([]FileStats, 0, len(result.Files))
	for _, path := range result.Files {
		fileStats = append(fileStats, ComputeFileStats(path, string(content[path])))
	}

	return &ExtractResult{
		Summary:     result.Summary,
		Fonts:       result.Fonts,
		Diagnostics: result.Diagnostics,
		Files:       fileStats,
		Scan:        stats,
		Generation:  gen,
	}, nil
}
