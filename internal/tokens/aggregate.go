package tokens

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"log/slog"
	"path/filepath"
	"runtime"
	"strings"
	"unicode/utf8"

	lru "github.com/hashicorp/golang-lru/v2"
	"golang.org/x/sync/errgroup"
)

// StylesheetExtensions lists the file extensions the engine consumes.
var StylesheetExtensions = []string{".css", ".scss", ".sass"}

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// IsStylesheet reports whether path has a stylesheet extension.
func IsStylesheet(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	for _, allowed := range StylesheetExtensions {
		if ext == allowed {
			return true
		}
	}
	return false
}

// Progress receives per-file notifications. Implementations must be safe for
// concurrent use.
type Progress interface {
	OnStart(total int)
	OnFileProcessed(path string)
}

// fileTokens is the extraction output of one file's content. Values are
// shared through the cache and must not be mutated.
type fileTokens struct {
	colors     FileColors
	typography FileTypography
	spacing    FileSpacing
	components FileComponents
}

// Aggregator runs the extractors over a file set and merges the results.
type Aggregator struct {
	concurrency int
	cache       *lru.Cache[string, *fileTokens]
	logger      *slog.Logger
	progress    Progress
}

// Option configures an Aggregator.
type Option func(*Aggregator)

// WithConcurrency bounds the number of files extracted in parallel.
func WithConcurrency(n int) Option {
	return func(a *Aggregator) {
		if n > 0 {
			a.concurrency = n
		}
	}
}

// WithCache memoizes per-file extraction by content hash, keeping up to size
// entries. Useful when the same corpus is re-extracted repeatedly.
func WithCache(size int) Option {
	return func(a *Aggregator) {
		if size <= 0 {
			return
		}
		cache, err := lru.New[string, *fileTokens](size)
		if err != nil {
			return
		}
		a.cache = cache
	}
}

// WithLogger sets the logger used for diagnostics.
func WithLogger(logger *slog.Logger) Option {
	return func(a *Aggregator) {
		if logger != nil {
			a.logger = logger
		}
	}
}

// WithProgress registers a progress listener.
func WithProgress(p Progress) Option {
	return func(a *Aggregator) {
		a.progress = p
	}
}

// New creates an Aggregator.
func New(opts ...Option) *Aggregator {
	a := &Aggregator{
		concurrency: runtime.GOMAXPROCS(0),
		logger:      slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Aggregate extracts tokens from every stylesheet in files and merges them
// into one summary. Files that cannot be read are skipped and reported in
// Result.Diagnostics. The only error returned is ctx's.
func (a *Aggregator) Aggregate(ctx context.Context, files []File) (*Result, error) {
	sheets := make([]File, 0, len(files))
	for _, f := range files {
		if IsStylesheet(f.Path) {
			sheets = append(sheets, f)
		}
	}

	if a.progress != nil {
		a.progress.OnStart(len(sheets))
	}

	// Slots are indexed by input position so the merge never sees completion order
	outputs := make([]*fileTokens, len(sheets))
	readErrs := make([]error, len(sheets))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(a.concurrency)
	for i, f := range sheets {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}

			text, err := decode(f)
			if err != nil {
				readErrs[i] = err
			} else {
				outputs[i] = a.extract(f.Content, text)
			}

			if a.progress != nil {
				a.progress.OnFileProcessed(f.Path)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	result := &Result{
		Diagnostics: []FileReadError{},
		Files:       make([]string, 0, len(sheets)),
	}
	ok := make([]extracted, 0, len(sheets))
	for i, f := range sheets {
		if readErrs[i] != nil {
			a.logger.Warn("skipping unreadable stylesheet", "path", f.Path, "error", readErrs[i])
			result.Diagnostics = append(result.Diagnostics, FileReadError{Path: f.Path, Err: readErrs[i]})
			continue
		}
		result.Files = append(result.Files, f.Path)
		ok = append(ok, extracted{path: f.Path, tokens: outputs[i]})
	}

	result.Summary, result.Fonts = merge(ok)

	a.logger.Debug("aggregated design tokens",
		"files", len(result.Files),
		"skipped", len(result.Diagnostics),
		"colors", len(result.Summary.Colors),
		"spacing", len(result.Summary.Spacing))

	return result, nil
}

// extract runs the four extractors, consulting the cache first.
func (a *Aggregator) extract(content []byte, text string) *fileTokens {
	var key string
	if a.cache != nil {
		sum := sha256.Sum256(content)
		key = hex.EncodeToString(sum[:])
		if ft, ok := a.cache.Get(key); ok {
			return ft
		}
	}

	ft := &fileTokens{
		colors:     ExtractColors(text),
		typography: ExtractTypography(text),
		spacing:    ExtractSpacing(text),
		components: ExtractComponents(text),
	}

	if a.cache != nil {
		a.cache.Add(key, ft)
	}
	return ft
}

// decode turns a file's content into text, failing for loader errors and
// invalid UTF-8.
func decode(f File) (string, error) {
	if f.Err != nil {
		return "", f.Err
	}
	if !utf8.Valid(f.Content) {
		return "", ErrUndecodable
	}
	return string(bytes.TrimPrefix(f.Content, utf8BOM)), nil
}
