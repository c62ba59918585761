package csstokens

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"

	"github.com/bmatcuk/doublestar/v4"
	ignore "github.com/sabhiram/go-gitignore"
)

// ErrSourceNotFound is returned when Config.SourceDir does not exist or is
// not a directory.
var ErrSourceNotFound = errors.New("source directory not found")

// Discover finds the files under config.SourceDir matched by the include
// patterns, minus excludes and (optionally) .gitignore matches. Files are
// returned in pattern order, then walk order, without duplicates.
func Discover(config Config) ([]SourceFile, ScanStats, error) {
	var stats ScanStats

	info, err := os.Stat(config.SourceDir)
	if err != nil || !info.IsDir() {
		return nil, stats, fmt.Errorf("%w: %s", ErrSourceNotFound, config.SourceDir)
	}

	for _, pattern := range slices.Concat(config.includes(), config.excludes()) {
		if !doublestar.ValidatePattern(pattern) {
			return nil, stats, fmt.Errorf("glob pattern %q: %w", pattern, doublestar.ErrBadPattern)
		}
	}

	var gi *ignore.GitIgnore
	if config.RespectGitignore {
		gi = loadGitIgnore(config.SourceDir)
	}

	// Default includes match extensions the way IsStylesheet does, ignoring case
	var globOpts []doublestar.GlobOption
	if len(config.Includes) == 0 {
		globOpts = append(globOpts, doublestar.WithCaseInsensitive())
	}

	var files []SourceFile
	seen := make(map[string]bool)

	for _, pattern := range config.includes() {
		// Combine source dir with pattern
		matches, err := doublestar.FilepathGlob(filepath.Join(config.SourceDir, pattern), globOpts...)
		if err != nil {
			return nil, stats, fmt.Errorf("glob pattern %q: %w", pattern, err)
		}

		for _, match := range matches {
			if seen[match] {
				continue
			}
			info, err := os.Stat(match)
			if err != nil || info.IsDir() {
				continue
			}
			seen[match] = true
			stats.FilesDiscovered++

			name := relativeName(config.SourceDir, match)
			if isExcluded(name, config.excludes()) || (gi != nil && gi.MatchesPath(name)) {
				stats.FilesSkipped++
				continue
			}

			files = append(files, SourceFile{Path: match, Name: name})
			stats.FilesScanned++
		}
	}

	return files, stats, nil
}

// loadGitIgnore loads root/.gitignore.
// Gracefully degrades if the file doesn't exist
func loadGitIgnore(root string) *ignore.GitIgnore {
	gi, err := ignore.CompileIgnoreFile(filepath.Join(root, ".gitignore"))
	if err != nil {
		return nil
	}
	return gi
}

// isExcluded reports whether the slash-separated name matches any exclude
// pattern. Patterns were validated up front.
func isExcluded(name string, excludes []string) bool {
	for _, pattern := range excludes {
		if doublestar.MatchUnvalidated(pattern, name) {
			return true
		}
	}
	return false
}

// relativeName returns path relative to root with forward slashes, falling
// back to the cleaned path when it is not under root.
func relativeName(root, path string) string {
	rel, err := filepath.Rel(root, path)
	if err != nil {
		return filepath.ToSlash(filepath.Clean(path))
	}
	return filepath.ToSlash(rel)
}

// LoadFiles reads every source file. Read failures are carried on File.Err
// so the engine can report them without aborting the run.
func LoadFiles(sources []SourceFile) []File {
	files := make([]File, 0, len(sources))
	for _, src := range sources {
		// #nosec G304 - path comes from trusted configuration
		content, err := os.ReadFile(src.Path)
		files = append(files, File{Path: src.Name, Content: content, Err: err})
	}
	return files
}
