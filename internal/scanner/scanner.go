// Package scanner handles recursive directory traversal for `semindex dir`,
// discovering the files the single-file pipeline should be run on. The core
// indexer itself never touches the filesystem; this package is the caller
// side collaborator that feeds it.
package scanner

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/oxhq/semindex/internal/semlang"
)

// languageByExtension maps file extensions to the supported languages.
var languageByExtension = map[string]semlang.Language{
	".js":  semlang.JavaScript,
	".jsx": semlang.JavaScript,
	".mjs": semlang.JavaScript,
	".cjs": semlang.JavaScript,
	".ts":  semlang.TypeScript,
	".py":  semlang.Python,
	".pyi": semlang.Python,
	".rs":  semlang.Rust,
}

// skipDirs are directory names never descended into.
var skipDirs = []string{
	".git", ".hg", ".svn",
	"node_modules", "__pycache__", ".venv", "venv",
	"target", "dist", "build", "vendor",
}

// Target is one discovered file together with its inferred language.
type Target struct {
	Path     string
	Language semlang.Language
}

// Scanner handles recursive directory traversal with filtering capabilities.
type Scanner struct {
	maxBytes     int64
	includeGlobs []string
	excludeGlobs []string
	language     semlang.Language
}

// Config holds scanner configuration options.
type Config struct {
	// MaxBytes skips files larger than this; 0 means no limit.
	MaxBytes int64
	// IncludeGlobs restrict results to matching paths (doublestar syntax).
	// Empty means every file with a recognized extension.
	IncludeGlobs []string
	// ExcludeGlobs drop matching paths.
	ExcludeGlobs []string
	// Language, when set, restricts results to files whose extension maps
	// to that language; the language is still inferred from the extension
	// and files of any other language are skipped.
	Language semlang.Language
}

// New creates a new scanner with the given configuration.
func New(cfg Config) *Scanner {
	return &Scanner{
		maxBytes:     cfg.MaxBytes,
		includeGlobs: cfg.IncludeGlobs,
		excludeGlobs: cfg.ExcludeGlobs,
		language:     cfg.Language,
	}
}

// LanguageForPath infers the language for a file path from its extension.
func LanguageForPath(path string) (semlang.Language, bool) {
	lang, ok := languageByExtension[strings.ToLower(filepath.Ext(path))]
	return lang, ok
}

// ScanTargets processes a list of file and directory targets, returning the
// files to index in a stable, sorted order.
func (s *Scanner) ScanTargets(ctx context.Context, targets []string) ([]Target, error) {
	if len(targets) == 0 {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("getting current directory: %w", err)
		}
		targets = []string{cwd}
	}

	var files []Target
	for _, target := range targets {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		info, err := os.Stat(target)
		if err != nil {
			return nil, fmt.Errorf("stat %s: %w", target, err)
		}

		if info.IsDir() {
			found, err := s.walkDir(ctx, target)
			if err != nil {
				return nil, err
			}
			files = append(files, found...)
			continue
		}

		if t, ok := s.admit(target, info.Size()); ok {
			files = append(files, t)
		}
	}

	slices.SortFunc(files, func(a, b Target) int {
		return strings.Compare(a.Path, b.Path)
	})
	return files, nil
}

func (s *Scanner) walkDir(ctx context.Context, root string) ([]Target, error) {
	var files []Target
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		if d.IsDir() {
			if slices.Contains(skipDirs, d.Name()) {
				return filepath.SkipDir
			}
			return nil
		}

		info, err := d.Info()
		if err != nil {
			return nil
		}
		if t, ok := s.admit(path, info.Size()); ok {
			files = append(files, t)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walking %s: %w", root, err)
	}
	return files, nil
}

// admit applies the size, glob, and language filters to one candidate file.
func (s *Scanner) admit(path string, size int64) (Target, bool) {
	if s.maxBytes > 0 && size > s.maxBytes {
		return Target{}, false
	}

	lang, ok := LanguageForPath(path)
	if !ok {
		return Target{}, false
	}
	if s.language != "" && lang != s.language {
		return Target{}, false
	}

	if len(s.includeGlobs) > 0 && !matchesAny(s.includeGlobs, path) {
		return Target{}, false
	}
	if matchesAny(s.excludeGlobs, path) {
		return Target{}, false
	}

	return Target{Path: path, Language: lang}, true
}

// matchesAny reports whether path matches any pattern, against either the
// full path or its basename.
func matchesAny(patterns []string, path string) bool {
	basename := filepath.Base(path)
	for _, pattern := range patterns {
		if matched, err := doublestar.PathMatch(pattern, path); err == nil && matched {
			return true
		}
		if matched, err := doublestar.PathMatch(pattern, basename); err == nil && matched {
			return true
		}
	}
	return false
}
