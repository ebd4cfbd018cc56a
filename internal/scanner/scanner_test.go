package scanner

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oxhq/semindex/internal/semlang"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLanguageForPath(t *testing.T) {
	tests := []struct {
		path string
		lang semlang.Language
		ok   bool
	}{
		{"a.js", semlang.JavaScript, true},
		{"a.jsx", semlang.JavaScript, true},
		{"a.mjs", semlang.JavaScript, true},
		{"a.ts", semlang.TypeScript, true},
		{"pkg/mod.py", semlang.Python, true},
		{"lib.rs", semlang.Rust, true},
		{"A.RS", semlang.Rust, true},
		{"readme.md", "", false},
		{"Makefile", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			lang, ok := LanguageForPath(tt.path)
			assert.Equal(t, tt.ok, ok)
			if tt.ok {
				assert.Equal(t, tt.lang, lang)
			}
		})
	}
}

func TestScanTargets_DirectoryWalk(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "main.py", "x = 1\n")
	writeFile(t, dir, "lib/util.ts", "export const x = 1;\n")
	writeFile(t, dir, "notes.txt", "not code\n")
	writeFile(t, dir, "node_modules/dep/index.js", "module.exports = {};\n")

	s := New(Config{})
	targets, err := s.ScanTargets(context.Background(), []string{dir})
	require.NoError(t, err)

	var paths []string
	for _, tgt := range targets {
		rel, err := filepath.Rel(dir, tgt.Path)
		require.NoError(t, err)
		paths = append(paths, rel)
	}
	assert.Equal(t, []string{filepath.Join("lib", "util.ts"), "main.py"}, paths)
}

func TestScanTargets_ExplicitFile(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "mod.rs", "fn main() {}\n")

	s := New(Config{})
	targets, err := s.ScanTargets(context.Background(), []string{path})
	require.NoError(t, err)
	require.Len(t, targets, 1)
	assert.Equal(t, path, targets[0].Path)
	assert.Equal(t, semlang.Rust, targets[0].Language)
}

func TestScanTargets_IncludeExcludeGlobs(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "a.py", "x = 1\n")
	writeFile(t, dir, "a_test.py", "x = 1\n")
	writeFile(t, dir, "b.js", "var x = 1;\n")

	s := New(Config{
		IncludeGlobs: []string{"*.py"},
		ExcludeGlobs: []string{"*_test.py"},
	})
	targets, err := s.ScanTargets(context.Background(), []string{dir})
	require.NoError(t, err)
	require.Len(t, targets, 1)
	assert.Equal(t, "a.py", filepath.Base(targets[0].Path))
}

func TestScanTargets_LanguageFilter(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "a.py", "x = 1\n")
	writeFile(t, dir, "b.js", "var x = 1;\n")

	s := New(Config{Language: semlang.Python})
	targets, err := s.ScanTargets(context.Background(), []string{dir})
	require.NoError(t, err)
	require.Len(t, targets, 1)
	assert.Equal(t, semlang.Python, targets[0].Language)
}

func TestScanTargets_MaxBytes(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "small.py", "x = 1\n")
	writeFile(t, dir, "big.py", "# "+string(make([]byte, 100))+"\n")

	s := New(Config{MaxBytes: 50})
	targets, err := s.ScanTargets(context.Background(), []string{dir})
	require.NoError(t, err)
	require.Len(t, targets, 1)
	assert.Equal(t, "small.py", filepath.Base(targets[0].Path))
}

func TestScanTargets_MissingTarget(t *testing.T) {
	s := New(Config{})
	_, err := s.ScanTargets(context.Background(), []string{"/does/not/exist"})
	assert.Error(t, err)
}

func TestScanTargets_Cancellation(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "a.py", "x = 1\n")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	s := New(Config{})
	_, err := s.ScanTargets(ctx, []string{dir})
	assert.ErrorIs(t, err, context.Canceled)
}
