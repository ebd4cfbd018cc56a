// Package cstprovider adapts github.com/smacker/go-tree-sitter into the CST
// provider the indexing pipeline consumes: given (language, source),
// produce a parsed tree whose nodes expose type, 0-indexed start/end
// positions, text, parent, and children.
package cstprovider

import (
	"context"
	"fmt"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/javascript"
	"github.com/smacker/go-tree-sitter/python"
	"github.com/smacker/go-tree-sitter/rust"
	"github.com/smacker/go-tree-sitter/typescript/typescript"

	"github.com/oxhq/semindex/internal/semerr"
	"github.com/oxhq/semindex/internal/semlang"
)

// SitterLanguage returns the tree-sitter grammar for lang, or an
// unsupported_language error if lang isn't one of the four
// recognized languages.
func SitterLanguage(lang semlang.Language) (*sitter.Language, error) {
	switch lang {
	case semlang.JavaScript:
		return javascript.GetLanguage(), nil
	case semlang.TypeScript:
		return typescript.GetLanguage(), nil
	case semlang.Python:
		return python.GetLanguage(), nil
	case semlang.Rust:
		return rust.GetLanguage(), nil
	default:
		return nil, semerr.New(semerr.KindUnsupportedLanguage, fmt.Sprintf("unsupported language: %q", lang))
	}
}

// Parse parses source as lang and returns the resulting tree. The caller
// owns the returned tree and must Close() it.
func Parse(ctx context.Context, lang semlang.Language, source []byte) (*sitter.Tree, error) {
	language, err := SitterLanguage(lang)
	if err != nil {
		return nil, err
	}
	parser := sitter.NewParser()
	parser.SetLanguage(language)
	tree, err := parser.ParseCtx(ctx, nil, source)
	if err != nil {
		return nil, fmt.Errorf("parse error: %w", err)
	}
	return tree, nil
}

// FileGeometry reports the 1-indexed end-of-file line and column, the
// geometry the module scope must span: the number of
// lines in source and the column just past the last byte of the last line.
func FileGeometry(source []byte) (lines int, endColumn int) {
	line := 1
	col := 1
	for _, b := range source {
		if b == '\n' {
			line++
			col = 1
			continue
		}
		col++
	}
	return line, col
}
