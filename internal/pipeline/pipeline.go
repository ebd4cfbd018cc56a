// Package pipeline wires the CST provider, capture query layer, scope tree
// builder, and the four per-language definition/reference packages into the
// single entry point this module exposes: BuildIndexSingleFile. Nothing
// outside this package knows the processing order capture categories must
// be dispatched in; everything else only knows its own capture names.
package pipeline

import (
	"context"
	"fmt"

	"github.com/oxhq/semindex/internal/capture"
	"github.com/oxhq/semindex/internal/cstprovider"
	"github.com/oxhq/semindex/internal/handler"
	"github.com/oxhq/semindex/internal/scopetree"
	"github.com/oxhq/semindex/internal/semerr"
	"github.com/oxhq/semindex/internal/semindex"
	"github.com/oxhq/semindex/internal/semindex/jslang"
	"github.com/oxhq/semindex/internal/semindex/pylang"
	"github.com/oxhq/semindex/internal/semindex/rustlang"
	"github.com/oxhq/semindex/internal/semindex/tslang"
	"github.com/oxhq/semindex/internal/semlang"
)

// langPack bundles the three things a supported language contributes to the
// pipeline: its query source, its definition-handler registry, and its
// reference extractor.
type langPack struct {
	queries   string
	handlers  *handler.Registry
	extractor func(capture.Node, *semindex.ProcessingContext) *semindex.Reference
}

var packs = map[semlang.Language]langPack{
	semlang.JavaScript: {jslang.Queries, jslang.Handlers, jslang.ExtractReference},
	semlang.TypeScript: {tslang.Queries, tslang.Handlers, tslang.ExtractReference},
	semlang.Python:     {pylang.Queries, pylang.Handlers, pylang.ExtractReference},
	semlang.Rust:       {rustlang.Queries, rustlang.Handlers, rustlang.ExtractReference},
}

// containerEntities are DEFINITION captures that establish a symbol other
// definitions can attach to (AddMethodToClass, AddPropertySignatureToInterface,
// AddEnumMember, ...). They must be registered before any capture that might
// reference them, and tree-sitter's pattern-by-pattern match order gives no
// such guarantee across captures of different patterns. Decorators go last
// since AddDecoratorToTarget looks its target up by id, which only exists
// once the class/method/property capture that owns it has already run.
var containerEntities = map[string]bool{
	"class":     true,
	"interface": true,
	"enum":      true,
	"namespace": true,
}

// BuildIndexSingleFile parses source as lang, runs the capture query layer,
// builds the scope tree, and dispatches every definition/import/decorator
// and reference capture through lang's registered handlers, returning the
// finished index together with every diagnostic recorded along the way.
//
// The only errors returned are the two fatal kinds from internal/semerr:
// unsupported_language and missing_cst_field. Everything else recoverable
// (orphan captures, unknown capture names, malformed source, duplicate
// scopes) is folded into the returned diagnostics slice and the build
// still completes.
func BuildIndexSingleFile(ctx context.Context, filePath string, source []byte, lang semlang.Language) (*semindex.SemanticIndex, []semerr.Diagnostic, error) {
	if !semlang.Valid(lang) {
		return nil, nil, semerr.New(semerr.KindUnsupportedLanguage, fmt.Sprintf("unsupported language: %q", lang))
	}
	pack := packs[lang]

	sitterLang, err := cstprovider.SitterLanguage(lang)
	if err != nil {
		return nil, nil, err
	}

	tree, err := cstprovider.Parse(ctx, lang, source)
	if err != nil {
		return nil, nil, semerr.Wrap(semerr.KindMissingCSTField, "failed to parse source", err)
	}
	defer tree.Close()

	captures, captureDiags, err := capture.Run(sitterLang, pack.queries, tree, source, filePath)
	if err != nil {
		return nil, nil, semerr.Wrap(semerr.KindMissingCSTField, "failed to run capture queries", err)
	}

	lines, endColumn := cstprovider.FileGeometry(source)
	scopes, scopeDiags, err := scopetree.Build(captures, filePath, lines, endColumn)
	if err != nil {
		return nil, nil, semerr.Wrap(semerr.KindMissingCSTField, "failed to build scope tree", err)
	}

	procCtx := &semindex.ProcessingContext{
		Oracle:   scopes,
		RootID:   scopes.RootScopeID(),
		FilePath: filePath,
		Language: string(lang),
		Source:   source,
	}

	builder := semindex.NewDefinitionBuilder()
	var references []semindex.Reference

	// Pass 1: containers (class/interface/enum/namespace) so that anything
	// attaching to one by id or by name in pass 2 finds it already registered.
	for _, c := range captures {
		if c.Category != capture.CategoryDefinition || !containerEntities[c.Entity] {
			continue
		}
		pack.handlers.Dispatch(c, builder, procCtx)
	}

	// Pass 2: every other definition and import capture: methods,
	// properties, constructors, functions, variables, type aliases, imports.
	for _, c := range captures {
		if c.Category != capture.CategoryDefinition && c.Category != capture.CategoryImport {
			continue
		}
		if c.Category == capture.CategoryDefinition && containerEntities[c.Entity] {
			continue
		}
		pack.handlers.Dispatch(c, builder, procCtx)
	}

	// Pass 3: decorators, which attach to a definition by id and so must run
	// last.
	for _, c := range captures {
		if c.Category != capture.CategoryDecorator {
			continue
		}
		pack.handlers.Dispatch(c, builder, procCtx)
	}

	// References never mutate the builder and don't depend on definition
	// dispatch order, only on the scope oracle already being built.
	for _, c := range captures {
		if c.Category != capture.CategoryReference {
			continue
		}
		if ref := pack.extractor(c, procCtx); ref != nil {
			references = append(references, *ref)
		}
	}

	set := builder.Build()

	idx := &semindex.SemanticIndex{
		FilePath:        filePath,
		Language:        string(lang),
		RootScopeID:     scopes.RootScopeID(),
		Scopes:          scopes.Scopes(),
		Functions:       set.Functions,
		Classes:         set.Classes,
		Interfaces:      set.Interfaces,
		Enums:           set.Enums,
		Namespaces:      set.Namespaces,
		Types:           set.Types,
		Variables:       set.Variables,
		ImportedSymbols: set.Imports,
		Methods:         set.Methods,
		Constructors:    set.Constructors,
		Properties:      set.Properties,
		Parameters:      set.Parameters,
		References:      references,
	}

	var diags []semerr.Diagnostic
	diags = append(diags, captureDiags...)
	diags = append(diags, scopeDiags...)
	diags = append(diags, builder.Diagnostics()...)

	return idx, diags, nil
}
