// Package capture implements the CST query layer: running a language's
// tree-sitter query pattern set against a parsed tree and yielding an
// ordered stream of typed CaptureNode records. This package is itself
// language-agnostic; each per-language package under internal/semindex/*lang
// supplies its own query source string and interprets the capture names it
// defines.
package capture

import (
	"fmt"
	"strings"

	sitter "github.com/smacker/go-tree-sitter"

	"github.com/oxhq/semindex/internal/semerr"
	"github.com/oxhq/semindex/internal/semindex"
	"github.com/oxhq/semindex/internal/tsutil"
)

// Category classifies a capture by the processing phase that consumes it.
type Category string

const (
	CategoryScope      Category = "SCOPE"
	CategoryDefinition Category = "DEFINITION"
	CategoryImport     Category = "IMPORT"
	CategoryReference  Category = "REFERENCE"
	CategoryDecorator  Category = "DECORATOR"
)

// Node is one typed capture: (name, category, entity, node, text, location).
type Node struct {
	Name     string
	Category Category
	Entity   string
	Node     *sitter.Node
	Text     string
	Location semindex.Location
}

// Categorize derives (Category, Entity) from a dotted capture name, e.g.
// "scope.function" -> (SCOPE, "function"), "definition.method.static" ->
// (DEFINITION, "method"), "reference.method_call" -> (REFERENCE,
// "method_call"). A capture name whose first segment doesn't match one of
// the five known categories yields ("", "") and is reported as an
// unknown_capture_name diagnostic by the caller.
func Categorize(name string) (Category, string) {
	parts := strings.Split(name, ".")
	if len(parts) < 2 {
		return "", ""
	}
	var cat Category
	switch parts[0] {
	case "scope":
		cat = CategoryScope
	case "definition":
		cat = CategoryDefinition
	case "import":
		cat = CategoryImport
	case "reference":
		cat = CategoryReference
	case "decorator":
		cat = CategoryDecorator
	default:
		return "", ""
	}
	return cat, parts[1]
}

// Run executes querySource against tree and returns the ordered capture
// stream plus any malformed_source/unknown_capture_name diagnostics
// encountered. Document order is not guaranteed stable across captures of
// different patterns (tree-sitter matches pattern-by-pattern); the scope
// tree builder re-sorts SCOPE captures itself.
func Run(lang *sitter.Language, querySource string, tree *sitter.Tree, source []byte, filePath string) ([]Node, []semerr.Diagnostic, error) {
	q, err := sitter.NewQuery([]byte(querySource), lang)
	if err != nil {
		return nil, nil, fmt.Errorf("invalid tree-sitter query: %w", err)
	}
	defer q.Close()

	qc := sitter.NewQueryCursor()
	defer qc.Close()
	qc.Exec(q, tree.RootNode())

	var diags []semerr.Diagnostic
	var nodes []Node
	for {
		match, ok := qc.NextMatch()
		if !ok {
			break
		}
		for _, c := range match.Captures {
			name := q.CaptureNameForId(c.Index)
			cat, entity := Categorize(name)
			if cat == "" {
				diags = append(diags, semerr.Diagnostic{
					Kind:    semerr.KindUnknownCaptureName,
					Message: "unrecognized capture name: " + name,
				})
				continue
			}
			nodes = append(nodes, Node{
				Name:     name,
				Category: cat,
				Entity:   entity,
				Node:     c.Node,
				Text:     tsutil.Text(c.Node, source),
				Location: tsutil.NodeLocation(c.Node, filePath),
			})
		}
	}

	collectErrorDiagnostics(tree.RootNode(), filePath, &diags)

	return nodes, diags, nil
}

// collectErrorDiagnostics walks the tree recording ERROR subtrees as
// malformed_source diagnostics; the pipeline continues regardless, and
// recognizable captures elsewhere in the file are still processed.
func collectErrorDiagnostics(node *sitter.Node, filePath string, diags *[]semerr.Diagnostic) {
	if node.Type() == "ERROR" || node.IsMissing() {
		loc := tsutil.NodeLocation(node, filePath)
		*diags = append(*diags, semerr.Diagnostic{
			Kind:    semerr.KindMalformedSource,
			Message: "malformed source near " + loc.String(),
			Line:    loc.StartLine,
			Column:  loc.StartColumn,
		})
		return
	}
	for i := 0; i < int(node.ChildCount()); i++ {
		collectErrorDiagnostics(node.Child(i), filePath, diags)
	}
}
