// Package tsutil holds small tree-sitter node helpers shared by the query
// layer, the scope builder, and every per-language handler registry:
// location normalization and text extraction.
package tsutil

import (
	sitter "github.com/smacker/go-tree-sitter"

	"github.com/oxhq/semindex/internal/semindex"
)

// NodeLocation normalizes a tree-sitter node's 0-indexed, exclusive-end
// position into a 1-indexed, inclusive Location: add 1 to row and column
// uniformly on both endpoints.
func NodeLocation(node *sitter.Node, filePath string) semindex.Location {
	start := node.StartPoint()
	end := node.EndPoint()
	return semindex.Location{
		FilePath:    filePath,
		StartLine:   int(start.Row) + 1,
		StartColumn: int(start.Column) + 1,
		EndLine:     int(end.Row) + 1,
		EndColumn:   int(end.Column) + 1,
	}
}

// Text returns the source text spanned by node.
func Text(node *sitter.Node, source []byte) string {
	if node == nil {
		return ""
	}
	return node.Content(source)
}

// FieldText returns the text of node's field child, or "" if absent.
func FieldText(node *sitter.Node, field string, source []byte) string {
	if node == nil {
		return ""
	}
	child := node.ChildByFieldName(field)
	if child == nil {
		return ""
	}
	return child.Content(source)
}
