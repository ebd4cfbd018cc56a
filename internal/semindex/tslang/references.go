package tslang

import (
	"strings"

	sitter "github.com/smacker/go-tree-sitter"

	"github.com/oxhq/semindex/internal/capture"
	"github.com/oxhq/semindex/internal/semindex"
	"github.com/oxhq/semindex/internal/semindex/jslang"
	"github.com/oxhq/semindex/internal/tsutil"
)

// ExtractReference is jslang's extractor plus TypeScript's type_reference
// handling: every type_identifier in an annotation, extends/implements
// clause, or generic argument list emits one type_reference, at any depth
// of generic arguments (`Map<K, Array<V>>` emits Map, K, Array, V).
// Predefined types such as `string` are not emitted.
func ExtractReference(c capture.Node, ctx *semindex.ProcessingContext) *semindex.Reference {
	if c.Name == "reference.type_reference" {
		return typeReference(c, ctx)
	}
	return jslang.ExtractReference(c, ctx)
}

func typeReference(c capture.Node, ctx *semindex.ProcessingContext) *semindex.Reference {
	name := c.Text
	if idx := strings.IndexByte(name, '<'); idx >= 0 {
		name = name[:idx]
	}
	return &semindex.Reference{
		Kind:             semindex.RefTypeReference,
		Name:             name,
		Location:         c.Location,
		EnclosingScopeID: ctx.GetScopeID(c.Location),
		TypeInfo: &semindex.TypeInfo{
			TypeName:  name,
			Certainty: semindex.CertaintyDeclared,
		},
	}
}

// ExpandGenericArguments walks a generic_type node's type_arguments,
// returning every named type_identifier found (container first, then each
// argument, recursing), for callers building additional type_reference
// captures beyond what the static query patterns catch. Not used by the
// query-driven path above (tree-sitter patterns already recurse through
// nested (generic_type) productions), kept for handlers that need to walk
// type text manually (e.g. parameter/property/return type strings).
func ExpandGenericArguments(n *sitter.Node, source []byte) []string {
	var names []string
	var walk func(*sitter.Node)
	walk = func(node *sitter.Node) {
		if node == nil {
			return
		}
		switch node.Type() {
		case "type_identifier", "predefined_type":
			names = append(names, tsutil.Text(node, source))
		case "generic_type":
			walk(node.ChildByFieldName("name"))
			if args := node.ChildByFieldName("type_arguments"); args != nil {
				for i := 0; i < int(args.NamedChildCount()); i++ {
					walk(args.NamedChild(i))
				}
			}
		}
	}
	walk(n)
	return names
}
