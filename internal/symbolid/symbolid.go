// Package symbolid implements the deterministic, collision-free identifier
// scheme for every scope, declaration, and reference in a Semantic Index.
// An id is a colon-delimited string derived from (kind, location, name);
// two captures with identical kind+location collapse to the same id, which
// is what lets a synthesized root scope deduplicate against a
// capture-derived one.
package symbolid

import "fmt"

// SymbolID is a built identifier. An alias so callers can pass the result
// of For straight into semindex's maps without conversion.
type SymbolID = string

// Kind is the first segment of every symbol id: the entity kind.
type Kind string

const (
	KindModule            Kind = "module"
	KindClass             Kind = "class"
	KindInterface         Kind = "interface"
	KindEnum              Kind = "enum"
	KindEnumMember        Kind = "enum_member"
	KindNamespace         Kind = "namespace"
	KindFunction          Kind = "function"
	KindAnonymousFunction Kind = "anonymous_function"
	KindMethod            Kind = "method"
	KindConstructor       Kind = "constructor"
	KindProperty          Kind = "property"
	KindParameter         Kind = "parameter"
	KindVariable          Kind = "variable"
	KindTypeAlias         Kind = "type_alias"
	KindImport            Kind = "import"
	KindBlock             Kind = "block"
)

// Loc is the minimal location shape this package needs: a 1-indexed,
// inclusive span. It mirrors semindex.Location's fields without importing
// semindex; callers copy the fields across (each handler package's toSymLoc).
type Loc struct {
	FilePath    string
	StartLine   int
	StartColumn int
	EndLine     int
	EndColumn   int
}

// For builds the canonical id: kind:file_path:start_line:start_column:end_line:end_column[:name].
// The trailing name segment is included only when non-empty; class and
// function ids omit it, the module root carries "<module>", and
// enum_member, parameter, and import ids carry the name for disambiguation
// among same-location captures.
func For(kind Kind, loc Loc, name string) string {
	base := fmt.Sprintf("%s:%s:%d:%d:%d:%d",
		kind, loc.FilePath, loc.StartLine, loc.StartColumn, loc.EndLine, loc.EndColumn)
	if name == "" {
		return base
	}
	return base + ":" + name
}

// ModuleRoot builds the module-scope id for a file, matching the
// `module:<path>:1:1:<end_line>:<end_column>:<module>` shape used for the
// single parent-less scope.
func ModuleRoot(filePath string, endLine, endColumn int) string {
	return For(KindModule, Loc{
		FilePath:    filePath,
		StartLine:   1,
		StartColumn: 1,
		EndLine:     endLine,
		EndColumn:   endColumn,
	}, "<module>")
}
