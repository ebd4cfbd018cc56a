// Package semindex implements the language-agnostic core of the single-file
// semantic indexer: the data model and the DefinitionBuilder contract
// consumed by every per-language handler registry. The top-level
// BuildIndexSingleFile pipeline that stitches the scope tree, definition,
// and reference phases together lives in internal/pipeline.
package semindex

import "fmt"

// Location is a 1-indexed, inclusive span within a single source file.
// CST-native 0-indexed positions must be normalized by adding 1 to both
// row and column before a Location is constructed.
type Location struct {
	FilePath    string `json:"file_path"`
	StartLine   int    `json:"start_line"`
	StartColumn int    `json:"start_column"`
	EndLine     int    `json:"end_line"`
	EndColumn   int    `json:"end_column"`
}

// lexLess orders (line, column) pairs lexicographically.
func lexLess(l1, c1, l2, c2 int) bool {
	if l1 != l2 {
		return l1 < l2
	}
	return c1 < c2
}

func lexLessEq(l1, c1, l2, c2 int) bool {
	return lexLess(l1, c1, l2, c2) || (l1 == l2 && c1 == c2)
}

// Contains reports whether loc a contains loc b: b.start >= a.start and
// b.end <= a.end under lexicographic ordering, with equal boundaries
// counting as contained.
func (a Location) Contains(b Location) bool {
	startsOK := lexLessEq(a.StartLine, a.StartColumn, b.StartLine, b.StartColumn)
	endsOK := lexLessEq(b.EndLine, b.EndColumn, a.EndLine, a.EndColumn)
	return startsOK && endsOK
}

// Area is (end_line*10000 + end_column) - (start_line*10000 + start_column),
// used to disambiguate among equally-containing locations: the smallest
// area wins.
func (a Location) Area() int {
	return (a.EndLine*10000 + a.EndColumn) - (a.StartLine*10000 + a.StartColumn)
}

// Equal reports whether two locations denote the same span.
func (a Location) Equal(b Location) bool {
	return a.FilePath == b.FilePath &&
		a.StartLine == b.StartLine && a.StartColumn == b.StartColumn &&
		a.EndLine == b.EndLine && a.EndColumn == b.EndColumn
}

func (a Location) String() string {
	return fmt.Sprintf("%s:%d:%d-%d:%d", a.FilePath, a.StartLine, a.StartColumn, a.EndLine, a.EndColumn)
}
