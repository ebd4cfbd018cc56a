package rustlang

import (
	"github.com/oxhq/semindex/internal/refextract"
	"github.com/oxhq/semindex/internal/semindex"
)

// Spec is the Rust vocabulary fed to internal/refextract's generic walkers.
var Spec = refextract.LangSpec{
	MemberExprTypes: []string{"field_expression"},
	ObjectField:     "value",
	PropertyField:   "field",

	CallExprTypes:  []string{"call_expression"},
	FunctionField:  "function",
	ArgumentsField: "arguments",

	IdentifierTypes: []string{"identifier"},

	SelfKeywords: map[string]semindex.SelfKeyword{
		"self": semindex.KeywordSelf,
	},

	AssignmentTypes:      []string{"assignment_expression"},
	AssignmentLeftField:  "left",
	AssignmentRightField: "right",

	VariableDeclaratorTypes: []string{"let_declaration"},
	DeclaratorNameField:     "pattern",
	DeclaratorValueField:    "value",
}
