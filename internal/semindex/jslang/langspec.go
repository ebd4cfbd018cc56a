package jslang

import (
	"github.com/oxhq/semindex/internal/refextract"
	"github.com/oxhq/semindex/internal/semindex"
)

// Spec is the JavaScript vocabulary fed to internal/refextract's generic walkers.
var Spec = refextract.LangSpec{
	MemberExprTypes: []string{"member_expression", "subscript_expression"},
	ObjectField:     "object",
	PropertyField:   "property",

	CallExprTypes:  []string{"call_expression"},
	FunctionField:  "function",
	ArgumentsField: "arguments",

	IdentifierTypes: []string{"identifier"},

	OptionalChainTypes: []string{"optional_chain"},

	SelfKeywords: map[string]semindex.SelfKeyword{
		"this": semindex.KeywordThis,
	},

	NewExprTypes: []string{"new_expression"},

	AssignmentTypes:      []string{"assignment_expression"},
	AssignmentLeftField:  "left",
	AssignmentRightField: "right",

	VariableDeclaratorTypes: []string{"variable_declarator"},
	DeclaratorNameField:     "name",
	DeclaratorValueField:    "value",
}
