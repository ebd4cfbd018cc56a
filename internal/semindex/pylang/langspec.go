package pylang

import (
	"github.com/oxhq/semindex/internal/refextract"
	"github.com/oxhq/semindex/internal/semindex"
)

// Spec is the Python vocabulary fed to internal/refextract's generic walkers.
var Spec = refextract.LangSpec{
	MemberExprTypes: []string{"attribute"},
	ObjectField:     "object",
	PropertyField:   "attribute",

	CallExprTypes:  []string{"call"},
	FunctionField:  "function",
	ArgumentsField: "arguments",

	IdentifierTypes: []string{"identifier"},

	SelfKeywords: map[string]semindex.SelfKeyword{
		"self": semindex.KeywordSelf,
		"cls":  semindex.KeywordCls,
	},

	AssignmentTypes:      []string{"assignment"},
	AssignmentLeftField:  "left",
	AssignmentRightField: "right",

	// Python has no separate variable-declarator production: `x = C()` is
	// itself an assignment, so construct_target resolution only ever needs
	// AssignmentTypes/fields here.
	VariableDeclaratorTypes: nil,
}
