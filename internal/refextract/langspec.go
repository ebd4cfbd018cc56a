// Package refextract implements the shared portions of the Reference &
// Metadata Extractors: receiver/property-chain walking,
// callback-context detection, and constructor-target resolution. These
// algorithms are the same shape across JavaScript, TypeScript, Python, and
// Rust (only the concrete CST node/field names differ), so each language
// package supplies a LangSpec describing its grammar's vocabulary for
// member expressions, call expressions, and self-keywords, and calls into
// the generic walkers here.
package refextract

import (
	sitter "github.com/smacker/go-tree-sitter"

	"github.com/oxhq/semindex/internal/semindex"
	"github.com/oxhq/semindex/internal/tsutil"
)

// LangSpec is the per-language vocabulary the generic walkers need.
type LangSpec struct {
	// MemberExprTypes are node types representing a dotted member access
	// (JS/TS: member_expression; Python: attribute; Rust: field_expression).
	MemberExprTypes []string
	// ObjectField/PropertyField name the child fields of a member expression
	// that hold the receiver and the accessed name respectively.
	ObjectField   string
	PropertyField string

	// CallExprTypes are node types representing a function/method call.
	CallExprTypes []string
	// FunctionField names the callee field of a call expression.
	FunctionField string
	// ArgumentsField names the argument-list field of a call expression.
	ArgumentsField string

	// IdentifierTypes are node types treated as bare identifiers.
	IdentifierTypes []string

	// OptionalChainTypes are node types (or call variants) representing
	// `?.` access; used to set optional_chaining on method_call.
	OptionalChainTypes []string

	// SelfKeywords maps literal identifier text to the self_reference_call
	// keyword it represents: {"this": this} for JS/TS,
	// {"self": self, "cls": cls} for Python, {"self": self} for Rust.
	SelfKeywords map[string]semindex.SelfKeyword

	// NewExprTypes are node types representing constructor invocation
	// syntax distinct from a plain call (e.g. JS/TS `new_expression`).
	// Empty for Python and Rust, whose extractors classify constructor calls
	// from the callee itself: an uppercase bare name in Python, a
	// scoped_identifier path in Rust.
	NewExprTypes []string

	// AssignmentTypes / VariableDeclaratorTypes name nodes whose presence
	// as an ancestor of a call/new expression identifies a binding target
	// for construct_target / initialized_from_call.
	AssignmentTypes          []string
	AssignmentLeftField      string
	AssignmentRightField     string
	VariableDeclaratorTypes  []string
	DeclaratorNameField      string
	DeclaratorValueField     string
}

func contains(types []string, t string) bool {
	for _, x := range types {
		if x == t {
			return true
		}
	}
	return false
}

func (s LangSpec) isMemberExpr(n *sitter.Node) bool {
	return n != nil && contains(s.MemberExprTypes, n.Type())
}

func (s LangSpec) isCallExpr(n *sitter.Node) bool {
	return n != nil && contains(s.CallExprTypes, n.Type())
}

func (s LangSpec) isIdentifier(n *sitter.Node) bool {
	return n != nil && contains(s.IdentifierTypes, n.Type())
}

// ReceiverLocation returns the location of the longest member-expression
// prefix preceding the final property/method access, i.e. the receiver node
// itself. memberNode is the member
// expression whose PropertyField is the called method's name.
func ReceiverLocation(spec LangSpec, memberNode *sitter.Node, filePath string) *semindex.Location {
	if memberNode == nil {
		return nil
	}
	receiver := memberNode.ChildByFieldName(spec.ObjectField)
	if receiver == nil {
		return nil
	}
	loc := tsutil.NodeLocation(receiver, filePath)
	return &loc
}

// PropertyChain walks a member-expression chain from its leaf up to the
// root receiver, collecting each identifier segment root-first: `self.cfg.deep.value` -> ["self","cfg","deep","value"].
func PropertyChain(spec LangSpec, memberNode *sitter.Node, source []byte) []string {
	var segments []string
	var walk func(n *sitter.Node)
	walk = func(n *sitter.Node) {
		if n == nil {
			return
		}
		if spec.isMemberExpr(n) {
			walk(n.ChildByFieldName(spec.ObjectField))
			prop := n.ChildByFieldName(spec.PropertyField)
			segments = append(segments, tsutil.Text(prop, source))
			return
		}
		if spec.isCallExpr(n) {
			walk(n.ChildByFieldName(spec.FunctionField))
			return
		}
		segments = append(segments, tsutil.Text(n, source))
	}
	walk(memberNode)
	return segments
}

// SelfKeywordFor returns the self-reference keyword for identifier text, if any.
func SelfKeywordFor(spec LangSpec, text string) (semindex.SelfKeyword, bool) {
	kw, ok := spec.SelfKeywords[text]
	return kw, ok
}

// enclosingCallArgument reports whether n is directly an element of a call
// expression's argument list, or the value of a keyword_argument in that
// list, and returns the call node. Only the argument list itself and a
// keyword_argument may lie between n and the call, so an anonymous function
// used as an array/object literal element, a `return` value, or anywhere
// inside another function's body is not a call argument.
func enclosingCallArgument(spec LangSpec, n *sitter.Node) (*sitter.Node, bool) {
	cur := n
	for cur != nil {
		parent := cur.Parent()
		if parent == nil {
			return nil, false
		}
		if spec.isCallExpr(parent) {
			args := parent.ChildByFieldName(spec.ArgumentsField)
			if args != nil && isDescendantOf(cur, args) {
				return parent, true
			}
		}
		if parent.Type() != "keyword_argument" && !spec.isCallExpr(parent.Parent()) {
			return nil, false
		}
		cur = parent
	}
	return nil, false
}

// sameNode compares two *sitter.Node by span, since the go-tree-sitter
// binding does not expose node identity/equality directly.
func sameNode(a, b *sitter.Node) bool {
	if a == nil || b == nil {
		return a == b
	}
	return a.StartByte() == b.StartByte() && a.EndByte() == b.EndByte()
}

func isDescendantOf(n, ancestor *sitter.Node) bool {
	for cur := n; cur != nil; cur = cur.Parent() {
		if sameNode(cur, ancestor) {
			return true
		}
	}
	return false
}

// CallbackContext computes whether node (an anonymous function node) is
// syntactically an argument to a call expression, including as the value of
// a keyword/named argument.
func CallbackContext(spec LangSpec, node *sitter.Node, filePath string) *semindex.CallbackContext {
	call, ok := enclosingCallArgument(spec, node)
	if !ok {
		return &semindex.CallbackContext{IsCallback: false}
	}
	loc := tsutil.NodeLocation(call, filePath)
	return &semindex.CallbackContext{
		IsCallback:       true,
		ReceiverLocation: &loc,
	}
}

// ConstructTarget finds the LHS binding location for a constructor-call
// expression, i.e. the variable being assigned in `let x = new C(...)` /
// `x = C()` / `let x: T = C()`. Returns nil
// for a bare expression-statement invocation.
func ConstructTarget(spec LangSpec, callNode *sitter.Node, filePath string) *semindex.Location {
	parent := callNode.Parent()
	if parent == nil {
		return nil
	}
	if contains(spec.VariableDeclaratorTypes, parent.Type()) {
		value := parent.ChildByFieldName(spec.DeclaratorValueField)
		if value != nil && sameNode(value, callNode) {
			if name := parent.ChildByFieldName(spec.DeclaratorNameField); name != nil {
				loc := tsutil.NodeLocation(name, filePath)
				return &loc
			}
		}
	}
	if contains(spec.AssignmentTypes, parent.Type()) {
		value := parent.ChildByFieldName(spec.AssignmentRightField)
		if value != nil && sameNode(value, callNode) {
			if left := parent.ChildByFieldName(spec.AssignmentLeftField); left != nil {
				loc := tsutil.NodeLocation(left, filePath)
				return &loc
			}
		}
	}
	return nil
}
