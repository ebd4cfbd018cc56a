package pylang

import (
	"unicode"

	sitter "github.com/smacker/go-tree-sitter"

	"github.com/oxhq/semindex/internal/capture"
	"github.com/oxhq/semindex/internal/refextract"
	"github.com/oxhq/semindex/internal/semindex"
	"github.com/oxhq/semindex/internal/tsutil"
)

// ExtractReference turns one REFERENCE-category capture into a Reference,
// mirroring jslang's dispatch shape but against Python's grammar:
// attribute access plays the role member_expression does in JS/TS, and a
// capitalized bare call is treated as a constructor invocation since Python
// has no separate `new` syntax.
func ExtractReference(c capture.Node, ctx *semindex.ProcessingContext) *semindex.Reference {
	switch c.Name {
	case "reference.function_call":
		return functionOrConstructorCall(c, ctx)
	case "reference.method_call":
		return methodOrSelfCall(c, ctx)
	case "reference.property_access":
		return propertyAccess(c, ctx)
	case "reference.assignment":
		return assignmentRef(c, ctx)
	case "reference.variable_reference.write":
		return variableRef(c, ctx, semindex.AccessWrite)
	case "reference.variable_reference.read":
		return variableRef(c, ctx, semindex.AccessRead)
	case "reference.type_reference":
		return typeReference(c, ctx)
	default:
		return nil
	}
}

// isConstructorName applies Python's PascalCase convention: a bare call
// whose callee identifier starts uppercase is treated as a class
// instantiation rather than a plain function call, since the grammar gives
// no other way to tell `Foo()` apart from `foo()`.
func isConstructorName(name string) bool {
	for _, r := range name {
		return unicode.IsUpper(r)
	}
	return false
}

func functionOrConstructorCall(c capture.Node, ctx *semindex.ProcessingContext) *semindex.Reference {
	callExpr := c.Node.Parent()
	loc := c.Location
	if callExpr != nil {
		loc = tsutil.NodeLocation(callExpr, ctx.FilePath)
	}
	if isConstructorName(c.Text) {
		var target *semindex.Location
		if callExpr != nil {
			target = refextract.ConstructTarget(Spec, callExpr, ctx.FilePath)
		}
		return &semindex.Reference{
			Kind:             semindex.RefConstructorCall,
			Name:             c.Text,
			Location:         loc,
			EnclosingScopeID: ctx.GetScopeID(loc),
			ConstructTarget:  target,
		}
	}
	return &semindex.Reference{
		Kind:             semindex.RefFunctionCall,
		Name:             c.Text,
		Location:         loc,
		EnclosingScopeID: ctx.GetScopeID(loc),
	}
}

func methodOrSelfCall(c capture.Node, ctx *semindex.ProcessingContext) *semindex.Reference {
	memberNode := c.Node
	callExpr := memberNode.Parent()
	loc := c.Location
	if callExpr != nil {
		loc = tsutil.NodeLocation(callExpr, ctx.FilePath)
	}
	chain := refextract.PropertyChain(Spec, memberNode, ctx.Source)
	name := memberNode.ChildByFieldName(Spec.PropertyField)
	methodName := ""
	if name != nil {
		methodName = tsutil.Text(name, ctx.Source)
	}
	receiverLoc := refextract.ReceiverLocation(Spec, memberNode, ctx.FilePath)

	if len(chain) > 0 {
		if kw, ok := refextract.SelfKeywordFor(Spec, chain[0]); ok {
			return &semindex.Reference{
				Kind:             semindex.RefSelfReference,
				Name:             methodName,
				Location:         loc,
				EnclosingScopeID: ctx.GetScopeID(loc),
				ReceiverLocation: receiverLoc,
				PropertyChain:    chain,
				Keyword:          kw,
			}
		}
	}

	return &semindex.Reference{
		Kind:             semindex.RefMethodCall,
		Name:             methodName,
		Location:         loc,
		EnclosingScopeID: ctx.GetScopeID(loc),
		ReceiverLocation: receiverLoc,
		PropertyChain:    chain,
	}
}

func propertyAccess(c capture.Node, ctx *semindex.ProcessingContext) *semindex.Reference {
	memberNode := c.Node
	if parent := memberNode.Parent(); parent != nil && parent.Type() == "call" {
		if fn := parent.ChildByFieldName("function"); fn != nil && sameSpan(fn, memberNode) {
			return nil // already emitted as method_call
		}
	}
	name := memberNode.ChildByFieldName(Spec.PropertyField)
	propName := ""
	if name != nil {
		propName = tsutil.Text(name, ctx.Source)
	}
	return &semindex.Reference{
		Kind:             semindex.RefPropertyAccess,
		Name:             propName,
		Location:         c.Location,
		EnclosingScopeID: ctx.GetScopeID(c.Location),
		ReceiverLocation: refextract.ReceiverLocation(Spec, memberNode, ctx.FilePath),
		PropertyChain:    refextract.PropertyChain(Spec, memberNode, ctx.Source),
	}
}

func sameSpan(a, b *sitter.Node) bool {
	return a.StartByte() == b.StartByte() && a.EndByte() == b.EndByte()
}

// variableRef emits a variable_reference with the given access type. Names
// bound by for/with/except are never exported (see handleTrackedVariable),
// and a read/write reference to one is a variable_reference like any other.
func variableRef(c capture.Node, ctx *semindex.ProcessingContext, access semindex.AccessType) *semindex.Reference {
	return &semindex.Reference{
		Kind:             semindex.RefVariableRef,
		Name:             c.Text,
		Location:         c.Location,
		EnclosingScopeID: ctx.GetScopeID(c.Location),
		AccessType:       access,
	}
}

// typeReference emits one type_reference for a single captured identifier.
// It does not recurse itself: the query patterns supply the identifiers,
// namely a bare annotation (`x: Foo`) and the container and direct
// identifier arguments of a subscript annotation (`x: Dict[str, Foo]`).
// Arguments that are themselves subscripts (`List[int]` inside
// `Dict[str, List[int]]`) are not descended into.
func typeReference(c capture.Node, ctx *semindex.ProcessingContext) *semindex.Reference {
	return &semindex.Reference{
		Kind:             semindex.RefTypeReference,
		Name:             c.Text,
		Location:         c.Location,
		EnclosingScopeID: ctx.GetScopeID(c.Location),
		TypeInfo: &semindex.TypeInfo{
			TypeName:  c.Text,
			Certainty: semindex.CertaintyDeclared,
		},
	}
}

// assignmentRef emits the assignment record for an identifier LHS; the
// paired variable_reference(write) comes from its own capture.
func assignmentRef(c capture.Node, ctx *semindex.ProcessingContext) *semindex.Reference {
	loc := c.Location
	if parent := c.Node.Parent(); parent != nil {
		loc = tsutil.NodeLocation(parent, ctx.FilePath)
	}
	return &semindex.Reference{
		Kind:             semindex.RefAssignment,
		Name:             c.Text,
		Location:         loc,
		EnclosingScopeID: ctx.GetScopeID(loc),
	}
}
