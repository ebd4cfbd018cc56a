package rustlang

import (
	"github.com/oxhq/semindex/internal/capture"
	"github.com/oxhq/semindex/internal/refextract"
	"github.com/oxhq/semindex/internal/semindex"
	"github.com/oxhq/semindex/internal/tsutil"
)

// ExtractReference turns one REFERENCE-category capture into a Reference.
// Rust has no `new`-keyword constructor syntax, so a call through a
// scoped path (`Foo::new(...)`, `Self::new(...)`) is treated as the
// constructor_call form instead.
func ExtractReference(c capture.Node, ctx *semindex.ProcessingContext) *semindex.Reference {
	switch c.Name {
	case "reference.function_call":
		return functionCall(c, ctx)
	case "reference.method_call":
		return methodOrSelfCall(c, ctx)
	case "reference.constructor_call":
		return constructorCall(c, ctx)
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

func functionCall(c capture.Node, ctx *semindex.ProcessingContext) *semindex.Reference {
	callExpr := c.Node.Parent()
	loc := c.Location
	if callExpr != nil {
		loc = tsutil.NodeLocation(callExpr, ctx.FilePath)
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

// constructorCall handles `Path::segment(...)` calls, e.g. `Foo::new(...)`,
// `Self::new(...)`, or a plain enum-variant constructor `Status::Active(...)`.
// The constructed type is the scoped path without its last segment ("Foo"
// for `Foo::new`, "a::Foo" for `a::Foo::new`), falling back to the whole
// captured text when the node has no path part.
func constructorCall(c capture.Node, ctx *semindex.ProcessingContext) *semindex.Reference {
	pathNode := c.Node
	callExpr := pathNode.Parent()
	loc := c.Location
	if callExpr != nil {
		loc = tsutil.NodeLocation(callExpr, ctx.FilePath)
	}
	name := c.Text
	if path := pathNode.ChildByFieldName("path"); path != nil {
		name = tsutil.Text(path, ctx.Source)
	}
	var target *semindex.Location
	if callExpr != nil {
		target = refextract.ConstructTarget(Spec, callExpr, ctx.FilePath)
	}
	return &semindex.Reference{
		Kind:             semindex.RefConstructorCall,
		Name:             name,
		Location:         loc,
		EnclosingScopeID: ctx.GetScopeID(loc),
		ConstructTarget:  target,
	}
}

func propertyAccess(c capture.Node, ctx *semindex.ProcessingContext) *semindex.Reference {
	memberNode := c.Node
	if parent := memberNode.Parent(); parent != nil && parent.Type() == "call_expression" {
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

func variableRef(c capture.Node, ctx *semindex.ProcessingContext, access semindex.AccessType) *semindex.Reference {
	return &semindex.Reference{
		Kind:             semindex.RefVariableRef,
		Name:             c.Text,
		Location:         c.Location,
		EnclosingScopeID: ctx.GetScopeID(c.Location),
		AccessType:       access,
	}
}

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
