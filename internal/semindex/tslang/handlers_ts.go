package tslang

import (
	"strings"

	sitter "github.com/smacker/go-tree-sitter"

	"github.com/oxhq/semindex/internal/capture"
	"github.com/oxhq/semindex/internal/semindex"
	"github.com/oxhq/semindex/internal/semindex/jslang"
	"github.com/oxhq/semindex/internal/symbolid"
	"github.com/oxhq/semindex/internal/tsutil"
)

// This file overrides the shared JavaScript definition handlers for
// class/method/field/parameter/variable/function. Each
// override re-derives the same symbol id jslang's handler would have (same
// capture, same location), so attachment from sibling captures (methods to
// their owning class, etc.) keeps resolving to the same id regardless of
// which registry handled the class itself.

// classAncestorSymbolID mirrors jslang's unexported helper of the same
// name: walk up from a member node to its owning class and recompute the
// SymbolID handleClassTS would have derived for it.
func classAncestorSymbolID(n *sitter.Node, filePath string) (symbolid.SymbolID, bool) {
	cls := findAncestor(n, "class_declaration", "class")
	if cls == nil {
		return "", false
	}
	name := cls.ChildByFieldName("name")
	if name == nil {
		return "", false
	}
	loc := tsutil.NodeLocation(name, filePath)
	return symbolid.For(symbolid.KindClass, toSymLoc(loc), ""), true
}

func accessModifierOf(n *sitter.Node) *semindex.AccessModifier {
	if n == nil {
		return nil
	}
	for i := 0; i < int(n.ChildCount()); i++ {
		if n.Child(i).Type() == "accessibility_modifier" {
			text := n.Child(i).Child(0)
			if text == nil {
				continue
			}
			var mod semindex.AccessModifier
			switch text.Type() {
			case "public":
				mod = semindex.AccessPublic
			case "private":
				mod = semindex.AccessPrivate
			case "protected":
				mod = semindex.AccessProtected
			default:
				continue
			}
			return &mod
		}
	}
	return nil
}

func typeAnnotationText(n *sitter.Node, source []byte) string {
	typeNode := n.ChildByFieldName("type")
	if typeNode == nil {
		return ""
	}
	return strings.TrimSpace(strings.TrimPrefix(tsutil.Text(typeNode, source), ":"))
}

// returnTypeText reads a function/method declaration's return_type field
// (tree-sitter-typescript's field name for `): T` annotations, distinct
// from the "type" field typed properties/parameters/variables use).
func returnTypeText(n *sitter.Node, source []byte) string {
	typeNode := n.ChildByFieldName("return_type")
	if typeNode == nil {
		return ""
	}
	return strings.TrimSpace(strings.TrimPrefix(tsutil.Text(typeNode, source), ":"))
}

func genericsOf(n *sitter.Node, source []byte) []string {
	if n == nil {
		return nil
	}
	tp := n.ChildByFieldName("type_parameters")
	if tp == nil {
		return nil
	}
	var out []string
	for i := 0; i < int(tp.NamedChildCount()); i++ {
		out = append(out, strings.TrimSpace(tsutil.Text(tp.NamedChild(i), source)))
	}
	return out
}

// handleClassTS overrides jslang's handleClass to also extract generics and
// split extends/implements into separate, unquoted entries.
func handleClassTS(c capture.Node, b *semindex.DefinitionBuilder, ctx *semindex.ProcessingContext) {
	declNode := findAncestor(c.Node, "class_declaration", "class")
	exported, export := exportInfo(declNode)
	id := symbolid.For(symbolid.KindClass, toSymLoc(c.Location), "")
	def := &semindex.ClassDef{
		Entity: semindex.Entity{
			SymbolID:        id,
			Name:            c.Text,
			Location:        c.Location,
			DefiningScopeID: ctx.GetScopeID(c.Location),
		},
		IsExported: exported,
		Export:     export,
		Decorators: decoratorsOf(declNode, ctx.Source),
	}
	if declNode != nil {
		def.Generics = genericsOf(declNode, ctx.Source)
		// class_heritage is a positional child holding extends_clause /
		// implements_clause, whose own children are likewise positional.
		if heritage := firstNamedChildOfType(declNode, "class_heritage"); heritage != nil {
			for i := 0; i < int(heritage.NamedChildCount()); i++ {
				clause := heritage.NamedChild(i)
				switch clause.Type() {
				case "extends_clause", "implements_clause":
					for j := 0; j < int(clause.NamedChildCount()); j++ {
						def.Extends = append(def.Extends, strings.TrimSpace(tsutil.Text(clause.NamedChild(j), ctx.Source)))
					}
				}
			}
		}
	}
	b.AddClass(def)
}

// firstNamedChildOfType returns the first named child of n with the given
// node type, for grammar productions exposed positionally rather than as
// fields.
func firstNamedChildOfType(n *sitter.Node, t string) *sitter.Node {
	if n == nil {
		return nil
	}
	for i := 0; i < int(n.NamedChildCount()); i++ {
		if n.NamedChild(i).Type() == t {
			return n.NamedChild(i)
		}
	}
	return nil
}

// decoratorsOf collects the literal text of every `decorator` child field of
// decl, stripped of their leading `@` (mirrors handleDecorator's text
// handling, but gathered up front for declarations whose own capture fires
// before the decorator capture in document order isn't guaranteed).
func decoratorsOf(decl *sitter.Node, source []byte) []string {
	if decl == nil {
		return nil
	}
	var out []string
	for i := 0; i < int(decl.ChildCount()); i++ {
		child := decl.Child(i)
		if child.Type() == "decorator" {
			out = append(out, strings.TrimPrefix(strings.TrimSpace(tsutil.Text(child, source)), "@"))
		}
	}
	return out
}

// handleMethodTS overrides jslang's handleMethod to add access modifier,
// abstract/readonly, return type, generics, and parameter-properties:
// constructor parameters carrying an accessibility modifier become both a
// parameter *and* a class property.
func handleMethodTS(c capture.Node, b *semindex.DefinitionBuilder, ctx *semindex.ProcessingContext) {
	methodNode := c.Node.Parent()
	if methodNode == nil {
		return
	}
	classID, ok := classAncestorSymbolID(methodNode, ctx.FilePath)
	if !ok {
		return
	}
	bodyNode := methodNode.ChildByFieldName("body")
	bodyLoc := c.Location
	if bodyNode != nil {
		bodyLoc = tsutil.NodeLocation(bodyNode, ctx.FilePath)
	}
	isStatic := hasChildOfType(methodNode, "static")
	isAsync := hasChildOfType(methodNode, "async")
	isAbstract := hasChildOfType(methodNode, "abstract")
	isReadonly := hasChildOfType(methodNode, "readonly")
	access := accessModifierOf(methodNode)
	returnType := returnTypeText(methodNode, ctx.Source)

	if c.Text == "constructor" {
		id := symbolid.For(symbolid.KindConstructor, toSymLoc(c.Location), "")
		def := &semindex.ConstructorDef{
			Entity: semindex.Entity{
				SymbolID:        id,
				Name:            c.Text,
				Location:        c.Location,
				DefiningScopeID: ctx.GetScopeID(c.Location),
			},
			BodyScopeID:    ctx.GetScopeID(bodyLoc),
			AccessModifier: access,
		}
		def.Signature.Parameters = buildParametersTS(methodNode.ChildByFieldName("parameters"), ctx, b, id, classID)
		def.Signature.ReturnType = returnType
		b.AddConstructorToClass(classID, def)
		return
	}

	kind := ""
	if hasChildOfType(methodNode, "get") {
		kind = "getter"
	} else if hasChildOfType(methodNode, "set") {
		kind = "setter"
	}

	id := symbolid.For(symbolid.KindMethod, toSymLoc(c.Location), "")
	def := &semindex.MethodDef{
		Entity: semindex.Entity{
			SymbolID:        id,
			Name:            c.Text,
			Location:        c.Location,
			DefiningScopeID: ctx.GetScopeID(c.Location),
		},
		Static:         isStatic,
		Async:          isAsync,
		Abstract:       isAbstract,
		Readonly:       isReadonly,
		AccessModifier: access,
		BodyScopeID:    ctx.GetScopeID(bodyLoc),
		Docstring:      b.ConsumeDocumentation(),
		Kind:           kind,
		Generics:       genericsOf(methodNode, ctx.Source),
		Decorators:     decoratorsOf(methodNode, ctx.Source),
	}
	def.Signature.Parameters = buildParametersTS(methodNode.ChildByFieldName("parameters"), ctx, b, id, classID)
	def.Signature.ReturnType = returnType
	b.AddMethodToClass(classID, def, c.Name)
}

// buildParametersTS runs jslang.BuildParameters and then promotes any
// constructor parameter carrying an accessibility modifier (public/private/
// protected) or a bare `readonly` to also being a class property.
func buildParametersTS(paramsNode *sitter.Node, ctx *semindex.ProcessingContext, b *semindex.DefinitionBuilder, callableID symbolid.SymbolID, classID symbolid.SymbolID) []semindex.ParameterDef {
	params := buildParametersShared(paramsNode, ctx, b, callableID)
	if paramsNode == nil {
		return params
	}
	for i := 0; i < int(paramsNode.ChildCount()); i++ {
		child := paramsNode.Child(i)
		if child.Type() != "required_parameter" && child.Type() != "optional_parameter" {
			continue
		}
		access := accessModifierOf(child)
		readonly := hasChildOfType(child, "readonly")
		if access == nil && !readonly {
			continue
		}
		nameNode := child.ChildByFieldName("pattern")
		if nameNode == nil {
			continue
		}
		loc := tsutil.NodeLocation(nameNode, ctx.FilePath)
		name := tsutil.Text(nameNode, ctx.Source)
		propID := symbolid.For(symbolid.KindProperty, toSymLoc(loc), name)
		def := &semindex.PropertyDef{
			Entity: semindex.Entity{
				SymbolID:        propID,
				Name:            name,
				Location:        loc,
				DefiningScopeID: ctx.GetScopeID(loc),
			},
			Type:           typeAnnotationText(child, ctx.Source),
			Readonly:       readonly,
			AccessModifier: access,
		}
		b.AddPropertyToClass(classID, def)
	}
	return params
}

// handlePropertyTS overrides jslang's handleProperty to add type, readonly,
// and access modifier.
func handlePropertyTS(c capture.Node, b *semindex.DefinitionBuilder, ctx *semindex.ProcessingContext) {
	fieldNode := c.Node.Parent()
	if fieldNode == nil {
		return
	}
	classID, ok := classAncestorSymbolID(fieldNode, ctx.FilePath)
	if !ok {
		return
	}
	id := symbolid.For(symbolid.KindProperty, toSymLoc(c.Location), "")
	def := &semindex.PropertyDef{
		Entity: semindex.Entity{
			SymbolID:        id,
			Name:            c.Text,
			Location:        c.Location,
			DefiningScopeID: ctx.GetScopeID(c.Location),
		},
		Static:         hasChildOfType(fieldNode, "static"),
		Readonly:       hasChildOfType(fieldNode, "readonly"),
		AccessModifier: accessModifierOf(fieldNode),
		Type:           typeAnnotationText(fieldNode, ctx.Source),
		Decorators:     decoratorsOf(fieldNode, ctx.Source),
	}
	if value := fieldNode.ChildByFieldName("value"); value != nil {
		def.InitialValue = strings.TrimSpace(tsutil.Text(value, ctx.Source))
	}
	b.AddPropertyToClass(classID, def)
}

// handleFunctionTS overrides jslang's handleFunction to add return type and
// generics.
func handleFunctionTS(c capture.Node, b *semindex.DefinitionBuilder, ctx *semindex.ProcessingContext) {
	fnNode := c.Node.Parent()
	if fnNode == nil {
		return
	}
	bodyNode := fnNode.ChildByFieldName("body")
	bodyLoc := c.Location
	if bodyNode != nil {
		bodyLoc = tsutil.NodeLocation(bodyNode, ctx.FilePath)
	}
	bodyScopeID := ctx.GetScopeID(bodyLoc)
	id := symbolid.For(symbolid.KindFunction, toSymLoc(c.Location), "")
	exported, export := exportInfo(fnNode)

	definingScope := ctx.GetScopeID(c.Location)
	if fnNode.Type() == "function_expression" {
		definingScope = bodyScopeID
	}

	def := &semindex.FunctionDef{
		Entity: semindex.Entity{
			SymbolID:        id,
			Name:            c.Text,
			Location:        c.Location,
			DefiningScopeID: definingScope,
		},
		IsExported:  exported,
		Export:      export,
		BodyScopeID: bodyScopeID,
		Docstring:   b.ConsumeDocumentation(),
		Generics:    genericsOf(fnNode, ctx.Source),
	}
	def.Signature.Parameters = buildParametersShared(fnNode.ChildByFieldName("parameters"), ctx, b, id)
	def.Signature.ReturnType = returnTypeText(fnNode, ctx.Source)
	b.AddFunction(def, c.Name)
}

// handleVariableTS overrides jslang's handleVariable to capture the
// declared type annotation.
func handleVariableTS(c capture.Node, b *semindex.DefinitionBuilder, ctx *semindex.ProcessingContext) {
	declarator := c.Node.Parent()
	if declarator == nil {
		return
	}
	declKind := semindex.VarKindVariable
	if decl := declarator.Parent(); decl != nil && hasChildOfType(decl, "const") {
		declKind = semindex.VarKindConstant
	}
	var exported bool
	if decl := declarator.Parent(); decl != nil {
		exported, _ = exportInfo(decl)
	}
	id := symbolid.For(symbolid.KindVariable, toSymLoc(c.Location), "")
	def := &semindex.VariableDef{
		Entity: semindex.Entity{
			SymbolID:        id,
			Name:            c.Text,
			Location:        c.Location,
			DefiningScopeID: ctx.GetScopeID(c.Location),
		},
		Kind:       declKind,
		IsExported: exported,
		Type:       typeAnnotationText(declarator, ctx.Source),
	}
	if value := declarator.ChildByFieldName("value"); value != nil {
		def.InitialValue = strings.TrimSpace(tsutil.Text(value, ctx.Source))
		attachInitializerMetadataTS(def, value, ctx.Source, b)
	}
	b.AddVariable(def)
}

func attachInitializerMetadataTS(def *semindex.VariableDef, value *sitter.Node, source []byte, b *semindex.DefinitionBuilder) {
	switch value.Type() {
	case "array", "object":
		var refs []string
		for i := 0; i < int(value.ChildCount()); i++ {
			child := value.Child(i)
			if child.Type() == "identifier" {
				refs = append(refs, tsutil.Text(child, source))
			}
		}
		if len(refs) > 0 {
			kind := "Array"
			if value.Type() == "object" {
				kind = "Dict"
			}
			def.FunctionCollection = &semindex.FunctionCollection{
				CollectionType:   kind,
				StoredReferences: refs,
				CollectionID:     def.SymbolID,
			}
		}
	case "call_expression":
		if fn := value.ChildByFieldName("function"); fn != nil {
			def.InitializedFromCall = strings.TrimSpace(tsutil.Text(fn, source))
		}
	case "new_expression":
		if ctor := value.ChildByFieldName("constructor"); ctor != nil {
			def.DerivedFrom = strings.TrimSpace(tsutil.Text(ctor, source))
		}
	case "subscript_expression":
		if obj := value.ChildByFieldName("object"); obj != nil {
			def.DerivedFrom = strings.TrimSpace(tsutil.Text(obj, source))
		}
	case "identifier":
		def.DerivedFrom = strings.TrimSpace(tsutil.Text(value, source))
		if src := b.FindVariableByName(def.DerivedFrom); src != nil && src.FunctionCollection != nil {
			def.CollectionSource = src.FunctionCollection
		}
	}
}

// buildParametersShared is a thin alias over jslang.BuildParameters, named
// for symmetry with buildParametersTS below it.
func buildParametersShared(paramsNode *sitter.Node, ctx *semindex.ProcessingContext, b *semindex.DefinitionBuilder, callableID symbolid.SymbolID) []semindex.ParameterDef {
	return jslang.BuildParameters(paramsNode, ctx, b, callableID)
}
