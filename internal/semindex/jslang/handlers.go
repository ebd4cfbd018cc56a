package jslang

import (
	"strings"

	sitter "github.com/smacker/go-tree-sitter"

	"github.com/oxhq/semindex/internal/capture"
	"github.com/oxhq/semindex/internal/handler"
	"github.com/oxhq/semindex/internal/refextract"
	"github.com/oxhq/semindex/internal/semindex"
	"github.com/oxhq/semindex/internal/symbolid"
	"github.com/oxhq/semindex/internal/tsutil"
)

// Handlers is the frozen JavaScript capture-name -> handler table. TypeScript's registry (internal/semindex/tslang) overlays this one.
var Handlers = handler.New()

func init() {
	Handlers.Register("definition.class", handleClass)
	Handlers.Register("definition.class.named", handleClass)
	Handlers.Register("definition.function", handleFunction)
	Handlers.Register("definition.function.named", handleFunction)
	Handlers.Register("definition.method", handleMethod)
	Handlers.Register("definition.property", handleProperty)
	Handlers.Register("definition.variable", handleVariable)
	Handlers.Register("import.named", handleNamedImport)
	Handlers.Register("import.namespace", handleNamespaceImport)
	Handlers.Register("import.default", handleDefaultImport)
	Handlers.Register("import.require", handleRequireImport)
	Handlers.Register("import.reexport", handleReExport)
	Handlers.Register("definition.function.anonymous", handleAnonymousFunction)
}

// findAncestor walks up from n looking for the first ancestor of any type in
// types.
func findAncestor(n *sitter.Node, types ...string) *sitter.Node {
	for cur := n.Parent(); cur != nil; cur = cur.Parent() {
		for _, t := range types {
			if cur.Type() == t {
				return cur
			}
		}
	}
	return nil
}

// classAncestorSymbolID walks up from a member node (method/property/etc.)
// to its owning class_declaration/class and computes the SymbolID the same
// way handleClass does, so attachment calls resolve to the same id.
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

func toSymLoc(loc semindex.Location) symbolid.Loc {
	return symbolid.Loc{
		FilePath:    loc.FilePath,
		StartLine:   loc.StartLine,
		StartColumn: loc.StartColumn,
		EndLine:     loc.EndLine,
		EndColumn:   loc.EndColumn,
	}
}

// exportInfo reports whether decl is directly wrapped by an export_statement,
// and whether that export is the module's default export.
func exportInfo(decl *sitter.Node) (exported bool, export string) {
	if decl == nil {
		return false, ""
	}
	parent := decl.Parent()
	if parent == nil || parent.Type() != "export_statement" {
		return false, ""
	}
	for i := 0; i < int(parent.ChildCount()); i++ {
		if parent.Child(i).Type() == "default" {
			return true, "default"
		}
	}
	return true, "named"
}

func hasChildOfType(n *sitter.Node, t string) bool {
	if n == nil {
		return false
	}
	for i := 0; i < int(n.ChildCount()); i++ {
		if n.Child(i).Type() == t {
			return true
		}
	}
	return false
}

// BuildParameters walks a formal_parameters (or single bare-identifier arrow
// parameter) node into ParameterDefs, registering each with the builder.
// Shared with internal/semindex/tslang, which additionally feeds it
// required_parameter/optional_parameter nodes (TS-only grammar productions
// carrying type annotations).
func BuildParameters(paramsNode *sitter.Node, ctx *semindex.ProcessingContext, b *semindex.DefinitionBuilder, callableID symbolid.SymbolID) []semindex.ParameterDef {
	if paramsNode == nil {
		return nil
	}
	var params []semindex.ParameterDef
	addParam := func(nameNode, defaultExpr, typeNode *sitter.Node, optional bool) {
		if nameNode == nil {
			return
		}
		loc := tsutil.NodeLocation(nameNode, ctx.FilePath)
		name := tsutil.Text(nameNode, ctx.Source)
		id := symbolid.For(symbolid.KindParameter, toSymLoc(loc), name)
		def := semindex.ParameterDef{
			Entity: semindex.Entity{
				SymbolID:        id,
				Name:            name,
				Location:        loc,
				DefiningScopeID: ctx.GetScopeID(loc),
			},
			Optional: optional,
		}
		if defaultExpr != nil {
			def.DefaultValue = tsutil.Text(defaultExpr, ctx.Source)
			def.Optional = true
		}
		if typeNode != nil {
			def.Type = strings.TrimPrefix(strings.TrimSpace(tsutil.Text(typeNode, ctx.Source)), ":")
			def.Type = strings.TrimSpace(def.Type)
		}
		b.AddParameterToCallable(callableID, &def)
		params = append(params, def)
	}

	if paramsNode.Type() == "identifier" {
		addParam(paramsNode, nil, nil, false)
		return params
	}
	for i := 0; i < int(paramsNode.ChildCount()); i++ {
		child := paramsNode.Child(i)
		switch child.Type() {
		case "identifier":
			addParam(child, nil, nil, false)
		case "assignment_pattern":
			addParam(child.ChildByFieldName("left"), child.ChildByFieldName("right"), nil, true)
		case "rest_pattern":
			if id := child.Child(1); id != nil {
				addParam(id, nil, nil, false)
			}
		case "required_parameter":
			addParam(child.ChildByFieldName("pattern"), child.ChildByFieldName("value"), child.ChildByFieldName("type"), false)
		case "optional_parameter":
			addParam(child.ChildByFieldName("pattern"), child.ChildByFieldName("value"), child.ChildByFieldName("type"), true)
		case "object_pattern", "array_pattern":
			// Destructured parameters: no single name to bind; skip rather
			// than guess a synthetic one.
		}
	}
	return params
}

func handleClass(c capture.Node, b *semindex.DefinitionBuilder, ctx *semindex.ProcessingContext) {
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
	}
	if declNode != nil {
		// class_heritage is a positional child ("extends <expr>"), not a
		// named field; its single named child is the superclass expression.
		if heritage := findFirstNamed(declNode, "class_heritage"); heritage != nil {
			if super := heritage.NamedChild(0); super != nil {
				def.Extends = append(def.Extends, strings.TrimSpace(tsutil.Text(super, ctx.Source)))
			}
		}
	}
	b.AddClass(def)
}

func handleFunction(c capture.Node, b *semindex.DefinitionBuilder, ctx *semindex.ProcessingContext) {
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

	// A named function expression (`const f = function g(){...}`) binds its
	// own name g inside its own body scope rather than the enclosing one,
	// so g can call itself. function_expression is
	// the expression-form grammar production; function_declaration is always
	// a statement and keeps the enclosing-scope binding.
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
	}
	def.Signature.Parameters = BuildParameters(fnNode.ChildByFieldName("parameters"), ctx, b, id)
	b.AddFunction(def, c.Name)
}

func handleMethod(c capture.Node, b *semindex.DefinitionBuilder, ctx *semindex.ProcessingContext) {
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

	if c.Text == "constructor" {
		id := symbolid.For(symbolid.KindConstructor, toSymLoc(c.Location), "")
		def := &semindex.ConstructorDef{
			Entity: semindex.Entity{
				SymbolID:        id,
				Name:            c.Text,
				Location:        c.Location,
				DefiningScopeID: ctx.GetScopeID(c.Location),
			},
			BodyScopeID: ctx.GetScopeID(bodyLoc),
		}
		def.Signature.Parameters = BuildParameters(methodNode.ChildByFieldName("parameters"), ctx, b, id)
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
		Static:      isStatic,
		Async:       isAsync,
		BodyScopeID: ctx.GetScopeID(bodyLoc),
		Docstring:   b.ConsumeDocumentation(),
		Kind:        kind,
	}
	def.Signature.Parameters = BuildParameters(methodNode.ChildByFieldName("parameters"), ctx, b, id)
	b.AddMethodToClass(classID, def, c.Name)
}

func handleProperty(c capture.Node, b *semindex.DefinitionBuilder, ctx *semindex.ProcessingContext) {
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
		Static: hasChildOfType(fieldNode, "static"),
	}
	if value := fieldNode.ChildByFieldName("value"); value != nil {
		def.InitialValue = strings.TrimSpace(tsutil.Text(value, ctx.Source))
	}
	b.AddPropertyToClass(classID, def)
}

func handleVariable(c capture.Node, b *semindex.DefinitionBuilder, ctx *semindex.ProcessingContext) {
	declarator := c.Node.Parent()
	if declarator == nil {
		return
	}
	declKind := semindex.VarKindVariable
	if decl := declarator.Parent(); decl != nil && hasChildOfType(decl, "const") {
		declKind = semindex.VarKindConstant
	}
	var exported bool
	var export string
	if decl := declarator.Parent(); decl != nil {
		exported, export = exportInfo(decl)
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
	}
	_ = export
	if value := declarator.ChildByFieldName("value"); value != nil {
		def.InitialValue = strings.TrimSpace(tsutil.Text(value, ctx.Source))
		attachInitializerMetadata(def, value, ctx.Source, b)
	}
	b.AddVariable(def)
}

// attachInitializerMetadata fills the function_collection / derived_from /
// initialized_from_call hints for certain variable initializers. The only
// cross-reference made is a same-file lookup of an identifier initializer's
// source variable, to copy its collection summary.
func attachInitializerMetadata(def *semindex.VariableDef, value *sitter.Node, source []byte, b *semindex.DefinitionBuilder) {
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

func importSource(specifier *sitter.Node, source []byte) string {
	stmt := findAncestor(specifier, "import_statement")
	if stmt == nil {
		return ""
	}
	src := stmt.ChildByFieldName("source")
	if src == nil {
		return ""
	}
	return strings.Trim(tsutil.Text(src, source), `"'`)
}

func handleNamedImport(c capture.Node, b *semindex.DefinitionBuilder, ctx *semindex.ProcessingContext) {
	specifier := c.Node.Parent()
	original := c.Text
	localName := c.Text
	if specifier != nil {
		if alias := specifier.ChildByFieldName("alias"); alias != nil {
			localName = tsutil.Text(alias, ctx.Source)
		}
	}
	id := symbolid.For(symbolid.KindImport, toSymLoc(c.Location), localName)
	def := &semindex.ImportDef{
		Entity: semindex.Entity{
			SymbolID:        id,
			Name:            localName,
			Location:        c.Location,
			DefiningScopeID: ctx.GetScopeID(c.Location),
		},
		ImportPath:   importSource(c.Node, ctx.Source),
		ImportKind:   semindex.ImportNamed,
		OriginalName: original,
	}
	b.AddImport(def)
}

func handleNamespaceImport(c capture.Node, b *semindex.DefinitionBuilder, ctx *semindex.ProcessingContext) {
	id := symbolid.For(symbolid.KindImport, toSymLoc(c.Location), c.Text)
	def := &semindex.ImportDef{
		Entity: semindex.Entity{
			SymbolID:        id,
			Name:            c.Text,
			Location:        c.Location,
			DefiningScopeID: ctx.GetScopeID(c.Location),
		},
		ImportPath: importSource(c.Node, ctx.Source),
		ImportKind: semindex.ImportNamespace,
	}
	b.AddImport(def)
}

func handleDefaultImport(c capture.Node, b *semindex.DefinitionBuilder, ctx *semindex.ProcessingContext) {
	id := symbolid.For(symbolid.KindImport, toSymLoc(c.Location), c.Text)
	def := &semindex.ImportDef{
		Entity: semindex.Entity{
			SymbolID:        id,
			Name:            c.Text,
			Location:        c.Location,
			DefiningScopeID: ctx.GetScopeID(c.Location),
		},
		ImportPath: importSource(c.Node, ctx.Source),
		ImportKind: semindex.ImportDefault,
	}
	b.AddImport(def)
}

// handleAnonymousFunction covers arrow functions and unnamed function
// expressions. Named function expressions are captured separately by
// definition.function.named and would double-register here, so this
// handler skips any `function` node that carries a name field.
func handleAnonymousFunction(c capture.Node, b *semindex.DefinitionBuilder, ctx *semindex.ProcessingContext) {
	fnNode := c.Node
	if fnNode.Type() == "function_expression" && fnNode.ChildByFieldName("name") != nil {
		return
	}
	bodyNode := fnNode.ChildByFieldName("body")
	bodyLoc := c.Location
	if bodyNode != nil {
		bodyLoc = tsutil.NodeLocation(bodyNode, ctx.FilePath)
	}
	id := symbolid.For(symbolid.KindAnonymousFunction, toSymLoc(c.Location), "")
	def := &semindex.FunctionDef{
		Entity: semindex.Entity{
			SymbolID:        id,
			Name:            "",
			Location:        c.Location,
			DefiningScopeID: ctx.GetScopeID(c.Location),
		},
		BodyScopeID:     ctx.GetScopeID(bodyLoc),
		CallbackContext: refextract.CallbackContext(Spec, fnNode, ctx.FilePath),
	}
	def.Signature.Parameters = BuildParameters(fnNode.ChildByFieldName("parameters"), ctx, b, id)
	b.AddAnonymousFunction(def, c.Name)
}

// requireSource extracts the string-literal argument of a `require(...)`
// call.
func requireSource(callNode *sitter.Node, source []byte) string {
	args := callNode.ChildByFieldName("arguments")
	if args == nil || args.NamedChildCount() == 0 {
		return ""
	}
	return strings.Trim(tsutil.Text(args.NamedChild(0), source), `"'`)
}

// handleRequireImport covers both `const x = require("y")` and destructured
// `const { a, b } = require("y")`.
func handleRequireImport(c capture.Node, b *semindex.DefinitionBuilder, ctx *semindex.ProcessingContext) {
	declarator := c.Node // the pattern captures the variable_declarator itself
	if declarator == nil {
		return
	}
	callNode := declarator.ChildByFieldName("value")
	if callNode == nil || callNode.Type() != "call_expression" {
		return
	}
	callee := callNode.ChildByFieldName("function")
	if callee == nil || tsutil.Text(callee, ctx.Source) != "require" {
		return
	}
	path := requireSource(callNode, ctx.Source)
	nameNode := declarator.ChildByFieldName("name")
	if nameNode == nil {
		return
	}

	switch nameNode.Type() {
	case "identifier":
		loc := tsutil.NodeLocation(nameNode, ctx.FilePath)
		name := tsutil.Text(nameNode, ctx.Source)
		id := symbolid.For(symbolid.KindImport, toSymLoc(loc), name)
		b.AddImport(&semindex.ImportDef{
			Entity: semindex.Entity{
				SymbolID:        id,
				Name:            name,
				Location:        loc,
				DefiningScopeID: ctx.GetScopeID(loc),
			},
			ImportPath: path,
			ImportKind: semindex.ImportDefault,
		})
	case "object_pattern":
		for i := 0; i < int(nameNode.NamedChildCount()); i++ {
			prop := nameNode.NamedChild(i)
			var keyNode, valueNode *sitter.Node
			switch prop.Type() {
			case "shorthand_property_identifier_pattern":
				keyNode, valueNode = prop, prop
			case "pair_pattern":
				keyNode = prop.ChildByFieldName("key")
				valueNode = prop.ChildByFieldName("value")
			}
			if keyNode == nil || valueNode == nil {
				continue
			}
			loc := tsutil.NodeLocation(valueNode, ctx.FilePath)
			localName := tsutil.Text(valueNode, ctx.Source)
			original := tsutil.Text(keyNode, ctx.Source)
			id := symbolid.For(symbolid.KindImport, toSymLoc(loc), localName)
			def := &semindex.ImportDef{
				Entity: semindex.Entity{
					SymbolID:        id,
					Name:            localName,
					Location:        loc,
					DefiningScopeID: ctx.GetScopeID(loc),
				},
				ImportPath: path,
				ImportKind: semindex.ImportNamed,
			}
			if original != localName {
				def.OriginalName = original
			}
			b.AddImport(def)
		}
	}
}

// handleReExport covers `export { X } from "mod"`, `export * from "mod"`,
// `export * as ns from "mod"`, and `export { X as default }`. c.Node is the export_statement.
func handleReExport(c capture.Node, b *semindex.DefinitionBuilder, ctx *semindex.ProcessingContext) {
	stmt := c.Node
	source := stmt.ChildByFieldName("source")
	path := ""
	if source != nil {
		path = strings.Trim(tsutil.Text(source, ctx.Source), `"'`)
	}

	if hasChildOfType(stmt, "*") {
		// export * from "mod" / export * as ns from "mod"
		name := "*"
		exportTag := "named"
		if ns := findFirstNamed(stmt, "identifier"); ns != nil {
			name = tsutil.Text(ns, ctx.Source)
		}
		loc := tsutil.NodeLocation(stmt, ctx.FilePath)
		id := symbolid.For(symbolid.KindImport, toSymLoc(loc), name)
		b.AddImport(&semindex.ImportDef{
			Entity: semindex.Entity{
				SymbolID:        id,
				Name:            name,
				Location:        loc,
				DefiningScopeID: ctx.GetScopeID(loc),
			},
			ImportPath: path,
			ImportKind: semindex.ImportNamespace,
			Export:     exportTag,
			IsExported: true,
		})
		return
	}

	clause := findFirstNamed(stmt, "export_clause")
	if clause == nil {
		return
	}
	for i := 0; i < int(clause.NamedChildCount()); i++ {
		spec := clause.NamedChild(i)
		if spec.Type() != "export_specifier" {
			continue
		}
		nameNode := spec.ChildByFieldName("name")
		aliasNode := spec.ChildByFieldName("alias")
		if nameNode == nil {
			continue
		}
		original := tsutil.Text(nameNode, ctx.Source)
		localName := original
		exportTag := "named"
		if aliasNode != nil {
			localName = tsutil.Text(aliasNode, ctx.Source)
			if localName == "default" {
				exportTag = "default"
			}
		}
		loc := tsutil.NodeLocation(spec, ctx.FilePath)
		id := symbolid.For(symbolid.KindImport, toSymLoc(loc), localName)
		def := &semindex.ImportDef{
			Entity: semindex.Entity{
				SymbolID:        id,
				Name:            localName,
				Location:        loc,
				DefiningScopeID: ctx.GetScopeID(loc),
			},
			ImportPath: path,
			ImportKind: semindex.ImportNamed,
			Export:     exportTag,
			IsExported: true,
		}
		if original != localName {
			def.OriginalName = original
		}
		b.AddImport(def)
	}
}

func findFirstNamed(n *sitter.Node, t string) *sitter.Node {
	for i := 0; i < int(n.NamedChildCount()); i++ {
		if n.NamedChild(i).Type() == t {
			return n.NamedChild(i)
		}
	}
	return nil
}
