package rustlang

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

// Handlers is the frozen Rust capture-name -> handler table.
var Handlers = handler.New()

func init() {
	Handlers.Register("definition.class", handleStruct)
	Handlers.Register("definition.enum", handleEnum)
	Handlers.Register("definition.enum_member", handleEnumMember)
	Handlers.Register("definition.interface", handleTrait)
	Handlers.Register("definition.function", handleFunction)
	Handlers.Register("definition.method.signature", handleFunction)
	Handlers.Register("definition.function.anonymous", handleClosure)
	Handlers.Register("definition.variable", handleLet)
	Handlers.Register("definition.variable.const", handleConstStatic)
	Handlers.Register("definition.namespace", handleMod)
	Handlers.Register("definition.type_alias", handleTypeAlias)
	Handlers.Register("decorator.attached", handleAttribute)
	Handlers.Register("import.use", handleUse)
	Handlers.Register("import.extern_crate", handleExternCrate)
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

// isPublic reports whether decl carries a `pub`/`pub(...)` visibility
// modifier, Rust's export signal in place of JS's export_statement wrapper.
func isPublic(decl *sitter.Node) bool {
	return hasChildOfType(decl, "visibility_modifier")
}

// implTargetName extracts the bare type name an impl_item attaches to, e.g.
// `impl Foo` or `impl<T> Foo<T>` or `impl Trait for Foo` all resolve to
// "Foo": the grammar's "type" field holds either a type_identifier directly
// or a generic_type wrapping one.
func implTargetName(implNode *sitter.Node, source []byte) string {
	typeNode := implNode.ChildByFieldName("type")
	if typeNode == nil {
		return ""
	}
	if typeNode.Type() == "type_identifier" {
		return tsutil.Text(typeNode, source)
	}
	if inner := typeNode.ChildByFieldName("type"); inner != nil {
		return tsutil.Text(inner, source)
	}
	return tsutil.Text(typeNode, source)
}

func handleStruct(c capture.Node, b *semindex.DefinitionBuilder, ctx *semindex.ProcessingContext) {
	declNode := c.Node.Parent()
	id := symbolid.For(symbolid.KindClass, toSymLoc(c.Location), "")
	def := &semindex.ClassDef{
		Entity: semindex.Entity{
			SymbolID:        id,
			Name:            c.Text,
			Location:        c.Location,
			DefiningScopeID: ctx.GetScopeID(c.Location),
		},
		Decorators: pendingAttributes(declNode, ctx.Source),
		IsExported: isPublic(declNode),
	}
	b.AddClass(def)
}

func handleEnum(c capture.Node, b *semindex.DefinitionBuilder, ctx *semindex.ProcessingContext) {
	declNode := c.Node.Parent()
	id := symbolid.For(symbolid.KindEnum, toSymLoc(c.Location), "")
	def := &semindex.EnumDef{
		Entity: semindex.Entity{
			SymbolID:        id,
			Name:            c.Text,
			Location:        c.Location,
			DefiningScopeID: ctx.GetScopeID(c.Location),
		},
		IsExported: isPublic(declNode),
	}
	b.AddEnum(def)
}

func handleEnumMember(c capture.Node, b *semindex.DefinitionBuilder, ctx *semindex.ProcessingContext) {
	enumNode := findAncestor(c.Node, "enum_item")
	if enumNode == nil {
		return
	}
	name := enumNode.ChildByFieldName("name")
	if name == nil {
		return
	}
	enumLoc := tsutil.NodeLocation(name, ctx.FilePath)
	enumID := symbolid.For(symbolid.KindEnum, toSymLoc(enumLoc), "")

	variantNode := c.Node.Parent()
	member := semindex.EnumMember{
		Entity: semindex.Entity{
			SymbolID:        symbolid.For(symbolid.KindEnumMember, toSymLoc(c.Location), c.Text),
			Name:            c.Text,
			Location:        c.Location,
			DefiningScopeID: ctx.GetScopeID(c.Location),
		},
	}
	if variantNode != nil {
		if value := variantNode.ChildByFieldName("value"); value != nil {
			member.Value = strings.TrimSpace(tsutil.Text(value, ctx.Source))
		}
	}
	b.AddEnumMember(enumID, member)
}

func handleTrait(c capture.Node, b *semindex.DefinitionBuilder, ctx *semindex.ProcessingContext) {
	declNode := c.Node.Parent()
	id := symbolid.For(symbolid.KindInterface, toSymLoc(c.Location), "")
	def := &semindex.InterfaceDef{
		Entity: semindex.Entity{
			SymbolID:        id,
			Name:            c.Text,
			Location:        c.Location,
			DefiningScopeID: ctx.GetScopeID(c.Location),
		},
		IsExported: isPublic(declNode),
	}
	if declNode != nil {
		if bounds := declNode.ChildByFieldName("bounds"); bounds != nil {
			def.Extends = append(def.Extends, strings.TrimSpace(tsutil.Text(bounds, ctx.Source)))
		}
	}
	b.AddInterface(def)
}

// buildParameters walks a Rust `parameters` node. A leading self_parameter
// becomes a parameter named "self" whose type is the enclosing struct/trait
// name (ownerType); ownerType is "" for free functions, which have no self.
func buildParameters(paramsNode *sitter.Node, ctx *semindex.ProcessingContext, b *semindex.DefinitionBuilder, callableID symbolid.SymbolID, ownerType string) []semindex.ParameterDef {
	if paramsNode == nil {
		return nil
	}
	var params []semindex.ParameterDef
	for i := 0; i < int(paramsNode.NamedChildCount()); i++ {
		child := paramsNode.NamedChild(i)
		if child.Type() == "self_parameter" && ownerType != "" {
			loc := tsutil.NodeLocation(child, ctx.FilePath)
			id := symbolid.For(symbolid.KindParameter, toSymLoc(loc), "self")
			def := semindex.ParameterDef{
				Entity: semindex.Entity{
					SymbolID:        id,
					Name:            "self",
					Location:        loc,
					DefiningScopeID: ctx.GetScopeID(loc),
				},
				Type: ownerType,
			}
			b.AddParameterToCallable(callableID, &def)
			params = append(params, def)
			continue
		}
		if child.Type() != "parameter" {
			continue
		}
		nameNode := child.ChildByFieldName("pattern")
		if nameNode == nil {
			continue
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
		}
		if t := child.ChildByFieldName("type"); t != nil {
			def.Type = strings.TrimSpace(tsutil.Text(t, ctx.Source))
		}
		b.AddParameterToCallable(callableID, &def)
		params = append(params, def)
	}
	return params
}

// handleFunction covers both function_item (definition.function) and
// function_signature_item (definition.method.signature, trait method
// declarations without a body). Both carry the same name/parameters/
// return_type field shape. A function inside an impl_item whose target
// type is a known struct becomes a MethodDef on it (or a ConstructorDef,
// for a self-less one named "new"); otherwise one inside a trait_item
// becomes a method signature on that trait's InterfaceDef; anything else is
// a FunctionDef.
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
	returnType := ""
	if rt := fnNode.ChildByFieldName("return_type"); rt != nil {
		returnType = strings.TrimSpace(tsutil.Text(rt, ctx.Source))
	}

	implNode := findAncestor(fnNode, "impl_item")
	traitNode := findAncestor(fnNode, "trait_item")

	var ownerClass *semindex.ClassDef
	if implNode != nil {
		ownerClass = b.FindClassByName(implTargetName(implNode, ctx.Source))
	}

	params := fnNode.ChildByFieldName("parameters")
	hasSelf := params != nil && params.NamedChildCount() > 0 && params.NamedChild(0).Type() == "self_parameter"

	if ownerClass != nil {
		if c.Text == "new" && !hasSelf {
			id := symbolid.For(symbolid.KindConstructor, toSymLoc(c.Location), "")
			def := &semindex.ConstructorDef{
				Entity: semindex.Entity{
					SymbolID:        id,
					Name:            c.Text,
					Location:        c.Location,
					DefiningScopeID: ctx.GetScopeID(c.Location),
				},
				BodyScopeID: bodyScopeID,
			}
			def.Signature.Parameters = buildParameters(params, ctx, b, id, ownerClass.Name)
			def.Signature.ReturnType = returnType
			b.AddConstructorToClass(ownerClass.SymbolID, def)
			return
		}
		id := symbolid.For(symbolid.KindMethod, toSymLoc(c.Location), "")
		def := &semindex.MethodDef{
			Entity: semindex.Entity{
				SymbolID:        id,
				Name:            c.Text,
				Location:        c.Location,
				DefiningScopeID: ctx.GetScopeID(c.Location),
			},
			BodyScopeID: bodyScopeID,
			Static:      !hasSelf,
			Async:       hasChildOfType(fnNode, "async"),
			Decorators:  pendingAttributes(fnNode, ctx.Source),
		}
		def.Signature.Parameters = buildParameters(params, ctx, b, id, ownerClass.Name)
		def.Signature.ReturnType = returnType
		b.AddMethodToClass(ownerClass.SymbolID, def, c.Name)
		return
	}

	if traitNode != nil {
		name := traitNode.ChildByFieldName("name")
		if name == nil {
			return
		}
		ifaceID := symbolid.For(symbolid.KindInterface, toSymLoc(tsutil.NodeLocation(name, ctx.FilePath)), "")
		id := symbolid.For(symbolid.KindMethod, toSymLoc(c.Location), "")
		def := &semindex.MethodDef{
			Entity: semindex.Entity{
				SymbolID:        id,
				Name:            c.Text,
				Location:        c.Location,
				DefiningScopeID: ctx.GetScopeID(c.Location),
			},
			BodyScopeID: bodyScopeID,
		}
		def.Signature.Parameters = buildParameters(params, ctx, b, id, tsutil.Text(name, ctx.Source))
		def.Signature.ReturnType = returnType
		b.AddMethodSignatureToInterface(ifaceID, def)
		return
	}

	id := symbolid.For(symbolid.KindFunction, toSymLoc(c.Location), "")
	def := &semindex.FunctionDef{
		Entity: semindex.Entity{
			SymbolID:        id,
			Name:            c.Text,
			Location:        c.Location,
			DefiningScopeID: ctx.GetScopeID(c.Location),
		},
		IsExported:  isPublic(fnNode),
		BodyScopeID: bodyScopeID,
		Decorators:  pendingAttributes(fnNode, ctx.Source),
	}
	def.Signature.Parameters = buildParameters(params, ctx, b, id, "")
	def.Signature.ReturnType = returnType
	b.AddFunction(def, c.Name)
}

func handleClosure(c capture.Node, b *semindex.DefinitionBuilder, ctx *semindex.ProcessingContext) {
	fnNode := c.Node
	id := symbolid.For(symbolid.KindAnonymousFunction, toSymLoc(c.Location), "")
	def := &semindex.FunctionDef{
		Entity: semindex.Entity{
			SymbolID:        id,
			Name:            "",
			Location:        c.Location,
			DefiningScopeID: ctx.GetScopeID(c.Location),
		},
		BodyScopeID:     ctx.GetScopeID(c.Location),
		CallbackContext: refextract.CallbackContext(Spec, fnNode, ctx.FilePath),
	}
	b.AddAnonymousFunction(def, c.Name)
}

func handleLet(c capture.Node, b *semindex.DefinitionBuilder, ctx *semindex.ProcessingContext) {
	declNode := c.Node.Parent()
	if declNode == nil {
		return
	}
	id := symbolid.For(symbolid.KindVariable, toSymLoc(c.Location), "")
	def := &semindex.VariableDef{
		Entity: semindex.Entity{
			SymbolID:        id,
			Name:            c.Text,
			Location:        c.Location,
			DefiningScopeID: ctx.GetScopeID(c.Location),
		},
		Kind: semindex.VarKindVariable,
	}
	if t := declNode.ChildByFieldName("type"); t != nil {
		def.Type = strings.TrimSpace(tsutil.Text(t, ctx.Source))
	}
	if value := declNode.ChildByFieldName("value"); value != nil {
		def.InitialValue = strings.TrimSpace(tsutil.Text(value, ctx.Source))
	}
	b.AddVariable(def)
}

func handleConstStatic(c capture.Node, b *semindex.DefinitionBuilder, ctx *semindex.ProcessingContext) {
	declNode := c.Node.Parent()
	if declNode == nil {
		return
	}
	id := symbolid.For(symbolid.KindVariable, toSymLoc(c.Location), "")
	def := &semindex.VariableDef{
		Entity: semindex.Entity{
			SymbolID:        id,
			Name:            c.Text,
			Location:        c.Location,
			DefiningScopeID: ctx.GetScopeID(c.Location),
		},
		Kind:       semindex.VarKindConstant,
		IsExported: isPublic(declNode),
	}
	if t := declNode.ChildByFieldName("type"); t != nil {
		def.Type = strings.TrimSpace(tsutil.Text(t, ctx.Source))
	}
	if value := declNode.ChildByFieldName("value"); value != nil {
		def.InitialValue = strings.TrimSpace(tsutil.Text(value, ctx.Source))
	}
	b.AddVariable(def)
}

func handleMod(c capture.Node, b *semindex.DefinitionBuilder, ctx *semindex.ProcessingContext) {
	declNode := c.Node.Parent()
	id := symbolid.For(symbolid.KindNamespace, toSymLoc(c.Location), "")
	def := &semindex.NamespaceDef{
		Entity: semindex.Entity{
			SymbolID:        id,
			Name:            c.Text,
			Location:        c.Location,
			DefiningScopeID: ctx.GetScopeID(c.Location),
		},
		IsExported: isPublic(declNode),
	}
	b.AddNamespace(def)
}

func handleTypeAlias(c capture.Node, b *semindex.DefinitionBuilder, ctx *semindex.ProcessingContext) {
	declNode := c.Node.Parent()
	id := symbolid.For(symbolid.KindTypeAlias, toSymLoc(c.Location), "")
	def := &semindex.TypeAliasDef{
		Entity: semindex.Entity{
			SymbolID:        id,
			Name:            c.Text,
			Location:        c.Location,
			DefiningScopeID: ctx.GetScopeID(c.Location),
		},
	}
	if declNode != nil {
		if value := declNode.ChildByFieldName("type"); value != nil {
			def.TypeExpression = strings.TrimSpace(tsutil.Text(value, ctx.Source))
		}
	}
	b.AddTypeAlias(def)
}

// pendingAttributes collects `#[...]` attribute_item siblings immediately
// preceding decl, Rust's closest equivalent to a decorator list.
func pendingAttributes(decl *sitter.Node, source []byte) []string {
	if decl == nil {
		return nil
	}
	parent := decl.Parent()
	if parent == nil {
		return nil
	}
	var attrs []string
	found := false
	for i := 0; i < int(parent.NamedChildCount()); i++ {
		child := parent.NamedChild(i)
		if child.Type() == "attribute_item" && !found {
			attrs = append(attrs, strings.TrimSpace(tsutil.Text(child, source)))
			continue
		}
		if sameSpan(child, decl) {
			found = true
			break
		}
		if found {
			break
		}
		attrs = nil
	}
	if !found {
		return nil
	}
	return attrs
}

func sameSpan(a, b *sitter.Node) bool {
	return a.StartByte() == b.StartByte() && a.EndByte() == b.EndByte()
}

// handleAttribute is a no-op placeholder: attribute_item text is consumed
// directly by pendingAttributes rather than dispatched as its own mutation.
// Kept registered so the capture doesn't surface as unknown_capture_name.
func handleAttribute(c capture.Node, b *semindex.DefinitionBuilder, ctx *semindex.ProcessingContext) {
}

// usePathLeaf returns the final path segment's text, the binding name a use
// declaration introduces, from a scoped_identifier/identifier path node.
func usePathLeaf(n *sitter.Node, source []byte) string {
	if n == nil {
		return ""
	}
	if n.Type() == "scoped_identifier" {
		if name := n.ChildByFieldName("name"); name != nil {
			return tsutil.Text(name, source)
		}
	}
	return tsutil.Text(n, source)
}

func usePathPrefix(n *sitter.Node, source []byte) string {
	if n == nil {
		return ""
	}
	if n.Type() == "scoped_identifier" {
		if path := n.ChildByFieldName("path"); path != nil {
			return tsutil.Text(path, source)
		}
	}
	return ""
}

// handleUse covers every `use` form the grammar produces: a bare path, an
// aliased path, a brace list, and a wildcard, registering one ImportDef per
// leaf binding, matching Rust's own name-resolution granularity.
func handleUse(c capture.Node, b *semindex.DefinitionBuilder, ctx *semindex.ProcessingContext) {
	stmt := c.Node
	arg := stmt.ChildByFieldName("argument")
	exported := isPublic(stmt)
	addLeaf(b, ctx, arg, "", exported)
}

func addLeaf(b *semindex.DefinitionBuilder, ctx *semindex.ProcessingContext, n *sitter.Node, pathPrefix string, exported bool) {
	if n == nil {
		return
	}
	switch n.Type() {
	case "use_as_clause":
		path := n.ChildByFieldName("path")
		alias := n.ChildByFieldName("alias")
		if path == nil || alias == nil {
			return
		}
		loc := tsutil.NodeLocation(alias, ctx.FilePath)
		aliasName := tsutil.Text(alias, ctx.Source)
		original := usePathLeaf(path, ctx.Source)
		fullPath := joinPath(pathPrefix, usePathPrefix(path, ctx.Source), original)
		id := symbolid.For(symbolid.KindImport, toSymLoc(loc), aliasName)
		b.AddImport(&semindex.ImportDef{
			Entity: semindex.Entity{
				SymbolID:        id,
				Name:            aliasName,
				Location:        loc,
				DefiningScopeID: ctx.GetScopeID(loc),
			},
			ImportPath:   fullPath,
			ImportKind:   semindex.ImportNamed,
			OriginalName: original,
			IsExported:   exported,
		})
	case "scoped_use_list":
		path := n.ChildByFieldName("path")
		list := n.ChildByFieldName("list")
		prefix := joinPath(pathPrefix, tsutil.Text(path, ctx.Source))
		if list == nil {
			return
		}
		for i := 0; i < int(list.NamedChildCount()); i++ {
			addLeaf(b, ctx, list.NamedChild(i), prefix, exported)
		}
	case "use_list":
		for i := 0; i < int(n.NamedChildCount()); i++ {
			addLeaf(b, ctx, n.NamedChild(i), pathPrefix, exported)
		}
	case "use_wildcard":
		path := n.NamedChild(0)
		fullPath := joinPath(pathPrefix, tsutil.Text(path, ctx.Source))
		loc := tsutil.NodeLocation(n, ctx.FilePath)
		id := symbolid.For(symbolid.KindImport, toSymLoc(loc), "*")
		b.AddImport(&semindex.ImportDef{
			Entity: semindex.Entity{
				SymbolID:        id,
				Name:            "*",
				Location:        loc,
				DefiningScopeID: ctx.GetScopeID(loc),
			},
			ImportPath: fullPath,
			ImportKind: semindex.ImportNamespace,
			IsExported: exported,
		})
	case "scoped_identifier":
		loc := tsutil.NodeLocation(n, ctx.FilePath)
		name := usePathLeaf(n, ctx.Source)
		fullPath := joinPath(pathPrefix, usePathPrefix(n, ctx.Source), name)
		id := symbolid.For(symbolid.KindImport, toSymLoc(loc), name)
		b.AddImport(&semindex.ImportDef{
			Entity: semindex.Entity{
				SymbolID:        id,
				Name:            name,
				Location:        loc,
				DefiningScopeID: ctx.GetScopeID(loc),
			},
			ImportPath: fullPath,
			ImportKind: semindex.ImportNamed,
			IsExported: exported,
		})
	case "identifier", "self", "crate":
		loc := tsutil.NodeLocation(n, ctx.FilePath)
		name := tsutil.Text(n, ctx.Source)
		fullPath := joinPath(pathPrefix, name)
		id := symbolid.For(symbolid.KindImport, toSymLoc(loc), name)
		b.AddImport(&semindex.ImportDef{
			Entity: semindex.Entity{
				SymbolID:        id,
				Name:            name,
				Location:        loc,
				DefiningScopeID: ctx.GetScopeID(loc),
			},
			ImportPath: fullPath,
			ImportKind: semindex.ImportNamed,
			IsExported: exported,
		})
	}
}

func joinPath(parts ...string) string {
	var nonEmpty []string
	for _, p := range parts {
		if p != "" {
			nonEmpty = append(nonEmpty, p)
		}
	}
	return strings.Join(nonEmpty, "::")
}

// handleExternCrate models `extern crate foo;` as a namespace import, the
// pre-2018-edition form of bringing a crate root into scope.
func handleExternCrate(c capture.Node, b *semindex.DefinitionBuilder, ctx *semindex.ProcessingContext) {
	stmt := c.Node
	name := stmt.ChildByFieldName("name")
	if name == nil {
		return
	}
	loc := tsutil.NodeLocation(name, ctx.FilePath)
	bindingName := tsutil.Text(name, ctx.Source)
	path := bindingName
	if alias := stmt.ChildByFieldName("alias"); alias != nil {
		loc = tsutil.NodeLocation(alias, ctx.FilePath)
		bindingName = tsutil.Text(alias, ctx.Source)
	}
	id := symbolid.For(symbolid.KindImport, toSymLoc(loc), bindingName)
	b.AddImport(&semindex.ImportDef{
		Entity: semindex.Entity{
			SymbolID:        id,
			Name:            bindingName,
			Location:        loc,
			DefiningScopeID: ctx.GetScopeID(loc),
		},
		ImportPath: path,
		ImportKind: semindex.ImportNamespace,
		IsExported: isPublic(stmt),
	})
}
