package pylang

import (
	"regexp"
	"strings"

	sitter "github.com/smacker/go-tree-sitter"

	"github.com/oxhq/semindex/internal/capture"
	"github.com/oxhq/semindex/internal/handler"
	"github.com/oxhq/semindex/internal/refextract"
	"github.com/oxhq/semindex/internal/semindex"
	"github.com/oxhq/semindex/internal/symbolid"
	"github.com/oxhq/semindex/internal/tsutil"
)

// Handlers is the frozen Python capture-name -> handler table.
var Handlers = handler.New()

func init() {
	Handlers.Register("definition.class", handleClass)
	Handlers.Register("definition.function", handleFunction)
	Handlers.Register("definition.function.anonymous", handleLambda)
	Handlers.Register("definition.variable", handleVariable)
	Handlers.Register("definition.variable.annotated", handleVariable)
	Handlers.Register("definition.variable.loop", handleTrackedVariable)
	Handlers.Register("definition.variable.with", handleTrackedVariable)
	Handlers.Register("definition.variable.except", handleTrackedVariable)
	Handlers.Register("definition.type_alias", handleTypeAlias)
	Handlers.Register("decorator.attached", handleDecorator)
	Handlers.Register("import.namespace", handleImportNamespace)
	Handlers.Register("import.namespace.aliased", handleImportNamespaceAliased)
	Handlers.Register("import.from", handleImportFrom)
	Handlers.Register("import.from.aliased", handleImportFromAliased)
	Handlers.Register("import.from.relative", handleImportFromRelative)
	Handlers.Register("import.from.relative.aliased", handleImportFromRelativeAliased)
	Handlers.Register("import.from.star", handleImportStar)
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

// decoratedWrapper returns the decorated_definition node wrapping decl, if
// any; Python hangs decorators off a separate ancestor node rather than a
// field of the definition itself.
func decoratedWrapper(decl *sitter.Node) *sitter.Node {
	parent := decl.Parent()
	if parent != nil && parent.Type() == "decorated_definition" {
		return parent
	}
	return nil
}

func decoratorNames(decl *sitter.Node, source []byte) []string {
	wrapper := decoratedWrapper(decl)
	if wrapper == nil {
		return nil
	}
	var names []string
	for i := 0; i < int(wrapper.NamedChildCount()); i++ {
		child := wrapper.NamedChild(i)
		if child.Type() != "decorator" {
			continue
		}
		expr := child.NamedChild(0)
		if expr == nil {
			continue
		}
		names = append(names, strings.TrimSpace(tsutil.Text(expr, source)))
	}
	return names
}

func hasDecorator(decl *sitter.Node, source []byte, name string) bool {
	for _, d := range decoratorNames(decl, source) {
		base := d
		if idx := strings.IndexByte(base, '('); idx >= 0 {
			base = base[:idx]
		}
		if base == name {
			return true
		}
	}
	return false
}

// isExportedPythonName: a module-level name is exported unless it starts
// with a single underscore, except dunder names (__x__) which remain
// exported.
func isExportedPythonName(name string) bool {
	if strings.HasPrefix(name, "__") && strings.HasSuffix(name, "__") && len(name) > 4 {
		return true
	}
	return !strings.HasPrefix(name, "_")
}

var constNameRe = regexp.MustCompile(`^[A-Z][A-Z0-9_]*$`)

func handleClass(c capture.Node, b *semindex.DefinitionBuilder, ctx *semindex.ProcessingContext) {
	declNode := c.Node.Parent()
	if declNode == nil {
		return
	}
	id := symbolid.For(symbolid.KindClass, toSymLoc(c.Location), "")
	bases := classBases(declNode, ctx.Source)

	isProtocol := false
	isEnum := false
	for _, base := range bases {
		switch base {
		case "Protocol":
			isProtocol = true
		case "Enum", "IntEnum", "StrEnum", "Flag", "IntFlag":
			isEnum = true
		}
	}

	isExported := ctx.GetScopeID(c.Location) == ctx.RootID && isExportedPythonName(c.Text)

	if isProtocol {
		def := &semindex.InterfaceDef{
			Entity: semindex.Entity{
				SymbolID:        symbolid.For(symbolid.KindInterface, toSymLoc(c.Location), ""),
				Name:            c.Text,
				Location:        c.Location,
				DefiningScopeID: ctx.GetScopeID(c.Location),
			},
			Extends:    bases,
			IsExported: isExported,
		}
		b.AddInterface(def)
		return
	}

	if isEnum {
		def := &semindex.EnumDef{
			Entity: semindex.Entity{
				SymbolID:        symbolid.For(symbolid.KindEnum, toSymLoc(c.Location), ""),
				Name:            c.Text,
				Location:        c.Location,
				DefiningScopeID: ctx.GetScopeID(c.Location),
			},
			IsExported: isExported,
		}
		b.AddEnum(def)
		attachEnumMembers(def, declNode, ctx)
		return
	}

	def := &semindex.ClassDef{
		Entity: semindex.Entity{
			SymbolID:        id,
			Name:            c.Text,
			Location:        c.Location,
			DefiningScopeID: ctx.GetScopeID(c.Location),
		},
		Extends:    bases,
		Decorators: decoratorNames(declNode, ctx.Source),
		IsExported: isExported,
	}
	b.AddClass(def)
}

func classBases(declNode *sitter.Node, source []byte) []string {
	superclasses := declNode.ChildByFieldName("superclasses")
	if superclasses == nil {
		return nil
	}
	var bases []string
	for i := 0; i < int(superclasses.NamedChildCount()); i++ {
		child := superclasses.NamedChild(i)
		if child.Type() == "keyword_argument" {
			continue // e.g. metaclass=...
		}
		bases = append(bases, strings.TrimSpace(tsutil.Text(child, source)))
	}
	return bases
}

// attachEnumMembers scans an Enum subclass's body for NAME = value
// assignments, registering each as an EnumMember.
func attachEnumMembers(def *semindex.EnumDef, declNode *sitter.Node, ctx *semindex.ProcessingContext) {
	body := declNode.ChildByFieldName("body")
	if body == nil {
		return
	}
	for i := 0; i < int(body.NamedChildCount()); i++ {
		stmt := body.NamedChild(i)
		if stmt.Type() != "expression_statement" {
			continue
		}
		assign := stmt.NamedChild(0)
		if assign == nil || assign.Type() != "assignment" {
			continue
		}
		left := assign.ChildByFieldName("left")
		if left == nil || left.Type() != "identifier" {
			continue
		}
		loc := tsutil.NodeLocation(left, ctx.FilePath)
		name := tsutil.Text(left, ctx.Source)
		member := semindex.EnumMember{
			Entity: semindex.Entity{
				SymbolID:        symbolid.For(symbolid.KindEnumMember, toSymLoc(loc), name),
				Name:            name,
				Location:        loc,
				DefiningScopeID: ctx.GetScopeID(loc),
			},
		}
		if value := assign.ChildByFieldName("right"); value != nil {
			member.Value = strings.TrimSpace(tsutil.Text(value, ctx.Source))
		}
		def.Members = append(def.Members, member)
	}
}

// buildParameters classifies each parameters-node child into the plain/
// typed/default/typed+default/*args/**kwargs shapes Python allows.
func buildParameters(paramsNode *sitter.Node, ctx *semindex.ProcessingContext, b *semindex.DefinitionBuilder, callableID symbolid.SymbolID, skipFirst bool) []semindex.ParameterDef {
	if paramsNode == nil {
		return nil
	}
	var params []semindex.ParameterDef
	first := true
	addParam := func(nameNode *sitter.Node, typ, defaultVal string, optional bool) {
		if nameNode == nil {
			return
		}
		if first && skipFirst {
			first = false
			return
		}
		first = false
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
			Type:         typ,
			DefaultValue: defaultVal,
			Optional:     optional,
		}
		b.AddParameterToCallable(callableID, &def)
		params = append(params, def)
	}

	for i := 0; i < int(paramsNode.NamedChildCount()); i++ {
		child := paramsNode.NamedChild(i)
		switch child.Type() {
		case "identifier":
			addParam(child, "", "", false)
		case "typed_parameter":
			// typed_parameter wraps either an identifier or a splat pattern
			// as its first named child, with a "type" field alongside.
			typ := ""
			if t := child.ChildByFieldName("type"); t != nil {
				typ = strings.TrimSpace(tsutil.Text(t, ctx.Source))
			}
			name := child.NamedChild(0)
			switch {
			case name == nil:
				continue
			case name.Type() == "list_splat_pattern":
				addParam(name.NamedChild(0), "tuple", "", false)
			case name.Type() == "dictionary_splat_pattern":
				addParam(name.NamedChild(0), "dict", "", false)
			default:
				addParam(name, typ, "", false)
			}
		case "default_parameter":
			name := child.ChildByFieldName("name")
			value := child.ChildByFieldName("value")
			defVal := ""
			if value != nil {
				defVal = strings.TrimSpace(tsutil.Text(value, ctx.Source))
			}
			addParam(name, "", defVal, true)
		case "typed_default_parameter":
			name := child.ChildByFieldName("name")
			typ := ""
			if t := child.ChildByFieldName("type"); t != nil {
				typ = strings.TrimSpace(tsutil.Text(t, ctx.Source))
			}
			value := child.ChildByFieldName("value")
			defVal := ""
			if value != nil {
				defVal = strings.TrimSpace(tsutil.Text(value, ctx.Source))
			}
			addParam(name, typ, defVal, true)
		case "list_splat_pattern":
			addParam(child.NamedChild(0), "tuple", "", false)
		case "dictionary_splat_pattern":
			addParam(child.NamedChild(0), "dict", "", false)
		case "keyword_separator", "positional_separator":
			// bare `*` / `/` markers: no binding introduced.
		}
	}
	return params
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

	// A function is a method only when the class body is its direct home:
	// a def nested inside another def is a plain local function even when a
	// class encloses them both.
	classID, inClass := classAncestorSymbolID(fnNode, ctx.FilePath)
	if inClass && findAncestor(fnNode, "function_definition") != nil {
		nearestFn := findAncestor(fnNode, "function_definition")
		cls := findAncestor(fnNode, "class_definition")
		if isDescendant(nearestFn, cls) {
			inClass = false
		}
	}

	returnType := ""
	if rt := fnNode.ChildByFieldName("return_type"); rt != nil {
		returnType = strings.TrimSpace(tsutil.Text(rt, ctx.Source))
	}
	docstring := leadingDocstring(bodyNode, ctx.Source)

	if inClass {
		if c.Text == "__init__" {
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
			def.Signature.Parameters = buildParameters(fnNode.ChildByFieldName("parameters"), ctx, b, id, true)
			def.Signature.ReturnType = returnType
			b.AddConstructorToClass(classID, def)
			return
		}

		kind := ""
		skipFirst := true
		switch {
		case hasDecorator(fnNode, ctx.Source, "staticmethod"):
			kind = "staticmethod"
			skipFirst = false
		case hasDecorator(fnNode, ctx.Source, "classmethod"):
			kind = "classmethod"
		case hasDecorator(fnNode, ctx.Source, "property"):
			kind = "property"
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
			Docstring:   docstring,
			Kind:        kind,
			Static:      kind == "staticmethod",
			Async:       hasChildOfType(fnNode, "async"),
			Decorators:  decoratorNames(fnNode, ctx.Source),
		}
		def.Signature.Parameters = buildParameters(fnNode.ChildByFieldName("parameters"), ctx, b, id, skipFirst)
		def.Signature.ReturnType = returnType
		b.AddMethodToClass(classID, def, c.Name)
		return
	}

	id := symbolid.For(symbolid.KindFunction, toSymLoc(c.Location), "")
	isExported := ctx.GetScopeID(c.Location) == ctx.RootID && isExportedPythonName(c.Text)
	def := &semindex.FunctionDef{
		Entity: semindex.Entity{
			SymbolID:        id,
			Name:            c.Text,
			Location:        c.Location,
			DefiningScopeID: ctx.GetScopeID(c.Location),
		},
		IsExported:  isExported,
		BodyScopeID: bodyScopeID,
		Docstring:   docstring,
	}
	def.Signature.Parameters = buildParameters(fnNode.ChildByFieldName("parameters"), ctx, b, id, false)
	def.Signature.ReturnType = returnType
	b.AddFunction(def, c.Name)
}

// handleLambda covers Python's `lambda ...: expr`, including one passed
// directly as a call argument (e.g. `sorted(xs, key=lambda x: x.name)`),
// which gets the same callback-context treatment as jslang's arrow
// functions.
func handleLambda(c capture.Node, b *semindex.DefinitionBuilder, ctx *semindex.ProcessingContext) {
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
	def.Signature.Parameters = buildParameters(fnNode.ChildByFieldName("parameters"), ctx, b, id, false)
	b.AddAnonymousFunction(def, c.Name)
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

// isDescendant reports whether n sits anywhere inside ancestor.
func isDescendant(n, ancestor *sitter.Node) bool {
	for cur := n; cur != nil; cur = cur.Parent() {
		if cur.StartByte() == ancestor.StartByte() && cur.EndByte() == ancestor.EndByte() {
			return true
		}
	}
	return false
}

// classAncestorSymbolID walks up from a function/assignment node to its
// owning class_definition and recomputes the SymbolID handleClass derived
// for it.
func classAncestorSymbolID(n *sitter.Node, filePath string) (symbolid.SymbolID, bool) {
	cls := findAncestor(n, "class_definition")
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

// leadingDocstring reads a bare string literal as the first statement of a
// block, Python's docstring convention.
func leadingDocstring(body *sitter.Node, source []byte) string {
	if body == nil || body.NamedChildCount() == 0 {
		return ""
	}
	first := body.NamedChild(0)
	if first.Type() != "expression_statement" || first.NamedChildCount() == 0 {
		return ""
	}
	str := first.NamedChild(0)
	if str.Type() != "string" {
		return ""
	}
	return tsutil.Text(str, source)
}

func handleVariable(c capture.Node, b *semindex.DefinitionBuilder, ctx *semindex.ProcessingContext) {
	assign := c.Node.Parent()
	if assign == nil {
		return
	}
	if classID, inClass := classAncestorSymbolID(assign, ctx.FilePath); inClass {
		// Class-body assignment not inside a method: a property attached to
		// its class, not a module-level variable.
		if findAncestor(assign, "function_definition") == nil {
			id := symbolid.For(symbolid.KindProperty, toSymLoc(c.Location), "")
			def := &semindex.PropertyDef{
				Entity: semindex.Entity{
					SymbolID:        id,
					Name:            c.Text,
					Location:        c.Location,
					DefiningScopeID: ctx.GetScopeID(c.Location),
				},
			}
			if t := assign.ChildByFieldName("type"); t != nil {
				def.Type = strings.TrimSpace(tsutil.Text(t, ctx.Source))
			}
			if value := assign.ChildByFieldName("right"); value != nil {
				def.InitialValue = strings.TrimSpace(tsutil.Text(value, ctx.Source))
			}
			// A Protocol class is registered as an interface (see
			// handleClass), so its properties are interface signatures.
			cls := findAncestor(assign, "class_definition")
			for _, base := range classBases(cls, ctx.Source) {
				if base == "Protocol" {
					nameLoc := tsutil.NodeLocation(cls.ChildByFieldName("name"), ctx.FilePath)
					b.AddPropertySignatureToInterface(symbolid.For(symbolid.KindInterface, toSymLoc(nameLoc), ""), def)
					return
				}
			}
			b.AddPropertyToClass(classID, def)
			return
		}
	}

	kind := semindex.VarKindVariable
	if constNameRe.MatchString(c.Text) {
		kind = semindex.VarKindConstant
	}
	isExported := ctx.GetScopeID(c.Location) == ctx.RootID && isExportedPythonName(c.Text)
	id := symbolid.For(symbolid.KindVariable, toSymLoc(c.Location), "")
	def := &semindex.VariableDef{
		Entity: semindex.Entity{
			SymbolID:        id,
			Name:            c.Text,
			Location:        c.Location,
			DefiningScopeID: ctx.GetScopeID(c.Location),
		},
		Kind:       kind,
		IsExported: isExported,
	}
	if t := assign.ChildByFieldName("type"); t != nil {
		def.Type = strings.TrimSpace(tsutil.Text(t, ctx.Source))
	}
	if value := assign.ChildByFieldName("right"); value != nil {
		def.InitialValue = strings.TrimSpace(tsutil.Text(value, ctx.Source))
		attachInitializerMetadata(def, value, ctx.Source, b)
	}
	b.AddVariable(def)
}

func attachInitializerMetadata(def *semindex.VariableDef, value *sitter.Node, source []byte, b *semindex.DefinitionBuilder) {
	switch value.Type() {
	case "list", "tuple", "dictionary", "set":
		var refs []string
		for i := 0; i < int(value.NamedChildCount()); i++ {
			child := value.NamedChild(i)
			if child.Type() == "identifier" {
				refs = append(refs, tsutil.Text(child, source))
			}
		}
		if len(refs) > 0 {
			kindName := map[string]string{
				"list": "Array", "tuple": "Tuple", "dictionary": "Dict", "set": "Set",
			}[value.Type()]
			def.FunctionCollection = &semindex.FunctionCollection{
				CollectionType:   kindName,
				StoredReferences: refs,
				CollectionID:     def.SymbolID,
			}
		}
	case "call":
		if fn := value.ChildByFieldName("function"); fn != nil {
			def.InitializedFromCall = strings.TrimSpace(tsutil.Text(fn, source))
		}
	case "subscript":
		if v := value.ChildByFieldName("value"); v != nil {
			def.DerivedFrom = strings.TrimSpace(tsutil.Text(v, source))
		}
	case "identifier":
		def.DerivedFrom = strings.TrimSpace(tsutil.Text(value, source))
		if src := b.FindVariableByName(def.DerivedFrom); src != nil && src.FunctionCollection != nil {
			def.CollectionSource = src.FunctionCollection
		}
	}
}

// handleTrackedVariable registers for/with/except bound names as
// non-exported VariableDefs.
func handleTrackedVariable(c capture.Node, b *semindex.DefinitionBuilder, ctx *semindex.ProcessingContext) {
	id := symbolid.For(symbolid.KindVariable, toSymLoc(c.Location), "")
	def := &semindex.VariableDef{
		Entity: semindex.Entity{
			SymbolID:        id,
			Name:            c.Text,
			Location:        c.Location,
			DefiningScopeID: ctx.GetScopeID(c.Location),
		},
		Kind:       semindex.VarKindVariable,
		IsExported: false,
	}
	b.AddVariable(def)
}

func handleTypeAlias(c capture.Node, b *semindex.DefinitionBuilder, ctx *semindex.ProcessingContext) {
	stmt := findAncestor(c.Node, "type_alias_statement")
	id := symbolid.For(symbolid.KindTypeAlias, toSymLoc(c.Location), "")
	def := &semindex.TypeAliasDef{
		Entity: semindex.Entity{
			SymbolID:        id,
			Name:            c.Text,
			Location:        c.Location,
			DefiningScopeID: ctx.GetScopeID(c.Location),
		},
	}
	if stmt != nil && stmt.NamedChildCount() > 1 {
		// The aliased type is the statement's last named child.
		value := stmt.NamedChild(int(stmt.NamedChildCount()) - 1)
		def.TypeExpression = strings.TrimSpace(tsutil.Text(value, ctx.Source))
	}
	b.AddTypeAlias(def)
}

// handleDecorator is a no-op placeholder: Python decorators are consumed
// directly by handleClass/handleFunction via decoratorNames rather than
// dispatched as their own mutation. Kept registered so the capture doesn't surface as unknown_capture_name.
func handleDecorator(c capture.Node, b *semindex.DefinitionBuilder, ctx *semindex.ProcessingContext) {
}

func relativeImportPath(moduleNode *sitter.Node, source []byte) string {
	if moduleNode == nil {
		return ""
	}
	if moduleNode.Type() != "relative_import" {
		return strings.TrimSpace(tsutil.Text(moduleNode, source))
	}
	var b strings.Builder
	for i := 0; i < int(moduleNode.ChildCount()); i++ {
		child := moduleNode.Child(i)
		switch child.Type() {
		case "import_prefix":
			b.WriteString(tsutil.Text(child, source))
		case "dotted_name":
			b.WriteString(tsutil.Text(child, source))
		}
	}
	return b.String()
}

func handleImportNamespace(c capture.Node, b *semindex.DefinitionBuilder, ctx *semindex.ProcessingContext) {
	id := symbolid.For(symbolid.KindImport, toSymLoc(c.Location), c.Text)
	b.AddImport(&semindex.ImportDef{
		Entity: semindex.Entity{
			SymbolID:        id,
			Name:            c.Text,
			Location:        c.Location,
			DefiningScopeID: ctx.GetScopeID(c.Location),
		},
		ImportPath: c.Text,
		ImportKind: semindex.ImportNamespace,
		IsExported: ctx.GetScopeID(c.Location) == ctx.RootID,
	})
}

func handleImportNamespaceAliased(c capture.Node, b *semindex.DefinitionBuilder, ctx *semindex.ProcessingContext) {
	aliasedNode := c.Node.Parent()
	if aliasedNode == nil {
		return
	}
	aliasNode := aliasedNode.ChildByFieldName("alias")
	if aliasNode == nil {
		return
	}
	aliasLoc := tsutil.NodeLocation(aliasNode, ctx.FilePath)
	aliasName := tsutil.Text(aliasNode, ctx.Source)
	id := symbolid.For(symbolid.KindImport, toSymLoc(aliasLoc), aliasName)
	b.AddImport(&semindex.ImportDef{
		Entity: semindex.Entity{
			SymbolID:        id,
			Name:            aliasName,
			Location:        aliasLoc,
			DefiningScopeID: ctx.GetScopeID(aliasLoc),
		},
		ImportPath:   c.Text,
		ImportKind:   semindex.ImportNamespace,
		OriginalName: c.Text,
		IsExported:   ctx.GetScopeID(aliasLoc) == ctx.RootID,
	})
}

func handleImportFrom(c capture.Node, b *semindex.DefinitionBuilder, ctx *semindex.ProcessingContext) {
	stmt := findAncestor(c.Node, "import_from_statement")
	if stmt == nil {
		return
	}
	module := stmt.ChildByFieldName("module_name")
	path := relativeImportPath(module, ctx.Source)
	id := symbolid.For(symbolid.KindImport, toSymLoc(c.Location), c.Text)
	b.AddImport(&semindex.ImportDef{
		Entity: semindex.Entity{
			SymbolID:        id,
			Name:            c.Text,
			Location:        c.Location,
			DefiningScopeID: ctx.GetScopeID(c.Location),
		},
		ImportPath: path,
		ImportKind: semindex.ImportNamed,
		IsExported: ctx.GetScopeID(c.Location) == ctx.RootID && isExportedPythonName(c.Text),
	})
}

func handleImportFromAliased(c capture.Node, b *semindex.DefinitionBuilder, ctx *semindex.ProcessingContext) {
	stmt := findAncestor(c.Node, "import_from_statement")
	aliasedNode := c.Node.Parent()
	if stmt == nil || aliasedNode == nil {
		return
	}
	aliasNode := aliasedNode.ChildByFieldName("alias")
	if aliasNode == nil {
		return
	}
	module := stmt.ChildByFieldName("module_name")
	path := relativeImportPath(module, ctx.Source)
	aliasLoc := tsutil.NodeLocation(aliasNode, ctx.FilePath)
	aliasName := tsutil.Text(aliasNode, ctx.Source)
	id := symbolid.For(symbolid.KindImport, toSymLoc(aliasLoc), aliasName)
	b.AddImport(&semindex.ImportDef{
		Entity: semindex.Entity{
			SymbolID:        id,
			Name:            aliasName,
			Location:        aliasLoc,
			DefiningScopeID: ctx.GetScopeID(aliasLoc),
		},
		ImportPath:   path,
		ImportKind:   semindex.ImportNamed,
		OriginalName: c.Text,
		IsExported:   ctx.GetScopeID(aliasLoc) == ctx.RootID && isExportedPythonName(aliasName),
	})
}

func handleImportFromRelative(c capture.Node, b *semindex.DefinitionBuilder, ctx *semindex.ProcessingContext) {
	handleImportFrom(c, b, ctx)
}

func handleImportFromRelativeAliased(c capture.Node, b *semindex.DefinitionBuilder, ctx *semindex.ProcessingContext) {
	handleImportFromAliased(c, b, ctx)
}

func handleImportStar(c capture.Node, b *semindex.DefinitionBuilder, ctx *semindex.ProcessingContext) {
	stmt := findAncestor(c.Node, "import_from_statement")
	if stmt == nil {
		return
	}
	module := stmt.ChildByFieldName("module_name")
	path := relativeImportPath(module, ctx.Source)
	id := symbolid.For(symbolid.KindImport, toSymLoc(c.Location), "*")
	b.AddImport(&semindex.ImportDef{
		Entity: semindex.Entity{
			SymbolID:        id,
			Name:            "*",
			Location:        c.Location,
			DefiningScopeID: ctx.GetScopeID(c.Location),
		},
		ImportPath: path,
		ImportKind: semindex.ImportNamespace,
		IsExported: ctx.GetScopeID(c.Location) == ctx.RootID,
	})
}
