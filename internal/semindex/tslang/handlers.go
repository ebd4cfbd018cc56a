package tslang

import (
	"strings"

	sitter "github.com/smacker/go-tree-sitter"

	"github.com/oxhq/semindex/internal/capture"
	"github.com/oxhq/semindex/internal/handler"
	"github.com/oxhq/semindex/internal/semindex"
	"github.com/oxhq/semindex/internal/semindex/jslang"
	"github.com/oxhq/semindex/internal/symbolid"
	"github.com/oxhq/semindex/internal/tsutil"
)

// Handlers is jslang's registry overlaid with TS-specific handlers:
// overrides for class/method/field/variable/function that extract type
// annotations, generics, and modifiers, plus the TS-only constructs
// (interface/enum/namespace/type alias/decorator). Everything not
// overridden falls through to jslang, since tree-sitter-typescript parses
// plain JS constructs through the same node shapes.
var Handlers = buildRegistry()

func buildRegistry() *handler.Registry {
	overrides := handler.New()
	overrides.Register("definition.interface", handleInterface)
	overrides.Register("definition.enum", handleEnum)
	overrides.Register("definition.enum_member", handleEnumMember)
	overrides.Register("definition.namespace", handleNamespace)
	overrides.Register("definition.type_alias", handleTypeAlias)
	overrides.Register("definition.property.signature", handlePropertySignature)
	overrides.Register("definition.method.signature", handleMethodSignature)
	overrides.Register("decorator.attached", handleDecorator)
	overrides.Register("definition.class", handleClassTS)
	overrides.Register("definition.class.named", handleClassTS)
	overrides.Register("definition.method", handleMethodTS)
	overrides.Register("definition.property", handlePropertyTS)
	overrides.Register("definition.variable", handleVariableTS)
	overrides.Register("definition.function", handleFunctionTS)
	overrides.Register("definition.function.named", handleFunctionTS)
	return overrides.Overlay(jslang.Handlers)
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

func exportInfo(decl *sitter.Node) (exported bool, export string) {
	if decl == nil {
		return false, ""
	}
	parent := decl.Parent()
	if parent == nil || parent.Type() != "export_statement" {
		return false, ""
	}
	// An export inside a namespace body is not a module-scope export.
	if top := parent.Parent(); top == nil || top.Type() != "program" {
		return false, ""
	}
	for i := 0; i < int(parent.ChildCount()); i++ {
		if parent.Child(i).Type() == "default" {
			return true, "default"
		}
	}
	return true, "named"
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

func handleInterface(c capture.Node, b *semindex.DefinitionBuilder, ctx *semindex.ProcessingContext) {
	declNode := findAncestor(c.Node, "interface_declaration")
	exported, _ := exportInfo(declNode)
	id := symbolid.For(symbolid.KindInterface, toSymLoc(c.Location), "")
	def := &semindex.InterfaceDef{
		Entity: semindex.Entity{
			SymbolID:        id,
			Name:            c.Text,
			Location:        c.Location,
			DefiningScopeID: ctx.GetScopeID(c.Location),
		},
		IsExported: exported,
	}
	if declNode != nil {
		if ext := firstNamedChildOfType(declNode, "extends_type_clause"); ext != nil {
			for i := 0; i < int(ext.NamedChildCount()); i++ {
				def.Extends = append(def.Extends, strings.TrimSpace(tsutil.Text(ext.NamedChild(i), ctx.Source)))
			}
		}
	}
	b.AddInterface(def)
}

func handleEnum(c capture.Node, b *semindex.DefinitionBuilder, ctx *semindex.ProcessingContext) {
	declNode := findAncestor(c.Node, "enum_declaration")
	exported, _ := exportInfo(declNode)
	isConst := hasChildOfType(declNode, "const")
	id := symbolid.For(symbolid.KindEnum, toSymLoc(c.Location), "")
	def := &semindex.EnumDef{
		Entity: semindex.Entity{
			SymbolID:        id,
			Name:            c.Text,
			Location:        c.Location,
			DefiningScopeID: ctx.GetScopeID(c.Location),
		},
		IsConst:    isConst,
		IsExported: exported,
	}
	b.AddEnum(def)
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

func handleEnumMember(c capture.Node, b *semindex.DefinitionBuilder, ctx *semindex.ProcessingContext) {
	declNode := findAncestor(c.Node, "enum_declaration")
	if declNode == nil {
		return
	}
	name := declNode.ChildByFieldName("name")
	if name == nil {
		return
	}
	nameLoc := tsutil.NodeLocation(name, ctx.FilePath)
	enumID := symbolid.For(symbolid.KindEnum, toSymLoc(nameLoc), "")

	memberNode := c.Node.Parent()
	id := symbolid.For(symbolid.KindEnumMember, toSymLoc(c.Location), c.Text)
	member := semindex.EnumMember{
		Entity: semindex.Entity{
			SymbolID:        id,
			Name:            c.Text,
			Location:        c.Location,
			DefiningScopeID: ctx.GetScopeID(c.Location),
		},
	}
	if memberNode != nil {
		if value := memberNode.ChildByFieldName("value"); value != nil {
			member.Value = strings.TrimSpace(tsutil.Text(value, ctx.Source))
		}
	}
	b.AddEnumMember(enumID, member)
}

func handleNamespace(c capture.Node, b *semindex.DefinitionBuilder, ctx *semindex.ProcessingContext) {
	declNode := findAncestor(c.Node, "module", "internal_module")
	exported, _ := exportInfo(declNode)
	id := symbolid.For(symbolid.KindNamespace, toSymLoc(c.Location), "")
	def := &semindex.NamespaceDef{
		Entity: semindex.Entity{
			SymbolID:        id,
			Name:            c.Text,
			Location:        c.Location,
			DefiningScopeID: ctx.GetScopeID(c.Location),
		},
		IsExported: exported,
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
		if value := declNode.ChildByFieldName("value"); value != nil {
			def.TypeExpression = strings.TrimSpace(tsutil.Text(value, ctx.Source))
		}
	}
	b.AddTypeAlias(def)
}

func handlePropertySignature(c capture.Node, b *semindex.DefinitionBuilder, ctx *semindex.ProcessingContext) {
	declNode := findAncestor(c.Node, "interface_declaration")
	if declNode == nil {
		return
	}
	name := declNode.ChildByFieldName("name")
	if name == nil {
		return
	}
	ifaceID := symbolid.For(symbolid.KindInterface, toSymLoc(tsutil.NodeLocation(name, ctx.FilePath)), "")
	sigNode := c.Node.Parent()
	id := symbolid.For(symbolid.KindProperty, toSymLoc(c.Location), "")
	def := &semindex.PropertyDef{
		Entity: semindex.Entity{
			SymbolID:        id,
			Name:            c.Text,
			Location:        c.Location,
			DefiningScopeID: ctx.GetScopeID(c.Location),
		},
	}
	if sigNode != nil {
		if typ := sigNode.ChildByFieldName("type"); typ != nil {
			def.Type = strings.TrimSpace(strings.TrimPrefix(tsutil.Text(typ, ctx.Source), ":"))
		}
	}
	b.AddPropertySignatureToInterface(ifaceID, def)
}

func handleMethodSignature(c capture.Node, b *semindex.DefinitionBuilder, ctx *semindex.ProcessingContext) {
	declNode := findAncestor(c.Node, "interface_declaration")
	if declNode == nil {
		return
	}
	name := declNode.ChildByFieldName("name")
	if name == nil {
		return
	}
	ifaceID := symbolid.For(symbolid.KindInterface, toSymLoc(tsutil.NodeLocation(name, ctx.FilePath)), "")
	sigNode := c.Node.Parent()
	id := symbolid.For(symbolid.KindMethod, toSymLoc(c.Location), "")
	def := &semindex.MethodDef{
		Entity: semindex.Entity{
			SymbolID:        id,
			Name:            c.Text,
			Location:        c.Location,
			DefiningScopeID: ctx.GetScopeID(c.Location),
		},
	}
	if sigNode != nil {
		def.Signature.Parameters = jslang.BuildParameters(sigNode.ChildByFieldName("parameters"), ctx, b, id)
	}
	b.AddMethodSignatureToInterface(ifaceID, def)
}

// handleDecorator attaches a decorator to whichever class/method/field it
// directly precedes: in tree-sitter-typescript a decorator is a repeated
// "decorator" field of the declaration it annotates, so its parent IS the
// decorated node.
func handleDecorator(c capture.Node, b *semindex.DefinitionBuilder, ctx *semindex.ProcessingContext) {
	target := c.Node.Parent()
	if target == nil {
		return
	}
	text := strings.TrimPrefix(strings.TrimSpace(tsutil.Text(c.Node, ctx.Source)), "@")

	name := target.ChildByFieldName("name")
	if name == nil {
		return
	}
	loc := tsutil.NodeLocation(name, ctx.FilePath)
	var targetID symbolid.SymbolID
	switch target.Type() {
	case "class_declaration", "class":
		targetID = symbolid.For(symbolid.KindClass, toSymLoc(loc), "")
	case "method_definition":
		targetID = symbolid.For(symbolid.KindMethod, toSymLoc(loc), "")
	case "field_definition", "public_field_definition":
		targetID = symbolid.For(symbolid.KindProperty, toSymLoc(loc), "")
	default:
		return
	}
	b.AddDecoratorToTarget(targetID, text)
}
