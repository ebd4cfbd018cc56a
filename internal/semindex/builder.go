package semindex

import "github.com/oxhq/semindex/internal/semerr"

// DefinitionBuilder accumulates declarations produced by the per-language
// handler registries. Its methods are idempotent accumulation: attaching a
// method/constructor/property/signature/enum member/decorator to a parent
// that cannot be found is a silent drop, recorded as an orphan_capture
// Diagnostic rather than surfaced as an error.
//
// A fresh DefinitionBuilder is constructed per file-processing operation;
// nothing about it is safe to reuse or share across concurrent builds.
type DefinitionBuilder struct {
	set *DefinitionSet

	// docBuffer is the documentation side-table: a doc comment stored by a
	// handler that scans backwards from a declaration, consumed exactly once
	// by the next eligible declaration. Anything left unconsumed at Build()
	// is discarded.
	docBuffer    string
	docBufferSet bool

	diagnostics []semerr.Diagnostic
}

// NewDefinitionBuilder constructs an empty builder.
func NewDefinitionBuilder() *DefinitionBuilder {
	return &DefinitionBuilder{set: newDefinitionSet()}
}

// StoreDocumentation buffers a docstring/doc-comment for consumption by the
// next declaration. Overwrites any previously buffered, unconsumed doc.
func (b *DefinitionBuilder) StoreDocumentation(text string) {
	b.docBuffer = text
	b.docBufferSet = true
}

// ConsumeDocumentation drains and returns the buffered doc, if any.
func (b *DefinitionBuilder) ConsumeDocumentation() string {
	if !b.docBufferSet {
		return ""
	}
	doc := b.docBuffer
	b.docBuffer = ""
	b.docBufferSet = false
	return doc
}

func (b *DefinitionBuilder) orphan(kind, capture string) {
	b.diagnostics = append(b.diagnostics, semerr.Diagnostic{
		Kind:    semerr.KindOrphanCapture,
		Message: "dropped " + kind + ": parent not found for capture " + capture,
	})
}

// Diagnostics returns every recoverable condition observed while building.
func (b *DefinitionBuilder) Diagnostics() []semerr.Diagnostic {
	return b.diagnostics
}

// AddClass registers a new ClassDef.
func (b *DefinitionBuilder) AddClass(def *ClassDef) {
	if def.Methods == nil {
		def.Methods = []SymbolID{}
	}
	if def.Properties == nil {
		def.Properties = []SymbolID{}
	}
	if def.Constructors == nil {
		def.Constructors = []SymbolID{}
	}
	b.set.Classes[def.SymbolID] = def
}

// AddInterface registers a new InterfaceDef.
func (b *DefinitionBuilder) AddInterface(def *InterfaceDef) {
	if def.Methods == nil {
		def.Methods = []SymbolID{}
	}
	if def.Properties == nil {
		def.Properties = []SymbolID{}
	}
	b.set.Interfaces[def.SymbolID] = def
}

// FindInterfaceByName returns the first registered interface with the given
// name, or nil. Used by handlers that need to attach a signature to an
// interface declared earlier in document order.
func (b *DefinitionBuilder) FindInterfaceByName(name string) *InterfaceDef {
	for _, iface := range b.set.Interfaces {
		if iface.Name == name {
			return iface
		}
	}
	return nil
}

// FindClassByName returns the first registered class with the given name, or
// nil. Rust's impl blocks live as siblings of the struct they extend rather
// than nesting inside it, so rustlang resolves a method's owning ClassDef by
// name instead of by ancestor-node location.
func (b *DefinitionBuilder) FindClassByName(name string) *ClassDef {
	for _, cls := range b.set.Classes {
		if cls.Name == name {
			return cls
		}
	}
	return nil
}

// FindVariableByName returns the first registered variable with the given
// name, or nil. Used to copy a source variable's function-collection
// summary onto `x = y` style bindings.
func (b *DefinitionBuilder) FindVariableByName(name string) *VariableDef {
	for _, v := range b.set.Variables {
		if v.Name == name {
			return v
		}
	}
	return nil
}

// AddEnum registers a new EnumDef.
func (b *DefinitionBuilder) AddEnum(def *EnumDef) {
	if def.Members == nil {
		def.Members = []EnumMember{}
	}
	b.set.Enums[def.SymbolID] = def
}

// AddEnumMember appends a member to an already-registered enum. Silently
// dropped if enumID is unknown.
func (b *DefinitionBuilder) AddEnumMember(enumID SymbolID, member EnumMember) {
	e, ok := b.set.Enums[enumID]
	if !ok {
		b.orphan("enum_member", member.SymbolID)
		return
	}
	e.Members = append(e.Members, member)
}

// AddNamespace registers a new NamespaceDef.
func (b *DefinitionBuilder) AddNamespace(def *NamespaceDef) {
	b.set.Namespaces[def.SymbolID] = def
}

// AddTypeAlias registers a new TypeAliasDef.
func (b *DefinitionBuilder) AddTypeAlias(def *TypeAliasDef) {
	b.set.Types[def.SymbolID] = def
}

// AddFunction registers a standalone FunctionDef (capture is the capture
// name; it is not used).
func (b *DefinitionBuilder) AddFunction(def *FunctionDef, capture string) {
	b.set.Functions[def.SymbolID] = def
}

// AddAnonymousFunction registers an anonymous FunctionDef (arrow/lambda/
// closure). These are never exported; any IsExported set by the caller is
// overridden.
func (b *DefinitionBuilder) AddAnonymousFunction(def *FunctionDef, capture string) {
	def.Anonymous = true
	def.IsExported = false
	b.set.Functions[def.SymbolID] = def
}

// AddMethodToClass registers a MethodDef and attaches it to classID. Dropped
// silently if classID is unknown.
func (b *DefinitionBuilder) AddMethodToClass(classID SymbolID, def *MethodDef, capture string) {
	cls, ok := b.set.Classes[classID]
	if !ok {
		b.orphan("method", capture)
		return
	}
	b.set.Methods[def.SymbolID] = def
	cls.Methods = append(cls.Methods, def.SymbolID)
}

// AddMethodSignatureToInterface registers a signature-only MethodDef and
// attaches it to ifaceID.
func (b *DefinitionBuilder) AddMethodSignatureToInterface(ifaceID SymbolID, def *MethodDef) {
	iface, ok := b.set.Interfaces[ifaceID]
	if !ok {
		b.orphan("method_signature", def.SymbolID)
		return
	}
	b.set.Methods[def.SymbolID] = def
	iface.Methods = append(iface.Methods, def.SymbolID)
}

// AddConstructorToClass registers a ConstructorDef and attaches it to classID.
func (b *DefinitionBuilder) AddConstructorToClass(classID SymbolID, def *ConstructorDef) {
	cls, ok := b.set.Classes[classID]
	if !ok {
		b.orphan("constructor", def.SymbolID)
		return
	}
	b.set.Constructors[def.SymbolID] = def
	cls.Constructors = append(cls.Constructors, def.SymbolID)
}

// AddPropertyToClass registers a PropertyDef and attaches it to classID.
func (b *DefinitionBuilder) AddPropertyToClass(classID SymbolID, def *PropertyDef) {
	cls, ok := b.set.Classes[classID]
	if !ok {
		b.orphan("property", def.SymbolID)
		return
	}
	b.set.Properties[def.SymbolID] = def
	cls.Properties = append(cls.Properties, def.SymbolID)
}

// AddPropertySignatureToInterface registers a signature-only PropertyDef and
// attaches it to ifaceID.
func (b *DefinitionBuilder) AddPropertySignatureToInterface(ifaceID SymbolID, def *PropertyDef) {
	iface, ok := b.set.Interfaces[ifaceID]
	if !ok {
		b.orphan("property_signature", def.SymbolID)
		return
	}
	b.set.Properties[def.SymbolID] = def
	iface.Properties = append(iface.Properties, def.SymbolID)
}

// AddParameterToCallable registers a ParameterDef under its own SymbolID;
// parentID is not used and never causes a drop. Callers attach it to the
// owning FunctionDef/MethodDef/ConstructorDef's Signature.Parameters
// themselves since that slice lives on the concrete def, not in a generic map.
func (b *DefinitionBuilder) AddParameterToCallable(parentID SymbolID, def *ParameterDef) {
	b.set.Parameters[def.SymbolID] = def
}

// AddVariable registers a VariableDef.
func (b *DefinitionBuilder) AddVariable(def *VariableDef) {
	b.set.Variables[def.SymbolID] = def
}

// AddImport registers an ImportDef.
func (b *DefinitionBuilder) AddImport(def *ImportDef) {
	b.set.Imports[def.SymbolID] = def
}

// AddDecoratorToTarget appends a decorator string to whichever definition
// owns targetID: class, property, or method (constructors carry no
// decorator list). Dropped, with an orphan_capture Diagnostic, if targetID
// doesn't match one of those.
func (b *DefinitionBuilder) AddDecoratorToTarget(targetID SymbolID, decorator string) {
	switch {
	case b.set.Classes[targetID] != nil:
		b.set.Classes[targetID].Decorators = append(b.set.Classes[targetID].Decorators, decorator)
	case b.set.Properties[targetID] != nil:
		b.set.Properties[targetID].Decorators = append(b.set.Properties[targetID].Decorators, decorator)
	case b.set.Methods[targetID] != nil:
		b.set.Methods[targetID].Decorators = append(b.set.Methods[targetID].Decorators, decorator)
	default:
		b.orphan("decorator", targetID)
	}
}

// Build finalizes and returns the accumulated DefinitionSet. Any unconsumed
// documentation buffer is discarded.
func (b *DefinitionBuilder) Build() *DefinitionSet {
	b.docBuffer = ""
	b.docBufferSet = false
	return b.set
}
