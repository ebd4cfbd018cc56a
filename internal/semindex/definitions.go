package semindex

// SymbolID is a symbol id string produced by internal/symbolid.
type SymbolID = string

// AccessModifier enumerates the visibility markers a method/property can carry.
type AccessModifier string

const (
	AccessPublic    AccessModifier = "public"
	AccessPrivate   AccessModifier = "private"
	AccessProtected AccessModifier = "protected"
)

// VariableKind discriminates the three VariableDef flavors.
type VariableKind string

const (
	VarKindVariable   VariableKind = "variable"
	VarKindConstant   VariableKind = "constant"
	VarKindTypeAlias  VariableKind = "type_alias"
)

// ImportKind discriminates how an ImportDef was introduced.
type ImportKind string

const (
	ImportNamed     ImportKind = "named"
	ImportDefault   ImportKind = "default"
	ImportNamespace ImportKind = "namespace"
)

// Entity is the common header every declaration/definition carries.
type Entity struct {
	SymbolID        SymbolID `json:"symbol_id"`
	Name            string   `json:"name"`
	Location        Location `json:"location"`
	DefiningScopeID ScopeID  `json:"defining_scope_id"`
}

// ParameterDef models one callable parameter.
type ParameterDef struct {
	Entity
	Type         string `json:"type,omitempty"`
	DefaultValue string `json:"default_value,omitempty"`
	Optional     bool   `json:"optional,omitempty"`
}

// Signature is the shared parameter-list + return-type shape FunctionDef,
// MethodDef, and ConstructorDef all carry.
type Signature struct {
	Parameters []ParameterDef `json:"parameters"`
	ReturnType string         `json:"return_type,omitempty"`
}

// CallbackContext records whether an anonymous function is used as a call
// argument, and if so, where the enclosing call expression lives.
type CallbackContext struct {
	IsCallback        bool      `json:"is_callback"`
	ReceiverLocation  *Location `json:"receiver_location,omitempty"`
	ReceiverIsExternal *bool    `json:"receiver_is_external,omitempty"`
}

// FunctionDef models a standalone function declaration or expression,
// including anonymous functions.
type FunctionDef struct {
	Entity
	Signature       Signature        `json:"signature"`
	Generics        []string         `json:"generics,omitempty"`
	IsExported      bool             `json:"is_exported"`
	Export          string           `json:"export,omitempty"`
	BodyScopeID     ScopeID          `json:"body_scope_id"`
	Docstring       string           `json:"docstring,omitempty"`
	CallbackContext *CallbackContext `json:"callback_context,omitempty"`
	Anonymous       bool             `json:"anonymous,omitempty"`
	Decorators      []string         `json:"decorators,omitempty"`
}

// MethodDef models a method (or Python classmethod/staticmethod/property)
// attached to a ClassDef.
type MethodDef struct {
	Entity
	Signature      Signature       `json:"signature"`
	Generics       []string        `json:"generics,omitempty"`
	AccessModifier *AccessModifier `json:"access_modifier,omitempty"`
	Static         bool            `json:"static,omitempty"`
	Abstract       bool            `json:"abstract,omitempty"`
	Async          bool            `json:"async,omitempty"`
	Readonly       bool            `json:"readonly,omitempty"`
	BodyScopeID    ScopeID         `json:"body_scope_id"`
	Docstring      string          `json:"docstring,omitempty"`
	Decorators     []string        `json:"decorators,omitempty"`

	// Kind distinguishes Python's @classmethod/@staticmethod/@property from
	// a plain instance method without overloading Abstract.
	Kind string `json:"kind,omitempty"`
}

// ConstructorDef models a class constructor (`__init__`, `constructor`, or a
// Rust `new`-named associated function).
type ConstructorDef struct {
	Entity
	Signature      Signature       `json:"signature"`
	AccessModifier *AccessModifier `json:"access_modifier,omitempty"`
	BodyScopeID    ScopeID         `json:"body_scope_id"`
}

// PropertyDef models a class/interface field.
type PropertyDef struct {
	Entity
	Type           string          `json:"type,omitempty"`
	InitialValue   string          `json:"initial_value,omitempty"`
	Readonly       bool            `json:"readonly,omitempty"`
	Static         bool            `json:"static,omitempty"`
	AccessModifier *AccessModifier `json:"access_modifier,omitempty"`
	Decorators     []string        `json:"decorators,omitempty"`
}

// ClassDef models a class, struct, or Rust impl target.
type ClassDef struct {
	Entity
	Extends      []string          `json:"extends,omitempty"`
	Generics     []string          `json:"generics,omitempty"`
	Methods      []SymbolID        `json:"methods"`
	Properties   []SymbolID        `json:"properties"`
	Constructors []SymbolID        `json:"constructor"`
	Decorators   []string          `json:"decorators,omitempty"`
	IsExported   bool              `json:"is_exported"`
	Export       string            `json:"export,omitempty"`
}

// InterfaceDef models an interface, Python Protocol, or Rust trait.
type InterfaceDef struct {
	Entity
	Extends    []string   `json:"extends,omitempty"`
	Methods    []SymbolID `json:"methods"`
	Properties []SymbolID `json:"properties"`
	IsExported bool       `json:"is_exported"`
}

// EnumMember is one member of an EnumDef.
type EnumMember struct {
	Entity
	Value string `json:"value,omitempty"`
}

// EnumDef models an enum / Rust enum / Python Enum subclass.
type EnumDef struct {
	Entity
	Members    []EnumMember `json:"members"`
	IsConst    bool         `json:"is_const,omitempty"`
	IsExported bool         `json:"is_exported"`
}

// NamespaceDef models a TS namespace / module.
type NamespaceDef struct {
	Entity
	IsExported bool `json:"is_exported"`
}

// TypeAliasDef models a TS `type X = ...` or Python PEP 695 `type X = ...`.
type TypeAliasDef struct {
	Entity
	TypeExpression string   `json:"type_expression,omitempty"`
	Generics       []string `json:"generics,omitempty"`
}

// VariableDef models a variable, constant, or type alias binding.
type VariableDef struct {
	Entity
	Kind                VariableKind `json:"kind"`
	Type                string       `json:"type,omitempty"`
	InitialValue        string       `json:"initial_value,omitempty"`
	IsExported          bool         `json:"is_exported"`
	FunctionCollection  *FunctionCollection `json:"function_collection,omitempty"`
	DerivedFrom         string       `json:"derived_from,omitempty"`
	InitializedFromCall string       `json:"initialized_from_call,omitempty"`
	CollectionSource    *FunctionCollection `json:"collection_source,omitempty"`
}

// FunctionCollection records an array/tuple/dict literal whose elements
// reference other function/method names in the same file.
type FunctionCollection struct {
	CollectionType    string   `json:"collection_type"`
	StoredReferences  []string `json:"stored_references"`
	CollectionID      SymbolID `json:"collection_id"`
}

// ImportDef models one imported binding.
type ImportDef struct {
	Entity
	ImportPath   string     `json:"import_path"`
	ImportKind   ImportKind `json:"import_kind"`
	OriginalName string     `json:"original_name,omitempty"`
	Export       string     `json:"export,omitempty"`
	IsExported   bool       `json:"is_exported"`
}

// DefinitionSet holds every declaration produced by the definition phase,
// keyed by symbol id.
type DefinitionSet struct {
	Classes      map[SymbolID]*ClassDef       `json:"classes"`
	Interfaces   map[SymbolID]*InterfaceDef   `json:"interfaces"`
	Enums        map[SymbolID]*EnumDef        `json:"enums"`
	Namespaces   map[SymbolID]*NamespaceDef   `json:"namespaces"`
	Types        map[SymbolID]*TypeAliasDef   `json:"types"`
	Functions    map[SymbolID]*FunctionDef    `json:"functions"`
	Methods      map[SymbolID]*MethodDef      `json:"methods"`
	Constructors map[SymbolID]*ConstructorDef `json:"constructors"`
	Properties   map[SymbolID]*PropertyDef    `json:"properties"`
	Parameters   map[SymbolID]*ParameterDef   `json:"parameters"`
	Variables    map[SymbolID]*VariableDef    `json:"variables"`
	Imports      map[SymbolID]*ImportDef      `json:"imported_symbols"`
}

func newDefinitionSet() *DefinitionSet {
	return &DefinitionSet{
		Classes:      make(map[SymbolID]*ClassDef),
		Interfaces:   make(map[SymbolID]*InterfaceDef),
		Enums:        make(map[SymbolID]*EnumDef),
		Namespaces:   make(map[SymbolID]*NamespaceDef),
		Types:        make(map[SymbolID]*TypeAliasDef),
		Functions:    make(map[SymbolID]*FunctionDef),
		Methods:      make(map[SymbolID]*MethodDef),
		Constructors: make(map[SymbolID]*ConstructorDef),
		Properties:   make(map[SymbolID]*PropertyDef),
		Parameters:   make(map[SymbolID]*ParameterDef),
		Variables:    make(map[SymbolID]*VariableDef),
		Imports:      make(map[SymbolID]*ImportDef),
	}
}
