package semindex

import "encoding/json"

// SemanticIndex is the final, immutable output of BuildIndexSingleFile.
// Once returned, nothing about it is mutated.
type SemanticIndex struct {
	FilePath    string  `json:"file_path"`
	Language    string  `json:"language"`
	RootScopeID ScopeID `json:"root_scope_id"`

	Scopes map[ScopeID]*LexicalScope `json:"scopes"`

	Functions    map[SymbolID]*FunctionDef    `json:"functions"`
	Classes      map[SymbolID]*ClassDef       `json:"classes"`
	Interfaces   map[SymbolID]*InterfaceDef   `json:"interfaces"`
	Enums        map[SymbolID]*EnumDef        `json:"enums"`
	Namespaces   map[SymbolID]*NamespaceDef   `json:"namespaces"`
	Types        map[SymbolID]*TypeAliasDef   `json:"types"`
	Variables    map[SymbolID]*VariableDef    `json:"variables"`
	ImportedSymbols map[SymbolID]*ImportDef   `json:"imported_symbols"`

	// Methods, Constructors, Properties and Parameters are reachable
	// through their owning ClassDef/InterfaceDef's id lists, but callers
	// frequently need direct lookup by symbol id, so they are exposed
	// here too.
	Methods      map[SymbolID]*MethodDef      `json:"methods,omitempty"`
	Constructors map[SymbolID]*ConstructorDef `json:"constructors,omitempty"`
	Properties   map[SymbolID]*PropertyDef    `json:"properties,omitempty"`
	Parameters   map[SymbolID]*ParameterDef   `json:"parameters,omitempty"`

	References []Reference `json:"references"`
}

// Location's fields already match the canonical five-field wire object
// one-for-one, so the default encoding/json struct tags are the entire
// implementation of that part of the contract.

// ToJSON renders the canonical on-wire encoding: each
// Map<K,V> as a `{"<K>": V}` object, References as an array, Location as
// the five-field object.
func (idx *SemanticIndex) ToJSON() ([]byte, error) {
	return json.Marshal(idx)
}

// FromJSON parses the canonical on-wire encoding back into a SemanticIndex.
// A round trip through ToJSON/FromJSON must preserve all symbol ids, scope
// parent/child relations, every reference's tag and metadata, and exact
// property_chain arrays.
func FromJSON(data []byte) (*SemanticIndex, error) {
	var idx SemanticIndex
	if err := json.Unmarshal(data, &idx); err != nil {
		return nil, err
	}
	return &idx, nil
}
