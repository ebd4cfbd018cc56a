package semindex

import (
	"testing"

	"github.com/pmezard/go-difflib/difflib"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fixtureIndex builds a small index by hand, so the round-trip assertions
// cover every reference variant and most definition maps (constructors,
// properties, and parameters are left empty) without depending on a parser.
func fixtureIndex() *SemanticIndex {
	rootID := "module:a.py:1:1:20:1:<module>"
	clsScopeID := "class:a.py:2:1:10:1"
	recv := loc(8, 5, 8, 12)
	target := loc(12, 1, 12, 2)
	external := true

	return &SemanticIndex{
		FilePath:    "a.py",
		Language:    "python",
		RootScopeID: rootID,
		Scopes: map[ScopeID]*LexicalScope{
			rootID: {
				ID: rootID, Type: ScopeModule, Location: loc(1, 1, 20, 1),
				ChildIDs: []ScopeID{clsScopeID},
			},
			clsScopeID: {
				ID: clsScopeID, ParentID: rootID, Name: "C", Type: ScopeClass,
				Location: loc(2, 1, 10, 1), ChildIDs: []ScopeID{},
			},
		},
		Functions: map[SymbolID]*FunctionDef{
			"function:a.py:12:5:12:6": {
				Entity:     Entity{SymbolID: "function:a.py:12:5:12:6", Name: "f", Location: loc(12, 5, 12, 6), DefiningScopeID: rootID},
				Signature:  Signature{Parameters: []ParameterDef{{Entity: Entity{SymbolID: "parameter:a.py:12:7:12:8:x", Name: "x"}, Type: "int"}}},
				IsExported: true,
				CallbackContext: &CallbackContext{
					IsCallback:         true,
					ReceiverLocation:   &recv,
					ReceiverIsExternal: &external,
				},
			},
		},
		Classes: map[SymbolID]*ClassDef{
			"class:a.py:2:7:2:8": {
				Entity:       Entity{SymbolID: "class:a.py:2:7:2:8", Name: "C", Location: loc(2, 7, 2, 8), DefiningScopeID: rootID},
				Extends:      []string{"Base"},
				Methods:      []SymbolID{"method:a.py:4:9:4:10"},
				Properties:   []SymbolID{},
				Constructors: []SymbolID{},
				IsExported:   true,
			},
		},
		Interfaces: map[SymbolID]*InterfaceDef{
			"interface:a.py:14:7:14:8": {
				Entity:  Entity{SymbolID: "interface:a.py:14:7:14:8", Name: "P", Location: loc(14, 7, 14, 8), DefiningScopeID: rootID},
				Extends: []string{"Protocol"}, Methods: []SymbolID{}, Properties: []SymbolID{},
			},
		},
		Enums: map[SymbolID]*EnumDef{
			"enum:a.py:16:7:16:12": {
				Entity: Entity{SymbolID: "enum:a.py:16:7:16:12", Name: "Color", Location: loc(16, 7, 16, 12), DefiningScopeID: rootID},
				Members: []EnumMember{
					{Entity: Entity{SymbolID: "enum_member:a.py:17:5:17:8:RED", Name: "RED", Location: loc(17, 5, 17, 8), DefiningScopeID: rootID}, Value: "1"},
				},
			},
		},
		Namespaces: map[SymbolID]*NamespaceDef{
			"namespace:a.py:1:8:1:10": {
				Entity: Entity{SymbolID: "namespace:a.py:1:8:1:10", Name: "os", Location: loc(1, 8, 1, 10), DefiningScopeID: rootID},
			},
		},
		Types: map[SymbolID]*TypeAliasDef{
			"type_alias:a.py:18:6:18:9": {
				Entity:         Entity{SymbolID: "type_alias:a.py:18:6:18:9", Name: "Vec", Location: loc(18, 6, 18, 9), DefiningScopeID: rootID},
				TypeExpression: "list[float]",
			},
		},
		Variables: map[SymbolID]*VariableDef{
			"variable:a.py:19:1:19:6": {
				Entity: Entity{SymbolID: "variable:a.py:19:1:19:6", Name: "LIMIT", Location: loc(19, 1, 19, 6), DefiningScopeID: rootID},
				Kind:   VarKindConstant, InitialValue: "10", IsExported: true,
				FunctionCollection: &FunctionCollection{
					CollectionType:   "Array",
					StoredReferences: []string{"f", "g"},
					CollectionID:     "variable:a.py:19:1:19:6",
				},
			},
		},
		ImportedSymbols: map[SymbolID]*ImportDef{
			"import:a.py:1:8:1:10:os": {
				Entity:     Entity{SymbolID: "import:a.py:1:8:1:10:os", Name: "os", Location: loc(1, 8, 1, 10), DefiningScopeID: rootID},
				ImportPath: "os", ImportKind: ImportNamespace, IsExported: true,
			},
		},
		Methods: map[SymbolID]*MethodDef{
			"method:a.py:4:9:4:10": {
				Entity: Entity{SymbolID: "method:a.py:4:9:4:10", Name: "m", Location: loc(4, 9, 4, 10), DefiningScopeID: clsScopeID},
			},
		},
		References: []Reference{
			{Kind: RefFunctionCall, Name: "f", Location: loc(12, 1, 12, 4), EnclosingScopeID: rootID},
			{Kind: RefMethodCall, Name: "m", Location: loc(8, 5, 8, 16), EnclosingScopeID: clsScopeID, ReceiverLocation: &recv, OptionalChaining: true, PropertyChain: []string{"obj", "m"}},
			{Kind: RefSelfReference, Name: "m", Location: loc(9, 5, 9, 18), EnclosingScopeID: clsScopeID, Keyword: KeywordSelf, PropertyChain: []string{"self", "m"}},
			{Kind: RefConstructorCall, Name: "C", Location: loc(12, 5, 12, 9), EnclosingScopeID: rootID, ConstructTarget: &target},
			{Kind: RefPropertyAccess, Name: "value", Location: loc(13, 1, 13, 20), EnclosingScopeID: rootID, PropertyChain: []string{"self", "cfg", "value"}},
			{Kind: RefTypeReference, Name: "int", Location: loc(12, 10, 12, 12), EnclosingScopeID: rootID, TypeInfo: &TypeInfo{TypeName: "int", Certainty: CertaintyDeclared}},
			{Kind: RefVariableRef, Name: "x", Location: loc(12, 7, 12, 8), EnclosingScopeID: rootID, AccessType: AccessWrite},
			{Kind: RefAssignment, Name: "x", Location: loc(12, 7, 12, 12), EnclosingScopeID: rootID},
		},
	}
}

func TestJSONRoundTrip(t *testing.T) {
	idx := fixtureIndex()

	data, err := idx.ToJSON()
	require.NoError(t, err)

	back, err := FromJSON(data)
	require.NoError(t, err)

	assert.Equal(t, idx.FilePath, back.FilePath)
	assert.Equal(t, idx.Language, back.Language)
	assert.Equal(t, idx.RootScopeID, back.RootScopeID)
	assert.Equal(t, idx.Scopes, back.Scopes)
	assert.Equal(t, idx.Functions, back.Functions)
	assert.Equal(t, idx.Classes, back.Classes)
	assert.Equal(t, idx.Interfaces, back.Interfaces)
	assert.Equal(t, idx.Enums, back.Enums)
	assert.Equal(t, idx.Namespaces, back.Namespaces)
	assert.Equal(t, idx.Types, back.Types)
	assert.Equal(t, idx.Variables, back.Variables)
	assert.Equal(t, idx.ImportedSymbols, back.ImportedSymbols)
	assert.Equal(t, idx.Methods, back.Methods)
	assert.Equal(t, idx.References, back.References)
}

// TestJSONRoundTripIdempotent asserts to_json(from_json(to_json(x))) ==
// to_json(x) byte-for-byte; encoding/json's sorted map keys make the
// canonical encoding deterministic. On failure the unified diff of the two
// encodings is printed, which beats eyeballing two multi-KB JSON blobs.
func TestJSONRoundTripIdempotent(t *testing.T) {
	idx := fixtureIndex()

	first, err := idx.ToJSON()
	require.NoError(t, err)

	back, err := FromJSON(first)
	require.NoError(t, err)

	second, err := back.ToJSON()
	require.NoError(t, err)

	if string(first) != string(second) {
		diff, _ := difflib.GetUnifiedDiffString(difflib.UnifiedDiff{
			A:        difflib.SplitLines(string(first)),
			B:        difflib.SplitLines(string(second)),
			FromFile: "first encoding",
			ToFile:   "second encoding",
			Context:  3,
		})
		t.Fatalf("round trip not idempotent:\n%s", diff)
	}
}

func TestFromJSON_Invalid(t *testing.T) {
	_, err := FromJSON([]byte("{not json"))
	assert.Error(t, err)
}
