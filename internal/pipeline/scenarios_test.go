package pipeline

import (
	"context"
	"testing"

	"github.com/pmezard/go-difflib/difflib"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oxhq/semindex/internal/semindex"
	"github.com/oxhq/semindex/internal/semlang"
)

func buildIndex(t *testing.T, path, src string, lang semlang.Language) *semindex.SemanticIndex {
	t.Helper()
	idx, _, err := BuildIndexSingleFile(context.Background(), path, []byte(src), lang)
	require.NoError(t, err)
	require.NotNil(t, idx)
	return idx
}

func TestPythonNamedFunctionExport(t *testing.T) {
	src := `def public_fn(): pass
def _private_fn(): pass
def __dunder__(): pass
`
	idx := buildIndex(t, "test.py", src, semlang.Python)

	require.Len(t, idx.Functions, 3)
	exported := map[string]bool{}
	for _, fn := range idx.Functions {
		exported[fn.Name] = fn.IsExported
		assert.Equal(t, idx.RootScopeID, fn.DefiningScopeID, "%s should live in the module scope", fn.Name)
	}
	assert.True(t, exported["public_fn"])
	assert.False(t, exported["_private_fn"])
	assert.True(t, exported["__dunder__"], "dunder names stay exported")
}

func TestTypeScriptNamedFunctionSelfReference(t *testing.T) {
	src := `const factorial = function fact(n: number): number {
  if (n <= 1) return 1;
  return n * fact(n - 1);
};
`
	idx := buildIndex(t, "fact.ts", src, semlang.TypeScript)

	var factorial *semindex.VariableDef
	for _, v := range idx.Variables {
		if v.Name == "factorial" {
			factorial = v
		}
	}
	require.NotNil(t, factorial)
	assert.Equal(t, idx.RootScopeID, factorial.DefiningScopeID)

	var fact *semindex.FunctionDef
	for _, fn := range idx.Functions {
		if fn.Name == "fact" {
			fact = fn
		}
	}
	require.NotNil(t, fact)
	assert.Equal(t, fact.BodyScopeID, fact.DefiningScopeID,
		"a named function expression binds its name inside its own body scope")
	assert.NotEqual(t, idx.RootScopeID, fact.DefiningScopeID)

	var call *semindex.Reference
	for i, ref := range idx.References {
		if ref.Kind == semindex.RefFunctionCall && ref.Name == "fact" {
			call = &idx.References[i]
		}
	}
	require.NotNil(t, call, "the recursive fact(n - 1) call must be indexed")
	assert.Equal(t, fact.BodyScopeID, call.EnclosingScopeID)
}

func TestRustImplBlockMethods(t *testing.T) {
	src := `pub struct S { x: i32 }
impl S {
    pub fn new() -> Self { S { x: 0 } }
    pub fn get(&self) -> i32 { self.x }
}
`
	idx := buildIndex(t, "s.rs", src, semlang.Rust)

	require.Len(t, idx.Classes, 1)
	var cls *semindex.ClassDef
	for _, c := range idx.Classes {
		cls = c
	}
	assert.Equal(t, "S", cls.Name)
	assert.True(t, cls.IsExported)
	require.Len(t, cls.Constructors, 1, "new() should be tracked as a constructor")
	require.Len(t, cls.Methods, 1)

	get := idx.Methods[cls.Methods[0]]
	require.NotNil(t, get)
	assert.Equal(t, "get", get.Name)
	require.NotEmpty(t, get.Signature.Parameters)
	assert.Equal(t, "self", get.Signature.Parameters[0].Name)
	assert.Equal(t, "S", get.Signature.Parameters[0].Type,
		"the self parameter takes the enclosing struct name as its type")

	ctor := idx.Constructors[cls.Constructors[0]]
	require.NotNil(t, ctor)
	assert.Equal(t, "new", ctor.Name)
	assert.Empty(t, ctor.Signature.Parameters)
}

func TestPythonPropertyChainWrite(t *testing.T) {
	src := `class App:
    def configure(self):
        self.cfg.deep.value = 1
`
	idx := buildIndex(t, "app.py", src, semlang.Python)

	var full *semindex.Reference
	for i, ref := range idx.References {
		if ref.Kind == semindex.RefPropertyAccess &&
			len(ref.PropertyChain) == 4 {
			full = &idx.References[i]
		}
	}
	require.NotNil(t, full, "the full dotted chain must surface as a property_access")
	assert.Equal(t, []string{"self", "cfg", "deep", "value"}, full.PropertyChain)
	assert.Equal(t, "value", full.Name)

	for _, ref := range idx.References {
		if ref.Kind == semindex.RefVariableRef {
			assert.NotEqual(t, semindex.AccessWrite, ref.AccessType,
				"writes are tracked only for identifier LHS, not member LHS")
		}
	}
}

func TestJavaScriptCallbackDetection(t *testing.T) {
	src := `[1,2,3].map(x => x*2).filter(function(y){ return y>0 });
`
	idx := buildIndex(t, "cb.js", src, semlang.JavaScript)

	var anon []*semindex.FunctionDef
	for _, fn := range idx.Functions {
		if fn.Anonymous {
			anon = append(anon, fn)
		}
	}
	require.Len(t, anon, 2)

	for _, fn := range anon {
		require.NotNil(t, fn.CallbackContext)
		assert.True(t, fn.CallbackContext.IsCallback)
		require.NotNil(t, fn.CallbackContext.ReceiverLocation,
			"a callback's receiver location spans its enclosing call expression")
		assert.True(t, fn.CallbackContext.ReceiverLocation.Contains(fn.Location),
			"the enclosing call expression must contain the callback itself")
	}
}

func TestPythonRelativeImportAlias(t *testing.T) {
	src := `from ..utils import helper as h
`
	idx := buildIndex(t, "pkg/mod.py", src, semlang.Python)

	require.Len(t, idx.ImportedSymbols, 1)
	var imp *semindex.ImportDef
	for _, i := range idx.ImportedSymbols {
		imp = i
	}
	assert.Equal(t, "h", imp.Name)
	assert.Equal(t, "helper", imp.OriginalName)
	assert.Equal(t, "..utils", imp.ImportPath)
	assert.Equal(t, semindex.ImportNamed, imp.ImportKind)
	assert.True(t, imp.IsExported)
}

func TestEmptyFile(t *testing.T) {
	for _, tc := range []struct {
		path string
		lang semlang.Language
	}{
		{"e.js", semlang.JavaScript},
		{"e.ts", semlang.TypeScript},
		{"e.py", semlang.Python},
		{"e.rs", semlang.Rust},
	} {
		t.Run(string(tc.lang), func(t *testing.T) {
			idx := buildIndex(t, tc.path, "", tc.lang)
			assert.Len(t, idx.Scopes, 1, "only the module scope")
			root := idx.Scopes[idx.RootScopeID]
			require.NotNil(t, root)
			assert.True(t, root.IsRoot())
			assert.Empty(t, idx.Functions)
			assert.Empty(t, idx.Classes)
			assert.Empty(t, idx.Variables)
			assert.Empty(t, idx.References)
		})
	}
}

func TestCommentsOnlyFile(t *testing.T) {
	idx := buildIndex(t, "c.py", "# just a comment\n# another\n", semlang.Python)
	assert.Len(t, idx.Scopes, 1)
	assert.Empty(t, idx.Functions)
	assert.Empty(t, idx.References)
}

func TestParseErrorStillReturnsPartialIndex(t *testing.T) {
	src := `def ok():
    pass

def broken(:
`
	idx, diags, err := BuildIndexSingleFile(context.Background(), "p.py", []byte(src), semlang.Python)
	require.NoError(t, err, "malformed regions must not abort the build")
	require.NotNil(t, idx)

	var sawOK bool
	for _, fn := range idx.Functions {
		if fn.Name == "ok" {
			sawOK = true
		}
	}
	assert.True(t, sawOK, "recognizable declarations are still indexed")

	var sawMalformed bool
	for _, d := range diags {
		if string(d.Kind) == "malformed_source" {
			sawMalformed = true
		}
	}
	assert.True(t, sawMalformed)
}

func TestExportRequiresModuleScope(t *testing.T) {
	src := `def outer():
    def inner(): pass
`
	idx := buildIndex(t, "n.py", src, semlang.Python)

	for _, fn := range idx.Functions {
		if fn.Name == "inner" {
			assert.False(t, fn.IsExported, "nested declarations are never exported")
			assert.NotEqual(t, idx.RootScopeID, fn.DefiningScopeID)
		}
		if fn.IsExported {
			assert.Equal(t, idx.RootScopeID, fn.DefiningScopeID)
		}
	}
}

func TestReferencesResolveToSmallestEnclosingScope(t *testing.T) {
	src := `class C:
    def m(self):
        helper()

def helper(): pass
`
	idx := buildIndex(t, "s.py", src, semlang.Python)

	var call *semindex.Reference
	for i, ref := range idx.References {
		if ref.Kind == semindex.RefFunctionCall && ref.Name == "helper" {
			call = &idx.References[i]
		}
	}
	require.NotNil(t, call)

	scope := idx.Scopes[call.EnclosingScopeID]
	require.NotNil(t, scope)
	assert.Equal(t, semindex.ScopeFunction, scope.Type, "the call site's scope is m's body, not the module")
	assert.True(t, scope.Location.Contains(call.Location))
}

// TestIndexJSONRoundTrip runs the full pipeline on a representative file and
// asserts the canonical JSON encoding is idempotent end to end.
func TestIndexJSONRoundTrip(t *testing.T) {
	src := `import os
from enum import Enum

class Color(Enum):
    RED = 1
    GREEN = 2

class Painter:
    def __init__(self, color: Color):
        self.color = color

    def paint(self):
        print(self.color)

def make_painter():
    return Painter(Color.RED)
`
	idx := buildIndex(t, "paint.py", src, semlang.Python)

	first, err := idx.ToJSON()
	require.NoError(t, err)

	back, err := semindex.FromJSON(first)
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
		t.Fatalf("canonical encoding not idempotent:\n%s", diff)
	}

	assert.Equal(t, idx.RootScopeID, back.RootScopeID)
	assert.Len(t, back.Scopes, len(idx.Scopes))
	assert.Len(t, back.References, len(idx.References))
}

// TestSymbolIDsInjective checks id uniqueness over a file dense enough to
// exercise every definition kind at once.
func TestSymbolIDsInjective(t *testing.T) {
	src := `interface Shape {
  area(): number;
}

enum Status { Active = 1, Inactive = 2 }

namespace Util {}

type Point = { x: number };

class Circle implements Shape {
  radius: number;
  constructor(radius: number) {
    this.radius = radius;
  }
  area(): number {
    return 3.14 * this.radius * this.radius;
  }
}

const origin = { x: 0 };
function dist(p: Point): number { return p.x; }
`
	idx := buildIndex(t, "shapes.ts", src, semlang.TypeScript)

	seen := map[string]string{}
	record := func(id, kind string) {
		if prev, ok := seen[id]; ok {
			t.Errorf("symbol id %q used by both %s and %s", id, prev, kind)
		}
		seen[id] = kind
	}
	for id := range idx.Scopes {
		record(id, "scope")
	}
	for id := range idx.Functions {
		record(id, "function")
	}
	for id := range idx.Classes {
		record(id, "class")
	}
	for id := range idx.Interfaces {
		record(id, "interface")
	}
	for id := range idx.Enums {
		record(id, "enum")
	}
	for id := range idx.Namespaces {
		record(id, "namespace")
	}
	for id := range idx.Types {
		record(id, "type")
	}
	for id := range idx.Variables {
		record(id, "variable")
	}
	for id := range idx.Methods {
		record(id, "method")
	}
	for id := range idx.Constructors {
		record(id, "constructor")
	}
	for id := range idx.Properties {
		record(id, "property")
	}
	assert.NotEmpty(t, seen)
}

// TestDeclarationsNotInOwnBodyScope checks that a declaration's
// name lives in the enclosing scope, never inside its own body scope. The
// single deliberate exception is named function expressions.
func TestDeclarationsNotInOwnBodyScope(t *testing.T) {
	src := `class Outer:
    def method(self):
        pass

def top(): pass
`
	idx := buildIndex(t, "o.py", src, semlang.Python)

	for _, cls := range idx.Classes {
		scope := idx.Scopes[cls.DefiningScopeID]
		require.NotNil(t, scope)
		assert.NotEqual(t, semindex.ScopeClass, scope.Type,
			"class %s must not be scoped to its own body", cls.Name)
	}
	for _, fn := range idx.Functions {
		assert.NotEqual(t, fn.BodyScopeID, fn.DefiningScopeID,
			"function %s declared inside its own body", fn.Name)
	}
	for _, m := range idx.Methods {
		assert.NotEqual(t, m.BodyScopeID, m.DefiningScopeID,
			"method %s declared inside its own body", m.Name)
	}
}
