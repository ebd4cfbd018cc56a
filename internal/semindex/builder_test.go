package semindex

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oxhq/semindex/internal/semerr"
)

func newClass(id, name string) *ClassDef {
	return &ClassDef{Entity: Entity{SymbolID: id, Name: name, Location: loc(1, 1, 5, 1)}}
}

func TestAddMethodToClass(t *testing.T) {
	b := NewDefinitionBuilder()
	b.AddClass(newClass("class:f:1:7:1:10", "C"))

	m := &MethodDef{Entity: Entity{SymbolID: "method:f:2:3:2:8", Name: "m"}}
	b.AddMethodToClass("class:f:1:7:1:10", m, "definition.method")

	set := b.Build()
	require.Len(t, set.Methods, 1)
	cls := set.Classes["class:f:1:7:1:10"]
	require.NotNil(t, cls)
	assert.Equal(t, []SymbolID{"method:f:2:3:2:8"}, cls.Methods)
	assert.Empty(t, b.Diagnostics())
}

func TestAddMethodToUnknownClass_SilentlyDropped(t *testing.T) {
	b := NewDefinitionBuilder()

	m := &MethodDef{Entity: Entity{SymbolID: "method:f:2:3:2:8", Name: "m"}}
	b.AddMethodToClass("class:f:9:9:9:9", m, "definition.method")

	set := b.Build()
	assert.Empty(t, set.Methods, "orphan method must not be registered")

	diags := b.Diagnostics()
	require.Len(t, diags, 1)
	assert.Equal(t, semerr.KindOrphanCapture, diags[0].Kind)
}

func TestAddEnumMemberToUnknownEnum_SilentlyDropped(t *testing.T) {
	b := NewDefinitionBuilder()
	b.AddEnumMember("enum:f:1:1:1:5", EnumMember{Entity: Entity{SymbolID: "enum_member:f:2:3:2:9:A", Name: "A"}})

	set := b.Build()
	assert.Empty(t, set.Enums)
	require.Len(t, b.Diagnostics(), 1)
	assert.Equal(t, semerr.KindOrphanCapture, b.Diagnostics()[0].Kind)
}

func TestFindClassAndInterfaceByName(t *testing.T) {
	b := NewDefinitionBuilder()
	b.AddClass(newClass("class:f:1:8:1:9", "Point"))
	b.AddInterface(&InterfaceDef{Entity: Entity{SymbolID: "interface:f:3:7:3:12", Name: "Shape"}})

	require.NotNil(t, b.FindClassByName("Point"))
	assert.Nil(t, b.FindClassByName("Missing"))
	require.NotNil(t, b.FindInterfaceByName("Shape"))
	assert.Nil(t, b.FindInterfaceByName("Missing"))
}

func TestAnonymousFunctionNeverExported(t *testing.T) {
	b := NewDefinitionBuilder()
	def := &FunctionDef{Entity: Entity{SymbolID: "anonymous_function:f:1:1:1:9"}, IsExported: true}
	b.AddAnonymousFunction(def, "definition.function.anonymous")

	set := b.Build()
	got := set.Functions["anonymous_function:f:1:1:1:9"]
	require.NotNil(t, got)
	assert.False(t, got.IsExported)
	assert.True(t, got.Anonymous)
}

func TestDocumentationBuffer_ConsumedExactlyOnce(t *testing.T) {
	b := NewDefinitionBuilder()

	assert.Empty(t, b.ConsumeDocumentation(), "empty buffer yields empty doc")

	b.StoreDocumentation("does the thing")
	assert.Equal(t, "does the thing", b.ConsumeDocumentation())
	assert.Empty(t, b.ConsumeDocumentation(), "second consume must drain nothing")
}

func TestDocumentationBuffer_DiscardedAtBuild(t *testing.T) {
	b := NewDefinitionBuilder()
	b.StoreDocumentation("never consumed")
	b.Build()
	assert.Empty(t, b.ConsumeDocumentation())
}

func TestAddDecoratorToTarget(t *testing.T) {
	b := NewDefinitionBuilder()
	b.AddClass(newClass("class:f:1:8:1:9", "C"))
	b.AddDecoratorToTarget("class:f:1:8:1:9", "injectable")

	set := b.Build()
	assert.Equal(t, []string{"injectable"}, set.Classes["class:f:1:8:1:9"].Decorators)
}

func TestAddDecoratorToUnknownTarget_SilentlyDropped(t *testing.T) {
	b := NewDefinitionBuilder()
	b.AddDecoratorToTarget("class:f:9:9:9:9", "injectable")

	require.Len(t, b.Diagnostics(), 1)
	assert.Equal(t, semerr.KindOrphanCapture, b.Diagnostics()[0].Kind)
}

func TestBuild_InitializesEmptySlices(t *testing.T) {
	b := NewDefinitionBuilder()
	b.AddClass(&ClassDef{Entity: Entity{SymbolID: "class:f:1:1:1:2", Name: "C"}})
	b.AddInterface(&InterfaceDef{Entity: Entity{SymbolID: "interface:f:2:1:2:2", Name: "I"}})
	b.AddEnum(&EnumDef{Entity: Entity{SymbolID: "enum:f:3:1:3:2", Name: "E"}})

	set := b.Build()
	cls := set.Classes["class:f:1:1:1:2"]
	assert.NotNil(t, cls.Methods)
	assert.NotNil(t, cls.Properties)
	assert.NotNil(t, cls.Constructors)
	assert.NotNil(t, set.Interfaces["interface:f:2:1:2:2"].Methods)
	assert.NotNil(t, set.Enums["enum:f:3:1:3:2"].Members)
}
