package symbolid

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFor(t *testing.T) {
	loc := Loc{FilePath: "src/a.ts", StartLine: 4, StartColumn: 7, EndLine: 18, EndColumn: 2}

	assert.Equal(t, "class:src/a.ts:4:7:18:2", For(KindClass, loc, ""))
	assert.Equal(t, "enum_member:src/a.ts:4:7:18:2:Active", For(KindEnumMember, loc, "Active"))
}

func TestFor_Deterministic(t *testing.T) {
	loc := Loc{FilePath: "x.rs", StartLine: 3, StartColumn: 4, EndLine: 5, EndColumn: 2}
	assert.Equal(t, For(KindFunction, loc, ""), For(KindFunction, loc, ""))
}

func TestFor_Injective(t *testing.T) {
	base := Loc{FilePath: "f.py", StartLine: 1, StartColumn: 1, EndLine: 1, EndColumn: 5}
	shifted := base
	shifted.StartColumn = 2

	seen := map[string]bool{}
	for _, id := range []string{
		For(KindFunction, base, ""),
		For(KindMethod, base, ""),
		For(KindFunction, shifted, ""),
		For(KindFunction, base, "x"),
	} {
		assert.False(t, seen[id], "id %q generated twice", id)
		seen[id] = true
	}
}

func TestModuleRoot(t *testing.T) {
	id := ModuleRoot("test.py", 100, 1)
	assert.Equal(t, "module:test.py:1:1:100:1:<module>", id)
}
