package capture

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCategorize(t *testing.T) {
	tests := []struct {
		name   string
		cat    Category
		entity string
	}{
		{"scope.function", CategoryScope, "function"},
		{"scope.class", CategoryScope, "class"},
		{"definition.method.static", CategoryDefinition, "method"},
		{"definition.function.anonymous", CategoryDefinition, "function"},
		{"import.named.alias", CategoryImport, "named"},
		{"reference.method_call", CategoryReference, "method_call"},
		{"decorator.attached", CategoryDecorator, "attached"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cat, entity := Categorize(tt.name)
			assert.Equal(t, tt.cat, cat)
			assert.Equal(t, tt.entity, entity)
		})
	}
}

func TestCategorize_Unknown(t *testing.T) {
	for _, name := range []string{"", "scope", "bogus.thing", "definition"} {
		cat, entity := Categorize(name)
		assert.Equal(t, Category(""), cat, "name %q", name)
		assert.Equal(t, "", entity, "name %q", name)
	}
}
