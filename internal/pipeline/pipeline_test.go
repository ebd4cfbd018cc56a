package pipeline

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oxhq/semindex/internal/semlang"
)

func TestBuildIndexSingleFile_UnsupportedLanguage(t *testing.T) {
	idx, diags, err := BuildIndexSingleFile(context.Background(), "f.rb", []byte("puts 1"), semlang.Language("ruby"))
	require.Error(t, err)
	assert.Nil(t, idx)
	assert.Nil(t, diags)
}

func TestBuildIndexSingleFile_JavaScript(t *testing.T) {
	src := `
class Greeter {
  constructor(name) {
    this.name = name;
  }

  greet() {
    console.log(this.name);
    return this.name;
  }
}

function makeGreeter(name) {
  return new Greeter(name);
}

const g = makeGreeter("ada");
g.greet();
`
	idx, diags, err := BuildIndexSingleFile(context.Background(), "greeter.js", []byte(src), semlang.JavaScript)
	require.NoError(t, err)
	require.NotNil(t, idx)

	assert.Equal(t, "greeter.js", idx.FilePath)
	assert.Equal(t, "javascript", idx.Language)
	assert.NotEmpty(t, idx.RootScopeID)
	assert.Len(t, idx.Classes, 1)
	assert.Len(t, idx.Functions, 1)

	for _, cls := range idx.Classes {
		assert.Equal(t, "Greeter", cls.Name)
		assert.Len(t, cls.Constructors, 1)
		assert.Len(t, cls.Methods, 1)
	}

	assert.NotEmpty(t, idx.References)
	for _, diag := range diags {
		assert.NotEqual(t, "malformed_source", string(diag.Kind))
	}
}

func TestBuildIndexSingleFile_TypeScript(t *testing.T) {
	src := `
interface Shape {
  area(): number;
}

class Circle implements Shape {
  radius: number;

  constructor(radius: number) {
    this.radius = radius;
  }

  area(): number {
    return 3.14 * this.radius * this.radius;
  }
}
`
	idx, _, err := BuildIndexSingleFile(context.Background(), "shapes.ts", []byte(src), semlang.TypeScript)
	require.NoError(t, err)
	require.NotNil(t, idx)

	assert.Len(t, idx.Interfaces, 1)
	assert.Len(t, idx.Classes, 1)
	for _, iface := range idx.Interfaces {
		assert.Equal(t, "Shape", iface.Name)
		assert.Len(t, iface.Methods, 1)
	}
}

func TestBuildIndexSingleFile_Python(t *testing.T) {
	src := `
class Animal:
    def __init__(self, name):
        self.name = name

    def speak(self):
        print(self.name)
        return self.name


def make_animal(name):
    return Animal(name)


a = make_animal("rex")
a.speak()
`
	idx, _, err := BuildIndexSingleFile(context.Background(), "animal.py", []byte(src), semlang.Python)
	require.NoError(t, err)
	require.NotNil(t, idx)

	assert.Len(t, idx.Classes, 1)
	assert.Len(t, idx.Functions, 1)
	for _, cls := range idx.Classes {
		assert.Equal(t, "Animal", cls.Name)
		assert.Len(t, cls.Constructors, 1)
		assert.Len(t, cls.Methods, 1)
	}
}

func TestBuildIndexSingleFile_Rust(t *testing.T) {
	src := `
struct Point {
    x: i32,
    y: i32,
}

impl Point {
    fn new(x: i32, y: i32) -> Point {
        Point { x: x, y: y }
    }

    fn sum(&self) -> i32 {
        self.x + self.y
    }
}

fn main() {
    let p = Point::new(1, 2);
    p.sum();
}
`
	idx, _, err := BuildIndexSingleFile(context.Background(), "point.rs", []byte(src), semlang.Rust)
	require.NoError(t, err)
	require.NotNil(t, idx)

	assert.Len(t, idx.Classes, 1)
	for _, cls := range idx.Classes {
		assert.Equal(t, "Point", cls.Name)
		assert.Len(t, cls.Constructors, 1, "new() without a self parameter should be a constructor")
		assert.Len(t, cls.Methods, 1, "sum(&self) should be a method")
	}

	var sawMain bool
	for _, fn := range idx.Functions {
		if fn.Name == "main" {
			sawMain = true
		}
	}
	assert.True(t, sawMain)
}

func TestBuildIndexSingleFile_ScopesCoverRootToLeaf(t *testing.T) {
	src := "function f() {\n  if (true) {\n    return 1;\n  }\n}\n"
	idx, _, err := BuildIndexSingleFile(context.Background(), "f.js", []byte(src), semlang.JavaScript)
	require.NoError(t, err)

	root, ok := idx.Scopes[idx.RootScopeID]
	require.True(t, ok)
	assert.Empty(t, root.ParentID)

	for id, scope := range idx.Scopes {
		if id == idx.RootScopeID {
			continue
		}
		assert.NotEmpty(t, scope.ParentID, "non-root scope %s must have a parent", id)
	}
}
