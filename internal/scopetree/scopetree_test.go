package scopetree

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oxhq/semindex/internal/capture"
	"github.com/oxhq/semindex/internal/semerr"
	"github.com/oxhq/semindex/internal/semindex"
)

func scopeCapture(entity string, sl, sc, el, ec int) capture.Node {
	return capture.Node{
		Name:     "scope." + entity,
		Category: capture.CategoryScope,
		Entity:   entity,
		Location: semindex.Location{FilePath: "f.py", StartLine: sl, StartColumn: sc, EndLine: el, EndColumn: ec},
	}
}

func TestBuild_SynthesizesModuleScope(t *testing.T) {
	b, diags, err := Build(nil, "f.py", 10, 1)
	require.NoError(t, err)
	assert.Empty(t, diags)

	scopes := b.Scopes()
	require.Len(t, scopes, 1)

	root := scopes[b.RootScopeID()]
	require.NotNil(t, root)
	assert.True(t, root.IsRoot())
	assert.Equal(t, semindex.ScopeModule, root.Type)
	assert.Equal(t, semindex.Location{FilePath: "f.py", StartLine: 1, StartColumn: 1, EndLine: 10, EndColumn: 1}, root.Location)
	assert.Equal(t, 0, b.Depth(b.RootScopeID()))
}

func TestBuild_NestedScopesAttachToSmallestParent(t *testing.T) {
	captures := []capture.Node{
		scopeCapture("class", 2, 1, 8, 1),
		scopeCapture("function", 3, 5, 6, 10),
		scopeCapture("block", 4, 7, 5, 20),
	}
	b, diags, err := Build(captures, "f.py", 10, 1)
	require.NoError(t, err)
	assert.Empty(t, diags)

	scopes := b.Scopes()
	require.Len(t, scopes, 4)

	var cls, fn, blk *semindex.LexicalScope
	for _, s := range scopes {
		switch s.Type {
		case semindex.ScopeClass:
			cls = s
		case semindex.ScopeFunction:
			fn = s
		case semindex.ScopeBlock:
			blk = s
		}
	}
	require.NotNil(t, cls)
	require.NotNil(t, fn)
	require.NotNil(t, blk)

	assert.Equal(t, b.RootScopeID(), cls.ParentID)
	assert.Equal(t, cls.ID, fn.ParentID)
	assert.Equal(t, fn.ID, blk.ParentID)

	assert.Equal(t, 1, b.Depth(cls.ID))
	assert.Equal(t, 2, b.Depth(fn.ID))
	assert.Equal(t, 3, b.Depth(blk.ID))

	assert.Contains(t, cls.ChildIDs, fn.ID)
	assert.Contains(t, scopes[b.RootScopeID()].ChildIDs, cls.ID)
}

func TestBuild_UnknownEntityDefaultsToBlock(t *testing.T) {
	captures := []capture.Node{scopeCapture("mystery", 2, 1, 3, 1)}
	b, _, err := Build(captures, "f.py", 10, 1)
	require.NoError(t, err)

	for id, s := range b.Scopes() {
		if id == b.RootScopeID() {
			continue
		}
		assert.Equal(t, semindex.ScopeBlock, s.Type)
	}
}

func TestBuild_DuplicateScopeDeduplicated(t *testing.T) {
	captures := []capture.Node{
		scopeCapture("function", 2, 1, 4, 1),
		scopeCapture("function", 2, 1, 4, 1),
	}
	b, diags, err := Build(captures, "f.py", 10, 1)
	require.NoError(t, err)

	assert.Len(t, b.Scopes(), 2)
	require.Len(t, diags, 1)
	assert.Equal(t, semerr.KindDuplicateScope, diags[0].Kind)
}

func TestBuild_CapturedModuleScopeCollapsesOntoRoot(t *testing.T) {
	captures := []capture.Node{scopeCapture("module", 1, 1, 10, 1)}
	b, diags, err := Build(captures, "f.py", 10, 1)
	require.NoError(t, err)

	assert.Len(t, b.Scopes(), 1, "first writer wins: the synthesized root stays")
	require.Len(t, diags, 1)
	assert.Equal(t, semerr.KindDuplicateScope, diags[0].Kind)
}

func TestGetScopeID_ReturnsDeepestContainingScope(t *testing.T) {
	captures := []capture.Node{
		scopeCapture("class", 2, 1, 8, 1),
		scopeCapture("method", 3, 5, 6, 10),
	}
	b, _, err := Build(captures, "f.py", 10, 1)
	require.NoError(t, err)

	probe := semindex.Location{FilePath: "f.py", StartLine: 4, StartColumn: 7, EndLine: 4, EndColumn: 12}
	got := b.GetScopeID(probe)

	scope := b.Scopes()[got]
	require.NotNil(t, scope)
	assert.Equal(t, semindex.ScopeMethod, scope.Type)

	outside := semindex.Location{FilePath: "f.py", StartLine: 9, StartColumn: 1, EndLine: 9, EndColumn: 5}
	assert.Equal(t, b.RootScopeID(), b.GetScopeID(outside))
}

func TestGetScopeID_TieBrokenByMinimumArea(t *testing.T) {
	// Two sibling scopes under root, same depth, one a prefix of the other's
	// span: a probe inside both must resolve to the smaller.
	captures := []capture.Node{
		scopeCapture("function", 2, 1, 8, 1),
		scopeCapture("lambda", 2, 1, 3, 1),
	}
	b, _, err := Build(captures, "f.py", 10, 1)
	require.NoError(t, err)

	probe := semindex.Location{FilePath: "f.py", StartLine: 2, StartColumn: 5, EndLine: 2, EndColumn: 9}
	got := b.GetScopeID(probe)
	scope := b.Scopes()[got]

	// The sort puts the shorter lambda span first, so both scopes parent to
	// root at depth 1; the lambda wins on the minimum-area tie-break.
	assert.Equal(t, semindex.Location{FilePath: "f.py", StartLine: 2, StartColumn: 1, EndLine: 3, EndColumn: 1}, scope.Location)
}

func TestBuild_ScopeCapturesSortedBeforeInsertion(t *testing.T) {
	// Delivered in reverse document order; parent links must still come out
	// right because Build stable-sorts SCOPE captures first.
	captures := []capture.Node{
		scopeCapture("block", 4, 7, 5, 20),
		scopeCapture("function", 3, 5, 6, 10),
		scopeCapture("class", 2, 1, 8, 1),
	}
	b, _, err := Build(captures, "f.py", 10, 1)
	require.NoError(t, err)

	for id, s := range b.Scopes() {
		if id == b.RootScopeID() {
			continue
		}
		parent := b.Scopes()[s.ParentID]
		require.NotNil(t, parent, "scope %s has dangling parent", id)
		assert.True(t, parent.Location.Contains(s.Location))
		assert.Equal(t, b.Depth(s.ParentID)+1, b.Depth(id))
	}
}
