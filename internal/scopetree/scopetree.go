// Package scopetree implements the scope tree builder: it consumes
// SCOPE-category captures and produces the lexical scope tree plus the
// `(location) -> smallest enclosing scope` oracle shared by the definition
// and reference phases.
//
// GetScopeID is a naive O(n) linear scan per query. It is the correct
// reference algorithm; an interval tree or a pre-order DFS labeling pass
// would be a drop-in replacement behind the same ScopeOracle interface if
// the quadratic total ever shows up in a profile.
package scopetree

import (
	"sort"

	"github.com/oxhq/semindex/internal/capture"
	"github.com/oxhq/semindex/internal/semerr"
	"github.com/oxhq/semindex/internal/semindex"
	"github.com/oxhq/semindex/internal/symbolid"
)

// Builder implements semindex.ScopeOracle.
type Builder struct {
	scopes  map[semindex.ScopeID]*semindex.LexicalScope
	order   []semindex.ScopeID // insertion order, used for stable depth computation
	depths  map[semindex.ScopeID]int
	rootID  semindex.ScopeID
}

var entityToScopeType = map[string]semindex.ScopeType{
	"module":      semindex.ScopeModule,
	"class":       semindex.ScopeClass,
	"interface":   semindex.ScopeClass,
	"function":    semindex.ScopeFunction,
	"method":      semindex.ScopeMethod,
	"constructor": semindex.ScopeConstructor,
	"block":       semindex.ScopeBlock,
	"lambda":      semindex.ScopeFunction,
	"closure":     semindex.ScopeFunction,
}

var scopeTypeToSymbolKind = map[semindex.ScopeType]symbolid.Kind{
	semindex.ScopeModule:      symbolid.KindModule,
	semindex.ScopeClass:       symbolid.KindClass,
	semindex.ScopeFunction:    symbolid.KindFunction,
	semindex.ScopeMethod:      symbolid.KindMethod,
	semindex.ScopeConstructor: symbolid.KindConstructor,
	semindex.ScopeBlock:       symbolid.KindBlock,
}

// Build synthesizes the module scope, sorts and inserts every SCOPE
// capture, wires parent/child links, and precomputes depths.
// fileLines/fileEndColumn describe the file geometry the module scope
// spans.
func Build(captures []capture.Node, filePath string, fileLines, fileEndColumn int) (*Builder, []semerr.Diagnostic, error) {
	b := &Builder{
		scopes: make(map[semindex.ScopeID]*semindex.LexicalScope),
		depths: make(map[semindex.ScopeID]int),
	}
	var diags []semerr.Diagnostic

	// Step 1: synthesize the module scope.
	moduleLoc := semindex.Location{
		FilePath:    filePath,
		StartLine:   1,
		StartColumn: 1,
		EndLine:     fileLines,
		EndColumn:   fileEndColumn,
	}
	rootID := symbolid.ModuleRoot(filePath, fileLines, fileEndColumn)
	b.rootID = rootID
	b.scopes[rootID] = &semindex.LexicalScope{
		ID:       rootID,
		ParentID: "",
		Name:     "",
		Type:     semindex.ScopeModule,
		Location: moduleLoc,
		ChildIDs: []semindex.ScopeID{},
	}
	b.order = append(b.order, rootID)

	// Step 2: stable-sort SCOPE captures by (start, end) ascending.
	scopeCaptures := make([]capture.Node, 0, len(captures))
	for _, c := range captures {
		if c.Category == capture.CategoryScope {
			scopeCaptures = append(scopeCaptures, c)
		}
	}
	sort.SliceStable(scopeCaptures, func(i, j int) bool {
		a, bb := scopeCaptures[i].Location, scopeCaptures[j].Location
		if a.StartLine != bb.StartLine {
			return a.StartLine < bb.StartLine
		}
		if a.StartColumn != bb.StartColumn {
			return a.StartColumn < bb.StartColumn
		}
		if a.EndLine != bb.EndLine {
			return a.EndLine < bb.EndLine
		}
		return a.EndColumn < bb.EndColumn
	})

	// Steps 3-5: classify, id, dedupe, attach to parent.
	for _, c := range scopeCaptures {
		scopeType, ok := entityToScopeType[c.Entity]
		if !ok {
			scopeType = semindex.ScopeBlock
		}
		// The synthetic root already owns the module type; a captured
		// module-scope duplicate collapses onto it.
		if scopeType == semindex.ScopeModule {
			if c.Location.Equal(moduleLoc) {
				diags = append(diags, semerr.Diagnostic{Kind: semerr.KindDuplicateScope, Message: "module scope already synthesized"})
				continue
			}
		}

		kind := scopeTypeToSymbolKind[scopeType]
		name := c.Text
		id := symbolid.For(kind, symbolid.Loc{
			FilePath:    c.Location.FilePath,
			StartLine:   c.Location.StartLine,
			StartColumn: c.Location.StartColumn,
			EndLine:     c.Location.EndLine,
			EndColumn:   c.Location.EndColumn,
		}, "")

		if _, exists := b.scopes[id]; exists {
			diags = append(diags, semerr.Diagnostic{Kind: semerr.KindDuplicateScope, Message: "duplicate scope id " + id})
			continue
		}

		scope := &semindex.LexicalScope{
			ID:       id,
			Type:     scopeType,
			Location: c.Location,
			ChildIDs: []semindex.ScopeID{},
		}
		if name != "" {
			scope.Name = name
		}

		parentID := b.findContainingParent(c.Location, id)
		scope.ParentID = parentID
		b.scopes[id] = scope
		b.order = append(b.order, id)
		if parent, ok := b.scopes[parentID]; ok {
			parent.ChildIDs = append(parent.ChildIDs, id)
		}
	}

	// Step 6: precompute depths.
	b.computeDepths()

	return b, diags, nil
}

// findContainingParent scans every scope registered so far (excluding the
// candidate itself) for containment of loc, returning the one with minimum
// area.
func (b *Builder) findContainingParent(loc semindex.Location, excludeID semindex.ScopeID) semindex.ScopeID {
	bestID := b.rootID
	bestArea := b.scopes[b.rootID].Location.Area()
	for id, s := range b.scopes {
		if id == excludeID {
			continue
		}
		if !s.Location.Contains(loc) {
			continue
		}
		area := s.Location.Area()
		if area < bestArea {
			bestArea = area
			bestID = id
		}
	}
	return bestID
}

func (b *Builder) computeDepths() {
	var depthOf func(id semindex.ScopeID) int
	depthOf = func(id semindex.ScopeID) int {
		if d, ok := b.depths[id]; ok {
			return d
		}
		s := b.scopes[id]
		if s.IsRoot() {
			b.depths[id] = 0
			return 0
		}
		d := 1 + depthOf(s.ParentID)
		b.depths[id] = d
		return d
	}
	for _, id := range b.order {
		depthOf(id)
	}
}

// GetScopeID implements semindex.ScopeOracle: among scopes containing loc,
// return the one of maximum depth, tie-broken by minimum area.
func (b *Builder) GetScopeID(loc semindex.Location) semindex.ScopeID {
	bestID := b.rootID
	bestDepth := -1
	bestArea := 0
	for id, s := range b.scopes {
		if !s.Location.Contains(loc) {
			continue
		}
		d := b.depths[id]
		area := s.Location.Area()
		if d > bestDepth || (d == bestDepth && area < bestArea) {
			bestDepth = d
			bestArea = area
			bestID = id
		}
	}
	return bestID
}

// RootScopeID implements semindex.ScopeOracle.
func (b *Builder) RootScopeID() semindex.ScopeID { return b.rootID }

// Scopes implements semindex.ScopeOracle.
func (b *Builder) Scopes() map[semindex.ScopeID]*semindex.LexicalScope { return b.scopes }

// Depth exposes the precomputed depth of a scope, mainly for tests.
func (b *Builder) Depth(id semindex.ScopeID) int { return b.depths[id] }
