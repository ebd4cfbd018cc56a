package tslang

import "github.com/oxhq/semindex/internal/semindex/jslang"

// Spec is shared verbatim with JavaScript: tree-sitter-typescript's
// expression grammar (member/call/new/assignment/variable-declarator nodes)
// is the same vocabulary JavaScript uses, so TypeScript's reference walkers need no
// overrides here.
var Spec = jslang.Spec
