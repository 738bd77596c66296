// Package scope implements the Scope & Symbol Tracker: the
// set of local variables visible at any point during a traversal, plus
// fresh-symbol generation for the Lambda Lifter.
package scope

import (
	"fmt"
	"hash/fnv"

	"github.com/orizon-lang/capcore/internal/ast"
)

// Tracker maintains the known-variables set of one traversal. It is
// designed to live inside a walker.Walker's SharedState and be driven by a
// Statement/Scope override.
//
// Invariant: at the moment any expression is visited,
// KnownVariables() exactly equals the set of locals visible to that
// expression at its source position — callers must call PushScope on
// entering a Scope, ExtendAfterStatement after (not before) recursing into
// each statement, and PopScope on leaving the Scope, in that order.
type Tracker struct {
	vars  []ast.Symbol
	marks []int
}

// NewTracker creates an empty tracker.
func NewTracker() *Tracker {
	return &Tracker{}
}

// PushScope brings sc's declared known-symbols into scope.
func (t *Tracker) PushScope(sc *ast.Scope) {
	t.marks = append(t.marks, len(t.vars))
	t.vars = append(t.vars, sc.KnownSymbols...)
}

// PopScope discards every binding introduced since the matching PushScope,
// including ones added by ExtendAfterStatement inside that scope.
func (t *Tracker) PopScope() {
	n := len(t.marks)
	if n == 0 {
		return
	}

	mark := t.marks[n-1]
	t.marks = t.marks[:n-1]
	t.vars = t.vars[:mark]
}

// ExtendAfterStatement makes st's own declarations visible to statements
// that follow it in the same scope.
func (t *Tracker) ExtendAfterStatement(st *ast.Statement) {
	t.vars = append(t.vars, st.Declares()...)
}

// KnownVariables returns a snapshot of every symbol currently in scope.
func (t *Tracker) KnownVariables() []ast.Symbol {
	out := make([]ast.Symbol, len(t.vars))
	copy(out, t.vars)

	return out
}

// IsKnown reports whether name is currently bound.
func (t *Tracker) IsKnown(name string) bool {
	for _, v := range t.vars {
		if v.Name == name {
			return true
		}
	}

	return false
}

// Lookup returns the resolved type of a currently-bound name.
func (t *Tracker) Lookup(name string) (ast.ResolvedType, bool) {
	// Search from the most recent binding backwards so shadowing resolves
	// to the innermost declaration.
	for i := len(t.vars) - 1; i >= 0; i-- {
		if t.vars[i].Name == name {
			return t.vars[i].Type, true
		}
	}

	return ast.ResolvedType{}, false
}

// NamespaceNames reports whether a candidate name is already taken within
// a namespace, so fresh-symbol generation can retry on collision. Implementations must also account for callables generated earlier
// in the same lifting run.
type NamespaceNames interface {
	Contains(name string) bool
}

// FreshCallableName returns preferred if it is not already taken in ns;
// otherwise it falls back to a monotonically increasing counter seeded
// from a hash of seedKey (the enclosing callable's fully-qualified name),
// retried against ns until a unique name is found. The happy path yields
// human-readable "__EnclosingCallable_Lambda_N__" names; the fallback only
// fires on a genuine, expected-to-be-rare collision.
func FreshCallableName(ns NamespaceNames, preferred, prefix, seedKey string) string {
	if !ns.Contains(preferred) {
		return preferred
	}

	h := fnv.New32a()
	_, _ = h.Write([]byte(seedKey))
	counter := h.Sum32()

	for {
		candidate := fmt.Sprintf("%s%d__", prefix, counter)
		if !ns.Contains(candidate) {
			return candidate
		}

		counter++
	}
}
