// Package walker implements a generic, stateful tree traversal framework.
// Every syntactic category exposes an overridable On... operation with a
// default that recurses into children in source order; a user supplies
// overrides only for the categories they care about, and the default
// behaviour for every other category still applies.
//
// A classic visitor delegates to a ~30-method interface with a no-op base
// implementation for the categories a caller doesn't care about — deep
// inheritance of transformations through interface overrides. This package
// instead holds one function field per syntactic category on a plain
// struct: composition of {default_behavior, user_callback} rather than
// virtual dispatch.
package walker

import (
	"fmt"

	"github.com/orizon-lang/capcore/internal/ast"
)

// TreeInvariantError is returned when an override replaces a node with one
// whose resolved type disagrees with the node it replaced, while type
// preservation is required.
type TreeInvariantError struct {
	Where string
	Was   ast.ResolvedType
	Got   ast.ResolvedType
}

func (e *TreeInvariantError) Error() string {
	return fmt.Sprintf("tree invariant violated at %s: type changed from %s to %s", e.Where, e.Was, e.Got)
}

// Handlers is the dispatch table: one overridable operation per syntactic
// category. Each defaults to a function that recurses into the node's
// children in source order and otherwise leaves the node unchanged. An
// override that wants the default behaviour for a node's children calls
// walker.DefaultXxx(w, state, node) explicitly.
type Handlers[S any] struct {
	OnNamespace      func(w *Walker[S], state S, ns *ast.Namespace) *ast.Namespace
	OnCallable       func(w *Walker[S], state S, c *ast.Callable) *ast.Callable
	OnSpecialisation func(w *Walker[S], state S, sp *ast.Specialisation) *ast.Specialisation
	OnScope          func(w *Walker[S], state S, sc *ast.Scope) *ast.Scope
	OnStatement      func(w *Walker[S], state S, st *ast.Statement) *ast.Statement
	OnExpression     func(w *Walker[S], state S, e *ast.TypedExpression) *ast.TypedExpression
	OnType           func(w *Walker[S], state S, t ast.ResolvedType) ast.ResolvedType
}

// Walker drives one traversal of a Program (or any subtree) carrying a
// user-defined SharedState S.
type Walker[S any] struct {
	Handlers[S]

	// RequireTypePreservation enables the TreeInvariantError check on every
	// expression rewrite. The Lambda Lifter enables this;
	// pure analysis passes that never rewrite leave it off.
	RequireTypePreservation bool

	err error
}

// New creates a Walker with every operation set to its default (pure
// recursion, no rewriting).
func New[S any]() *Walker[S] {
	return &Walker[S]{
		Handlers: Handlers[S]{
			OnNamespace:      DefaultNamespace[S],
			OnCallable:       DefaultCallable[S],
			OnSpecialisation: DefaultSpecialisation[S],
			OnScope:          DefaultScope[S],
			OnStatement:      DefaultStatement[S],
			OnExpression:     DefaultExpression[S],
			OnType:           DefaultType[S],
		},
	}
}

// Err returns the fatal error recorded during the last WalkProgram call, if
// any.
func (w *Walker[S]) Err() error { return w.err }

// Fail records a fatal error from within a handler, aborting the remainder
// of the traversal and causing WalkProgram to return the original,
// unmodified program. A handler that detects a violated internal invariant
// (rather than a merely-inapplicable rewrite, which it should just skip)
// calls this instead of returning early on its own, so every ancestor frame
// unwinds via the existing short-circuit checks.
func (w *Walker[S]) Fail(err error) {
	if w.err == nil {
		w.err = err
	}
}

// WalkProgram walks every namespace of p in declared order and returns the
// (possibly rewritten) program. On a fatal error the original program is
// returned unchanged alongside Err().
func (w *Walker[S]) WalkProgram(state S, p *ast.Program) *ast.Program {
	w.err = nil

	namespaces := make([]*ast.Namespace, len(p.Namespaces))
	changed := false

	for i, ns := range p.Namespaces {
		nns := w.visitNamespace(state, ns)
		namespaces[i] = nns

		if nns != ns {
			changed = true
		}

		if w.err != nil {
			return p
		}
	}

	if !changed {
		return p
	}

	return &ast.Program{Namespaces: namespaces}
}

func (w *Walker[S]) visitNamespace(state S, ns *ast.Namespace) *ast.Namespace {
	if w.err != nil || ns == nil {
		return ns
	}

	return w.OnNamespace(w, state, ns)
}

// VisitCallable dispatches to the current OnCallable handler, honouring an
// already-recorded fatal error by short-circuiting.
func (w *Walker[S]) VisitCallable(state S, c *ast.Callable) *ast.Callable {
	if w.err != nil || c == nil {
		return c
	}

	return w.OnCallable(w, state, c)
}

// VisitSpecialisation dispatches to the current OnSpecialisation handler.
func (w *Walker[S]) VisitSpecialisation(state S, sp *ast.Specialisation) *ast.Specialisation {
	if w.err != nil || sp == nil {
		return sp
	}

	return w.OnSpecialisation(w, state, sp)
}

// VisitScope dispatches to the current OnScope handler.
func (w *Walker[S]) VisitScope(state S, sc *ast.Scope) *ast.Scope {
	if w.err != nil || sc == nil {
		return sc
	}

	return w.OnScope(w, state, sc)
}

// VisitStatement dispatches to the current OnStatement handler.
func (w *Walker[S]) VisitStatement(state S, st *ast.Statement) *ast.Statement {
	if w.err != nil || st == nil {
		return st
	}

	return w.OnStatement(w, state, st)
}

// VisitExpression dispatches to the current OnExpression handler and, when
// RequireTypePreservation is set, validates that a replacement expression's
// resolved type matches the node it replaced.
func (w *Walker[S]) VisitExpression(state S, e *ast.TypedExpression) *ast.TypedExpression {
	if w.err != nil || e == nil {
		return e
	}

	result := w.OnExpression(w, state, e)

	if w.err != nil {
		return e
	}

	if w.RequireTypePreservation && result != nil && result != e && !result.Type.Equal(e.Type) {
		w.err = &TreeInvariantError{Where: e.Kind.String(), Was: e.Type, Got: result.Type}

		return e
	}

	return result
}

// VisitType dispatches to the current OnType handler.
func (w *Walker[S]) VisitType(state S, t ast.ResolvedType) ast.ResolvedType {
	if w.err != nil {
		return t
	}

	return w.OnType(w, state, t)
}
