package walker

import "github.com/orizon-lang/capcore/internal/ast"

// DefaultNamespace recurses into every callable element in declared order.
func DefaultNamespace[S any](w *Walker[S], state S, ns *ast.Namespace) *ast.Namespace {
	elements := make([]ast.Element, len(ns.Elements))
	changed := false

	for i, e := range ns.Elements {
		c, ok := e.(*ast.Callable)
		if !ok {
			elements[i] = e

			continue
		}

		nc := w.VisitCallable(state, c)
		elements[i] = nc

		if nc != c {
			changed = true
		}

		if w.err != nil {
			return ns
		}
	}

	if !changed {
		return ns
	}

	out := *ns
	out.Elements = elements

	return &out
}

// DefaultCallable recurses into every specialisation in declared order.
func DefaultCallable[S any](w *Walker[S], state S, c *ast.Callable) *ast.Callable {
	specs := make([]*ast.Specialisation, len(c.Specialisations))
	changed := false

	for i, sp := range c.Specialisations {
		nsp := w.VisitSpecialisation(state, sp)
		specs[i] = nsp

		if nsp != sp {
			changed = true
		}

		if w.err != nil {
			return c
		}
	}

	if !changed {
		return c
	}

	out := *c
	out.Specialisations = specs

	return &out
}

// DefaultSpecialisation recurses into the specialisation's scope, if any.
func DefaultSpecialisation[S any](w *Walker[S], state S, sp *ast.Specialisation) *ast.Specialisation {
	if sp.Scope == nil {
		return sp
	}

	nscope := w.VisitScope(state, sp.Scope)
	if nscope == sp.Scope {
		return sp
	}

	out := *sp
	out.Scope = nscope

	return &out
}

// DefaultScope recurses into every statement in source order.
func DefaultScope[S any](w *Walker[S], state S, sc *ast.Scope) *ast.Scope {
	stmts := make([]*ast.Statement, len(sc.Statements))
	changed := false

	for i, st := range sc.Statements {
		nst := w.VisitStatement(state, st)
		stmts[i] = nst

		if nst != st {
			changed = true
		}

		if w.err != nil {
			return sc
		}
	}

	if !changed {
		return sc
	}

	out := *sc
	out.Statements = stmts

	return &out
}

// DefaultStatement recurses into every typed subterm of the statement, in
// source order, including the nested scopes of compound statements.
func DefaultStatement[S any](w *Walker[S], state S, st *ast.Statement) *ast.Statement {
	out := *st
	changed := false

	visitExpr := func(e *ast.TypedExpression) *ast.TypedExpression {
		if e == nil {
			return nil
		}

		ne := w.VisitExpression(state, e)
		if ne != e {
			changed = true
		}

		return ne
	}

	visitScope := func(sc *ast.Scope) *ast.Scope {
		if sc == nil {
			return nil
		}

		nsc := w.VisitScope(state, sc)
		if nsc != sc {
			changed = true
		}

		return nsc
	}

	switch st.Kind {
	case ast.StmtExpression:
		out.Expression = visitExpr(st.Expression)
	case ast.StmtLocalDeclaration:
		ld := *st.LocalDecl
		ld.Value = visitExpr(st.LocalDecl.Value)
		out.LocalDecl = &ld
	case ast.StmtAssignment:
		as := *st.Assignment
		as.Target = visitExpr(st.Assignment.Target)
		as.Value = visitExpr(st.Assignment.Value)
		out.Assignment = &as
	case ast.StmtConditional:
		cond := ast.Conditional{Branches: make([]ast.ConditionalBranch, len(st.Conditional.Branches))}
		for i, b := range st.Conditional.Branches {
			cond.Branches[i] = ast.ConditionalBranch{
				Condition: visitExpr(b.Condition),
				Body:      visitScope(b.Body),
			}
		}

		cond.Else = visitScope(st.Conditional.Else)
		out.Conditional = &cond
	case ast.StmtFor:
		fl := *st.For
		fl.Sequence = visitExpr(st.For.Sequence)
		fl.Body = visitScope(st.For.Body)
		out.For = &fl
	case ast.StmtWhile:
		wl := *st.While
		wl.Condition = visitExpr(st.While.Condition)
		wl.Body = visitScope(st.While.Body)
		out.While = &wl
	case ast.StmtRepeatUntil:
		ru := *st.RepeatUntil
		ru.Body = visitScope(st.RepeatUntil.Body)
		ru.Until = visitExpr(st.RepeatUntil.Until)
		ru.Fixup = visitScope(st.RepeatUntil.Fixup)
		out.RepeatUntil = &ru
	case ast.StmtQubitAllocation:
		qa := *st.QubitAlloc
		qa.Count = visitExpr(st.QubitAlloc.Count)
		qa.Body = visitScope(st.QubitAlloc.Body)
		out.QubitAlloc = &qa
	case ast.StmtReturn:
		out.Return = visitExpr(st.Return)
	case ast.StmtFail:
		out.Fail = visitExpr(st.Fail)
	}

	if w.err != nil {
		return st
	}

	if !changed {
		return st
	}

	return &out
}

// DefaultExpression recurses into every typed sub-expression, in source
// order.
func DefaultExpression[S any](w *Walker[S], state S, e *ast.TypedExpression) *ast.TypedExpression {
	out := *e
	changed := false

	visit := func(c *ast.TypedExpression) *ast.TypedExpression {
		if c == nil {
			return nil
		}

		nc := w.VisitExpression(state, c)
		if nc != c {
			changed = true
		}

		return nc
	}

	switch e.Kind {
	case ast.ExprIdentifier, ast.ExprLiteral, ast.ExprCallableRef:
		// leaves
	case ast.ExprLambda:
		l := *e.Lambda
		l.Body = visit(e.Lambda.Body)
		out.Lambda = &l
	case ast.ExprCall:
		c := *e.Call
		c.CalleeExpr = visit(e.Call.CalleeExpr)
		c.Arguments = visit(e.Call.Arguments)
		out.Call = &c
	case ast.ExprTuple:
		elems := make([]*ast.TypedExpression, len(e.Tuple))
		for i, el := range e.Tuple {
			elems[i] = visit(el)
		}

		out.Tuple = elems
	case ast.ExprNewArray:
		na := *e.NewArray
		na.Size = visit(e.NewArray.Size)
		out.NewArray = &na
	case ast.ExprArrayUpdate:
		au := *e.ArrayUpdate
		au.Array = visit(e.ArrayUpdate.Array)
		au.Index = visit(e.ArrayUpdate.Index)
		au.Value = visit(e.ArrayUpdate.Value)
		out.ArrayUpdate = &au
	case ast.ExprBinary:
		b := *e.Binary
		b.Left = visit(e.Binary.Left)
		b.Right = visit(e.Binary.Right)
		out.Binary = &b
	case ast.ExprUnaryNot:
		out.Unary = visit(e.Unary)
	case ast.ExprAdjoint:
		out.Adjoint = visit(e.Adjoint)
	case ast.ExprControlled:
		out.Controlled = visit(e.Controlled)
	case ast.ExprConditional:
		c := *e.Conditional
		c.Condition = visit(e.Conditional.Condition)
		c.Then = visit(e.Conditional.Then)
		c.Else = visit(e.Conditional.Else)
		out.Conditional = &c
	case ast.ExprPartialApply:
		pa := *e.PartialApply
		pa.Captured = visit(e.PartialApply.Captured)
		out.PartialApply = &pa
	}

	if w.err != nil {
		return e
	}

	if !changed {
		return e
	}

	return &out
}

// DefaultType returns t unchanged; no analyser or lifter in this core needs
// to rewrite types, only to inspect them, so there is nothing to recurse
// into beyond what TypeAnalyzer inspects directly.
func DefaultType[S any](w *Walker[S], state S, t ast.ResolvedType) ast.ResolvedType {
	return t
}
