package callgraph

import "github.com/orizon-lang/capcore/internal/ast"

func scanScope(caller Node, sc *ast.Scope, g *Graph) {
	for _, st := range sc.Statements {
		scanStatement(caller, st, g)
	}
}

func scanStatement(caller Node, st *ast.Statement, g *Graph) {
	switch st.Kind {
	case ast.StmtExpression:
		scanExpr(caller, st.Expression, g)
	case ast.StmtLocalDeclaration:
		scanExpr(caller, st.LocalDecl.Value, g)
	case ast.StmtAssignment:
		scanExpr(caller, st.Assignment.Target, g)
		scanExpr(caller, st.Assignment.Value, g)
	case ast.StmtConditional:
		for _, b := range st.Conditional.Branches {
			scanExpr(caller, b.Condition, g)

			if b.Body != nil {
				scanScope(caller, b.Body, g)
			}
		}

		if st.Conditional.Else != nil {
			scanScope(caller, st.Conditional.Else, g)
		}
	case ast.StmtFor:
		scanExpr(caller, st.For.Sequence, g)

		if st.For.Body != nil {
			scanScope(caller, st.For.Body, g)
		}
	case ast.StmtWhile:
		scanExpr(caller, st.While.Condition, g)

		if st.While.Body != nil {
			scanScope(caller, st.While.Body, g)
		}
	case ast.StmtRepeatUntil:
		if st.RepeatUntil.Body != nil {
			scanScope(caller, st.RepeatUntil.Body, g)
		}

		scanExpr(caller, st.RepeatUntil.Until, g)

		if st.RepeatUntil.Fixup != nil {
			scanScope(caller, st.RepeatUntil.Fixup, g)
		}
	case ast.StmtQubitAllocation:
		scanExpr(caller, st.QubitAlloc.Count, g)

		if st.QubitAlloc.Body != nil {
			scanScope(caller, st.QubitAlloc.Body, g)
		}
	case ast.StmtReturn:
		scanExpr(caller, st.Return, g)
	case ast.StmtFail:
		scanExpr(caller, st.Fail, g)
	}
}

func scanExpr(caller Node, e *ast.TypedExpression, g *Graph) {
	if e == nil {
		return
	}

	switch e.Kind {
	case ast.ExprCall:
		if e.Call.Callee != "" {
			g.addEdge(caller, e.Call.Callee, e.Call.TypeArgs, e.Range)
		}

		scanExpr(caller, e.Call.CalleeExpr, g)
		scanExpr(caller, e.Call.Arguments, g)
	case ast.ExprPartialApply:
		g.addEdge(caller, e.PartialApply.Callee, nil, e.Range)
		scanExpr(caller, e.PartialApply.Captured, g)
	case ast.ExprCallableRef:
		g.addEdge(caller, e.CallableRef, nil, e.Range)
	case ast.ExprLambda:
		// Defensive: a call graph built before lambda lifting still sees
		// into lambda bodies, since a lambda can itself mention a callable.
		scanExpr(caller, e.Lambda.Body, g)
	case ast.ExprTuple:
		for _, el := range e.Tuple {
			scanExpr(caller, el, g)
		}
	case ast.ExprNewArray:
		scanExpr(caller, e.NewArray.Size, g)
	case ast.ExprArrayUpdate:
		scanExpr(caller, e.ArrayUpdate.Array, g)
		scanExpr(caller, e.ArrayUpdate.Index, g)
		scanExpr(caller, e.ArrayUpdate.Value, g)
	case ast.ExprBinary:
		scanExpr(caller, e.Binary.Left, g)
		scanExpr(caller, e.Binary.Right, g)
	case ast.ExprUnaryNot:
		scanExpr(caller, e.Unary, g)
	case ast.ExprAdjoint:
		scanExpr(caller, e.Adjoint, g)
	case ast.ExprControlled:
		scanExpr(caller, e.Controlled, g)
	case ast.ExprConditional:
		scanExpr(caller, e.Conditional.Condition, g)
		scanExpr(caller, e.Conditional.Then, g)
		scanExpr(caller, e.Conditional.Else, g)
	}
}
