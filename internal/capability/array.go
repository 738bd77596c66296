package capability

import (
	"github.com/orizon-lang/capcore/internal/ast"
	"github.com/orizon-lang/capcore/internal/diagnostic"
)

// ArrayAnalyzer flags dynamically-sized array constructions and in-place
// updates. A `new T[n]` whose size is anything other than
// an integer literal is dynamically sized and demands the unrestricted
// FullComputation capability; any array-update expression demands at least
// BasicQuantumFunctionality, since it is evaluated against a runtime array
// value even when its size was static.
func ArrayAnalyzer(c *ast.Callable) []Pattern {
	var out []Pattern

	for _, sp := range c.Specialisations {
		if sp.Scope == nil {
			continue
		}

		scanArraysInScope(sp.Scope, &out)
	}

	return out
}

func scanArraysInScope(sc *ast.Scope, out *[]Pattern) {
	for _, st := range sc.Statements {
		scanArraysInStatement(st, out)
	}
}

func scanArraysInStatement(st *ast.Statement, out *[]Pattern) {
	switch st.Kind {
	case ast.StmtExpression:
		scanArraysInExpr(st.Expression, out)
	case ast.StmtLocalDeclaration:
		scanArraysInExpr(st.LocalDecl.Value, out)
	case ast.StmtAssignment:
		scanArraysInExpr(st.Assignment.Target, out)
		scanArraysInExpr(st.Assignment.Value, out)
	case ast.StmtConditional:
		for _, b := range st.Conditional.Branches {
			scanArraysInExpr(b.Condition, out)

			if b.Body != nil {
				scanArraysInScope(b.Body, out)
			}
		}

		if st.Conditional.Else != nil {
			scanArraysInScope(st.Conditional.Else, out)
		}
	case ast.StmtFor:
		scanArraysInExpr(st.For.Sequence, out)

		if st.For.Body != nil {
			scanArraysInScope(st.For.Body, out)
		}
	case ast.StmtWhile:
		scanArraysInExpr(st.While.Condition, out)

		if st.While.Body != nil {
			scanArraysInScope(st.While.Body, out)
		}
	case ast.StmtRepeatUntil:
		if st.RepeatUntil.Body != nil {
			scanArraysInScope(st.RepeatUntil.Body, out)
		}

		scanArraysInExpr(st.RepeatUntil.Until, out)

		if st.RepeatUntil.Fixup != nil {
			scanArraysInScope(st.RepeatUntil.Fixup, out)
		}
	case ast.StmtQubitAllocation:
		scanArraysInExpr(st.QubitAlloc.Count, out)

		if st.QubitAlloc.Body != nil {
			scanArraysInScope(st.QubitAlloc.Body, out)
		}
	case ast.StmtReturn:
		scanArraysInExpr(st.Return, out)
	case ast.StmtFail:
		scanArraysInExpr(st.Fail, out)
	}
}

func scanArraysInExpr(e *ast.TypedExpression, out *[]Pattern) {
	if e == nil {
		return
	}

	switch e.Kind {
	case ast.ExprNewArray:
		if !isStaticSize(e.NewArray.Size) {
			*out = append(*out, Pattern{Capability: FullComputation, Code: diagnostic.CodeUnsupportedArrayAllocation, Range: e.Range})
		}

		scanArraysInExpr(e.NewArray.Size, out)
	case ast.ExprArrayUpdate:
		*out = append(*out, Pattern{Capability: BasicQuantumFunctionality, Code: diagnostic.CodeUnsupportedArrayUpdate, Range: e.Range})
		scanArraysInExpr(e.ArrayUpdate.Array, out)
		scanArraysInExpr(e.ArrayUpdate.Index, out)
		scanArraysInExpr(e.ArrayUpdate.Value, out)
	case ast.ExprCall:
		scanArraysInExpr(e.Call.CalleeExpr, out)
		scanArraysInExpr(e.Call.Arguments, out)
	case ast.ExprTuple:
		for _, el := range e.Tuple {
			scanArraysInExpr(el, out)
		}
	case ast.ExprBinary:
		scanArraysInExpr(e.Binary.Left, out)
		scanArraysInExpr(e.Binary.Right, out)
	case ast.ExprUnaryNot:
		scanArraysInExpr(e.Unary, out)
	case ast.ExprAdjoint:
		scanArraysInExpr(e.Adjoint, out)
	case ast.ExprControlled:
		scanArraysInExpr(e.Controlled, out)
	case ast.ExprConditional:
		scanArraysInExpr(e.Conditional.Condition, out)
		scanArraysInExpr(e.Conditional.Then, out)
		scanArraysInExpr(e.Conditional.Else, out)
	case ast.ExprPartialApply:
		scanArraysInExpr(e.PartialApply.Captured, out)
	}
}

func isStaticSize(size *ast.TypedExpression) bool {
	return size != nil && size.Kind == ast.ExprLiteral && size.Literal != nil && size.Literal.Kind == ast.LiteralInt
}
