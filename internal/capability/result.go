package capability

import (
	"github.com/orizon-lang/capcore/internal/ast"
	"github.com/orizon-lang/capcore/internal/diagnostic"
)

// ResultAnalyzer flags comparisons between Result values.
// A comparison used directly as an if-branch's condition is the structured
// "measurement feedback" shape and demands only BasicMeasurementFeedback;
// any other use (assigned, nested under a boolean combinator, used as a
// while/repeat-until condition, ...) demands the unrestricted
// FullComputation capability. Inside a block conditioned on such a
// structured comparison, returning or re-`set`-ing a mutable variable
// demands FullComputation too, since it lets a measurement outcome
// influence control flow or state beyond what structured branching alone
// needs.
func ResultAnalyzer(c *ast.Callable) []Pattern {
	var out []Pattern

	for _, sp := range c.Specialisations {
		if sp.Scope == nil {
			continue
		}

		analyseResultScope(sp.Scope, false, &out)
	}

	return out
}

func analyseResultScope(sc *ast.Scope, inResultBlock bool, out *[]Pattern) {
	for _, st := range sc.Statements {
		analyseResultStatement(st, inResultBlock, out)
	}
}

func analyseResultStatement(st *ast.Statement, inResultBlock bool, out *[]Pattern) {
	switch st.Kind {
	case ast.StmtExpression:
		analyseResultExpr(st.Expression, false, out)
	case ast.StmtLocalDeclaration:
		analyseResultExpr(st.LocalDecl.Value, false, out)
	case ast.StmtAssignment:
		analyseResultExpr(st.Assignment.Value, false, out)

		if inResultBlock && st.Assignment.Target != nil && st.Assignment.Target.IsMutableBinding {
			*out = append(*out, Pattern{
				Capability: FullComputation,
				Code:       diagnostic.CodeSetOfMutableInResultBlock,
				Range:      st.Range,
			})
		}
	case ast.StmtConditional:
		// A branch is conditioned on a Result comparison if it sits inside
		// such a block already, or if its own or an earlier branch's
		// condition is one; the else block follows the same rule.
		resultConditioned := inResultBlock

		for _, b := range st.Conditional.Branches {
			resultConditioned = resultConditioned || isResultComparison(b.Condition)
			analyseResultExpr(b.Condition, true, out)

			if b.Body != nil {
				analyseResultScope(b.Body, resultConditioned, out)
			}
		}

		if st.Conditional.Else != nil {
			analyseResultScope(st.Conditional.Else, resultConditioned, out)
		}
	case ast.StmtFor:
		analyseResultExpr(st.For.Sequence, false, out)

		if st.For.Body != nil {
			analyseResultScope(st.For.Body, inResultBlock, out)
		}
	case ast.StmtWhile:
		analyseResultExpr(st.While.Condition, false, out)

		if st.While.Body != nil {
			analyseResultScope(st.While.Body, inResultBlock, out)
		}
	case ast.StmtRepeatUntil:
		if st.RepeatUntil.Body != nil {
			analyseResultScope(st.RepeatUntil.Body, inResultBlock, out)
		}

		analyseResultExpr(st.RepeatUntil.Until, false, out)

		if st.RepeatUntil.Fixup != nil {
			analyseResultScope(st.RepeatUntil.Fixup, inResultBlock, out)
		}
	case ast.StmtQubitAllocation:
		analyseResultExpr(st.QubitAlloc.Count, false, out)

		if st.QubitAlloc.Body != nil {
			analyseResultScope(st.QubitAlloc.Body, inResultBlock, out)
		}
	case ast.StmtReturn:
		analyseResultExpr(st.Return, false, out)

		if inResultBlock && st.Return != nil && st.Return.IsMutableBinding {
			*out = append(*out, Pattern{
				Capability: FullComputation,
				Code:       diagnostic.CodeReturnOfMutableInResultBlock,
				Range:      st.Range,
			})
		}
	case ast.StmtFail:
		analyseResultExpr(st.Fail, false, out)
	}
}

func isResultComparison(e *ast.TypedExpression) bool {
	if e == nil || e.Kind != ast.ExprBinary {
		return false
	}

	if e.Binary.Op != ast.OpEq && e.Binary.Op != ast.OpNeq {
		return false
	}

	return e.Binary.Left.Type.Kind == ast.TypeResult || e.Binary.Right.Type.Kind == ast.TypeResult
}

func analyseResultExpr(e *ast.TypedExpression, isIfCondition bool, out *[]Pattern) {
	if e == nil {
		return
	}

	if isResultComparison(e) {
		if isIfCondition {
			*out = append(*out, Pattern{
				Capability: BasicMeasurementFeedback,
				Code:       diagnostic.CodeUnsupportedResultComparison,
				Range:      e.Range,
			})
		} else {
			*out = append(*out, Pattern{
				Capability: FullComputation,
				Code:       diagnostic.CodeResultComparisonOutsideBlock,
				Range:      e.Range,
			})
		}
	}

	switch e.Kind {
	case ast.ExprCall:
		analyseResultExpr(e.Call.CalleeExpr, false, out)
		analyseResultExpr(e.Call.Arguments, false, out)
	case ast.ExprTuple:
		for _, el := range e.Tuple {
			analyseResultExpr(el, false, out)
		}
	case ast.ExprNewArray:
		analyseResultExpr(e.NewArray.Size, false, out)
	case ast.ExprArrayUpdate:
		analyseResultExpr(e.ArrayUpdate.Array, false, out)
		analyseResultExpr(e.ArrayUpdate.Index, false, out)
		analyseResultExpr(e.ArrayUpdate.Value, false, out)
	case ast.ExprBinary:
		analyseResultExpr(e.Binary.Left, false, out)
		analyseResultExpr(e.Binary.Right, false, out)
	case ast.ExprUnaryNot:
		analyseResultExpr(e.Unary, false, out)
	case ast.ExprAdjoint:
		analyseResultExpr(e.Adjoint, false, out)
	case ast.ExprControlled:
		analyseResultExpr(e.Controlled, false, out)
	case ast.ExprConditional:
		analyseResultExpr(e.Conditional.Condition, false, out)
		analyseResultExpr(e.Conditional.Then, false, out)
		analyseResultExpr(e.Conditional.Else, false, out)
	case ast.ExprPartialApply:
		analyseResultExpr(e.PartialApply.Captured, false, out)
	}
}
