package lift

import (
	"github.com/orizon-lang/capcore/internal/ast"
	"github.com/orizon-lang/capcore/internal/scope"
)

// collectFreeVariables walks body and returns, in first-use order, every
// identifier it references that is bound in the enclosing callable's known
// variables at the lambda's source position (its captured environment) and
// is not itself one of the lambda's own parameters. Ordering is significant:
// it fixes the captured-tuple layout the generated callable's signature and
// every call site agree on.
func collectFreeVariables(body *ast.TypedExpression, bound map[string]bool, known *scope.Tracker) []ast.Symbol {
	seen := map[string]bool{}

	var order []string

	var visit func(e *ast.TypedExpression)

	visit = func(e *ast.TypedExpression) {
		if e == nil {
			return
		}

		switch e.Kind {
		case ast.ExprIdentifier:
			if bound[e.Identifier] || seen[e.Identifier] {
				return
			}

			if known.IsKnown(e.Identifier) {
				seen[e.Identifier] = true
				order = append(order, e.Identifier)
			}
		case ast.ExprLiteral, ast.ExprCallableRef:
			// leaves
		case ast.ExprLambda:
			visit(e.Lambda.Body)
		case ast.ExprCall:
			visit(e.Call.CalleeExpr)
			visit(e.Call.Arguments)
		case ast.ExprTuple:
			for _, el := range e.Tuple {
				visit(el)
			}
		case ast.ExprNewArray:
			visit(e.NewArray.Size)
		case ast.ExprArrayUpdate:
			visit(e.ArrayUpdate.Array)
			visit(e.ArrayUpdate.Index)
			visit(e.ArrayUpdate.Value)
		case ast.ExprBinary:
			visit(e.Binary.Left)
			visit(e.Binary.Right)
		case ast.ExprUnaryNot:
			visit(e.Unary)
		case ast.ExprAdjoint:
			visit(e.Adjoint)
		case ast.ExprControlled:
			visit(e.Controlled)
		case ast.ExprConditional:
			visit(e.Conditional.Condition)
			visit(e.Conditional.Then)
			visit(e.Conditional.Else)
		case ast.ExprPartialApply:
			visit(e.PartialApply.Captured)
		}
	}

	visit(body)

	out := make([]ast.Symbol, 0, len(order))

	for _, name := range order {
		if t, ok := known.Lookup(name); ok {
			out = append(out, ast.Symbol{Name: name, Type: t})
		}
	}

	return out
}

// capturesQubit reports whether any captured variable's type contains a
// Qubit. Lifting such a lambda to a top-level callable would change the
// aliasing of runtime-allocated qubits across an independently-scheduled
// specialisation, so the lifter refuses rather than risk changing behaviour.
func capturesQubit(vars []ast.Symbol) bool {
	for _, v := range vars {
		if typeContainsQubit(v.Type) {
			return true
		}
	}

	return false
}

func typeContainsQubit(t ast.ResolvedType) bool {
	switch t.Kind {
	case ast.TypeQubit:
		return true
	case ast.TypeArray:
		return t.Element != nil && typeContainsQubit(*t.Element)
	case ast.TypeTuple:
		for _, e := range t.Tuple {
			if typeContainsQubit(e) {
				return true
			}
		}

		return false
	default:
		return false
	}
}
