package capability

import (
	"github.com/orizon-lang/capcore/internal/ast"
	"github.com/orizon-lang/capcore/internal/diagnostic"
)

// TypeAnalyzer flags uses of types that require higher capability: BigInt and Double, wherever they appear in a callable's
// signature or in a local binding's type, demand FullComputation, since
// arbitrary-precision integer and floating-point arithmetic are classical
// runtime features rather than intrinsic quantum ones.
func TypeAnalyzer(c *ast.Callable) []Pattern {
	var out []Pattern

	if c.Signature != nil && (typeRequiresFullComputation(c.Signature.Input) || typeRequiresFullComputation(c.Signature.Output)) {
		out = append(out, Pattern{Capability: FullComputation, Code: diagnostic.CodeUnsupportedType, Range: c.Range})
	}

	for _, sp := range c.Specialisations {
		if sp.Scope == nil {
			continue
		}

		scanTypesInScope(sp.Scope, &out)
	}

	return out
}

func typeRequiresFullComputation(t ast.ResolvedType) bool {
	switch t.Kind {
	case ast.TypeBigInt, ast.TypeDouble:
		return true
	case ast.TypeArray:
		return t.Element != nil && typeRequiresFullComputation(*t.Element)
	case ast.TypeTuple:
		for _, e := range t.Tuple {
			if typeRequiresFullComputation(e) {
				return true
			}
		}

		return false
	case ast.TypeFunction, ast.TypeOperation:
		if t.Function == nil {
			return false
		}

		return typeRequiresFullComputation(*t.Function.Input) || typeRequiresFullComputation(*t.Function.Output)
	default:
		return false
	}
}

func scanTypesInScope(sc *ast.Scope, out *[]Pattern) {
	for _, s := range sc.KnownSymbols {
		if typeRequiresFullComputation(s.Type) {
			*out = append(*out, Pattern{Capability: FullComputation, Code: diagnostic.CodeUnsupportedType, Range: sc.Range})
		}
	}

	for _, st := range sc.Statements {
		scanTypesInStatement(st, out)
	}
}

func scanTypesInStatement(st *ast.Statement, out *[]Pattern) {
	switch st.Kind {
	case ast.StmtLocalDeclaration:
		for _, s := range st.LocalDecl.Pattern.Symbols() {
			if typeRequiresFullComputation(s.Type) {
				*out = append(*out, Pattern{Capability: FullComputation, Code: diagnostic.CodeUnsupportedType, Range: st.Range})
			}
		}
	case ast.StmtConditional:
		for _, b := range st.Conditional.Branches {
			if b.Body != nil {
				scanTypesInScope(b.Body, out)
			}
		}

		if st.Conditional.Else != nil {
			scanTypesInScope(st.Conditional.Else, out)
		}
	case ast.StmtFor:
		if st.For.Body != nil {
			scanTypesInScope(st.For.Body, out)
		}
	case ast.StmtWhile:
		if st.While.Body != nil {
			scanTypesInScope(st.While.Body, out)
		}
	case ast.StmtRepeatUntil:
		if st.RepeatUntil.Body != nil {
			scanTypesInScope(st.RepeatUntil.Body, out)
		}

		if st.RepeatUntil.Fixup != nil {
			scanTypesInScope(st.RepeatUntil.Fixup, out)
		}
	case ast.StmtQubitAllocation:
		if st.QubitAlloc.Body != nil {
			scanTypesInScope(st.QubitAlloc.Body, out)
		}
	}
}
