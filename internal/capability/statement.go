package capability

import (
	"github.com/orizon-lang/capcore/internal/ast"
	"github.com/orizon-lang/capcore/internal/diagnostic"
)

// StatementAnalyzer flags statement kinds that exceed Base. In this core's policy, arbitrary while/repeat-until loops
// inside an Operation body demand FullComputation: a for-loop's bound is
// fixed by its sequence at entry, but a while/repeat-until's continuation
// depends on runtime state, which needs unrestricted classical control
// flow on the target. Function bodies are unconstrained here since they
// run entirely classically regardless of the runtime target.
func StatementAnalyzer(c *ast.Callable) []Pattern {
	if c.Kind != ast.Operation {
		return nil
	}

	var out []Pattern

	for _, sp := range c.Specialisations {
		if sp.Scope == nil {
			continue
		}

		scanLoopsInScope(sp.Scope, &out)
	}

	return out
}

func scanLoopsInScope(sc *ast.Scope, out *[]Pattern) {
	for _, st := range sc.Statements {
		scanLoopsInStatement(st, out)
	}
}

func scanLoopsInStatement(st *ast.Statement, out *[]Pattern) {
	switch st.Kind {
	case ast.StmtWhile:
		*out = append(*out, Pattern{Capability: FullComputation, Code: diagnostic.CodeUnsupportedLoop, Range: st.Range})

		if st.While.Body != nil {
			scanLoopsInScope(st.While.Body, out)
		}
	case ast.StmtRepeatUntil:
		*out = append(*out, Pattern{Capability: FullComputation, Code: diagnostic.CodeUnsupportedLoop, Range: st.Range})

		if st.RepeatUntil.Body != nil {
			scanLoopsInScope(st.RepeatUntil.Body, out)
		}

		if st.RepeatUntil.Fixup != nil {
			scanLoopsInScope(st.RepeatUntil.Fixup, out)
		}
	case ast.StmtFor:
		if st.For.Body != nil {
			scanLoopsInScope(st.For.Body, out)
		}
	case ast.StmtConditional:
		for _, b := range st.Conditional.Branches {
			if b.Body != nil {
				scanLoopsInScope(b.Body, out)
			}
		}

		if st.Conditional.Else != nil {
			scanLoopsInScope(st.Conditional.Else, out)
		}
	case ast.StmtQubitAllocation:
		if st.QubitAlloc.Body != nil {
			scanLoopsInScope(st.QubitAlloc.Body, out)
		}
	}
}
