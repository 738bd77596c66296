package capability

import (
	"github.com/orizon-lang/capcore/internal/ast"
	"github.com/orizon-lang/capcore/internal/diagnostic"
	"github.com/orizon-lang/capcore/internal/position"
)

// Pattern is a capability demand flagged at one syntactic site: the capability the site demands, plus enough to build
// a Diagnostic on demand rather than eagerly, so a Pattern the solver never
// needs to report costs nothing beyond its Capability and Range.
type Pattern struct {
	Capability RuntimeCapability
	Code       diagnostic.Code
	Arguments  []string
	Range      position.Span
}

// Diagnose reports a Diagnostic iff p's capability exceeds target. This
// core never supplies an externally-chosen target, so the only caller is
// the Capability Solver's explanatory-diagnostic path, which always
// diagnoses against Base — the weakest possible target, which simply asks
// "does this site demand anything at all beyond the default."
func (p Pattern) Diagnose(target RuntimeCapability) (diagnostic.Diagnostic, bool) {
	if !p.Capability.Exceeds(target) {
		return diagnostic.Diagnostic{}, false
	}

	return diagnostic.New(diagnostic.Error, p.Code).Args(p.Arguments...).At(p.Range).Build(), true
}

// CallPattern extends Pattern with the callee and type-argument resolution
// of one call site. The call graph builder
// produces one CallPattern per edge it records (a call with a static
// callee, a partial application, or a bare callable reference), with
// Capability left at
// Base — calling something, by itself, demands nothing; CallPattern exists
// to give the solver a handle (callee name, call-site range) for emitting
// explanatory diagnostics about what the callee itself demands.
type CallPattern struct {
	Pattern
	Callee   ast.QualifiedName
	TypeArgs []ast.ResolvedType
}
