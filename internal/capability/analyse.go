package capability

import "github.com/orizon-lang/capcore/internal/ast"

// AnalyseCallable runs the four Pattern Analysers against a callable's
// declaration, in a fixed order, and returns their combined Pattern
// sequence. The analysers are pure: the same
// Callable value always yields the same Patterns in the same order.
func AnalyseCallable(c *ast.Callable) []Pattern {
	var out []Pattern

	out = append(out, ResultAnalyzer(c)...)
	out = append(out, StatementAnalyzer(c)...)
	out = append(out, TypeAnalyzer(c)...)
	out = append(out, ArrayAnalyzer(c)...)

	return out
}

// SourceCapability is the join of every Pattern's capability the analysers
// produce for c; Base if none.
func SourceCapability(c *ast.Callable) RuntimeCapability {
	cap := Base

	for _, p := range AnalyseCallable(c) {
		cap = Combine(cap, p.Capability)
	}

	return cap
}
