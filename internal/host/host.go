// Package host implements the small set of collaborator queries a real
// compiler host would otherwise expose (tryGetCallable, importedSpecializations,
// tryGetRequiredCapability, GlobalCallableResolutions). This core's public
// interface takes a single Program argument with no separate host object,
// so here every one of those queries is a pure function derived from the
// Program itself rather than an injected dependency — the Program already
// carries every namespace (source and referenced-library alike,
// distinguished by Callable.DeclaredInSource).
package host

import (
	"github.com/orizon-lang/capcore/internal/ast"
	"github.com/orizon-lang/capcore/internal/capability"
)

// LookupResult mirrors NamespaceManager.tryGetCallable's three outcomes.
type LookupResult int

const (
	NotFound LookupResult = iota
	Found
	Ambiguous
)

// Resolutions is GlobalCallableResolutions(namespaces): every callable in
// the program, keyed by fully-qualified name.
type Resolutions map[ast.QualifiedName]*ast.Callable

// GlobalCallableResolutions flattens every namespace's callables into a
// single lookup map.
func GlobalCallableResolutions(p *ast.Program) Resolutions {
	out := make(Resolutions)

	for _, ns := range p.Namespaces {
		for _, c := range ns.Callables() {
			out[c.Name] = c
		}
	}

	return out
}

// TryGetCallable is NamespaceManager.tryGetCallable: a qualified name
// resolves to at most one Callable in a well-formed Program, so Ambiguous
// never arises here, but the three-way result is kept to match the
// interface the solver is written against.
func (r Resolutions) TryGetCallable(name ast.QualifiedName) (*ast.Callable, LookupResult) {
	c, ok := r[name]
	if !ok {
		return nil, NotFound
	}

	return c, Found
}

// ImportedSpecializations is NamespaceManager.importedSpecializations: the
// (kind, impl) pairs of a referenced-library callable's specialisations.
func ImportedSpecializations(c *ast.Callable) []ast.Specialisation {
	out := make([]ast.Specialisation, len(c.Specialisations))
	for i, sp := range c.Specialisations {
		out[i] = ast.Specialisation{Kind: sp.Kind, Impl: sp.Impl}
	}

	return out
}

// TryGetRequiredCapability is SymbolResolution.tryGetRequiredCapability: the
// capability named by a callable's explicit RequiresCapability attribute,
// if it has one and it parses.
func TryGetRequiredCapability(c *ast.Callable) (capability.RuntimeCapability, bool) {
	attr, ok := c.Attribute(ast.RequiresCapabilityAttribute)
	if !ok || len(attr.Arguments) == 0 {
		return capability.Base, false
	}

	return capability.ParseRuntimeCapability(attr.Arguments[0])
}
