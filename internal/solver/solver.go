// Package solver implements the Capability Solver: it
// computes, per source-declared callable, the minimum RuntimeCapability its
// body and its transitive dependencies require, and attaches a
// RequiresCapability attribute to every such callable that lacks one.
package solver

import (
	"fmt"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/orizon-lang/capcore/internal/ast"
	"github.com/orizon-lang/capcore/internal/callgraph"
	"github.com/orizon-lang/capcore/internal/capability"
	"github.com/orizon-lang/capcore/internal/diagnostic"
	"github.com/orizon-lang/capcore/internal/host"
	"github.com/orizon-lang/capcore/internal/position"
)

type solver struct {
	resolutions host.Resolutions
	graph       *callgraph.Graph
	initial     map[callgraph.Node]capability.RuntimeCapability
	cache       *lru.Cache[callgraph.Node, capability.RuntimeCapability]
	diags       *diagnostic.Bag
}

// InferCapabilities computes the RequiresCapability attribute every
// source-declared callable lacking one should carry, and returns a Program
// with those attributes attached. It never
// modifies a referenced-library callable, and it is the identity on a
// Program where every source-declared callable already carries an explicit
// capability attribute.
func InferCapabilities(p *ast.Program) (*ast.Program, *diagnostic.Bag) {
	resolutions := host.GlobalCallableResolutions(p)
	graph := callgraph.Build(p)
	diags := diagnostic.NewBag()

	size := len(resolutions) + 1

	cache, err := lru.New[callgraph.Node, capability.RuntimeCapability](size)
	if err != nil {
		// size is always >= 1; lru.New only rejects a non-positive size.
		panic(err)
	}

	s := &solver{resolutions: resolutions, graph: graph, cache: cache, diags: diags}
	s.precomputeInitial()

	updated := make(map[ast.QualifiedName]*ast.Callable)

	for _, ns := range p.Namespaces {
		for _, c := range ns.Callables() {
			if !c.DeclaredInSource {
				continue
			}

			if _, explicit := host.TryGetRequiredCapability(c); explicit {
				continue
			}

			cap := s.finalCap(c.Name, map[callgraph.Node]bool{})

			nc := *c
			nc.Attributes = append(append([]ast.Attribute{}, c.Attributes...), ast.NewRequiresCapability(cap.String()))
			updated[c.Name] = &nc
		}
	}

	if len(updated) == 0 {
		return p, diags
	}

	return rewriteProgram(p, updated), diags
}

func (s *solver) precomputeInitial() {
	s.initial = make(map[callgraph.Node]capability.RuntimeCapability, len(s.resolutions))

	for name, c := range s.resolutions {
		s.initial[name] = capability.SourceCapability(c)
	}

	for _, cycle := range s.graph.Cycles() {
		if !cycleHasSourceMember(cycle, s.resolutions) {
			continue
		}

		cycCap := capability.Base
		for _, n := range cycle {
			cycCap = capability.Combine(cycCap, s.initial[n])
		}

		for _, n := range cycle {
			s.initial[n] = cycCap
		}
	}
}

func cycleHasSourceMember(cycle []callgraph.Node, resolutions host.Resolutions) bool {
	for _, n := range cycle {
		if c, ok := resolutions[n]; ok && c.DeclaredInSource {
			return true
		}
	}

	return false
}

// finalCap implements the dependent-capability recursion.
// visited tracks ancestors on the current DFS path only (pushed on entry,
// popped on exit) — not a global "already processed" set — while s.cache
// is the true run-lifetime memoisation, consulted before visited so a
// diamond dependency is computed once regardless of how many paths reach
// it.
func (s *solver) finalCap(name callgraph.Node, visited map[callgraph.Node]bool) capability.RuntimeCapability {
	if cached, ok := s.cache.Get(name); ok {
		return cached
	}

	if visited[name] {
		// Reached an ancestor on this path: contributes nothing here, its
		// share is already folded into initial() by the cycle pre-pass.
		return capability.Base
	}

	c, ok := s.resolutions[name]
	if !ok {
		s.diags.Add(diagnostic.New(diagnostic.Info, diagnostic.CodeUnresolvedCallee).Arg(string(name)).Build())
		s.cache.Add(name, capability.Base)

		return capability.Base
	}

	if cap, explicit := host.TryGetRequiredCapability(c); explicit {
		s.cache.Add(name, cap)

		return cap
	}

	if !c.DeclaredInSource {
		s.cache.Add(name, capability.Base)

		return capability.Base
	}

	visited[name] = true

	result := s.initial[name]

	for _, e := range s.graph.DirectDependencies(name) {
		depCap := s.finalCap(e.Callee, visited)
		result = capability.Combine(result, depCap)
		s.explainDependency(c, e)
	}

	delete(visited, name)
	s.cache.Add(name, result)

	return result
}

// explainDependency implements the explanatory-diagnostics mechanism.
// This core's public interface takes no external target to check against
// (no capability checking), so the "target" the dependency
// is diagnosed against is Base, the weakest possible one: this surfaces
// every pattern the dependency's own declaration flags, regardless of what
// capability the dependent caller ends up requiring.
func (s *solver) explainDependency(caller *ast.Callable, e callgraph.Edge) {
	dep, ok := s.resolutions[e.Callee]
	if !ok || dep.DeclaredInSource {
		return
	}

	for _, p := range capability.AnalyseCallable(dep) {
		d, fires := p.Diagnose(capability.Base)
		if !fires {
			continue
		}

		warnCode, ok := diagnostic.ToExplanatoryWarning(d.Code)
		if !ok {
			continue
		}

		args := append([]string{string(e.Callee), d.Range.Start.Filename, formatPosition(d.Range.Start)}, d.Arguments...)
		s.diags.Add(diagnostic.New(diagnostic.Warning, warnCode).Args(args...).At(e.Pattern.Range).Build())
	}

	_ = caller // the caller's own identity is implicit in e.Pattern.Range; kept for signature clarity
}

func formatPosition(p position.Position) string {
	return fmt.Sprintf("%d:%d", p.WireLine(), p.WireColumn())
}

func rewriteProgram(p *ast.Program, updated map[ast.QualifiedName]*ast.Callable) *ast.Program {
	namespaces := make([]*ast.Namespace, len(p.Namespaces))

	for i, ns := range p.Namespaces {
		elements := make([]ast.Element, len(ns.Elements))
		changed := false

		for j, e := range ns.Elements {
			if c, ok := e.(*ast.Callable); ok {
				if nc, ok2 := updated[c.Name]; ok2 {
					elements[j] = nc
					changed = true

					continue
				}
			}

			elements[j] = e
		}

		if !changed {
			namespaces[i] = ns

			continue
		}

		out := *ns
		out.Elements = elements
		namespaces[i] = &out
	}

	return &ast.Program{Namespaces: namespaces}
}
