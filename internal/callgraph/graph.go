// Package callgraph builds the directed graph of "mentions" edges between
// callables a Program's bodies establish and enumerates its cycles.
package callgraph

import (
	"github.com/orizon-lang/capcore/internal/ast"
	"github.com/orizon-lang/capcore/internal/capability"
	"github.com/orizon-lang/capcore/internal/position"
)

// Node identifies a callable by its fully-qualified name.
type Node = ast.QualifiedName

// Edge is one direct dependency of a caller on a callee, carrying the
// CallPattern the solver uses for explanatory-diagnostic reporting.
type Edge struct {
	Callee  Node
	Pattern capability.CallPattern
}

// Graph maps each node present in the Program to its direct dependencies,
// in the deterministic order their mentions appear in source.
type Graph struct {
	order []Node
	nodes map[Node]bool
	deps  map[Node][]Edge
}

// Build walks the body of every callable in the Program, source-declared
// and referenced-library alike, and records an edge
// for every statically-named callable it mentions: a direct call, a
// partial application, or a bare callable reference. A call through a non-static callee
// expression — e.g. invoking a local variable holding a callable value —
// contributes no edge, matching ast.CallExpr's own documented limitation;
// the Lambda Lifter replaces every lambda with a statically-named
// reference before this graph is built, so in practice this only misses
// genuinely higher-order call chains threaded through local bindings.
func Build(p *ast.Program) *Graph {
	g := &Graph{nodes: map[Node]bool{}, deps: map[Node][]Edge{}}

	for _, ns := range p.Namespaces {
		for _, c := range ns.Callables() {
			g.addNode(c.Name)

			for _, sp := range c.Specialisations {
				if sp.Scope == nil {
					continue
				}

				scanScope(c.Name, sp.Scope, g)
			}
		}
	}

	return g
}

func (g *Graph) addNode(n Node) {
	if !g.nodes[n] {
		g.nodes[n] = true
		g.order = append(g.order, n)
	}
}

func (g *Graph) addEdge(caller, callee Node, typeArgs []ast.ResolvedType, span position.Span) {
	g.addNode(callee)

	pattern := capability.CallPattern{
		Pattern: capability.Pattern{Capability: capability.Base, Range: span},
		Callee:  callee,
		TypeArgs: typeArgs,
	}

	g.deps[caller] = append(g.deps[caller], Edge{Callee: callee, Pattern: pattern})
}

// Nodes returns every node in the graph, in first-seen (declaration) order.
func (g *Graph) Nodes() []Node {
	out := make([]Node, len(g.order))
	copy(out, g.order)

	return out
}

// DirectDependencies is CallGraph.getDirectDependencies(node):
// node's direct-dependency edges, in source order.
func (g *Graph) DirectDependencies(n Node) []Edge {
	return g.deps[n]
}

// Contains reports whether n was mentioned anywhere in the built Program
// (as a caller, a callee, or both).
func (g *Graph) Contains(n Node) bool {
	return g.nodes[n]
}
