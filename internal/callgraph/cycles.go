package callgraph

// Cycles enumerates the call graph's cycles,
// using Tarjan's algorithm over the deterministic adjacency order Build
// recorded, so the result is reproducible across runs of the same Program.
func (g *Graph) Cycles() [][]Node {
	t := &tarjan{
		g:       g,
		indices: map[Node]int{},
		low:     map[Node]int{},
		onStack: map[Node]bool{},
	}

	for _, v := range g.order {
		if _, seen := t.indices[v]; !seen {
			t.strongconnect(v)
		}
	}

	var cycles [][]Node

	for _, comp := range t.sccs {
		if len(comp) >= 2 {
			cycles = append(cycles, comp)

			continue
		}

		v := comp[0]

		for _, e := range g.deps[v] {
			if e.Callee == v {
				cycles = append(cycles, comp)

				break
			}
		}
	}

	return cycles
}

type tarjan struct {
	g       *Graph
	index   int
	indices map[Node]int
	low     map[Node]int
	onStack map[Node]bool
	stack   []Node
	sccs    [][]Node
}

func (t *tarjan) strongconnect(v Node) {
	t.indices[v] = t.index
	t.low[v] = t.index
	t.index++
	t.stack = append(t.stack, v)
	t.onStack[v] = true

	for _, e := range t.g.deps[v] {
		w := e.Callee
		if !t.g.nodes[w] {
			continue
		}

		if _, seen := t.indices[w]; !seen {
			t.strongconnect(w)

			if t.low[w] < t.low[v] {
				t.low[v] = t.low[w]
			}
		} else if t.onStack[w] {
			if t.indices[w] < t.low[v] {
				t.low[v] = t.indices[w]
			}
		}
	}

	if t.low[v] != t.indices[v] {
		return
	}

	var component []Node

	for {
		n := len(t.stack) - 1
		w := t.stack[n]
		t.stack = t.stack[:n]
		t.onStack[w] = false
		component = append(component, w)

		if w == v {
			break
		}
	}

	t.sccs = append(t.sccs, component)
}
