package lift

import "github.com/orizon-lang/capcore/internal/ast"

// namespaceNames tracks which short names are already taken in one
// namespace, both by its pre-existing elements and by callables generated
// earlier in the same lifting pass, so scope.FreshCallableName never hands
// out a name that collides with either.
type namespaceNames struct {
	existing  map[string]bool
	generated map[string]bool
}

func newNamespaceNames(ns *ast.Namespace) *namespaceNames {
	existing := make(map[string]bool, len(ns.Elements))

	for _, e := range ns.Elements {
		switch v := e.(type) {
		case *ast.Callable:
			existing[v.Name.Short()] = true
		case *ast.TypeElement:
			existing[v.Name] = true
		}
	}

	return &namespaceNames{existing: existing, generated: map[string]bool{}}
}

// Contains implements scope.NamespaceNames.
func (n *namespaceNames) Contains(name string) bool {
	return n.existing[name] || n.generated[name]
}

func (n *namespaceNames) reserve(name string) {
	n.generated[name] = true
}
