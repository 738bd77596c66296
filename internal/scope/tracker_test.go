package scope_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/orizon-lang/capcore/internal/ast"
	"github.com/orizon-lang/capcore/internal/scope"
)

func sym(name string) ast.Symbol {
	return ast.Symbol{Name: name, Type: ast.ResolvedType{Kind: ast.TypeInt}}
}

func TestTrackerPushPopRestoresPriorState(t *testing.T) {
	tr := scope.NewTracker()

	outer := &ast.Scope{KnownSymbols: []ast.Symbol{sym("a")}}
	tr.PushScope(outer)
	require.True(t, tr.IsKnown("a"))

	inner := &ast.Scope{KnownSymbols: []ast.Symbol{sym("b")}}
	tr.PushScope(inner)
	require.True(t, tr.IsKnown("a"))
	require.True(t, tr.IsKnown("b"))

	tr.PopScope()
	require.True(t, tr.IsKnown("a"))
	require.False(t, tr.IsKnown("b"))

	tr.PopScope()
	require.False(t, tr.IsKnown("a"))
}

func TestTrackerExtendAfterStatementOnlyVisibleToLaterStatements(t *testing.T) {
	tr := scope.NewTracker()
	tr.PushScope(&ast.Scope{})

	require.False(t, tr.IsKnown("x"))

	decl := &ast.Statement{
		Kind:      ast.StmtLocalDeclaration,
		LocalDecl: &ast.LocalDeclaration{Pattern: ast.NewSymbolPattern("x", ast.ResolvedType{Kind: ast.TypeInt})},
	}

	// Simulates the lifter: check known-ness before extending (the
	// declaration's own value expression must not see its own binding).
	require.False(t, tr.IsKnown("x"))

	tr.ExtendAfterStatement(decl)
	require.True(t, tr.IsKnown("x"))
}

func TestTrackerExtendAfterStatementDiscardedOnPop(t *testing.T) {
	tr := scope.NewTracker()
	tr.PushScope(&ast.Scope{})

	decl := &ast.Statement{
		Kind:      ast.StmtLocalDeclaration,
		LocalDecl: &ast.LocalDeclaration{Pattern: ast.NewSymbolPattern("x", ast.ResolvedType{Kind: ast.TypeInt})},
	}
	tr.ExtendAfterStatement(decl)
	require.True(t, tr.IsKnown("x"))

	tr.PopScope()
	require.False(t, tr.IsKnown("x"))
}

func TestTrackerLookupResolvesToInnermostShadowingBinding(t *testing.T) {
	tr := scope.NewTracker()
	tr.PushScope(&ast.Scope{KnownSymbols: []ast.Symbol{{Name: "x", Type: ast.ResolvedType{Kind: ast.TypeInt}}}})
	tr.PushScope(&ast.Scope{KnownSymbols: []ast.Symbol{{Name: "x", Type: ast.ResolvedType{Kind: ast.TypeBool}}}})

	ty, ok := tr.Lookup("x")
	require.True(t, ok)
	require.Equal(t, ast.TypeBool, ty.Kind)
}

func TestTrackerLookupUnknownName(t *testing.T) {
	tr := scope.NewTracker()
	_, ok := tr.Lookup("nope")
	require.False(t, ok)
}

func TestTrackerPopScopeOnEmptyStackIsNoop(t *testing.T) {
	tr := scope.NewTracker()
	require.NotPanics(t, func() { tr.PopScope() })
}

type fakeNames struct{ taken map[string]bool }

func (f fakeNames) Contains(name string) bool { return f.taken[name] }

func TestFreshCallableNamePrefersPreferredWhenAvailable(t *testing.T) {
	name := scope.FreshCallableName(fakeNames{taken: map[string]bool{}}, "__A_Lambda_0__", "__lambda_", "A#0")
	require.Equal(t, "__A_Lambda_0__", name)
}

func TestFreshCallableNameFallsBackDeterministicallyOnCollision(t *testing.T) {
	taken := map[string]bool{"__A_Lambda_0__": true}
	names := fakeNames{taken: taken}

	first := scope.FreshCallableName(names, "__A_Lambda_0__", "__lambda_", "A#0")
	require.NotEqual(t, "__A_Lambda_0__", first)

	second := scope.FreshCallableName(names, "__A_Lambda_0__", "__lambda_", "A#0")
	require.Equal(t, first, second, "same seed key must produce the same fallback name")
}

func TestFreshCallableNameRetriesPastMultipleCollisions(t *testing.T) {
	names := fakeNames{taken: map[string]bool{"__A_Lambda_0__": true}}

	got := scope.FreshCallableName(names, "__A_Lambda_0__", "__lambda_", "seed")
	require.False(t, names.Contains(got))
}
