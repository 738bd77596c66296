package lift_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/orizon-lang/capcore/internal/ast"
	"github.com/orizon-lang/capcore/internal/diagnostic"
	"github.com/orizon-lang/capcore/internal/lift"
)

func intType() ast.ResolvedType  { return ast.ResolvedType{Kind: ast.TypeInt} }
func qubitType() ast.ResolvedType { return ast.ResolvedType{Kind: ast.TypeQubit} }

func fnType(in, out ast.ResolvedType) ast.ResolvedType {
	return ast.NewFunctionType(ast.Function, in, out, ast.CallableInformation{})
}

func functionCallable(name string, knownSymbols []ast.Symbol, stmts []*ast.Statement) *ast.Callable {
	return &ast.Callable{
		Name:      ast.QualifiedName(name),
		Kind:      ast.Function,
		Signature: &ast.Signature{Input: ast.Unit, Output: ast.Unit},
		Specialisations: []*ast.Specialisation{{
			Kind: ast.SpecBody,
			Impl: ast.Provided,
			Scope: &ast.Scope{
				KnownSymbols: knownSymbols,
				Statements:   stmts,
			},
		}},
		DeclaredInSource: true,
	}
}

func programOf(callables ...*ast.Callable) *ast.Program {
	elements := make([]ast.Element, len(callables))
	for i, c := range callables {
		elements[i] = c
	}

	return &ast.Program{Namespaces: []*ast.Namespace{{Name: "NS", Elements: elements}}}
}

func findGenerated(p *ast.Program, short string) *ast.Callable {
	for _, ns := range p.Namespaces {
		for _, c := range ns.Callables() {
			if c.Name.Short() == short {
				return c
			}
		}
	}

	return nil
}

func TestLiftLambdasSimpleNoCaptureProducesBareCallableRef(t *testing.T) {
	lam := &ast.LambdaExpr{
		Kind:      ast.Function,
		Parameter: ast.NewSymbolPattern("x", ast.ResolvedType{}),
		Body:      ast.Ident("x", intType(), ast.TypedExpression{}.Range),
	}
	lamType := fnType(intType(), intType())
	lamExpr := ast.LambdaOf(lam, lamType, ast.TypedExpression{}.Range)

	decl := &ast.Statement{
		Kind: ast.StmtLocalDeclaration,
		LocalDecl: &ast.LocalDeclaration{
			Pattern: ast.NewSymbolPattern("f", lamType),
			Value:   lamExpr,
		},
	}

	a := functionCallable("NS.A", nil, []*ast.Statement{decl})
	p := programOf(a)

	out, diags := lift.LiftLambdas(p)
	require.Equal(t, 0, diags.Len())

	gotDecl := out.Namespaces[0].Callables()[0].Specialisations[0].Scope.Statements[0]
	require.Equal(t, ast.ExprCallableRef, gotDecl.LocalDecl.Value.Kind)

	generated := findGenerated(out, gotDecl.LocalDecl.Value.CallableRef.Short())
	require.NotNil(t, generated)
	require.Equal(t, ast.Function, generated.Kind)
	require.Equal(t, 1, generated.ArgumentPattern.Arity())
}

func TestLiftLambdasWithCaptureProducesPartialApply(t *testing.T) {
	lam := &ast.LambdaExpr{
		Kind:      ast.Function,
		Parameter: ast.NewSymbolPattern("z", ast.ResolvedType{}),
		Body: &ast.TypedExpression{
			Kind: ast.ExprBinary,
			Type: intType(),
			Binary: &ast.BinaryExpr{
				Op:    ast.OpAdd,
				Left:  ast.Ident("z", intType(), ast.TypedExpression{}.Range),
				Right: ast.Ident("y", intType(), ast.TypedExpression{}.Range),
			},
		},
	}
	lamType := fnType(intType(), intType())
	lamExpr := ast.LambdaOf(lam, lamType, ast.TypedExpression{}.Range)

	decl := &ast.Statement{
		Kind: ast.StmtLocalDeclaration,
		LocalDecl: &ast.LocalDeclaration{
			Pattern: ast.NewSymbolPattern("f", lamType),
			Value:   lamExpr,
		},
	}

	b := functionCallable("NS.B", []ast.Symbol{{Name: "y", Type: intType()}}, []*ast.Statement{decl})
	p := programOf(b)

	out, diags := lift.LiftLambdas(p)
	require.Equal(t, 0, diags.Len())

	gotDecl := out.Namespaces[0].Callables()[0].Specialisations[0].Scope.Statements[0]
	require.Equal(t, ast.ExprPartialApply, gotDecl.LocalDecl.Value.Kind)
	require.Equal(t, lamType, gotDecl.LocalDecl.Value.Type, "the replacement must keep the lambda's original resolved type")

	captured := gotDecl.LocalDecl.Value.PartialApply.Captured
	require.Len(t, captured.Tuple, 1)
	require.Equal(t, "y", captured.Tuple[0].Identifier)

	generated := findGenerated(out, gotDecl.LocalDecl.Value.PartialApply.Callee.Short())
	require.NotNil(t, generated)
	require.Equal(t, 2, generated.ArgumentPattern.Arity(), "captured tuple (y) plus the lambda's own parameter (z)")
}

func TestLiftLambdasUnitParameterGetsASyntheticSymbol(t *testing.T) {
	lam := &ast.LambdaExpr{
		Kind:      ast.Function,
		Parameter: ast.NewTuplePattern(),
		Body:      &ast.TypedExpression{Kind: ast.ExprLiteral, Type: intType(), Literal: &ast.Literal{Kind: ast.LiteralInt, Text: "1"}},
	}
	lamType := fnType(ast.Unit, intType())
	lamExpr := ast.LambdaOf(lam, lamType, ast.TypedExpression{}.Range)

	decl := &ast.Statement{
		Kind: ast.StmtLocalDeclaration,
		LocalDecl: &ast.LocalDeclaration{
			Pattern: ast.NewSymbolPattern("f", lamType),
			Value:   lamExpr,
		},
	}

	c := functionCallable("NS.C", nil, []*ast.Statement{decl})
	p := programOf(c)

	out, diags := lift.LiftLambdas(p)
	require.Equal(t, 0, diags.Len())

	gotDecl := out.Namespaces[0].Callables()[0].Specialisations[0].Scope.Statements[0]
	require.Equal(t, ast.ExprCallableRef, gotDecl.LocalDecl.Value.Kind)

	generated := findGenerated(out, gotDecl.LocalDecl.Value.CallableRef.Short())
	require.NotNil(t, generated)
	require.Equal(t, 1, generated.ArgumentPattern.Arity())
	require.Equal(t, "__lambdaUnitParam__", generated.ArgumentPattern.Symbols()[0].Name)
}

func TestLiftLambdasRefusesToCaptureAQubit(t *testing.T) {
	lam := &ast.LambdaExpr{
		Kind:      ast.Function,
		Parameter: ast.NewSymbolPattern("z", ast.ResolvedType{}),
		Body:      ast.Ident("q", qubitType(), ast.TypedExpression{}.Range),
	}
	lamType := fnType(intType(), qubitType())
	lamExpr := ast.LambdaOf(lam, lamType, ast.TypedExpression{}.Range)

	decl := &ast.Statement{
		Kind: ast.StmtLocalDeclaration,
		LocalDecl: &ast.LocalDeclaration{
			Pattern: ast.NewSymbolPattern("f", lamType),
			Value:   lamExpr,
		},
	}

	d := functionCallable("NS.D", []ast.Symbol{{Name: "q", Type: qubitType()}}, []*ast.Statement{decl})
	p := programOf(d)

	out, diags := lift.LiftLambdas(p)
	require.Equal(t, 0, diags.Len())

	gotDecl := out.Namespaces[0].Callables()[0].Specialisations[0].Scope.Statements[0]
	require.Equal(t, ast.ExprLambda, gotDecl.LocalDecl.Value.Kind, "a lambda capturing a qubit is left exactly as it stood")
}

func TestLiftLambdasIsIdempotent(t *testing.T) {
	lam := &ast.LambdaExpr{
		Kind:      ast.Function,
		Parameter: ast.NewSymbolPattern("x", ast.ResolvedType{}),
		Body:      ast.Ident("x", intType(), ast.TypedExpression{}.Range),
	}
	lamType := fnType(intType(), intType())
	lamExpr := ast.LambdaOf(lam, lamType, ast.TypedExpression{}.Range)

	decl := &ast.Statement{
		Kind: ast.StmtLocalDeclaration,
		LocalDecl: &ast.LocalDeclaration{
			Pattern: ast.NewSymbolPattern("f", lamType),
			Value:   lamExpr,
		},
	}

	a := functionCallable("NS.A", nil, []*ast.Statement{decl})
	p := programOf(a)

	once, diags1 := lift.LiftLambdas(p)
	require.Equal(t, 0, diags1.Len())

	twice, diags2 := lift.LiftLambdas(once)
	require.Equal(t, 0, diags2.Len())
	require.Same(t, once, twice, "a program with no remaining lambdas must be returned unchanged")
}

func TestLiftLambdasFatalOnParameterShapeMismatch(t *testing.T) {
	lam := &ast.LambdaExpr{
		Kind:      ast.Function,
		Parameter: ast.NewTuplePattern(ast.NewSymbolPattern("a", ast.ResolvedType{}), ast.NewSymbolPattern("b", ast.ResolvedType{})),
		Body:      &ast.TypedExpression{Kind: ast.ExprLiteral, Type: intType(), Literal: &ast.Literal{Kind: ast.LiteralInt, Text: "1"}},
	}
	// The lambda's resolved input type is plain Int, which cannot match a
	// two-element tuple parameter pattern.
	lamType := fnType(intType(), intType())
	lamExpr := ast.LambdaOf(lam, lamType, ast.TypedExpression{}.Range)

	decl := &ast.Statement{
		Kind: ast.StmtLocalDeclaration,
		LocalDecl: &ast.LocalDeclaration{
			Pattern: ast.NewSymbolPattern("f", lamType),
			Value:   lamExpr,
		},
	}

	a := functionCallable("NS.A", nil, []*ast.Statement{decl})
	p := programOf(a)

	out, diags := lift.LiftLambdas(p)

	require.Same(t, p, out, "a fatal shape error returns the original, unmodified program")
	require.Equal(t, 1, diags.Len())
	require.Equal(t, diagnostic.CodeLambdaShape, diags.All()[0].Code)
	require.Equal(t, diagnostic.Error, diags.All()[0].Severity)
}
