package capcore_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	capcore "github.com/orizon-lang/capcore"
	"github.com/orizon-lang/capcore/internal/ast"
	"github.com/orizon-lang/capcore/internal/capability"
)

func bigIntType() ast.ResolvedType { return ast.ResolvedType{Kind: ast.TypeBigInt} }
func intType() ast.ResolvedType    { return ast.ResolvedType{Kind: ast.TypeInt} }

func fnType(in, out ast.ResolvedType) ast.ResolvedType {
	return ast.NewFunctionType(ast.Function, in, out, ast.CallableInformation{})
}

func TestCompileLiftsThenInfersCapabilityOnTheGeneratedCallable(t *testing.T) {
	lam := &ast.LambdaExpr{
		Kind:      ast.Function,
		Parameter: ast.NewSymbolPattern("x", ast.ResolvedType{}),
		Body:      &ast.TypedExpression{Kind: ast.ExprLiteral, Type: bigIntType(), Literal: &ast.Literal{Kind: ast.LiteralBigInt, Text: "1"}},
	}
	lamType := fnType(intType(), bigIntType())
	lamExpr := ast.LambdaOf(lam, lamType, ast.TypedExpression{}.Range)

	decl := &ast.Statement{
		Kind: ast.StmtLocalDeclaration,
		LocalDecl: &ast.LocalDeclaration{
			Pattern: ast.NewSymbolPattern("f", lamType),
			Value:   lamExpr,
		},
	}

	a := &ast.Callable{
		Name:      "NS.A",
		Kind:      ast.Function,
		Signature: &ast.Signature{Input: ast.Unit, Output: ast.Unit},
		Specialisations: []*ast.Specialisation{{
			Kind:  ast.SpecBody,
			Impl:  ast.Provided,
			Scope: &ast.Scope{Statements: []*ast.Statement{decl}},
		}},
		DeclaredInSource: true,
	}

	p := &capcore.Program{Namespaces: []*ast.Namespace{{Name: "NS", Elements: []ast.Element{a}}}}

	out, diags := capcore.Compile(p)
	for _, d := range diags {
		require.NotEqual(t, capcore.Error, d.Severity, "compilation must not produce a fatal diagnostic on valid input")
	}

	var generated *ast.Callable
	for _, ns := range out.Namespaces {
		for _, c := range ns.Callables() {
			if c.Name != "NS.A" {
				generated = c
			}
		}
	}
	require.NotNil(t, generated, "LiftLambdas must have produced a generated top-level callable")

	attr, ok := generated.Attribute(ast.RequiresCapabilityAttribute)
	require.True(t, ok, "InferCapabilities must run on the lifted program, covering the newly generated callable")

	cap, ok := capability.ParseRuntimeCapability(attr.Arguments[0])
	require.True(t, ok)
	require.Equal(t, capability.FullComputation, cap, "the lifted body's BigInt literal demands FullComputation")
}

func TestLiftLambdasExportedWrapperReturnsPlainDiagnosticSlice(t *testing.T) {
	a := &ast.Callable{
		Name:             "NS.A",
		Kind:             ast.Function,
		Signature:        &ast.Signature{Input: ast.Unit, Output: ast.Unit},
		Specialisations:  []*ast.Specialisation{{Kind: ast.SpecBody, Impl: ast.Provided, Scope: &ast.Scope{}}},
		DeclaredInSource: true,
	}
	p := &capcore.Program{Namespaces: []*ast.Namespace{{Name: "NS", Elements: []ast.Element{a}}}}

	out, diags := capcore.LiftLambdas(p)
	require.Empty(t, diags)
	require.Same(t, p, out)
}

func TestInferCapabilitiesExportedWrapper(t *testing.T) {
	a := &ast.Callable{
		Name:             "NS.A",
		Kind:             ast.Function,
		Signature:        &ast.Signature{Input: ast.Unit, Output: ast.Unit},
		Specialisations:  []*ast.Specialisation{{Kind: ast.SpecBody, Impl: ast.Provided, Scope: &ast.Scope{}}},
		DeclaredInSource: true,
	}
	p := &capcore.Program{Namespaces: []*ast.Namespace{{Name: "NS", Elements: []ast.Element{a}}}}

	out, diags := capcore.InferCapabilities(p)
	require.Empty(t, diags)

	got := out.Namespaces[0].Callables()[0]
	attr, ok := got.Attribute(ast.RequiresCapabilityAttribute)
	require.True(t, ok)
	require.Equal(t, "Base", attr.Arguments[0])
}
