package capability_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/orizon-lang/capcore/internal/ast"
	"github.com/orizon-lang/capcore/internal/capability"
	"github.com/orizon-lang/capcore/internal/diagnostic"
)

func TestTypeAnalyzerFlagsBigIntInSignature(t *testing.T) {
	c := &ast.Callable{
		Name:             "NS.F",
		Kind:             ast.Function,
		Signature:        &ast.Signature{Input: ast.ResolvedType{Kind: ast.TypeBigInt}, Output: ast.Unit},
		DeclaredInSource: true,
	}

	patterns := capability.TypeAnalyzer(c)
	require.Len(t, patterns, 1)
	require.Equal(t, capability.FullComputation, patterns[0].Capability)
	require.Equal(t, diagnostic.CodeUnsupportedType, patterns[0].Code)
}

func TestTypeAnalyzerFlagsDoubleInOutput(t *testing.T) {
	c := &ast.Callable{
		Name:             "NS.F",
		Kind:             ast.Function,
		Signature:        &ast.Signature{Input: ast.Unit, Output: ast.ResolvedType{Kind: ast.TypeDouble}},
		DeclaredInSource: true,
	}

	require.Len(t, capability.TypeAnalyzer(c), 1)
}

func TestTypeAnalyzerIgnoresOrdinaryTypes(t *testing.T) {
	c := &ast.Callable{
		Name:             "NS.F",
		Kind:             ast.Function,
		Signature:        &ast.Signature{Input: intType(), Output: ast.ResolvedType{Kind: ast.TypeQubit}},
		DeclaredInSource: true,
	}

	require.Empty(t, capability.TypeAnalyzer(c))
}

func TestTypeAnalyzerFlagsBigIntNestedInArrayOrTuple(t *testing.T) {
	arrOfBigInt := ast.NewArrayType(ast.ResolvedType{Kind: ast.TypeBigInt})
	c1 := &ast.Callable{Name: "NS.F", Kind: ast.Function, Signature: &ast.Signature{Input: arrOfBigInt, Output: ast.Unit}, DeclaredInSource: true}
	require.Len(t, capability.TypeAnalyzer(c1), 1)

	tupleOfDouble := ast.NewTupleType(intType(), ast.ResolvedType{Kind: ast.TypeDouble})
	c2 := &ast.Callable{Name: "NS.G", Kind: ast.Function, Signature: &ast.Signature{Input: tupleOfDouble, Output: ast.Unit}, DeclaredInSource: true}
	require.Len(t, capability.TypeAnalyzer(c2), 1)
}

func TestTypeAnalyzerFlagsLocalBindingOfBigInt(t *testing.T) {
	c := callableWithBody(ast.Function, &ast.Scope{
		Statements: []*ast.Statement{{
			Kind: ast.StmtLocalDeclaration,
			LocalDecl: &ast.LocalDeclaration{
				Pattern: ast.NewSymbolPattern("n", ast.ResolvedType{Kind: ast.TypeBigInt}),
				Value:   &ast.TypedExpression{Kind: ast.ExprLiteral, Literal: &ast.Literal{Kind: ast.LiteralBigInt, Text: "1"}},
			},
		}},
	})

	patterns := capability.TypeAnalyzer(c)
	require.Len(t, patterns, 1)
	require.Equal(t, diagnostic.CodeUnsupportedType, patterns[0].Code)
}

func TestTypeAnalyzerFlagsKnownSymbolsOfAScope(t *testing.T) {
	c := callableWithBody(ast.Operation, &ast.Scope{
		KnownSymbols: []ast.Symbol{{Name: "x", Type: ast.ResolvedType{Kind: ast.TypeDouble}}},
	})

	patterns := capability.TypeAnalyzer(c)
	require.Len(t, patterns, 1)
}
