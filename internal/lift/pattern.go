package lift

import (
	"github.com/orizon-lang/capcore/internal/ast"
	"github.com/orizon-lang/capcore/internal/diagnostic"
	"github.com/orizon-lang/capcore/internal/position"
)

// shapeError is the fatal LambdaShape condition: the
// lambda's parameter symbol tree does not match the shape of its resolved
// input type, an internal invariant violation rather than an ordinary lift
// refusal.
type shapeError struct {
	expected, got ast.ResolvedType
	span          position.Span
}

func (e *shapeError) Error() string {
	return "lambda parameter pattern does not match its resolved input type"
}

func (e *shapeError) toDiagnostic() *diagnostic.Diagnostic {
	d := diagnostic.New(diagnostic.Error, diagnostic.CodeLambdaShape).
		Args(e.expected.String(), e.got.String()).
		At(e.span).
		Build()

	return &d
}

// matchParameterPattern computes the typed parameter pattern of a generated
// callable by matching a lambda's untyped parameter symbol tree against the
// input half of the lambda's resolved type:
//
//   - a bare symbol matches any type, and takes that type;
//   - an empty tuple matches only Unit (or an empty tuple type), and is
//     rewritten to a single synthetic Unit parameter;
//   - a non-empty tuple matches a tuple type of identical arity, recursively;
//   - anything else is a fatal shape mismatch.
func matchParameterPattern(pat *ast.SymbolPattern, t ast.ResolvedType, span position.Span) (*ast.SymbolPattern, error) {
	switch pat.Kind {
	case ast.PatternSymbol:
		return ast.NewSymbolPattern(pat.Name, t), nil

	case ast.PatternTuple:
		if len(pat.Elements) == 0 {
			if !t.IsUnitLike() {
				return nil, &shapeError{expected: t, got: ast.Unit, span: span}
			}

			return ast.NewSymbolPattern("__lambdaUnitParam__", ast.Unit), nil
		}

		if t.Kind != ast.TypeTuple || len(t.Tuple) != len(pat.Elements) {
			return nil, &shapeError{expected: t, got: placeholderShape(pat), span: span}
		}

		elems := make([]*ast.SymbolPattern, len(pat.Elements))

		for i, ep := range pat.Elements {
			m, err := matchParameterPattern(ep, t.Tuple[i], span)
			if err != nil {
				return nil, err
			}

			elems[i] = m
		}

		return ast.NewTuplePattern(elems...), nil

	default:
		return nil, &shapeError{expected: t, got: ast.Unit, span: span}
	}
}

// placeholderShape stands in for the type a bare untyped pattern "looks
// like", for the sole purpose of rendering a LambdaShape diagnostic's "got"
// argument when the pattern's arity, not any individual element, is what
// disagrees with t.
func placeholderShape(pat *ast.SymbolPattern) ast.ResolvedType {
	if pat.Kind == ast.PatternSymbol {
		return ast.Unit
	}

	elems := make([]ast.ResolvedType, len(pat.Elements))
	for i := range elems {
		elems[i] = ast.Unit
	}

	return ast.NewTupleType(elems...)
}

// patternType returns the resolved type shape a (now fully-typed) symbol
// pattern denotes.
func patternType(pat *ast.SymbolPattern) ast.ResolvedType {
	if pat.Kind == ast.PatternSymbol {
		return pat.Type
	}

	elems := make([]ast.ResolvedType, len(pat.Elements))
	for i, e := range pat.Elements {
		elems[i] = patternType(e)
	}

	return ast.NewTupleType(elems...)
}
