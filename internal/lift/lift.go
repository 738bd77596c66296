// Package lift implements the Lambda Lifter: it rewrites
// every lambda expression in a Program into a call to (or bare reference to)
// a freshly generated top-level callable, closing over the enclosing
// callable's known variables the lambda's body actually references.
package lift

import (
	"errors"
	"fmt"

	"github.com/orizon-lang/capcore/internal/ast"
	"github.com/orizon-lang/capcore/internal/diagnostic"
	"github.com/orizon-lang/capcore/internal/position"
	"github.com/orizon-lang/capcore/internal/scope"
	"github.com/orizon-lang/capcore/internal/walker"
)

// errLiftRefused signals a non-fatal lift refusal: the
// lambda is left exactly as it stood, with no diagnostic. Only shapeError
// aborts the pass.
var errLiftRefused = errors.New("lift refused")

type liftState struct {
	tracker *scope.Tracker

	namespaceName string
	names         *namespaceNames
	ordinals      map[string]int
	generated     []*ast.Callable

	currentCallable *ast.Callable
}

// LiftLambdas rewrites every lambda expression in p into a reference to (or
// partial application of) a generated top-level callable. On success it
// returns the rewritten program and any diagnostics produced along the way.
// If lifting a lambda would violate the LambdaShape invariant, the pass
// aborts and returns the original, unmodified program together with a
// single fatal diagnostic.
func LiftLambdas(p *ast.Program) (*ast.Program, *diagnostic.Bag) {
	diags := diagnostic.NewBag()

	state := &liftState{tracker: scope.NewTracker()}

	w := walker.New[*liftState]()
	w.RequireTypePreservation = true
	w.OnNamespace = liftNamespace
	w.OnScope = liftScope
	w.OnStatement = liftStatement
	w.OnExpression = liftExpression

	out := w.WalkProgram(state, p)

	if err := w.Err(); err != nil {
		diags.Add(toFatalDiagnostic(err))
	}

	return out, diags
}

func toFatalDiagnostic(err error) diagnostic.Diagnostic {
	var se *shapeError
	if errors.As(err, &se) {
		return *se.toDiagnostic()
	}

	return diagnostic.New(diagnostic.Error, diagnostic.CodeUnknown).Args(err.Error()).Build()
}

func liftNamespace(w *walker.Walker[*liftState], state *liftState, ns *ast.Namespace) *ast.Namespace {
	prevNames, prevNS, prevGenerated, prevOrdinals := state.names, state.namespaceName, state.generated, state.ordinals

	state.names = newNamespaceNames(ns)
	state.namespaceName = ns.Name
	state.generated = nil
	state.ordinals = map[string]int{}

	elements := make([]ast.Element, 0, len(ns.Elements))
	changed := false

	for _, e := range ns.Elements {
		c, ok := e.(*ast.Callable)
		if !ok {
			elements = append(elements, e)

			continue
		}

		prevCallable := state.currentCallable
		state.currentCallable = c
		nc := w.VisitCallable(state, c)
		state.currentCallable = prevCallable

		if w.Err() != nil {
			return ns
		}

		if nc != c {
			changed = true
		}

		elements = append(elements, nc)
	}

	// Drain the namespace's generated-callables bucket, in generation order
	//, before restoring the caller's bookkeeping.
	for _, g := range state.generated {
		elements = append(elements, g)
		changed = true
	}

	result := ns
	if changed {
		out := *ns
		out.Elements = elements
		result = &out
	}

	state.names, state.namespaceName, state.generated, state.ordinals = prevNames, prevNS, prevGenerated, prevOrdinals

	return result
}

func liftScope(w *walker.Walker[*liftState], state *liftState, sc *ast.Scope) *ast.Scope {
	state.tracker.PushScope(sc)
	out := walker.DefaultScope[*liftState](w, state, sc)
	state.tracker.PopScope()

	return out
}

func liftStatement(w *walker.Walker[*liftState], state *liftState, st *ast.Statement) *ast.Statement {
	nst := walker.DefaultStatement[*liftState](w, state, st)
	if w.Err() != nil {
		return st
	}

	// Extend after recursing, so a `let`'s own value expression never sees
	// its own binding.
	state.tracker.ExtendAfterStatement(nst)

	return nst
}

func liftExpression(w *walker.Walker[*liftState], state *liftState, e *ast.TypedExpression) *ast.TypedExpression {
	// Lift innermost lambdas first: a lambda nested in another lambda's body
	// is already a plain callable reference by the time its enclosing lambda
	// is considered.
	ne := walker.DefaultExpression[*liftState](w, state, e)
	if w.Err() != nil {
		return e
	}

	if ne.Kind != ast.ExprLambda {
		return ne
	}

	replacement, generated, err := liftOneLambda(state, ne)
	if err != nil {
		var se *shapeError
		if errors.As(err, &se) {
			w.Fail(err)

			return e
		}

		// Non-fatal refusal: keep the (already inner-lifted) lambda as is.
		return ne
	}

	state.generated = append(state.generated, generated)

	return replacement
}

func liftOneLambda(state *liftState, e *ast.TypedExpression) (*ast.TypedExpression, *ast.Callable, error) {
	lam := e.Lambda
	inputType := *e.Type.Function.Input
	outputType := *e.Type.Function.Output

	matchedParam, err := matchParameterPattern(lam.Parameter, inputType, e.Range)
	if err != nil {
		return nil, nil, err
	}

	bound := make(map[string]bool)
	for _, s := range lam.Parameter.Symbols() {
		bound[s.Name] = true
	}

	freeVars := collectFreeVariables(lam.Body, bound, state.tracker)
	if capturesQubit(freeVars) {
		return nil, nil, errLiftRefused
	}

	enclosingShort := "Global"
	if state.currentCallable != nil {
		enclosingShort = state.currentCallable.Name.Short()
	}

	ordinal := state.ordinals[enclosingShort]
	state.ordinals[enclosingShort] = ordinal + 1

	preferred := fmt.Sprintf("__%s_Lambda_%d__", enclosingShort, ordinal)
	seedKey := enclosingShort
	if state.currentCallable != nil {
		seedKey = string(state.currentCallable.Name)
	}

	shortName := scope.FreshCallableName(state.names, preferred, "__lambda_", seedKey)
	state.names.reserve(shortName)

	fullName := ast.QualifiedName(state.namespaceName + "." + shortName)

	var paramPattern *ast.SymbolPattern

	if len(freeVars) == 0 {
		paramPattern = matchedParam
	} else {
		capturedElems := make([]*ast.SymbolPattern, len(freeVars))
		for i, fv := range freeVars {
			capturedElems[i] = ast.NewSymbolPattern(fv.Name, fv.Type)
		}

		paramPattern = ast.NewTuplePattern(ast.NewTuplePattern(capturedElems...), matchedParam)
	}

	characteristics := ast.EmptyCharacteristics
	if lam.Kind == ast.Operation {
		characteristics = lam.Info.Characteristics
	}

	retStmt := &ast.Statement{Kind: ast.StmtReturn, Range: lam.Body.Range, Return: lam.Body}

	generated := &ast.Callable{
		Name:   fullName,
		Kind:   lam.Kind,
		Access: ast.Internal,
		Range:  e.Range,
		Signature: &ast.Signature{
			Input:  patternType(paramPattern),
			Output: outputType,
			Info:   ast.CallableInformation{Characteristics: characteristics},
		},
		ArgumentPattern: paramPattern,
		Specialisations: []*ast.Specialisation{{
			Kind: ast.SpecBody,
			Impl: ast.Generated,
			Scope: &ast.Scope{
				KnownSymbols: paramPattern.Symbols(),
				Statements:   []*ast.Statement{retStmt},
				Range:        lam.Body.Range,
			},
		}},
		DeclaredInSource: true,
	}

	replacement := &ast.TypedExpression{Kind: ast.ExprCallableRef, CallableRef: fullName, Type: e.Type, Range: e.Range}

	if len(freeVars) > 0 {
		capturedTuple := &ast.TypedExpression{
			Kind:  ast.ExprTuple,
			Type:  ast.NewTupleType(symbolTypes(freeVars)...),
			Range: e.Range,
			Tuple: symbolIdentifiers(freeVars, e.Range),
		}

		replacement = &ast.TypedExpression{
			Kind:  ast.ExprPartialApply,
			Type:  e.Type,
			Range: e.Range,
			PartialApply: &ast.PartialApplyExpr{
				Callee:   fullName,
				Captured: capturedTuple,
			},
		}
	}

	return replacement, generated, nil
}

func symbolTypes(vars []ast.Symbol) []ast.ResolvedType {
	out := make([]ast.ResolvedType, len(vars))
	for i, v := range vars {
		out[i] = v.Type
	}

	return out
}

func symbolIdentifiers(vars []ast.Symbol, span position.Span) []*ast.TypedExpression {
	out := make([]*ast.TypedExpression, len(vars))
	for i, v := range vars {
		out[i] = ast.Ident(v.Name, v.Type, span)
	}

	return out
}
