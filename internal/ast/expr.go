package ast

import "github.com/orizon-lang/capcore/internal/position"

// ExprKind tags a TypedExpression.
type ExprKind int

const (
	ExprIdentifier ExprKind = iota
	ExprLiteral
	ExprLambda
	ExprCall
	ExprTuple
	ExprNewArray
	ExprArrayUpdate
	ExprBinary
	ExprUnaryNot
	ExprAdjoint
	ExprControlled
	ExprConditional
	ExprCallableRef
	ExprPartialApply
)

func (k ExprKind) String() string {
	switch k {
	case ExprIdentifier:
		return "Identifier"
	case ExprLiteral:
		return "Literal"
	case ExprLambda:
		return "Lambda"
	case ExprCall:
		return "Call"
	case ExprTuple:
		return "Tuple"
	case ExprNewArray:
		return "NewArray"
	case ExprArrayUpdate:
		return "ArrayUpdate"
	case ExprBinary:
		return "Binary"
	case ExprUnaryNot:
		return "UnaryNot"
	case ExprAdjoint:
		return "Adjoint"
	case ExprControlled:
		return "Controlled"
	case ExprConditional:
		return "Conditional"
	case ExprCallableRef:
		return "CallableRef"
	case ExprPartialApply:
		return "PartialApply"
	default:
		return "Unknown"
	}
}

// LiteralKind distinguishes literal payloads.
type LiteralKind int

const (
	LiteralUnit LiteralKind = iota
	LiteralBool
	LiteralInt
	LiteralBigInt
	LiteralDouble
	LiteralString
	LiteralResultZero
	LiteralResultOne
	LiteralPauli
)

// Literal is a constant value.
type Literal struct {
	Kind LiteralKind
	Text string // canonical textual form, used for BigInt/Double/String payloads
}

// BinaryOp is a binary operator.
type BinaryOp int

const (
	OpAdd BinaryOp = iota
	OpSub
	OpMul
	OpDiv
	OpEq
	OpNeq
	OpLt
	OpLe
	OpGt
	OpGe
	OpAnd
	OpOr
)

func (op BinaryOp) String() string {
	switch op {
	case OpAdd:
		return "+"
	case OpSub:
		return "-"
	case OpMul:
		return "*"
	case OpDiv:
		return "/"
	case OpEq:
		return "=="
	case OpNeq:
		return "!="
	case OpLt:
		return "<"
	case OpLe:
		return "<="
	case OpGt:
		return ">"
	case OpGe:
		return ">="
	case OpAnd:
		return "and"
	case OpOr:
		return "or"
	default:
		return "?"
	}
}

// LambdaExpr is an anonymous callable expression.
type LambdaExpr struct {
	Kind      CallableKind // Function or Operation
	Parameter *SymbolPattern
	Body      *TypedExpression // single-expression body
	Info      CallableInformation
}

// CallExpr applies a callee to an argument expression.
type CallExpr struct {
	Callee QualifiedName // resolved iff the callee is statically a named callable
	// CalleeExpr is set when the callee is not a static name (e.g. the result
	// of a partial application); such calls contribute no call-graph edge.
	CalleeExpr *TypedExpression
	Arguments  *TypedExpression
	TypeArgs   []ResolvedType
}

// NewArrayExpr allocates a dynamically-sized array.
type NewArrayExpr struct {
	ElementType ResolvedType
	Size        *TypedExpression
}

// ArrayUpdateExpr produces a copy of an array with one index rebound.
type ArrayUpdateExpr struct {
	Array *TypedExpression
	Index *TypedExpression
	Value *TypedExpression
}

// BinaryExpr is a binary operation.
type BinaryExpr struct {
	Op    BinaryOp
	Left  *TypedExpression
	Right *TypedExpression
}

// ConditionalExpr is a ternary conditional expression.
type ConditionalExpr struct {
	Condition *TypedExpression
	Then      *TypedExpression
	Else      *TypedExpression
}

// PartialApplyExpr references a callable with its leading (captured) tuple
// of arguments already supplied, denoting a value of the callable's
// remaining-parameter Function/Operation type. The Lambda Lifter synthesises
// these at a lifted lambda's original call site when the lambda captured one
// or more free variables.
type PartialApplyExpr struct {
	Callee   QualifiedName
	Captured *TypedExpression
}

// TypedExpression is a single resolved expression node. Exactly one payload field is populated, selected by
// Kind; ExprTuple's payload is the Tuple slice directly.
type TypedExpression struct {
	Kind     ExprKind
	Type     ResolvedType
	TypeArgs map[string]ResolvedType
	Range    position.Span

	// Inferred information.
	IsMutableBinding    bool
	HasLocalQuantumDeps bool

	Identifier string // valid for ExprIdentifier: the bound local name
	Literal    *Literal
	Lambda     *LambdaExpr
	Call       *CallExpr
	Tuple      []*TypedExpression
	NewArray   *NewArrayExpr
	ArrayUpdate *ArrayUpdateExpr
	Binary     *BinaryExpr
	Unary      *TypedExpression // ExprUnaryNot operand
	Adjoint    *TypedExpression
	Controlled *TypedExpression
	Conditional *ConditionalExpr

	CallableRef  QualifiedName     // ExprCallableRef: a bare reference to a top-level callable, unapplied
	PartialApply *PartialApplyExpr // ExprPartialApply
}

// Ident builds an identifier expression.
func Ident(name string, t ResolvedType, span position.Span) *TypedExpression {
	return &TypedExpression{Kind: ExprIdentifier, Identifier: name, Type: t, Range: span}
}

// LambdaOf wraps a LambdaExpr in its TypedExpression.
func LambdaOf(l *LambdaExpr, t ResolvedType, span position.Span) *TypedExpression {
	return &TypedExpression{Kind: ExprLambda, Lambda: l, Type: t, Range: span}
}
