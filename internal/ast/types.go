package ast

import "strings"

// TypeKind tags a ResolvedType.
type TypeKind int

const (
	TypeUnit TypeKind = iota
	TypeBool
	TypeInt
	TypeBigInt
	TypeDouble
	TypeString
	TypeQubit
	TypeResult
	TypePauli
	TypeRange
	TypeFunction
	TypeOperation
	TypeTuple
	TypeArray
	TypeTypeParameter
	TypeUserDefined
)

func (k TypeKind) String() string {
	switch k {
	case TypeUnit:
		return "Unit"
	case TypeBool:
		return "Bool"
	case TypeInt:
		return "Int"
	case TypeBigInt:
		return "BigInt"
	case TypeDouble:
		return "Double"
	case TypeString:
		return "String"
	case TypeQubit:
		return "Qubit"
	case TypeResult:
		return "Result"
	case TypePauli:
		return "Pauli"
	case TypeRange:
		return "Range"
	case TypeFunction:
		return "Function"
	case TypeOperation:
		return "Operation"
	case TypeTuple:
		return "Tuple"
	case TypeArray:
		return "Array"
	case TypeTypeParameter:
		return "TypeParameter"
	case TypeUserDefined:
		return "UserDefinedType"
	default:
		return "Unknown"
	}
}

// CharacteristicSet is the resolved adjointable/controllable characteristics
// of a Function/Operation type.
type CharacteristicSet struct {
	Adjointable  bool
	Controllable bool
}

// EmptyCharacteristics is the characteristic set generated Function-kind
// callables receive.
var EmptyCharacteristics = CharacteristicSet{}

// InferredInfo carries the per-expression inferred facts ("mutable?
// has-local-quantum-deps?") TypedExpression lists, reused here as the
// equivalent per-callable-type inferred facts CallableInformation
// aggregates in the source model.
type InferredInfo struct {
	// Placeholder for forward-compatible inferred facts; no analyser in
	// this core currently populates any, but the field is required to
	// exist on CallableInformation.
}

// CallableInformation is a Function/Operation type's resolved characteristics
// plus inferred information.
type CallableInformation struct {
	Characteristics CharacteristicSet
	Inferred        InferredInfo
}

// FunctionTypeInfo is the payload of a Function/Operation ResolvedType.
type FunctionTypeInfo struct {
	Input  *ResolvedType
	Output *ResolvedType
	Info   CallableInformation
}

// ResolvedType is a fully resolved type,
// modelled as a Kind tag plus the payload valid for that kind.
type ResolvedType struct {
	Kind TypeKind

	Function *FunctionTypeInfo // valid for TypeFunction / TypeOperation
	Tuple    []ResolvedType    // valid for TypeTuple (empty slice == Unit-like empty tuple)
	Element  *ResolvedType     // valid for TypeArray

	TypeParameterName string        // valid for TypeTypeParameter
	UserDefinedName   QualifiedName // valid for TypeUserDefined
}

// Unit is the canonical Unit type value.
var Unit = ResolvedType{Kind: TypeUnit}

// NewFunctionType builds a Function or Operation ResolvedType.
func NewFunctionType(kind CallableKind, in, out ResolvedType, info CallableInformation) ResolvedType {
	tk := TypeFunction
	if kind == Operation {
		tk = TypeOperation
	}

	return ResolvedType{
		Kind:     tk,
		Function: &FunctionTypeInfo{Input: &in, Output: &out, Info: info},
	}
}

// NewArrayType builds an Array ResolvedType.
func NewArrayType(element ResolvedType) ResolvedType {
	return ResolvedType{Kind: TypeArray, Element: &element}
}

// NewTupleType builds a Tuple ResolvedType. A zero-length tuple is distinct
// from Unit in the surface language but the two unify for this core's
// pattern-matching purposes.
func NewTupleType(elements ...ResolvedType) ResolvedType {
	return ResolvedType{Kind: TypeTuple, Tuple: elements}
}

// IsUnitLike reports whether t is Unit or an empty tuple.
func (t ResolvedType) IsUnitLike() bool {
	return t.Kind == TypeUnit || (t.Kind == TypeTuple && len(t.Tuple) == 0)
}

// Equal reports structural equality of two resolved types, ignoring
// callable-information differences that do not affect shape (needed by the
// walker's type-preservation check).
func (t ResolvedType) Equal(other ResolvedType) bool {
	if t.Kind != other.Kind {
		return t.IsUnitLike() && other.IsUnitLike()
	}

	switch t.Kind {
	case TypeFunction, TypeOperation:
		if t.Function == nil || other.Function == nil {
			return t.Function == other.Function
		}

		return t.Function.Input.Equal(*other.Function.Input) &&
			t.Function.Output.Equal(*other.Function.Output)
	case TypeTuple:
		if len(t.Tuple) != len(other.Tuple) {
			return false
		}

		for i := range t.Tuple {
			if !t.Tuple[i].Equal(other.Tuple[i]) {
				return false
			}
		}

		return true
	case TypeArray:
		if t.Element == nil || other.Element == nil {
			return t.Element == other.Element
		}

		return t.Element.Equal(*other.Element)
	case TypeTypeParameter:
		return t.TypeParameterName == other.TypeParameterName
	case TypeUserDefined:
		return t.UserDefinedName == other.UserDefinedName
	default:
		return true
	}
}

// String renders t for diagnostics and generated-callable naming.
func (t ResolvedType) String() string {
	switch t.Kind {
	case TypeFunction, TypeOperation:
		arrow := "->"
		if t.Kind == TypeOperation {
			arrow = "=>"
		}

		if t.Function == nil {
			return t.Kind.String()
		}

		return t.Function.Input.String() + " " + arrow + " " + t.Function.Output.String()
	case TypeTuple:
		parts := make([]string, len(t.Tuple))
		for i, e := range t.Tuple {
			parts[i] = e.String()
		}

		return "(" + strings.Join(parts, ", ") + ")"
	case TypeArray:
		if t.Element == nil {
			return "Array"
		}

		return t.Element.String() + "[]"
	case TypeTypeParameter:
		return "'" + t.TypeParameterName
	case TypeUserDefined:
		return string(t.UserDefinedName)
	default:
		return t.Kind.String()
	}
}
