// Package diagnostic implements the wire-form diagnostics the core's public
// interface returns: severity, an error-code enum, an ordered string
// argument list, and a source range. A full compiler diagnostic engine
// typically also carries suggestions, text edits, and categories; nothing
// in this core's contract calls for that.
package diagnostic

import (
	"fmt"
	"sort"

	"github.com/orizon-lang/capcore/internal/position"
)

// Severity is a diagnostic's severity level.
type Severity int

const (
	Hidden Severity = iota
	Info
	Warning
	Error
)

func (s Severity) String() string {
	switch s {
	case Hidden:
		return "hidden"
	case Info:
		return "info"
	case Warning:
		return "warning"
	case Error:
		return "error"
	default:
		return "unknown"
	}
}

// Code enumerates the diagnostic codes the core can emit. New codes are
// appended; existing values must not be renumbered since hosts may persist
// them.
type Code int

const (
	CodeUnknown Code = iota

	// Lambda lifter.
	CodeLambdaShape // fatal: LambdaShape(expected, got)

	// Pattern analysers (errors, checked against a target elsewhere by the host).
	CodeUnsupportedResultComparison
	CodeResultComparisonOutsideBlock
	CodeReturnOfMutableInResultBlock
	CodeSetOfMutableInResultBlock
	CodeUnsupportedClassicalControlFlow
	CodeUnsupportedLoop
	CodeUnsupportedType
	CodeUnsupportedArrayAllocation
	CodeUnsupportedArrayUpdate

	// Solver.
	CodeUnresolvedCallee // internal-info: call graph references an unknown callable
)

// explanatoryWarnings maps every analyser error Code to the warning Code the
// Capability Solver emits at a transitive call site. The rule is applied
// uniformly to every analyser-emitted error code — "UnsupportedResultComparison
// error -> UnsupportedResultComparison warning", and so on — since no
// analyser code is an exception to it.
var explanatoryWarnings = map[Code]Code{
	CodeUnsupportedResultComparison:      CodeUnsupportedResultComparison,
	CodeResultComparisonOutsideBlock:     CodeResultComparisonOutsideBlock,
	CodeReturnOfMutableInResultBlock:     CodeReturnOfMutableInResultBlock,
	CodeSetOfMutableInResultBlock:        CodeSetOfMutableInResultBlock,
	CodeUnsupportedClassicalControlFlow:  CodeUnsupportedClassicalControlFlow,
	CodeUnsupportedLoop:                  CodeUnsupportedLoop,
	CodeUnsupportedType:                  CodeUnsupportedType,
	CodeUnsupportedArrayAllocation:       CodeUnsupportedArrayAllocation,
	CodeUnsupportedArrayUpdate:           CodeUnsupportedArrayUpdate,
}

// ToExplanatoryWarning returns the warning code the solver should attach at
// a transitive call site for an analyser error code.
func ToExplanatoryWarning(c Code) (Code, bool) {
	w, ok := explanatoryWarnings[c]
	return w, ok
}

func (c Code) String() string {
	switch c {
	case CodeLambdaShape:
		return "LambdaShape"
	case CodeUnsupportedResultComparison:
		return "UnsupportedResultComparison"
	case CodeResultComparisonOutsideBlock:
		return "ResultComparisonOutsideBlock"
	case CodeReturnOfMutableInResultBlock:
		return "ReturnOfMutableInResultBlock"
	case CodeSetOfMutableInResultBlock:
		return "SetOfMutableInResultBlock"
	case CodeUnsupportedClassicalControlFlow:
		return "UnsupportedClassicalControlFlow"
	case CodeUnsupportedLoop:
		return "UnsupportedLoop"
	case CodeUnsupportedType:
		return "UnsupportedType"
	case CodeUnsupportedArrayAllocation:
		return "UnsupportedArrayAllocation"
	case CodeUnsupportedArrayUpdate:
		return "UnsupportedArrayUpdate"
	case CodeUnresolvedCallee:
		return "UnresolvedCallee"
	default:
		return "Unknown"
	}
}

// Diagnostic is the wire form a host receives.
type Diagnostic struct {
	Severity  Severity
	Code      Code
	Arguments []string
	Range     position.Span
}

// Error lets a fatal Diagnostic (e.g. CodeLambdaShape) satisfy the error
// interface so it can be returned/wrapped alongside ordinary Go errors.
func (d *Diagnostic) Error() string {
	return fmt.Sprintf("%s: %s%v at %s", d.Severity, d.Code, d.Arguments, d.Range)
}

// Builder assembles a Diagnostic with a fluent API.
type Builder struct {
	d Diagnostic
}

// New starts building a diagnostic with the given severity and code.
func New(severity Severity, code Code) *Builder {
	return &Builder{d: Diagnostic{Severity: severity, Code: code}}
}

// Arg appends one ordered argument.
func (b *Builder) Arg(a string) *Builder {
	b.d.Arguments = append(b.d.Arguments, a)
	return b
}

// Args appends several ordered arguments.
func (b *Builder) Args(as ...string) *Builder {
	b.d.Arguments = append(b.d.Arguments, as...)
	return b
}

// At sets the diagnostic's source range.
func (b *Builder) At(span position.Span) *Builder {
	b.d.Range = span
	return b
}

// Build returns the assembled Diagnostic.
func (b *Builder) Build() Diagnostic {
	return b.d
}

// Bag collects diagnostics produced over the course of one pass. It is not
// safe for concurrent use, matching the core's single-threaded scheduling
// model.
type Bag struct {
	items []Diagnostic
}

// NewBag creates an empty diagnostic bag.
func NewBag() *Bag { return &Bag{} }

// Add appends d to the bag.
func (b *Bag) Add(d Diagnostic) { b.items = append(b.items, d) }

// Addf is a convenience for Add(New(...).Args(...).At(...).Build()).
func (b *Bag) Addf(severity Severity, code Code, span position.Span, args ...string) {
	b.Add(New(severity, code).Args(args...).At(span).Build())
}

// All returns every diagnostic added so far, sorted by source position then
// by decreasing severity (errors first) for stable, host-friendly output.
func (b *Bag) All() []Diagnostic {
	out := make([]Diagnostic, len(b.items))
	copy(out, b.items)

	sort.SliceStable(out, func(i, j int) bool {
		si, sj := out[i].Range.Start, out[j].Range.Start
		if si.Filename != sj.Filename {
			return si.Filename < sj.Filename
		}

		if si.Offset != sj.Offset {
			return si.Offset < sj.Offset
		}

		return out[i].Severity > out[j].Severity
	})

	return out
}

// HasErrors reports whether the bag contains any Error-severity diagnostic.
func (b *Bag) HasErrors() bool {
	for _, d := range b.items {
		if d.Severity == Error {
			return true
		}
	}

	return false
}

// Len returns the number of diagnostics collected.
func (b *Bag) Len() int { return len(b.items) }
