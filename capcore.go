// Package capcore is the public entry point for the capability-inference
// and lambda-lifting core: LiftLambdas
// rewrites a Program to eliminate Lambda expressions, and InferCapabilities
// attaches a RequiresCapability attribute to every source-declared callable
// that lacks one.
package capcore

import (
	"github.com/orizon-lang/capcore/internal/ast"
	"github.com/orizon-lang/capcore/internal/diagnostic"
	"github.com/orizon-lang/capcore/internal/lift"
	"github.com/orizon-lang/capcore/internal/solver"
)

// Re-export the wire types a host needs to interpret this package's return
// values, so callers never have to import an internal package directly.
type (
	Program    = ast.Program
	Diagnostic = diagnostic.Diagnostic
	Severity   = diagnostic.Severity
	Code       = diagnostic.Code
)

const (
	Hidden  = diagnostic.Hidden
	Info    = diagnostic.Info
	Warning = diagnostic.Warning
	Error   = diagnostic.Error
)

// LiftLambdas rewrites p into an equivalent Program with every Lambda
// expression replaced by a reference to a freshly-lifted top-level
// callable. It is idempotent: lifting an already-lifted
// Program returns it unchanged.
func LiftLambdas(p *Program) (*Program, []Diagnostic) {
	out, diags := lift.LiftLambdas(p)
	return out, diags.All()
}

// InferCapabilities attaches a RequiresCapability attribute to every
// source-declared callable in p that lacks one. Running
// it on a Program where every source-declared callable is already annotated
// is the identity.
func InferCapabilities(p *Program) (*Program, []Diagnostic) {
	out, diags := solver.InferCapabilities(p)
	return out, diags.All()
}

// Compile runs LiftLambdas followed by InferCapabilities, in that order
// because capability inference walks call sites the lifter may have
// rewritten (a lifted lambda body becomes a top-level
// callable that itself needs a capability attribute), so lifting must run
// first.
func Compile(p *Program) (*Program, []Diagnostic) {
	lifted, liftDiags := lift.LiftLambdas(p)

	annotated, capDiags := solver.InferCapabilities(lifted)

	all := append(liftDiags.All(), capDiags.All()...)

	return annotated, all
}
