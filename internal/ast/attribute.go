package ast

import "github.com/orizon-lang/capcore/internal/position"

// Attribute is a callable attribute, e.g. RequiresCapability(...).
type Attribute struct {
	Name      string
	Arguments []string
	Range     position.Span
}

// RequiresCapabilityAttribute is the canonical attribute name the solver
// reads and writes.
const RequiresCapabilityAttribute = "RequiresCapability"

// InferredReason is the fixed human-readable reason string every
// automatically-inferred RequiresCapability attribute carries.
const InferredReason = "Inferred automatically by the compiler."

// NewRequiresCapability builds the two-argument RequiresCapability
// attribute the solver attaches to a callable.
func NewRequiresCapability(capabilityName string) Attribute {
	return Attribute{
		Name:      RequiresCapabilityAttribute,
		Arguments: []string{capabilityName, InferredReason},
	}
}
