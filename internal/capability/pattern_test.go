package capability_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/orizon-lang/capcore/internal/capability"
	"github.com/orizon-lang/capcore/internal/diagnostic"
	"github.com/orizon-lang/capcore/internal/position"
)

func TestPatternDiagnoseFiresOnlyWhenItExceedsTarget(t *testing.T) {
	p := capability.Pattern{Capability: capability.BasicMeasurementFeedback, Code: diagnostic.CodeUnsupportedResultComparison}

	_, fires := p.Diagnose(capability.FullComputation)
	require.False(t, fires)

	_, fires = p.Diagnose(capability.BasicMeasurementFeedback)
	require.False(t, fires, "equal to target does not exceed it")

	d, fires := p.Diagnose(capability.Base)
	require.True(t, fires)
	require.Equal(t, diagnostic.Error, d.Severity)
	require.Equal(t, diagnostic.CodeUnsupportedResultComparison, d.Code)
}

func TestPatternDiagnoseCarriesArgumentsAndRange(t *testing.T) {
	sp := position.Span{Start: position.Position{Filename: "a.qs", Offset: 3}}
	p := capability.Pattern{
		Capability: capability.FullComputation,
		Code:       diagnostic.CodeUnsupportedType,
		Arguments:  []string{"BigInt"},
		Range:      sp,
	}

	d, fires := p.Diagnose(capability.Base)
	require.True(t, fires)
	require.Equal(t, []string{"BigInt"}, d.Arguments)
	require.Equal(t, sp, d.Range)
}
