// Package position provides source-location tracking shared by every
// component of the capability-inference and lambda-lifting core.
//
// Positions and spans are 0-based internally (matching offsets into the
// original source text); the wire form diagnostics are serialised to is
// 1-based, per the external interface's line/column convention.
package position

import (
	"fmt"
	"path/filepath"
)

// Position is a single point in source code, 0-based.
type Position struct {
	Filename string
	Line     int
	Column   int
	Offset   int
}

// IsValid reports whether p denotes a real location.
func (p Position) IsValid() bool {
	return p.Line >= 0 && p.Column >= 0 && p.Offset >= 0
}

// String renders p for debug output, using 1-based line/column.
func (p Position) String() string {
	if p.Filename != "" {
		return fmt.Sprintf("%s:%d:%d", filepath.Base(p.Filename), p.Line+1, p.Column+1)
	}

	return fmt.Sprintf("%d:%d", p.Line+1, p.Column+1)
}

// Before reports whether p comes strictly before other in the same file.
func (p Position) Before(other Position) bool {
	if p.Filename != other.Filename {
		return p.Filename < other.Filename
	}

	return p.Offset < other.Offset
}

// WireLine is the 1-based line number for the diagnostic wire form.
func (p Position) WireLine() int { return p.Line + 1 }

// WireColumn is the 1-based column number for the diagnostic wire form.
func (p Position) WireColumn() int { return p.Column + 1 }

// Span is a half-open range [Start, End) of source code.
type Span struct {
	Start Position
	End   Position
}

// IsValid reports whether s is a well-formed, non-inverted span.
func (s Span) IsValid() bool {
	return s.Start.IsValid() && s.End.IsValid() &&
		s.Start.Filename == s.End.Filename &&
		s.Start.Offset <= s.End.Offset
}

// String renders s for debug output.
func (s Span) String() string {
	filename := ""
	if s.Start.Filename != "" {
		filename = filepath.Base(s.Start.Filename) + ":"
	}

	if s.Start.Line == s.End.Line {
		return fmt.Sprintf("%s%d:%d-%d", filename, s.Start.Line+1, s.Start.Column+1, s.End.Column+1)
	}

	return fmt.Sprintf("%s%d:%d-%d:%d", filename, s.Start.Line+1, s.Start.Column+1, s.End.Line+1, s.End.Column+1)
}

// Union returns the smallest span covering both s and other. If one operand
// is invalid the other is returned; if the two lie in different files, s is
// returned.
func (s Span) Union(other Span) Span {
	if !s.IsValid() {
		return other
	}

	if !other.IsValid() {
		return s
	}

	if s.Start.Filename != other.Start.Filename {
		return s
	}

	start := s.Start
	if other.Start.Before(start) {
		start = other.Start
	}

	end := s.End
	if end.Before(other.End) {
		end = other.End
	}

	return Span{Start: start, End: end}
}
