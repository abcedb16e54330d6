// Package diag collects emission-gap diagnostics. Emission never
// fails: unsupported constructs degrade to placeholders in the output
// and leave a diagnostic here so a human can finish the translation.
package diag

// Severity defines the importance of a diagnostic.
type Severity uint8

const (
	// SevInfo is for informational diagnostics.
	SevInfo Severity = iota
	// SevWarning is for warning diagnostics.
	SevWarning
	SevError
)

func (s Severity) String() string {
	switch s {
	case SevInfo:
		return "INFO"
	case SevWarning:
		return "WARNING"
	case SevError:
		return "ERROR"
	}
	return "UNKNOWN"
}

// Code identifies a diagnostic kind.
type Code uint16

const (
	// UnknownCode is the zero code.
	UnknownCode Code = 0

	// Emission gaps
	EmitUnsupportedStmt Code = 3001
	EmitUnsupportedExpr Code = 3002
	EmitLooseTryShape   Code = 3003
	EmitBareReraise     Code = 3004

	// Resolution gaps
	ResolveUnionFallback Code = 4001
)

func (c Code) String() string {
	switch c {
	case EmitUnsupportedStmt:
		return "OX3001"
	case EmitUnsupportedExpr:
		return "OX3002"
	case EmitLooseTryShape:
		return "OX3003"
	case EmitBareReraise:
		return "OX3004"
	case ResolveUnionFallback:
		return "OX4001"
	default:
		return "OX0000"
	}
}

// Diagnostic is one recorded gap. Module and Line locate the source
// construct when known.
type Diagnostic struct {
	Severity Severity
	Code     Code
	Message  string
	Module   string
	Line     int
}
