// Package severity provides the severity levels attached to diagnostics
// produced while resolving resources, binding parameters, synthesizing
// schemas and assembling documents.
//
// The levels are ordered from least to most severe:
// Info < Warning < Error
package severity

import "fmt"

// Severity indicates how serious a diagnostic is. No level aborts a run;
// an Error only removes the affected branch or operation from the output.
type Severity int

const (
	// SeverityError marks a problem that removed a branch or an operation
	// from the generated document.
	SeverityError Severity = iota

	// SeverityWarning marks a problem the engine worked around, such as a
	// dropped documentation entry or an unresolved type.
	SeverityWarning

	// SeverityInfo marks a notice about a choice the engine made.
	SeverityInfo
)

// String returns the string representation of the severity level.
func (s Severity) String() string {
	switch s {
	case SeverityInfo:
		return "info"
	case SeverityWarning:
		return "warning"
	case SeverityError:
		return "error"
	default:
		return "unknown"
	}
}

// MarshalText implements encoding.TextMarshaler so structured output
// carries the level name instead of its ordinal.
func (s Severity) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (s *Severity) UnmarshalText(text []byte) error {
	switch string(text) {
	case "info":
		*s = SeverityInfo
	case "warning":
		*s = SeverityWarning
	case "error":
		*s = SeverityError
	default:
		return fmt.Errorf("severity: unknown level %q", string(text))
	}
	return nil
}
