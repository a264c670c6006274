// Package issues provides the diagnostic type shared by the resolver,
// binder, synthesizer, assembler and generator packages.
package issues

import (
	"fmt"
	"strings"

	"github.com/erraggy/restdoc/internal/severity"
)

// Kind classifies a diagnostic.
type Kind string

const (
	// KindConfigurationCycle reports a sub-resource factory chain that
	// revisits a type already being expanded. The branch is skipped.
	KindConfigurationCycle Kind = "ConfigurationCycle"

	// KindParameterBindingConflict reports two parameter declarations with
	// the same name and location. The operation is skipped.
	KindParameterBindingConflict Kind = "ParameterBindingConflict"

	// KindPathCollision reports an operation dropped because another
	// operation already owns its verb and path.
	KindPathCollision Kind = "PathCollision"

	// KindUnmatchedDocumentation reports a documented parameter name that
	// matches no bound parameter.
	KindUnmatchedDocumentation Kind = "UnmatchedDocumentation"

	// KindUnresolvedType reports a type expression that matches no known
	// primitive, container or model class.
	KindUnresolvedType Kind = "UnresolvedType"

	// KindInvalidPath reports a path marker that had to be normalized or
	// could not be parsed as a template.
	KindInvalidPath Kind = "InvalidPath"
)

// DefaultSeverity returns the severity a diagnostic of this kind carries.
// Cycles and binding conflicts remove output, everything else is a warning.
func (k Kind) DefaultSeverity() severity.Severity {
	switch k {
	case KindConfigurationCycle, KindParameterBindingConflict:
		return severity.SeverityError
	default:
		return severity.SeverityWarning
	}
}

// Issue represents a single diagnostic raised during generation.
type Issue struct {
	// Kind classifies the diagnostic
	Kind Kind `json:"kind" yaml:"kind"`
	// Severity indicates the severity level of the issue
	Severity severity.Severity `json:"severity" yaml:"severity"`
	// Type is the qualified identity of the offending class
	Type string `json:"type,omitempty" yaml:"type,omitempty"`
	// Method is the offending method name (empty for class-level issues)
	Method string `json:"method,omitempty" yaml:"method,omitempty"`
	// Verb is the HTTP method of the affected operation, if any
	Verb string `json:"verb,omitempty" yaml:"verb,omitempty"`
	// Path is the resolved path template of the affected operation, if any
	Path string `json:"path,omitempty" yaml:"path,omitempty"`
	// Subject names the offending element: a parameter, a documented name,
	// a type expression, or a cycle chain
	Subject string `json:"subject,omitempty" yaml:"subject,omitempty"`
	// Message is a human-readable description of the issue
	Message string `json:"message" yaml:"message"`
}

// String returns a formatted string representation of the issue.
// Uses different symbols based on severity level:
// - "✗" for Error severity
// - "⚠" for Warning severity
// - "ℹ" for Info severity
func (i Issue) String() string {
	var symbol string
	switch i.Severity {
	case severity.SeverityError:
		symbol = "✗"
	case severity.SeverityWarning:
		symbol = "⚠"
	case severity.SeverityInfo:
		symbol = "ℹ"
	default:
		symbol = "?"
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "%s %s", symbol, i.Kind)
	if i.Verb != "" || i.Path != "" {
		sb.WriteByte(' ')
		sb.WriteString(strings.TrimSpace(i.Verb + " " + i.Path))
	}
	if loc := i.Location(); loc != "" {
		fmt.Fprintf(&sb, " (%s)", loc)
	}
	sb.WriteString(": ")
	sb.WriteString(i.Message)
	return sb.String()
}

// Location returns "Type.method", "Type", or "" when no source identity
// is attached.
func (i Issue) Location() string {
	switch {
	case i.Type != "" && i.Method != "":
		return i.Type + "." + i.Method
	case i.Type != "":
		return i.Type
	default:
		return i.Method
	}
}

// IsError reports whether the issue has error severity.
func (i Issue) IsError() bool {
	return i.Severity == severity.SeverityError
}

// List is an ordered collection of issues.
type List []Issue

// Count returns the number of issues of the given kind.
func (l List) Count(kind Kind) int {
	n := 0
	for _, i := range l {
		if i.Kind == kind {
			n++
		}
	}
	return n
}

// OfKind returns the issues of the given kind, preserving order.
func (l List) OfKind(kind Kind) List {
	var out List
	for _, i := range l {
		if i.Kind == kind {
			out = append(out, i)
		}
	}
	return out
}

// BySeverity returns the issues with the given severity, preserving order.
func (l List) BySeverity(s severity.Severity) List {
	var out List
	for _, i := range l {
		if i.Severity == s {
			out = append(out, i)
		}
	}
	return out
}

// Counts returns the number of errors, warnings and infos in the list.
func (l List) Counts() (errors, warnings, infos int) {
	for _, i := range l {
		switch i.Severity {
		case severity.SeverityError:
			errors++
		case severity.SeverityWarning:
			warnings++
		case severity.SeverityInfo:
			infos++
		}
	}
	return errors, warnings, infos
}
