// Package oaserrors provides structured error types for restdoc.
//
// These error types enable programmatic error handling via errors.Is() and
// errors.As(), allowing callers to distinguish between different categories
// of errors and implement appropriate recovery strategies.
//
// # Error Categories
//
//   - ModelError: malformed Source Model input (the only input that aborts a run)
//   - CycleError: a sub-resource factory chain that revisits a type
//   - BindingConflictError: duplicate parameter name and location in one operation
//   - CollisionError: two operations resolving to the same verb and path
//   - ConfigError: invalid configuration or input options
//   - ValidationError: a rendered document rejected by the OpenAPI validator
//
// Cycles and binding conflicts are recoverable: the generator turns them
// into diagnostics and keeps going. Collisions abort only under the "fail"
// collision strategy.
//
// # Usage with errors.Is
//
//	result, err := generator.GenerateWithOptions(generator.WithFilePath("model.yaml"))
//	if errors.Is(err, oaserrors.ErrMalformedModel) {
//	    var modelErr *oaserrors.ModelError
//	    if errors.As(err, &modelErr) {
//	        fmt.Println("bad class:", modelErr.Class)
//	    }
//	}
package oaserrors

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors for use with errors.Is().
// These allow quick checks without type assertions.
var (
	// ErrMalformedModel indicates the Source Model could not be used.
	ErrMalformedModel = errors.New("malformed source model")

	// ErrConfigurationCycle indicates a factory chain revisits a type.
	ErrConfigurationCycle = errors.New("configuration cycle")

	// ErrParameterBindingConflict indicates duplicate parameter declarations.
	ErrParameterBindingConflict = errors.New("parameter binding conflict")

	// ErrPathCollision indicates two operations share a verb and path.
	ErrPathCollision = errors.New("path collision")

	// ErrCircularReference indicates a schema definition was requested
	// while its own expansion was still in progress.
	ErrCircularReference = errors.New("circular reference")

	// ErrConfig indicates an invalid configuration.
	ErrConfig = errors.New("configuration error")

	// ErrInvalidDocument indicates the generated document failed OpenAPI
	// validation.
	ErrInvalidDocument = errors.New("invalid OpenAPI document")
)

// ModelError represents a Source Model that cannot be processed.
type ModelError struct {
	// Source is the file path or source identifier
	Source string
	// Class is the qualified class identity involved, if any
	Class string
	// Member is the field, method or parameter involved, if any
	Member string
	// Message describes the problem
	Message string
	// Cause is the underlying error, if any
	Cause error
}

// Error returns a human-readable error message.
func (e *ModelError) Error() string {
	msg := "malformed source model"
	if e.Source != "" {
		msg += " in " + e.Source
	}
	if e.Class != "" {
		msg += ": " + e.Class
		if e.Member != "" {
			msg += "." + e.Member
		}
	}
	if e.Message != "" {
		msg += ": " + e.Message
	}
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

// Unwrap returns the underlying cause for error chaining.
func (e *ModelError) Unwrap() error {
	return e.Cause
}

// Is reports whether target matches this error type.
func (e *ModelError) Is(target error) bool {
	return target == ErrMalformedModel
}

// CycleError represents a factory chain that revisits a type identity.
type CycleError struct {
	// Chain lists the type identities from the first repeated type back to itself
	Chain []string
	// Method is the factory method that closed the cycle
	Method string
}

// Error returns a human-readable error message.
func (e *CycleError) Error() string {
	msg := "configuration cycle"
	if len(e.Chain) > 0 {
		msg += ": " + strings.Join(e.Chain, " -> ")
	}
	if e.Method != "" {
		msg += fmt.Sprintf(" (via %s)", e.Method)
	}
	return msg
}

// Is reports whether target matches this error type.
func (e *CycleError) Is(target error) bool {
	return target == ErrConfigurationCycle
}

// BindingConflictError represents two parameter declarations resolving to
// the same name and location within one operation.
type BindingConflictError struct {
	// Name is the conflicting parameter name
	Name string
	// Location is the conflicting parameter location (path, query, ...)
	Location string
	// Type is the class owning the operation
	Type string
	// Method is the operation method name
	Method string
}

// Error returns a human-readable error message.
func (e *BindingConflictError) Error() string {
	msg := fmt.Sprintf("parameter binding conflict: %s parameter %q declared more than once", e.Location, e.Name)
	if e.Type != "" || e.Method != "" {
		msg += fmt.Sprintf(" in %s.%s", e.Type, e.Method)
	}
	return msg
}

// Is reports whether target matches this error type.
func (e *BindingConflictError) Is(target error) bool {
	return target == ErrParameterBindingConflict
}

// CollisionError represents operations resolving to the same verb and path.
type CollisionError struct {
	// Verb is the HTTP method shared by the colliding operations
	Verb string
	// Path is the resolved path template shared by the colliding operations
	Path string
	// Operations lists the colliding operations as Type.method, in traversal order
	Operations []string
}

// Error returns a human-readable error message.
func (e *CollisionError) Error() string {
	msg := fmt.Sprintf("path collision: %s %s", e.Verb, e.Path)
	if len(e.Operations) > 0 {
		msg += " (" + strings.Join(e.Operations, ", ") + ")"
	}
	return msg
}

// Is reports whether target matches this error type.
func (e *CollisionError) Is(target error) bool {
	return target == ErrPathCollision
}

// ConfigError represents an invalid configuration or input.
// This includes invalid options, missing required inputs, and conflicting settings.
type ConfigError struct {
	// Option is the name of the problematic configuration option
	Option string
	// Value is the invalid value that was provided (may be nil)
	Value any
	// Message describes the configuration error
	Message string
	// Cause is the underlying error, if any
	Cause error
}

// Error returns a human-readable error message.
func (e *ConfigError) Error() string {
	msg := "configuration error"
	if e.Option != "" {
		msg += " for " + e.Option
	}
	if e.Value != nil {
		msg += fmt.Sprintf(" (value: %v)", e.Value)
	}
	if e.Message != "" {
		msg += ": " + e.Message
	}
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

// Unwrap returns the underlying cause for error chaining.
func (e *ConfigError) Unwrap() error {
	return e.Cause
}

// Is reports whether target matches this error type.
func (e *ConfigError) Is(target error) bool {
	return target == ErrConfig
}

// ValidationError represents a rendered document that failed OpenAPI
// validation.
type ValidationError struct {
	// Pointer is the JSON pointer of the offending element, if known
	Pointer string
	// Message describes the problem
	Message string
	// Cause is the validator error
	Cause error
}

// Error returns a human-readable error message.
func (e *ValidationError) Error() string {
	msg := "invalid OpenAPI document"
	if e.Pointer != "" {
		msg += " at " + e.Pointer
	}
	if e.Message != "" {
		msg += ": " + e.Message
	}
	return msg
}

// Unwrap returns the underlying cause for error chaining.
func (e *ValidationError) Unwrap() error {
	return e.Cause
}

// Is reports whether target matches this error type.
func (e *ValidationError) Is(target error) bool {
	return target == ErrInvalidDocument
}
