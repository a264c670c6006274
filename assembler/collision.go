package assembler

import (
	"fmt"
	"slices"

	"github.com/erraggy/restdoc/internal/issues"
	"github.com/erraggy/restdoc/oaserrors"
	"github.com/erraggy/restdoc/specdoc"
)

// CollisionStrategy defines how to handle operations that resolve to the
// same verb and path.
type CollisionStrategy string

const (
	// StrategyAcceptLeft keeps the first operation in traversal order (default).
	StrategyAcceptLeft CollisionStrategy = "accept-left"
	// StrategyAcceptRight keeps the last operation in traversal order.
	StrategyAcceptRight CollisionStrategy = "accept-right"
	// StrategyFailOnCollision aborts assembly on the first collision.
	StrategyFailOnCollision CollisionStrategy = "fail"
)

// ValidStrategies returns all valid collision strategy strings.
func ValidStrategies() []string {
	return []string{
		string(StrategyAcceptLeft),
		string(StrategyAcceptRight),
		string(StrategyFailOnCollision),
	}
}

// IsValidStrategy checks if a strategy string is valid.
func IsValidStrategy(strategy string) bool {
	return slices.Contains(ValidStrategies(), strategy)
}

// CollisionReport summarizes the collisions met during assembly.
type CollisionReport struct {
	TotalCollisions  int
	ResolvedByAccept int
	FailedCollisions int
	Events           []CollisionEvent
}

// CollisionEvent records one dropped operation.
type CollisionEvent struct {
	Verb string
	Path string
	// Kept is the operation that owns verb and path.
	Kept specdoc.Source
	// Dropped is the operation removed from the document.
	Dropped    specdoc.Source
	Strategy   CollisionStrategy
	Resolution string // "kept-left", "kept-right", "failed"
}

// NewCollisionReport creates an empty collision report.
func NewCollisionReport() *CollisionReport {
	return &CollisionReport{Events: make([]CollisionEvent, 0)}
}

// AddEvent adds a collision event to the report and updates counters.
func (r *CollisionReport) AddEvent(event CollisionEvent) {
	r.Events = append(r.Events, event)
	r.TotalCollisions++

	switch event.Resolution {
	case "kept-left", "kept-right":
		r.ResolvedByAccept++
	case "failed":
		r.FailedCollisions++
	}
}

// HasFailures returns true if any collision failed to resolve.
func (r *CollisionReport) HasFailures() bool {
	return r.FailedCollisions > 0
}

// resolveGroup picks the surviving operation of a verb+path group, records
// the dropped ones, and returns an error under the fail strategy.
func resolveGroup(group []*specdoc.Operation, strategy CollisionStrategy, report *CollisionReport) (*specdoc.Operation, []Issue, error) {
	if len(group) == 1 {
		return group[0], nil, nil
	}

	first := group[0]
	switch strategy {
	case StrategyFailOnCollision:
		sources := make([]string, len(group))
		for i, op := range group {
			sources[i] = op.Source.String()
		}
		for _, op := range group[1:] {
			report.AddEvent(CollisionEvent{
				Verb: first.Verb, Path: first.Path,
				Kept: first.Source, Dropped: op.Source,
				Strategy: strategy, Resolution: "failed",
			})
		}
		return nil, nil, &oaserrors.CollisionError{Verb: first.Verb, Path: first.Path, Operations: sources}
	case StrategyAcceptLeft, StrategyAcceptRight:
	default:
		return nil, nil, &oaserrors.ConfigError{Option: "collision-strategy", Value: strategy, Message: "unknown collision strategy"}
	}

	kept, resolution := first, "kept-left"
	if strategy == StrategyAcceptRight {
		kept, resolution = group[len(group)-1], "kept-right"
	}

	var found []Issue
	for _, op := range group {
		if op == kept {
			continue
		}
		report.AddEvent(CollisionEvent{
			Verb: op.Verb, Path: op.Path,
			Kept: kept.Source, Dropped: op.Source,
			Strategy: strategy, Resolution: resolution,
		})
		found = append(found, Issue{
			Kind:     issues.KindPathCollision,
			Severity: issues.KindPathCollision.DefaultSeverity(),
			Type:     op.Source.Type,
			Method:   op.Source.Method,
			Verb:     op.Verb,
			Path:     op.Path,
			Subject:  kept.Source.String(),
			Message:  fmt.Sprintf("%s dropped: %s %s is owned by %s (%s)", op.Source, op.Verb, op.Path, kept.Source, strategy),
		})
	}
	return kept, found, nil
}
