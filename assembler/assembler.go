// Package assembler turns bound operations and schema definitions into the
// final, deterministically ordered document.
//
// Operations are grouped by verb and path. A group with more than one
// member is a path collision, resolved by the configured
// [CollisionStrategy]:
//
//	res, err := assembler.Assemble(ops, schemas,
//	    assembler.WithCollisionStrategy(assembler.StrategyAcceptLeft),
//	    assembler.WithInfo(specdoc.Info{Title: "Keycloak Admin REST API", Version: "1"}),
//	)
//	if errors.Is(err, oaserrors.ErrPathCollision) {
//	    // only possible with StrategyFailOnCollision
//	}
//
// After collisions are resolved, paths are sorted lexicographically,
// operations within a path follow [specdoc.VerbOrder], and operation ids
// are made unique in that order: the first "UsersResource_getUsers" keeps
// its id, later ones get "_2", "_3" and so on.
package assembler

import (
	"cmp"
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/erraggy/restdoc/internal/issues"
	"github.com/erraggy/restdoc/internal/naming"
	"github.com/erraggy/restdoc/oaserrors"
	"github.com/erraggy/restdoc/sourcemodel"
	"github.com/erraggy/restdoc/specdoc"
)

// Issue is a diagnostic raised during assembly.
type Issue = issues.Issue

// Option configures assembly.
type Option func(*config) error

type config struct {
	strategy        CollisionStrategy
	info            specdoc.Info
	security        *specdoc.SecurityScheme
	tagDescriptions map[string]string
	pruneSchemas    bool
	logger          sourcemodel.Logger
}

// WithCollisionStrategy sets the path collision strategy.
// Default is StrategyAcceptLeft.
func WithCollisionStrategy(s CollisionStrategy) Option {
	return func(c *config) error {
		if !IsValidStrategy(string(s)) {
			return &oaserrors.ConfigError{
				Option:  "collision-strategy",
				Value:   s,
				Message: "must be one of " + strings.Join(ValidStrategies(), ", "),
			}
		}
		c.strategy = s
		return nil
	}
}

// WithInfo sets the document info block.
func WithInfo(info specdoc.Info) Option {
	return func(c *config) error {
		c.info = info
		return nil
	}
}

// WithSecurity sets the globally applied security scheme. nil disables it.
func WithSecurity(s *specdoc.SecurityScheme) Option {
	return func(c *config) error {
		c.security = s
		return nil
	}
}

// WithTagDescriptions attaches descriptions to derived tags, keyed by tag
// name.
func WithTagDescriptions(descriptions map[string]string) Option {
	return func(c *config) error {
		c.tagDescriptions = descriptions
		return nil
	}
}

// WithPruneSchemas drops schemas that no surviving operation reaches,
// such as those only a collision loser referenced.
func WithPruneSchemas(enabled bool) Option {
	return func(c *config) error {
		c.pruneSchemas = enabled
		return nil
	}
}

// WithLogger sets the logger.
func WithLogger(l sourcemodel.Logger) Option {
	return func(c *config) error {
		c.logger = sourcemodel.OrNop(l)
		return nil
	}
}

// Result is the assembled document with its diagnostics.
type Result struct {
	Document *specdoc.Document
	// Issues are the PathCollision diagnostics in traversal order.
	Issues     []Issue
	Collisions *CollisionReport
}

// TagFor derives the tag of a resource class: its simple name without a
// "Resource" suffix.
// Example: "org.keycloak.services.resources.admin.UsersResource" -> "Users"
func TagFor(typeName string) string {
	return naming.StripSuffix(sourcemodel.SimpleName(typeName), "Resource")
}

// BaseOperationID returns the id an operation gets before uniqueness
// suffixes: "{SimpleType}_{method}".
func BaseOperationID(src specdoc.Source) string {
	return sourcemodel.SimpleName(src.Type) + "_" + src.Method
}

// Assemble builds the document from ops, given in traversal order, and the
// synthesized schemas. ops are modified in place: collision losers are
// dropped and the survivors get their tags and operation ids.
func Assemble(ops []*specdoc.Operation, schemas []*specdoc.SchemaDefinition, opts ...Option) (*Result, error) {
	cfg := &config{strategy: StrategyAcceptLeft, logger: sourcemodel.NopLogger{}}
	for _, opt := range opts {
		if err := opt(cfg); err != nil {
			return nil, err
		}
	}

	type groupKey struct{ verb, path string }
	var (
		order  []groupKey
		groups = make(map[groupKey][]*specdoc.Operation)
	)
	for _, op := range ops {
		k := groupKey{strings.ToUpper(op.Verb), op.Path}
		if _, ok := groups[k]; !ok {
			order = append(order, k)
		}
		groups[k] = append(groups[k], op)
	}

	res := &Result{Collisions: NewCollisionReport()}
	kept := make([]*specdoc.Operation, 0, len(order))
	for _, k := range order {
		op, found, err := resolveGroup(groups[k], cfg.strategy, res.Collisions)
		if err != nil {
			cfg.logger.Error("path collision", "verb", k.verb, "path", k.path, "error", err)
			return nil, fmt.Errorf("assembler: %w", err)
		}
		for _, i := range found {
			cfg.logger.Warn("path collision", "verb", i.Verb, "path", i.Path, "dropped", i.Location(), "kept", i.Subject)
		}
		res.Issues = append(res.Issues, found...)
		kept = append(kept, op)
	}

	slices.SortStableFunc(kept, func(a, b *specdoc.Operation) int {
		return cmp.Or(
			strings.Compare(a.Path, b.Path),
			cmp.Compare(specdoc.VerbRank(a.Verb), specdoc.VerbRank(b.Verb)),
		)
	})

	doc := &specdoc.Document{Info: cfg.info, Security: cfg.security}
	assignOperationIDs(kept)
	doc.Tags = assignTags(kept, cfg.tagDescriptions)

	for _, op := range kept {
		if n := len(doc.Paths); n > 0 && doc.Paths[n-1].Path == op.Path {
			doc.Paths[n-1].Operations = append(doc.Paths[n-1].Operations, op)
			continue
		}
		doc.Paths = append(doc.Paths, &specdoc.PathItem{Path: op.Path, Operations: []*specdoc.Operation{op}})
	}

	doc.Schemas = slices.Clone(schemas)
	if cfg.pruneSchemas {
		doc.Schemas = specdoc.ReachableSchemas(kept, doc.Schemas)
		if dropped := len(schemas) - len(doc.Schemas); dropped > 0 {
			cfg.logger.Debug("pruned unreferenced schemas", "count", dropped)
		}
	}
	slices.SortFunc(doc.Schemas, func(a, b *specdoc.SchemaDefinition) int {
		return strings.Compare(a.Name, b.Name)
	})

	res.Document = doc
	cfg.logger.Debug("assembled document",
		"paths", len(doc.Paths),
		"operations", len(kept),
		"schemas", len(doc.Schemas),
		"collisions", res.Collisions.TotalCollisions)
	return res, nil
}

// assignOperationIDs sets unique ids on ops in document order.
func assignOperationIDs(ops []*specdoc.Operation) {
	taken := make(map[string]bool, len(ops))
	counts := make(map[string]int, len(ops))
	for _, op := range ops {
		base := BaseOperationID(op.Source)
		id := base
		for taken[id] {
			counts[base]++
			id = base + "_" + strconv.Itoa(counts[base]+1)
		}
		taken[id] = true
		op.OperationID = id
	}
}

// assignTags tags every operation with its owning resource and returns the
// sorted tag list.
func assignTags(ops []*specdoc.Operation, descriptions map[string]string) []specdoc.Tag {
	seen := make(map[string]bool)
	var tags []specdoc.Tag
	for _, op := range ops {
		tag := TagFor(op.Source.Type)
		if tag == "" {
			continue
		}
		op.Tags = []string{tag}
		if !seen[tag] {
			seen[tag] = true
			tags = append(tags, specdoc.Tag{Name: tag, Description: descriptions[tag]})
		}
	}
	slices.SortFunc(tags, func(a, b specdoc.Tag) int { return strings.Compare(a.Name, b.Name) })
	return tags
}
