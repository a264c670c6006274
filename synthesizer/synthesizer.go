// Package synthesizer converts Source Model type expressions into OpenAPI
// type references and reusable schema definitions.
//
// Every named type identity is synthesized at most once. The memo is keyed
// by the canonical type expression (qualified class name plus canonical
// type arguments) and tracks in-progress entries, so self-referential and
// mutually recursive representations resolve to named references instead
// of recursing:
//
//	s := synthesizer.New(model)
//	ref, err := s.Resolve(ctx, sourcemodel.MustParseType("List<GroupRepresentation>"))
//	// ref is array<#/GroupRepresentation>; GroupRepresentation.subGroups refers back to itself
//
// A Synthesizer is safe for concurrent use. The first caller to reach an
// identity builds it; other callers get the named reference at once and
// [Synthesizer.Definition] waits for the owner to finish.
package synthesizer

import (
	"cmp"
	"context"
	"fmt"
	"slices"
	"strings"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/erraggy/restdoc/internal/issues"
	"github.com/erraggy/restdoc/oaserrors"
	"github.com/erraggy/restdoc/sourcemodel"
	"github.com/erraggy/restdoc/specdoc"
)

// Issue is a diagnostic raised during synthesis.
type Issue = issues.Issue

// Synthesizer maps type expressions to TypeRefs and schema definitions.
type Synthesizer struct {
	model         *sourcemodel.Model
	logger        sourcemodel.Logger
	flatten       bool
	schemaNaming  SchemaNamingStrategy
	genericNaming GenericNamingStrategy

	namer *namer
	cache *schemaCache

	mu         sync.Mutex
	unresolved map[string]Issue
}

// Option configures a Synthesizer.
type Option func(*Synthesizer)

// WithLogger sets the logger. Defaults to sourcemodel.NopLogger.
func WithLogger(l sourcemodel.Logger) Option {
	return func(s *Synthesizer) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithFlattenInheritance copies supertype properties into each subtype
// instead of referencing the supertype schema as a base.
func WithFlattenInheritance(flatten bool) Option {
	return func(s *Synthesizer) { s.flatten = flatten }
}

// WithSchemaNaming sets how class identities become schema names.
// Unknown values fall back to SchemaNamingSimple; use ParseSchemaNaming
// to validate user input.
func WithSchemaNaming(strategy SchemaNamingStrategy) Option {
	return func(s *Synthesizer) { s.schemaNaming = strategy }
}

// WithGenericNaming sets how generic instantiations are named.
func WithGenericNaming(strategy GenericNamingStrategy) Option {
	return func(s *Synthesizer) { s.genericNaming = strategy }
}

// New creates a Synthesizer over model. Class schema names are assigned
// immediately from the sorted class list.
func New(model *sourcemodel.Model, opts ...Option) *Synthesizer {
	if model == nil {
		model = &sourcemodel.Model{}
	}
	s := &Synthesizer{
		model:         model,
		logger:        sourcemodel.NopLogger{},
		schemaNaming:  SchemaNamingSimple,
		genericNaming: GenericNamingUnderscore,
		unresolved:    make(map[string]Issue),
	}
	for _, opt := range opts {
		opt(s)
	}
	if !slices.Contains(ValidSchemaNamingStrategies(), s.schemaNaming) {
		s.schemaNaming = SchemaNamingSimple
	}
	if !slices.Contains(ValidGenericNamingStrategies(), s.genericNaming) {
		s.genericNaming = GenericNamingUnderscore
	}

	s.namer = newNamer(model, s.schemaNaming, s.genericNaming)
	s.cache = newSchemaCache()
	for qualified, name := range s.namer.classes {
		s.cache.reserve(name, qualified)
	}
	return s
}

// Resolve returns the TypeRef for expr, synthesizing any schema
// definitions it names. A nil expression has no content.
func (s *Synthesizer) Resolve(ctx context.Context, expr *sourcemodel.TypeExpr) (specdoc.TypeRef, error) {
	if expr == nil {
		return specdoc.None(), nil
	}
	return s.resolve(ctx, expr, nil)
}

// Definition returns the schema definition for identity, a type expression
// naming a model class such as "UserRepresentation" or "Page<User>". It
// synthesizes the definition when needed and otherwise waits for the
// goroutine building it. Repeated calls return the same pointer.
func (s *Synthesizer) Definition(ctx context.Context, identity string) (*specdoc.SchemaDefinition, error) {
	expr, err := sourcemodel.ParseType(identity)
	if err != nil {
		return nil, &oaserrors.ConfigError{Option: "identity", Value: identity, Cause: err}
	}
	c, ok := s.model.Class(expr.Name)
	if !ok || expr.Dims > 0 {
		return nil, &oaserrors.ConfigError{
			Option:  "identity",
			Value:   identity,
			Message: "does not name a model class",
		}
	}

	args := bounded(s.canonicalArgs(expr.Args))
	if e, ok := s.cache.get(identityOf(c, args)); ok {
		return e.wait(ctx)
	}
	if _, err := s.reference(ctx, c, args); err != nil {
		return nil, err
	}
	e, _ := s.cache.get(identityOf(c, args))
	return e.wait(ctx)
}

// Finalize renames generic instance schemas in sorted identity order, so
// that a name never depends on which caller reached its identity first.
// It rewrites the references inside the synthesized definitions and
// returns old → new for each renamed schema; references held elsewhere,
// such as in operations, are the caller's to rewrite. Finalize must not
// run concurrently with Resolve, Definition or Warm.
func (s *Synthesizer) Finalize() map[string]string {
	entries := s.cache.entries()
	slices.SortFunc(entries, func(a, b *entry) int { return strings.Compare(a.identity, b.identity) })

	taken := make(map[string]bool, len(s.namer.classes)+len(entries))
	for _, name := range s.namer.classes {
		taken[name] = true
	}
	renames := make(map[string]string)
	for _, e := range entries {
		if len(e.args) == 0 {
			continue
		}
		name := s.namer.forInstance(s.model, e.class, e.args, e.identity, func(n string) bool { return taken[n] })
		taken[name] = true
		if name != e.name {
			renames[e.name] = name
		}
	}
	s.cache.rename(renames)
	return renames
}

// Definitions returns every completed schema definition sorted by name.
func (s *Synthesizer) Definitions() []*specdoc.SchemaDefinition {
	var defs []*specdoc.SchemaDefinition
	for _, e := range s.cache.entries() {
		if e.finished() && e.err == nil && e.def != nil {
			defs = append(defs, e.def)
		}
	}
	slices.SortFunc(defs, func(a, b *specdoc.SchemaDefinition) int {
		return strings.Compare(a.Name, b.Name)
	})
	return defs
}

// Issues returns the UnresolvedType diagnostics, one per type identity,
// sorted by identity.
func (s *Synthesizer) Issues() []Issue {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]Issue, 0, len(s.unresolved))
	for _, i := range s.unresolved {
		out = append(out, i)
	}
	slices.SortFunc(out, func(a, b Issue) int { return cmp.Compare(a.Subject, b.Subject) })
	return out
}

// Warm resolves exprs in parallel with at most limit goroutines
// (unbounded when limit <= 0).
func (s *Synthesizer) Warm(ctx context.Context, limit int, exprs ...*sourcemodel.TypeExpr) error {
	g, gctx := errgroup.WithContext(ctx)
	if limit > 0 {
		g.SetLimit(limit)
	}
	for _, expr := range exprs {
		g.Go(func() error {
			_, err := s.Resolve(gctx, expr)
			return err
		})
	}
	return g.Wait()
}

// scope binds the type parameters of the class being synthesized.
type scope struct {
	bindings map[string]*sourcemodel.TypeExpr
	params   []string
}

func newScope(c *sourcemodel.Class, args []*sourcemodel.TypeExpr) *scope {
	sc := &scope{params: c.TypeParams}
	for i, p := range c.TypeParams {
		if i >= len(args) {
			break
		}
		if sc.bindings == nil {
			sc.bindings = make(map[string]*sourcemodel.TypeExpr)
		}
		sc.bindings[p] = args[i]
	}
	return sc
}

func (sc *scope) isTypeVar(name string) bool {
	return sc != nil && slices.Contains(sc.params, name)
}

func (sc *scope) substitute(t *sourcemodel.TypeExpr) *sourcemodel.TypeExpr {
	if sc == nil {
		return t
	}
	return t.Substitute(sc.bindings)
}

// free returns a scope that knows the type parameters but binds none.
// Parts of an already substituted expression resolve under it, so a
// binding that mentions a parameter name is never expanded twice.
func (sc *scope) free() *scope {
	if sc == nil {
		return nil
	}
	return &scope{params: sc.params}
}

func (s *Synthesizer) resolve(ctx context.Context, t *sourcemodel.TypeExpr, sc *scope) (specdoc.TypeRef, error) {
	if err := ctx.Err(); err != nil {
		return specdoc.TypeRef{}, err
	}
	t = sc.substitute(t)
	inner := sc.free()

	if t.Dims > 0 {
		if isByteArray(t) {
			return specdoc.Binary(), nil
		}
		items, err := s.resolve(ctx, t.Elem(), inner)
		if err != nil {
			return specdoc.TypeRef{}, err
		}
		return specdoc.ArrayOf(items, false), nil
	}

	// an exact qualified match always wins over the built-in tables
	if c, ok := s.model.Class(t.Name); ok && c.Name == t.Name {
		return s.reference(ctx, c, s.canonicalArgs(t.Args))
	}
	if sc.isTypeVar(t.Name) {
		return specdoc.FreeForm(), nil
	}

	name := t.SimpleName()
	switch {
	case noContent[name]:
		return specdoc.None(), nil
	case len(t.Args) == 0 && primitives[name].Kind == specdoc.KindPrimitive:
		return primitives[name], nil
	case freeForm[name]:
		return specdoc.FreeForm(), nil
	}

	switch kind := containerOf(t); kind {
	case listContainer, setContainer:
		items := specdoc.FreeForm()
		if a := t.Arg(0); a != nil {
			var err error
			if items, err = s.resolve(ctx, a, inner); err != nil {
				return specdoc.TypeRef{}, err
			}
		}
		return specdoc.ArrayOf(items, kind == setContainer), nil
	case mapContainer, multiMapContainer:
		a := t.Arg(1)
		if a == nil {
			return specdoc.FreeForm(), nil
		}
		values, err := s.resolve(ctx, a, inner)
		if err != nil {
			return specdoc.TypeRef{}, err
		}
		if kind == multiMapContainer {
			values = specdoc.ArrayOf(values, false)
		}
		return specdoc.MapOf(values), nil
	case optionalContainer:
		if a := t.Arg(0); a != nil {
			return s.resolve(ctx, a, inner)
		}
		return specdoc.FreeForm(), nil
	}

	if c, ok := s.model.Class(t.Name); ok {
		return s.reference(ctx, c, s.canonicalArgs(t.Args))
	}

	s.reportUnresolved(t)
	return specdoc.FreeForm(), nil
}

// reference returns the named reference for c instantiated with args,
// building the definition when this caller claims it.
func (s *Synthesizer) reference(ctx context.Context, c *sourcemodel.Class, args []*sourcemodel.TypeExpr) (specdoc.TypeRef, error) {
	if b := bounded(args); len(b) != len(args) {
		s.logger.Debug("type arguments nested too deeply, using raw class", "type", c.Name, "depth", argDepth(args))
		args = b
	}
	identity := identityOf(c, args)
	e, owner := s.cache.claim(identity, c, args, func(taken func(string) bool) string {
		if len(args) == 0 {
			return s.namer.forClass(c)
		}
		return s.namer.forInstance(s.model, c, args, identity, taken)
	})
	if !owner {
		return specdoc.Ref(e.name), nil
	}

	s.logger.Debug("synthesizing schema", "identity", identity, "name", e.name)
	def, err := s.build(ctx, c, args, e)
	e.finish(def, err)
	if err != nil {
		return specdoc.TypeRef{}, fmt.Errorf("synthesizer: %s: %w", identity, err)
	}
	return specdoc.Ref(e.name), nil
}

func (s *Synthesizer) build(ctx context.Context, c *sourcemodel.Class, args []*sourcemodel.TypeExpr, e *entry) (*specdoc.SchemaDefinition, error) {
	def := &specdoc.SchemaDefinition{
		Name:       e.name,
		Identity:   e.identity,
		Deprecated: c.Deprecated,
	}
	if c.Doc != nil {
		def.Description = strings.TrimSpace(c.Doc.Summary)
	}
	if c.IsEnum() {
		def.Enum = slices.Clone(c.Constants)
		return def, nil
	}

	sc := newScope(c, args)
	if s.flatten {
		props, err := s.flattened(ctx, c, sc, map[string]bool{c.Name: true})
		if err != nil {
			return nil, err
		}
		def.Properties = props
		return def, nil
	}

	if super, ok := s.supertype(c); ok {
		ref, err := s.resolve(ctx, c.ExtendsType(), sc)
		if err != nil {
			return nil, err
		}
		if ref.Kind == specdoc.KindRef && !super.IsEnum() {
			def.Base = ref.Name
		}
	}
	props, err := s.properties(ctx, c, sc)
	if err != nil {
		return nil, err
	}
	def.Properties = props
	return def, nil
}

// flattened collects the properties of c and its model supertypes, with
// subtype properties replacing inherited ones of the same name.
func (s *Synthesizer) flattened(ctx context.Context, c *sourcemodel.Class, sc *scope, seen map[string]bool) ([]*specdoc.Property, error) {
	var props []*specdoc.Property
	if super, ok := s.supertype(c); ok && !seen[super.Name] {
		seen[super.Name] = true
		ext := sc.substitute(c.ExtendsType())
		inherited, err := s.flattened(ctx, super, newScope(super, s.canonicalArgs(ext.Args)), seen)
		if err != nil {
			return nil, err
		}
		props = inherited
	}

	own, err := s.properties(ctx, c, sc)
	if err != nil {
		return nil, err
	}
	for _, p := range own {
		if i := slices.IndexFunc(props, func(q *specdoc.Property) bool { return q.Name == p.Name }); i >= 0 {
			props[i] = p
			continue
		}
		props = append(props, p)
	}
	return props, nil
}

// supertype returns the model class c extends, if any.
func (s *Synthesizer) supertype(c *sourcemodel.Class) (*sourcemodel.Class, bool) {
	ext := c.ExtendsType()
	if ext == nil {
		return nil, false
	}
	super, ok := s.model.Class(ext.Name)
	if !ok {
		s.logger.Debug("supertype outside the model", "type", c.Name, "extends", ext.String())
	}
	return super, ok
}

// canonicalArgs qualifies model class names inside args so that equal
// instantiations share one identity.
func (s *Synthesizer) canonicalArgs(args []*sourcemodel.TypeExpr) []*sourcemodel.TypeExpr {
	if len(args) == 0 {
		return nil
	}
	out := make([]*sourcemodel.TypeExpr, len(args))
	for i, a := range args {
		out[i] = s.canonical(a)
	}
	return out
}

func (s *Synthesizer) canonical(t *sourcemodel.TypeExpr) *sourcemodel.TypeExpr {
	out := &sourcemodel.TypeExpr{Name: t.Name, Dims: t.Dims, Args: s.canonicalArgs(t.Args)}
	if c, ok := s.model.Class(t.Name); ok {
		out.Name = c.Name
	}
	return out
}

// maxArgDepth bounds the nesting of type arguments within one identity.
// Polymorphic recursion, such as Node<T> holding a Node<List<T>>, would
// otherwise produce a new identity on every level.
const maxArgDepth = 4

// bounded returns args, or nil when they nest deeper than maxArgDepth so
// that the raw class is used instead.
func bounded(args []*sourcemodel.TypeExpr) []*sourcemodel.TypeExpr {
	if argDepth(args) > maxArgDepth {
		return nil
	}
	return args
}

func argDepth(args []*sourcemodel.TypeExpr) int {
	depth := 0
	for _, a := range args {
		depth = max(depth, 1+argDepth(a.Args))
	}
	return depth
}

func identityOf(c *sourcemodel.Class, args []*sourcemodel.TypeExpr) string {
	return (&sourcemodel.TypeExpr{Name: c.Name, Args: args}).String()
}

func (s *Synthesizer) reportUnresolved(t *sourcemodel.TypeExpr) {
	identity := t.String()
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.unresolved[identity]; ok {
		return
	}
	s.logger.Warn("unresolved type", "type", identity)
	s.unresolved[identity] = Issue{
		Kind:     issues.KindUnresolvedType,
		Severity: issues.KindUnresolvedType.DefaultSeverity(),
		Subject:  identity,
		Message:  fmt.Sprintf("type %q matches no primitive, container or model class; emitted as a free-form object", identity),
	}
}
