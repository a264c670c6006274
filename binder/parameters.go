// Package binder turns a resolved operation stub into bound parameters,
// a request body and documentation text.
//
// Parameter binding is ordered and deterministic: path parameters come
// first in template order (inherited ones outermost first, then the
// operation's own), followed by query, header and cookie parameters in
// declaration order. Form fields and the body entity go to the request
// body. Two declarations with the same name and location are a
// [oaserrors.BindingConflictError]; the caller drops the operation.
//
// [BindDocumentation] matches a documented parameter entry by exact name
// against either the wire name (the @QueryParam, @PathParam or similar
// value) or the declared method parameter name.
//
// Binding is a pure function of the stub and the model, so independent
// operations may be bound concurrently.
package binder

import (
	"context"
	"fmt"
	"slices"
	"strconv"

	"github.com/erraggy/restdoc/internal/pathutil"
	"github.com/erraggy/restdoc/oaserrors"
	"github.com/erraggy/restdoc/resolver"
	"github.com/erraggy/restdoc/sourcemodel"
	"github.com/erraggy/restdoc/specdoc"
)

// Media types with binding semantics.
const (
	MediaJSON          = "application/json"
	MediaForm          = "application/x-www-form-urlencoded"
	MediaMultipart     = "multipart/form-data"
	MediaOctetStream   = "application/octet-stream"
	aggregateMultipart = "multipart"
	aggregateContent   = "content"
)

// TypeResolver maps a declared type to a TypeRef. The schema synthesizer
// implements it.
type TypeResolver interface {
	Resolve(ctx context.Context, expr *sourcemodel.TypeExpr) (specdoc.TypeRef, error)
}

// DuplicatePolicy decides what happens when two path parameters of one
// operation share a name, typically a parent and a child both using {id}.
type DuplicatePolicy string

const (
	// DuplicateExclude reports a binding conflict and drops the operation.
	DuplicateExclude DuplicatePolicy = "exclude"
	// DuplicateSuffix renames the parameters id1, id2, ... and rewrites the
	// template.
	DuplicateSuffix DuplicatePolicy = "suffix"
)

// ValidDuplicatePolicies returns the accepted policy names.
func ValidDuplicatePolicies() []string {
	return []string{string(DuplicateExclude), string(DuplicateSuffix)}
}

// Option configures binding.
type Option func(*config) error

type config struct {
	duplicates DuplicatePolicy
	logger     sourcemodel.Logger
}

// WithDuplicatePolicy sets the duplicate path parameter policy. Default is
// DuplicateExclude.
func WithDuplicatePolicy(p DuplicatePolicy) Option {
	return func(c *config) error {
		if !slices.Contains(ValidDuplicatePolicies(), string(p)) {
			return &oaserrors.ConfigError{Option: "duplicate-policy", Value: p, Message: "must be one of exclude, suffix"}
		}
		c.duplicates = p
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

func applyOptions(opts []Option) (*config, error) {
	c := &config{duplicates: DuplicateExclude, logger: sourcemodel.NopLogger{}}
	for _, opt := range opts {
		if err := opt(c); err != nil {
			return nil, err
		}
	}
	return c, nil
}

// Binding is the result of binding one operation stub.
type Binding struct {
	Stub *resolver.OperationStub
	// Path is the operation template; it differs from Stub.Path only when
	// duplicate path parameters were renamed.
	Path string
	// Parameters are path, query, header and cookie parameters in order.
	Parameters []*specdoc.Parameter
	// RequestBody is nil when the operation takes no entity.
	RequestBody *specdoc.RequestBody
	// Summary and Description are filled by BindDocumentation.
	Summary     string
	Description string

	origins map[*specdoc.Parameter]origin
}

// origin records where a bound parameter was declared.
type origin struct {
	declared string
	// factory is set for inherited path parameters.
	factory *sourcemodel.Method
}

// All returns every bound parameter in binding order, request body
// fields and entity last.
func (b *Binding) All() []*specdoc.Parameter {
	out := slices.Clone(b.Parameters)
	if b.RequestBody != nil {
		out = append(out, b.RequestBody.Fields...)
		if b.RequestBody.Entity != nil {
			out = append(out, b.RequestBody.Entity)
		}
	}
	return out
}

// BindParameters assembles the ordered parameter list and request body of
// stub. A *oaserrors.BindingConflictError means the operation must be
// excluded; any other error aborts.
func BindParameters(ctx context.Context, stub *resolver.OperationStub, types TypeResolver, opts ...Option) (*Binding, error) {
	cfg, err := applyOptions(opts)
	if err != nil {
		return nil, err
	}
	pb := &paramBinder{
		ctx:   ctx,
		cfg:   cfg,
		stub:  stub,
		types: types,
		b: &Binding{
			Stub:    stub,
			Path:    stub.Path,
			origins: make(map[*specdoc.Parameter]origin),
		},
		seen: make(map[key]bool),
	}
	if err := pb.bindPath(); err != nil {
		return nil, err
	}
	if err := pb.bindDeclared(); err != nil {
		return nil, err
	}
	pb.bindAggregate()
	return pb.b, nil
}

type key struct {
	name string
	in   specdoc.Location
}

type paramBinder struct {
	ctx   context.Context
	cfg   *config
	stub  *resolver.OperationStub
	types TypeResolver
	b     *Binding
	seen  map[key]bool
}

// pathDecl is a path parameter declaration available to the template.
type pathDecl struct {
	param   *sourcemodel.Param
	factory *sourcemodel.Method
	used    bool
}

func (pb *paramBinder) bindPath() error {
	var decls []*pathDecl
	for _, inh := range pb.stub.Node.Inherited {
		decls = append(decls, &pathDecl{param: inh.Param, factory: inh.Factory})
	}
	for _, p := range pb.stub.Method.Params {
		if p.Source == sourcemodel.SourcePath {
			decls = append(decls, &pathDecl{param: p})
		}
	}

	vars := pathutil.Params(pb.b.Path)
	counts := make(map[string]int, len(vars))
	for _, v := range vars {
		counts[v]++
	}
	occurrence := make(map[string]int, len(vars))

	for _, v := range vars {
		name := v
		if counts[v] > 1 {
			if pb.cfg.duplicates != DuplicateSuffix {
				return pb.conflict(v, specdoc.InPath)
			}
			occurrence[v]++
			name = v + strconv.Itoa(occurrence[v])
			pb.b.Path = pathutil.RenameParam(pb.b.Path, v, name, 0)
		}

		param := &specdoc.Parameter{Name: name, In: specdoc.InPath, Required: true}
		if d := takeDecl(decls, v); d != nil {
			typ, err := pb.resolve(d.param)
			if err != nil {
				return err
			}
			param.Type = typ
			param.Declared = d.param.Name
			pb.b.origins[param] = origin{declared: d.param.Name, factory: d.factory}
		} else {
			param.Type = specdoc.PlainString()
			param.Synthesized = true
			pb.cfg.logger.Debug("synthesized undeclared path parameter", "operation", pb.stub.ID(), "name", v)
		}
		pb.seen[key{name, specdoc.InPath}] = true
		pb.b.Parameters = append(pb.b.Parameters, param)
	}

	for _, d := range decls {
		if d.used {
			continue
		}
		if counts[d.param.WireName()] > 0 {
			// a second declaration for a variable that is already bound
			return pb.conflict(d.param.WireName(), specdoc.InPath)
		}
		pb.cfg.logger.Warn("path parameter not in template",
			"operation", pb.stub.ID(), "name", d.param.WireName(), "path", pb.stub.Path)
	}
	return nil
}

// takeDecl returns the first unused declaration bound to variable v.
func takeDecl(decls []*pathDecl, v string) *pathDecl {
	for _, d := range decls {
		if !d.used && d.param.WireName() == v {
			d.used = true
			return d
		}
	}
	return nil
}

func (pb *paramBinder) bindDeclared() error {
	meth := pb.stub.Method
	for _, p := range meth.Params {
		var in specdoc.Location
		switch p.EffectiveSource() {
		case sourcemodel.SourcePath, sourcemodel.SourceContext:
			continue
		case sourcemodel.SourceQuery:
			in = specdoc.InQuery
		case sourcemodel.SourceHeader:
			in = specdoc.InHeader
		case sourcemodel.SourceCookie:
			in = specdoc.InCookie
		case sourcemodel.SourceForm:
			in = specdoc.InForm
		case sourcemodel.SourceBody:
			in = specdoc.InBody
		}

		name := p.WireName()
		if in == specdoc.InBody && pb.body() != nil && pb.body().Entity != nil {
			// one entity per request; a second unannotated parameter is a
			// conflict on the body itself
			return pb.conflict(name, in)
		}
		if pb.seen[key{name, in}] {
			return pb.conflict(name, in)
		}
		pb.seen[key{name, in}] = true

		typ, err := pb.resolve(p)
		if err != nil {
			return err
		}
		param := &specdoc.Parameter{
			Name:     name,
			In:       in,
			Type:     typ,
			Required: in == specdoc.InBody || isRequired(p),
			Default:  p.Default,
			Declared: p.Name,
		}
		pb.b.origins[param] = origin{declared: p.Name}

		switch in {
		case specdoc.InForm:
			body := pb.ensureBody(MediaForm)
			body.Fields = append(body.Fields, param)
			if param.Required {
				body.Required = true
			}
		case specdoc.InBody:
			body := pb.ensureBody(MediaJSON)
			body.Entity = param
			body.Required = true
		default:
			pb.b.Parameters = append(pb.b.Parameters, param)
		}
	}
	return nil
}

// bindAggregate synthesizes the single opaque body parameter for
// operations that accept multipart or octet-stream content without
// declaring any form field or body parameter.
func (pb *paramBinder) bindAggregate() {
	if pb.body() != nil {
		return
	}
	consumes := pb.consumes()
	var media, name string
	switch {
	case slices.Contains(consumes, MediaMultipart):
		media, name = MediaMultipart, aggregateMultipart
	case slices.Contains(consumes, MediaOctetStream):
		media, name = MediaOctetStream, aggregateContent
	default:
		return
	}
	param := &specdoc.Parameter{
		Name:        name,
		In:          specdoc.InBody,
		Type:        specdoc.Binary(),
		Required:    true,
		Synthesized: true,
	}
	pb.b.RequestBody = &specdoc.RequestBody{
		ContentTypes: []string{media},
		Required:     true,
		Entity:       param,
	}
	pb.cfg.logger.Debug("synthesized aggregate body parameter", "operation", pb.stub.ID(), "name", name, "media", media)
}

func (pb *paramBinder) body() *specdoc.RequestBody {
	return pb.b.RequestBody
}

func (pb *paramBinder) ensureBody(fallback string) *specdoc.RequestBody {
	if pb.b.RequestBody == nil {
		media := pb.consumes()
		if len(media) == 0 {
			media = []string{fallback}
		}
		pb.b.RequestBody = &specdoc.RequestBody{ContentTypes: slices.Clone(media)}
	}
	return pb.b.RequestBody
}

// consumes returns the method media types, falling back to the class.
func (pb *paramBinder) consumes() []string {
	if len(pb.stub.Method.Consumes) > 0 {
		return pb.stub.Method.Consumes
	}
	return pb.stub.Owner().Consumes
}

func (pb *paramBinder) resolve(p *sourcemodel.Param) (specdoc.TypeRef, error) {
	expr := p.ParsedType()
	if inner := optionalElem(expr); inner != nil {
		expr = inner
	}
	typ, err := pb.types.Resolve(pb.ctx, expr)
	if err != nil {
		return specdoc.TypeRef{}, fmt.Errorf("binder: %s parameter %q: %w", pb.stub.ID(), p.Name, err)
	}
	return typ, nil
}

func (pb *paramBinder) conflict(name string, in specdoc.Location) error {
	return &oaserrors.BindingConflictError{
		Name:     name,
		Location: string(in),
		Type:     pb.stub.Owner().Name,
		Method:   pb.stub.Method.Name,
	}
}

// isRequired applies the non-path rule: required unless a default value,
// a nullable marker or an Optional type says otherwise.
func isRequired(p *sourcemodel.Param) bool {
	return p.Default == nil && !p.Nullable && optionalElem(p.ParsedType()) == nil
}

// optionalElem returns T for Optional<T>, or nil.
func optionalElem(t *sourcemodel.TypeExpr) *sourcemodel.TypeExpr {
	if t == nil || t.IsArray() || len(t.Args) != 1 {
		return nil
	}
	if t.SimpleName() == "Optional" {
		return t.Args[0]
	}
	return nil
}
