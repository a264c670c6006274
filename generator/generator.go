package generator

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/erraggy/restdoc/assembler"
	"github.com/erraggy/restdoc/binder"
	"github.com/erraggy/restdoc/internal/issues"
	"github.com/erraggy/restdoc/internal/severity"
	"github.com/erraggy/restdoc/oaserrors"
	"github.com/erraggy/restdoc/resolver"
	"github.com/erraggy/restdoc/sourcemodel"
	"github.com/erraggy/restdoc/specdoc"
	"github.com/erraggy/restdoc/synthesizer"
)

// Severity indicates the severity level of a diagnostic
type Severity = severity.Severity

const (
	// SeverityInfo marks notices about generation choices
	SeverityInfo = severity.SeverityInfo
	// SeverityWarning marks problems the engine worked around
	SeverityWarning = severity.SeverityWarning
	// SeverityError marks problems that removed a branch or an operation
	SeverityError = severity.SeverityError
)

// Issue is a single diagnostic raised by any stage of generation
type Issue = issues.Issue

// BearerScheme is the security scheme applied to every operation unless
// disabled with WithSecurity(false).
var BearerScheme = specdoc.SecurityScheme{Name: "access_token", Scheme: "bearer", BearerFormat: "JWT"}

// Result contains the generated document and every diagnostic raised
// while producing it.
type Result struct {
	// Document is the assembled document
	Document *specdoc.Document
	// Source is the file path or identifier the model was loaded from
	Source string
	// Issues in stage order: resolver, then operations in traversal order,
	// then schemas, then collisions
	Issues []Issue
	// ErrorCount is the number of error-severity diagnostics
	ErrorCount int
	// WarningCount is the number of warnings
	WarningCount int
	// InfoCount is the number of info messages
	InfoCount int
	// NodeCount is the number of mounted resource nodes
	NodeCount int
	// DiscoveredOperations is the number of operation stubs found by the
	// resolver, before binding conflicts and collisions
	DiscoveredOperations int
	// SkippedOperations is the number of operations dropped for a
	// parameter binding conflict
	SkippedOperations int
	// Collisions summarizes path collisions
	Collisions *assembler.CollisionReport
	// Stats counts the document contents
	Stats specdoc.Stats
	// LoadTime is the time taken to load the Source Model
	LoadTime time.Duration
	// GenerateTime is the time taken to run the pipeline
	GenerateTime time.Duration
}

// HasErrors returns true if any error-severity diagnostic was raised
func (r *Result) HasErrors() bool {
	return r.ErrorCount > 0
}

// HasWarnings returns true if there are any warnings
func (r *Result) HasWarnings() bool {
	return r.WarningCount > 0
}

// IssuesOfKind returns the diagnostics of the given kind in result order
func (r *Result) IssuesOfKind(kind issues.Kind) []Issue {
	return issues.List(r.Issues).OfKind(kind)
}

// GenerateWithOptions generates a document from a Source Model using
// functional options.
//
// Example:
//
//	result, err := generator.GenerateWithOptions(
//	    generator.WithFilePath("keycloak.yaml"),
//	    generator.WithTitle("Keycloak Admin REST API"),
//	    generator.WithCollisionStrategy("accept-left"),
//	)
func GenerateWithOptions(opts ...Option) (*Result, error) {
	return GenerateContext(context.Background(), opts...)
}

// GenerateContext is GenerateWithOptions with a context. Cancelling ctx
// stops scheduling new binding work and returns ctx.Err().
func GenerateContext(ctx context.Context, opts ...Option) (*Result, error) {
	cfg, err := applyOptions(opts...)
	if err != nil {
		return nil, fmt.Errorf("generator: invalid options: %w", err)
	}

	loadStart := time.Now()
	model, err := cfg.load(ctx)
	if err != nil {
		return nil, fmt.Errorf("generator: failed to load source model: %w", err)
	}
	loadTime := time.Since(loadStart)

	p := &pipeline{cfg: cfg, model: model, logger: cfg.logger.With("source", model.Source)}
	result, err := p.run(ctx)
	if err != nil {
		return nil, err
	}
	result.LoadTime = loadTime

	if cfg.strictMode && result.ErrorCount > 0 {
		return result, fmt.Errorf("generator: generation failed in strict mode: %d error(s), %d warning(s)",
			result.ErrorCount, result.WarningCount)
	}
	return result, nil
}

// pipeline runs the stages over one validated model.
type pipeline struct {
	cfg    *generateConfig
	model  *sourcemodel.Model
	logger sourcemodel.Logger
	synth  *synthesizer.Synthesizer
}

// slot holds the outcome of binding one operation stub. Slots are written
// by exactly one goroutine each.
type slot struct {
	op      *specdoc.Operation
	issues  []Issue
	skipped bool
}

func (p *pipeline) run(ctx context.Context) (*Result, error) {
	start := time.Now()

	tree, err := resolver.New(p.model,
		resolver.WithLogger(p.logger),
		resolver.WithImplicitPaths(p.cfg.implicitPaths),
	).Resolve(ctx)
	if err != nil {
		return nil, fmt.Errorf("generator: %w", err)
	}
	p.logger.Info("resolved resource tree", "nodes", tree.NodeCount, "operations", len(tree.Operations))

	p.synth = synthesizer.New(p.model,
		synthesizer.WithLogger(p.logger),
		synthesizer.WithFlattenInheritance(p.cfg.flatten),
		synthesizer.WithSchemaNaming(p.cfg.schemaNaming),
		synthesizer.WithGenericNaming(p.cfg.genericNaming),
	)

	slots := make([]slot, len(tree.Operations))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(p.cfg.concurrency)
	for i, stub := range tree.Operations {
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			s, err := p.bind(gctx, stub)
			if err != nil {
				return err
			}
			slots[i] = s
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("generator: %w", err)
	}
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("generator: %w", err)
	}

	if p.cfg.allSchemas {
		if err := p.synth.Warm(ctx, p.cfg.concurrency, p.dataClasses()...); err != nil {
			return nil, fmt.Errorf("generator: %w", err)
		}
	}

	result := &Result{
		Source:               p.model.Source,
		NodeCount:            tree.NodeCount,
		DiscoveredOperations: len(tree.Operations),
	}
	result.Issues = append(result.Issues, tree.Issues...)

	ops := make([]*specdoc.Operation, 0, len(slots))
	for _, s := range slots {
		result.Issues = append(result.Issues, s.issues...)
		if s.skipped {
			result.SkippedOperations++
			continue
		}
		ops = append(ops, s.op)
	}
	result.Issues = append(result.Issues, p.synth.Issues()...)

	if renames := p.synth.Finalize(); len(renames) > 0 {
		p.logger.Debug("renamed generic schemas", "count", len(renames))
		for _, op := range ops {
			op.RenameRefs(renames)
		}
	}

	asmOpts := []assembler.Option{
		assembler.WithLogger(p.logger),
		assembler.WithCollisionStrategy(p.cfg.collisions),
		assembler.WithInfo(specdoc.Info{Title: p.cfg.title, Version: p.cfg.version, Description: p.cfg.description}),
		assembler.WithTagDescriptions(p.tagDescriptions()),
		assembler.WithPruneSchemas(!p.cfg.allSchemas),
	}
	if p.cfg.security {
		scheme := BearerScheme
		asmOpts = append(asmOpts, assembler.WithSecurity(&scheme))
	}
	assembled, err := assembler.Assemble(ops, p.synth.Definitions(), asmOpts...)
	if err != nil {
		return nil, fmt.Errorf("generator: %w", err)
	}
	result.Document = assembled.Document
	result.Collisions = assembled.Collisions
	result.Issues = append(result.Issues, assembled.Issues...)

	result.ErrorCount, result.WarningCount, result.InfoCount = issues.List(result.Issues).Counts()
	result.Stats = result.Document.Stats()
	result.GenerateTime = time.Since(start)

	p.logger.Info("generated document",
		"paths", result.Stats.PathCount,
		"operations", result.Stats.OperationCount,
		"schemas", result.Stats.SchemaCount,
		"errors", result.ErrorCount,
		"warnings", result.WarningCount)
	return result, nil
}

// bind turns one stub into an operation. A binding conflict yields a
// skipped slot with its diagnostic; any other error aborts the run.
func (p *pipeline) bind(ctx context.Context, stub *resolver.OperationStub) (slot, error) {
	b, err := binder.BindParameters(ctx, stub, p.synth,
		binder.WithLogger(p.logger),
		binder.WithDuplicatePolicy(p.cfg.duplicates),
	)
	var conflict *oaserrors.BindingConflictError
	if errors.As(err, &conflict) {
		p.logger.Warn("operation skipped", "operation", stub.ID(), "path", stub.Path, "error", err)
		return slot{skipped: true, issues: []Issue{conflictIssue(stub, conflict)}}, nil
	}
	if err != nil {
		return slot{}, err
	}

	found := binder.BindDocumentation(b)

	resp, err := p.response(ctx, b)
	if err != nil {
		return slot{}, err
	}

	owner := stub.Owner()
	op := &specdoc.Operation{
		Verb:        strings.ToUpper(stub.Verb),
		Path:        b.Path,
		Summary:     b.Summary,
		Description: b.Description,
		Parameters:  b.Parameters,
		RequestBody: b.RequestBody,
		Response:    resp,
		Deprecated:  stub.Method.Deprecated || owner.Deprecated,
		Source:      specdoc.Source{Type: owner.Name, Method: stub.Method.Name},
	}
	return slot{op: op, issues: found}, nil
}

// response builds the success response from the return type and the
// produced media types. Octet-stream only responses are binary.
func (p *pipeline) response(ctx context.Context, b *binder.Binding) (*specdoc.Response, error) {
	stub := b.Stub
	typ, err := p.synth.Resolve(ctx, stub.Method.ReturnType())
	if err != nil {
		return nil, fmt.Errorf("%s response: %w", stub.ID(), err)
	}

	resp := &specdoc.Response{Description: binder.ResponseDescription(b), Type: typ}
	if typ.IsNone() {
		return resp, nil
	}

	media := stub.Method.Produces
	if len(media) == 0 {
		media = stub.Owner().Produces
	}
	if len(media) == 0 {
		media = []string{binder.MediaJSON}
	}
	resp.ContentTypes = slices.Clone(media)
	if len(media) == 1 && media[0] == binder.MediaOctetStream {
		resp.Type = specdoc.Binary()
	}
	return resp, nil
}

// dataClasses returns the type expressions of every non-generic,
// non-resource class, in model order.
func (p *pipeline) dataClasses() []*sourcemodel.TypeExpr {
	var exprs []*sourcemodel.TypeExpr
	for _, c := range p.model.Classes {
		if c.IsResource() || len(c.TypeParams) > 0 || c.Kind == sourcemodel.KindInterface {
			continue
		}
		t, err := sourcemodel.ParseType(c.Name)
		if err != nil {
			continue
		}
		exprs = append(exprs, t)
	}
	return exprs
}

// tagDescriptions uses the first documented resource class summary of
// each tag as its description.
func (p *pipeline) tagDescriptions() map[string]string {
	out := make(map[string]string)
	for _, c := range p.model.Classes {
		if !c.IsResource() || c.Doc == nil {
			continue
		}
		tag := assembler.TagFor(c.Name)
		if _, ok := out[tag]; ok {
			continue
		}
		if text := strings.TrimSpace(c.Doc.Summary); text != "" {
			out[tag] = text
		}
	}
	return out
}

func conflictIssue(stub *resolver.OperationStub, err *oaserrors.BindingConflictError) Issue {
	return Issue{
		Kind:     issues.KindParameterBindingConflict,
		Severity: issues.KindParameterBindingConflict.DefaultSeverity(),
		Type:     stub.Owner().Name,
		Method:   stub.Method.Name,
		Verb:     strings.ToUpper(stub.Verb),
		Path:     stub.Path,
		Subject:  err.Location + ":" + err.Name,
		Message:  err.Error() + "; operation skipped",
	}
}
