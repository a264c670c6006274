// Package resolver builds the resource tree: starting from the root
// resources it classifies every method, mounts sub-resource factories
// depth-first, accumulates path templates and detects factory cycles.
//
// The resolver is the first stage of generation and runs alone; its Result
// is immutable and shared read-only by the binding stage.
//
//	res, err := resolver.New(model, resolver.WithLogger(logger)).Resolve(ctx)
//	if err != nil {
//	    return err
//	}
//	for _, stub := range res.Operations {
//	    fmt.Println(stub.Verb, stub.Path)
//	}
package resolver

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"github.com/erraggy/restdoc/internal/issues"
	"github.com/erraggy/restdoc/internal/naming"
	"github.com/erraggy/restdoc/internal/pathutil"
	"github.com/erraggy/restdoc/oaserrors"
	"github.com/erraggy/restdoc/sourcemodel"
)

// Issue is a diagnostic raised during resolution.
type Issue = issues.Issue

// Resolver walks a Source Model from its root resources.
type Resolver struct {
	model         *sourcemodel.Model
	logger        sourcemodel.Logger
	implicitPaths bool
}

// Option configures a Resolver.
type Option func(*Resolver)

// WithLogger sets the logger. Default is a no-op logger.
func WithLogger(l sourcemodel.Logger) Option {
	return func(r *Resolver) { r.logger = sourcemodel.OrNop(l) }
}

// WithImplicitPaths mounts verb methods without a path marker at their
// lower-cased name minus the verb prefix ("getClients" under GET becomes
// "clients"). Default is false: such methods share the node template.
func WithImplicitPaths(enabled bool) Option {
	return func(r *Resolver) { r.implicitPaths = enabled }
}

// New creates a Resolver for model.
func New(model *sourcemodel.Model, opts ...Option) *Resolver {
	r := &Resolver{model: model, logger: sourcemodel.NopLogger{}}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Result is the resolved resource tree.
type Result struct {
	// Roots in root declaration order.
	Roots []*Node
	// Operations in traversal order: depth-first, declaration order.
	Operations []*OperationStub
	// Issues are the cycle and path diagnostics in traversal order.
	Issues []Issue
	// NodeCount is the number of mounted nodes, roots included.
	NodeCount int
}

// Walk visits every node depth-first. Returning false from fn skips the
// node's children.
func (r *Result) Walk(fn func(*Node) bool) {
	var visit func(*Node)
	visit = func(n *Node) {
		if !fn(n) {
			return
		}
		for _, c := range n.Children {
			visit(c)
		}
	}
	for _, root := range r.Roots {
		visit(root)
	}
}

// Resolve builds the tree. Cycles and malformed path markers become
// diagnostics; only a nil model or a cancelled context fail the call.
func (r *Resolver) Resolve(ctx context.Context) (*Result, error) {
	if r.model == nil {
		return nil, &oaserrors.ConfigError{Option: "model", Message: "no source model"}
	}

	w := &walk{
		Resolver: r,
		ctx:      ctx,
		result:   &Result{},
		cycles:   make(map[string]bool),
		invalid:  make(map[string]bool),
		path:     pathutil.Get(),
	}
	defer pathutil.Put(w.path)

	roots := r.model.RootClasses()
	r.logger.Debug("resolving resource tree", "roots", len(roots))
	for _, root := range roots {
		node := w.mountRoot(root)
		w.result.Roots = append(w.result.Roots, node)
		if err := w.expand(node); err != nil {
			return nil, err
		}
		w.path.Pop()
		w.chain = w.chain[:0]
	}

	r.logger.Debug("resolved resource tree",
		"nodes", w.result.NodeCount,
		"operations", len(w.result.Operations),
		"issues", len(w.result.Issues))
	return w.result, nil
}

// walk holds the state of one depth-first traversal.
type walk struct {
	*Resolver
	ctx    context.Context
	result *Result
	// chain holds the type identities being expanded, root first.
	chain  []string
	cycles map[string]bool
	// invalid dedupes InvalidPath reports for classes mounted more than once.
	invalid map[string]bool
	path    *pathutil.PathBuilder
}

func (w *walk) mountRoot(root *sourcemodel.Class) *Node {
	w.path.Push(w.normalize(root.Path, root, nil))
	w.chain = append(w.chain, root.Name)
	w.result.NodeCount++
	return &Node{Type: root, Template: w.path.String()}
}

func (w *walk) expand(node *Node) error {
	if err := w.ctx.Err(); err != nil {
		return err
	}
	for _, meth := range resourceMethods(w.model, node.Type) {
		cl := Classify(w.model, node.Type, meth)
		switch cl.Kind {
		case KindOperation:
			w.addOperation(node, meth)
		case KindFactory:
			if err := w.mount(node, meth, cl.Target); err != nil {
				return err
			}
		case KindIgnored:
			if meth.HasPath() {
				w.logger.Debug("ignoring path method without a resource return type",
					"type", node.Type.Name, "method", meth.Name, "returns", meth.Returns)
			}
		}
	}
	return nil
}

func (w *walk) mount(parent *Node, meth *sourcemodel.Method, target *sourcemodel.Class) error {
	if i := slices.Index(w.chain, target.Name); i >= 0 {
		w.reportCycle(parent, meth, w.chain[i:])
		return nil
	}

	w.path.Push(w.normalize(meth.Path, parent.Type, meth))
	defer w.path.Pop()
	w.chain = append(w.chain, target.Name)
	defer func() { w.chain = w.chain[:len(w.chain)-1] }()

	child := &Node{
		Type:      target,
		Template:  w.path.String(),
		Inherited: slices.Clone(parent.Inherited),
		Factory:   meth,
		Parent:    parent,
		Depth:     parent.Depth + 1,
	}
	for _, p := range meth.Params {
		if p.Source == sourcemodel.SourcePath {
			child.Inherited = append(child.Inherited, InheritedParam{Param: p, Factory: meth, Owner: parent.Type})
		}
	}
	parent.Children = append(parent.Children, child)
	w.result.NodeCount++

	w.logger.Debug("mounted sub-resource", "type", target.Name, "path", child.Template, "via", parent.Type.SimpleName()+"."+meth.Name)
	return w.expand(child)
}

func (w *walk) addOperation(node *Node, meth *sourcemodel.Method) {
	own := ""
	switch {
	case meth.HasPath():
		own = w.normalize(meth.Path, node.Type, meth)
	case w.implicitPaths:
		if implicit := naming.TrimVerbPrefix(meth.Name, meth.Verb); implicit != "" {
			own = w.normalize(implicit, node.Type, meth)
		}
	}
	if own == "/" {
		own = ""
	}

	w.path.Push(own)
	tmpl := w.path.String()
	w.path.Pop()

	stub := &OperationStub{
		Index:   len(w.result.Operations),
		Node:    node,
		Method:  meth,
		Verb:    meth.Verb,
		Path:    tmpl,
		OwnPath: own,
	}
	node.Operations = append(node.Operations, stub)
	w.result.Operations = append(w.result.Operations, stub)
}

// normalize cleans a path marker and reports repairs as InvalidPath.
func (w *walk) normalize(raw string, owner *sourcemodel.Class, meth *sourcemodel.Method) string {
	tmpl, problems := pathutil.Normalize(raw)
	key := owner.Name + "#" + raw
	if meth != nil {
		key = owner.Name + "." + meth.Name + "#" + raw
	}
	if len(problems) == 0 || w.invalid[key] {
		return tmpl
	}
	w.invalid[key] = true
	for _, problem := range problems {
		issue := Issue{
			Kind:     issues.KindInvalidPath,
			Severity: issues.KindInvalidPath.DefaultSeverity(),
			Type:     owner.Name,
			Subject:  raw,
			Message:  fmt.Sprintf("path marker %q normalized to %q: %s", raw, tmpl, problem),
		}
		if meth != nil {
			issue.Method = meth.Name
		}
		w.result.Issues = append(w.result.Issues, issue)
	}
	return tmpl
}

func (w *walk) reportCycle(parent *Node, meth *sourcemodel.Method, loop []string) {
	key := cycleKey(loop)
	if w.cycles[key] {
		w.logger.Debug("skipping known factory cycle", "cycle", key)
		return
	}
	w.cycles[key] = true

	chain := make([]string, 0, len(loop)+1)
	for _, name := range loop {
		chain = append(chain, sourcemodel.SimpleName(name))
	}
	chain = append(chain, chain[0])
	cerr := &oaserrors.CycleError{Chain: chain, Method: parent.Type.SimpleName() + "." + meth.Name}

	own, _ := pathutil.Normalize(meth.Path)
	w.logger.Warn("factory cycle", "cycle", strings.Join(chain, " -> "), "path", parent.Template)
	w.result.Issues = append(w.result.Issues, Issue{
		Kind:     issues.KindConfigurationCycle,
		Severity: issues.KindConfigurationCycle.DefaultSeverity(),
		Type:     parent.Type.Name,
		Method:   meth.Name,
		Path:     pathutil.Join(parent.Template, own),
		Subject:  key,
		Message:  cerr.Error() + "; branch skipped",
	})
}

// cycleKey returns the rotation of loop that is lexicographically smallest,
// so the same cycle entered at different types yields one key.
func cycleKey(loop []string) string {
	best := ""
	for i := range loop {
		rotated := append(slices.Clone(loop[i:]), loop[:i]...)
		key := strings.Join(rotated, " -> ")
		if best == "" || key < best {
			best = key
		}
	}
	return best
}
