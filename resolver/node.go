package resolver

import (
	"strings"

	"github.com/erraggy/restdoc/internal/pathutil"
	"github.com/erraggy/restdoc/sourcemodel"
)

// Node is a resolved mount point: a resource class reachable at an
// accumulated path template. Nodes form a tree rooted at the declared root
// resources and are never modified after Resolve returns.
type Node struct {
	// Type is the resource class mounted here.
	Type *sourcemodel.Class
	// Template is the accumulated path template, e.g. "/realms/{realm}/users".
	Template string
	// Inherited lists the path parameters declared by the factory methods
	// on the way from the root, outermost first.
	Inherited []InheritedParam
	// Factory is the method that mounted this node; nil for roots.
	Factory *sourcemodel.Method
	// Parent is nil for roots.
	Parent   *Node
	Children []*Node
	// Operations declared by Type, in declaration order.
	Operations []*OperationStub
	// Depth is 0 for roots.
	Depth int
}

// InheritedParam is a path parameter declared on an ancestor factory.
type InheritedParam struct {
	Param *sourcemodel.Param
	// Factory is the declaring method; its documentation describes Param.
	Factory *sourcemodel.Method
	// Owner is the class declaring Factory.
	Owner *sourcemodel.Class
}

// Segment is one slash-separated piece of a template. Param is true when
// the whole segment is a single template variable, in which case Value is
// the variable name.
type Segment struct {
	Value string
	Param bool
}

// String returns the segment as it appears in a template.
func (s Segment) String() string {
	if s.Param {
		return "{" + s.Value + "}"
	}
	return s.Value
}

// Segments splits the node template into literal and parameter segments.
func (n *Node) Segments() []Segment {
	return SplitTemplate(n.Template)
}

// SplitTemplate splits a normalized template into segments.
func SplitTemplate(tmpl string) []Segment {
	var out []Segment
	for _, part := range strings.Split(tmpl, "/") {
		if part == "" {
			continue
		}
		if m := pathutil.PathParamRegex.FindStringSubmatch(part); m != nil && m[0] == part {
			out = append(out, Segment{Value: m[1], Param: true})
			continue
		}
		out = append(out, Segment{Value: part})
	}
	return out
}

// Chain returns the factory-mounted path from the root to n, root first.
func (n *Node) Chain() []*Node {
	var chain []*Node
	for cur := n; cur != nil; cur = cur.Parent {
		chain = append(chain, cur)
	}
	for i, j := 0, len(chain)-1; i < j; i, j = i+1, j-1 {
		chain[i], chain[j] = chain[j], chain[i]
	}
	return chain
}

// OperationStub is an operation method attached to its owning node,
// before parameters and schemas are bound.
type OperationStub struct {
	// Index is the position of the stub in traversal order.
	Index int
	Node  *Node
	// Method is the operation method. It may be declared on a supertype of
	// Node.Type.
	Method *sourcemodel.Method
	// Verb is the upper-case HTTP verb.
	Verb string
	// Path is the resolved template: the node template plus OwnPath.
	Path string
	// OwnPath is the normalized method-level path, "" when the method has
	// none.
	OwnPath string
}

// Owner returns the resource class the operation belongs to.
func (s *OperationStub) Owner() *sourcemodel.Class {
	return s.Node.Type
}

// ID returns "SimpleType.method", used in diagnostics.
func (s *OperationStub) ID() string {
	return s.Node.Type.SimpleName() + "." + s.Method.Name
}
