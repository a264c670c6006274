package resolver

import (
	"github.com/erraggy/restdoc/sourcemodel"
)

// Kind is the closed set of method classifications.
type Kind int

const (
	// KindIgnored is a method that is not part of the public surface.
	KindIgnored Kind = iota
	// KindOperation is a method that declares an HTTP verb marker.
	KindOperation
	// KindFactory is a sub-resource locator: a path marker without a verb
	// whose return type is another resource class.
	KindFactory
)

// String returns the kind name.
func (k Kind) String() string {
	switch k {
	case KindOperation:
		return "operation"
	case KindFactory:
		return "factory"
	default:
		return "ignored"
	}
}

// Classification is the result of classifying one method. Target is set
// only for KindFactory.
type Classification struct {
	Kind   Kind
	Method *sourcemodel.Method
	Target *sourcemodel.Class
}

// Classify decides whether meth, declared on (or inherited by) owner, is
// an operation, a sub-resource factory or ignored.
func Classify(model *sourcemodel.Model, owner *sourcemodel.Class, meth *sourcemodel.Method) Classification {
	c := Classification{Kind: KindIgnored, Method: meth}
	if meth == nil || meth.Static || meth.Visibility == sourcemodel.VisibilityPrivate {
		return c
	}
	if meth.HasVerb() {
		c.Kind = KindOperation
		return c
	}
	if !meth.HasPath() {
		return c
	}
	ret := meth.ReturnType()
	if ret == nil || ret.IsArray() {
		return c
	}
	target, ok := model.Class(ret.Name)
	if !ok || !isResourceType(model, target) {
		return c
	}
	c.Kind = KindFactory
	c.Target = target
	return c
}

// isResourceType reports whether cls, or one of its supertypes, declares a
// route marker.
func isResourceType(model *sourcemodel.Model, cls *sourcemodel.Class) bool {
	seen := make(map[string]bool)
	for cls != nil && !seen[cls.Name] {
		seen[cls.Name] = true
		if cls.IsResource() {
			return true
		}
		cls = superclass(model, cls)
	}
	return false
}

func superclass(model *sourcemodel.Model, cls *sourcemodel.Class) *sourcemodel.Class {
	ext := cls.ExtendsType()
	if ext == nil {
		return nil
	}
	sup, ok := model.Class(ext.Name)
	if !ok {
		return nil
	}
	return sup
}

// resourceMethods returns the methods of cls followed by inherited methods
// that cls does not override, nearest supertype first.
func resourceMethods(model *sourcemodel.Model, cls *sourcemodel.Class) []*sourcemodel.Method {
	type signature struct {
		name  string
		arity int
	}
	var (
		out  []*sourcemodel.Method
		seen = make(map[signature]bool)
		done = make(map[string]bool)
	)
	for cur := cls; cur != nil && !done[cur.Name]; cur = superclass(model, cur) {
		done[cur.Name] = true
		for _, m := range cur.Methods {
			sig := signature{m.Name, len(m.Params)}
			if seen[sig] {
				continue
			}
			seen[sig] = true
			out = append(out, m)
		}
	}
	return out
}
