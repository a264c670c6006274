// Package sourcemodel provides the immutable fact base that restdoc
// consumes: classes, fields, methods, parameters, route markers and
// documentation blocks extracted from annotated REST resource sources.
//
// A front end (outside this module) turns source text into a Source Model
// document; this package loads that document from YAML or JSON, validates
// it, parses every type expression once and indexes classes by identity.
// After Load returns, a Model is never mutated and is safe for concurrent
// readers.
//
// # Document shape
//
//	roots: [org.example.RealmsResource]
//	classes:
//	  - name: org.example.RealmsResource
//	    path: /realms
//	    methods:
//	      - name: getRealm
//	        path: "{realm}"
//	        returns: org.example.RealmResource
//	        params:
//	          - {name: realm, type: String, source: path}
//	  - name: org.example.RealmResource
//	    methods:
//	      - name: get
//	        verb: GET
//	        returns: org.example.RealmRepresentation
package sourcemodel

import (
	"slices"
	"strings"
)

// ClassKind distinguishes plain classes from enums and interfaces.
type ClassKind string

const (
	// KindClass is a regular class (the default).
	KindClass ClassKind = "class"
	// KindEnum is an enum; its Constants become schema enum values.
	KindEnum ClassKind = "enum"
	// KindInterface is an interface; treated like a class for resources.
	KindInterface ClassKind = "interface"
)

// Visibility is the declared access level of a field or method.
type Visibility string

const (
	VisibilityPublic    Visibility = "public"
	VisibilityProtected Visibility = "protected"
	VisibilityPrivate   Visibility = "private"
	// VisibilityPackage is the default when nothing is declared.
	VisibilityPackage Visibility = "package"
)

// IsPublic reports whether v is public.
func (v Visibility) IsPublic() bool {
	return v == VisibilityPublic
}

// ParamSource is the binding marker declared on a method parameter.
type ParamSource string

const (
	SourcePath   ParamSource = "path"
	SourceQuery  ParamSource = "query"
	SourceHeader ParamSource = "header"
	SourceCookie ParamSource = "cookie"
	SourceForm   ParamSource = "form"
	// SourceContext marks container-injected parameters; they are not
	// part of the public surface.
	SourceContext ParamSource = "context"
	// SourceBody is an unannotated parameter carrying the request entity.
	// An empty source means body.
	SourceBody ParamSource = "body"
)

// Model is the root of a Source Model document.
type Model struct {
	// Roots lists the qualified identities of the root resources. When
	// empty, every class with a class-level path marker is a root.
	Roots []string `yaml:"roots,omitempty" json:"roots,omitempty"`
	// Classes lists every analyzed class.
	Classes []*Class `yaml:"classes" json:"classes"`

	// Source is the file path or identifier the model was loaded from.
	Source string `yaml:"-" json:"-"`

	byName   map[string]*Class
	bySimple map[string][]*Class
}

// Class describes one analyzed class, enum or interface.
type Class struct {
	// Name is the qualified identity, e.g. "org.keycloak.ClientsResource".
	Name string `yaml:"name" json:"name"`
	// Kind defaults to "class".
	Kind ClassKind `yaml:"kind,omitempty" json:"kind,omitempty"`
	// Extends is the superclass type expression, if any.
	Extends string `yaml:"extends,omitempty" json:"extends,omitempty"`
	// TypeParams lists generic type parameter names in declaration order.
	TypeParams []string `yaml:"typeParams,omitempty" json:"typeParams,omitempty"`
	// Path is the class-level path marker.
	Path string `yaml:"path,omitempty" json:"path,omitempty"`
	// Consumes and Produces are class-level media type markers.
	Consumes []string `yaml:"consumes,omitempty" json:"consumes,omitempty"`
	Produces []string `yaml:"produces,omitempty" json:"produces,omitempty"`
	// Fields in declaration order.
	Fields []*Field `yaml:"fields,omitempty" json:"fields,omitempty"`
	// Methods in declaration order.
	Methods []*Method `yaml:"methods,omitempty" json:"methods,omitempty"`
	// Constants are the enum constants in declaration order.
	Constants  []string  `yaml:"constants,omitempty" json:"constants,omitempty"`
	Deprecated bool      `yaml:"deprecated,omitempty" json:"deprecated,omitempty"`
	Doc        *DocBlock `yaml:"doc,omitempty" json:"doc,omitempty"`

	extends *TypeExpr
}

// Field describes a declared field.
type Field struct {
	Name       string     `yaml:"name" json:"name"`
	Type       string     `yaml:"type" json:"type"`
	Visibility Visibility `yaml:"visibility,omitempty" json:"visibility,omitempty"`
	Static     bool       `yaml:"static,omitempty" json:"static,omitempty"`
	// Excluded marks the field as excluded from serialization.
	Excluded   bool      `yaml:"excluded,omitempty" json:"excluded,omitempty"`
	Deprecated bool      `yaml:"deprecated,omitempty" json:"deprecated,omitempty"`
	Doc        *DocBlock `yaml:"doc,omitempty" json:"doc,omitempty"`

	typ *TypeExpr
}

// Method describes a declared method with its route markers.
type Method struct {
	Name       string     `yaml:"name" json:"name"`
	Visibility Visibility `yaml:"visibility,omitempty" json:"visibility,omitempty"`
	Static     bool       `yaml:"static,omitempty" json:"static,omitempty"`
	// Verb is the HTTP verb marker (GET, POST, ...), empty when absent.
	Verb string `yaml:"verb,omitempty" json:"verb,omitempty"`
	// Path is the method-level path marker, empty when absent.
	Path   string   `yaml:"path,omitempty" json:"path,omitempty"`
	Params []*Param `yaml:"params,omitempty" json:"params,omitempty"`
	// Returns is the return type expression; empty means void.
	Returns  string   `yaml:"returns,omitempty" json:"returns,omitempty"`
	Consumes []string `yaml:"consumes,omitempty" json:"consumes,omitempty"`
	Produces []string `yaml:"produces,omitempty" json:"produces,omitempty"`
	// Excluded marks an accessor as excluded from serialization.
	Excluded   bool      `yaml:"excluded,omitempty" json:"excluded,omitempty"`
	Deprecated bool      `yaml:"deprecated,omitempty" json:"deprecated,omitempty"`
	Doc        *DocBlock `yaml:"doc,omitempty" json:"doc,omitempty"`

	returns *TypeExpr
}

// Param describes one formal parameter of a method.
type Param struct {
	// Name is the declared parameter name.
	Name string `yaml:"name" json:"name"`
	Type string `yaml:"type" json:"type"`
	// Source is the binding marker; empty means body.
	Source ParamSource `yaml:"source,omitempty" json:"source,omitempty"`
	// Binding is the marker value, e.g. "first" for @QueryParam("first").
	// Defaults to Name.
	Binding string `yaml:"binding,omitempty" json:"binding,omitempty"`
	// Default is the declared default value, if any.
	Default *string `yaml:"default,omitempty" json:"default,omitempty"`
	// Nullable marks the parameter as optional regardless of its type.
	Nullable bool `yaml:"nullable,omitempty" json:"nullable,omitempty"`

	typ *TypeExpr
}

// DocBlock is the documentation attached to a class, method or field.
type DocBlock struct {
	// Summary is the leading text of the block.
	Summary string `yaml:"summary,omitempty" json:"summary,omitempty"`
	// Description is any further free text after the summary.
	Description string `yaml:"description,omitempty" json:"description,omitempty"`
	// Params are the per-parameter entries in declaration order.
	Params []DocParam `yaml:"params,omitempty" json:"params,omitempty"`
	// Returns is the return value documentation.
	Returns string `yaml:"returns,omitempty" json:"returns,omitempty"`
}

// DocParam is one (parameter-name, text) documentation entry.
type DocParam struct {
	Name string `yaml:"name" json:"name"`
	Text string `yaml:"text,omitempty" json:"text,omitempty"`
}

// Class returns the class with the given qualified identity, falling back
// to a simple-name match when exactly one class has that simple name.
func (m *Model) Class(name string) (*Class, bool) {
	if c, ok := m.byName[name]; ok {
		return c, true
	}
	if cs := m.bySimple[SimpleName(name)]; len(cs) == 1 && (name == cs[0].SimpleName() || strings.HasSuffix(cs[0].Name, "."+name)) {
		return cs[0], true
	}
	return nil, false
}

// RootClasses returns the root resources in declaration order.
func (m *Model) RootClasses() []*Class {
	var roots []*Class
	if len(m.Roots) > 0 {
		for _, r := range m.Roots {
			if c, ok := m.Class(r); ok {
				roots = append(roots, c)
			}
		}
		return roots
	}
	for _, c := range m.Classes {
		if c.Path != "" {
			roots = append(roots, c)
		}
	}
	return roots
}

// SimpleName returns the unqualified class name.
func (c *Class) SimpleName() string {
	return SimpleName(c.Name)
}

// Package returns the qualifier of the class identity, or "".
func (c *Class) Package() string {
	if i := strings.LastIndexByte(c.Name, '.'); i >= 0 {
		return c.Name[:i]
	}
	return ""
}

// IsEnum reports whether the class is an enum.
func (c *Class) IsEnum() bool {
	return c.Kind == KindEnum
}

// IsResource reports whether the class declares any route marker.
func (c *Class) IsResource() bool {
	if c.Path != "" {
		return true
	}
	return slices.ContainsFunc(c.Methods, func(m *Method) bool {
		return m.Verb != "" || m.Path != ""
	})
}

// ExtendsType returns the parsed superclass expression, or nil.
func (c *Class) ExtendsType() *TypeExpr {
	return c.extends
}

// Field returns the field with the given name.
func (c *Class) Field(name string) (*Field, bool) {
	for _, f := range c.Fields {
		if f.Name == name {
			return f, true
		}
	}
	return nil, false
}

// ParsedType returns the parsed field type.
func (f *Field) ParsedType() *TypeExpr {
	return f.typ
}

// ReturnType returns the parsed return type; void methods return a
// "void" expression.
func (m *Method) ReturnType() *TypeExpr {
	return m.returns
}

// HasVerb reports whether the method declares an HTTP verb marker.
func (m *Method) HasVerb() bool {
	return m.Verb != ""
}

// HasPath reports whether the method declares a path marker.
func (m *Method) HasPath() bool {
	return m.Path != ""
}

// ParsedType returns the parsed parameter type.
func (p *Param) ParsedType() *TypeExpr {
	return p.typ
}

// WireName returns the name the parameter is bound to on the wire.
func (p *Param) WireName() string {
	if p.Binding != "" {
		return p.Binding
	}
	return p.Name
}

// EffectiveSource returns Source with the empty value mapped to SourceBody.
func (p *Param) EffectiveSource() ParamSource {
	if p.Source == "" {
		return SourceBody
	}
	return p.Source
}

// ParamDoc returns the text documented for name, if any.
func (d *DocBlock) ParamDoc(name string) (string, bool) {
	if d == nil {
		return "", false
	}
	for _, p := range d.Params {
		if p.Name == name {
			return p.Text, true
		}
	}
	return "", false
}
