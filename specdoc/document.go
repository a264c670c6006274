// Package specdoc defines the in-memory document that restdoc produces:
// path items with their operations, parameters, request bodies and
// responses, plus the reusable schema definitions they reference.
//
// A Document is built once by the assembler and is not mutated afterwards.
// Ordering is part of the contract: Paths are sorted by template,
// operations inside a path follow [VerbOrder], Schemas and Tags are sorted
// by name. The render package turns a Document into OpenAPI 3 YAML or JSON.
package specdoc

import (
	"slices"
	"strings"

	"github.com/erraggy/restdoc/internal/httputil"
)

// VerbOrder is the canonical order of operations within a path item.
var VerbOrder = httputil.Methods

// VerbRank returns the position of verb in VerbOrder, case-insensitively.
// Unknown verbs sort last.
func VerbRank(verb string) int {
	if i := slices.Index(VerbOrder, strings.ToLower(verb)); i >= 0 {
		return i
	}
	return len(VerbOrder)
}

// Document is the root of the generated API description.
type Document struct {
	Info Info `json:"info" yaml:"info"`
	// Paths in lexicographic template order.
	Paths []*PathItem `json:"paths" yaml:"paths"`
	// Schemas in lexicographic name order.
	Schemas []*SchemaDefinition `json:"schemas,omitempty" yaml:"schemas,omitempty"`
	// Tags in lexicographic name order.
	Tags []Tag `json:"tags,omitempty" yaml:"tags,omitempty"`
	// Security is the globally applied security scheme, if any.
	Security *SecurityScheme `json:"security,omitempty" yaml:"security,omitempty"`
}

// Info carries the document title and version.
type Info struct {
	Title       string `json:"title" yaml:"title"`
	Version     string `json:"version" yaml:"version"`
	Description string `json:"description,omitempty" yaml:"description,omitempty"`
}

// Tag groups operations by owning resource.
type Tag struct {
	Name        string `json:"name" yaml:"name"`
	Description string `json:"description,omitempty" yaml:"description,omitempty"`
}

// SecurityScheme describes an HTTP bearer scheme.
type SecurityScheme struct {
	// Name is the key under components.securitySchemes.
	Name         string `json:"name" yaml:"name"`
	Scheme       string `json:"scheme" yaml:"scheme"`
	BearerFormat string `json:"bearerFormat,omitempty" yaml:"bearerFormat,omitempty"`
}

// PathItem groups the operations that share one path template.
type PathItem struct {
	Path string `json:"path" yaml:"path"`
	// Operations in VerbOrder.
	Operations []*Operation `json:"operations" yaml:"operations"`
}

// Operation returns the operation for verb, or nil.
func (p *PathItem) Operation(verb string) *Operation {
	for _, op := range p.Operations {
		if strings.EqualFold(op.Verb, verb) {
			return op
		}
	}
	return nil
}

// Source identifies the declaration an operation was built from.
type Source struct {
	// Type is the qualified identity of the owning resource class.
	Type string `json:"type" yaml:"type"`
	// Method is the declaring method name.
	Method string `json:"method" yaml:"method"`
}

// String returns "Type.method" using the simple type name.
func (s Source) String() string {
	t := s.Type
	if i := strings.LastIndexByte(t, '.'); i >= 0 {
		t = t[i+1:]
	}
	return t + "." + s.Method
}

// Operation is one verb+path endpoint.
type Operation struct {
	// Verb is the upper-case HTTP method.
	Verb string `json:"verb" yaml:"verb"`
	// Path is the resolved path template.
	Path        string   `json:"path" yaml:"path"`
	OperationID string   `json:"operationId" yaml:"operationId"`
	Summary     string   `json:"summary,omitempty" yaml:"summary,omitempty"`
	Description string   `json:"description,omitempty" yaml:"description,omitempty"`
	Tags        []string `json:"tags,omitempty" yaml:"tags,omitempty"`
	// Parameters are path, query, header and cookie parameters in binding
	// order. Form fields and the body entity live in RequestBody.
	Parameters  []*Parameter `json:"parameters,omitempty" yaml:"parameters,omitempty"`
	RequestBody *RequestBody `json:"requestBody,omitempty" yaml:"requestBody,omitempty"`
	Response    *Response    `json:"response" yaml:"response"`
	Deprecated  bool         `json:"deprecated,omitempty" yaml:"deprecated,omitempty"`
	Source      Source       `json:"source" yaml:"source"`
}

// Parameter returns the parameter with the given name and location.
func (o *Operation) Parameter(name string, in Location) *Parameter {
	for _, p := range o.Parameters {
		if p.Name == name && p.In == in {
			return p
		}
	}
	return nil
}

// AllParameters returns Parameters followed by the request body fields,
// or the body entity parameter, in binding order.
func (o *Operation) AllParameters() []*Parameter {
	out := slices.Clone(o.Parameters)
	if o.RequestBody != nil {
		out = append(out, o.RequestBody.Fields...)
		if o.RequestBody.Entity != nil {
			out = append(out, o.RequestBody.Entity)
		}
	}
	return out
}

// Location is where a parameter travels.
type Location string

const (
	InPath   Location = "path"
	InQuery  Location = "query"
	InHeader Location = "header"
	InCookie Location = "cookie"
	// InForm is one field of a form body.
	InForm Location = "form"
	// InBody is the request entity.
	InBody Location = "body"
)

// Parameter is one bound operation input.
type Parameter struct {
	Name        string   `json:"name" yaml:"name"`
	In          Location `json:"in" yaml:"in"`
	Type        TypeRef  `json:"type" yaml:"type"`
	Required    bool     `json:"required" yaml:"required"`
	Default     *string  `json:"default,omitempty" yaml:"default,omitempty"`
	Description string   `json:"description,omitempty" yaml:"description,omitempty"`
	// Declared is the source parameter name; empty for synthesized ones.
	Declared string `json:"declared,omitempty" yaml:"declared,omitempty"`
	// Synthesized marks parameters that have no declaration, such as the
	// aggregate multipart body or an undeclared template variable.
	Synthesized bool `json:"synthesized,omitempty" yaml:"synthesized,omitempty"`
}

// RequestBody describes the request entity.
type RequestBody struct {
	// ContentTypes in declaration order.
	ContentTypes []string `json:"contentTypes" yaml:"contentTypes"`
	Required     bool     `json:"required" yaml:"required"`
	Description  string   `json:"description,omitempty" yaml:"description,omitempty"`
	// Entity is the single body parameter, when the body is one value.
	Entity *Parameter `json:"entity,omitempty" yaml:"entity,omitempty"`
	// Fields are the form fields, when the body is a form.
	Fields []*Parameter `json:"fields,omitempty" yaml:"fields,omitempty"`
}

// Response describes the success response.
type Response struct {
	Description  string   `json:"description" yaml:"description"`
	ContentTypes []string `json:"contentTypes,omitempty" yaml:"contentTypes,omitempty"`
	Type         TypeRef  `json:"type" yaml:"type"`
}

// SchemaDefinition is the reusable shape of one representation type.
type SchemaDefinition struct {
	// Name is unique within a Document.
	Name string `json:"name" yaml:"name"`
	// Identity is the canonical type expression the schema was built from.
	Identity    string `json:"identity" yaml:"identity"`
	Description string `json:"description,omitempty" yaml:"description,omitempty"`
	// Base names the supertype schema under composition.
	Base string `json:"base,omitempty" yaml:"base,omitempty"`
	// Properties in declaration order.
	Properties []*Property `json:"properties,omitempty" yaml:"properties,omitempty"`
	// Enum values in declaration order; set for enum types only.
	Enum       []string `json:"enum,omitempty" yaml:"enum,omitempty"`
	Deprecated bool     `json:"deprecated,omitempty" yaml:"deprecated,omitempty"`
}

// Property returns the property with the given name, or nil.
func (s *SchemaDefinition) Property(name string) *Property {
	for _, p := range s.Properties {
		if p.Name == name {
			return p
		}
	}
	return nil
}

// Required returns the names of the required properties in order.
func (s *SchemaDefinition) Required() []string {
	var names []string
	for _, p := range s.Properties {
		if p.Required {
			names = append(names, p.Name)
		}
	}
	return names
}

// Property is one serializable member of a schema.
type Property struct {
	Name        string  `json:"name" yaml:"name"`
	Type        TypeRef `json:"type" yaml:"type"`
	Required    bool    `json:"required,omitempty" yaml:"required,omitempty"`
	Deprecated  bool    `json:"deprecated,omitempty" yaml:"deprecated,omitempty"`
	Description string  `json:"description,omitempty" yaml:"description,omitempty"`
}

// PathItem returns the path item for tmpl, or nil.
func (d *Document) PathItem(tmpl string) *PathItem {
	i, found := slices.BinarySearchFunc(d.Paths, tmpl, func(p *PathItem, t string) int {
		return strings.Compare(p.Path, t)
	})
	if !found {
		return nil
	}
	return d.Paths[i]
}

// Operation returns the operation for verb and tmpl, or nil.
func (d *Document) Operation(verb, tmpl string) *Operation {
	if p := d.PathItem(tmpl); p != nil {
		return p.Operation(verb)
	}
	return nil
}

// Operations returns every operation in document order.
func (d *Document) Operations() []*Operation {
	var ops []*Operation
	for _, p := range d.Paths {
		ops = append(ops, p.Operations...)
	}
	return ops
}

// Schema returns the schema definition with the given name, or nil.
func (d *Document) Schema(name string) *SchemaDefinition {
	i, found := slices.BinarySearchFunc(d.Schemas, name, func(s *SchemaDefinition, n string) int {
		return strings.Compare(s.Name, n)
	})
	if !found {
		return nil
	}
	return d.Schemas[i]
}

// Stats summarizes a document.
type Stats struct {
	PathCount      int `json:"pathCount" yaml:"pathCount"`
	OperationCount int `json:"operationCount" yaml:"operationCount"`
	SchemaCount    int `json:"schemaCount" yaml:"schemaCount"`
	TagCount       int `json:"tagCount" yaml:"tagCount"`
}

// Stats counts the document's paths, operations, schemas and tags.
func (d *Document) Stats() Stats {
	return Stats{
		PathCount:      len(d.Paths),
		OperationCount: len(d.Operations()),
		SchemaCount:    len(d.Schemas),
		TagCount:       len(d.Tags),
	}
}
