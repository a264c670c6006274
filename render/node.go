package render

import (
	"strconv"
	"strings"

	"go.yaml.in/yaml/v4"

	"github.com/erraggy/restdoc/internal/pathutil"
	"github.com/erraggy/restdoc/specdoc"
)

// OpenAPIVersion is the version written to the "openapi" field.
const OpenAPIVersion = "3.0.3"

// SuccessStatus is the response key of every operation.
const SuccessStatus = "2XX"

// mapping is an ordered YAML mapping under construction.
type mapping struct{ node *yaml.Node }

func newMapping() mapping {
	return mapping{node: &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}}
}

func (m mapping) set(key string, val *yaml.Node) {
	m.node.Content = append(m.node.Content, scalarNode("!!str", key), val)
}

func (m mapping) str(key, val string) {
	m.set(key, scalarNode("!!str", val))
}

// optStr sets key only when val is not empty.
func (m mapping) optStr(key, val string) {
	if val != "" {
		m.str(key, val)
	}
}

func (m mapping) boolean(key string, val bool) {
	m.set(key, scalarNode("!!bool", strconv.FormatBool(val)))
}

// flag sets key to true only when val is true.
func (m mapping) flag(key string, val bool) {
	if val {
		m.boolean(key, true)
	}
}

func (m mapping) empty() bool { return len(m.node.Content) == 0 }

func scalarNode(tag, value string) *yaml.Node {
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: tag, Value: value}
}

func sequence(items ...*yaml.Node) *yaml.Node {
	return &yaml.Node{Kind: yaml.SequenceNode, Tag: "!!seq", Content: items}
}

func stringSeq(values []string) *yaml.Node {
	seq := sequence()
	for _, v := range values {
		seq.Content = append(seq.Content, scalarNode("!!str", v))
	}
	return seq
}

// documentNode builds the OpenAPI document tree. Keys are written in the
// conventional order: openapi, info, tags, paths, security, components.
func documentNode(doc *specdoc.Document) *yaml.Node {
	root := newMapping()
	root.str("openapi", OpenAPIVersion)

	info := newMapping()
	info.str("title", doc.Info.Title)
	info.optStr("description", doc.Info.Description)
	info.str("version", doc.Info.Version)
	root.set("info", info.node)

	if len(doc.Tags) > 0 {
		tags := sequence()
		for _, t := range doc.Tags {
			tag := newMapping()
			tag.str("name", t.Name)
			tag.optStr("description", t.Description)
			tags.Content = append(tags.Content, tag.node)
		}
		root.set("tags", tags)
	}

	paths := newMapping()
	for _, item := range doc.Paths {
		pathItem := newMapping()
		for _, op := range item.Operations {
			pathItem.set(strings.ToLower(op.Verb), operationNode(op))
		}
		paths.set(item.Path, pathItem.node)
	}
	root.set("paths", paths.node)

	if doc.Security != nil {
		req := newMapping()
		req.set(doc.Security.Name, sequence())
		root.set("security", sequence(req.node))
	}

	components := newMapping()
	if len(doc.Schemas) > 0 {
		schemas := newMapping()
		for _, def := range doc.Schemas {
			schemas.set(def.Name, definitionNode(def))
		}
		components.set("schemas", schemas.node)
	}
	if doc.Security != nil {
		scheme := newMapping()
		scheme.str("type", "http")
		scheme.str("scheme", doc.Security.Scheme)
		scheme.optStr("bearerFormat", doc.Security.BearerFormat)
		schemes := newMapping()
		schemes.set(doc.Security.Name, scheme.node)
		components.set("securitySchemes", schemes.node)
	}
	if !components.empty() {
		root.set("components", components.node)
	}

	return &yaml.Node{Kind: yaml.DocumentNode, Content: []*yaml.Node{root.node}}
}

func operationNode(op *specdoc.Operation) *yaml.Node {
	m := newMapping()
	if len(op.Tags) > 0 {
		m.set("tags", stringSeq(op.Tags))
	}
	m.optStr("summary", op.Summary)
	m.optStr("description", op.Description)
	m.str("operationId", op.OperationID)

	if len(op.Parameters) > 0 {
		params := sequence()
		for _, p := range op.Parameters {
			params.Content = append(params.Content, parameterNode(p))
		}
		m.set("parameters", params)
	}
	if op.RequestBody != nil {
		m.set("requestBody", requestBodyNode(op.RequestBody))
	}

	resp := newMapping()
	desc := "Success"
	if op.Response != nil && op.Response.Description != "" {
		desc = op.Response.Description
	}
	resp.str("description", desc)
	if op.Response != nil && !op.Response.Type.IsNone() {
		resp.set("content", contentNode(op.Response.ContentTypes, schemaNode(op.Response.Type)))
	}
	responses := newMapping()
	responses.set(SuccessStatus, resp.node)
	m.set("responses", responses.node)

	m.flag("deprecated", op.Deprecated)
	return m.node
}

func parameterNode(p *specdoc.Parameter) *yaml.Node {
	m := newMapping()
	m.str("name", p.Name)
	m.str("in", string(p.In))
	m.optStr("description", p.Description)
	m.boolean("required", p.Required || p.In == specdoc.InPath)

	schema := schemaNode(p.Type)
	if p.Default != nil {
		s := siblings(schema)
		s.set("default", defaultNode(p.Type, *p.Default))
		schema = s.node
	}
	m.set("schema", schema)
	return m.node
}

// requestBodyNode renders the entity or, for form and multipart bodies, an
// object schema built from the fields.
func requestBodyNode(body *specdoc.RequestBody) *yaml.Node {
	m := newMapping()
	m.optStr("description", body.Description)

	var schema *yaml.Node
	switch {
	case body.Entity != nil:
		schema = schemaNode(body.Entity.Type)
	case len(body.Fields) > 0:
		obj := newMapping()
		obj.str("type", "object")
		props := newMapping()
		var required []string
		for _, f := range body.Fields {
			prop := schemaNode(f.Type)
			if f.Description != "" || f.Default != nil {
				s := siblings(prop)
				s.optStr("description", f.Description)
				if f.Default != nil {
					s.set("default", defaultNode(f.Type, *f.Default))
				}
				prop = s.node
			}
			props.set(f.Name, prop)
			if f.Required {
				required = append(required, f.Name)
			}
		}
		obj.set("properties", props.node)
		if len(required) > 0 {
			obj.set("required", stringSeq(required))
		}
		schema = obj.node
	default:
		schema = schemaNode(specdoc.FreeForm())
	}

	m.set("content", contentNode(body.ContentTypes, schema))
	m.boolean("required", body.Required)
	return m.node
}

// contentNode maps each media type to schema. The schema node is shared;
// the YAML encoder and the JSON writer both copy it out.
func contentNode(types []string, schema *yaml.Node) *yaml.Node {
	if len(types) == 0 {
		types = []string{"application/json"}
	}
	content := newMapping()
	for _, t := range types {
		media := newMapping()
		media.set("schema", schema)
		content.set(t, media.node)
	}
	return content.node
}

// schemaNode renders a TypeRef as an inline schema or a reference.
func schemaNode(t specdoc.TypeRef) *yaml.Node {
	m := newMapping()
	switch t.Kind {
	case specdoc.KindPrimitive:
		m.str("type", t.Type)
		m.optStr("format", t.Format)
	case specdoc.KindArray:
		m.str("type", "array")
		items := specdoc.FreeForm()
		if t.Items != nil {
			items = *t.Items
		}
		m.set("items", schemaNode(items))
		m.flag("uniqueItems", t.Unique)
	case specdoc.KindMap:
		m.str("type", "object")
		values := specdoc.FreeForm()
		if t.Values != nil {
			values = *t.Values
		}
		m.set("additionalProperties", schemaNode(values))
	case specdoc.KindRef:
		m.str("$ref", pathutil.SchemaRef(t.Name))
	default:
		m.str("type", "object")
	}
	return m.node
}

// siblings returns schema as a mapping that can take more keywords.
// References cannot carry siblings in OpenAPI 3.0, so they are wrapped in
// allOf.
func siblings(schema *yaml.Node) mapping {
	if isRef(schema) {
		wrapper := newMapping()
		wrapper.set("allOf", sequence(schema))
		return wrapper
	}
	return mappingOf(schema)
}

func isRef(schema *yaml.Node) bool {
	return len(schema.Content) >= 2 && schema.Content[0].Value == "$ref"
}

func mappingOf(n *yaml.Node) mapping { return mapping{node: n} }

func definitionNode(def *specdoc.SchemaDefinition) *yaml.Node {
	if len(def.Enum) > 0 {
		m := newMapping()
		m.str("type", "string")
		m.optStr("description", def.Description)
		m.set("enum", stringSeq(def.Enum))
		m.flag("deprecated", def.Deprecated)
		return m.node
	}

	own := newMapping()
	own.str("type", "object")
	if def.Base == "" {
		own.optStr("description", def.Description)
	}
	if required := def.Required(); len(required) > 0 {
		own.set("required", stringSeq(required))
	}
	if len(def.Properties) > 0 {
		props := newMapping()
		for _, p := range def.Properties {
			props.set(p.Name, propertyNode(p))
		}
		own.set("properties", props.node)
	}

	if def.Base == "" {
		own.flag("deprecated", def.Deprecated)
		return own.node
	}

	base := newMapping()
	base.str("$ref", pathutil.SchemaRef(def.Base))
	m := newMapping()
	m.optStr("description", def.Description)
	m.set("allOf", sequence(base.node, own.node))
	m.flag("deprecated", def.Deprecated)
	return m.node
}

func propertyNode(p *specdoc.Property) *yaml.Node {
	schema := schemaNode(p.Type)
	if p.Description == "" && !p.Deprecated {
		return schema
	}
	s := siblings(schema)
	s.optStr("description", p.Description)
	s.flag("deprecated", p.Deprecated)
	return s.node
}

// defaultNode renders a declared default as a scalar of the schema type,
// falling back to a string when the value does not parse.
func defaultNode(t specdoc.TypeRef, value string) *yaml.Node {
	if t.Kind == specdoc.KindPrimitive {
		switch t.Type {
		case "integer":
			if _, err := strconv.ParseInt(value, 10, 64); err == nil {
				return scalarNode("!!int", value)
			}
		case "number":
			if _, err := strconv.ParseFloat(value, 64); err == nil {
				return scalarNode("!!float", value)
			}
		case "boolean":
			if b, err := strconv.ParseBool(value); err == nil {
				return scalarNode("!!bool", strconv.FormatBool(b))
			}
		}
	}
	return scalarNode("!!str", value)
}
