package sourcemodel

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"strings"

	"go.yaml.in/yaml/v4"

	"github.com/erraggy/restdoc/internal/httputil"
	"github.com/erraggy/restdoc/oaserrors"
)

// LoadFile reads and validates a Source Model document from path.
func LoadFile(path string) (*Model, error) {
	data, err := os.ReadFile(path) //nolint:gosec // G304: path is the user-supplied model location
	if err != nil {
		return nil, &oaserrors.ModelError{Source: path, Message: "failed to read file", Cause: err}
	}
	return Parse(data, path)
}

// Load reads and validates a Source Model document from r.
// source names the document in errors and may be empty.
func Load(r io.Reader, source string) (*Model, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, &oaserrors.ModelError{Source: source, Message: "failed to read input", Cause: err}
	}
	return Parse(data, source)
}

// Parse decodes a YAML or JSON Source Model document and validates it.
func Parse(data []byte, source string) (*Model, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, &oaserrors.ModelError{Source: source, Message: "document is empty"}
	}
	var m Model
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, &oaserrors.ModelError{Source: source, Message: "failed to decode document", Cause: err}
	}
	m.Source = source
	if err := m.Validate(); err != nil {
		return nil, err
	}
	return &m, nil
}

// Validate normalizes the model, parses every type expression and builds
// the class index. Models built in Go (rather than loaded) must be
// validated before use. Validate is idempotent.
func (m *Model) Validate() error {
	m.byName = make(map[string]*Class, len(m.Classes))
	m.bySimple = make(map[string][]*Class, len(m.Classes))

	for i, c := range m.Classes {
		if c == nil {
			return m.errorf("", "", "class #%d is null", i)
		}
		c.Name = strings.TrimSpace(c.Name)
		if c.Name == "" {
			return m.errorf("", "", "class #%d has no name", i)
		}
		if _, dup := m.byName[c.Name]; dup {
			return m.errorf(c.Name, "", "duplicate class")
		}
		m.byName[c.Name] = c
		m.bySimple[c.SimpleName()] = append(m.bySimple[c.SimpleName()], c)

		if err := m.validateClass(c); err != nil {
			return err
		}
	}

	for _, r := range m.Roots {
		if _, ok := m.Class(r); !ok {
			return m.errorf(r, "", "root resource is not a declared class")
		}
	}
	return nil
}

func (m *Model) validateClass(c *Class) error {
	switch c.Kind {
	case "":
		c.Kind = KindClass
	case KindClass, KindEnum, KindInterface:
	default:
		return m.errorf(c.Name, "", "unknown class kind %q", c.Kind)
	}

	if err := m.validateMediaTypes(c.Name, "consumes", c.Consumes); err != nil {
		return err
	}
	if err := m.validateMediaTypes(c.Name, "produces", c.Produces); err != nil {
		return err
	}

	if c.Extends != "" {
		t, err := ParseType(c.Extends)
		if err != nil {
			return m.wrap(c.Name, "extends", err)
		}
		c.extends = t
	}

	seenFields := make(map[string]bool, len(c.Fields))
	for _, f := range c.Fields {
		if f == nil || f.Name == "" {
			return m.errorf(c.Name, "", "field without a name")
		}
		if seenFields[f.Name] {
			return m.errorf(c.Name, f.Name, "duplicate field")
		}
		seenFields[f.Name] = true
		if f.Visibility == "" {
			f.Visibility = VisibilityPackage
		}
		t, err := ParseType(f.Type)
		if err != nil {
			return m.wrap(c.Name, f.Name, err)
		}
		f.typ = t
	}

	for _, meth := range c.Methods {
		if meth == nil || meth.Name == "" {
			return m.errorf(c.Name, "", "method without a name")
		}
		if err := m.validateMethod(c, meth); err != nil {
			return err
		}
	}
	return nil
}

func (m *Model) validateMethod(c *Class, meth *Method) error {
	if meth.Visibility == "" {
		// resource methods are almost always public; absent markers from
		// front ends that only emit public members mean public
		meth.Visibility = VisibilityPublic
	}
	if meth.Verb != "" {
		meth.Verb = strings.ToUpper(strings.TrimSpace(meth.Verb))
		if !isVerb(meth.Verb) {
			return m.errorf(c.Name, meth.Name, "unknown HTTP verb %q", meth.Verb)
		}
	}

	if err := m.validateMediaTypes(c.Name, meth.Name, meth.Consumes); err != nil {
		return err
	}
	if err := m.validateMediaTypes(c.Name, meth.Name, meth.Produces); err != nil {
		return err
	}

	returns := meth.Returns
	if strings.TrimSpace(returns) == "" {
		returns = "void"
	}
	t, err := ParseType(returns)
	if err != nil {
		return m.wrap(c.Name, meth.Name, err)
	}
	meth.returns = t

	for i, p := range meth.Params {
		if p == nil || p.Name == "" {
			return m.errorf(c.Name, meth.Name, "parameter #%d has no name", i)
		}
		switch p.Source {
		case "", SourcePath, SourceQuery, SourceHeader, SourceCookie, SourceForm, SourceContext, SourceBody:
		default:
			return m.errorf(c.Name, meth.Name, "parameter %q has unknown source %q", p.Name, p.Source)
		}
		pt, err := ParseType(p.Type)
		if err != nil {
			return m.wrap(c.Name, meth.Name+"("+p.Name+")", err)
		}
		p.typ = pt
	}
	return nil
}

func isVerb(v string) bool {
	return httputil.IsMethod(v)
}

func (m *Model) validateMediaTypes(class, member string, types []string) error {
	for _, mt := range types {
		if !httputil.IsValidMediaType(strings.TrimSpace(mt)) {
			return m.errorf(class, member, "invalid media type %q", mt)
		}
	}
	return nil
}

func (m *Model) errorf(class, member, format string, args ...any) error {
	return &oaserrors.ModelError{
		Source:  m.Source,
		Class:   class,
		Member:  member,
		Message: fmt.Sprintf(format, args...),
	}
}

func (m *Model) wrap(class, member string, err error) error {
	return &oaserrors.ModelError{
		Source:  m.Source,
		Class:   class,
		Member:  member,
		Message: "invalid type expression",
		Cause:   err,
	}
}
