// Package testutil provides test utilities and Source Model fixtures for
// unit tests.
package testutil

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"go.yaml.in/yaml/v4"

	"github.com/erraggy/restdoc/sourcemodel"
)

// NewModel validates classes as a model and fails the test on error.
func NewModel(t testing.TB, classes ...*sourcemodel.Class) *sourcemodel.Model {
	t.Helper()
	m := &sourcemodel.Model{Classes: classes, Source: t.Name()}
	if err := m.Validate(); err != nil {
		t.Fatalf("invalid fixture model: %v", err)
	}
	return m
}

// ParseModel parses a YAML Source Model and fails the test on error.
func ParseModel(t testing.TB, doc string) *sourcemodel.Model {
	t.Helper()
	m, err := sourcemodel.Parse([]byte(doc), t.Name())
	if err != nil {
		t.Fatalf("invalid fixture model: %v", err)
	}
	return m
}

// Resource builds a resource class with a class-level path marker.
// An empty path gives a sub-resource class.
func Resource(name, path string, methods ...*sourcemodel.Method) *sourcemodel.Class {
	return &sourcemodel.Class{Name: name, Path: path, Methods: methods}
}

// Representation builds a data class from its fields and accessors.
func Representation(name string, fields []*sourcemodel.Field, accessors ...*sourcemodel.Method) *sourcemodel.Class {
	return &sourcemodel.Class{Name: name, Fields: fields, Methods: accessors}
}

// Op builds an operation method.
func Op(verb, name, path, returns string, params ...*sourcemodel.Param) *sourcemodel.Method {
	return &sourcemodel.Method{
		Name:       name,
		Visibility: sourcemodel.VisibilityPublic,
		Verb:       verb,
		Path:       path,
		Returns:    returns,
		Params:     params,
	}
}

// Factory builds a sub-resource locator returning returns.
func Factory(name, path, returns string, params ...*sourcemodel.Param) *sourcemodel.Method {
	return Op("", name, path, returns, params...)
}

// Getter builds a public accessor.
func Getter(name, returns string) *sourcemodel.Method {
	return &sourcemodel.Method{Name: name, Visibility: sourcemodel.VisibilityPublic, Returns: returns}
}

// PrivateField builds a private field, the usual backing store of a bean
// property.
func PrivateField(name, typ string) *sourcemodel.Field {
	return &sourcemodel.Field{Name: name, Type: typ, Visibility: sourcemodel.VisibilityPrivate}
}

// PathParam builds a path parameter of type String.
func PathParam(name string) *sourcemodel.Param {
	return &sourcemodel.Param{Name: name, Type: "String", Source: sourcemodel.SourcePath}
}

// QueryParam builds a query parameter.
func QueryParam(name, typ string) *sourcemodel.Param {
	return &sourcemodel.Param{Name: name, Type: typ, Source: sourcemodel.SourceQuery}
}

// BodyParam builds an unannotated parameter.
func BodyParam(name, typ string) *sourcemodel.Param {
	return &sourcemodel.Param{Name: name, Type: typ}
}

// Doc builds a documentation block with (name, text) pairs.
func Doc(summary string, pairs ...string) *sourcemodel.DocBlock {
	d := &sourcemodel.DocBlock{Summary: summary}
	for i := 0; i+1 < len(pairs); i += 2 {
		d.Params = append(d.Params, sourcemodel.DocParam{Name: pairs[i], Text: pairs[i+1]})
	}
	return d
}

// WriteTempYAML marshals doc to YAML in a temporary file and returns its path.
func WriteTempYAML(t *testing.T, doc any) string {
	t.Helper()

	data, err := yaml.Marshal(doc)
	if err != nil {
		t.Fatalf("Failed to marshal document to YAML: %v", err)
	}
	return writeTemp(t, "model.yaml", data)
}

// WriteTempJSON marshals doc to JSON in a temporary file and returns its path.
func WriteTempJSON(t *testing.T, doc any) string {
	t.Helper()

	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		t.Fatalf("Failed to marshal document to JSON: %v", err)
	}
	return writeTemp(t, "model.json", data)
}

// WriteTempFile writes raw content to a temporary file and returns its path.
func WriteTempFile(t *testing.T, name, content string) string {
	t.Helper()
	return writeTemp(t, name, []byte(content))
}

func writeTemp(t *testing.T, name string, data []byte) string {
	t.Helper()
	tmpFile := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(tmpFile, data, 0o600); err != nil {
		t.Fatalf("Failed to write temporary file: %v", err)
	}
	return tmpFile
}
