package render

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"
	"go.yaml.in/yaml/v4"

	"github.com/erraggy/restdoc/oaserrors"
	"github.com/erraggy/restdoc/specdoc"
)

// Node returns the OpenAPI document tree for doc. Mapping keys appear in
// the order they are written by YAML and JSON.
func Node(doc *specdoc.Document) *yaml.Node {
	return documentNode(doc)
}

// YAML renders doc as an OpenAPI 3 YAML document.
func YAML(doc *specdoc.Document) ([]byte, error) {
	if doc == nil {
		return nil, fmt.Errorf("render: document is nil")
	}
	data, err := yaml.Marshal(Node(doc))
	if err != nil {
		return nil, fmt.Errorf("render: failed to encode YAML: %w", err)
	}
	return data, nil
}

// JSON renders doc as compact OpenAPI 3 JSON.
func JSON(doc *specdoc.Document) ([]byte, error) {
	if doc == nil {
		return nil, fmt.Errorf("render: document is nil")
	}
	var buf bytes.Buffer
	if err := marshalNodeAsJSON(&buf, Node(doc)); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// JSONIndent renders doc as JSON indented by two spaces, with a trailing
// newline.
func JSONIndent(doc *specdoc.Document) ([]byte, error) {
	compact, err := JSON(doc)
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	if err := json.Indent(&buf, compact, "", "  "); err != nil {
		return nil, fmt.Errorf("render: failed to indent JSON: %w", err)
	}
	buf.WriteByte('\n')
	return buf.Bytes(), nil
}

// Validate renders doc and checks the result with the kin-openapi
// validator. A rejected document yields a *oaserrors.ValidationError.
func Validate(ctx context.Context, doc *specdoc.Document) error {
	data, err := JSON(doc)
	if err != nil {
		return err
	}

	loader := openapi3.NewLoader()
	loader.Context = ctx
	loaded, err := loader.LoadFromData(data)
	if err != nil {
		return validationError(err)
	}
	if err := loaded.Validate(ctx); err != nil {
		return validationError(err)
	}
	return nil
}

func validationError(err error) error {
	return &oaserrors.ValidationError{
		Pointer: jsonPointer(err),
		Message: err.Error(),
		Cause:   err,
	}
}

// jsonPointer extracts the location of the first schema error, if any.
func jsonPointer(err error) string {
	var multi openapi3.MultiError
	if errors.As(err, &multi) && len(multi) > 0 {
		return jsonPointer(multi[0])
	}
	var se *openapi3.SchemaError
	if errors.As(err, &se) {
		if parts := se.JSONPointer(); len(parts) > 0 {
			return "#/" + strings.Join(parts, "/")
		}
	}
	return ""
}
