package render

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.yaml.in/yaml/v4"

	"github.com/erraggy/restdoc/generator"
	"github.com/erraggy/restdoc/internal/testutil"
	"github.com/erraggy/restdoc/oaserrors"
	"github.com/erraggy/restdoc/specdoc"
)

func ptr(s string) *string { return &s }

func sampleDocument() *specdoc.Document {
	items := specdoc.Ref("ItemRepresentation")
	return &specdoc.Document{
		Info: specdoc.Info{Title: "Items", Version: "2.0"},
		Tags: []specdoc.Tag{{Name: "Items", Description: "Item store"}},
		Paths: []*specdoc.PathItem{
			{
				Path: "/items",
				Operations: []*specdoc.Operation{
					{
						Verb:        "GET",
						Path:        "/items",
						OperationID: "ItemsResource_list",
						Summary:     "List items",
						Tags:        []string{"Items"},
						Parameters: []*specdoc.Parameter{
							{Name: "max", In: specdoc.InQuery, Type: specdoc.Primitive("integer", "int32"), Default: ptr("100")},
							{Name: "kind", In: specdoc.InQuery, Type: specdoc.Ref("Kind"), Description: "Item kind"},
						},
						Response: &specdoc.Response{
							Description:  "Success",
							ContentTypes: []string{"application/json"},
							Type:         specdoc.ArrayOf(items, false),
						},
					},
					{
						Verb:        "POST",
						Path:        "/items",
						OperationID: "ItemsResource_create",
						Tags:        []string{"Items"},
						RequestBody: &specdoc.RequestBody{
							ContentTypes: []string{"application/json"},
							Required:     true,
							Entity:       &specdoc.Parameter{Name: "rep", In: specdoc.InBody, Type: items},
						},
						Response:   &specdoc.Response{Description: "Created", Type: specdoc.None()},
						Deprecated: true,
					},
				},
			},
			{
				Path: "/items/{id}/upload",
				Operations: []*specdoc.Operation{
					{
						Verb:        "PUT",
						Path:        "/items/{id}/upload",
						OperationID: "ItemsResource_upload",
						Parameters: []*specdoc.Parameter{
							{Name: "id", In: specdoc.InPath, Type: specdoc.PlainString()},
						},
						RequestBody: &specdoc.RequestBody{
							ContentTypes: []string{"multipart/form-data"},
							Fields: []*specdoc.Parameter{
								{Name: "file", In: specdoc.InForm, Type: specdoc.Binary(), Required: true},
								{Name: "overwrite", In: specdoc.InForm, Type: specdoc.Primitive("boolean", ""), Default: ptr("false")},
							},
						},
						Response: &specdoc.Response{Type: specdoc.None()},
					},
				},
			},
		},
		Schemas: []*specdoc.SchemaDefinition{
			{Name: "BaseRepresentation", Properties: []*specdoc.Property{
				{Name: "id", Type: specdoc.PlainString(), Required: true},
			}},
			{Name: "ItemRepresentation", Base: "BaseRepresentation", Description: "An item", Properties: []*specdoc.Property{
				{Name: "kind", Type: specdoc.Ref("Kind"), Description: "What it is"},
				{Name: "tags", Type: specdoc.ArrayOf(specdoc.PlainString(), true)},
				{Name: "attributes", Type: specdoc.MapOf(specdoc.ArrayOf(specdoc.PlainString(), false))},
				{Name: "legacy", Type: specdoc.PlainString(), Deprecated: true},
			}},
			{Name: "Kind", Enum: []string{"SMALL", "LARGE"}},
		},
		Security: &generator.BearerScheme,
	}
}

func decodeYAML(t *testing.T, data []byte) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, yaml.Unmarshal(data, &out))
	return out
}

func dig(t *testing.T, v any, keys ...any) any {
	t.Helper()
	for _, k := range keys {
		switch key := k.(type) {
		case string:
			m, ok := v.(map[string]any)
			require.True(t, ok, "expected mapping at %q", key)
			v, ok = m[key]
			require.True(t, ok, "missing key %q", key)
		case int:
			s, ok := v.([]any)
			require.True(t, ok, "expected sequence at %d", key)
			require.Less(t, key, len(s))
			v = s[key]
		}
	}
	return v
}

func TestYAMLLayout(t *testing.T) {
	data, err := YAML(sampleDocument())
	require.NoError(t, err)
	doc := decodeYAML(t, data)

	assert.Equal(t, OpenAPIVersion, doc["openapi"])
	assert.Equal(t, "Items", dig(t, doc, "info", "title"))
	assert.Equal(t, "Item store", dig(t, doc, "tags", 0, "description"))

	list := dig(t, doc, "paths", "/items", "get")
	assert.Equal(t, "ItemsResource_list", dig(t, list, "operationId"))
	assert.Equal(t, 100, dig(t, list, "parameters", 0, "schema", "default"))
	assert.Equal(t, false, dig(t, list, "parameters", 0, "required"))
	assert.Equal(t, "#/components/schemas/Kind", dig(t, list, "parameters", 1, "schema", "$ref"))
	assert.Equal(t, "#/components/schemas/ItemRepresentation",
		dig(t, list, "responses", SuccessStatus, "content", "application/json", "schema", "items", "$ref"))

	create := dig(t, doc, "paths", "/items", "post")
	assert.Equal(t, true, dig(t, create, "deprecated"))
	assert.Equal(t, true, dig(t, create, "requestBody", "required"))
	assert.Equal(t, "Created", dig(t, create, "responses", SuccessStatus, "description"))
	assert.NotContains(t, dig(t, create, "responses", SuccessStatus), "content")

	upload := dig(t, doc, "paths", "/items/{id}/upload", "put")
	assert.Equal(t, true, dig(t, upload, "parameters", 0, "required"), "path parameters are always required")
	assert.Equal(t, "Success", dig(t, upload, "responses", SuccessStatus, "description"))
	form := dig(t, upload, "requestBody", "content", "multipart/form-data", "schema")
	assert.Equal(t, "binary", dig(t, form, "properties", "file", "format"))
	assert.Equal(t, false, dig(t, form, "properties", "overwrite", "default"))
	assert.Equal(t, []any{"file"}, dig(t, form, "required"))

	assert.Equal(t, []any{map[string]any{"access_token": []any{}}}, doc["security"])
	assert.Equal(t, "bearer", dig(t, doc, "components", "securitySchemes", "access_token", "scheme"))
	assert.Equal(t, "JWT", dig(t, doc, "components", "securitySchemes", "access_token", "bearerFormat"))
}

func TestSchemaLayout(t *testing.T) {
	data, err := YAML(sampleDocument())
	require.NoError(t, err)
	schemas := dig(t, decodeYAML(t, data), "components", "schemas")

	base := dig(t, schemas, "BaseRepresentation")
	assert.Equal(t, []any{"id"}, dig(t, base, "required"))

	item := dig(t, schemas, "ItemRepresentation")
	assert.Equal(t, "An item", dig(t, item, "description"))
	assert.Equal(t, "#/components/schemas/BaseRepresentation", dig(t, item, "allOf", 0, "$ref"))
	own := dig(t, item, "allOf", 1)
	assert.Equal(t, "object", dig(t, own, "type"))
	assert.Equal(t, "What it is", dig(t, own, "properties", "kind", "description"))
	assert.Equal(t, "#/components/schemas/Kind", dig(t, own, "properties", "kind", "allOf", 0, "$ref"))
	assert.Equal(t, true, dig(t, own, "properties", "tags", "uniqueItems"))
	assert.Equal(t, "array", dig(t, own, "properties", "attributes", "additionalProperties", "type"))
	assert.Equal(t, true, dig(t, own, "properties", "legacy", "deprecated"))

	kind := dig(t, schemas, "Kind")
	assert.Equal(t, "string", dig(t, kind, "type"))
	assert.Equal(t, []any{"SMALL", "LARGE"}, dig(t, kind, "enum"))
}

func TestKeyOrder(t *testing.T) {
	root := Node(sampleDocument()).Content[0]
	var keys []string
	for i := 0; i < len(root.Content); i += 2 {
		keys = append(keys, root.Content[i].Value)
	}
	assert.Equal(t, []string{"openapi", "info", "tags", "paths", "security", "components"}, keys)
}

func TestJSONMatchesYAML(t *testing.T) {
	doc := sampleDocument()

	y, err := YAML(doc)
	require.NoError(t, err)
	j, err := JSON(doc)
	require.NoError(t, err)
	indented, err := JSONIndent(doc)
	require.NoError(t, err)

	var fromJSON map[string]any
	require.NoError(t, json.Unmarshal(j, &fromJSON))
	var fromYAML map[string]any
	require.NoError(t, json.Unmarshal(toJSON(t, decodeYAML(t, y)), &fromYAML))
	assert.Equal(t, fromYAML, fromJSON)

	assert.JSONEq(t, string(j), string(indented))
	assert.Equal(t, byte('\n'), indented[len(indented)-1])
	assert.Contains(t, string(j), `"default":100`)
	assert.Contains(t, string(j), `"openapi":"3.0.3"`)
}

func toJSON(t *testing.T, v any) []byte {
	t.Helper()
	data, err := json.Marshal(v)
	require.NoError(t, err)
	return data
}

func TestRenderIsDeterministic(t *testing.T) {
	first, err := YAML(sampleDocument())
	require.NoError(t, err)
	second, err := YAML(sampleDocument())
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestNoSecurity(t *testing.T) {
	doc := sampleDocument()
	doc.Security = nil
	data, err := YAML(doc)
	require.NoError(t, err)
	out := decodeYAML(t, data)
	assert.NotContains(t, out, "security")
	assert.NotContains(t, dig(t, out, "components"), "securitySchemes")
}

func TestNilDocument(t *testing.T) {
	_, err := YAML(nil)
	assert.Error(t, err)
	_, err = JSON(nil)
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	ctx := context.Background()

	t.Run("sample", func(t *testing.T) {
		assert.NoError(t, Validate(ctx, sampleDocument()))
	})

	t.Run("keycloak", func(t *testing.T) {
		res, err := generator.GenerateWithOptions(generator.WithModel(testutil.KeycloakModel(t)))
		require.NoError(t, err)
		assert.NoError(t, Validate(ctx, res.Document))
	})

	t.Run("invalid", func(t *testing.T) {
		doc := sampleDocument()
		doc.Info.Version = ""
		err := Validate(ctx, doc)
		require.Error(t, err)
		assert.ErrorIs(t, err, oaserrors.ErrInvalidDocument)
		var verr *oaserrors.ValidationError
		require.ErrorAs(t, err, &verr)
		assert.NotEmpty(t, verr.Message)
	})
}

func TestWriteFile(t *testing.T) {
	dir := t.TempDir()
	doc := sampleDocument()

	yamlPath := filepath.Join(dir, "api.yaml")
	require.NoError(t, WriteFile(yamlPath, doc))
	data, err := os.ReadFile(yamlPath)
	require.NoError(t, err)
	assert.Equal(t, OpenAPIVersion, decodeYAML(t, data)["openapi"])

	jsonPath := filepath.Join(dir, "api.JSON")
	require.NoError(t, WriteFile(jsonPath, doc))
	data, err = os.ReadFile(jsonPath)
	require.NoError(t, err)
	assert.True(t, json.Valid(data))
}

func TestWriteDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "out", "nested")
	written, err := WriteDir(dir, sampleDocument())
	require.NoError(t, err)
	assert.Equal(t, []string{filepath.Join(dir, YAMLFileName), filepath.Join(dir, JSONFileName)}, written)

	for _, path := range written {
		info, err := os.Stat(path)
		require.NoError(t, err)
		assert.Positive(t, info.Size())
	}
}

func TestFormatForPath(t *testing.T) {
	assert.Equal(t, FormatJSON, FormatForPath("a/b.json"))
	assert.Equal(t, FormatYAML, FormatForPath("a/b.yml"))
	assert.Equal(t, FormatYAML, FormatForPath("noext"))

	_, err := Encode(sampleDocument(), Format("xml"))
	assert.Error(t, err)
}
