package specdoc

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTypeRefString(t *testing.T) {
	tests := []struct {
		ref  TypeRef
		want string
	}{
		{None(), "none"},
		{PlainString(), "string"},
		{Primitive("integer", "int64"), "integer/int64"},
		{Binary(), "string/binary"},
		{ArrayOf(Ref("User"), false), "array<#/User>"},
		{ArrayOf(PlainString(), true), "set<string>"},
		{MapOf(ArrayOf(PlainString(), false)), "map<array<string>>"},
		{FreeForm(), "object"},
	}
	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.ref.String())
		})
	}
}

func TestTypeRefRefs(t *testing.T) {
	assert.Equal(t, []string{"User"}, Ref("User").Refs())
	assert.Equal(t, []string{"Role"}, MapOf(ArrayOf(Ref("Role"), true)).Refs())
	assert.Empty(t, PlainString().Refs())
	assert.Empty(t, None().Refs())
	assert.True(t, None().IsNone())
	assert.False(t, FreeForm().IsNone())
}

func TestArrayOfCopiesItems(t *testing.T) {
	items := Ref("User")
	arr := ArrayOf(items, false)
	items.Name = "Changed"
	assert.Equal(t, "User", arr.Items.Name)
}

func TestVerbRank(t *testing.T) {
	assert.Less(t, VerbRank("GET"), VerbRank("put"))
	assert.Less(t, VerbRank("POST"), VerbRank("DELETE"))
	assert.Equal(t, len(VerbOrder), VerbRank("CONNECT"))
}

func sampleDocument() *Document {
	get := &Operation{
		Verb: "GET", Path: "/users/{id}", OperationID: "User_get",
		Parameters: []*Parameter{{Name: "id", In: InPath, Type: PlainString(), Required: true}},
		Response:   &Response{Description: "Success", Type: Ref("UserRepresentation")},
		Source:     Source{Type: "org.example.UserResource", Method: "get"},
	}
	put := &Operation{
		Verb: "PUT", Path: "/users/{id}", OperationID: "User_update",
		RequestBody: &RequestBody{
			ContentTypes: []string{"application/json"},
			Entity:       &Parameter{Name: "rep", In: InBody, Type: Ref("UserRepresentation"), Required: true},
		},
		Response: &Response{Description: "Success", Type: None()},
	}
	return &Document{
		Paths: []*PathItem{
			{Path: "/users", Operations: []*Operation{{Verb: "GET", Path: "/users"}}},
			{Path: "/users/{id}", Operations: []*Operation{get, put}},
		},
		Schemas: []*SchemaDefinition{
			{Name: "RoleRepresentation"},
			{Name: "UserRepresentation", Properties: []*Property{
				{Name: "id", Type: PlainString()},
				{Name: "enabled", Type: Primitive("boolean", ""), Required: true},
			}},
		},
		Tags: []Tag{{Name: "User"}},
	}
}

func TestDocumentLookups(t *testing.T) {
	doc := sampleDocument()

	require.NotNil(t, doc.PathItem("/users/{id}"))
	assert.Nil(t, doc.PathItem("/groups"))

	op := doc.Operation("get", "/users/{id}")
	require.NotNil(t, op)
	assert.Equal(t, "User_get", op.OperationID)
	assert.Equal(t, "UserResource.get", op.Source.String())
	assert.NotNil(t, op.Parameter("id", InPath))
	assert.Nil(t, op.Parameter("id", InQuery))
	assert.Nil(t, doc.Operation("DELETE", "/users/{id}"))

	put := doc.Operation("PUT", "/users/{id}")
	require.NotNil(t, put)
	all := put.AllParameters()
	require.Len(t, all, 1)
	assert.Equal(t, InBody, all[0].In)

	schema := doc.Schema("UserRepresentation")
	require.NotNil(t, schema)
	assert.Equal(t, []string{"enabled"}, schema.Required())
	assert.NotNil(t, schema.Property("id"))
	assert.Nil(t, schema.Property("missing"))
	assert.Nil(t, doc.Schema("Missing"))

	assert.Equal(t, Stats{PathCount: 2, OperationCount: 3, SchemaCount: 2, TagCount: 1}, doc.Stats())
}
