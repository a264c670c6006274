package specdoc

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTypeRefRenamed(t *testing.T) {
	names := map[string]string{"Page_Foo": "ComAcmePageOfYFoo", "ComAcmePageOfYFoo": "Page_Foo"}

	assert.Equal(t, "#/ComAcmePageOfYFoo", Ref("Page_Foo").Renamed(names).String())
	assert.Equal(t, "#/User", Ref("User").Renamed(names).String())

	shared := ArrayOf(MapOf(Ref("Page_Foo")), false)
	renamed := shared.Renamed(names)
	assert.Equal(t, "array<map<#/ComAcmePageOfYFoo>>", renamed.String())
	assert.Equal(t, "array<map<#/Page_Foo>>", shared.String(), "source is not modified")
}

func TestOperationRenameRefs(t *testing.T) {
	entity := &Parameter{Name: "rep", In: InBody, Type: Ref("A")}
	op := &Operation{
		Parameters:  []*Parameter{{Name: "q", In: InQuery, Type: ArrayOf(Ref("A"), false)}},
		RequestBody: &RequestBody{Entity: entity},
		Response:    &Response{Type: Ref("B")},
	}
	op.RenameRefs(map[string]string{"A": "B", "B": "A"})

	assert.Equal(t, "array<#/B>", op.Parameters[0].Type.String())
	assert.Equal(t, "#/B", entity.Type.String())
	assert.Equal(t, "#/A", op.Response.Type.String())
	assert.Equal(t, []string{"B", "B", "A"}, op.Refs())
}

func TestSchemaDefinitionRenameRefs(t *testing.T) {
	def := &SchemaDefinition{
		Name: "UserPage",
		Base: "Page_User",
		Properties: []*Property{
			{Name: "owner", Type: Ref("User")},
			{Name: "total", Type: Primitive("integer", "int64")},
		},
	}
	def.RenameRefs(map[string]string{"Page_User": "PageOfUser"})

	assert.Equal(t, "UserPage", def.Name)
	assert.Equal(t, "PageOfUser", def.Base)
	assert.Equal(t, []string{"PageOfUser", "User"}, def.Refs())
}

func TestReachableSchemas(t *testing.T) {
	schemas := []*SchemaDefinition{
		{Name: "Abstract"},
		{Name: "Group", Properties: []*Property{{Name: "subGroups", Type: ArrayOf(Ref("Group"), false)}}},
		{Name: "Orphan", Properties: []*Property{{Name: "user", Type: Ref("User")}}},
		{Name: "Role"},
		{Name: "User", Base: "Abstract", Properties: []*Property{{Name: "groups", Type: ArrayOf(Ref("Group"), false)}}},
	}
	ops := []*Operation{
		{Response: &Response{Type: MapOf(Ref("User"))}},
		{Response: &Response{Type: None()}},
	}

	var names []string
	for _, s := range ReachableSchemas(ops, schemas) {
		names = append(names, s.Name)
	}
	assert.Equal(t, []string{"Abstract", "Group", "User"}, names)
	assert.Empty(t, ReachableSchemas(nil, schemas))
}
