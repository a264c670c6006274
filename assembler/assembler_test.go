package assembler

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/erraggy/restdoc/internal/issues"
	"github.com/erraggy/restdoc/oaserrors"
	"github.com/erraggy/restdoc/specdoc"
)

func op(verb, path, typ, method string) *specdoc.Operation {
	return &specdoc.Operation{
		Verb:     verb,
		Path:     path,
		Response: &specdoc.Response{Description: "Success", Type: specdoc.None()},
		Source:   specdoc.Source{Type: typ, Method: method},
	}
}

func threeGets() []*specdoc.Operation {
	const typ = "com.acme.AdminResource"
	return []*specdoc.Operation{
		op("GET", "/admin", typ, "getClients"),
		op("GET", "/admin", typ, "getUsers"),
		op("GET", "/admin", typ, "get"),
	}
}

func TestThreeGetsOnOneNode(t *testing.T) {
	res, err := Assemble(threeGets(), nil)
	require.NoError(t, err)

	ops := res.Document.Operations()
	require.Len(t, ops, 1)
	assert.Equal(t, "getClients", ops[0].Source.Method)
	assert.Equal(t, "AdminResource_getClients", ops[0].OperationID)

	require.Len(t, res.Issues, 2)
	for _, i := range res.Issues {
		assert.Equal(t, issues.KindPathCollision, i.Kind)
		assert.False(t, i.IsError())
		assert.Equal(t, "AdminResource.getClients", i.Subject)
	}
	assert.Equal(t, "getUsers", res.Issues[0].Method)
	assert.Equal(t, "get", res.Issues[1].Method)

	assert.Equal(t, 2, res.Collisions.TotalCollisions)
	assert.Equal(t, 2, res.Collisions.ResolvedByAccept)
	assert.False(t, res.Collisions.HasFailures())
}

func TestAcceptRight(t *testing.T) {
	res, err := Assemble(threeGets(), nil, WithCollisionStrategy(StrategyAcceptRight))
	require.NoError(t, err)

	ops := res.Document.Operations()
	require.Len(t, ops, 1)
	assert.Equal(t, "get", ops[0].Source.Method)
	require.Len(t, res.Issues, 2)
	assert.Equal(t, "getClients", res.Issues[0].Method)
	assert.Equal(t, "kept-right", res.Collisions.Events[0].Resolution)
}

func TestFailOnCollision(t *testing.T) {
	_, err := Assemble(threeGets(), nil, WithCollisionStrategy(StrategyFailOnCollision))
	require.Error(t, err)
	assert.ErrorIs(t, err, oaserrors.ErrPathCollision)

	var ce *oaserrors.CollisionError
	require.ErrorAs(t, err, &ce)
	assert.Equal(t, "/admin", ce.Path)
	assert.Equal(t, []string{
		"AdminResource.getClients", "AdminResource.getUsers", "AdminResource.get",
	}, ce.Operations)

	_, err = Assemble([]*specdoc.Operation{op("GET", "/a", "com.acme.AResource", "get")}, nil,
		WithCollisionStrategy(StrategyFailOnCollision))
	assert.NoError(t, err, "no collision, no failure")
}

func TestInvalidStrategy(t *testing.T) {
	_, err := Assemble(nil, nil, WithCollisionStrategy("merge"))
	assert.ErrorIs(t, err, oaserrors.ErrConfig)
	assert.False(t, IsValidStrategy("merge"))
	assert.True(t, IsValidStrategy("accept-left"))
	assert.Len(t, ValidStrategies(), 3)
}

func TestOperationIDsAreUnique(t *testing.T) {
	const mapper = "org.keycloak.services.resources.admin.RoleMapperResource"
	ops := []*specdoc.Operation{
		op("GET", "/users/{user-id}/role-mappings", mapper, "getRoleMappings"),
		op("GET", "/groups/{group-id}/role-mappings", mapper, "getRoleMappings"),
		op("POST", "/groups/{group-id}/role-mappings/realm", mapper, "addRealmRoleMappings"),
		op("GET", "/clients/{id}/role-mappings", mapper, "getRoleMappings"),
	}

	res, err := Assemble(ops, nil)
	require.NoError(t, err)

	var ids []string
	for _, o := range res.Document.Operations() {
		ids = append(ids, o.Path+" "+o.OperationID)
	}
	assert.Equal(t, []string{
		"/clients/{id}/role-mappings RoleMapperResource_getRoleMappings",
		"/groups/{group-id}/role-mappings RoleMapperResource_getRoleMappings_2",
		"/groups/{group-id}/role-mappings/realm RoleMapperResource_addRealmRoleMappings",
		"/users/{user-id}/role-mappings RoleMapperResource_getRoleMappings_3",
	}, ids)
}

func TestOrdering(t *testing.T) {
	const users = "com.acme.UsersResource"
	ops := []*specdoc.Operation{
		op("DELETE", "/users/{id}", users, "remove"),
		op("post", "/users", users, "create"),
		op("GET", "/users/{id}", users, "get"),
		op("GET", "/users", users, "list"),
		op("PUT", "/users/{id}", users, "update"),
		op("GET", "/realms", "com.acme.RealmsResource", "list"),
	}
	schemas := []*specdoc.SchemaDefinition{{Name: "User"}, {Name: "Credential"}, {Name: "Abstract"}}

	res, err := Assemble(ops, schemas, WithTagDescriptions(map[string]string{"Users": "User management"}))
	require.NoError(t, err)
	doc := res.Document

	var paths []string
	for _, p := range doc.Paths {
		var verbs []string
		for _, o := range p.Operations {
			verbs = append(verbs, o.Verb)
		}
		paths = append(paths, p.Path+" "+joinVerbs(verbs))
	}
	assert.Equal(t, []string{
		"/realms GET",
		"/users GET,post",
		"/users/{id} GET,PUT,DELETE",
	}, paths)

	assert.Equal(t, []specdoc.Tag{{Name: "Realms"}, {Name: "Users", Description: "User management"}}, doc.Tags)
	assert.Equal(t, []string{"Users"}, doc.Operation("DELETE", "/users/{id}").Tags)

	require.Len(t, doc.Schemas, 3)
	assert.Equal(t, "Abstract", doc.Schemas[0].Name)
	assert.Equal(t, "User", doc.Schemas[2].Name)
	assert.Equal(t, "User", schemas[0].Name, "input slice is not reordered")
}

func TestInfoAndSecurity(t *testing.T) {
	sec := &specdoc.SecurityScheme{Name: "access_token", Scheme: "bearer", BearerFormat: "JWT"}
	res, err := Assemble(nil, nil,
		WithInfo(specdoc.Info{Title: "Admin", Version: "1"}),
		WithSecurity(sec),
		WithLogger(nil),
	)
	require.NoError(t, err)
	assert.Equal(t, "Admin", res.Document.Info.Title)
	assert.Same(t, sec, res.Document.Security)
	assert.Empty(t, res.Document.Paths)
	assert.Empty(t, res.Issues)
}

func TestTagFor(t *testing.T) {
	assert.Equal(t, "Users", TagFor("org.keycloak.services.resources.admin.UsersResource"))
	assert.Equal(t, "RealmsAdmin", TagFor("RealmsAdminResource"))
	assert.Equal(t, "Ping", TagFor("com.acme.Ping"))
	assert.Equal(t, "UsersResource_getUsers", BaseOperationID(specdoc.Source{
		Type: "org.keycloak.services.resources.admin.UsersResource", Method: "getUsers",
	}))
}

func joinVerbs(verbs []string) string {
	out := ""
	for i, v := range verbs {
		if i > 0 {
			out += ","
		}
		out += v
	}
	return out
}

func TestPruneSchemas(t *testing.T) {
	ops := threeGets()
	ops[0].Response.Type = specdoc.Ref("Client")
	ops[1].Response.Type = specdoc.ArrayOf(specdoc.Ref("User"), false)
	schemas := []*specdoc.SchemaDefinition{
		{Name: "User"},
		{Name: "Client", Properties: []*specdoc.Property{{Name: "owner", Type: specdoc.Ref("Role")}}},
		{Name: "Role"},
	}

	res, err := Assemble(ops, schemas)
	require.NoError(t, err)
	assert.Len(t, res.Document.Schemas, 3, "schemas are kept unless pruning is enabled")

	ops = threeGets()
	ops[0].Response.Type = specdoc.Ref("Client")
	ops[1].Response.Type = specdoc.ArrayOf(specdoc.Ref("User"), false)
	res, err = Assemble(ops, schemas, WithPruneSchemas(true))
	require.NoError(t, err)

	var names []string
	for _, s := range res.Document.Schemas {
		names = append(names, s.Name)
	}
	assert.Equal(t, []string{"Client", "Role"}, names, "User is only reached by a collision loser")
}
