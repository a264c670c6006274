package naming

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestToPascalCase(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "empty string", input: "", want: ""},
		{name: "single letter", input: "a", want: "A"},
		{name: "snake_case", input: "user_profile", want: "UserProfile"},
		{name: "kebab-case", input: "api-client", want: "ApiClient"},
		{name: "qualified name", input: "org.keycloak.Role", want: "OrgKeycloakRole"},
		{name: "path-like", input: "/api/v1/users", want: "ApiV1Users"},
		{name: "spaces", input: "client scopes", want: "ClientScopes"},
		{name: "already pascal", input: "UserRepresentation", want: "UserRepresentation"},
		{name: "double separator", input: "double__under", want: "DoubleUnder"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ToPascalCase(tt.input))
		})
	}
}

func TestToCamelCase(t *testing.T) {
	assert.Equal(t, "userProfile", ToCamelCase("user_profile"))
	assert.Equal(t, "userProfile", ToCamelCase("UserProfile"))
	assert.Equal(t, "", ToCamelCase(""))
}

func TestToSnakeCase(t *testing.T) {
	assert.Equal(t, "user_profile", ToSnakeCase("UserProfile"))
	assert.Equal(t, "list_of_user", ToSnakeCase("ListOfUser"))
	assert.Equal(t, "a_b", ToSnakeCase("a.b"))
	assert.Equal(t, "", ToSnakeCase(""))
}

func TestToTitleCase(t *testing.T) {
	assert.Equal(t, "Client Scopes", ToTitleCase("client scopes"))
	assert.Equal(t, "ClientScopes", ToTitleCase("clientScopes"), "the rest of a word keeps its case")
	assert.Equal(t, "", ToTitleCase(""))
}

func TestFirstRune(t *testing.T) {
	assert.Equal(t, "Users", UpperFirst("users"))
	assert.Equal(t, "users", LowerFirst("Users"))
	assert.Equal(t, "", UpperFirst(""))
	assert.Equal(t, "", LowerFirst(""))
	assert.Equal(t, "Émile", UpperFirst("émile"))
}

func TestDecapitalize(t *testing.T) {
	tests := map[string]string{
		"FirstName": "firstName",
		"URL":       "URL",
		"Id":        "id",
		"X":         "x",
		"":          "",
	}
	for in, want := range tests {
		assert.Equal(t, want, Decapitalize(in), in)
	}
}

func TestAccessorProperty(t *testing.T) {
	tests := []struct {
		name    string
		method  string
		boolean bool
		want    string
		ok      bool
	}{
		{name: "getter", method: "getFirstName", want: "firstName", ok: true},
		{name: "acronym getter", method: "getURL", want: "URL", ok: true},
		{name: "boolean is", method: "isEnabled", boolean: true, want: "enabled", ok: true},
		{name: "non-boolean is", method: "isEnabled", boolean: false, ok: false},
		{name: "bare get", method: "get", ok: false},
		{name: "lower after prefix", method: "getaway", ok: false},
		{name: "not an accessor", method: "toRepresentation", ok: false},
		{name: "boolean getter", method: "getEnabled", boolean: true, want: "enabled", ok: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := AccessorProperty(tt.method, tt.boolean)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestTrimVerbPrefix(t *testing.T) {
	assert.Equal(t, "clients", TrimVerbPrefix("getClients", "GET"))
	assert.Equal(t, "clients", TrimVerbPrefix("GetClients", "GET"))
	assert.Equal(t, "clients", TrimVerbPrefix("clients", "GET"))
	assert.Equal(t, "", TrimVerbPrefix("delete", "DELETE"))
	assert.Equal(t, "ge", TrimVerbPrefix("ge", "GET"))
}

func TestStripSuffix(t *testing.T) {
	assert.Equal(t, "Clients", StripSuffix("ClientsResource", "Resource"))
	assert.Equal(t, "Resource", StripSuffix("Resource", "Resource"))
	assert.Equal(t, "Realm", StripSuffix("Realm", "Resource"))
}
