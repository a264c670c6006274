package pathutil

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name     string
		raw      string
		want     string
		problems int
	}{
		{name: "already clean", raw: "/realms/{realm}", want: "/realms/{realm}"},
		{name: "missing leading slash", raw: "users", want: "/users"},
		{name: "duplicate slashes", raw: "//users///{id}", want: "/users/{id}"},
		{name: "trailing slash", raw: "/users/", want: "/users"},
		{name: "empty", raw: "", want: "/"},
		{name: "root", raw: "/", want: "/"},
		{name: "regex constraint", raw: "{id:[0-9]+}", want: "/{id}", problems: 1},
		{name: "constraint with braces", raw: "/x/{code:[a-z]{3}}/y", want: "/x/{code}/y", problems: 1},
		{name: "constraint with slash", raw: "{path:.*/.*}", want: "/{path}", problems: 1},
		{name: "unterminated", raw: "/users/{id", want: "/users/id", problems: 1},
		{name: "unbalanced close", raw: "/users/id}", want: "/users/id", problems: 1},
		{name: "unnamed variable", raw: "/users/{}", want: "/users", problems: 1},
		{name: "spaces in variable", raw: "/users/{ id }", want: "/users/{id}"},
		{name: "mixed literal and variable", raw: "/files/{name}.json", want: "/files/{name}.json"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, problems := Normalize(tt.raw)
			assert.Equal(t, tt.want, got)
			assert.Len(t, problems, tt.problems)
		})
	}
}

func TestJoin(t *testing.T) {
	assert.Equal(t, "/a/{id}/b", Join("/a/{id}", "b"))
	assert.Equal(t, "/a/b", Join("/a/", "/b"))
	assert.Equal(t, "/a", Join("/a", ""))
	assert.Equal(t, "/b", Join("", "b"))
	assert.Equal(t, "/", Join("", ""))
	assert.Equal(t, "/", Join("/", "/"))
}

func TestParams(t *testing.T) {
	assert.Equal(t, []string{"realm", "id", "roleName"}, Params("/realms/{realm}/clients/{id}/roles/{roleName}"))
	assert.Nil(t, Params("/realms"))
	assert.Equal(t, []string{"id", "id"}, Params("/a/{id}/b/{id}"))
}

func TestRenameParam(t *testing.T) {
	tmpl := "/a/{id}/b/{id}"
	assert.Equal(t, "/a/{id1}/b/{id}", RenameParam(tmpl, "id", "id1", 0))
	assert.Equal(t, "/a/{id}/b/{id2}", RenameParam(tmpl, "id", "id2", 1))
	assert.Equal(t, tmpl, RenameParam(tmpl, "id", "id3", 2))
	assert.Equal(t, tmpl, RenameParam(tmpl, "missing", "x", 0))
}
