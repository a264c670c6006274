package mcpserver

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPaginate(t *testing.T) {
	items := []string{"a", "b", "c", "d", "e"}

	for name, tc := range map[string]struct {
		offset, limit int
		want          []string
	}{
		"default limit":       {0, 0, items},
		"negative limit":      {0, -3, items},
		"first page":          {0, 2, []string{"a", "b"}},
		"middle page":         {1, 3, []string{"b", "c", "d"}},
		"short last page":     {3, 10, []string{"d", "e"}},
		"offset past the end": {5, 1, nil},
		"negative offset":     {-1, 2, nil},
		"limit near MaxInt":   {2, math.MaxInt, []string{"c", "d", "e"}},
	} {
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, tc.want, paginate(items, tc.offset, tc.limit))
		})
	}

	assert.Nil(t, paginate([]string(nil), 0, 2))
}

func TestPaginate_Caps(t *testing.T) {
	items := make([]int, 1500)

	assert.Len(t, paginate(items, 0, 0), cfg.InspectLimit)
	assert.Len(t, paginate(items, 0, 1500), cfg.MaxLimit)
}

func TestMakeSlice(t *testing.T) {
	assert.Nil(t, makeSlice[string](0))
	s := makeSlice[string](4)
	assert.Empty(t, s)
	assert.Equal(t, 4, cap(s))
}

func TestSanitizeError(t *testing.T) {
	assert.Empty(t, sanitizeError(nil))
	assert.Equal(t, "open <path>: no such file or directory",
		sanitizeError(errors.New("open /home/dev/models/keycloak.yaml: no such file or directory")))
	assert.Equal(t, "merge <path> into <path>",
		sanitizeError(errors.New("merge /tmp/a.yaml into /var/lib/b.yaml")))
	assert.Equal(t, "class org.keycloak.UserResource: unknown HTTP verb \"FETCH\"",
		sanitizeError(errors.New(`class org.keycloak.UserResource: unknown HTTP verb "FETCH"`)))
}

func TestErrResult(t *testing.T) {
	res := errResult(errors.New("reading /root/model.yaml failed"))
	assert.True(t, res.IsError)
	assert.Len(t, res.Content, 1)
}

func TestGroupAndSort(t *testing.T) {
	items := [][]string{{"Users"}, {"Users", "Roles"}, {"Clients"}, {"Roles"}, {"Users"}}
	got := groupAndSort(items, func(tags []string) []string { return tags })
	assert.Equal(t, []groupCount{
		{Key: "Users", Count: 3},
		{Key: "Roles", Count: 2},
		{Key: "Clients", Count: 1},
	}, got)
}

func TestValidateGroupBy(t *testing.T) {
	allowed := []string{"tag", "method"}
	assert.NoError(t, validateGroupBy("", allowed))
	assert.NoError(t, validateGroupBy("TAG", allowed))
	assert.ErrorContains(t, validateGroupBy("schema", allowed), "valid values: tag, method")
}
