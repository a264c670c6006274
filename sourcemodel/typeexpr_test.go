package sourcemodel

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseType(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		canonical string
		dims      int
		args      int
	}{
		{"simple", "String", "String", 0, 0},
		{"qualified", "org.keycloak.UserRepresentation", "org.keycloak.UserRepresentation", 0, 0},
		{"generic", "List<UserRepresentation>", "List<UserRepresentation>", 0, 1},
		{"nested generic", "Map<String, List<String>>", "Map<String,List<String>>", 0, 2},
		{"array", "byte[]", "byte[]", 1, 0},
		{"two dimensions", "int [ ] []", "int[][]", 2, 0},
		{"varargs", "String...", "String[]", 1, 0},
		{"wildcard extends", "List<? extends Role>", "List<Role>", 0, 1},
		{"wildcard super", "Comparator<? super T>", "Comparator<T>", 0, 1},
		{"unbounded wildcard", "Class<?>", "Class<Object>", 0, 1},
		{"type annotation", "@Nullable String", "String", 0, 0},
		{"generic array", "List<String>[]", "List<String>[]", 1, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseType(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.canonical, got.String())
			assert.Equal(t, tt.dims, got.Dims)
			assert.Len(t, got.Args, tt.args)
		})
	}
}

func TestParseTypeErrors(t *testing.T) {
	for _, input := range []string{"", "   ", "List<String", "List<String,>", "int[", "Map<>", "<String>", "String)"} {
		t.Run(input, func(t *testing.T) {
			_, err := ParseType(input)
			assert.Error(t, err)
		})
	}
}

func TestMustParseTypePanics(t *testing.T) {
	assert.Panics(t, func() { MustParseType("List<") })
	assert.NotPanics(t, func() { MustParseType("List<String>") })
}

func TestTypeExprHelpers(t *testing.T) {
	t.Run("elem strips one dimension", func(t *testing.T) {
		typ := MustParseType("List<String>[][]")
		assert.True(t, typ.IsArray())
		elem := typ.Elem()
		assert.Equal(t, "List<String>[]", elem.String())
		assert.Equal(t, "List<String>", elem.Elem().String())
		assert.Nil(t, elem.Elem().Elem())
	})

	t.Run("arg bounds", func(t *testing.T) {
		typ := MustParseType("Map<String,Integer>")
		assert.Equal(t, "Integer", typ.Arg(1).String())
		assert.Nil(t, typ.Arg(2))
		assert.Nil(t, typ.Arg(-1))
	})

	t.Run("simple name", func(t *testing.T) {
		assert.Equal(t, "UserRepresentation", MustParseType("org.keycloak.UserRepresentation").SimpleName())
		assert.Equal(t, "Plain", SimpleName("Plain"))
	})

	t.Run("nil renders empty", func(t *testing.T) {
		var typ *TypeExpr
		assert.Empty(t, typ.String())
	})
}

func TestSubstitute(t *testing.T) {
	bindings := map[string]*TypeExpr{
		"T": MustParseType("UserRepresentation"),
		"K": MustParseType("List<String>"),
	}

	assert.Equal(t, "UserRepresentation", MustParseType("T").Substitute(bindings).String())
	assert.Equal(t, "UserRepresentation[]", MustParseType("T[]").Substitute(bindings).String())
	assert.Equal(t, "Map<List<String>,UserRepresentation>", MustParseType("Map<K,T>").Substitute(bindings).String())
	assert.Equal(t, "String", MustParseType("String").Substitute(bindings).String())

	original := MustParseType("List<T>")
	_ = original.Substitute(bindings)
	assert.Equal(t, "List<T>", original.String(), "substitution must not mutate the receiver")

	assert.Same(t, original, original.Substitute(nil))
}
