package sourcemodel

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassPredicates(t *testing.T) {
	m := &Model{Classes: []*Class{
		{Name: "a.Status", Kind: KindEnum, Constants: []string{"ON", "OFF"}},
		{Name: "a.Child", Methods: []*Method{{Name: "get", Verb: "GET"}}},
		{Name: "a.Plain", Methods: []*Method{{Name: "getName", Returns: "String"}}},
		{Name: "b.Plain"},
	}}
	require.NoError(t, m.Validate())

	status, _ := m.Class("a.Status")
	assert.True(t, status.IsEnum())
	assert.False(t, status.IsResource())

	child, _ := m.Class("a.Child")
	assert.True(t, child.IsResource())
	assert.True(t, child.Methods[0].HasVerb())
	assert.False(t, child.Methods[0].HasPath())

	plain, _ := m.Class("a.Plain")
	assert.False(t, plain.IsResource())

	_, ok := m.Class("Plain")
	assert.False(t, ok, "ambiguous simple names do not resolve")
	_, ok = m.Class("Missing")
	assert.False(t, ok)

	assert.Empty(t, m.RootClasses())
}

func TestParamHelpers(t *testing.T) {
	p := &Param{Name: "firstResult", Binding: "first"}
	assert.Equal(t, "first", p.WireName())
	assert.Equal(t, SourceBody, p.EffectiveSource())

	p = &Param{Name: "id", Source: SourcePath}
	assert.Equal(t, "id", p.WireName())
	assert.Equal(t, SourcePath, p.EffectiveSource())
}

func TestParamDoc(t *testing.T) {
	var nilDoc *DocBlock
	_, ok := nilDoc.ParamDoc("x")
	assert.False(t, ok)

	doc := &DocBlock{Params: []DocParam{{Name: "first", Text: "offset"}, {Name: "max"}}}
	text, ok := doc.ParamDoc("first")
	assert.True(t, ok)
	assert.Equal(t, "offset", text)

	text, ok = doc.ParamDoc("max")
	assert.True(t, ok)
	assert.Empty(t, text)
}

func TestVisibility(t *testing.T) {
	assert.True(t, VisibilityPublic.IsPublic())
	assert.False(t, VisibilityProtected.IsPublic())
	assert.False(t, Visibility("").IsPublic())
}
