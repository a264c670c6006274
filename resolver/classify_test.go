package resolver

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/erraggy/restdoc/internal/testutil"
	"github.com/erraggy/restdoc/sourcemodel"
)

func TestClassify(t *testing.T) {
	static := testutil.Factory("static", "s", "com.acme.ChildResource")
	static.Static = true
	private := testutil.Op("GET", "hidden", "", "void")
	private.Visibility = sourcemodel.VisibilityPrivate

	owner := testutil.Resource("com.acme.ParentResource", "/parent",
		testutil.Op("GET", "list", "", "void"),
		testutil.Op("POST", "create", "new", "void"),
		testutil.Factory("child", "{id}", "com.acme.ChildResource", testutil.PathParam("id")),
		testutil.Factory("iface", "api", "com.acme.ApiInterface"),
		testutil.Factory("inherited", "sub", "com.acme.SubResource"),
		testutil.Factory("data", "data", "com.acme.Data"),
		testutil.Factory("array", "many", "com.acme.ChildResource[]"),
		testutil.Factory("object", "obj", "Object"),
		testutil.Getter("getName", "String"),
		static,
		private,
	)
	iface := testutil.Resource("com.acme.ApiInterface", "", testutil.Op("GET", "ping", "", "void"))
	iface.Kind = sourcemodel.KindInterface
	sub := &sourcemodel.Class{Name: "com.acme.SubResource", Extends: "com.acme.ChildResource"}

	model := testutil.NewModel(t,
		owner,
		testutil.Resource("com.acme.ChildResource", "", testutil.Op("GET", "get", "", "void")),
		iface,
		sub,
		testutil.Representation("com.acme.Data", nil),
	)

	tests := []struct {
		method string
		want   Kind
		target string
	}{
		{"list", KindOperation, ""},
		{"create", KindOperation, ""},
		{"child", KindFactory, "com.acme.ChildResource"},
		{"iface", KindFactory, "com.acme.ApiInterface"},
		{"inherited", KindFactory, "com.acme.SubResource"},
		{"data", KindIgnored, ""},
		{"array", KindIgnored, ""},
		{"object", KindIgnored, ""},
		{"getName", KindIgnored, ""},
		{"static", KindIgnored, ""},
		{"hidden", KindIgnored, ""},
	}
	for _, tt := range tests {
		t.Run(tt.method, func(t *testing.T) {
			var meth *sourcemodel.Method
			for _, m := range owner.Methods {
				if m.Name == tt.method {
					meth = m
				}
			}
			got := Classify(model, owner, meth)
			assert.Equal(t, tt.want, got.Kind, got.Kind.String())
			assert.Same(t, meth, got.Method)
			if tt.target == "" {
				assert.Nil(t, got.Target)
			} else if assert.NotNil(t, got.Target) {
				assert.Equal(t, tt.target, got.Target.Name)
			}
		})
	}

	assert.Equal(t, KindIgnored, Classify(model, owner, nil).Kind)
}

func TestKindString(t *testing.T) {
	assert.Equal(t, "operation", KindOperation.String())
	assert.Equal(t, "factory", KindFactory.String())
	assert.Equal(t, "ignored", KindIgnored.String())
}
