package specdoc

import "strings"

// TypeKind is the closed set of TypeRef variants.
type TypeKind int

const (
	// KindNone means no content (void, Response).
	KindNone TypeKind = iota
	// KindPrimitive is a scalar with an OpenAPI type and optional format.
	KindPrimitive
	// KindArray wraps an element TypeRef.
	KindArray
	// KindMap has string keys and a value TypeRef.
	KindMap
	// KindRef names a SchemaDefinition.
	KindRef
	// KindObject is a free-form object.
	KindObject
)

// String returns the variant name.
func (k TypeKind) String() string {
	switch k {
	case KindNone:
		return "none"
	case KindPrimitive:
		return "primitive"
	case KindArray:
		return "array"
	case KindMap:
		return "map"
	case KindRef:
		return "ref"
	case KindObject:
		return "object"
	default:
		return "unknown"
	}
}

// TypeRef is a reference to a data shape: a primitive, a container of
// another TypeRef, a named SchemaDefinition, a free-form object, or nothing.
// TypeRefs are values; Items and Values are never shared mutably.
type TypeRef struct {
	Kind TypeKind `json:"kind" yaml:"kind"`
	// Type and Format are set for primitives ("integer"/"int64").
	Type   string `json:"type,omitempty" yaml:"type,omitempty"`
	Format string `json:"format,omitempty" yaml:"format,omitempty"`
	// Items is the element of an array.
	Items *TypeRef `json:"items,omitempty" yaml:"items,omitempty"`
	// Unique marks arrays synthesized from sets.
	Unique bool `json:"unique,omitempty" yaml:"unique,omitempty"`
	// Values is the value type of a map.
	Values *TypeRef `json:"values,omitempty" yaml:"values,omitempty"`
	// Name is the referenced SchemaDefinition name.
	Name string `json:"name,omitempty" yaml:"name,omitempty"`
}

// None returns the empty-content TypeRef.
func None() TypeRef { return TypeRef{Kind: KindNone} }

// Primitive returns a primitive TypeRef.
func Primitive(typ, format string) TypeRef {
	return TypeRef{Kind: KindPrimitive, Type: typ, Format: format}
}

// PlainString is shorthand for the unformatted string primitive.
func PlainString() TypeRef { return Primitive("string", "") }

// Binary is an opaque binary payload.
func Binary() TypeRef { return Primitive("string", "binary") }

// ArrayOf returns an array of items. unique marks set semantics.
func ArrayOf(items TypeRef, unique bool) TypeRef {
	return TypeRef{Kind: KindArray, Items: &items, Unique: unique}
}

// MapOf returns a string-keyed map of values.
func MapOf(values TypeRef) TypeRef {
	return TypeRef{Kind: KindMap, Values: &values}
}

// Ref returns a named reference.
func Ref(name string) TypeRef {
	return TypeRef{Kind: KindRef, Name: name}
}

// FreeForm returns a free-form object.
func FreeForm() TypeRef { return TypeRef{Kind: KindObject} }

// IsNone reports whether t carries no content.
func (t TypeRef) IsNone() bool { return t.Kind == KindNone }

// Refs returns the schema names referenced by t, outermost first.
func (t TypeRef) Refs() []string {
	var names []string
	for cur := &t; cur != nil; {
		switch cur.Kind {
		case KindRef:
			return append(names, cur.Name)
		case KindArray:
			cur = cur.Items
		case KindMap:
			cur = cur.Values
		default:
			return names
		}
	}
	return names
}

// String renders a compact form such as "array<#/User>" or
// "map<integer/int64>", used in diagnostics and the inspect command.
func (t TypeRef) String() string {
	var sb strings.Builder
	t.write(&sb)
	return sb.String()
}

func (t TypeRef) write(sb *strings.Builder) {
	switch t.Kind {
	case KindNone:
		sb.WriteString("none")
	case KindPrimitive:
		sb.WriteString(t.Type)
		if t.Format != "" {
			sb.WriteByte('/')
			sb.WriteString(t.Format)
		}
	case KindArray:
		if t.Unique {
			sb.WriteString("set<")
		} else {
			sb.WriteString("array<")
		}
		if t.Items != nil {
			t.Items.write(sb)
		}
		sb.WriteByte('>')
	case KindMap:
		sb.WriteString("map<")
		if t.Values != nil {
			t.Values.write(sb)
		}
		sb.WriteByte('>')
	case KindRef:
		sb.WriteString("#/")
		sb.WriteString(t.Name)
	case KindObject:
		sb.WriteString("object")
	}
}
