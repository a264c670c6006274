package synthesizer

import (
	"cmp"
	"context"
	"slices"
	"strings"

	"github.com/erraggy/restdoc/internal/naming"
	"github.com/erraggy/restdoc/sourcemodel"
	"github.com/erraggy/restdoc/specdoc"
)

// member is a property candidate collected from a field, an accessor or
// both.
type member struct {
	name     string
	order    int
	field    *sourcemodel.Field // public field, or the backing field of an accessor
	accessor *sourcemodel.Method
}

func (m *member) typ() *sourcemodel.TypeExpr {
	if m.accessor != nil {
		return m.accessor.ReturnType()
	}
	return m.field.ParsedType()
}

func (m *member) deprecated() bool {
	return (m.field != nil && m.field.Deprecated) || (m.accessor != nil && m.accessor.Deprecated)
}

func (m *member) description() string {
	if m.field != nil && m.field.Doc != nil {
		return strings.TrimSpace(m.field.Doc.Summary)
	}
	if m.accessor != nil && m.accessor.Doc != nil {
		return strings.TrimSpace(m.accessor.Doc.Summary)
	}
	return ""
}

// properties returns the own serializable properties of c: public
// non-static fields and public no-argument getX/isX accessors, ordered by
// the declaration of the backing field. Accessors without a field follow
// in method order. Excluding either the field or the accessor removes the
// property.
func (s *Synthesizer) properties(ctx context.Context, c *sourcemodel.Class, sc *scope) ([]*specdoc.Property, error) {
	fieldIndex := make(map[string]int, len(c.Fields))
	excluded := make(map[string]bool)
	byName := make(map[string]*member)

	for i, f := range c.Fields {
		fieldIndex[f.Name] = i
		if f.Static {
			continue
		}
		if f.Excluded {
			excluded[f.Name] = true
			continue
		}
		if f.Visibility.IsPublic() && f.ParsedType() != nil {
			byName[f.Name] = &member{name: f.Name, order: i, field: f}
		}
	}

	for i, m := range c.Methods {
		if m.Static || !m.Visibility.IsPublic() || len(m.Params) > 0 || m.HasVerb() || m.HasPath() {
			continue
		}
		ret := m.ReturnType()
		if ret == nil || noContent[ret.Name] {
			continue
		}
		name, ok := naming.AccessorProperty(m.Name, isBoolean(ret))
		if !ok {
			continue
		}
		if m.Excluded {
			excluded[name] = true
			continue
		}
		mem, ok := byName[name]
		if !ok {
			mem = &member{name: name, order: len(c.Fields) + i}
			if idx, found := fieldIndex[name]; found {
				mem.order = idx
				mem.field = c.Fields[idx]
			}
			byName[name] = mem
		}
		mem.accessor = m
	}

	members := make([]*member, 0, len(byName))
	for name, mem := range byName {
		if !excluded[name] {
			members = append(members, mem)
		}
	}
	slices.SortFunc(members, func(a, b *member) int {
		return cmp.Or(cmp.Compare(a.order, b.order), strings.Compare(a.name, b.name))
	})

	props := make([]*specdoc.Property, 0, len(members))
	for _, mem := range members {
		t := mem.typ()
		ref, err := s.resolve(ctx, t, sc)
		if err != nil {
			return nil, err
		}
		props = append(props, &specdoc.Property{
			Name:        mem.name,
			Type:        ref,
			Required:    IsJavaPrimitive(sc.substitute(t)),
			Deprecated:  mem.deprecated(),
			Description: mem.description(),
		})
	}
	return props, nil
}
