package specdoc

// Renamed returns t with every referenced schema name found in names
// replaced. t itself is not modified; nested items are copied.
func (t TypeRef) Renamed(names map[string]string) TypeRef {
	switch t.Kind {
	case KindRef:
		if n, ok := names[t.Name]; ok {
			t.Name = n
		}
	case KindArray:
		if t.Items != nil {
			items := t.Items.Renamed(names)
			t.Items = &items
		}
	case KindMap:
		if t.Values != nil {
			values := t.Values.Renamed(names)
			t.Values = &values
		}
	}
	return t
}

// RenameRefs rewrites the schema references of every parameter and of
// the response.
func (o *Operation) RenameRefs(names map[string]string) {
	if len(names) == 0 {
		return
	}
	seen := make(map[*Parameter]bool)
	for _, p := range o.AllParameters() {
		if seen[p] {
			continue
		}
		seen[p] = true
		p.Type = p.Type.Renamed(names)
	}
	if o.Response != nil {
		o.Response.Type = o.Response.Type.Renamed(names)
	}
}

// RenameRefs rewrites the base and property references of s. Its own
// Name is left to the caller.
func (s *SchemaDefinition) RenameRefs(names map[string]string) {
	if len(names) == 0 {
		return
	}
	if n, ok := names[s.Base]; ok {
		s.Base = n
	}
	for _, p := range s.Properties {
		p.Type = p.Type.Renamed(names)
	}
}

// Refs returns the schema names s refers to: its base first, then
// property references in declaration order.
func (s *SchemaDefinition) Refs() []string {
	var names []string
	if s.Base != "" {
		names = append(names, s.Base)
	}
	for _, p := range s.Properties {
		names = append(names, p.Type.Refs()...)
	}
	return names
}

// Refs returns the schema names referenced directly by the parameters
// and the response of o.
func (o *Operation) Refs() []string {
	var names []string
	for _, p := range o.AllParameters() {
		names = append(names, p.Type.Refs()...)
	}
	if o.Response != nil {
		names = append(names, o.Response.Type.Refs()...)
	}
	return names
}

// ReachableSchemas returns the schemas that ops reach directly or through
// other schemas, keeping the order of schemas.
func ReachableSchemas(ops []*Operation, schemas []*SchemaDefinition) []*SchemaDefinition {
	byName := make(map[string]*SchemaDefinition, len(schemas))
	for _, s := range schemas {
		byName[s.Name] = s
	}

	reached := make(map[string]bool, len(schemas))
	var queue []string
	for _, op := range ops {
		queue = append(queue, op.Refs()...)
	}
	for len(queue) > 0 {
		name := queue[0]
		queue = queue[1:]
		if reached[name] {
			continue
		}
		reached[name] = true
		if s, ok := byName[name]; ok {
			queue = append(queue, s.Refs()...)
		}
	}

	out := make([]*SchemaDefinition, 0, len(reached))
	for _, s := range schemas {
		if reached[s.Name] {
			out = append(out, s)
		}
	}
	return out
}
