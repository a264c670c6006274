package sourcemodel

import (
	"fmt"
	"strings"
	"unicode"
)

// TypeExpr is a parsed type reference such as "List<UserRepresentation>",
// "Map<String, List<String>>" or "byte[]".
//
// Wildcards are reduced to their bound ("? extends T" becomes T) and an
// unbounded "?" becomes Object. Varargs count as one array dimension.
type TypeExpr struct {
	// Name is the type name as declared, simple or qualified.
	Name string
	// Args are the generic type arguments.
	Args []*TypeExpr
	// Dims is the number of array dimensions.
	Dims int
}

// ParseType parses a type expression.
func ParseType(s string) (*TypeExpr, error) {
	p := &typeParser{src: s}
	p.next()
	t, err := p.parseType()
	if err != nil {
		return nil, err
	}
	if p.tok != "" {
		return nil, fmt.Errorf("sourcemodel: unexpected %q in type %q", p.tok, s)
	}
	return t, nil
}

// MustParseType is like ParseType but panics on error. Intended for tests
// and package-level fixtures.
func MustParseType(s string) *TypeExpr {
	t, err := ParseType(s)
	if err != nil {
		panic(err)
	}
	return t
}

// String returns the canonical form of the expression. Two expressions
// with the same canonical form denote the same type identity.
func (t *TypeExpr) String() string {
	if t == nil {
		return ""
	}
	var sb strings.Builder
	t.write(&sb)
	return sb.String()
}

func (t *TypeExpr) write(sb *strings.Builder) {
	sb.WriteString(t.Name)
	if len(t.Args) > 0 {
		sb.WriteByte('<')
		for i, a := range t.Args {
			if i > 0 {
				sb.WriteByte(',')
			}
			a.write(sb)
		}
		sb.WriteByte('>')
	}
	for range t.Dims {
		sb.WriteString("[]")
	}
}

// SimpleName returns the last dotted segment of Name.
func (t *TypeExpr) SimpleName() string {
	return SimpleName(t.Name)
}

// IsArray reports whether the expression has at least one array dimension.
func (t *TypeExpr) IsArray() bool {
	return t.Dims > 0
}

// Elem returns the element type of an array expression, or nil when t is
// not an array.
func (t *TypeExpr) Elem() *TypeExpr {
	if t.Dims == 0 {
		return nil
	}
	return &TypeExpr{Name: t.Name, Args: t.Args, Dims: t.Dims - 1}
}

// Arg returns the i-th type argument or nil.
func (t *TypeExpr) Arg(i int) *TypeExpr {
	if i < 0 || i >= len(t.Args) {
		return nil
	}
	return t.Args[i]
}

// Substitute returns a copy of t with every type variable named in
// bindings replaced by its bound expression.
func (t *TypeExpr) Substitute(bindings map[string]*TypeExpr) *TypeExpr {
	if t == nil || len(bindings) == 0 {
		return t
	}
	if b, ok := bindings[t.Name]; ok && len(t.Args) == 0 {
		return &TypeExpr{Name: b.Name, Args: b.Args, Dims: b.Dims + t.Dims}
	}
	out := &TypeExpr{Name: t.Name, Dims: t.Dims}
	for _, a := range t.Args {
		out.Args = append(out.Args, a.Substitute(bindings))
	}
	return out
}

// SimpleName returns the last dotted segment of a qualified name.
func SimpleName(qualified string) string {
	if i := strings.LastIndexByte(qualified, '.'); i >= 0 {
		return qualified[i+1:]
	}
	return qualified
}

// typeParser is a small recursive-descent parser over type tokens.
type typeParser struct {
	src string
	pos int
	tok string
}

func (p *typeParser) next() {
	for p.pos < len(p.src) && unicode.IsSpace(rune(p.src[p.pos])) {
		p.pos++
	}
	if p.pos >= len(p.src) {
		p.tok = ""
		return
	}
	c := p.src[p.pos]
	switch {
	case strings.HasPrefix(p.src[p.pos:], "..."):
		p.tok = "..."
		p.pos += 3
	case strings.ContainsRune("<>,[]?", rune(c)):
		p.tok = string(c)
		p.pos++
	case c == '@':
		// annotations on type uses carry no shape information
		start := p.pos
		p.pos++
		for p.pos < len(p.src) && isIdentByte(p.src[p.pos]) {
			p.pos++
		}
		p.tok = p.src[start:p.pos]
	case isIdentByte(c):
		start := p.pos
		for p.pos < len(p.src) && isIdentByte(p.src[p.pos]) {
			p.pos++
		}
		p.tok = p.src[start:p.pos]
	default:
		p.tok = string(c)
		p.pos++
	}
}

func isIdentByte(c byte) bool {
	return c == '.' || c == '_' || c == '$' ||
		(c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || (c >= '0' && c <= '9') ||
		c >= 0x80
}

func (p *typeParser) parseType() (*TypeExpr, error) {
	for strings.HasPrefix(p.tok, "@") {
		p.next()
	}

	var t *TypeExpr
	switch {
	case p.tok == "?":
		p.next()
		if p.tok == "extends" || p.tok == "super" {
			p.next()
			bound, err := p.parseType()
			if err != nil {
				return nil, err
			}
			return bound, nil
		}
		t = &TypeExpr{Name: "Object"}
	case p.tok != "" && isIdentByte(p.tok[0]) && p.tok[0] != '.':
		t = &TypeExpr{Name: p.tok}
		p.next()
	case p.tok == "":
		return nil, fmt.Errorf("sourcemodel: empty type expression %q", p.src)
	default:
		return nil, fmt.Errorf("sourcemodel: unexpected %q in type %q", p.tok, p.src)
	}

	if p.tok == "<" {
		p.next()
		if p.tok == ">" {
			return nil, fmt.Errorf("sourcemodel: empty type arguments in %q", p.src)
		}
		for p.tok != ">" {
			arg, err := p.parseType()
			if err != nil {
				return nil, err
			}
			t.Args = append(t.Args, arg)
			switch p.tok {
			case ",":
				p.next()
			case ">":
			default:
				return nil, fmt.Errorf("sourcemodel: unterminated type arguments in %q", p.src)
			}
		}
		p.next()
	}

	for {
		switch p.tok {
		case "[":
			p.next()
			if p.tok != "]" {
				return nil, fmt.Errorf("sourcemodel: unterminated array in %q", p.src)
			}
			p.next()
			t.Dims++
			continue
		case "...":
			p.next()
			t.Dims++
			continue
		}
		return t, nil
	}
}
