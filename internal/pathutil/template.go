package pathutil

import (
	"fmt"
	"regexp"
	"strings"
)

// PathParamRegex matches path template parameters like {paramName}.
// It captures the parameter name inside the braces.
var PathParamRegex = regexp.MustCompile(`\{([^}/]+)\}`)

// Normalize cleans a path marker: it ensures a leading slash, collapses
// duplicate slashes, trims the trailing slash and reduces regex-constrained
// variables such as "{id:[0-9]+}" to "{id}". problems describes every
// repair that changed the meaning of the marker (constraints and malformed
// braces); purely cosmetic fixes are not reported.
func Normalize(raw string) (tmpl string, problems []string) {
	segments := make([]string, 0, strings.Count(raw, "/")+1)
	for _, seg := range splitOutsideBraces(raw) {
		seg = strings.TrimSpace(seg)
		if seg == "" {
			continue
		}
		clean, problem := normalizeSegment(seg)
		if problem != "" {
			problems = append(problems, problem)
		}
		if clean != "" {
			segments = append(segments, clean)
		}
	}
	return "/" + strings.Join(segments, "/"), problems
}

// splitOutsideBraces splits on '/' except inside {...}, where regex
// constraints may contain slashes.
func splitOutsideBraces(s string) []string {
	var (
		parts []string
		depth int
		start int
	)
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '{':
			depth++
		case '}':
			if depth > 0 {
				depth--
			}
		case '/':
			if depth == 0 {
				parts = append(parts, s[start:i])
				start = i + 1
			}
		}
	}
	return append(parts, s[start:])
}

func normalizeSegment(seg string) (string, string) {
	var (
		b       strings.Builder
		problem string
	)
	for i := 0; i < len(seg); {
		c := seg[i]
		switch c {
		case '{':
			end := matchingBrace(seg, i)
			if end < 0 {
				return strings.NewReplacer("{", "", "}", "").Replace(seg), fmt.Sprintf("unterminated variable in segment %q", seg)
			}
			inner := seg[i+1 : end]
			name, constraint, hasConstraint := strings.Cut(inner, ":")
			name = strings.TrimSpace(name)
			if name == "" {
				problem = fmt.Sprintf("unnamed variable in segment %q", seg)
				i = end + 1
				continue
			}
			if hasConstraint {
				problem = fmt.Sprintf("constraint %q dropped from variable %q", strings.TrimSpace(constraint), name)
			}
			b.WriteByte('{')
			b.WriteString(name)
			b.WriteByte('}')
			i = end + 1
		case '}':
			problem = fmt.Sprintf("unbalanced '}' in segment %q", seg)
			i++
		default:
			b.WriteByte(c)
			i++
		}
	}
	return b.String(), problem
}

// matchingBrace returns the index of the '}' closing the '{' at open,
// honoring nested braces in regex quantifiers, or -1.
func matchingBrace(s string, open int) int {
	depth := 0
	for i := open; i < len(s); i++ {
		switch s[i] {
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return i
			}
		}
	}
	return -1
}

// Join concatenates two templates with exactly one slash between them.
func Join(parent, child string) string {
	parent = strings.TrimRight(parent, "/")
	child = strings.TrimLeft(child, "/")
	switch {
	case child == "":
		if parent == "" {
			return "/"
		}
		return parent
	case parent == "":
		return "/" + child
	}
	return parent + "/" + child
}

// Params returns the template variable names in template order.
func Params(tmpl string) []string {
	matches := PathParamRegex.FindAllStringSubmatch(tmpl, -1)
	if len(matches) == 0 {
		return nil
	}
	names := make([]string, 0, len(matches))
	for _, m := range matches {
		names = append(names, m[1])
	}
	return names
}

// RenameParam rewrites the n-th (zero-based) occurrence of variable name
// in tmpl to newName. Other occurrences are left alone.
func RenameParam(tmpl, name, newName string, n int) string {
	needle := "{" + name + "}"
	idx := -1
	from := 0
	for range n + 1 {
		i := strings.Index(tmpl[from:], needle)
		if i < 0 {
			return tmpl
		}
		idx = from + i
		from = idx + len(needle)
	}
	return tmpl[:idx] + "{" + newName + "}" + tmpl[idx+len(needle):]
}
