package synthesizer

import (
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/erraggy/restdoc/internal/naming"
	"github.com/erraggy/restdoc/oaserrors"
	"github.com/erraggy/restdoc/sourcemodel"
)

// SchemaNamingStrategy defines how schema names are derived from class
// identities.
type SchemaNamingStrategy string

const (
	// SchemaNamingSimple uses the simple class name. Classes whose simple
	// names collide fall back to SchemaNamingQualified.
	// Example: org.keycloak.representations.idm.UserRepresentation -> UserRepresentation
	SchemaNamingSimple SchemaNamingStrategy = "simple"

	// SchemaNamingQualified uses the PascalCase qualified name.
	// Example: org.keycloak.idm.UserRepresentation -> OrgKeycloakIdmUserRepresentation
	SchemaNamingQualified SchemaNamingStrategy = "qualified"

	// SchemaNamingDotted uses the qualified name verbatim.
	// Example: org.keycloak.idm.UserRepresentation -> org.keycloak.idm.UserRepresentation
	SchemaNamingDotted SchemaNamingStrategy = "dotted"
)

// ValidSchemaNamingStrategies returns every accepted schema naming strategy.
func ValidSchemaNamingStrategies() []SchemaNamingStrategy {
	return []SchemaNamingStrategy{SchemaNamingSimple, SchemaNamingQualified, SchemaNamingDotted}
}

// GenericNamingStrategy defines how generic type arguments are formatted in
// schema names.
type GenericNamingStrategy string

const (
	// GenericNamingUnderscore joins base and arguments with underscores (default).
	// Example: Page<User> -> Page_User
	GenericNamingUnderscore GenericNamingStrategy = "underscore"

	// GenericNamingOf uses "Of" between base and arguments, "And" between arguments.
	// Example: Page<User> -> PageOfUser
	GenericNamingOf GenericNamingStrategy = "of"

	// GenericNamingFor uses "For" between base and arguments.
	// Example: Page<User> -> PageForUser
	GenericNamingFor GenericNamingStrategy = "for"

	// GenericNamingFlattened concatenates base and arguments.
	// Example: Page<User> -> PageUser
	GenericNamingFlattened GenericNamingStrategy = "flattened"
)

// ValidGenericNamingStrategies returns every accepted generic naming strategy.
func ValidGenericNamingStrategies() []GenericNamingStrategy {
	return []GenericNamingStrategy{GenericNamingUnderscore, GenericNamingOf, GenericNamingFor, GenericNamingFlattened}
}

// ParseSchemaNaming converts a configuration string to a strategy.
func ParseSchemaNaming(s string) (SchemaNamingStrategy, error) {
	v := SchemaNamingStrategy(naming.ToLower(strings.TrimSpace(s)))
	if v == "" {
		return SchemaNamingSimple, nil
	}
	if !slices.Contains(ValidSchemaNamingStrategies(), v) {
		return "", &oaserrors.ConfigError{
			Option:  "schema naming",
			Value:   s,
			Message: fmt.Sprintf("expected one of %v", ValidSchemaNamingStrategies()),
		}
	}
	return v, nil
}

// ParseGenericNaming converts a configuration string to a strategy.
func ParseGenericNaming(s string) (GenericNamingStrategy, error) {
	v := GenericNamingStrategy(naming.ToLower(strings.TrimSpace(s)))
	if v == "" {
		return GenericNamingUnderscore, nil
	}
	if !slices.Contains(ValidGenericNamingStrategies(), v) {
		return "", &oaserrors.ConfigError{
			Option:  "generic naming",
			Value:   s,
			Message: fmt.Sprintf("expected one of %v", ValidGenericNamingStrategies()),
		}
	}
	return v, nil
}

// namer assigns schema names. Class names are fixed up front from the
// sorted class list, so they never depend on synthesis order.
type namer struct {
	schema  SchemaNamingStrategy
	generic GenericNamingStrategy
	classes map[string]string // qualified class name → schema name
}

func newNamer(model *sourcemodel.Model, schema SchemaNamingStrategy, generic GenericNamingStrategy) *namer {
	n := &namer{schema: schema, generic: generic, classes: make(map[string]string)}

	sorted := slices.Clone(model.Classes)
	slices.SortFunc(sorted, func(a, b *sourcemodel.Class) int { return strings.Compare(a.Name, b.Name) })

	bySimple := make(map[string]int)
	for _, c := range sorted {
		bySimple[c.SimpleName()]++
	}

	taken := make(map[string]bool)
	for _, c := range sorted {
		name := n.className(c.Name, bySimple[c.SimpleName()] > 1)
		base := name
		for i := 2; taken[name]; i++ {
			name = base + strconv.Itoa(i)
		}
		taken[name] = true
		n.classes[c.Name] = name
	}
	return n
}

func (n *namer) className(qualified string, conflict bool) string {
	switch n.schema {
	case SchemaNamingDotted:
		return qualified
	case SchemaNamingQualified:
		return qualifiedName(qualified)
	default:
		if conflict {
			return qualifiedName(qualified)
		}
		return sourcemodel.SimpleName(qualified)
	}
}

// qualifiedName turns a dotted class name into PascalCase, keeping the
// simple name's own casing.
func qualifiedName(qualified string) string {
	return naming.ToPascalCase(qualified)
}

// forClass returns the precomputed name of a model class.
func (n *namer) forClass(c *sourcemodel.Class) string {
	if name, ok := n.classes[c.Name]; ok {
		return name
	}
	return sourcemodel.SimpleName(c.Name)
}

// forInstance returns the name of a generic instantiation. taken reports
// names owned by another identity; on conflict the fully qualified label
// is tried, then a numeric suffix.
func (n *namer) forInstance(model *sourcemodel.Model, c *sourcemodel.Class, args []*sourcemodel.TypeExpr, identity string, taken func(string) bool) string {
	labels := make([]string, len(args))
	for i, a := range args {
		labels[i] = n.label(model, a)
	}
	name := n.applyGeneric(n.forClass(c), labels)
	if !taken(name) {
		return name
	}
	name = qualifiedName(strings.NewReplacer("<", ".Of.", ">", "", ",", ".And.", "[]", ".Array").Replace(identity))
	base := name
	for i := 2; taken(name); i++ {
		name = base + strconv.Itoa(i)
	}
	return name
}

// label renders a type argument as a name fragment.
func (n *namer) label(model *sourcemodel.Model, t *sourcemodel.TypeExpr) string {
	var base string
	if c, ok := model.Class(t.Name); ok {
		base = n.forClass(c)
		if n.schema == SchemaNamingDotted {
			base = qualifiedName(base)
		}
	} else {
		base = naming.ToPascalCase(t.SimpleName())
	}
	if len(t.Args) > 0 {
		inner := make([]string, len(t.Args))
		for i, a := range t.Args {
			inner[i] = n.label(model, a)
		}
		base = n.applyGeneric(base, inner)
	}
	return base + strings.Repeat("Array", t.Dims)
}

func (n *namer) applyGeneric(base string, params []string) string {
	switch n.generic {
	case GenericNamingOf:
		return base + "Of" + strings.Join(params, "And")
	case GenericNamingFor:
		return base + "For" + strings.Join(params, "And")
	case GenericNamingFlattened:
		return base + strings.Join(params, "")
	default:
		return base + "_" + strings.Join(params, "_")
	}
}
