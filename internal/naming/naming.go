// Package naming provides the case conversion and Java-bean naming helpers
// shared by the resolver, the schema synthesizer and the assembler.
package naming

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// ToPascalCase converts a string to PascalCase.
// Separators (underscore, hyphen, dot, slash, space) trigger capitalization
// of the next letter; other letters keep their case.
// Example: "user_profile" -> "UserProfile"
// Example: "org.keycloak.Role" -> "OrgKeycloakRole"
func ToPascalCase(s string) string {
	var sb strings.Builder
	upperNext := true
	for _, r := range s {
		if isSeparator(r) {
			upperNext = true
			continue
		}
		if upperNext {
			r = unicode.ToUpper(r)
			upperNext = false
		}
		sb.WriteRune(r)
	}
	return sb.String()
}

// ToCamelCase converts a string to camelCase.
// Example: "user_profile" -> "userProfile"
func ToCamelCase(s string) string {
	return LowerFirst(ToPascalCase(s))
}

// ToSnakeCase converts a string to snake_case.
// Example: "UserProfile" -> "user_profile"
func ToSnakeCase(s string) string {
	var sb strings.Builder
	for i, r := range s {
		switch {
		case unicode.IsUpper(r):
			if i > 0 {
				sb.WriteByte('_')
			}
			sb.WriteRune(unicode.ToLower(r))
		case isSeparator(r):
			sb.WriteByte('_')
		default:
			sb.WriteRune(r)
		}
	}
	return sb.String()
}

// ToTitleCase upper-cases the first letter of every word, leaving the rest
// of each word untouched.
// Example: "client scopes" -> "Client Scopes"
func ToTitleCase(s string) string {
	// a Caser is stateful, so each call gets its own
	return cases.Title(language.Und, cases.NoLower).String(s)
}

// ToLower lower-cases s using Unicode rules.
func ToLower(s string) string {
	return cases.Lower(language.Und).String(s)
}

// UpperFirst upper-cases the first rune of s.
func UpperFirst(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if size == 0 {
		return s
	}
	return string(unicode.ToUpper(r)) + s[size:]
}

// LowerFirst lower-cases the first rune of s.
func LowerFirst(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if size == 0 {
		return s
	}
	return string(unicode.ToLower(r)) + s[size:]
}

// Decapitalize applies the Java-bean property rule: the first letter is
// lower-cased unless the first two letters are both upper case.
// Example: "FirstName" -> "firstName", "URL" -> "URL"
func Decapitalize(s string) string {
	runes := []rune(s)
	if len(runes) == 0 {
		return s
	}
	if len(runes) > 1 && unicode.IsUpper(runes[0]) && unicode.IsUpper(runes[1]) {
		return s
	}
	runes[0] = unicode.ToLower(runes[0])
	return string(runes)
}

// AccessorProperty returns the property named by a bean accessor.
// "getFirstName" gives "firstName"; "isEnabled" gives "enabled" when
// boolean is true. ok is false when name is not an accessor.
func AccessorProperty(name string, boolean bool) (property string, ok bool) {
	if rest, found := strings.CutPrefix(name, "get"); found && startsUpper(rest) {
		return Decapitalize(rest), true
	}
	if boolean {
		if rest, found := strings.CutPrefix(name, "is"); found && startsUpper(rest) {
			return Decapitalize(rest), true
		}
	}
	return "", false
}

// TrimVerbPrefix strips a case-insensitive HTTP verb prefix from a method
// name and lower-cases the remainder.
// Example: ("getClients", "GET") -> "clients"
func TrimVerbPrefix(method, verb string) string {
	if len(method) >= len(verb) && strings.EqualFold(method[:len(verb)], verb) {
		method = method[len(verb):]
	}
	return ToLower(method)
}

// StripSuffix removes suffix from s when s ends with it
// and something remains.
// Example: ("ClientsResource", "Resource") -> "Clients"
func StripSuffix(s, suffix string) string {
	if rest, ok := strings.CutSuffix(s, suffix); ok && rest != "" {
		return rest
	}
	return s
}

func startsUpper(s string) bool {
	r, size := utf8.DecodeRuneInString(s)
	return size > 0 && unicode.IsUpper(r)
}

func isSeparator(r rune) bool {
	return r == '_' || r == '-' || r == '.' || r == '/' || r == ' '
}
