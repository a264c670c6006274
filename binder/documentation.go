package binder

import (
	"fmt"
	"strings"

	"github.com/erraggy/restdoc/internal/issues"
)

// Issue is a diagnostic raised while binding documentation.
type Issue = issues.Issue

// BindDocumentation attaches the operation documentation to b.
//
// Each documented parameter entry is matched by exact name against the
// bound parameters, using either the wire name or the declared name. An
// entry that matches nothing is dropped and reported once as
// UnmatchedDocumentation. Parameters without an entry keep an empty
// description, except inherited path parameters, which fall back to the
// documentation of the factory method that declared them.
//
// Summary and Description are copied verbatim; a missing block leaves
// both empty.
func BindDocumentation(b *Binding) []Issue {
	stub := b.Stub
	doc := stub.Method.Doc
	params := b.All()

	var found []Issue
	if doc != nil {
		b.Summary = strings.TrimSpace(doc.Summary)
		b.Description = strings.TrimSpace(doc.Description)

		for _, entry := range doc.Params {
			matched := false
			for _, p := range params {
				if p.Name == entry.Name || b.origins[p].declared == entry.Name {
					p.Description = strings.TrimSpace(entry.Text)
					matched = true
				}
			}
			if !matched {
				found = append(found, Issue{
					Kind:     issues.KindUnmatchedDocumentation,
					Severity: issues.KindUnmatchedDocumentation.DefaultSeverity(),
					Type:     stub.Owner().Name,
					Method:   stub.Method.Name,
					Verb:     stub.Verb,
					Path:     b.Path,
					Subject:  entry.Name,
					Message:  fmt.Sprintf("documented parameter %q matches no bound parameter; entry dropped", entry.Name),
				})
			}
		}
	}

	for _, p := range params {
		if p.Description != "" {
			continue
		}
		o := b.origins[p]
		if o.factory == nil {
			continue
		}
		if text, ok := o.factory.Doc.ParamDoc(p.Name); ok {
			p.Description = strings.TrimSpace(text)
		} else if text, ok := o.factory.Doc.ParamDoc(o.declared); ok {
			p.Description = strings.TrimSpace(text)
		}
	}

	if b.RequestBody != nil && b.RequestBody.Entity != nil {
		b.RequestBody.Description = b.RequestBody.Entity.Description
	}
	return found
}

// ResponseDescription returns the success response description: the documented
// return text when present, otherwise "Success".
func ResponseDescription(b *Binding) string {
	if doc := b.Stub.Method.Doc; doc != nil {
		if text := strings.TrimSpace(doc.Returns); text != "" {
			return text
		}
	}
	return "Success"
}
