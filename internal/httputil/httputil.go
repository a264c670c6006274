// Package httputil provides HTTP method names and media type checks shared
// by the model loader and the document types.
package httputil

import (
	"mime"
	"slices"
	"strings"
)

// HTTP Method Constants, lower-case as they appear as OpenAPI path item keys.
const (
	MethodGet     = "get"
	MethodPut     = "put"
	MethodPost    = "post"
	MethodDelete  = "delete"
	MethodOptions = "options"
	MethodHead    = "head"
	MethodPatch   = "patch"
	MethodTrace   = "trace"
)

// Methods lists every method in OpenAPI path item key order.
var Methods = []string{
	MethodGet, MethodPut, MethodPost, MethodDelete,
	MethodOptions, MethodHead, MethodPatch, MethodTrace,
}

// IsMethod reports whether verb names an HTTP method, ignoring case.
func IsMethod(verb string) bool {
	return slices.Contains(Methods, strings.ToLower(verb))
}

// IsValidMediaType validates a media type string according to RFC 2045/2046.
// Handles wildcards (*/* and type/*) and prevents invalid combinations (*/subtype).
func IsValidMediaType(mediaType string) bool {
	if mediaType == "*/*" {
		return true
	}
	if strings.HasPrefix(mediaType, "*/") {
		return false
	}

	if strings.HasSuffix(mediaType, "/*") {
		parts := strings.Split(mediaType, "/")
		return len(parts) == 2 && parts[0] != "" && parts[0] != "*"
	}

	_, _, err := mime.ParseMediaType(mediaType)
	return err == nil
}

// IsMultipart reports whether mediaType is a multipart/* type.
func IsMultipart(mediaType string) bool {
	base, _, err := mime.ParseMediaType(mediaType)
	return err == nil && strings.HasPrefix(base, "multipart/")
}
