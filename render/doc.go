// Package render serializes a specdoc.Document as an OpenAPI 3.0 document.
//
// The document tree is built as a yaml.Node so that key order is fixed:
// the same Document always renders to the same bytes, in YAML and in JSON.
//
// # Layout
//
// Every operation has a single "2XX" response. Its content is omitted when
// the method returns nothing. Path parameters are always required. When a
// security scheme is set on the Document it is applied globally and
// declared under components.securitySchemes as an HTTP scheme.
//
// A schema that extends another is written as allOf with a reference to the
// supertype schema followed by its own properties. References that need a
// description or a default are wrapped in allOf, since OpenAPI 3.0 ignores
// siblings of $ref.
//
// # Usage
//
//	data, err := render.YAML(result.Document)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	if err := render.Validate(ctx, result.Document); err != nil {
//	    var verr *oaserrors.ValidationError
//	    if errors.As(err, &verr) {
//	        fmt.Println("invalid at", verr.Pointer)
//	    }
//	}
//
// WriteDir writes both encodings as definition.yml and definition.json.
package render
