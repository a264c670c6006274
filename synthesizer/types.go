package synthesizer

import (
	"github.com/erraggy/restdoc/sourcemodel"
	"github.com/erraggy/restdoc/specdoc"
)

// primitives maps simple type names to their OpenAPI scalar.
var primitives = map[string]specdoc.TypeRef{
	"String":         specdoc.PlainString(),
	"CharSequence":   specdoc.PlainString(),
	"char":           specdoc.PlainString(),
	"Character":      specdoc.PlainString(),
	"UUID":           specdoc.Primitive("string", "uuid"),
	"URI":            specdoc.Primitive("string", "uri"),
	"URL":            specdoc.Primitive("string", "uri"),
	"int":            specdoc.Primitive("integer", "int32"),
	"Integer":        specdoc.Primitive("integer", "int32"),
	"short":          specdoc.Primitive("integer", "int32"),
	"Short":          specdoc.Primitive("integer", "int32"),
	"byte":           specdoc.Primitive("integer", "int32"),
	"Byte":           specdoc.Primitive("integer", "int32"),
	"long":           specdoc.Primitive("integer", "int64"),
	"Long":           specdoc.Primitive("integer", "int64"),
	"BigInteger":     specdoc.Primitive("integer", ""),
	"float":          specdoc.Primitive("number", "float"),
	"Float":          specdoc.Primitive("number", "float"),
	"double":         specdoc.Primitive("number", "double"),
	"Double":         specdoc.Primitive("number", "double"),
	"BigDecimal":     specdoc.Primitive("number", "double"),
	"Number":         specdoc.Primitive("number", ""),
	"boolean":        specdoc.Primitive("boolean", ""),
	"Boolean":        specdoc.Primitive("boolean", ""),
	"Date":           specdoc.Primitive("string", "date-time"),
	"DateTime":       specdoc.Primitive("string", "date-time"),
	"Instant":        specdoc.Primitive("string", "date-time"),
	"LocalDateTime":  specdoc.Primitive("string", "date-time"),
	"ZonedDateTime":  specdoc.Primitive("string", "date-time"),
	"OffsetDateTime": specdoc.Primitive("string", "date-time"),
	"Timestamp":      specdoc.Primitive("string", "date-time"),
	"LocalDate":      specdoc.Primitive("string", "date"),
}

// javaPrimitives are the types that cannot hold null, so their
// properties are always present.
var javaPrimitives = map[string]bool{
	"boolean": true,
	"byte":    true,
	"char":    true,
	"short":   true,
	"int":     true,
	"long":    true,
	"float":   true,
	"double":  true,
}

// noContent types produce no schema.
var noContent = map[string]bool{
	"void":     true,
	"Void":     true,
	"Response": true,
}

// freeForm types carry arbitrary JSON.
var freeForm = map[string]bool{
	"Object":                  true,
	"JsonNode":                true,
	"ObjectNode":              true,
	"MultipartFormDataInput":  true,
	"MultipartFormDataOutput": true,
	"InputStream":             true,
}

type containerKind int

const (
	notContainer containerKind = iota
	listContainer
	setContainer
	mapContainer
	multiMapContainer
	optionalContainer
)

var containers = map[string]containerKind{
	"List":               listContainer,
	"ArrayList":          listContainer,
	"LinkedList":         listContainer,
	"Collection":         listContainer,
	"Iterable":           listContainer,
	"Stream":             listContainer,
	"Queue":              listContainer,
	"Deque":              listContainer,
	"Set":                setContainer,
	"HashSet":            setContainer,
	"LinkedHashSet":      setContainer,
	"TreeSet":            setContainer,
	"SortedSet":          setContainer,
	"Map":                mapContainer,
	"HashMap":            mapContainer,
	"LinkedHashMap":      mapContainer,
	"TreeMap":            mapContainer,
	"SortedMap":          mapContainer,
	"ConcurrentMap":      mapContainer,
	"ConcurrentHashMap":  mapContainer,
	"MultivaluedMap":     multiMapContainer,
	"MultivaluedHashMap": multiMapContainer,
	"Optional":           optionalContainer,
}

// containerOf reports the container family of t by its simple name.
func containerOf(t *sourcemodel.TypeExpr) containerKind {
	return containers[t.SimpleName()]
}

// IsJavaPrimitive reports whether t is a non-nullable Java primitive.
func IsJavaPrimitive(t *sourcemodel.TypeExpr) bool {
	return t != nil && t.Dims == 0 && javaPrimitives[t.Name]
}

func isBoolean(t *sourcemodel.TypeExpr) bool {
	return t != nil && t.Dims == 0 && (t.Name == "boolean" || t.SimpleName() == "Boolean")
}

func isByteArray(t *sourcemodel.TypeExpr) bool {
	return t.Dims == 1 && len(t.Args) == 0 && (t.Name == "byte" || t.SimpleName() == "Byte")
}
