package pathutil

// RefPrefixSchemas is the OAS 3.x prefix of component schema references.
const RefPrefixSchemas = "#/components/schemas/"

// SchemaRef builds "#/components/schemas/{name}".
func SchemaRef(name string) string {
	return RefPrefixSchemas + name
}
