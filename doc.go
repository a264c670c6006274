// Package restdoc generates OpenAPI 3 documents from annotated REST resource
// classes.
//
// The input is a Source Model: a YAML or JSON description of the classes of
// a JAX-RS style service, with their annotations, members and documentation
// comments. restdoc walks the resource tree from the root resources through
// sub-resource factories, binds every operation's parameters and
// documentation, synthesizes schemas for the types it reaches and assembles
// a document whose ordering does not depend on the input order or on
// scheduling.
//
// # Packages
//
//   - sourcemodel: Source Model types, type expressions and loading
//   - resolver: resource tree resolution and path templates
//   - binder: parameter and documentation binding
//   - synthesizer: schema synthesis with naming strategies
//   - assembler: collision handling, operation ids and ordering
//   - specdoc: the generated document model
//   - generator: the end-to-end pipeline with functional options
//   - render: OpenAPI YAML and JSON output and validation
//   - oaserrors: sentinel and typed errors
//
// # Quick Start
//
//	result, err := generator.GenerateWithOptions(
//		generator.WithFilePath("keycloak.yaml"),
//		generator.WithTitle("Keycloak Admin REST API"),
//	)
//	if err != nil {
//		log.Fatal(err)
//	}
//	for _, issue := range result.Issues {
//		fmt.Println(issue)
//	}
//	if _, err := render.WriteDir("out", result.Document); err != nil {
//		log.Fatal(err)
//	}
//
// # Diagnostics
//
// Problems in the input rarely stop a run. Factory cycles, parameter
// binding conflicts, path collisions, unmatched documentation entries and
// unresolvable types are reported as diagnostics on the result and the
// affected branch, operation or property is left out. Use
// generator.WithStrictMode to turn error-severity diagnostics into a
// failed run.
//
// The restdoc command line tool in cmd/restdoc exposes the same pipeline,
// and its "mcp" subcommand serves it to MCP clients over stdio.
package restdoc
