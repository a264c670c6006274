/*
Package generator runs the full restdoc pipeline over a Source Model and
returns the assembled document with every diagnostic raised on the way.

# Pipeline

  - resolver: classify methods, mount sub-resource factories, accumulate
    path templates, detect factory cycles
  - binder: bind parameters and documentation per operation, in parallel
  - synthesizer: map declared types to schema references, memoized
  - assembler: resolve path collisions, assign operation ids, sort

Binding runs in an errgroup bounded by [WithConcurrency]. Each operation
writes into its own slot, so the output never depends on scheduling.

# Quick Start

	result, err := generator.GenerateWithOptions(
	    generator.WithFilePath("keycloak.yaml"),
	    generator.WithTitle("Keycloak Admin REST API"),
	)
	if err != nil {
	    log.Fatal(err)
	}
	for _, issue := range result.Issues {
	    fmt.Println(issue.String())
	}
	data, err := render.YAML(result.Document)

# Errors

Cycles, binding conflicts, unmatched documentation, unresolved types and
collisions under the accept strategies are diagnostics in Result.Issues.
Generation fails only for a malformed model ([oaserrors.ErrMalformedModel]),
invalid options ([oaserrors.ErrConfig]), a collision under the "fail"
strategy ([oaserrors.ErrPathCollision]) or a cancelled context.
[WithStrictMode] additionally fails on any error-severity diagnostic.
*/
package generator
