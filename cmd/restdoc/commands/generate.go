package commands

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/erraggy/restdoc"
	"github.com/erraggy/restdoc/assembler"
	"github.com/erraggy/restdoc/binder"
	"github.com/erraggy/restdoc/generator"
	"github.com/erraggy/restdoc/render"
	"github.com/erraggy/restdoc/synthesizer"
)

// GenerateFlags contains flags for the generate command
type GenerateFlags struct {
	Output            string
	Format            string
	Title             string
	Version           string
	Description       string
	CollisionStrategy string
	SchemaNaming      string
	GenericNaming     string
	DuplicatePolicy   string
	Flatten           bool
	ImplicitPaths     bool
	AllSchemas        bool
	NoSecurity        bool
	Strict            bool
	NoValidate        bool
	Concurrency       int
	Quiet             bool
	Verbose           bool
}

// SetupGenerateFlags creates and configures a FlagSet for the generate command.
// Returns the FlagSet and a GenerateFlags struct with bound flag variables.
func SetupGenerateFlags() (*flag.FlagSet, *GenerateFlags) {
	fs := flag.NewFlagSet("generate", flag.ContinueOnError)
	flags := &GenerateFlags{}

	fs.StringVar(&flags.Output, "o", "", "output directory, or a .yaml/.yml/.json file (default: stdout)")
	fs.StringVar(&flags.Output, "output", "", "output directory, or a .yaml/.yml/.json file (default: stdout)")
	fs.StringVar(&flags.Format, "format", string(render.FormatYAML), "stdout format: yaml or json")
	fs.StringVar(&flags.Title, "title", generator.DefaultTitle, "document title")
	fs.StringVar(&flags.Version, "doc-version", generator.DefaultVersion, "document version")
	fs.StringVar(&flags.Description, "description", "", "document description")
	fs.StringVar(&flags.CollisionStrategy, "collision-strategy", string(assembler.StrategyAcceptLeft),
		"path collision strategy: "+strings.Join(assembler.ValidStrategies(), ", "))
	fs.StringVar(&flags.SchemaNaming, "schema-naming", string(synthesizer.SchemaNamingSimple),
		"schema naming strategy: "+joinNames(synthesizer.ValidSchemaNamingStrategies()))
	fs.StringVar(&flags.GenericNaming, "generic-naming", string(synthesizer.GenericNamingUnderscore),
		"generic instance naming strategy: "+joinNames(synthesizer.ValidGenericNamingStrategies()))
	fs.StringVar(&flags.DuplicatePolicy, "duplicate-policy", string(binder.DuplicateExclude),
		"duplicate path parameter policy: "+strings.Join(binder.ValidDuplicatePolicies(), ", "))
	fs.BoolVar(&flags.Flatten, "flatten", false, "copy supertype properties into each schema instead of using allOf")
	fs.BoolVar(&flags.ImplicitPaths, "implicit-paths", false, "mount verb methods without a path at their derived name")
	fs.BoolVar(&flags.AllSchemas, "all-schemas", false, "emit a schema for every data class, not only reachable ones")
	fs.BoolVar(&flags.NoSecurity, "no-security", false, "omit the bearer security scheme")
	fs.BoolVar(&flags.Strict, "strict", false, "fail when any error-severity diagnostic is raised")
	fs.BoolVar(&flags.NoValidate, "no-validate", false, "skip OpenAPI validation of the generated document")
	fs.IntVar(&flags.Concurrency, "concurrency", generator.DefaultConcurrency, "maximum operations bound in parallel")
	fs.BoolVar(&flags.Quiet, "q", false, "quiet mode: suppress the summary and diagnostics")
	fs.BoolVar(&flags.Quiet, "quiet", false, "quiet mode: suppress the summary and diagnostics")
	fs.BoolVar(&flags.Verbose, "verbose", false, "log pipeline progress to stderr")

	fs.Usage = func() {
		Writef(fs.Output(), "Usage: restdoc generate [flags] <model|->\n\n")
		Writef(fs.Output(), "Generate an OpenAPI 3.0.3 document from a REST resource Source Model.\n\n")
		Writef(fs.Output(), "Flags:\n")
		fs.PrintDefaults()
		Writef(fs.Output(), "\nOutput:\n")
		Writef(fs.Output(), "  (none)            Document written to stdout in --format\n")
		Writef(fs.Output(), "  -o <dir>          Writes %s and %s\n", render.YAMLFileName, render.JSONFileName)
		Writef(fs.Output(), "  -o <file.json>    Writes one file, format from the extension\n")
		Writef(fs.Output(), "\nExamples:\n")
		Writef(fs.Output(), "  restdoc generate keycloak.yaml\n")
		Writef(fs.Output(), "  restdoc generate -o ./docs --title \"Keycloak Admin REST API\" keycloak.yaml\n")
		Writef(fs.Output(), "  restdoc generate --collision-strategy fail --strict keycloak.yaml\n")
		Writef(fs.Output(), "  cat model.json | restdoc generate --format json -\n")
		Writef(fs.Output(), "\nExit Codes:\n")
		Writef(fs.Output(), "  0    Document generated\n")
		Writef(fs.Output(), "  1    Generation or validation failed\n")
	}

	return fs, flags
}

// options maps the flags to generator options.
func (f *GenerateFlags) options() []generator.Option {
	return []generator.Option{
		generator.WithTitle(f.Title),
		generator.WithVersion(f.Version),
		generator.WithDescription(f.Description),
		generator.WithCollisionStrategy(f.CollisionStrategy),
		generator.WithSchemaNaming(f.SchemaNaming),
		generator.WithGenericNaming(f.GenericNaming),
		generator.WithDuplicatePolicy(binder.DuplicatePolicy(f.DuplicatePolicy)),
		generator.WithFlattenInheritance(f.Flatten),
		generator.WithImplicitPaths(f.ImplicitPaths),
		generator.WithAllSchemas(f.AllSchemas),
		generator.WithSecurity(!f.NoSecurity),
		generator.WithStrictMode(f.Strict),
		generator.WithConcurrency(f.Concurrency),
	}
}

// HandleGenerate executes the generate command
func HandleGenerate(args []string) error {
	return runGenerate(context.Background(), args, stdStreams())
}

func runGenerate(ctx context.Context, args []string, s streams) error {
	fs, flags := SetupGenerateFlags()
	fs.SetOutput(s.err)

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil
		}
		return err
	}

	if fs.NArg() != 1 {
		fs.Usage()
		return fmt.Errorf("generate command requires exactly one model file path or '-' for stdin")
	}
	modelPath := fs.Arg(0)

	format := render.Format(strings.ToLower(flags.Format))
	if format != render.FormatYAML && format != render.FormatJSON {
		return fmt.Errorf("invalid format '%s'. Valid formats: %s, %s", flags.Format, render.FormatYAML, render.FormatJSON)
	}

	source, err := modelSource(modelPath, s.in)
	if err != nil {
		return err
	}

	startTime := time.Now()
	opts := append(flags.options(), source, generator.WithLogger(newLogger(flags.Verbose, s.err)))
	result, err := generator.GenerateContext(ctx, opts...)
	if err != nil {
		if result != nil && !flags.Quiet {
			printIssues(s.err, result.Issues)
		}
		return fmt.Errorf("generating document: %w", err)
	}

	var validationErr error
	if !flags.NoValidate {
		validationErr = render.Validate(ctx, result.Document)
	}

	var written []string
	switch {
	case flags.Output == "":
		data, err := render.Encode(result.Document, format)
		if err != nil {
			return err
		}
		Writef(s.out, "%s", data)
	case isDocumentFile(flags.Output):
		if err := render.WriteFile(flags.Output, result.Document); err != nil {
			return fmt.Errorf("writing document: %w", err)
		}
		written = []string{flags.Output}
	default:
		written, err = render.WriteDir(flags.Output, result.Document)
		if err != nil {
			return fmt.Errorf("writing document: %w", err)
		}
	}
	totalTime := time.Since(startTime)

	if !flags.Quiet {
		Writef(s.err, "REST Resource OpenAPI Generator\n")
		Writef(s.err, "===============================\n\n")
		Writef(s.err, "restdoc version: %s\n", restdoc.Version())
		Writef(s.err, "Source Model: %s\n", FormatModelPath(modelPath))
		Writef(s.err, "Resource Nodes: %d\n", result.NodeCount)
		Writef(s.err, "Operations: %d discovered, %d emitted, %d skipped\n",
			result.DiscoveredOperations, result.Stats.OperationCount, result.SkippedOperations)
		Writef(s.err, "Paths: %d\n", result.Stats.PathCount)
		Writef(s.err, "Schemas: %d\n", result.Stats.SchemaCount)
		Writef(s.err, "Tags: %d\n", result.Stats.TagCount)
		Writef(s.err, "Load Time: %v\n", result.LoadTime)
		Writef(s.err, "Total Time: %v\n\n", totalTime)

		printIssues(s.err, result.Issues)

		for _, path := range written {
			Writef(s.err, "Wrote %s\n", path)
		}
		if validationErr == nil && !flags.NoValidate {
			Writef(s.err, "✓ Document is valid OpenAPI 3.0.3\n")
		}
	}

	if validationErr != nil {
		return fmt.Errorf("generated document is invalid: %w", validationErr)
	}
	return nil
}

// isDocumentFile reports whether path names a single output file rather
// than a directory.
func isDocumentFile(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml", ".json":
		return true
	default:
		return false
	}
}

func joinNames[S ~string](names []S) string {
	out := make([]string, len(names))
	for i, n := range names {
		out[i] = string(n)
	}
	return strings.Join(out, ", ")
}
