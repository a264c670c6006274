package commands

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"strings"

	"github.com/erraggy/restdoc/generator"
	"github.com/erraggy/restdoc/internal/issues"
)

// InspectFlags contains flags for the inspect command
type InspectFlags struct {
	Format            string
	Method            string
	Tag               string
	Kind              string
	CollisionStrategy string
	ImplicitPaths     bool
	Quiet             bool
	Verbose           bool
}

// SetupInspectFlags creates and configures a FlagSet for the inspect command.
func SetupInspectFlags() (*flag.FlagSet, *InspectFlags) {
	fs := flag.NewFlagSet("inspect", flag.ContinueOnError)
	flags := &InspectFlags{}

	fs.StringVar(&flags.Format, "format", FormatText, "output format: text, json, or yaml")
	fs.StringVar(&flags.Method, "method", "", "only list operations with this HTTP method")
	fs.StringVar(&flags.Tag, "tag", "", "only list operations with this tag")
	fs.StringVar(&flags.Kind, "kind", "", "only list diagnostics of this kind")
	fs.StringVar(&flags.CollisionStrategy, "collision-strategy", "", "path collision strategy")
	fs.BoolVar(&flags.ImplicitPaths, "implicit-paths", false, "mount verb methods without a path at their derived name")
	fs.BoolVar(&flags.Quiet, "q", false, "quiet mode: tab-separated rows without headers")
	fs.BoolVar(&flags.Quiet, "quiet", false, "quiet mode: tab-separated rows without headers")
	fs.BoolVar(&flags.Verbose, "verbose", false, "log pipeline progress to stderr")

	fs.Usage = func() {
		Writef(fs.Output(), "Usage: restdoc inspect [flags] <model|->\n\n")
		Writef(fs.Output(), "List the operations, schemas and diagnostics a Source Model produces.\n\n")
		Writef(fs.Output(), "Flags:\n")
		fs.PrintDefaults()
		Writef(fs.Output(), "\nExamples:\n")
		Writef(fs.Output(), "  restdoc inspect keycloak.yaml\n")
		Writef(fs.Output(), "  restdoc inspect --method DELETE --tag Users keycloak.yaml\n")
		Writef(fs.Output(), "  restdoc inspect --kind PathCollision --format json keycloak.yaml\n")
	}

	return fs, flags
}

// operationRow is one emitted operation.
type operationRow struct {
	Method      string   `json:"method" yaml:"method"`
	Path        string   `json:"path" yaml:"path"`
	OperationID string   `json:"operationId" yaml:"operationId"`
	Tags        []string `json:"tags,omitempty" yaml:"tags,omitempty"`
	Source      string   `json:"source" yaml:"source"`
}

// InspectReport is the structured output of the inspect command.
type InspectReport struct {
	Source      string            `json:"source" yaml:"source"`
	Nodes       int               `json:"nodes" yaml:"nodes"`
	Discovered  int               `json:"discovered" yaml:"discovered"`
	Operations  []operationRow    `json:"operations" yaml:"operations"`
	Schemas     []string          `json:"schemas" yaml:"schemas"`
	Diagnostics []generator.Issue `json:"diagnostics,omitempty" yaml:"diagnostics,omitempty"`
}

// HandleInspect executes the inspect command
func HandleInspect(args []string) error {
	return runInspect(context.Background(), args, stdStreams())
}

func runInspect(ctx context.Context, args []string, s streams) error {
	fs, flags := SetupInspectFlags()
	fs.SetOutput(s.err)

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil
		}
		return err
	}

	if fs.NArg() != 1 {
		fs.Usage()
		return fmt.Errorf("inspect command requires exactly one model file path or '-' for stdin")
	}
	modelPath := fs.Arg(0)

	if err := ValidateOutputFormat(flags.Format); err != nil {
		return err
	}

	source, err := modelSource(modelPath, s.in)
	if err != nil {
		return err
	}

	result, err := generator.GenerateContext(ctx,
		source,
		generator.WithCollisionStrategy(flags.CollisionStrategy),
		generator.WithImplicitPaths(flags.ImplicitPaths),
		generator.WithLogger(newLogger(flags.Verbose, s.err)),
	)
	if err != nil {
		return fmt.Errorf("generating document: %w", err)
	}

	report := InspectReport{
		Source:     FormatModelPath(modelPath),
		Nodes:      result.NodeCount,
		Discovered: result.DiscoveredOperations,
	}
	for _, op := range result.Document.Operations() {
		if flags.Method != "" && !strings.EqualFold(op.Verb, flags.Method) {
			continue
		}
		if flags.Tag != "" && !containsFold(op.Tags, flags.Tag) {
			continue
		}
		report.Operations = append(report.Operations, operationRow{
			Method:      op.Verb,
			Path:        op.Path,
			OperationID: op.OperationID,
			Tags:        op.Tags,
			Source:      op.Source.String(),
		})
	}
	for _, schema := range result.Document.Schemas {
		report.Schemas = append(report.Schemas, schema.Name)
	}
	report.Diagnostics = result.Issues
	if flags.Kind != "" {
		report.Diagnostics = issues.List(result.Issues).OfKind(issues.Kind(flags.Kind))
	}

	if flags.Format != FormatText {
		return OutputStructured(s.out, report, flags.Format)
	}

	rows := make([][]string, 0, len(report.Operations))
	for _, op := range report.Operations {
		rows = append(rows, []string{op.Method, op.Path, op.OperationID, strings.Join(op.Tags, ","), op.Source})
	}
	RenderSummaryTable(s.out, []string{"METHOD", "PATH", "OPERATION", "TAGS", "SOURCE"}, rows, flags.Quiet)

	if !flags.Quiet {
		Writef(s.err, "\n%d operation(s) from %d resource node(s), %d schema(s)\n\n",
			len(report.Operations), report.Nodes, len(report.Schemas))
		printIssues(s.err, report.Diagnostics)
	}
	return nil
}

func containsFold(values []string, want string) bool {
	for _, v := range values {
		if strings.EqualFold(v, want) {
			return true
		}
	}
	return false
}

// RenderSummaryTable writes rows as aligned columns. In quiet mode the
// header is omitted and cells are tab-separated.
func RenderSummaryTable(w io.Writer, headers []string, rows [][]string, quiet bool) {
	if len(rows) == 0 {
		return
	}

	widths := make([]int, len(headers))
	for i, h := range headers {
		widths[i] = len(h)
	}
	for _, row := range rows {
		for i, cell := range row {
			if i < len(widths) && len(cell) > widths[i] {
				widths[i] = len(cell)
			}
		}
	}

	if !quiet {
		writeRow(w, headers, widths)
	}
	for _, row := range rows {
		if quiet {
			Writef(w, "%s\n", strings.Join(row, "\t"))
			continue
		}
		writeRow(w, row, widths)
	}
}

func writeRow(w io.Writer, cells []string, widths []int) {
	var sb strings.Builder
	for i, cell := range cells {
		if i > 0 {
			sb.WriteString("  ")
		}
		if i == len(cells)-1 {
			sb.WriteString(cell)
			continue
		}
		fmt.Fprintf(&sb, "%-*s", widths[i], cell)
	}
	Writef(w, "%s\n", sb.String())
}
