package mcpserver

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/erraggy/restdoc/generator"
	"github.com/erraggy/restdoc/render"
)

type generateInput struct {
	Model     modelInput       `json:"model"                jsonschema:"The Source Model to generate from"`
	Options   generateSettings `json:"options,omitempty"    jsonschema:"Generation options"`
	Format    string           `json:"format,omitempty"     jsonschema:"Inline document format: yaml (default) or json"`
	OutputDir string           `json:"output_dir,omitempty" jsonschema:"Directory to write definition.yml and definition.json to instead of returning the document inline"`
	Validate  *bool            `json:"validate,omitempty"   jsonschema:"Check the document with an OpenAPI validator (default: RESTDOC_VALIDATE)"`
}

type issueSummary struct {
	Kind     string `json:"kind"`
	Severity string `json:"severity"`
	Location string `json:"location,omitempty"`
	Verb     string `json:"verb,omitempty"`
	Path     string `json:"path,omitempty"`
	Subject  string `json:"subject,omitempty"`
	Message  string `json:"message"`
}

type generateOutput struct {
	Source            string         `json:"source"`
	PathCount         int            `json:"path_count"`
	OperationCount    int            `json:"operation_count"`
	SchemaCount       int            `json:"schema_count"`
	TagCount          int            `json:"tag_count"`
	SkippedOperations int            `json:"skipped_operations"`
	ErrorCount        int            `json:"error_count"`
	WarningCount      int            `json:"warning_count"`
	InfoCount         int            `json:"info_count"`
	Valid             *bool          `json:"valid,omitempty"`
	ValidationError   string         `json:"validation_error,omitempty"`
	Issues            []issueSummary `json:"issues,omitempty"`
	OutputDir         string         `json:"output_dir,omitempty"`
	Files             []string       `json:"files,omitempty"`
	Document          string         `json:"document,omitempty"`
}

func handleGenerate(ctx context.Context, _ *mcp.CallToolRequest, input generateInput) (*mcp.CallToolResult, generateOutput, error) {
	format := render.Format(input.Format)
	switch format {
	case "":
		format = render.FormatYAML
	case render.FormatYAML, render.FormatJSON:
	default:
		return errResult(fmt.Errorf("invalid format %q; valid values: yaml, json", input.Format)), generateOutput{}, nil
	}

	result, err := input.Model.generate(ctx, input.Options)
	if err != nil {
		return errResult(err), generateOutput{}, nil
	}

	output := generateOutput{
		Source:            result.Source,
		PathCount:         result.Stats.PathCount,
		OperationCount:    result.Stats.OperationCount,
		SchemaCount:       result.Stats.SchemaCount,
		TagCount:          result.Stats.TagCount,
		SkippedOperations: result.SkippedOperations,
		ErrorCount:        result.ErrorCount,
		WarningCount:      result.WarningCount,
		InfoCount:         result.InfoCount,
		Issues:            summarizeIssues(result.Issues),
	}

	validate := cfg.Validate
	if input.Validate != nil {
		validate = *input.Validate
	}
	if validate {
		valid := true
		if err := render.Validate(ctx, result.Document); err != nil {
			valid = false
			output.ValidationError = sanitizeError(err)
		}
		output.Valid = &valid
	}

	if input.OutputDir != "" {
		written, err := render.WriteDir(input.OutputDir, result.Document)
		if err != nil {
			return errResult(fmt.Errorf("failed to write document: %w", err)), generateOutput{}, nil
		}
		output.OutputDir = input.OutputDir
		output.Files = makeSlice[string](len(written))
		for _, path := range written {
			output.Files = append(output.Files, filepath.Base(path))
		}
		return nil, output, nil
	}

	data, err := render.Encode(result.Document, format)
	if err != nil {
		return errResult(err), generateOutput{}, nil
	}
	output.Document = string(data)
	return nil, output, nil
}

func summarizeIssues(list []generator.Issue) []issueSummary {
	out := makeSlice[issueSummary](len(list))
	for _, i := range list {
		out = append(out, issueSummary{
			Kind:     string(i.Kind),
			Severity: i.Severity.String(),
			Location: i.Location(),
			Verb:     i.Verb,
			Path:     i.Path,
			Subject:  i.Subject,
			Message:  i.Message,
		})
	}
	return out
}
