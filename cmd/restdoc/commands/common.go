// Package commands provides CLI command handlers for restdoc.
package commands

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"

	"go.yaml.in/yaml/v4"

	"github.com/erraggy/restdoc/generator"
	"github.com/erraggy/restdoc/internal/cliutil"
	"github.com/erraggy/restdoc/sourcemodel"
)

// Output format constants
const (
	FormatText = "text"
	FormatJSON = "json"
	FormatYAML = "yaml"
)

// StdinFilePath is the special file path used to indicate reading from stdin.
const StdinFilePath = "-"

// ValidateOutputFormat validates an output format and returns an error if invalid.
func ValidateOutputFormat(format string) error {
	if format != FormatText && format != FormatJSON && format != FormatYAML {
		return fmt.Errorf("invalid format '%s'. Valid formats: %s, %s, %s", format, FormatText, FormatJSON, FormatYAML)
	}
	return nil
}

// OutputStructured writes data to w in the specified format (json or yaml).
func OutputStructured(w io.Writer, data any, format string) error {
	var bytes []byte
	var err error

	switch format {
	case FormatJSON:
		bytes, err = json.MarshalIndent(data, "", "  ")
	case FormatYAML:
		bytes, err = yaml.Marshal(data)
	default:
		return fmt.Errorf("invalid format for structured output: %s", format)
	}

	if err != nil {
		return fmt.Errorf("marshaling to %s: %w", format, err)
	}

	Writef(w, "%s\n", bytes)
	return nil
}

// FormatModelPath returns a display name for the model path.
func FormatModelPath(modelPath string) string {
	if modelPath == StdinFilePath {
		return "<stdin>"
	}
	return modelPath
}

// Writef writes formatted output to the writer.
func Writef(w io.Writer, format string, args ...any) {
	cliutil.Writef(w, format, args...)
}

// modelSource returns the generator option that reads modelPath, draining
// stdin when modelPath is "-".
func modelSource(modelPath string, stdin io.Reader) (generator.Option, error) {
	if modelPath != StdinFilePath {
		return generator.WithFilePath(modelPath), nil
	}
	data, err := io.ReadAll(stdin)
	if err != nil {
		return nil, fmt.Errorf("reading stdin: %w", err)
	}
	if len(data) == 0 {
		return nil, fmt.Errorf("no source model on stdin")
	}
	return generator.WithBytes(data), nil
}

// newLogger returns a debug-level logger on w when verbose is set and a
// no-op logger otherwise.
func newLogger(verbose bool, w io.Writer) sourcemodel.Logger {
	if !verbose {
		return sourcemodel.NopLogger{}
	}
	return sourcemodel.NewSlogAdapter(slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: slog.LevelDebug})))
}

// printIssues writes diagnostics grouped by severity.
func printIssues(w io.Writer, issues []generator.Issue) {
	for _, group := range []struct {
		title    string
		severity generator.Severity
	}{
		{"Errors", generator.SeverityError},
		{"Warnings", generator.SeverityWarning},
		{"Info", generator.SeverityInfo},
	} {
		var matched []generator.Issue
		for _, i := range issues {
			if i.Severity == group.severity {
				matched = append(matched, i)
			}
		}
		if len(matched) == 0 {
			continue
		}
		Writef(w, "%s (%d):\n", group.title, len(matched))
		for _, i := range matched {
			Writef(w, "  %s\n", i.String())
		}
		Writef(w, "\n")
	}
}

// streams carries the standard streams a command reads and writes.
type streams struct {
	in  io.Reader
	out io.Writer
	err io.Writer
}

func stdStreams() streams {
	return streams{in: os.Stdin, out: os.Stdout, err: os.Stderr}
}
