package render

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/erraggy/restdoc/internal/fileutil"
	"github.com/erraggy/restdoc/internal/pathutil"
	"github.com/erraggy/restdoc/specdoc"
)

// File names written by WriteDir.
const (
	YAMLFileName = "definition.yml"
	JSONFileName = "definition.json"
)

// Format is an output encoding.
type Format string

const (
	// FormatYAML renders YAML
	FormatYAML Format = "yaml"
	// FormatJSON renders indented JSON
	FormatJSON Format = "json"
)

// FormatForPath picks the format from a file extension. Anything other
// than ".json" is YAML.
func FormatForPath(path string) Format {
	if strings.EqualFold(filepath.Ext(path), ".json") {
		return FormatJSON
	}
	return FormatYAML
}

// Encode renders doc in the given format.
func Encode(doc *specdoc.Document, format Format) ([]byte, error) {
	switch format {
	case FormatJSON:
		return JSONIndent(doc)
	case FormatYAML, "":
		return YAML(doc)
	default:
		return nil, fmt.Errorf("render: unsupported format %q", format)
	}
}

// WriteFile renders doc in the format implied by the path extension and
// writes it. Symlinked targets are refused.
func WriteFile(path string, doc *specdoc.Document) error {
	data, err := Encode(doc, FormatForPath(path))
	if err != nil {
		return err
	}
	return writeBytes(path, data)
}

// WriteDir writes definition.yml and definition.json into dir, creating
// it if needed. It returns the paths written.
func WriteDir(dir string, doc *specdoc.Document) ([]string, error) {
	if err := os.MkdirAll(dir, fileutil.DirReadableByAll); err != nil {
		return nil, fmt.Errorf("render: failed to create output directory: %w", err)
	}

	outputs := []struct {
		name   string
		format Format
	}{
		{YAMLFileName, FormatYAML},
		{JSONFileName, FormatJSON},
	}

	written := make([]string, 0, len(outputs))
	for _, out := range outputs {
		data, err := Encode(doc, out.format)
		if err != nil {
			return written, err
		}
		path := filepath.Join(dir, out.name)
		if err := writeBytes(path, data); err != nil {
			return written, err
		}
		written = append(written, path)
	}
	return written, nil
}

func writeBytes(path string, data []byte) error {
	cleaned, err := pathutil.SanitizeOutputPath(path)
	if err != nil {
		return fmt.Errorf("render: invalid output path: %w", err)
	}
	if err := os.WriteFile(cleaned, data, fileutil.ReadableByAll); err != nil {
		return fmt.Errorf("render: failed to write %s: %w", cleaned, err)
	}
	return nil
}
